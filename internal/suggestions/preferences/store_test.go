package preferences

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"trip-suggestions/internal/common/cache"
	"trip-suggestions/internal/common/logger"
	"trip-suggestions/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeSource struct {
	mu        sync.Mutex
	prefs     map[string][]models.DestinationPreference
	fetchErr  error
	insertErr error
	fetches   int
	inserted  []models.DestinationPreference
}

func (f *fakeSource) FetchPreferences(_ context.Context, userID string) ([]models.DestinationPreference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.prefs[userID], nil
}

func (f *fakeSource) InsertPreference(_ context.Context, pref models.DestinationPreference) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, pref)
	f.prefs[pref.UserID] = append(f.prefs[pref.UserID], pref)
	return nil
}

func (f *fakeSource) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time          { return c.now }
func (c *stepClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func samplePref(userID string) models.DestinationPreference {
	return models.DestinationPreference{
		UserID:          userID,
		DestinationID:   "dest-lisbon",
		DestinationName: "Lisbon",
		Country:         "Portugal",
		Rating:          5,
		TripType:        models.TripTypeCultural,
		BudgetLevel:     models.BudgetMedium,
		DurationDays:    4,
	}
}

func newTestStore(t *testing.T, src Source, clock *stepClock) *Store {
	c := cache.NewMemory[[]models.DestinationPreference](DefaultTTL, clock.Now)
	return NewStore(src, c, logger.NewTestLogger(t), WithClock(clock.Now))
}

// ==========================
// Store
// ==========================

func TestGetPreferences_CacheHitWithinTTL(t *testing.T) {
	clock := newStepClock()
	src := &fakeSource{prefs: map[string][]models.DestinationPreference{
		"user-1": {samplePref("user-1")},
	}}
	store := newTestStore(t, src, clock)
	ctx := context.Background()

	first := store.GetPreferences(ctx, "user-1")
	clock.Advance(29 * time.Minute)
	second := store.GetPreferences(ctx, "user-1")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.fetchCount(), "second call within TTL must not hit the source")
}

func TestGetPreferences_RefetchAfterTTL(t *testing.T) {
	clock := newStepClock()
	src := &fakeSource{prefs: map[string][]models.DestinationPreference{
		"user-1": {samplePref("user-1")},
	}}
	store := newTestStore(t, src, clock)
	ctx := context.Background()

	store.GetPreferences(ctx, "user-1")
	clock.Advance(DefaultTTL)
	store.GetPreferences(ctx, "user-1")

	assert.Equal(t, 2, src.fetchCount())
}

func TestGetPreferences_RefetchAfterClear(t *testing.T) {
	clock := newStepClock()
	src := &fakeSource{prefs: map[string][]models.DestinationPreference{
		"user-1": {samplePref("user-1")},
	}}
	store := newTestStore(t, src, clock)
	ctx := context.Background()

	store.GetPreferences(ctx, "user-1")
	store.ClearCache(ctx)
	store.GetPreferences(ctx, "user-1")

	assert.Equal(t, 2, src.fetchCount())
}

func TestGetPreferences_SourceErrorIsAbsorbedAndNotCached(t *testing.T) {
	clock := newStepClock()
	src := &fakeSource{
		prefs:    map[string][]models.DestinationPreference{},
		fetchErr: errors.New("connection refused"),
	}
	store := newTestStore(t, src, clock)
	ctx := context.Background()

	prefs := store.GetPreferences(ctx, "user-1")
	require.NotNil(t, prefs)
	assert.Empty(t, prefs)

	store.GetPreferences(ctx, "user-1")
	assert.Equal(t, 2, src.fetchCount(), "failures must not be cached")
}

func TestGetPreferences_UnknownUserIsEmpty(t *testing.T) {
	src := &fakeSource{prefs: map[string][]models.DestinationPreference{}}
	store := newTestStore(t, src, newStepClock())

	prefs := store.GetPreferences(context.Background(), "nobody")
	require.NotNil(t, prefs)
	assert.Empty(t, prefs)
}

func TestSavePreference_StampsAndInvalidatesUser(t *testing.T) {
	clock := newStepClock()
	src := &fakeSource{prefs: map[string][]models.DestinationPreference{
		"user-1": {samplePref("user-1")},
		"user-2": {samplePref("user-2")},
	}}
	store := newTestStore(t, src, clock)
	ctx := context.Background()

	store.GetPreferences(ctx, "user-1")
	store.GetPreferences(ctx, "user-2")
	require.Equal(t, 2, src.fetchCount())

	saved, err := store.SavePreference(ctx, samplePref("user-1"))
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, clock.now, saved.CreatedAt)
	assert.Equal(t, saved.CreatedAt, saved.UpdatedAt)

	got := store.GetPreferences(ctx, "user-1")
	assert.Len(t, got, 2)
	assert.Equal(t, 3, src.fetchCount(), "saving must drop the owner's entry")

	store.GetPreferences(ctx, "user-2")
	assert.Equal(t, 3, src.fetchCount(), "other users stay cached")
}

func TestSavePreference_Errors(t *testing.T) {
	tests := []struct {
		name      string
		pref      models.DestinationPreference
		insertErr error
	}{
		{
			name: "rating out of range",
			pref: func() models.DestinationPreference {
				p := samplePref("user-1")
				p.Rating = 9
				return p
			}(),
		},
		{
			name:      "source failure",
			pref:      samplePref("user-1"),
			insertErr: errors.New("deadlock detected"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{prefs: map[string][]models.DestinationPreference{}, insertErr: tt.insertErr}
			store := newTestStore(t, src, newStepClock())

			_, err := store.SavePreference(context.Background(), tt.pref)
			assert.Error(t, err)
			assert.Empty(t, src.inserted)
		})
	}
}

// ==========================
// PostgresSource
// ==========================

func TestPostgresSource_FetchPreferences(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "destination_id", "destination_name", "country", "rating",
		"trip_type", "budget_level", "duration_days", "liked_place_ids", "created_at", "updated_at",
	}).
		AddRow("p-1", "user-1", "dest-kyoto", "Kyoto", "Japan", 5, "cultural", "high", 6, []byte(`["temple-1","garden-2"]`), created, created).
		AddRow("p-2", "user-1", "dest-nice", "Nice", "France", 3, "beach", "medium", 3, nil, created, created)

	mock.ExpectQuery("SELECT id, user_id, destination_id").
		WithArgs("user-1").
		WillReturnRows(rows)

	src := NewPostgresSource(db)
	prefs, err := src.FetchPreferences(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, prefs, 2)

	assert.Equal(t, models.TripTypeCultural, prefs[0].TripType)
	assert.Equal(t, models.BudgetHigh, prefs[0].BudgetLevel)
	assert.Equal(t, []string{"temple-1", "garden-2"}, prefs[0].LikedPlaceIDs)
	assert.Nil(t, prefs[1].LikedPlaceIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_MalformedLikedPlaces(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "destination_id", "destination_name", "country", "rating",
		"trip_type", "budget_level", "duration_days", "liked_place_ids", "created_at", "updated_at",
	}).
		AddRow("p-9", "user-1", "dest-kyoto", "Kyoto", "Japan", 5, "cultural", "high", 6, []byte(`{"not":"a list"`), created, created)

	mock.ExpectQuery("SELECT id, user_id, destination_id").
		WithArgs("user-1").
		WillReturnRows(rows)

	src := NewPostgresSource(db)
	_, err = src.FetchPreferences(context.Background(), "user-1")
	assert.ErrorContains(t, err, "decode liked places for preference p-9")

	// The store absorbs the error into an empty, uncached list.
	store := NewStore(src, cache.NewMemory[[]models.DestinationPreference](DefaultTTL, nil), logger.NewTestLogger(t))
	mock.ExpectQuery("SELECT id, user_id, destination_id").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "destination_id", "destination_name", "country", "rating",
			"trip_type", "budget_level", "duration_days", "liked_place_ids", "created_at", "updated_at",
		}).AddRow("p-9", "user-1", "dest-kyoto", "Kyoto", "Japan", 5, "cultural", "high", 6, []byte(`oops`), created, created))

	assert.Empty(t, store.GetPreferences(context.Background(), "user-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_FetchError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, user_id").
		WithArgs("user-1").
		WillReturnError(errors.New("relation does not exist"))

	_, err = NewPostgresSource(db).FetchPreferences(context.Background(), "user-1")
	assert.ErrorContains(t, err, "query preferences")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_InsertPreference(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	pref := samplePref("user-1")
	pref.ID = "p-9"
	pref.CreatedAt = time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	pref.UpdatedAt = pref.CreatedAt

	mock.ExpectExec("INSERT INTO user_destination_preferences").
		WithArgs("p-9", "user-1", "dest-lisbon", "Lisbon", "Portugal", 5,
			"cultural", "medium", 4, []byte(`[]`), pref.CreatedAt, pref.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewPostgresSource(db).InsertPreference(context.Background(), pref))
	assert.NoError(t, mock.ExpectationsWereMet())
}
