// internal/workers/suggestions/like-destination/handler_test.go
package likedestination

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "trip-suggestions/internal/common/errors"
	"trip-suggestions/internal/common/logger"
	"trip-suggestions/internal/models"
	"trip-suggestions/internal/suggestions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLiker struct {
	likes []string
}

func (f *fakeLiker) LikeDestination(_ context.Context, userID, destinationID string) {
	f.likes = append(f.likes, userID+"/"+destinationID)
}

type failingRecorder struct{ calls int }

func (f *failingRecorder) RecordLike(context.Context, string, string) error {
	f.calls++
	return errors.New("db down")
}

type stubPrefs struct{}

func (stubPrefs) GetPreferences(context.Context, string) []models.DestinationPreference { return nil }
func (stubPrefs) SavePreference(_ context.Context, p models.DestinationPreference) (models.DestinationPreference, error) {
	return p, nil
}
func (stubPrefs) ClearCache(context.Context) {}

type stubCatalog struct{}

func (stubCatalog) GetCandidates(context.Context) ([]models.Destination, error) { return nil, nil }
func (stubCatalog) ClearCache(context.Context) {}

func createTestHandler(t *testing.T, l Liker) *Handler {
	return NewHandler(&Config{Timeout: time.Second}, l, logger.NewTestLogger(t))
}

func TestExecute_RecordsLike(t *testing.T) {
	liker := &fakeLiker{}
	h := createTestHandler(t, liker)

	out := h.Execute(context.Background(), &Input{UserID: "user-1", DestinationID: "seed-paris"})

	assert.True(t, out.Accepted)
	assert.Equal(t, []string{"user-1/seed-paris"}, liker.likes)
}

func TestExecute_RecorderFailureStillAccepted(t *testing.T) {
	rec := &failingRecorder{}
	svc := suggestions.NewService(stubPrefs{}, stubCatalog{}, rec, suggestions.Config{}, logger.NewTestLogger(t))
	h := createTestHandler(t, svc)

	out := h.Execute(context.Background(), &Input{UserID: "user-1", DestinationID: "seed-paris"})

	assert.True(t, out.Accepted)
	assert.Equal(t, 1, rec.calls)
}

func TestParse(t *testing.T) {
	h := createTestHandler(t, &fakeLiker{})

	input, err := h.Parse(`{"userId":"user-1","destinationId":"seed-rome","suggestions":[]}`)
	require.NoError(t, err)
	assert.Equal(t, &Input{UserID: "user-1", DestinationID: "seed-rome"}, input)

	_, err = h.Parse(`{"userId":"user-1"}`)
	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, stdErr.Code)

	_, err = h.Parse(`not-json`)
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeParseError, stdErr.Code)
}
