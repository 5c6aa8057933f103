// Package preferences caches per-user destination preferences in front of a persistent source.
package preferences

import (
	"context"
	"fmt"
	"time"

	"trip-suggestions/internal/common/cache"
	"trip-suggestions/internal/common/logger"
	"trip-suggestions/internal/models"

	"github.com/google/uuid"
)

const DefaultTTL = 30 * time.Minute

// Source is the persistent side of the store.
type Source interface {
	FetchPreferences(ctx context.Context, userID string) ([]models.DestinationPreference, error)
	InsertPreference(ctx context.Context, pref models.DestinationPreference) error
}

type Store struct {
	source Source
	cache  cache.Cache[[]models.DestinationPreference]
	logger logger.Logger
	now    func() time.Time
}

type Option func(*Store)

// WithClock overrides the timestamp source used by SavePreference.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(source Source, c cache.Cache[[]models.DestinationPreference], log logger.Logger, opts ...Option) *Store {
	s := &Store{
		source: source,
		cache:  c,
		logger: log.WithFields(map[string]interface{}{"component": "preference-store"}),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetPreferences never fails. A source error yields an empty slice, which is
// not cached so the next call retries the source.
func (s *Store) GetPreferences(ctx context.Context, userID string) []models.DestinationPreference {
	if prefs, ok := s.cache.Get(ctx, userID); ok {
		return prefs
	}

	prefs, err := s.source.FetchPreferences(ctx, userID)
	if err != nil {
		s.logger.Warn("preference fetch failed, continuing without personalisation", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
		return []models.DestinationPreference{}
	}
	if prefs == nil {
		prefs = []models.DestinationPreference{}
	}

	s.cache.Set(ctx, userID, prefs)
	return prefs
}

// SavePreference stamps pref with a new ID and timestamps, persists it and
// drops the owner's cache entry.
func (s *Store) SavePreference(ctx context.Context, pref models.DestinationPreference) (models.DestinationPreference, error) {
	now := s.now().UTC()
	pref.ID = uuid.NewString()
	pref.CreatedAt = now
	pref.UpdatedAt = now

	if err := pref.Validate(); err != nil {
		return models.DestinationPreference{}, fmt.Errorf("invalid preference: %w", err)
	}
	if err := s.source.InsertPreference(ctx, pref); err != nil {
		return models.DestinationPreference{}, err
	}

	s.cache.Delete(ctx, pref.UserID)
	s.logger.Debug("preference saved", map[string]interface{}{
		"userId":        pref.UserID,
		"destinationId": pref.DestinationID,
		"preferenceId":  pref.ID,
	})
	return pref, nil
}

func (s *Store) ClearCache(ctx context.Context) {
	s.cache.Clear(ctx)
}
