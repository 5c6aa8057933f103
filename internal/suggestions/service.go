// Package suggestions ranks candidate destinations for a user.
package suggestions

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "trip-suggestions/internal/common/errors"
	"trip-suggestions/internal/common/logger"
	"trip-suggestions/internal/common/metrics"
	"trip-suggestions/internal/common/observability"
	"trip-suggestions/internal/models"
	"trip-suggestions/internal/suggestions/catalog"
	"trip-suggestions/internal/suggestions/seed"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

type PreferenceStore interface {
	GetPreferences(ctx context.Context, userID string) []models.DestinationPreference
	SavePreference(ctx context.Context, pref models.DestinationPreference) (models.DestinationPreference, error)
	ClearCache(ctx context.Context)
}

type CandidateCatalog interface {
	GetCandidates(ctx context.Context) ([]models.Destination, error)
	ClearCache(ctx context.Context)
}

type EngagementRecorder interface {
	RecordLike(ctx context.Context, userID, destinationID string) error
}

type Config struct {
	MinRelevance float64
	MaxResults   int
}

// Result is always usable. Degraded marks a fallback ranking and
// DegradedReason carries the error code that caused it.
type Result struct {
	Suggestions    []models.ScoredSuggestion `json:"suggestions"`
	Degraded       bool                      `json:"degraded"`
	DegradedReason string                    `json:"degradedReason,omitempty"`
}

type Service struct {
	prefs      PreferenceStore
	catalog    CandidateCatalog
	engagement EngagementRecorder
	seeds      []seed.Seed
	cfg        Config
	obs        *observability.Observability
	logger     logger.Logger
	now        func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithSeeds(seeds []seed.Seed) Option {
	return func(s *Service) { s.seeds = seeds }
}

func WithObservability(o *observability.Observability) Option {
	return func(s *Service) { s.obs = o }
}

// NewService wires the pipeline. engagement may be nil, in which case likes
// are only logged.
func NewService(prefs PreferenceStore, cat CandidateCatalog, engagement EngagementRecorder, cfg Config, log logger.Logger, opts ...Option) *Service {
	if cfg.MinRelevance <= 0 {
		cfg.MinRelevance = DefaultMinRelevance
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	s := &Service{
		prefs:      prefs,
		catalog:    cat,
		engagement: engagement,
		seeds:      seed.Destinations(),
		cfg:        cfg,
		logger:     log.WithFields(map[string]interface{}{"component": "suggestions"}),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetSmartSuggestions never fails. Any error or panic in the personalised
// pipeline is logged and answered with the static popularity ranking.
func (s *Service) GetSmartSuggestions(ctx context.Context, userID string, filters models.Filters) Result {
	start := s.now()
	ctx, span := s.obs.StartSpan(ctx, "suggestions.GetSmartSuggestions",
		attribute.String("user.id", userID),
	)
	defer span.End()

	maxResults := filters.MaxResults
	if maxResults <= 0 {
		maxResults = s.cfg.MaxResults
	}

	out, err := s.personalised(ctx, userID, filters, maxResults)
	if err == nil {
		s.record(ctx, "personalised", start, len(out), false)
		span.SetAttributes(attribute.Int("suggestions.count", len(out)))
		return Result{Suggestions: out}
	}

	stdErr := apperrors.Normalize(err)
	s.logger.Error("suggestion pipeline failed, serving fallback", map[string]interface{}{
		"userId":    userID,
		"errorCode": string(stdErr.Code),
		"error":     err.Error(),
	})
	span.RecordError(err)
	span.SetStatus(codes.Error, string(stdErr.Code))

	fallback := Fallback(s.seeds, maxResults)
	metrics.SuggestionFallbacks.WithLabelValues(string(stdErr.Code)).Inc()
	s.record(ctx, "fallback", start, len(fallback), true)
	span.SetAttributes(
		attribute.Int("suggestions.count", len(fallback)),
		attribute.Bool("suggestions.degraded", true),
	)
	return Result{
		Suggestions:    fallback,
		Degraded:       true,
		DegradedReason: string(stdErr.Code),
	}
}

func (s *Service) personalised(ctx context.Context, userID string, filters models.Filters, maxResults int) (out []models.ScoredSuggestion, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.NewPipelineFailedError("score", fmt.Errorf("panic: %v", r))
		}
	}()

	var (
		prefs      []models.DestinationPreference
		candidates []models.Destination
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(guard("preferences", func() error {
		prefs = s.prefs.GetPreferences(gctx, userID)
		return nil
	}))
	g.Go(guard("catalog", func() error {
		c, err := s.catalog.GetCandidates(gctx)
		if err != nil {
			if errors.Is(err, catalog.ErrCatalogUnavailable) {
				return apperrors.NewCatalogUnavailableError(err.Error())
			}
			return apperrors.NewPipelineFailedError("catalog", err)
		}
		candidates = c
		return nil
	}))
	if err := g.Wait(); err != nil {
		return nil, err
	}

	scored := Score(candidates, prefs, filters, s.now())
	return Select(scored, s.cfg.MinRelevance, maxResults), nil
}

// guard turns a panic in a pipeline goroutine into a PIPELINE_FAILED error,
// since recover only works on the panicking goroutine.
func guard(stage string, fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = apperrors.NewPipelineFailedError(stage, fmt.Errorf("panic: %v", r))
			}
		}()
		return fn()
	}
}

func (s *Service) record(ctx context.Context, outcome string, start time.Time, count int, degraded bool) {
	metrics.SuggestionRequests.WithLabelValues(outcome).Inc()
	metrics.SuggestionPipelineDuration.WithLabelValues(outcome).Observe(s.now().Sub(start).Seconds())
	s.obs.RecordSuggestions(ctx, count, degraded)
	s.logger.Info("suggestions served", map[string]interface{}{
		"outcome":    outcome,
		"count":      count,
		"durationMs": s.now().Sub(start).Milliseconds(),
	})
}

// LikeDestination is best-effort; failures are logged and dropped.
func (s *Service) LikeDestination(ctx context.Context, userID, destinationID string) {
	if s.engagement == nil {
		s.logger.Debug("no engagement recorder configured, like dropped", map[string]interface{}{
			"userId":        userID,
			"destinationId": destinationID,
		})
		return
	}
	if err := s.engagement.RecordLike(ctx, userID, destinationID); err != nil {
		stdErr := apperrors.NewEngagementSignalFailedError("like", err)
		s.logger.Warn("like not recorded", map[string]interface{}{
			"userId":        userID,
			"destinationId": destinationID,
			"errorCode":     string(stdErr.Code),
			"error":         err.Error(),
		})
	}
}

// SaveUserPreference is best-effort; on success the user's cached
// preferences are invalidated by the store.
func (s *Service) SaveUserPreference(ctx context.Context, pref models.DestinationPreference) {
	saved, err := s.prefs.SavePreference(ctx, pref)
	if err != nil {
		stdErr := apperrors.NewPreferenceSaveFailedError(err)
		s.logger.Warn("preference not saved", map[string]interface{}{
			"userId":        pref.UserID,
			"destinationId": pref.DestinationID,
			"errorCode":     string(stdErr.Code),
			"error":         err.Error(),
		})
		return
	}
	s.logger.Info("preference saved", map[string]interface{}{
		"userId":       saved.UserID,
		"preferenceId": saved.ID,
	})
}

// ClearCache drops cached preferences and candidates.
func (s *Service) ClearCache(ctx context.Context) {
	s.prefs.ClearCache(ctx)
	s.catalog.ClearCache(ctx)
}
