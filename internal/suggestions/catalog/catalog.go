// Package catalog assembles candidate destinations from independent sources.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trip-suggestions/internal/common/cache"
	apperrors "trip-suggestions/internal/common/errors"
	"trip-suggestions/internal/common/logger"
	"trip-suggestions/internal/models"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/errgroup"
)

var ErrCatalogUnavailable = errors.New("CATALOG_UNAVAILABLE")

const candidatesKey = "candidates"

type Config struct {
	SourceTimeout           time.Duration
	Dedupe                  bool
	BreakerFailureThreshold uint32
	BreakerOpenTimeout      time.Duration
}

func (c Config) withDefaults() Config {
	if c.SourceTimeout <= 0 {
		c.SourceTimeout = 3 * time.Second
	}
	if c.BreakerFailureThreshold == 0 {
		c.BreakerFailureThreshold = 5
	}
	if c.BreakerOpenTimeout <= 0 {
		c.BreakerOpenTimeout = 30 * time.Second
	}
	return c
}

// FailureHook is told about every source that could not be used, with a
// reason of "error", "timeout" or "circuit_open".
type FailureHook func(source, reason string)

type Catalog struct {
	remote   []Source
	static   Source
	breakers []*gobreaker.CircuitBreaker[[]models.Destination]
	cfg      Config
	cache    cache.Cache[[]models.Destination]
	onFail   FailureHook
	logger   logger.Logger
}

type Option func(*Catalog)

// WithCache enables candidate caching. Without it every call fetches.
func WithCache(c cache.Cache[[]models.Destination]) Option {
	return func(cat *Catalog) { cat.cache = c }
}

func WithFailureHook(h FailureHook) Option {
	return func(cat *Catalog) { cat.onFail = h }
}

// New builds a catalog over remote sources, concatenated in the given order.
// static is consulted only when every remote source failed.
func New(remote []Source, static Source, cfg Config, log logger.Logger, opts ...Option) *Catalog {
	cfg = cfg.withDefaults()
	c := &Catalog{
		remote: remote,
		static: static,
		cfg:    cfg,
		onFail: func(string, string) {},
		logger: log.WithFields(map[string]interface{}{"component": "catalog"}),
	}
	for _, src := range remote {
		c.breakers = append(c.breakers, c.newBreaker(src.Name()))
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Catalog) newBreaker(name string) *gobreaker.CircuitBreaker[[]models.Destination] {
	threshold := c.cfg.BreakerFailureThreshold
	return gobreaker.NewCircuitBreaker[[]models.Destination](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     c.cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("source breaker state changed", map[string]interface{}{
				"source": name,
				"from":   from.String(),
				"to":     to.String(),
			})
		},
	})
}

// GetCandidates fetches every remote source concurrently. A failing source
// contributes nothing. If all remote sources fail the static seeds are used;
// ErrCatalogUnavailable is returned only when nothing could be consulted.
func (c *Catalog) GetCandidates(ctx context.Context) ([]models.Destination, error) {
	if c.cache != nil {
		if cached, ok := c.cache.Get(ctx, candidatesKey); ok {
			return cached, nil
		}
	}

	results := make([][]models.Destination, len(c.remote))
	failed := make([]bool, len(c.remote))

	g, gctx := errgroup.WithContext(ctx)
	for i := range c.remote {
		i := i
		g.Go(func() error {
			dests, err := c.fetch(gctx, i)
			if err != nil {
				failed[i] = true
				return nil
			}
			results[i] = dests
			return nil
		})
	}
	_ = g.Wait()

	var (
		out       []models.Destination
		failures  []string
		succeeded int
	)
	for i, src := range c.remote {
		if failed[i] {
			failures = append(failures, src.Name())
			continue
		}
		succeeded++
		out = append(out, results[i]...)
	}

	if succeeded == 0 {
		static, err := c.fetchStatic(ctx)
		if err != nil {
			failures = append(failures, "static")
			return nil, fmt.Errorf("%w: %s", ErrCatalogUnavailable, strings.Join(failures, ", "))
		}
		c.logger.Warn("all remote sources failed, serving static seeds", map[string]interface{}{
			"failedSources": failures,
			"count":         len(static),
		})
		out = static
	}

	if c.cfg.Dedupe {
		out = Dedupe(out)
	}
	if out == nil {
		out = []models.Destination{}
	}

	if c.cache != nil && len(failures) == 0 {
		c.cache.Set(ctx, candidatesKey, out)
	}
	return out, nil
}

func (c *Catalog) fetch(ctx context.Context, i int) ([]models.Destination, error) {
	src := c.remote[i]
	fetchCtx, cancel := context.WithTimeout(ctx, c.cfg.SourceTimeout)
	defer cancel()

	start := time.Now()
	dests, err := c.breakers[i].Execute(func() ([]models.Destination, error) {
		return src.Fetch(fetchCtx)
	})
	if err != nil {
		reason := "error"
		var stdErr *apperrors.StandardError
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			reason = "circuit_open"
			stdErr = apperrors.NewSourceUnavailableError(src.Name(), err)
		case errors.Is(err, context.DeadlineExceeded), errors.Is(fetchCtx.Err(), context.DeadlineExceeded):
			reason = "timeout"
			stdErr = apperrors.NewSourceTimeoutError(src.Name(), c.cfg.SourceTimeout)
		default:
			stdErr = apperrors.NewSourceUnavailableError(src.Name(), err)
		}
		c.onFail(src.Name(), reason)
		c.logger.Warn("candidate source unavailable", map[string]interface{}{
			"source":     src.Name(),
			"reason":     reason,
			"errorCode":  string(stdErr.Code),
			"error":      err.Error(),
			"durationMs": time.Since(start).Milliseconds(),
		})
		return nil, stdErr
	}

	return c.sanitize(src.Name(), dests), nil
}

func (c *Catalog) fetchStatic(ctx context.Context) ([]models.Destination, error) {
	if c.static == nil {
		return nil, errors.New("no static source configured")
	}
	dests, err := c.static.Fetch(ctx)
	if err != nil {
		c.onFail(c.static.Name(), "error")
		c.logger.Error("static source failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return c.sanitize(c.static.Name(), dests), nil
}

// sanitize drops records whose numeric fields are out of range.
func (c *Catalog) sanitize(source string, dests []models.Destination) []models.Destination {
	out := dests[:0:0]
	for i := range dests {
		if err := dests[i].Validate(); err != nil {
			c.logger.Warn("dropping invalid candidate", map[string]interface{}{
				"source": source,
				"error":  err.Error(),
			})
			continue
		}
		out = append(out, dests[i])
	}
	return out
}

func (c *Catalog) ClearCache(ctx context.Context) {
	if c.cache != nil {
		c.cache.Clear(ctx)
	}
}

// Dedupe merges records naming the same place (name + country, case and
// whitespace insensitive). The first occurrence wins; its empty fields are
// filled from later duplicates and engagement counters take the maximum.
func Dedupe(in []models.Destination) []models.Destination {
	index := make(map[string]int, len(in))
	out := make([]models.Destination, 0, len(in))
	for _, d := range in {
		key := canonicalKey(d)
		if pos, ok := index[key]; ok {
			merge(&out[pos], d)
			continue
		}
		index[key] = len(out)
		out = append(out, d)
	}
	return out
}

func canonicalKey(d models.Destination) string {
	return strings.ToLower(strings.TrimSpace(d.Name)) + "|" + strings.ToLower(strings.TrimSpace(d.Country))
}

func merge(dst *models.Destination, src models.Destination) {
	if dst.Continent == "" {
		dst.Continent = src.Continent
	}
	if dst.Coordinates == (models.Coordinates{}) {
		dst.Coordinates = src.Coordinates
	}
	if dst.AIScore == 0 {
		dst.AIScore = src.AIScore
	}
	if dst.PopularityTrend == "" {
		dst.PopularityTrend = src.PopularityTrend
		dst.TrendReasons = src.TrendReasons
	}
	if len(dst.Tags) == 0 {
		dst.Tags = src.Tags
	}
	if dst.SuggestedDuration == "" {
		dst.SuggestedDuration = src.SuggestedDuration
	}
	if dst.Cost.Tier == "" {
		dst.Cost = src.Cost
	}
	if dst.Description == "" {
		dst.Description = src.Description
	}
	if dst.LastAIUpdate.IsZero() {
		dst.LastAIUpdate = src.LastAIUpdate
	}
	if len(dst.Photos) == 0 {
		dst.Photos = src.Photos
	}

	e := &dst.Engagement
	e.TotalLikes = max(e.TotalLikes, src.Engagement.TotalLikes)
	e.TotalVisits = max(e.TotalVisits, src.Engagement.TotalVisits)
	e.ReviewCount = max(e.ReviewCount, src.Engagement.ReviewCount)
	e.AverageRating = max(e.AverageRating, src.Engagement.AverageRating)
}
