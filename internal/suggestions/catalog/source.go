// internal/suggestions/catalog/source.go
package catalog

import (
	"context"

	"trip-suggestions/internal/models"
	"trip-suggestions/internal/suggestions/seed"
)

// Source yields candidate destinations. An error means the source could not
// be reached; an empty slice means it was reached and had nothing.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.Destination, error)
}

// StaticSource serves the built-in seed list.
type StaticSource struct {
	seeds []seed.Seed
}

func NewStaticSource(seeds []seed.Seed) *StaticSource {
	return &StaticSource{seeds: seeds}
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) Fetch(_ context.Context) ([]models.Destination, error) {
	out := make([]models.Destination, 0, len(s.seeds))
	for _, sd := range s.seeds {
		out = append(out, sd.Destination())
	}
	return out, nil
}
