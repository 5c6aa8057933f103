// internal/suggestions/catalog/popular.go
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	apperrors "trip-suggestions/internal/common/errors"
	"trip-suggestions/internal/models"

	"github.com/lib/pq"
)

const popularQuery = `
	SELECT d.id, d.name, d.country, d.continent, d.latitude, d.longitude, d.ai_score,
	       d.popularity_trend, d.category, d.tags, d.suggested_duration, d.cost_tier,
	       d.daily_cost_range, d.total_cost_range, d.description, d.source, d.last_ai_update,
	       s.total_likes, s.total_visits, s.average_rating, s.review_count
	FROM destinations d
	JOIN destination_stats s ON s.destination_id = d.id
	ORDER BY s.total_likes DESC
	LIMIT $1`

// PopularSource returns the most-liked destinations.
type PopularSource struct {
	db    *sql.DB
	limit int
}

func NewPopularSource(db *sql.DB, limit int) *PopularSource {
	if limit <= 0 {
		limit = 50
	}
	return &PopularSource{db: db, limit: limit}
}

func (p *PopularSource) Name() string { return "popular" }

func (p *PopularSource) Fetch(ctx context.Context) ([]models.Destination, error) {
	rows, err := p.db.QueryContext(ctx, popularQuery, p.limit)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("popular_destinations", err)
	}
	defer rows.Close()

	out := make([]models.Destination, 0, p.limit)
	for rows.Next() {
		var (
			d           models.Destination
			tags        []string
			description sql.NullString
			updated     sql.NullTime
		)
		if err := rows.Scan(
			&d.ID, &d.Name, &d.Country, &d.Continent, &d.Coordinates.Lat, &d.Coordinates.Lng, &d.AIScore,
			&d.PopularityTrend, &d.Category, pq.Array(&tags), &d.SuggestedDuration, &d.Cost.Tier,
			&d.Cost.DailyRange, &d.Cost.TotalRange, &description, &d.Source, &updated,
			&d.Engagement.TotalLikes, &d.Engagement.TotalVisits, &d.Engagement.AverageRating, &d.Engagement.ReviewCount,
		); err != nil {
			return nil, fmt.Errorf("scan popular destination: %w", err)
		}
		d.Tags = tags
		d.Description = description.String
		if updated.Valid {
			d.LastAIUpdate = updated.Time
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate popular destinations: %w", err)
	}
	return out, nil
}
