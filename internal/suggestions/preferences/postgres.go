// internal/suggestions/preferences/postgres.go
package preferences

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"trip-suggestions/internal/models"
)

const selectPreferencesQuery = `
	SELECT id, user_id, destination_id, destination_name, country, rating,
	       trip_type, budget_level, duration_days, liked_place_ids, created_at, updated_at
	FROM user_destination_preferences
	WHERE user_id = $1
	ORDER BY created_at DESC`

const insertPreferenceQuery = `
	INSERT INTO user_destination_preferences
		(id, user_id, destination_id, destination_name, country, rating,
		 trip_type, budget_level, duration_days, liked_place_ids, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

// PostgresSource reads and writes the user_destination_preferences table.
type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func (p *PostgresSource) FetchPreferences(ctx context.Context, userID string) ([]models.DestinationPreference, error) {
	rows, err := p.db.QueryContext(ctx, selectPreferencesQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("query preferences: %w", err)
	}
	defer rows.Close()

	prefs := make([]models.DestinationPreference, 0)
	for rows.Next() {
		var (
			pref   models.DestinationPreference
			places []byte
		)
		if err := rows.Scan(
			&pref.ID, &pref.UserID, &pref.DestinationID, &pref.DestinationName, &pref.Country,
			&pref.Rating, &pref.TripType, &pref.BudgetLevel, &pref.DurationDays, &places,
			&pref.CreatedAt, &pref.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan preference: %w", err)
		}
		if len(places) > 0 {
			if err := json.Unmarshal(places, &pref.LikedPlaceIDs); err != nil {
				return nil, fmt.Errorf("decode liked places for preference %s: %w", pref.ID, err)
			}
		}
		prefs = append(prefs, pref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate preferences: %w", err)
	}
	return prefs, nil
}

func (p *PostgresSource) InsertPreference(ctx context.Context, pref models.DestinationPreference) error {
	places := pref.LikedPlaceIDs
	if places == nil {
		places = []string{}
	}
	placesJSON, err := json.Marshal(places)
	if err != nil {
		return fmt.Errorf("encode liked places: %w", err)
	}

	_, err = p.db.ExecContext(ctx, insertPreferenceQuery,
		pref.ID, pref.UserID, pref.DestinationID, pref.DestinationName, pref.Country, pref.Rating,
		string(pref.TripType), string(pref.BudgetLevel), pref.DurationDays, placesJSON,
		pref.CreatedAt, pref.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert preference: %w", err)
	}
	return nil
}
