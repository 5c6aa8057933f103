// Package seed holds the built-in destination list used when no remote catalog is reachable.
package seed

import "trip-suggestions/internal/models"

// Seed is a statically known destination with an intrinsic popularity score in [0,100].
type Seed struct {
	ID          string
	Name        string
	Country     string
	Continent   models.Continent
	Coordinates models.Coordinates
	Category    string
	Tags        []string
	Duration    string
	Tier        models.BudgetLevel
	Description string
	Popularity  float64
}

// Destination converts the seed into catalog shape. The intrinsic
// popularity becomes AIScore so seeds rank by it when scored; LastAIUpdate
// stays zero.
func (s Seed) Destination() models.Destination {
	return models.Destination{
		ID:                s.ID,
		Name:              s.Name,
		Country:           s.Country,
		Continent:         s.Continent,
		Coordinates:       s.Coordinates,
		AIScore:           s.Popularity,
		PopularityTrend:   models.TrendStable,
		Category:          s.Category,
		Tags:              append([]string(nil), s.Tags...),
		SuggestedDuration: s.Duration,
		Cost:              models.CostEstimate{Tier: s.Tier},
		Description:       s.Description,
		Source:            models.SourceUserCurated,
	}
}

// Destinations returns a fresh copy of the seed list.
func Destinations() []Seed {
	out := make([]Seed, len(builtin))
	copy(out, builtin)
	return out
}

var builtin = []Seed{
	{
		ID: "seed-paris", Name: "Paris", Country: "France", Continent: models.ContinentEurope,
		Coordinates: models.Coordinates{Lat: 48.8566, Lng: 2.3522},
		Category:    "city", Tags: []string{"cultural", "romantic", "city"},
		Duration: "4-6 days", Tier: models.BudgetHigh, Popularity: 95,
		Description: "Museums, cafés and river walks.",
	},
	{
		ID: "seed-tokyo", Name: "Tokyo", Country: "Japan", Continent: models.ContinentAsia,
		Coordinates: models.Coordinates{Lat: 35.6762, Lng: 139.6503},
		Category:    "city", Tags: []string{"city", "cultural", "family"},
		Duration: "5-8 days", Tier: models.BudgetHigh, Popularity: 93,
		Description: "Dense neighbourhoods, food markets and temples.",
	},
	{
		ID: "seed-bali", Name: "Bali", Country: "Indonesia", Continent: models.ContinentAsia,
		Coordinates: models.Coordinates{Lat: -8.3405, Lng: 115.092},
		Category:    "island", Tags: []string{"beach", "nature", "romantic"},
		Duration: "7-10 days", Tier: models.BudgetMedium, Popularity: 90,
		Description: "Rice terraces, surf beaches and temples.",
	},
	{
		ID: "seed-new-york", Name: "New York", Country: "United States", Continent: models.ContinentNorthAmerica,
		Coordinates: models.Coordinates{Lat: 40.7128, Lng: -74.006},
		Category:    "city", Tags: []string{"city", "business", "cultural"},
		Duration: "4-5 days", Tier: models.BudgetHigh, Popularity: 89,
		Description: "Skyline, theatres and neighbourhood food.",
	},
	{
		ID: "seed-rome", Name: "Rome", Country: "Italy", Continent: models.ContinentEurope,
		Coordinates: models.Coordinates{Lat: 41.9028, Lng: 12.4964},
		Category:    "city", Tags: []string{"cultural", "romantic", "city"},
		Duration: "3-5 days", Tier: models.BudgetMedium, Popularity: 88,
		Description: "Ancient ruins and piazzas.",
	},
	{
		ID: "seed-barcelona", Name: "Barcelona", Country: "Spain", Continent: models.ContinentEurope,
		Coordinates: models.Coordinates{Lat: 41.3874, Lng: 2.1686},
		Category:    "city", Tags: []string{"beach", "city", "cultural"},
		Duration: "4-6 days", Tier: models.BudgetMedium, Popularity: 86,
		Description: "Modernist architecture next to the sea.",
	},
	{
		ID: "seed-cape-town", Name: "Cape Town", Country: "South Africa", Continent: models.ContinentAfrica,
		Coordinates: models.Coordinates{Lat: -33.9249, Lng: 18.4241},
		Category:    "coastal", Tags: []string{"adventure", "nature", "beach"},
		Duration: "6-9 days", Tier: models.BudgetMedium, Popularity: 82,
		Description: "Table Mountain, wine valleys and coastline.",
	},
	{
		ID: "seed-sydney", Name: "Sydney", Country: "Australia", Continent: models.ContinentOceania,
		Coordinates: models.Coordinates{Lat: -33.8688, Lng: 151.2093},
		Category:    "city", Tags: []string{"beach", "city", "family"},
		Duration: "5-7 days", Tier: models.BudgetHigh, Popularity: 84,
		Description: "Harbour, beaches and coastal walks.",
	},
	{
		ID: "seed-cusco", Name: "Cusco", Country: "Peru", Continent: models.ContinentSouthAmerica,
		Coordinates: models.Coordinates{Lat: -13.5319, Lng: -71.9675},
		Category:    "mountain", Tags: []string{"adventure", "cultural", "nature"},
		Duration: "5-7 days", Tier: models.BudgetLow, Popularity: 78,
		Description: "Gateway to the Sacred Valley and Machu Picchu.",
	},
	{
		ID: "seed-reykjavik", Name: "Reykjavik", Country: "Iceland", Continent: models.ContinentEurope,
		Coordinates: models.Coordinates{Lat: 64.1466, Lng: -21.9426},
		Category:    "nature", Tags: []string{"nature", "adventure"},
		Duration: "5-7 days", Tier: models.BudgetHigh, Popularity: 76,
		Description: "Glaciers, geysers and the northern lights.",
	},
	{
		ID: "seed-marrakech", Name: "Marrakech", Country: "Morocco", Continent: models.ContinentAfrica,
		Coordinates: models.Coordinates{Lat: 31.6295, Lng: -7.9811},
		Category:    "city", Tags: []string{"cultural", "city", "romantic"},
		Duration: "3-4 days", Tier: models.BudgetLow, Popularity: 75,
		Description: "Souks, riads and the Atlas foothills.",
	},
	{
		ID: "seed-banff", Name: "Banff", Country: "Canada", Continent: models.ContinentNorthAmerica,
		Coordinates: models.Coordinates{Lat: 51.1784, Lng: -115.5708},
		Category:    "mountain", Tags: []string{"nature", "adventure", "family"},
		Duration: "4-6 days", Tier: models.BudgetMedium, Popularity: 74,
		Description: "Lakes and peaks in the Canadian Rockies.",
	},
}
