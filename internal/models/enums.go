// internal/models/enums.go
package models

import (
	"fmt"
	"strings"
)

type TripType string

const (
	TripTypeCultural  TripType = "cultural"
	TripTypeBeach     TripType = "beach"
	TripTypeAdventure TripType = "adventure"
	TripTypeCity      TripType = "city"
	TripTypeNature    TripType = "nature"
	TripTypeRomantic  TripType = "romantic"
	TripTypeFamily    TripType = "family"
	TripTypeBusiness  TripType = "business"
)

var tripTypes = []TripType{
	TripTypeCultural, TripTypeBeach, TripTypeAdventure, TripTypeCity,
	TripTypeNature, TripTypeRomantic, TripTypeFamily, TripTypeBusiness,
}

// ParseTripType accepts any casing of a known trip type.
func ParseTripType(s string) (TripType, error) {
	v := TripType(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range tripTypes {
		if t == v {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown trip type %q", s)
}

func (t TripType) Valid() bool {
	_, err := ParseTripType(string(t))
	return err == nil
}

type BudgetLevel string

const (
	BudgetLow    BudgetLevel = "low"
	BudgetMedium BudgetLevel = "medium"
	BudgetHigh   BudgetLevel = "high"
)

func ParseBudgetLevel(s string) (BudgetLevel, error) {
	switch v := BudgetLevel(strings.ToLower(strings.TrimSpace(s))); v {
	case BudgetLow, BudgetMedium, BudgetHigh:
		return v, nil
	}
	return "", fmt.Errorf("unknown budget level %q", s)
}

func (b BudgetLevel) Valid() bool {
	_, err := ParseBudgetLevel(string(b))
	return err == nil
}

type Continent string

const (
	ContinentAfrica       Continent = "Africa"
	ContinentAntarctica   Continent = "Antarctica"
	ContinentAsia         Continent = "Asia"
	ContinentEurope       Continent = "Europe"
	ContinentNorthAmerica Continent = "North America"
	ContinentOceania      Continent = "Oceania"
	ContinentSouthAmerica Continent = "South America"
)

var continents = []Continent{
	ContinentAfrica, ContinentAntarctica, ContinentAsia, ContinentEurope,
	ContinentNorthAmerica, ContinentOceania, ContinentSouthAmerica,
}

// ParseContinent matches names ignoring case, and treats '_' and '-' as spaces
// so "north_america" and "North America" resolve to the same value.
func ParseContinent(s string) (Continent, error) {
	norm := normalizeContinent(s)
	for _, c := range continents {
		if normalizeContinent(string(c)) == norm {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown continent %q", s)
}

func normalizeContinent(s string) string {
	s = strings.NewReplacer("_", " ", "-", " ").Replace(strings.ToLower(s))
	return strings.Join(strings.Fields(s), " ")
}

type PopularityTrend string

const (
	TrendRising    PopularityTrend = "rising"
	TrendStable    PopularityTrend = "stable"
	TrendDeclining PopularityTrend = "declining"
)

type DestinationSource string

const (
	SourceAIGenerated DestinationSource = "ai_generated"
	SourceAIEnhanced  DestinationSource = "ai_enhanced"
	SourceUserCurated DestinationSource = "user_curated"
)
