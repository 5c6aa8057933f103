// internal/models/preference.go
package models

import (
	"errors"
	"fmt"
	"time"
)

// DestinationPreference is one user's rating of a destination they visited or planned.
type DestinationPreference struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	DestinationID   string      `json:"destinationId"`
	DestinationName string      `json:"destinationName"`
	Country         string      `json:"country"`
	Rating          int         `json:"rating"`
	TripType        TripType    `json:"tripType"`
	BudgetLevel     BudgetLevel `json:"budgetLevel"`
	DurationDays    int         `json:"durationDays"`
	LikedPlaceIDs   []string    `json:"likedPlaceIds"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

func (p *DestinationPreference) Validate() error {
	if p.UserID == "" {
		return errors.New("userId is required")
	}
	if p.DestinationID == "" {
		return errors.New("destinationId is required")
	}
	if p.Rating < 1 || p.Rating > 5 {
		return fmt.Errorf("rating %d out of range [1,5]", p.Rating)
	}
	if !p.TripType.Valid() {
		return fmt.Errorf("unknown trip type %q", p.TripType)
	}
	if !p.BudgetLevel.Valid() {
		return fmt.Errorf("unknown budget level %q", p.BudgetLevel)
	}
	if p.DurationDays <= 0 {
		return fmt.Errorf("durationDays must be positive, got %d", p.DurationDays)
	}
	return nil
}

// Filters narrows and boosts scoring. A nil field disables its scoring term.
type Filters struct {
	TripType   *TripType
	Budget     *BudgetLevel
	Continent  *Continent
	MaxResults int
}

// FilterInput is the wire form of Filters.
type FilterInput struct {
	TripType   string `json:"tripType,omitempty"`
	Budget     string `json:"budget,omitempty"`
	Continent  string `json:"continent,omitempty"`
	MaxResults int    `json:"maxResults,omitempty"`
}

func (in FilterInput) Normalize() (Filters, error) {
	var f Filters
	if in.TripType != "" {
		t, err := ParseTripType(in.TripType)
		if err != nil {
			return Filters{}, err
		}
		f.TripType = &t
	}
	if in.Budget != "" {
		b, err := ParseBudgetLevel(in.Budget)
		if err != nil {
			return Filters{}, err
		}
		f.Budget = &b
	}
	if in.Continent != "" {
		c, err := ParseContinent(in.Continent)
		if err != nil {
			return Filters{}, err
		}
		f.Continent = &c
	}
	if in.MaxResults < 0 {
		return Filters{}, fmt.Errorf("maxResults must be positive, got %d", in.MaxResults)
	}
	f.MaxResults = in.MaxResults
	return f, nil
}
