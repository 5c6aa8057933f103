// internal/workers/suggestions/save-user-preference/models.go
package saveuserpreference

import "trip-suggestions/internal/models"

type Input struct {
	UserID          string   `json:"userId"`
	DestinationID   string   `json:"destinationId"`
	DestinationName string   `json:"destinationName"`
	Country         string   `json:"country"`
	Rating          int      `json:"rating"`
	TripType        string   `json:"tripType"`
	BudgetLevel     string   `json:"budgetLevel"`
	DurationDays    int      `json:"durationDays"`
	LikedPlaceIDs   []string `json:"likedPlaceIds,omitempty"`
}

type Output struct {
	Accepted bool `json:"accepted"`
}

// toPreference resolves the enum fields case-insensitively.
func (in *Input) toPreference() (models.DestinationPreference, error) {
	tripType, err := models.ParseTripType(in.TripType)
	if err != nil {
		return models.DestinationPreference{}, err
	}
	budget, err := models.ParseBudgetLevel(in.BudgetLevel)
	if err != nil {
		return models.DestinationPreference{}, err
	}
	return models.DestinationPreference{
		UserID:          in.UserID,
		DestinationID:   in.DestinationID,
		DestinationName: in.DestinationName,
		Country:         in.Country,
		Rating:          in.Rating,
		TripType:        tripType,
		BudgetLevel:     budget,
		DurationDays:    in.DurationDays,
		LikedPlaceIDs:   in.LikedPlaceIDs,
	}, nil
}
