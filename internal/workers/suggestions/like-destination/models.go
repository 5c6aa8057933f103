// internal/workers/suggestions/like-destination/models.go
package likedestination

type Input struct {
	UserID        string `json:"userId"`
	DestinationID string `json:"destinationId"`
}

type Output struct {
	Accepted bool `json:"accepted"`
}
