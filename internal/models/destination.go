// internal/models/destination.go
package models

import (
	"fmt"
	"strings"
	"time"
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type CostEstimate struct {
	Tier       BudgetLevel `json:"tier"`
	DailyRange string      `json:"dailyRange"`
	TotalRange string      `json:"totalRange"`
}

type Engagement struct {
	TotalLikes    int     `json:"totalLikes"`
	TotalVisits   int     `json:"totalVisits"`
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

// Destination is a candidate for recommendation, from any catalog source.
type Destination struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Country           string            `json:"country"`
	Continent         Continent         `json:"continent"`
	Coordinates       Coordinates       `json:"coordinates"`
	AIScore           float64           `json:"aiScore"`
	PopularityTrend   PopularityTrend   `json:"popularityTrend"`
	TrendReasons      []string          `json:"trendReasons,omitempty"`
	Category          string            `json:"category"`
	Tags              []string          `json:"tags"`
	BestSeasons       []string          `json:"bestSeasons,omitempty"`
	SuggestedDuration string            `json:"suggestedDuration"`
	Cost              CostEstimate      `json:"cost"`
	Description       string            `json:"description,omitempty"`
	Highlights        []string          `json:"highlights,omitempty"`
	Tips              []string          `json:"tips,omitempty"`
	Warnings          []string          `json:"warnings,omitempty"`
	Source            DestinationSource `json:"source"`
	LastAIUpdate      time.Time         `json:"lastAiUpdate"`
	Engagement        Engagement        `json:"engagement"`
	Photos            []string          `json:"photos,omitempty"`
}

// HasTag reports whether tag is among the destination tags, ignoring case.
func (d *Destination) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if strings.EqualFold(strings.TrimSpace(t), tag) {
			return true
		}
	}
	return false
}

func (d *Destination) Validate() error {
	if d.AIScore < 0 || d.AIScore > 100 {
		return fmt.Errorf("destination %s: aiScore %.2f out of range [0,100]", d.ID, d.AIScore)
	}
	if d.Engagement.AverageRating < 0 || d.Engagement.AverageRating > 5 {
		return fmt.Errorf("destination %s: averageRating %.2f out of range [0,5]", d.ID, d.Engagement.AverageRating)
	}
	return nil
}

// ScoredSuggestion is built fresh for every request and never persisted.
type ScoredSuggestion struct {
	Destination    Destination `json:"destination"`
	RelevanceScore float64     `json:"relevanceScore"`
	MatchReasons   []string    `json:"matchReasons"`
	UserSimilarity float64     `json:"userSimilarity"`
	TrendingBonus  float64     `json:"trendingBonus"`
}
