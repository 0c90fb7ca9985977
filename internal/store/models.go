package store

import (
	"time"

	"github.com/google/uuid"
)

// PredictionRecord is one append-only success-prediction history row.
// Predictions are never mutated in place; a repeated (idea, developer)
// pair simply gains another row.
type PredictionRecord struct {
	ID                   string    `json:"id"`
	IdeaID               string    `json:"idea_id"`
	DeveloperID          string    `json:"developer_id"`
	PredictionScore      float64   `json:"prediction_score"`
	MarketTiming         float64   `json:"market_timing"`
	TechnicalFeasibility float64   `json:"technical_feasibility"`
	DeveloperMatch       float64   `json:"developer_match"`
	FundingProbability   float64   `json:"funding_probability"`
	ConfidenceInterval   float64   `json:"confidence_interval"`
	Factors              string    `json:"factors"` // JSON SWOT payload
	Recommendation       string    `json:"recommendation"`
	CreatedAt            time.Time `json:"created_at"`
}

// ClickEvent is one recommendation impression-click row used for offline
// evaluation.
type ClickEvent struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	IdeaID    string    `json:"idea_id"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// NewClickEvent creates a click event with a generated id.
func NewClickEvent(userID, ideaID string, position int, at time.Time) ClickEvent {
	return ClickEvent{
		ID:        uuid.New().String(),
		UserID:    userID,
		IdeaID:    ideaID,
		Position:  position,
		CreatedAt: at,
	}
}

// NewPredictionID generates an id for a prediction history row.
func NewPredictionID() string {
	return uuid.New().String()
}
