package prediction

import "time"

// Sub-score weights for the composite prediction score. They must sum to
// 1.0; combined with clamped inputs this keeps the composite in [0,100]
// without re-clamping.
const (
	weightMarketTiming         = 0.25
	weightTechnicalFeasibility = 0.25
	weightDeveloperMatch       = 0.30
	weightFundingProbability   = 0.20
)

// SubScores are the four independent components of a prediction.
type SubScores struct {
	MarketTiming         float64 `json:"market_timing"`         // [0,100]
	TechnicalFeasibility float64 `json:"technical_feasibility"` // [20,100]
	DeveloperMatch       float64 `json:"developer_match"`       // [0,100]
	FundingProbability   float64 `json:"funding_probability"`   // [10,100]
}

// Factors is the SWOT-style explanation attached to a prediction.
type Factors struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Risks         []string `json:"risks"`
}

// SuccessPrediction is the full result for one (idea, developer) pair.
// Records are append-only history; a repeated call produces a new record.
type SuccessPrediction struct {
	IdeaID             string    `json:"idea_id"`
	DeveloperID        string    `json:"developer_id"`
	PredictionScore    float64   `json:"prediction_score"`    // [0,100]
	SubScores          SubScores `json:"sub_scores"`
	ConfidenceInterval float64   `json:"confidence_interval"` // [50,100]
	Factors            Factors   `json:"factors"`
	Recommendation     string    `json:"recommendation"`
	CreatedAt          time.Time `json:"created_at"`
}
