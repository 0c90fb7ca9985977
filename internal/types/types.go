package types

import "time"

// TrendDirection describes how search interest in a keyword is moving.
type TrendDirection string

const (
	TrendRising  TrendDirection = "rising"
	TrendStable  TrendDirection = "stable"
	TrendFalling TrendDirection = "falling"
)

// Level is a coarse low/medium/high bucket shared by market signals and the
// text heuristics.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// IdeaMetrics is an immutable snapshot of a listed idea, read once per
// scoring call.
type IdeaMetrics struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	TechStack      []string  `json:"tech_stack"`
	Difficulty     int       `json:"implementation_difficulty"` // 1-5
	TargetAudience string    `json:"target_audience"`
	RevenueModel   string    `json:"revenue_model"`
	PackageType    string    `json:"package_type"`
	Price          float64   `json:"price"`
	ViewCount      int       `json:"view_count"`
	PurchaseCount  int       `json:"purchase_count"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// DeveloperProfile aggregates a developer's skill and track-record data.
// It is mutated only by the external progress tracker; this core reads it.
type DeveloperProfile struct {
	UserID              string             `json:"user_id"`
	GithubUsername      string             `json:"github_username,omitempty"`
	SkillScores         map[string]float64 `json:"skill_scores"`            // technology -> 0-100
	CompletionRate      float64            `json:"project_completion_rate"` // 0-1
	AvgProjectDays      float64            `json:"average_project_duration_days"`
	SuccessRate         float64            `json:"success_rate"` // 0-100
	SpecializationAreas []string           `json:"specialization_areas"`
}

// MarketSignal is a trend/competition snapshot for a keyword supplied by an
// external ingestion feed. Zero or more signals may exist per idea.
type MarketSignal struct {
	Keyword            string         `json:"keyword"`
	SearchVolume       int            `json:"search_volume"`
	TrendDirection     TrendDirection `json:"trend_direction"`
	MarketSizeEstimate float64        `json:"market_size_estimate"`
	CompetitionLevel   Level          `json:"competition_level"`
	RevenuePotential   Level          `json:"revenue_potential"`
	ConfidenceScore    float64        `json:"confidence_score"` // 0-100
}

// PurchaseRecord is one completed purchase from a user's history.
type PurchaseRecord struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	IdeaID      string    `json:"idea_id"`
	Category    string    `json:"category"`
	PackageType string    `json:"package_type"`
	Price       float64   `json:"price"`
	TechStack   []string  `json:"tech_stack"`
	Difficulty  int       `json:"implementation_difficulty"`
	CreatedAt   time.Time `json:"created_at"`
}

// AnalyzeRequest is the body for POST /analyze. Title-only requests are
// valid; the handler rejects a body where both fields are blank.
type AnalyzeRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// PredictRequest is the body for POST /predict.
type PredictRequest struct {
	IdeaID      string `json:"idea_id" binding:"required"`
	DeveloperID string `json:"developer_id" binding:"required"`
}

// RecommendRequest is the body for POST /recommend.
type RecommendRequest struct {
	UserID     string   `json:"user_id" binding:"required"`
	Limit      int      `json:"limit"`
	ExcludeIDs []string `json:"exclude_ids"`
}

// ClickRequest is the body for POST /recommend/click.
type ClickRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	IdeaID   string `json:"idea_id" binding:"required"`
	Position int    `json:"position"`
}
