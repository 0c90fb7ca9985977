package recommend

// Signal combination weights. The combined value is a ranking key only; it
// is deliberately not normalized to [0,100].
const (
	weightCollaborative = 0.4
	weightContent       = 0.4
	weightPopularity    = 0.2
)

const maxReasons = 4

// RecommendationScore is one ranked recommendation with its human-readable
// reasons. Produced fresh per request; only click impressions persist.
type RecommendationScore struct {
	IdeaID  string   `json:"idea_id"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// TasteProfile is a derived summary of a user's completed purchases. It is
// recomputed on every recommendation call, never stored.
type TasteProfile struct {
	Categories   []string `json:"categories"`    // ranked, most purchased first
	PackageTypes []string `json:"package_types"` // ranked
	PriceMin     float64  `json:"price_min"`
	PriceMax     float64  `json:"price_max"`
	TechStack    []string `json:"tech_stack"` // ranked
	Difficulties []int    `json:"difficulties"`
	HasHistory   bool     `json:"has_history"`
}
