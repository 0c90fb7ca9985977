package textfeat

import "github.com/devlink-kr/idea-insight/internal/types"

// Language is the detected language of the analyzed text.
type Language string

const (
	LanguageKorean  Language = "ko"
	LanguageEnglish Language = "en"
)

// CategorySource tags how the categories were produced, making the
// degraded path explicit instead of silently approximate.
type CategorySource string

const (
	SourceAI       CategorySource = "ai"
	SourceFallback CategorySource = "fallback"
)

// TextFeatures is the full analysis result for one title+description pair.
// It is deterministic for identical input on the fallback path, and cached
// by a content hash of the raw input.
type TextFeatures struct {
	Categories          []string       `json:"categories"` // most relevant first, <=3
	CategorySource      CategorySource `json:"category_source"`
	FallbackReason      string         `json:"fallback_reason,omitempty"`
	Keywords            []string       `json:"keywords"` // most frequent first, <=10
	Sentiment           float64        `json:"sentiment"` // [-1,1]
	Language            Language       `json:"language"`
	MarketPotential     types.Level    `json:"market_potential"`
	TechnicalComplexity int            `json:"technical_complexity"` // 1-5
	InnovationScore     float64        `json:"innovation_score"`     // 0-100
}

// categoryResult is the tagged outcome of one categorization attempt.
type categoryResult struct {
	categories []string
	source     CategorySource
	reason     string
}
