package textfeat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlink-kr/idea-insight/internal/types"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Language
	}{
		{"plain english", "An automated invoice tracker for freelancers", LanguageEnglish},
		{"plain korean", "프리랜서를 위한 자동 인보이스 추적기", LanguageKorean},
		{"mostly english with a korean word", "A marketplace platform for selling software ideas including 아이디어 listings and more features", LanguageEnglish},
		{"empty", "", LanguageEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detectLanguage(tt.text))
		})
	}
}

func TestExtractEmptyInput(t *testing.T) {
	e := NewExtractor(nil, NewCache(nil))

	features := e.Extract(context.Background(), "", "   ")

	assert.Equal(t, []string{"general"}, features.Categories)
	assert.Equal(t, SourceFallback, features.CategorySource)
	assert.Equal(t, "empty input", features.FallbackReason)
	assert.Empty(t, features.Keywords)
	assert.Equal(t, 0.0, features.Sentiment)
	assert.Equal(t, LanguageEnglish, features.Language)
	assert.Equal(t, types.LevelLow, features.MarketPotential)
	assert.Equal(t, 3, features.TechnicalComplexity)
	assert.Equal(t, 50.0, features.InnovationScore)
}

func TestExtractIdempotent(t *testing.T) {
	cache := NewCache(nil)
	e := NewExtractor(nil, cache)
	ctx := context.Background()

	first := e.Extract(ctx, "Cloud backup", "A cloud backup service with cloud sync for small teams")
	second := e.Extract(ctx, "Cloud backup", "A cloud backup service with cloud sync for small teams")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.Size())

	stats := cache.Stats()
	assert.Equal(t, int64(1), stats["hits"])
}

func TestExtractKeywordsFrequencyOrder(t *testing.T) {
	cache := NewCache(nil)
	e := NewExtractor(nil, cache)

	features := e.Extract(context.Background(), "",
		"cloud backup cloud storage cloud sync backup schedule")

	require.NotEmpty(t, features.Keywords)
	assert.Equal(t, "cloud", features.Keywords[0])
	assert.Equal(t, "backup", features.Keywords[1])
}

func TestStemEnglishMergesInflectedForms(t *testing.T) {
	tests := []struct {
		token    string
		expected string
	}{
		{"deploying", "deploy"},
		{"deployed", "deploy"},
		{"deploy", "deploy"},
		{"services", "servic"},
		{"tools", "tool"},
		{"quickly", "quick"},
		{"ed", "ed"}, // too short to strip
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, stemEnglish(tt.token), "token %q", tt.token)
	}
}

func TestStripParticle(t *testing.T) {
	tests := []struct {
		token    string
		expected string
	}{
		{"플랫폼을", "플랫폼"},
		{"서울에서", "서울"}, // longest particle wins over 에
		{"데이터", "데이터"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, stripParticle(tt.token), "token %q", tt.token)
	}
}

func TestMarketPotential(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected types.Level
	}{
		{"two high potential hits", "an ai assistant for blockchain audits", types.LevelHigh},
		{"one high potential hit", "a saas product for accountants", types.LevelMedium},
		{"two medium potential hits", "an education platform for tutors", types.LevelMedium},
		{"no hits", "a recipe organizer for home cooks", types.LevelLow},
		{"ai not matched inside words", "email maintenance organizer", types.LevelLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lowered := tt.text
			result := marketPotential(lowered, tokenize(lowered))
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestTechnicalComplexity(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"highest bucket wins", "a blockchain api dashboard", 5},
		{"mid bucket", "an api backend with a dashboard", 3},
		{"low bucket", "a static landing template", 1},
		{"default when nothing matches", "a recipe organizer", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lowered := tt.text
			assert.Equal(t, tt.expected, technicalComplexity(lowered, tokenize(lowered)))
		})
	}
}

func TestInnovationScore(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected float64
	}{
		{"baseline", "a recipe organizer", 50},
		{"innovative term", "a novel recipe organizer", 60},
		{"emerging tech pair", "combines ai and blockchain", 70},
		{"single emerging tech no bonus", "uses ai for planning", 50},
		{"framing bonus", "solves the meal planning problem", 65},
		{"everything stacks", "a novel solution combining ai and blockchain", 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lowered := tt.text
			result := innovationScore(lowered, tokenize(lowered))
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSentiment(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		lang     Language
		expected float64
	}{
		{"all positive", "great fast simple", LanguageEnglish, 1},
		{"all negative", "slow broken unreliable", LanguageEnglish, -1},
		{"balanced", "good but slow", LanguageEnglish, 0},
		{"neutral", "table chair window", LanguageEnglish, 0},
		{"korean positive", "좋은 기회", LanguageKorean, 1},
		{"korean negative", "느린 실패", LanguageKorean, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lowered := tt.text
			result := sentiment(lowered, tokenize(lowered), tt.lang)
			assert.InDelta(t, tt.expected, result, 0.001)
		})
	}
}

func TestSentimentBounds(t *testing.T) {
	lowered := "great excellent powerful bad"
	result := sentiment(lowered, tokenize(lowered), LanguageEnglish)
	assert.GreaterOrEqual(t, result, -1.0)
	assert.LessOrEqual(t, result, 1.0)
}
