package prediction

import (
	"testing"

	"github.com/devlink-kr/idea-insight/internal/types"
)

func TestMarketTimingScore(t *testing.T) {
	tests := []struct {
		name     string
		signals  []types.MarketSignal
		expected float64
	}{
		{"no signals defaults to neutral", nil, 50},
		{
			"rising trend with low competition",
			[]types.MarketSignal{
				{Keyword: "ai", TrendDirection: types.TrendRising, CompetitionLevel: types.LevelLow},
			},
			75, // 50 + 20 + 5
		},
		{
			"stable trend medium competition",
			[]types.MarketSignal{
				{Keyword: "saas", TrendDirection: types.TrendStable, CompetitionLevel: types.LevelMedium},
			},
			60, // 50 + 10
		},
		{
			"falling trend with heavy competition",
			[]types.MarketSignal{
				{Keyword: "nft", TrendDirection: types.TrendFalling, CompetitionLevel: types.LevelHigh},
			},
			30, // 50 - 10 - 10
		},
		{
			"large market bonus applied once",
			[]types.MarketSignal{
				{Keyword: "fintech", TrendDirection: types.TrendRising, MarketSizeEstimate: 2_000_000},
				{Keyword: "payments", TrendDirection: types.TrendRising, MarketSizeEstimate: 5_000_000},
			},
			85, // 50 + 20 + 15
		},
		{
			"trend adjustments averaged across signals",
			[]types.MarketSignal{
				{Keyword: "a", TrendDirection: types.TrendRising},
				{Keyword: "b", TrendDirection: types.TrendFalling},
			},
			55, // 50 + (20-10)/2
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := marketTimingScore(tt.signals)
			if result < tt.expected-0.001 || result > tt.expected+0.001 {
				t.Errorf("marketTimingScore() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMarketTimingScoreBounds(t *testing.T) {
	// Pile on enough negative signals to push past the floor.
	var signals []types.MarketSignal
	for i := 0; i < 10; i++ {
		signals = append(signals, types.MarketSignal{
			TrendDirection:   types.TrendFalling,
			CompetitionLevel: types.LevelHigh,
		})
	}

	result := marketTimingScore(signals)
	if result < 0 || result > 100 {
		t.Errorf("score out of range: %v", result)
	}
	if result != 0 {
		t.Errorf("expected floor of 0, got %v", result)
	}
}

func TestTechnicalFeasibilityScore(t *testing.T) {
	tests := []struct {
		name     string
		idea     types.IdeaMetrics
		expected float64
	}{
		{
			"easy idea with no stack",
			types.IdeaMetrics{Difficulty: 1},
			80,
		},
		{
			"hardest difficulty with blockchain",
			types.IdeaMetrics{Difficulty: 5, TechStack: []string{"blockchain"}},
			32, // 80 - 40 - 8
		},
		{
			"mature stack credits",
			types.IdeaMetrics{Difficulty: 2, TechStack: []string{"react", "node"}},
			76, // 80 - 10 + 3 + 3
		},
		{
			"difficulty below range clamped to 1",
			types.IdeaMetrics{Difficulty: 0},
			80,
		},
		{
			"difficulty above range clamped to 5",
			types.IdeaMetrics{Difficulty: 9},
			40,
		},
		{
			"ai matched as whole word only",
			types.IdeaMetrics{Difficulty: 1, TechStack: []string{"email service"}},
			80, // "ai" inside "email" must not count
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := technicalFeasibilityScore(&tt.idea)
			if result < tt.expected-0.001 || result > tt.expected+0.001 {
				t.Errorf("technicalFeasibilityScore() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestTechnicalFeasibilityFloor(t *testing.T) {
	idea := types.IdeaMetrics{
		Difficulty: 5,
		TechStack:  []string{"blockchain", "machine learning", "quantum", "kubernetes", "microservices"},
	}

	result := technicalFeasibilityScore(&idea)
	if result != 20 {
		t.Errorf("expected feasibility floor of 20, got %v", result)
	}
}

func TestTechnicalFeasibilityMonotonicInDifficulty(t *testing.T) {
	prev := 101.0
	for difficulty := 1; difficulty <= 5; difficulty++ {
		idea := types.IdeaMetrics{Difficulty: difficulty}
		score := technicalFeasibilityScore(&idea)
		if score >= prev {
			t.Errorf("difficulty %d score %v not below previous %v", difficulty, score, prev)
		}
		prev = score
	}
}

func TestDeveloperMatchScore(t *testing.T) {
	tests := []struct {
		name     string
		idea     types.IdeaMetrics
		dev      types.DeveloperProfile
		expected float64
	}{
		{
			"empty profile scores zero",
			types.IdeaMetrics{TechStack: []string{"go"}},
			types.DeveloperProfile{SkillScores: map[string]float64{}},
			0,
		},
		{
			"full alignment with strong history",
			types.IdeaMetrics{Category: "fintech", TechStack: []string{"go"}},
			types.DeveloperProfile{
				SkillScores:         map[string]float64{"go": 100},
				SuccessRate:         100,
				CompletionRate:      1.0,
				SpecializationAreas: []string{"fintech"},
			},
			100, // (70+30)*0.4 + 100*0.3 + 100*0.2 + 100*0.1
		},
		{
			"history only, no skill overlap",
			types.IdeaMetrics{TechStack: []string{"rust"}},
			types.DeveloperProfile{
				SkillScores:    map[string]float64{"python": 90},
				SuccessRate:    50,
				CompletionRate: 0.5,
			},
			25, // 0*0.4 + 50*0.3 + 50*0.2
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := developerMatchScore(&tt.idea, &tt.dev)
			if result < tt.expected-0.001 || result > tt.expected+0.001 {
				t.Errorf("developerMatchScore() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestStackAlignment(t *testing.T) {
	skills := map[string]float64{"react": 80, "node": 60}

	tests := []struct {
		name     string
		stack    []string
		expected float64
	}{
		{"empty stack", nil, 0},
		{"no overlap", []string{"rust"}, 0},
		{"full coverage", []string{"react", "node"}, 91}, // 100*0.7 + 70*0.3
		{"half coverage", []string{"react", "rust"}, 59}, // 50*0.7 + 80*0.3
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := stackAlignment(tt.stack, skills)
			if result < tt.expected-0.001 || result > tt.expected+0.001 {
				t.Errorf("stackAlignment(%v) = %v, want %v", tt.stack, result, tt.expected)
			}
		})
	}
}

func TestFundingProbabilityScore(t *testing.T) {
	tests := []struct {
		name     string
		idea     types.IdeaMetrics
		signals  []types.MarketSignal
		expected float64
	}{
		{
			"bland idea keeps the base",
			types.IdeaMetrics{Category: "misc", RevenueModel: "ads"},
			nil,
			40,
		},
		{
			"every bonus clamps at 100",
			types.IdeaMetrics{Category: "fintech", RevenueModel: "subscription"},
			[]types.MarketSignal{{RevenuePotential: types.LevelHigh}},
			100, // 40+25+15+20
		},
		{
			"hot category alone",
			types.IdeaMetrics{Category: "AI", RevenueModel: "ads"},
			nil,
			65,
		},
		{
			"revenue potential bonus applied once",
			types.IdeaMetrics{Category: "misc"},
			[]types.MarketSignal{
				{RevenuePotential: types.LevelHigh},
				{RevenuePotential: types.LevelHigh},
			},
			60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := fundingProbabilityScore(&tt.idea, tt.signals)
			if result < tt.expected-0.001 || result > tt.expected+0.001 {
				t.Errorf("fundingProbabilityScore() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestStackHasTerm(t *testing.T) {
	tests := []struct {
		name     string
		stack    []string
		term     string
		expected bool
	}{
		{"exact entry", []string{"blockchain"}, "blockchain", true},
		{"substring for long terms", []string{"react native"}, "react", true},
		{"short term needs whole word", []string{"email"}, "ai", false},
		{"short term as word", []string{"ai assistant"}, "ai", true},
		{"case insensitive", []string{"Blockchain"}, "blockchain", true},
		{"absent", []string{"python"}, "rust", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stackHasTerm(tt.stack, tt.term); got != tt.expected {
				t.Errorf("stackHasTerm(%v, %q) = %v, want %v", tt.stack, tt.term, got, tt.expected)
			}
		})
	}
}
