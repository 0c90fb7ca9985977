package prediction

import (
	"strings"

	"github.com/devlink-kr/idea-insight/internal/types"
)

// complexTechTerms cost 8 feasibility points each when present in the
// idea's tech stack.
var complexTechTerms = []string{
	"blockchain", "machine learning", "ai", "quantum", "ar", "vr",
	"kubernetes", "microservices", "distributed systems",
}

// matureTechTerms add 3 feasibility points each.
var matureTechTerms = []string{
	"react", "nextjs", "node", "python", "javascript", "typescript",
}

// highPotentialCategories add 25 funding points.
var highPotentialCategories = []string{
	"ai", "artificial intelligence", "fintech", "healthcare", "blockchain",
	"saas", "education",
}

// strongRevenueModels add 15 funding points.
var strongRevenueModels = []string{
	"subscription", "saas", "marketplace", "freemium",
}

const largeMarketThreshold = 1_000_000

// marketTimingScore starts at 50, averages the per-signal trend adjustment,
// subtracts the summed competition penalty (low competition is
// score-positive) and rewards a large market. No signals means the neutral
// default of 50.
func marketTimingScore(signals []types.MarketSignal) float64 {
	if len(signals) == 0 {
		return 50
	}

	score := 50.0

	trendTotal := 0.0
	for _, s := range signals {
		switch s.TrendDirection {
		case types.TrendRising:
			trendTotal += 20
		case types.TrendStable:
			trendTotal += 10
		case types.TrendFalling:
			trendTotal -= 10
		}
	}
	score += trendTotal / float64(len(signals))

	competitionPenalty := 0.0
	for _, s := range signals {
		switch s.CompetitionLevel {
		case types.LevelLow:
			competitionPenalty -= 5
		case types.LevelHigh:
			competitionPenalty += 10
		}
	}
	score -= competitionPenalty

	for _, s := range signals {
		if s.MarketSizeEstimate > largeMarketThreshold {
			score += 15
			break
		}
	}

	return clamp(score, 0, 100)
}

// technicalFeasibilityScore starts at 80 and penalizes declared difficulty
// and complex technology choices, crediting mature stacks. Clamped to
// [20,100] so even the hardest idea keeps a nonzero feasibility.
func technicalFeasibilityScore(idea *types.IdeaMetrics) float64 {
	score := 80.0

	difficulty := idea.Difficulty
	if difficulty < 1 {
		difficulty = 1
	}
	if difficulty > 5 {
		difficulty = 5
	}
	score -= float64(difficulty-1) * 10

	for _, term := range complexTechTerms {
		if stackHasTerm(idea.TechStack, term) {
			score -= 8
		}
	}

	for _, term := range matureTechTerms {
		if stackHasTerm(idea.TechStack, term) {
			score += 3
		}
	}

	return clamp(score, 20, 100)
}

// developerMatchScore is the weighted blend of tech-stack alignment,
// historical success, completion rate and specialization overlap. A
// developer with no history scores low but valid.
func developerMatchScore(idea *types.IdeaMetrics, dev *types.DeveloperProfile) float64 {
	alignment := stackAlignment(idea.TechStack, dev.SkillScores)

	specialization := 0.0
	if specializationOverlap(idea.Category, dev.SpecializationAreas) {
		specialization = 100
	}

	score := alignment*0.4 +
		dev.SuccessRate*0.3 +
		dev.CompletionRate*100*0.2 +
		specialization*0.1

	return clamp(score, 0, 100)
}

// stackAlignment scores how well the developer's recorded skills cover the
// idea's technologies: 70% weight on coverage, 30% on the average matched
// skill level.
func stackAlignment(techStack []string, skills map[string]float64) float64 {
	if len(techStack) == 0 || len(skills) == 0 {
		return 0
	}

	matched := 0
	skillTotal := 0.0
	for _, tech := range techStack {
		if level, ok := matchSkill(tech, skills); ok {
			matched++
			skillTotal += level
		}
	}

	if matched == 0 {
		return 0
	}

	fraction := float64(matched) / float64(len(techStack))
	avgSkill := skillTotal / float64(matched)

	return fraction*100*0.7 + avgSkill*0.3
}

// matchSkill finds an exact or substring match for a technology in the
// skill map.
func matchSkill(tech string, skills map[string]float64) (float64, bool) {
	tech = strings.ToLower(strings.TrimSpace(tech))
	if tech == "" {
		return 0, false
	}

	best := 0.0
	found := false
	for name, level := range skills {
		name = strings.ToLower(name)
		if name == tech || strings.Contains(name, tech) || strings.Contains(tech, name) {
			if !found || level > best {
				best = level
			}
			found = true
		}
	}

	return best, found
}

func specializationOverlap(category string, areas []string) bool {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return false
	}

	for _, area := range areas {
		area = strings.ToLower(strings.TrimSpace(area))
		if area == "" {
			continue
		}
		if area == category || strings.Contains(area, category) || strings.Contains(category, area) {
			return true
		}
	}
	return false
}

// fundingProbabilityScore starts at 40 and rewards hot categories, strong
// revenue models and high reported revenue potential. Floor of 10 keeps a
// residual probability for any idea.
func fundingProbabilityScore(idea *types.IdeaMetrics, signals []types.MarketSignal) float64 {
	score := 40.0

	category := strings.ToLower(idea.Category)
	for _, hot := range highPotentialCategories {
		if category == hot {
			score += 25
			break
		}
	}

	revenueModel := strings.ToLower(idea.RevenueModel)
	for _, strong := range strongRevenueModels {
		if revenueModel == strong {
			score += 15
			break
		}
	}

	for _, s := range signals {
		if s.RevenuePotential == types.LevelHigh {
			score += 20
			break
		}
	}

	return clamp(score, 10, 100)
}

// stackHasTerm reports whether a technology term appears in the stack.
// Two-letter terms ("ai", "ar", "vr") must match a whole word so "ai"
// does not hit "email".
func stackHasTerm(stack []string, term string) bool {
	for _, entry := range stack {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == term {
			return true
		}
		if len(term) > 2 && strings.Contains(entry, term) {
			return true
		}
		for _, word := range strings.Fields(entry) {
			if word == term {
				return true
			}
		}
	}
	return false
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
