package prediction

import "github.com/devlink-kr/idea-insight/internal/types"

// confidenceInterval starts at 100 and deducts for every missing evidence
// source, flooring at 50. A prediction is always produced; this value says
// how much of its usual input was actually available.
func confidenceInterval(idea *types.IdeaMetrics, dev *types.DeveloperProfile, signals []types.MarketSignal) float64 {
	confidence := 100.0

	if dev.GithubUsername == "" {
		confidence -= 10
	}
	if len(dev.SkillScores) < 3 {
		confidence -= 15
	}
	if len(signals) == 0 {
		confidence -= 20
	}
	if len(idea.TechStack) == 0 {
		confidence -= 10
	}
	if dev.CompletionRate == 0 {
		confidence -= 15
	}

	if confidence < 50 {
		confidence = 50
	}
	return confidence
}

// buildFactors derives the SWOT explanation. Every rule is deterministic
// and appends at most one string, so the output is directly testable.
func buildFactors(idea *types.IdeaMetrics, dev *types.DeveloperProfile, signals []types.MarketSignal, scores SubScores) Factors {
	factors := Factors{
		Strengths:     []string{},
		Weaknesses:    []string{},
		Opportunities: []string{},
		Risks:         []string{},
	}

	if dev.SuccessRate > 80 {
		factors.Strengths = append(factors.Strengths, "strong track record of successful projects")
	}
	if dev.CompletionRate >= 0.9 {
		factors.Strengths = append(factors.Strengths, "consistently completes projects")
	}
	if scores.DeveloperMatch >= 70 {
		factors.Strengths = append(factors.Strengths, "skills closely match the required tech stack")
	}

	if idea.Difficulty >= 4 {
		factors.Weaknesses = append(factors.Weaknesses, "high implementation difficulty")
	}
	if len(dev.SkillScores) < 3 {
		factors.Weaknesses = append(factors.Weaknesses, "limited recorded skill history")
	}
	if dev.CompletionRate > 0 && dev.CompletionRate < 0.5 {
		factors.Weaknesses = append(factors.Weaknesses, "low project completion rate")
	}

	for _, s := range signals {
		if s.TrendDirection == types.TrendRising {
			factors.Opportunities = append(factors.Opportunities, "market interest is trending upward")
			break
		}
	}
	for _, s := range signals {
		if s.MarketSizeEstimate > largeMarketThreshold {
			factors.Opportunities = append(factors.Opportunities, "large addressable market")
			break
		}
	}
	for _, s := range signals {
		if s.RevenuePotential == types.LevelHigh {
			factors.Opportunities = append(factors.Opportunities, "high revenue potential reported for this market")
			break
		}
	}

	for _, s := range signals {
		if s.CompetitionLevel == types.LevelHigh {
			factors.Risks = append(factors.Risks, "heavy competition in this market")
			break
		}
	}
	for _, s := range signals {
		if s.TrendDirection == types.TrendFalling {
			factors.Risks = append(factors.Risks, "market interest is declining")
			break
		}
	}
	if len(idea.TechStack) == 0 {
		factors.Risks = append(factors.Risks, "technology stack is unspecified")
	}

	return factors
}

// recommendationText maps the composite score to one fixed explanatory
// sentence per band.
func recommendationText(score float64) string {
	switch {
	case score >= 80:
		return "highly recommended: market conditions and developer fit both point to a strong chance of success"
	case score >= 65:
		return "recommended: the overall outlook is favorable, with a few factors worth monitoring"
	case score >= 50:
		return "proceed with caution: success is plausible but depends on addressing the identified weaknesses"
	default:
		return "not recommended: current market and fit indicators suggest a low chance of success"
	}
}
