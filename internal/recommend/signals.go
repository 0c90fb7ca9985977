package recommend

import "github.com/devlink-kr/idea-insight/internal/types"

// popularityPoolSize bounds the popularity signal to the most-purchased
// ideas.
const popularityPoolSize = 100

// collaborativeSignal scores ideas by how many peers purchased them. Peers
// are users who bought ideas in the taste profile's top categories; each
// peer contributes 1 point per idea they purchased.
func collaborativeSignal(peerPurchases []types.PurchaseRecord) map[string]float64 {
	byUser := make(map[string]map[string]struct{})
	for _, p := range peerPurchases {
		ideas, ok := byUser[p.UserID]
		if !ok {
			ideas = make(map[string]struct{})
			byUser[p.UserID] = ideas
		}
		ideas[p.IdeaID] = struct{}{}
	}

	scores := make(map[string]float64)
	for _, ideas := range byUser {
		for ideaID := range ideas {
			scores[ideaID]++
		}
	}

	return scores
}

// contentSignal awards fixed points for each taste-profile attribute an
// idea matches: 40 category, 20 package type, 20 price window, up to 15
// for technology overlap (3 per shared technology) and 5 for a matching
// difficulty level.
func contentSignal(ideas []types.IdeaMetrics, profile TasteProfile) map[string]float64 {
	scores := make(map[string]float64, len(ideas))

	for _, idea := range ideas {
		score := 0.0

		if profile.hasCategory(idea.Category) {
			score += 40
		}
		if profile.hasPackageType(idea.PackageType) {
			score += 20
		}
		if profile.inPriceWindow(idea.Price) {
			score += 20
		}

		techPoints := float64(profile.techOverlap(idea.TechStack)) * 3
		if techPoints > 15 {
			techPoints = 15
		}
		score += techPoints

		if profile.hasDifficulty(idea.Difficulty) {
			score += 5
		}

		if score > 0 {
			scores[idea.ID] = score
		}
	}

	return scores
}

// popularitySignal normalizes view and purchase counts independently to
// [0,1] against the observed maximum and blends them 30/70, scaled to
// [0,100].
func popularitySignal(ideas []types.IdeaMetrics) map[string]float64 {
	maxViews, maxPurchases := 0, 0
	for _, idea := range ideas {
		if idea.ViewCount > maxViews {
			maxViews = idea.ViewCount
		}
		if idea.PurchaseCount > maxPurchases {
			maxPurchases = idea.PurchaseCount
		}
	}

	scores := make(map[string]float64, len(ideas))
	for _, idea := range ideas {
		views, purchases := 0.0, 0.0
		if maxViews > 0 {
			views = float64(idea.ViewCount) / float64(maxViews)
		}
		if maxPurchases > 0 {
			purchases = float64(idea.PurchaseCount) / float64(maxPurchases)
		}

		score := (0.3*views + 0.7*purchases) * 100
		if score > 0 {
			scores[idea.ID] = score
		}
	}

	return scores
}
