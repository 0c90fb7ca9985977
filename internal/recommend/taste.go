package recommend

import (
	"math"
	"sort"
	"strings"

	"github.com/devlink-kr/idea-insight/internal/types"
)

// BuildTasteProfile derives a taste profile from completed purchases. With
// no history it returns the documented defaults: no category or price
// preference and difficulty levels 1-3.
func BuildTasteProfile(purchases []types.PurchaseRecord) TasteProfile {
	if len(purchases) == 0 {
		return TasteProfile{
			Categories:   []string{},
			PackageTypes: []string{},
			TechStack:    []string{},
			Difficulties: []int{1, 2, 3},
		}
	}

	categories := make(map[string]int)
	packageTypes := make(map[string]int)
	technologies := make(map[string]int)

	priceTotal := 0.0
	difficultyTotal := 0

	for _, p := range purchases {
		if cat := strings.ToLower(strings.TrimSpace(p.Category)); cat != "" {
			categories[cat]++
		}
		if pkg := strings.ToLower(strings.TrimSpace(p.PackageType)); pkg != "" {
			packageTypes[pkg]++
		}
		for _, tech := range p.TechStack {
			if tech = strings.ToLower(strings.TrimSpace(tech)); tech != "" {
				technologies[tech]++
			}
		}
		priceTotal += p.Price
		difficultyTotal += p.Difficulty
	}

	avgPrice := priceTotal / float64(len(purchases))
	meanDifficulty := int(math.Round(float64(difficultyTotal) / float64(len(purchases))))
	if meanDifficulty < 1 {
		meanDifficulty = 1
	}
	if meanDifficulty > 5 {
		meanDifficulty = 5
	}

	return TasteProfile{
		Categories:   rankByCount(categories),
		PackageTypes: rankByCount(packageTypes),
		PriceMin:     avgPrice * 0.5,
		PriceMax:     avgPrice * 1.5,
		TechStack:    rankByCount(technologies),
		Difficulties: []int{meanDifficulty},
		HasHistory:   true,
	}
}

// rankByCount orders keys by descending count, ties alphabetically for a
// stable profile.
func rankByCount(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	return keys
}

// TopCategories returns the profile's top n categories.
func (p TasteProfile) TopCategories(n int) []string {
	if len(p.Categories) <= n {
		return p.Categories
	}
	return p.Categories[:n]
}

func (p TasteProfile) hasCategory(category string) bool {
	category = strings.ToLower(strings.TrimSpace(category))
	for _, c := range p.Categories {
		if c == category {
			return true
		}
	}
	return false
}

func (p TasteProfile) hasPackageType(packageType string) bool {
	packageType = strings.ToLower(strings.TrimSpace(packageType))
	for _, t := range p.PackageTypes {
		if t == packageType {
			return true
		}
	}
	return false
}

func (p TasteProfile) inPriceWindow(price float64) bool {
	if !p.HasHistory {
		return false
	}
	return price >= p.PriceMin && price <= p.PriceMax
}

func (p TasteProfile) hasDifficulty(difficulty int) bool {
	for _, d := range p.Difficulties {
		if d == difficulty {
			return true
		}
	}
	return false
}

func (p TasteProfile) techOverlap(techStack []string) int {
	overlap := 0
	for _, tech := range techStack {
		tech = strings.ToLower(strings.TrimSpace(tech))
		for _, preferred := range p.TechStack {
			if tech == preferred {
				overlap++
				break
			}
		}
	}
	return overlap
}
