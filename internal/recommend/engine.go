package recommend

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/devlink-kr/idea-insight/internal/store"
	"github.com/devlink-kr/idea-insight/internal/types"
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

// storeReadTimeout bounds every synchronous repository read. A stalled
// read fails the deadline and the affected signal is skipped instead of
// blocking the response.
const storeReadTimeout = 5 * time.Second

// Store is the slice of the persistent store the engine reads.
type Store interface {
	GetCompletedPurchases(ctx context.Context, userID string) ([]types.PurchaseRecord, error)
	GetPurchasesByCategories(ctx context.Context, categories []string, excludeUserID string) ([]types.PurchaseRecord, error)
	GetActiveApprovedIdeas(ctx context.Context, excludeIDs []string) ([]types.IdeaMetrics, error)
	GetTopPurchasedIdeas(ctx context.Context, limit int) ([]types.IdeaMetrics, error)
}

// Publisher carries click impressions off the response path.
type Publisher interface {
	PublishClick(ev store.ClickEvent)
}

// Engine ranks ideas for a user from three independent signals. Stateless;
// the taste profile is recomputed from purchase history on every call.
type Engine struct {
	store     Store
	publisher Publisher
}

// NewEngine creates a recommendation engine. The publisher may be nil, in
// which case clicks are not recorded.
func NewEngine(s Store, publisher Publisher) *Engine {
	return &Engine{store: s, publisher: publisher}
}

// Recommend returns at most limit ranked recommendations for the user.
// Signal failures degrade to an empty contribution; an empty candidate set
// falls back to the globally most-purchased approved ideas.
func (e *Engine) Recommend(ctx context.Context, userID string, limit int, excludeIDs []string) ([]RecommendationScore, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	historyCtx, cancelHistory := context.WithTimeout(ctx, storeReadTimeout)
	purchases, err := e.store.GetCompletedPurchases(historyCtx, userID)
	cancelHistory()
	if err != nil {
		slog.Info("Purchase history fetch failed, recommending without history",
			"user_id", userID,
			"cause", err)
		purchases = nil
	}

	profile := BuildTasteProfile(purchases)

	excluded := make(map[string]struct{}, len(excludeIDs)+len(purchases))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}
	// Already-purchased ideas are never recommended back.
	for _, p := range purchases {
		excluded[p.IdeaID] = struct{}{}
	}

	// The three signals read independent data slices; they run
	// concurrently for latency only.
	var collaborative, content, popularity map[string]float64
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		readCtx, cancel := context.WithTimeout(ctx, storeReadTimeout)
		defer cancel()
		peers, err := e.store.GetPurchasesByCategories(readCtx, profile.TopCategories(3), userID)
		if err != nil {
			slog.Info("Peer purchase fetch failed, skipping collaborative signal",
				"user_id", userID, "cause", err)
			return
		}
		collaborative = collaborativeSignal(peers)
	}()

	go func() {
		defer wg.Done()
		readCtx, cancel := context.WithTimeout(ctx, storeReadTimeout)
		defer cancel()
		ideas, err := e.store.GetActiveApprovedIdeas(readCtx, excludeIDs)
		if err != nil {
			slog.Info("Approved idea fetch failed, skipping content signal",
				"user_id", userID, "cause", err)
			return
		}
		content = contentSignal(ideas, profile)
	}()

	go func() {
		defer wg.Done()
		readCtx, cancel := context.WithTimeout(ctx, storeReadTimeout)
		defer cancel()
		ideas, err := e.store.GetTopPurchasedIdeas(readCtx, popularityPoolSize)
		if err != nil {
			slog.Info("Top idea fetch failed, skipping popularity signal",
				"user_id", userID, "cause", err)
			return
		}
		popularity = popularitySignal(ideas)
	}()

	wg.Wait()

	ranked := combine(collaborative, content, popularity, excluded)

	if len(ranked) == 0 {
		return e.fallback(ctx, limit, excluded)
	}

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	slog.Info("Recommendations computed",
		"user_id", userID,
		"count", len(ranked),
		"has_history", profile.HasHistory)

	return ranked, nil
}

// combine merges the signal maps over the union of candidate ids, scores
// each candidate and returns them ranked. The combined value is a ranking
// key, not a probability.
func combine(collaborative, content, popularity map[string]float64, excluded map[string]struct{}) []RecommendationScore {
	union := make(map[string]struct{})
	for id := range collaborative {
		union[id] = struct{}{}
	}
	for id := range content {
		union[id] = struct{}{}
	}
	for id := range popularity {
		union[id] = struct{}{}
	}

	ranked := make([]RecommendationScore, 0, len(union))
	for id := range union {
		if _, skip := excluded[id]; skip {
			continue
		}

		collab := collaborative[id]
		cont := content[id]
		pop := popularity[id]

		ranked = append(ranked, RecommendationScore{
			IdeaID:  id,
			Score:   weightCollaborative*collab + weightContent*cont + weightPopularity*pop,
			Reasons: reasons(collab, cont, pop),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].IdeaID < ranked[j].IdeaID
	})

	return ranked
}

// reasons maps signal strengths to at most maxReasons human-readable
// strings, with one generic default when nothing applies.
func reasons(collaborative, content, popularity float64) []string {
	out := make([]string, 0, maxReasons)

	if collaborative > 0 {
		out = append(out, "similar users showed interest")
	}
	if content > 40 {
		out = append(out, "matches your preferred category")
	}
	if content > 20 {
		out = append(out, "matches your preferred package type")
	}
	if popularity > 50 {
		out = append(out, "popular idea")
	}

	if len(out) == 0 {
		out = append(out, "recommended for you")
	}
	if len(out) > maxReasons {
		out = out[:maxReasons]
	}
	return out
}

// fallback serves the cold-start case: globally most-purchased approved
// ideas, each tagged as popular. Never empty while approved ideas exist.
func (e *Engine) fallback(ctx context.Context, limit int, excluded map[string]struct{}) ([]RecommendationScore, error) {
	readCtx, cancel := context.WithTimeout(ctx, storeReadTimeout)
	defer cancel()

	ideas, err := e.store.GetTopPurchasedIdeas(readCtx, popularityPoolSize)
	if err != nil {
		return nil, err
	}

	ranked := make([]RecommendationScore, 0, limit)
	for _, idea := range ideas {
		if _, skip := excluded[idea.ID]; skip {
			continue
		}
		ranked = append(ranked, RecommendationScore{
			IdeaID:  idea.ID,
			Score:   float64(idea.PurchaseCount),
			Reasons: []string{"popular idea"},
		})
		if len(ranked) == limit {
			break
		}
	}

	return ranked, nil
}

// RecordClick publishes one impression-position click event. Fire and
// forget; it never blocks or fails the caller.
func (e *Engine) RecordClick(userID, ideaID string, position int) {
	if e.publisher == nil {
		return
	}
	e.publisher.PublishClick(store.NewClickEvent(userID, ideaID, position, time.Now()))
}
