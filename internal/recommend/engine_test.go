package recommend

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlink-kr/idea-insight/internal/store"
	"github.com/devlink-kr/idea-insight/internal/types"
)

type fakeStore struct {
	purchases    []types.PurchaseRecord
	purchasesErr error
	peers        []types.PurchaseRecord
	peersErr     error
	active       []types.IdeaMetrics
	activeErr    error
	top          []types.IdeaMetrics
	topErr       error
}

func (f *fakeStore) GetCompletedPurchases(ctx context.Context, userID string) ([]types.PurchaseRecord, error) {
	return f.purchases, f.purchasesErr
}

func (f *fakeStore) GetPurchasesByCategories(ctx context.Context, categories []string, excludeUserID string) ([]types.PurchaseRecord, error) {
	return f.peers, f.peersErr
}

func (f *fakeStore) GetActiveApprovedIdeas(ctx context.Context, excludeIDs []string) ([]types.IdeaMetrics, error) {
	return f.active, f.activeErr
}

func (f *fakeStore) GetTopPurchasedIdeas(ctx context.Context, limit int) ([]types.IdeaMetrics, error) {
	return f.top, f.topErr
}

type capturePublisher struct {
	clicks []store.ClickEvent
}

func (p *capturePublisher) PublishClick(ev store.ClickEvent) {
	p.clicks = append(p.clicks, ev)
}

func TestRecommendRanksBySignalBlend(t *testing.T) {
	st := &fakeStore{
		purchases: []types.PurchaseRecord{
			{UserID: "me", IdeaID: "owned", Category: "ai", PackageType: "mvp", Price: 100, Difficulty: 3},
		},
		peers: []types.PurchaseRecord{
			{UserID: "u1", IdeaID: "i1"},
			{UserID: "u2", IdeaID: "i1"},
		},
		active: []types.IdeaMetrics{
			{ID: "i1", Category: "ai", Price: 100, Difficulty: 3},
			{ID: "i2", Category: "other", Price: 999, Difficulty: 5},
		},
		top: []types.IdeaMetrics{
			{ID: "i2", ViewCount: 100, PurchaseCount: 10},
		},
	}
	engine := NewEngine(st, nil)

	results, err := engine.Recommend(context.Background(), "me", 10, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// i1: collaborative 2, content 40+20+5. i2: popularity 100.
	assert.Equal(t, "i1", results[0].IdeaID)
	assert.InDelta(t, 0.4*2+0.4*65, results[0].Score, 0.001)
	assert.Equal(t, "i2", results[1].IdeaID)
	assert.InDelta(t, 0.2*100, results[1].Score, 0.001)

	assert.Contains(t, results[0].Reasons, "similar users showed interest")
	assert.Contains(t, results[0].Reasons, "matches your preferred category")
	assert.Contains(t, results[1].Reasons, "popular idea")
}

func TestRecommendExcludesPurchasedAndRequested(t *testing.T) {
	st := &fakeStore{
		purchases: []types.PurchaseRecord{
			{UserID: "me", IdeaID: "owned", Category: "ai", Price: 10, Difficulty: 1},
		},
		active: []types.IdeaMetrics{
			{ID: "owned", Category: "ai", Price: 10, Difficulty: 1},
			{ID: "banned", Category: "ai", Price: 10, Difficulty: 1},
			{ID: "fresh", Category: "ai", Price: 10, Difficulty: 1},
		},
	}
	engine := NewEngine(st, nil)

	results, err := engine.Recommend(context.Background(), "me", 10, []string{"banned"})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "fresh", results[0].IdeaID)
}

func TestRecommendLimitDefaultsAndCaps(t *testing.T) {
	active := make([]types.IdeaMetrics, 60)
	for i := range active {
		active[i] = types.IdeaMetrics{ID: string(rune('a'+i/26)) + string(rune('a'+i%26)), Category: "ai", Price: 10, Difficulty: 1}
	}
	st := &fakeStore{
		purchases: []types.PurchaseRecord{
			{UserID: "me", IdeaID: "owned", Category: "ai", Price: 10, Difficulty: 1},
		},
		active: active,
	}
	engine := NewEngine(st, nil)

	results, err := engine.Recommend(context.Background(), "me", 0, nil)
	require.NoError(t, err)
	assert.Len(t, results, 10)

	results, err = engine.Recommend(context.Background(), "me", 500, nil)
	require.NoError(t, err)
	assert.Len(t, results, 50)
}

func TestRecommendColdStartFallsBackToPopular(t *testing.T) {
	// Counts of zero keep every signal empty, forcing the fallback list.
	st := &fakeStore{
		top: []types.IdeaMetrics{
			{ID: "hot"},
			{ID: "warm"},
		},
	}
	engine := NewEngine(st, nil)

	results, err := engine.Recommend(context.Background(), "new-user", 10, nil)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "hot", results[0].IdeaID)
	assert.Equal(t, []string{"popular idea"}, results[0].Reasons)
}

func TestRecommendSignalFailuresDegrade(t *testing.T) {
	st := &fakeStore{
		purchasesErr: errors.New("db down"),
		peersErr:     errors.New("db down"),
		activeErr:    errors.New("db down"),
		top: []types.IdeaMetrics{
			{ID: "hot", ViewCount: 10, PurchaseCount: 5},
		},
	}
	engine := NewEngine(st, nil)

	results, err := engine.Recommend(context.Background(), "me", 10, nil)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "hot", results[0].IdeaID)
}

func TestRecommendDeterministicTieBreak(t *testing.T) {
	st := &fakeStore{
		purchases: []types.PurchaseRecord{
			{UserID: "me", IdeaID: "owned", Category: "ai", Price: 10, Difficulty: 1},
		},
		active: []types.IdeaMetrics{
			{ID: "b", Category: "ai", Price: 10, Difficulty: 1},
			{ID: "a", Category: "ai", Price: 10, Difficulty: 1},
		},
	}
	engine := NewEngine(st, nil)

	results, err := engine.Recommend(context.Background(), "me", 10, nil)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].IdeaID)
	assert.Equal(t, "b", results[1].IdeaID)
}

type deadlineStore struct {
	fakeStore
	mu        sync.Mutex
	deadlined map[string]bool
}

func (s *deadlineStore) note(read string, ctx context.Context) {
	_, ok := ctx.Deadline()
	s.mu.Lock()
	s.deadlined[read] = ok
	s.mu.Unlock()
}

func (s *deadlineStore) GetCompletedPurchases(ctx context.Context, userID string) ([]types.PurchaseRecord, error) {
	s.note("history", ctx)
	return s.fakeStore.GetCompletedPurchases(ctx, userID)
}

func (s *deadlineStore) GetPurchasesByCategories(ctx context.Context, categories []string, excludeUserID string) ([]types.PurchaseRecord, error) {
	s.note("peers", ctx)
	return s.fakeStore.GetPurchasesByCategories(ctx, categories, excludeUserID)
}

func (s *deadlineStore) GetActiveApprovedIdeas(ctx context.Context, excludeIDs []string) ([]types.IdeaMetrics, error) {
	s.note("active", ctx)
	return s.fakeStore.GetActiveApprovedIdeas(ctx, excludeIDs)
}

func (s *deadlineStore) GetTopPurchasedIdeas(ctx context.Context, limit int) ([]types.IdeaMetrics, error) {
	s.note("top", ctx)
	return s.fakeStore.GetTopPurchasedIdeas(ctx, limit)
}

func TestRecommendStoreReadsCarryDeadline(t *testing.T) {
	st := &deadlineStore{
		fakeStore: fakeStore{
			purchases: []types.PurchaseRecord{
				{UserID: "me", IdeaID: "owned", Category: "ai", Price: 10, Difficulty: 1},
			},
			active: []types.IdeaMetrics{
				{ID: "fresh", Category: "ai", Price: 10, Difficulty: 1},
			},
		},
		deadlined: map[string]bool{},
	}
	engine := NewEngine(st, nil)

	_, err := engine.Recommend(context.Background(), "me", 10, nil)
	require.NoError(t, err)

	// Every signal read runs under its own deadline even when the
	// caller's context has none.
	for _, read := range []string{"history", "peers", "active", "top"} {
		assert.True(t, st.deadlined[read], "%s read had no deadline", read)
	}
}

func TestRecordClick(t *testing.T) {
	pub := &capturePublisher{}
	engine := NewEngine(&fakeStore{}, pub)

	engine.RecordClick("u1", "i1", 4)

	require.Len(t, pub.clicks, 1)
	assert.Equal(t, "u1", pub.clicks[0].UserID)
	assert.Equal(t, "i1", pub.clicks[0].IdeaID)
	assert.Equal(t, 4, pub.clicks[0].Position)
	assert.NotEmpty(t, pub.clicks[0].ID)
}

func TestRecordClickNilPublisher(t *testing.T) {
	engine := NewEngine(&fakeStore{}, nil)
	assert.NotPanics(t, func() {
		engine.RecordClick("u1", "i1", 0)
	})
}
