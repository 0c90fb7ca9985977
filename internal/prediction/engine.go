package prediction

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/devlink-kr/idea-insight/internal/store"
	"github.com/devlink-kr/idea-insight/internal/textfeat"
	"github.com/devlink-kr/idea-insight/internal/types"
)

// Store is the slice of the persistent store the engine reads.
type Store interface {
	GetIdea(ctx context.Context, id string) (*types.IdeaMetrics, error)
	GetDeveloperProfile(ctx context.Context, userID string) (*types.DeveloperProfile, error)
	GetMarketSignals(ctx context.Context, keywords []string) ([]types.MarketSignal, error)
}

// Analyzer provides idea keywords. Satisfied by textfeat.Extractor.
type Analyzer interface {
	Extract(ctx context.Context, title, text string) textfeat.TextFeatures
}

// Publisher carries the append-only history write off the response path.
type Publisher interface {
	PublishPrediction(rec store.PredictionRecord)
}

// storeReadTimeout bounds every synchronous repository read. A stalled
// read fails the deadline and takes the documented degrade path instead of
// blocking the response.
const storeReadTimeout = 5 * time.Second

// Engine produces success predictions for (idea, developer) pairs. It is
// stateless; every call reads fresh snapshots.
type Engine struct {
	store     Store
	analyzer  Analyzer
	publisher Publisher
}

// NewEngine creates a prediction engine. The publisher may be nil, in which
// case history rows are not recorded.
func NewEngine(s Store, analyzer Analyzer, publisher Publisher) *Engine {
	return &Engine{store: s, analyzer: analyzer, publisher: publisher}
}

// Predict computes a success prediction. A missing idea or developer fails
// with a not-found error; every other upstream failure degrades the
// affected sub-score to its documented neutral default.
func (e *Engine) Predict(ctx context.Context, ideaID, developerID string) (*SuccessPrediction, error) {
	ideaCtx, cancelIdea := context.WithTimeout(ctx, storeReadTimeout)
	idea, err := e.store.GetIdea(ideaCtx, ideaID)
	cancelIdea()
	if err != nil {
		return nil, err
	}

	devCtx, cancelDev := context.WithTimeout(ctx, storeReadTimeout)
	dev, err := e.store.GetDeveloperProfile(devCtx, developerID)
	cancelDev()
	if err != nil {
		return nil, err
	}

	// Keyword derivation and the signal fetch feed only the market-side
	// sub-scores; their failure modes degrade rather than abort.
	features := e.analyzer.Extract(ctx, idea.Title, idea.Description)

	signalCtx, cancelSignals := context.WithTimeout(ctx, storeReadTimeout)
	signals, err := e.store.GetMarketSignals(signalCtx, features.Keywords)
	cancelSignals()
	if err != nil {
		slog.Info("Market signal fetch failed, scoring without signals",
			"idea_id", ideaID,
			"cause", err)
		signals = nil
	}

	// The four sub-scores read independent data slices and write nothing
	// shared, so they run concurrently purely for latency.
	var scores SubScores
	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		scores.MarketTiming = marketTimingScore(signals)
	}()
	go func() {
		defer wg.Done()
		scores.TechnicalFeasibility = technicalFeasibilityScore(idea)
	}()
	go func() {
		defer wg.Done()
		scores.DeveloperMatch = developerMatchScore(idea, dev)
	}()
	go func() {
		defer wg.Done()
		scores.FundingProbability = fundingProbabilityScore(idea, signals)
	}()
	wg.Wait()

	composite := scores.MarketTiming*weightMarketTiming +
		scores.TechnicalFeasibility*weightTechnicalFeasibility +
		scores.DeveloperMatch*weightDeveloperMatch +
		scores.FundingProbability*weightFundingProbability

	result := &SuccessPrediction{
		IdeaID:             ideaID,
		DeveloperID:        developerID,
		PredictionScore:    composite,
		SubScores:          scores,
		ConfidenceInterval: confidenceInterval(idea, dev, signals),
		Factors:            buildFactors(idea, dev, signals, scores),
		Recommendation:     recommendationText(composite),
		CreatedAt:          time.Now(),
	}

	e.record(result)

	slog.Info("Prediction computed",
		"idea_id", ideaID,
		"developer_id", developerID,
		"score", result.PredictionScore,
		"confidence", result.ConfidenceInterval)

	return result, nil
}

// record hands the history row to the async boundary. An encode failure is
// logged only; the prediction has already been returned.
func (e *Engine) record(p *SuccessPrediction) {
	if e.publisher == nil {
		return
	}

	factorsPayload, err := json.Marshal(p.Factors)
	if err != nil {
		slog.Error("Failed to encode prediction factors", "error", err)
		factorsPayload = []byte("{}")
	}

	e.publisher.PublishPrediction(store.PredictionRecord{
		ID:                   store.NewPredictionID(),
		IdeaID:               p.IdeaID,
		DeveloperID:          p.DeveloperID,
		PredictionScore:      p.PredictionScore,
		MarketTiming:         p.SubScores.MarketTiming,
		TechnicalFeasibility: p.SubScores.TechnicalFeasibility,
		DeveloperMatch:       p.SubScores.DeveloperMatch,
		FundingProbability:   p.SubScores.FundingProbability,
		ConfidenceInterval:   p.ConfidenceInterval,
		Factors:              string(factorsPayload),
		Recommendation:       p.Recommendation,
		CreatedAt:            p.CreatedAt,
	})
}
