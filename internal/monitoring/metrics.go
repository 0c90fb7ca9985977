package monitoring

import (
	"sync/atomic"
	"time"
)

// Metrics holds process-level counters for the scoring core.
type Metrics struct {
	RequestCount        int64
	ErrorCount          int64
	AnalyzeCount        int64
	PredictionCount     int64
	RecommendationCount int64
	ClickCount          int64
	CompletionCalls     int64
	CompletionFallbacks int64
	RateLimitBlocks     int64
	StartTime           time.Time
}

// NewMetrics creates a new metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{StartTime: time.Now()}
}

// IncrementRequest increments the request count.
func (m *Metrics) IncrementRequest() {
	atomic.AddInt64(&m.RequestCount, 1)
}

// IncrementError increments the error count.
func (m *Metrics) IncrementError() {
	atomic.AddInt64(&m.ErrorCount, 1)
}

// IncrementAnalyze counts one text analysis.
func (m *Metrics) IncrementAnalyze() {
	atomic.AddInt64(&m.AnalyzeCount, 1)
}

// IncrementPrediction counts one computed prediction.
func (m *Metrics) IncrementPrediction() {
	atomic.AddInt64(&m.PredictionCount, 1)
}

// IncrementRecommendation counts one recommendation response.
func (m *Metrics) IncrementRecommendation() {
	atomic.AddInt64(&m.RecommendationCount, 1)
}

// IncrementClick counts one recorded click impression.
func (m *Metrics) IncrementClick() {
	atomic.AddInt64(&m.ClickCount, 1)
}

// IncrementCompletionCall counts one text-completion collaborator call.
func (m *Metrics) IncrementCompletionCall() {
	atomic.AddInt64(&m.CompletionCalls, 1)
}

// IncrementCompletionFallback counts one categorization fallback.
func (m *Metrics) IncrementCompletionFallback() {
	atomic.AddInt64(&m.CompletionFallbacks, 1)
}

// IncrementRateLimitBlock counts one rate-limited request.
func (m *Metrics) IncrementRateLimitBlock() {
	atomic.AddInt64(&m.RateLimitBlocks, 1)
}

// GetStats returns a snapshot of all counters.
func (m *Metrics) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"request_count":        atomic.LoadInt64(&m.RequestCount),
		"error_count":          atomic.LoadInt64(&m.ErrorCount),
		"analyze_count":        atomic.LoadInt64(&m.AnalyzeCount),
		"prediction_count":     atomic.LoadInt64(&m.PredictionCount),
		"recommendation_count": atomic.LoadInt64(&m.RecommendationCount),
		"click_count":          atomic.LoadInt64(&m.ClickCount),
		"completion_calls":     atomic.LoadInt64(&m.CompletionCalls),
		"completion_fallbacks": atomic.LoadInt64(&m.CompletionFallbacks),
		"rate_limit_blocks":    atomic.LoadInt64(&m.RateLimitBlocks),
		"uptime_seconds":       int64(time.Since(m.StartTime).Seconds()),
	}
}
