package monitoring

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.IncrementRequest()
	m.IncrementRequest()
	m.IncrementError()
	m.IncrementAnalyze()
	m.IncrementPrediction()
	m.IncrementRecommendation()
	m.IncrementClick()
	m.IncrementCompletionCall()
	m.IncrementCompletionFallback()
	m.IncrementRateLimitBlock()

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats["request_count"])
	assert.Equal(t, int64(1), stats["error_count"])
	assert.Equal(t, int64(1), stats["analyze_count"])
	assert.Equal(t, int64(1), stats["prediction_count"])
	assert.Equal(t, int64(1), stats["recommendation_count"])
	assert.Equal(t, int64(1), stats["click_count"])
	assert.Equal(t, int64(1), stats["completion_calls"])
	assert.Equal(t, int64(1), stats["completion_fallbacks"])
	assert.Equal(t, int64(1), stats["rate_limit_blocks"])
}

func TestMetricsConcurrentIncrements(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncrementRequest()
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), m.GetStats()["request_count"])
}

func TestMiddlewareCountsRequestsAndErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m := NewMetrics()
	r := gin.New()
	r.Use(Middleware(m, slog.Default()))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	for _, path := range []string{"/ok", "/bad"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats["request_count"])
	assert.Equal(t, int64(1), stats["error_count"])
}
