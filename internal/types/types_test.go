package types

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindJSON(t *testing.T, body string, out interface{}) error {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c.ShouldBindJSON(out)
}

func TestAnalyzeRequestBindsTitleOnly(t *testing.T) {
	var req AnalyzeRequest
	require.NoError(t, bindJSON(t, `{"title":"AI resume screener"}`, &req))

	assert.Equal(t, "AI resume screener", req.Title)
	assert.Empty(t, req.Text)
}

func TestAnalyzeRequestBindsEmptyBody(t *testing.T) {
	// A blank pair binds cleanly; the handler rejects it afterwards.
	var req AnalyzeRequest
	assert.NoError(t, bindJSON(t, `{}`, &req))
}

func TestPredictRequestRequiresIDs(t *testing.T) {
	var req PredictRequest
	assert.Error(t, bindJSON(t, `{"idea_id":"i1"}`, &req))
	assert.NoError(t, bindJSON(t, `{"idea_id":"i1","developer_id":"d1"}`, &req))
}

func TestRecommendRequestRequiresUserID(t *testing.T) {
	var req RecommendRequest
	assert.Error(t, bindJSON(t, `{"limit":5}`, &req))
	assert.NoError(t, bindJSON(t, `{"user_id":"u1"}`, &req))
}
