package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/engagekit/engage-backend/dto"
	"github.com/engagekit/engage-backend/models"
	"github.com/engagekit/engage-backend/repositories"
	"github.com/engagekit/engage-backend/usecases"
)

const testProperties = `{
	"preload_corpora": {},
	"dynamic_corpora": {},
	"offer_matrix": [
		{"offer_name": "A", "price": 100.0, "payment_method_code": "P", "offer_weight": 2.0}
	]
}`

func testRouter(t *testing.T, strategy models.Strategy) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "properties.json")
	require.NoError(t, os.WriteFile(path, []byte(testProperties), 0o644))

	uc := usecases.Usecases{
		Repositories: repositories.NewRepositories(path),
		Config:       models.EngineConfiguration{Strategy: strategy},
		HttpClient:   http.DefaultClient,
	}

	r := gin.New()
	AddRoutes(r, uc)
	return r
}

func TestGetOfferRecommendations(t *testing.T) {
	r := testRouter(t, models.StrategyBasic)

	params := `{
		"resultcount": 1,
		"prediction": {"type": "multinomial", "probability": 0.77, "label": "A", "response": "Offer A"},
		"features": {}
	}`
	target := "/invocations/offerRecommendations?campaign=camp&customer=1234&params=" +
		url.QueryEscape(params)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ScoringResponseDto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.UUID)
	require.Len(t, resp.FinalResult, 1)
	assert.Equal(t, 1, resp.FinalResult[0].Rank)
	assert.Equal(t, 0.77, resp.FinalResult[0].Result.Score)
	assert.Equal(t, "A", resp.FinalResult[0].Result.Offer)
}

func TestGetOfferRecommendationsMalformedParams(t *testing.T) {
	r := testRouter(t, models.StrategyBasic)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/invocations/offerRecommendations?params="+url.QueryEscape("{not json"), nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOfferRecommendationsInvalidUuid(t *testing.T) {
	r := testRouter(t, models.StrategyBasic)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/invocations/offerRecommendations?params="+url.QueryEscape(`{"uuid": "not-a-uuid"}`), nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOfferRecommendationsInvalidExplore(t *testing.T) {
	r := testRouter(t, models.StrategyBasic)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/invocations/offerRecommendations?params="+url.QueryEscape(`{"explore": 7}`), nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPutOfferRecommendations(t *testing.T) {
	r := testRouter(t, models.StrategyBasic)

	body := `{"uuid": "3f0ff4a9-4b9e-4f6b-b785-35f5dd4ab6c0", "params": {"value": 3}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/invocations/offerRecommendations",
		strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var ack dto.RewardAckDto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
	assert.Equal(t, "3f0ff4a9-4b9e-4f6b-b785-35f5dd4ab6c0", ack.UUID)
	// No rewards business logic configured, so the neutral default applies.
	assert.Equal(t, 1.0, ack.Reward)
	assert.Equal(t, 1.0, ack.LearningReward)
	assert.False(t, ack.LearningForContacts)
	assert.True(t, ack.LearningForResponses)
}

func TestPutOfferRecommendationsMissingUuid(t *testing.T) {
	r := testRouter(t, models.StrategyBasic)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/invocations/offerRecommendations",
		strings.NewReader(`{"params": {}}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLiveness(t *testing.T) {
	r := testRouter(t, models.StrategyBasic)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/liveness", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
