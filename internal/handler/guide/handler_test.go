package guide

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	guideService "github.com/vyapyaar/vyapyaar-ai/backend/internal/service/guide"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/store"
	"github.com/vyapyaar/vyapyaar-ai/backend/pkg/utils"
)

func setupRouter() *chi.Mux {
	handler := New(guideService.NewService(store.NewMemoryStore(), nil, nil), nil)
	r := chi.NewRouter()
	r.Route("/sessions/{sessionID}", handler.RegisterSessionRoutes)
	return r
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func product() guideService.ProductData {
	return guideService.ProductData{
		Category:    "Handicrafts",
		ProductName: "Terracotta lamp",
		CostPrice:   "401",
		Description: "Hand painted",
		Platform:    "Instagram",
	}
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) utils.ErrorBody {
	t.Helper()
	var body utils.ErrorBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body
}

func TestGuideWithoutProductRedirects(t *testing.T) {
	r := setupRouter()

	resp := do(r, http.MethodGet, "/sessions/s1/guide", nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, ProductFormPath, decodeError(t, resp).Redirect)
}

func TestSaveProductAndBuildGuide(t *testing.T) {
	r := setupRouter()

	saved := do(r, http.MethodPut, "/sessions/s1/product", product())
	require.Equal(t, http.StatusOK, saved.Code)

	got := do(r, http.MethodGet, "/sessions/s1/product", nil)
	require.Equal(t, http.StatusOK, got.Code)
	var data guideService.ProductData
	require.NoError(t, json.Unmarshal(got.Body.Bytes(), &data))
	assert.Equal(t, product(), data)

	resp := do(r, http.MethodGet, "/sessions/s1/guide", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var g guideService.Guide
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &g))
	assert.Equal(t, int64(1003), g.Pricing.Suggested)
	assert.Equal(t, int64(602), g.Pricing.Profit)
	assert.Len(t, g.Steps, 5)
}

func TestGuideMarkdown(t *testing.T) {
	r := setupRouter()
	require.Equal(t, http.StatusOK, do(r, http.MethodPut, "/sessions/s1/product", product()).Code)

	resp := do(r, http.MethodGet, "/sessions/s1/guide?format=markdown", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, resp.Body.String(), "₹1,003")
}

func TestSaveProductValidation(t *testing.T) {
	r := setupRouter()

	missing := product()
	missing.Platform = ""
	resp := do(r, http.MethodPut, "/sessions/s1/product", missing)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "platform", decodeError(t, resp).Field)

	badCost := product()
	badCost.CostPrice = "-5"
	resp = do(r, http.MethodPut, "/sessions/s1/product", badCost)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "costPrice", decodeError(t, resp).Field)

	hugeCost := product()
	hugeCost.CostPrice = "9223372036854775807"
	resp = do(r, http.MethodPut, "/sessions/s1/product", hugeCost)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "costPrice", decodeError(t, resp).Field)
}
