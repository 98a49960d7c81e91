package account

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyapyaar/vyapyaar-ai/backend/internal/middleware"
	accountService "github.com/vyapyaar/vyapyaar-ai/backend/internal/service/account"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/store"
	"github.com/vyapyaar/vyapyaar-ai/backend/pkg/utils"
)

func setupRouter(limit func(http.Handler) http.Handler) *chi.Mux {
	handler := New(accountService.NewService(store.NewMemoryStore(), nil, nil), limit, nil)
	r := chi.NewRouter()
	r.Route("/sessions/{sessionID}", handler.RegisterSessionRoutes)
	return r
}

func post(r http.Handler, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestLoginThenProfile(t *testing.T) {
	r := setupRouter(nil)

	resp := post(r, "/sessions/s1/login", loginRequest{Username: "meera", Password: "pw"})
	require.Equal(t, http.StatusOK, resp.Code)

	var login loginResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &login))
	assert.Equal(t, "meera", login.Profile.Username)
	assert.Equal(t, "Namaste meera! Ready to build your dreams?", login.Message)

	req := httptest.NewRequest(http.MethodGet, "/sessions/s1/profile", nil)
	profileResp := httptest.NewRecorder()
	r.ServeHTTP(profileResp, req)
	require.Equal(t, http.StatusOK, profileResp.Code)
	assert.JSONEq(t, `{"username":"meera"}`, profileResp.Body.String())
}

func TestLoginMissingCredentials(t *testing.T) {
	r := setupRouter(nil)

	resp := post(r, "/sessions/s1/login", loginRequest{Username: "meera"})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var body utils.ErrorBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, accountService.ErrMissingCredentials.Error(), body.Error)
}

func TestProfileBeforeLogin(t *testing.T) {
	r := setupRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/sessions/s1/profile", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	require.Equal(t, http.StatusNotFound, resp.Code)

	var body utils.ErrorBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "/", body.Redirect)
}

func TestLoginRateLimited(t *testing.T) {
	limiter := middleware.NewRateLimiter(0.001, 1)
	r := setupRouter(limiter.Middleware)

	first := post(r, "/sessions/s1/login", loginRequest{Username: "meera", Password: "pw"})
	require.Equal(t, http.StatusOK, first.Code)

	second := post(r, "/sessions/s1/login", loginRequest{Username: "meera", Password: "pw"})
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
}
