package account

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vyapyaar/vyapyaar-ai/backend/internal/logging"
	accountService "github.com/vyapyaar/vyapyaar-ai/backend/internal/service/account"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/store"
	"github.com/vyapyaar/vyapyaar-ai/backend/pkg/utils"
)

// Handler serves the demo login.
type Handler struct {
	accounts *accountService.Service
	limit    func(http.Handler) http.Handler
	logger   *zap.Logger
}

// New creates the account handler. limit wraps the login route and may be nil.
func New(accounts *accountService.Service, limit func(http.Handler) http.Handler, logger *zap.Logger) *Handler {
	return &Handler{accounts: accounts, limit: limit, logger: logging.OrNop(logger).Named("http.account")}
}

// RegisterSessionRoutes mounts routes under /sessions/{sessionID}.
func (h *Handler) RegisterSessionRoutes(r chi.Router) {
	login := http.Handler(http.HandlerFunc(h.handleLogin))
	if h.limit != nil {
		login = h.limit(login)
	}
	r.Method(http.MethodPost, "/login", login)
	r.Get("/profile", h.handleProfile)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Profile accountService.Profile `json:"profile"`
	Message string                 `json:"message"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload loginRequest
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.accounts.Login(r.Context(), sessionID, payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, accountService.ErrMissingCredentials) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("login failed", zap.String("session", sessionID), zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, loginResponse{Profile: profile, Message: profile.Greeting()})
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	profile, err := h.accounts.Profile(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondRedirect(w, http.StatusNotFound, "not logged in", "/")
			return
		}
		h.logger.Error("profile lookup failed", zap.String("session", sessionID), zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, profile)
}
