package chat

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vyapyaar/vyapyaar-ai/backend/internal/logging"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/model/chat"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/service/assistant"
	chatService "github.com/vyapyaar/vyapyaar-ai/backend/internal/service/chat"
	"github.com/vyapyaar/vyapyaar-ai/backend/pkg/utils"
)

// Handler serves the "start a business" conversation.
type Handler struct {
	chatSvc      *chatService.Service
	assistantSvc *assistant.Service
	logger       *zap.Logger
}

// New creates the chat handler.
func New(chatSvc *chatService.Service, assistantSvc *assistant.Service, logger *zap.Logger) *Handler {
	return &Handler{
		chatSvc:      chatSvc,
		assistantSvc: assistantSvc,
		logger:       logging.OrNop(logger).Named("http.chat"),
	}
}

// RegisterRoutes mounts the session-less routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreateSession)
	r.Post("/respond", h.handleRespond)
	r.Get("/rules", h.handleRules)
}

// RegisterSessionRoutes mounts routes under /sessions/{sessionID}.
func (h *Handler) RegisterSessionRoutes(r chi.Router) {
	r.Post("/messages", h.handleSubmit)
	r.Get("/messages", h.handleTranscript)
}

type messageRequest struct {
	Text string `json:"text"`
}

type sessionResponse struct {
	Session chat.Session `json:"session"`
	Turns   []chat.Turn  `json:"turns"`
}

type submitResponse struct {
	Turn    chat.Turn `json:"turn"`
	Pending bool      `json:"pending"`
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.chatSvc.CreateSession(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	turns, err := h.chatSvc.Transcript(r.Context(), session.ID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, sessionResponse{Session: session, Turns: turns})
}

// handleSubmit accepts typed text and suggestion chips alike.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload messageRequest
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	turn, err := h.chatSvc.Submit(r.Context(), sessionID, payload.Text)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusAccepted, submitResponse{Turn: turn, Pending: h.chatSvc.Pending(sessionID)})
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	turns, err := h.chatSvc.Transcript(r.Context(), sessionID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"turns":   turns,
		"pending": h.chatSvc.Pending(sessionID),
	})
}

// handleRespond runs the responder without a session.
func (h *Handler) handleRespond(w http.ResponseWriter, r *http.Request) {
	var payload messageRequest
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	turn, err := h.assistantSvc.Reply(r.Context(), payload.Text)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, turn)
}

func (h *Handler) handleRules(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.assistantSvc.Responder().Table())
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chatService.ErrEmptyInput), errors.Is(err, assistant.ErrEmptyInput):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, chatService.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, chatService.ErrResponsePending):
		utils.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, chatService.ErrClosed):
		utils.RespondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.logger.Error("chat request failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "internal error")
	}
}
