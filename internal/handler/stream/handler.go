package stream

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vyapyaar/vyapyaar-ai/backend/internal/logging"
	chatService "github.com/vyapyaar/vyapyaar-ai/backend/internal/service/chat"
	"github.com/vyapyaar/vyapyaar-ai/backend/pkg/utils"
)

// Handler pushes session events to browsers via Server-Sent Events. The
// "typing" event drives the typing indicator; "turn" carries each turn.
type Handler struct {
	chatSvc   *chatService.Service
	heartbeat time.Duration
	logger    *zap.Logger
}

// New creates a stream handler.
func New(chatSvc *chatService.Service, logger *zap.Logger) *Handler {
	return &Handler{
		chatSvc:   chatSvc,
		heartbeat: 15 * time.Second,
		logger:    logging.OrNop(logger).Named("http.stream"),
	}
}

// RegisterSessionRoutes mounts the stream under /sessions/{sessionID}.
func (h *Handler) RegisterSessionRoutes(r chi.Router) {
	r.Get("/stream", h.handleStream)
}

func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	events, cancel, err := h.chatSvc.Subscribe(sessionID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, chatService.ErrSessionNotFound) {
			status = http.StatusNotFound
		} else if errors.Is(err, chatService.ErrClosed) {
			status = http.StatusServiceUnavailable
		}
		utils.RespondError(w, status, err.Error())
		return
	}
	defer cancel()

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	ctx := r.Context()
	h.logger.Debug("stream opened", zap.String("session", sessionID))

	if err := utils.SendSSEEvent(w, flusher, "status", map[string]any{
		"sessionId": sessionID,
		"pending":   h.chatSvc.Pending(sessionID),
	}); err != nil {
		return
	}

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("stream closed", zap.String("session", sessionID))
			return
		case ev, open := <-events:
			if !open {
				return
			}
			if err := utils.SendSSEEvent(w, flusher, string(ev.Type), ev); err != nil {
				h.logger.Warn("stream write failed", zap.String("session", sessionID), zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := utils.SendSSEComment(w, flusher, "heartbeat"); err != nil {
				return
			}
		}
	}
}
