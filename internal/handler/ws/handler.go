package ws

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vyapyaar/vyapyaar-ai/backend/internal/logging"
	chatService "github.com/vyapyaar/vyapyaar-ai/backend/internal/service/chat"
	"github.com/vyapyaar/vyapyaar-ai/backend/pkg/utils"
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
)

// Handler runs the chat over a WebSocket. Typed text and chip clicks both
// arrive as "text" messages.
type Handler struct {
	chatSvc  *chatService.Service
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// New creates the WebSocket handler.
func New(chatSvc *chatService.Service, logger *zap.Logger) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logging.OrNop(logger).Named("http.ws"),
	}
}

// RegisterSessionRoutes mounts the socket under /sessions/{sessionID}.
func (h *Handler) RegisterSessionRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

type inboundMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// conn serializes writes; gorilla connections allow one concurrent writer.
type conn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *conn) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteJSON(v)
}

func (c *conn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	transcript, err := h.chatSvc.Transcript(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	events, cancelSub, err := h.chatSvc.Subscribe(sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	defer cancelSub()

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", zap.Error(err))
		return
	}
	c := &conn{ws: ws}
	defer ws.Close()

	h.logger.Debug("connection opened", zap.String("session", sessionID))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	ws.SetReadDeadline(time.Now().Add(readTimeout))
	ws.SetPongHandler(func(string) error {
		ws.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	if err := c.writeJSON(outgoingMessage{
		Type:      "connected",
		SessionID: sessionID,
		Data:      map[string]any{"turns": transcript, "pending": h.chatSvc.Pending(sessionID)},
		Timestamp: time.Now().UnixMilli(),
	}); err != nil {
		return
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.writeLoop(ctx, c, events)
	}()

	h.readLoop(ctx, c, sessionID)
	cancel()
	wg.Wait()
}

func (h *Handler) readLoop(ctx context.Context, c *conn, sessionID string) {
	for {
		var msg inboundMessage
		if err := c.ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("read failed", zap.String("session", sessionID), zap.Error(err))
			}
			return
		}
		c.ws.SetReadDeadline(time.Now().Add(readTimeout))

		switch msg.Type {
		case "text":
			if _, err := h.chatSvc.Submit(ctx, sessionID, msg.Text); err != nil {
				h.sendError(c, sessionID, err)
			}
		case "ping":
			c.writeJSON(outgoingMessage{Type: "pong", SessionID: sessionID, Timestamp: time.Now().UnixMilli()})
		default:
			h.sendError(c, sessionID, errors.New("unsupported message type: "+msg.Type))
		}
	}
}

// writeLoop forwards session events and keeps the connection alive.
func (h *Handler) writeLoop(ctx context.Context, c *conn, events <-chan chatService.Event) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, open := <-events:
			if !open {
				c.ws.Close()
				return
			}
			if err := c.writeJSON(outgoingMessage{
				Type:      string(ev.Type),
				SessionID: ev.SessionID,
				Data:      ev,
				Timestamp: time.Now().UnixMilli(),
			}); err != nil {
				c.ws.Close()
				return
			}
		case <-ticker.C:
			if err := c.ping(); err != nil {
				c.ws.Close()
				return
			}
		}
	}
}

func (h *Handler) sendError(c *conn, sessionID string, err error) {
	code := "internal"
	switch {
	case errors.Is(err, chatService.ErrEmptyInput):
		code = "empty_input"
	case errors.Is(err, chatService.ErrResponsePending):
		code = "pending"
	case errors.Is(err, chatService.ErrClosed):
		code = "closed"
	}
	if werr := c.writeJSON(outgoingMessage{
		Type:      "error",
		SessionID: sessionID,
		Data:      map[string]string{"code": code, "message": err.Error()},
		Timestamp: time.Now().UnixMilli(),
	}); werr != nil {
		h.logger.Debug("error write failed", zap.Error(werr))
	}
}
