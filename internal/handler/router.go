package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vyapyaar/vyapyaar-ai/backend/internal/handler/account"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/handler/chat"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/handler/guide"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/handler/stream"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/handler/ws"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/logging"
	middlewarePkg "github.com/vyapyaar/vyapyaar-ai/backend/internal/middleware"
	accountService "github.com/vyapyaar/vyapyaar-ai/backend/internal/service/account"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/service/assistant"
	chatService "github.com/vyapyaar/vyapyaar-ai/backend/internal/service/chat"
	guideService "github.com/vyapyaar/vyapyaar-ai/backend/internal/service/guide"
	"github.com/vyapyaar/vyapyaar-ai/backend/pkg/utils"
)

// Deps lists what the router needs. Registry and LoginLimiter are optional.
type Deps struct {
	Chat         *chatService.Service
	Assistant    *assistant.Service
	Accounts     *accountService.Service
	Guides       *guideService.Service
	Registry     *prometheus.Registry
	LoginLimiter *middlewarePkg.RateLimiter
	CORSOrigins  []string
	Logger       *zap.Logger
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	logger := logging.OrNop(deps.Logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(deps.CORSOrigins))

	var limit func(http.Handler) http.Handler
	if deps.LoginLimiter != nil {
		limit = deps.LoginLimiter.Middleware
	}

	chatHandler := chat.New(deps.Chat, deps.Assistant, logger)
	streamHandler := stream.New(deps.Chat, logger)
	wsHandler := ws.New(deps.Chat, logger)
	accountHandler := account.New(deps.Accounts, limit, logger)
	guideHandler := guide.New(deps.Guides, logger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if deps.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)

		api.Route("/sessions/{sessionID}", func(s chi.Router) {
			s.Use(requireSession(deps.Chat))
			chatHandler.RegisterSessionRoutes(s)
			streamHandler.RegisterSessionRoutes(s)
			wsHandler.RegisterSessionRoutes(s)
			accountHandler.RegisterSessionRoutes(s)
			guideHandler.RegisterSessionRoutes(s)
		})
	})

	return r
}

// requireSession answers 404 for identifiers the chat service does not know.
func requireSession(chatSvc *chatService.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err := chatSvc.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
			if errors.Is(err, chatService.ErrSessionNotFound) {
				utils.RespondError(w, http.StatusNotFound, err.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
