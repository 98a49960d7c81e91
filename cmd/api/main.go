package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/vyapyaar/vyapyaar-ai/backend/internal/analysis/intent"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/config"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/handler"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/logging"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/metrics"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/middleware"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/model/rule"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/service/account"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/service/assistant"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/service/chat"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/service/guide"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck
	zap.ReplaceGlobals(logger)

	if envErr != nil {
		logger.Info("no .env file loaded, using process environment", zap.Error(envErr))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	table, err := rule.LoadOrSeed(cfg.Chat.RulesFile)
	if err != nil {
		return err
	}
	match, err := intent.ParseMatcher(cfg.Chat.MatchMode)
	if err != nil {
		return err
	}
	responder, err := intent.New(table, intent.WithMatcher(match))
	if err != nil {
		return err
	}
	logger.Info("responder ready",
		zap.Int("rules", len(table.Rules)),
		zap.String("rulesFile", cfg.Chat.RulesFile),
		zap.String("matchMode", cfg.Chat.MatchMode))

	assistantSvc, err := assistant.NewService(ctx, responder, m, logger)
	if err != nil {
		return err
	}

	chatSvc := chat.NewService(assistantSvc, chat.Config{
		TypingDelay: cfg.Chat.TypingDelay,
		MaxTurns:    cfg.Chat.MaxTurns,
	}, m, logger)
	defer chatSvc.Close()

	kv, closeStore, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	router := handler.NewRouter(handler.Deps{
		Chat:         chatSvc,
		Assistant:    assistantSvc,
		Accounts:     account.NewService(kv, m, logger),
		Guides:       guide.NewService(kv, m, logger),
		Registry:     registry,
		LoginLimiter: middleware.NewRateLimiter(cfg.Login.RPS, cfg.Login.Burst),
		CORSOrigins:  cfg.Server.CORSOrigins,
		Logger:       logger,
	})

	srv := newServer(cfg.Server.Addr, router, chatSvc)

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return err
	}
	logger.Info("Vyapyaar backend listening", zap.String("addr", ln.Addr().String()))
	return runServer(ctx, srv, ln)
}

// newServer builds the HTTP server. Shutdown closes the chat service so
// open streams end instead of holding Shutdown until its deadline.
func newServer(addr string, router http.Handler, chatSvc *chat.Service) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	srv.RegisterOnShutdown(chatSvc.Close)
	return srv
}

func openStore(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (store.Store, func(), error) {
	if !cfg.RedisEnabled() {
		logger.Info("session store: memory")
		return store.NewMemoryStore(), func() {}, nil
	}

	redisStore := store.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, store.WithTTL(cfg.TTL))
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisStore.Ping(pingCtx); err != nil {
		_ = redisStore.Close()
		return nil, nil, err
	}

	logger.Info("session store: redis", zap.String("addr", cfg.RedisAddr), zap.Int("db", cfg.RedisDB))
	return redisStore, func() {
		if err := redisStore.Close(); err != nil {
			logger.Warn("closing redis store", zap.Error(err))
		}
	}, nil
}

func runServer(ctx context.Context, srv *http.Server, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		shutdownErr := srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		if shutdownErr != nil {
			return fmt.Errorf("shutdown: %w", shutdownErr)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
