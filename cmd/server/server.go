package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sushrutsadana/SalesChatAgent/internal/config"
	"github.com/sushrutsadana/SalesChatAgent/internal/logger"
)

// creates and configures a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	services, err := InitializeServices(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	rateLimit, err := RateLimitMiddleware(cfg.RateLimit)
	if err != nil {
		services.Store.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		return nil, fmt.Errorf("failed to configure rate limit: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), TraceMiddleware(), RequestLogger(), CORSMiddleware(cfg.CORSAllowedOrigins))

	server := &Server{
		config:   cfg,
		services: services,
		router:   router,
	}

	RegisterRoutes(router, server, rateLimit)

	warmIndex(ctx, services.Chat)

	logger.Info("server initialized",
		"generator", services.LLM.Model(),
		"index_backend", cfg.IndexBackend,
		"top_k", cfg.TopK,
		"rate_limit", cfg.RateLimit,
		"reload_enabled", cfg.AdminToken != "",
	)

	return server, nil
}

const indexWarmTimeout = 30 * time.Second

type indexWarmer interface {
	Warm(ctx context.Context) (int, error)
}

// loads the persisted index at startup; a failure leaves lazy loading on the first chat turn
func warmIndex(ctx context.Context, w indexWarmer) bool {
	ctx, cancel := context.WithTimeout(ctx, indexWarmTimeout)
	defer cancel()

	docs, err := w.Warm(ctx)
	if err != nil {
		logger.Warn("product index not loaded at startup, will retry on first chat", "error", err)
		return false
	}

	logger.Info("product index loaded", "documents", docs)

	return true
}

// releases the cached index and the store connection
func (s *Server) Close() {
	if err := s.services.Chat.Close(); err != nil {
		logger.ErrorErr(err, "failed to close product index")
	}

	if err := s.services.Store.Close(); err != nil {
		logger.ErrorErr(err, "failed to close index store")
	}
}
