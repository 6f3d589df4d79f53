package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"topup-dashboard/internal/config"
	"topup-dashboard/internal/middleware"
	"topup-dashboard/internal/observability"
	"topup-dashboard/internal/server"
	"topup-dashboard/internal/services"
	"topup-dashboard/internal/ui/templates"
	"topup-dashboard/internal/workbook"
)

const (
	renderTimeout       = 10 * time.Second
	workbookLoadTimeout = 30 * time.Second
	cacheMaxAge         = "public, max-age=300"
)

func handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	w.Header().Set("Cache-Control", cacheMaxAge)
	if err := templates.Dashboard().Render(ctx, w); err != nil {
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"workbook", cfg.Workbook.Path,
		"target_year", cfg.Workbook.TargetYear,
	)

	analytics := services.NewAnalytics(cfg.Workbook.TargetYear)
	source := workbook.NewXLSXSource(cfg.Workbook, logger)

	ctx, cancel := context.WithTimeout(context.Background(), workbookLoadTimeout)
	defer cancel()

	if err := analytics.Load(ctx, source); err != nil {
		logger.Error("failed to load workbook data", "error", err)
		os.Exit(1)
	}

	templateHandlers := &server.TemplateHandlers{
		Dashboard: handleDashboard,
	}

	srv := server.NewServer(analytics, logger, templateHandlers)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
	)

	handler := middlewareChain(srv)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("shutting down analytics service")
		return nil
	})

	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
