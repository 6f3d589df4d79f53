package server

import (
	"log/slog"
	"net/http"

	"topup-dashboard/internal/handlers"
	"topup-dashboard/internal/services"
)

type Server struct {
	analytics   *services.Analytics
	mux         *http.ServeMux
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

func NewServer(analytics *services.Analytics, logger *slog.Logger, templateHandlers *TemplateHandlers) *Server {
	s := &Server{
		analytics:   analytics,
		mux:         http.NewServeMux(),
		logger:      logger,
		apiHandlers: handlers.NewAPIHandlers(analytics, logger),
		sseHandlers: handlers.NewSSEHandlers(analytics, logger),
	}
	s.setupRoutes(templateHandlers)
	return s
}

func (s *Server) setupRoutes(templateHandlers *TemplateHandlers) {
	// Dashboard routes
	s.mux.HandleFunc("GET /", templateHandlers.Dashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints, one per aggregate view
	s.mux.HandleFunc("GET /api/monthly-revenue", s.apiHandlers.HandleMonthlyRevenue)
	s.mux.HandleFunc("GET /api/monthly-transactions", s.apiHandlers.HandleMonthlyTransactions)
	s.mux.HandleFunc("GET /api/monthly-avg-amount", s.apiHandlers.HandleMonthlyAvgAmount)
	s.mux.HandleFunc("GET /api/merchant-revenue", s.apiHandlers.HandleMerchantRevenue)
	s.mux.HandleFunc("GET /api/status-revenue", s.apiHandlers.HandleStatusRevenue)
	s.mux.HandleFunc("GET /api/daily-revenue", s.apiHandlers.HandleDailyRevenue)
	s.mux.HandleFunc("GET /api/gender-distribution", s.apiHandlers.HandleGenderDistribution)
	s.mux.HandleFunc("GET /api/new-users", s.apiHandlers.HandleNewUsers)
	s.mux.HandleFunc("GET /api/transactions", s.apiHandlers.HandleTransactions)

	// Datastar SSE endpoints feeding the chart grid
	s.mux.HandleFunc("GET /sse/overview", s.sseHandlers.HandleOverview)
	s.mux.HandleFunc("GET /sse/merchants", s.sseHandlers.HandleMerchants)
	s.mux.HandleFunc("GET /sse/users", s.sseHandlers.HandleUsers)
	s.mux.HandleFunc("GET /sse/refresh-all", s.sseHandlers.HandleRefreshAll)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
