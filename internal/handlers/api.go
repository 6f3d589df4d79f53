package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"topup-dashboard/internal/errors"
	"topup-dashboard/internal/services"
)

const maxTransactionRows = 100

var cacheHeaders = map[string]string{
	"Cache-Control": "public, max-age=300",
}

type APIHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewAPIHandlers(analytics *services.Analytics, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

func (h *APIHandlers) HandleMonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.analytics.MonthlyRevenue(), cacheHeaders)
}

func (h *APIHandlers) HandleMonthlyTransactions(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.analytics.MonthlyTransactions(), cacheHeaders)
}

func (h *APIHandlers) HandleMonthlyAvgAmount(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.analytics.MonthlyAvgAmount(), cacheHeaders)
}

func (h *APIHandlers) HandleMerchantRevenue(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.analytics.MerchantRevenue(), cacheHeaders)
}

func (h *APIHandlers) HandleStatusRevenue(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.analytics.StatusRevenue(), cacheHeaders)
}

func (h *APIHandlers) HandleDailyRevenue(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.analytics.DailyRevenue(), cacheHeaders)
}

func (h *APIHandlers) HandleGenderDistribution(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.analytics.GenderDistribution(), cacheHeaders)
}

func (h *APIHandlers) HandleNewUsers(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.analytics.NewUsersByMonth(), cacheHeaders)
}

func (h *APIHandlers) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.analytics.Classified(maxTransactionRows), cacheHeaders)
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.analytics.Stats())
}
