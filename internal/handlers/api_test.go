package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"topup-dashboard/internal/models"
	"topup-dashboard/internal/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func createTestAnalytics() *services.Analytics {
	jan15 := time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)
	jan10 := time.Date(2020, 1, 10, 0, 0, 0, 0, time.UTC)
	feb15 := time.Date(2020, 2, 15, 0, 0, 0, 0, time.UTC)
	rev10 := 10.0
	rev20 := 20.0

	classified := []models.ClassifiedTransaction{
		{
			EnrichedTransaction: models.EnrichedTransaction{
				OrderID:        "O1",
				UserID:         "U1",
				MerchantName:   "Mobile Topup",
				Date:           &jan15,
				Amount:         100,
				PurchaseStatus: "Standard",
				Revenue:        &rev10,
			},
			Gender:        models.GenderFemale,
			Location:      "HCMC",
			FirstTranDate: &jan10,
			UserType:      models.UserTypeNew,
		},
		{
			EnrichedTransaction: models.EnrichedTransaction{
				OrderID:        "O2",
				UserID:         "U1",
				MerchantName:   "Mobile Topup",
				Date:           &feb15,
				Amount:         200,
				PurchaseStatus: "Promotion",
				Revenue:        &rev20,
			},
			Gender:        models.GenderFemale,
			Location:      "HCMC",
			FirstTranDate: &jan10,
			UserType:      models.UserTypeCurrent,
		},
	}
	users := []models.User{
		{UserID: "U1", Age: 25, Gender: models.GenderFemale, Location: "HCMC", FirstTranDate: &jan10},
	}

	a := services.NewAnalytics(2020)
	a.SetData(classified, users)
	return a
}

func decodeSuccess(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var response map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["success"] != true {
		t.Errorf("expected success=true, got %v", response["success"])
	}
	return response
}

func TestAPIHandlers_AggregateEndpoints(t *testing.T) {
	h := NewAPIHandlers(createTestAnalytics(), testLogger())

	tests := []struct {
		name     string
		handler  http.HandlerFunc
		path     string
		wantRows int
	}{
		{name: "monthly revenue", handler: h.HandleMonthlyRevenue, path: "/api/monthly-revenue", wantRows: 2},
		{name: "monthly transactions", handler: h.HandleMonthlyTransactions, path: "/api/monthly-transactions", wantRows: 2},
		{name: "monthly avg amount", handler: h.HandleMonthlyAvgAmount, path: "/api/monthly-avg-amount", wantRows: 2},
		{name: "merchant revenue", handler: h.HandleMerchantRevenue, path: "/api/merchant-revenue", wantRows: 1},
		{name: "status revenue", handler: h.HandleStatusRevenue, path: "/api/status-revenue", wantRows: 2},
		{name: "daily revenue", handler: h.HandleDailyRevenue, path: "/api/daily-revenue", wantRows: 1},
		{name: "gender distribution", handler: h.HandleGenderDistribution, path: "/api/gender-distribution", wantRows: 1},
		{name: "new users", handler: h.HandleNewUsers, path: "/api/new-users", wantRows: 1},
		{name: "transactions", handler: h.HandleTransactions, path: "/api/transactions", wantRows: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			tt.handler(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
			}
			if cc := w.Header().Get("Cache-Control"); cc != "public, max-age=300" {
				t.Errorf("expected cache header, got %q", cc)
			}

			response := decodeSuccess(t, w)
			data, ok := response["data"].([]any)
			if !ok {
				t.Fatalf("expected data array, got %T", response["data"])
			}
			if len(data) != tt.wantRows {
				t.Errorf("expected %d rows, got %d", tt.wantRows, len(data))
			}
		})
	}
}

func TestAPIHandlers_MonthlyRevenueValues(t *testing.T) {
	h := NewAPIHandlers(createTestAnalytics(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/monthly-revenue", nil)
	w := httptest.NewRecorder()
	h.HandleMonthlyRevenue(w, req)

	response := decodeSuccess(t, w)
	data := response["data"].([]any)

	first := data[0].(map[string]any)
	if first["month"] != "2020-01" {
		t.Errorf("expected first month 2020-01, got %v", first["month"])
	}
	if first["revenue"].(float64) != 10 {
		t.Errorf("expected January revenue 10, got %v", first["revenue"])
	}
}

func TestAPIHandlers_HandleHealth(t *testing.T) {
	h := NewAPIHandlers(createTestAnalytics(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.HandleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	response := decodeSuccess(t, w)
	data := response["data"].(map[string]any)
	if data["status"] != "healthy" {
		t.Errorf("expected healthy status, got %v", data["status"])
	}
}

func TestAPIHandlers_HandleStats(t *testing.T) {
	h := NewAPIHandlers(createTestAnalytics(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	w := httptest.NewRecorder()
	h.HandleStats(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	response := decodeSuccess(t, w)
	data := response["data"].(map[string]any)
	if data["record_count"].(float64) != 2 {
		t.Errorf("expected record_count 2, got %v", data["record_count"])
	}
	if data["target_year"].(float64) != 2020 {
		t.Errorf("expected target_year 2020, got %v", data["target_year"])
	}
}
