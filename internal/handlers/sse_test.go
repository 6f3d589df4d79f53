package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"topup-dashboard/internal/models"
)

func TestNewSSEHandlers(t *testing.T) {
	analytics := createTestAnalytics()
	logger := testLogger()

	handlers := NewSSEHandlers(analytics, logger)

	if handlers == nil {
		t.Fatal("NewSSEHandlers() returned nil")
	}
	if handlers.analytics != analytics {
		t.Error("NewSSEHandlers() should set analytics field")
	}
	if handlers.logger != logger {
		t.Error("NewSSEHandlers() should set logger field")
	}
}

func TestSSEHandlers_renderMerchantTable(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testLogger())

	testData := []models.MerchantRevenue{
		{Merchant: "Mobile Topup", Revenue: 999.99},
		{Merchant: "Games", Revenue: 59.98},
	}

	html, err := handlers.renderMerchantTable(testData)
	if err != nil {
		t.Fatalf("renderMerchantTable() failed: %v", err)
	}

	expectedContent := []string{
		`<table class="modern-table">`,
		"<th>Merchant</th>",
		"<th>Revenue</th>",
		"Mobile Topup",
		"999.99",
		"Games",
		"59.98",
	}

	for _, content := range expectedContent {
		if !strings.Contains(html, content) {
			t.Errorf("expected HTML to contain %q", content)
		}
	}
}

func TestSSEHandlers_renderMerchantTable_LargeDataset(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testLogger())

	testData := make([]models.MerchantRevenue, maxMerchantRows+20)
	for i := range testData {
		testData[i] = models.MerchantRevenue{Merchant: "Merchant", Revenue: float64(i)}
	}

	html, err := handlers.renderMerchantTable(testData)
	if err != nil {
		t.Fatalf("renderMerchantTable() failed: %v", err)
	}

	rowCount := strings.Count(html, "<tr>") - 1 // header row
	if rowCount > maxMerchantRows {
		t.Errorf("expected max %d rows, got %d", maxMerchantRows, rowCount)
	}
}

func assertSSEResponse(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Errorf("expected content-type to contain 'text/event-stream', got %q", ct)
	}

	body := w.Body.String()
	if body == "" {
		t.Error("expected SSE response body")
	}
	return body
}

func TestSSEHandlers_HandleOverview(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/sse/overview", nil)
	w := httptest.NewRecorder()
	handlers.HandleOverview(w, req)

	body := assertSSEResponse(t, w)

	for _, signal := range []string{"monthlyRevenue", "monthlyTransactions", "monthlyAvgAmount"} {
		if !strings.Contains(body, signal) {
			t.Errorf("expected body to contain signal %q", signal)
		}
	}
	if !strings.Contains(body, "overview-content") {
		t.Error("expected body to patch overview-content element")
	}
}

func TestSSEHandlers_HandleMerchants(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/sse/merchants", nil)
	w := httptest.NewRecorder()
	handlers.HandleMerchants(w, req)

	body := assertSSEResponse(t, w)

	if !strings.Contains(body, "merchant-content") {
		t.Error("expected body to patch merchant-content element")
	}
	if !strings.Contains(body, "Mobile Topup") {
		t.Error("expected merchant table to contain merchant name")
	}
	for _, signal := range []string{"statusRevenue", "dailyRevenue"} {
		if !strings.Contains(body, signal) {
			t.Errorf("expected body to contain signal %q", signal)
		}
	}
}

func TestSSEHandlers_HandleUsers(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/sse/users", nil)
	w := httptest.NewRecorder()
	handlers.HandleUsers(w, req)

	body := assertSSEResponse(t, w)

	for _, signal := range []string{"genderDistribution", "monthlyNewUsers"} {
		if !strings.Contains(body, signal) {
			t.Errorf("expected body to contain signal %q", signal)
		}
	}
}

func TestSSEHandlers_HandleRefreshAll(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/sse/refresh-all", nil)
	w := httptest.NewRecorder()
	handlers.HandleRefreshAll(w, req)

	body := assertSSEResponse(t, w)

	signals := []string{
		"monthlyRevenue", "monthlyTransactions", "monthlyAvgAmount",
		"statusRevenue", "dailyRevenue", "genderDistribution", "monthlyNewUsers",
	}
	for _, signal := range signals {
		if !strings.Contains(body, signal) {
			t.Errorf("expected body to contain signal %q", signal)
		}
	}
	if !strings.Contains(body, "merchant-content") {
		t.Error("expected body to patch merchant-content element")
	}
}
