package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"topup-dashboard/internal/models"
	"topup-dashboard/internal/services"
)

const maxMerchantRows = 25

var merchantTableTemplate = template.Must(template.New("merchantTable").Parse(`
<div id="merchant-content">
<table class="modern-table">
<thead><tr><th>Merchant</th><th>Revenue</th></tr></thead>
<tbody>
{{range .}}<tr>
<td>{{.Merchant}}</td>
<td><strong>{{printf "%.2f" .Revenue}}</strong></td>
</tr>{{end}}
</tbody>
</table>
</div>`))

type SSEHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewSSEHandlers(analytics *services.Analytics, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

func (h *SSEHandlers) renderMerchantTable(data []models.MerchantRevenue) (string, error) {
	if len(data) > maxMerchantRows {
		data = data[:maxMerchantRows]
	}

	var buf strings.Builder
	err := merchantTableTemplate.Execute(&buf, data)
	return buf.String(), err
}

// HandleOverview feeds the three monthly charts: revenue, transaction
// count, and average transaction value.
func (h *SSEHandlers) HandleOverview(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	jsonData, err := json.Marshal(map[string]any{
		"monthlyRevenue":      h.analytics.MonthlyRevenue(),
		"monthlyTransactions": h.analytics.MonthlyTransactions(),
		"monthlyAvgAmount":    h.analytics.MonthlyAvgAmount(),
	})
	if err != nil {
		h.logger.Error("marshal overview data", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	sse.PatchElements(`<div id="overview-content">Monthly charts loaded</div>`)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleMerchants feeds the merchant revenue table plus the purchase
// status and daily revenue charts.
func (h *SSEHandlers) HandleMerchants(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	html, err := h.renderMerchantTable(h.analytics.MerchantRevenue())
	if err != nil {
		h.logger.Error("render merchant table", "error", err)
		return
	}
	sse.PatchElements(html)

	jsonData, err := json.Marshal(map[string]any{
		"statusRevenue": h.analytics.StatusRevenue(),
		"dailyRevenue":  h.analytics.DailyRevenue(),
	})
	if err != nil {
		h.logger.Error("marshal merchant data", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleUsers feeds the gender distribution and monthly new-user
// charts.
func (h *SSEHandlers) HandleUsers(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	jsonData, err := json.Marshal(map[string]any{
		"genderDistribution": h.analytics.GenderDistribution(),
		"monthlyNewUsers":    h.analytics.NewUsersByMonth(),
	})
	if err != nil {
		h.logger.Error("marshal user data", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	sse.PatchElements(`<div id="users-content">User charts loaded</div>`)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleRefreshAll re-feeds every chart in one SSE response.
func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	html, err := h.renderMerchantTable(h.analytics.MerchantRevenue())
	if err != nil {
		h.logger.Error("render merchant table", "error", err)
		return
	}
	sse.PatchElements(html)

	allSignals, err := json.Marshal(map[string]any{
		"monthlyRevenue":      h.analytics.MonthlyRevenue(),
		"monthlyTransactions": h.analytics.MonthlyTransactions(),
		"monthlyAvgAmount":    h.analytics.MonthlyAvgAmount(),
		"statusRevenue":       h.analytics.StatusRevenue(),
		"dailyRevenue":        h.analytics.DailyRevenue(),
		"genderDistribution":  h.analytics.GenderDistribution(),
		"monthlyNewUsers":     h.analytics.NewUsersByMonth(),
	})
	if err != nil {
		h.logger.Error("marshal refresh data", "error", err)
		return
	}
	sse.PatchSignals(allSignals)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
