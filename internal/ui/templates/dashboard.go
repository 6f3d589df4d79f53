// Package templates holds the dashboard page. The page is a static
// chart grid; every chart pulls its data from the SSE endpoints via
// datastar signals, so the component itself carries no data.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Dashboard returns the chart-grid page component.
func Dashboard() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, dashboardPage)
		return err
	})
}

const dashboardPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Topup Analytics 2020</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@main/bundles/datastar.js"></script>
<script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
<style>
body { background: #111; color: #eee; font-family: system-ui, sans-serif; margin: 0; padding: 1rem; }
h1 { font-size: 1.4rem; }
h2 { font-size: 1rem; color: #aaa; }
.grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 1rem; }
.grid-2 { display: grid; grid-template-columns: repeat(2, 1fr); gap: 1rem; }
.card { background: #1b1b1b; border-radius: 8px; padding: 1rem; }
.modern-table { width: 100%; border-collapse: collapse; font-size: 0.85rem; }
.modern-table th, .modern-table td { padding: 0.4rem 0.6rem; text-align: left; border-bottom: 1px solid #333; }
canvas { max-height: 300px; }
</style>
</head>
<body data-on-load="@get('/sse/overview'); @get('/sse/merchants'); @get('/sse/users')">
<h1>Topup Analytics 2020</h1>

<div class="grid">
<div class="card"><h2>Total Revenue per Month</h2><canvas id="chart-monthly-revenue"></canvas></div>
<div class="card"><h2>Monthly Transactions Count</h2><canvas id="chart-monthly-transactions"></canvas></div>
<div class="card"><h2>Average Transaction Value per Month</h2><canvas id="chart-monthly-avg"></canvas></div>
</div>

<div class="grid" style="margin-top:1rem">
<div class="card"><h2>Revenue by Merchant</h2><div id="merchant-content">Loading…</div></div>
<div class="card"><h2>Revenue by Purchase Status</h2><canvas id="chart-status"></canvas></div>
<div class="card"><h2>Daily Revenue Trends</h2><canvas id="chart-daily"></canvas></div>
</div>

<div class="grid-2" style="margin-top:1rem">
<div class="card"><h2>User Demographics</h2><canvas id="chart-gender"></canvas></div>
<div class="card"><h2>New Users per Month</h2><canvas id="chart-new-users"></canvas></div>
</div>

<div id="overview-content" hidden></div>
<div id="users-content" hidden></div>

<script>
const charts = {};
function bar(id, labels, values, label) {
  if (charts[id]) charts[id].destroy();
  charts[id] = new Chart(document.getElementById(id), {
    type: 'bar',
    data: { labels: labels, datasets: [{ label: label, data: values }] },
    options: { plugins: { legend: { display: false } } }
  });
}
function pie(id, labels, values, label) {
  if (charts[id]) charts[id].destroy();
  charts[id] = new Chart(document.getElementById(id), {
    type: 'doughnut',
    data: { labels: labels, datasets: [{ label: label, data: values }] }
  });
}
document.addEventListener('datastar-signal-patch', (evt) => {
  const s = evt.detail || {};
  if (s.monthlyRevenue) bar('chart-monthly-revenue', s.monthlyRevenue.map(r => r.month), s.monthlyRevenue.map(r => r.revenue), 'Revenue');
  if (s.monthlyTransactions) bar('chart-monthly-transactions', s.monthlyTransactions.map(r => r.month), s.monthlyTransactions.map(r => r.transactions), 'Transactions');
  if (s.monthlyAvgAmount) bar('chart-monthly-avg', s.monthlyAvgAmount.map(r => r.month), s.monthlyAvgAmount.map(r => r.avg_amount), 'Avg amount');
  if (s.statusRevenue) pie('chart-status', s.statusRevenue.map(r => r.status), s.statusRevenue.map(r => r.percentage), 'Share %');
  if (s.dailyRevenue) bar('chart-daily', s.dailyRevenue.map(r => r.day), s.dailyRevenue.map(r => r.avg_revenue), 'Avg revenue');
  if (s.genderDistribution) bar('chart-gender', s.genderDistribution.map(r => r.gender), s.genderDistribution.map(r => r.users), 'Users');
  if (s.monthlyNewUsers) bar('chart-new-users', s.monthlyNewUsers.map(r => r.month), s.monthlyNewUsers.map(r => r.new_users), 'New users');
});
</script>
</body>
</html>`
