package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"topup-dashboard/internal/models"
	"topup-dashboard/internal/pipeline"
	"topup-dashboard/internal/workbook"
)

const monthKeyLayout = "2006-01"

// PrecomputedData holds the eight aggregate views derived from one
// pipeline run. Computed once at load; served read-only afterwards.
type PrecomputedData struct {
	MonthlyRevenue      []models.MonthlyRevenue   `json:"monthly_revenue"`
	MonthlyTransactions []models.MonthlyCount     `json:"monthly_transactions"`
	MonthlyAvgAmount    []models.MonthlyAvgAmount `json:"monthly_avg_amount"`
	MerchantRevenue     []models.MerchantRevenue  `json:"merchant_revenue"`
	StatusRevenue       []models.StatusRevenue    `json:"status_revenue"`
	DailyRevenue        []models.DailyRevenue     `json:"daily_revenue"`
	GenderDistribution  []models.GenderCount      `json:"gender_distribution"`
	MonthlyNewUsers     []models.MonthlyNewUsers  `json:"monthly_new_users"`
	LastModified        time.Time                 `json:"last_modified"`
	RecordCount         int64                     `json:"record_count"`
}

type Analytics struct {
	mu          sync.RWMutex
	precomputed *PrecomputedData
	classified  []models.ClassifiedTransaction
	stats       pipeline.Stats
	targetYear  int
	logger      *slog.Logger
}

func NewAnalytics(targetYear int) *Analytics {
	return &Analytics{
		precomputed: &PrecomputedData{},
		targetYear:  targetYear,
		logger:      slog.Default(),
	}
}

// Load runs the pipeline against the source and precomputes all views.
func (a *Analytics) Load(ctx context.Context, src workbook.Source) error {
	start := time.Now()

	result, err := pipeline.Run(ctx, src, a.logger)
	if err != nil {
		return fmt.Errorf("run pipeline: %w", err)
	}

	precomputed, err := a.computeAggregates(ctx, result)
	if err != nil {
		return fmt.Errorf("compute aggregates: %w", err)
	}

	a.mu.Lock()
	a.precomputed = precomputed
	a.classified = result.Classified
	a.stats = result.Stats
	a.mu.Unlock()

	a.logger.Info("analytics ready",
		"records", precomputed.RecordCount,
		"duration", time.Since(start),
	)
	return nil
}

// SetData recomputes the views from already-classified rows. Used by
// tests and by embedders that run the pipeline themselves.
func (a *Analytics) SetData(classified []models.ClassifiedTransaction, users []models.User) {
	result := &pipeline.Result{Classified: classified, Users: users}
	precomputed, err := a.computeAggregates(context.Background(), result)
	if err != nil {
		a.logger.Error("compute aggregates", "error", err)
		return
	}

	a.mu.Lock()
	a.precomputed = precomputed
	a.classified = classified
	a.stats = pipeline.Stats{}
	a.mu.Unlock()
}

// computeAggregates fans the eight independent reductions out across an
// errgroup. Each goroutine owns a distinct field of the new snapshot,
// so no locking is needed until the swap.
func (a *Analytics) computeAggregates(ctx context.Context, result *pipeline.Result) (*PrecomputedData, error) {
	precomputed := &PrecomputedData{
		RecordCount:  int64(len(result.Classified)),
		LastModified: time.Now(),
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		precomputed.MonthlyRevenue = monthlyRevenue(result.Classified)
		return nil
	})
	g.Go(func() error {
		precomputed.MonthlyTransactions = monthlyTransactions(result.Classified)
		return nil
	})
	g.Go(func() error {
		precomputed.MonthlyAvgAmount = monthlyAvgAmount(result.Classified)
		return nil
	})
	g.Go(func() error {
		precomputed.MerchantRevenue = merchantRevenue(result.Classified)
		return nil
	})
	g.Go(func() error {
		precomputed.StatusRevenue = statusRevenue(result.Classified)
		return nil
	})
	g.Go(func() error {
		precomputed.DailyRevenue = dailyRevenue(result.Classified)
		return nil
	})
	g.Go(func() error {
		precomputed.GenderDistribution = genderDistribution(result.Users)
		return nil
	})
	g.Go(func() error {
		precomputed.MonthlyNewUsers = monthlyNewUsers(result.Classified, a.targetYear)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return precomputed, nil
}

// monthlyRevenue sums revenue per calendar month. Rows without a date
// or without a revenue (no commission record) are excluded.
func monthlyRevenue(txs []models.ClassifiedTransaction) []models.MonthlyRevenue {
	groups := make(map[string]float64)
	for _, tx := range txs {
		if tx.Date == nil || tx.Revenue == nil {
			continue
		}
		groups[tx.Date.Format(monthKeyLayout)] += *tx.Revenue
	}

	result := make([]models.MonthlyRevenue, 0, len(groups))
	for month, revenue := range groups {
		result = append(result, models.MonthlyRevenue{Month: month, Revenue: revenue})
	}
	sortByMonth(result, func(r models.MonthlyRevenue) string { return r.Month })
	return result
}

func monthlyTransactions(txs []models.ClassifiedTransaction) []models.MonthlyCount {
	groups := make(map[string]int)
	for _, tx := range txs {
		if tx.Date == nil {
			continue
		}
		groups[tx.Date.Format(monthKeyLayout)]++
	}

	result := make([]models.MonthlyCount, 0, len(groups))
	for month, count := range groups {
		result = append(result, models.MonthlyCount{Month: month, Transactions: count})
	}
	sortByMonth(result, func(r models.MonthlyCount) string { return r.Month })
	return result
}

func monthlyAvgAmount(txs []models.ClassifiedTransaction) []models.MonthlyAvgAmount {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, tx := range txs {
		if tx.Date == nil {
			continue
		}
		key := tx.Date.Format(monthKeyLayout)
		sums[key] += tx.Amount
		counts[key]++
	}

	result := make([]models.MonthlyAvgAmount, 0, len(sums))
	for month, sum := range sums {
		result = append(result, models.MonthlyAvgAmount{Month: month, AvgAmount: sum / float64(counts[month])})
	}
	sortByMonth(result, func(r models.MonthlyAvgAmount) string { return r.Month })
	return result
}

// merchantRevenue sums revenue per merchant name, highest first. Rows
// with nil revenue have no resolved merchant and are excluded.
func merchantRevenue(txs []models.ClassifiedTransaction) []models.MerchantRevenue {
	groups := make(map[string]float64)
	for _, tx := range txs {
		if tx.Revenue == nil {
			continue
		}
		groups[tx.MerchantName] += *tx.Revenue
	}

	result := make([]models.MerchantRevenue, 0, len(groups))
	for merchant, revenue := range groups {
		result = append(result, models.MerchantRevenue{Merchant: merchant, Revenue: revenue})
	}
	slices.SortFunc(result, func(x, y models.MerchantRevenue) int {
		switch {
		case x.Revenue > y.Revenue:
			return -1
		case x.Revenue < y.Revenue:
			return 1
		default:
			return 0
		}
	})
	return result
}

// statusRevenue sums revenue per purchase status and normalizes each
// group by the grand total. Percentages sum to 100 for non-empty input.
func statusRevenue(txs []models.ClassifiedTransaction) []models.StatusRevenue {
	groups := make(map[string]float64)
	var total float64
	for _, tx := range txs {
		if tx.Revenue == nil {
			continue
		}
		groups[tx.PurchaseStatus] += *tx.Revenue
		total += *tx.Revenue
	}

	result := make([]models.StatusRevenue, 0, len(groups))
	for status, revenue := range groups {
		row := models.StatusRevenue{Status: status, Revenue: revenue}
		if total != 0 {
			row.Percentage = revenue / total * 100
		}
		result = append(result, row)
	}
	slices.SortFunc(result, func(x, y models.StatusRevenue) int {
		switch {
		case x.Revenue > y.Revenue:
			return -1
		case x.Revenue < y.Revenue:
			return 1
		default:
			return 0
		}
	})
	return result
}

// dailyRevenue averages revenue per day-of-month (1..31), not per
// calendar date.
func dailyRevenue(txs []models.ClassifiedTransaction) []models.DailyRevenue {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, tx := range txs {
		if tx.Date == nil || tx.Revenue == nil {
			continue
		}
		day := tx.Date.Day()
		sums[day] += *tx.Revenue
		counts[day]++
	}

	result := make([]models.DailyRevenue, 0, len(sums))
	for day, sum := range sums {
		result = append(result, models.DailyRevenue{Day: day, AvgRevenue: sum / float64(counts[day])})
	}
	slices.SortFunc(result, func(x, y models.DailyRevenue) int { return x.Day - y.Day })
	return result
}

// genderDistribution counts distinct users per normalized gender over
// the user table.
func genderDistribution(users []models.User) []models.GenderCount {
	seen := make(map[string]map[string]bool)
	for _, u := range users {
		if seen[u.Gender] == nil {
			seen[u.Gender] = make(map[string]bool)
		}
		seen[u.Gender][u.UserID] = true
	}

	result := make([]models.GenderCount, 0, len(seen))
	for gender, ids := range seen {
		result = append(result, models.GenderCount{Gender: gender, Users: len(ids)})
	}
	slices.SortFunc(result, func(x, y models.GenderCount) int { return y.Users - x.Users })
	return result
}

// monthlyNewUsers counts distinct new users per first-transaction month
// within the target year. A user's first-transaction month is unique,
// so each user lands in exactly one month.
func monthlyNewUsers(txs []models.ClassifiedTransaction, targetYear int) []models.MonthlyNewUsers {
	groups := make(map[string]map[string]bool)
	for _, tx := range txs {
		if tx.UserType != models.UserTypeNew || tx.FirstTranDate == nil {
			continue
		}
		if tx.FirstTranDate.Year() != targetYear {
			continue
		}
		key := tx.FirstTranDate.Format(monthKeyLayout)
		if groups[key] == nil {
			groups[key] = make(map[string]bool)
		}
		groups[key][tx.UserID] = true
	}

	result := make([]models.MonthlyNewUsers, 0, len(groups))
	for month, ids := range groups {
		result = append(result, models.MonthlyNewUsers{Month: month, NewUsers: len(ids)})
	}
	sortByMonth(result, func(r models.MonthlyNewUsers) string { return r.Month })
	return result
}

// sortByMonth orders rows chronologically; the "2006-01" key sorts
// correctly as a string.
func sortByMonth[T any](rows []T, key func(T) string) {
	slices.SortFunc(rows, func(a, b T) int {
		switch {
		case key(a) < key(b):
			return -1
		case key(a) > key(b):
			return 1
		default:
			return 0
		}
	})
}

// Accessors return the precomputed views. Snapshot slices are never
// mutated after the swap, so returning them without copying is safe.

func (a *Analytics) MonthlyRevenue() []models.MonthlyRevenue {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.precomputed.MonthlyRevenue
}

func (a *Analytics) MonthlyTransactions() []models.MonthlyCount {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.precomputed.MonthlyTransactions
}

func (a *Analytics) MonthlyAvgAmount() []models.MonthlyAvgAmount {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.precomputed.MonthlyAvgAmount
}

func (a *Analytics) MerchantRevenue() []models.MerchantRevenue {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.precomputed.MerchantRevenue
}

func (a *Analytics) StatusRevenue() []models.StatusRevenue {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.precomputed.StatusRevenue
}

func (a *Analytics) DailyRevenue() []models.DailyRevenue {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.precomputed.DailyRevenue
}

func (a *Analytics) GenderDistribution() []models.GenderCount {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.precomputed.GenderDistribution
}

func (a *Analytics) NewUsersByMonth() []models.MonthlyNewUsers {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.precomputed.MonthlyNewUsers
}

// Classified returns up to limit classified-transaction rows; limit <= 0
// returns all of them.
func (a *Analytics) Classified(limit int) []models.ClassifiedTransaction {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if limit <= 0 || len(a.classified) <= limit {
		return a.classified
	}
	return a.classified[:limit]
}

// Stats exposes record counts and data-quality tallies for monitoring.
func (a *Analytics) Stats() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return map[string]any{
		"record_count":   a.precomputed.RecordCount,
		"last_processed": a.precomputed.LastModified,
		"target_year":    a.targetYear,
		"months":         len(a.precomputed.MonthlyRevenue),
		"merchants":      len(a.precomputed.MerchantRevenue),
		"statuses":       len(a.precomputed.StatusRevenue),
		"quality":        a.stats,
	}
}
