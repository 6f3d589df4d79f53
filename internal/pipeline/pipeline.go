// Package pipeline implements the load → normalize → enrich → classify
// pass over the workbook tables. Every stage is a pure function over
// immutable inputs; structural load failures abort the run while
// per-row data-quality issues are recovered and counted.
package pipeline

import (
	"context"
	"log/slog"

	"topup-dashboard/internal/models"
	"topup-dashboard/internal/observability"
	"topup-dashboard/internal/workbook"
)

// Result is one run's output: the classified-transaction table, the
// cleaned user table (the gender view groups over users, not
// transactions), and the data-quality tallies.
type Result struct {
	Classified []models.ClassifiedTransaction
	Users      []models.User
	Stats      Stats
}

// Run executes the full pipeline against the given source.
func Run(ctx context.Context, src workbook.Source, logger *slog.Logger) (*Result, error) {
	ctx, span := observability.StartSpan(ctx, "pipeline.run")
	defer span.Finish()

	tables, err := src.Load(ctx)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	var stats Stats
	transactions := NormalizeTransactions(tables.Transactions, &stats, logger)
	commission := NormalizeCommission(tables.Commission, &stats, logger)
	users := NormalizeUsers(tables.Users, &stats, logger)

	enriched := Enrich(transactions, commission, &stats, logger)
	classified := Classify(enriched, users, &stats, logger)

	logger.Info("pipeline complete",
		"transactions", len(classified),
		"users", len(users),
		"quality_issues", stats.Total(),
		"trace_id", span.TraceID,
	)

	return &Result{
		Classified: classified,
		Users:      users,
		Stats:      stats,
	}, nil
}
