package workbook

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"topup-dashboard/internal/config"
	"topup-dashboard/internal/errors"
)

// Contract column names, matched case-insensitively against header cells.
const (
	colOrderID        = "order_id"
	colUserID         = "user_id"
	colMerchantID     = "merchant_id"
	colMerchantName   = "merchant_name"
	colDate           = "date"
	colAmount         = "amount"
	colPurchaseStatus = "purchase_status"
	colAge            = "age"
	colGender         = "gender"
	colLocation       = "location"
	colFirstTranDate  = "first_tran_date"
	colRatePct        = "rate_pct"
)

// XLSXSource reads the three sheets from an Excel workbook.
type XLSXSource struct {
	cfg    config.WorkbookConfig
	logger *slog.Logger
}

func NewXLSXSource(cfg config.WorkbookConfig, logger *slog.Logger) *XLSXSource {
	return &XLSXSource{cfg: cfg, logger: logger}
}

func (s *XLSXSource) Load(ctx context.Context) (*Tables, error) {
	f, err := excelize.OpenFile(s.cfg.Path)
	if err != nil {
		return nil, errors.SourceUnavailable(err, fmt.Sprintf("cannot open workbook %s", s.cfg.Path))
	}
	defer f.Close()

	tables := &Tables{}

	if err := s.loadSheet(ctx, f, s.cfg.TransactionsSheet, []string{colOrderID, colUserID, colMerchantID, colDate, colAmount, colPurchaseStatus},
		func(cell func(string) string) {
			tables.Transactions = append(tables.Transactions, RawTransaction{
				OrderID:        cell(colOrderID),
				UserID:         cell(colUserID),
				MerchantID:     cell(colMerchantID),
				Date:           cell(colDate),
				Amount:         cell(colAmount),
				PurchaseStatus: cell(colPurchaseStatus),
			})
		}); err != nil {
		return nil, err
	}

	if err := s.loadSheet(ctx, f, s.cfg.CommissionSheet, []string{colMerchantID, colMerchantName, colRatePct},
		func(cell func(string) string) {
			tables.Commission = append(tables.Commission, RawCommission{
				MerchantID:   cell(colMerchantID),
				MerchantName: cell(colMerchantName),
				RatePct:      cell(colRatePct),
			})
		}); err != nil {
		return nil, err
	}

	if err := s.loadSheet(ctx, f, s.cfg.UserInfoSheet, []string{colUserID, colAge, colGender, colLocation, colFirstTranDate},
		func(cell func(string) string) {
			tables.Users = append(tables.Users, RawUser{
				UserID:        cell(colUserID),
				Age:           cell(colAge),
				Gender:        cell(colGender),
				Location:      cell(colLocation),
				FirstTranDate: cell(colFirstTranDate),
			})
		}); err != nil {
		return nil, err
	}

	s.logger.Info("workbook loaded",
		"path", s.cfg.Path,
		"transactions", len(tables.Transactions),
		"commission", len(tables.Commission),
		"users", len(tables.Users),
	)

	return tables, nil
}

// loadSheet resolves the sheet's header row into a column-index map and
// invokes appendRow once per non-empty data row. Header matching is
// case-insensitive so column reordering or recapitalization in the
// source workbook does not break the load.
func (s *XLSXSource) loadSheet(ctx context.Context, f *excelize.File, sheet string, required []string, appendRow func(cell func(string) string)) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return errors.SchemaMismatch(fmt.Sprintf("sheet %q not found in workbook", sheet))
	}
	if len(rows) == 0 {
		return errors.SchemaMismatch(fmt.Sprintf("sheet %q has no header row", sheet))
	}

	columns := make(map[string]int)
	for i, header := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(header))] = i
	}

	for _, col := range required {
		if _, ok := columns[col]; !ok {
			return errors.SchemaMismatch(fmt.Sprintf("sheet %q missing required column %q", sheet, col))
		}
	}

	for _, row := range rows[1:] {
		if emptyRow(row) {
			continue
		}

		cell := func(col string) string {
			idx := columns[col]
			if idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}
		appendRow(cell)
	}

	return nil
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
