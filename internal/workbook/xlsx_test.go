package workbook

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"topup-dashboard/internal/config"
	"topup-dashboard/internal/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testWorkbookConfig(path string) config.WorkbookConfig {
	return config.WorkbookConfig{
		Path:              path,
		TransactionsSheet: "Data Transactions",
		CommissionSheet:   "Data Commission",
		UserInfoSheet:     "Data User_Info",
		TargetYear:        2020,
	}
}

// writeTestWorkbook builds an .xlsx file with the given sheets, each a
// slice of rows.
func writeTestWorkbook(t *testing.T, sheets map[string][][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatal(err)
			}
			first = false
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatal(err)
			}
		}

		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatal(err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func validSheets() map[string][][]any {
	return map[string][][]any{
		"Data Transactions": {
			{"order_id", "user_id", "Merchant_id", "Date", "Amount", "Purchase_status"},
			{"O1", "U1", "M1", "2020-01-15", "1,500", ""},
			{"O2", "U1", "M1", "2020-02-15", "200", "Promotion"},
		},
		"Data Commission": {
			{"Merchant_id", "Merchant_name", "Rate_pct"},
			{"M1", "Mobile Topup", "10"},
		},
		"Data User_Info": {
			{"User_id", "Age", "Gender", "Location", "First_tran_date"},
			{"U1", "25", "Female", "HCMC", "2020-01-10"},
		},
	}
}

func TestXLSXSource_Load(t *testing.T) {
	path := writeTestWorkbook(t, validSheets())

	src := NewXLSXSource(testWorkbookConfig(path), testLogger())
	tables, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if len(tables.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(tables.Transactions))
	}
	tx := tables.Transactions[0]
	if tx.OrderID != "O1" || tx.MerchantID != "M1" || tx.Amount != "1,500" {
		t.Errorf("unexpected first transaction: %+v", tx)
	}
	if tx.PurchaseStatus != "" {
		t.Errorf("expected empty purchase status preserved as raw, got %q", tx.PurchaseStatus)
	}

	if len(tables.Commission) != 1 {
		t.Fatalf("expected 1 commission row, got %d", len(tables.Commission))
	}
	if tables.Commission[0].MerchantName != "Mobile Topup" {
		t.Errorf("unexpected commission row: %+v", tables.Commission[0])
	}

	if len(tables.Users) != 1 {
		t.Fatalf("expected 1 user row, got %d", len(tables.Users))
	}
	if tables.Users[0].FirstTranDate != "2020-01-10" {
		t.Errorf("unexpected user row: %+v", tables.Users[0])
	}
}

func TestXLSXSource_Load_ReorderedAndRecapitalizedColumns(t *testing.T) {
	sheets := validSheets()
	sheets["Data Commission"] = [][]any{
		{"RATE_PCT", "merchant_NAME", "MERCHANT_ID"},
		{"12.5", "Games", "M2"},
	}
	path := writeTestWorkbook(t, sheets)

	src := NewXLSXSource(testWorkbookConfig(path), testLogger())
	tables, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	c := tables.Commission[0]
	if c.MerchantID != "M2" || c.MerchantName != "Games" || c.RatePct != "12.5" {
		t.Errorf("column mapping failed: %+v", c)
	}
}

func TestXLSXSource_Load_MissingFile(t *testing.T) {
	src := NewXLSXSource(testWorkbookConfig("/nonexistent/never.xlsx"), testLogger())

	_, err := src.Load(context.Background())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.IsCode(err, errors.CodeSourceUnavailable) {
		t.Errorf("expected SOURCE_UNAVAILABLE, got %v", err)
	}
}

func TestXLSXSource_Load_MissingSheet(t *testing.T) {
	sheets := validSheets()
	delete(sheets, "Data User_Info")
	path := writeTestWorkbook(t, sheets)

	src := NewXLSXSource(testWorkbookConfig(path), testLogger())

	_, err := src.Load(context.Background())
	if err == nil {
		t.Fatal("expected error for missing sheet")
	}
	if !errors.IsCode(err, errors.CodeSchemaMismatch) {
		t.Errorf("expected SCHEMA_MISMATCH, got %v", err)
	}
}

func TestXLSXSource_Load_MissingColumn(t *testing.T) {
	sheets := validSheets()
	sheets["Data Transactions"] = [][]any{
		{"order_id", "user_id", "Date", "Amount", "Purchase_status"},
		{"O1", "U1", "2020-01-15", "100", ""},
	}
	path := writeTestWorkbook(t, sheets)

	src := NewXLSXSource(testWorkbookConfig(path), testLogger())

	_, err := src.Load(context.Background())
	if err == nil {
		t.Fatal("expected error for missing column")
	}
	if !errors.IsCode(err, errors.CodeSchemaMismatch) {
		t.Errorf("expected SCHEMA_MISMATCH, got %v", err)
	}
}

func TestTableSource_Load(t *testing.T) {
	src := &TableSource{
		Tables: Tables{
			Transactions: []RawTransaction{{OrderID: "O1"}},
		},
	}

	tables, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(tables.Transactions) != 1 {
		t.Errorf("expected 1 transaction, got %d", len(tables.Transactions))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.Load(ctx); err == nil {
		t.Error("expected error for cancelled context")
	}
}
