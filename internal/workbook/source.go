// Package workbook loads the three raw tables (transactions, commission
// rates, user info) from a tabular source. Values come back as strings
// with their native column sets; cleaning and coercion belong to the
// pipeline, not the loader.
package workbook

import "context"

// RawTransaction mirrors the transactions sheet column contract:
// order_id, user_id, Merchant_id, Date, Amount, Purchase_status.
type RawTransaction struct {
	OrderID        string
	UserID         string
	MerchantID     string
	Date           string
	Amount         string
	PurchaseStatus string
}

// RawCommission mirrors the commission sheet: Merchant_id,
// Merchant_name, Rate_pct.
type RawCommission struct {
	MerchantID   string
	MerchantName string
	RatePct      string
}

// RawUser mirrors the user-info sheet: User_id, Age, Gender, Location,
// First_tran_date.
type RawUser struct {
	UserID        string
	Age           string
	Gender        string
	Location      string
	FirstTranDate string
}

// Tables holds one load's worth of raw rows.
type Tables struct {
	Transactions []RawTransaction
	Commission   []RawCommission
	Users        []RawUser
}

// Source reads the three tables in one pass. Implementations fail with
// errors.CodeSourceUnavailable when the backing store cannot be read and
// errors.CodeSchemaMismatch when a sheet or required column is missing.
type Source interface {
	Load(ctx context.Context) (*Tables, error)
}
