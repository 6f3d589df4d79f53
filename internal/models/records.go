package models

import "time"

// UserType tags a transaction by whether its owner was first seen in the
// same calendar month as the transaction itself.
type UserType string

const (
	UserTypeNew     UserType = "New"
	UserTypeCurrent UserType = "Current"
	// UserTypeUnknown marks transactions whose user_id has no matching
	// user record. These rows keep their revenue but never count as
	// new users.
	UserTypeUnknown UserType = "Unknown"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// DefaultPurchaseStatus fills missing Purchase_status values.
const DefaultPurchaseStatus = "Standard"

// Transaction is a cleaned transaction row: amount coerced to numeric,
// purchase status defaulted. The date stays a string until enrichment
// parses it.
type Transaction struct {
	OrderID        string
	UserID         string
	MerchantID     string
	Date           string
	Amount         float64
	PurchaseStatus string
}

// Commission is one merchant's commission rate, keyed by merchant ID.
type Commission struct {
	MerchantID   string
	MerchantName string
	RatePct      float64
}

// User is a cleaned user-info row. FirstTranDate is nil when the source
// value could not be parsed in any accepted format.
type User struct {
	UserID        string
	Age           int
	Gender        string
	Location      string
	FirstTranDate *time.Time
}

// EnrichedTransaction carries the per-row revenue derived from the
// commission join. Revenue is nil when the merchant has no commission
// record; Date is nil when unparseable. The rate itself is not retained,
// only the merchant name for the per-merchant revenue view.
type EnrichedTransaction struct {
	OrderID        string
	UserID         string
	MerchantName   string
	Date           *time.Time
	Amount         float64
	PurchaseStatus string
	Revenue        *float64
}

// ClassifiedTransaction joins user demographics onto an enriched
// transaction. Demographic fields are nil/empty for unresolved users.
type ClassifiedTransaction struct {
	EnrichedTransaction
	Age           *int
	Gender        string
	Location      string
	FirstTranDate *time.Time
	UserType      UserType
}

type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type MonthlyCount struct {
	Month        string `json:"month"`
	Transactions int    `json:"transactions"`
}

type MonthlyAvgAmount struct {
	Month     string  `json:"month"`
	AvgAmount float64 `json:"avg_amount"`
}

type MerchantRevenue struct {
	Merchant string  `json:"merchant"`
	Revenue  float64 `json:"revenue"`
}

type StatusRevenue struct {
	Status     string  `json:"status"`
	Revenue    float64 `json:"revenue"`
	Percentage float64 `json:"percentage"`
}

type DailyRevenue struct {
	Day        int     `json:"day"`
	AvgRevenue float64 `json:"avg_revenue"`
}

type GenderCount struct {
	Gender string `json:"gender"`
	Users  int    `json:"users"`
}

type MonthlyNewUsers struct {
	Month    string `json:"month"`
	NewUsers int    `json:"new_users"`
}
