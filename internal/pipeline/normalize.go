package pipeline

import (
	"strconv"
	"strings"

	"topup-dashboard/internal/errors"
	"topup-dashboard/internal/models"
)

// Substitution tables for categorical cleanup. Keys are compared after
// lowercasing; values are the canonical categories. Tokens absent from
// the table pass through unchanged and are counted as unmapped rather
// than auto-bucketed.
var locationTable = map[string]string{
	"ho chi minh city": "HCMC",
	"other":            "Other Cities",
	"unknown":          "Other Cities",
}

// canonicalLocations are values that already conform and must pass
// through without being flagged.
var canonicalLocations = map[string]bool{
	"HCMC":         true,
	"HN":           true,
	"Other Cities": true,
}

// genderTable covers English variants, single-letter codes, the
// Vietnamese terms, and the mis-encoded form of "Nữ" that appears in the
// source data.
var genderTable = map[string]string{
	"male":   models.GenderMale,
	"m":      models.GenderMale,
	"nam":    models.GenderMale,
	"female": models.GenderFemale,
	"f":      models.GenderFemale,
	"nữ":     models.GenderFemale,
	"ná»¯":   models.GenderFemale,
}

// NormalizeLocation maps known synonyms to canonical city categories.
// The second return reports whether the input was recognized.
func NormalizeLocation(location string) (string, bool) {
	if canonical, ok := locationTable[strings.ToLower(strings.TrimSpace(location))]; ok {
		return canonical, true
	}
	if canonicalLocations[location] {
		return location, true
	}
	return location, false
}

// NormalizeGender maps locale and case variants to {Male, Female}.
// Unmapped tokens are returned unchanged with ok=false; the caller
// decides whether to count or surface them.
func NormalizeGender(raw string) (string, bool) {
	if canonical, ok := genderTable[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return canonical, true
	}
	return raw, false
}

// CorrectYearPrefix repairs truncated century prefixes in date-like
// strings: "1923-04-01" becomes "2023-04-01". It does not validate that
// the remainder is a real date.
func CorrectYearPrefix(dateStr string) string {
	if len(dateStr) < 2 || strings.HasPrefix(dateStr, "20") {
		return dateStr
	}
	return "20" + dateStr[2:]
}

// FillDefaultStatus substitutes the default purchase status for missing
// values.
func FillDefaultStatus(value string) string {
	if strings.TrimSpace(value) == "" {
		return models.DefaultPurchaseStatus
	}
	return value
}

// ParseAmount coerces an amount string with thousands separators to a
// float.
func ParseAmount(s string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, errors.MalformedAmount(err, "amount is not numeric: "+s)
	}
	return amount, nil
}
