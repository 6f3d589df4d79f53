package pipeline

import (
	"log/slog"
	"strconv"

	"topup-dashboard/internal/models"
	"topup-dashboard/internal/workbook"
)

// NormalizeTransactions cleans raw transaction rows: purchase status
// defaulted, amount coerced to numeric. Rows whose amount cannot be
// parsed are dropped and counted; the date stays a string for the
// enricher to parse.
func NormalizeTransactions(raws []workbook.RawTransaction, stats *Stats, logger *slog.Logger) []models.Transaction {
	out := make([]models.Transaction, 0, len(raws))
	for _, raw := range raws {
		amount, err := ParseAmount(raw.Amount)
		if err != nil {
			stats.MalformedAmounts++
			logger.Warn("dropping transaction with malformed amount",
				"order_id", raw.OrderID,
				"amount", raw.Amount,
			)
			continue
		}

		out = append(out, models.Transaction{
			OrderID:        raw.OrderID,
			UserID:         raw.UserID,
			MerchantID:     raw.MerchantID,
			Date:           raw.Date,
			Amount:         amount,
			PurchaseStatus: FillDefaultStatus(raw.PurchaseStatus),
		})
	}
	return out
}

// NormalizeCommission parses commission rates. Rows with a non-numeric
// rate are dropped and counted as malformed; the merchants they cover
// then behave like merchants absent from the sheet.
func NormalizeCommission(raws []workbook.RawCommission, stats *Stats, logger *slog.Logger) []models.Commission {
	out := make([]models.Commission, 0, len(raws))
	for _, raw := range raws {
		rate, err := ParseAmount(raw.RatePct)
		if err != nil {
			stats.MalformedAmounts++
			logger.Warn("dropping commission row with malformed rate",
				"merchant_id", raw.MerchantID,
				"rate_pct", raw.RatePct,
			)
			continue
		}

		out = append(out, models.Commission{
			MerchantID:   raw.MerchantID,
			MerchantName: raw.MerchantName,
			RatePct:      rate,
		})
	}
	return out
}

// NormalizeUsers cleans user-info rows: gender and location mapped
// through the substitution tables, the first-transaction date repaired
// (year prefix) and parsed. Unmapped categories pass through unchanged
// but are counted; unparseable dates become nil.
func NormalizeUsers(raws []workbook.RawUser, stats *Stats, logger *slog.Logger) []models.User {
	out := make([]models.User, 0, len(raws))
	for _, raw := range raws {
		gender, ok := NormalizeGender(raw.Gender)
		if !ok && raw.Gender != "" {
			stats.UnmappedGenders++
			logger.Warn("unmapped gender token", "user_id", raw.UserID, "gender", raw.Gender)
		}

		location, ok := NormalizeLocation(raw.Location)
		if !ok && raw.Location != "" {
			stats.UnmappedLocations++
			logger.Warn("unmapped location token", "user_id", raw.UserID, "location", raw.Location)
		}

		firstTran := ParseDate(CorrectYearPrefix(raw.FirstTranDate))
		if firstTran == nil {
			stats.UnparseableDates++
			logger.Warn("unparseable first transaction date", "user_id", raw.UserID, "value", raw.FirstTranDate)
		}

		age, _ := strconv.Atoi(raw.Age)

		out = append(out, models.User{
			UserID:        raw.UserID,
			Age:           age,
			Gender:        gender,
			Location:      location,
			FirstTranDate: firstTran,
		})
	}
	return out
}
