package pipeline

import (
	"log/slog"

	"topup-dashboard/internal/models"
)

// Enrich left-joins transactions to commission rates by merchant ID and
// derives per-row revenue. A transaction whose merchant has no
// commission record keeps a nil revenue; it is never zeroed. The rate
// is dropped after the revenue computation, but the merchant name is
// carried through for the per-merchant revenue view. Transaction dates
// are parsed here; failures become nil dates.
func Enrich(transactions []models.Transaction, commission []models.Commission, stats *Stats, logger *slog.Logger) []models.EnrichedTransaction {
	rates := make(map[string]models.Commission, len(commission))
	for _, c := range commission {
		rates[c.MerchantID] = c
	}

	out := make([]models.EnrichedTransaction, 0, len(transactions))
	for _, tx := range transactions {
		enriched := models.EnrichedTransaction{
			OrderID:        tx.OrderID,
			UserID:         tx.UserID,
			Amount:         tx.Amount,
			PurchaseStatus: tx.PurchaseStatus,
		}

		if c, ok := rates[tx.MerchantID]; ok {
			enriched.MerchantName = c.MerchantName
			revenue := tx.Amount * c.RatePct / 100
			enriched.Revenue = &revenue
		} else {
			stats.MissingCommission++
			logger.Warn("no commission record for merchant",
				"order_id", tx.OrderID,
				"merchant_id", tx.MerchantID,
			)
		}

		enriched.Date = ParseDate(tx.Date)
		if enriched.Date == nil {
			stats.UnparseableDates++
			logger.Warn("unparseable transaction date", "order_id", tx.OrderID, "value", tx.Date)
		}

		out = append(out, enriched)
	}
	return out
}
