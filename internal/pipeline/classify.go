package pipeline

import (
	"log/slog"

	"topup-dashboard/internal/models"
)

// Classify left-joins enriched transactions to user records by user ID,
// pulls in the demographic fields, and tags each transaction New or
// Current. New means the transaction falls in the same calendar month
// as the user's first-ever transaction. Transactions whose user cannot
// be resolved, or where either date is nil, are tagged Unknown: they
// keep their revenue but never count as new users.
func Classify(transactions []models.EnrichedTransaction, users []models.User, stats *Stats, logger *slog.Logger) []models.ClassifiedTransaction {
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.UserID] = u
	}

	out := make([]models.ClassifiedTransaction, 0, len(transactions))
	for _, tx := range transactions {
		classified := models.ClassifiedTransaction{
			EnrichedTransaction: tx,
			UserType:            models.UserTypeUnknown,
		}

		user, ok := byID[tx.UserID]
		if !ok {
			stats.UnresolvedUsers++
			logger.Warn("transaction references unknown user",
				"order_id", tx.OrderID,
				"user_id", tx.UserID,
			)
			out = append(out, classified)
			continue
		}

		age := user.Age
		classified.Age = &age
		classified.Gender = user.Gender
		classified.Location = user.Location
		classified.FirstTranDate = user.FirstTranDate

		if tx.Date == nil || user.FirstTranDate == nil {
			stats.Unclassifiable++
			out = append(out, classified)
			continue
		}

		if sameMonth(*tx.Date, *user.FirstTranDate) {
			classified.UserType = models.UserTypeNew
		} else {
			classified.UserType = models.UserTypeCurrent
		}
		out = append(out, classified)
	}
	return out
}
