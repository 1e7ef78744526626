// Package ocr turns receipt extraction results into transaction drafts.
package ocr

import (
	"time"

	"github.com/Veraticus/smart-finance/internal/model"
)

// Reconcile maps an extraction result onto a draft expense for userID.
//
// The category is matched by exact name ignoring case, falling back to the first category, or to no category when the list is
// empty. The date falls back to now() when missing or unparseable. The amount
// is taken as extracted.
func Reconcile(result model.OcrResult, categories []model.Category, userID int64, now func() time.Time) model.TransactionDraft {
	if now == nil {
		now = time.Now
	}

	draft := model.NewTransactionDraft(userID, now())
	draft.Amount = result.Amount
	draft.Sign = model.SignNegative
	draft.CategoryID = matchCategory(result.Category, categories)

	if result.Date != "" {
		if t, err := model.ParseTimestamp(result.Date); err == nil {
			draft.TransactionDate = t
		}
	}
	return draft
}

func matchCategory(name string, categories []model.Category) string {
	if c, ok := model.FindCategoryByName(categories, name); ok {
		return c.ID
	}
	if len(categories) > 0 {
		return categories[0].ID
	}
	return ""
}
