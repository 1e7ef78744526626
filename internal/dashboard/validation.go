package dashboard

import (
	"strings"

	"github.com/Veraticus/smart-finance/internal/common"
	"github.com/Veraticus/smart-finance/internal/model"
)

// validateDraft checks a transaction before it is sent.
func validateDraft(d model.TransactionDraft) error {
	switch {
	case d.UserID == 0:
		return common.Invalid("userId", "is required")
	case !d.Amount.IsPositive():
		return common.Invalid("amount", "must be greater than zero")
	case !d.Sign.Valid():
		return common.Invalid("sign", "must be POSITIVE or NEGATIVE")
	case strings.TrimSpace(d.CategoryID) == "":
		return common.Invalid("categoryId", "is required")
	case d.TransactionDate.IsZero():
		return common.Invalid("transactionDate", "is required")
	}
	return nil
}

// validateGoal checks a goal before it is sent.
func validateGoal(g model.Goal) error {
	switch {
	case g.UserID == 0:
		return common.Invalid("userId", "is required")
	case strings.TrimSpace(g.CategoryID) == "":
		return common.Invalid("categoryId", "is required")
	case !g.MaxAmount.IsPositive():
		return common.Invalid("maxAmount", "must be greater than zero")
	case !g.Type.Valid():
		return common.Invalid("type", "must be MONTHLY or YEARLY")
	case g.StartDate != nil && g.EndDate != nil && g.EndDate.Before(g.StartDate.Time):
		return common.Invalid("endDate", "must not be before startDate")
	}
	return nil
}
