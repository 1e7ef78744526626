package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The backend decodes amounts as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Sign carries the direction of a transaction. Amounts are never negative.
type Sign string

const (
	// SignPositive marks money coming in.
	SignPositive Sign = "POSITIVE"
	// SignNegative marks money going out.
	SignNegative Sign = "NEGATIVE"
)

// Valid reports whether s is one of the known signs.
func (s Sign) Valid() bool {
	return s == SignPositive || s == SignNegative
}

// Transaction is a single income or expense record owned by the backend.
type Transaction struct {
	TransactionDate Timestamp       `json:"transactionDate"`
	Amount          decimal.Decimal `json:"amount"`
	ID              string          `json:"id,omitempty"`
	Sign            Sign            `json:"sign"`
	CategoryID      string          `json:"categoryId,omitempty"`
	UserID          int64           `json:"userId"`
}

// Signed returns the amount with the sign applied.
func (t Transaction) Signed() decimal.Decimal {
	if t.Sign == SignNegative {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionDraft is a transaction that has not been created yet.
type TransactionDraft struct {
	TransactionDate time.Time
	Amount          decimal.Decimal
	Sign            Sign
	CategoryID      string
	UserID          int64
}

// NewTransactionDraft returns a draft with the defaults of the manual entry form:
// an expense dated now.
func NewTransactionDraft(userID int64, now time.Time) TransactionDraft {
	return TransactionDraft{
		UserID:          userID,
		Sign:            SignNegative,
		TransactionDate: now,
	}
}

// Transaction converts the draft into the payload sent on create.
func (d TransactionDraft) Transaction() Transaction {
	return Transaction{
		UserID:          d.UserID,
		Amount:          d.Amount,
		Sign:            d.Sign,
		CategoryID:      d.CategoryID,
		TransactionDate: NewTimestamp(d.TransactionDate),
	}
}

// TransactionsForUser returns the transactions belonging to userID, preserving order.
func TransactionsForUser(txns []Transaction, userID int64) []Transaction {
	filtered := make([]Transaction, 0, len(txns))
	for _, t := range txns {
		if t.UserID == userID {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
