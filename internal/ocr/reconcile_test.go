package ocr

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/smart-finance/internal/model"
)

func TestReconcile(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.Local)
	clock := func() time.Time { return now }

	food := model.Category{ID: "c1", Name: "Food"}
	transport := model.Category{ID: "c2", Name: "Transport"}

	tests := []struct {
		name         string
		result       model.OcrResult
		categories   []model.Category
		wantCategory string
		wantDate     time.Time
	}{
		{
			name:         "case-insensitive match",
			result:       model.OcrResult{Amount: decimal.RequireFromString("12.5"), Category: "food", Date: "2024-01-05"},
			categories:   []model.Category{food},
			wantCategory: "c1",
			wantDate:     time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local),
		},
		{
			name:         "matches a later category",
			result:       model.OcrResult{Amount: decimal.RequireFromString("4"), Category: "TRANSPORT", Date: "2024-02-01T18:45:00"},
			categories:   []model.Category{food, transport},
			wantCategory: "c2",
			wantDate:     time.Date(2024, 2, 1, 18, 45, 0, 0, time.Local),
		},
		{
			name:         "padded label is not a match",
			result:       model.OcrResult{Amount: decimal.RequireFromString("9"), Category: "Transport ", Date: "2024-01-05"},
			categories:   []model.Category{food, transport},
			wantCategory: "c1",
			wantDate:     time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local),
		},
		{
			name:         "unknown category falls back to first",
			result:       model.OcrResult{Amount: decimal.RequireFromString("12.5"), Category: "Unknown", Date: "2024-01-05"},
			categories:   []model.Category{food, transport},
			wantCategory: "c1",
			wantDate:     time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local),
		},
		{
			name:         "empty category list",
			result:       model.OcrResult{Amount: decimal.RequireFromString("1"), Category: "Food"},
			wantCategory: "",
			wantDate:     now,
		},
		{
			name:         "missing date",
			result:       model.OcrResult{Amount: decimal.RequireFromString("1"), Category: "Food"},
			categories:   []model.Category{food},
			wantCategory: "c1",
			wantDate:     now,
		},
		{
			name:         "unparseable date",
			result:       model.OcrResult{Amount: decimal.RequireFromString("1"), Category: "Food", Date: "yesterday-ish"},
			categories:   []model.Category{food},
			wantCategory: "c1",
			wantDate:     now,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := Reconcile(tt.result, tt.categories, 42, clock)

			assert.Equal(t, tt.wantCategory, draft.CategoryID)
			assert.Equal(t, model.SignNegative, draft.Sign)
			assert.Equal(t, int64(42), draft.UserID)
			assert.True(t, tt.result.Amount.Equal(draft.Amount))
			assert.True(t, tt.wantDate.Equal(draft.TransactionDate), "got %v want %v", draft.TransactionDate, tt.wantDate)
		})
	}
}

func TestReconcile_AmountPassedThrough(t *testing.T) {
	// Validation of the amount happens on create, not here.
	draft := Reconcile(model.OcrResult{Amount: decimal.RequireFromString("-3.20")}, nil, 1, time.Now)
	assert.Equal(t, "-3.2", draft.Amount.String())
	assert.Equal(t, model.SignNegative, draft.Sign)
}

func TestReconcile_DefaultClock(t *testing.T) {
	before := time.Now()
	draft := Reconcile(model.OcrResult{}, nil, 1, nil)
	assert.False(t, draft.TransactionDate.Before(before))
}
