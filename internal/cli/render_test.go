package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/smart-finance/internal/dashboard"
	"github.com/Veraticus/smart-finance/internal/model"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		expected string
	}{
		{name: "dollars", amount: "1234.5", currency: "USD", expected: "$1,234.50"},
		{name: "lower case code", amount: "12", currency: "usd", expected: "$12.00"},
		{name: "rounds to minor unit", amount: "0.005", currency: "USD", expected: "$0.01"},
		{name: "negative", amount: "-25.4", currency: "USD", expected: "-$25.40"},
		{name: "unknown currency", amount: "12.5", currency: "XYZ", expected: "12.50 XYZ"},
		{name: "no currency", amount: "12.5", currency: "", expected: "12.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMoney(decimal.RequireFromString(tt.amount), tt.currency))
		})
	}
}

func TestFormatSigned(t *testing.T) {
	amount := decimal.RequireFromString("25.40")
	assert.Contains(t, FormatSigned(amount, model.SignNegative, "USD"), "-$25.40")
	assert.Contains(t, FormatSigned(amount, model.SignPositive, "USD"), "+$25.40")
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		filled  int
	}{
		{name: "empty", percent: 0, filled: 0},
		{name: "half", percent: 50, filled: 5},
		{name: "full", percent: 100, filled: 10},
		{name: "over budget is clamped", percent: 180, filled: 10},
		{name: "negative is clamped", percent: -20, filled: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := ProgressBar(tt.percent, 10)
			assert.Equal(t, tt.filled, strings.Count(bar, "█"))
			assert.Equal(t, 10-tt.filled, strings.Count(bar, "░"))
		})
	}
}

func testViewModel() dashboard.ViewModel {
	return dashboard.ViewModel{
		View: dashboard.ViewOverview,
		Categories: []model.Category{
			{ID: "c1", Name: "Food", Color: "#ff0000"},
		},
		Transactions: []model.Transaction{
			{ID: "t1", CategoryID: "c1", Amount: decimal.RequireFromString("12.50"), Sign: model.SignNegative,
				TransactionDate: model.NewTimestamp(time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC))},
			{ID: "t2", CategoryID: "gone", Amount: decimal.NewFromInt(1000), Sign: model.SignPositive},
		},
		Goals: []model.Goal{
			{ID: "g1", CategoryID: "c1", Type: model.GoalMonthly, MaxAmount: decimal.NewFromInt(300)},
		},
		Stats: &model.DashboardStats{
			Balance:           decimal.RequireFromString("987.50"),
			TotalIncome:       decimal.NewFromInt(1000),
			TotalExpenses:     decimal.RequireFromString("12.50"),
			TotalTransactions: 2,
			CategoryBreakdown: []model.CategoryBreakdown{
				{CategoryName: "Food", Color: "#ff0000", Total: decimal.RequireFromString("12.50"), Percentage: 100},
			},
			GoalProgress: []model.GoalProgress{
				{CategoryName: "Food", MaxAmount: decimal.NewFromInt(10), CurrentSpent: decimal.RequireFromString("12.50"), Percentage: 125, Exceeded: true},
			},
		},
	}
}

func TestRenderOverview(t *testing.T) {
	out := RenderOverview(testViewModel(), "USD")

	assert.Contains(t, out, "Overview")
	assert.Contains(t, out, "$987.50")
	assert.Contains(t, out, "$1,000.00")
	assert.Contains(t, out, "Spending by category")
	assert.Contains(t, out, "125.0%")
	assert.Contains(t, out, strings.Repeat("█", barWidth), "exceeded goals show a full bar")
}

func TestRenderOverview_NoStats(t *testing.T) {
	vm := testViewModel()
	vm.Stats = nil
	vm.Loading = true

	out := RenderOverview(vm, "USD")
	assert.Contains(t, out, "Loading...")
	assert.Contains(t, out, "Statistics are unavailable.")
}

func TestRenderTransactions(t *testing.T) {
	out := RenderTransactions(testViewModel(), "USD")

	assert.Contains(t, out, "2024-01-05")
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "-$12.50")
	assert.Contains(t, out, "+$1,000.00")
	assert.Contains(t, out, model.UnknownCategoryName, "unknown categories fall back to N/A")
}

func TestRenderTransactions_Empty(t *testing.T) {
	assert.Contains(t, RenderTransactions(dashboard.ViewModel{}, "USD"), "No transactions yet.")
	assert.Contains(t, RenderTransactions(dashboard.ViewModel{Loading: true}, "USD"), "Loading...")
}

func TestRenderGoals(t *testing.T) {
	start, err := model.ParseDate("2024-01-01")
	assert.NoError(t, err)

	vm := testViewModel()
	vm.Goals[0].StartDate = &start

	out := RenderGoals(vm, "USD")
	assert.Contains(t, out, "MONTHLY")
	assert.Contains(t, out, "$300.00")
	assert.Contains(t, out, "2024-01-01 → -")
	assert.Contains(t, out, "Goal progress")
}

func TestRenderForecast(t *testing.T) {
	assert.Contains(t, RenderForecast(nil, "USD"), "unavailable")

	f := &model.Forecast{
		PredictedEndOfMonthBalance: decimal.NewFromInt(420),
		SafeDailyBudget:            decimal.NewFromInt(14),
		DaysRemaining:              12,
		Recommendation:             "Spend less on Food",
		Anomalies: []model.AnomalyAlert{
			{Date: "2024-01-05", CategoryName: "Food", Amount: decimal.NewFromInt(90), CategoryAverage: decimal.NewFromInt(30), DeviationPercentage: 200},
		},
	}
	out := RenderForecast(f, "USD")
	assert.Contains(t, out, "$420.00")
	assert.Contains(t, out, "Spend less on Food")
	assert.Contains(t, out, "+200% vs $30.00")
}

func TestRenderView(t *testing.T) {
	vm := testViewModel()

	vm.View = dashboard.ViewTransactions
	assert.Contains(t, RenderView(vm, "USD"), "Transactions")

	vm.View = dashboard.ViewForecast
	assert.Contains(t, RenderView(vm, "USD"), "Forecast")

	vm.View = dashboard.ViewScan
	assert.Contains(t, RenderView(vm, "USD"), "finance scan file")
}

func TestRenderScanResult(t *testing.T) {
	out := RenderScanResult(model.OcrResult{
		Amount:     decimal.RequireFromString("12.5"),
		Currency:   "USD",
		Category:   "Food",
		ItemName:   "Sandwich",
		Confidence: 0.87,
	})
	assert.Contains(t, out, "$12.50")
	assert.Contains(t, out, "Sandwich")
	assert.Contains(t, out, "87%")
	assert.Contains(t, out, "Date:        -")
}

func TestProgress(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress(&out, 3, "Importing")
	p.Step()
	p.Step()
	assert.Equal(t, 2, p.Count())
	p.Step()
	p.Done()
	assert.Equal(t, 3, p.Count())
}
