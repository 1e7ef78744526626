package model

import "github.com/shopspring/decimal"

// DashboardStats is the analytics summary computed by the backend for a user.
type DashboardStats struct {
	CategoryBreakdown []CategoryBreakdown `json:"categoryBreakdown"`
	MonthlyTrends     []MonthlyTrend      `json:"monthlyTrends"`
	GoalProgress      []GoalProgress      `json:"goalProgress"`
	TotalIncome       decimal.Decimal     `json:"totalIncome"`
	TotalExpenses     decimal.Decimal     `json:"totalExpenses"`
	Balance           decimal.Decimal     `json:"balance"`
	MonthlyIncome     decimal.Decimal     `json:"monthlyIncome"`
	MonthlyExpenses   decimal.Decimal     `json:"monthlyExpenses"`
	TotalTransactions int                 `json:"totalTransactions"`
}

// CategoryBreakdown is the share of spending attributed to one category.
type CategoryBreakdown struct {
	CategoryID   string          `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Color        string          `json:"color"`
	Total        decimal.Decimal `json:"total"`
	Percentage   float64         `json:"percentage"`
}

// MonthlyTrend is income and expenses for one month.
type MonthlyTrend struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// GoalProgress reports how much of a goal has been consumed.
type GoalProgress struct {
	GoalID       string          `json:"goalId"`
	CategoryName string          `json:"categoryName"`
	Type         string          `json:"type"`
	MaxAmount    decimal.Decimal `json:"maxAmount"`
	CurrentSpent decimal.Decimal `json:"currentSpent"`
	Percentage   float64         `json:"percentage"`
	Exceeded     bool            `json:"exceeded"`
}

// BarPercent returns the progress percentage clamped to [0, 100].
func (g GoalProgress) BarPercent() float64 {
	switch {
	case g.Percentage < 0:
		return 0
	case g.Percentage > 100:
		return 100
	default:
		return g.Percentage
	}
}

// Forecast is the end-of-month projection computed by the backend.
type Forecast struct {
	Recommendation             string            `json:"recommendation"`
	Predictions                []DailyPrediction `json:"predictions"`
	Anomalies                  []AnomalyAlert    `json:"anomalies"`
	PredictedEndOfMonthBalance decimal.Decimal   `json:"predictedEndOfMonthBalance"`
	PredictedMonthlyExpenses   decimal.Decimal   `json:"predictedMonthlyExpenses"`
	AverageDailySpending       decimal.Decimal   `json:"averageDailySpending"`
	SafeDailyBudget            decimal.Decimal   `json:"safeDailyBudget"`
	DaysRemaining              int               `json:"daysRemaining"`
}

// DailyPrediction is the projected balance on one day.
type DailyPrediction struct {
	Date             string          `json:"date"`
	PredictedBalance decimal.Decimal `json:"predictedBalance"`
}

// AnomalyAlert flags a transaction that deviates from its category average.
type AnomalyAlert struct {
	TransactionID       string          `json:"transactionId"`
	CategoryName        string          `json:"categoryName"`
	Date                string          `json:"date"`
	Message             string          `json:"message"`
	Amount              decimal.Decimal `json:"amount"`
	CategoryAverage     decimal.Decimal `json:"categoryAverage"`
	DeviationPercentage float64         `json:"deviationPercentage"`
}
