package model

import "github.com/shopspring/decimal"

// GoalType is the budgeting period of a goal.
type GoalType string

const (
	// GoalMonthly caps spending per calendar month.
	GoalMonthly GoalType = "MONTHLY"
	// GoalYearly caps spending per calendar year.
	GoalYearly GoalType = "YEARLY"
)

// Valid reports whether g is one of the known goal types.
func (g GoalType) Valid() bool {
	return g == GoalMonthly || g == GoalYearly
}

// Goal is a spending cap on a category for a period.
type Goal struct {
	StartDate  *Date           `json:"startDate,omitempty"`
	EndDate    *Date           `json:"endDate,omitempty"`
	MaxAmount  decimal.Decimal `json:"maxAmount"`
	ID         string          `json:"id,omitempty"`
	CategoryID string          `json:"categoryId,omitempty"`
	Type       GoalType        `json:"type"`
	UserID     int64           `json:"userId"`
}

// GoalsForUser returns the goals belonging to userID, preserving order.
func GoalsForUser(goals []Goal, userID int64) []Goal {
	filtered := make([]Goal, 0, len(goals))
	for _, g := range goals {
		if g.UserID == userID {
			filtered = append(filtered, g)
		}
	}
	return filtered
}
