package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindCategoryByName(t *testing.T) {
	categories := []Category{
		{ID: "c1", Name: "Food"},
		{ID: "c2", Name: "Transport"},
		{ID: "c3", Name: "food"},
	}

	tests := []struct {
		name   string
		query  string
		wantID string
		found  bool
	}{
		{name: "exact", query: "Food", wantID: "c1", found: true},
		{name: "case insensitive returns first", query: "FOOD", wantID: "c1", found: true},
		{name: "padding is not trimmed", query: "Transport ", found: false},
		{name: "no partial match", query: "Foo", found: false},
		{name: "empty", query: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindCategoryByName(categories, tt.query)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestLookupCategory(t *testing.T) {
	categories := []Category{
		{ID: "c1", Name: "Food"},
		{ID: "c2", Name: " Transport "},
	}

	tests := []struct {
		name   string
		ref    string
		wantID string
		found  bool
	}{
		{name: "by id", ref: "c2", wantID: "c2", found: true},
		{name: "id with padding", ref: " c1 ", wantID: "c1", found: true},
		{name: "name ignoring whitespace", ref: "  transport", wantID: "c2", found: true},
		{name: "unknown", ref: "Rent", found: false},
		{name: "blank", ref: "   ", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LookupCategory(categories, tt.ref)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestCategoryDisplayFallbacks(t *testing.T) {
	categories := []Category{{ID: "c1", Name: "Food", Color: "#ff0000"}, {ID: "c2"}}

	assert.Equal(t, "Food", CategoryName(categories, "c1"))
	assert.Equal(t, "#ff0000", CategoryColor(categories, "c1"))
	assert.Equal(t, UnknownCategoryName, CategoryName(categories, "c2"))
	assert.Equal(t, UnknownCategoryColor, CategoryColor(categories, "c2"))
	assert.Equal(t, UnknownCategoryName, CategoryName(categories, ""))
	assert.Equal(t, UnknownCategoryColor, CategoryColor(nil, "missing"))
}

func TestGoalsForUser(t *testing.T) {
	goals := []Goal{
		{ID: "g1", UserID: 1},
		{ID: "g2", UserID: 2},
		{ID: "g3", UserID: 1},
	}

	filtered := GoalsForUser(goals, 1)
	assert.Len(t, filtered, 2)
	assert.Equal(t, "g1", filtered[0].ID)
	assert.Equal(t, "g3", filtered[1].ID)
	assert.Empty(t, GoalsForUser(goals, 99))
}

func TestTransactionsForUser(t *testing.T) {
	txns := []Transaction{
		{ID: "t1", UserID: 3},
		{ID: "t2", UserID: 4},
	}

	filtered := TransactionsForUser(txns, 4)
	assert.Len(t, filtered, 1)
	assert.Equal(t, "t2", filtered[0].ID)
}

func TestGoalProgressBarPercent(t *testing.T) {
	assert.InDelta(t, 100, GoalProgress{Percentage: 140}.BarPercent(), 0.001)
	assert.InDelta(t, 42.5, GoalProgress{Percentage: 42.5}.BarPercent(), 0.001)
	assert.InDelta(t, 0, GoalProgress{Percentage: -3}.BarPercent(), 0.001)
}
