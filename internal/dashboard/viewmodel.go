// Package dashboard aggregates the backend resources of the current user into
// a single view model and runs the write-then-reload mutations against it.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/Veraticus/smart-finance/internal/model"
)

// View is the section of the dashboard the user is looking at.
type View string

// Dashboard views.
const (
	ViewOverview     View = "overview"
	ViewTransactions View = "transactions"
	ViewGoals        View = "goals"
	ViewScan         View = "scan"
	ViewForecast     View = "forecast"
)

// Views lists every view in display order.
var Views = []View{ViewOverview, ViewTransactions, ViewGoals, ViewScan, ViewForecast}

// ParseView parses a view name.
func ParseView(s string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Views {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// ViewModel is the joined state of every dashboard resource. Each field is
// replaced wholesale when its own fetch succeeds and is otherwise left as it
// was. Values handed out are shared and must be treated as read-only.
type ViewModel struct {
	Stats        *model.DashboardStats
	Forecast     *model.Forecast
	View         View
	Transactions []model.Transaction
	Categories   []model.Category
	Goals        []model.Goal
	// Generation identifies the load run the model belongs to.
	Generation uint64
	Loading    bool
}

// CategoryName returns the display name of a category id.
func (vm ViewModel) CategoryName(id string) string {
	return model.CategoryName(vm.Categories, id)
}

// CategoryColor returns the display color of a category id.
func (vm ViewModel) CategoryColor(id string) string {
	return model.CategoryColor(vm.Categories, id)
}

func removeTransaction(txns []model.Transaction, id string) []model.Transaction {
	kept := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return kept
}

func removeGoal(goals []model.Goal, id string) []model.Goal {
	kept := make([]model.Goal, 0, len(goals))
	for _, g := range goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	return kept
}
