package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/smart-finance/internal/dashboard"
	"github.com/Veraticus/smart-finance/internal/model"
)

const (
	barWidth  = 20
	dateWidth = 12
	nameWidth = 18
)

// ProgressBar renders percent (clamped to [0, 100]) as a fixed-width bar.
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		width = barWidth
	}
	percent = math.Max(0, math.Min(100, percent))
	filled := int(math.Round(percent / 100 * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// RenderView renders the active view of vm.
func RenderView(vm dashboard.ViewModel, currency string) string {
	switch vm.View {
	case dashboard.ViewTransactions:
		return RenderTransactions(vm, currency)
	case dashboard.ViewGoals:
		return RenderGoals(vm, currency)
	case dashboard.ViewForecast:
		return RenderForecast(vm.Forecast, currency)
	case dashboard.ViewScan:
		return FormatInfo("Use 'finance scan file <path>' or 'finance scan text <text>' to read a receipt.")
	default:
		return RenderOverview(vm, currency)
	}
}

// RenderOverview renders the balance summary, the category breakdown, and
// goal progress.
func RenderOverview(vm dashboard.ViewModel, currency string) string {
	var b strings.Builder
	b.WriteString(FormatTitle("Overview"))
	b.WriteString("\n")

	if vm.Loading {
		b.WriteString(SubtleStyle.Render("Loading..."))
		b.WriteString("\n")
	}

	if vm.Stats == nil {
		b.WriteString(FormatWarning("Statistics are unavailable."))
		b.WriteString("\n")
		return b.String()
	}
	s := vm.Stats

	summary := fmt.Sprintf("Balance:        %s\n", BoldStyle.Render(FormatMoney(s.Balance, currency))) +
		fmt.Sprintf("Total income:   %s\n", IncomeStyle.Render(FormatMoney(s.TotalIncome, currency))) +
		fmt.Sprintf("Total expenses: %s\n", ExpenseStyle.Render(FormatMoney(s.TotalExpenses, currency))) +
		fmt.Sprintf("This month:     %s in, %s out\n",
			FormatMoney(s.MonthlyIncome, currency),
			FormatMoney(s.MonthlyExpenses, currency)) +
		fmt.Sprintf("Transactions:   %d", s.TotalTransactions)
	b.WriteString(RenderBox(WalletIcon+" Summary", summary))
	b.WriteString("\n")

	if len(s.CategoryBreakdown) > 0 {
		b.WriteString("\n")
		b.WriteString(TableHeaderStyle.Render(ChartIcon + " Spending by category"))
		b.WriteString("\n")
		for _, c := range s.CategoryBreakdown {
			fmt.Fprintf(&b, "%s %s %s %5.1f%%  %s\n",
				Swatch(c.Color),
				pad(c.CategoryName, nameWidth),
				ProgressBar(c.Percentage, barWidth),
				c.Percentage,
				FormatMoney(c.Total, currency))
		}
	}

	if len(s.GoalProgress) > 0 {
		b.WriteString("\n")
		b.WriteString(renderGoalProgress(s.GoalProgress, currency))
	}

	return b.String()
}

// RenderTransactions renders the transaction list with resolved category
// names, newest first as served.
func RenderTransactions(vm dashboard.ViewModel, currency string) string {
	var b strings.Builder
	b.WriteString(FormatTitle("Transactions"))
	b.WriteString("\n")

	if len(vm.Transactions) == 0 {
		if vm.Loading {
			b.WriteString(SubtleStyle.Render("Loading..."))
		} else {
			b.WriteString(SubtleStyle.Render("No transactions yet."))
		}
		b.WriteString("\n")
		return b.String()
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		TableCellStyle.Render(pad("Date", dateWidth)),
		TableCellStyle.Render(pad("Category", nameWidth+2)),
		TableCellStyle.Render("Amount"),
	)
	b.WriteString(TableHeaderStyle.Render(header))
	b.WriteString("\n")

	for _, t := range vm.Transactions {
		date := "-"
		if !t.TransactionDate.IsZero() {
			date = t.TransactionDate.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "%s %s %s  %s  %s\n",
			pad(date, dateWidth),
			Swatch(vm.CategoryColor(t.CategoryID)),
			pad(vm.CategoryName(t.CategoryID), nameWidth),
			FormatSigned(t.Amount, t.Sign, currency),
			SubtleStyle.Render(t.ID))
	}
	return b.String()
}

// RenderGoals renders the user's goals and, when statistics are loaded, how
// much of each has been spent.
func RenderGoals(vm dashboard.ViewModel, currency string) string {
	var b strings.Builder
	b.WriteString(FormatTitle("Goals"))
	b.WriteString("\n")

	if len(vm.Goals) == 0 {
		b.WriteString(SubtleStyle.Render("No goals yet."))
		b.WriteString("\n")
	}
	for _, g := range vm.Goals {
		period := ""
		if g.StartDate != nil || g.EndDate != nil {
			period = fmt.Sprintf(" (%s → %s)", dateOrDash(g.StartDate), dateOrDash(g.EndDate))
		}
		fmt.Fprintf(&b, "%s %s %s  %s%s  %s\n",
			TargetIcon,
			pad(vm.CategoryName(g.CategoryID), nameWidth),
			pad(string(g.Type), 8),
			FormatMoney(g.MaxAmount, currency),
			period,
			SubtleStyle.Render(g.ID))
	}

	if vm.Stats != nil && len(vm.Stats.GoalProgress) > 0 {
		b.WriteString("\n")
		b.WriteString(renderGoalProgress(vm.Stats.GoalProgress, currency))
	}
	return b.String()
}

// RenderForecast renders the end-of-month projection.
func RenderForecast(f *model.Forecast, currency string) string {
	var b strings.Builder
	b.WriteString(FormatTitle("Forecast"))
	b.WriteString("\n")

	if f == nil {
		b.WriteString(FormatWarning("The forecast is unavailable."))
		b.WriteString("\n")
		return b.String()
	}

	summary := fmt.Sprintf("Predicted balance:  %s\n", BoldStyle.Render(FormatMoney(f.PredictedEndOfMonthBalance, currency))) +
		fmt.Sprintf("Predicted expenses: %s\n", FormatMoney(f.PredictedMonthlyExpenses, currency)) +
		fmt.Sprintf("Average per day:    %s\n", FormatMoney(f.AverageDailySpending, currency)) +
		fmt.Sprintf("Safe daily budget:  %s\n", FormatMoney(f.SafeDailyBudget, currency)) +
		fmt.Sprintf("Days remaining:     %d", f.DaysRemaining)
	b.WriteString(RenderBox(ForecastIcon+" End of month", summary))
	b.WriteString("\n")

	if f.Recommendation != "" {
		b.WriteString(FormatInfo(f.Recommendation))
		b.WriteString("\n")
	}

	if len(f.Anomalies) > 0 {
		b.WriteString("\n")
		b.WriteString(TableHeaderStyle.Render(WarningIcon + " Unusual transactions"))
		b.WriteString("\n")
		for _, a := range f.Anomalies {
			fmt.Fprintf(&b, "%s %s %s  +%.0f%% vs %s  %s\n",
				pad(a.Date, dateWidth),
				pad(a.CategoryName, nameWidth),
				FormatMoney(a.Amount, currency),
				a.DeviationPercentage,
				FormatMoney(a.CategoryAverage, currency),
				SubtleStyle.Render(a.Message))
		}
	}
	return b.String()
}

// RenderScanResult renders what the OCR service read from a receipt.
func RenderScanResult(r model.OcrResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Amount:      %s\n", FormatMoney(r.Amount, r.Currency))
	fmt.Fprintf(&b, "Category:    %s\n", valueOrDash(r.Category))
	fmt.Fprintf(&b, "Date:        %s\n", valueOrDash(r.Date))
	if r.ItemName != "" {
		fmt.Fprintf(&b, "Item:        %s\n", r.ItemName)
	}
	if r.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", r.Description)
	}
	fmt.Fprintf(&b, "Confidence:  %.0f%%", r.Confidence*100)
	return RenderBox(ReceiptIcon+" Receipt", b.String())
}

func renderGoalProgress(progress []model.GoalProgress, currency string) string {
	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(TargetIcon + " Goal progress"))
	b.WriteString("\n")
	for _, g := range progress {
		bar := ProgressBar(g.BarPercent(), barWidth)
		if g.Exceeded {
			bar = ErrorStyle.Render(bar)
		} else {
			bar = SuccessStyle.Render(bar)
		}
		fmt.Fprintf(&b, "%s %s %5.1f%%  %s / %s\n",
			pad(g.CategoryName, nameWidth),
			bar,
			g.Percentage,
			FormatMoney(g.CurrentSpent, currency),
			FormatMoney(g.MaxAmount, currency))
	}
	return b.String()
}

func pad(s string, width int) string {
	return lipgloss.NewStyle().Width(width).MaxWidth(width).Render(s)
}

func dateOrDash(d *model.Date) string {
	if d == nil {
		return "-"
	}
	return d.String()
}

func valueOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
