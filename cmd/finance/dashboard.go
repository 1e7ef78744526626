package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/smart-finance/internal/cli"
	"github.com/Veraticus/smart-finance/internal/dashboard"
	"github.com/Veraticus/smart-finance/internal/model"
)

// dashboardJSON is the machine-readable form of a loaded dashboard.
type dashboardJSON struct {
	Stats        *model.DashboardStats `json:"stats"`
	Forecast     *model.Forecast       `json:"forecast"`
	User         dashboardUser         `json:"user"`
	Transactions []model.Transaction   `json:"transactions"`
	Categories   []model.Category      `json:"categories"`
	Goals        []model.Goal          `json:"goals"`
}

type dashboardUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Currency string `json:"currency"`
	ID       int64  `json:"id"`
}

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show balances, spending, goals, and the forecast",
		Long: `Load every resource of the logged-in user and render one view.

Views: overview, transactions, goals, scan, forecast.`,
		Args: cobra.NoArgs,
		RunE: runDashboard,
	}

	cmd.Flags().Bool("json", false, "print the loaded data as JSON")
	cmd.Flags().String("view", string(dashboard.ViewOverview), "view to render")

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	asJSON, _ := cmd.Flags().GetBool("json")
	viewName, _ := cmd.Flags().GetString("view")

	view, err := dashboard.ParseView(viewName)
	if err != nil {
		return err
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sess, err := a.currentSession()
	if err != nil {
		return err
	}

	vm := loadDashboard(a, cmd, sess.UserID, !asJSON && interactive(cmd.ErrOrStderr()))
	if asJSON {
		return writeDashboardJSON(cmd.OutOrStdout(), sess, vm)
	}

	a.dashboard.SetView(view)
	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderView(a.dashboard.Snapshot(), sess.Currency))
	return nil
}

// loadDashboard runs a full load, ticking a spinner on stderr as each
// resource lands when showProgress is set.
func loadDashboard(a *app, cmd *cobra.Command, userID int64, showProgress bool) dashboard.ViewModel {
	if !showProgress {
		return a.dashboard.LoadAll(cmd.Context(), userID)
	}

	progress := cli.NewProgress(cmd.ErrOrStderr(), -1, "Loading dashboard")
	unsubscribe := a.dashboard.Subscribe(func(dashboard.ViewModel) { progress.Step() })
	vm := a.dashboard.LoadAll(cmd.Context(), userID)
	unsubscribe()
	progress.Done()
	return vm
}

func writeDashboardJSON(w io.Writer, sess model.Session, vm dashboard.ViewModel) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(dashboardJSON{
		User: dashboardUser{
			ID:       sess.UserID,
			Name:     sess.Name,
			Email:    sess.Email,
			Currency: sess.Currency,
		},
		Stats:        vm.Stats,
		Forecast:     vm.Forecast,
		Transactions: vm.Transactions,
		Categories:   vm.Categories,
		Goals:        vm.Goals,
	})
}

// interactive reports whether w is a terminal.
func interactive(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
