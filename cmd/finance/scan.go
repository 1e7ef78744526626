package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/smart-finance/internal/cli"
	"github.com/Veraticus/smart-finance/internal/common"
	"github.com/Veraticus/smart-finance/internal/model"
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Read a receipt and optionally record it",
		Long: `Send a receipt image or its text to the extraction service and show what was
read. With --commit the result is recorded as an expense: the category is
matched by name against your categories (falling back to the first one) and a
missing or unreadable date becomes today.`,
	}

	cmd.PersistentFlags().Bool("commit", false, "record the result as an expense")

	cmd.AddCommand(&cobra.Command{
		Use:   "file <path>",
		Short: "Scan a receipt image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, func(ctx context.Context, a *app) (model.OcrResult, error) {
				f, err := os.Open(args[0])
				if err != nil {
					return model.OcrResult{}, common.NewUserError("Could not open "+args[0], err)
				}
				defer func() { _ = f.Close() }()

				if err := a.scan.SelectFile(args[0], f); err != nil {
					return model.OcrResult{}, err
				}
				return a.scan.ScanFile(ctx)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "text <text>",
		Short: "Scan receipt text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, func(ctx context.Context, a *app) (model.OcrResult, error) {
				a.scan.SetText(strings.Join(args, " "))
				return a.scan.ScanText(ctx)
			})
		},
	})

	return cmd
}

func runScan(cmd *cobra.Command, scan func(context.Context, *app) (model.OcrResult, error)) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	commit, _ := cmd.Flags().GetBool("commit")

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sess, err := a.currentSession()
	if err != nil {
		return err
	}

	result, err := scan(ctx, a)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, cli.RenderScanResult(result))

	if !commit {
		return nil
	}

	// The reconciler matches against the loaded categories.
	a.dashboard.LoadAll(ctx, sess.UserID)
	created, err := a.dashboard.CommitScan(ctx, a.scan)
	if err != nil {
		return err
	}

	vm := a.dashboard.Snapshot()
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Recorded %s in %s on %s (%s)",
		cli.FormatSigned(created.Amount, created.Sign, sess.Currency),
		vm.CategoryName(created.CategoryID),
		created.TransactionDate.Format("2006-01-02"),
		created.ID)))
	return nil
}
