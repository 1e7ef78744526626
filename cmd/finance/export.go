package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Veraticus/smart-finance/internal/cli"
	"github.com/Veraticus/smart-finance/internal/common"
	"github.com/Veraticus/smart-finance/internal/config"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export reports",
	}

	pdf := &cobra.Command{
		Use:   "pdf",
		Short: "Download your PDF report",
		Args:  cobra.NoArgs,
		RunE:  runExportPDF,
	}
	pdf.Flags().StringP("output", "o", "", "output file (default from export.output, "+config.DefaultExportOutput+")")
	cmd.AddCommand(pdf)

	return cmd
}

func runExportPDF(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = a.cfg.Export.Output
	}
	output = config.ExpandPath(output)

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	// A failed download leaves nothing at output.
	tmp, err := os.CreateTemp(filepath.Dir(output), ".finance-report-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	n, err := a.dashboard.ExportPDF(ctx, tmp)
	if closeErr := tmp.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to write report: %w", closeErr)
	}
	if err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), output); err != nil {
		return common.NewUserError("Could not save the report to "+output, err)
	}

	common.LogInfo("Report saved", common.Fields{"path": output, "bytes": n})
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Saved report to %s (%d bytes)", output, n)))
	return nil
}
