package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Veraticus/smart-finance/internal/cli"
	"github.com/Veraticus/smart-finance/internal/common"
	"github.com/Veraticus/smart-finance/internal/dashboard"
	"github.com/Veraticus/smart-finance/internal/model"
	"github.com/Veraticus/smart-finance/internal/ofx"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "List, add, delete, and import transactions",
	}

	cmd.AddCommand(transactionsListCmd())
	cmd.AddCommand(transactionsAddCmd())
	cmd.AddCommand(transactionsDeleteCmd())
	cmd.AddCommand(transactionsImportCmd())

	return cmd
}

func transactionsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			sess, err := a.currentSession()
			if err != nil {
				return err
			}

			vm := a.dashboard.LoadAll(cmd.Context(), sess.UserID)
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderTransactions(vm, sess.Currency))
			return nil
		},
	}
}

func transactionsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense or income",
		Long: `Record a transaction. Transactions are expenses dated today unless
--income or --date say otherwise.

Examples:
  finance transactions add --amount 12.50 --category Food
  finance transactions add --amount 2400 --category Salary --income --date 2024-05-31`,
		Args: cobra.NoArgs,
		RunE: runTransactionsAdd,
	}

	cmd.Flags().StringP("amount", "a", "", "amount, always positive")
	cmd.Flags().StringP("category", "c", "", "category name or ID")
	cmd.Flags().Bool("income", false, "record money coming in")
	cmd.Flags().StringP("date", "d", "", "transaction date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func runTransactionsAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	amountText, _ := cmd.Flags().GetString("amount")
	categoryRef, _ := cmd.Flags().GetString("category")
	income, _ := cmd.Flags().GetBool("income")
	dateText, _ := cmd.Flags().GetString("date")

	amount, err := decimal.NewFromString(amountText)
	if err != nil {
		return common.Invalid("amount", fmt.Sprintf("%q is not a number", amountText))
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	draft, err := a.dashboard.NewTransactionDraft()
	if err != nil {
		return err
	}
	draft.Amount = amount
	if income {
		draft.Sign = model.SignPositive
	}
	if dateText != "" {
		date, err := model.ParseDate(dateText)
		if err != nil {
			return common.Invalid("date", err.Error())
		}
		draft.TransactionDate = date.Time
	}

	categories, err := a.client.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	category, err := resolveCategory(categories, categoryRef)
	if err != nil {
		return err
	}
	draft.CategoryID = category.ID

	created, err := a.dashboard.CreateTransaction(ctx, draft)
	if err != nil {
		return err
	}

	sess, _ := a.currentSession()
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Recorded %s in %s (%s)",
		cli.FormatSigned(created.Amount, created.Sign, sess.Currency), category.Name, created.ID)))
	return nil
}

func transactionsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <transaction-id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.dashboard.DeleteTransaction(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted transaction "+args[0]))
			return nil
		},
	}
}

func transactionsImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a bank statement (OFX/QFX)",
		Long: `Import every entry of an OFX or QFX statement exported from your bank.
Debits become expenses and credits become income. All entries are filed under
the category given with --category.

Every entry is checked before anything is sent. The import stops at the first
entry the server rejects; entries created before it are kept.

Examples:
  finance transactions import ~/Downloads/checking_may.qfx --category Groceries
  finance transactions import statement.ofx --category c1 --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: runTransactionsImport,
	}

	cmd.Flags().StringP("category", "c", "", "category name or ID for every entry")
	cmd.Flags().BoolP("dry-run", "d", false, "show what would be imported without sending anything")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func runTransactionsImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	path := args[0]

	category, _ := cmd.Flags().GetString("category")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	f, err := os.Open(path)
	if err != nil {
		return common.NewUserError("Could not open "+path, err)
	}
	entries, err := ofx.NewParser().ParseFile(ctx, f)
	_ = f.Close()
	if err != nil {
		return common.NewUserError("Could not read the statement "+filepath.Base(path), err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, cli.FormatWarning("No entries found in "+filepath.Base(path)))
		return nil
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

	if dryRun {
		fmt.Fprintln(out, renderEntries(entries, sess.Currency))
		fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Dry run: %d entries would be imported", len(entries))))
		return nil
	}

	// Categories must be loaded for the import to resolve the target.
	a.dashboard.LoadAll(ctx, sess.UserID)

	progress := cli.NewProgress(cmd.ErrOrStderr(), len(entries), "Importing "+filepath.Base(path))
	created, err := a.dashboard.ImportStatement(ctx, ofx.Drafts(entries, sess.UserID), category, progress.Step)
	progress.Done()
	if err != nil {
		if created > 0 {
			fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Imported %d of %d entries before the failure", created, len(entries))))
		}
		return err
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d entries", created)))
	return nil
}

func renderEntries(entries []ofx.Entry, currency string) string {
	vm := dashboard.ViewModel{}
	for _, e := range entries {
		vm.Transactions = append(vm.Transactions, model.Transaction{
			ID:              e.Name,
			Amount:          e.Amount,
			Sign:            e.Sign,
			TransactionDate: model.NewTimestamp(e.Date),
		})
	}
	return cli.RenderTransactions(vm, currency)
}

// resolveCategory finds a category by ID, then by name.
func resolveCategory(categories []model.Category, ref string) (model.Category, error) {
	if c, ok := model.LookupCategory(categories, ref); ok {
		return c, nil
	}
	return model.Category{}, common.Invalid("category", fmt.Sprintf("%q is not a known category", ref))
}
