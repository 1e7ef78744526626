package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Veraticus/smart-finance/internal/cli"
	"github.com/Veraticus/smart-finance/internal/common"
	"github.com/Veraticus/smart-finance/internal/model"
)

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage spending goals",
		Long:  `A goal caps how much you want to spend in a category per month or per year.`,
	}

	cmd.AddCommand(goalsListCmd())
	cmd.AddCommand(goalsAddCmd())
	cmd.AddCommand(goalsDeleteCmd())

	return cmd
}

func goalsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your goals and their progress",
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
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderGoals(vm, sess.Currency))
			return nil
		},
	}
}

func goalsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a spending goal",
		Long: `Create a spending goal.

Examples:
  finance goals add --category Food --max 300
  finance goals add --category Travel --max 2000 --type yearly --start 2024-01-01 --end 2024-12-31`,
		Args: cobra.NoArgs,
		RunE: runGoalsAdd,
	}

	cmd.Flags().StringP("category", "c", "", "category name or ID")
	cmd.Flags().StringP("max", "m", "", "maximum amount for the period")
	cmd.Flags().StringP("type", "t", string(model.GoalMonthly), "period: monthly or yearly")
	cmd.Flags().String("start", "", "first day of the goal (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "last day of the goal (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("max")

	return cmd
}

func runGoalsAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	categoryRef, _ := cmd.Flags().GetString("category")
	maxText, _ := cmd.Flags().GetString("max")
	goalType, _ := cmd.Flags().GetString("type")
	startText, _ := cmd.Flags().GetString("start")
	endText, _ := cmd.Flags().GetString("end")

	maxAmount, err := decimal.NewFromString(maxText)
	if err != nil {
		return common.Invalid("max", fmt.Sprintf("%q is not a number", maxText))
	}

	goal := model.Goal{
		MaxAmount: maxAmount,
		Type:      model.GoalType(strings.ToUpper(strings.TrimSpace(goalType))),
	}
	if goal.StartDate, err = optionalDate("start", startText); err != nil {
		return err
	}
	if goal.EndDate, err = optionalDate("end", endText); err != nil {
		return err
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	categories, err := a.client.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	category, err := resolveCategory(categories, categoryRef)
	if err != nil {
		return err
	}
	goal.CategoryID = category.ID

	created, err := a.dashboard.CreateGoal(ctx, goal)
	if err != nil {
		return err
	}

	sess, _ := a.currentSession()
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Goal set: %s %s at most %s (%s)",
		strings.ToLower(string(created.Type)), category.Name, cli.FormatMoney(created.MaxAmount, sess.Currency), created.ID)))
	return nil
}

func goalsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <goal-id>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.dashboard.DeleteGoal(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted goal "+args[0]))
			return nil
		},
	}
}

func optionalDate(field, text string) (*model.Date, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	d, err := model.ParseDate(text)
	if err != nil {
		return nil, common.Invalid(field, err.Error())
	}
	return &d, nil
}
