package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/finance-tracker/insights/internal/domain/entity"
	"github.com/finance-tracker/insights/internal/integration/entrypoint/dto"
)

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show total income, total expenses and balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			views, err := loadViews(cmd.Context())
			if err != nil {
				return err
			}

			summary := dto.ToSummaryResponse(views.Summary)
			if jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), summary)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(w, "Total income\t%s\t\n", summary.TotalIncome)
			fmt.Fprintf(w, "Total expenses\t%s\t\n", summary.TotalExpenses)
			fmt.Fprintf(w, "Balance\t%s\t\n", summary.Balance)
			return w.Flush()
		},
	}
}

func categoriesCmd() *cobra.Command {
	var txnType string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Show the category breakdown for one transaction type",
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := entity.ParseTransactionType(txnType)
			if err != nil {
				return err
			}

			views, err := loadViews(cmd.Context())
			if err != nil {
				return err
			}

			breakdown := dto.ToBreakdownResponse(parsed, views.Breakdown(parsed))
			if jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), breakdown)
			}
			return printBreakdown(cmd.OutOrStdout(), breakdown)
		},
	}

	cmd.Flags().StringVarP(&txnType, "type", "t", "expense", "transaction type (expense, income)")

	return cmd
}

func monthlyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "monthly",
		Short: "Show income, expenses and net per month, oldest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			views, err := loadViews(cmd.Context())
			if err != nil {
				return err
			}

			points := dto.ToMonthlyResponse(views.Series)
			if jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), points)
			}
			return printMonthly(cmd.OutOrStdout(), points)
		},
	}
}

func viewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "views",
		Short: "Show every dashboard view",
		RunE: func(cmd *cobra.Command, _ []string) error {
			views, err := loadViews(cmd.Context())
			if err != nil {
				return err
			}

			response := dto.ToDashboardResponse(views, false)
			if jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), response)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Income %s  Expenses %s  Balance %s\n\n",
				response.Summary.TotalIncome, response.Summary.TotalExpenses, response.Summary.Balance)
			if err := printBreakdown(out, response.Expenses); err != nil {
				return err
			}
			fmt.Fprintln(out)
			if err := printBreakdown(out, response.Income); err != nil {
				return err
			}
			fmt.Fprintln(out)
			return printMonthly(out, response.Monthly)
		},
	}
}

func printBreakdown(out io.Writer, breakdown dto.BreakdownResponse) error {
	if len(breakdown.Items) == 0 {
		fmt.Fprintf(out, "No %s transactions.\n", breakdown.Type)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "CATEGORY\tAMOUNT\tSHARE\n")
	for _, item := range breakdown.Items {
		fmt.Fprintf(w, "%s\t%s\t%s%%\n", item.Category, item.Amount, item.Percentage)
	}
	fmt.Fprintf(w, "Total %s\t%s\t\n", breakdown.Type, breakdown.Total)
	return w.Flush()
}

func printMonthly(out io.Writer, points []dto.MonthlyPointResponse) error {
	if len(points) == 0 {
		fmt.Fprintln(out, "No monthly data.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "MONTH\tINCOME\tEXPENSES\tNET\n")
	for _, point := range points {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", point.Label, point.Income, point.Expenses, point.Net)
	}
	return w.Flush()
}
