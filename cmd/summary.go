package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/debtburn/internal/cli"
	"github.com/theirongolddev/debtburn/internal/pipeline"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Financial summary of loans and bills",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	ctx := cmdContext(cmd)
	a, err := openApp(ctx, appOptions{seed: true})
	if err != nil {
		return err
	}
	defer a.Close()

	snap, err := a.snapshot(ctx)
	if err != nil {
		return err
	}
	if snap.Empty() {
		fmt.Println("\n  No loans or bills yet.")
		fmt.Println("  Add one with `debtburn loans add`, or try `debtburn seed`.")
		return nil
	}

	m := snap.Summary()

	fmt.Println()
	fmt.Println(cli.RenderTitle("DEBT SUMMARY"))
	fmt.Println()

	rows := [][]string{
		{"Loans", cli.FormatNumber(int64(m.LoanCount))},
		{"Bills", cli.FormatNumber(int64(m.BillCount))},
		{"---"},
		{"Total Debt", cli.FormatMoney(m.TotalBalance)},
		{"Original Debt", cli.FormatMoney(m.TotalOriginalBalance)},
		{"Paid Off", fmt.Sprintf("%s  (%s)", cli.FormatMoney(m.TotalPaidOff), cli.FormatPercent(m.ProgressPercent))},
		{"---"},
		{"Minimum Payments", cli.FormatMoney(m.TotalMinimumPayment) + "/mo"},
		{"Monthly Bills", cli.FormatMoney(m.TotalBillAmount) + "/mo"},
		{"Monthly Expenses", cli.FormatMoney(m.MonthlyExpenses) + "/mo"},
		{"---"},
		{"Avg Interest Rate", cli.FormatRate(m.WeightedAverageRate)},
		{"Monthly Interest", cli.FormatMoney(m.MonthlyInterest)},
		{"Yearly Interest", cli.FormatMoney(m.YearlyInterest)},
	}
	if m.HasHighestInterest {
		rows = append(rows, []string{"---"},
			[]string{"Highest Interest", fmt.Sprintf("%s  (%s)", m.HighestInterest.Name, cli.FormatRate(m.HighestInterest.InterestRate))})
	}
	if m.HasSmallestBalance {
		rows = append(rows,
			[]string{"Smallest Balance", fmt.Sprintf("%s  (%s)", m.SmallestBalance.Name, cli.FormatMoney(m.SmallestBalance.Balance))})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Overview",
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if m.LoanCount > 0 {
		fmt.Println()
		loanRows := make([][]string, 0, len(snap.Loans))
		for _, l := range snap.Loans {
			loanRows = append(loanRows, []string{
				l.Name,
				l.Type.Label(),
				cli.FormatMoney(l.Balance),
				cli.FormatRate(l.InterestRate),
				cli.FormatMoney(l.MinimumPayment),
				cli.RenderProgressBar(pipeline.PayoffProgressPercent(l), 10),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Loans",
			Headers: []string{"Name", "Type", "Balance", "Rate", "Minimum", "Paid Off"},
			Rows:    loanRows,
		}))
	}

	if m.BillCount > 0 {
		fmt.Println()
		billRows := make([][]string, 0, len(snap.Bills))
		for _, b := range snap.Bills {
			billRows = append(billRows, []string{
				b.Name,
				b.Category.Label(),
				cli.FormatMoney(b.Amount),
				fmt.Sprintf("day %d", b.DueDate),
				snap.BillSchedule(b).Label,
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Bills",
			Headers: []string{"Name", "Category", "Amount", "Due", "Status"},
			Rows:    billRows,
		}))
	}

	if m.LoanCount > 0 {
		extra, err := a.extra()
		if err != nil {
			return err
		}
		sim := snap.Simulate(extra)
		fmt.Println()
		if sim.Never {
			fmt.Print(cli.RenderBanner("Payments never cover the interest. Try a larger --extra.", false))
		} else {
			fmt.Print(cli.RenderBanner(fmt.Sprintf("Debt-free by %s (%s) paying %s/mo",
				cli.FormatDebtFreeDate(sim.DebtFreeDate), cli.FormatMonths(sim.Current.Months),
				cli.FormatMoney(sim.MonthlyPayment)), true))
		}
	}
	fmt.Println()

	return nil
}

// cmdContext returns the command's context, or Background when run outside
// ExecuteContext.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
