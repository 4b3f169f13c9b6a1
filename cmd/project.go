package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/debtburn/internal/cli"
	"github.com/theirongolddev/debtburn/internal/pipeline"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project payoff time and interest for an extra monthly payment",
	RunE:  runProject,
}

func init() {
	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, _ []string) error {
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
	if len(snap.Loans) == 0 {
		fmt.Println("\n  No loans to project. Add one with `debtburn loans add`.")
		return nil
	}

	extra, err := a.extra()
	if err != nil {
		return err
	}
	sim := snap.Simulate(extra)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PAYOFF PROJECTION  +%s/mo", cli.FormatMoney(extra))))
	fmt.Println()

	never := func(v string) string {
		if sim.Never {
			return "Never"
		}
		return v
	}
	baselineInterest := cli.FormatMoney(sim.Baseline.TotalInterest)
	if pipeline.IsNever(sim.Baseline) {
		baselineInterest = "Never"
	}

	rows := [][]string{
		{"Extra Payment", cli.FormatMoney(sim.Extra), ""},
		{"Monthly Payment", cli.FormatMoney(sim.MonthlyPayment), cli.FormatMoney(sim.MonthlyPayment - sim.Extra)},
		{"With Bills", cli.FormatMoney(sim.WithBills), cli.FormatMoney(sim.WithBills - sim.Extra)},
		{"---"},
		{"Time to Payoff", cli.FormatMonths(sim.Current.Months), cli.FormatMonths(sim.Baseline.Months)},
		{"Total Interest", never(cli.FormatMoney(sim.Current.TotalInterest)), baselineInterest},
		{"Debt-Free", cli.FormatDebtFreeDate(sim.DebtFreeDate), ""},
	}
	if !sim.Never && extra > 0 {
		rows = append(rows, []string{"---"},
			[]string{"Interest Saved", cli.FormatMoney(sim.InterestSaved), ""},
			[]string{"Time Saved", cli.FormatMonthsDelta(sim.MonthsSaved), ""})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "With Extra", "Minimums Only"},
		Rows:    rows,
	}))

	fmt.Println()
	switch {
	case sim.Never:
		fmt.Print(cli.RenderBanner("Payments never cover the interest. Raise --extra.", false))
	case extra > 0 && sim.InterestSaved > 0:
		fmt.Print(cli.RenderBanner(fmt.Sprintf("Paying %s extra saves %s and finishes %s.",
			cli.FormatMoney(extra), cli.FormatMoney(sim.InterestSaved), cli.FormatMonthsDelta(sim.MonthsSaved)), true))
	default:
		fmt.Println("  " + cli.Muted(fmt.Sprintf("Minimums only. Try --extra up to %s.", cli.FormatMoney(sim.MaxExtra))))
	}
	fmt.Println()

	return nil
}
