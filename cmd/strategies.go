package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/debtburn/internal/cli"
	"github.com/theirongolddev/debtburn/internal/model"
	"github.com/theirongolddev/debtburn/internal/pipeline"
)

// Loans listed per strategy before the rest are summarised.
const orderShown = 3

var strategiesCmd = &cobra.Command{
	Use:     "strategies",
	Aliases: []string{"compare"},
	Short:   "Compare avalanche and snowball payoff strategies",
	RunE:    runStrategies,
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}

func runStrategies(cmd *cobra.Command, _ []string) error {
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
		fmt.Println("\n  No loans to compare. Add one with `debtburn loans add`.")
		return nil
	}

	extra, err := a.extra()
	if err != nil {
		return err
	}
	cmp := snap.Compare(extra)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PAYOFF STRATEGIES  +%s/mo", cli.FormatMoney(extra))))
	fmt.Println()

	mark := func(s model.Strategy) string {
		if s == cmp.Recommended {
			return s.Title() + " *"
		}
		return s.Title()
	}
	av, sb := cmp.Avalanche, cmp.Snowball

	rows := [][]string{
		{"Total Interest", cli.FormatMoney(av.TotalInterest), cli.FormatMoney(sb.TotalInterest)},
		{"Time to Payoff", cli.FormatMonths(av.TimeToPayoff), cli.FormatMonths(sb.TimeToPayoff)},
		{"Monthly Payment", cli.FormatMoney(av.MonthlyPayment), cli.FormatMoney(sb.MonthlyPayment)},
		{"---"},
	}
	for i := 0; i < len(av.Order) && i <= orderShown; i++ {
		label := ""
		if i == 0 {
			label = "Payoff Order"
		}
		rows = append(rows, []string{label, orderEntry(av.Order, i, false), orderEntry(sb.Order, i, true)})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"", mark(model.Avalanche), mark(model.Snowball)},
		Rows:    rows,
	}))

	fmt.Println()
	for _, s := range []model.Strategy{model.Avalanche, model.Snowball} {
		curve := pipeline.StrategyBalanceCurve(snap.Loans, extra, s)
		fmt.Printf("  %-10s %s\n", s.Title(), cli.RenderSparkline(cli.Downsample(curve, 60)))
	}

	fmt.Println()
	if cmp.Savings > 100 {
		fmt.Print(cli.RenderBanner(fmt.Sprintf("The %s method could save you %s in interest.",
			cmp.Recommended.Title(), cli.FormatMoney(cmp.Savings)), true))
	} else {
		fmt.Println("  " + cli.Muted(fmt.Sprintf("Both methods cost about the same. %s is recommended.", cmp.Recommended.Title())))
	}
	fmt.Println()

	return nil
}

// orderEntry renders row i of a payoff order, folding everything past
// orderShown into a "+N more loans" line.
func orderEntry(order []model.Loan, i int, byBalance bool) string {
	switch {
	case i >= len(order):
		return ""
	case i == orderShown:
		return fmt.Sprintf("+%d more loans", len(order)-orderShown)
	}
	l := order[i]
	detail := cli.FormatRate(l.InterestRate)
	if byBalance {
		detail = cli.FormatMoney(l.Balance)
	}
	return fmt.Sprintf("%d. %s (%s)", i+1, strings.TrimSpace(l.Name), detail)
}
