package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/debtburn/internal/cli"
	"github.com/theirongolddev/debtburn/internal/model"
	"github.com/theirongolddev/debtburn/internal/pipeline"
	"github.com/theirongolddev/debtburn/internal/portfolio"
)

var flagLoan portfolio.LoanForm

var loansCmd = &cobra.Command{
	Use:   "loans",
	Short: "List and manage loans",
	RunE:  runLoansList,
}

var loansListCmd = &cobra.Command{
	Use:   "list",
	Short: "List loans",
	RunE:  runLoansList,
}

var loansAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a loan",
	Example: `  debtburn loans add --name "Chase Freedom Card" --balance 5500 --original 8000 \
    --rate 22.99 --min 165 --type credit-card`,
	RunE: runLoansAdd,
}

var loansEditCmd = &cobra.Command{
	Use:   "edit <id|name>",
	Short: "Change a loan; only the flags given are updated",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoansEdit,
}

var loansRmCmd = &cobra.Command{
	Use:     "rm <id|name>",
	Aliases: []string{"delete"},
	Short:   "Remove a loan",
	Args:    cobra.ExactArgs(1),
	RunE:    runLoansRm,
}

func init() {
	for _, c := range []*cobra.Command{loansAddCmd, loansEditCmd} {
		c.Flags().StringVar(&flagLoan.Name, "name", "", "Loan name")
		c.Flags().StringVar(&flagLoan.Balance, "balance", "", "Current balance")
		c.Flags().StringVar(&flagLoan.OriginalBalance, "original", "", "Original balance (defaults to balance)")
		c.Flags().StringVar(&flagLoan.InterestRate, "rate", "", "Annual interest rate in percent")
		c.Flags().StringVar(&flagLoan.MinimumPayment, "min", "", "Minimum monthly payment")
		c.Flags().StringVar(&flagLoan.Type, "type", "", "credit-card, personal, auto, student, or mortgage")
	}

	loansCmd.AddCommand(loansListCmd, loansAddCmd, loansEditCmd, loansRmCmd)
	rootCmd.AddCommand(loansCmd)
}

func runLoansList(cmd *cobra.Command, _ []string) error {
	ctx := cmdContext(cmd)
	a, err := openApp(ctx, appOptions{seed: true})
	if err != nil {
		return err
	}
	defer a.Close()

	loans, err := a.svc.Loans(ctx)
	if err != nil {
		return err
	}
	if len(loans) == 0 {
		fmt.Println("\n  No loans yet. Add one with `debtburn loans add`.")
		return nil
	}

	rows := make([][]string, 0, len(loans)+2)
	for _, l := range loans {
		rows = append(rows, []string{
			shortID(l.ID),
			l.Name,
			l.Type.Label(),
			cli.FormatMoney(l.Balance),
			cli.FormatMoney(l.OriginalBalance),
			cli.FormatRate(l.InterestRate),
			cli.FormatMoney(l.MinimumPayment),
			cli.FormatPercent(pipeline.PayoffProgressPercent(l)),
		})
	}
	rows = append(rows, []string{"---"}, []string{
		"", "Total", "",
		cli.FormatMoney(pipeline.TotalBalance(loans)),
		cli.FormatMoney(pipeline.TotalOriginalBalance(loans)),
		cli.FormatRate(pipeline.WeightedAverageInterestRate(loans)),
		cli.FormatMoney(pipeline.TotalMinimumPayment(loans)),
		"",
	})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Loans (%d)", len(loans)),
		Headers: []string{"ID", "Name", "Type", "Balance", "Original", "Rate", "Minimum", "Paid Off"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runLoansAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmdContext(cmd)
	a, err := openApp(ctx, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	l, err := a.svc.AddLoan(ctx, flagLoan)
	if err != nil {
		return err
	}
	fmt.Printf("  Added %s (%s)\n", l.Name, shortID(l.ID))
	return nil
}

func runLoansEdit(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)
	a, err := openApp(ctx, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	loans, err := a.svc.Loans(ctx)
	if err != nil {
		return err
	}
	current, err := findLoan(loans, args[0])
	if err != nil {
		return err
	}

	form := portfolio.FormFromLoan(current)
	overrideString(cmd, "name", &form.Name, flagLoan.Name)
	overrideString(cmd, "balance", &form.Balance, flagLoan.Balance)
	overrideString(cmd, "original", &form.OriginalBalance, flagLoan.OriginalBalance)
	overrideString(cmd, "rate", &form.InterestRate, flagLoan.InterestRate)
	overrideString(cmd, "min", &form.MinimumPayment, flagLoan.MinimumPayment)
	overrideString(cmd, "type", &form.Type, flagLoan.Type)

	l, err := a.svc.UpdateLoan(ctx, current.ID, form)
	if err != nil {
		return err
	}
	fmt.Printf("  Updated %s (%s)\n", l.Name, shortID(l.ID))
	return nil
}

func runLoansRm(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)
	a, err := openApp(ctx, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	loans, err := a.svc.Loans(ctx)
	if err != nil {
		return err
	}
	l, err := findLoan(loans, args[0])
	if err != nil {
		return err
	}
	if err := a.svc.DeleteLoan(ctx, l.ID); err != nil {
		return err
	}
	fmt.Printf("  Removed %s\n", l.Name)
	return nil
}

func findLoan(loans []model.Loan, ref string) (model.Loan, error) {
	i, err := resolveRef(len(loans), ref, func(i int) (string, string) { return loans[i].ID, loans[i].Name })
	if err != nil {
		return model.Loan{}, fmt.Errorf("loan %w", err)
	}
	return loans[i], nil
}
