package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/debtburn/internal/cli"
	"github.com/theirongolddev/debtburn/internal/model"
	"github.com/theirongolddev/debtburn/internal/pipeline"
	"github.com/theirongolddev/debtburn/internal/portfolio"
)

var (
	flagBill        portfolio.BillForm
	flagBillOneTime bool
)

var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "List and manage recurring bills",
	RunE:  runBillsList,
}

var billsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bills with due status",
	RunE:  runBillsList,
}

var billsAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Add a bill",
	Example: `  debtburn bills add --name Rent --amount 1200 --due 1 --category housing`,
	RunE:    runBillsAdd,
}

var billsEditCmd = &cobra.Command{
	Use:   "edit <id|name>",
	Short: "Change a bill; only the flags given are updated",
	Args:  cobra.ExactArgs(1),
	RunE:  runBillsEdit,
}

var billsRmCmd = &cobra.Command{
	Use:     "rm <id|name>",
	Aliases: []string{"delete"},
	Short:   "Remove a bill",
	Args:    cobra.ExactArgs(1),
	RunE:    runBillsRm,
}

func init() {
	for _, c := range []*cobra.Command{billsAddCmd, billsEditCmd} {
		c.Flags().StringVar(&flagBill.Name, "name", "", "Bill name")
		c.Flags().StringVar(&flagBill.Amount, "amount", "", "Monthly amount")
		c.Flags().StringVar(&flagBill.DueDate, "due", "", "Due day of month (1-31)")
		c.Flags().StringVar(&flagBill.Category, "category", "", "housing, utilities, insurance, subscriptions, or other")
		c.Flags().BoolVar(&flagBillOneTime, "one-time", false, "Bill does not recur monthly")
	}

	billsCmd.AddCommand(billsListCmd, billsAddCmd, billsEditCmd, billsRmCmd)
	rootCmd.AddCommand(billsCmd)
}

func runBillsList(cmd *cobra.Command, _ []string) error {
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
	if len(snap.Bills) == 0 {
		fmt.Println("\n  No bills yet. Add one with `debtburn bills add`.")
		return nil
	}

	rows := make([][]string, 0, len(snap.Bills)+2)
	for _, b := range snap.Bills {
		recurring := "monthly"
		if !b.IsRecurring {
			recurring = "one-time"
		}
		status := snap.BillSchedule(b)
		label := status.Label
		if status.Status != model.DueUpcoming {
			label = cli.Warn(label)
		}
		rows = append(rows, []string{
			shortID(b.ID),
			b.Name,
			b.Category.Label(),
			cli.FormatMoney(b.Amount),
			fmt.Sprintf("day %d", b.DueDate),
			recurring,
			label,
		})
	}
	rows = append(rows, []string{"---"}, []string{
		"", "Total", "", cli.FormatMoney(pipeline.TotalBillAmount(snap.Bills)), "", "", "",
	})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Bills (%d)", len(snap.Bills)),
		Headers: []string{"ID", "Name", "Category", "Amount", "Due", "Repeats", "Status"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runBillsAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmdContext(cmd)
	a, err := openApp(ctx, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	form := flagBill
	form.IsRecurring = !flagBillOneTime
	b, err := a.svc.AddBill(ctx, form)
	if err != nil {
		return err
	}
	fmt.Printf("  Added %s (%s)\n", b.Name, shortID(b.ID))
	return nil
}

func runBillsEdit(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)
	a, err := openApp(ctx, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	bills, err := a.svc.Bills(ctx)
	if err != nil {
		return err
	}
	current, err := findBill(bills, args[0])
	if err != nil {
		return err
	}

	form := portfolio.FormFromBill(current)
	overrideString(cmd, "name", &form.Name, flagBill.Name)
	overrideString(cmd, "amount", &form.Amount, flagBill.Amount)
	overrideString(cmd, "due", &form.DueDate, flagBill.DueDate)
	overrideString(cmd, "category", &form.Category, flagBill.Category)
	if cmd.Flags().Changed("one-time") {
		form.IsRecurring = !flagBillOneTime
	}

	b, err := a.svc.UpdateBill(ctx, current.ID, form)
	if err != nil {
		return err
	}
	fmt.Printf("  Updated %s (%s)\n", b.Name, shortID(b.ID))
	return nil
}

func runBillsRm(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)
	a, err := openApp(ctx, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	bills, err := a.svc.Bills(ctx)
	if err != nil {
		return err
	}
	b, err := findBill(bills, args[0])
	if err != nil {
		return err
	}
	if err := a.svc.DeleteBill(ctx, b.ID); err != nil {
		return err
	}
	fmt.Printf("  Removed %s\n", b.Name)
	return nil
}

func findBill(bills []model.Bill, ref string) (model.Bill, error) {
	i, err := resolveRef(len(bills), ref, func(i int) (string, string) { return bills[i].ID, bills[i].Name })
	if err != nil {
		return model.Bill{}, fmt.Errorf("bill %w", err)
	}
	return bills[i], nil
}

// ─── Shared record helpers ──────────────────────────────────────

var (
	errRefNotFound  = errors.New("not found")
	errRefAmbiguous = errors.New("is ambiguous")
)

// resolveRef finds the record an id, id prefix, or name refers to. An exact
// id wins, then a unique id prefix, then a unique case-insensitive name.
func resolveRef(n int, ref string, at func(i int) (id, name string)) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, fmt.Errorf("%q: %w", ref, errRefNotFound)
	}

	var prefix, named []int
	for i := 0; i < n; i++ {
		id, name := at(i)
		if id == ref {
			return i, nil
		}
		if strings.HasPrefix(id, ref) {
			prefix = append(prefix, i)
		}
		if strings.EqualFold(name, ref) {
			named = append(named, i)
		}
	}

	for _, matches := range [][]int{prefix, named} {
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			return -1, fmt.Errorf("%q %w (%d matches)", ref, errRefAmbiguous, len(matches))
		}
	}
	return -1, fmt.Errorf("%q: %w", ref, errRefNotFound)
}

// overrideString copies a flag value into dst only when the flag was given.
func overrideString(cmd *cobra.Command, flag string, dst *string, val string) {
	if cmd.Flags().Changed(flag) {
		*dst = val
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
