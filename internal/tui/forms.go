package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/debtburn/internal/model"
	"github.com/theirongolddev/debtburn/internal/portfolio"
	"github.com/theirongolddev/debtburn/internal/tui/components"
	"github.com/theirongolddev/debtburn/internal/tui/theme"
)

type dialogKind int

const (
	dialogAddLoan dialogKind = iota
	dialogEditLoan
	dialogAddBill
	dialogEditBill
)

func (k dialogKind) title() string {
	switch k {
	case dialogAddLoan:
		return "Add New Loan"
	case dialogEditLoan:
		return "Edit Loan"
	case dialogAddBill:
		return "Add New Bill"
	default:
		return "Edit Bill"
	}
}

// dialog is an open add/edit form. Values live behind pointers so the form
// keeps writing to the same memory as App is copied through Update.
type dialog struct {
	kind dialogKind
	id   string
	form *huh.Form
	loan *portfolio.LoanForm
	bill *portfolio.BillForm
}

// confirmDelete asks before removing a loan or bill.
type confirmDelete struct {
	entity string // "loan" or "bill"
	id     string
	name   string
}

func formKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
	return km
}

func dialogWidth(termWidth int) int {
	w := termWidth - 8
	if w > 64 {
		w = 64
	}
	if w < 30 {
		w = 30
	}
	return w
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func optionalAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return portfolio.ValidateAmount(s)
}

func loanTypeOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(model.LoanTypes))
	for i, lt := range model.LoanTypes {
		opts[i] = huh.NewOption(lt.Label(), string(lt))
	}
	return opts
}

func billCategoryOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(model.BillCategories))
	for i, c := range model.BillCategories {
		opts[i] = huh.NewOption(c.Label(), string(c))
	}
	return opts
}

func newLoanDialog(kind dialogKind, id string, values portfolio.LoanForm) *dialog {
	if values.Type == "" {
		values.Type = string(model.LoanCreditCard)
	}
	d := &dialog{kind: kind, id: id, loan: &values}

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Loan Name").
				Placeholder("e.g., Chase Credit Card").
				Value(&d.loan.Name).
				Validate(required("name")),
			huh.NewInput().
				Title("Current Balance").
				Placeholder("0.00").
				Value(&d.loan.Balance).
				Validate(portfolio.ValidateAmount),
			huh.NewInput().
				Title("Original Balance").
				Description("Leave blank to use the current balance").
				Placeholder("0.00").
				Value(&d.loan.OriginalBalance).
				Validate(optionalAmount),
			huh.NewInput().
				Title("Interest Rate (%)").
				Placeholder("0.00").
				Value(&d.loan.InterestRate).
				Validate(portfolio.ValidateRate),
			huh.NewInput().
				Title("Minimum Payment").
				Placeholder("0.00").
				Value(&d.loan.MinimumPayment).
				Validate(portfolio.ValidateAmount),
			huh.NewSelect[string]().
				Title("Loan Type").
				Options(loanTypeOptions()...).
				Value(&d.loan.Type),
		).Title(kind.title()),
	).WithKeyMap(formKeyMap()).WithShowHelp(true)

	return d
}

func newBillDialog(kind dialogKind, id string, values portfolio.BillForm) *dialog {
	if values.Category == "" {
		values.Category = string(model.BillOther)
	}
	d := &dialog{kind: kind, id: id, bill: &values}

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Bill Name").
				Placeholder("e.g., Rent, Electric Bill").
				Value(&d.bill.Name).
				Validate(required("name")),
			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Value(&d.bill.Amount).
				Validate(portfolio.ValidateAmount),
			huh.NewInput().
				Title("Due Date (Day of Month)").
				Placeholder("1-31").
				Value(&d.bill.DueDate).
				Validate(portfolio.ValidateDueDate),
			huh.NewSelect[string]().
				Title("Category").
				Options(billCategoryOptions()...).
				Value(&d.bill.Category),
			huh.NewConfirm().
				Title("Recurring monthly bill?").
				Value(&d.bill.IsRecurring),
		).Title(kind.title()),
	).WithKeyMap(formKeyMap()).WithShowHelp(true)

	return d
}

// submit returns the command that applies the finished dialog.
func (d *dialog) submit(svc *portfolio.Service) tea.Cmd {
	id := d.id
	switch d.kind {
	case dialogAddLoan, dialogEditLoan:
		form, add := *d.loan, d.kind == dialogAddLoan
		return mutateCmd(func(ctx context.Context) error {
			var err error
			if add {
				_, err = svc.AddLoan(ctx, form)
			} else {
				_, err = svc.UpdateLoan(ctx, id, form)
			}
			return err
		})
	default:
		form, add := *d.bill, d.kind == dialogAddBill
		return mutateCmd(func(ctx context.Context) error {
			var err error
			if add {
				_, err = svc.AddBill(ctx, form)
			} else {
				_, err = svc.UpdateBill(ctx, id, form)
			}
			return err
		})
	}
}

func (a App) openDialog(d *dialog) (tea.Model, tea.Cmd) {
	if a.width > 0 {
		d.form = d.form.WithWidth(dialogWidth(a.width))
	}
	a.dialog = d
	return a, d.form.Init()
}

func (a App) updateDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.dialog.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.dialog.form = f
	}

	switch a.dialog.form.State {
	case huh.StateCompleted:
		d := a.dialog
		a.dialog = nil
		return a, d.submit(a.svc)
	case huh.StateAborted:
		a.dialog = nil
		return a, nil
	}
	return a, cmd
}

func (a App) viewDialog() string {
	t := theme.Active
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(a.dialog.form.View()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := a.confirm
	a.confirm = nil

	switch msg.String() {
	case "y", "Y":
		svc := a.svc
		if c.entity == "loan" {
			return a, mutateCmd(func(ctx context.Context) error { return svc.DeleteLoan(ctx, c.id) })
		}
		return a, mutateCmd(func(ctx context.Context) error { return svc.DeleteBill(ctx, c.id) })
	}
	return a, nil
}

func (a App) renderConfirm(cw int) string {
	t := theme.Active
	warn := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Bold(true)
	dim := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	body := warn.Render(fmt.Sprintf("Delete %s %q?", a.confirm.entity, a.confirm.name)) +
		dim.Render("  [y] delete  [any other key] keep")
	return components.AccentCard("", body, cw)
}

