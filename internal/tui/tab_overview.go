package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/debtburn/internal/cli"
	"github.com/theirongolddev/debtburn/internal/model"
	"github.com/theirongolddev/debtburn/internal/tui/components"
	"github.com/theirongolddev/debtburn/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	m := a.summary
	sim := a.sim
	var b strings.Builder

	if m.LoanCount == 0 {
		body := "No loans yet. Press [l] for the Loans tab, then [a] to add one."
		if m.BillCount > 0 {
			body += fmt.Sprintf("\nTracking %d bills totalling %s per month.", m.BillCount, cli.FormatMoney(m.TotalBillAmount))
		}
		return components.ContentCard("Welcome to debtburn", body, cw)
	}

	// Row 1: Metric cards
	debtFree := components.Metric{
		Label: "Debt-Free",
		Value: cli.FormatDebtFreeDate(sim.DebtFreeDate),
		Delta: cli.FormatMonths(sim.Current.Months),
		Color: t.GreenBright,
	}
	if sim.Never {
		debtFree.Color = t.Red
		debtFree.Delta = "payments don't cover interest"
	}
	cards := []components.Metric{
		{
			Label: "Total Debt",
			Value: cli.FormatMoney(m.TotalBalance),
			Delta: cli.FormatPercent(m.ProgressPercent) + " paid off",
		},
		{
			Label: "Monthly Expenses",
			Value: cli.FormatMoney(m.MonthlyExpenses),
			Delta: fmt.Sprintf("%s min + %s bills", cli.FormatMoneyShort(m.TotalMinimumPayment), cli.FormatMoneyShort(m.TotalBillAmount)),
		},
		{
			Label: "Avg Interest",
			Value: cli.FormatRate(m.WeightedAverageRate),
			Delta: cli.FormatMoney(m.MonthlyInterest) + "/mo accrues",
			Color: t.Orange,
		},
		debtFree,
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Overall progress
	innerW := components.CardInnerWidth(cw)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	progress := components.ProgressBar(m.ProgressPercent/100, innerW-6) + "\n" +
		muted.Render("Paid off ") + value.Render(cli.FormatMoney(m.TotalPaidOff)) +
		muted.Render(" of ") + value.Render(cli.FormatMoney(m.TotalOriginalBalance)) +
		muted.Render(fmt.Sprintf(" across %d loans", m.LoanCount))
	b.WriteString(components.ContentCard("Debt Progress", progress, cw))
	b.WriteString("\n")

	// Row 3: Payment simulator
	b.WriteString(components.ContentCard("Payment Simulator", a.renderSimulator(innerW), cw))
	b.WriteString("\n")

	// Row 4: Loans that matter most to each strategy
	halves := components.LayoutRow(cw, 2)
	var highlight []string
	if m.HasHighestInterest {
		l := m.HighestInterest
		highlight = append(highlight, components.ContentCard("Highest Interest",
			renderLoanHighlight(l, cli.FormatRate(l.InterestRate)+" APR"), halves[0]))
	}
	if m.HasSmallestBalance {
		l := m.SmallestBalance
		highlight = append(highlight, components.ContentCard("Smallest Balance",
			renderLoanHighlight(l, cli.FormatMoney(l.Balance)+" left"), halves[len(highlight)]))
	}
	b.WriteString(components.CardRow(highlight))

	return b.String()
}

func (a App) renderSimulator(innerW int) string {
	t := theme.Active
	sim := a.sim

	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	accent := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	good := lipgloss.NewStyle().Foreground(t.Good()).Background(t.Surface).Bold(true)
	bad := lipgloss.NewStyle().Foreground(t.Bad()).Background(t.Surface).Bold(true)

	var b strings.Builder
	b.WriteString(label.Render("Extra monthly payment  "))
	b.WriteString(accent.Render(cli.FormatMoney(sim.Extra)))
	b.WriteString(label.Render(fmt.Sprintf("   (max %s, [+/-] $50)", cli.FormatMoney(sim.MaxExtra))))
	b.WriteString("\n")
	b.WriteString(components.Slider(sim.Extra, sim.MaxExtra, innerW))
	b.WriteString("\n\n")

	col := func(l, v string) string {
		return label.Render(fmt.Sprintf("%-17s", l)) + value.Render(fmt.Sprintf("%-14s", v))
	}
	b.WriteString(col("Monthly payment", cli.FormatMoney(sim.MonthlyPayment)))
	b.WriteString(col("With bills", cli.FormatMoney(sim.WithBills)))
	b.WriteString("\n")
	b.WriteString(col("Time to payoff", cli.FormatMonths(sim.Current.Months)))
	if sim.Never {
		b.WriteString(col("Total interest", "n/a"))
	} else {
		b.WriteString(col("Total interest", cli.FormatMoney(sim.Current.TotalInterest)))
	}
	b.WriteString("\n\n")

	switch {
	case sim.Never:
		b.WriteString(bad.Render("Payments never cover the interest. Raise the extra payment."))
	case sim.Extra > 0 && sim.InterestSaved > 0:
		b.WriteString(good.Render(fmt.Sprintf("With %s extra per month: save %s in interest, debt-free %s",
			cli.FormatMoney(sim.Extra), cli.FormatMoney(sim.InterestSaved), cli.FormatMonthsDelta(sim.MonthsSaved))))
	default:
		b.WriteString(label.Render("Paying minimums only. Add an extra payment to see what you save."))
	}
	return b.String()
}

func renderLoanHighlight(l model.Loan, detail string) string {
	t := theme.Active
	name := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	return name.Render(l.Name) + "\n" + muted.Render(l.Type.Label()+" · "+detail)
}
