package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/debtburn/internal/cli"
	"github.com/theirongolddev/debtburn/internal/pipeline"
	"github.com/theirongolddev/debtburn/internal/portfolio"
	"github.com/theirongolddev/debtburn/internal/tui/components"
	"github.com/theirongolddev/debtburn/internal/tui/theme"
)

// updateLoansKeys handles list keys on the Loans tab. ok is false when the
// key is not a Loans key and should fall through to global handling.
func (a App) updateLoansKeys(key string) (tea.Model, tea.Cmd, bool) {
	loans := a.snap.Loans
	switch key {
	case "j", "down":
		a.loanCursor = clampCursor(a.loanCursor+1, len(loans))
	case "k", "up":
		a.loanCursor = clampCursor(a.loanCursor-1, len(loans))
	case "g":
		a.loanCursor = 0
	case "G":
		a.loanCursor = clampCursor(len(loans)-1, len(loans))
	case "a":
		m, cmd := a.openDialog(newLoanDialog(dialogAddLoan, "", portfolio.LoanForm{}))
		return m, cmd, true
	case "e", "enter":
		if len(loans) == 0 {
			return a, nil, true
		}
		l := loans[a.loanCursor]
		m, cmd := a.openDialog(newLoanDialog(dialogEditLoan, l.ID, portfolio.FormFromLoan(l)))
		return m, cmd, true
	case "d", "delete":
		if len(loans) == 0 {
			return a, nil, true
		}
		l := loans[a.loanCursor]
		a.confirm = &confirmDelete{entity: "loan", id: l.ID, name: l.Name}
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) renderLoansTab(cw int) string {
	t := theme.Active
	loans := a.snap.Loans
	innerW := components.CardInnerWidth(cw)

	if len(loans) == 0 {
		return components.ContentCard("Your Loans", "No loans yet. Press [a] to add your first loan.", cw)
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)
	rateStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	nameW := innerW - 64
	if nameW < 14 {
		nameW = 14
	}
	barW := innerW - 20
	if barW > 40 {
		barW = 40
	}
	if barW < 10 {
		barW = 10
	}

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("  %-*s %-12s %12s %8s %12s %12s",
		nameW, "Name", "Type", "Balance", "Rate", "Minimum", "Interest/mo")))
	body.WriteString("\n")

	for i, l := range loans {
		line := fmt.Sprintf("%-*s %-12s %12s %8s %12s %12s",
			nameW, truncStr(l.Name, nameW), l.Type.Label(),
			cli.FormatMoney(l.Balance), cli.FormatRate(l.InterestRate),
			cli.FormatMoney(l.MinimumPayment), cli.FormatMoney(l.MonthlyInterest()))
		if i == a.loanCursor {
			body.WriteString(markerStyle.Render("▸ "))
			body.WriteString(selectedStyle.Render(line))
			if pad := innerW - 2 - lipgloss.Width(line); pad > 0 {
				body.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			body.WriteString(rowStyle.Render("  " + line))
		}
		body.WriteString("\n")

		pct := pipeline.PayoffProgressPercent(l) / 100
		body.WriteString(mutedStyle.Render("  "))
		body.WriteString(components.PayoffBar("paid off", pct, 9, barW))
		body.WriteString(mutedStyle.Render(fmt.Sprintf("  %s of %s", cli.FormatMoney(l.PaidOff()), cli.FormatMoney(l.OriginalBalance))))
		body.WriteString("\n")
	}

	m := a.summary
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render("Total ") + rowStyle.Render(cli.FormatMoney(m.TotalBalance)))
	body.WriteString(mutedStyle.Render("   Minimums ") + rowStyle.Render(cli.FormatMoney(m.TotalMinimumPayment)))
	body.WriteString(mutedStyle.Render("   Avg rate ") + rateStyle.Render(cli.FormatRate(m.WeightedAverageRate)))

	return components.ContentCard(fmt.Sprintf("Your Loans (%d)", len(loans)), body.String(), cw)
}
