package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/debtburn/internal/cli"
	"github.com/theirongolddev/debtburn/internal/model"
	"github.com/theirongolddev/debtburn/internal/portfolio"
	"github.com/theirongolddev/debtburn/internal/tui/components"
	"github.com/theirongolddev/debtburn/internal/tui/theme"
)

func (a App) updateBillsKeys(key string) (tea.Model, tea.Cmd, bool) {
	bills := a.snap.Bills
	switch key {
	case "j", "down":
		a.billCursor = clampCursor(a.billCursor+1, len(bills))
	case "k", "up":
		a.billCursor = clampCursor(a.billCursor-1, len(bills))
	case "g":
		a.billCursor = 0
	case "G":
		a.billCursor = clampCursor(len(bills)-1, len(bills))
	case "a":
		m, cmd := a.openDialog(newBillDialog(dialogAddBill, "", portfolio.BillForm{IsRecurring: true}))
		return m, cmd, true
	case "e", "enter":
		if len(bills) == 0 {
			return a, nil, true
		}
		bl := bills[a.billCursor]
		m, cmd := a.openDialog(newBillDialog(dialogEditBill, bl.ID, portfolio.FormFromBill(bl)))
		return m, cmd, true
	case "d", "delete":
		if len(bills) == 0 {
			return a, nil, true
		}
		bl := bills[a.billCursor]
		a.confirm = &confirmDelete{entity: "bill", id: bl.ID, name: bl.Name}
	default:
		return a, nil, false
	}
	return a, nil, true
}

func dueColor(s model.DueStatus) lipgloss.Color {
	t := theme.Active
	switch s {
	case model.DueOverdue:
		return t.Red
	case model.DueSoon:
		return t.Orange
	default:
		return t.Green
	}
}

func (a App) renderBillsTab(cw int) string {
	t := theme.Active
	bills := a.snap.Bills
	innerW := components.CardInnerWidth(cw)

	if len(bills) == 0 {
		return components.ContentCard("Monthly Bills", "No bills yet. Press [a] to add one.", cw)
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	nameW := innerW - 66
	if nameW < 14 {
		nameW = 14
	}

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("  %-*s %-14s %11s %5s %-10s %-18s",
		nameW, "Name", "Category", "Amount", "Due", "Recurring", "Status")))
	body.WriteString("\n")

	for i, bl := range bills {
		sched := a.snap.BillSchedule(bl)
		recurring := "one-time"
		if bl.IsRecurring {
			recurring = "monthly"
		}
		line := fmt.Sprintf("%-*s %-14s %11s %5s %-10s ",
			nameW, truncStr(bl.Name, nameW), bl.Category.Label(),
			cli.FormatMoney(bl.Amount), ordinal(bl.DueDate), recurring)
		status := lipgloss.NewStyle().Foreground(dueColor(sched.Status)).Bold(true)

		if i == a.billCursor {
			status = status.Background(t.SurfaceBright)
			body.WriteString(markerStyle.Render("▸ "))
			body.WriteString(selectedStyle.Render(line))
			body.WriteString(status.Render(sched.Label))
			if pad := innerW - 2 - lipgloss.Width(line) - lipgloss.Width(sched.Label); pad > 0 {
				body.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			status = status.Background(t.Surface)
			body.WriteString(rowStyle.Render("  " + line))
			body.WriteString(status.Render(sched.Label))
		}
		body.WriteString("\n")
	}

	body.WriteString("\n")
	body.WriteString(mutedStyle.Render("Total monthly bills ") + rowStyle.Render(cli.FormatMoney(a.summary.TotalBillAmount)))

	return components.ContentCard(fmt.Sprintf("Monthly Bills (%d)", len(bills)), body.String(), cw)
}

// ordinal formats a day of month, e.g. 1 -> "1st", 22 -> "22nd".
func ordinal(day int) string {
	suffix := "th"
	if day%100 < 11 || day%100 > 13 {
		switch day % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", day, suffix)
}
