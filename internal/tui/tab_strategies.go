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

// strategyOrderShown is how many loans each strategy card lists before
// summarising the rest.
const strategyOrderShown = 3

// strategySavingsBanner is the interest difference worth calling out.
const strategySavingsBanner = 100.0

var strategyBlurbs = map[model.Strategy]string{
	model.Avalanche: "Highest interest rate first. Saves the most money.",
	model.Snowball:  "Smallest balance first. Quick wins keep you going.",
}

func (a App) renderStrategiesTab(cw, contentH int) string {
	t := theme.Active
	cmp := a.cmp

	if len(a.snap.Loans) == 0 {
		return components.ContentCard("Payoff Strategies", "Add a loan to compare avalanche and snowball.", cw)
	}

	var b strings.Builder

	results := []model.StrategyResult{cmp.Avalanche, cmp.Snowball}
	if a.isCompactLayout() {
		for _, r := range results {
			b.WriteString(a.renderStrategyCard(r, cw))
			b.WriteString("\n")
		}
	} else {
		halves := components.LayoutRow(cw, 2)
		cards := make([]string, len(results))
		for i, r := range results {
			cards[i] = a.renderStrategyCard(r, halves[i])
		}
		b.WriteString(components.CardRow(cards))
		b.WriteString("\n")
	}

	if cmp.Savings > strategySavingsBanner {
		good := lipgloss.NewStyle().Foreground(t.Good()).Background(t.Surface).Bold(true)
		b.WriteString(components.ContentCard("", good.Render(fmt.Sprintf(
			"The %s method could save you %s in interest.",
			cmp.Recommended.Title(), cli.FormatMoney(cmp.Savings))), cw))
		b.WriteString("\n")
	}

	// The balance curve takes whatever height is left.
	used := lipgloss.Height(b.String())
	chartH := contentH - used - 4
	if chartH > 14 {
		chartH = 14
	}
	if chartH >= 4 {
		chart := components.CurveChart([]components.Series{
			{Name: model.Avalanche.Title(), Values: a.curves[model.Avalanche], Color: t.Green, Marker: '●'},
			{Name: model.Snowball.Title(), Values: a.curves[model.Snowball], Color: t.Blue, Marker: '•'},
		}, components.CardInnerWidth(cw), chartH)
		if chart != "" {
			b.WriteString(components.ContentCard("Remaining Balance", chart, cw))
		}
	}

	return b.String()
}

func (a App) renderStrategyCard(r model.StrategyResult, w int) string {
	t := theme.Active
	recommended := r.Strategy == a.cmp.Recommended

	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	interest := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Bold(true)
	badge := lipgloss.NewStyle().Foreground(t.Background).Background(t.GreenBright).Bold(true).Padding(0, 1)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var body strings.Builder
	body.WriteString(label.Render(strategyBlurbs[r.Strategy]))
	body.WriteString("\n\n")
	body.WriteString(label.Render(fmt.Sprintf("%-17s", "Total interest")) + interest.Render(cli.FormatMoney(r.TotalInterest)) + "\n")
	body.WriteString(label.Render(fmt.Sprintf("%-17s", "Time to payoff")) + value.Render(cli.FormatMonths(r.TimeToPayoff)) + "\n")
	body.WriteString(label.Render(fmt.Sprintf("%-17s", "Monthly payment")) + value.Render(cli.FormatMoney(r.MonthlyPayment)) + "\n")
	body.WriteString("\n")
	body.WriteString(label.Render("Payoff order"))
	body.WriteString("\n")

	nameW := components.CardInnerWidth(w) - 18
	for i, l := range r.Order {
		if i == strategyOrderShown {
			body.WriteString(dim.Render(fmt.Sprintf("   +%d more loans", len(r.Order)-strategyOrderShown)))
			body.WriteString("\n")
			break
		}
		detail := cli.FormatRate(l.InterestRate)
		if r.Strategy == model.Snowball {
			detail = cli.FormatMoneyShort(l.Balance)
		}
		body.WriteString(value.Render(fmt.Sprintf("%d. ", i+1)))
		body.WriteString(label.Render(fmt.Sprintf("%-*s %s", nameW, truncStr(l.Name, nameW), detail)))
		body.WriteString("\n")
	}
	if recommended {
		body.WriteString("\n")
		body.WriteString(badge.Render("RECOMMENDED"))
	}

	title := r.Strategy.Title() + " Method"
	if recommended {
		return components.AccentCard(title, strings.TrimRight(body.String(), "\n"), w)
	}
	return components.ContentCard(title, strings.TrimRight(body.String(), "\n"), w)
}
