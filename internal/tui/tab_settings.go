package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/debtburn/internal/cli"
	"github.com/theirongolddev/debtburn/internal/config"
	"github.com/theirongolddev/debtburn/internal/tui/components"
	"github.com/theirongolddev/debtburn/internal/tui/theme"
)

const (
	settingsFieldTheme = iota
	settingsFieldExtra
	settingsFieldSeed
	settingsFieldLogLevel
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message until the next edit
	saveErr error // non-nil if the last save or parse failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func (a App) updateSettingsKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
	case "enter":
		if a.settings.cursor == settingsFieldSeed {
			a.cfg.General.SeedSample = !a.cfg.General.SeedSample
			a.settingsPersist()
			return a, nil, true
		}
		m, cmd := a.settingsStartEdit()
		return m, cmd, true
	case "t":
		next := theme.Next(a.cfg.Appearance.Theme)
		a.cfg.Appearance.Theme = next.Name
		theme.SetActive(next.Name)
		a.settingsPersist()
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	a.settings.editing = true
	a.settings.saved = false
	a.settings.saveErr = nil

	ti := newSettingsInput()
	switch a.settings.cursor {
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(a.cfg.Appearance.Theme)
	case settingsFieldExtra:
		ti.Placeholder = "0 (monthly USD)"
		ti.SetValue(strconv.FormatFloat(a.cfg.General.DefaultExtraPayment, 'f', -1, 64))
	case settingsFieldLogLevel:
		ti.Placeholder = "debug, info, warn, error"
		ti.SetValue(a.cfg.Log.Level)
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) settingsSave() {
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldTheme:
		if !theme.Known(val) {
			a.settings.saveErr = fmt.Errorf("unknown theme %q", val)
			return
		}
		a.cfg.Appearance.Theme = val
		theme.SetActive(val)
	case settingsFieldExtra:
		extra, err := parseExtra(val)
		if err != nil {
			a.settings.saveErr = err
			return
		}
		a.cfg.General.DefaultExtraPayment = extra
		a.extra = extra
		a.recompute()
	case settingsFieldLogLevel:
		if _, err := logrus.ParseLevel(val); err != nil {
			a.settings.saveErr = err
			return
		}
		a.cfg.Log.Level = val
	}

	a.settingsPersist()
}

func (a *App) settingsPersist() {
	a.settings.saveErr = config.Save(a.cfg)
	a.settings.saved = a.settings.saveErr == nil
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.cfg

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	seed := "no"
	if cfg.General.SeedSample {
		seed = "yes"
	}
	fields := []field{
		{"Theme", cfg.Appearance.Theme},
		{"Default Extra", cli.FormatMoney(cfg.General.DefaultExtraPayment) + "/mo"},
		{"Seed Sample Data", seed},
		{"Log Level", cfg.Log.Level},
	}

	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			if padLen := components.CardInnerWidth(cw) - usedWidth; padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [t] next theme  [Esc] cancel"))

	location := cfg.StorePath()
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		location = config.MaskURL(cfg.Store.DSN)
	case config.DriverMemory:
		location = "(in memory, not saved)"
	}
	events := "log only"
	if cfg.Notify.AMQPURL != "" {
		events = config.MaskURL(cfg.Notify.AMQPURL) + " → " + cfg.Notify.Exchange
	}

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Store driver:  ") + valueStyle.Render(cfg.Store.Driver) + "\n")
	infoBody.WriteString(labelStyle.Render("Store:         ") + valueStyle.Render(location) + "\n")
	infoBody.WriteString(labelStyle.Render("Records:       ") + valueStyle.Render(
		fmt.Sprintf("%d loans, %d bills", len(a.snap.Loans), len(a.snap.Bills))) + "\n")
	infoBody.WriteString(labelStyle.Render("Events:        ") + valueStyle.Render(events) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file:   ") + valueStyle.Render(config.ConfigPath()))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}
