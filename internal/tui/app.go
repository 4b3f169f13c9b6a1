// Package tui provides the interactive Bubble Tea dashboard for debtburn.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/debtburn/internal/config"
	"github.com/theirongolddev/debtburn/internal/model"
	"github.com/theirongolddev/debtburn/internal/notify"
	"github.com/theirongolddev/debtburn/internal/pipeline"
	"github.com/theirongolddev/debtburn/internal/portfolio"
	"github.com/theirongolddev/debtburn/internal/tui/components"
	"github.com/theirongolddev/debtburn/internal/tui/theme"
)

// SnapshotMsg carries a freshly loaded portfolio.
type SnapshotMsg struct {
	Snapshot portfolio.Snapshot
	Err      error
}

// MutationMsg reports the outcome of an add, edit, or delete.
type MutationMsg struct {
	Err error
}

type clearToastMsg struct{ seq int }

// App is the root Bubble Tea model.
type App struct {
	svc      *portfolio.Service
	recorder *notify.Recorder
	cfg      config.Config

	// Data
	snap    portfolio.Snapshot
	loaded  bool
	loadErr error

	// Derived for the current extra payment
	extra   float64
	summary model.SummaryMetrics
	sim     model.SimulatorResult
	cmp     model.Comparison
	curves  map[model.Strategy][]float64

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	spinner   spinner.Model

	// Per-tab state
	loanCursor int
	billCursor int
	settings   settingsState

	// Add/edit dialog (huh form) and delete confirmation
	dialog  *dialog
	confirm *confirmDelete

	// Toast line
	toast    string
	toastErr bool
	toastSeq int

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5

	toastDuration = 4 * time.Second
)

// NewApp creates the dashboard. recorder must be part of svc's notifier so
// changes surface as toasts.
func NewApp(svc *portfolio.Service, recorder *notify.Recorder, cfg config.Config) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		svc:       svc,
		recorder:  recorder,
		cfg:       cfg,
		extra:     cfg.General.DefaultExtraPayment,
		needSetup: !config.Exists(),
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadSnapshotCmd(a.svc),
		a.spinner.Tick,
	)
}

// recompute derives every view model from the snapshot and extra payment.
func (a *App) recompute() {
	loans := a.snap.Loans
	a.extra = pipeline.ClampExtra(a.extra, pipeline.MaxExtraPayment(loans))

	a.summary = a.snap.Summary()
	a.sim = a.snap.Simulate(a.extra)
	a.cmp = a.snap.Compare(a.extra)
	a.curves = map[model.Strategy][]float64{
		model.Avalanche: pipeline.StrategyBalanceCurve(loans, a.extra, model.Avalanche),
		model.Snowball:  pipeline.StrategyBalanceCurve(loans, a.extra, model.Snowball),
	}

	a.loanCursor = clampCursor(a.loanCursor, len(loans))
	a.billCursor = clampCursor(a.billCursor, len(a.snap.Bills))
}

func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.dialog != nil {
			a.dialog.form = a.dialog.form.WithWidth(dialogWidth(msg.Width))
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.dialog != nil || a.setupForm != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		if a.dialog != nil {
			return a.updateDialog(msg)
		}
		if a.confirm != nil {
			return a.updateConfirm(msg)
		}
		if a.activeTab == components.TabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}
		return a.updateKeys(msg)

	case SnapshotMsg:
		if msg.Err != nil {
			a.loadErr = msg.Err
			a.loaded = true
			return a, nil
		}
		first := !a.loaded
		a.snap = msg.Snapshot
		a.loaded = true
		a.loadErr = nil
		a.recompute()

		if first && a.needSetup {
			a.setupVals = newSetupValues(a.cfg)
			a.setupForm = newSetupForm(a.setupVals, a.snap.Empty())
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case MutationMsg:
		if msg.Err != nil {
			return a.showToast(msg.Err.Error(), true)
		}
		next, cmd := a.showLastEvent()
		return next, tea.Batch(cmd, loadSnapshotCmd(a.svc))

	case clearToastMsg:
		if msg.seq == a.toastSeq {
			a.toast = ""
			a.toastErr = false
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages (cursor blinks, etc.) to an open form.
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.dialog != nil {
		return a.updateDialog(msg)
	}

	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch a.activeTab {
	case components.TabLoans:
		if next, cmd, ok := a.updateLoansKeys(key); ok {
			return next, cmd
		}
	case components.TabBills:
		if next, cmd, ok := a.updateBillsKeys(key); ok {
			return next, cmd
		}
	case components.TabSettings:
		if next, cmd, ok := a.updateSettingsKeys(key); ok {
			return next, cmd
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "+", "=":
		a.extra += pipeline.ExtraPaymentStep
		a.recompute()
		return a, nil
	case "-", "_":
		a.extra -= pipeline.ExtraPaymentStep
		if a.extra < 0 {
			a.extra = 0
		}
		a.recompute()
		return a, nil
	case "0":
		a.extra = 0
		a.recompute()
		return a, nil
	case "r":
		return a, loadSnapshotCmd(a.svc)
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if len(key) == 1 {
		if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		switch a.activeTab {
		case components.TabLoans:
			a.loanCursor = clampCursor(a.loanCursor-1, len(a.snap.Loans))
		case components.TabBills:
			a.billCursor = clampCursor(a.billCursor-1, len(a.snap.Bills))
		}
	case tea.MouseButtonWheelDown:
		switch a.activeTab {
		case components.TabLoans:
			a.loanCursor = clampCursor(a.loanCursor+1, len(a.snap.Loans))
		case components.TabBills:
			a.billCursor = clampCursor(a.billCursor+1, len(a.snap.Bills))
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) showLastEvent() (App, tea.Cmd) {
	if a.recorder == nil {
		return a, nil
	}
	ev, ok := a.recorder.Last()
	if !ok {
		return a, nil
	}
	return a.showToast(ev.Title+": "+ev.Description, false)
}

func (a App) showToast(text string, isErr bool) (App, tea.Cmd) {
	a.toastSeq++
	a.toast = text
	a.toastErr = isErr
	seq := a.toastSeq
	return a, tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{seq: seq}
	})
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	if a.dialog != nil {
		return a.viewDialog()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  debtburn needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spinnerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ debtburn"))
	b.WriteString(subtitleStyle.Render(" · Debt Payoff Planner"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Loading portfolio..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	section := func(b *strings.Builder, title string, binds []struct{ key, desc string }) {
		b.WriteString(sectionStyle.Render(title))
		b.WriteString("\n")
		for _, bind := range binds {
			fmt.Fprintf(b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
		b.WriteString("\n")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	section(&b, "Navigation", []struct{ key, desc string }{
		{"o l b s x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Move through loans or bills"},
	})
	section(&b, "Planning", []struct{ key, desc string }{
		{"+ -", "Extra payment ±$50"},
		{"0", "Reset extra payment"},
	})
	section(&b, "Loans & Bills", []struct{ key, desc string }{
		{"a", "Add"},
		{"e Enter", "Edit selected"},
		{"d", "Delete selected"},
		{"r", "Reload from store"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	})
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	toast := a.toast
	if a.toastErr && toast != "" {
		toast = "Error: " + toast
	}
	statusBar := components.RenderStatusBar(w, a.statusHints(), toast)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch {
	case a.loadErr != nil:
		content = components.ContentCard("Error", "Could not load portfolio: "+a.loadErr.Error(), cw)
	default:
		switch a.activeTab {
		case components.TabOverview:
			content = a.renderOverviewTab(cw)
		case components.TabLoans:
			content = a.renderLoansTab(cw)
		case components.TabBills:
			content = a.renderBillsTab(cw)
		case components.TabStrategies:
			content = a.renderStrategiesTab(cw, contentH)
		case components.TabSettings:
			content = a.renderSettingsTab(cw)
		}
	}
	if a.confirm != nil {
		content = a.renderConfirm(cw) + "\n" + content
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusHints() string {
	switch a.activeTab {
	case components.TabLoans, components.TabBills:
		return "[a]dd  [e]dit  [d]elete  [?]help  [q]uit"
	case components.TabSettings:
		return "[j/k] move  [Enter] edit  [?]help  [q]uit"
	default:
		return "[+/-] extra payment  [?]help  [q]uit"
	}
}

// ─── Commands ───────────────────────────────────────────────────

func loadSnapshotCmd(svc *portfolio.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		snap, err := svc.Snapshot(ctx)
		return SnapshotMsg{Snapshot: snap, Err: err}
	}
}

func mutateCmd(fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return MutationMsg{Err: fn(ctx)}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the widths RenderTabBar draws.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
