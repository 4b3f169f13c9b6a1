package cmd

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/debtburn/internal/config"
	"github.com/theirongolddev/debtburn/internal/notify"
	"github.com/theirongolddev/debtburn/internal/tui"
	"github.com/theirongolddev/debtburn/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmdContext(cmd)

	// Logs would tear the alt screen, so they are dropped unless [log] file
	// is set. The first run leaves seeding to the setup form.
	recorder := &notify.Recorder{}
	a, err := openApp(ctx, appOptions{
		notifiers: []notify.Notifier{recorder},
		seed:      config.Exists(),
		logOutput: io.Discard,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	theme.SetActive(a.cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	extra, err := a.extra()
	if err != nil {
		return err
	}
	cfg := a.cfg
	cfg.General.DefaultExtraPayment = extra

	app := tui.NewApp(a.svc, recorder, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
