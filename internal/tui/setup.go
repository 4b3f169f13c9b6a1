package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/debtburn/internal/config"
	"github.com/theirongolddev/debtburn/internal/portfolio"
	"github.com/theirongolddev/debtburn/internal/tui/theme"
)

// setupValues backs the first-run form. It is held by pointer so huh keeps
// writing into the same struct while App is copied through Update.
type setupValues struct {
	theme      string
	extra      string
	seedSample bool
	saveErr    error
}

func newSetupValues(cfg config.Config) *setupValues {
	return &setupValues{
		theme:      cfg.Appearance.Theme,
		extra:      strconv.FormatFloat(cfg.General.DefaultExtraPayment, 'f', -1, 64),
		seedSample: cfg.General.SeedSample,
	}
}

func themeOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		opts[i] = huh.NewOption(t.Name, t.Name)
	}
	return opts
}

// newSetupForm builds the welcome wizard. The sample-data question is only
// asked when the store has nothing in it.
func newSetupForm(vals *setupValues, empty bool) *huh.Form {
	fields := []huh.Field{
		huh.NewNote().
			Title("Welcome to debtburn").
			Description("Plan your way out of debt.\nA few choices and you're in."),
		huh.NewSelect[string]().
			Title("Color theme").
			Options(themeOptions()...).
			Value(&vals.theme),
		huh.NewInput().
			Title("Default extra payment").
			Description("Added on top of the minimums every month").
			Placeholder("0").
			Value(&vals.extra).
			Validate(optionalAmount),
	}
	if empty {
		fields = append(fields, huh.NewConfirm().
			Title("Load sample loans and bills?").
			Description("Handy for exploring. Delete them any time.").
			Value(&vals.seedSample))
	}

	return huh.NewForm(huh.NewGroup(fields...)).
		WithKeyMap(formKeyMap()).
		WithShowHelp(true)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		seed := a.saveSetupConfig()
		a.needSetup = false
		a.setupForm = nil
		a.recompute()
		if a.setupVals.saveErr != nil {
			return a.showToast("could not save config: "+a.setupVals.saveErr.Error(), true)
		}
		if seed {
			svc := a.svc
			return a, mutateCmd(func(ctx context.Context) error {
				_, err := svc.SeedSample(ctx)
				return err
			})
		}
		return a.showToast(fmt.Sprintf("Saved to %s", config.ConfigPath()), false)

	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

// saveSetupConfig applies and persists the wizard choices. It reports whether
// sample data should be seeded.
func (a *App) saveSetupConfig() bool {
	v := a.setupVals

	a.cfg.Appearance.Theme = v.theme
	theme.SetActive(v.theme)

	if extra, err := parseExtra(v.extra); err == nil {
		a.cfg.General.DefaultExtraPayment = extra
		a.extra = extra
	}
	a.cfg.General.SeedSample = v.seedSample

	v.saveErr = config.Save(a.cfg)
	return v.seedSample && a.snap.Empty()
}

func parseExtra(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if err := portfolio.ValidateAmount(s); err != nil {
		return 0, err
	}
	return strconv.ParseFloat(strings.NewReplacer("$", "", ",", "").Replace(s), 64)
}
