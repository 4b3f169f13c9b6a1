package cmd

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/debtburn/internal/config"
	"github.com/theirongolddev/debtburn/internal/logging"
	"github.com/theirongolddev/debtburn/internal/notify"
	"github.com/theirongolddev/debtburn/internal/portfolio"
	"github.com/theirongolddev/debtburn/internal/store"
)

var (
	flagDB       string
	flagDriver   string
	flagExtra    float64
	flagQuiet    bool
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "debtburn",
	Short: "Debt payoff planner",
	Long:  "Track loans and bills, project payoff, and compare avalanche and snowball strategies.",
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.RunE = runSummary
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite file path or postgres DSN (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDriver, "driver", "", "Store driver: sqlite, postgres, or memory")
	rootCmd.PersistentFlags().Float64VarP(&flagExtra, "extra", "e", 0, "Extra monthly payment (defaults to config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log warnings and errors")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}

	if flagDriver != "" {
		cfg.Store.Driver = flagDriver
	}
	if flagDB != "" {
		if strings.HasPrefix(flagDB, "postgres://") || strings.HasPrefix(flagDB, "postgresql://") {
			cfg.Store.DSN = flagDB
			if flagDriver == "" {
				cfg.Store.Driver = config.DriverPostgres
			}
		} else {
			cfg.Store.Path = flagDB
		}
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagQuiet {
		cfg.Log.Level = logrus.WarnLevel.String()
	}
	return cfg, nil
}

// extraPayment returns --extra when given, otherwise the configured default.
func extraPayment(cfg config.Config) float64 {
	if rootCmd.PersistentFlags().Changed("extra") {
		return flagExtra
	}
	return cfg.General.DefaultExtraPayment
}

type appOptions struct {
	notifiers []notify.Notifier // extra sinks after the log and AMQP sinks
	seed      bool              // seed sample data into an empty store
	logOutput io.Writer         // nil means stderr
	logFormat string            // overrides [log] format when set
}

// app bundles what a command needs to work with the portfolio.
type app struct {
	cfg     config.Config
	logger  *logrus.Logger
	store   *store.Store
	svc     *portfolio.Service
	closers []io.Closer
}

// openApp is the shared setup path used by all data commands: config, logger,
// store, notifier chain, and the portfolio service.
func openApp(ctx context.Context, opts appOptions) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if opts.logFormat != "" {
		cfg.Log.Format = opts.logFormat
	}
	out := opts.logOutput
	if out == nil {
		out = os.Stderr
	}
	logger, err := logging.NewWithOutput(cfg.Log, out)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}
	if cfg.Log.File != "" {
		f, err := logging.OpenFile(logger, cfg.Log.File)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, f)
	}

	st, err := store.Open(ctx, store.Options{
		Driver: cfg.Store.Driver,
		Path:   cfg.StorePath(),
		DSN:    cfg.Store.DSN,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.store = st
	logger.WithFields(logrus.Fields{
		"driver": cfg.Store.Driver,
		"store":  storeLocation(cfg),
	}).Debug("store opened")

	sinks := notify.Multi{notify.NewLogNotifier(logger)}
	if cfg.Notify.AMQPURL != "" {
		pub, err := notify.DialAMQP(cfg.Notify.AMQPURL, cfg.Notify.Exchange, cfg.Notify.RoutingPrefix, logger)
		if err != nil {
			logger.WithError(err).Warn("AMQP unavailable, change events are logged only")
		} else {
			sinks = append(sinks, pub)
			a.closers = append(a.closers, pub)
		}
	}
	sinks = append(sinks, opts.notifiers...)

	a.svc = portfolio.NewService(st, sinks, logger)

	if opts.seed && cfg.General.SeedSample {
		seeded, err := a.svc.SeedIfEmpty(ctx)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("seeding sample data: %w", err)
		}
		if seeded {
			logger.Info("empty store seeded with sample loans and bills")
		}
	}

	return a, nil
}

// Close releases the store and any publishers, newest first.
func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.WithError(err).Warn("closing store")
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
}

// snapshot loads the portfolio for read-only commands.
func (a *app) snapshot(ctx context.Context) (portfolio.Snapshot, error) {
	snap, err := a.svc.Snapshot(ctx)
	if err != nil {
		return snap, fmt.Errorf("loading portfolio: %w", err)
	}
	return snap, nil
}

// extra resolves the extra monthly payment for this run. Unlike the TUI
// slider it is not snapped to a step.
func (a *app) extra() (float64, error) {
	v := extraPayment(a.cfg)
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("extra payment must be a number 0 or more, got %v", v)
	}
	return v, nil
}

func storeLocation(cfg config.Config) string {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		return config.MaskURL(cfg.Store.DSN)
	case config.DriverMemory:
		return "memory"
	default:
		return cfg.StorePath()
	}
}
