// Package cmd implements the debtburn CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/debtburn/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Default extra payment: $%.2f\n", cfg.General.DefaultExtraPayment)
	fmt.Printf("    Seed sample data:      %v\n", cfg.General.SeedSample)
	fmt.Println()

	fmt.Println("  [Store]")
	fmt.Printf("    Driver: %s\n", cfg.Store.Driver)
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		if cfg.Store.DSN != "" {
			fmt.Printf("    DSN:    %s\n", config.MaskURL(cfg.Store.DSN))
		} else {
			fmt.Println("    DSN:    not configured")
		}
	case config.DriverMemory:
		fmt.Println("    Data is kept for the life of one command")
	default:
		fmt.Printf("    Path:   %s\n", cfg.StorePath())
	}
	fmt.Println()

	fmt.Println("  [Notify]")
	if cfg.Notify.AMQPURL != "" {
		fmt.Printf("    AMQP URL:       %s\n", config.MaskURL(cfg.Notify.AMQPURL))
		fmt.Printf("    Exchange:       %s\n", cfg.Notify.Exchange)
		fmt.Printf("    Routing prefix: %s\n", cfg.Notify.RoutingPrefix)
	} else {
		fmt.Println("    AMQP: not configured (events are logged only)")
	}
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:       %s\n", cfg.Server.Addr)
	fmt.Printf("    Events buffer: %d\n", cfg.Server.EventsBuffer)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level:  %s\n", cfg.Log.Level)
	fmt.Printf("    Format: %s\n", cfg.Log.Format)
	if cfg.Log.File != "" {
		fmt.Printf("    File:   %s\n", cfg.Log.File)
	}
	fmt.Println()

	fmt.Println("  Run `debtburn setup` to reconfigure.")
	return nil
}
