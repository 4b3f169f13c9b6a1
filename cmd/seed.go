package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagSeedForce bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the sample loans and bills",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&flagSeedForce, "force", false, "Seed even when the store already has data")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmdContext(cmd)
	a, err := openApp(ctx, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	loans, bills, err := a.store.Counts(ctx)
	if err != nil {
		return err
	}
	if loans+bills > 0 && !flagSeedForce {
		fmt.Printf("  Store already has %d loans and %d bills. Use --force to add the samples anyway.\n", loans, bills)
		return nil
	}

	n, err := a.svc.SeedSample(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("  Added %d sample records to %s\n", n, storeLocation(a.cfg))
	return nil
}
