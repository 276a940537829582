package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	fitOut     string
	fitFormula string
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit the seasonal baseline model",
	Long: `Builds daily model data from the stored meter records and temperatures,
selects the regression formula from data coverage, fits the elastic net
and writes the model artifact as JSON.`,
	Args: cobra.NoArgs,
	RunE: runFit,
}

func init() {
	fitCmd.Flags().StringVar(&fitOut, "out", "model.json", "output path for the fitted model artifact")
	fitCmd.Flags().StringVar(&fitFormula, "base-formula", "", "override the base formula")
	rootCmd.AddCommand(fitCmd)
}

func runFit(cmd *cobra.Command, args []string) error {
	p, db, err := openPipeline()
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := p.Fit(fitFormula, func(stage, message string) {
		fmt.Printf("[%s] %s\n", stage, message)
	})
	if err != nil {
		return err
	}

	data, err := result.Save()
	if err != nil {
		return fmt.Errorf("encoding artifact: %w", err)
	}
	if err := os.WriteFile(fitOut, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", fitOut, err)
	}

	nonzero := 0
	for _, w := range result.Weights {
		if w != 0 {
			nonzero++
		}
	}
	fmt.Printf("\nModel %s\n", result.ID)
	fmt.Printf("  formula:  %s\n", result.Formula)
	fmt.Printf("  days:     %d\n", result.NumRows)
	fmt.Printf("  lambda:   %.6f (l1 ratio %.2f)\n", result.Lambda, result.L1Ratio)
	fmt.Printf("  cv mse:   %.4f\n", result.CVMSE)
	fmt.Printf("  train r2: %.4f\n", result.TrainR2)
	fmt.Printf("  weights:  %d nonzero of %d\n", nonzero, len(result.Weights))
	fmt.Printf("Wrote %s\n", fitOut)
	return nil
}
