package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"energy_baseline/internal/regression"
)

var (
	predictModel string
	predictStart string
	predictEnd   string
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Forecast daily energy from a fitted model",
	Long: `Builds prediction-time covariates from stored temperatures over the
given window and evaluates a fitted model artifact against them. Output is
CSV (date,energy) on stdout.`,
	Args: cobra.NoArgs,
	RunE: runPredict,
}

func init() {
	predictCmd.Flags().StringVar(&predictModel, "model", "model.json", "fitted model artifact")
	predictCmd.Flags().StringVar(&predictStart, "start", "", "window start (RFC 3339 or YYYY-MM-DD)")
	predictCmd.Flags().StringVar(&predictEnd, "end", "", "window end, exclusive")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	p, db, err := openPipeline()
	if err != nil {
		return err
	}
	defer db.Close()

	data, err := os.ReadFile(predictModel)
	if err != nil {
		return fmt.Errorf("reading %s: %w", predictModel, err)
	}
	result, err := regression.LoadFitResult(data)
	if err != nil {
		return fmt.Errorf("loading %s: %w", predictModel, err)
	}

	loc, err := p.Config.Location()
	if err != nil {
		return err
	}
	start, err := parseWindowTime(predictStart, loc)
	if err != nil {
		return fmt.Errorf("parsing --start: %w", err)
	}
	end, err := parseWindowTime(predictEnd, loc)
	if err != nil {
		return fmt.Errorf("parsing --end: %w", err)
	}

	days, err := p.Predict(result, start, end)
	if err != nil {
		return err
	}

	fmt.Println("date,energy")
	for _, d := range days {
		fmt.Printf("%s,%.4f\n", d.Date.Format("2006-01-02"), d.Energy)
	}
	return nil
}

// parseWindowTime accepts RFC 3339 or a bare date in the site timezone.
// Empty means an unbounded side.
func parseWindowTime(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, loc)
}
