package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"energy_baseline/internal/weather"
)

var importWeatherCmd = &cobra.Command{
	Use:   "import-weather [file.csv]",
	Short: "Import temperature observations from a CSV export",
	Long: `Imports outdoor temperature observations (°F) into the local database
from a Home-Assistant-style CSV export (entity_id,state,last_changed).
Unparseable rows are skipped; duplicates are ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: runImportWeather,
}

func init() {
	rootCmd.AddCommand(importWeatherCmd)
}

func runImportWeather(cmd *cobra.Command, args []string) error {
	p, db, err := openPipeline()
	if err != nil {
		return err
	}
	defer db.Close()

	loc, err := p.Config.Location()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer f.Close()

	parser := &weather.CSVParser{Location: loc}
	readings, err := parser.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	inserted, err := db.InsertTemperatures(readings)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d temperature readings (%d new)\n", len(readings), inserted)
	return nil
}
