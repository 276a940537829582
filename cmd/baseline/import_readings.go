package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"energy_baseline/internal/serializer"
)

var importReadingsCmd = &cobra.Command{
	Use:   "import-readings [file.csv]",
	Short: "Import meter records from a CSV file",
	Long: `Imports meter records into the local database. The CSV must have the
header start,end,value with an optional estimated column; timestamps are
RFC 3339. Records already present are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runImportReadings,
}

func init() {
	rootCmd.AddCommand(importReadingsCmd)
}

func runImportReadings(cmd *cobra.Command, args []string) error {
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

	records, err := serializer.ParseCSV(f, loc)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	inserted, err := db.InsertMeterRecords(records)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d meter records (%d new)\n", len(records), inserted)
	return nil
}
