package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show what the local database contains",
	Args:  cobra.NoArgs,
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	p, db, err := openPipeline()
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := p.Snapshot()
	if err != nil {
		return err
	}

	fmt.Printf("Database: %s\n", p.Config.Database)
	fmt.Printf("  meter records: %s\n", humanize.Comma(int64(stats.MeterRecords)))
	fmt.Printf("  temperatures:  %s\n", humanize.Comma(int64(stats.Temperatures)))
	if stats.HasMeterData {
		fmt.Printf("  meter period:  %s to %s\n",
			stats.MeterStart.Format("2006-01-02"), stats.MeterEnd.Format("2006-01-02"))
	} else {
		fmt.Println("  meter period:  (no records)")
	}
	return nil
}
