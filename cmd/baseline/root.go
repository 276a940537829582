package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"energy_baseline/internal/config"
	"energy_baseline/internal/pipeline"
	"energy_baseline/internal/store"
)

var (
	cfgFile string
	dbPath  string
)

var rootCmd = &cobra.Command{
	Use:   "baseline",
	Short: "Estimate a building's energy consumption baseline",
	Long: `Baseline fits a regularized regression of daily energy use against
degree-day, month, weekday and holiday effects. Meter records and outdoor
temperatures are imported into a local SQLite database, then fit and
predict run over it.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (default: from config)")
}

// loadConfig loads the configuration file, applying the --db override.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Database = dbPath
	}
	return cfg, nil
}

// openPipeline loads config and opens the store. The caller closes the
// returned store.
func openPipeline() (*pipeline.Pipeline, *store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	db, err := store.Open(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return &pipeline.Pipeline{Store: db, Config: cfg}, db, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
