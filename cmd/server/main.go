package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"energy_baseline/internal/config"
	"energy_baseline/internal/pipeline"
	"energy_baseline/internal/store"
	"energy_baseline/internal/ws"
)

func main() {
	cfgPath := flag.String("config", config.DefaultConfigPath(), "config file")
	dbPath := flag.String("db", "", "database file (default: from config)")
	addr := flag.String("addr", "", "listen address (default: from config)")
	frontendDir := flag.String("frontend-dir", "frontend/build", "directory containing frontend build")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dbPath != "" {
		cfg.Database = *dbPath
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	db, err := store.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	p := &pipeline.Pipeline{Store: db, Config: cfg}

	stats, err := p.Snapshot()
	if err != nil {
		log.Fatalf("Failed to read store: %v", err)
	}
	if stats.HasMeterData {
		log.Printf("Data loaded: %d meter records (%s to %s), %d temperatures",
			stats.MeterRecords,
			stats.MeterStart.Format("2006-01-02"), stats.MeterEnd.Format("2006-01-02"),
			stats.Temperatures)
	} else {
		log.Printf("No meter data yet: import records before running a fit")
	}

	hub := ws.NewHub()
	handler := ws.NewHandler(hub, p)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	mux.Handle("/ws", handler)

	if _, err := os.Stat(*frontendDir); err == nil {
		log.Printf("Serving frontend from %s", *frontendDir)
		mux.Handle("/", http.FileServer(http.Dir(*frontendDir)))
	}

	log.Printf("Starting server on %s", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, mux); err != nil {
		log.Fatal(err)
	}
}
