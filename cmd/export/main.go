package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"prize-rush/internal/analytics"
	"prize-rush/internal/config"
	"prize-rush/internal/db"
	"prize-rush/internal/metrics"
)

// Dumps one event type inside a date window as CSV to stdout, for ad-hoc
// analysis and handoff to the BI team.
func main() {
	eventType := flag.String("type", "", "event type to export")
	startRaw := flag.String("start", "", "start date (YYYY-MM-DD)")
	endRaw := flag.String("end", "", "end date (YYYY-MM-DD), inclusive")
	flag.Parse()

	if *eventType == "" {
		log.Fatal("-type is required")
	}
	start, err := time.Parse("2006-01-02", *startRaw)
	if err != nil {
		log.Fatalf("invalid -start: %v", err)
	}
	end, err := time.Parse("2006-01-02", *endRaw)
	if err != nil {
		log.Fatalf("invalid -end: %v", err)
	}

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	conn, err := db.Open()
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	svc := analytics.New(conn, zap.NewNop(), metrics.NewMetrics(), cfg)
	events, err := svc.ExportEvents(context.Background(), *eventType, start, end)
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}

	w := csv.NewWriter(os.Stdout)
	if err := w.Write(analytics.CSVHeader()); err != nil {
		log.Fatalf("write header: %v", err)
	}
	for _, event := range events {
		if err := w.Write(analytics.CSVRecord(event)); err != nil {
			log.Fatalf("write row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("flush: %v", err)
	}
}
