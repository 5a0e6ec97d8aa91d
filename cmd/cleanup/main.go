package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/portico-living/court-booking-service/internal/config"
	bookingRepo "github.com/portico-living/court-booking-service/internal/infra/storage/booking"
	"github.com/portico-living/court-booking-service/pkg/logger"
)

// Джоба очистки устаревших бронирований. Запускается по cron и удаляет
// записи с датой раньше сегодняшней (в таймзоне корта): прошедшие брони
// не участвуют ни в одной проверке, история хранится retention_days.
func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	retentionDays := flag.Int("retention-days", 0, "keep bookings for this many past days")
	dryRun := flag.Bool("dry-run", false, "log what would be deleted without deleting")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	location, _ := cfg.Location()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	now := time.Now().In(location)
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	cutoff = cutoff.AddDate(0, 0, -*retentionDays)

	log.Info("Cleanup: deleting bookings dated before %s (retention %d days)",
		cutoff.Format("2006-01-02"), *retentionDays)

	if *dryRun {
		log.Info("Cleanup: dry run, nothing deleted")
		return
	}

	repo := bookingRepo.NewRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		log.Fatal("Cleanup: failed to delete old bookings: %v", err)
	}

	log.Info("Cleanup: deleted %d old bookings", deleted)
}
