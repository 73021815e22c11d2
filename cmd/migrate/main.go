package main

import (
	"log"
	"os"

	"fluentko-be/internal/config"
	"fluentko-be/internal/model"
	"fluentko-be/pkg/database"

	"github.com/fatih/color"
)

func main() {
	// 1. Load Environment Variables
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDB(database.GormConfig{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.Connection,
	})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting GORM migration (%s)...", cfg.Database.Driver)

	// 3. AutoMigrate chat tables. Sessions first so the message FK resolves.
	for _, m := range model.Models() {
		if err := db.AutoMigrate(m); err != nil {
			color.Red("AutoMigrate failed for %T: %v", m, err)
			os.Exit(1)
		}
		color.Green("  migrated %T", m)
	}

	color.Green("✅ Success: Database migration completed successfully via GORM.")
}
