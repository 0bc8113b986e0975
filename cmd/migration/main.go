package main

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/drivers/database"
	"clinic-service/internal/app/drivers/logger"
	"flag"
	"os"
	"path/filepath"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"
)

func main() {
	direction := flag.String("direction", "up", "migration direction, up or down")
	steps := flag.Int("steps", 0, "maximum number of migrations to apply, 0 means all")
	flag.Parse()

	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	log := logger.NewLogrusLogger(internalConfig)

	db := database.NewPostgresDB(driverConfig)
	defer db.Close()

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("Error getting working directory: %v", err)
	}

	migrations := &migrate.FileMigrationSource{
		Dir: filepath.Join(wd, "internal/migration"),
	}

	migrationDirection := migrate.Up
	if *direction == "down" {
		migrationDirection = migrate.Down
	}

	n, err := migrate.ExecMax(db, "postgres", migrations, migrationDirection, *steps)
	if err != nil {
		log.WithError(err).Fatal("Error executing migration")
	}

	log.WithFields(logrus.Fields{
		"direction": *direction,
		"applied":   n,
	}).Info("Migrations applied")
}
