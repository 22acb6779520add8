package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	minesweeper "github.com/vancomm/minesweeper-hint"
	"github.com/vancomm/minesweeper-hint/internal/config"
	"github.com/vancomm/minesweeper-hint/internal/database"
)

var log = logrus.New()

func main() {
	if config.Development() {
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	pool, migrator, err := database.ConnectAndMigrate(ctx, minesweeper.Migrations)
	if err != nil {
		log.Fatal("failed to migrate database: ", err)
	}
	defer pool.Close()

	version, dirty, err := migrator.Version()
	if err != nil {
		log.WithError(err).Error("failed to check migration version")
		return
	}
	log.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("migration successful")
}
