package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	minesweeper "github.com/vancomm/minesweeper-hint"
	"github.com/vancomm/minesweeper-hint/internal/app"
	"github.com/vancomm/minesweeper-hint/internal/config"
	"github.com/vancomm/minesweeper-hint/internal/mines"
	"github.com/vancomm/minesweeper-hint/internal/ratelimit"
)

var log = logrus.New()

func setupLogging() {
	logLevel := logrus.InfoLevel
	if config.Development() {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)

	if config.Development() {
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	if path := config.LogFile(); path != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   path,
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     28,
			Level:      logLevel,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			log.Fatal("unable to set up log file: ", err)
		}
		log.AddHook(hook)
	}

	// package loggers share the server's configuration
	for _, l := range []*logrus.Logger{mines.Log, ratelimit.Log} {
		l.SetLevel(log.Level)
		l.SetFormatter(log.Formatter)
		l.ReplaceHooks(log.Hooks)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	setupLogging()
	log.WithField("development", config.Development()).Info("starting up")

	a := app.New(log, minesweeper.Migrations)
	if err := a.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) &&
		!errors.Is(err, context.Canceled) {
		log.Fatal("exit reason: ", err)
	}
	log.Info("server stopped")
}
