package main

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/jordan-pw/minesweeper/internal/config"
	"github.com/jordan-pw/minesweeper/internal/mines"
)

// setupLogging builds the server logger and makes the engine log through it.
func setupLogging(cfg config.Config, out io.Writer) (*logrus.Logger, error) {
	logLevel, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if cfg.Development() {
		logLevel = logrus.DebugLevel
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(logLevel)
	if cfg.Development() {
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	if cfg.Log.File != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSize,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAge,
			Level:      logLevel,
			Formatter:  &logrus.JSONFormatter{TimestampFormat: time.RFC3339},
		})
		if err != nil {
			return nil, err
		}
		log.AddHook(hook)
	}

	mines.Log = log
	return log, nil
}
