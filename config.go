package main

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/sirupsen/logrus"

	"github.com/javahelps/nextcloud-agenda/pkg/calendar"
)

// Environment holds the process level overrides. Everything the user edits
// lives in fyne preferences instead.
type Environment struct {
	Tool     string `env:"NCAL_TOOL" envDefault:"ncalendar"`
	Home     string `env:"NCAL_HOME"`
	LogLevel string `env:"NCAL_LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"NCAL_LOG_JSON"`
	Locale   string `env:"NCAL_LOCALE"`
}

func loadEnvironment() (*Environment, error) {
	environment := &Environment{}
	if err := env.Parse(environment); err != nil {
		return nil, err
	}

	if environment.Tool == "" {
		environment.Tool = calendar.DefaultTool
	}
	if environment.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		environment.Home = home
	}
	environment.Home = filepath.Clean(environment.Home)

	return environment, nil
}

func newLogger(environment *Environment) *logrus.Entry {
	logger := logrus.New()
	if environment.LogJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(environment.LogLevel)
	if err != nil {
		logger.WithError(err).Warn("Invalid NCAL_LOG_LEVEL, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logrus.NewEntry(logger).WithField("app", "nextcloud-agenda")
}
