package main

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javahelps/nextcloud-agenda/pkg/models"
	"github.com/javahelps/nextcloud-agenda/pkg/spawn"
)

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("NCAL_TOOL", "")
	t.Setenv("NCAL_HOME", "/tmp/agenda/../home")
	t.Setenv("NCAL_LOG_LEVEL", "debug")
	t.Setenv("NCAL_LOG_JSON", "true")
	t.Setenv("NCAL_LOCALE", "fr_FR")

	environment, err := loadEnvironment()
	require.NoError(t, err)

	assert.Equal(t, "ncalendar", environment.Tool)
	assert.Equal(t, "/tmp/home", environment.Home)
	assert.Equal(t, "debug", environment.LogLevel)
	assert.True(t, environment.LogJSON)
	assert.Equal(t, "fr_FR", environment.Locale)

	log := newLogger(environment)
	assert.Equal(t, logrus.DebugLevel, log.Logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Logger.Formatter)
	assert.Equal(t, "nextcloud-agenda", log.Data["app"])
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	log := newLogger(&Environment{LogLevel: "loud"})
	assert.Equal(t, logrus.InfoLevel, log.Logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Logger.Formatter)
}

func TestUnitOptions(t *testing.T) {
	assert.Equal(t, []string{"1 days", "3 days", "7 days", "14 days", "30 days"},
		unitOptions(intervalOptions, 7, "days"))
	assert.Equal(t, []string{"1 min", "5 min", "10 min", "15 min", "30 min", "60 min", "2 min"},
		unitOptions(delayOptions, 2, "min"))
}

func TestParseUnitOption(t *testing.T) {
	tests := []struct {
		option string
		want   int
		ok     bool
	}{
		{"15 min", 15, true},
		{"7 days", 7, true},
		{"", 0, false},
		{"0 min", 0, false},
		{"soon", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.option, func(t *testing.T) {
			got, ok := parseUnitOption(tt.option)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonitorOptions(t *testing.T) {
	monitors := []models.Monitor{{Index: 0}, {Index: 1, Primary: true}}

	assert.Equal(t, []string{"auto", "primary", "monitor0", "monitor1"}, monitorOptions(monitors, ""))
	assert.Equal(t, []string{"auto", "primary", "monitor0", "monitor1"}, monitorOptions(monitors, "monitor1"))
	assert.Equal(t, []string{"auto", "primary", "monitor3"}, monitorOptions(nil, " monitor3 "))
}

func TestValidators(t *testing.T) {
	assert.NoError(t, validateServerURL(""))
	assert.NoError(t, validateServerURL("https://cloud.example.com"))
	assert.Error(t, validateServerURL("cloud.example.com"))

	assert.NoError(t, validateColor("#336699"))
	assert.NoError(t, validateColor("rgb(0,0,0)"))
	assert.Error(t, validateColor("nope"))
}

func TestListCalendarsRunsInWorkingDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}

	home := t.TempDir()
	tool := filepath.Join(t.TempDir(), "ncalendar")
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\npwd -P\necho Work\n"), 0o755))

	logger, _ := logtest.NewNullLogger()
	opts := ConfigWindowOptions{
		Reader:     spawn.NewReader(logrus.NewEntry(logger)),
		Tool:       tool,
		WorkingDir: home,
	}

	names, err := opts.listCalendars(context.Background(), models.Settings{})
	require.NoError(t, err)

	resolved, err := filepath.EvalSymlinks(home)
	require.NoError(t, err)
	assert.Equal(t, []string{resolved, "Work"}, names)
}
