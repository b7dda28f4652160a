package platform

import (
	"os"
	"path/filepath"

	"github.com/emersion/go-autostart"
	"github.com/sirupsen/logrus"
)

// AutostartName is the desktop entry name used for login autostart
const AutostartName = "nextcloud-agenda"

func autostartApp() (*autostart.App, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}

	// Resolve symlinks if any
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	return &autostart.App{
		Name:        AutostartName,
		DisplayName: "NextCloud Agenda",
		Exec:        []string{execPath},
	}, nil
}

// SetupAutostart adds or removes the login entry to match enable
func SetupAutostart(log *logrus.Entry, enable bool) error {
	app, err := autostartApp()
	if err != nil {
		return err
	}

	if enable == app.IsEnabled() {
		return nil
	}

	if enable {
		if err := app.Enable(); err != nil {
			log.WithError(err).Error("Failed to enable autostart")
			return err
		}
		log.Info("Autostart enabled")
		return nil
	}

	if err := app.Disable(); err != nil {
		log.WithError(err).Error("Failed to disable autostart")
		return err
	}
	log.Info("Autostart disabled")
	return nil
}
