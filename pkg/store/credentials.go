package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"github.com/javahelps/nextcloud-agenda/pkg/models"
)

// CredentialWriter keeps ~/.config/ncalendar/config.ini in sync with the
// account configured in the widget
type CredentialWriter struct {
	path string
	log  *logrus.Entry
}

// NewCredentialWriter creates a writer for the ncalendar config below home
func NewCredentialWriter(home string, log *logrus.Entry) *CredentialWriter {
	return &CredentialWriter{
		path: filepath.Join(home, ".config", "ncalendar", "config.ini"),
		log:  log.WithField("component", "credentials"),
	}
}

// Path returns the location of the ncalendar config file
func (w *CredentialWriter) Path() string {
	return w.path
}

// Export writes the credentials in the background; failures are only logged
func (w *CredentialWriter) Export(settings models.Settings) {
	go func() {
		if err := w.Write(settings); err != nil {
			w.log.WithError(err).Error("Failed to export ncalendar credentials")
			return
		}
		w.log.WithField("account", settings.Account()).Info("Exported ncalendar credentials")
	}()
}

// Write stores the credentials in the section named after the account id,
// leaving other accounts untouched
func (w *CredentialWriter) Write(settings models.Settings) error {
	if settings.NeedsConfiguration() {
		return fmt.Errorf("incomplete credentials for account %q", settings.Account())
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg, err := ini.LooseLoad(w.path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", w.path, err)
	}

	section := cfg.Section(settings.Account())
	section.Key("server_url").SetValue(settings.ServerURL)
	section.Key("username").SetValue(settings.Username)
	section.Key("app_password").SetValue(settings.AppPassword)

	if err := cfg.SaveTo(w.path); err != nil {
		return fmt.Errorf("failed to write %s: %w", w.path, err)
	}
	return os.Chmod(w.path, 0o600)
}
