package main

import (
	"flag"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/goodsign/monday"
	"github.com/sirupsen/logrus"

	"github.com/javahelps/nextcloud-agenda/pkg/agenda"
	"github.com/javahelps/nextcloud-agenda/pkg/calendar"
	"github.com/javahelps/nextcloud-agenda/pkg/models"
	"github.com/javahelps/nextcloud-agenda/pkg/platform"
	"github.com/javahelps/nextcloud-agenda/pkg/position"
	"github.com/javahelps/nextcloud-agenda/pkg/spawn"
	"github.com/javahelps/nextcloud-agenda/pkg/store"
	"github.com/javahelps/nextcloud-agenda/pkg/ui"
)

const appID = "com.javahelps.nextcloud-agenda"

// initialPositionDelay gives the window manager time to map the widget
const initialPositionDelay = time.Second

type NextcloudAgenda struct {
	app    fyne.App
	env    *Environment
	log    *logrus.Entry
	window fyne.Window

	store       *store.ConfigStore
	credentials *store.CredentialWriter
	reader      *spawn.Reader
	view        *ui.AgendaView
	controller  *agenda.Controller
	positioner  *position.Controller
	x11         *platform.X11
	hotkey      *platform.RefreshHotkey
	locale      monday.Locale

	configWindow *ConfigWindow
}

func main() {
	settingsFile := flag.String("settings", "", "YAML file with settings to import into preferences")
	flag.Parse()

	environment, err := loadEnvironment()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid environment")
	}

	na := &NextcloudAgenda{
		app: app.NewWithID(appID),
		env: environment,
		log: newLogger(environment),
	}

	if err := na.initialize(*settingsFile); err != nil {
		na.log.WithError(err).Fatal("Unable to start")
	}

	na.run()
}

func (na *NextcloudAgenda) initialize(settingsFile string) error {
	na.store = store.NewConfigStore(na.app, na.log)
	if settingsFile != "" {
		keys, err := na.store.ImportYAML(settingsFile)
		if err != nil {
			return err
		}
		na.log.WithField("keys", len(keys)).Infof("Imported settings from %s", settingsFile)
	}
	settings := na.store.Settings()

	// Sync autostart state with settings on startup
	if err := platform.SetupAutostart(na.log, settings.AutoStart); err != nil {
		na.log.WithError(err).Warn("Failed to setup autostart")
	}

	if na.env.Locale != "" {
		na.locale = calendar.ParseLocale(na.env.Locale)
	} else {
		na.locale = calendar.DetectLocale(na.log)
	}

	na.credentials = store.NewCredentialWriter(na.env.Home, na.log)
	na.reader = spawn.NewReader(na.log)

	na.window = na.newWidgetWindow()
	na.view = ui.NewAgendaView(na.log, na.store.Settings)
	na.view.OnDetails = na.showEventDetails
	na.view.Attach(na.window.Canvas())
	na.window.SetContent(na.view.Content())

	na.positioner = na.newPositioner()

	na.controller = agenda.NewController(na.log, na.store, na.reader, na.view, agenda.Options{
		Tool:       na.env.Tool,
		WorkingDir: na.env.Home,
		Locale:     na.locale,
		Measurer:   ui.HeaderMeasurer{Settings: na.store.Settings},
		Exporter:   na.credentials,
		Positioner: na.positioner,
	})
	na.view.OnRefresh = na.controller.Refresh

	na.store.OnChange(na.controller.OnSettingsChanged)
	na.store.OnChange(na.onGeneralSettingsChanged)

	na.view.Menu = na.newMenu()
	na.setupSystemTray()
	na.toggleHotkey(settings.RefreshHotkey)

	return nil
}

func (na *NextcloudAgenda) run() {
	na.app.Lifecycle().SetOnStarted(func() {
		platform.HideFromDock()

		na.controller.Start()

		time.AfterFunc(initialPositionDelay, func() {
			na.positioner.DetectMonitors()
			na.positioner.Apply(na.store.Settings())
		})

		if settings := na.store.Settings(); settings.NeedsConfiguration() {
			na.showConfigWindow()
		}
	})
	na.app.Lifecycle().SetOnStopped(na.shutdown)

	na.window.Show()
	na.app.Run()
}

// newWidgetWindow returns an undecorated window where the driver supports it
func (na *NextcloudAgenda) newWidgetWindow() fyne.Window {
	var w fyne.Window
	if desk, ok := na.app.Driver().(desktop.Driver); ok {
		w = desk.CreateSplashWindow()
		w.SetTitle("NextCloud Agenda")
	} else {
		w = na.app.NewWindow("NextCloud Agenda")
	}
	w.Resize(fyne.NewSize(360, 420))
	w.SetCloseIntercept(func() {
		na.quit()
	})
	return w
}

func (na *NextcloudAgenda) newPositioner() *position.Controller {
	x11, err := platform.NewX11(na.log, func() uintptr {
		return platform.WindowHandle(na.window)
	})
	if err != nil {
		na.log.WithError(err).Warn("Window positioning disabled")
		return position.NewController(na.log, platform.Unsupported{}, platform.Unsupported{})
	}

	na.x11 = x11
	return position.NewController(na.log, x11, x11)
}

// onGeneralSettingsChanged handles the keys that do not affect the agenda
func (na *NextcloudAgenda) onGeneralSettingsChanged(keys []string) {
	settings := na.store.Settings()
	for _, key := range keys {
		switch key {
		case models.KeyAutoStart:
			go func() {
				if err := platform.SetupAutostart(na.log, settings.AutoStart); err != nil {
					na.log.WithError(err).Error("Error setting autostart")
				}
			}()
		case models.KeyRefreshHotkey:
			na.toggleHotkey(settings.RefreshHotkey)
		}
	}
}

func (na *NextcloudAgenda) toggleHotkey(enabled bool) {
	if !enabled {
		if na.hotkey != nil {
			na.hotkey.Unregister()
			na.hotkey = nil
		}
		return
	}
	if na.hotkey != nil {
		return
	}

	hk, err := platform.RegisterRefreshHotkey(na.log, func() {
		na.controller.Refresh()
	})
	if err != nil {
		na.log.WithError(err).Warn("Failed to register refresh hotkey")
		return
	}
	na.hotkey = hk
}

func (na *NextcloudAgenda) showEventDetails(event models.Event) {
	platform.ActivateApp()
	ui.ShowEventDetails(na.app, na.window, na.log, event, na.store.Settings())
}

func (na *NextcloudAgenda) showConfigWindow() {
	// If config window already exists and is showing, just bring it to front
	if na.configWindow != nil {
		na.configWindow.window.RequestFocus()
		na.configWindow.window.Show()
		return
	}

	platform.ActivateApp()
	na.configWindow = NewConfigWindow(na.app, na.log, na.store, ConfigWindowOptions{
		Reader:      na.reader,
		Credentials: na.credentials,
		Positioner:  na.positioner,
		Tool:        na.env.Tool,
		WorkingDir:  na.env.Home,
		Locale:      na.locale,
	})
	na.configWindow.window.SetOnClosed(func() {
		na.configWindow = nil
	})
	na.configWindow.Show()
}

func (na *NextcloudAgenda) shutdown() {
	na.controller.Close()
	if na.hotkey != nil {
		na.hotkey.Unregister()
		na.hotkey = nil
	}
	if na.x11 != nil {
		na.x11.Close()
	}
	na.log.Info("Stopped")
}

func (na *NextcloudAgenda) quit() {
	na.app.Quit()
}
