package main

import (
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

// newMenu builds the actions shared by the tray and the widget context menu
func (na *NextcloudAgenda) newMenu() *fyne.Menu {
	return fyne.NewMenu("NextCloud Agenda",
		fyne.NewMenuItem("Open NextCloud Calendar", func() {
			na.openCalendar()
		}),
		fyne.NewMenuItem("Refresh Events", func() {
			na.controller.Refresh()
		}),
		fyne.NewMenuItem("Settings", func() {
			na.showConfigWindow()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			na.quit()
		}),
	)
}

func (na *NextcloudAgenda) setupSystemTray() {
	if desk, ok := na.app.(desktop.App); ok {
		desk.SetSystemTrayMenu(na.newMenu())
		desk.SetSystemTrayIcon(theme.CalendarIcon())
	}
}

func (na *NextcloudAgenda) openCalendar() {
	settings := na.store.Settings()
	raw := settings.CalendarURL()
	if raw == "" {
		na.log.Warn("Server URL is not configured")
		na.showConfigWindow()
		return
	}

	u, err := url.Parse(raw)
	if err != nil {
		na.log.WithError(err).Error("Invalid server URL")
		dialog.ShowError(err, na.window)
		return
	}
	if err := na.app.OpenURL(u); err != nil {
		na.log.WithError(err).Error("Unable to open calendar")
	}
}
