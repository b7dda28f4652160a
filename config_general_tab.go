package main

import (
	"os/exec"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/javahelps/nextcloud-agenda/pkg/models"
)

func (cw *ConfigWindow) buildGeneralTab() fyne.CanvasObject {
	cw.autoStartCheck = widget.NewCheck("Auto Start on Login", func(checked bool) {
		cw.markChanged()
	})
	cw.autoStartCheck.SetChecked(cw.settings.AutoStart)

	cw.hotkeyCheck = widget.NewCheck("Refresh with Ctrl+Shift+R", func(checked bool) {
		cw.markChanged()
	})
	cw.hotkeyCheck.SetChecked(cw.settings.RefreshHotkey)

	// Storage root URI display (read-only)
	storageURIEntry := widget.NewEntry()
	storageURIEntry.SetText(cw.app.Storage().RootURI().String())
	storageURIEntry.Disable()

	credentialsEntry := widget.NewEntry()
	credentialsEntry.SetText(cw.opts.Credentials.Path())
	credentialsEntry.Disable()

	openStorageButton := widget.NewButton("Open in File Manager", func() {
		cw.openFileManager(cw.app.Storage().RootURI().Path())
	})

	autoStartLabel := widget.NewLabel("Auto Start:")
	autoStartHelp := widget.NewLabel("Launch NextCloud Agenda automatically when you log in")
	autoStartHelp.Importance = widget.MediumImportance

	hotkeyLabel := widget.NewLabel("Global Hotkey:")
	hotkeyHelp := widget.NewLabel("Refresh events from any application")
	hotkeyHelp.Importance = widget.MediumImportance

	storageLabel := widget.NewLabel("Storage Location:")
	storageHelp := widget.NewLabel("Application data and settings are stored here")
	storageHelp.Wrapping = fyne.TextWrapWord
	storageHelp.Importance = widget.MediumImportance

	credentialsLabel := widget.NewLabel("ncalendar Config:")

	storageContainer := container.NewBorder(
		nil,
		container.NewPadded(openStorageButton),
		nil,
		nil,
		storageURIEntry,
	)

	form := container.New(layout.NewFormLayout(),
		container.NewVBox(autoStartLabel, autoStartHelp),
		cw.autoStartCheck,

		container.NewVBox(hotkeyLabel, hotkeyHelp),
		cw.hotkeyCheck,

		container.NewVBox(storageLabel, storageHelp),
		storageContainer,

		credentialsLabel,
		credentialsEntry,
	)

	content := container.NewVBox(
		widget.NewLabel("General Settings"),
		widget.NewSeparator(),
		form,
	)

	return container.NewPadded(container.NewVScroll(content))
}

func (cw *ConfigWindow) readGeneralTab(s *models.Settings) {
	s.AutoStart = cw.autoStartCheck.Checked
	s.RefreshHotkey = cw.hotkeyCheck.Checked
}

func (cw *ConfigWindow) openFileManager(path string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		cw.log.Warnf("Unsupported OS: %s", runtime.GOOS)
		return
	}

	if err := cmd.Start(); err != nil {
		cw.log.WithError(err).Error("Error opening file manager")
	}
}
