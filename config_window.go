package main

import (
	"context"
	"reflect"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/goodsign/monday"
	"github.com/sirupsen/logrus"

	"github.com/javahelps/nextcloud-agenda/pkg/calendar"
	"github.com/javahelps/nextcloud-agenda/pkg/models"
	"github.com/javahelps/nextcloud-agenda/pkg/position"
	"github.com/javahelps/nextcloud-agenda/pkg/spawn"
	"github.com/javahelps/nextcloud-agenda/pkg/store"
	"github.com/javahelps/nextcloud-agenda/pkg/ui/components"
)

const savedText = "Settings saved successfully"

// ConfigWindowOptions are the services the settings window talks to
type ConfigWindowOptions struct {
	Reader      *spawn.Reader
	Credentials *store.CredentialWriter
	Positioner  *position.Controller
	Tool        string
	WorkingDir  string // ncalendar runs here, as in the refresh loop
	Locale      monday.Locale
}

// listCalendars runs the ncalendar discovery command for settings
func (o ConfigWindowOptions) listCalendars(ctx context.Context, settings models.Settings) ([]string, error) {
	output, err := o.Reader.Read(ctx, o.WorkingDir, calendar.ListCalendarsCommand(o.Tool, settings))
	if err != nil {
		return nil, err
	}
	return calendar.ParseCalendarNames(output), nil
}

type ConfigWindow struct {
	window   fyne.Window
	app      fyne.App
	log      *logrus.Entry
	store    *store.ConfigStore
	opts     ConfigWindowOptions
	settings models.Settings

	// Calendar tab
	serverEntry    *widget.Entry
	usernameEntry  *widget.Entry
	passwordEntry  *widget.Entry
	accountEntry   *widget.Entry
	calendarList   *components.CalendarList
	intervalSelect *widget.Select
	delaySelect    *widget.Select
	listButton     *widget.Button

	// Display tab
	use24hCheck        *widget.Check
	dateFormatEntry    *widget.Entry
	todayFormatEntry   *widget.Entry
	tomorrowEntry      *widget.Entry
	datePreview        *widget.Label
	zoomSlider         *widget.Slider
	textColorEntry     *widget.Entry
	allDayColorEntry   *widget.Entry
	bgColorEntry       *widget.Entry
	locationColorEntry *widget.Entry
	cornerSlider       *widget.Slider
	transparencySlider *widget.Slider
	showLocationCheck  *widget.Check
	diffCalendarCheck  *widget.Check

	// Position tab
	autoPositionCheck *widget.Check
	monitorSelect     *widget.Select
	positionXEntry    *widget.Entry
	positionYEntry    *widget.Entry
	monitorsLabel     *widget.Label

	// General tab
	autoStartCheck *widget.Check
	hotkeyCheck    *widget.Check

	// UI state
	building          bool
	hasUnsavedChanges bool
	saveStatusLabel   *widget.Label
	saveButton        *widget.Button
}

func NewConfigWindow(app fyne.App, log *logrus.Entry, configStore *store.ConfigStore, opts ConfigWindowOptions) *ConfigWindow {
	cw := &ConfigWindow{
		app:      app,
		log:      log.WithField("component", "settings-window"),
		store:    configStore,
		opts:     opts,
		settings: configStore.Settings(),
	}

	cw.window = app.NewWindow("NextCloud Agenda - Settings")
	cw.buildUI()

	return cw
}

func (cw *ConfigWindow) buildUI() {
	// widget constructors fire change callbacks while the initial values are set
	cw.building = true
	tabs := container.NewAppTabs(
		container.NewTabItem("Calendar", cw.buildCalendarTab()),
		container.NewTabItem("Display", cw.buildDisplayTab()),
		container.NewTabItem("Position", cw.buildPositionTab()),
		container.NewTabItem("General", cw.buildGeneralTab()),
	)
	cw.building = false

	// Save status label
	cw.saveStatusLabel = widget.NewLabel("")
	cw.saveStatusLabel.Importance = widget.SuccessImportance

	cw.saveButton = widget.NewButton("Save", func() {
		cw.save()
	})
	cw.saveButton.Importance = widget.HighImportance
	cw.saveButton.Disable() // Initially disabled until changes are made

	closeButton := widget.NewButton("Close", func() {
		cw.handleClose()
	})

	buttonRow := container.NewBorder(
		nil,
		nil,
		container.NewHBox(cw.saveButton, cw.saveStatusLabel),
		closeButton,
		container.NewHBox(),
	)

	content := container.NewBorder(
		nil,
		container.NewPadded(buttonRow),
		nil,
		nil,
		tabs,
	)

	cw.window.SetContent(content)
	cw.window.Resize(fyne.NewSize(760, 640))
	cw.window.CenterOnScreen()

	cw.setupKeyboardShortcuts()

	// Add close interceptor for unsaved changes
	cw.window.SetCloseIntercept(func() {
		cw.handleClose()
	})
}

func (cw *ConfigWindow) save() {
	if !cw.hasUnsavedChanges {
		return
	}

	cw.saveButton.Disable()
	cw.saveStatusLabel.SetText("Saving...")
	cw.saveStatusLabel.Importance = widget.MediumImportance
	cw.saveStatusLabel.Refresh()

	next := cw.getSettingsFromUI()
	go func() {
		changed := cw.store.Save(next)
		cw.log.WithField("keys", changed).Debug("Saved from settings window")

		fyne.Do(func() {
			cw.settings = next
			cw.hasUnsavedChanges = false
			cw.saveStatusLabel.SetText(savedText)
			cw.saveStatusLabel.Importance = widget.SuccessImportance
			cw.saveStatusLabel.Refresh()
			cw.updateSaveButtonState()

			// Clear success message after 3 seconds
			time.AfterFunc(3*time.Second, func() {
				fyne.Do(func() {
					if cw.saveStatusLabel.Text == savedText {
						cw.saveStatusLabel.SetText("")
					}
				})
			})
		})
	}()
}

// getSettingsFromUI starts from the stored snapshot so keys without a
// widget keep their value
func (cw *ConfigWindow) getSettingsFromUI() models.Settings {
	s := cw.settings
	s.CalendarNames = append([]models.CalendarChoice{}, s.CalendarNames...)

	cw.readCalendarTab(&s)
	cw.readDisplayTab(&s)
	cw.readPositionTab(&s)
	cw.readGeneralTab(&s)
	return s
}

func (cw *ConfigWindow) Show() {
	cw.window.Show()
}

// markChanged marks the settings as having unsaved changes
func (cw *ConfigWindow) markChanged() {
	if cw.building {
		return
	}
	cw.hasUnsavedChanges = true
	cw.updateSaveButtonState()
}

func (cw *ConfigWindow) updateSaveButtonState() {
	if cw.saveButton == nil {
		return
	}
	if cw.hasUnsavedChanges {
		cw.saveButton.Enable()
	} else {
		cw.saveButton.Disable()
	}
}

// handleClose asks for confirmation when there are unsaved changes
func (cw *ConfigWindow) handleClose() {
	if cw.hasActualChanges() {
		dialog.ShowConfirm("Unsaved Changes",
			"You have unsaved changes. Are you sure you want to close?",
			func(confirmed bool) {
				if confirmed {
					cw.window.Close()
				}
			}, cw.window)
		return
	}
	cw.window.Close()
}

func (cw *ConfigWindow) hasActualChanges() bool {
	return !reflect.DeepEqual(cw.getSettingsFromUI(), cw.settings)
}

func (cw *ConfigWindow) setupKeyboardShortcuts() {
	cw.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyS,
		Modifier: fyne.KeyModifierShortcutDefault,
	}, func(fyne.Shortcut) {
		cw.log.Debug("Save shortcut triggered")
		cw.save()
	})

	cw.window.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		if key.Name == fyne.KeyEscape {
			cw.handleClose()
		}
	})
}
