package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/javahelps/nextcloud-agenda/pkg/models"
	"github.com/javahelps/nextcloud-agenda/pkg/spawn"
	"github.com/javahelps/nextcloud-agenda/pkg/ui/components"
)

const listCalendarsTimeout = 30 * time.Second

var (
	intervalOptions = []int{1, 3, 7, 14, 30}
	delayOptions    = []int{1, 5, 10, 15, 30, 60}
)

func (cw *ConfigWindow) buildCalendarTab() fyne.CanvasObject {
	cw.serverEntry = widget.NewEntry()
	cw.serverEntry.SetPlaceHolder("https://cloud.example.com")
	cw.serverEntry.SetText(cw.settings.ServerURL)
	cw.serverEntry.Validator = validateServerURL
	cw.serverEntry.OnChanged = func(string) { cw.markChanged() }

	cw.usernameEntry = widget.NewEntry()
	cw.usernameEntry.SetText(cw.settings.Username)
	cw.usernameEntry.OnChanged = func(string) { cw.markChanged() }

	cw.passwordEntry = widget.NewPasswordEntry()
	cw.passwordEntry.SetPlaceHolder("App password from Settings > Security")
	cw.passwordEntry.SetText(cw.settings.AppPassword)
	cw.passwordEntry.OnChanged = func(string) { cw.markChanged() }

	cw.accountEntry = widget.NewEntry()
	cw.accountEntry.SetPlaceHolder("default")
	cw.accountEntry.SetText(cw.settings.AccountID)
	cw.accountEntry.OnChanged = func(string) { cw.markChanged() }

	var calendarContainer *fyne.Container
	cw.calendarList, calendarContainer = components.NewCalendarList(cw.settings.CalendarNames, cw.markChanged)

	cw.listButton = widget.NewButtonWithIcon("List calendars", theme.ViewRefreshIcon(), func() {
		cw.discoverCalendars()
	})

	cw.intervalSelect = widget.NewSelect(unitOptions(intervalOptions, cw.settings.Lookahead(), "days"), func(string) {
		cw.markChanged()
	})
	cw.intervalSelect.SetSelected(unitOption(cw.settings.Lookahead(), "days"))

	cw.delaySelect = widget.NewSelect(unitOptions(delayOptions, cw.settings.RefreshMinutes(), "min"), func(string) {
		cw.markChanged()
	})
	cw.delaySelect.SetSelected(unitOption(cw.settings.RefreshMinutes(), "min"))

	// Create labels with help text
	serverLabel := widget.NewLabel("Server URL:")
	usernameLabel := widget.NewLabel("Username:")
	passwordLabel := widget.NewLabel("App Password:")
	passwordHelp := widget.NewLabel("Stored for ncalendar in ~/.config/ncalendar/config.ini")
	passwordHelp.Wrapping = fyne.TextWrapWord
	passwordHelp.Importance = widget.MediumImportance

	accountLabel := widget.NewLabel("Account:")
	accountHelp := widget.NewLabel("ncalendar account id, leave empty for the default account")
	accountHelp.Wrapping = fyne.TextWrapWord
	accountHelp.Importance = widget.MediumImportance

	calendarsLabel := widget.NewLabel("Calendars:")
	calendarsHelp := widget.NewLabel("Only checked calendars are shown. Save credentials before listing.")
	calendarsHelp.Wrapping = fyne.TextWrapWord
	calendarsHelp.Importance = widget.MediumImportance

	intervalLabel := widget.NewLabel("Look Ahead:")
	delayLabel := widget.NewLabel("Refresh Every:")

	// Use FormLayout for proper label-value alignment
	form := container.New(layout.NewFormLayout(),
		serverLabel, cw.serverEntry,
		usernameLabel, cw.usernameEntry,
		container.NewVBox(passwordLabel, passwordHelp), cw.passwordEntry,
		container.NewVBox(accountLabel, accountHelp), cw.accountEntry,
		container.NewVBox(calendarsLabel, calendarsHelp),
		container.NewVBox(calendarContainer, container.NewHBox(cw.listButton)),
		intervalLabel, container.NewVBox(cw.intervalSelect),
		delayLabel, container.NewVBox(cw.delaySelect),
	)

	content := container.NewVBox(
		widget.NewLabel("NextCloud Account"),
		widget.NewSeparator(),
		form,
	)

	return container.NewPadded(container.NewVScroll(content))
}

func (cw *ConfigWindow) readCalendarTab(s *models.Settings) {
	s.ServerURL = strings.TrimSpace(cw.serverEntry.Text)
	s.Username = strings.TrimSpace(cw.usernameEntry.Text)
	s.AppPassword = cw.passwordEntry.Text
	s.AccountID = strings.TrimSpace(cw.accountEntry.Text)
	s.CalendarNames = cw.calendarList.Choices()

	if v, ok := parseUnitOption(cw.intervalSelect.Selected); ok {
		s.Interval = v
	}
	if v, ok := parseUnitOption(cw.delaySelect.Selected); ok {
		s.Delay = v
	}
}

// discoverCalendars asks ncalendar for the calendar names of the account
// and merges them into the list, keeping existing check marks
func (cw *ConfigWindow) discoverCalendars() {
	settings := cw.getSettingsFromUI()
	if settings.NeedsConfiguration() {
		dialog.ShowInformation("Missing Credentials",
			"Enter the server URL, username and app password first.", cw.window)
		return
	}

	cw.listButton.Disable()
	go func() {
		// ncalendar reads the credentials from its own config file
		if err := cw.opts.Credentials.Write(settings); err != nil {
			cw.log.WithError(err).Error("Unable to export credentials")
		}

		ctx, cancel := context.WithTimeout(context.Background(), listCalendarsTimeout)
		defer cancel()

		names, err := cw.opts.listCalendars(ctx, settings)

		fyne.Do(func() {
			cw.listButton.Enable()
			if err != nil {
				cw.log.WithError(err).Error("Unable to list calendars")
				if spawn.IsNotFound(err) {
					err = fmt.Errorf("ncalendar is not installed. Run: pip3 install ncalendar")
				}
				dialog.ShowError(err, cw.window)
				return
			}

			merged := models.Settings{CalendarNames: cw.calendarList.Choices()}
			merged.MergeCalendars(names)
			cw.calendarList.SetChoices(merged.CalendarNames)
			cw.markChanged()
			cw.log.WithField("count", len(names)).Info("Listed calendars")
		})
	}()
}

func validateServerURL(s string) error {
	if s == "" {
		return nil
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	return nil
}

// unitOptions renders values as "7 days", adding current when missing
func unitOptions(values []int, current int, unit string) []string {
	options := []string{}
	found := false
	for _, v := range values {
		if v == current {
			found = true
		}
		options = append(options, unitOption(v, unit))
	}
	if !found {
		options = append(options, unitOption(current, unit))
	}
	return options
}

func unitOption(v int, unit string) string {
	return strconv.Itoa(v) + " " + unit
}

// parseUnitOption parses "15 min" -> 15
func parseUnitOption(option string) (int, bool) {
	var v int
	if _, err := fmt.Sscanf(option, "%d", &v); err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
