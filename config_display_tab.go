package main

import (
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/mazznoer/csscolorparser"

	"github.com/javahelps/nextcloud-agenda/pkg/calendar"
	"github.com/javahelps/nextcloud-agenda/pkg/models"
)

func (cw *ConfigWindow) buildDisplayTab() fyne.CanvasObject {
	cw.use24hCheck = widget.NewCheck("Use 24-hour clock", func(bool) { cw.markChanged() })
	cw.use24hCheck.SetChecked(cw.settings.Use24hClock)

	cw.datePreview = widget.NewLabel("")
	cw.datePreview.Importance = widget.MediumImportance

	cw.dateFormatEntry = cw.patternEntry(cw.settings.DateFormat)
	cw.todayFormatEntry = cw.patternEntry(cw.settings.TodayFormat)
	cw.tomorrowEntry = cw.patternEntry(cw.settings.TomorrowFormat)
	cw.updateDatePreview()

	cw.zoomSlider = cw.slider(0.5, 3, 0.1, cw.settings.Zoom)
	cw.cornerSlider = cw.slider(0, 30, 1, float64(cw.settings.CornerRadius))
	cw.transparencySlider = cw.slider(0, 1, 0.05, cw.settings.Transparency)

	cw.textColorEntry = cw.colorEntry(cw.settings.TextColor)
	cw.allDayColorEntry = cw.colorEntry(cw.settings.AllDayTextColor)
	cw.bgColorEntry = cw.colorEntry(cw.settings.BgColor)
	cw.locationColorEntry = cw.colorEntry(cw.settings.LocationColor)

	cw.showLocationCheck = widget.NewCheck("Show event location", func(bool) { cw.markChanged() })
	cw.showLocationCheck.SetChecked(cw.settings.ShowLocation)

	cw.diffCalendarCheck = widget.NewCheck("Mark events with their calendar color", func(bool) { cw.markChanged() })
	cw.diffCalendarCheck.SetChecked(cw.settings.DiffCalendar)

	patternHelp := widget.NewLabel("Tokens: yyyy MMMM MMM MM dddd ddd dd d. Quote literal text: 'Today'")
	patternHelp.Wrapping = fyne.TextWrapWord
	patternHelp.Importance = widget.MediumImportance

	colorHelp := widget.NewLabel("Any CSS color: #rrggbb, rgb(r,g,b), names")
	colorHelp.Importance = widget.MediumImportance

	form := container.New(layout.NewFormLayout(),
		widget.NewLabel("Clock:"), cw.use24hCheck,
		container.NewVBox(widget.NewLabel("Date Format:"), patternHelp), cw.dateFormatEntry,
		widget.NewLabel("Today Format:"), cw.todayFormatEntry,
		widget.NewLabel("Tomorrow Format:"), cw.tomorrowEntry,
		widget.NewLabel("Preview:"), cw.datePreview,
		widget.NewLabel("Zoom:"), cw.zoomSlider,
		container.NewVBox(widget.NewLabel("Text Color:"), colorHelp), cw.textColorEntry,
		widget.NewLabel("All-Day Text Color:"), cw.allDayColorEntry,
		widget.NewLabel("Location Color:"), cw.locationColorEntry,
		widget.NewLabel("Background Color:"), cw.bgColorEntry,
		widget.NewLabel("Corner Radius:"), cw.cornerSlider,
		widget.NewLabel("Transparency:"), cw.transparencySlider,
		widget.NewLabel("Location:"), cw.showLocationCheck,
		widget.NewLabel("Calendars:"), cw.diffCalendarCheck,
	)

	content := container.NewVBox(
		widget.NewLabel("Display Settings"),
		widget.NewSeparator(),
		form,
	)

	return container.NewPadded(container.NewVScroll(content))
}

func (cw *ConfigWindow) readDisplayTab(s *models.Settings) {
	s.Use24hClock = cw.use24hCheck.Checked
	s.DateFormat = cw.dateFormatEntry.Text
	s.TodayFormat = cw.todayFormatEntry.Text
	s.TomorrowFormat = cw.tomorrowEntry.Text
	s.Zoom = cw.zoomSlider.Value
	s.CornerRadius = int(cw.cornerSlider.Value)
	s.Transparency = cw.transparencySlider.Value
	s.TextColor = strings.TrimSpace(cw.textColorEntry.Text)
	s.AllDayTextColor = strings.TrimSpace(cw.allDayColorEntry.Text)
	s.BgColor = strings.TrimSpace(cw.bgColorEntry.Text)
	s.LocationColor = strings.TrimSpace(cw.locationColorEntry.Text)
	s.ShowLocation = cw.showLocationCheck.Checked
	s.DiffCalendar = cw.diffCalendarCheck.Checked
}

func (cw *ConfigWindow) patternEntry(value string) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(value)
	e.OnChanged = func(string) {
		cw.updateDatePreview()
		cw.markChanged()
	}
	return e
}

func (cw *ConfigWindow) colorEntry(value string) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(value)
	e.Validator = validateColor
	e.OnChanged = func(string) { cw.markChanged() }
	return e
}

func (cw *ConfigWindow) slider(min, max, step, value float64) *widget.Slider {
	s := widget.NewSlider(min, max)
	s.Step = step
	s.SetValue(value)
	s.OnChanged = func(float64) { cw.markChanged() }
	return s
}

// updateDatePreview shows today, tomorrow and the day after as the widget would
func (cw *ConfigWindow) updateDatePreview() {
	if cw.dateFormatEntry == nil || cw.todayFormatEntry == nil || cw.tomorrowEntry == nil {
		return
	}

	settings := models.Settings{
		DateFormat:     cw.dateFormatEntry.Text,
		TodayFormat:    cw.todayFormatEntry.Text,
		TomorrowFormat: cw.tomorrowEntry.Text,
	}
	formatter := calendar.NewDateFormatter(settings, time.Now(), cw.opts.Locale)
	today := formatter.Today

	cw.datePreview.SetText(strings.Join([]string{
		formatter.Format(today),
		formatter.Format(today.AddDate(0, 0, 1)),
		formatter.Format(today.AddDate(0, 0, 2)),
	}, "  /  "))
}

func validateColor(s string) error {
	if _, err := csscolorparser.Parse(s); err != nil {
		return fmt.Errorf("invalid color: %w", err)
	}
	return nil
}
