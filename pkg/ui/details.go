package ui

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/javahelps/nextcloud-agenda/pkg/calendar"
	"github.com/javahelps/nextcloud-agenda/pkg/models"
)

// AllDayText replaces the time range of all-day events
const AllDayText = "All Day Event"

// EventDetails is the text shown by the details dialog and notification
type EventDetails struct {
	Title    string
	Date     string
	Time     string
	Location string
	Calendar string
}

// NewEventDetails formats event for display
func NewEventDetails(event models.Event, use24h bool) EventDetails {
	when := AllDayText
	if !event.AllDay() {
		when = event.FormatEventDuration(use24h)
	}

	return EventDetails{
		Title:    event.Name,
		Date:     event.FormatDateRange(),
		Time:     when,
		Location: event.Location,
		Calendar: event.CalendarName,
	}
}

// Body joins the non-empty lines for a desktop notification
func (d EventDetails) Body() string {
	lines := []string{d.Date, d.Time}
	if d.Location != "" {
		lines = append(lines, "Location: "+d.Location)
	}
	if d.Calendar != "" {
		lines = append(lines, "Calendar: "+d.Calendar)
	}
	return strings.Join(lines, "\n")
}

// DayURL points the Nextcloud calendar app at the day of event
func DayURL(settings models.Settings, event models.Event) (*url.URL, error) {
	raw := fmt.Sprintf("%s/dayGridMonth/%s", settings.CalendarURL(), event.StartDate.Format("2006/01/02"))
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar URL %q: %w", raw, err)
	}
	return u, nil
}

// ShowEventDetails opens the details dialog over parent and sends a
// desktop notification with the same content
func ShowEventDetails(app fyne.App, parent fyne.Window, log *logrus.Entry, event models.Event, settings models.Settings) {
	details := NewEventDetails(event, settings.Use24hClock)

	title := widget.NewLabel(details.Title)
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Wrapping = fyne.TextWrapWord

	form := widget.NewForm(
		widget.NewFormItem("Date", widget.NewLabel(details.Date)),
		widget.NewFormItem("Time", widget.NewLabel(details.Time)),
	)
	if details.Location != "" {
		location := widget.NewLabel(details.Location)
		location.Wrapping = fyne.TextWrapWord
		form.Append("Location", location)
	}
	if details.Calendar != "" {
		calendarRow := container.NewHBox(
			bullet(ParseColor(event.Color, theme.Color(theme.ColorNameForeground))),
			widget.NewLabel(details.Calendar),
		)
		form.Append("Calendar", calendarRow)
	}

	d := dialog.NewCustomWithoutButtons("Event Details", container.NewVBox(title, widget.NewSeparator(), form), parent)

	openButton := widget.NewButtonWithIcon("Open in Nextcloud", theme.ComputerIcon(), func() {
		u, err := DayURL(settings, event)
		if err != nil {
			log.WithError(err).Error("Unable to open calendar")
			dialog.ShowError(err, parent)
			return
		}
		if err := app.OpenURL(u); err != nil {
			log.WithError(err).Error("Unable to open calendar")
		}
	})
	openButton.Importance = widget.HighImportance

	exportButton := widget.NewButtonWithIcon("Export .ics", theme.DocumentSaveIcon(), func() {
		exportEvent(parent, log, event)
	})

	closeButton := widget.NewButton("Close", func() {
		d.Hide()
	})

	d.SetButtons([]fyne.CanvasObject{openButton, exportButton, closeButton})
	d.Resize(fyne.NewSize(420, 0))
	d.Show()

	app.SendNotification(fyne.NewNotification(details.Title, details.Body()))
}

func exportEvent(parent fyne.Window, log *logrus.Entry, event models.Event) {
	data, err := calendar.ExportEvent(event, time.Now())
	if err != nil {
		log.WithError(err).Error("Unable to export event")
		dialog.ShowError(err, parent)
		return
	}

	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, parent)
			return
		}
		if writer == nil {
			return // cancelled
		}
		defer writer.Close()

		if _, err := writer.Write(data); err != nil {
			log.WithError(err).Error("Unable to write .ics file")
			dialog.ShowError(err, parent)
			return
		}
		log.WithField("uri", writer.URI().String()).Info("Exported event")
	}, parent)
	save.SetFileName(calendar.ExportFileName(event))
	save.Show()
}
