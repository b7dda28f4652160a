package calendar

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/javahelps/nextcloud-agenda/pkg/models"
)

const productID = "-//javahelps//nextcloud-agenda//EN"

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// ExportEvent encodes a single event as an iCalendar document
func ExportEvent(event models.Event, now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	vevent := ical.NewEvent()
	vevent.Props.SetText(ical.PropUID, uuid.New().String())
	vevent.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	vevent.Props.SetText(ical.PropSummary, event.Name)

	if event.Location != "" {
		vevent.Props.SetText(ical.PropLocation, event.Location)
	}
	if event.CalendarName != "" {
		vevent.Props.SetText(ical.PropCategories, event.CalendarName)
	}

	if event.AllDay() {
		end := event.EndDate
		if !end.After(event.StartDate) {
			end = event.StartDate.AddDate(0, 0, 1)
		}
		vevent.Props.SetDate(ical.PropDateTimeStart, event.StartDate)
		vevent.Props.SetDate(ical.PropDateTimeEnd, end)
	} else {
		start, err := atClock(event.StartDate, event.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := atClock(event.EndDate, event.EndTime)
		if err != nil {
			return nil, err
		}
		vevent.Props.SetDateTime(ical.PropDateTimeStart, start.UTC())
		vevent.Props.SetDateTime(ical.PropDateTimeEnd, end.UTC())
	}

	cal.Children = append(cal.Children, vevent.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFileName suggests a file name for the exported event
func ExportFileName(event models.Event) string {
	name := strings.Trim(unsafeFileChars.ReplaceAllString(strings.ToLower(event.Name), "-"), "-")
	if name == "" {
		name = "event"
	}
	return event.StartDateText() + "-" + name + ".ics"
}

func atClock(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
