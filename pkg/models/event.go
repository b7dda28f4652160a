package models

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// AllDayTime is the start and end time ncalendar reports for all-day events
const AllDayTime = "00:00"

// DateLayout is the layout of start_date and end_date in ncalendar output
const DateLayout = "2006-01-02"

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// RawEvent is one object of the JSON array printed by ncalendar
type RawEvent struct {
	Name         string `json:"name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Location     string `json:"location"`
	CalendarName string `json:"calendar_name"`
	Color        string `json:"color"`
}

// Event is a normalized agenda entry. It is never mutated after NewEvent.
type Event struct {
	Name         string
	StartDate    time.Time // local midnight
	EndDate      time.Time // local midnight
	StartTime    string    // HH:MM
	EndTime      string    // HH:MM
	Location     string
	CalendarName string
	Color        string // CSS color, may be empty
}

// NewEvent converts a decoded record into an Event
func NewEvent(raw RawEvent) (Event, error) {
	start, err := time.ParseInLocation(DateLayout, raw.StartDate, time.Local)
	if err != nil {
		return Event{}, fmt.Errorf("invalid start_date %q for event %q: %w", raw.StartDate, raw.Name, err)
	}

	end := start
	if raw.EndDate != "" {
		end, err = time.ParseInLocation(DateLayout, raw.EndDate, time.Local)
		if err != nil {
			return Event{}, fmt.Errorf("invalid end_date %q for event %q: %w", raw.EndDate, raw.Name, err)
		}
	}

	startTime := raw.StartTime
	if startTime == "" {
		startTime = AllDayTime
	}
	endTime := raw.EndTime
	if endTime == "" {
		endTime = AllDayTime
	}

	return Event{
		Name:         raw.Name,
		StartDate:    start,
		EndDate:      end,
		StartTime:    startTime,
		EndTime:      endTime,
		Location:     raw.Location,
		CalendarName: raw.CalendarName,
		Color:        raw.Color,
	}, nil
}

// AllDay reports whether both times carry the all-day sentinel
func (e Event) AllDay() bool {
	return e.StartTime == AllDayTime && e.EndTime == AllDayTime
}

// StartDateText returns the start date as yyyy-MM-dd
func (e Event) StartDateText() string {
	return e.StartDate.Format(DateLayout)
}

// FormatEventDuration returns the time range shown next to the event name.
// All-day events have no range and yield "".
func (e Event) FormatEventDuration(use24h bool) string {
	if e.AllDay() {
		return ""
	}

	start := FormatTime(e.StartTime, use24h)
	end := FormatTime(e.EndTime, use24h)

	if start == end {
		return start
	}
	return start + " - " + end
}

// FormatDateRange renders the date line of the details dialog
func (e Event) FormatDateRange() string {
	start := e.StartDate.Format("January 02, 2006")

	// ncalendar reports the exclusive end day for all-day events, so a
	// single all-day event ends exactly one day after it starts.
	if e.EndDate.Sub(e.StartDate) > 24*time.Hour {
		return start + " - " + e.EndDate.Format("January 02, 2006")
	}
	return start
}

// FormatTime renders an HH:MM value in 24-hour or 12-hour form.
// Values that are not HH:MM are returned unchanged.
func FormatTime(value string, use24h bool) string {
	if use24h {
		return value
	}

	m := clockPattern.FindStringSubmatch(value)
	if m == nil {
		return value
	}

	hours, _ := strconv.Atoi(m[1])
	ampm := "AM"
	if hours >= 12 {
		ampm = "PM"
	}
	if hours == 0 {
		hours = 12
	}
	if hours > 12 {
		hours -= 12
	}
	return fmt.Sprintf("%d:%s %s", hours, m[2], ampm)
}
