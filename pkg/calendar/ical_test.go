package calendar

import (
	"bytes"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javahelps/nextcloud-agenda/pkg/models"
)

func TestExportEvent(t *testing.T) {
	event := models.Event{
		Name:         "Team Lunch",
		StartDate:    date(2024, 3, 4),
		EndDate:      date(2024, 3, 4),
		StartTime:    "12:00",
		EndTime:      "13:00",
		Location:     "Cafeteria",
		CalendarName: "Work",
	}

	data, err := ExportEvent(event, time.Now())
	require.NoError(t, err)

	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 1)

	summary, err := events[0].Props.Text(ical.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "Team Lunch", summary)

	start, err := events[0].DateTimeStart(time.Local)
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2024, 3, 4, 12, 0, 0, 0, time.Local)))

	end, err := events[0].DateTimeEnd(time.Local)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, end.Sub(start))
}

func TestExportAllDayEvent(t *testing.T) {
	event := models.Event{
		Name:      "Holiday",
		StartDate: date(2024, 12, 25),
		EndDate:   date(2024, 12, 25),
		StartTime: models.AllDayTime,
		EndTime:   models.AllDayTime,
	}

	data, err := ExportEvent(event, time.Now())
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "DTSTART;VALUE=DATE:20241225")
	assert.Contains(t, text, "DTEND;VALUE=DATE:20241226")
	assert.NotContains(t, text, "LOCATION")
}

func TestExportFileName(t *testing.T) {
	event := models.Event{Name: "Team Lunch @ Café!", StartDate: date(2024, 3, 4)}
	assert.Equal(t, "2024-03-04-team-lunch-caf.ics", ExportFileName(event))

	event.Name = "!!!"
	assert.Equal(t, "2024-03-04-event.ics", ExportFileName(event))
}
