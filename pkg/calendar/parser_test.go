package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javahelps/nextcloud-agenda/pkg/models"
)

const standup = `{"name":"Standup","start_date":"2024-03-04","end_date":"2024-03-04","start_time":"09:30","end_time":"09:45","location":"","calendar_name":"Work","color":"#0082c9"}`

func TestDecodeEvents(t *testing.T) {
	events, err := DecodeEvents([]byte("[" + standup + "]\n"))
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.Equal(t, "Standup", events[0].Name)
	assert.Equal(t, "Work", events[0].CalendarName)
	assert.Equal(t, "#0082c9", events[0].Color)
}

func TestDecodeEventsSkipsDiagnostics(t *testing.T) {
	output := "Please authenticate at https://cloud.example.com\nWarning: slow server\n[" + standup + "]\n\n"

	events, err := DecodeEvents([]byte(output))
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestDecodeEventsLastParseableLineWins(t *testing.T) {
	second := `{"name":"Review","start_date":"2024-03-05","start_time":"10:00","end_time":"11:00"}`
	output := "[" + standup + "]\n[" + standup + "," + second + "]\ntrailing garbage"

	events, err := DecodeEvents([]byte(output))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Review", events[1].Name)
}

func TestDecodeEventsEmptyList(t *testing.T) {
	events, err := DecodeEvents([]byte("[]"))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestDecodeEventsFailures(t *testing.T) {
	tests := map[string]string{
		"empty":    "",
		"text":     "Unable to connect to server",
		"null":     "null",
		"object":   standup,
		"bad date": `[{"name":"x","start_date":"soon"}]`,
	}

	for name, output := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeEvents([]byte(output))
			assert.ErrorIs(t, err, ErrNoEvents)
		})
	}
}

func TestEventsCommand(t *testing.T) {
	settings := models.DefaultSettings()
	settings.CalendarNames = []models.CalendarChoice{
		{Name: "Work", Display: true},
		{Name: "Personal", Display: true},
	}

	assert.Equal(t,
		[]string{"ncalendar", "--output", "json", "--days", "7", "--calendars", "Work,Personal"},
		EventsCommand(DefaultTool, settings))

	settings.CalendarNames = nil
	settings.Interval = 14
	settings.AccountID = "work"
	assert.Equal(t,
		[]string{"ncalendar", "--output", "json", "--days", "14", "--account", "work"},
		EventsCommand(DefaultTool, settings))
}

func TestListCalendarsCommand(t *testing.T) {
	settings := models.DefaultSettings()
	assert.Equal(t,
		[]string{"/opt/ncalendar", "--output", "txt", "--list-calendars"},
		ListCalendarsCommand("/opt/ncalendar", settings))

	assert.Equal(t, []string{"Work", "Personal"}, ParseCalendarNames([]byte("Work\n\n  Personal  \n")))
	assert.Empty(t, ParseCalendarNames(nil))
}
