package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	event, err := NewEvent(RawEvent{
		Name:         "Standup",
		StartDate:    "2024-03-04",
		EndDate:      "2024-03-04",
		StartTime:    "09:30",
		EndTime:      "09:45",
		Location:     "Room 1",
		CalendarName: "Work",
		Color:        "#ff0000",
	})
	require.NoError(t, err)

	assert.Equal(t, "Standup", event.Name)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local), event.StartDate)
	assert.Equal(t, "2024-03-04", event.StartDateText())
	assert.False(t, event.AllDay())
}

func TestNewEventDefaults(t *testing.T) {
	event, err := NewEvent(RawEvent{Name: "Holiday", StartDate: "2024-12-25"})
	require.NoError(t, err)

	assert.Equal(t, event.StartDate, event.EndDate)
	assert.Equal(t, AllDayTime, event.StartTime)
	assert.Equal(t, AllDayTime, event.EndTime)
	assert.True(t, event.AllDay())
}

func TestNewEventInvalidDate(t *testing.T) {
	_, err := NewEvent(RawEvent{Name: "Broken", StartDate: "04/03/2024"})
	assert.Error(t, err)

	_, err = NewEvent(RawEvent{Name: "Broken", StartDate: "2024-03-04", EndDate: "tomorrow"})
	assert.Error(t, err)
}

func TestFormatEventDuration(t *testing.T) {
	tests := []struct {
		name   string
		start  string
		end    string
		use24h bool
		want   string
	}{
		{"all day", "00:00", "00:00", true, ""},
		{"24h range", "09:30", "10:00", true, "09:30 - 10:00"},
		{"12h range", "09:30", "13:15", false, "9:30 AM - 1:15 PM"},
		{"same time", "14:00", "14:00", true, "14:00"},
		{"midnight start", "00:00", "01:00", false, "12:00 AM - 1:00 AM"},
		{"noon", "12:00", "12:30", false, "12:00 PM - 12:30 PM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := Event{StartTime: tt.start, EndTime: tt.end}
			assert.Equal(t, tt.want, event.FormatEventDuration(tt.use24h))
		})
	}
}

func TestFormatTimeKeepsUnknownValues(t *testing.T) {
	assert.Equal(t, "soon", FormatTime("soon", false))
	assert.Equal(t, "25:00", FormatTime("25:00", false))
	assert.Equal(t, "23:59", FormatTime("23:59", true))
	assert.Equal(t, "11:59 PM", FormatTime("23:59", false))
}

func TestFormatDateRange(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)

	single := Event{StartDate: day, EndDate: day.AddDate(0, 0, 1)}
	assert.Equal(t, "March 04, 2024", single.FormatDateRange())

	multi := Event{StartDate: day, EndDate: day.AddDate(0, 0, 3)}
	assert.Equal(t, "March 04, 2024 - March 07, 2024", multi.FormatDateRange())
}
