package agenda

import (
	"testing"
	"time"

	"github.com/goodsign/monday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javahelps/nextcloud-agenda/pkg/calendar"
	"github.com/javahelps/nextcloud-agenda/pkg/models"
)

var today = time.Date(2024, 3, 4, 10, 0, 0, 0, time.Local)

func day(offset int) time.Time {
	return calendar.Day(today).AddDate(0, 0, offset)
}

func newEvent(name string, offset int, start, end string) models.Event {
	return models.Event{
		Name:         name,
		StartDate:    day(offset),
		EndDate:      day(offset),
		StartTime:    start,
		EndTime:      end,
		Location:     name + " room",
		CalendarName: "Work",
		Color:        "#0082c9",
	}
}

func renderOptions(settings models.Settings) RenderOptions {
	formatter := calendar.NewDateFormatter(settings, today, monday.LocaleEnUS)
	return NewRenderOptions(settings, formatter)
}

func TestRenderBucketsByDay(t *testing.T) {
	settings := models.DefaultSettings()
	settings.ShowLocation = false

	events := []models.Event{
		newEvent("Standup", 0, "09:00", "09:15"),
		newEvent("Review", 0, "14:00", "15:00"),
		newEvent("Planning", 1, "10:00", "11:00"),
	}

	tree := NewRenderer(RuneMeasurer{RuneWidth: 10}).Render(events, renderOptions(settings))

	assert.Equal(t, 2, tree.Count(NodeHeader))
	assert.Equal(t, 3, tree.Count(NodeEvent))
	assert.Equal(t, 0, tree.Count(NodeLocation))
	assert.Equal(t, []string{
		"TODAY",
		"Standup | 09:00 - 09:15",
		"Review | 14:00 - 15:00",
		"TOMORROW",
		"Planning | 10:00 - 11:00",
	}, tree.Lines())
	assert.Equal(t, day(1), tree.LastBucket)
}

func TestRenderSameDayHasOneHeader(t *testing.T) {
	settings := models.DefaultSettings()

	events := []models.Event{}
	for i := 0; i < 5; i++ {
		events = append(events, newEvent("Meeting", 3, "09:00", "10:00"))
	}

	tree := NewRenderer(nil).Render(events, renderOptions(settings))

	assert.Equal(t, 1, tree.Count(NodeHeader))
	assert.Equal(t, 5, tree.Count(NodeEvent))
	assert.Equal(t, "THURSDAY, MARCH 7", tree.Nodes[0].Text)
}

func TestRenderRecordsRunningMaxWidth(t *testing.T) {
	settings := models.DefaultSettings()
	settings.ShowLocation = false

	events := []models.Event{
		newEvent("A", 0, "09:00", "10:00"),
		newEvent("B", 1, "09:00", "10:00"),
		newEvent("C", 2, "09:00", "10:00"),
	}

	tree := NewRenderer(RuneMeasurer{RuneWidth: 10}).Render(events, renderOptions(settings))
	require.Len(t, tree.Nodes, 6)

	// TODAY, TOMORROW, WEDNESDAY, MARCH 6
	assert.Equal(t, float32(50), tree.Nodes[1].Width)
	assert.Equal(t, float32(80), tree.Nodes[3].Width)
	assert.Equal(t, float32(180), tree.Nodes[5].Width)
	assert.Equal(t, float32(180), tree.MaxWidth)

	assert.False(t, tree.Nodes[0].Leading)
	assert.True(t, tree.Nodes[2].Leading)
}

func TestRenderLocationAndBullets(t *testing.T) {
	settings := models.DefaultSettings()
	settings.ShowLocation = true
	settings.DiffCalendar = true

	withLocation := newEvent("Lunch", 0, "12:00", "13:00")
	withoutLocation := newEvent("Call", 0, "15:00", "15:30")
	withoutLocation.Location = ""

	tree := NewRenderer(nil).Render([]models.Event{withLocation, withoutLocation}, renderOptions(settings))

	assert.Equal(t, 1, tree.Count(NodeLocation))
	require.Len(t, tree.Nodes, 4)

	row := tree.Nodes[1]
	assert.True(t, row.Bullet)
	assert.Equal(t, "#0082c9", row.BulletColor)
	require.NotNil(t, row.Event)
	assert.Equal(t, "Lunch", row.Event.Name)

	assert.Equal(t, NodeLocation, tree.Nodes[2].Kind)
	assert.Equal(t, "Lunch room", tree.Nodes[2].Text)

	settings.DiffCalendar = false
	tree = NewRenderer(nil).Render([]models.Event{withLocation}, renderOptions(settings))
	assert.False(t, tree.Nodes[1].Bullet)
}

func TestRenderAllDayAndClockFormat(t *testing.T) {
	settings := models.DefaultSettings()
	settings.ShowLocation = false
	settings.Use24hClock = false

	events := []models.Event{
		newEvent("Holiday", 0, "00:00", "00:00"),
		newEvent("Dinner", 0, "19:00", "21:30"),
	}

	tree := NewRenderer(nil).Render(events, renderOptions(settings))

	assert.True(t, tree.Nodes[1].AllDay)
	assert.Equal(t, "", tree.Nodes[1].Time)
	assert.Equal(t, "7:00 PM - 9:30 PM", tree.Nodes[2].Time)
}

func TestRenderNoEvents(t *testing.T) {
	tree := NewRenderer(nil).Render(nil, renderOptions(models.DefaultSettings()))

	assert.Equal(t, []string{NoEventsText}, tree.Lines())
	assert.Equal(t, 1, tree.Count(NodeMessage))
	assert.True(t, tree.LastBucket.IsZero())
}

func TestRenderIsIdempotent(t *testing.T) {
	settings := models.DefaultSettings()
	events := []models.Event{
		newEvent("Standup", 0, "09:00", "09:15"),
		newEvent("Planning", 4, "10:00", "11:00"),
	}

	r := NewRenderer(nil)
	first := r.Render(events, renderOptions(settings))
	second := r.Render(events, renderOptions(settings))

	assert.Equal(t, first.Lines(), second.Lines())
}

func TestMessageTree(t *testing.T) {
	tree := MessageTree(ToolMissingText, ToolMissingHint)
	assert.Equal(t, []string{ToolMissingText + " | " + ToolMissingHint}, tree.Lines())
}

func TestReactionFor(t *testing.T) {
	assert.Equal(t, ReactRefetch, ReactionFor(models.KeyServerURL))
	assert.Equal(t, ReactRefetch, ReactionFor(models.KeyCalendarNames))
	assert.Equal(t, ReactReformat, ReactionFor(models.KeyUse24hClock))
	assert.Equal(t, ReactReformat, ReactionFor(models.KeyTransparency))
	assert.Equal(t, ReactReposition, ReactionFor(models.KeyTargetMonitor))
	assert.Equal(t, ReactNone, ReactionFor(models.KeyAutoStart))
	assert.Equal(t, ReactNone, ReactionFor("unknown"))
	assert.Equal(t, "refetch", ReactRefetch.String())
}
