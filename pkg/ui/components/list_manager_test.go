package components

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javahelps/nextcloud-agenda/pkg/models"
)

func TestCalendarListAdd(t *testing.T) {
	test.NewTempApp(t)

	changes := 0
	cl, content := NewCalendarList(nil, func() { changes++ })
	require.NotNil(t, content)
	assert.Equal(t, []models.CalendarChoice{}, cl.Choices())

	require.NoError(t, cl.Add("  Work "))
	assert.Equal(t, []models.CalendarChoice{{Name: "Work", Display: true}}, cl.Choices())
	assert.Equal(t, 1, changes)

	assert.Error(t, cl.Add("Work"))
	assert.Error(t, cl.Add("   "))
	assert.Equal(t, 1, changes)
}

func TestCalendarListDisplayAndRemove(t *testing.T) {
	test.NewTempApp(t)

	changes := 0
	cl, content := NewCalendarList([]models.CalendarChoice{
		{Name: "Personal", Display: true},
		{Name: "Work", Display: true},
	}, func() { changes++ })
	w := test.NewWindow(content)
	defer w.Close()

	cl.SetDisplay(1, false)
	cl.SetDisplay(1, false)
	cl.SetDisplay(5, true)
	assert.Equal(t, 1, changes)
	assert.False(t, cl.Choices()[1].Display)

	cl.RemoveSelected()
	assert.Len(t, cl.Choices(), 2, "nothing selected")

	cl.Select(0)
	cl.RemoveSelected()
	assert.Equal(t, []models.CalendarChoice{{Name: "Work", Display: false}}, cl.Choices())
	assert.Equal(t, 2, changes)
}

func TestCalendarListChoicesIsCopy(t *testing.T) {
	test.NewTempApp(t)

	input := []models.CalendarChoice{{Name: "Work", Display: true}}
	cl, _ := NewCalendarList(input, nil)

	input[0].Display = false
	choices := cl.Choices()
	choices[0].Name = "Changed"

	assert.Equal(t, []models.CalendarChoice{{Name: "Work", Display: true}}, cl.Choices())

	cl.SetChoices([]models.CalendarChoice{{Name: "Home", Display: false}})
	assert.Equal(t, []models.CalendarChoice{{Name: "Home", Display: false}}, cl.Choices())
}
