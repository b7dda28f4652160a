package components

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/javahelps/nextcloud-agenda/pkg/models"
)

// CalendarList manages the calendar filter: one checkbox per calendar, a
// name entry with a plus button and a minus button for the selected row
type CalendarList struct {
	list        *widget.List
	entry       *widget.Entry
	data        []models.CalendarChoice
	selectedIdx int
	onChange    func()
}

// NewCalendarList creates the list component and its container
func NewCalendarList(data []models.CalendarChoice, onChange func()) (*CalendarList, *fyne.Container) {
	cl := &CalendarList{
		data:        append([]models.CalendarChoice(nil), data...),
		selectedIdx: -1,
		onChange:    onChange,
	}

	cl.list = widget.NewList(
		func() int {
			return len(cl.data)
		},
		func() fyne.CanvasObject {
			return widget.NewCheck("template", nil)
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			check := o.(*widget.Check)
			if i >= len(cl.data) {
				return
			}
			// detach before SetChecked so refreshes do not count as edits
			check.OnChanged = nil
			check.SetText(cl.data[i].Name)
			check.SetChecked(cl.data[i].Display)
			check.OnChanged = func(checked bool) {
				cl.SetDisplay(i, checked)
			}
		})

	cl.list.OnSelected = func(id widget.ListItemID) {
		cl.selectedIdx = id
	}

	cl.entry = widget.NewEntry()
	cl.entry.SetPlaceHolder("Calendar name")

	plusButton := widget.NewButton("", func() {
		if err := cl.Add(cl.entry.Text); err == nil {
			cl.entry.SetText("")
		}
	})
	plusButton.Icon = theme.ContentAddIcon()

	minusButton := widget.NewButton("", func() {
		cl.RemoveSelected()
	})
	minusButton.Icon = theme.ContentRemoveIcon()

	addControls := container.NewBorder(nil, nil, nil,
		container.NewHBox(plusButton, minusButton),
		cl.entry)

	// Wrap list in scroll with border
	listScroll := container.NewScroll(cl.list)
	listScroll.SetMinSize(fyne.NewSize(0, 150))

	listWithBorder := container.NewBorder(
		widget.NewSeparator(),
		widget.NewSeparator(),
		widget.NewSeparator(),
		widget.NewSeparator(),
		listScroll,
	)

	return cl, container.NewVBox(listWithBorder, addControls)
}

// Choices returns a copy of the current list
func (cl *CalendarList) Choices() []models.CalendarChoice {
	return append([]models.CalendarChoice{}, cl.data...)
}

// SetChoices replaces the list, e.g. after a calendar discovery
func (cl *CalendarList) SetChoices(data []models.CalendarChoice) {
	cl.data = append([]models.CalendarChoice(nil), data...)
	cl.list.UnselectAll()
	cl.selectedIdx = -1
	cl.list.Refresh()
}

// Add appends a displayed calendar; names must be unique and non-empty
func (cl *CalendarList) Add(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("calendar name is required")
	}
	for _, c := range cl.data {
		if c.Name == name {
			return fmt.Errorf("calendar %q is already listed", name)
		}
	}

	cl.data = append(cl.data, models.CalendarChoice{Name: name, Display: true})
	cl.list.Refresh()
	cl.changed()
	return nil
}

// SetDisplay toggles whether the calendar at index i is shown
func (cl *CalendarList) SetDisplay(i int, display bool) {
	if i < 0 || i >= len(cl.data) || cl.data[i].Display == display {
		return
	}
	cl.data[i].Display = display
	cl.changed()
}

// Select marks row i for removal
func (cl *CalendarList) Select(i int) {
	cl.list.Select(i)
	cl.selectedIdx = i
}

// RemoveSelected removes the currently selected item
func (cl *CalendarList) RemoveSelected() {
	if cl.selectedIdx < 0 || cl.selectedIdx >= len(cl.data) {
		return
	}
	cl.data = append(cl.data[:cl.selectedIdx], cl.data[cl.selectedIdx+1:]...)
	cl.list.UnselectAll()
	cl.selectedIdx = -1
	cl.list.Refresh()
	cl.changed()
}

func (cl *CalendarList) changed() {
	if cl.onChange != nil {
		cl.onChange()
	}
}
