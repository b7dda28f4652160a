package main

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/javahelps/nextcloud-agenda/pkg/models"
)

func (cw *ConfigWindow) buildPositionTab() fyne.CanvasObject {
	cw.autoPositionCheck = widget.NewCheck("Place the widget on a monitor automatically", func(checked bool) {
		cw.updatePositionState(checked)
		cw.markChanged()
	})

	cw.monitorSelect = widget.NewSelect(monitorOptions(nil, cw.settings.TargetMonitor), func(string) {
		cw.markChanged()
	})
	cw.monitorSelect.SetSelected(targetMonitorOrAuto(cw.settings.TargetMonitor))

	cw.positionXEntry = cw.coordinateEntry(cw.settings.PositionX)
	cw.positionYEntry = cw.coordinateEntry(cw.settings.PositionY)

	cw.monitorsLabel = widget.NewLabel("Press Detect to list the connected monitors")
	cw.monitorsLabel.Wrapping = fyne.TextWrapWord
	cw.monitorsLabel.Importance = widget.MediumImportance

	detectButton := widget.NewButtonWithIcon("Detect", theme.SearchIcon(), func() {
		cw.detectMonitors()
	})

	cw.autoPositionCheck.SetChecked(cw.settings.AutoPosition)
	cw.updatePositionState(cw.settings.AutoPosition)

	monitorHelp := widget.NewLabel("auto follows the monitor the widget is on")
	monitorHelp.Importance = widget.MediumImportance

	manualHelp := widget.NewLabel("Used when automatic placement is off")
	manualHelp.Importance = widget.MediumImportance

	form := container.New(layout.NewFormLayout(),
		widget.NewLabel("Auto Position:"), cw.autoPositionCheck,
		container.NewVBox(widget.NewLabel("Target Monitor:"), monitorHelp),
		container.NewBorder(nil, nil, nil, detectButton, cw.monitorSelect),
		widget.NewLabel("Monitors:"), cw.monitorsLabel,
		container.NewVBox(widget.NewLabel("Position:"), manualHelp),
		container.NewGridWithColumns(2, cw.positionXEntry, cw.positionYEntry),
	)

	content := container.NewVBox(
		widget.NewLabel("Position Settings"),
		widget.NewSeparator(),
		form,
	)

	return container.NewPadded(container.NewVScroll(content))
}

func (cw *ConfigWindow) readPositionTab(s *models.Settings) {
	s.AutoPosition = cw.autoPositionCheck.Checked
	s.TargetMonitor = cw.monitorSelect.Selected
	if v, err := strconv.Atoi(strings.TrimSpace(cw.positionXEntry.Text)); err == nil {
		s.PositionX = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(cw.positionYEntry.Text)); err == nil {
		s.PositionY = v
	}
}

func (cw *ConfigWindow) coordinateEntry(value int) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(strconv.Itoa(value))
	e.Validator = func(s string) error {
		if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
			return fmt.Errorf("enter a whole number of pixels")
		}
		return nil
	}
	e.OnChanged = func(string) { cw.markChanged() }
	return e
}

func (cw *ConfigWindow) updatePositionState(auto bool) {
	if auto {
		cw.monitorSelect.Enable()
		cw.positionXEntry.Disable()
		cw.positionYEntry.Disable()
		return
	}
	cw.monitorSelect.Disable()
	cw.positionXEntry.Enable()
	cw.positionYEntry.Enable()
}

func (cw *ConfigWindow) detectMonitors() {
	go func() {
		monitors := cw.opts.Positioner.DetectMonitors()

		fyne.Do(func() {
			if len(monitors) == 0 {
				cw.monitorsLabel.SetText("No monitors detected")
				return
			}

			lines := make([]string, 0, len(monitors))
			for _, m := range monitors {
				lines = append(lines, m.String())
			}
			cw.monitorsLabel.SetText(strings.Join(lines, "\n"))

			selected := cw.monitorSelect.Selected
			cw.monitorSelect.SetOptions(monitorOptions(monitors, selected))
		})
	}()
}

// monitorOptions lists the selectors for the target monitor select
func monitorOptions(monitors []models.Monitor, current string) []string {
	options := []string{"auto", "primary"}
	for _, m := range monitors {
		options = append(options, fmt.Sprintf("monitor%d", m.Index))
	}

	current = targetMonitorOrAuto(current)
	for _, o := range options {
		if o == current {
			return options
		}
	}
	return append(options, current)
}

func targetMonitorOrAuto(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "auto"
	}
	return value
}
