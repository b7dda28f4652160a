package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/javahelps/nextcloud-agenda/pkg/models"
)

// HeaderMeasurer measures date headers with the fyne text renderer at the
// zoom level of the current settings
type HeaderMeasurer struct {
	Settings func() models.Settings
}

// MeasureWidth returns the width of a bold header label
func (m HeaderMeasurer) MeasureWidth(text string) float32 {
	zoom := 1.0
	if m.Settings != nil {
		zoom = m.Settings().Zoom
	}
	return fyne.MeasureText(text, headerSize(zoom), fyne.TextStyle{Bold: true}).Width
}

func textSize(zoom float64) float32 {
	if zoom <= 0 {
		zoom = 1
	}
	return theme.TextSize() * float32(zoom)
}

func headerSize(zoom float64) float32 {
	return textSize(zoom) * 1.15
}
