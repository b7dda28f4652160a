package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// TapArea wraps the agenda and reacts to clicks that no child widget consumed
type TapArea struct {
	widget.BaseWidget
	OnTapped          func()
	OnTappedSecondary func(pos fyne.Position)

	stack *fyne.Container
}

func NewTapArea(onTapped func(), onTappedSecondary func(pos fyne.Position)) *TapArea {
	t := &TapArea{
		OnTapped:          onTapped,
		OnTappedSecondary: onTappedSecondary,
		stack:             container.NewStack(),
	}
	t.ExtendBaseWidget(t)
	return t
}

// SetContent replaces everything shown inside the area
func (t *TapArea) SetContent(objects ...fyne.CanvasObject) {
	t.stack.Objects = objects
	t.stack.Refresh()
	t.Refresh()
}

func (t *TapArea) Objects() []fyne.CanvasObject {
	return t.stack.Objects
}

func (t *TapArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.stack)
}

func (t *TapArea) Tapped(*fyne.PointEvent) {
	if t.OnTapped != nil {
		t.OnTapped()
	}
}

func (t *TapArea) TappedSecondary(pe *fyne.PointEvent) {
	if t.OnTappedSecondary != nil {
		t.OnTappedSecondary(pe.AbsolutePosition)
	}
}
