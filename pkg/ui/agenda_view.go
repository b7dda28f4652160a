// Package ui renders the agenda tree with fyne and hosts the event dialogs.
package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/javahelps/nextcloud-agenda/pkg/agenda"
	"github.com/javahelps/nextcloud-agenda/pkg/models"
)

// LoadingText is shown while ncalendar runs
const LoadingText = "Loading events..."

const bulletSize = 8

var (
	defaultText = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	defaultBg   = color.NRGBA{A: 0xff}
)

// AgendaView draws agenda trees and status messages into a fyne canvas.
// The agenda.View methods may be called from any goroutine.
type AgendaView struct {
	log      *logrus.Entry
	settings func() models.Settings

	// OnRefresh runs when the user clicks a widget showing a message
	OnRefresh func()
	// OnDetails runs when the info button of an event is pressed
	OnDetails func(event models.Event)
	// Menu is shown on right click
	Menu *fyne.Menu

	area     *TapArea
	canvas   fyne.Canvas
	showsMsg bool
}

// NewAgendaView creates the view; settings supplies colors for messages
func NewAgendaView(log *logrus.Entry, settings func() models.Settings) *AgendaView {
	v := &AgendaView{
		log:      log.WithField("component", "view"),
		settings: settings,
	}
	v.area = NewTapArea(v.tapped, v.showMenu)
	return v
}

// Content is the root object to place in the widget window
func (v *AgendaView) Content() fyne.CanvasObject {
	return v.area
}

// Attach sets the canvas used for popup menus
func (v *AgendaView) Attach(c fyne.Canvas) {
	v.canvas = c
}

func (v *AgendaView) ShowLoading() {
	settings := v.settings()
	fyne.Do(func() {
		v.showMessage(settings, LoadingText, "")
	})
}

func (v *AgendaView) ShowMessage(kind models.ErrorKind, message, hint string) {
	settings := v.settings()
	v.log.WithField("kind", kind).Debug("Showing message")
	fyne.Do(func() {
		v.showMessage(settings, message, hint)
	})
}

func (v *AgendaView) ShowAgenda(tree *agenda.Tree, settings models.Settings) {
	fyne.Do(func() {
		v.render(tree, settings)
	})
}

func (v *AgendaView) showMessage(settings models.Settings, message, hint string) {
	v.render(agenda.MessageTree(message, hint), settings)
}

// render replaces the content; must run on the fyne thread
func (v *AgendaView) render(tree *agenda.Tree, settings models.Settings) {
	palette := newPalette(settings)
	rows := container.NewVBox()
	v.showsMsg = false

	for i := range tree.Nodes {
		node := &tree.Nodes[i]
		switch node.Kind {
		case agenda.NodeHeader:
			if node.Leading {
				rows.Add(spacer(0, theme.Padding()))
			}
			rows.Add(v.header(node, palette))
		case agenda.NodeEvent:
			rows.Add(v.eventRow(node, palette))
		case agenda.NodeLocation:
			rows.Add(v.locationRow(node, palette))
		case agenda.NodeMessage:
			v.showsMsg = true
			rows.Add(v.message(node, palette))
		}
	}

	bg := canvas.NewRectangle(palette.bg)
	bg.CornerRadius = float32(settings.CornerRadius)

	v.area.SetContent(bg, container.NewPadded(rows))
}

func (v *AgendaView) header(node *agenda.Node, p palette) fyne.CanvasObject {
	label := canvas.NewText(node.Text, p.text)
	label.TextSize = headerSize(p.zoom)
	label.TextStyle = fyne.TextStyle{Bold: true}

	line := canvas.NewRectangle(p.text)
	line.SetMinSize(fyne.NewSize(node.Width, 1))

	return container.NewVBox(label, line)
}

func (v *AgendaView) eventRow(node *agenda.Node, p palette) fyne.CanvasObject {
	textColor := p.text
	if node.AllDay {
		textColor = p.allDay
	}

	name := canvas.NewText(node.Text, textColor)
	name.TextSize = textSize(p.zoom)

	left := container.NewHBox()
	if node.Bullet {
		left.Add(bullet(ParseColor(node.BulletColor, p.text)))
	}

	right := container.NewHBox()
	if node.Time != "" {
		when := canvas.NewText(node.Time, textColor)
		when.TextSize = textSize(p.zoom)
		when.Alignment = fyne.TextAlignTrailing
		right.Add(when)
	}
	if node.Event != nil {
		event := *node.Event
		info := widget.NewButtonWithIcon("", theme.InfoIcon(), func() {
			if v.OnDetails != nil {
				v.OnDetails(event)
			}
		})
		info.Importance = widget.LowImportance
		right.Add(info)
	}

	row := container.NewBorder(nil, nil, left, right, name)
	return container.NewStack(spacer(node.Width, 0), row)
}

func (v *AgendaView) locationRow(node *agenda.Node, p palette) fyne.CanvasObject {
	location := canvas.NewText(node.Text, p.location)
	location.TextSize = textSize(p.zoom) * 0.9
	location.TextStyle = fyne.TextStyle{Italic: true}

	if node.Bullet {
		// align with the event name after the bullet
		return container.NewHBox(spacer(bulletSize, 0), location)
	}
	return location
}

func (v *AgendaView) message(node *agenda.Node, p palette) fyne.CanvasObject {
	text := canvas.NewText(node.Text, p.text)
	text.TextSize = textSize(p.zoom)
	text.Alignment = fyne.TextAlignCenter

	if node.Hint == "" {
		return text
	}

	hint := canvas.NewText(node.Hint, p.location)
	hint.TextSize = textSize(p.zoom) * 0.9
	hint.TextStyle = fyne.TextStyle{Italic: true}
	hint.Alignment = fyne.TextAlignCenter
	return container.NewVBox(text, hint)
}

func (v *AgendaView) tapped() {
	if v.showsMsg && v.OnRefresh != nil {
		v.OnRefresh()
	}
}

func (v *AgendaView) showMenu(pos fyne.Position) {
	if v.Menu == nil || v.canvas == nil {
		return
	}
	widget.ShowPopUpMenuAtPosition(v.Menu, v.canvas, pos)
}

type palette struct {
	text     color.NRGBA
	allDay   color.NRGBA
	location color.NRGBA
	bg       color.NRGBA
	zoom     float64
}

func newPalette(settings models.Settings) palette {
	text := ParseColor(settings.TextColor, defaultText)
	return palette{
		text:     text,
		allDay:   ParseColor(settings.AllDayTextColor, text),
		location: ParseColor(settings.LocationColor, text),
		bg:       Translucent(ParseColor(settings.BgColor, defaultBg), settings.Transparency),
		zoom:     settings.Zoom,
	}
}

func bullet(c color.Color) fyne.CanvasObject {
	dot := canvas.NewCircle(c)
	return container.NewCenter(container.NewGridWrap(fyne.NewSize(bulletSize, bulletSize), dot))
}

func spacer(w, h float32) fyne.CanvasObject {
	r := canvas.NewRectangle(color.Transparent)
	r.SetMinSize(fyne.NewSize(w, h))
	return r
}
