package agenda

import (
	"time"
	"unicode/utf8"

	"github.com/javahelps/nextcloud-agenda/pkg/calendar"
	"github.com/javahelps/nextcloud-agenda/pkg/models"
)

// NoEventsText is shown when ncalendar returned an empty list
const NoEventsText = "No events found"

// NodeKind identifies a row of the agenda tree
type NodeKind int

const (
	NodeHeader NodeKind = iota
	NodeEvent
	NodeLocation
	NodeMessage
)

// Node is one row of the rendered agenda
type Node struct {
	Kind NodeKind
	Text string // header label, event name, location or message

	// Event rows
	Time        string // empty for all-day events
	AllDay      bool
	Bullet      bool
	BulletColor string
	Event       *models.Event

	// Message rows
	Hint string

	// Header rows are measured; event and location rows carry the widest
	// header known when they were emitted.
	Width   float32
	Leading bool // header follows an earlier bucket
}

// Tree is the complete content of the widget for one render
type Tree struct {
	Nodes      []Node
	MaxWidth   float32
	LastBucket time.Time
}

// Lines returns the visible text of the tree, one entry per node
func (t *Tree) Lines() []string {
	lines := make([]string, 0, len(t.Nodes))
	for _, n := range t.Nodes {
		line := n.Text
		if n.Time != "" {
			line += " | " + n.Time
		}
		if n.Hint != "" {
			line += " | " + n.Hint
		}
		lines = append(lines, line)
	}
	return lines
}

// Count returns the number of nodes of the given kind
func (t *Tree) Count(kind NodeKind) int {
	count := 0
	for _, n := range t.Nodes {
		if n.Kind == kind {
			count++
		}
	}
	return count
}

// MessageTree builds a tree holding a single message with an optional hint
func MessageTree(message, hint string) *Tree {
	return &Tree{Nodes: []Node{{Kind: NodeMessage, Text: message, Hint: hint}}}
}

// Measurer returns the rendered width of a header label
type Measurer interface {
	MeasureWidth(text string) float32
}

// RuneMeasurer approximates widths from the rune count
type RuneMeasurer struct {
	RuneWidth float32
}

func (m RuneMeasurer) MeasureWidth(text string) float32 {
	return float32(utf8.RuneCountInString(text)) * m.RuneWidth
}

// RenderOptions are the display settings that shape the tree
type RenderOptions struct {
	Formatter    *calendar.DateFormatter
	Use24h       bool
	ShowLocation bool
	DiffCalendar bool
}

// NewRenderOptions derives options from a settings snapshot
func NewRenderOptions(settings models.Settings, formatter *calendar.DateFormatter) RenderOptions {
	return RenderOptions{
		Formatter:    formatter,
		Use24h:       settings.Use24hClock,
		ShowLocation: settings.ShowLocation,
		DiffCalendar: settings.DiffCalendar,
	}
}

// Renderer turns an ordered event list into an agenda tree
type Renderer struct {
	measure Measurer
}

// NewRenderer creates a Renderer; a nil measurer uses RuneMeasurer
func NewRenderer(measure Measurer) *Renderer {
	if measure == nil {
		measure = RuneMeasurer{RuneWidth: 8}
	}
	return &Renderer{measure: measure}
}

// Render builds the tree from scratch. Events must be ordered by start date.
func (r *Renderer) Render(events []models.Event, opts RenderOptions) *Tree {
	tree := &Tree{}

	if len(events) == 0 {
		tree.Nodes = append(tree.Nodes, Node{Kind: NodeMessage, Text: NoEventsText})
		return tree
	}

	var lastDate time.Time
	for i := range events {
		event := &events[i]

		if lastDate.IsZero() || calendar.DaysBetween(lastDate, event.StartDate) >= 1 {
			label := opts.Formatter.Format(event.StartDate)
			width := r.measure.MeasureWidth(label)
			if width > tree.MaxWidth {
				tree.MaxWidth = width
			}
			tree.Nodes = append(tree.Nodes, Node{
				Kind:    NodeHeader,
				Text:    label,
				Width:   width,
				Leading: !lastDate.IsZero(),
			})
			lastDate = event.StartDate
		}

		row := Node{
			Kind:   NodeEvent,
			Text:   event.Name,
			Time:   event.FormatEventDuration(opts.Use24h),
			AllDay: event.AllDay(),
			Event:  event,
			Width:  tree.MaxWidth,
		}
		if opts.DiffCalendar {
			row.Bullet = true
			row.BulletColor = event.Color
		}
		tree.Nodes = append(tree.Nodes, row)

		if opts.ShowLocation && event.Location != "" {
			tree.Nodes = append(tree.Nodes, Node{
				Kind:   NodeLocation,
				Text:   event.Location,
				Bullet: opts.DiffCalendar,
				Event:  event,
				Width:  tree.MaxWidth,
			})
		}
	}

	tree.LastBucket = lastDate
	return tree
}
