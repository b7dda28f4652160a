package models

import "fmt"

// Monitor describes one physical display in root window coordinates
type Monitor struct {
	Index   int
	X       int
	Y       int
	Width   int
	Height  int
	Primary bool
}

// Contains reports whether the point lies on this monitor
func (m Monitor) Contains(x, y int) bool {
	return x >= m.X && x < m.X+m.Width && y >= m.Y && y < m.Y+m.Height
}

func (m Monitor) String() string {
	s := fmt.Sprintf("%d: %dx%d at (%d,%d)", m.Index, m.Width, m.Height, m.X, m.Y)
	if m.Primary {
		s += " [PRIMARY]"
	}
	return s
}
