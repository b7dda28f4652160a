package position

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javahelps/nextcloud-agenda/pkg/models"
)

var dualHead = []models.Monitor{
	{Index: 0, X: 0, Y: 0, Width: 1920, Height: 1080},
	{Index: 1, X: 1920, Y: 0, Width: 2560, Height: 1440, Primary: true},
}

type fakeMonitors struct {
	monitors []models.Monitor
	err      error
	calls    int
}

func (f *fakeMonitors) Monitors() ([]models.Monitor, error) {
	f.calls++
	return f.monitors, f.err
}

type fakeWindow struct {
	x, y  int
	moves [][2]int
	// override simulates a window manager that places the window elsewhere
	override *[2]int
}

func (f *fakeWindow) Position() (int, int, error) {
	return f.x, f.y, nil
}

func (f *fakeWindow) Move(x, y int) error {
	f.moves = append(f.moves, [2]int{x, y})
	if f.override != nil {
		f.x, f.y = f.override[0], f.override[1]
		return nil
	}
	f.x, f.y = x, y
	return nil
}

func newTestController(monitors *fakeMonitors, window *fakeWindow) (*Controller, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	c := NewController(logrus.NewEntry(logger), monitors, window)
	c.afterFunc = func(d time.Duration, f func()) {
		f()
	}
	return c, hook
}

func autoSettings(target string) models.Settings {
	s := models.DefaultSettings()
	s.AutoPosition = true
	s.TargetMonitor = target
	return s
}

func TestApplyManualPosition(t *testing.T) {
	window := &fakeWindow{}
	c, _ := newTestController(&fakeMonitors{monitors: dualHead}, window)

	s := models.DefaultSettings()
	s.PositionX = 300
	s.PositionY = 400
	c.Apply(s)

	assert.Equal(t, [][2]int{{300, 400}}, window.moves)
}

func TestApplyAutoPositionSelectors(t *testing.T) {
	tests := []struct {
		target string
		window [2]int
		want   [2]int
	}{
		{"primary", [2]int{10, 10}, [2]int{1970, 50}},
		{"monitor0", [2]int{2000, 10}, [2]int{50, 50}},
		{"1", [2]int{10, 10}, [2]int{1970, 50}},
		{"auto", [2]int{100, 100}, [2]int{50, 50}},
		{"", [2]int{3000, 500}, [2]int{1970, 50}},
		{"auto", [2]int{-5000, -5000}, [2]int{1970, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			window := &fakeWindow{x: tt.window[0], y: tt.window[1]}
			c, _ := newTestController(&fakeMonitors{monitors: dualHead}, window)

			c.ApplyNow(autoSettings(tt.target))

			require.Len(t, window.moves, 1)
			assert.Equal(t, tt.want, window.moves[0])
		})
	}
}

func TestAutoFallsBackToFirstMonitor(t *testing.T) {
	monitors := []models.Monitor{
		{Index: 0, X: 0, Y: 0, Width: 1920, Height: 1080},
		{Index: 1, X: 1920, Y: 0, Width: 1920, Height: 1080},
	}
	window := &fakeWindow{x: -100, y: -100}
	c, _ := newTestController(&fakeMonitors{monitors: monitors}, window)

	c.ApplyNow(autoSettings("auto"))

	assert.Equal(t, [][2]int{{50, 50}}, window.moves)
}

func TestUnknownMonitorIsNotMoved(t *testing.T) {
	window := &fakeWindow{}
	c, hook := newTestController(&fakeMonitors{monitors: dualHead}, window)

	c.ApplyNow(autoSettings("monitor7"))

	assert.Empty(t, window.moves)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestNoMonitors(t *testing.T) {
	window := &fakeWindow{}
	c, hook := newTestController(&fakeMonitors{err: errors.New("no display")}, window)

	c.ApplyNow(autoSettings("primary"))

	assert.Empty(t, window.moves)
	assert.Equal(t, "No monitors available for positioning", hook.LastEntry().Message)
}

func TestMonitorsAreCached(t *testing.T) {
	source := &fakeMonitors{monitors: dualHead}
	c, _ := newTestController(source, &fakeWindow{})

	assert.Equal(t, dualHead, c.DetectMonitors())
	c.ApplyNow(autoSettings("primary"))
	c.ApplyNow(autoSettings("monitor0"))

	assert.Equal(t, 1, source.calls)
}

func TestVerifyLogsOverride(t *testing.T) {
	window := &fakeWindow{override: &[2]int{0, 0}}
	c, hook := newTestController(&fakeMonitors{monitors: dualHead}, window)

	s := models.DefaultSettings()
	s.PositionX = 500
	s.PositionY = 500
	c.ApplyNow(s)

	// never retried
	assert.Len(t, window.moves, 1)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Contains(t, entry.Message, "requested (500,500), actual (0,0)")
}

func TestVerifyAcceptsSmallDrift(t *testing.T) {
	window := &fakeWindow{override: &[2]int{505, 492}}
	c, hook := newTestController(&fakeMonitors{monitors: dualHead}, window)

	s := models.DefaultSettings()
	s.PositionX = 500
	s.PositionY = 500
	c.ApplyNow(s)

	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Message, "Position successfully applied")
}

func TestMonitorAt(t *testing.T) {
	m, ok := MonitorAt(dualHead, 2500, 100)
	require.True(t, ok)
	assert.Equal(t, 1, m.Index)

	_, ok = MonitorAt(dualHead, 5000, 100)
	assert.False(t, ok)
}
