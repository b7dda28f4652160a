// Package position places the agenda window on the configured monitor.
package position

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javahelps/nextcloud-agenda/pkg/models"
)

const (
	// AutoOffset is the distance from the monitor origin used by auto-position
	AutoOffset = 50
	// Tolerance is the largest accepted difference between requested and actual position
	Tolerance = 10
)

// MonitorSource lists the connected monitors
type MonitorSource interface {
	Monitors() ([]models.Monitor, error)
}

// Window moves the widget window and reads its position back
type Window interface {
	Position() (x, y int, err error)
	Move(x, y int) error
}

// Controller applies manual or monitor-relative placement
type Controller struct {
	log      *logrus.Entry
	monitors MonitorSource
	window   Window

	// SettleDelay runs before placement, VerifyDelay before the read-back
	SettleDelay time.Duration
	VerifyDelay time.Duration
	afterFunc   func(d time.Duration, f func())

	mu        sync.Mutex
	available []models.Monitor
}

// NewController creates a positioning controller
func NewController(log *logrus.Entry, monitors MonitorSource, window Window) *Controller {
	return &Controller{
		log:         log.WithField("component", "position"),
		monitors:    monitors,
		window:      window,
		SettleDelay: 100 * time.Millisecond,
		VerifyDelay: 50 * time.Millisecond,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// DetectMonitors refreshes and returns the cached monitor list
func (c *Controller) DetectMonitors() []models.Monitor {
	monitors, err := c.monitors.Monitors()
	if err != nil {
		c.log.WithError(err).Error("Error detecting monitors")
		return nil
	}

	c.log.WithField("count", len(monitors)).Info("Detected monitors")
	for _, m := range monitors {
		c.log.Debugf("Monitor %s", m)
	}

	c.mu.Lock()
	c.available = monitors
	c.mu.Unlock()
	return monitors
}

// Apply positions the window after the settle delay
func (c *Controller) Apply(settings models.Settings) {
	c.log.WithFields(logrus.Fields{
		"target_monitor": settings.TargetMonitor,
		"auto_position":  settings.AutoPosition,
		"position_x":     settings.PositionX,
		"position_y":     settings.PositionY,
	}).Info("Display settings changed")

	c.afterFunc(c.SettleDelay, func() {
		c.ApplyNow(settings)
	})
}

// ApplyNow positions the window immediately
func (c *Controller) ApplyNow(settings models.Settings) {
	if !settings.AutoPosition {
		c.log.Infof("Applying manual position (%d,%d)", settings.PositionX, settings.PositionY)
		c.moveTo(settings.PositionX, settings.PositionY)
		return
	}

	c.mu.Lock()
	monitors := c.available
	c.mu.Unlock()
	if len(monitors) == 0 {
		monitors = c.DetectMonitors()
	}
	if len(monitors) == 0 {
		c.log.Error("No monitors available for positioning")
		return
	}

	target, ok := c.resolve(settings.TargetMonitor, monitors)
	if !ok {
		c.log.WithField("target_monitor", settings.TargetMonitor).Error("No target monitor found")
		return
	}

	x, y := target.X+AutoOffset, target.Y+AutoOffset
	c.log.Infof("Auto-positioning to (%d,%d) on monitor %d", x, y, target.Index)
	c.moveTo(x, y)
}

func (c *Controller) resolve(selector string, monitors []models.Monitor) (models.Monitor, bool) {
	selector = strings.TrimSpace(strings.ToLower(selector))

	switch selector {
	case "primary":
		return primary(monitors)
	case "", "auto":
		if x, y, err := c.window.Position(); err == nil {
			if m, ok := MonitorAt(monitors, x, y); ok {
				return m, true
			}
		}
		if m, ok := primary(monitors); ok {
			return m, true
		}
		return monitors[0], true
	}

	index, err := strconv.Atoi(strings.TrimPrefix(selector, "monitor"))
	if err != nil || index < 0 || index >= len(monitors) {
		return models.Monitor{}, false
	}
	return monitors[index], true
}

func (c *Controller) moveTo(x, y int) {
	if err := c.window.Move(x, y); err != nil {
		c.log.WithError(err).Error("Unable to move window")
		return
	}

	c.afterFunc(c.VerifyDelay, func() {
		c.verify(x, y)
	})
}

// verify logs when the desktop shell overrode the requested position
func (c *Controller) verify(x, y int) {
	actualX, actualY, err := c.window.Position()
	if err != nil {
		c.log.WithError(err).Warn("Unable to read window position")
		return
	}

	if abs(actualX-x) > Tolerance || abs(actualY-y) > Tolerance {
		c.log.Warnf("Position verification: requested (%d,%d), actual (%d,%d) - position may have been overridden",
			x, y, actualX, actualY)
		return
	}
	c.log.Infof("Position successfully applied: (%d,%d)", actualX, actualY)
}

// MonitorAt returns the monitor containing the point
func MonitorAt(monitors []models.Monitor, x, y int) (models.Monitor, bool) {
	for _, m := range monitors {
		if m.Contains(x, y) {
			return m, true
		}
	}
	return models.Monitor{}, false
}

func primary(monitors []models.Monitor) (models.Monitor, bool) {
	for _, m := range monitors {
		if m.Primary {
			return m, true
		}
	}
	return models.Monitor{}, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
