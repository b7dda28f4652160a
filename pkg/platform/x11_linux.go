//go:build linux

package platform

import (
	"fmt"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xinerama"
	"github.com/jezek/xgb/xproto"
	"github.com/sirupsen/logrus"

	"github.com/javahelps/nextcloud-agenda/pkg/models"
)

// X11 queries monitors with RandR (Xinerama as fallback) and moves the
// widget window through the X server
type X11 struct {
	log    *logrus.Entry
	conn   *xgb.Conn
	root   xproto.Window
	handle func() uintptr

	mu     sync.Mutex
	window xproto.Window
}

// NewX11 connects to $DISPLAY. handle is asked for the widget window id on
// first use, after the window was mapped.
func NewX11(log *logrus.Entry, handle func() uintptr) (*X11, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	return &X11{
		log:    log.WithField("component", "x11"),
		conn:   conn,
		root:   xproto.Setup(conn).DefaultScreen(conn).Root,
		handle: handle,
	}, nil
}

// Close releases the X connection
func (x *X11) Close() {
	x.conn.Close()
}

// Monitors lists active CRTCs in root window coordinates
func (x *X11) Monitors() ([]models.Monitor, error) {
	monitors, err := x.randrMonitors()
	if err == nil && len(monitors) > 0 {
		return monitors, nil
	}
	if err != nil {
		x.log.WithError(err).Debug("RandR unavailable, falling back to Xinerama")
	}
	return x.xineramaMonitors()
}

func (x *X11) randrMonitors() ([]models.Monitor, error) {
	if err := randr.Init(x.conn); err != nil {
		return nil, fmt.Errorf("randr init: %w", err)
	}

	resources, err := randr.GetScreenResourcesCurrent(x.conn, x.root).Reply()
	if err != nil {
		return nil, fmt.Errorf("randr screen resources: %w", err)
	}

	var primaryOutput randr.Output
	if reply, err := randr.GetOutputPrimary(x.conn, x.root).Reply(); err == nil {
		primaryOutput = reply.Output
	}

	monitors := []models.Monitor{}
	for _, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(x.conn, crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			return nil, fmt.Errorf("randr crtc info: %w", err)
		}
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		primary := false
		for _, output := range info.Outputs {
			if output == primaryOutput {
				primary = true
			}
		}

		monitors = append(monitors, models.Monitor{
			Index:   len(monitors),
			X:       int(info.X),
			Y:       int(info.Y),
			Width:   int(info.Width),
			Height:  int(info.Height),
			Primary: primary,
		})
	}
	return monitors, nil
}

func (x *X11) xineramaMonitors() ([]models.Monitor, error) {
	if err := xinerama.Init(x.conn); err != nil {
		return nil, fmt.Errorf("xinerama init: %w", err)
	}

	reply, err := xinerama.QueryScreens(x.conn).Reply()
	if err != nil {
		return nil, fmt.Errorf("xinerama query screens: %w", err)
	}

	monitors := make([]models.Monitor, 0, len(reply.ScreenInfo))
	for i, screen := range reply.ScreenInfo {
		monitors = append(monitors, models.Monitor{
			Index:   i,
			X:       int(screen.XOrg),
			Y:       int(screen.YOrg),
			Width:   int(screen.Width),
			Height:  int(screen.Height),
			Primary: i == 0,
		})
	}
	return monitors, nil
}

// Position returns the top-left corner of the widget window on the root window
func (x *X11) Position() (int, int, error) {
	win, err := x.widgetWindow()
	if err != nil {
		return 0, 0, err
	}

	reply, err := xproto.TranslateCoordinates(x.conn, win, x.root, 0, 0).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("translate coordinates: %w", err)
	}
	return int(reply.DstX), int(reply.DstY), nil
}

// Move asks the X server to place the widget window at (px, py)
func (x *X11) Move(px, py int) error {
	win, err := x.widgetWindow()
	if err != nil {
		return err
	}

	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY)
	values := []uint32{uint32(int32(px)), uint32(int32(py))}
	if err := xproto.ConfigureWindowChecked(x.conn, win, mask, values).Check(); err != nil {
		return fmt.Errorf("configure window: %w", err)
	}
	return nil
}

func (x *X11) widgetWindow() (xproto.Window, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.window == 0 {
		handle := x.handle()
		if handle == 0 {
			return 0, fmt.Errorf("%w: widget window has no X11 handle", ErrUnsupported)
		}
		x.window = xproto.Window(handle)
	}
	return x.window, nil
}
