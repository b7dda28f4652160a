// Package platform holds the OS specific pieces of the widget: monitor
// geometry, window placement, autostart and the global refresh hotkey.
package platform

import (
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"

	"github.com/javahelps/nextcloud-agenda/pkg/models"
)

// ErrUnsupported is returned where the display server offers no way to
// query monitors or place windows
var ErrUnsupported = errors.New("window placement is not supported on this platform")

// Unsupported satisfies the positioning interfaces and always fails
type Unsupported struct{}

func (Unsupported) Monitors() ([]models.Monitor, error) { return nil, ErrUnsupported }
func (Unsupported) Position() (int, int, error)        { return 0, 0, ErrUnsupported }
func (Unsupported) Move(x, y int) error                 { return ErrUnsupported }

// WindowHandle returns the X11 window id of w, or 0 when w is not an X11 window
func WindowHandle(w fyne.Window) uintptr {
	native, ok := w.(driver.NativeWindow)
	if !ok {
		return 0
	}

	var handle uintptr
	native.RunNative(func(context any) {
		if x11, ok := context.(driver.X11WindowContext); ok {
			handle = x11.WindowHandle
		}
	})
	return handle
}
