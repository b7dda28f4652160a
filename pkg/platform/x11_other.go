//go:build !linux

package platform

import (
	"github.com/sirupsen/logrus"

	"github.com/javahelps/nextcloud-agenda/pkg/models"
)

// X11 is only available on Linux
type X11 struct{}

// NewX11 always fails outside Linux
func NewX11(log *logrus.Entry, handle func() uintptr) (*X11, error) {
	return nil, ErrUnsupported
}

func (x *X11) Close() {}

func (x *X11) Monitors() ([]models.Monitor, error) { return nil, ErrUnsupported }
func (x *X11) Position() (int, int, error)        { return 0, 0, ErrUnsupported }
func (x *X11) Move(px, py int) error              { return ErrUnsupported }
