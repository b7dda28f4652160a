package platform

import (
	"github.com/sirupsen/logrus"
	"golang.design/x/hotkey"
)

// RefreshHotkey listens for Ctrl+Shift+R system wide
type RefreshHotkey struct {
	log *logrus.Entry
	hk  *hotkey.Hotkey
}

// RegisterRefreshHotkey grabs Ctrl+Shift+R and calls onPress on every keydown
func RegisterRefreshHotkey(log *logrus.Entry, onPress func()) (*RefreshHotkey, error) {
	hk := hotkey.New([]hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift}, hotkey.KeyR)
	if err := hk.Register(); err != nil {
		return nil, err
	}

	r := &RefreshHotkey{log: log.WithField("component", "hotkey"), hk: hk}
	r.log.Info("Registered Ctrl+Shift+R refresh hotkey")

	go func() {
		// Keydown is closed by Unregister
		for range hk.Keydown() {
			r.log.Debug("Refresh hotkey pressed")
			onPress()
		}
	}()
	return r, nil
}

// Unregister releases the key grab
func (r *RefreshHotkey) Unregister() {
	if err := r.hk.Unregister(); err != nil {
		r.log.WithError(err).Warn("Failed to unregister refresh hotkey")
	}
}
