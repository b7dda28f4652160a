package store

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"sort"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/javahelps/nextcloud-agenda/pkg/models"
)

// ConfigStore keeps the settings in fyne preferences and notifies
// listeners with the keys of the values that changed
type ConfigStore struct {
	app fyne.App
	log *logrus.Entry

	mu        sync.RWMutex
	current   models.Settings
	listeners []func(keys []string)
}

// NewConfigStore creates a new ConfigStore and loads the stored settings
func NewConfigStore(app fyne.App, log *logrus.Entry) *ConfigStore {
	cs := &ConfigStore{app: app, log: log.WithField("component", "settings")}
	cs.current = cs.Load()
	return cs
}

// Load reads the settings from preferences
func (cs *ConfigStore) Load() models.Settings {
	prefs := cs.app.Preferences()
	d := models.DefaultSettings()

	settings := models.Settings{
		ServerURL:   prefs.StringWithFallback(models.KeyServerURL, d.ServerURL),
		Username:    prefs.StringWithFallback(models.KeyUsername, d.Username),
		AppPassword: prefs.StringWithFallback(models.KeyAppPassword, d.AppPassword),
		AccountID:   prefs.StringWithFallback(models.KeyAccountID, d.AccountID),
		Interval:    prefs.IntWithFallback(models.KeyInterval, d.Interval),
		Delay:       prefs.IntWithFallback(models.KeyDelay, d.Delay),

		Use24hClock:     prefs.BoolWithFallback(models.KeyUse24hClock, d.Use24hClock),
		DateFormat:      prefs.StringWithFallback(models.KeyDateFormat, d.DateFormat),
		TodayFormat:     prefs.StringWithFallback(models.KeyTodayFormat, d.TodayFormat),
		TomorrowFormat:  prefs.StringWithFallback(models.KeyTomorrowFormat, d.TomorrowFormat),
		Zoom:            prefs.FloatWithFallback(models.KeyZoom, d.Zoom),
		TextColor:       prefs.StringWithFallback(models.KeyTextColor, d.TextColor),
		AllDayTextColor: prefs.StringWithFallback(models.KeyAllDayTextColor, d.AllDayTextColor),
		BgColor:         prefs.StringWithFallback(models.KeyBgColor, d.BgColor),
		LocationColor:   prefs.StringWithFallback(models.KeyLocationColor, d.LocationColor),
		CornerRadius:    prefs.IntWithFallback(models.KeyCornerRadius, d.CornerRadius),
		Transparency:    prefs.FloatWithFallback(models.KeyTransparency, d.Transparency),
		ShowLocation:    prefs.BoolWithFallback(models.KeyShowLocation, d.ShowLocation),
		DiffCalendar:    prefs.BoolWithFallback(models.KeyDiffCalendar, d.DiffCalendar),

		TargetMonitor: prefs.StringWithFallback(models.KeyTargetMonitor, d.TargetMonitor),
		PositionX:     prefs.IntWithFallback(models.KeyPositionX, d.PositionX),
		PositionY:     prefs.IntWithFallback(models.KeyPositionY, d.PositionY),
		AutoPosition:  prefs.BoolWithFallback(models.KeyAutoPosition, d.AutoPosition),

		AutoStart:     prefs.BoolWithFallback(models.KeyAutoStart, d.AutoStart),
		RefreshHotkey: prefs.BoolWithFallback(models.KeyRefreshHotkey, d.RefreshHotkey),
	}

	// Load calendar selection from JSON string
	calendarsJSON := prefs.String(models.KeyCalendarNames)
	if calendarsJSON != "" {
		if err := json.Unmarshal([]byte(calendarsJSON), &settings.CalendarNames); err != nil {
			cs.log.WithError(err).Warn("Ignoring stored calendar selection")
			settings.CalendarNames = []models.CalendarChoice{}
		}
	} else {
		settings.CalendarNames = []models.CalendarChoice{}
	}

	return settings
}

// Settings returns a copy of the current settings
func (cs *ConfigStore) Settings() models.Settings {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	s := cs.current
	s.CalendarNames = append([]models.CalendarChoice{}, cs.current.CalendarNames...)
	return s
}

// OnChange registers fn to be called with the changed keys after Save
func (cs *ConfigStore) OnChange(fn func(keys []string)) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}

// Save writes settings to preferences and notifies listeners. It returns
// the changed keys in sorted order.
func (cs *ConfigStore) Save(settings models.Settings) []string {
	cs.mu.Lock()
	changed := diffKeys(cs.current, settings)
	cs.current = settings
	cs.current.CalendarNames = append([]models.CalendarChoice{}, settings.CalendarNames...)
	cs.write(settings)
	listeners := append([]func([]string){}, cs.listeners...)
	cs.mu.Unlock()

	if len(changed) == 0 {
		return changed
	}

	cs.log.WithField("keys", changed).Info("Settings saved")
	for _, fn := range listeners {
		fn(changed)
	}
	return changed
}

func (cs *ConfigStore) write(settings models.Settings) {
	prefs := cs.app.Preferences()

	for key, value := range values(settings) {
		switch v := value.(type) {
		case string:
			prefs.SetString(key, v)
		case int:
			prefs.SetInt(key, v)
		case float64:
			prefs.SetFloat(key, v)
		case bool:
			prefs.SetBool(key, v)
		}
	}

	// Save calendar selection as JSON string
	if calendarsJSON, err := json.Marshal(settings.CalendarNames); err == nil {
		prefs.SetString(models.KeyCalendarNames, string(calendarsJSON))
	}
}

// ImportYAML merges a YAML settings file into the stored settings
func (cs *ConfigStore) ImportYAML(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	settings := cs.Settings()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	if settings.CalendarNames == nil {
		settings.CalendarNames = []models.CalendarChoice{}
	}

	return cs.Save(settings), nil
}

func values(s models.Settings) map[string]any {
	return map[string]any{
		models.KeyServerURL:   s.ServerURL,
		models.KeyUsername:    s.Username,
		models.KeyAppPassword: s.AppPassword,
		models.KeyAccountID:   s.AccountID,
		models.KeyInterval:    s.Interval,
		models.KeyDelay:       s.Delay,

		models.KeyUse24hClock:     s.Use24hClock,
		models.KeyDateFormat:      s.DateFormat,
		models.KeyTodayFormat:     s.TodayFormat,
		models.KeyTomorrowFormat:  s.TomorrowFormat,
		models.KeyZoom:            s.Zoom,
		models.KeyTextColor:       s.TextColor,
		models.KeyAllDayTextColor: s.AllDayTextColor,
		models.KeyBgColor:         s.BgColor,
		models.KeyLocationColor:   s.LocationColor,
		models.KeyCornerRadius:    s.CornerRadius,
		models.KeyTransparency:    s.Transparency,
		models.KeyShowLocation:    s.ShowLocation,
		models.KeyDiffCalendar:    s.DiffCalendar,

		models.KeyTargetMonitor: s.TargetMonitor,
		models.KeyPositionX:     s.PositionX,
		models.KeyPositionY:     s.PositionY,
		models.KeyAutoPosition:  s.AutoPosition,

		models.KeyAutoStart:     s.AutoStart,
		models.KeyRefreshHotkey: s.RefreshHotkey,
	}
}

func diffKeys(old, next models.Settings) []string {
	changed := []string{}

	oldValues := values(old)
	for key, value := range values(next) {
		if oldValues[key] != value {
			changed = append(changed, key)
		}
	}

	if !reflect.DeepEqual(normalizeChoices(old.CalendarNames), normalizeChoices(next.CalendarNames)) {
		changed = append(changed, models.KeyCalendarNames)
	}

	sort.Strings(changed)
	return changed
}

func normalizeChoices(c []models.CalendarChoice) []models.CalendarChoice {
	if len(c) == 0 {
		return nil
	}
	return c
}
