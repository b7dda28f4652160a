package models

import (
	"strings"
)

// Settings is a snapshot of the widget configuration
type Settings struct {
	// Account
	ServerURL     string           `json:"server_url" yaml:"server_url"`
	Username      string           `json:"username" yaml:"username"`
	AppPassword   string           `json:"app_password" yaml:"app_password"`
	AccountID     string           `json:"account_id" yaml:"account_id"`
	CalendarNames []CalendarChoice `json:"calendar_names" yaml:"calendar_names"`
	Interval      int              `json:"interval" yaml:"interval"` // days of lookahead
	Delay         int              `json:"delay" yaml:"delay"`       // minutes between refreshes

	// Display
	Use24hClock     bool    `json:"use_24h_clock" yaml:"use_24h_clock"`
	DateFormat      string  `json:"date_format" yaml:"date_format"`
	TodayFormat     string  `json:"today_format" yaml:"today_format"`
	TomorrowFormat  string  `json:"tomorrow_format" yaml:"tomorrow_format"`
	Zoom            float64 `json:"zoom" yaml:"zoom"`
	TextColor       string  `json:"text_color" yaml:"text_color"`
	AllDayTextColor string  `json:"all_day_text_color" yaml:"all_day_text_color"`
	BgColor         string  `json:"bg_color" yaml:"bg_color"`
	LocationColor   string  `json:"location_color" yaml:"location_color"`
	CornerRadius    int     `json:"corner_radius" yaml:"corner_radius"`
	Transparency    float64 `json:"transparency" yaml:"transparency"` // 0 opaque .. 1 invisible
	ShowLocation    bool    `json:"show_location" yaml:"show_location"`
	DiffCalendar    bool    `json:"diff_calendar" yaml:"diff_calendar"`

	// Position
	TargetMonitor string `json:"target_monitor" yaml:"target_monitor"` // auto, primary, monitorN
	PositionX     int    `json:"position_x" yaml:"position_x"`
	PositionY     int    `json:"position_y" yaml:"position_y"`
	AutoPosition  bool   `json:"auto_position" yaml:"auto_position"`

	// General
	AutoStart     bool `json:"auto_start" yaml:"auto_start"`
	RefreshHotkey bool `json:"refresh_hotkey" yaml:"refresh_hotkey"`
}

// CalendarChoice is one entry of the calendar filter list
type CalendarChoice struct {
	Name    string `json:"name" yaml:"name"`
	Display bool   `json:"display" yaml:"display"`
}

// DefaultSettings returns the settings used for keys that were never stored
func DefaultSettings() Settings {
	return Settings{
		AccountID:       "",
		CalendarNames:   []CalendarChoice{},
		Interval:        7,
		Delay:           15,
		Use24hClock:     true,
		DateFormat:      "dddd, MMMM d",
		TodayFormat:     "'Today'",
		TomorrowFormat:  "'Tomorrow'",
		Zoom:            1,
		TextColor:       "rgb(255,255,255)",
		AllDayTextColor: "rgb(143,240,164)",
		BgColor:         "rgb(0,0,0)",
		LocationColor:   "rgb(170,170,170)",
		CornerRadius:    10,
		Transparency:    0.5,
		ShowLocation:    true,
		DiffCalendar:    true,
		TargetMonitor:   "auto",
		PositionX:       50,
		PositionY:       50,
		AutoPosition:    false,
	}
}

// NeedsConfiguration returns true if any credential is missing
func (s Settings) NeedsConfiguration() bool {
	return strings.TrimSpace(s.ServerURL) == "" ||
		strings.TrimSpace(s.Username) == "" ||
		strings.TrimSpace(s.AppPassword) == ""
}

// Account returns the ncalendar account id, "default" when unset
func (s Settings) Account() string {
	if s.AccountID == "" {
		return "default"
	}
	return s.AccountID
}

// CalendarFilter joins the names of the displayed calendars with commas
func (s Settings) CalendarFilter() string {
	names := []string{}
	for _, c := range s.CalendarNames {
		if c.Display {
			names = append(names, c.Name)
		}
	}
	return strings.Join(names, ",")
}

// Lookahead returns the number of days to fetch
func (s Settings) Lookahead() int {
	if s.Interval <= 0 {
		return 7
	}
	return s.Interval
}

// RefreshMinutes returns the delay between two refresh cycles
func (s Settings) RefreshMinutes() int {
	if s.Delay < 1 {
		return 1
	}
	return s.Delay
}

// CalendarURL returns the web calendar of the configured server
func (s Settings) CalendarURL() string {
	if s.ServerURL == "" {
		return ""
	}
	return strings.TrimRight(s.ServerURL, "/") + "/apps/calendar"
}

// MergeCalendars replaces the calendar list with the names reported by
// ncalendar, keeping the display flag of names that were already known
func (s *Settings) MergeCalendars(names []string) {
	selected := make(map[string]bool)
	for _, c := range s.CalendarNames {
		selected[c.Name] = c.Display
	}

	merged := make([]CalendarChoice, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		merged = append(merged, CalendarChoice{Name: name, Display: selected[name]})
	}
	s.CalendarNames = merged
}
