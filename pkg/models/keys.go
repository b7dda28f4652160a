package models

// Preference keys of the configuration surface
const (
	KeyServerURL     = "server_url"
	KeyUsername      = "username"
	KeyAppPassword   = "app_password"
	KeyAccountID     = "ncalendar_account"
	KeyCalendarNames = "calendar_names"
	KeyInterval      = "interval"
	KeyDelay         = "delay"

	KeyUse24hClock     = "use_24h_clock"
	KeyDateFormat      = "date_format"
	KeyTodayFormat     = "today_format"
	KeyTomorrowFormat  = "tomorrow_format"
	KeyZoom            = "zoom"
	KeyTextColor       = "text_color"
	KeyAllDayTextColor = "all_day_text_color"
	KeyBgColor         = "bg_color"
	KeyLocationColor   = "location_color"
	KeyCornerRadius    = "corner_radius"
	KeyTransparency    = "transparency"
	KeyShowLocation    = "show_location"
	KeyDiffCalendar    = "diff_calendar"

	KeyTargetMonitor = "target_monitor"
	KeyPositionX     = "position_x"
	KeyPositionY     = "position_y"
	KeyAutoPosition  = "auto_position"

	KeyAutoStart     = "auto_start"
	KeyRefreshHotkey = "refresh_hotkey"
)

// CredentialKeys are exported to the ncalendar configuration file
var CredentialKeys = []string{KeyServerURL, KeyUsername, KeyAppPassword, KeyAccountID}

// IsCredentialKey reports whether key is one of CredentialKeys
func IsCredentialKey(key string) bool {
	for _, k := range CredentialKeys {
		if k == key {
			return true
		}
	}
	return false
}
