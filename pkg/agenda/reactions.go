package agenda

import "github.com/javahelps/nextcloud-agenda/pkg/models"

// Reaction is what the widget does when a setting changes
type Reaction int

const (
	ReactNone Reaction = iota
	ReactReformat
	ReactRefetch
	ReactReposition
)

func (r Reaction) String() string {
	switch r {
	case ReactReformat:
		return "reformat"
	case ReactRefetch:
		return "refetch"
	case ReactReposition:
		return "reposition"
	default:
		return "none"
	}
}

var reactions = map[string]Reaction{
	models.KeyServerURL:     ReactRefetch,
	models.KeyUsername:      ReactRefetch,
	models.KeyAppPassword:   ReactRefetch,
	models.KeyAccountID:     ReactRefetch,
	models.KeyCalendarNames: ReactRefetch,
	models.KeyInterval:      ReactRefetch,
	models.KeyDelay:         ReactRefetch,

	models.KeyUse24hClock:     ReactReformat,
	models.KeyDateFormat:      ReactReformat,
	models.KeyTodayFormat:     ReactReformat,
	models.KeyTomorrowFormat:  ReactReformat,
	models.KeyZoom:            ReactReformat,
	models.KeyTextColor:       ReactReformat,
	models.KeyAllDayTextColor: ReactReformat,
	models.KeyBgColor:         ReactReformat,
	models.KeyLocationColor:   ReactReformat,
	models.KeyCornerRadius:    ReactReformat,
	models.KeyTransparency:    ReactReformat,
	models.KeyShowLocation:    ReactReformat,
	models.KeyDiffCalendar:    ReactReformat,

	models.KeyTargetMonitor: ReactReposition,
	models.KeyPositionX:     ReactReposition,
	models.KeyPositionY:     ReactReposition,
	models.KeyAutoPosition:  ReactReposition,
}

// ReactionFor returns the reaction bound to a preference key
func ReactionFor(key string) Reaction {
	return reactions[key]
}
