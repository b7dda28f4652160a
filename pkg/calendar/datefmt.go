package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/goodsign/monday"
	golocale "github.com/jeandeaual/go-locale"
	"github.com/sirupsen/logrus"

	"github.com/javahelps/nextcloud-agenda/pkg/models"
)

// RightSingleQuote replaces apostrophes nested inside a quoted literal
const RightSingleQuote = "’"

// DateFormatter renders bucket headers ("TODAY", "TOMORROW", "MONDAY, MARCH 3")
type DateFormatter struct {
	Today           time.Time
	DatePattern     string
	TodayPattern    string
	TomorrowPattern string
	Locale          monday.Locale
}

// NewDateFormatter creates a formatter for the patterns in settings, relative to now
func NewDateFormatter(settings models.Settings, now time.Time, locale monday.Locale) *DateFormatter {
	return &DateFormatter{
		Today:           Day(now),
		DatePattern:     settings.DateFormat,
		TodayPattern:    settings.TodayFormat,
		TomorrowPattern: settings.TomorrowFormat,
		Locale:          locale,
	}
}

// Tomorrow returns the day after Today
func (f *DateFormatter) Tomorrow() time.Time {
	return f.Today.AddDate(0, 0, 1)
}

// PatternFor selects the today, tomorrow or generic pattern for date
func (f *DateFormatter) PatternFor(date time.Time) string {
	switch day := Day(date); {
	case day.Equal(f.Today):
		return f.TodayPattern
	case day.Equal(f.Tomorrow()):
		return f.TomorrowPattern
	default:
		return f.DatePattern
	}
}

// Format returns the upper-cased header text for date
func (f *DateFormatter) Format(date time.Time) string {
	return strings.ToUpper(FormatDate(date, FixPattern(f.PatternFor(date)), f.Locale))
}

// FixPattern protects a quoted literal that itself contains an apostrophe,
// e.g. 'aujourd'hui'. Apostrophes between the first and the last one are
// replaced with U+2019 so the literal stays a single quoted run.
func FixPattern(pattern string) string {
	first := strings.Index(pattern, "'")
	last := strings.LastIndex(pattern, "'")
	if first < 0 || last <= first {
		return pattern
	}

	inner := pattern[first+1 : last]
	if !strings.Contains(inner, "'") {
		return pattern
	}
	return pattern[:first+1] + strings.ReplaceAll(inner, "'", RightSingleQuote) + pattern[last:]
}

// FormatDate formats t with an XDate style pattern. Supported tokens are
// yyyy yy MMMM MMM MM M dddd ddd dd d HH H hh h mm m ss s tt TT; text in
// single quotes is copied as is and '' yields an apostrophe.
func FormatDate(t time.Time, pattern string, locale monday.Locale) string {
	var b strings.Builder

	for i := 0; i < len(pattern); {
		c := pattern[i]

		if c == '\'' {
			end := strings.IndexByte(pattern[i+1:], '\'')
			switch {
			case end < 0:
				b.WriteString(pattern[i+1:])
				i = len(pattern)
			case end == 0:
				b.WriteByte('\'')
				i += 2
			default:
				b.WriteString(pattern[i+1 : i+1+end])
				i += end + 2
			}
			continue
		}

		n := 1
		for i+n < len(pattern) && pattern[i+n] == c {
			n++
		}

		if s, ok := formatToken(t, c, n, locale); ok {
			b.WriteString(s)
		} else {
			b.WriteString(pattern[i : i+n])
		}
		i += n
	}

	return b.String()
}

func formatToken(t time.Time, c byte, n int, locale monday.Locale) (string, bool) {
	switch c {
	case 'y':
		if n >= 3 {
			return fmt.Sprintf("%04d", t.Year()), true
		}
		return fmt.Sprintf("%02d", t.Year()%100), true
	case 'M':
		switch {
		case n >= 4:
			return monday.Format(t, "January", locale), true
		case n == 3:
			return monday.Format(t, "Jan", locale), true
		case n == 2:
			return fmt.Sprintf("%02d", int(t.Month())), true
		default:
			return fmt.Sprintf("%d", int(t.Month())), true
		}
	case 'd':
		switch {
		case n >= 4:
			return monday.Format(t, "Monday", locale), true
		case n == 3:
			return monday.Format(t, "Mon", locale), true
		case n == 2:
			return fmt.Sprintf("%02d", t.Day()), true
		default:
			return fmt.Sprintf("%d", t.Day()), true
		}
	case 'H':
		return pad(t.Hour(), n), true
	case 'h':
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		return pad(h, n), true
	case 'm':
		return pad(t.Minute(), n), true
	case 's':
		return pad(t.Second(), n), true
	case 't':
		if n >= 2 {
			return strings.ToLower(t.Format("PM")), true
		}
		return strings.ToLower(t.Format("PM"))[:1], true
	case 'T':
		if n >= 2 {
			return t.Format("PM"), true
		}
		return t.Format("PM")[:1], true
	}
	return "", false
}

func pad(v, n int) string {
	if n >= 2 {
		return fmt.Sprintf("%02d", v)
	}
	return fmt.Sprintf("%d", v)
}

// Day truncates t to local midnight of its calendar day
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from a to b
func DaysBetween(a, b time.Time) int {
	da, db := Day(a), Day(b)
	// Round to absorb DST transitions.
	return int((db.Sub(da) + 12*time.Hour) / (24 * time.Hour))
}

// ParseLocale converts "fr-FR", "fr_FR.UTF-8" or "fr" to a monday locale
func ParseLocale(value string) monday.Locale {
	value = strings.TrimSpace(value)
	if i := strings.IndexAny(value, ".@"); i >= 0 {
		value = value[:i]
	}
	value = strings.ReplaceAll(value, "-", "_")
	if value == "" || value == "C" || value == "POSIX" {
		return monday.LocaleEnUS
	}
	if !strings.Contains(value, "_") {
		value = strings.ToLower(value) + "_" + strings.ToUpper(value)
	}
	return monday.Locale(value)
}

// DetectLocale returns the user's locale, falling back to en_US
func DetectLocale(log *logrus.Entry) monday.Locale {
	value, err := golocale.GetLocale()
	if err != nil {
		log.WithError(err).Warn("Unable to detect locale, using en_US")
		return monday.LocaleEnUS
	}
	return ParseLocale(value)
}
