package calendar

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/javahelps/nextcloud-agenda/pkg/models"
)

// ErrNoEvents is returned when no output line holds a JSON event array
var ErrNoEvents = errors.New("no JSON event list in ncalendar output")

// DecodeEvents finds the last line of output that decodes as a JSON array
// of events. ncalendar may print diagnostics (first-time authentication,
// warnings) before the JSON line, so earlier failing lines are ignored.
func DecodeEvents(output []byte) ([]models.Event, error) {
	lines := bytes.Split(bytes.TrimSpace(output), []byte("\n"))

	var lastErr error
	for i := len(lines) - 1; i >= 0; i-- {
		line := bytes.TrimSpace(lines[i])
		if len(line) == 0 {
			continue
		}

		events, err := decodeLine(line)
		if err == nil {
			return events, nil
		}
		if lastErr == nil {
			lastErr = err
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoEvents, lastErr)
	}
	return nil, ErrNoEvents
}

func decodeLine(line []byte) ([]models.Event, error) {
	var raw []models.RawEvent
	if err := json.Unmarshal(line, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	if raw == nil {
		// "null" decodes without error but is not an array
		return nil, errors.New("failed to decode events: not an array")
	}

	events := make([]models.Event, 0, len(raw))
	for _, r := range raw {
		event, err := models.NewEvent(r)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}
