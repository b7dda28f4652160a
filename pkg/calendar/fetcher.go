package calendar

import (
	"strconv"
	"strings"

	"github.com/javahelps/nextcloud-agenda/pkg/models"
)

// DefaultTool is the ncalendar executable looked up in PATH
const DefaultTool = "ncalendar"

// EventsCommand builds the argv that lists upcoming events as JSON
func EventsCommand(tool string, settings models.Settings) []string {
	command := []string{tool, "--output", "json", "--days", strconv.Itoa(settings.Lookahead())}

	if filter := settings.CalendarFilter(); filter != "" {
		command = append(command, "--calendars", filter)
	}

	return addAccountID(command, settings.AccountID)
}

// ListCalendarsCommand builds the argv that prints one calendar name per line
func ListCalendarsCommand(tool string, settings models.Settings) []string {
	command := []string{tool, "--output", "txt", "--list-calendars"}
	return addAccountID(command, settings.AccountID)
}

func addAccountID(command []string, accountID string) []string {
	if accountID != "" {
		command = append(command, "--account", accountID)
	}
	return command
}

// ParseCalendarNames splits the output of ListCalendarsCommand
func ParseCalendarNames(output []byte) []string {
	names := []string{}
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			names = append(names, line)
		}
	}
	return names
}
