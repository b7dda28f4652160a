package store

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javahelps/nextcloud-agenda/pkg/models"
)

func testLogger() *logrus.Entry {
	logger, _ := logtest.NewNullLogger()
	return logrus.NewEntry(logger)
}

func TestLoadDefaults(t *testing.T) {
	app := test.NewTempApp(t)
	cs := NewConfigStore(app, testLogger())

	assert.Equal(t, models.DefaultSettings(), cs.Settings())
}

func TestSaveRoundTrip(t *testing.T) {
	app := test.NewTempApp(t)
	cs := NewConfigStore(app, testLogger())

	s := cs.Settings()
	s.ServerURL = "https://cloud.example.com"
	s.Username = "alice"
	s.AppPassword = "secret"
	s.CalendarNames = []models.CalendarChoice{{Name: "Work", Display: true}, {Name: "Birthdays"}}
	s.Zoom = 1.5
	s.Use24hClock = false
	s.PositionX = 1970
	cs.Save(s)

	reloaded := NewConfigStore(app, testLogger())
	assert.Equal(t, s, reloaded.Settings())
	assert.Equal(t, "Work", reloaded.Settings().CalendarFilter())
}

func TestSaveNotifiesChangedKeys(t *testing.T) {
	app := test.NewTempApp(t)
	cs := NewConfigStore(app, testLogger())

	var notifications [][]string
	cs.OnChange(func(keys []string) {
		notifications = append(notifications, keys)
	})

	s := cs.Settings()
	s.Username = "alice"
	s.BgColor = "#202020"
	s.CalendarNames = []models.CalendarChoice{{Name: "Work", Display: true}}

	changed := cs.Save(s)
	expected := []string{models.KeyBgColor, models.KeyCalendarNames, models.KeyUsername}
	assert.Equal(t, expected, changed)
	require.Len(t, notifications, 1)
	assert.Equal(t, expected, notifications[0])

	// saving the same snapshot again is silent
	assert.Empty(t, cs.Save(s))
	assert.Len(t, notifications, 1)
}

func TestSettingsIsACopy(t *testing.T) {
	app := test.NewTempApp(t)
	cs := NewConfigStore(app, testLogger())

	s := cs.Settings()
	s.CalendarNames = []models.CalendarChoice{{Name: "Work", Display: true}}
	cs.Save(s)

	copied := cs.Settings()
	copied.CalendarNames[0].Display = false
	assert.True(t, cs.Settings().CalendarNames[0].Display)
}

func TestImportYAML(t *testing.T) {
	app := test.NewTempApp(t)
	cs := NewConfigStore(app, testLogger())

	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := `server_url: https://cloud.example.com
username: alice
app_password: secret
interval: 14
calendar_names:
  - name: Work
    display: true
  - name: Personal
    display: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	changed, err := cs.ImportYAML(path)
	require.NoError(t, err)
	assert.Contains(t, changed, models.KeyServerURL)
	assert.Contains(t, changed, models.KeyInterval)
	assert.Contains(t, changed, models.KeyCalendarNames)

	s := cs.Settings()
	assert.False(t, s.NeedsConfiguration())
	assert.Equal(t, 14, s.Interval)
	assert.Equal(t, "Work", s.CalendarFilter())
	// keys missing from the file keep their value
	assert.Equal(t, 15, s.Delay)
}

func TestImportYAMLErrors(t *testing.T) {
	app := test.NewTempApp(t)
	cs := NewConfigStore(app, testLogger())

	_, err := cs.ImportYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("interval: [not a number"), 0o600))
	_, err = cs.ImportYAML(path)
	assert.Error(t, err)
}
