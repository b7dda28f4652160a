package agenda

import (
	"sync"
	"time"

	"github.com/goodsign/monday"
	"github.com/sirupsen/logrus"

	"github.com/javahelps/nextcloud-agenda/pkg/calendar"
	"github.com/javahelps/nextcloud-agenda/pkg/models"
	"github.com/javahelps/nextcloud-agenda/pkg/spawn"
)

// Messages shown instead of the agenda
const (
	NotConfiguredText = "Please configure NextCloud server settings"
	NotConfiguredHint = "Configure: Server URL, Username, and App Password"
	RetrieveErrorText = "Unable to retrieve events..."
	ToolMissingText   = "Install ncalendar to use this widget."
	ToolMissingHint   = "Run: pip3 install ncalendar"
	UnknownErrorText  = "Unknown Error"
)

// Phase is the position of the controller in a refresh cycle
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFetching
	PhaseRendering
)

// RefreshState is reset at the start of each cycle
type RefreshState struct {
	Phase          Phase
	InProgress     bool
	LastBucketDate time.Time
	Err            models.ErrorKind
}

// View displays what the controller produces. Implementations are called
// from background goroutines.
type View interface {
	ShowLoading()
	ShowMessage(kind models.ErrorKind, message, hint string)
	ShowAgenda(tree *Tree, settings models.Settings)
}

// SettingsSource returns the latest settings snapshot
type SettingsSource interface {
	Settings() models.Settings
}

// CredentialExporter writes credentials where ncalendar can read them
type CredentialExporter interface {
	Export(settings models.Settings)
}

// Positioner places the widget on screen
type Positioner interface {
	Apply(settings models.Settings)
}

// Stopper is satisfied by *time.Timer
type Stopper interface {
	Stop() bool
}

// Options configure a Controller
type Options struct {
	Tool       string // ncalendar executable
	WorkingDir string
	Locale     monday.Locale
	Measurer   Measurer
	Exporter   CredentialExporter
	Positioner Positioner

	// Test hooks
	Now       func() time.Time
	AfterFunc func(d time.Duration, f func()) Stopper
}

// Controller owns the refresh loop: fetch with ncalendar, decode, render
type Controller struct {
	log        *logrus.Entry
	settings   SettingsSource
	spawner    spawn.Spawner
	view       View
	renderer   *Renderer
	exporter   CredentialExporter
	positioner Positioner

	tool      string
	dir       string
	locale    monday.Locale
	now       func() time.Time
	afterFunc func(d time.Duration, f func()) Stopper

	mu      sync.Mutex
	state   RefreshState
	events  []models.Event // live list bound to the view
	timer   Stopper
	pending bool   // refetch requested while a cycle was in flight
	cycle   uint64 // incremented by every cycle that starts
	started bool
	closed  bool
}

// NewController creates a controller; call Start to begin the loop
func NewController(log *logrus.Entry, settings SettingsSource, spawner spawn.Spawner, view View, opts Options) *Controller {
	c := &Controller{
		log:        log.WithField("component", "refresh"),
		settings:   settings,
		spawner:    spawner,
		view:       view,
		renderer:   NewRenderer(opts.Measurer),
		exporter:   opts.Exporter,
		positioner: opts.Positioner,
		tool:       opts.Tool,
		dir:        opts.WorkingDir,
		locale:     opts.Locale,
		now:        opts.Now,
		afterFunc:  opts.AfterFunc,
	}

	if c.tool == "" {
		c.tool = calendar.DefaultTool
	}
	if c.locale == "" {
		c.locale = monday.LocaleEnUS
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.afterFunc == nil {
		c.afterFunc = func(d time.Duration, f func()) Stopper {
			return time.AfterFunc(d, f)
		}
	}

	return c
}

// Start exports credentials and runs the first cycle
func (c *Controller) Start() {
	c.mu.Lock()
	if c.started || c.closed {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	settings := c.settings.Settings()
	if c.exporter != nil && !settings.NeedsConfiguration() {
		c.exporter.Export(settings)
	}
	c.Refresh()
}

// Close stops the loop. Output of a command still running is discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.stopTimerLocked()
	c.log.Info("Refresh loop stopped")
}

// State returns a copy of the current refresh state
func (c *Controller) State() RefreshState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Events returns the live event list
func (c *Controller) Events() []models.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Event(nil), c.events...)
}

// Refresh starts a cycle unless one is already in flight
func (c *Controller) Refresh() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.state.InProgress {
		c.mu.Unlock()
		c.log.Debug("Refresh already in progress, trigger dropped")
		return
	}

	c.stopTimerLocked()
	c.state = RefreshState{Phase: PhaseFetching, InProgress: true}
	c.events = nil
	c.cycle++
	cycle := c.cycle
	settings := c.settings.Settings()
	c.mu.Unlock()

	c.view.ShowLoading()

	if settings.NeedsConfiguration() {
		c.log.Info("Credentials missing, skipping fetch")
		c.fail(models.ErrNotConfigured, NotConfiguredText, NotConfiguredHint)
		return
	}

	argv := calendar.EventsCommand(c.tool, settings)
	c.log.WithFields(logrus.Fields{
		"days":      settings.Lookahead(),
		"calendars": settings.CalendarFilter(),
		"account":   settings.AccountID,
	}).Info("Retrieving events")

	c.spawner.Spawn(c.dir, argv, func(output []byte, err error) {
		c.onOutput(cycle, output, err)
	})
}

// OnSettingChanged runs the reaction bound to key
func (c *Controller) OnSettingChanged(key string) {
	c.OnSettingsChanged([]string{key})
}

// OnSettingsChanged runs each reaction bound to keys once
func (c *Controller) OnSettingsChanged(keys []string) {
	seen := make(map[Reaction]bool)
	credentials := false
	for _, key := range keys {
		seen[ReactionFor(key)] = true
		if models.IsCredentialKey(key) {
			credentials = true
		}
	}
	c.log.WithField("keys", keys).Debug("Settings changed")

	if credentials && c.exporter != nil {
		if settings := c.settings.Settings(); !settings.NeedsConfiguration() {
			c.exporter.Export(settings)
		}
	}

	if seen[ReactReposition] && c.positioner != nil {
		c.positioner.Apply(c.settings.Settings())
	}

	// A refetch renders with the new display settings as well.
	if seen[ReactRefetch] {
		c.refetch()
	} else if seen[ReactReformat] {
		c.Reformat()
	}
}

// Reformat renders the live list again with the current display settings
func (c *Controller) Reformat() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	inProgress := c.state.InProgress
	events := c.events
	cycle := c.cycle
	c.mu.Unlock()

	if inProgress {
		// The running cycle renders with the newest settings.
		return
	}
	if len(events) == 0 {
		c.Refresh()
		return
	}
	c.render(cycle, events)
}

// refetch cancels the pending timer and starts a new cycle. A cycle that is
// already running is left alone and followed by a fresh one.
func (c *Controller) refetch() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.stopTimerLocked()
	if c.state.InProgress {
		c.pending = true
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.Refresh()
}

func (c *Controller) onOutput(cycle uint64, output []byte, err error) {
	if !c.alive() {
		c.log.Debug("Discarding output of a stopped controller")
		return
	}

	if err != nil {
		if spawn.IsNotFound(err) {
			c.log.WithError(err).Error("ncalendar not found")
			c.fail(models.ErrToolMissing, ToolMissingText, ToolMissingHint)
			return
		}
		c.log.WithError(err).Error("Failed to run ncalendar")
		c.fail(models.ErrUnknown, UnknownErrorText, err.Error())
		return
	}

	events, err := calendar.DecodeEvents(output)
	if err != nil {
		c.log.WithError(err).Warn("Unable to decode ncalendar output")
		c.fail(models.ErrUnknown, RetrieveErrorText, "")
		return
	}

	c.log.WithField("count", len(events)).Info("Retrieved events")
	c.render(cycle, events)
	c.finish()
}

// render shows events unless a cycle newer than cycle has started since
func (c *Controller) render(cycle uint64, events []models.Event) {
	settings := c.settings.Settings()
	formatter := calendar.NewDateFormatter(settings, c.now(), c.locale)
	tree := c.renderer.Render(events, NewRenderOptions(settings, formatter))

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.cycle != cycle {
		c.mu.Unlock()
		c.log.WithField("cycle", cycle).Debug("Discarding render of a superseded cycle")
		return
	}
	if c.state.InProgress {
		c.state.Phase = PhaseRendering
	}
	c.events = events
	c.state.LastBucketDate = tree.LastBucket
	c.mu.Unlock()

	c.view.ShowAgenda(tree, settings)
}

func (c *Controller) fail(kind models.ErrorKind, message, hint string) {
	c.mu.Lock()
	c.state.Err = kind
	c.events = nil
	closed := c.closed
	c.mu.Unlock()

	if !closed {
		c.view.ShowMessage(kind, message, hint)
	}
	c.finish()
}

// finish ends the cycle and arms the next one
func (c *Controller) finish() {
	c.mu.Lock()
	c.state.InProgress = false
	c.state.Phase = PhaseIdle
	if c.closed {
		c.mu.Unlock()
		return
	}

	if c.pending {
		c.pending = false
		c.mu.Unlock()
		c.Refresh()
		return
	}

	delay := time.Duration(c.settings.Settings().RefreshMinutes()) * time.Minute
	c.stopTimerLocked()
	c.timer = c.afterFunc(delay, c.Refresh)
	c.mu.Unlock()

	c.log.WithField("delay", delay).Debug("Next refresh scheduled")
}

func (c *Controller) alive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
