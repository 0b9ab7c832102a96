// Package session holds the explicit per-application display state: the
// selected theme and the automatic day/night switch. State is constructed
// at startup and passed down; persistence goes through an injected
// prefs.Store.
package session

import (
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/Mani-Chandra65/Weather-App/internal/prefs"
)

// Theme values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ThemeForHour derives the automatic theme from a wall-clock hour: light
// from 06:00 to 18:00, dark otherwise.
func ThemeForHour(hour int) string {
	if hour >= 6 && hour < 18 {
		return ThemeLight
	}
	return ThemeDark
}

// Manager owns the theme state and the minute-interval auto-switch job.
type Manager struct {
	store prefs.Store
	log   *zap.SugaredLogger
	now   func() time.Time

	scheduler *gocron.Scheduler

	mu        sync.Mutex
	theme     string
	autoTheme bool
}

// NewManager loads persisted preferences from the store and, when the
// automatic switch is enabled, immediately derives the theme from the
// current hour.
func NewManager(store prefs.Store, log *zap.SugaredLogger) *Manager {
	m := &Manager{
		store:     store,
		log:       log,
		now:       time.Now,
		scheduler: gocron.NewScheduler(time.UTC),
		theme:     ThemeLight,
	}

	if v, err := store.Get(prefs.KeyTheme); err == nil {
		m.theme = v
	}
	if v, err := store.Get(prefs.KeyAutoTheme); err == nil {
		m.autoTheme = v == "true"
	}
	if m.autoTheme {
		m.mu.Lock()
		m.setThemeLocked(ThemeForHour(m.now().Hour()))
		m.mu.Unlock()
	}

	return m
}

// Theme returns the active theme.
func (m *Manager) Theme() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.theme
}

// AutoTheme reports whether automatic switching is enabled.
func (m *Manager) AutoTheme() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.autoTheme
}

// ToggleTheme flips between light and dark. Manual control always disables
// the automatic switch. Returns the new theme.
func (m *Manager) ToggleTheme() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.autoTheme {
		m.setAutoThemeLocked(false)
	}

	next := ThemeLight
	if m.theme == ThemeLight {
		next = ThemeDark
	}
	m.setThemeLocked(next)
	return next
}

// SetTheme selects a theme explicitly and disables automatic switching.
func (m *Manager) SetTheme(theme string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.autoTheme {
		m.setAutoThemeLocked(false)
	}
	m.setThemeLocked(theme)
}

// SetAutoTheme enables or disables automatic switching. Enabling applies
// the hour-derived theme immediately.
func (m *Manager) SetAutoTheme(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setAutoThemeLocked(enabled)
	if enabled {
		m.setThemeLocked(ThemeForHour(m.now().Hour()))
	}
}

// Start schedules the minute-interval job that re-derives the theme while
// automatic switching is enabled.
func (m *Manager) Start() error {
	_, err := m.scheduler.Every(1).Minute().Do(m.applyAutoTheme)
	if err != nil {
		return err
	}
	m.scheduler.StartAsync()
	return nil
}

// Stop stops the auto-switch job.
func (m *Manager) Stop() {
	m.scheduler.Stop()
}

func (m *Manager) applyAutoTheme() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.autoTheme {
		return
	}

	next := ThemeForHour(m.now().Hour())
	if next != m.theme {
		m.log.Infow("auto theme switch", "theme", next, "hour", m.now().Hour())
		m.setThemeLocked(next)
	}
}

func (m *Manager) setThemeLocked(theme string) {
	m.theme = theme
	if err := m.store.Set(prefs.KeyTheme, theme); err != nil {
		m.log.Warnw("persist theme failed", "err", err)
	}
}

func (m *Manager) setAutoThemeLocked(enabled bool) {
	m.autoTheme = enabled
	value := "false"
	if enabled {
		value = "true"
	}
	if err := m.store.Set(prefs.KeyAutoTheme, value); err != nil {
		m.log.Warnw("persist autoTheme failed", "err", err)
	}
}
