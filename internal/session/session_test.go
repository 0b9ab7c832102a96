package session

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Mani-Chandra65/Weather-App/internal/prefs"
)

func TestThemeForHour(t *testing.T) {
	for _, tc := range []struct {
		hour int
		want string
	}{
		{0, ThemeDark},
		{3, ThemeDark},
		{5, ThemeDark},
		{6, ThemeLight},
		{9, ThemeLight},
		{17, ThemeLight},
		{18, ThemeDark},
		{23, ThemeDark},
	} {
		if got := ThemeForHour(tc.hour); got != tc.want {
			t.Errorf("ThemeForHour(%d) = %q, want %q", tc.hour, got, tc.want)
		}
	}
}

func newTestManager(store prefs.Store) *Manager {
	return NewManager(store, zap.NewNop().Sugar())
}

func TestDefaults(t *testing.T) {
	m := newTestManager(prefs.NewMemoryStore())
	if m.Theme() != ThemeLight {
		t.Errorf("default theme = %q, want light", m.Theme())
	}
	if m.AutoTheme() {
		t.Error("auto theme should default to disabled")
	}
}

func TestToggleThemePersistsAndDisablesAuto(t *testing.T) {
	store := prefs.NewMemoryStore()
	m := newTestManager(store)
	m.SetAutoTheme(true)

	got := m.ToggleTheme()
	if m.AutoTheme() {
		t.Error("toggle should disable auto theme")
	}
	if got != m.Theme() {
		t.Errorf("ToggleTheme returned %q but active theme is %q", got, m.Theme())
	}

	if v, _ := store.Get(prefs.KeyTheme); v != got {
		t.Errorf("persisted theme = %q, want %q", v, got)
	}
	if v, _ := store.Get(prefs.KeyAutoTheme); v != "false" {
		t.Errorf("persisted autoTheme = %q, want false", v)
	}
}

func TestAutoThemeAppliesHourDerivedTheme(t *testing.T) {
	m := newTestManager(prefs.NewMemoryStore())
	m.now = func() time.Time {
		return time.Date(2026, 3, 2, 3, 0, 0, 0, time.UTC)
	}

	m.SetAutoTheme(true)
	if m.Theme() != ThemeDark {
		t.Errorf("theme at 03:00 = %q, want dark", m.Theme())
	}

	m.now = func() time.Time {
		return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	}
	m.applyAutoTheme()
	if m.Theme() != ThemeLight {
		t.Errorf("theme at 09:00 = %q, want light", m.Theme())
	}
}

func TestApplyAutoThemeIsNoOpWhenDisabled(t *testing.T) {
	m := newTestManager(prefs.NewMemoryStore())
	m.SetTheme(ThemeDark)
	m.now = func() time.Time {
		return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	}

	m.applyAutoTheme()
	if m.Theme() != ThemeDark {
		t.Errorf("theme changed to %q with auto disabled", m.Theme())
	}
}

func TestStateReloadsFromStore(t *testing.T) {
	store := prefs.NewMemoryStore()
	store.Set(prefs.KeyTheme, ThemeDark)
	store.Set(prefs.KeyAutoTheme, "false")

	m := newTestManager(store)
	if m.Theme() != ThemeDark {
		t.Errorf("reloaded theme = %q, want dark", m.Theme())
	}
	if m.AutoTheme() {
		t.Error("reloaded autoTheme should be disabled")
	}
}
