// Package theme holds the process-wide light/dark/system preference. The
// stored preference and the resolved concrete value are exposed separately so
// consumers can render without caring whether "system" was selected.
package theme

import (
	"sync"

	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger()

// Preference is the stored theme preference.
type Preference string

const (
	Light  Preference = "light"
	Dark   Preference = "dark"
	System Preference = "system"
)

// DefaultPreference applies when nothing is stored.
const DefaultPreference = System

// IsValid reports whether p is a known preference.
func (p Preference) IsValid() bool {
	return p == Light || p == Dark || p == System
}

// Resolved is the concrete light/dark value in effect.
type Resolved string

const (
	ResolvedLight Resolved = "light"
	ResolvedDark  Resolved = "dark"
)

// Store persists the single theme preference key.
type Store interface {
	LoadThemePreference() (string, error)
	SaveThemePreference(string) error
}

// Manager resolves and persists the theme preference. While the preference is
// System, the resolved value follows the terminal background; switching to an
// explicit preference detaches resolution from the detector.
type Manager struct {
	store  Store
	detect func() bool // reports a dark background

	mu          sync.RWMutex
	pref        Preference
	nextSubID   int
	subscribers map[int]func(Resolved)
}

// Option configures a Manager.
type Option func(*Manager)

// WithDetector replaces the terminal background detector. Tests inject a
// deterministic one.
func WithDetector(detect func() bool) Option {
	return func(m *Manager) { m.detect = detect }
}

// NewManager creates a Manager from the stored preference, defaulting to
// System when none is stored or the stored value is unknown.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:       store,
		detect:      termenv.HasDarkBackground,
		pref:        DefaultPreference,
		subscribers: make(map[int]func(Resolved)),
	}
	for _, opt := range opts {
		opt(m)
	}

	if stored, err := store.LoadThemePreference(); err == nil {
		if p := Preference(stored); p.IsValid() {
			m.pref = p
		}
	}
	return m
}

// Preference returns the stored preference.
func (m *Manager) Preference() Preference {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pref
}

// Resolved returns the concrete light/dark value in effect.
func (m *Manager) Resolved() Resolved {
	m.mu.RLock()
	pref := m.pref
	m.mu.RUnlock()
	return m.resolve(pref)
}

func (m *Manager) resolve(pref Preference) Resolved {
	switch pref {
	case Light:
		return ResolvedLight
	case Dark:
		return ResolvedDark
	default:
		if m.detect() {
			return ResolvedDark
		}
		return ResolvedLight
	}
}

// SetTheme persists pref and applies it immediately, notifying subscribers
// with the new resolved value.
func (m *Manager) SetTheme(pref Preference) error {
	if !pref.IsValid() {
		return ErrInvalidPreference
	}

	m.mu.Lock()
	m.pref = pref
	m.mu.Unlock()

	if err := m.store.SaveThemePreference(string(pref)); err != nil {
		return err
	}
	m.notify(m.resolve(pref))
	return nil
}

// Subscribe registers fn to run whenever the resolved theme changes and
// returns a function that removes the subscription.
func (m *Manager) Subscribe(fn func(Resolved)) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subscribers, id)
	}
}

func (m *Manager) notify(resolved Resolved) {
	m.mu.RLock()
	fns := make([]func(Resolved), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		fns = append(fns, fn)
	}
	m.mu.RUnlock()

	for _, fn := range fns {
		fn(resolved)
	}
}

// reload re-reads the stored preference after an external change and
// re-resolves. In System mode the detector is re-polled even when the stored
// value did not change.
func (m *Manager) reload() {
	stored, err := m.store.LoadThemePreference()
	if err != nil {
		log.Warnf("failed to reload theme preference: %v", err)
		return
	}
	p := Preference(stored)
	if !p.IsValid() {
		return
	}

	m.mu.Lock()
	changed := p != m.pref
	m.pref = p
	m.mu.Unlock()

	if changed || p == System {
		m.notify(m.resolve(p))
	}
}
