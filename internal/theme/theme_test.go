package theme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore holds the preference in memory.
type fakeStore struct {
	pref    string
	loadErr error
	saveErr error
	saves   int
}

func (s *fakeStore) LoadThemePreference() (string, error) {
	if s.loadErr != nil {
		return "", s.loadErr
	}
	return s.pref, nil
}

func (s *fakeStore) SaveThemePreference(pref string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.pref = pref
	s.saves++
	return nil
}

func darkTerminal() bool  { return true }
func lightTerminal() bool { return false }

func TestNewManager(t *testing.T) {
	t.Run("uses the stored preference", func(t *testing.T) {
		m := NewManager(&fakeStore{pref: "dark"}, WithDetector(lightTerminal))
		assert.Equal(t, Dark, m.Preference())
		assert.Equal(t, ResolvedDark, m.Resolved())
	})

	t.Run("defaults to system when nothing is stored", func(t *testing.T) {
		m := NewManager(&fakeStore{}, WithDetector(darkTerminal))
		assert.Equal(t, System, m.Preference())
	})

	t.Run("defaults to system on unknown stored value", func(t *testing.T) {
		m := NewManager(&fakeStore{pref: "solarized"}, WithDetector(darkTerminal))
		assert.Equal(t, System, m.Preference())
	})

	t.Run("defaults to system when the store fails", func(t *testing.T) {
		m := NewManager(&fakeStore{loadErr: errors.New("no file")}, WithDetector(darkTerminal))
		assert.Equal(t, System, m.Preference())
	})
}

func TestResolveSystem(t *testing.T) {
	t.Run("dark terminal", func(t *testing.T) {
		m := NewManager(&fakeStore{pref: "system"}, WithDetector(darkTerminal))
		assert.Equal(t, ResolvedDark, m.Resolved())
	})

	t.Run("light terminal", func(t *testing.T) {
		m := NewManager(&fakeStore{pref: "system"}, WithDetector(lightTerminal))
		assert.Equal(t, ResolvedLight, m.Resolved())
	})

	t.Run("explicit preference ignores the detector", func(t *testing.T) {
		m := NewManager(&fakeStore{pref: "light"}, WithDetector(darkTerminal))
		assert.Equal(t, ResolvedLight, m.Resolved())
	})
}

func TestSetTheme(t *testing.T) {
	t.Run("persists and applies", func(t *testing.T) {
		store := &fakeStore{pref: "system"}
		m := NewManager(store, WithDetector(lightTerminal))

		require.NoError(t, m.SetTheme(Dark))

		assert.Equal(t, Dark, m.Preference())
		assert.Equal(t, ResolvedDark, m.Resolved())
		assert.Equal(t, "dark", store.pref)
		assert.Equal(t, 1, store.saves)
	})

	t.Run("rejects unknown preferences", func(t *testing.T) {
		store := &fakeStore{}
		m := NewManager(store, WithDetector(lightTerminal))

		err := m.SetTheme(Preference("sepia"))

		assert.ErrorIs(t, err, ErrInvalidPreference)
		assert.Equal(t, 0, store.saves)
	})

	t.Run("surfaces store failures", func(t *testing.T) {
		store := &fakeStore{saveErr: errors.New("disk full")}
		m := NewManager(store, WithDetector(lightTerminal))

		assert.Error(t, m.SetTheme(Dark))
	})
}

func TestSubscribe(t *testing.T) {
	store := &fakeStore{pref: "light"}
	m := NewManager(store, WithDetector(darkTerminal))

	var seen []Resolved
	unsubscribe := m.Subscribe(func(r Resolved) { seen = append(seen, r) })

	require.NoError(t, m.SetTheme(Dark))
	assert.Equal(t, []Resolved{ResolvedDark}, seen)

	unsubscribe()
	require.NoError(t, m.SetTheme(Light))
	assert.Equal(t, []Resolved{ResolvedDark}, seen, "no delivery after unsubscribe")
}

func TestReload(t *testing.T) {
	t.Run("picks up an external preference change", func(t *testing.T) {
		store := &fakeStore{pref: "light"}
		m := NewManager(store, WithDetector(darkTerminal))

		var seen []Resolved
		m.Subscribe(func(r Resolved) { seen = append(seen, r) })

		store.pref = "dark"
		m.reload()

		assert.Equal(t, Dark, m.Preference())
		assert.Equal(t, []Resolved{ResolvedDark}, seen)
	})

	t.Run("system mode re-polls the detector even when unchanged", func(t *testing.T) {
		store := &fakeStore{pref: "system"}
		m := NewManager(store, WithDetector(darkTerminal))

		var notifications int
		m.Subscribe(func(Resolved) { notifications++ })

		m.reload()
		assert.Equal(t, 1, notifications)
	})

	t.Run("ignores unknown stored values", func(t *testing.T) {
		store := &fakeStore{pref: "light"}
		m := NewManager(store, WithDetector(darkTerminal))

		var notifications int
		m.Subscribe(func(Resolved) { notifications++ })

		store.pref = "solarized"
		m.reload()

		assert.Equal(t, Light, m.Preference())
		assert.Equal(t, 0, notifications)
	})
}
