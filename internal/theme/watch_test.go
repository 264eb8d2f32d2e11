package theme

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fileStore persists the preference to a plain file, standing in for the
// YAML config loader.
type fileStore struct {
	path string
}

func (s *fileStore) LoadThemePreference() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *fileStore) SaveThemePreference(pref string) error {
	return os.WriteFile(s.path, []byte(pref), 0644)
}

func TestWatchPicksUpExternalChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	store := &fileStore{path: path}
	require.NoError(t, store.SaveThemePreference("light"))

	m := NewManager(store, WithDetector(func() bool { return true }))
	require.Equal(t, Light, m.Preference())

	var notified atomic.Int32
	m.Subscribe(func(Resolved) { notified.Add(1) })

	w, err := Watch(m, path)
	require.NoError(t, err)
	defer w.Close()

	// Simulate another process changing the preference.
	require.NoError(t, store.SaveThemePreference("dark"))

	require.Eventually(t, func() bool {
		return m.Preference() == Dark
	}, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		return notified.Load() >= 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatchSurvivesAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	store := &fileStore{path: path}
	require.NoError(t, store.SaveThemePreference("light"))

	m := NewManager(store, WithDetector(func() bool { return true }))

	w, err := Watch(m, path)
	require.NoError(t, err)
	defer w.Close()

	// Replace the file by rename, the way atomic saves do.
	tmp := filepath.Join(dir, ".tmp-config")
	require.NoError(t, os.WriteFile(tmp, []byte("dark"), 0644))
	require.NoError(t, os.Rename(tmp, path))

	require.Eventually(t, func() bool {
		return m.Preference() == Dark
	}, 2*time.Second, 10*time.Millisecond)
}
