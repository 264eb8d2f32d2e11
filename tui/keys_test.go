package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"flowtask/internal/infrastructure/config"
)

func TestInitKeybindings(t *testing.T) {
	t.Run("uses configured keys", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Keybindings.Quit = []string{"ctrl+q"}
		InitKeybindings(cfg)

		assert.Equal(t, []string{"ctrl+q"}, keys.Quit.Keys())
	})

	t.Run("falls back to defaults for empty bindings", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Keybindings.Toggle = nil
		InitKeybindings(cfg)

		assert.Equal(t, []string{" ", "x"}, keys.Toggle.Keys())
	})
}

func TestHelpKey(t *testing.T) {
	assert.Equal(t, "q/ctrl+c", helpKey([]string{"q", "ctrl+c"}))
	assert.Equal(t, "space", helpKey([]string{" "}))
	assert.Equal(t, "a", helpKey([]string{"a"}))
	assert.Equal(t, "", helpKey(nil))
}
