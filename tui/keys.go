package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"flowtask/internal/infrastructure/config"
)

// keyMap defines the keybindings for the TUI
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Filter key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

var keys keyMap

// InitKeybindings initializes the keybindings from config
func InitKeybindings(cfg *config.Config) {
	kb := cfg.Keybindings
	defaults := config.DefaultConfig().Keybindings

	keys = keyMap{
		Up:     newBinding(kb.Up, defaults.Up, "move up"),
		Down:   newBinding(kb.Down, defaults.Down, "move down"),
		Toggle: newBinding(kb.Toggle, defaults.Toggle, "toggle done"),
		Add:    newBinding(kb.Add, defaults.Add, "add task"),
		Edit:   newBinding(kb.Edit, defaults.Edit, "edit task"),
		Delete: newBinding(kb.Delete, defaults.Delete, "delete task"),
		Filter: newBinding(kb.Filter, defaults.Filter, "filter"),
		Clear:  newBinding(kb.Clear, defaults.Clear, "clear filters"),
		Quit:   newBinding(kb.Quit, defaults.Quit, "quit"),
	}
}

func newBinding(configured, fallback []string, help string) key.Binding {
	bindings := configured
	if len(bindings) == 0 {
		bindings = fallback
	}
	return key.NewBinding(
		key.WithKeys(bindings...),
		key.WithHelp(helpKey(bindings), help),
	)
}

// helpKey renders the primary key of a binding for the help line
func helpKey(bindings []string) string {
	if len(bindings) == 0 {
		return ""
	}
	k := bindings[0]
	if k == " " {
		k = "space"
	}
	if len(bindings) > 1 {
		return fmt.Sprintf("%s/%s", k, strings.ReplaceAll(bindings[1], " ", "space"))
	}
	return k
}
