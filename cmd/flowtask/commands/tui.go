package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"flowtask/internal/theme"
	"flowtask/tui"
	"flowtask/tui/style"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal user interface",
	Long: `Launch the interactive TUI (Terminal User Interface) for managing tasks.

The TUI provides a visual, keyboard-driven interface for:
  - Browsing, searching, and filtering tasks
  - Creating and editing tasks
  - Toggling completion and deleting tasks
  - Watching the unread notification badge

Keyboard shortcuts:
  ↑/k      - Move to task above
  ↓/j      - Move to task below
  Space    - Toggle completed on the selected task
  a        - Add a new task
  e/Enter  - Edit the selected task
  d        - Delete the selected task
  /        - Filter by search text
  c        - Clear all filters
  q/Ctrl+C - Quit application

Examples:
  # Launch TUI
  flowtask tui

  # Launch TUI (shorthand - default command)
  flowtask`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		// Initialize styles and keybindings from config
		style.InitStyles(cfg, container.Theme.Resolved())
		tui.InitKeybindings(cfg)

		// Re-style on theme changes from other processes or theme set
		unsubscribe := container.Theme.Subscribe(func(resolved theme.Resolved) {
			style.InitStyles(cfg, resolved)
		})
		defer unsubscribe()

		// Pick up edits to the config file while the TUI is running
		watcher, err := theme.Watch(container.Theme, container.Loader.GetConfigPath())
		if err == nil {
			defer watcher.Close()
		} else {
			log.Warnf("config watch unavailable: %v", err)
		}

		container.Session.Refresh(ctx)

		m := tui.NewModel(container)

		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	rootCmd.RunE = tuiCmd.RunE
}
