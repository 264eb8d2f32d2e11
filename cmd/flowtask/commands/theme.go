package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"flowtask/internal/theme"
)

// themeCmd represents the theme command
var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change the color theme",
	Long: `Show or change the color theme used by the TUI.

The preference is one of light, dark, or system. With system the effective
theme follows the terminal background, detected at startup.

Examples:
  flowtask theme show
  flowtask theme set dark
  flowtask theme set system`,
}

// themeShowCmd prints the current preference and what it resolves to
var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current theme",
	RunE: func(cmd *cobra.Command, args []string) error {
		pref := container.Theme.Preference()
		resolved := container.Theme.Resolved()
		if pref == theme.System {
			printer.Println("%s (resolved: %s)", pref, resolved)
		} else {
			printer.Println("%s", pref)
		}
		return nil
	},
}

// themeSetCmd persists a new preference
var themeSetCmd = &cobra.Command{
	Use:       "set <light|dark|system>",
	Short:     "Set and persist the theme preference",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"light", "dark", "system"},
	RunE: func(cmd *cobra.Command, args []string) error {
		pref := theme.Preference(args[0])
		if err := container.Theme.SetTheme(pref); err != nil {
			return fmt.Errorf("failed to set theme: %w", err)
		}
		printer.Success("Theme set to %s (resolved: %s)", pref, container.Theme.Resolved())
		return nil
	},
}

func init() {
	themeCmd.AddCommand(themeShowCmd)
	themeCmd.AddCommand(themeSetCmd)
	rootCmd.AddCommand(themeCmd)
}
