package commands

import (
	"github.com/spf13/cobra"

	"flowtask/internal/infrastructure/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or reset the configuration",
	Long: `Inspect or reset the configuration file.

The configuration lives at ~/.config/flowtask/config.yml and is created
with defaults on first run. It holds the backend address, the theme
preference, TUI styles, and keybindings.

Examples:
  flowtask config show
  flowtask config path
  flowtask config reset`,
}

// configShowCmd prints the loaded configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the loaded configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return formatter.Print(cfg)
	},
}

// configPathCmd prints the config file location
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		printer.Println("%s", container.Loader.GetConfigPath())
		return nil
	},
}

// configResetCmd overwrites the config file with defaults
var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the configuration to defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults := config.DefaultConfig()
		if err := container.Loader.Save(defaults); err != nil {
			return err
		}
		printer.Success("Configuration reset to defaults")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configResetCmd)
	rootCmd.AddCommand(configCmd)
}
