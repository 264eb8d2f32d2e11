package commands

import (
	"github.com/spf13/cobra"

	"flowtask/cmd/flowtask/output"
)

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the backend is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := container.API.Health(getContext())
		if err != nil {
			printer.Error("Backend unreachable: %v", err)
			return err
		}
		if formatter.Format() != output.FormatText {
			return formatter.Print(resp)
		}
		printer.Success("Backend %s (%s)", resp.Status, cfg.Server.BaseURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
