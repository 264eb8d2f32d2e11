package commands

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for flowtask.

To load completions:

Bash:
  $ source <(flowtask completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ flowtask completion bash > /etc/bash_completion.d/flowtask
  # macOS:
  $ flowtask completion bash > $(brew --prefix)/etc/bash_completion.d/flowtask

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ flowtask completion zsh > "${fpath[1]}/_flowtask"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ flowtask completion fish | source

  # To load completions for each session, execute once:
  $ flowtask completion fish > ~/.config/fish/completions/flowtask.fish

PowerShell:
  PS> flowtask completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> flowtask completion powershell > flowtask.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
