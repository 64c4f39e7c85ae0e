package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// newCompletionCmd creates the completion command for generating shell completions.
func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for dotstitch.

To load completions:

Bash:
  $ source <(dotstitch completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ dotstitch completion bash > /etc/bash_completion.d/dotstitch
  # macOS:
  $ dotstitch completion bash > $(brew --prefix)/etc/bash_completion.d/dotstitch

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ dotstitch completion zsh > "${fpath[1]}/_dotstitch"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ dotstitch completion fish | source

  # To load completions for each session, execute once:
  $ dotstitch completion fish > ~/.config/fish/completions/dotstitch.fish

PowerShell:
  PS> dotstitch completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> dotstitch completion powershell > dotstitch.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
