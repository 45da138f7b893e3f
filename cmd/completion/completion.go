package completion

import (
	"github.com/spf13/cobra"
)

func CompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion script for the specified shell.

The completion script can be sourced to enable command-line completion for posture.

Bash:
  $ source <(posture completion bash)

  To load completions for each session, execute once:
  Linux:
    $ posture completion bash > /etc/bash_completion.d/posture
  macOS:
    $ posture completion bash > /usr/local/etc/bash_completion.d/posture

Zsh:
  If shell completion is not already enabled in your environment, you will need
  to enable it. You can execute the following once:
    $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  To load completions for each session, execute once:
    $ posture completion zsh > "${fpath[1]}/_posture"

  You will need to start a new shell for this setup to take effect.

Fish:
  $ posture completion fish | source

  To load completions for each session, execute once:
    $ posture completion fish > ~/.config/fish/completions/posture.fish
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				cmd.Root().GenBashCompletion(out)
			case "zsh":
				cmd.Root().GenZshCompletion(out)
			case "fish":
				cmd.Root().GenFishCompletion(out, true)
			}
		},
	}

	return cmd
}
