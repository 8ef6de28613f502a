package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// supportedShells lists the shells completion code can be generated for.
var supportedShells = []string{"bash", "zsh", "fish"}

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion <bash|zsh|fish>",
	Short: "Generate shell completion code for the specified shell",
	Long: `To load completions:

Bash:

  $ source <(%[1]s completion bash), e.g. source <(single-pyo3 completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ %[1]s completion bash > /etc/bash_completion.d/%[1]s
  # macOS:
  $ %[1]s completion bash > $(brew --prefix)/etc/bash_completion.d/%[1]s

Zsh:

  $ %[1]s completion zsh > "${fpath[1]}/_%[1]s"

Fish:

  $ %[1]s completion fish > ~/.config/fish/completions/%[1]s.fish`,
	Args:          cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs:     supportedShells,
	RunE:          cmdRunCompletion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	completionCmd.Long = fmt.Sprintf(completionCmd.Long, "single-pyo3")
	rootCmd.AddCommand(completionCmd)
}

// cmdRunCompletion writes the completion script for the requested shell to stdout
func cmdRunCompletion(cmd *cobra.Command, args []string) error {
	var err error
	switch args[0] {
	case "bash":
		err = cmd.Root().GenBashCompletion(cmd.OutOrStdout())
	case "zsh":
		err = cmd.Root().GenZshCompletion(cmd.OutOrStdout())
	case "fish":
		err = cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
	}
	if err != nil {
		return cmdFailure("Unable to generate "+args[0]+" completion", err)
	}
	return nil
}
