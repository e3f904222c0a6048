package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lfaller/inspect-spacy-model/internal/registry"
)

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion script for spacy-inspect.

To load completions:

Bash:
  $ spacy-inspect completion bash > ~/.local/share/bash-completion/completions/spacy-inspect
  $ source ~/.local/share/bash-completion/completions/spacy-inspect

Zsh:
  $ spacy-inspect completion zsh > ~/.zsh/completion/_spacy-inspect
  $ echo 'fpath=(~/.zsh/completion $fpath)' >> ~/.zshrc
  $ echo 'autoload -Uz compinit && compinit' >> ~/.zshrc

Fish:
  $ spacy-inspect completion fish > ~/.config/fish/completions/spacy-inspect.fish

PowerShell:
  PS> spacy-inspect completion powershell | Out-String | Invoke-Expression
  # To persist, add the output to your PowerShell profile
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.ExactValidArgs(1),
		RunE:                  runCompletion,
	}
}

func runCompletion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	switch args[0] {
	case "bash":
		return cmd.Root().GenBashCompletion(out)
	case "zsh":
		return cmd.Root().GenZshCompletion(out)
	case "fish":
		return cmd.Root().GenFishCompletion(out, true)
	case "powershell":
		return cmd.Root().GenPowerShellCompletionWithDesc(out)
	}
	return nil
}

// validModelNames completes a model-name argument from the registry
func validModelNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	names := make([]string, 0, len(registry.Registry))
	for _, m := range registry.Registry {
		names = append(names, fmt.Sprintf("%s\t%s - %d MB", m.Name, m.Description, m.FileSizeMB))
	}

	return names, cobra.ShellCompDirectiveNoFileComp
}
