package main

import (
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"
)

// completionWriters generate the completion script for each supported shell
var completionWriters = map[string]func(w io.Writer) error{
	"bash": func(w io.Writer) error {
		return rootCmd.GenBashCompletionV2(w, true)
	},
	"zsh": rootCmd.GenZshCompletion,
	"fish": func(w io.Writer) error {
		return rootCmd.GenFishCompletion(w, true)
	},
	"powershell": rootCmd.GenPowerShellCompletionWithDesc,
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Print a shell completion script",
	Long: `Print a completion script for nubepurge to stdout.

Load it for the current session:

  bash:        source <(nubepurge completion bash)
  zsh:         source <(nubepurge completion zsh)
  fish:        nubepurge completion fish | source
  powershell:  nubepurge completion powershell | Out-String | Invoke-Expression

To load it for every session, write the output to your shell's completion
directory instead.`,
	ValidArgs: slices.Sorted(maps.Keys(completionWriters)),
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return completionWriters[args[0]](cmd.OutOrStdout())
	},
}
