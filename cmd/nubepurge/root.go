package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nubepurge",
	Short: "Remove unused utility classes from a stylesheet",
	Long: `Scan project files for class="..." and className="..." attributes and
write a copy of the stylesheet holding only the rules they reference.
Media blocks are filtered rule by rule.`,
	// Default behavior: run purge when no subcommand is given.
	// loadConfig is called here because PreRunE of purgeCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runPurge(cmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log pipeline stages to stderr")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".nubepurge.yaml", "Config file path")

	addPurgeFlags(rootCmd)

	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(classesCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
