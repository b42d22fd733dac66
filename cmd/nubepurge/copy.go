package main

import (
	"github.com/spf13/cobra"

	"github.com/nube-system/nubepurge"
)

var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Write the full stylesheet behind a generated header",
	Long: `Copy the source stylesheet to the output path unchanged, for projects
that ship every utility class. Content is not scanned.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		config, err := buildConfig()
		if err != nil {
			return err
		}

		result, err := nubepurge.Copy(cmd.Context(), config)
		if err != nil {
			return err
		}
		return writeResult(result)
	},
}

func init() {
	f := copyCmd.Flags()
	f.String("source", "", "Source stylesheet (default styles/system.css)")
	f.String("output", "", "Output stylesheet (default <source>.purged.css)")
	f.Bool("min-sibling", false, "Also write a fully minified <output>.min.css")
	f.String("format", "", "Output format: text|json (default text)")
}
