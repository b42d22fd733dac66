package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nube-system/nubepurge"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Write the stylesheet without unused rules",
	Long: `Scan the content root for class usage and write the purged stylesheet
behind a header recording the time of the run and the size reduction.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runPurge,
}

func init() {
	addPurgeFlags(purgeCmd)
}

// addPurgeFlags registers the flags shared by purge, watch and the root command.
// Defaults live in buildConfig so config file values are not shadowed.
func addPurgeFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("content", "", "Directory scanned for class usage (default src)")
	f.String("source", "", "Source stylesheet (default styles/system.css)")
	f.String("output", "", "Output stylesheet (default <source>.purged.css)")
	f.StringSlice("extensions", nil, "File extensions to scan (default .astro,.jsx,.js,.ts,.tsx,.vue,.svelte,.html)")
	f.Bool("minify", false, "Minify the purged stylesheet")
	f.Bool("min-sibling", false, "Also write a fully minified <output>.min.css")
	f.Bool("gitignore", false, "Skip content files matched by <content>/.gitignore")
	f.String("format", "", "Output format: text|json (default text)")
}

func runPurge(cmd *cobra.Command, _ []string) error {
	config, err := buildConfig()
	if err != nil {
		return err
	}

	result, err := nubepurge.Purge(cmd.Context(), config)
	if err != nil {
		return err
	}

	return writeResult(result)
}

// writeResult reports a completed run on stdout
func writeResult(result *nubepurge.Result) error {
	format := nubepurge.DetermineOutputFormat(
		getStringWithFallback("format", "format", string(nubepurge.OutputText)),
		getBoolWithFallback("quiet", "quiet", false),
	)
	return nubepurge.WriteOutput(os.Stdout, result, format, getBoolWithFallback("color", "color", false))
}
