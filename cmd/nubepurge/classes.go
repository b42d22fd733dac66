package main

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/nube-system/nubepurge"
	"github.com/nube-system/nubepurge/internal/purge"
)

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List classes defined by the stylesheet and used by the project",
	Long: `Inventory the class selectors of the source stylesheet and compare them
with the class tokens found under the content root. Nothing is written.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runClasses,
}

func init() {
	f := classesCmd.Flags()
	f.String("content", "", "Directory scanned for class usage (default src)")
	f.String("source", "", "Source stylesheet (default styles/system.css)")
	f.StringSlice("extensions", nil, "File extensions to scan")
	f.Bool("gitignore", false, "Skip content files matched by <content>/.gitignore")
	f.String("format", "", "Output format: text|json (default text)")
	f.Bool("unused", false, "List only defined classes that are never used")
}

func runClasses(cmd *cobra.Command, _ []string) error {
	config, err := buildConfig()
	if err != nil {
		return err
	}

	report, err := nubepurge.Classes(cmd.Context(), config)
	if err != nil {
		return err
	}

	format := nubepurge.DetermineOutputFormat(
		getStringWithFallback("format", "format", string(nubepurge.OutputText)),
		getBoolWithFallback("quiet", "quiet", false),
	)
	unused, _ := cmd.Flags().GetBool("unused")

	switch format {
	case nubepurge.OutputQuiet:
		return nil
	case nubepurge.OutputJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if unused {
			return encoder.Encode(map[string][]string{"unused": report.Unused})
		}
		return encoder.Encode(report)
	}

	if unused {
		for _, name := range report.Unused {
			fmt.Println(name)
		}
		return nil
	}

	useColors := purge.NewReporter(os.Stdout, getBoolWithFallback("color", "color", false)).UseColors()
	for _, name := range report.Defined {
		if contains(report.Unused, name) {
			fmt.Println(purge.RenderStyle(purge.StyleMuted, name, useColors))
			continue
		}
		fmt.Println(name)
	}
	fmt.Printf("\n%d defined, %d used in project, %s\n",
		len(report.Defined), len(report.Used),
		purge.RenderStyle(purge.StyleDropped, fmt.Sprintf("%d unused", len(report.Unused)), useColors))
	return nil
}

func contains(sorted []string, name string) bool {
	_, found := slices.BinarySearch(sorted, name)
	return found
}
