package nubepurge

import (
	"context"

	"github.com/nube-system/nubepurge/internal/purge"
)

// ClassReport compares the classes a stylesheet defines with the classes
// the project uses
type ClassReport struct {
	Defined []string `json:"defined"` // Class selectors in the stylesheet, sorted
	Used    []string `json:"used"`    // Class tokens in project files, sorted
	Unused  []string `json:"unused"`  // Defined but never used
}

// Classes inventories the stylesheet and scans the content root without
// writing anything.
func Classes(ctx context.Context, config Config) (*ClassReport, error) {
	config = config.withDefaults()

	original, err := readStylesheet(config.SourcePath)
	if err != nil {
		return nil, err
	}
	contentFS, err := openContentRoot(config.ContentDir)
	if err != nil {
		return nil, err
	}
	usage, _, err := ScanContent(ctx, contentFS, config.Extensions, config.Gitignore)
	if err != nil {
		return nil, err
	}

	report := &ClassReport{
		Defined: purge.Inventory(original),
		Used:    usage.SortedClasses(),
	}
	for _, name := range report.Defined {
		if !usage.HasClass(name) {
			report.Unused = append(report.Unused, name)
		}
	}
	return report, nil
}
