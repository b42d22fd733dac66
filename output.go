package nubepurge

import (
	"io"

	"github.com/nube-system/nubepurge/internal/purge"
)

// OutputFormat selects how a run result is reported
type OutputFormat string

// Output formats
const (
	OutputText  OutputFormat = "text"  // Styled summary with size reduction
	OutputJSON  OutputFormat = "json"  // Structured export
	OutputQuiet OutputFormat = "quiet" // Nothing; exit code only
)

// DetermineOutputFormat selects the output format based on flags
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// Explicit --quiet wins
	if quiet {
		return OutputQuiet
	}

	switch formatFlag {
	case "json":
		return OutputJSON
	case "text":
		return OutputText
	default:
		// Unknown or empty, fall back to the human summary
		return OutputText
	}
}

// WriteOutput writes the run result in the specified format
func WriteOutput(w io.Writer, result *Result, format OutputFormat, forceColors bool) error {
	switch format {
	case OutputQuiet:
		return nil
	case OutputJSON:
		return WriteJSON(w, result)
	default:
		purge.NewReporter(w, forceColors).PrintSummary(result.Summary)
		return nil
	}
}
