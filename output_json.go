package nubepurge

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Mode      string      `json:"mode"`
	Source    string      `json:"source"`
	Output    string      `json:"output"`
	MinOutput string      `json:"min_output,omitempty"`
	Size      JSONSize    `json:"size"`
	Scan      JSONScan    `json:"scan"`
	Rules     JSONRules   `json:"rules"`
	Classes   JSONClasses `json:"classes"`
}

// JSONSize contains byte counts of the stylesheet body
type JSONSize struct {
	OriginalBytes    int     `json:"original_bytes"`
	PurgedBytes      int     `json:"purged_bytes"`
	Reduction        int     `json:"reduction"` // Whole percent, as in the header
	ReductionPercent float64 `json:"reduction_percent"`
	Minified         bool    `json:"minified"`
}

// JSONScan contains content scanning statistics
type JSONScan struct {
	FilesScanned int `json:"files_scanned"`
	FilesSkipped int `json:"files_skipped"`
}

// JSONRules contains retention counts of top-level and media rules
type JSONRules struct {
	Kept    int `json:"kept"`
	Dropped int `json:"dropped"`
	Media   int `json:"media_blocks_kept"`
}

// JSONClasses contains class inventory statistics
type JSONClasses struct {
	Used    []string `json:"used"`
	Defined int      `json:"defined"`
	Kept    int      `json:"kept"`
}

// WriteJSON writes the run result as JSON
func WriteJSON(w io.Writer, result *Result) error {
	output := buildJSONOutput(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts Result to JSONOutput
func buildJSONOutput(result *Result) JSONOutput {
	timestamp := result.Generated
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	used := result.UsedClasses
	if used == nil {
		used = []string{}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: timestamp.UTC().Format(time.RFC3339),
		Mode:      string(result.Mode),
		Source:    result.SourcePath,
		Output:    result.OutputPath,
		MinOutput: result.MinSiblingPath,
		Size: JSONSize{
			OriginalBytes:    result.Size.OriginalBytes,
			PurgedBytes:      result.Size.PurgedBytes,
			Reduction:        result.Size.Reduction(),
			ReductionPercent: result.Size.ReductionExact(),
			Minified:         result.Minified,
		},
		Scan: JSONScan{
			FilesScanned: result.FilesScanned,
			FilesSkipped: result.FilesSkipped,
		},
		Rules: JSONRules{
			Kept:    result.RulesKept,
			Dropped: result.RulesDropped,
			Media:   result.MediaKept,
		},
		Classes: JSONClasses{
			Used:    used,
			Defined: result.ClassesDefined,
			Kept:    result.ClassesKept,
		},
	}
}
