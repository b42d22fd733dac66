package purge

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Terminal styles. Lipgloss degrades colors based on terminal capabilities.
var (
	StylePath    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	StyleError   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	StyleDropped = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	StyleSuccess = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	StyleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderStyle applies a lipgloss style to text when colors are enabled
func RenderStyle(style lipgloss.Style, text string, useColors bool) string {
	if !useColors {
		return text
	}
	return style.Render(text)
}

// Summary describes one completed purge or copy run
type Summary struct {
	Mode           Mode
	SourcePath     string
	OutputPath     string
	MinSiblingPath string // Empty unless a .min.css sibling was written
	Generated      time.Time
	Size           SizeStats
	Minified       bool

	FilesScanned int
	FilesSkipped int // Excluded or gitignored
	ClassesUsed  int

	RulesKept    int
	RulesDropped int
	MediaKept    int

	ClassesDefined int // Class selectors in the source stylesheet
	ClassesKept    int // Class selectors left in the output
}

// Reporter prints run summaries for humans
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a reporter. Colors are used when forced or when the
// environment supports them.
func NewReporter(w io.Writer, forceColors bool) *Reporter {
	return &Reporter{w: w, useColors: ShouldUseColors(forceColors)}
}

// ShouldUseColors determines if colors should be enabled
func ShouldUseColors(force bool) bool {
	if force {
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" || os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}
	return false
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// PrintSummary writes the result of a run
func (r *Reporter) PrintSummary(s Summary) {
	verb := "Purged"
	if s.Mode == ModeCopied {
		verb = "Copied"
	}

	fmt.Fprintf(r.w, "✓ %s %s → %s\n", verb,
		RenderStyle(StylePath, s.SourcePath, r.useColors),
		RenderStyle(StylePath, s.OutputPath, r.useColors))

	if s.Mode != ModeCopied {
		fmt.Fprintf(r.w, "  Files scanned: %d", s.FilesScanned)
		if s.FilesSkipped > 0 {
			fmt.Fprint(r.w, RenderStyle(StyleMuted, fmt.Sprintf(" (skipped %d)", s.FilesSkipped), r.useColors))
		}
		fmt.Fprintln(r.w)
		fmt.Fprintf(r.w, "  Classes used:  %d\n", s.ClassesUsed)
		fmt.Fprintf(r.w, "  Rules kept:    %d %s\n", s.RulesKept,
			RenderStyle(StyleDropped, fmt.Sprintf("(%d dropped, %d media blocks kept)", s.RulesDropped, s.MediaKept), r.useColors))
		fmt.Fprintf(r.w, "  Classes kept:  %d of %d defined\n", s.ClassesKept, s.ClassesDefined)
	}
	if s.MinSiblingPath != "" {
		fmt.Fprintf(r.w, "  Minified copy: %s\n", RenderStyle(StylePath, s.MinSiblingPath, r.useColors))
	}

	if s.Mode == ModeCopied {
		return
	}

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, RenderStyle(StylePath, "Size Reduction", r.useColors))
	fmt.Fprintf(r.w, "Original:  %s\n", formatKB(s.Size.OriginalBytes))
	fmt.Fprintf(r.w, "Purged:    %s\n", formatKB(s.Size.PurgedBytes))
	fmt.Fprintln(r.w, RenderStyle(StyleSuccess, fmt.Sprintf("Reduction: %.2f%%", s.Size.ReductionExact()), r.useColors))
}

// PrintError writes a failed run's diagnostic
func (r *Reporter) PrintError(err error) {
	fmt.Fprintf(r.w, "%s %v\n", RenderStyle(StyleError, "✗ purge failed:", r.useColors), err)
}

// formatKB renders a byte count in kilobytes with two decimals
func formatKB(n int) string {
	return fmt.Sprintf("%.2f KB", float64(n)/1024)
}
