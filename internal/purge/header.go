package purge

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Mode names the operation recorded in a generated header
type Mode string

// Header modes
const (
	ModePurged Mode = "purged"
	ModeCopied Mode = "copied"
)

// SizeStats describes the effect of a purge on byte length
type SizeStats struct {
	OriginalBytes int
	PurgedBytes   int
}

// NewSizeStats creates SizeStats from the original and resulting text
func NewSizeStats(original, purged string) SizeStats {
	return SizeStats{OriginalBytes: len(original), PurgedBytes: len(purged)}
}

// Reduction returns the size reduction in whole percent, rounded half away
// from zero. An empty original reports 0.
func (s SizeStats) Reduction() int {
	if s.OriginalBytes == 0 {
		return 0
	}
	return int(math.Round((1 - float64(s.PurgedBytes)/float64(s.OriginalBytes)) * 100))
}

// ReductionExact returns the reduction with two decimals, as printed in the summary
func (s SizeStats) ReductionExact() float64 {
	if s.OriginalBytes == 0 {
		return 0
	}
	pct := (1 - float64(s.PurgedBytes)/float64(s.OriginalBytes)) * 100
	return math.Round(pct*100) / 100
}

// HeaderInfo is the content of a generated header comment
type HeaderInfo struct {
	Source    string // Base name of the source stylesheet: "system.css"
	Mode      Mode
	Generated time.Time
	Stats     SizeStats
}

// Header renders the generated-file comment placed above the output body
func Header(info HeaderInfo) string {
	var b strings.Builder

	b.WriteString("/*\n")
	fmt.Fprintf(&b, "This file is automatically generated from %s\n", info.Source)
	b.WriteString("DO NOT EDIT DIRECTLY - regenerate it with nubepurge\n")

	switch info.Mode {
	case ModeCopied:
		fmt.Fprintf(&b, "Last copied: %s\n", info.Generated.UTC().Format(time.RFC3339))
		fmt.Fprintf(&b, "Original size: %d bytes\n", info.Stats.OriginalBytes)
	default:
		fmt.Fprintf(&b, "Last purged: %s\n", info.Generated.UTC().Format(time.RFC3339))
		fmt.Fprintf(&b, "Original size: %d bytes\n", info.Stats.OriginalBytes)
		fmt.Fprintf(&b, "Purged size: %d bytes\n", info.Stats.PurgedBytes)
		fmt.Fprintf(&b, "Reduction: %d%%\n", info.Stats.Reduction())
	}

	b.WriteString("*/")
	return b.String()
}

// Assemble joins a header and a body the way generated files are laid out
func Assemble(header, body string) string {
	return header + "\n\n" + body
}
