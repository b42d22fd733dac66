package nubepurge

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/nube-system/nubepurge/internal/purge"
)

// Defaults used when the corresponding Config field is empty
const (
	DefaultContentDir = "src"
	DefaultSourcePath = "styles/system.css"
)

// DefaultExtensions are the project file types scanned for class usage
var DefaultExtensions = []string{
	".astro",
	".jsx",
	".js",
	".ts",
	".tsx",
	".vue",
	".svelte",
	".html",
}

// excludedDirs are never scanned or watched: dependency trees and the
// library's installed copy.
var excludedDirs = []string{
	"node_modules",
	"nube-system",
	".git",
}

// Config holds purge configuration
type Config struct {
	ContentDir string   // "src"
	SourcePath string   // "styles/system.css"
	OutputPath string   // "" means "<source>.purged.css" next to the source
	Extensions []string // [".astro", ".tsx"]

	Minify     bool // Compact the purged body
	MinSibling bool // Also write <output>.min.css
	Gitignore  bool // Skip content files matched by <content>/.gitignore

	Safelist purge.Safelist

	Logger *slog.Logger     // Debug logging of pipeline stages (nil = discard)
	Now    func() time.Time // Header timestamp source (nil = time.Now)
}

// DefaultOutputPath derives the sibling "purged" file name:
// styles/system.css -> styles/system.purged.css
func DefaultOutputPath(sourcePath string) string {
	ext := filepath.Ext(sourcePath)
	return strings.TrimSuffix(sourcePath, ext) + ".purged" + ext
}

// MinSiblingPath derives the minified sibling of an output file:
// styles/system.purged.css -> styles/system.purged.min.css
func MinSiblingPath(outputPath string) string {
	ext := filepath.Ext(outputPath)
	return strings.TrimSuffix(outputPath, ext) + ".min" + ext
}

// withDefaults fills empty fields
func (c Config) withDefaults() Config {
	if c.ContentDir == "" {
		c.ContentDir = DefaultContentDir
	}
	if c.SourcePath == "" {
		c.SourcePath = DefaultSourcePath
	}
	if c.OutputPath == "" {
		c.OutputPath = DefaultOutputPath(c.SourcePath)
	}
	if len(c.Extensions) == 0 {
		c.Extensions = DefaultExtensions
	}
	c.Extensions = normalizeExtensions(c.Extensions)
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// normalizeExtensions ensures a leading dot and drops blanks and duplicates
func normalizeExtensions(exts []string) []string {
	seen := make(map[string]bool, len(exts))
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !seen[ext] {
			seen[ext] = true
			out = append(out, ext)
		}
	}
	return out
}
