package nubepurge

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/nube-system/nubepurge/internal/purge"
)

// ScanStats tracks content scanning statistics
type ScanStats struct {
	FilesDiscovered int // Files matching an extension
	FilesScanned    int // Files actually read
	FilesSkipped    int // Excluded or gitignored
}

// ScanContent finds project files under fsys with one of the given
// extensions and folds their class usage into a single snapshot.
// A file that cannot be read aborts the scan.
func ScanContent(ctx context.Context, fsys fs.FS, extensions []string, respectGitignore bool) (purge.UsageSet, ScanStats, error) {
	var gi *ignore.GitIgnore
	if respectGitignore {
		gi = loadGitIgnore(fsys)
	}

	files, stats, err := discoverFiles(fsys, normalizeExtensions(extensions), gi)
	if err != nil {
		return purge.UsageSet{}, stats, err
	}

	acc := purge.NewUsageAccumulator()
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return purge.UsageSet{}, stats, fmt.Errorf("%w: scan interrupted: %w", ErrUnexpected, err)
		}

		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return purge.UsageSet{}, stats, fmt.Errorf("%w: reading %s: %w", ErrMissingInput, file, err)
		}
		acc.Add(string(data))
		stats.FilesScanned++
	}

	return acc.Snapshot(), stats, nil
}

// discoverFiles expands one **/*<ext> pattern per extension, deduplicates,
// and applies the exclusion and gitignore layers. Paths are slash-separated
// and relative to the root of fsys, in lexical order.
func discoverFiles(fsys fs.FS, extensions []string, gi *ignore.GitIgnore) ([]string, ScanStats, error) {
	var stats ScanStats
	seen := make(map[string]bool)
	var files []string

	for _, ext := range extensions {
		pattern := "**/*" + ext
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
		if err != nil {
			if errors.Is(err, doublestar.ErrBadPattern) {
				return nil, stats, fmt.Errorf("%w: extension %q: %w", ErrUnexpected, ext, err)
			}
			return nil, stats, fmt.Errorf("%w: scanning for %s files: %w", ErrMissingInput, ext, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			stats.FilesDiscovered++

			if shouldSkipFile(match, gi) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
		}
	}

	sort.Strings(files)
	return files, stats, nil
}

// shouldSkipFile determines if a content file should be excluded.
//
// Two layers:
// 1. Fixed exclusions: dependency trees and the installed library copy
// 2. Gitignore (only when enabled)
func shouldSkipFile(path string, gi *ignore.GitIgnore) bool {
	for _, dir := range excludedDirs {
		if ok, _ := doublestar.Match("**/"+dir+"/**", path); ok {
			return true
		}
	}
	return gi != nil && gi.MatchesPath(path)
}

// loadGitIgnore compiles the .gitignore at the root of fsys.
// Gracefully degrades to nil if there is none.
func loadGitIgnore(fsys fs.FS) *ignore.GitIgnore {
	data, err := fs.ReadFile(fsys, ".gitignore")
	if err != nil {
		return nil
	}
	return ignore.CompileIgnoreLines(strings.Split(string(data), "\n")...)
}
