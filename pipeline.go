package nubepurge

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nube-system/nubepurge/internal/purge"
)

// Result describes a completed run
type Result struct {
	purge.Summary
	UsedClasses []string // Sorted class tokens found in project files
}

// Purge is the main entry point: it drops every rule of the source
// stylesheet whose selector is not referenced by the project files under
// the content root, and writes the remainder behind a generated header.
//
// Nothing is written unless every stage succeeds.
func Purge(ctx context.Context, config Config) (*Result, error) {
	config = config.withDefaults()
	log := config.Logger

	// 1. Read stylesheet
	original, err := readStylesheet(config.SourcePath)
	if err != nil {
		return nil, err
	}
	log.Debug("read stylesheet", "path", config.SourcePath, "bytes", len(original))

	// 2. Scan project files into one usage snapshot
	contentFS, err := openContentRoot(config.ContentDir)
	if err != nil {
		return nil, err
	}
	usage, scan, err := ScanContent(ctx, contentFS, config.Extensions, config.Gitignore)
	if err != nil {
		return nil, err
	}
	log.Debug("scanned content",
		"root", config.ContentDir,
		"discovered", scan.FilesDiscovered,
		"scanned", scan.FilesScanned,
		"skipped", scan.FilesSkipped,
		"classes", len(usage.Classes))

	// 3. Tokenize
	constructs := purge.Tokenize(original)
	if len(constructs) == 0 {
		return nil, fmt.Errorf("%w: no complete rule in %s", ErrEmptyResult, config.SourcePath)
	}
	log.Debug("tokenized stylesheet", "constructs", len(constructs), "kinds", kindCounts(constructs))

	// 4. Filter against usage
	kept, filtered := purge.Filter(constructs, usage, purge.Options{Safelist: config.Safelist})
	body := purge.Join(kept)
	log.Debug("filtered constructs", "kept", filtered.Kept, "dropped", filtered.Dropped, "media", filtered.Media)

	// 5. Minify
	if config.Minify {
		body = purge.Minify(body)
	}

	// 6. Header and artifacts
	generated := config.Now()
	size := purge.NewSizeStats(original, body)
	header := purge.Header(purge.HeaderInfo{
		Source:    filepath.Base(config.SourcePath),
		Mode:      purge.ModePurged,
		Generated: generated,
		Stats:     size,
	})

	files := []pendingFile{{Path: config.OutputPath, Content: purge.Assemble(header, body)}}
	minSibling := ""
	if config.MinSibling {
		minified, err := minifyCSS(body)
		if err != nil {
			return nil, err
		}
		minSibling = MinSiblingPath(config.OutputPath)
		files = append(files, pendingFile{Path: minSibling, Content: purge.Assemble(header, minified)})
	}

	// 7. Write
	if err := writeFiles(files); err != nil {
		return nil, err
	}
	log.Debug("wrote output", "path", config.OutputPath, "bytes", size.PurgedBytes, "reduction", size.Reduction())

	return &Result{
		Summary: purge.Summary{
			Mode:           purge.ModePurged,
			SourcePath:     config.SourcePath,
			OutputPath:     config.OutputPath,
			MinSiblingPath: minSibling,
			Generated:      generated,
			Size:           size,
			Minified:       config.Minify,
			FilesScanned:   scan.FilesScanned,
			FilesSkipped:   scan.FilesSkipped,
			ClassesUsed:    len(usage.Classes),
			RulesKept:      filtered.Kept,
			RulesDropped:   filtered.Dropped,
			MediaKept:      filtered.Media,
			ClassesDefined: len(purge.Inventory(original)),
			ClassesKept:    len(purge.Inventory(body)),
		},
		UsedClasses: usage.SortedClasses(),
	}, nil
}

// readStylesheet loads the source stylesheet. A blank file is an empty result.
func readStylesheet(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: stylesheet %s: %w", ErrMissingInput, path, err)
		}
		return "", fmt.Errorf("%w: reading stylesheet %s: %w", ErrMissingInput, path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("%w: stylesheet %s is blank", ErrEmptyResult, path)
	}
	return string(data), nil
}

// openContentRoot checks the scan root exists and is a directory
func openContentRoot(dir string) (fs.FS, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: content root %s: %w", ErrMissingInput, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: content root %s is not a directory", ErrMissingInput, dir)
	}
	return os.DirFS(dir), nil
}

// kindCounts tallies constructs by kind for debug logging
func kindCounts(constructs []purge.Construct) map[string]int {
	counts := make(map[string]int)
	for _, c := range constructs {
		counts[c.Kind.String()]++
	}
	return counts
}
