package nubepurge

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/nube-system/nubepurge/internal/purge"
)

// Copy writes the complete source stylesheet behind a "Last copied" header,
// for projects that ship every utility class. Content is not scanned.
func Copy(ctx context.Context, config Config) (*Result, error) {
	config = config.withDefaults()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: copy interrupted: %w", ErrUnexpected, err)
	}

	original, err := readStylesheet(config.SourcePath)
	if err != nil {
		return nil, err
	}

	generated := config.Now()
	size := purge.NewSizeStats(original, original)
	header := purge.Header(purge.HeaderInfo{
		Source:    filepath.Base(config.SourcePath),
		Mode:      purge.ModeCopied,
		Generated: generated,
		Stats:     size,
	})

	files := []pendingFile{{Path: config.OutputPath, Content: purge.Assemble(header, original)}}
	minSibling := ""
	if config.MinSibling {
		minified, err := minifyCSS(original)
		if err != nil {
			return nil, err
		}
		minSibling = MinSiblingPath(config.OutputPath)
		files = append(files, pendingFile{Path: minSibling, Content: purge.Assemble(header, minified)})
	}

	if err := writeFiles(files); err != nil {
		return nil, err
	}
	config.Logger.Debug("copied stylesheet", "from", config.SourcePath, "to", config.OutputPath, "bytes", len(original))

	defined := len(purge.Inventory(original))
	return &Result{
		Summary: purge.Summary{
			Mode:           purge.ModeCopied,
			SourcePath:     config.SourcePath,
			OutputPath:     config.OutputPath,
			MinSiblingPath: minSibling,
			Generated:      generated,
			Size:           size,
			ClassesDefined: defined,
			ClassesKept:    defined,
		},
	}, nil
}
