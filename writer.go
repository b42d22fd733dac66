package nubepurge

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
)

// pendingFile is an artifact computed in memory, waiting to be written
type pendingFile struct {
	Path    string
	Content string
}

// stagedFile is an artifact written to a temp file next to its target
type stagedFile struct {
	path     string
	tmp      string
	previous []byte // Target contents before this run
	existed  bool
}

// writeFiles writes every artifact to a temp file first and renames them
// into place only once all of them are on disk. The first artifact is
// renamed last; if any rename fails, targets already replaced are restored,
// so a failed run leaves every target as it was.
func writeFiles(files []pendingFile) error {
	staged := make([]stagedFile, 0, len(files))
	defer func() {
		for _, s := range staged {
			os.Remove(s.tmp) // no-op after a successful rename
		}
	}()

	for _, f := range files {
		s, err := stageFile(f.Path, f.Content)
		if err != nil {
			return err
		}
		staged = append(staged, s)
	}

	for i := len(staged) - 1; i >= 0; i-- {
		s := staged[i]
		if err := os.Rename(s.tmp, s.path); err != nil {
			restore(staged[i+1:])
			return fmt.Errorf("%w: replacing %s: %w", ErrWriteFailure, s.path, err)
		}
	}
	return nil
}

// stageFile writes content to a temp file in the target directory
func stageFile(path, content string) (stagedFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return stagedFile{}, fmt.Errorf("%w: creating %s: %w", ErrWriteFailure, dir, err)
	}

	s := stagedFile{path: path}
	if previous, err := os.ReadFile(path); err == nil {
		s.previous, s.existed = previous, true
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return stagedFile{}, fmt.Errorf("%w: creating temp file in %s: %w", ErrWriteFailure, dir, err)
	}
	s.tmp = tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(s.tmp)
		return stagedFile{}, fmt.Errorf("%w: writing %s: %w", ErrWriteFailure, path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(s.tmp)
		return stagedFile{}, fmt.Errorf("%w: writing %s: %w", ErrWriteFailure, path, err)
	}
	if err := os.Chmod(s.tmp, 0o644); err != nil {
		os.Remove(s.tmp)
		return stagedFile{}, fmt.Errorf("%w: chmod %s: %w", ErrWriteFailure, path, err)
	}
	return s, nil
}

// restore puts back what replaced targets held before the run. Best effort:
// the rename error is what gets reported.
func restore(replaced []stagedFile) {
	for _, s := range replaced {
		if s.existed {
			_ = os.WriteFile(s.path, s.previous, 0o644)
			continue
		}
		_ = os.Remove(s.path)
	}
}

// isTempArtifact reports whether name is one of stageFile's temp files
func isTempArtifact(name string) bool {
	return strings.HasPrefix(name, ".") && strings.HasSuffix(name, ".tmp")
}

var minifier = minify.New()

// minifyCSS produces the compact sibling body with a full CSS minifier
func minifyCSS(body string) (string, error) {
	var buf bytes.Buffer
	if err := css.Minify(minifier, &buf, strings.NewReader(body), nil); err != nil {
		return "", fmt.Errorf("%w: minifying stylesheet: %w", ErrUnexpected, err)
	}
	return buf.String(), nil
}
