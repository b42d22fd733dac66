package nubepurge

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last change before a re-run
const DefaultDebounce = 200 * time.Millisecond

// WatchOptions configures Watch
type WatchOptions struct {
	Debounce time.Duration // Quiet period before re-running (0 = DefaultDebounce)

	// OnResult receives the outcome of every run, including the initial one.
	// Runs never overlap, so it is not called concurrently.
	OnResult func(*Result, error)
}

// Watch purges once, then re-purges after every burst of changes to the
// stylesheet or to project files under the content root, until ctx is done.
// Changes to the generated artifacts themselves are ignored.
func Watch(ctx context.Context, config Config, opts WatchOptions) error {
	config = config.withDefaults()
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	report := opts.OnResult
	if report == nil {
		report = func(*Result, error) {}
	}

	if _, err := openContentRoot(config.ContentDir); err != nil {
		return err
	}
	s, err := newWatchSession(config)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: starting watcher: %w", ErrUnexpected, err)
	}
	defer watcher.Close()

	if err := s.addRecursive(watcher, s.contentRoot); err != nil {
		return err
	}
	// The directory, not the file: editors often replace files by rename
	if err := watcher.Add(filepath.Dir(s.source)); err != nil {
		return fmt.Errorf("%w: watching %s: %w", ErrMissingInput, filepath.Dir(s.source), err)
	}

	log := config.Logger
	run := func() {
		result, err := Purge(ctx, config)
		if ctx.Err() != nil {
			return
		}
		report(result, err)
	}

	run()

	timer := time.NewTimer(opts.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := s.addRecursive(watcher, event.Name); err != nil {
						log.Warn("watching new directory", "path", event.Name, "err", err)
					}
				}
			}
			if !s.relevant(event.Name) {
				continue
			}
			log.Debug("change detected", "path", event.Name, "op", event.Op.String())
			timer.Reset(opts.Debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "err", err)

		case <-timer.C:
			run()
		}
	}
}

// watchSession holds the absolute paths a watch run filters events against
type watchSession struct {
	contentRoot string
	source      string
	ignored     []string // Generated artifacts
	extensions  []string
}

func newWatchSession(config Config) (*watchSession, error) {
	abs := func(p string) (string, error) {
		a, err := filepath.Abs(p)
		if err != nil {
			return "", fmt.Errorf("%w: resolving %s: %w", ErrUnexpected, p, err)
		}
		return a, nil
	}

	root, err := abs(config.ContentDir)
	if err != nil {
		return nil, err
	}
	source, err := abs(config.SourcePath)
	if err != nil {
		return nil, err
	}
	output, err := abs(config.OutputPath)
	if err != nil {
		return nil, err
	}

	return &watchSession{
		contentRoot: root,
		source:      source,
		ignored:     []string{output, MinSiblingPath(output)},
		extensions:  config.Extensions,
	}, nil
}

// relevant reports whether a change to path should trigger a re-run
func (s *watchSession) relevant(path string) bool {
	path = filepath.Clean(path)
	if slices.Contains(s.ignored, path) || isTempArtifact(filepath.Base(path)) {
		return false
	}
	if path == s.source {
		return true
	}

	rel, err := filepath.Rel(s.contentRoot, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	rel = filepath.ToSlash(rel)
	if shouldSkipFile(rel, nil) {
		return false
	}
	if rel == ".gitignore" {
		return true
	}
	// A created directory may already hold files
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return true
	}
	return slices.Contains(s.extensions, filepath.Ext(path))
}

// addRecursive watches root and every directory below it that is not excluded
func (s *watchSession) addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: walking %s: %w", ErrMissingInput, path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if path != s.contentRoot && slices.Contains(excludedDirs, d.Name()) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("%w: watching %s: %w", ErrUnexpected, path, err)
		}
		return nil
	})
}
