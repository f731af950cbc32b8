package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// watchedExtensions are the source file types whose changes trigger a
// rebuild. Everything else (PDF output, latexmk intermediates, editor
// droppings) is ignored so the daemon does not rebuild on its own artifacts.
var watchedExtensions = map[string]bool{
	".tex": true,
	".bib": true,
	".sty": true,
	".cls": true,
	".bst": true,
	".png": true,
	".pdf": false, // explicit: build output, never a trigger
	".eps": true,
	".csv": true,
}

// SourceWatcher monitors the paper source tree and reports relevant change
// events on its Changes channel. Debouncing is the caller's concern.
type SourceWatcher struct {
	watcher *fsnotify.Watcher
	changes chan string
}

// NewSourceWatcher watches dir and any extra directories named by the watch
// patterns. Directories are watched recursively one level deep via the
// pattern expansion; fsnotify itself is non-recursive.
func NewSourceWatcher(dir string, patterns []string) (*SourceWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	sw := &SourceWatcher{watcher: w, changes: make(chan string, 64)}

	dirs := map[string]bool{}
	abs, err := filepath.Abs(dir)
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("resolve watch directory: %w", err)
	}
	dirs[abs] = true

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			slog.Warn("Invalid watch pattern", "pattern", pattern, "error", err)
			continue
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil {
				continue
			}
			if info.IsDir() {
				if a, err := filepath.Abs(m); err == nil {
					dirs[a] = true
				}
			} else {
				if a, err := filepath.Abs(filepath.Dir(m)); err == nil {
					dirs[a] = true
				}
			}
		}
	}

	for d := range dirs {
		if err := w.Add(d); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("watch %s: %w", d, err)
		}
		slog.Debug("Watching directory", "dir", d)
	}

	return sw, nil
}

// Changes delivers paths of relevant source changes.
func (sw *SourceWatcher) Changes() <-chan string {
	return sw.changes
}

// WatchedDirs reports how many directories are under watch.
func (sw *SourceWatcher) WatchedDirs() int {
	return len(sw.watcher.WatchList())
}

// Run pumps fsnotify events until ctx is canceled.
func (sw *SourceWatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if !relevantEvent(event) {
				continue
			}
			slog.Debug("Source change detected", "file", event.Name, "op", event.Op.String())
			select {
			case sw.changes <- event.Name:
			default:
				// channel full; a rebuild is already inevitable
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Watcher error", "error", err)
		}
	}
}

// Close releases the underlying fsnotify watcher.
func (sw *SourceWatcher) Close() error {
	return sw.watcher.Close()
}

func relevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	return watchedExtensions[strings.ToLower(filepath.Ext(base))]
}
