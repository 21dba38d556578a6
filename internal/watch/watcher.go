package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/adeptcoder014/devstrap/internal/ctxlog"
	"github.com/adeptcoder014/devstrap/internal/fsutil"
)

// Config controls what the watcher reacts to.
type Config struct {
	// Paths are the roots watched recursively.
	Paths []string
	// Extensions limits events to files with one of these suffixes. Empty
	// means every file counts.
	Extensions []string
	// Ignore lists directory names skipped entirely.
	Ignore []string
	// Debounce is the quiet window that coalesces a burst of events into a
	// single change notification.
	Debounce time.Duration
}

// Watcher turns raw filesystem notifications into debounced change events.
type Watcher struct {
	cfg    Config
	fs     *fsnotify.Watcher
	events chan string
}

// New creates a Watcher and registers every directory under the configured
// paths with the underlying fsnotify watcher.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	w := &Watcher{
		cfg:    cfg,
		fs:     fsw,
		events: make(chan string, 1),
	}

	for _, root := range cfg.Paths {
		dirs, err := fsutil.FindDirs(root, cfg.Ignore)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("walk watch path %s: %w", root, err)
		}
		for _, dir := range dirs {
			if err := fsw.Add(dir); err != nil {
				fsw.Close()
				return nil, fmt.Errorf("watch directory %s: %w", dir, err)
			}
		}
	}

	return w, nil
}

// Events returns the channel on which debounced change events are emitted.
// Each event carries the path that last changed.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Run processes filesystem notifications until the context is cancelled.
// Newly created directories are added to the watch set so files appearing in
// them trigger reloads too.
func (w *Watcher) Run(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	defer w.fs.Close()

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending string
	)

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}

			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() && !w.ignored(ev.Name) {
					if err := w.fs.Add(ev.Name); err != nil {
						logger.Warn("Failed to watch new directory.", "dir", ev.Name, "error", err)
					}
				}
			}

			if !w.relevant(ev) {
				continue
			}

			pending = ev.Name
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.cfg.Debounce)
			timerC = timer.C

		case <-timerC:
			timer, timerC = nil, nil
			logger.Debug("Source change detected.", "path", pending)
			select {
			case w.events <- pending:
			case <-ctx.Done():
				return
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn("File watcher error.", "error", err)
		}
	}
}

// relevant reports whether a raw event should count as a source change.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) &&
		!ev.Op.Has(fsnotify.Remove) && !ev.Op.Has(fsnotify.Rename) {
		return false
	}
	if w.ignored(ev.Name) {
		return false
	}
	return w.matchesExtension(ev.Name)
}

func (w *Watcher) matchesExtension(path string) bool {
	if len(w.cfg.Extensions) == 0 {
		return true
	}
	for _, ext := range w.cfg.Extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// ignored reports whether any path segment matches an ignored name.
func (w *Watcher) ignored(path string) bool {
	if len(w.cfg.Ignore) == 0 {
		return false
	}

	ignored := make(map[string]struct{}, len(w.cfg.Ignore))
	for _, name := range w.cfg.Ignore {
		ignored[filepath.Base(filepath.Clean(name))] = struct{}{}
	}

	for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
		if _, skip := ignored[segment]; skip {
			return true
		}
	}
	return false
}
