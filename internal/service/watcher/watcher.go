package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/oshokin/fliptime/internal/logger"
)

// Change identifies which record changed on disk.
type Change int

const (
	// SettingsChanged means the settings record was rewritten.
	SettingsChanged Change = iota + 1
	// AlarmsChanged means the alarm list was rewritten.
	AlarmsChanged
)

// String names the change for logs.
func (c Change) String() string {
	switch c {
	case SettingsChanged:
		return "settings"
	case AlarmsChanged:
		return "alarms"
	default:
		return "unknown"
	}
}

// dirPermissions is used when the watched directory does not exist yet.
const dirPermissions = 0o700

// Watcher watches one directory for writes to a fixed set of files.
type Watcher struct {
	// dir is the watched directory.
	dir string
	// files maps base file names to the change they signal.
	files map[string]Change
}

// New creates a watcher over dir. files maps absolute or base file names to changes.
func New(dir string, files map[string]Change) *Watcher {
	byName := make(map[string]Change, len(files))
	for name, change := range files {
		byName[filepath.Base(name)] = change
	}

	return &Watcher{
		dir:   filepath.Clean(dir),
		files: byName,
	}
}

// Run blocks until ctx is canceled, calling notify for every relevant write.
// notify runs on the watcher goroutine and must hand work off quickly.
func (w *Watcher) Run(ctx context.Context, notify func(Change)) error {
	if err := os.MkdirAll(w.dir, dirPermissions); err != nil {
		return fmt.Errorf("create watched directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}

	defer func() {
		_ = fsw.Close()
	}()

	// Files are replaced by rename, so the directory is watched rather than the files.
	if err = fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	logger.DebugKV(ctx, "Watching data directory", "dir", w.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}

			if change, relevant := w.classify(event); relevant {
				logger.DebugKV(ctx, "Store changed on disk", "change", change.String(), "op", event.Op.String())
				notify(change)
			}
		case watchErr, ok := <-fsw.Errors:
			if !ok {
				return nil
			}

			logger.WarnKV(ctx, "File watcher error", "error", watchErr)
		}
	}
}

// classify maps an fsnotify event onto a Change.
func (w *Watcher) classify(event fsnotify.Event) (Change, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return 0, false
	}

	change, ok := w.files[filepath.Base(event.Name)]

	return change, ok
}
