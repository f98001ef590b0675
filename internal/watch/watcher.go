// Package watch reports changes to the SQLite database file so reports can
// be rebuilt from a fresh snapshot.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce collapses the burst of writes one commit produces.
const DefaultDebounce = 250 * time.Millisecond

// DBWatcher watches a database file together with its WAL and shared-memory
// companions. SQLite rewrites those through the directory, so the directory
// is watched and events are filtered by name.
type DBWatcher struct {
	dir      string
	names    map[string]bool
	debounce time.Duration
	logger   *zap.Logger
}

// NewDBWatcher returns a watcher for dbPath. A non-positive debounce uses
// DefaultDebounce.
func NewDBWatcher(dbPath string, debounce time.Duration, logger *zap.Logger) *DBWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	base := filepath.Base(dbPath)
	return &DBWatcher{
		dir:      filepath.Dir(dbPath),
		names:    map[string]bool{base: true, base + "-wal": true, base + "-journal": true},
		debounce: debounce,
		logger:   logger.Named("watch"),
	}
}

// Run calls onChange once per quiet period after the database changes. It
// blocks until ctx is done or onChange fails, and returns nil on
// cancellation.
func (w *DBWatcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	w.logger.Debug("watching database directory", zap.String("dir", w.dir))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("database changed", zap.String("file", event.Name), zap.Stringer("op", event.Op))
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
			pending = true

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", zap.Error(err))

		case <-timer.C:
			pending = false
			if err := onChange(ctx); err != nil {
				return err
			}
		}
	}
}

func (w *DBWatcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	return w.names[filepath.Base(event.Name)]
}
