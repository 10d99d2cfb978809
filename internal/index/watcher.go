package index

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/doxnav/internal/docsite"
)

// Watcher event kinds passed to EventCallback.
const (
	EventFragmentChanged = "fragment.changed"
	EventFragmentRemoved = "fragment.removed"
	EventReloaded        = "navtree.reloaded"
)

// EventCallback is called after a watcher-driven change. For fragment events
// value is the file path relative to the docs root; for EventReloaded it is
// the new snapshot revision.
type EventCallback func(kind string, value string)

// reloadDelay debounces bursts of writes (Doxygen rewrites many files at once).
const reloadDelay = 200 * time.Millisecond

// Watch starts an fsnotify watcher on the site's docs root and reloads it
// when any .js file changes, until ctx is cancelled. After a successful
// reload the index is resynced and cb (if non-nil) is called.
//
// New directories created at runtime are automatically added to the watch
// list.
func Watch(ctx context.Context, db *DB, site *docsite.Site, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	docsRoot := site.Store().Root()
	if err := addDirsRecursive(w, docsRoot); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", docsRoot))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(reloadDelay)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(reloadDelay)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reloadCh:
			reloadAndSync(ctx, db, site, logger, cb)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			absPath := ev.Name

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(absPath); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, absPath); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", absPath),
							slog.String("error", addErr.Error()))
					} else {
						logger.Debug("watcher: watching new dir", slog.String("path", absPath))
					}
					scheduleReload()
					continue
				}
			}

			if !strings.HasSuffix(absPath, ".js") {
				continue
			}
			rel, relErr := filepath.Rel(docsRoot, absPath)
			if relErr != nil {
				continue
			}
			rel = filepath.ToSlash(rel)

			kind := EventFragmentChanged
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				kind = EventFragmentRemoved
			} else if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			logger.Debug("watcher: fragment event", slog.String("path", rel), slog.String("op", kind))
			if cb != nil {
				cb(kind, rel)
			}
			scheduleReload()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// reloadAndSync loads a fresh snapshot and resyncs the index. A failed reload
// keeps the previous snapshot active.
func reloadAndSync(ctx context.Context, db *DB, site *docsite.Site, logger *slog.Logger, cb EventCallback) {
	snap, err := site.Reload(ctx)
	if err != nil {
		logger.Warn("watcher: reload failed", slog.String("error", err.Error()))
		return
	}
	if err := Sync(ctx, db, site, logger); err != nil {
		logger.Warn("watcher: sync failed", slog.String("error", err.Error()))
	}
	if cb != nil {
		cb(EventReloaded, snap.Revision)
	}
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
