package content

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/folio/internal/storage"
)

const debounce = 200 * time.Millisecond

// SyncCallback is called after every watcher-driven sync pass.
type SyncCallback func(Stats)

// Watch starts an fsnotify watcher on root and re-syncs, debounced, whenever
// a content file changes. It runs until ctx is cancelled.
//
// New directories created at runtime are added to the watch list.
func (s *Syncer) Watch(ctx context.Context, root string, cb SyncCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, root); err != nil {
		return err
	}

	s.logger.Info("watcher: started", slog.String("root", root))

	var timer *time.Timer
	var timerCh <-chan time.Time
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerCh = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			s.logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			st, err := s.Sync(ctx)
			if err != nil {
				s.logger.Warn("watcher: sync failed", slog.String("error", err.Error()))
				continue
			}
			s.logger.Debug("watcher: synced",
				slog.Int("files", st.Files),
				slog.Int("projects", st.Projects),
				slog.Int("certificates", st.Certificates))
			if cb != nil {
				cb(st)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
						s.logger.Warn("watcher: add new dir failed",
							slog.String("path", ev.Name),
							slog.String("error", addErr.Error()))
					}
					schedule()
					continue
				}
			}
			if storage.IsContentFile(ev.Name) {
				schedule()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
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
