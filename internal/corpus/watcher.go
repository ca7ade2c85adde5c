package corpus

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ReloadFunc is invoked with a freshly loaded knowledge base snapshot.
// Implementations swap the snapshot atomically; in-flight requests keep
// the snapshot they started with.
type ReloadFunc func(kb *KnowledgeBase)

// Watcher reloads the corpus when its file changes on disk.
type Watcher struct {
	watcher  *fsnotify.Watcher
	loader   *Loader
	path     string
	onReload ReloadFunc
	logger   *zap.Logger

	// debounce coalesces editor write bursts into one reload.
	debounce time.Duration
}

// NewWatcher creates a corpus file watcher for path. The parent directory
// is watched so replace-by-rename (the common atomic-save pattern) is seen.
func NewWatcher(loader *Loader, path string, onReload ReloadFunc, logger *zap.Logger) (*Watcher, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if onReload == nil {
		return nil, fmt.Errorf("reload callback is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching corpus directory: %w", err)
	}

	return &Watcher{
		watcher:  fw,
		loader:   loader,
		path:     path,
		onReload: onReload,
		logger:   logger,
		debounce: 500 * time.Millisecond,
	}, nil
}

// Run blocks, reloading the corpus on writes until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("corpus watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	result, err := w.loader.LoadFile(w.path)
	if err != nil {
		w.logger.Warn("corpus reload failed, keeping previous snapshot",
			zap.String("path", w.path),
			zap.Error(err))
		return
	}

	w.logger.Info("corpus reloaded",
		zap.String("path", w.path),
		zap.Int("entries", result.KnowledgeBase.Len()),
		zap.Int("skipped_lines", result.SkippedLines))
	w.onReload(result.KnowledgeBase)
}
