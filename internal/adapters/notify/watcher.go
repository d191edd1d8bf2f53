package notify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileWatcher signals on Changes whenever the watched file is created,
// written, renamed or removed. Signals raised before the consumer catches up
// collapse into one.
type FileWatcher struct {
	path   string
	logger *zap.Logger

	changes chan struct{}
	stopCh  chan struct{}
	wg      sync.WaitGroup

	mu        sync.Mutex
	watcher   *fsnotify.Watcher
	closeOnce sync.Once
}

func NewFileWatcher(path string, logger *zap.Logger) *FileWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FileWatcher{
		path:    filepath.Clean(path),
		logger:  logger,
		changes: make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
	}
}

func (w *FileWatcher) Changes() <-chan struct{} {
	return w.changes
}

// Start watches the file's parent directory so replacements by rename are
// seen. The directory is created when missing.
func (w *FileWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher != nil {
		return nil
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create watched directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.watcher = watcher

	w.wg.Add(1)
	go w.loop(ctx, watcher)

	w.logger.Info("watching configuration", zap.String("path", w.path))
	return nil
}

func (w *FileWatcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()

		w.mu.Lock()
		defer w.mu.Unlock()
		if w.watcher != nil {
			err = w.watcher.Close()
		}
	})

	return err
}

func (w *FileWatcher) loop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.logger.Warn("file watcher overflow, assuming change")
				w.signal()
				continue
			}
			w.logger.Warn("file watcher error", zap.Error(err))
		}
	}
}

func (w *FileWatcher) handle(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}

	w.logger.Debug("configuration changed", zap.String("op", event.Op.String()))
	w.signal()
}

func (w *FileWatcher) signal() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}
