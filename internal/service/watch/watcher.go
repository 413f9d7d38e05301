// Package watch invalidates the snapshot cache when a corpus file
// changes on disk.
package watch

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Invalidator drops a cached snapshot.
type Invalidator interface {
	Invalidate()
}

// Notifier tells connected dashboard clients that the snapshot changed.
type Notifier interface {
	Broadcast(event string)
}

// WatcherConfig contains configuration for the dataset watcher.
type WatcherConfig struct {
	// Dir is the dataset directory to watch.
	Dir string

	// Files are the corpus file names inside Dir that matter; events
	// on other files are ignored.
	Files []string

	// Debounce collapses bursts of write events into one invalidation.
	Debounce time.Duration
}

// Watcher watches the dataset directory and invalidates the snapshot
// cache when a corpus file is written, created, renamed or removed.
type Watcher struct {
	config      WatcherConfig
	invalidator Invalidator
	notifier    Notifier

	watched map[string]struct{}
	fsw     *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewWatcher creates a new dataset watcher.
func NewWatcher(config WatcherConfig, invalidator Invalidator, notifier Notifier) *Watcher {
	if config.Debounce <= 0 {
		config.Debounce = 500 * time.Millisecond
	}

	watched := make(map[string]struct{}, len(config.Files))
	for _, name := range config.Files {
		watched[filepath.Join(config.Dir, name)] = struct{}{}
	}

	return &Watcher{
		config:      config,
		invalidator: invalidator,
		notifier:    notifier,
		watched:     watched,
	}
}

// Start begins watching. The directory is watched rather than the
// individual files so atomic replaces (write temp + rename) are seen.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(w.config.Dir); err != nil {
		fsw.Close()
		return err
	}
	w.fsw = fsw

	ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go w.run(ctx)

	log.Printf("Watching dataset directory %s", w.config.Dir)
	return nil
}

// Stop stops watching and waits for the event loop to exit.
func (w *Watcher) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.cancel()
	}
	if w.fsw != nil {
		w.fsw.Close()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer w.wg.Done()

	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			// Editors and atomic replaces emit event bursts; collapse
			// them into a single invalidation.
			if timer == nil {
				timer = time.NewTimer(w.config.Debounce)
				pending = timer.C
			} else {
				timer.Reset(w.config.Debounce)
			}

		case <-pending:
			timer = nil
			pending = nil
			log.Printf("Dataset changed, invalidating snapshot")
			w.invalidator.Invalidate()
			if w.notifier != nil {
				w.notifier.Broadcast("snapshot_invalidated")
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("Dataset watcher error: %v", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	_, ok := w.watched[filepath.Clean(event.Name)]
	return ok
}
