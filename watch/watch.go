// Package watch re-runs a sync whenever a watched directory changes.
package watch

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher monitors a set of directories and calls the resync callback
// after changes, debounced so a burst of writes triggers one run.
type Watcher struct {
	// Debounce is the quiet period after the last event before resync
	// runs. Set before Start.
	Debounce time.Duration

	watcher *fsnotify.Watcher
	log     *zap.Logger
	resync  func() error

	mu      sync.Mutex
	running bool
	stopped bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a watcher over dirs. resync is called from the watch
// goroutine; its errors are logged, not fatal, so a broken intermediate
// state does not kill the watch.
func New(dirs []string, resync func() error, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	return &Watcher{
		Debounce: 500 * time.Millisecond,
		watcher:  watcher,
		log:      log,
		resync:   resync,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the watch loop runs until Stop
// or context cancellation. The watcher is single use: Start after Stop
// is a no-op.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running || w.stopped {
		return
	}
	w.running = true

	go w.run(ctx)
}

// Stop shuts the watcher down and waits for the loop to exit. Safe to
// call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	wasRunning := w.running
	w.running = false
	w.stopped = true
	w.mu.Unlock()

	if !wasRunning {
		return
	}

	close(w.stopCh)
	w.watcher.Close()
	<-w.doneCh
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	// the timer is armed by the first event
	timer := time.NewTimer(w.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}

			w.log.Debug("change detected",
				zap.String("path", event.Name),
				zap.String("op", event.Op.String()))

			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.Debounce)

		case <-timer.C:
			if err := w.resync(); err != nil {
				w.log.Warn("sync failed", zap.Error(err))
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))

		case <-w.stopCh:
			return

		case <-ctx.Done():
			return
		}
	}
}
