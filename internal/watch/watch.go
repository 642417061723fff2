// Package watch monitors the beacon config file and re-runs generation when
// it changes. Editors save through temp-file renames, so the watch is placed
// on the containing directory and filtered down to the config path.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"llmsbeacon/internal/logging"
)

const defaultDebounce = 250 * time.Millisecond

// OnChange is invoked after a change to the config file has settled past the
// debounce window.
type OnChange func(ctx context.Context)

// ConfigWatcher watches a single config file for writes, creates and renames.
type ConfigWatcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	configPath  string
	onChange    OnChange
	debounceDur time.Duration
	pendingAt   time.Time
	pending     bool
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

// New creates a watcher for configPath. Start must be called to begin
// receiving events.
func New(configPath string, onChange OnChange) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		watcher.Close()
		return nil, err
	}
	return &ConfigWatcher{
		watcher:     watcher,
		configPath:  abs,
		onChange:    onChange,
		debounceDur: defaultDebounce,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// SetDebounce overrides the settle window. Only valid before Start.
func (cw *ConfigWatcher) SetDebounce(d time.Duration) {
	cw.debounceDur = d
}

// Start begins watching. Non-blocking; the event loop runs in a goroutine
// until Stop is called or ctx is cancelled.
func (cw *ConfigWatcher) Start(ctx context.Context) error {
	cw.mu.Lock()
	if cw.running {
		cw.mu.Unlock()
		return nil
	}
	cw.running = true
	cw.mu.Unlock()

	if err := cw.watcher.Add(filepath.Dir(cw.configPath)); err != nil {
		return err
	}
	logging.Watch("watching %s", cw.configPath)

	go cw.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (cw *ConfigWatcher) Stop() {
	cw.mu.Lock()
	if !cw.running {
		cw.mu.Unlock()
		return
	}
	cw.running = false
	cw.mu.Unlock()

	close(cw.stopCh)
	<-cw.doneCh

	if err := cw.watcher.Close(); err != nil {
		logging.Watch("close failed: %v", err)
	}
	logging.Watch("stopped")
}

func (cw *ConfigWatcher) run(ctx context.Context) {
	defer close(cw.doneCh)

	ticker := time.NewTicker(cw.debounceDur / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-cw.stopCh:
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			cw.handleEvent(event)

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			logging.Watch("watch error: %v", err)

		case <-ticker.C:
			cw.fireSettled(ctx)
		}
	}
}

func (cw *ConfigWatcher) handleEvent(event fsnotify.Event) {
	abs, err := filepath.Abs(event.Name)
	if err != nil || abs != cw.configPath {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	logging.Watch("change detected: %s (%s)", event.Name, event.Op)

	cw.mu.Lock()
	cw.pending = true
	cw.pendingAt = time.Now()
	cw.mu.Unlock()
}

func (cw *ConfigWatcher) fireSettled(ctx context.Context) {
	cw.mu.Lock()
	ready := cw.pending && time.Since(cw.pendingAt) >= cw.debounceDur
	if ready {
		cw.pending = false
	}
	cw.mu.Unlock()

	if ready && cw.onChange != nil {
		cw.onChange(ctx)
	}
}
