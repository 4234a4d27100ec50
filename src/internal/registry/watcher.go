// FILE: src/internal/registry/watcher.go
package registry

import (
	"context"
	"fmt"
	"time"

	"logmux/src/internal/config"

	"github.com/fsnotify/fsnotify"
	"github.com/lixenwraith/log"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher reloads a dispatch configuration snapshot from disk whenever
// the file changes and applies it to a hub. Events are debounced because
// editors and atomic-rename writers emit bursts of write/create events
// for one logical save. A snapshot that fails validation is discarded
// and the hub keeps its current configuration.
type Watcher struct {
	path     string
	hub      *Hub
	debounce time.Duration

	watcher *fsnotify.Watcher
	logger  *log.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewWatcher creates a config file watcher bound to a hub.
func NewWatcher(path string, hub *Hub, logger *log.Logger) *Watcher {
	if logger == nil {
		logger = log.NewLogger()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		path:     path,
		hub:      hub,
		debounce: defaultDebounce,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins watching. The file must exist.
func (w *Watcher) Start() error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(w.path); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}
	w.watcher = fw

	w.logger.Info("msg", "Config watcher started",
		"component", "registry",
		"path", w.path)

	go w.run()
	return nil
}

// Stop halts the watch loop and closes the underlying watcher.
func (w *Watcher) Stop() error {
	w.cancel()
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

func (w *Watcher) run() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if timer != nil {
					timer.Stop()
				}
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			}

		case <-timerC:
			timerC = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("msg", "Config watcher error",
				"component", "registry",
				"error", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := config.LoadSnapshot(w.path)
	if err != nil {
		w.logger.Warn("msg", "Config reload failed, keeping current configuration",
			"component", "registry",
			"path", w.path,
			"error", err)
		return
	}

	if w.hub.UpdateConfiguration(cfg) {
		w.logger.Info("msg", "Config reloaded from file",
			"component", "registry",
			"path", w.path)
	}
}
