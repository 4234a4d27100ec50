// FILE: src/internal/registry/default.go
package registry

import (
	"sync"

	"logmux/src/internal/config"
)

var (
	defaultHub *Hub
	defaultMu  sync.Mutex
)

// Default returns the process-wide hub, creating it lazily with default
// configuration. Applications that want explicit wiring construct their
// own Hub and ignore this one.
func Default() *Hub {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultHub == nil {
		defaultHub = NewHub(nil, nil)
	}
	return defaultHub
}

// SetDefault installs a hub as the process-wide default. Call before the
// first Default() use; a later call still swaps the hub but proxies
// already handed out by the previous default keep pointing at it.
func SetDefault(h *Hub) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultHub = h
}

// GetLogger returns a module logger from the default hub.
func GetLogger(module string) *Logger {
	return Default().GetLogger(module)
}

// Configure applies a configuration snapshot to the default hub.
func Configure(cfg *config.Config) bool {
	return Default().UpdateConfiguration(cfg)
}
