// FILE: src/internal/registry/hub.go
package registry

import (
	"context"
	"reflect"
	"sync"

	"logmux/src/internal/config"
	"logmux/src/internal/core"
	"logmux/src/internal/dispatch"
	"logmux/src/internal/transport"

	"github.com/lixenwraith/log"
)

// Hub ties a dispatcher to stable per-module logger proxies. Proxies
// handed out before a configuration swap keep working afterward because
// they resolve the current dispatcher on every call, so long-lived
// components can hold a logger across reconfigurations.
type Hub struct {
	mu         sync.RWMutex
	dispatcher *dispatch.Dispatcher
	proxies    map[string]*Logger
	applied    *config.Config

	logger *log.Logger
}

// NewHub creates a hub around a fresh dispatcher. Both arguments may be
// nil; defaults apply as in dispatch.New.
func NewHub(cfg *config.Config, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.NewLogger()
	}
	if cfg == nil {
		cfg = config.Default()
	}
	h := &Hub{
		proxies: make(map[string]*Logger),
		logger:  logger,
	}
	h.dispatcher = dispatch.New(cfg, logger)
	// Compared against incoming snapshots, which carry no session id, so
	// keep the raw input rather than the dispatcher's enriched view
	h.applied = cfg.Clone()
	return h
}

// GetLogger returns the proxy for a module, creating it on first use.
// Repeated calls with the same name return the same instance.
func (h *Hub) GetLogger(module string) *Logger {
	h.mu.RLock()
	l, ok := h.proxies[module]
	h.mu.RUnlock()
	if ok {
		return l
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if l, ok := h.proxies[module]; ok {
		return l
	}
	l = &Logger{hub: h, module: module}
	h.proxies[module] = l
	return l
}

// Dispatcher returns the active dispatcher.
func (h *Hub) Dispatcher() *dispatch.Dispatcher {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dispatcher
}

// UpdateConfiguration applies a new configuration snapshot, reporting
// whether anything changed. A snapshot deep-equal to the last applied
// one is a no-op, which lets file watchers fire on spurious writes
// without churn. Registered transports survive the update.
func (h *Hub) UpdateConfiguration(cfg *config.Config) bool {
	if cfg == nil {
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	next := cfg.Clone()
	if reflect.DeepEqual(h.applied, next) {
		return false
	}

	h.dispatcher.ReplaceConfig(next)
	h.applied = next

	h.logger.Info("msg", "Configuration updated",
		"component", "registry",
		"modules", len(next.Modules),
		"enabled", next.Enabled)
	return true
}

// AddTransport registers a transport on the active dispatcher.
func (h *Hub) AddTransport(t transport.Transport) {
	h.Dispatcher().AddTransport(t)
}

// RemoveTransport unregisters a transport from the active dispatcher.
func (h *Hub) RemoveTransport(name string) bool {
	return h.Dispatcher().RemoveTransport(name)
}

// Flush drains buffering transports.
func (h *Hub) Flush(ctx context.Context) {
	h.Dispatcher().Flush(ctx)
}

// Shutdown flushes and releases all transports.
func (h *Hub) Shutdown(ctx context.Context) {
	d := h.Dispatcher()
	d.Flush(ctx)
	d.Cleanup(ctx)
}

// Logger is a stable per-module proxy. It resolves the hub's current
// dispatcher on every call, so a swap under UpdateConfiguration is
// transparent to holders.
type Logger struct {
	hub    *Hub
	module string
}

// ModuleName returns the bound module name.
func (l *Logger) ModuleName() string {
	return l.module
}

// Log routes an entry with an explicit level and structured payload.
func (l *Logger) Log(level core.Level, message string, data any) {
	l.hub.Dispatcher().Log(l.module, level, message, data)
}

func (l *Logger) Trace(args ...any) {
	l.hub.Dispatcher().Trace(l.module, args...)
}

func (l *Logger) Debug(args ...any) {
	l.hub.Dispatcher().Debug(l.module, args...)
}

func (l *Logger) Info(args ...any) {
	l.hub.Dispatcher().Info(l.module, args...)
}

func (l *Logger) Warn(args ...any) {
	l.hub.Dispatcher().Warn(l.module, args...)
}

func (l *Logger) Error(args ...any) {
	l.hub.Dispatcher().Error(l.module, args...)
}
