// FILE: src/internal/dispatch/dispatcher.go
package dispatch

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"logmux/src/internal/config"
	"logmux/src/internal/core"
	"logmux/src/internal/format"
	"logmux/src/internal/session"
	"logmux/src/internal/transport"

	"github.com/lixenwraith/log"
)

// Dispatcher is the single authority for the filter-then-fanout decision
// and transport lifecycle management. It owns the active configuration
// snapshot, a registry of named transports and the session identifier.
//
// Configuration snapshots are copy-on-write: every mutation clones the
// current snapshot, modifies the clone and swaps the pointer, so a log
// call that has already read the configuration proceeds with a consistent
// view. Nothing on the logging path ever panics or returns an error to
// the caller; delivery failures are reported on the diagnostic logger.
type Dispatcher struct {
	cfg   atomic.Pointer[config.Config]
	cfgMu sync.Mutex // serializes copy-on-write updates

	transports map[string]transport.Transport
	mu         sync.RWMutex // guards transports

	sessionID atomic.Pointer[string]

	logger *log.Logger
}

// New creates a dispatcher from a configuration snapshot. A nil config
// falls back to defaults; a nil logger is replaced with an inert one so
// library use without setup stays silent. A session id is generated when
// the snapshot does not carry one.
func New(cfg *config.Config, logger *log.Logger) *Dispatcher {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.NewLogger()
	}

	d := &Dispatcher{
		transports: make(map[string]transport.Transport),
		logger:     logger,
	}
	snapshot := cfg.Clone()
	if snapshot.DefaultLevel == "" {
		snapshot.DefaultLevel = core.LevelInfo
	}
	d.cfg.Store(snapshot)

	sid := snapshot.SessionID
	if sid == "" {
		sid = session.NewID()
	}
	d.sessionID.Store(&sid)

	return d
}

// ShouldLog reports whether an entry for the module and level would pass
// filtering. Modules with explicit configuration use exact level-set
// membership; unconfigured modules use the ordinal threshold against the
// default level. Unknown levels fail closed.
func (d *Dispatcher) ShouldLog(module string, level core.Level) bool {
	cfg := d.cfg.Load()
	if !cfg.Enabled {
		return false
	}

	if mc, ok := cfg.Modules[module]; ok {
		return mc.Enabled && mc.Allows(level)
	}
	return level.AtLeast(cfg.DefaultLevel)
}

// Log routes one entry: filter, construct, resolve transports, fan out.
// Delivery runs concurrently per transport with failures isolated from
// each other; Log returns after all deliveries settle and never fails.
// Callers wanting fire-and-forget semantics invoke it in a goroutine.
func (d *Dispatcher) Log(module string, level core.Level, message string, data any) {
	cfg := d.cfg.Load()

	// Hard gate before any entry allocation
	if !cfg.Enabled {
		return
	}

	var transportNames []string
	if mc, ok := cfg.Modules[module]; ok {
		if !mc.Enabled || !mc.Allows(level) {
			return
		}
		transportNames = mc.Transports
	} else {
		if !level.AtLeast(cfg.DefaultLevel) {
			return
		}
		transportNames = []string{core.DefaultTransport}
	}

	entry := core.LogEntry{
		Timestamp: core.Timestamp(time.Now()),
		Level:     level,
		Module:    module,
		Message:   message,
		Data:      data,
		Metadata:  cfg.Metadata,
		SessionID: d.SessionID(),
	}

	// Resolve names against the registry; names with no registered
	// transport are dropped silently so configuration may reference
	// transports that are not attached yet.
	d.mu.RLock()
	targets := make([]transport.Transport, 0, len(transportNames))
	for _, name := range transportNames {
		if t, ok := d.transports[name]; ok {
			targets = append(targets, t)
		}
	}
	d.mu.RUnlock()

	if len(targets) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, t := range targets {
		wg.Add(1)
		go func(t transport.Transport) {
			defer wg.Done()
			d.deliver(t, entry)
		}(t)
	}
	wg.Wait()
}

// deliver invokes one transport, converting panics and errors into
// diagnostic reports so a misbehaving transport never affects siblings
// or the log caller.
func (d *Dispatcher) deliver(t transport.Transport, entry core.LogEntry) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("msg", "Transport panicked during delivery",
				"component", "dispatcher",
				"transport", t.Name(),
				"module", entry.Module,
				"panic", r)
		}
	}()

	if err := t.Log(context.Background(), entry); err != nil {
		d.logger.Error("msg", "Transport delivery failed",
			"component", "dispatcher",
			"transport", t.Name(),
			"module", entry.Module,
			"error", err)
	}
}

// Trace logs at trace level, formatting the arguments into one message.
func (d *Dispatcher) Trace(module string, args ...any) {
	d.Log(module, core.LevelTrace, format.Args(args...), nil)
}

// Debug logs at debug level.
func (d *Dispatcher) Debug(module string, args ...any) {
	d.Log(module, core.LevelDebug, format.Args(args...), nil)
}

// Info logs at info level.
func (d *Dispatcher) Info(module string, args ...any) {
	d.Log(module, core.LevelInfo, format.Args(args...), nil)
}

// Warn logs at warn level.
func (d *Dispatcher) Warn(module string, args ...any) {
	d.Log(module, core.LevelWarn, format.Args(args...), nil)
}

// Error logs at error level.
func (d *Dispatcher) Error(module string, args ...any) {
	d.Log(module, core.LevelError, format.Args(args...), nil)
}

// AddTransport registers a transport under its name, replacing any
// previous instance registered under the same name.
func (d *Dispatcher) AddTransport(t transport.Transport) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.transports[t.Name()] = t
}

// RemoveTransport unregisters a transport, reporting whether anything
// was removed.
func (d *Dispatcher) RemoveTransport(name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.transports[name]; !ok {
		return false
	}
	delete(d.transports, name)
	return true
}

// GetTransport returns the registered transport with the given name.
func (d *Dispatcher) GetTransport(name string) (transport.Transport, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	t, ok := d.transports[name]
	return t, ok
}

// ListTransports returns the registered transport names, sorted.
func (d *Dispatcher) ListTransports() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.transports))
	for name := range d.transports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Transports returns the registered transport instances. Used when
// re-attaching registrations to a replacement dispatcher.
func (d *Dispatcher) Transports() []transport.Transport {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]transport.Transport, 0, len(d.transports))
	for _, t := range d.transports {
		out = append(out, t)
	}
	return out
}

// SetModuleConfig atomically replaces one module's configuration.
func (d *Dispatcher) SetModuleConfig(module string, mc config.ModuleConfig) {
	d.mutateConfig(func(cfg *config.Config) {
		if cfg.Modules == nil {
			cfg.Modules = make(map[string]config.ModuleConfig)
		}
		cfg.Modules[module] = mc.Clone()
	})
}

// GetModuleConfig returns a copy of one module's configuration.
func (d *Dispatcher) GetModuleConfig(module string) (config.ModuleConfig, bool) {
	cfg := d.cfg.Load()
	mc, ok := cfg.Modules[module]
	if !ok {
		return config.ModuleConfig{}, false
	}
	return mc.Clone(), true
}

// SetGlobalEnabled flips the master switch.
func (d *Dispatcher) SetGlobalEnabled(enabled bool) {
	d.mutateConfig(func(cfg *config.Config) {
		cfg.Enabled = enabled
	})
}

// IsGlobalEnabled reports the master switch state.
func (d *Dispatcher) IsGlobalEnabled() bool {
	return d.cfg.Load().Enabled
}

// SetDefaultLevel sets the threshold for unconfigured modules. Unknown
// levels are ignored and reported on the diagnostic channel.
func (d *Dispatcher) SetDefaultLevel(level core.Level) {
	if !level.Valid() {
		d.logger.Warn("msg", "Ignoring invalid default level",
			"component", "dispatcher",
			"level", string(level))
		return
	}
	d.mutateConfig(func(cfg *config.Config) {
		cfg.DefaultLevel = level
	})
}

// SetMetadata shallow-merges fields into the metadata attached to every
// subsequent entry.
func (d *Dispatcher) SetMetadata(partial map[string]any) {
	d.mutateConfig(func(cfg *config.Config) {
		if cfg.Metadata == nil {
			cfg.Metadata = make(map[string]any, len(partial))
		}
		for k, v := range partial {
			cfg.Metadata[k] = v
		}
	})
}

// GetConfig returns a deep copy of the active configuration. Mutating the
// returned value never changes dispatcher behavior.
func (d *Dispatcher) GetConfig() *config.Config {
	cfg := d.cfg.Load().Clone()
	cfg.SessionID = d.SessionID()
	return cfg
}

// ReplaceConfig swaps the entire configuration snapshot. A session id in
// the new snapshot replaces the current one; otherwise the current id is
// retained.
func (d *Dispatcher) ReplaceConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	snapshot := cfg.Clone()
	if snapshot.DefaultLevel == "" {
		snapshot.DefaultLevel = core.LevelInfo
	}

	d.cfgMu.Lock()
	d.cfg.Store(snapshot)
	d.cfgMu.Unlock()

	if snapshot.SessionID != "" {
		sid := snapshot.SessionID
		d.sessionID.Store(&sid)
	}
}

// SessionID returns the current session correlation id.
func (d *Dispatcher) SessionID() string {
	return *d.sessionID.Load()
}

// RenewSession generates and installs a new session id, returning it.
// Entries logged afterward carry the new id.
func (d *Dispatcher) RenewSession() string {
	sid := session.NewID()
	d.sessionID.Store(&sid)
	return sid
}

// Flush concurrently drains every registered transport that buffers,
// collecting failures on the diagnostic channel without short-circuiting.
func (d *Dispatcher) Flush(ctx context.Context) {
	d.fanOutMaintenance(ctx, "flush", func(t transport.Transport) error {
		if f, ok := t.(transport.Flusher); ok {
			return f.Flush(ctx)
		}
		return nil
	})
}

// Cleanup concurrently releases every registered transport's resources.
// Intended for graceful shutdown.
func (d *Dispatcher) Cleanup(ctx context.Context) {
	d.fanOutMaintenance(ctx, "cleanup", func(t transport.Transport) error {
		if c, ok := t.(transport.Cleaner); ok {
			return c.Cleanup(ctx)
		}
		return nil
	})
}

func (d *Dispatcher) fanOutMaintenance(ctx context.Context, op string, fn func(transport.Transport) error) {
	targets := d.Transports()

	var wg sync.WaitGroup
	for _, t := range targets {
		wg.Add(1)
		go func(t transport.Transport) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					d.logger.Error("msg", "Transport panicked during maintenance",
						"component", "dispatcher",
						"operation", op,
						"transport", t.Name(),
						"panic", r)
				}
			}()
			if err := fn(t); err != nil {
				d.logger.Error("msg", fmt.Sprintf("Transport %s failed", op),
					"component", "dispatcher",
					"transport", t.Name(),
					"error", err)
			}
		}(t)
	}
	wg.Wait()
}

// ModuleLogger returns a delegator bound to one module name.
func (d *Dispatcher) ModuleLogger(module string) *ModuleLogger {
	return &ModuleLogger{dispatcher: d, module: module}
}

// mutateConfig applies a copy-on-write update to the configuration
// snapshot. The mutex serializes updates so none are lost; readers keep
// whatever snapshot they already loaded.
func (d *Dispatcher) mutateConfig(mutate func(*config.Config)) {
	d.cfgMu.Lock()
	defer d.cfgMu.Unlock()
	next := d.cfg.Load().Clone()
	mutate(next)
	d.cfg.Store(next)
}
