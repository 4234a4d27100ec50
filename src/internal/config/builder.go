// FILE: src/internal/config/builder.go
package config

import (
	"logmux/src/internal/core"
)

// ModuleSpec is the bulk-registration form consumed by Builder.AddModules.
type ModuleSpec struct {
	Name       string
	Enabled    bool
	Levels     []core.Level
	Transports []string
}

// Builder accumulates configuration through chained calls and emits an
// immutable snapshot. Build returns a deep copy, so mutating the builder
// afterward never affects a previously built snapshot.
type Builder struct {
	cfg Config
}

// NewBuilder returns a builder pre-loaded with the default configuration.
func NewBuilder() *Builder {
	return &Builder{cfg: *Default()}
}

// SetEnabled sets the global master switch.
func (b *Builder) SetEnabled(enabled bool) *Builder {
	b.cfg.Enabled = enabled
	return b
}

// SetDefaultLevel sets the threshold applied to unconfigured modules.
func (b *Builder) SetDefaultLevel(level core.Level) *Builder {
	b.cfg.DefaultLevel = level
	return b
}

// SetSessionID sets the correlation id attached to every entry.
func (b *Builder) SetSessionID(id string) *Builder {
	b.cfg.SessionID = id
	return b
}

// SetMetadata shallow-merges the given fields into the snapshot metadata.
func (b *Builder) SetMetadata(metadata map[string]any) *Builder {
	if b.cfg.Metadata == nil {
		b.cfg.Metadata = make(map[string]any, len(metadata))
	}
	for k, v := range metadata {
		b.cfg.Metadata[k] = v
	}
	return b
}

// AddModule registers one module's configuration. A nil level set defaults
// to info/warn/error and a nil transport list defaults to console.
func (b *Builder) AddModule(name string, enabled bool, levels []core.Level, transports []string) *Builder {
	if levels == nil {
		levels = core.DefaultLevels()
	}
	if transports == nil {
		transports = []string{core.DefaultTransport}
	}
	if b.cfg.Modules == nil {
		b.cfg.Modules = make(map[string]ModuleConfig)
	}
	b.cfg.Modules[name] = ModuleConfig{
		Enabled:    enabled,
		Levels:     append([]core.Level(nil), levels...),
		Transports: append([]string(nil), transports...),
	}
	return b
}

// AddModules registers several modules at once.
func (b *Builder) AddModules(specs ...ModuleSpec) *Builder {
	for _, spec := range specs {
		b.AddModule(spec.Name, spec.Enabled, spec.Levels, spec.Transports)
	}
	return b
}

// SetModuleTransports replaces the transport list of an already-registered
// module. Unregistered names are added with module defaults first.
func (b *Builder) SetModuleTransports(name string, transports ...string) *Builder {
	mc, ok := b.cfg.Modules[name]
	if !ok {
		b.AddModule(name, true, nil, nil)
		mc = b.cfg.Modules[name]
	}
	mc.Transports = append([]string(nil), transports...)
	b.cfg.Modules[name] = mc
	return b
}

// UseDevelopmentPreset enables logging with a debug threshold.
func (b *Builder) UseDevelopmentPreset() *Builder {
	b.cfg.Enabled = true
	b.cfg.DefaultLevel = core.LevelDebug
	return b
}

// UseProductionPreset enables logging with a warn threshold.
func (b *Builder) UseProductionPreset() *Builder {
	b.cfg.Enabled = true
	b.cfg.DefaultLevel = core.LevelWarn
	return b
}

// UseTestingPreset enables logging with a trace threshold.
func (b *Builder) UseTestingPreset() *Builder {
	b.cfg.Enabled = true
	b.cfg.DefaultLevel = core.LevelTrace
	return b
}

// Build returns an immutable snapshot of the accumulated configuration.
func (b *Builder) Build() *Config {
	return b.cfg.Clone()
}
