// FILE: src/internal/config/config.go
package config

import (
	"logmux/src/internal/core"
)

// Config is the dispatcher's global configuration snapshot. Snapshots are
// treated as copy-on-write values: once a snapshot has been handed to a
// dispatcher it is never mutated in place, so concurrent log calls always
// observe a consistent view. The struct round-trips through JSON with no
// loss, which allows a snapshot to be fetched remotely and applied at
// runtime.
type Config struct {
	Enabled      bool                    `json:"enabled" toml:"enabled"`
	DefaultLevel core.Level              `json:"defaultLevel" toml:"default_level"`
	Modules      map[string]ModuleConfig `json:"modules" toml:"modules"`
	SessionID    string                  `json:"sessionId,omitempty" toml:"session_id"`
	Metadata     map[string]any          `json:"metadata,omitempty" toml:"metadata"`
}

// ModuleConfig declares, for one named module, whether logging is enabled,
// which severities pass, and which named transports receive entries.
// Configured modules use exact level-set membership, not the ordinal
// threshold applied to unconfigured modules.
type ModuleConfig struct {
	Enabled    bool         `json:"enabled" toml:"enabled"`
	Levels     []core.Level `json:"levels" toml:"levels"`
	Transports []string     `json:"transports" toml:"transports"`
}

// Allows reports whether the level is in the module's configured set.
func (m ModuleConfig) Allows(level core.Level) bool {
	for _, l := range m.Levels {
		if l == level {
			return true
		}
	}
	return false
}

// Clone returns a structurally independent copy of the module config.
func (m ModuleConfig) Clone() ModuleConfig {
	out := ModuleConfig{Enabled: m.Enabled}
	if m.Levels != nil {
		out.Levels = append([]core.Level(nil), m.Levels...)
	}
	if m.Transports != nil {
		out.Transports = append([]string(nil), m.Transports...)
	}
	return out
}

// Default returns the configuration used when nothing else is supplied:
// logging enabled, info threshold, no module overrides.
func Default() *Config {
	return &Config{
		Enabled:      true,
		DefaultLevel: core.LevelInfo,
		Modules:      map[string]ModuleConfig{},
	}
}

// Clone returns a deep copy of the configuration. Mutating the copy never
// affects the original, and vice versa.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := &Config{
		Enabled:      c.Enabled,
		DefaultLevel: c.DefaultLevel,
		SessionID:    c.SessionID,
	}
	if c.Modules != nil {
		out.Modules = make(map[string]ModuleConfig, len(c.Modules))
		for name, mc := range c.Modules {
			out.Modules[name] = mc.Clone()
		}
	}
	if c.Metadata != nil {
		out.Metadata = copyMap(c.Metadata)
	}
	return out
}

// copyMap deep-copies plain-data values (the only kind a serializable
// snapshot can hold). Non-container values are copied by assignment.
func copyMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return copyMap(val)
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = copyValue(e)
		}
		return out
	default:
		return val
	}
}
