// FILE: src/internal/config/validation.go
package config

import (
	"fmt"

	"logmux/src/internal/core"
)

// Validate normalizes defaults and rejects configurations the runtime
// could not honor. Module transport lists may reference names with no
// declared transport; routing drops those silently at dispatch time.
func (a *AppConfig) Validate() error {
	if err := validateLogConfig(&a.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	if err := ValidateSnapshot(&a.Dispatch); err != nil {
		return err
	}

	names := make(map[string]bool)
	for i := range a.Transports {
		t := &a.Transports[i]
		if err := validateTransport(i, t); err != nil {
			return err
		}
		// Duplicate names are allowed by the registry (last write wins)
		// but in a static file they are almost certainly a mistake.
		if names[t.Name] {
			return fmt.Errorf("transport[%d]: duplicate name '%s'", i, t.Name)
		}
		names[t.Name] = true
	}

	return nil
}

// ValidateSnapshot checks a dispatch configuration snapshot. An empty
// default level normalizes to info.
func ValidateSnapshot(c *Config) error {
	if c == nil {
		return fmt.Errorf("dispatch config is nil")
	}

	if c.DefaultLevel == "" {
		c.DefaultLevel = core.LevelInfo
	}
	if !c.DefaultLevel.Valid() {
		return fmt.Errorf("invalid default level: %q", c.DefaultLevel)
	}

	for name, mc := range c.Modules {
		for _, l := range mc.Levels {
			if !l.Valid() {
				return fmt.Errorf("module '%s': invalid level: %q", name, l)
			}
		}
	}

	return nil
}

func validateLogConfig(cfg *LogConfig) error {
	validOutputs := map[string]bool{
		"stdout": true, "stderr": true, "file": true, "none": true,
	}
	if !validOutputs[cfg.Output] {
		return fmt.Errorf("invalid log output mode: %s", cfg.Output)
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[cfg.Level] {
		return fmt.Errorf("invalid log level: %s", cfg.Level)
	}

	return nil
}

func validateTransport(index int, cfg *TransportConfig) error {
	if cfg.Name == "" {
		return fmt.Errorf("transport[%d]: missing name", index)
	}

	switch cfg.Type {
	case "console", "file":
		cfg.applyDefaults()

	case "http":
		cfg.applyDefaults()
		if cfg.HTTP.URL == "" {
			return fmt.Errorf("transport[%d] '%s': http transport requires url", index, cfg.Name)
		}

	case "tcp":
		cfg.applyDefaults()
		if cfg.TCP.Port < 1 || cfg.TCP.Port > 65535 {
			return fmt.Errorf("transport[%d] '%s': invalid TCP port %d", index, cfg.Name, cfg.TCP.Port)
		}

	case "":
		return fmt.Errorf("transport[%d] '%s': missing type", index, cfg.Name)
	default:
		return fmt.Errorf("transport[%d] '%s': unknown transport type '%s'", index, cfg.Name, cfg.Type)
	}

	return nil
}
