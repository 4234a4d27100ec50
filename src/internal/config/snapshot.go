// FILE: src/internal/config/snapshot.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadSnapshot reads a JSON configuration snapshot from disk. This is the
// format produced by SaveSnapshot and by any remote configuration source;
// it contains no functions or live references, so a round trip is lossless.
func LoadSnapshot(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	if err := ValidateSnapshot(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveSnapshot writes the configuration as JSON, using a temp-file rename
// so watchers never observe a partial snapshot.
func (c *Config) SaveSnapshot(path string) error {
	if path == "" {
		return fmt.Errorf("cannot save snapshot: path is empty")
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".logmux-snapshot-*")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
