// FILE: src/internal/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lconfig "github.com/lixenwraith/config"
)

// AppConfig is the file/env/CLI-facing configuration consumed by the
// logmux command: the dispatch snapshot plus declared transports and
// diagnostic logging settings.
type AppConfig struct {
	Dispatch   Config            `toml:"dispatch"`
	Transports []TransportConfig `toml:"transports"`
	Logging    LogConfig         `toml:"logging"`
}

// LogConfig controls the internal diagnostic logger, not the dispatched
// entries themselves.
type LogConfig struct {
	// Output: "stdout", "stderr", "file", "none"
	Output string `toml:"output"`

	// Level: "debug", "info", "warn", "error"
	Level string `toml:"level"`

	// File output settings
	Directory string `toml:"directory"`
	Name      string `toml:"name"`
}

func defaults() *AppConfig {
	return &AppConfig{
		Dispatch: *Default(),
		Transports: []TransportConfig{
			{Name: "console", Type: "console"},
		},
		Logging: LogConfig{
			Output: "stderr",
			Level:  "info",
		},
	}
}

// LoadWithCLI layers defaults, config file, environment and CLI arguments
// into a validated AppConfig.
func LoadWithCLI(cliArgs []string) (*AppConfig, error) {
	configPath := GetConfigPath()

	cfg, err := lconfig.NewBuilder().
		WithDefaults(defaults()).
		WithEnvPrefix("LOGMUX_").
		WithFile(configPath).
		WithArgs(cliArgs).
		WithEnvTransform(customEnvTransform).
		WithSources(
			lconfig.SourceCLI,
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()

	if err != nil {
		if !strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	finalConfig := &AppConfig{}
	if err := cfg.Scan(finalConfig); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	return finalConfig, finalConfig.Validate()
}

func customEnvTransform(path string) string {
	env := strings.ReplaceAll(path, ".", "_")
	env = strings.ToUpper(env)
	return "LOGMUX_" + env
}

// GetConfigPath resolves the config file location from the environment,
// falling back to ~/.config/logmux.toml.
func GetConfigPath() string {
	if configFile := os.Getenv("LOGMUX_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("LOGMUX_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("LOGMUX_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "logmux.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "logmux.toml")
	}

	return "logmux.toml"
}
