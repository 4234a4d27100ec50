// FILE: src/internal/config/config_test.go
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"logmux/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleConfig() *Config {
	return &Config{
		Enabled:      true,
		DefaultLevel: core.LevelInfo,
		Modules: map[string]ModuleConfig{
			"auth": {
				Enabled:    true,
				Levels:     []core.Level{core.LevelWarn, core.LevelError},
				Transports: []string{"console", "audit-file"},
			},
		},
		SessionID: "1700000000000-abc123",
		Metadata: map[string]any{
			"app_version": "1.2.3",
			"deploy": map[string]any{
				"region": "eu-west-1",
			},
		},
	}
}

func TestModuleConfigAllows(t *testing.T) {
	mc := ModuleConfig{Levels: []core.Level{core.LevelError}}

	// Exact set membership, not ordinal threshold
	assert.True(t, mc.Allows(core.LevelError))
	assert.False(t, mc.Allows(core.LevelWarn))
	assert.False(t, mc.Allows(core.LevelTrace))
	assert.False(t, ModuleConfig{}.Allows(core.LevelError))
}

func TestConfigClone(t *testing.T) {
	t.Run("DeepCopyIsolation", func(t *testing.T) {
		original := sampleConfig()
		clone := original.Clone()

		clone.Enabled = false
		clone.Modules["auth"] = ModuleConfig{Enabled: false}
		clone.Modules["new"] = ModuleConfig{Enabled: true}
		clone.Metadata["app_version"] = "9.9.9"
		clone.Metadata["deploy"].(map[string]any)["region"] = "us-east-1"

		assert.True(t, original.Enabled)
		assert.True(t, original.Modules["auth"].Enabled)
		assert.NotContains(t, original.Modules, "new")
		assert.Equal(t, "1.2.3", original.Metadata["app_version"])
		assert.Equal(t, "eu-west-1", original.Metadata["deploy"].(map[string]any)["region"])
	})

	t.Run("SliceIsolation", func(t *testing.T) {
		original := sampleConfig()
		clone := original.Clone()

		mc := clone.Modules["auth"]
		mc.Levels[0] = core.LevelTrace
		mc.Transports[0] = "elsewhere"

		assert.Equal(t, core.LevelWarn, original.Modules["auth"].Levels[0])
		assert.Equal(t, "console", original.Modules["auth"].Transports[0])
	})

	t.Run("NilConfig", func(t *testing.T) {
		var c *Config
		assert.Nil(t, c.Clone())
	})
}

func TestConfigJSONRoundTrip(t *testing.T) {
	original := sampleConfig()

	data, err := json.Marshal(original)
	require.NoError(t, err)

	restored := &Config{}
	require.NoError(t, json.Unmarshal(data, restored))

	assert.Equal(t, original.Enabled, restored.Enabled)
	assert.Equal(t, original.DefaultLevel, restored.DefaultLevel)
	assert.Equal(t, original.SessionID, restored.SessionID)
	assert.Equal(t, original.Modules["auth"].Levels, restored.Modules["auth"].Levels)
	assert.Equal(t, original.Modules["auth"].Transports, restored.Modules["auth"].Transports)
	assert.Equal(t, "1.2.3", restored.Metadata["app_version"])
}

func TestSnapshotFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")

	original := sampleConfig()
	require.NoError(t, original.SaveSnapshot(path))

	restored, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, original.DefaultLevel, restored.DefaultLevel)
	assert.Equal(t, original.Modules, restored.Modules)
}

func TestLoadSnapshotRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")

	bad := sampleConfig()
	bad.DefaultLevel = "verbose"
	// Bypass validation by writing raw JSON
	data, err := json.Marshal(bad)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err = LoadSnapshot(path)
	assert.Error(t, err)
}

func TestValidateSnapshot(t *testing.T) {
	t.Run("EmptyLevelDefaultsToInfo", func(t *testing.T) {
		cfg := &Config{Enabled: true}
		require.NoError(t, ValidateSnapshot(cfg))
		assert.Equal(t, core.LevelInfo, cfg.DefaultLevel)
	})

	t.Run("BadModuleLevel", func(t *testing.T) {
		cfg := &Config{
			DefaultLevel: core.LevelInfo,
			Modules: map[string]ModuleConfig{
				"x": {Levels: []core.Level{"loud"}},
			},
		}
		assert.Error(t, ValidateSnapshot(cfg))
	})
}
