// FILE: src/internal/config/builder_test.go
package config

import (
	"testing"

	"logmux/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderChaining(t *testing.T) {
	cfg := NewBuilder().
		SetEnabled(true).
		SetDefaultLevel(core.LevelWarn).
		SetSessionID("session-1").
		SetMetadata(map[string]any{"app": "demo"}).
		AddModule("db", true, []core.Level{core.LevelError}, []string{"file"}).
		Build()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, core.LevelWarn, cfg.DefaultLevel)
	assert.Equal(t, "session-1", cfg.SessionID)
	assert.Equal(t, "demo", cfg.Metadata["app"])
	require.Contains(t, cfg.Modules, "db")
	assert.Equal(t, []core.Level{core.LevelError}, cfg.Modules["db"].Levels)
	assert.Equal(t, []string{"file"}, cfg.Modules["db"].Transports)
}

func TestBuilderModuleDefaults(t *testing.T) {
	cfg := NewBuilder().AddModule("api", true, nil, nil).Build()

	mc := cfg.Modules["api"]
	assert.True(t, mc.Enabled)
	assert.Equal(t, core.DefaultLevels(), mc.Levels)
	assert.Equal(t, []string{core.DefaultTransport}, mc.Transports)
}

func TestBuilderAddModules(t *testing.T) {
	cfg := NewBuilder().AddModules(
		ModuleSpec{Name: "a", Enabled: true},
		ModuleSpec{Name: "b", Enabled: false, Levels: []core.Level{core.LevelTrace}},
	).Build()

	assert.Len(t, cfg.Modules, 2)
	assert.True(t, cfg.Modules["a"].Enabled)
	assert.False(t, cfg.Modules["b"].Enabled)
	assert.Equal(t, []core.Level{core.LevelTrace}, cfg.Modules["b"].Levels)
}

func TestBuilderSetModuleTransports(t *testing.T) {
	t.Run("ExistingModule", func(t *testing.T) {
		cfg := NewBuilder().
			AddModule("api", true, nil, nil).
			SetModuleTransports("api", "http", "file").
			Build()
		assert.Equal(t, []string{"http", "file"}, cfg.Modules["api"].Transports)
	})

	t.Run("UnknownModuleGetsDefaults", func(t *testing.T) {
		cfg := NewBuilder().SetModuleTransports("fresh", "tcp").Build()
		mc := cfg.Modules["fresh"]
		assert.True(t, mc.Enabled)
		assert.Equal(t, core.DefaultLevels(), mc.Levels)
		assert.Equal(t, []string{"tcp"}, mc.Transports)
	})
}

func TestBuilderPresets(t *testing.T) {
	testCases := []struct {
		name     string
		apply    func(*Builder) *Builder
		expected core.Level
	}{
		{"Development", (*Builder).UseDevelopmentPreset, core.LevelDebug},
		{"Production", (*Builder).UseProductionPreset, core.LevelWarn},
		{"Testing", (*Builder).UseTestingPreset, core.LevelTrace},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.apply(NewBuilder().SetEnabled(false)).Build()
			assert.True(t, cfg.Enabled)
			assert.Equal(t, tc.expected, cfg.DefaultLevel)
		})
	}
}

func TestBuilderSnapshotIsolation(t *testing.T) {
	b := NewBuilder().
		SetMetadata(map[string]any{"app": "demo"}).
		AddModule("api", true, nil, nil)

	first := b.Build()

	// Mutating the builder afterward must not affect the earlier snapshot
	b.SetDefaultLevel(core.LevelError).
		SetMetadata(map[string]any{"app": "changed"}).
		SetModuleTransports("api", "http")

	assert.Equal(t, core.LevelInfo, first.DefaultLevel)
	assert.Equal(t, "demo", first.Metadata["app"])
	assert.Equal(t, []string{core.DefaultTransport}, first.Modules["api"].Transports)

	// Mutating the snapshot must not leak back into the builder
	first.Modules["api"] = ModuleConfig{Enabled: false}
	second := b.Build()
	assert.True(t, second.Modules["api"].Enabled)
}
