// FILE: src/internal/registry/hub_test.go
package registry

import (
	"context"
	"sync"
	"testing"

	"logmux/src/internal/config"
	"logmux/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryTransport collects entries for assertions.
type memoryTransport struct {
	name string

	mu      sync.Mutex
	entries []core.LogEntry
}

func (m *memoryTransport) Name() string { return m.name }

func (m *memoryTransport) Log(_ context.Context, entry core.LogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memoryTransport) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *memoryTransport) last() core.LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[len(m.entries)-1]
}

func TestGetLoggerReturnsStableInstance(t *testing.T) {
	h := NewHub(nil, nil)

	a := h.GetLogger("auth")
	b := h.GetLogger("auth")
	other := h.GetLogger("api")

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)
	assert.Equal(t, "auth", a.ModuleName())
}

func TestProxySurvivesConfigurationUpdate(t *testing.T) {
	h := NewHub(nil, nil)
	sink := &memoryTransport{name: core.DefaultTransport}
	h.AddTransport(sink)

	logger := h.GetLogger("api")
	logger.Info("before update")
	require.Equal(t, 1, sink.count())

	next := config.Default()
	next.DefaultLevel = core.LevelError
	require.True(t, h.UpdateConfiguration(next))

	// Same proxy, new filtering rules
	logger.Info("now suppressed")
	assert.Equal(t, 1, sink.count())
	logger.Error("still routed")
	assert.Equal(t, 2, sink.count())
}

func TestUpdateConfigurationNoOpOnEqualSnapshot(t *testing.T) {
	cfg := config.Default()
	cfg.Modules["api"] = config.ModuleConfig{
		Enabled:    true,
		Levels:     core.DefaultLevels(),
		Transports: []string{core.DefaultTransport},
	}
	h := NewHub(cfg, nil)

	assert.False(t, h.UpdateConfiguration(cfg.Clone()))

	changed := cfg.Clone()
	changed.DefaultLevel = core.LevelWarn
	assert.True(t, h.UpdateConfiguration(changed))
	assert.False(t, h.UpdateConfiguration(changed.Clone()))
}

func TestUpdateConfigurationNilIsNoOp(t *testing.T) {
	h := NewHub(nil, nil)
	assert.False(t, h.UpdateConfiguration(nil))
}

func TestTransportsSurviveUpdate(t *testing.T) {
	h := NewHub(nil, nil)
	sink := &memoryTransport{name: core.DefaultTransport}
	h.AddTransport(sink)

	next := config.Default()
	next.DefaultLevel = core.LevelTrace
	require.True(t, h.UpdateConfiguration(next))

	h.GetLogger("api").Trace("routed after update")
	assert.Equal(t, 1, sink.count())
}

func TestProxyLogWithData(t *testing.T) {
	h := NewHub(nil, nil)
	sink := &memoryTransport{name: core.DefaultTransport}
	h.AddTransport(sink)

	h.GetLogger("api").Log(core.LevelWarn, "slow query", map[string]any{"ms": 1200})

	require.Equal(t, 1, sink.count())
	entry := sink.last()
	assert.Equal(t, core.LevelWarn, entry.Level)
	assert.Equal(t, "slow query", entry.Message)
}

func TestDefaultHub(t *testing.T) {
	h := Default()
	require.NotNil(t, h)
	assert.Same(t, h, Default())

	logger := GetLogger("app")
	assert.Same(t, logger, Default().GetLogger("app"))
}

func TestRemoveTransport(t *testing.T) {
	h := NewHub(nil, nil)
	sink := &memoryTransport{name: core.DefaultTransport}
	h.AddTransport(sink)

	assert.True(t, h.RemoveTransport(core.DefaultTransport))
	h.GetLogger("api").Info("dropped, no transport registered")
	assert.Equal(t, 0, sink.count())
}
