// FILE: src/internal/registry/watcher_test.go
package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"logmux/src/internal/config"
	"logmux/src/internal/core"

	"github.com/stretchr/testify/require"
)

func writeSnapshot(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestWatcherReloadsOnFileChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logmux.json")
	writeSnapshot(t, path, config.Default())

	h := NewHub(config.Default(), nil)
	w := NewWatcher(path, h, nil)
	w.debounce = 50 * time.Millisecond
	require.NoError(t, w.Start())
	defer w.Stop()

	updated := config.Default()
	updated.DefaultLevel = core.LevelError
	writeSnapshot(t, path, updated)

	require.Eventually(t, func() bool {
		return h.Dispatcher().GetConfig().DefaultLevel == core.LevelError
	}, 5*time.Second, 25*time.Millisecond)
}

func TestWatcherKeepsConfigOnInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logmux.json")
	writeSnapshot(t, path, config.Default())

	h := NewHub(config.Default(), nil)
	w := NewWatcher(path, h, nil)
	w.debounce = 50 * time.Millisecond
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	// Give the debounced reload time to run, then confirm nothing changed
	time.Sleep(300 * time.Millisecond)
	require.Equal(t, core.LevelInfo, h.Dispatcher().GetConfig().DefaultLevel)
}

func TestWatcherStartFailsOnMissingFile(t *testing.T) {
	h := NewHub(nil, nil)
	w := NewWatcher(filepath.Join(t.TempDir(), "absent.json"), h, nil)
	require.Error(t, w.Start())
}
