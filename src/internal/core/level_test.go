// FILE: src/internal/core/level_test.go
package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelOrdinal(t *testing.T) {
	testCases := []struct {
		level   Level
		ordinal int
		known   bool
	}{
		{LevelTrace, 0, true},
		{LevelDebug, 1, true},
		{LevelInfo, 2, true},
		{LevelWarn, 3, true},
		{LevelError, 4, true},
		{Level("fatal"), 0, false},
		{Level(""), 0, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.level), func(t *testing.T) {
			ord, ok := tc.level.Ordinal()
			assert.Equal(t, tc.known, ok)
			if tc.known {
				assert.Equal(t, tc.ordinal, ord)
			}
		})
	}
}

func TestLevelAtLeast(t *testing.T) {
	t.Run("Ordering", func(t *testing.T) {
		assert.True(t, LevelError.AtLeast(LevelInfo))
		assert.True(t, LevelInfo.AtLeast(LevelInfo))
		assert.False(t, LevelDebug.AtLeast(LevelInfo))
	})

	t.Run("UnknownFailsClosed", func(t *testing.T) {
		assert.False(t, Level("verbose").AtLeast(LevelTrace))
		assert.False(t, LevelError.AtLeast(Level("verbose")))
	})
}

func TestParseLevel(t *testing.T) {
	t.Run("CaseInsensitive", func(t *testing.T) {
		l, err := ParseLevel("WARN")
		require.NoError(t, err)
		assert.Equal(t, LevelWarn, l)

		l, err = ParseLevel("  info ")
		require.NoError(t, err)
		assert.Equal(t, LevelInfo, l)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := ParseLevel("verbose")
		assert.Error(t, err)
	})
}

func TestLevelsAscending(t *testing.T) {
	levels := Levels()
	require.Len(t, levels, 5)
	for i := 1; i < len(levels); i++ {
		prev, _ := levels[i-1].Ordinal()
		cur, _ := levels[i].Ordinal()
		assert.Greater(t, cur, prev)
	}
}
