// FILE: src/internal/format/text_test.go
package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFormatter_Format(t *testing.T) {
	logger := newTestLogger()
	formatter := NewTextFormatter(logger)

	t.Run("BasicLine", func(t *testing.T) {
		output, err := formatter.Format(testEntry())
		require.NoError(t, err)

		line := string(output)
		assert.Contains(t, line, "[INFO]")
		assert.Contains(t, line, "billing: invoice issued")
		assert.Contains(t, line, "session=1700000000000-abc123")
		assert.True(t, strings.HasSuffix(line, "\n"))
	})

	t.Run("EmptyLevelDefaultsToInfo", func(t *testing.T) {
		entry := testEntry()
		entry.Level = ""
		output, err := formatter.Format(entry)
		require.NoError(t, err)
		assert.Contains(t, string(output), "[INFO]")
	})

	t.Run("DataAppended", func(t *testing.T) {
		entry := testEntry()
		entry.Data = map[string]any{"id": "inv-7"}
		output, err := formatter.Format(entry)
		require.NoError(t, err)
		assert.Contains(t, string(output), `data={"id":"inv-7"}`)
	})

	t.Run("UnserializableDataPlaceholder", func(t *testing.T) {
		entry := testEntry()
		entry.Data = make(chan int)
		output, err := formatter.Format(entry)
		require.NoError(t, err)
		assert.Contains(t, string(output), "data=<unserializable:")
	})
}
