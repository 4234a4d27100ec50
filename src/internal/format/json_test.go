// FILE: src/internal/format/json_test.go
package format

import (
	"encoding/json"
	"strings"
	"testing"

	"logmux/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFormatter_Format(t *testing.T) {
	logger := newTestLogger()
	entry := testEntry()

	t.Run("BasicFormatting", func(t *testing.T) {
		formatter := NewJSONFormatter(false, logger)

		output, err := formatter.Format(entry)
		require.NoError(t, err)

		var result map[string]interface{}
		err = json.Unmarshal(output, &result)
		require.NoError(t, err, "Output should be valid JSON")

		assert.Equal(t, entry.Timestamp, result["timestamp"])
		assert.Equal(t, "info", result["level"])
		assert.Equal(t, "billing", result["module"])
		assert.Equal(t, "invoice issued", result["message"])
		assert.Equal(t, entry.SessionID, result["sessionId"])
		assert.True(t, strings.HasSuffix(string(output), "\n"), "Output should end with a newline")
	})

	t.Run("PrettyFormatting", func(t *testing.T) {
		formatter := NewJSONFormatter(true, logger)

		output, err := formatter.Format(entry)
		require.NoError(t, err)

		assert.Contains(t, string(output), `  "level": "info"`)
		assert.True(t, strings.HasSuffix(string(output), "\n"))
	})

	t.Run("OptionalFieldsOmitted", func(t *testing.T) {
		bare := core.LogEntry{
			Timestamp: entry.Timestamp,
			Level:     core.LevelWarn,
			Module:    "api",
			Message:   "slow response",
		}
		formatter := NewJSONFormatter(false, logger)

		output, err := formatter.Format(bare)
		require.NoError(t, err)

		var result map[string]interface{}
		require.NoError(t, json.Unmarshal(output, &result))
		assert.NotContains(t, result, "data")
		assert.NotContains(t, result, "metadata")
		assert.NotContains(t, result, "sessionId")
	})

	t.Run("DataPassedThrough", func(t *testing.T) {
		withData := entry
		withData.Data = map[string]any{"amount": 42.5, "currency": "EUR"}
		formatter := NewJSONFormatter(false, logger)

		output, err := formatter.Format(withData)
		require.NoError(t, err)

		var result map[string]interface{}
		require.NoError(t, json.Unmarshal(output, &result))
		data := result["data"].(map[string]interface{})
		assert.Equal(t, 42.5, data["amount"])
		assert.Equal(t, "EUR", data["currency"])
	})

	t.Run("UnserializableDataSubstituted", func(t *testing.T) {
		withData := entry
		withData.Data = map[string]any{"callback": func() {}}
		formatter := NewJSONFormatter(false, logger)

		output, err := formatter.Format(withData)
		require.NoError(t, err)

		var result map[string]interface{}
		require.NoError(t, json.Unmarshal(output, &result))
		assert.Contains(t, result["data"], "unserializable")
	})
}

func TestJSONFormatter_FormatBatch(t *testing.T) {
	logger := newTestLogger()
	formatter := NewJSONFormatter(false, logger)

	entries := []core.LogEntry{
		{Timestamp: testEntry().Timestamp, Level: core.LevelInfo, Module: "a", Message: "first"},
		{Timestamp: testEntry().Timestamp, Level: core.LevelWarn, Module: "b", Message: "second"},
	}

	output, err := formatter.FormatBatch(entries)
	require.NoError(t, err)

	var batch []map[string]interface{}
	require.NoError(t, json.Unmarshal(output, &batch))
	require.Len(t, batch, 2)
	assert.Equal(t, "first", batch[0]["message"])
	assert.Equal(t, "warn", batch[1]["level"])
}
