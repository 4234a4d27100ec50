// FILE: src/internal/format/json.go
package format

import (
	"encoding/json"
	"fmt"

	"logmux/src/internal/core"

	"github.com/lixenwraith/log"
)

// JSONFormatter produces the entry's JSON wire shape, one object per line.
type JSONFormatter struct {
	pretty bool
	logger *log.Logger
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(pretty bool, logger *log.Logger) *JSONFormatter {
	return &JSONFormatter{
		pretty: pretty,
		logger: logger,
	}
}

// Format transforms a single LogEntry into a JSON byte slice.
func (f *JSONFormatter) Format(entry core.LogEntry) ([]byte, error) {
	// Data payloads are caller-supplied and may not serialize; substitute
	// rather than failing the whole entry.
	if entry.Data != nil {
		if _, err := json.Marshal(entry.Data); err != nil {
			entry.Data = fmt.Sprintf("<unserializable: %v>", err)
		}
	}

	var result []byte
	var err error
	if f.pretty {
		result, err = json.MarshalIndent(entry, "", "  ")
	} else {
		result, err = json.Marshal(entry)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return append(result, '\n'), nil
}

// Name returns the formatter's type name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// FormatBatch transforms a slice of entries into a single JSON array.
func (f *JSONFormatter) FormatBatch(entries []core.LogEntry) ([]byte, error) {
	batch := make([]json.RawMessage, 0, len(entries))

	for _, entry := range entries {
		formatted, err := f.Format(entry)
		if err != nil {
			f.logger.Warn("msg", "Failed to format entry in batch",
				"component", "json_formatter",
				"error", err)
			continue
		}

		// Strip the trailing newline for array elements
		if len(formatted) > 0 && formatted[len(formatted)-1] == '\n' {
			formatted = formatted[:len(formatted)-1]
		}

		batch = append(batch, formatted)
	}

	var result []byte
	var err error
	if f.pretty {
		result, err = json.MarshalIndent(batch, "", "  ")
	} else {
		result, err = json.Marshal(batch)
	}

	return result, err
}
