// FILE: src/internal/format/text.go
package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"logmux/src/internal/core"

	"github.com/lixenwraith/log"
)

// TextFormatter produces human-readable single-line output.
type TextFormatter struct {
	logger *log.Logger
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(logger *log.Logger) *TextFormatter {
	return &TextFormatter{logger: logger}
}

// Format renders the entry as "<timestamp> [LEVEL] module: message" with
// data and session id appended as key=value suffixes when present.
func (f *TextFormatter) Format(entry core.LogEntry) ([]byte, error) {
	var buf bytes.Buffer

	level := string(entry.Level)
	if level == "" {
		level = string(core.LevelInfo)
	}

	fmt.Fprintf(&buf, "%s [%s] %s: %s",
		entry.Timestamp,
		strings.ToUpper(level),
		entry.Module,
		entry.Message)

	if entry.Data != nil {
		data, err := json.Marshal(entry.Data)
		if err != nil {
			f.logger.Debug("msg", "Failed to serialize entry data",
				"component", "text_formatter",
				"error", err)
			fmt.Fprintf(&buf, " data=<unserializable: %v>", err)
		} else {
			fmt.Fprintf(&buf, " data=%s", data)
		}
	}

	if entry.SessionID != "" {
		fmt.Fprintf(&buf, " session=%s", entry.SessionID)
	}

	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Name returns the formatter's type name.
func (f *TextFormatter) Name() string {
	return "text"
}
