// FILE: src/internal/format/format.go
package format

import (
	"fmt"

	"logmux/src/internal/core"

	"github.com/lixenwraith/log"
)

// Formatter defines the interface for transforming a LogEntry into a byte slice.
type Formatter interface {
	// Format takes a LogEntry and returns the formatted log as a byte slice.
	Format(entry core.LogEntry) ([]byte, error)

	// Name returns the formatter type name
	Name() string
}

// New creates a new Formatter based on the requested type name.
func New(name string, logger *log.Logger) (Formatter, error) {
	// Default to text if no format specified
	if name == "" {
		name = "text"
	}

	switch name {
	case "json":
		return NewJSONFormatter(false, logger), nil
	case "text":
		return NewTextFormatter(logger), nil
	default:
		return nil, fmt.Errorf("unknown formatter type: %s", name)
	}
}
