// FILE: src/internal/core/entry.go
package core

import "time"

// LogEntry is a single log record handed to transports. Entries are
// constructed once per accepted log call and never mutated afterward;
// transports serialize or transform their own copy.
type LogEntry struct {
	Timestamp string         `json:"timestamp"`
	Level     Level          `json:"level"`
	Module    string         `json:"module"`
	Message   string         `json:"message"`
	Data      any            `json:"data,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	SessionID string         `json:"sessionId,omitempty"`
}

// Timestamp renders t in the wire format used by LogEntry.Timestamp.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
