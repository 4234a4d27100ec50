// FILE: src/internal/core/level.go
package core

import (
	"fmt"
	"strings"
)

// Level identifies the severity of a log entry.
// The total order is trace < debug < info < warn < error.
type Level string

const (
	LevelTrace Level = "trace"
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

var levelOrdinals = map[Level]int{
	LevelTrace: 0,
	LevelDebug: 1,
	LevelInfo:  2,
	LevelWarn:  3,
	LevelError: 4,
}

// Ordinal returns the level's position in the severity order.
// Unknown levels report ok=false; filtering treats them as non-passing.
func (l Level) Ordinal() (int, bool) {
	ord, ok := levelOrdinals[l]
	return ord, ok
}

// Valid reports whether the level is one of the five known severities.
func (l Level) Valid() bool {
	_, ok := levelOrdinals[l]
	return ok
}

// AtLeast reports whether l is at or above min in the severity order.
// Either side being unknown yields false (fail closed).
func (l Level) AtLeast(min Level) bool {
	lo, ok := l.Ordinal()
	if !ok {
		return false
	}
	mo, ok := min.Ordinal()
	if !ok {
		return false
	}
	return lo >= mo
}

// ParseLevel converts a level name to a Level, case-insensitively.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("unknown log level: %q", s)
	}
	return l, nil
}

// Levels returns all known levels in ascending severity order.
func Levels() []Level {
	return []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}
}

// DefaultLevels is the level set applied to modules added without an
// explicit set.
func DefaultLevels() []Level {
	return []Level{LevelInfo, LevelWarn, LevelError}
}
