// FILE: src/internal/dispatch/module_logger.go
package dispatch

import (
	"logmux/src/internal/core"
	"logmux/src/internal/format"
)

// ModuleLogger is a thin delegator carrying a fixed module name into
// every call. It holds no state beyond the name, so instances are cheap
// and safe to share.
type ModuleLogger struct {
	dispatcher *Dispatcher
	module     string
}

// ModuleName returns the bound module name.
func (m *ModuleLogger) ModuleName() string {
	return m.module
}

// Log routes an entry with an explicit level and structured payload.
func (m *ModuleLogger) Log(level core.Level, message string, data any) {
	m.dispatcher.Log(m.module, level, message, data)
}

func (m *ModuleLogger) Trace(args ...any) {
	m.dispatcher.Log(m.module, core.LevelTrace, format.Args(args...), nil)
}

func (m *ModuleLogger) Debug(args ...any) {
	m.dispatcher.Log(m.module, core.LevelDebug, format.Args(args...), nil)
}

func (m *ModuleLogger) Info(args ...any) {
	m.dispatcher.Log(m.module, core.LevelInfo, format.Args(args...), nil)
}

func (m *ModuleLogger) Warn(args ...any) {
	m.dispatcher.Log(m.module, core.LevelWarn, format.Args(args...), nil)
}

func (m *ModuleLogger) Error(args ...any) {
	m.dispatcher.Log(m.module, core.LevelError, format.Args(args...), nil)
}
