// FILE: src/internal/transport/transport.go
package transport

import (
	"context"
	"fmt"
	"time"

	"logmux/src/internal/config"
	"logmux/src/internal/core"

	"github.com/lixenwraith/log"
)

// Transport is the sole boundary a delivery target must satisfy. Log must
// tolerate being called before any internal initialization completes and
// should report its own I/O failures through its diagnostic path; the
// dispatcher additionally isolates anything that escapes.
type Transport interface {
	// Name returns the unique registry key referenced by module
	// transport lists.
	Name() string

	// Log delivers one entry. A returned error is reported on the
	// dispatcher's diagnostic channel and never reaches the log caller.
	Log(ctx context.Context, entry core.LogEntry) error
}

// Flusher is implemented by transports that buffer entries internally.
type Flusher interface {
	Flush(ctx context.Context) error
}

// Cleaner is implemented by transports holding resources that need
// explicit release on shutdown.
type Cleaner interface {
	Cleanup(ctx context.Context) error
}

// StatsProvider is implemented by transports that track delivery counters.
type StatsProvider interface {
	GetStats() Stats
}

// Stats contains statistics about a transport.
type Stats struct {
	Type              string
	Name              string
	TotalProcessed    uint64
	ActiveConnections int64
	StartTime         time.Time
	LastProcessed     time.Time
	Details           map[string]any
}

// New is the factory mapping a typed transport configuration to a live
// instance. Unknown types are an error; the dispatcher itself never
// depends on any concrete implementation.
func New(cfg config.TransportConfig, logger *log.Logger) (Transport, error) {
	switch cfg.Type {
	case "console":
		return NewConsole(cfg.Name, cfg.Console, logger)
	case "file":
		return NewFile(cfg.Name, cfg.File, logger)
	case "http":
		return NewHTTP(cfg.Name, cfg.HTTP, logger)
	case "tcp":
		return NewTCPStream(cfg.Name, cfg.TCP, logger)
	default:
		return nil, fmt.Errorf("unknown transport type: %s", cfg.Type)
	}
}
