// FILE: src/internal/transport/console.go
package transport

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"logmux/src/internal/config"
	"logmux/src/internal/core"
	"logmux/src/internal/format"

	"github.com/lixenwraith/log"
)

// ConsoleTransport writes formatted entries to stdout or stderr. In
// "split" mode warn and error entries go to stderr, everything else to
// stdout.
type ConsoleTransport struct {
	name      string
	target    string
	stdout    io.Writer
	stderr    io.Writer
	writeMu   sync.Mutex
	formatter format.Formatter
	logger    *log.Logger
	startTime time.Time

	// Statistics
	totalProcessed atomic.Uint64
	lastProcessed  atomic.Value // time.Time
}

// NewConsole creates a new console transport.
func NewConsole(name string, opts *config.ConsoleTransportOptions, logger *log.Logger) (*ConsoleTransport, error) {
	target := "stdout"
	formatName := "text"
	if opts != nil {
		if opts.Target != "" {
			target = opts.Target
		}
		if opts.Format != "" {
			formatName = opts.Format
		}
	}

	switch target {
	case "stdout", "stderr", "split":
	default:
		return nil, fmt.Errorf("invalid console target: %s", target)
	}

	formatter, err := format.New(formatName, logger)
	if err != nil {
		return nil, err
	}

	c := &ConsoleTransport{
		name:      name,
		target:    target,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		formatter: formatter,
		logger:    logger,
		startTime: time.Now(),
	}
	c.lastProcessed.Store(time.Time{})

	return c, nil
}

// Name returns the transport's registry key.
func (c *ConsoleTransport) Name() string {
	return c.name
}

// Log formats the entry and writes it to the configured target.
func (c *ConsoleTransport) Log(ctx context.Context, entry core.LogEntry) error {
	formatted, err := c.formatter.Format(entry)
	if err != nil {
		return fmt.Errorf("failed to format entry: %w", err)
	}

	c.totalProcessed.Add(1)
	c.lastProcessed.Store(time.Now())

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if _, err := c.writerFor(entry.Level).Write(formatted); err != nil {
		return fmt.Errorf("console write failed: %w", err)
	}
	return nil
}

func (c *ConsoleTransport) writerFor(level core.Level) io.Writer {
	switch c.target {
	case "stderr":
		return c.stderr
	case "split":
		if level == core.LevelWarn || level == core.LevelError {
			return c.stderr
		}
		return c.stdout
	default:
		return c.stdout
	}
}

// GetStats returns the transport's statistics.
func (c *ConsoleTransport) GetStats() Stats {
	lastProc, _ := c.lastProcessed.Load().(time.Time)

	return Stats{
		Type:           "console",
		Name:           c.name,
		TotalProcessed: c.totalProcessed.Load(),
		StartTime:      c.startTime,
		LastProcessed:  lastProc,
		Details: map[string]any{
			"target": c.target,
			"format": c.formatter.Name(),
		},
	}
}
