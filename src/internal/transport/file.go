// FILE: src/internal/transport/file.go
package transport

import (
	"bytes"
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"logmux/src/internal/config"
	"logmux/src/internal/core"
	"logmux/src/internal/format"

	"github.com/lixenwraith/log"
)

// FileTransport persists entries to disk. Rotation, retention and
// disk-free enforcement are delegated to an internal log writer instance.
type FileTransport struct {
	name      string
	writer    *log.Logger // internal writer for file output
	formatter format.Formatter
	logger    *log.Logger // diagnostic logger
	startTime time.Time

	// Statistics
	totalProcessed atomic.Uint64
	lastProcessed  atomic.Value // time.Time
}

// NewFile creates a new file transport.
func NewFile(name string, opts *config.FileTransportOptions, logger *log.Logger) (*FileTransport, error) {
	if opts == nil {
		opts = &config.FileTransportOptions{Directory: "./", Filename: "logmux.output", Format: "json"}
	}

	formatter, err := format.New(opts.Format, logger)
	if err != nil {
		return nil, err
	}

	writerConfig := log.DefaultConfig()
	writerConfig.Directory = opts.Directory
	writerConfig.Name = opts.Filename
	writerConfig.EnableConsole = false // File only
	writerConfig.ShowTimestamp = false // Entries carry their own timestamps
	writerConfig.ShowLevel = false     // Entries carry their own levels

	if opts.MaxSizeMB > 0 {
		writerConfig.MaxSizeKB = opts.MaxSizeMB * 1000
	}
	if opts.MaxTotalSizeMB > 0 {
		writerConfig.MaxTotalSizeKB = opts.MaxTotalSizeMB * 1000
	}
	if opts.RetentionHours > 0 {
		writerConfig.RetentionPeriodHrs = float64(opts.RetentionHours)
	}
	if opts.MinDiskFreeMB > 0 {
		writerConfig.MinDiskFreeKB = opts.MinDiskFreeMB * 1000
	}

	writer := log.NewLogger()
	if err := writer.ApplyConfig(writerConfig); err != nil {
		return nil, fmt.Errorf("failed to initialize file writer: %w", err)
	}
	if err := writer.Start(); err != nil {
		return nil, fmt.Errorf("failed to start file writer: %w", err)
	}

	ft := &FileTransport{
		name:      name,
		writer:    writer,
		formatter: formatter,
		logger:    logger,
		startTime: time.Now(),
	}
	ft.lastProcessed.Store(time.Time{})

	return ft, nil
}

// Name returns the transport's registry key.
func (ft *FileTransport) Name() string {
	return ft.name
}

// Log formats the entry and hands it to the file writer.
func (ft *FileTransport) Log(ctx context.Context, entry core.LogEntry) error {
	formatted, err := ft.formatter.Format(entry)
	if err != nil {
		return fmt.Errorf("failed to format entry: %w", err)
	}

	ft.totalProcessed.Add(1)
	ft.lastProcessed.Store(time.Now())

	// Convert to string to prevent hex encoding of []byte by log package
	// Strip new line, writer adds it
	ft.writer.Message(string(bytes.TrimSuffix(formatted, []byte{'\n'})))
	return nil
}

// Cleanup drains and shuts down the file writer.
func (ft *FileTransport) Cleanup(ctx context.Context) error {
	if err := ft.writer.Shutdown(2 * time.Second); err != nil {
		return fmt.Errorf("error shutting down file writer: %w", err)
	}
	return nil
}

// GetStats returns the transport's statistics.
func (ft *FileTransport) GetStats() Stats {
	lastProc, _ := ft.lastProcessed.Load().(time.Time)

	return Stats{
		Type:           "file",
		Name:           ft.name,
		TotalProcessed: ft.totalProcessed.Load(),
		StartTime:      ft.startTime,
		LastProcessed:  lastProc,
		Details: map[string]any{
			"format": ft.formatter.Name(),
		},
	}
}
