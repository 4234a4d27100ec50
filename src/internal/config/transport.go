// FILE: src/internal/config/transport.go
package config

import (
	"logmux/src/internal/core"
)

// TransportConfig is one declared output destination. Exactly one of the
// typed option blocks should be set, matching Type.
type TransportConfig struct {
	// Registry name referenced by module transport lists
	Name string `toml:"name" json:"name"`

	// Transport type: "console", "file", "http", "tcp"
	Type string `toml:"type" json:"type"`

	Console *ConsoleTransportOptions `toml:"console" json:"console,omitempty"`
	File    *FileTransportOptions    `toml:"file" json:"file,omitempty"`
	HTTP    *HTTPTransportOptions    `toml:"http" json:"http,omitempty"`
	TCP     *TCPTransportOptions     `toml:"tcp" json:"tcp,omitempty"`
}

// ConsoleTransportOptions configures a console transport.
type ConsoleTransportOptions struct {
	// Output target: "stdout", "stderr", or "split"
	Target string `toml:"target" json:"target"`

	// Entry serialization: "text" (default) or "json"
	Format string `toml:"format" json:"format"`
}

// FileTransportOptions configures a file transport. Rotation, retention
// and disk-free enforcement are handled by the underlying writer.
type FileTransportOptions struct {
	Directory      string `toml:"directory" json:"directory"`
	Filename       string `toml:"filename" json:"filename"`
	MaxSizeMB      int64  `toml:"max_size_mb" json:"maxSizeMB"`
	MaxTotalSizeMB int64  `toml:"max_total_size_mb" json:"maxTotalSizeMB"`
	RetentionHours int64  `toml:"retention_hours" json:"retentionHours"`
	MinDiskFreeMB  int64  `toml:"min_disk_free_mb" json:"minDiskFreeMB"`
	Format         string `toml:"format" json:"format"`
}

// HTTPTransportOptions configures an HTTP delivery transport.
type HTTPTransportOptions struct {
	URL string `toml:"url" json:"url"`

	// Batching
	BatchSize    int64 `toml:"batch_size" json:"batchSize"`
	BatchDelayMS int64 `toml:"batch_delay_ms" json:"batchDelayMS"`

	// Retry
	MaxRetries   int64   `toml:"max_retries" json:"maxRetries"`
	RetryDelayMS int64   `toml:"retry_delay_ms" json:"retryDelayMS"`
	RetryBackoff float64 `toml:"retry_backoff" json:"retryBackoff"`

	// Request timeout in seconds
	TimeoutSeconds int64 `toml:"timeout_seconds" json:"timeoutSeconds"`

	// Delivery rate cap in batches per second; zero disables limiting
	RateLimit float64 `toml:"rate_limit" json:"rateLimit"`

	// Extra headers attached to every request
	Headers map[string]string `toml:"headers" json:"headers,omitempty"`
}

// TCPTransportOptions configures a TCP streaming transport that serves
// entries to connected subscribers.
type TCPTransportOptions struct {
	Host   string `toml:"host" json:"host"`
	Port   int64  `toml:"port" json:"port"`
	Format string `toml:"format" json:"format"`
}

func (t *TransportConfig) applyDefaults() {
	switch t.Type {
	case "console":
		if t.Console == nil {
			t.Console = &ConsoleTransportOptions{}
		}
		if t.Console.Target == "" {
			t.Console.Target = "stdout"
		}
		if t.Console.Format == "" {
			t.Console.Format = "text"
		}
	case "file":
		if t.File == nil {
			t.File = &FileTransportOptions{}
		}
		if t.File.Directory == "" {
			t.File.Directory = "./"
		}
		if t.File.Filename == "" {
			t.File.Filename = "logmux.output"
		}
		if t.File.Format == "" {
			t.File.Format = "json"
		}
	case "http":
		if t.HTTP == nil {
			t.HTTP = &HTTPTransportOptions{}
		}
		if t.HTTP.BatchSize <= 0 {
			t.HTTP.BatchSize = core.DefaultBatchSize
		}
		if t.HTTP.BatchDelayMS <= 0 {
			t.HTTP.BatchDelayMS = 1000
		}
		if t.HTTP.RetryDelayMS <= 0 {
			t.HTTP.RetryDelayMS = 500
		}
		if t.HTTP.RetryBackoff <= 0 {
			t.HTTP.RetryBackoff = 2.0
		}
		if t.HTTP.TimeoutSeconds <= 0 {
			t.HTTP.TimeoutSeconds = 10
		}
	case "tcp":
		if t.TCP == nil {
			t.TCP = &TCPTransportOptions{}
		}
		if t.TCP.Host == "" {
			t.TCP.Host = "0.0.0.0"
		}
		if t.TCP.Format == "" {
			t.TCP.Format = "json"
		}
	}
}
