// FILE: src/internal/core/const.go
package core

// DefaultTransport is the transport name entries fall back to when a
// module has no configured transport list.
const DefaultTransport = "console"

// Default buffer and batch sizes shared by transports
const (
	DefaultBufferSize = 1000
	DefaultBatchSize  = 100
)
