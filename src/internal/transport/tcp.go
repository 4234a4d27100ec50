// FILE: src/internal/transport/tcp.go
package transport

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"logmux/src/internal/config"
	"logmux/src/internal/core"
	"logmux/src/internal/format"

	"github.com/lixenwraith/log"
	"github.com/lixenwraith/log/compat"
	"github.com/panjf2000/gnet/v2"
)

// TCPStreamTransport serves entries to connected TCP subscribers. Every
// accepted entry is formatted once and broadcast to all current
// connections; subscribers that repeatedly fail writes are evicted.
type TCPStreamTransport struct {
	name   string
	config *config.TCPTransportOptions

	// Network
	server   *tcpServer
	engine   *gnet.Engine
	engineMu sync.Mutex

	// Application
	formatter format.Formatter
	logger    *log.Logger

	// Runtime
	stopOnce  sync.Once
	startTime time.Time

	// Statistics
	activeConns    atomic.Int64
	totalProcessed atomic.Uint64
	lastProcessed  atomic.Value // time.Time

	// Error tracking
	writeErrors            atomic.Uint64
	consecutiveWriteErrors map[gnet.Conn]int
	errorMu                sync.Mutex
}

// NewTCPStream creates a TCP streaming transport and starts its server.
func NewTCPStream(name string, opts *config.TCPTransportOptions, logger *log.Logger) (*TCPStreamTransport, error) {
	if opts == nil {
		return nil, fmt.Errorf("TCP transport options cannot be nil")
	}

	formatter, err := format.New(opts.Format, logger)
	if err != nil {
		return nil, err
	}

	t := &TCPStreamTransport{
		name:                   name,
		config:                 opts,
		formatter:              formatter,
		logger:                 logger,
		startTime:              time.Now(),
		consecutiveWriteErrors: make(map[gnet.Conn]int),
	}
	t.lastProcessed.Store(time.Time{})

	t.server = &tcpServer{
		transport: t,
		clients:   make(map[gnet.Conn]struct{}),
	}

	addr := fmt.Sprintf("tcp://%s:%d", opts.Host, opts.Port)
	gnetLogger := compat.NewGnetAdapter(logger)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("msg", "Starting TCP stream server",
			"component", "tcp_transport",
			"name", name,
			"port", opts.Port)

		err := gnet.Run(t.server, addr,
			gnet.WithLogger(gnetLogger),
			gnet.WithMulticore(true),
			gnet.WithReusePort(true),
		)
		if err != nil {
			logger.Error("msg", "TCP stream server failed",
				"component", "tcp_transport",
				"name", name,
				"port", opts.Port,
				"error", err)
		}
		errChan <- err
	}()

	// Wait briefly for the server to start or fail
	select {
	case err := <-errChan:
		return nil, err
	case <-time.After(100 * time.Millisecond):
		logger.Info("msg", "TCP stream server started",
			"component", "tcp_transport",
			"name", name,
			"port", opts.Port)
		return t, nil
	}
}

// Name returns the transport's registry key.
func (t *TCPStreamTransport) Name() string {
	return t.name
}

// Log formats the entry and broadcasts it to all connected subscribers.
func (t *TCPStreamTransport) Log(ctx context.Context, entry core.LogEntry) error {
	data, err := t.formatter.Format(entry)
	if err != nil {
		return fmt.Errorf("failed to format entry: %w", err)
	}

	t.totalProcessed.Add(1)
	t.lastProcessed.Store(time.Now())

	t.broadcastData(data)
	return nil
}

// Cleanup shuts down the TCP server and disconnects all subscribers.
func (t *TCPStreamTransport) Cleanup(ctx context.Context) error {
	var stopErr error
	t.stopOnce.Do(func() {
		t.logger.Info("msg", "Stopping TCP stream transport",
			"component", "tcp_transport",
			"name", t.name)

		t.engineMu.Lock()
		engine := t.engine
		t.engineMu.Unlock()

		if engine != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			stopErr = (*engine).Stop(shutdownCtx)
		}
	})
	return stopErr
}

// GetStats returns the transport's statistics.
func (t *TCPStreamTransport) GetStats() Stats {
	lastProc, _ := t.lastProcessed.Load().(time.Time)

	return Stats{
		Type:              "tcp",
		Name:              t.name,
		TotalProcessed:    t.totalProcessed.Load(),
		ActiveConnections: t.activeConns.Load(),
		StartTime:         t.startTime,
		LastProcessed:     lastProc,
		Details: map[string]any{
			"port":         t.config.Port,
			"write_errors": t.writeErrors.Load(),
		},
	}
}

// broadcastData sends a formatted byte slice to all connected clients.
func (t *TCPStreamTransport) broadcastData(data []byte) {
	t.server.mu.RLock()
	defer t.server.mu.RUnlock()

	for conn := range t.server.clients {
		conn.AsyncWrite(data, func(c gnet.Conn, err error) error {
			if err != nil {
				t.writeErrors.Add(1)
				t.handleWriteError(c, err)
			} else {
				t.errorMu.Lock()
				delete(t.consecutiveWriteErrors, c)
				t.errorMu.Unlock()
			}
			return nil
		})
	}
}

// handleWriteError tracks per-connection failures, closing connections
// after three consecutive write errors.
func (t *TCPStreamTransport) handleWriteError(c gnet.Conn, err error) {
	remoteAddrStr := c.RemoteAddr().String()

	t.errorMu.Lock()
	defer t.errorMu.Unlock()

	t.consecutiveWriteErrors[c]++
	errorCount := t.consecutiveWriteErrors[c]

	t.logger.Debug("msg", "AsyncWrite error",
		"component", "tcp_transport",
		"name", t.name,
		"remote_addr", remoteAddrStr,
		"error", err,
		"consecutive_errors", errorCount)

	if errorCount >= 3 {
		t.logger.Warn("msg", "Closing connection due to repeated write errors",
			"component", "tcp_transport",
			"name", t.name,
			"remote_addr", remoteAddrStr,
			"error_count", errorCount)
		delete(t.consecutiveWriteErrors, c)
		c.Close()
	}
}

// tcpServer implements the gnet.EventHandler interface.
type tcpServer struct {
	gnet.BuiltinEventEngine
	transport *TCPStreamTransport
	clients   map[gnet.Conn]struct{}
	mu        sync.RWMutex
}

// OnBoot stores the engine reference for shutdown.
func (s *tcpServer) OnBoot(eng gnet.Engine) gnet.Action {
	s.transport.engineMu.Lock()
	s.transport.engine = &eng
	s.transport.engineMu.Unlock()

	s.transport.logger.Debug("msg", "TCP stream server booted",
		"component", "tcp_transport",
		"name", s.transport.name,
		"port", s.transport.config.Port)
	return gnet.None
}

// OnOpen registers a new subscriber connection.
func (s *tcpServer) OnOpen(c gnet.Conn) (out []byte, action gnet.Action) {
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	newCount := s.transport.activeConns.Add(1)
	s.transport.logger.Debug("msg", "TCP subscriber connected",
		"component", "tcp_transport",
		"name", s.transport.name,
		"remote_addr", c.RemoteAddr().String(),
		"active_connections", newCount)

	return nil, gnet.None
}

// OnClose removes subscriber state.
func (s *tcpServer) OnClose(c gnet.Conn, err error) gnet.Action {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()

	s.transport.errorMu.Lock()
	delete(s.transport.consecutiveWriteErrors, c)
	s.transport.errorMu.Unlock()

	newCount := s.transport.activeConns.Add(-1)
	s.transport.logger.Debug("msg", "TCP subscriber disconnected",
		"component", "tcp_transport",
		"name", s.transport.name,
		"remote_addr", c.RemoteAddr().String(),
		"active_connections", newCount,
		"error", err)
	return gnet.None
}

// OnTraffic discards inbound data; subscribers are read-only.
func (s *tcpServer) OnTraffic(c gnet.Conn) gnet.Action {
	c.Discard(-1)
	return gnet.None
}
