// FILE: src/internal/transport/http.go
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
	"logmux/src/internal/version"

	"github.com/lixenwraith/log"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

// HTTPTransport forwards entries to a remote HTTP endpoint in batches.
// Entries accumulate until the batch size or delay trigger fires; failed
// batches are retried with capped exponential backoff. Retry is this
// transport's own policy, the dispatcher never retries.
type HTTPTransport struct {
	name   string
	config *config.HTTPTransportOptions

	// Network
	client  *fasthttp.Client
	limiter *rate.Limiter

	// Application
	formatter *format.JSONFormatter
	logger    *log.Logger

	// Batching
	batch   []core.LogEntry
	batchMu sync.Mutex

	// Runtime
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
	startTime time.Time

	// Statistics
	totalProcessed atomic.Uint64
	totalBatches   atomic.Uint64
	failedBatches  atomic.Uint64
	droppedBatches atomic.Uint64
	lastProcessed  atomic.Value // time.Time
	lastBatchSent  atomic.Value // time.Time
	activeRequests atomic.Int64
}

// NewHTTP creates a new HTTP transport and starts its batch timer.
func NewHTTP(name string, opts *config.HTTPTransportOptions, logger *log.Logger) (*HTTPTransport, error) {
	if opts == nil {
		return nil, fmt.Errorf("HTTP transport options cannot be nil")
	}
	if opts.URL == "" {
		return nil, fmt.Errorf("HTTP transport requires a URL")
	}

	h := &HTTPTransport{
		name:      name,
		config:    opts,
		batch:     make([]core.LogEntry, 0, opts.BatchSize),
		done:      make(chan struct{}),
		startTime: time.Now(),
		logger:    logger,
		formatter: format.NewJSONFormatter(false, logger),
	}
	h.lastProcessed.Store(time.Time{})
	h.lastBatchSent.Store(time.Time{})

	h.client = &fasthttp.Client{
		MaxConnsPerHost:               10,
		MaxIdleConnDuration:           10 * time.Second,
		ReadTimeout:                   time.Duration(opts.TimeoutSeconds) * time.Second,
		WriteTimeout:                  time.Duration(opts.TimeoutSeconds) * time.Second,
		DisableHeaderNamesNormalizing: true,
	}

	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		h.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	h.wg.Add(1)
	go h.batchTimer()

	logger.Info("msg", "HTTP transport started",
		"component", "http_transport",
		"name", name,
		"url", opts.URL,
		"batch_size", opts.BatchSize,
		"batch_delay_ms", opts.BatchDelayMS)

	return h, nil
}

// Name returns the transport's registry key.
func (h *HTTPTransport) Name() string {
	return h.name
}

// Log adds the entry to the current batch, sending it in the background
// when the size trigger fires. Delivery failures never surface here.
func (h *HTTPTransport) Log(ctx context.Context, entry core.LogEntry) error {
	h.totalProcessed.Add(1)
	h.lastProcessed.Store(time.Now())

	h.batchMu.Lock()
	h.batch = append(h.batch, entry)

	if int64(len(h.batch)) >= h.config.BatchSize {
		batch := h.batch
		h.batch = make([]core.LogEntry, 0, h.config.BatchSize)
		h.batchMu.Unlock()

		go h.sendBatch(batch)
		return nil
	}
	h.batchMu.Unlock()
	return nil
}

// Flush synchronously sends any pending batched entries.
func (h *HTTPTransport) Flush(ctx context.Context) error {
	h.batchMu.Lock()
	if len(h.batch) == 0 {
		h.batchMu.Unlock()
		return nil
	}
	batch := h.batch
	h.batch = make([]core.LogEntry, 0, h.config.BatchSize)
	h.batchMu.Unlock()

	h.sendBatch(batch)
	return nil
}

// Cleanup stops the batch timer and drains remaining entries.
func (h *HTTPTransport) Cleanup(ctx context.Context) error {
	h.closeOnce.Do(func() {
		close(h.done)
	})
	h.wg.Wait()

	if err := h.Flush(ctx); err != nil {
		return err
	}

	h.logger.Info("msg", "HTTP transport stopped",
		"component", "http_transport",
		"name", h.name,
		"total_processed", h.totalProcessed.Load(),
		"total_batches", h.totalBatches.Load(),
		"failed_batches", h.failedBatches.Load())
	return nil
}

// GetStats returns the transport's statistics.
func (h *HTTPTransport) GetStats() Stats {
	lastProc, _ := h.lastProcessed.Load().(time.Time)
	lastBatch, _ := h.lastBatchSent.Load().(time.Time)

	h.batchMu.Lock()
	pendingEntries := len(h.batch)
	h.batchMu.Unlock()

	return Stats{
		Type:              "http",
		Name:              h.name,
		TotalProcessed:    h.totalProcessed.Load(),
		ActiveConnections: h.activeRequests.Load(),
		StartTime:         h.startTime,
		LastProcessed:     lastProc,
		Details: map[string]any{
			"url":             h.config.URL,
			"batch_size":      h.config.BatchSize,
			"pending_entries": pendingEntries,
			"total_batches":   h.totalBatches.Load(),
			"failed_batches":  h.failedBatches.Load(),
			"dropped_batches": h.droppedBatches.Load(),
			"last_batch_sent": lastBatch,
		},
	}
}

// batchTimer periodically triggers sending of the current batch.
func (h *HTTPTransport) batchTimer() {
	defer h.wg.Done()

	ticker := time.NewTicker(time.Duration(h.config.BatchDelayMS) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.batchMu.Lock()
			if len(h.batch) > 0 {
				batch := h.batch
				h.batch = make([]core.LogEntry, 0, h.config.BatchSize)
				h.batchMu.Unlock()

				go h.sendBatch(batch)
			} else {
				h.batchMu.Unlock()
			}

		case <-h.done:
			return
		}
	}
}

// sendBatch sends a batch of entries to the remote endpoint with retry.
func (h *HTTPTransport) sendBatch(batch []core.LogEntry) {
	if h.limiter != nil && !h.limiter.Allow() {
		h.droppedBatches.Add(1)
		h.logger.Warn("msg", "Batch dropped by rate limiter",
			"component", "http_transport",
			"name", h.name,
			"batch_size", len(batch))
		return
	}

	h.activeRequests.Add(1)
	defer h.activeRequests.Add(-1)

	h.totalBatches.Add(1)
	h.lastBatchSent.Store(time.Now())

	body, err := h.formatter.FormatBatch(batch)
	if err != nil {
		h.logger.Error("msg", "Failed to format batch",
			"component", "http_transport",
			"name", h.name,
			"error", err,
			"batch_size", len(batch))
		h.failedBatches.Add(1)
		return
	}

	var lastErr error
	retryDelay := time.Duration(h.config.RetryDelayMS) * time.Millisecond

	for attempt := int64(0); attempt <= h.config.MaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)

			// Calculate new delay with overflow protection
			newDelay := time.Duration(float64(retryDelay) * h.config.RetryBackoff)
			timeout := time.Duration(h.config.TimeoutSeconds) * time.Second
			if newDelay > timeout || newDelay < retryDelay {
				retryDelay = timeout
			} else {
				retryDelay = newDelay
			}
		}

		// Acquire resources inside loop, release immediately after use
		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()

		req.SetRequestURI(h.config.URL)
		req.Header.SetMethod(fasthttp.MethodPost)
		req.Header.SetContentType("application/json")
		req.Header.Set("User-Agent", fmt.Sprintf("logmux/%s", version.Short()))
		for k, v := range h.config.Headers {
			req.Header.Set(k, v)
		}
		req.SetBody(body)

		err := h.client.DoTimeout(req, resp, time.Duration(h.config.TimeoutSeconds)*time.Second)

		// Capture response before releasing
		statusCode := resp.StatusCode()
		var responseBody []byte
		if len(resp.Body()) > 0 {
			responseBody = make([]byte, len(resp.Body()))
			copy(responseBody, resp.Body())
		}

		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)

		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			h.logger.Warn("msg", "HTTP request failed",
				"component", "http_transport",
				"name", h.name,
				"attempt", attempt+1,
				"max_retries", h.config.MaxRetries,
				"error", err)
			continue
		}

		if statusCode >= 200 && statusCode < 300 {
			h.logger.Debug("msg", "Batch sent successfully",
				"component", "http_transport",
				"name", h.name,
				"batch_size", len(batch),
				"status_code", statusCode,
				"attempt", attempt+1)
			return
		}

		lastErr = fmt.Errorf("server returned status %d: %s", statusCode, responseBody)

		// Don't retry on 4xx errors (client errors)
		if statusCode >= 400 && statusCode < 500 {
			h.logger.Error("msg", "Batch rejected by server",
				"component", "http_transport",
				"name", h.name,
				"status_code", statusCode,
				"response", string(responseBody),
				"batch_size", len(batch))
			h.failedBatches.Add(1)
			return
		}

		h.logger.Warn("msg", "Server returned error status",
			"component", "http_transport",
			"name", h.name,
			"attempt", attempt+1,
			"status_code", statusCode,
			"response", string(responseBody))
	}

	h.logger.Error("msg", "Failed to send batch after all retries",
		"component", "http_transport",
		"name", h.name,
		"batch_size", len(batch),
		"retries", h.config.MaxRetries,
		"last_error", lastErr)
	h.failedBatches.Add(1)
}
