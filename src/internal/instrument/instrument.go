// FILE: src/internal/instrument/instrument.go
// Package instrument decorates functions with entry/exit/duration
// logging and retry behavior, routed through a module logger.
package instrument

import (
	"context"
	"fmt"
	"time"
)

// Logger is the subset of a module logger the decorators need. Both
// dispatch.ModuleLogger and registry.Logger satisfy it.
type Logger interface {
	Debug(args ...any)
	Warn(args ...any)
	Error(args ...any)
}

// Wrap returns fn decorated with debug logging of entry, exit and
// duration. Errors are logged and passed through unchanged.
func Wrap(logger Logger, name string, fn func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		logger.Debug("entering", name)
		start := time.Now()

		err := fn(ctx)

		elapsed := time.Since(start)
		if err != nil {
			logger.Error(name, "failed after", elapsed.String(), "error:", err)
			return err
		}
		logger.Debug("exiting", name, "after", elapsed.String())
		return nil
	}
}

// WrapResult is Wrap for functions that return a value alongside the
// error.
func WrapResult[T any](logger Logger, name string, fn func(context.Context) (T, error)) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		logger.Debug("entering", name)
		start := time.Now()

		result, err := fn(ctx)

		elapsed := time.Since(start)
		if err != nil {
			logger.Error(name, "failed after", elapsed.String(), "error:", err)
			return result, err
		}
		logger.Debug("exiting", name, "after", elapsed.String())
		return result, nil
	}
}

// Retry runs fn up to attempts times with exponentially growing delay
// between tries, logging each failure. The context cancels waiting
// between attempts. The last error is returned when all attempts fail.
func Retry(ctx context.Context, logger Logger, name string, attempts int, delay time.Duration, fn func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	wait := delay
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := fn(ctx); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if attempt == attempts {
			break
		}

		logger.Warn(name, "attempt", attempt, "of", attempts, "failed:", lastErr, "- retrying in", wait.String())

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s canceled after %d attempts: %w", name, attempt, ctx.Err())
		case <-time.After(wait):
		}

		// Double with overflow protection
		next := wait * 2
		if next < wait {
			next = wait
		}
		wait = next
	}

	logger.Error(name, "exhausted", attempts, "attempts:", lastErr)
	return fmt.Errorf("%s failed after %d attempts: %w", name, attempts, lastErr)
}
