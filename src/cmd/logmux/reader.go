// FILE: src/cmd/logmux/reader.go
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	"logmux/src/internal/core"
	"logmux/src/internal/registry"
)

// stdinEntry is the shape accepted for JSON-formatted input lines.
// Missing fields fall back to the flag defaults.
type stdinEntry struct {
	Level   string `json:"level"`
	Module  string `json:"module"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// readLines consumes input line by line and routes each through the hub.
// JSON object lines carrying a message use their own module and level;
// anything else is logged verbatim under the fallback module and level.
// Returns when input reaches EOF or the context is canceled.
func readLines(ctx context.Context, r io.Reader, hub *registry.Hub, fallbackModule string, fallbackLevel core.Level) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		module, level, message, data := parseLine(line, fallbackModule, fallbackLevel)
		hub.GetLogger(module).Log(level, message, data)
	}

	if err := scanner.Err(); err != nil {
		logger.Warn("msg", "Input read error", "error", err)
	}
}

func parseLine(line, fallbackModule string, fallbackLevel core.Level) (string, core.Level, string, any) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return fallbackModule, fallbackLevel, line, nil
	}

	var entry stdinEntry
	if err := json.Unmarshal([]byte(trimmed), &entry); err != nil || entry.Message == "" {
		return fallbackModule, fallbackLevel, line, nil
	}

	module := entry.Module
	if module == "" {
		module = fallbackModule
	}

	level := fallbackLevel
	if entry.Level != "" {
		parsed, err := core.ParseLevel(entry.Level)
		if err != nil {
			return fallbackModule, fallbackLevel, line, nil
		}
		level = parsed
	}

	return module, level, entry.Message, entry.Data
}
