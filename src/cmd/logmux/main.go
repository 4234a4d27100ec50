// FILE: src/cmd/logmux/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"logmux/src/internal/config"
	"logmux/src/internal/core"
	"logmux/src/internal/registry"
	"logmux/src/internal/version"

	"github.com/lixenwraith/log"
)

var logger *log.Logger

func main() {
	// Parse flags first to get quiet mode early
	flagCfg, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	InitOutputHandler(flagCfg.Quiet)

	if flagCfg.ShowVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	// Set config file environment if specified
	if flagCfg.ConfigFile != "" {
		os.Setenv("LOGMUX_CONFIG_FILE", flagCfg.ConfigFile)
	}

	cfg, err := config.LoadWithCLI(os.Args[1:])
	if err != nil {
		if flagCfg.ConfigFile != "" && strings.Contains(err.Error(), "not found") {
			FatalError(2, "Config file not found: %s\n", flagCfg.ConfigFile)
		}
		FatalError(1, "Failed to load config: %v\n", err)
	}

	if err := initializeLogger(cfg, flagCfg); err != nil {
		FatalError(1, "Failed to initialize logger: %v\n", err)
	}
	defer shutdownLogger()

	logger.Info("msg", "LogMux starting",
		"version", version.String(),
		"config_file", flagCfg.ConfigFile,
		"log_output", cfg.Logging.Output)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	hub, err := bootstrapHub(cfg)
	if err != nil {
		logger.Error("msg", "Failed to bootstrap dispatch hub", "error", err)
		os.Exit(1)
	}
	registry.SetDefault(hub)

	// Watch a dispatch snapshot for live reconfiguration if requested
	var watcher *registry.Watcher
	if flagCfg.WatchFile != "" {
		watcher = registry.NewWatcher(flagCfg.WatchFile, hub, logger)
		if err := watcher.Start(); err != nil {
			logger.Error("msg", "Failed to start config watcher",
				"path", flagCfg.WatchFile,
				"error", err)
			os.Exit(1)
		}
	}

	fallbackLevel, _ := core.ParseLevel(flagCfg.Level)

	logger.Info("msg", "LogMux started",
		"version", version.Short(),
		"transports", len(hub.Dispatcher().ListTransports()),
		"session", hub.Dispatcher().SessionID())

	// Route stdin until it closes, then shut down
	inputDone := make(chan struct{})
	go func() {
		defer close(inputDone)
		readLines(ctx, os.Stdin, hub, flagCfg.Module, fallbackLevel)
	}()

	select {
	case sig := <-sigChan:
		logger.Info("msg", "Shutdown signal received, starting graceful shutdown...",
			"signal", sig.String())
	case <-inputDone:
		logger.Info("msg", "Input closed, starting graceful shutdown...")
	}
	cancel()

	if watcher != nil {
		if err := watcher.Stop(); err != nil {
			logger.Warn("msg", "Config watcher stop error", "error", err)
		}
	}

	// Shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	done := make(chan struct{})
	go func() {
		hub.Shutdown(shutdownCtx)
		close(done)
	}()

	select {
	case <-done:
		logger.Info("msg", "Shutdown complete")
	case <-shutdownCtx.Done():
		logger.Error("msg", "Shutdown timeout exceeded - forcing exit")
		os.Exit(1)
	}
}

func shutdownLogger() {
	if logger != nil {
		if err := logger.Shutdown(2 * time.Second); err != nil {
			// Best effort - can't log the shutdown error
			Error("Logger shutdown error: %v\n", err)
		}
	}
}
