// FILE: src/cmd/logmux/bootstrap.go
package main

import (
	"fmt"
	"strings"

	"logmux/src/internal/config"
	"logmux/src/internal/registry"
	"logmux/src/internal/transport"

	"github.com/lixenwraith/log"
)

// bootstrapHub builds the hub and attaches every declared transport.
// A transport that fails construction is skipped with a diagnostic; the
// service refuses to start only when nothing could be attached.
func bootstrapHub(cfg *config.AppConfig) (*registry.Hub, error) {
	hub := registry.NewHub(&cfg.Dispatch, logger)

	attached := 0
	for _, tc := range cfg.Transports {
		t, err := transport.New(tc, logger)
		if err != nil {
			logger.Error("msg", "Failed to create transport",
				"transport", tc.Name,
				"type", tc.Type,
				"error", err)
			continue
		}
		hub.AddTransport(t)
		attached++

		logger.Info("msg", "Transport attached",
			"transport", tc.Name,
			"type", tc.Type)
	}

	if attached == 0 {
		return nil, fmt.Errorf("no transports successfully attached (attempted %d)", len(cfg.Transports))
	}

	return hub, nil
}

// initializeLogger sets up the diagnostic logger from configuration
func initializeLogger(cfg *config.AppConfig, flagCfg *FlagConfig) error {
	logger = log.NewLogger()

	var configArgs []string

	if flagCfg.Quiet {
		// In quiet mode, disable ALL diagnostic output
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=false",
			"level=255")

		if err := logger.ApplyConfigString(configArgs...); err != nil {
			return err
		}
		return logger.Start()
	}

	levelValue, err := parseDiagLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	configArgs = append(configArgs, fmt.Sprintf("level=%d", levelValue))

	switch cfg.Logging.Output {
	case "none":
		configArgs = append(configArgs, "disable_file=true", "enable_stdout=false")

	case "stdout":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stdout")

	case "stderr":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stderr")

	case "file":
		configArgs = append(configArgs,
			"enable_stdout=false",
			fmt.Sprintf("directory=%s", cfg.Logging.Directory),
			fmt.Sprintf("name=%s", cfg.Logging.Name))

	default:
		return fmt.Errorf("invalid log output mode: %s", cfg.Logging.Output)
	}

	if err := logger.ApplyConfigString(configArgs...); err != nil {
		return err
	}
	return logger.Start()
}

func parseDiagLevel(level string) (int, error) {
	switch strings.ToLower(level) {
	case "debug":
		return int(log.LevelDebug), nil
	case "info":
		return int(log.LevelInfo), nil
	case "warn", "warning":
		return int(log.LevelWarn), nil
	case "error":
		return int(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}
