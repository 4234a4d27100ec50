// FILE: src/cmd/logmux/flags.go
package main

import (
	"flag"
	"fmt"
	"os"

	"logmux/src/internal/core"
)

// FlagConfig carries parsed command-line flags.
type FlagConfig struct {
	ConfigFile  string
	ShowVersion bool
	Quiet       bool

	// Module and level assigned to plain stdin lines
	Module string
	Level  string

	// Path of a dispatch snapshot to watch for live reload
	WatchFile string
}

var (
	configFile  = flag.String("config", "", "Config file path")
	showVersion = flag.Bool("version", false, "Show version information")
	quiet       = flag.Bool("quiet", false, "Suppress console output")

	moduleName = flag.String("module", "stdin", "Module name for plain stdin lines")
	lineLevel  = flag.String("level", "info", "Level for plain stdin lines: trace, debug, info, warn, error")

	watchFile = flag.String("watch", "", "Dispatch snapshot file to watch for live reload")
)

func init() {
	flag.Usage = customUsage
}

func customUsage() {
	fmt.Fprintf(os.Stderr, "LogMux - Structured Log Dispatch Service\n\n")
	fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Reads log lines from stdin and routes them to configured transports.\n")
	fmt.Fprintf(os.Stderr, "Lines that parse as JSON entries keep their own module and level;\n")
	fmt.Fprintf(os.Stderr, "plain lines use the -module and -level flags.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")

	fmt.Fprintf(os.Stderr, "\nGeneral:\n")
	fmt.Fprintf(os.Stderr, "  -config string\n\tConfig file path\n")
	fmt.Fprintf(os.Stderr, "  -version\n\tShow version information\n")
	fmt.Fprintf(os.Stderr, "  -quiet\n\tSuppress console output\n")

	fmt.Fprintf(os.Stderr, "\nInput:\n")
	fmt.Fprintf(os.Stderr, "  -module string\n\tModule name for plain stdin lines (default \"stdin\")\n")
	fmt.Fprintf(os.Stderr, "  -level string\n\tLevel for plain stdin lines: trace, debug, info, warn, error (default \"info\")\n")

	fmt.Fprintf(os.Stderr, "\nReload:\n")
	fmt.Fprintf(os.Stderr, "  -watch string\n\tDispatch snapshot file to watch for live reload\n")

	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  # Route application output with default config\n")
	fmt.Fprintf(os.Stderr, "  app 2>&1 | %s\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "  # Tag plain lines and watch a snapshot for level changes\n")
	fmt.Fprintf(os.Stderr, "  app | %s --module app --watch /etc/logmux/dispatch.json\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "Environment Variables:\n")
	fmt.Fprintf(os.Stderr, "  LOGMUX_CONFIG_FILE  Config file path\n")
	fmt.Fprintf(os.Stderr, "  LOGMUX_CONFIG_DIR   Config directory\n")
}

func parseFlags() (*FlagConfig, error) {
	flag.Parse()

	if *lineLevel != "" {
		if _, err := core.ParseLevel(*lineLevel); err != nil {
			return nil, fmt.Errorf("invalid level: %s (valid: trace, debug, info, warn, error)", *lineLevel)
		}
	}

	return &FlagConfig{
		ConfigFile:  *configFile,
		ShowVersion: *showVersion,
		Quiet:       *quiet,
		Module:      *moduleName,
		Level:       *lineLevel,
		WatchFile:   *watchFile,
	}, nil
}
