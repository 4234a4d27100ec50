// FILE: src/cmd/logmux/reader_test.go
package main

import (
	"testing"

	"logmux/src/internal/core"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	testCases := []struct {
		name        string
		line        string
		wantModule  string
		wantLevel   core.Level
		wantMessage string
	}{
		{
			name:        "plain line uses fallbacks",
			line:        "something happened",
			wantModule:  "app",
			wantLevel:   core.LevelInfo,
			wantMessage: "something happened",
		},
		{
			name:        "json entry keeps own fields",
			line:        `{"level":"error","module":"db","message":"query failed"}`,
			wantModule:  "db",
			wantLevel:   core.LevelError,
			wantMessage: "query failed",
		},
		{
			name:        "json without module falls back",
			line:        `{"level":"warn","message":"slow"}`,
			wantModule:  "app",
			wantLevel:   core.LevelWarn,
			wantMessage: "slow",
		},
		{
			name:        "json without message treated as plain",
			line:        `{"level":"warn"}`,
			wantModule:  "app",
			wantLevel:   core.LevelInfo,
			wantMessage: `{"level":"warn"}`,
		},
		{
			name:        "invalid json treated as plain",
			line:        `{broken`,
			wantModule:  "app",
			wantLevel:   core.LevelInfo,
			wantMessage: `{broken`,
		},
		{
			name:        "unknown level treated as plain",
			line:        `{"level":"loud","message":"hi"}`,
			wantModule:  "app",
			wantLevel:   core.LevelInfo,
			wantMessage: `{"level":"loud","message":"hi"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			module, level, message, _ := parseLine(tc.line, "app", core.LevelInfo)
			assert.Equal(t, tc.wantModule, module)
			assert.Equal(t, tc.wantLevel, level)
			assert.Equal(t, tc.wantMessage, message)
		})
	}
}
