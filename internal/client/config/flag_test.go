package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	base := Config{ServerEndpointAddr: "http://localhost:3001", DataDir: "data", LogLevel: "info", ShutdownTimeout: time.Second}

	tests := []struct {
		name     string
		args     []string
		expected Config
	}{
		{
			name:     "all flags",
			args:     []string{"sf", "-a", "http://api:8080", "-d", "/tmp/sf", "-l", "debug"},
			expected: Config{ServerEndpointAddr: "http://api:8080", DataDir: "/tmp/sf", LogLevel: "debug", ShutdownTimeout: time.Second},
		},
		{
			name:     "unknown flags ignored",
			args:     []string{"sf", "-x", "1", "-l=warn"},
			expected: Config{ServerEndpointAddr: "http://localhost:3001", DataDir: "data", LogLevel: "warn", ShutdownTimeout: time.Second},
		},
		{
			name:     "no flags keeps values",
			args:     []string{"sf"},
			expected: base,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			cfg := base

			require.NotPanics(t, func() { parseFlags(&cfg) })
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
