package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{"-t", "tok", "-d", "postgres://db", "-driver", "postgres", "-r", "redis://r:6379/0",
				"-a", ":9090", "-g", ":50051", "-l", "debug"},
			expected: &Config{
				BotToken:    "tok",
				DatabaseDSN: "postgres://db",
				DBDriver:    "postgres",
				RedisURL:    "redis://r:6379/0",
				HTTPAddr:    ":9090",
				GRPCAddr:    ":50051",
				LogLevel:    "debug",
			},
		},
		{
			name:     "foreign flags ignored",
			args:     []string{"-c", "cfg.json", "-env", ".env", "-t", "tok"},
			expected: &Config{BotToken: "tok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}
			err := parseFlags(config, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(config, tt.expected))
		})
	}
}
