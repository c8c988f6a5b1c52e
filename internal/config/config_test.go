package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/pcrex"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultPattern, cfg.Pattern)
	assert.Equal(t, DefaultSubject, cfg.Subject)
	assert.Equal(t, DefaultAddress, cfg.Address)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Engine)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, cfg *Config)
		wantErr bool
	}{
		{
			name:    "partial file keeps defaults",
			content: "address: 127.0.0.1:9999\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "127.0.0.1:9999", cfg.Address)
				assert.Equal(t, DefaultPattern, cfg.Pattern)
			},
		},
		{
			name: "all fields",
			content: `pattern: 'a+'
subject: 'baaa'
address: '[::1]:7000'
engine: linear
options: [caseless, utf]
log_level: debug
receive_buffer: 65536
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "a+", cfg.Pattern)
				assert.Equal(t, "baaa", cfg.Subject)
				assert.Equal(t, "[::1]:7000", cfg.Address)
				assert.Equal(t, "linear", cfg.Engine)
				assert.Equal(t, []string{"caseless", "utf"}, cfg.Options)
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, 65536, cfg.ReceiveBuffer)
			},
		},
		{
			name:    "malformed yaml",
			content: "pattern: [unclosed\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "pcrex.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			cfg, err := Load(path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{"empty pattern", func(c *Config) { c.Pattern = "" }, "pattern must not be empty"},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, "invalid log_level"},
		{"negative buffer", func(c *Config) { c.ReceiveBuffer = -1 }, "receive_buffer"},
		{"unknown engine", func(c *Config) { c.Engine = "perl" }, "unknown engine"},
		{"unknown option", func(c *Config) { c.Options = []string{"jit"} }, "unknown option"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestParseOptions(t *testing.T) {
	opts, err := ParseOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, pcrex.DefaultOptions, opts)

	opts, err = ParseOptions([]string{"Caseless", " multiline "})
	require.NoError(t, err)
	assert.Equal(t, pcrex.Caseless|pcrex.Multiline, opts)

	opts, err = ParseOptions([]string{"ascii"})
	require.NoError(t, err)
	assert.Equal(t, pcrex.ASCIIOptions, opts)
}

func TestRegexConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine = "linear"
	cfg.Options = []string{"caseless"}

	rc, err := cfg.RegexConfig()
	require.NoError(t, err)
	assert.Equal(t, "linear", rc.Library.Name())
	assert.Equal(t, pcrex.Caseless, rc.Options)
}
