package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/btcvanity/internal/logger"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(PortEnv, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:3000", cfg.Server.Addr())
	assert.Equal(t, 10_000, cfg.Search.BatchSize)
	assert.Equal(t, 5_000, cfg.Search.ReportInterval)
	assert.Equal(t, "wallet.txt", cfg.Output.WalletFile)
	assert.Equal(t, logger.FormatJSON, cfg.Log.Format)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	t.Setenv(PortEnv, "")
	path := writeConfig(t, `
server:
  host: 0.0.0.0
  port: 8080
log:
  level: debug
  format: console
search:
  batch_size: 500
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 500, cfg.Search.BatchSize)
	// Untouched keys keep their defaults
	assert.Equal(t, 5_000, cfg.Search.ReportInterval)
	assert.Equal(t, logger.OutputStderr, cfg.Log.Output)
}

func TestLoadPortEnv(t *testing.T) {
	t.Setenv(PortEnv, "4000")

	cfg, err := Load(writeConfig(t, "server:\n  port: 8080\n"))
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.Port)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		port    string
		wantErr error
	}{
		{"bad env port", "", "http", ErrInvalidPort},
		{"port out of range", "server:\n  port: 70000\n", "", ErrInvalidPort},
		{"empty host", "server:\n  host: \"\"\n", "", ErrInvalidHost},
		{"zero batch", "search:\n  batch_size: 0\n", "", ErrInvalidSearch},
		{"no wallet file", "output:\n  wallet_file: \"\"\n", "", ErrMissingWalletFn},
		{"bad log level", "log:\n  level: loud\n", "", logger.ErrInvalidLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(PortEnv, tt.port)

			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv(PortEnv, "")

	_, err := Load(writeConfig(t, "server:\n  hots: localhost\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
