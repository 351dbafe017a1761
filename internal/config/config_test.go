package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
pactl_path: /usr/local/bin/pactl
command_timeout: 5s
show_system_modules: true
database: /tmp/pactlgod-test.db
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/pactl", cfg.PactlPath)
	assert.Equal(t, 5*time.Second, cfg.CommandTimeout)
	assert.True(t, cfg.ShowSystemModules)
	assert.False(t, cfg.ShowMonitorSources)
	assert.Equal(t, "/tmp/pactlgod-test.db", cfg.Database)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, path, cfg.Source)
}

func TestLoad_MissingFieldsUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, "show_monitor_sources: true\npactl_path: \"\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	def := Default()
	assert.True(t, cfg.ShowMonitorSources)
	assert.Equal(t, def.PactlPath, cfg.PactlPath)
	assert.Equal(t, def.Database, cfg.Database)
	assert.Equal(t, def.LogLevel, cfg.LogLevel)
	assert.Zero(t, cfg.CommandTimeout)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if _, err := os.Stat("/etc/pactlgod/config.yaml"); err == nil {
		t.Skip("system config present")
	}

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "pactl", cfg.PactlPath)
	assert.Equal(t, filepath.Join(home, ".local/share/pactlgod/pactlgod.db"), cfg.Database)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Source)
}

func TestLoad_HomeCandidate(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if _, err := os.Stat("/etc/pactlgod/config.yaml"); err == nil {
		t.Skip("system config present")
	}

	dir := filepath.Join(home, ".config/pactlgod")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log_level: warn\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.Source)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "malformed yaml", content: "pactl_path: [unterminated\n", wantErr: "failed to parse"},
		{name: "bad duration", content: "command_timeout: soon\n", wantErr: "failed to parse"},
		{name: "negative timeout", content: "command_timeout: -1s\n", wantErr: "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("explicit path missing", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}
