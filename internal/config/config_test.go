package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/events-refresh/internal/refresh"
)

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("url", refresh.DefaultSourceURL, "")
	fs.String("dest", refresh.DefaultDestPath, "")
	fs.Duration("timeout", 0, "")
	fs.Bool("reject-non-success", false, "")
	fs.Bool("validate", false, "")
	fs.Bool("atomic", false, "")
	fs.String("log-level", "info", "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, refresh.DefaultSourceURL, cfg.SourceURL)
	assert.Equal(t, refresh.DefaultDestPath, cfg.DestPath)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.False(t, cfg.RejectNonSuccess)
	assert.False(t, cfg.Validate)
	assert.False(t, cfg.Atomic)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, refresh.DefaultSourceURL, cfg.SourceURL)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events-refresh.yaml")
	content := `source_url: https://example.test/api/course/7/events
dest_path: _data/events/other.json
timeout: 15s
atomic: true
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "https://example.test/api/course/7/events", cfg.SourceURL)
	assert.Equal(t, "_data/events/other.json", cfg.DestPath)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.True(t, cfg.Atomic)
	assert.False(t, cfg.Validate)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source_url: [unclosed"), 0600))

	_, err := Load(path, nil)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events-refresh.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dest_path: from-file.json\n"), 0600))

	t.Setenv("EVENTS_REFRESH_DEST_PATH", "from-env.json")
	t.Setenv("EVENTS_REFRESH_VALIDATE", "true")
	t.Setenv("EVENTS_REFRESH_LOG_LEVEL", "warn")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "from-env.json", cfg.DestPath)
	assert.True(t, cfg.Validate)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("EVENTS_REFRESH_SOURCE_URL", "https://env.example.test/events")
	t.Setenv("EVENTS_REFRESH_DEST_PATH", "from-env.json")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{
		"--url", "https://flag.example.test/events",
		"--timeout", "3s",
		"--reject-non-success",
	}))

	cfg, err := Load("", fs)
	require.NoError(t, err)

	assert.Equal(t, "https://flag.example.test/events", cfg.SourceURL)
	// Unset flags do not mask the environment.
	assert.Equal(t, "from-env.json", cfg.DestPath)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.True(t, cfg.RejectNonSuccess)
}

func TestRefreshOptions(t *testing.T) {
	cfg := &Config{
		SourceURL:        "https://example.test/events",
		DestPath:         "out.json",
		Timeout:          time.Second,
		RejectNonSuccess: true,
		Validate:         true,
		Atomic:           true,
	}

	opts := cfg.RefreshOptions()
	assert.Equal(t, refresh.Options{
		SourceURL:        "https://example.test/events",
		DestPath:         "out.json",
		Timeout:          time.Second,
		RejectNonSuccess: true,
		Validate:         true,
		Atomic:           true,
	}, opts)
}
