package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datamoor/csvrelay/internal/core/domain"
)

// setRequiredEnv sets every required variable for a clean load.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SOURCE_DIR", "/data/incoming")
	t.Setenv("DEST_USER", "ingest")
	t.Setenv("DEST_HOST", "warehouse.internal")
	t.Setenv("DEST_DIR", "/srv/loads")
	t.Setenv("TEMPLATE_DIR", "/etc/csvrelay/templates")
}

// clearEnv blanks all recognised variables so ambient values cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SOURCE_DIR", "DEST_USER", "DEST_HOST", "DEST_DIR",
		"TEMPLATE_DIR", "DATA_DIR", "POLL_INTERVAL", "TRANSFER_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

// missingPath is a settings path that does not exist, so home-directory
// defaults never interfere with tests.
func missingPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "absent.toml")
}

func TestLoad(t *testing.T) {
	t.Run("loads all settings from environment", func(t *testing.T) {
		clearEnv(t)
		setRequiredEnv(t)
		t.Setenv("DATA_DIR", "/var/lib/csvrelay")
		t.Setenv("POLL_INTERVAL", "5s")
		t.Setenv("TRANSFER_TIMEOUT", "2m")

		cfg, err := Load(missingPath(t))

		require.NoError(t, err)
		assert.Equal(t, "/data/incoming", cfg.SourceDir)
		assert.Equal(t, "ingest", cfg.DestUser)
		assert.Equal(t, "warehouse.internal", cfg.DestHost)
		assert.Equal(t, "/srv/loads", cfg.DestDir)
		assert.Equal(t, "/etc/csvrelay/templates", cfg.TemplateDir)
		assert.Equal(t, "/var/lib/csvrelay", cfg.DataDir)
		assert.Equal(t, 5*time.Second, cfg.PollInterval)
		assert.Equal(t, 2*time.Minute, cfg.TransferTimeout)
	})

	t.Run("applies built-in defaults", func(t *testing.T) {
		clearEnv(t)
		setRequiredEnv(t)

		cfg, err := Load(missingPath(t))

		require.NoError(t, err)
		assert.Equal(t, 2*time.Second, cfg.PollInterval)
		assert.Zero(t, cfg.TransferTimeout)
		assert.Empty(t, cfg.DataDir)
	})

	t.Run("fails when a required setting is missing", func(t *testing.T) {
		clearEnv(t)
		setRequiredEnv(t)
		t.Setenv("DEST_HOST", "")

		_, err := Load(missingPath(t))

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMissingConfig)
		assert.Contains(t, err.Error(), "DEST_HOST")
	})

	t.Run("rejects malformed durations", func(t *testing.T) {
		clearEnv(t)
		setRequiredEnv(t)
		t.Setenv("POLL_INTERVAL", "often")

		_, err := Load(missingPath(t))

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("settings file fills gaps", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
source_dir = "/data/incoming"
dest_user = "ingest"
dest_host = "warehouse.internal"
dest_dir = "/srv/loads"
template_dir = "/etc/csvrelay/templates"
poll_interval = "10s"
`), 0600))

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "/data/incoming", cfg.SourceDir)
		assert.Equal(t, 10*time.Second, cfg.PollInterval)
	})

	t.Run("environment wins over settings file", func(t *testing.T) {
		clearEnv(t)
		setRequiredEnv(t)
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
dest_host = "other.internal"
`), 0600))

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "warehouse.internal", cfg.DestHost)
	})

	t.Run("fails on unparseable settings file", func(t *testing.T) {
		clearEnv(t)
		setRequiredEnv(t)
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0600))

		_, err := Load(path)

		require.Error(t, err)
	})
}
