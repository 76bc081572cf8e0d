package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setAgentEnv points the configuration at throwaway directories.
func setAgentEnv(t *testing.T, templateDir string) {
	t.Helper()
	t.Setenv("SOURCE_DIR", t.TempDir())
	t.Setenv("DEST_USER", "ingest")
	t.Setenv("DEST_HOST", "warehouse.internal")
	t.Setenv("DEST_DIR", "/srv/loads")
	t.Setenv("TEMPLATE_DIR", templateDir)
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("POLL_INTERVAL", "")
	t.Setenv("TRANSFER_TIMEOUT", "")
}

// runCommand executes the root command with args and captures output.
// The settings file is pinned to a missing path so a real
// ~/.csvrelay/config.toml cannot leak into the test.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.toml")}, args...))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestTemplatesCmd_Use(t *testing.T) {
	assert.Equal(t, "templates", templatesCmd.Use)
}

func TestTemplatesCmd_ListsTemplates(t *testing.T) {
	templateDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(templateDir, "orders_template"), []byte("id,name,amount"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(templateDir, "customers_template"), []byte("id,email,joined"), 0644))
	setAgentEnv(t, templateDir)

	out, err := runCommand(t, "templates")

	require.NoError(t, err)
	assert.Contains(t, out, "orders")
	assert.Contains(t, out, "id,name,amount")
	assert.Contains(t, out, "customers")
}

func TestTemplatesCmd_EmptyDirectory(t *testing.T) {
	setAgentEnv(t, t.TempDir())

	out, err := runCommand(t, "templates")

	require.NoError(t, err)
	assert.Contains(t, out, "No templates found.")
}

func TestTemplatesCmd_FailsWithoutConfiguration(t *testing.T) {
	setAgentEnv(t, t.TempDir())
	t.Setenv("DEST_HOST", "")

	_, err := runCommand(t, "templates")

	require.Error(t, err)
}
