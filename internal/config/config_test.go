package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad_RequiresSessionSecret(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("SESSION_SECRET", "")

	cfg, err := MustLoad()
	require.ErrorIs(t, err, ErrMissingSessionSecret)
	assert.Nil(t, cfg)
}

func TestMustLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("SESSION_SECRET", "0123456789abcdef")

	cfg, err := MustLoad()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Addr)
	assert.Equal(t, "/tmp/uploads", cfg.Upload.Dir)
	assert.Equal(t, int64(16<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, 72.0, cfg.Scan.RenderDPI)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "templates", cfg.TemplatesDir)
}

func TestMustLoad_ShortSecretRejected(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("SESSION_SECRET", "short")

	_, err := MustLoad()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestMustLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
session_secret: a-long-enough-secret
upload:
  dir: /var/tmp/qr
  max_bytes: 1024
scan:
  render_dpi: 150
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SESSION_SECRET", "")
	require.NoError(t, os.Unsetenv("SESSION_SECRET"))

	cfg, err := MustLoad()
	require.NoError(t, err)

	assert.Equal(t, "/var/tmp/qr", cfg.Upload.Dir)
	assert.Equal(t, int64(1024), cfg.Upload.MaxBytes)
	assert.Equal(t, 150.0, cfg.Scan.RenderDPI)
}
