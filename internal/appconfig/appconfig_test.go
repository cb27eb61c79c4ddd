package appconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("SPOND_TEST_PASSWORD", "hunter2")

	configYAML := `
spond:
  email: user@example.com
  password: "{{.SPOND_TEST_PASSWORD}}"
  apiUrl: https://api.example.com/core/v1/
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", cfg.Spond.Email)
	assert.Equal(t, "hunter2", cfg.Spond.Password)
	assert.Equal(t, "https://api.example.com/core/v1/", cfg.Spond.APIURL)
}
