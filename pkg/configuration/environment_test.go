package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadEnv_ReadsExistingFiles(t *testing.T) {
	tmp := t.TempDir()
	envFile := filepath.Join(tmp, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SITECHECK_TEST_ENV_LOAD=ok\n"), 0o644))

	_ = os.Unsetenv("SITECHECK_TEST_ENV_LOAD")

	n, err := LoadEnv([]string{envFile, filepath.Join(tmp, ".env.local")})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "ok", os.Getenv("SITECHECK_TEST_ENV_LOAD"))
}

func TestLoadEnv_NoFiles(t *testing.T) {
	tmp := t.TempDir()
	n, err := LoadEnv([]string{filepath.Join(tmp, ".env")})
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestBackendOptions_Validate(t *testing.T) {
	valid := BackendOptions{BaseURL: "https://api.example.com", Timeout: 30 * time.Second}
	require.NoError(t, valid.Validate())

	noScheme := BackendOptions{BaseURL: "api.example.com", Timeout: time.Second}
	require.Error(t, noScheme.Validate())

	badTimeout := BackendOptions{BaseURL: "https://api.example.com", Timeout: 0}
	require.Error(t, badTimeout.Validate())
}

func TestConfiguration_Origins(t *testing.T) {
	c := &Configuration{AllowedOrigins: "http://localhost:3000, https://dash.example.com ,"}
	require.Equal(t, []string{"http://localhost:3000", "https://dash.example.com"}, c.Origins())
}
