package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReadsSecretFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("JWT_SECRET=from_dotenv_file\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() {
		_ = os.Chdir(wd)
		os.Unsetenv("JWT_SECRET")
		JWTSecret = []byte(defaultJWTSecret)
	}()

	Load()
	assert.Equal(t, "from_dotenv_file", string(JWTSecret))
}

func TestLoadFallsBackWithoutSecret(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() {
		_ = os.Chdir(wd)
		JWTSecret = []byte(defaultJWTSecret)
	}()
	os.Unsetenv("JWT_SECRET")

	Load()
	assert.Equal(t, defaultJWTSecret, string(JWTSecret))
}
