package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings(MapSource{})
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, s.Port)
	assert.Empty(t, s.AnalyticsFile)
	assert.False(t, s.PresentationMode)
}

func TestLoadSettings_Values(t *testing.T) {
	s, err := LoadSettings(MapSource{
		EnvPort:             "9090",
		EnvAnalyticsFile:    "/tmp/analytics.jsonl",
		EnvAnalyticsDSN:     "postgres://localhost/zusim",
		EnvPresentationMode: "true",
	})
	require.NoError(t, err)
	assert.Equal(t, 9090, s.Port)
	assert.Equal(t, "/tmp/analytics.jsonl", s.AnalyticsFile)
	assert.Equal(t, "postgres://localhost/zusim", s.AnalyticsDSN)
	assert.True(t, s.PresentationMode)
}

func TestLoadSettings_Invalid(t *testing.T) {
	_, err := LoadSettings(MapSource{EnvPort: "http"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), EnvPort)

	_, err = LoadSettings(MapSource{EnvPresentationMode: "maybe"})
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("ZUSIM_TEST_LOAD_ENV=from-file\n"), 0644))
	t.Setenv("ZUSIM_TEST_LOAD_ENV", "")
	require.NoError(t, os.Unsetenv("ZUSIM_TEST_LOAD_ENV"))

	require.NoError(t, LoadEnv(path, filepath.Join(dir, "missing.env")))

	v, ok := EnvSource{}.Get("ZUSIM_TEST_LOAD_ENV")
	assert.True(t, ok)
	assert.Equal(t, "from-file", v)
}
