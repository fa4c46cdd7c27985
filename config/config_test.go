package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "TEMPLATE_PATH", "IMAGE_PATH", "LAYOUT_PATH", "MUNICIPALITY", "PROVINCE", "LOG_LEVEL", "LOG_FILE_PATH")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("data", "APPLICATION-for-MARRIAGE-LICENSE.xlsx"), cfg.TemplatePath)
	assert.Equal(t, filepath.Join("data", "couple_img.png"), cfg.ImagePath)
	assert.Empty(t, cfg.LayoutPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "SOLANO, NUEVA VIZCAYA", cfg.Jurisdiction())
}

func TestLoadEnvFile(t *testing.T) {
	unsetEnv(t, "MUNICIPALITY", "PROVINCE", "TEMPLATE_PATH")

	envFile := filepath.Join(t.TempDir(), "filler.env")
	content := "MLF_MUNICIPALITY=Bayombong\nMLF_TEMPLATE_PATH=/srv/forms/template.xlsx\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "/srv/forms/template.xlsx", cfg.TemplatePath)
	assert.Equal(t, "BAYOMBONG, NUEVA VIZCAYA", cfg.Jurisdiction())
}

func TestLoadEnvironmentWinsOverFile(t *testing.T) {
	t.Setenv(envPrefix+"PROVINCE", "Isabela")

	envFile := filepath.Join(t.TempDir(), "filler.env")
	require.NoError(t, os.WriteFile(envFile, []byte("MLF_PROVINCE=Quirino\n"), 0o644))

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "Isabela", cfg.Province)
}

func TestResolve(t *testing.T) {
	cfg := &Config{
		TemplatePath: "data/template.xlsx",
		ImagePath:    "/abs/photo.png",
	}
	cfg.Resolve("/opt/filler")

	assert.Equal(t, filepath.Join("/opt/filler", "data/template.xlsx"), cfg.TemplatePath)
	assert.Equal(t, "/abs/photo.png", cfg.ImagePath)
	assert.Empty(t, cfg.LayoutPath)
}

// unsetEnv removes the MLF_ keys for the duration of the test. godotenv never overrides a
// variable that is present, even when it is empty.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(envPrefix+key, "")
		require.NoError(t, os.Unsetenv(envPrefix+key))
	}
}
