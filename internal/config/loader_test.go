package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Load_Defaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := NewLoader().WithEnvFile("").Load()

	require.NoError(t, err)
	assert.Equal(t, NewConfig().Locale, cfg.Locale)
}

func TestLoader_Load_ConfigFile(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
locale:
  language: en
  timezone: UTC
validation:
  allow_past_date: true
  institutional_domains:
    - "@uni.edu"
session:
  simulated_latency: 150ms
`)

	cfg, err := NewLoader().WithEnvFile("").WithConfigFile(path).Load()

	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Locale.Language)
	assert.Equal(t, "UTC", cfg.Locale.Timezone)
	assert.True(t, cfg.Validation.AllowPastDate)
	assert.Equal(t, []string{"@uni.edu"}, cfg.Validation.InstitutionalDomains)
	assert.Equal(t, 150*time.Millisecond, cfg.Session.SimulatedLatency)
	// Untouched sections keep their defaults.
	assert.Equal(t, 255, cfg.Validation.TitleMaxLength)
	assert.Equal(t, "tasku.db", cfg.Database.Filename)
}

func TestLoader_Load_ConfigFileFromEnv(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, t.TempDir(), "tasku.yaml", "locale:\n  language: en\n")
	t.Setenv(ConfigFileEnv, path)

	cfg, err := NewLoader().WithEnvFile("").Load()

	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Locale.Language)
}

func TestLoader_Load_DefaultConfigPath(t *testing.T) {
	isolateEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".tasku"), 0o755))
	writeFile(t, filepath.Join(home, ".tasku"), "config.yaml", "session:\n  allow_non_institutional: false\n")

	cfg, err := NewLoader().WithEnvFile("").Load()

	require.NoError(t, err)
	assert.False(t, cfg.Session.AllowNonInstitutional)
}

func TestLoader_Load_MissingExplicitConfigFile(t *testing.T) {
	isolateEnv(t)

	_, err := NewLoader().WithEnvFile("").WithConfigFile(filepath.Join(t.TempDir(), "missing.yaml")).Load()

	assert.Error(t, err)
}

func TestLoader_Load_EnvironmentBeatsConfigFile(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, t.TempDir(), "config.yaml", "locale:\n  language: en\n")
	t.Setenv("TASKU_LANGUAGE", "es")

	cfg, err := NewLoader().WithEnvFile("").WithConfigFile(path).Load()

	require.NoError(t, err)
	assert.Equal(t, "es", cfg.Locale.Language)
}

func TestLoader_Load_DotEnv(t *testing.T) {
	isolateEnv(t)
	// godotenv never overrides variables that are already set, even when
	// empty, so this one is removed for the duration of the test.
	require.NoError(t, os.Unsetenv("TASKU_DB_FILENAME"))
	t.Cleanup(func() { os.Unsetenv("TASKU_DB_FILENAME") })
	envFile := writeFile(t, t.TempDir(), ".env", "TASKU_DB_FILENAME=from-dotenv.db\n")

	cfg, err := NewLoader().WithEnvFile(envFile).Load()

	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.db", cfg.Database.Filename)
}

func TestLoader_Load_MissingDotEnvIsIgnored(t *testing.T) {
	isolateEnv(t)

	_, err := NewLoader().WithEnvFile(filepath.Join(t.TempDir(), ".env")).Load()

	assert.NoError(t, err)
}

func TestLoader_Load_InvalidConfiguration(t *testing.T) {
	isolateEnv(t)
	t.Setenv("TASKU_TIMEZONE", "Nowhere/City")

	_, err := NewLoader().WithEnvFile("").Load()

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "locale.timezone", cfgErr.Field)
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	isolateEnv(t)
	t.Setenv("TASKU_LANGUAGE", "es")

	lang := "en"
	allow := true
	latency := 2 * time.Second
	catalog := "/etc/tasku/catalog.yaml"
	verbose := true

	cfg, err := NewLoader().WithEnvFile("").LoadWithOverrides(&ConfigOverrides{
		Language:         &lang,
		AllowPastDate:    &allow,
		SimulatedLatency: &latency,
		CatalogFile:      &catalog,
		Verbose:          &verbose,
	})

	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Locale.Language)
	assert.True(t, cfg.Validation.AllowPastDate)
	assert.Equal(t, latency, cfg.Session.SimulatedLatency)
	assert.Equal(t, catalog, cfg.Catalog.File)
	assert.True(t, cfg.Application.Verbose)
}

func TestLoader_LoadWithOverrides_Revalidates(t *testing.T) {
	isolateEnv(t)
	tz := "Nowhere/City"

	_, err := NewLoader().WithEnvFile("").LoadWithOverrides(&ConfigOverrides{Timezone: &tz})

	assert.Error(t, err)
}

func TestParseWithFallback(t *testing.T) {
	assert.Equal(t, 5*time.Second, ParseDurationWithFallback("5s", time.Second))
	assert.Equal(t, time.Second, ParseDurationWithFallback("x", time.Second))
	assert.Equal(t, 7, ParseIntWithFallback("7", 1))
	assert.Equal(t, 1, ParseIntWithFallback("seven", 1))
	assert.True(t, ParseBoolWithFallback("true", false))
	assert.False(t, ParseBoolWithFallback("nah", false))
	assert.Equal(t, uint32(0o750), ParseUint32WithFallback("750", 8, 0o755))
	assert.Equal(t, uint32(0o755), ParseUint32WithFallback("999", 8, 0o755))
}
