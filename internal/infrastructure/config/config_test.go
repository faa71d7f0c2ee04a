package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	// Arrange
	path := writeConfigFile(t, "character:\n  name: Kali Lin\n")

	// Act
	cfg, err := LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Kali Lin", cfg.Character.Name)
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, DefaultMarketURL, cfg.API.MarketURL)
	assert.Equal(t, "30000142", cfg.API.ReferenceSystemID)
	assert.Empty(t, cfg.API.ProxyURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 3, cfg.API.Retry.MaxAttempts)
	assert.Equal(t, time.Second, cfg.API.Retry.BackoffBase)
	assert.Equal(t, "skip", cfg.Report.MissingQuotePolicy)
	assert.Equal(t, "csv", cfg.Report.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, path, cfg.File)
}

func TestLoadConfig_FileValues(t *testing.T) {
	path := writeConfigFile(t, `
character:
  name: Kali Lin
  key_id: "123456"
  v_code: abcDEF123
api:
  reference_system_id: "30002187"
  proxy_url: http://127.0.0.1:3128/
  timeout: 10s
  retry:
    max_attempts: 0
report:
  missing_quote_policy: zero
  format: table
`)

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "123456", cfg.Character.KeyID)
	assert.Equal(t, "30002187", cfg.API.ReferenceSystemID)
	assert.Equal(t, "http://127.0.0.1:3128/", cfg.API.ProxyURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 0, cfg.API.Retry.MaxAttempts)
	assert.Equal(t, "zero", cfg.Report.MissingQuotePolicy)
	assert.Equal(t, "table", cfg.Report.Format)
	assert.NoError(t, cfg.Character.RequireCredentials())
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	// Arrange
	path := writeConfigFile(t, "character:\n  name: From File\nlogging:\n  level: warn\n")
	t.Setenv("EVE_CHARACTER_NAME", "From Env")
	t.Setenv("EVE_API_RETRY_MAX_ATTEMPTS", "5")
	t.Setenv("EVE_REPORT_MISSING_QUOTE_POLICY", "abort")

	// Act
	cfg, err := LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "From Env", cfg.Character.Name)
	assert.Equal(t, 5, cfg.API.Retry.MaxAttempts)
	assert.Equal(t, "abort", cfg.Report.MissingQuotePolicy)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadConfig_OverridesWin(t *testing.T) {
	path := writeConfigFile(t, "character:\n  name: From File\n")
	t.Setenv("EVE_CHARACTER_NAME", "From Env")

	cfg, err := LoadConfig(path, Override{Key: "character.name", Value: "From Flag"})

	require.NoError(t, err)
	assert.Equal(t, "From Flag", cfg.Character.Name)
}

func TestLoadConfig_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"bad policy", "report:\n  missing_quote_policy: ignore\n", "Config.Report.MissingQuotePolicy"},
		{"bad format", "report:\n  format: xml\n", "Config.Report.Format"},
		{"bad proxy", "api:\n  proxy_url: not-a-url\n", "Config.API.ProxyURL"},
		{"bad system", "api:\n  reference_system_id: jita\n", "Config.API.ReferenceSystemID"},
		{"log file missing", "logging:\n  output: file\n", "Config.Logging.FilePath"},
		{"bad key id", "character:\n  key_id: abc\n", "Config.Character.KeyID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfigFile(t, tt.content))

			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidation_MasksVCode(t *testing.T) {
	_, err := LoadConfig(writeConfigFile(t, "character:\n  v_code: \"not-alnum-secret\"\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Config.Character.VCode")
	assert.NotContains(t, err.Error(), "not-alnum-secret")
}

func TestLoadConfig_MissingFileIsAnError(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, err)
}

func TestCharacterConfig_Require(t *testing.T) {
	assert.Error(t, CharacterConfig{}.RequireName())
	assert.NoError(t, CharacterConfig{Name: "Kali Lin"}.RequireName())

	err := CharacterConfig{Name: "Kali Lin", KeyID: "123"}.RequireCredentials()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "character.v_code")

	creds := CharacterConfig{Name: "Kali Lin", KeyID: "123", VCode: "abc"}.Credentials()
	assert.Equal(t, "123", creds.KeyID)
}

func TestSetDefaults_MetricsTextfile(t *testing.T) {
	cfg := &Config{Metrics: MetricsConfig{Enabled: true}}

	SetDefaults(cfg)

	assert.Equal(t, DefaultMetricsTextfile, cfg.Metrics.TextfilePath)
	assert.NoError(t, ValidateConfig(cfg))
}
