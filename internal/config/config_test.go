package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"store": "postgres",
		"dsn": "postgres://localhost/portfolio",
		"port": "9090",
		"sanitize_export": true,
		"pdf_timeout": "45s",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "postgres", cfg.Store)
	assert.Equal(t, "postgres://localhost/portfolio", cfg.DSN)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.SanitizeExport)
	assert.Equal(t, Duration(45*time.Second), cfg.PDFTimeout)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	content := "store: sqlite\ndsn: data/portfolio.db\noutput_dir: out\npdf_timeout: 1m\nform_file: form.yaml\n"

	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store)
	assert.Equal(t, "data/portfolio.db", cfg.DSN)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "form.yaml", cfg.FormFile)
	assert.Equal(t, Duration(time.Minute), cfg.PDFTimeout)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("store: [unclosed"), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{"pdf_timeout": "soon"}`), 0644))

	_, err := LoadConfig(tmpFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("PORTFOLIO_STORE", "postgres")
	t.Setenv("PORTFOLIO_DSN", "postgres://db/portfolio")
	t.Setenv("PORTFOLIO_PORT", "7000")

	cfg := FromEnv()
	assert.Equal(t, "postgres", cfg.Store)
	assert.Equal(t, "postgres://db/portfolio", cfg.DSN)
	assert.Equal(t, "7000", cfg.Port)
}

func TestValidate_UnknownStore(t *testing.T) {
	cfg := &Config{Store: "redis"}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store")
}

func TestValidate_NegativeTimeout(t *testing.T) {
	cfg := &Config{PDFTimeout: Duration(-time.Second)}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must be non-negative")
}

func TestValidate_MissingTemplatesFile(t *testing.T) {
	cfg := &Config{SectionTemplates: "/nonexistent/sections.tmpl"}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "section templates file not found")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		Store: "memory",
		Port:  "8080",
	}

	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		Store: "postgres",
		DSN:   "postgres://localhost/portfolio",
	}

	defaults := Config{
		Store:          "sqlite",
		DSN:            "other.db",
		Port:           "9000",
		OutputDir:      "exports",
		SanitizeExport: true,
	}

	result := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "postgres", result.Store)                     // Kept original
	assert.Equal(t, "postgres://localhost/portfolio", result.DSN) // Kept original
	assert.Equal(t, "9000", result.Port)                          // From defaults
	assert.Equal(t, "exports", result.OutputDir)                  // From defaults
	assert.True(t, result.SanitizeExport)                         // True carries over
	assert.Zero(t, result.PDFTimeout)                             // Not filled until ApplyDefaults
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := &Config{Port: "1234"}

	result := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, Config{Port: "1234"}, result)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, DefaultStore, cfg.Store)
	assert.Equal(t, DefaultDSN, cfg.DSN)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, Duration(DefaultPDFTimeout), cfg.PDFTimeout)
}

func TestApplyDefaults_MemoryStoreHasNoDSN(t *testing.T) {
	cfg := &Config{Store: "memory"}
	cfg.ApplyDefaults()

	assert.Empty(t, cfg.DSN)
}

func TestApplyDefaults_PostgresUsesDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/portfolio")

	cfg := &Config{Store: "postgres"}
	cfg.ApplyDefaults()

	assert.Equal(t, "postgres://db/portfolio", cfg.DSN)
}

func TestLayering_FlagsOverEnvOverFile(t *testing.T) {
	file := Config{Store: "sqlite", DSN: "file.db", Port: "1000", OutputDir: "file-out"}
	env := Config{DSN: "env.db", Port: "2000"}
	flags := Config{Port: "3000"}

	cfg := flags.MergeWithDefaults(env.MergeWithDefaults(file))
	cfg.ApplyDefaults()

	assert.Equal(t, "sqlite", cfg.Store)
	assert.Equal(t, "env.db", cfg.DSN)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "file-out", cfg.OutputDir)
}
