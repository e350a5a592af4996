package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultTaxonomyURL, cfg.TaxonomyURL)
	assert.Equal(t, 10*time.Second, cfg.TaxonomyTimeout)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, "rare_species_overall.csv", cfg.OverallReport)
	assert.Equal(t, "rare_species_yearly.csv", cfg.YearlyReport)
	assert.Equal(t, 10, cfg.PreviewLines)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("TAXONOMY_URL", "https://example.com/taxonomy.csv")
	t.Setenv("TAXONOMY_TIMEOUT", "30s")
	t.Setenv("OUTPUT_DIR", "/tmp/reports")
	t.Setenv("OVERALL_REPORT", "overall.csv")
	t.Setenv("YEARLY_REPORT", "yearly.csv")
	t.Setenv("PREVIEW_LINES", "5")
	t.Setenv("METRICS_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/taxonomy.csv", cfg.TaxonomyURL)
	assert.Equal(t, 30*time.Second, cfg.TaxonomyTimeout)
	assert.Equal(t, "/tmp/reports", cfg.OutputDir)
	assert.Equal(t, "overall.csv", cfg.OverallReport)
	assert.Equal(t, "yearly.csv", cfg.YearlyReport)
	assert.Equal(t, 5, cfg.PreviewLines)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_TOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rarebird.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[taxonomy]
url = "https://example.com/custom.csv"
timeout = "20s"

[output]
dir = "reports"
overall = "rare_overall.csv"

[diagnostics]
preview_lines = 3

[logging]
format = "json"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/custom.csv", cfg.TaxonomyURL)
	assert.Equal(t, 20*time.Second, cfg.TaxonomyTimeout)
	assert.Equal(t, "reports", cfg.OutputDir)
	assert.Equal(t, "rare_overall.csv", cfg.OverallReport)
	assert.Equal(t, "rare_species_yearly.csv", cfg.YearlyReport) // default kept
	assert.Equal(t, 3, cfg.PreviewLines)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rarebird.toml")
	require.NoError(t, os.WriteFile(path, []byte("[output]\ndir = \"from-file\"\n"), 0o644))
	t.Setenv("OUTPUT_DIR", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.OutputDir)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("TAXONOMY_TIMEOUT", "soon")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_NegativePreviewLines(t *testing.T) {
	t.Setenv("PREVIEW_LINES", "-1")
	_, err := Load("")
	assert.Error(t, err)
}
