package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/locradar/pkg/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".locradar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_EmptyFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Empty(t, cfg.Scan.Authors)

	want := config.Default()
	want.Scan.Authors = nil
	cfg.Scan.Authors = nil
	assert.Equal(t, want, cfg)
}

func TestLoadConfig_NoFileFound(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultScanTopN, cfg.Scan.TopN)
	assert.Equal(t, config.DefaultOutputSVG, cfg.Output.SVG)
}

func TestLoadConfig_SearchesWorkingDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".locradar.yaml"), []byte("scan:\n  top_n: 3\n"), 0o600))
	t.Chdir(dir)

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Scan.TopN)
}

func TestLoadConfig_ValidFileUnmarshals(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `scan:
  path: /src
  max_depth: 2
  authors: [alice, "Alice Smith"]
  top_n: 5
  workers: 4
  skip_vendored: true
backend:
  kind: libgit2
catalog:
  source: linguist
  file: extra.yaml
output:
  svg: out/radar.svg
  html: out/radar.html
  format: json
  width: 800
  height: 900
  theme: dark
  no_color: true
logging:
  level: debug
  json: true
telemetry:
  otlp_endpoint: localhost:4317
  otlp_insecure: true
  metrics_file: /tmp/locradar.prom
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, config.ScanConfig{
		Path:         "/src",
		MaxDepth:     2,
		Authors:      []string{"alice", "Alice Smith"},
		TopN:         5,
		Workers:      4,
		SkipVendored: true,
	}, cfg.Scan)
	assert.Equal(t, "libgit2", cfg.Backend.Kind)
	assert.Equal(t, config.DefaultBackendGitBinary, cfg.Backend.GitBinary)
	assert.Equal(t, config.CatalogConfig{Source: "linguist", File: "extra.yaml"}, cfg.Catalog)
	assert.Equal(t, config.OutputConfig{
		SVG: "out/radar.svg", HTML: "out/radar.html", Format: "json",
		Width: 800, Height: 900, Theme: "dark", NoColor: true,
	}, cfg.Output)
	assert.Equal(t, config.LoggingConfig{Level: "debug", JSON: true}, cfg.Logging)
	assert.Equal(t, "localhost:4317", cfg.Telemetry.OTLPEndpoint)
	assert.True(t, cfg.Telemetry.OTLPInsecure)
	assert.Equal(t, "/tmp/locradar.prom", cfg.Telemetry.MetricsFile)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "scan:\n  top_n: 5\noutput:\n  format: yaml\n")

	t.Setenv("LOCRADAR_SCAN_TOP_N", "7")
	t.Setenv("LOCRADAR_SCAN_AUTHORS", "alice,bob")

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Scan.TopN)
	assert.Equal(t, []string{"alice", "bob"}, cfg.Scan.Authors)
	assert.Equal(t, "yaml", cfg.Output.Format)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "negative top n", content: "scan:\n  top_n: 0\n"},
		{name: "depth below unlimited", content: "scan:\n  max_depth: -2\n"},
		{name: "negative workers", content: "scan:\n  workers: -1\n"},
		{name: "unknown backend", content: "backend:\n  kind: svn\n"},
		{name: "unknown catalog", content: "catalog:\n  source: ctags\n"},
		{name: "unknown format", content: "output:\n  format: xml\n"},
		{name: "tiny chart", content: "output:\n  width: 10\n"},
		{name: "unknown theme", content: "output:\n  theme: neon\n"},
		{name: "unknown level", content: "logging:\n  level: chatty\n"},
		{name: "bad endpoint", content: "telemetry:\n  otlp_endpoint: not a host\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.LoadConfig(writeConfig(t, tt.content))
			require.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "scan: [unclosed\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("LOCRADAR_OUTPUT_FORMAT=json\nLOCRADAR_SCAN_TOP_N=4\n"), 0o600))

	// Already-set variables win over .env.
	t.Setenv("LOCRADAR_SCAN_TOP_N", "9")
	t.Setenv("LOCRADAR_OUTPUT_FORMAT", "")
	require.NoError(t, os.Unsetenv("LOCRADAR_OUTPUT_FORMAT"))

	require.NoError(t, config.LoadDotEnv(envPath))
	require.NoError(t, config.LoadDotEnv(filepath.Join(dir, "missing.env")))

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 9, cfg.Scan.TopN)
}
