package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "paperbuild.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "paper:\n  source: paper.tex\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "paper.tex", cfg.Paper.Source)
	require.Equal(t, "latexmk", cfg.Paper.Latexmk)
	require.Equal(t, DefaultCheckOrder, cfg.Checks.Order)
	require.Equal(t, "data", cfg.Checks.DataDir)
	require.Equal(t, "results", cfg.Report.ResultsDir)
	require.Equal(t, 1.0, cfg.Checks.HealthyBand.X0)
	require.Equal(t, -2.0, cfg.Checks.HealthyBand.PprimeMin)
	require.Equal(t, "2s", cfg.Daemon.Debounce)
	require.Equal(t, 2*time.Second, cfg.Daemon.ParsedDebounce)
	require.Equal(t, time.Hour, cfg.Daemon.ParsedCheckInterval)
	require.Equal(t, "paperbuild.runs", cfg.Daemon.NATS.Subject)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "configuration file not found")
}

func TestLoadRejectsUnknownCheck(t *testing.T) {
	path := writeConfig(t, "checks:\n  order: [healthy-band, no-such-check]\n")
	_, err := Load(path)
	require.ErrorContains(t, err, "unknown check")
}

func TestLoadRejectsDuplicateCheck(t *testing.T) {
	path := writeConfig(t, "checks:\n  order: [healthy-band, healthy-band]\n")
	_, err := Load(path)
	require.ErrorContains(t, err, "duplicate check")
}

func TestLoadRejectsNonTexSource(t *testing.T) {
	path := writeConfig(t, "paper:\n  source: main.md\n")
	_, err := Load(path)
	require.ErrorContains(t, err, "must be a .tex file")
}

func TestLoadRejectsInvertedScanRange(t *testing.T) {
	path := writeConfig(t, "checks:\n  healthy_band:\n    pprime_min: 2.0\n    pprime_max: -2.0\n")
	_, err := Load(path)
	require.ErrorContains(t, err, "inverted")
}

func TestLoadRejectsBadDebounce(t *testing.T) {
	path := writeConfig(t, "daemon:\n  debounce: soon\n")
	_, err := Load(path)
	require.ErrorContains(t, err, "daemon.debounce")
}

func TestLoadNATSRequiresURL(t *testing.T) {
	path := writeConfig(t, "daemon:\n  nats:\n    enabled: true\n")
	_, err := Load(path)
	require.ErrorContains(t, err, "nats.url is required")
}

func TestInitRefusesOverwrite(t *testing.T) {
	path := writeConfig(t, "paper:\n  source: main.tex\n")
	require.ErrorContains(t, Init(path, false), "already exists")
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "main.tex", cfg.Paper.Source)
	require.Equal(t, DefaultCheckOrder, cfg.Checks.Order)
}
