package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/paycompare/tax-calculator/internal/calculation"
	"github.com/paycompare/tax-calculator/internal/config"
	"github.com/paycompare/tax-calculator/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempDir runs the test from an empty directory so no stray .env or paycompare.yaml is picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCalculateCommand(t *testing.T) {
	inTempDir(t)

	tests := []struct {
		description string
		args        []string
		contains    []string
	}{
		{
			description: "Default inputs as verbose console report",
			args:        []string{"calculate"},
			contains:    []string{"UK / SPAIN TAKE-HOME COMPARISON", "KEY ASSUMPTIONS:", "Best overall:"},
		},
		{
			description: "Summary format",
			args:        []string{"calculate", "--format", "summary"},
			contains:    []string{"TAKE-HOME SUMMARY", "Best: "},
		},
		{
			description: "CSV with an explicit year",
			args:        []string{"calculate", "--year", "2025", "-f", "csv"},
			contains:    []string{"Regime,TaxYear,Currency", "uk,2025/26", "spainNormal,2025"},
		},
		{
			description: "Fiscal year label selects the matching Spanish year",
			args:        []string{"calculate", "--year", "2024/25", "-f", "csv"},
			contains:    []string{"uk,2024/25", "spainAutonomo,2024"},
		},
		{
			description: "YAML alias",
			args:        []string{"calculate", "-f", "yml"},
			contains:    []string{"best_overall:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestCalculateErrors(t *testing.T) {
	inTempDir(t)

	_, err := run(t, "calculate", "--year", "2019")
	assert.ErrorIs(t, err, calculation.ErrTaxYearNotFound)

	_, err = run(t, "calculate", "--format", "pdf")
	assert.ErrorIs(t, err, output.ErrUnsupportedFormat)

	_, err = run(t, "calculate", "--config", "missing.txt")
	assert.Error(t, err)
}

func TestExampleThenCalculate(t *testing.T) {
	dir := inTempDir(t)
	path := filepath.Join(dir, "inputs.txt")

	out, err := run(t, "example", "--out", path, "--year", "2024")
	require.NoError(t, err)
	assert.Contains(t, out, "Example inputs written to")

	save, err := config.LoadSaveFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2024", save.TaxYear)

	// The save file year applies when --year is not given.
	out, err = run(t, "calculate", "--config", path, "-f", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "uk,2024/25")

	out, err = run(t, "calculate", "--config", path, "-f", "csv", "--year", "2025")
	require.NoError(t, err)
	assert.Contains(t, out, "uk,2025/26")
}

func TestCalculateWritesReport(t *testing.T) {
	dir := inTempDir(t)
	reports := filepath.Join(dir, "reports")

	out, err := run(t, "calculate", "-f", "html", "--output", reports)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to")

	matches, err := filepath.Glob(filepath.Join(reports, "paycompare_report_*.html"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestSettingsSources(t *testing.T) {
	t.Run("Environment variable", func(t *testing.T) {
		inTempDir(t)
		t.Setenv("PAYCOMPARE_FORMAT", "csv")
		out, err := run(t, "calculate")
		require.NoError(t, err)
		assert.Contains(t, out, "Regime,TaxYear,Currency")
	})

	t.Run("Settings file in the working directory", func(t *testing.T) {
		dir := inTempDir(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "paycompare.yaml"), []byte("format: csv\nyear: \"2025\"\n"), 0o600))
		out, err := run(t, "calculate")
		require.NoError(t, err)
		assert.Contains(t, out, "uk,2025/26")
	})

	t.Run("Flag beats the environment", func(t *testing.T) {
		inTempDir(t)
		t.Setenv("PAYCOMPARE_FORMAT", "csv")
		out, err := run(t, "calculate", "-f", "summary")
		require.NoError(t, err)
		assert.Contains(t, out, "TAKE-HOME SUMMARY")
	})

	t.Run("Dotenv file", func(t *testing.T) {
		dir := inTempDir(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PAYCOMPARE_FORMAT=csv\n"), 0o600))
		t.Cleanup(func() { os.Unsetenv("PAYCOMPARE_FORMAT") })
		out, err := run(t, "calculate")
		require.NoError(t, err)
		assert.Contains(t, out, "Regime,TaxYear,Currency")
	})

	t.Run("Missing explicit settings file", func(t *testing.T) {
		inTempDir(t)
		_, err := run(t, "calculate", "--settings", "nope.yaml")
		assert.Error(t, err)
	})
}

func TestDocsCommand(t *testing.T) {
	inTempDir(t)

	tests := []struct {
		description string
		args        []string
		contains    []string
	}{
		{
			description: "UK console documents",
			args:        []string{"docs", "--regime", "uk"},
			contains:    []string{"TAX DOCUMENTS", "SA100 SELF ASSESSMENT", "PAYMENTS ON ACCOUNT"},
		},
		{
			description: "Autonomo JSON carries Modelo 130",
			args:        []string{"docs", "-r", "spainAutonomo", "-f", "json"},
			contains:    []string{`"regimeKey": "spainAutonomo"`, `"modelo130"`, `"modelo100"`},
		},
		{
			description: "Beckham YAML carries Modelo 151",
			args:        []string{"docs", "-r", "spainBeckham", "-f", "yaml"},
			contains:    []string{"regime: spainBeckham", "modelo151:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}

	_, err := run(t, "docs", "--regime", "france")
	assert.ErrorContains(t, err, "unknown regime")

	_, err = run(t, "docs", "-f", "csv")
	assert.ErrorIs(t, err, output.ErrUnsupportedFormat)
}

func TestYearsCommand(t *testing.T) {
	inTempDir(t)

	out, err := run(t, "years")
	require.NoError(t, err)
	assert.Contains(t, out, "2024/25")
	assert.Contains(t, out, "Spain 2025 -> UK 2025/26")

	out, err = run(t, "years", "-f", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "spain_to_uk:")
	assert.Contains(t, out, "defaults:")
}

func TestParseRegime(t *testing.T) {
	r, err := parseRegime("spainNormal")
	require.NoError(t, err)
	assert.Equal(t, "spainNormal", string(r))

	_, err = parseRegime("SpainNormal")
	assert.Error(t, err)
}
