package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configFile, format, outputMode, mrdTable, outDir = "", "console", "", "", ""
	strict, verbose = false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeAssumptions(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assumptions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const scenarioYAML = "startBalance: 100000\ncurrentAge: 65\nstartAge: 65\nfinalAge: 66\nwithdrawalRate: 0.04\noutput: nominal\n"

func TestProjectCommand_CSV(t *testing.T) {
	path := writeAssumptions(t, scenarioYAML)

	out, err := execute(t, "project", "--config", path, "--format", "csv")

	require.NoError(t, err)
	assert.Contains(t, out, "Age,Year,TaxDeferred.openingBalance")
	assert.Contains(t, out, "65,")
	assert.Contains(t, out, ",96000,")
}

func TestProjectCommand_OutputOverride(t *testing.T) {
	path := writeAssumptions(t, scenarioYAML)

	out, err := execute(t, "project", "-c", path, "-f", "summary", "--output", "real")

	require.NoError(t, err)
	assert.Contains(t, out, "real dollars")
}

func TestProjectCommand_StrictRejects(t *testing.T) {
	path := writeAssumptions(t, "startBalance: -1\ncurrentAge: 65\nstartAge: 65\nfinalAge: 66\n")

	_, err := execute(t, "project", "--config", path, "--strict")
	assert.ErrorContains(t, err, "startBalance cannot be negative")
}

func TestProjectCommand_UnknownTable(t *testing.T) {
	path := writeAssumptions(t, scenarioYAML)

	_, err := execute(t, "project", "--config", path, "--mrd-table", "bogus")
	assert.ErrorContains(t, err, "unknown MRD table")
}

func TestProjectCommand_OutDir(t *testing.T) {
	path := writeAssumptions(t, scenarioYAML)
	dir := t.TempDir()

	out, err := execute(t, "project", "--config", path, "--format", "json", "--out-dir", dir)

	require.NoError(t, err)
	assert.Contains(t, out, "Report written to")
	matches, err := filepath.Glob(filepath.Join(dir, "projection_*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.yaml")

	out, err := execute(t, "init", path)

	require.NoError(t, err)
	assert.Contains(t, out, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "withdrawalRate: 0.04")
}

func TestFormatsCommand(t *testing.T) {
	out, err := execute(t, "formats")
	require.NoError(t, err)
	assert.Contains(t, out, "Formats: console, csv, json, summary")
	assert.Contains(t, out, "uniform-2002")
}
