package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"incosedss/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T) string {
	t.Helper()
	data, err := testkit.WorkbookBytes(testkit.ScenarioHeaders, testkit.ScenarioRows())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "survey.xlsx")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReportCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := newReportCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{writeScenario(t), "--summary"})

	require.NoError(t, cmd.Execute())
	text := out.String()
	assert.Contains(t, text, "Total Responses")
	assert.Contains(t, text, "12")
	assert.Contains(t, text, "Most represented domain: Healthcare")
	assert.Contains(t, text, "Executive Summary")
	assert.Contains(t, text, "1. ")
}

func TestReportCmd_EmptyDomain(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newReportCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{writeScenario(t), "--domain", "Space"})

	require.Error(t, cmd.Execute())
	assert.Contains(t, errOut.String(), "[WARNING] No responses available for the selected domain.")
}

func TestColumnsCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := newColumnsCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{writeScenario(t)})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Are you an INCOSE member?")
	assert.Contains(t, out.String(), "Aerospace, Automotive, Defense, Healthcare")
}

func TestSampleCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.xlsx")
	var out bytes.Buffer
	cmd := newSampleCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path, "--rows", "25"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Wrote 25 responses")
	_, err := os.Stat(path)
	assert.NoError(t, err)
}
