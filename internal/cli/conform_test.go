package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kappe-c/ARCtrl/internal/harness"
)

// writeConformScenario writes a scenario file plus its document into
// dir. The identifier argument controls whether the scenario passes.
func writeConformScenario(t *testing.T, dir, name, identifier string) {
	t.Helper()
	docDir := filepath.Join(dir, "documents")
	require.NoError(t, os.MkdirAll(docDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(docDir, "minimal.isa.json"),
		[]byte(`{"identifier":"inv1","title":"Minimal"}`), 0644))

	scenario := fmt.Sprintf(`name: %s
description: Bounces a minimal document through the crate dialect.
document: documents/minimal.isa.json
format: isajson
flow:
  - through: rocrate
assertions:
  - type: stable
  - type: identifier
    value: %s
`, name, identifier)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(scenario), 0644))
}

func TestConform_AllPassing(t *testing.T) {
	dir := t.TempDir()
	writeConformScenario(t, dir, "minimal_bounce", "inv1")

	buf := &bytes.Buffer{}
	cmd := NewConformCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join(dir, "*.yaml")})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Conformance: 1 passed, 0 failed, 1 total")
	assert.Contains(t, buf.String(), "✓ All scenarios passed")
}

func TestConform_Failures(t *testing.T) {
	dir := t.TempDir()
	writeConformScenario(t, dir, "a_passing", "inv1")
	writeConformScenario(t, dir, "b_failing", "other")

	buf := &bytes.Buffer{}
	cmd := NewConformCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join(dir, "*.yaml")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, "1 scenario(s) failed", err.Error())
	assert.Equal(t, ExitFailure, GetExitCode(err))

	out := buf.String()
	assert.Contains(t, out, "✗ "+filepath.Join(dir, "b_failing.yaml"))
	assert.Contains(t, out, "scenario assertions failed")
	assert.Contains(t, out, "Conformance: 1 passed, 1 failed, 2 total")
}

func TestConform_JSON(t *testing.T) {
	dir := t.TempDir()
	writeConformScenario(t, dir, "b_failing", "other")

	buf := &bytes.Buffer{}
	cmd := NewConformCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join(dir, "*.yaml")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string              `json:"status"`
		Data   harness.SuiteResult `json:"data"`
		Error  *CLIError           `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 1, resp.Data.TotalScenarios)
	assert.Equal(t, 1, resp.Data.Failed)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_CONFORM_FAILED", resp.Error.Code)
	assert.Equal(t, "1 scenario(s) failed", resp.Error.Message)
}

func TestConform_NoMatches(t *testing.T) {
	dir := t.TempDir()

	buf := &bytes.Buffer{}
	cmd := NewConformCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join(dir, "*.yaml")})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "No scenarios found.")
}

func TestConform_BadPattern(t *testing.T) {
	cmd := NewConformCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"["})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to run scenarios")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConform_CommittedScenarios(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewConformCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join("..", "harness", "testdata", "scenarios", "*.yaml")})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Conformance: 2 passed, 0 failed, 2 total")
}
