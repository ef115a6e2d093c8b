package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSuiteScenario writes a self-contained passing scenario into dir:
// a minimal document under dir/documents plus a scenario YAML that
// references it relatively.
func writeSuiteScenario(t *testing.T, dir, name string) {
	t.Helper()
	createTestDocument(t, dir, "minimal.isa.json")

	content := `
name: ` + name + `
description: "Suite fixture"
document: documents/minimal.isa.json
format: isajson
flow:
  - through: isajson
assertions:
  - type: stable
  - type: identifier
    value: inv1
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(content), 0644))
}

func TestRunSuite_CommittedScenarios(t *testing.T) {
	result, err := RunSuite("testdata/scenarios/*.yaml")
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalScenarios)
	assert.Equal(t, 2, result.Passed)
	assert.Equal(t, 0, result.Failed)
	assert.Empty(t, result.Failures)
}

func TestRunSuite_GlobDescends(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "roundtrips"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "normalization"), 0755))
	writeSuiteScenario(t, filepath.Join(dir, "roundtrips"), "first")
	writeSuiteScenario(t, filepath.Join(dir, "normalization"), "second")

	result, err := RunSuite(filepath.Join(dir, "**/*.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalScenarios)
	assert.Equal(t, 2, result.Passed)
	assert.Equal(t, 0, result.Failed)
}

func TestRunSuite_CollectsFailures(t *testing.T) {
	dir := t.TempDir()
	writeSuiteScenario(t, dir, "a_passing")

	// A scenario whose assertion fails.
	failing := `
name: b_failing
description: "Wrong identifier"
document: documents/minimal.isa.json
format: isajson
flow:
  - through: isajson
assertions:
  - type: identifier
    value: wrong
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_failing.yaml"), []byte(failing), 0644))

	// A scenario file that doesn't load.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c_broken.yaml"), []byte("flow: [unclosed"), 0644))

	result, err := RunSuite(filepath.Join(dir, "*.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalScenarios)
	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Failures, 2)

	// Matches run in sorted order, so failures are deterministic.
	assert.Contains(t, result.Failures[0].ScenarioPath, "b_failing.yaml")
	assert.Contains(t, result.Failures[0].Error, "scenario assertions failed")
	assert.Contains(t, result.Failures[0].Error, `identifier "wrong"`)
	assert.Contains(t, result.Failures[1].ScenarioPath, "c_broken.yaml")
	assert.Contains(t, result.Failures[1].Error, "failed to load scenario")
}

func TestRunSuite_ExecutionFailure(t *testing.T) {
	dir := t.TempDir()
	docsDir := filepath.Join(dir, "documents")
	require.NoError(t, os.MkdirAll(docsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "broken.isa.json"), []byte("not json"), 0644))

	content := `
name: broken_document
description: "Document exists but doesn't decode"
document: documents/broken.isa.json
format: isajson
flow:
  - through: isajson
assertions:
  - type: stable
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte(content), 0644))

	result, err := RunSuite(filepath.Join(dir, "*.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalScenarios)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0].Error, "scenario execution failed")
	assert.Contains(t, result.Failures[0].Error, "failed to decode document")
}

func TestRunSuite_NoMatches(t *testing.T) {
	result, err := RunSuite(filepath.Join(t.TempDir(), "*.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 0, result.TotalScenarios)
	assert.Equal(t, 0, result.Passed)
	assert.Equal(t, 0, result.Failed)
	assert.Empty(t, result.Failures)
}

func TestRunSuite_BadPattern(t *testing.T) {
	_, err := RunSuite("[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to expand pattern")
}
