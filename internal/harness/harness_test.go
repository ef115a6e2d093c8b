package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kappe-c/ARCtrl/internal/isa"
)

// writeDocument writes document bytes to a temp file and returns the path.
func writeDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_MinimalScenario(t *testing.T) {
	docPath := writeDocument(t, `{"identifier":"inv1","title":"Minimal"}`)

	scenario := &Scenario{
		Name:        "minimal",
		Description: "Identity bounce through the strict dialect",
		Document:    docPath,
		Format:      FormatISAJSON,
		Flow:        []FlowStep{{Through: "isajson"}},
		Assertions: []Assertion{
			{Type: AssertStable},
			{Type: AssertIdentifier, Value: "inv1"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, "isajson", result.Steps[0].Through)
	assert.True(t, result.Steps[0].Stable)
	assert.Equal(t, `{"identifier":"inv1","title":"Minimal"}`, string(result.Baseline))
	assert.Equal(t, result.Baseline, result.Final)
}

func TestRun_RocrateNormalization(t *testing.T) {
	// An RO-Crate document decodes into the same investigation its
	// compact form describes. The baseline drops every linked-data key.
	docPath := writeDocument(t, `{"@context":"https://w3id.org/ro/crate/1.1/context","@id":"#Investigation_inv2","@type":["Investigation"],"identifier":"inv2","title":"Crate pilot"}`)

	scenario := &Scenario{
		Name:        "rocrate_normalization",
		Description: "Linked-data keys vanish in the canonical form",
		Document:    docPath,
		Format:      FormatROCrate,
		Flow:        []FlowStep{{Through: "rocrate"}},
		Assertions: []Assertion{
			{Type: AssertStable},
			{Type: AssertIdentifier, Value: "inv2"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass)
	assert.NotContains(t, string(result.Baseline), "@context")
	assert.NotContains(t, string(result.Final), "@id")
	assert.Equal(t, `{"identifier":"inv2","title":"Crate pilot"}`, string(result.Final))
}

func TestRun_TabBounceKeepsSparseGaps(t *testing.T) {
	// Column 1 holds a term cell in row 0 and nothing in row 1. The
	// tabular materialization fills the gap with a default row value,
	// and the rebuild must drop it again instead of storing it.
	docPath := writeDocument(t, `{"identifier":"inv1","studies":[{"identifier":"study1","tables":[{"name":"Growth","header":[{"headertype":"Input","values":["Source Name"]},{"headertype":"Characteristic","values":[{"annotationValue":"organism","termSource":"OBI","termAccession":"OBI:0100026"}]}],"values":[[[0,0],{"celltype":"FreeText","values":["culture1"]}],[[0,1],{"celltype":"FreeText","values":["culture2"]}],[[1,0],{"celltype":"Term","values":[{"annotationValue":"Saccharomyces cerevisiae","termSource":"NCBITaxon","termAccession":"NCBITaxon:4932"}]}]]}]}]}`)

	scenario := &Scenario{
		Name:        "tab_sparse_gaps",
		Description: "Sparse gaps survive the tabular bounce",
		Document:    docPath,
		Format:      FormatISAJSON,
		Flow:        []FlowStep{{Through: "tab"}},
		Assertions: []Assertion{
			{Type: AssertStable},
			{Type: AssertCell, Study: "study1", Table: "Growth", Col: 1, Row: 0,
				Want: `{"celltype":"Term","values":[{"annotationValue":"Saccharomyces cerevisiae","termAccession":"NCBITaxon:4932","termSource":"NCBITaxon"}]}`},
			{Type: AssertCell, Study: "study1", Table: "Growth", Col: 1, Row: 1},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Steps, 1)
	assert.True(t, result.Steps[0].Stable)

	table := result.Investigation.Studies[0].Tables[0]
	_, hasGap := table.Values[isa.CellKey{Column: 1, Row: 1}]
	assert.False(t, hasGap, "gap at (1,1) must stay unstored")
	_, hasCell := table.Values[isa.CellKey{Column: 1, Row: 0}]
	assert.True(t, hasCell)
}

func TestRun_TabBounceNormalizesHeaderAccessions(t *testing.T) {
	// The header annotation carries a full PURL accession and a prose
	// term source. The tabular labels render the short form, and the
	// rebuilt header keeps it, so the canonical form drifts while the
	// cell accessions survive verbatim.
	docPath := writeDocument(t, `{"identifier":"inv1","studies":[{"identifier":"study1","tables":[{"name":"Growth","header":[{"headertype":"Input","values":["Source Name"]},{"headertype":"Characteristic","values":[{"annotationValue":"organism","termSource":"Ontology for Biomedical Investigations","termAccession":"http://purl.obolibrary.org/obo/OBI_0100026"}]}],"values":[[[0,0],{"celltype":"FreeText","values":["culture1"]}],[[1,0],{"celltype":"Term","values":[{"annotationValue":"Saccharomyces cerevisiae","termSource":"NCBITaxon","termAccession":"NCBITaxon:4932"}]}]]}]}]}`)

	scenario := &Scenario{
		Name:        "tab_header_normalization",
		Description: "Header accessions collapse to the short form",
		Document:    docPath,
		Format:      FormatISAJSON,
		Flow:        []FlowStep{{Through: "tab"}},
		Assertions: []Assertion{
			{Type: AssertIdentifier, Value: "inv1"},
			{Type: AssertHeader, Study: "study1", Table: "Growth", Col: 1,
				Want: `{"headertype":"Characteristic","values":[{"annotationValue":"organism","termAccession":"OBI:0100026","termSource":"OBI"}]}`},
			{Type: AssertCell, Study: "study1", Table: "Growth", Col: 1, Row: 0,
				Want: `{"celltype":"Term","values":[{"annotationValue":"Saccharomyces cerevisiae","termAccession":"NCBITaxon:4932","termSource":"NCBITaxon"}]}`},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Steps, 1)
	assert.False(t, result.Steps[0].Stable, "short-form rewrite must register as drift")
	assert.NotEqual(t, result.Baseline, result.Final)
	assert.Contains(t, string(result.Final), `"termSource":"OBI","termAccession":"OBI:0100026"`)
}

func TestRun_MissingDocument(t *testing.T) {
	scenario := &Scenario{
		Name:        "missing_doc",
		Description: "Test",
		Document:    "/nonexistent/doc.json",
		Format:      FormatISAJSON,
		Flow:        []FlowStep{{Through: "isajson"}},
		Assertions:  []Assertion{{Type: AssertStable}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read document")
}

func TestRun_MalformedDocument(t *testing.T) {
	docPath := writeDocument(t, `{"identifier": not json`)

	scenario := &Scenario{
		Name:        "malformed_doc",
		Description: "Test",
		Document:    docPath,
		Format:      FormatISAJSON,
		Flow:        []FlowStep{{Through: "isajson"}},
		Assertions:  []Assertion{{Type: AssertStable}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode document")
}

func TestRun_UnknownFormat(t *testing.T) {
	// Scenario loading rejects this, but Run guards on its own for
	// programmatic callers.
	docPath := writeDocument(t, `{"identifier":"inv1","title":"Minimal"}`)

	scenario := &Scenario{
		Name:        "unknown_format",
		Description: "Test",
		Document:    docPath,
		Format:      "tab",
		Flow:        []FlowStep{{Through: "isajson"}},
		Assertions:  []Assertion{{Type: AssertStable}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown document format "tab"`)
}

func TestRun_UnknownDialectInFlow(t *testing.T) {
	docPath := writeDocument(t, `{"identifier":"inv1","title":"Minimal"}`)

	scenario := &Scenario{
		Name:        "unknown_dialect",
		Description: "Test",
		Document:    docPath,
		Format:      FormatISAJSON,
		Flow:        []FlowStep{{Through: "xml"}},
		Assertions:  []Assertion{{Type: AssertStable}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flow step 0 (xml)")
	assert.Contains(t, err.Error(), `unknown dialect "xml"`)
}

func TestRun_FailedAssertionsCollect(t *testing.T) {
	docPath := writeDocument(t, `{"identifier":"inv1","title":"Minimal"}`)

	scenario := &Scenario{
		Name:        "failing",
		Description: "Both assertions fail and both are reported",
		Document:    docPath,
		Format:      FormatISAJSON,
		Flow:        []FlowStep{{Through: "isajson"}},
		Assertions: []Assertion{
			{Type: AssertIdentifier, Value: "wrong"},
			{Type: AssertStudyCount, Count: 5},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], `identifier "wrong"`)
	assert.Contains(t, result.Errors[1], "5 studies")
}

// TestRun_CommittedScenariosDeterministic replays the committed
// scenarios and checks that two executions pin identical bytes.
func TestRun_CommittedScenariosDeterministic(t *testing.T) {
	paths := []string{
		"testdata/scenarios/growth_roundtrip.yaml",
		"testdata/scenarios/cultivation_roundtrip.yaml",
	}

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenarioWithBasePath(path, filepath.Dir(path))
			require.NoError(t, err)

			first, err := Run(scenario)
			require.NoError(t, err)
			require.True(t, first.Pass, "errors: %v", first.Errors)

			second, err := Run(scenario)
			require.NoError(t, err)
			require.True(t, second.Pass)

			assert.Equal(t, first.Baseline, second.Baseline)
			assert.Equal(t, first.Final, second.Final)
			assert.Equal(t, first.Steps, second.Steps)
		})
	}
}
