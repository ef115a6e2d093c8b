package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const convertGrowthTable = `{"name":"Growth","header":[{"headertype":"Input","values":["Source Name"]},{"headertype":"Characteristic","values":[{"annotationValue":"organism","termSource":"OBI","termAccession":"OBI:0100026"}]}],"values":[[[0,0],{"celltype":"FreeText","values":["culture1"]}],[[1,0],{"celltype":"Term","values":[{"annotationValue":"Saccharomyces cerevisiae","termSource":"NCBITaxon","termAccession":"NCBITaxon:4932"}]}]]}`

const convertGrowthDoc = `{"identifier":"inv1","studies":[{"identifier":"study1","tables":[` + convertGrowthTable + `]}]}`

const convertTwoTablesDoc = `{"identifier":"inv1","studies":[{"identifier":"study1","tables":[{"name":"Growth","header":[{"headertype":"Input","values":["Source Name"]}],"values":[[[0,0],{"celltype":"FreeText","values":["culture1"]}]]},{"name":"Washing","header":[{"headertype":"Input","values":["Sample Name"]}],"values":[[[0,0],{"celltype":"FreeText","values":["sample1"]}]]}]}]}`

// writeDocFile writes document bytes to a temp file and returns the path.
func writeDocFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConvert_ISAJSONToROCrate(t *testing.T) {
	docPath := writeDocFile(t, `{"identifier":"inv1","title":"Minimal"}`)

	buf := &bytes.Buffer{}
	cmd := NewConvertCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-t", "rocrate", docPath})

	require.NoError(t, cmd.Execute())
	assert.Equal(t,
		`{"@context":"https://w3id.org/ro/crate/1.1/context","@id":"#Investigation_inv1","@type":["Investigation"],"identifier":"inv1","title":"Minimal"}`+"\n",
		buf.String())
}

func TestConvert_ROCrateToISAJSON(t *testing.T) {
	docPath := writeDocFile(t, `{"@context":"https://w3id.org/ro/crate/1.1/context","@id":"#Investigation_inv2","@type":["Investigation"],"identifier":"inv2","title":"Crate pilot"}`)

	buf := &bytes.Buffer{}
	cmd := NewConvertCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-f", "rocrate", "-t", "isajson", docPath})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, `{"identifier":"inv2","title":"Crate pilot"}`+"\n", buf.String())
}

func TestConvert_Identity(t *testing.T) {
	docPath := writeDocFile(t, `{"identifier":"inv1","title":"Minimal"}`)

	buf := &bytes.Buffer{}
	cmd := NewConvertCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-t", "isajson", docPath})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, `{"identifier":"inv1","title":"Minimal"}`+"\n", buf.String())
}

func TestConvert_TabTarget(t *testing.T) {
	docPath := writeDocFile(t, convertGrowthDoc)

	buf := &bytes.Buffer{}
	cmd := NewConvertCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-t", "tab", docPath})

	require.NoError(t, cmd.Execute())

	want := "Input [Source Name]\tCharacteristic [organism]\tTerm Source REF (OBI:0100026)\tTerm Accession Number (OBI:0100026)\n" +
		"culture1\tSaccharomyces cerevisiae\tNCBITaxon\tNCBITaxon:4932\n"
	assert.Equal(t, want, buf.String())
}

func TestConvert_TabWithNamedTable(t *testing.T) {
	docPath := writeDocFile(t, convertTwoTablesDoc)

	buf := &bytes.Buffer{}
	cmd := NewConvertCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-t", "tab", "--table", "Washing", docPath})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Input [Sample Name]\nsample1\n", buf.String())
}

func TestConvert_TabAmbiguousTables(t *testing.T) {
	docPath := writeDocFile(t, convertTwoTablesDoc)

	cmd := NewConvertCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"-t", "tab", docPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 annotation tables")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConvert_TableEnvelopeJSON(t *testing.T) {
	docPath := writeDocFile(t, convertGrowthDoc)

	buf := &bytes.Buffer{}
	cmd := NewConvertCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-t", "isajson", "--table", "Growth", docPath})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, convertGrowthTable+"\n", buf.String())
}

func TestConvert_TableNotFound(t *testing.T) {
	docPath := writeDocFile(t, convertGrowthDoc)

	cmd := NewConvertCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"-t", "isajson", "--table", "Nope", docPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `table "Nope" not found`)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConvert_OutputFile(t *testing.T) {
	docPath := writeDocFile(t, `{"identifier":"inv1","title":"Minimal"}`)
	outPath := filepath.Join(t.TempDir(), "out.arc.json")

	buf := &bytes.Buffer{}
	cmd := NewConvertCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-t", "rocrate", "-o", outPath, docPath})

	require.NoError(t, cmd.Execute())
	assert.Empty(t, buf.String())

	out, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"@context"`)
	assert.Contains(t, string(out), `"identifier":"inv1"`)
}

func TestConvert_MissingFile(t *testing.T) {
	cmd := NewConvertCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"-t", "rocrate", "/nonexistent/doc.json"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read document")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConvert_MalformedDocument(t *testing.T) {
	docPath := writeDocFile(t, "not json")

	cmd := NewConvertCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"-t", "rocrate", docPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode isajson document")
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestConvert_InvalidTarget(t *testing.T) {
	docPath := writeDocFile(t, `{"identifier":"inv1"}`)

	cmd := NewConvertCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"-t", "xlsx", docPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid target dialect "xlsx"`)
}

func TestConvert_InvalidSource(t *testing.T) {
	docPath := writeDocFile(t, `{"identifier":"inv1"}`)

	cmd := NewConvertCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"-f", "tab", docPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid source dialect "tab"`)
}
