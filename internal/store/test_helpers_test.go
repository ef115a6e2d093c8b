package store

import (
	"path/filepath"
	"testing"

	"github.com/kappe-c/ARCtrl/internal/isa"
)

// createTestStore creates a fresh file-backed store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestInvestigation builds an investigation with one study, one
// assay and sparse annotation tables, exercising every stored shape.
func createTestInvestigation(t *testing.T, identifier string) *isa.ArcInvestigation {
	t.Helper()

	inv := isa.NewArcInvestigation(identifier)
	inv.Title = "Growth control of the eukaryote cell"
	inv.SubmissionDate = "2007-04-30"
	inv.OntologySourceReferences = []isa.OntologySourceReference{
		{Name: "OBI", File: "http://purl.obolibrary.org/obo/obi.owl", Version: "2016-01-01"},
	}
	inv.Contacts = []isa.Person{
		{FirstName: "Juan", LastName: "Castrillo", Affiliation: "Faculty of Life Sciences"},
	}
	inv.Comments = []isa.Comment{{Name: "Created With", Value: "arctrl"}}

	st := inv.InitStudy(identifier + "-study")
	st.Title = "metabolic flux response to nutrient limitation"
	st.StudyDesignDescriptors = []isa.OntologyAnnotation{
		isa.NewOntologyAnnotation("intervention design", "OBI", "OBI:0000115"),
	}
	st.Factors = []isa.Factor{
		{Name: "limiting nutrient", FactorType: isa.NewOntologyAnnotation("chemical entity", "CHEBI", "CHEBI:24431")},
	}

	growth := st.InitTable("Growth")
	mustAddColumn(t, growth, isa.InputHeader{IO: isa.SourceIO{}},
		isa.FreeTextCell{Value: "source1"},
		isa.FreeTextCell{Value: "source2"})
	mustAddColumn(t, growth, isa.CharacteristicHeader{Term: isa.NewOntologyAnnotation("organism", "OBI", "OBI:0100026")},
		isa.TermCell{Term: isa.NewOntologyAnnotation("Saccharomyces cerevisiae", "NCBITaxon", "NCBITaxon:4932")})

	a := st.InitAssay(identifier + "-assay")
	a.MeasurementType = isa.NewOntologyAnnotation("metabolite profiling", "OBI", "OBI:0000366")
	a.Performers = []isa.Person{{FirstName: "Leo", LastName: "Zeef"}}

	extraction := a.InitTable("Extraction")
	mustAddColumn(t, extraction, isa.InputHeader{IO: isa.SampleIO{}},
		isa.FreeTextCell{Value: "sample1"})
	mustAddColumn(t, extraction, isa.ParameterHeader{Term: isa.NewOntologyAnnotation("temperature", "", "")},
		isa.UnitizedCell{Value: "30", Unit: isa.NewOntologyAnnotation("degree Celsius", "UO", "UO:0000027")})
	mustAddColumn(t, extraction, isa.OutputHeader{IO: isa.DataIO{}},
		isa.FreeTextCell{Value: "file1.raw"})

	return inv
}

func mustAddColumn(t *testing.T, tbl *isa.ArcTable, h isa.CompositeHeader, cells ...isa.CompositeCell) {
	t.Helper()
	if err := tbl.AddColumn(h, cells...); err != nil {
		t.Fatalf("AddColumn(%v) failed: %v", h, err)
	}
}
