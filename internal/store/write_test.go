package store

import (
	"context"
	"testing"

	"github.com/kappe-c/ARCtrl/internal/isa"
)

func TestSaveInvestigation_Basic(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	inv := createTestInvestigation(t, "inv1")
	if err := s.SaveInvestigation(ctx, inv); err != nil {
		t.Fatalf("SaveInvestigation() failed: %v", err)
	}

	var title, submissionDate string
	err := s.db.QueryRow(`
		SELECT title, submission_date FROM investigations WHERE identifier = 'inv1'
	`).Scan(&title, &submissionDate)
	if err != nil {
		t.Fatalf("investigation row not found: %v", err)
	}
	if title != "Growth control of the eukaryote cell" {
		t.Errorf("title = %q, want %q", title, "Growth control of the eukaryote cell")
	}
	if submissionDate != "2007-04-30" {
		t.Errorf("submission_date = %q, want %q", submissionDate, "2007-04-30")
	}

	counts := map[string]int{
		"studies":           1,
		"assays":            1,
		"annotation_tables": 2,
		"cells":             6,
	}
	for table, want := range counts {
		var got int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&got); err != nil {
			t.Fatalf("count %s failed: %v", table, err)
		}
		if got != want {
			t.Errorf("%s has %d rows, want %d", table, got, want)
		}
	}
}

func TestSaveInvestigation_StoresCanonicalCellJSON(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	inv := createTestInvestigation(t, "inv1")
	if err := s.SaveInvestigation(ctx, inv); err != nil {
		t.Fatalf("SaveInvestigation() failed: %v", err)
	}

	var cell string
	err := s.db.QueryRow(`
		SELECT c.cell FROM cells c
		JOIN annotation_tables t ON t.id = c.table_id
		WHERE t.name = 'Growth' AND c.col = 0 AND c.row = 0
	`).Scan(&cell)
	if err != nil {
		t.Fatalf("cell row not found: %v", err)
	}
	want := `{"celltype":"FreeText","values":["source1"]}`
	if cell != want {
		t.Errorf("free text cell = %s, want %s", cell, want)
	}

	err = s.db.QueryRow(`
		SELECT c.cell FROM cells c
		JOIN annotation_tables t ON t.id = c.table_id
		WHERE t.name = 'Growth' AND c.col = 1 AND c.row = 0
	`).Scan(&cell)
	if err != nil {
		t.Fatalf("cell row not found: %v", err)
	}
	want = `{"celltype":"Term","values":[{"annotationValue":"Saccharomyces cerevisiae","termAccession":"NCBITaxon:4932","termSource":"NCBITaxon"}]}`
	if cell != want {
		t.Errorf("term cell = %s, want %s", cell, want)
	}
}

func TestSaveInvestigation_StoresUnitizedCell(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	inv := createTestInvestigation(t, "inv1")
	if err := s.SaveInvestigation(ctx, inv); err != nil {
		t.Fatalf("SaveInvestigation() failed: %v", err)
	}

	var cell string
	err := s.db.QueryRow(`
		SELECT c.cell FROM cells c
		JOIN annotation_tables t ON t.id = c.table_id
		WHERE t.name = 'Extraction' AND c.col = 1 AND c.row = 0
	`).Scan(&cell)
	if err != nil {
		t.Fatalf("cell row not found: %v", err)
	}
	want := `{"celltype":"Unitized","values":["30",{"annotationValue":"degree Celsius","termAccession":"UO:0000027","termSource":"UO"}]}`
	if cell != want {
		t.Errorf("unitized cell = %s, want %s", cell, want)
	}
}

func TestSaveInvestigation_StoresCanonicalHeaderJSON(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	inv := createTestInvestigation(t, "inv1")
	if err := s.SaveInvestigation(ctx, inv); err != nil {
		t.Fatalf("SaveInvestigation() failed: %v", err)
	}

	var headers string
	err := s.db.QueryRow(`
		SELECT headers FROM annotation_tables WHERE name = 'Growth'
	`).Scan(&headers)
	if err != nil {
		t.Fatalf("table row not found: %v", err)
	}
	want := `[{"headertype":"Input","values":["Source Name"]},{"headertype":"Characteristic","values":[{"annotationValue":"organism","termAccession":"OBI:0100026","termSource":"OBI"}]}]`
	if headers != want {
		t.Errorf("headers = %s, want %s", headers, want)
	}
}

func TestSaveInvestigation_AssayAnnotationColumns(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	inv := createTestInvestigation(t, "inv1")
	if err := s.SaveInvestigation(ctx, inv); err != nil {
		t.Fatalf("SaveInvestigation() failed: %v", err)
	}

	var measurement, technology string
	err := s.db.QueryRow(`
		SELECT measurement_type, technology_type FROM assays WHERE identifier = 'inv1-assay'
	`).Scan(&measurement, &technology)
	if err != nil {
		t.Fatalf("assay row not found: %v", err)
	}
	want := `{"annotationValue":"metabolite profiling","termAccession":"OBI:0000366","termSource":"OBI"}`
	if measurement != want {
		t.Errorf("measurement_type = %s, want %s", measurement, want)
	}
	// Unset annotations store as the empty object
	if technology != "{}" {
		t.Errorf("technology_type = %s, want {}", technology)
	}
}

func TestSaveInvestigation_TableOwnership(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	inv := createTestInvestigation(t, "inv1")
	if err := s.SaveInvestigation(ctx, inv); err != nil {
		t.Fatalf("SaveInvestigation() failed: %v", err)
	}

	var kind, owner string
	err := s.db.QueryRow(`
		SELECT owner_kind, owner_id FROM annotation_tables WHERE name = 'Growth'
	`).Scan(&kind, &owner)
	if err != nil {
		t.Fatalf("table row not found: %v", err)
	}
	if kind != "study" || owner != "inv1-study" {
		t.Errorf("Growth owner = (%q, %q), want (study, inv1-study)", kind, owner)
	}

	err = s.db.QueryRow(`
		SELECT owner_kind, owner_id FROM annotation_tables WHERE name = 'Extraction'
	`).Scan(&kind, &owner)
	if err != nil {
		t.Fatalf("table row not found: %v", err)
	}
	if kind != "assay" || owner != "inv1-assay" {
		t.Errorf("Extraction owner = (%q, %q), want (assay, inv1-assay)", kind, owner)
	}
}

func TestSaveInvestigation_PreservesSparsity(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	inv := createTestInvestigation(t, "inv1")
	if err := s.SaveInvestigation(ctx, inv); err != nil {
		t.Fatalf("SaveInvestigation() failed: %v", err)
	}

	// Growth spans 2 columns and 2 rows but holds only 3 cells; the
	// missing (1,1) cell must not materialize a row.
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM cells c
		JOIN annotation_tables t ON t.id = c.table_id
		WHERE t.name = 'Growth'
	`).Scan(&count)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Growth has %d cell rows, want 3", count)
	}
}

func TestSaveInvestigation_ReplacesPreviousSnapshot(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	inv := createTestInvestigation(t, "inv1")
	if err := s.SaveInvestigation(ctx, inv); err != nil {
		t.Fatalf("first SaveInvestigation() failed: %v", err)
	}

	replacement := isa.NewArcInvestigation("inv1")
	replacement.Title = "replaced"
	if err := s.SaveInvestigation(ctx, replacement); err != nil {
		t.Fatalf("second SaveInvestigation() failed: %v", err)
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM investigations").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("investigations has %d rows, want 1", count)
	}

	var title string
	if err := s.db.QueryRow("SELECT title FROM investigations WHERE identifier = 'inv1'").Scan(&title); err != nil {
		t.Fatalf("investigation row not found: %v", err)
	}
	if title != "replaced" {
		t.Errorf("title = %q, want %q", title, "replaced")
	}

	for _, table := range []string{"studies", "assays", "annotation_tables", "cells"} {
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			t.Fatalf("count %s failed: %v", table, err)
		}
		if count != 0 {
			t.Errorf("%s has %d rows after replacement, want 0", table, count)
		}
	}
}

func TestSaveInvestigation_MultipleInvestigations(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"inv-a", "inv-b"} {
		if err := s.SaveInvestigation(ctx, createTestInvestigation(t, id)); err != nil {
			t.Fatalf("SaveInvestigation(%q) failed: %v", id, err)
		}
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM investigations").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("investigations has %d rows, want 2", count)
	}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM studies WHERE investigation_id = 'inv-a'").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("inv-a has %d studies, want 1", count)
	}
}

func TestSaveInvestigation_EmptyInvestigation(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	inv := isa.NewArcInvestigation("empty")
	if err := s.SaveInvestigation(ctx, inv); err != nil {
		t.Fatalf("SaveInvestigation() failed: %v", err)
	}

	var metadata string
	err := s.db.QueryRow("SELECT metadata FROM investigations WHERE identifier = 'empty'").Scan(&metadata)
	if err != nil {
		t.Fatalf("investigation row not found: %v", err)
	}
	if metadata != "{}" {
		t.Errorf("metadata = %s, want {}", metadata)
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM studies").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("studies has %d rows, want 0", count)
	}
}
