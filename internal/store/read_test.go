package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/kappe-c/ARCtrl/internal/isa"
	"github.com/kappe-c/ARCtrl/internal/isajson"
)

func TestReadInvestigation_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	inv := createTestInvestigation(t, "inv1")
	if err := s.SaveInvestigation(ctx, inv); err != nil {
		t.Fatalf("SaveInvestigation() failed: %v", err)
	}

	got, err := s.ReadInvestigation(ctx, "inv1")
	if err != nil {
		t.Fatalf("ReadInvestigation() failed: %v", err)
	}

	// Canonical JSON renders structurally equal documents to identical
	// bytes, so the comparison covers every stored field at once.
	want, err := isajson.New().MarshalInvestigation(inv)
	if err != nil {
		t.Fatalf("marshal original failed: %v", err)
	}
	data, err := isajson.New().MarshalInvestigation(got)
	if err != nil {
		t.Fatalf("marshal read-back failed: %v", err)
	}
	if !bytes.Equal(data, want) {
		t.Errorf("read-back differs from original\ngot:  %s\nwant: %s", data, want)
	}
}

func TestReadInvestigation_NotFound(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.ReadInvestigation(ctx, "missing")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestReadInvestigation_CellBytesStable(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	inv := createTestInvestigation(t, "inv1")
	if err := s.SaveInvestigation(ctx, inv); err != nil {
		t.Fatalf("SaveInvestigation() failed: %v", err)
	}

	got, err := s.ReadInvestigation(ctx, "inv1")
	if err != nil {
		t.Fatalf("ReadInvestigation() failed: %v", err)
	}

	cell, ok := got.Studies[0].Tables[0].Values[isa.CellKey{Column: 1, Row: 0}]
	if !ok {
		t.Fatal("term cell missing from read-back")
	}
	data, err := marshalCell(cell)
	if err != nil {
		t.Fatalf("marshalCell() failed: %v", err)
	}

	var stored string
	err = s.db.QueryRow(`
		SELECT c.cell FROM cells c
		JOIN annotation_tables t ON t.id = c.table_id
		WHERE t.name = 'Growth' AND c.col = 1 AND c.row = 0
	`).Scan(&stored)
	if err != nil {
		t.Fatalf("cell row not found: %v", err)
	}
	if data != stored {
		t.Errorf("re-marshaled cell = %s, stored = %s", data, stored)
	}
}

func TestReadInvestigation_SparsityPreserved(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	inv := createTestInvestigation(t, "inv1")
	if err := s.SaveInvestigation(ctx, inv); err != nil {
		t.Fatalf("SaveInvestigation() failed: %v", err)
	}

	got, err := s.ReadInvestigation(ctx, "inv1")
	if err != nil {
		t.Fatalf("ReadInvestigation() failed: %v", err)
	}

	growth := got.Studies[0].Tables[0]
	if len(growth.Values) != 3 {
		t.Errorf("Growth has %d cells, want 3", len(growth.Values))
	}
	if _, ok := growth.Values[isa.CellKey{Column: 1, Row: 1}]; ok {
		t.Error("gap cell (1,1) materialized on read-back")
	}
}

func TestReadInvestigation_TableOrderPreserved(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	inv := createTestInvestigation(t, "inv1")
	st := inv.Studies[0]
	sampling := st.InitTable("Sampling")
	mustAddColumn(t, sampling, isa.InputHeader{IO: isa.SourceIO{}},
		isa.FreeTextCell{Value: "sample-src"})
	if err := s.SaveInvestigation(ctx, inv); err != nil {
		t.Fatalf("SaveInvestigation() failed: %v", err)
	}

	got, err := s.ReadInvestigation(ctx, "inv1")
	if err != nil {
		t.Fatalf("ReadInvestigation() failed: %v", err)
	}

	tables := got.Studies[0].Tables
	if len(tables) != 2 {
		t.Fatalf("read back %d tables, want 2", len(tables))
	}
	if tables[0].Name != "Growth" || tables[1].Name != "Sampling" {
		t.Errorf("table order = [%q, %q], want [Growth, Sampling]", tables[0].Name, tables[1].Name)
	}
}

func TestListInvestigations_BytewiseOrder(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	// Insert out of order; listing sorts by identifier bytes, so
	// uppercase sorts before lowercase.
	for _, id := range []string{"beta", "Alpha", "alpha"} {
		if err := s.SaveInvestigation(ctx, createTestInvestigation(t, id)); err != nil {
			t.Fatalf("SaveInvestigation(%q) failed: %v", id, err)
		}
	}

	ids, err := s.ListInvestigations(ctx)
	if err != nil {
		t.Fatalf("ListInvestigations() failed: %v", err)
	}

	want := []string{"Alpha", "alpha", "beta"}
	if len(ids) != len(want) {
		t.Fatalf("got %d identifiers, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestListInvestigations_EmptyStore(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	ids, err := s.ListInvestigations(ctx)
	if err != nil {
		t.Fatalf("ListInvestigations() failed: %v", err)
	}
	if ids == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(ids) != 0 {
		t.Errorf("got %d identifiers, want 0", len(ids))
	}
}
