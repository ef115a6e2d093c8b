package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/kappe-c/ARCtrl/internal/isa"
)

// Owner kinds for annotation_tables rows.
const (
	ownerStudy = "study"
	ownerAssay = "assay"
)

// tableOwner locates the entity an annotation table belongs to.
type tableOwner struct {
	investigationID string
	studyID         string
	kind            string
	id              string
}

// SaveInvestigation stores a flattened snapshot of inv, replacing any
// snapshot already stored under the same identifier. The write is
// atomic: either the whole document lands or nothing changes.
func (s *Store) SaveInvestigation(ctx context.Context, inv *isa.ArcInvestigation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	// Drop the previous snapshot; foreign keys cascade to child rows.
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM investigations WHERE identifier = ?
	`, inv.Identifier); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}

	if err := insertInvestigation(ctx, tx, inv); err != nil {
		return err
	}
	for pos, st := range inv.Studies {
		if err := insertStudy(ctx, tx, inv.Identifier, pos, st); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func insertInvestigation(ctx context.Context, tx *sql.Tx, inv *isa.ArcInvestigation) error {
	meta, err := marshalInvestigationMeta(inv)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO investigations
		(identifier, title, description, submission_date, public_release_date, metadata)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		inv.Identifier,
		inv.Title,
		inv.Description,
		inv.SubmissionDate,
		inv.PublicReleaseDate,
		meta,
	); err != nil {
		return fmt.Errorf("insert investigation %q: %w", inv.Identifier, err)
	}
	return nil
}

func insertStudy(ctx context.Context, tx *sql.Tx, invID string, pos int, st *isa.ArcStudy) error {
	meta, err := marshalStudyMeta(st)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO studies
		(investigation_id, identifier, position, title, description, submission_date, public_release_date, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		invID,
		st.Identifier,
		pos,
		st.Title,
		st.Description,
		st.SubmissionDate,
		st.PublicReleaseDate,
		meta,
	); err != nil {
		return fmt.Errorf("insert study %q: %w", st.Identifier, err)
	}
	for i, t := range st.Tables {
		owner := tableOwner{invID, st.Identifier, ownerStudy, st.Identifier}
		if err := insertTable(ctx, tx, owner, i, t); err != nil {
			return err
		}
	}
	for i, a := range st.Assays {
		if err := insertAssay(ctx, tx, invID, st.Identifier, i, a); err != nil {
			return err
		}
	}
	return nil
}

func insertAssay(ctx context.Context, tx *sql.Tx, invID, studyID string, pos int, a *isa.ArcAssay) error {
	measurement, err := marshalAnnotation(a.MeasurementType)
	if err != nil {
		return err
	}
	technology, err := marshalAnnotation(a.TechnologyType)
	if err != nil {
		return err
	}
	platform, err := marshalAnnotation(a.TechnologyPlatform)
	if err != nil {
		return err
	}
	meta, err := marshalAssayMeta(a)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO assays
		(investigation_id, study_id, identifier, position, measurement_type, technology_type, technology_platform, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		invID,
		studyID,
		a.Identifier,
		pos,
		measurement,
		technology,
		platform,
		meta,
	); err != nil {
		return fmt.Errorf("insert assay %q: %w", a.Identifier, err)
	}
	for i, t := range a.Tables {
		owner := tableOwner{invID, studyID, ownerAssay, a.Identifier}
		if err := insertTable(ctx, tx, owner, i, t); err != nil {
			return err
		}
	}
	return nil
}

func insertTable(ctx context.Context, tx *sql.Tx, owner tableOwner, pos int, t *isa.ArcTable) error {
	headers, err := marshalHeaders(t.Headers)
	if err != nil {
		return fmt.Errorf("table %q: %w", t.Name, err)
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO annotation_tables
		(investigation_id, study_id, owner_kind, owner_id, position, name, headers)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		owner.investigationID,
		owner.studyID,
		owner.kind,
		owner.id,
		pos,
		t.Name,
		headers,
	)
	if err != nil {
		return fmt.Errorf("insert table %q: %w", t.Name, err)
	}
	tableID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert table %q: %w", t.Name, err)
	}

	// Cells insert in (column, row) order so snapshots of the same
	// document issue identical statement sequences.
	keys := make([]isa.CellKey, 0, len(t.Values))
	for k := range t.Values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Column != keys[j].Column {
			return keys[i].Column < keys[j].Column
		}
		return keys[i].Row < keys[j].Row
	})
	for _, k := range keys {
		cell, err := marshalCell(t.Values[k])
		if err != nil {
			return fmt.Errorf("table %q cell (%d,%d): %w", t.Name, k.Column, k.Row, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO cells (table_id, col, row, cell)
			VALUES (?, ?, ?, ?)
		`, tableID, k.Column, k.Row, cell); err != nil {
			return fmt.Errorf("insert cell (%d,%d) of table %q: %w", k.Column, k.Row, t.Name, err)
		}
	}
	return nil
}
