package store

import (
	"context"
	"fmt"

	"github.com/kappe-c/ARCtrl/internal/isa"
)

// ListInvestigations returns the identifiers of every stored snapshot,
// ordered bytewise for deterministic output.
//
// Returns an empty slice (not nil) when the store is empty.
func (s *Store) ListInvestigations(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT identifier
		FROM investigations
		ORDER BY identifier COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query investigations: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan investigation: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate investigations: %w", err)
	}

	if ids == nil {
		ids = []string{}
	}

	return ids, nil
}

// ReadInvestigation rebuilds the investigation stored under identifier.
// Returns sql.ErrNoRows if no snapshot exists.
//
// Empty entity lists come back nil, matching what the JSON decoders
// produce, so a read-back compares equal to the decoded source document.
func (s *Store) ReadInvestigation(ctx context.Context, identifier string) (*isa.ArcInvestigation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT identifier, title, description, submission_date, public_release_date, metadata
		FROM investigations
		WHERE identifier = ?
	`, identifier)

	var inv isa.ArcInvestigation
	var meta string
	if err := row.Scan(
		&inv.Identifier, &inv.Title, &inv.Description,
		&inv.SubmissionDate, &inv.PublicReleaseDate, &meta,
	); err != nil {
		return nil, err
	}
	if err := unmarshalInvestigationMeta(meta, &inv); err != nil {
		return nil, err
	}

	studies, err := s.readStudies(ctx, inv.Identifier)
	if err != nil {
		return nil, err
	}
	inv.Studies = studies

	return &inv, nil
}

// readStudies returns the studies of an investigation in document order.
func (s *Store) readStudies(ctx context.Context, invID string) ([]*isa.ArcStudy, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT identifier, title, description, submission_date, public_release_date, metadata
		FROM studies
		WHERE investigation_id = ?
		ORDER BY position ASC
	`, invID)
	if err != nil {
		return nil, fmt.Errorf("query studies: %w", err)
	}
	defer rows.Close()

	// Drain the result set before descending: the store keeps a single
	// connection, so a child query cannot start while rows are open.
	var studies []*isa.ArcStudy
	for rows.Next() {
		var st isa.ArcStudy
		var meta string
		if err := rows.Scan(
			&st.Identifier, &st.Title, &st.Description,
			&st.SubmissionDate, &st.PublicReleaseDate, &meta,
		); err != nil {
			return nil, fmt.Errorf("scan study: %w", err)
		}
		if err := unmarshalStudyMeta(meta, &st); err != nil {
			return nil, err
		}
		studies = append(studies, &st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate studies: %w", err)
	}
	rows.Close()

	for _, st := range studies {
		owner := tableOwner{invID, st.Identifier, ownerStudy, st.Identifier}
		if st.Tables, err = s.readTables(ctx, owner); err != nil {
			return nil, err
		}
		if st.Assays, err = s.readAssays(ctx, invID, st.Identifier); err != nil {
			return nil, err
		}
	}

	return studies, nil
}

// readAssays returns the assays of a study in document order.
func (s *Store) readAssays(ctx context.Context, invID, studyID string) ([]*isa.ArcAssay, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT identifier, measurement_type, technology_type, technology_platform, metadata
		FROM assays
		WHERE investigation_id = ? AND study_id = ?
		ORDER BY position ASC
	`, invID, studyID)
	if err != nil {
		return nil, fmt.Errorf("query assays: %w", err)
	}
	defer rows.Close()

	var assays []*isa.ArcAssay
	for rows.Next() {
		var a isa.ArcAssay
		var measurement, technology, platform, meta string
		if err := rows.Scan(&a.Identifier, &measurement, &technology, &platform, &meta); err != nil {
			return nil, fmt.Errorf("scan assay: %w", err)
		}
		if a.MeasurementType, err = unmarshalAnnotation(measurement); err != nil {
			return nil, err
		}
		if a.TechnologyType, err = unmarshalAnnotation(technology); err != nil {
			return nil, err
		}
		if a.TechnologyPlatform, err = unmarshalAnnotation(platform); err != nil {
			return nil, err
		}
		if err := unmarshalAssayMeta(meta, &a); err != nil {
			return nil, err
		}
		assays = append(assays, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assays: %w", err)
	}
	rows.Close()

	for _, a := range assays {
		owner := tableOwner{invID, studyID, ownerAssay, a.Identifier}
		if a.Tables, err = s.readTables(ctx, owner); err != nil {
			return nil, err
		}
	}

	return assays, nil
}

// readTables returns an owner's annotation tables in document order.
func (s *Store) readTables(ctx context.Context, owner tableOwner) ([]*isa.ArcTable, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, headers
		FROM annotation_tables
		WHERE investigation_id = ? AND study_id = ? AND owner_kind = ? AND owner_id = ?
		ORDER BY position ASC
	`, owner.investigationID, owner.studyID, owner.kind, owner.id)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	var tables []*isa.ArcTable
	var ids []int64
	for rows.Next() {
		var id int64
		var name, headers string
		if err := rows.Scan(&id, &name, &headers); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		t := isa.NewArcTable(name)
		if t.Headers, err = unmarshalHeaders(headers); err != nil {
			return nil, fmt.Errorf("table %q: %w", name, err)
		}
		tables = append(tables, t)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}
	rows.Close()

	for i, t := range tables {
		if err := s.readCells(ctx, ids[i], t); err != nil {
			return nil, err
		}
	}

	return tables, nil
}

// readCells loads the stored cells of one table. Coordinates are
// validated against the header range and column shape on the way in.
func (s *Store) readCells(ctx context.Context, tableID int64, t *isa.ArcTable) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT col, row, cell
		FROM cells
		WHERE table_id = ?
		ORDER BY col ASC, row ASC
	`, tableID)
	if err != nil {
		return fmt.Errorf("query cells: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var col, row int
		var data string
		if err := rows.Scan(&col, &row, &data); err != nil {
			return fmt.Errorf("scan cell: %w", err)
		}
		cell, err := unmarshalCell(data)
		if err != nil {
			return fmt.Errorf("table %q cell (%d,%d): %w", t.Name, col, row, err)
		}
		if err := t.SetCellAt(col, row, cell); err != nil {
			return fmt.Errorf("table %q cell (%d,%d): %w", t.Name, col, row, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate cells: %w", err)
	}
	return nil
}
