package isa

import (
	"fmt"

	"github.com/kappe-c/ARCtrl/internal/grammar"
)

// CellKey addresses one cell of an ArcTable. Both indices are 0-based;
// row 0 is the first data row, headers live outside the cell map.
type CellKey struct {
	Column int
	Row    int
}

// ArcTable is one annotation table: an ordered header list and a sparse
// cell map. A missing key is an empty default cell for the column's
// shape, never an error. Every populated key stays left of the header
// count; the builder methods enforce that.
type ArcTable struct {
	Name    string
	Headers []CompositeHeader
	Values  map[CellKey]CompositeCell
}

// CompositeColumn pairs a header with its ordered cells, one per table
// row.
type CompositeColumn struct {
	Header CompositeHeader
	Cells  []CompositeCell
}

// NewArcTable returns an empty table with the given name.
func NewArcTable(name string) *ArcTable {
	return &ArcTable{Name: name, Values: map[CellKey]CompositeCell{}}
}

// ColumnCount returns the number of columns.
func (t *ArcTable) ColumnCount() int { return len(t.Headers) }

// RowCount returns the number of data rows: one past the highest
// populated row index.
func (t *ArcTable) RowCount() int {
	rows := 0
	for k := range t.Values {
		if k.Row+1 > rows {
			rows = k.Row + 1
		}
	}
	return rows
}

// AddColumn appends a column. The cells populate rows 0..len(cells)-1 and
// must match the header's column shape.
func (t *ArcTable) AddColumn(header CompositeHeader, cells ...CompositeCell) error {
	for i, c := range cells {
		if !CellFits(header, c) {
			return fmt.Errorf("column %q row %d: cell %T does not fit the column shape", header, i, c)
		}
	}
	col := len(t.Headers)
	t.Headers = append(t.Headers, header)
	if t.Values == nil {
		t.Values = map[CellKey]CompositeCell{}
	}
	for i, c := range cells {
		t.Values[CellKey{Column: col, Row: i}] = c
	}
	return nil
}

// SetCellAt stores a cell. The column must exist and the cell must match
// its header's shape.
func (t *ArcTable) SetCellAt(col, row int, cell CompositeCell) error {
	if col < 0 || col >= len(t.Headers) {
		return fmt.Errorf("column %d out of range, table has %d columns", col, len(t.Headers))
	}
	if row < 0 {
		return fmt.Errorf("row %d out of range", row)
	}
	if !CellFits(t.Headers[col], cell) {
		return fmt.Errorf("column %q row %d: cell %T does not fit the column shape", t.Headers[col], row, cell)
	}
	if t.Values == nil {
		t.Values = map[CellKey]CompositeCell{}
	}
	t.Values[CellKey{Column: col, Row: row}] = cell
	return nil
}

// GetCellAt returns the cell stored at (col, row) and whether one is
// present.
func (t *ArcTable) GetCellAt(col, row int) (CompositeCell, bool) {
	c, ok := t.Values[CellKey{Column: col, Row: row}]
	return c, ok
}

// CellOrDefault returns the cell at (col, row), or the empty default cell
// for the column's shape when none is stored. The column must exist.
func (t *ArcTable) CellOrDefault(col, row int) CompositeCell {
	if c, ok := t.GetCellAt(col, row); ok {
		return c
	}
	return EmptyCellFor(t.Headers[col])
}

// Column materializes column col: its header plus one cell per table
// row, defaults filled in.
func (t *ArcTable) Column(col int) (CompositeColumn, error) {
	if col < 0 || col >= len(t.Headers) {
		return CompositeColumn{}, fmt.Errorf("column %d out of range, table has %d columns", col, len(t.Headers))
	}
	rows := t.RowCount()
	cells := make([]CompositeCell, rows)
	for row := 0; row < rows; row++ {
		cells[row] = t.CellOrDefault(col, row)
	}
	return CompositeColumn{Header: t.Headers[col], Cells: cells}, nil
}

// Columns materializes every column in order.
func (t *ArcTable) Columns() []CompositeColumn {
	cols := make([]CompositeColumn, 0, len(t.Headers))
	for i := range t.Headers {
		c, _ := t.Column(i)
		cols = append(cols, c)
	}
	return cols
}

// autoTableName returns the first "New Table <n>" name, counting from 0,
// not taken by an existing table.
func autoTableName(tables []*ArcTable) string {
	taken := map[int]bool{}
	for _, t := range tables {
		if agtn, ok := grammar.MatchAutoGeneratedTableName(t.Name); ok {
			taken[agtn.Number] = true
		}
	}
	for n := 0; ; n++ {
		if !taken[n] {
			return fmt.Sprintf("New Table %d", n)
		}
	}
}
