package sparse

import (
	"github.com/kappe-c/ARCtrl/internal/grammar"
	"github.com/kappe-c/ARCtrl/internal/isa"
)

// ExpandColumn renders one typed column as the raw string columns of the
// tabular form. Term columns grow Term Source REF and Term Accession
// Number subcolumns, labeled with the header term's short accession, and
// a Unit subcolumn when any cell is unitized; unitized rows put the unit
// term in the reference subcolumns. Every raw column is its label
// followed by one cell per row.
func ExpandColumn(col isa.CompositeColumn) [][]string {
	if !isa.IsTermColumn(col.Header) {
		raw := make([]string, 0, len(col.Cells)+1)
		raw = append(raw, col.Header.String())
		for _, c := range col.Cells {
			raw = append(raw, c.String())
		}
		return [][]string{raw}
	}

	hasUnit := false
	for _, c := range col.Cells {
		if _, ok := c.(isa.UnitizedCell); ok {
			hasUnit = true
			break
		}
	}
	short := ""
	if term, ok := headerTerm(col.Header); ok {
		short = term.TermAccessionShort()
	}
	main := []string{col.Header.String()}
	unit := []string{"Unit"}
	tsr := []string{"Term Source REF (" + short + ")"}
	tan := []string{"Term Accession Number (" + short + ")"}
	for _, c := range col.Cells {
		switch cc := c.(type) {
		case isa.UnitizedCell:
			main = append(main, cc.Value)
			unit = append(unit, cc.Unit.NameText())
			tsr = append(tsr, cc.Unit.TermSourceRefText())
			tan = append(tan, cc.Unit.TermAccessionText())
		case isa.TermCell:
			main = append(main, cc.Term.NameText())
			unit = append(unit, "")
			tsr = append(tsr, cc.Term.TermSourceRefText())
			tan = append(tan, cc.Term.TermAccessionText())
		default:
			main = append(main, c.String())
			unit = append(unit, "")
			tsr = append(tsr, "")
			tan = append(tan, "")
		}
	}
	if hasUnit {
		return [][]string{main, unit, tsr, tan}
	}
	return [][]string{main, tsr, tan}
}

// CollapseColumns rebuilds a typed column from one raw column group: the
// main column first, then its Unit and reference subcolumns in any
// order. Term headers recover source ref and accession from the
// reference subcolumn labels; rows with a unit become unitized cells,
// rows without stay term cells.
func CollapseColumns(group [][]string) isa.CompositeColumn {
	if len(group) == 0 || len(group[0]) == 0 {
		return isa.CompositeColumn{}
	}
	main := group[0]
	var unitCol, tsrCol, tanCol []string
	var tsrShape grammar.TSRColumn
	var tanShape grammar.TANColumn
	for _, raw := range group[1:] {
		if len(raw) == 0 {
			continue
		}
		if _, ok := grammar.MatchUnitColumn(raw[0]); ok {
			unitCol = raw
			continue
		}
		if c, ok := grammar.MatchTSRColumn(raw[0]); ok {
			tsrCol, tsrShape = raw, c
			continue
		}
		if c, ok := grammar.MatchTANColumn(raw[0]); ok {
			tanCol, tanShape = raw, c
		}
	}

	header := isa.ParseHeader(main[0])
	rows := len(main) - 1
	if !isa.IsTermColumn(header) {
		cells := make([]isa.CompositeCell, rows)
		for i := 0; i < rows; i++ {
			cells[i] = isa.FreeTextCell{Value: main[i+1]}
		}
		return isa.CompositeColumn{Header: header, Cells: cells}
	}

	header = enrichHeaderTerm(header, tsrShape, tanShape)
	cells := make([]isa.CompositeCell, rows)
	for i := 0; i < rows; i++ {
		value := main[i+1]
		unitName := part(unitCol, i+1)
		ref := part(tsrCol, i+1)
		accession := part(tanCol, i+1)
		if unitName != "" {
			cells[i] = isa.UnitizedCell{Value: value, Unit: isa.NewOntologyAnnotation(unitName, ref, accession)}
		} else {
			cells[i] = isa.TermCell{Term: isa.NewOntologyAnnotation(value, ref, accession)}
		}
	}
	return isa.CompositeColumn{Header: header, Cells: cells}
}

// TableToRows materializes a table into raw rows: row 0 the expanded
// header labels, then one row per data row, defaults filled in.
func TableToRows(t *isa.ArcTable) [][]string {
	var cols [][]string
	for _, c := range t.Columns() {
		cols = append(cols, ExpandColumn(c)...)
	}
	if len(cols) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(cols[0]))
	for r := range cols[0] {
		row := make([]string, len(cols))
		for c := range cols {
			row[c] = cols[c][r]
		}
		rows = append(rows, row)
	}
	return rows
}

// TableFromRows rebuilds a table from raw rows, row 0 being the header
// labels. A label starts a new column group unless it is a Unit or
// reference subcolumn. Cells equal to the column default stay unstored,
// keeping the table sparse.
func TableFromRows(name string, rows [][]string) (*isa.ArcTable, error) {
	t := isa.NewArcTable(name)
	if len(rows) == 0 {
		return t, nil
	}
	header := rows[0]
	data := rows[1:]
	for start := 0; start < len(header); {
		end := start + 1
		for end < len(header) && isSubColumn(header[end]) {
			end++
		}
		group := make([][]string, 0, end-start)
		for c := start; c < end; c++ {
			raw := make([]string, 0, len(data)+1)
			raw = append(raw, header[c])
			for _, drow := range data {
				raw = append(raw, part(drow, c))
			}
			group = append(group, raw)
		}
		if err := addColumn(t, CollapseColumns(group)); err != nil {
			return nil, err
		}
		start = end
	}
	return t, nil
}

func isSubColumn(label string) bool {
	if _, ok := grammar.MatchUnitColumn(label); ok {
		return true
	}
	_, ok := grammar.MatchReferenceColumn(label)
	return ok
}

// addColumn appends the column, storing only cells that differ from the
// column's empty default.
func addColumn(t *isa.ArcTable, col isa.CompositeColumn) error {
	if col.Header == nil {
		return nil
	}
	if err := t.AddColumn(col.Header); err != nil {
		return err
	}
	idx := t.ColumnCount() - 1
	def := isa.EmptyCellFor(col.Header)
	for row, c := range col.Cells {
		if isa.CellsEqual(c, def) {
			continue
		}
		if err := t.SetCellAt(idx, row, c); err != nil {
			return err
		}
	}
	return nil
}

// enrichHeaderTerm folds the reference subcolumn annotation back into a
// term header. The bare label carries only the term name; the
// parenthesized accession supplies ref and accession.
func enrichHeaderTerm(h isa.CompositeHeader, tsr grammar.TSRColumn, tan grammar.TANColumn) isa.CompositeHeader {
	idspace, accession := tan.IDSpace, tan.FullAccession
	if accession == "" {
		idspace, accession = tsr.IDSpace, tsr.FullAccession
	}
	if accession == "" {
		return h
	}
	switch hh := h.(type) {
	case isa.CharacteristicHeader:
		return isa.CharacteristicHeader{Term: isa.NewOntologyAnnotation(hh.Term.NameText(), idspace, accession)}
	case isa.ParameterHeader:
		return isa.ParameterHeader{Term: isa.NewOntologyAnnotation(hh.Term.NameText(), idspace, accession)}
	case isa.FactorHeader:
		return isa.FactorHeader{Term: isa.NewOntologyAnnotation(hh.Term.NameText(), idspace, accession)}
	case isa.ComponentHeader:
		return isa.ComponentHeader{Term: isa.NewOntologyAnnotation(hh.Term.NameText(), idspace, accession)}
	}
	return h
}

func headerTerm(h isa.CompositeHeader) (isa.OntologyAnnotation, bool) {
	switch hh := h.(type) {
	case isa.CharacteristicHeader:
		return hh.Term, true
	case isa.ParameterHeader:
		return hh.Term, true
	case isa.FactorHeader:
		return hh.Term, true
	case isa.ComponentHeader:
		return hh.Term, true
	}
	return isa.OntologyAnnotation{}, false
}
