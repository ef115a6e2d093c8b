package isa

// CompositeCell is one cell of an annotation table. The closed set of
// variants is FreeTextCell, TermCell and UnitizedCell.
type CompositeCell interface {
	compositeCell()
	// String returns the main-column tabular text of the cell.
	String() string
}

// FreeTextCell is unstructured cell text.
type FreeTextCell struct{ Value string }

func (FreeTextCell) compositeCell() {}

func (c FreeTextCell) String() string { return c.Value }

// TermCell is a cell holding an ontology term.
type TermCell struct{ Term OntologyAnnotation }

func (TermCell) compositeCell() {}

func (c TermCell) String() string { return c.Term.NameText() }

// UnitizedCell is a numeric-or-text value together with its unit term.
type UnitizedCell struct {
	Value string
	Unit  OntologyAnnotation
}

func (UnitizedCell) compositeCell() {}

func (c UnitizedCell) String() string { return c.Value + " " + c.Unit.NameText() }

// CellsEqual reports structural equality of two cells. Either side may be
// nil.
func CellsEqual(a, b CompositeCell) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch av := a.(type) {
	case FreeTextCell:
		bv, ok := b.(FreeTextCell)
		return ok && av == bv
	case TermCell:
		bv, ok := b.(TermCell)
		return ok && av.Term.Equal(bv.Term)
	case UnitizedCell:
		bv, ok := b.(UnitizedCell)
		return ok && av.Value == bv.Value && av.Unit.Equal(bv.Unit)
	}
	return false
}
