package isa

import (
	"strings"

	"github.com/kappe-c/ARCtrl/internal/grammar"
)

// CompositeHeader names the role of one table column. Term-bearing roles
// carry an ontology annotation, the IO roles carry an IOType, Comment
// carries its key, and the protocol/performer/date/unit roles have no
// payload.
type CompositeHeader interface {
	compositeHeader()
	// String returns the ISA-Tab column label, "Parameter [growth
	// temperature]" for a parameter header.
	String() string
}

type CharacteristicHeader struct{ Term OntologyAnnotation }

func (CharacteristicHeader) compositeHeader() {}

func (h CharacteristicHeader) String() string { return "Characteristic [" + h.Term.NameText() + "]" }

type ParameterHeader struct{ Term OntologyAnnotation }

func (ParameterHeader) compositeHeader() {}

func (h ParameterHeader) String() string { return "Parameter [" + h.Term.NameText() + "]" }

type FactorHeader struct{ Term OntologyAnnotation }

func (FactorHeader) compositeHeader() {}

func (h FactorHeader) String() string { return "Factor [" + h.Term.NameText() + "]" }

type ComponentHeader struct{ Term OntologyAnnotation }

func (ComponentHeader) compositeHeader() {}

func (h ComponentHeader) String() string { return "Component [" + h.Term.NameText() + "]" }

type InputHeader struct{ IO IOType }

func (InputHeader) compositeHeader() {}

func (h InputHeader) String() string { return "Input [" + h.IO.String() + "]" }

type OutputHeader struct{ IO IOType }

func (OutputHeader) compositeHeader() {}

func (h OutputHeader) String() string { return "Output [" + h.IO.String() + "]" }

type ProtocolTypeHeader struct{}

func (ProtocolTypeHeader) compositeHeader() {}

func (ProtocolTypeHeader) String() string { return "Protocol Type" }

type ProtocolDescriptionHeader struct{}

func (ProtocolDescriptionHeader) compositeHeader() {}

func (ProtocolDescriptionHeader) String() string { return "Protocol Description" }

type ProtocolURIHeader struct{}

func (ProtocolURIHeader) compositeHeader() {}

func (ProtocolURIHeader) String() string { return "Protocol Uri" }

type ProtocolVersionHeader struct{}

func (ProtocolVersionHeader) compositeHeader() {}

func (ProtocolVersionHeader) String() string { return "Protocol Version" }

type ProtocolREFHeader struct{}

func (ProtocolREFHeader) compositeHeader() {}

func (ProtocolREFHeader) String() string { return "Protocol REF" }

type PerformerHeader struct{}

func (PerformerHeader) compositeHeader() {}

func (PerformerHeader) String() string { return "Performer" }

type DateHeader struct{}

func (DateHeader) compositeHeader() {}

func (DateHeader) String() string { return "Date" }

type UnitHeader struct{}

func (UnitHeader) compositeHeader() {}

func (UnitHeader) String() string { return "Unit" }

type CommentHeader struct{ Key string }

func (CommentHeader) compositeHeader() {}

func (h CommentHeader) String() string { return "Comment [" + h.Key + "]" }

// FreeTextHeader keeps a column label the grammar could not classify.
type FreeTextHeader struct{ Value string }

func (FreeTextHeader) compositeHeader() {}

func (h FreeTextHeader) String() string { return h.Value }

// ParseHeader classifies a raw column label into a header. It is total:
// labels the grammar cannot classify come back as FreeTextHeader. Term
// headers parsed from a bare label carry a name-only annotation; source
// ref and accession arrive through the reference subcolumns of the
// tabular layer.
func ParseHeader(s string) CompositeHeader {
	trimmed := strings.TrimSpace(s)
	switch trimmed {
	case "Protocol Type":
		return ProtocolTypeHeader{}
	case "Protocol Description":
		return ProtocolDescriptionHeader{}
	case "Protocol Uri":
		return ProtocolURIHeader{}
	case "Protocol Version":
		return ProtocolVersionHeader{}
	case "Protocol REF":
		return ProtocolREFHeader{}
	case "Performer":
		return PerformerHeader{}
	case "Date":
		return DateHeader{}
	}
	c, ok := grammar.Classify(trimmed)
	if !ok {
		return FreeTextHeader{Value: trimmed}
	}
	switch cc := c.(type) {
	case grammar.CharacteristicColumn:
		return CharacteristicHeader{Term: NewOntologyAnnotation(cc.Term, "", "")}
	case grammar.ParameterColumn:
		return ParameterHeader{Term: NewOntologyAnnotation(cc.Term, "", "")}
	case grammar.FactorColumn:
		return FactorHeader{Term: NewOntologyAnnotation(cc.Term, "", "")}
	case grammar.ComponentColumn:
		return ComponentHeader{Term: NewOntologyAnnotation(cc.Term, "", "")}
	case grammar.InputColumn:
		return InputHeader{IO: ParseIOType(cc.IOType)}
	case grammar.OutputColumn:
		return OutputHeader{IO: ParseIOType(cc.IOType)}
	case grammar.CommentColumn:
		return CommentHeader{Key: cc.Key}
	case grammar.UnitColumn:
		return UnitHeader{}
	default:
		return FreeTextHeader{Value: trimmed}
	}
}

// IsTermColumn reports whether the header's column carries ontology terms
// and therefore pairs with Term Source REF / Term Accession Number
// subcolumns in the tabular form. Protocol Type counts: its cells are
// terms.
func IsTermColumn(h CompositeHeader) bool {
	switch h.(type) {
	case CharacteristicHeader, ParameterHeader, FactorHeader, ComponentHeader, ProtocolTypeHeader:
		return true
	}
	return false
}

// IsIOColumn reports whether the header is an Input or Output column.
func IsIOColumn(h CompositeHeader) bool {
	switch h.(type) {
	case InputHeader, OutputHeader:
		return true
	}
	return false
}

// EmptyCellFor returns the empty cell matching the header's column shape.
func EmptyCellFor(h CompositeHeader) CompositeCell {
	if IsTermColumn(h) {
		return TermCell{}
	}
	return FreeTextCell{}
}

// CellFits reports whether a cell variant matches the header's column
// shape: term columns take Term or Unitized cells, every other column
// takes FreeText cells.
func CellFits(h CompositeHeader, c CompositeCell) bool {
	switch c.(type) {
	case TermCell, UnitizedCell:
		return IsTermColumn(h)
	case FreeTextCell:
		return !IsTermColumn(h)
	}
	return false
}

// HeadersEqual reports structural equality of two headers.
func HeadersEqual(a, b CompositeHeader) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch av := a.(type) {
	case CharacteristicHeader:
		bv, ok := b.(CharacteristicHeader)
		return ok && av.Term.Equal(bv.Term)
	case ParameterHeader:
		bv, ok := b.(ParameterHeader)
		return ok && av.Term.Equal(bv.Term)
	case FactorHeader:
		bv, ok := b.(FactorHeader)
		return ok && av.Term.Equal(bv.Term)
	case ComponentHeader:
		bv, ok := b.(ComponentHeader)
		return ok && av.Term.Equal(bv.Term)
	case InputHeader:
		bv, ok := b.(InputHeader)
		return ok && av.IO == bv.IO
	case OutputHeader:
		bv, ok := b.(OutputHeader)
		return ok && av.IO == bv.IO
	default:
		return a == b
	}
}
