package codec

import (
	"fmt"

	"github.com/kappe-c/ARCtrl/internal/isa"
	"github.com/kappe-c/ARCtrl/internal/jtree"
)

// Discriminator keys per type family. Existing ISA-JSON and RO-Crate
// consumers match on these exact strings.
const (
	CellDiscriminator   = "celltype"
	HeaderDiscriminator = "headertype"
)

// EncodeCell renders a cell under the celltype envelope: FreeText carries
// its text, Term its annotation, Unitized its value then its unit.
func EncodeCell(c isa.CompositeCell) *jtree.Object {
	switch v := c.(type) {
	case isa.FreeTextCell:
		return EncodeEnvelope(CellDiscriminator, "FreeText", jtree.String(v.Value))
	case isa.TermCell:
		return EncodeEnvelope(CellDiscriminator, "Term", EncodeAnnotation(v.Term))
	case isa.UnitizedCell:
		return EncodeEnvelope(CellDiscriminator, "Unitized", jtree.String(v.Value), EncodeAnnotation(v.Unit))
	}
	panic(fmt.Sprintf("codec: cell type %T outside the sealed set", c))
}

// DecodeCell reads a cell envelope back.
func DecodeCell(v jtree.Value, opts Options) (isa.CompositeCell, error) {
	variant, values, err := DecodeEnvelope(v, CellDiscriminator, opts)
	if err != nil {
		return nil, err
	}
	switch variant {
	case "FreeText":
		if err := CheckArity(variant, values, 1); err != nil {
			return nil, err
		}
		s, ok := jtree.Str(values[0])
		if !ok {
			return nil, NewTypeMismatchError(variant, "values", "string", KindName(values[0]))
		}
		return isa.FreeTextCell{Value: s}, nil
	case "Term":
		if err := CheckArity(variant, values, 1); err != nil {
			return nil, err
		}
		oa, err := DecodeAnnotation(values[0], opts)
		if err != nil {
			return nil, err
		}
		return isa.TermCell{Term: oa}, nil
	case "Unitized":
		if err := CheckArity(variant, values, 2); err != nil {
			return nil, err
		}
		s, ok := jtree.Str(values[0])
		if !ok {
			return nil, NewTypeMismatchError(variant, "values", "string", KindName(values[0]))
		}
		unit, err := DecodeAnnotation(values[1], opts)
		if err != nil {
			return nil, err
		}
		return isa.UnitizedCell{Value: s, Unit: unit}, nil
	}
	return nil, NewUnknownVariantError(CellDiscriminator, variant)
}
