package codec

import (
	"github.com/kappe-c/ARCtrl/internal/isa"
	"github.com/kappe-c/ARCtrl/internal/jtree"
)

// EncodeIOType renders an IO type as its fixed column text, or the
// literal text for the free-text variant. No envelope is involved.
func EncodeIOType(io isa.IOType) jtree.Value {
	return jtree.String(io.String())
}

// DecodeIOType reads an IO type back from its string form. Only the
// exact fixed encodings map to fixed types; anything else stays free
// text, which keeps decode the exact inverse of encode.
func DecodeIOType(v jtree.Value) (isa.IOType, error) {
	s, ok := jtree.Str(v)
	if !ok {
		return nil, NewTypeMismatchError("iotype", "", "string", KindName(v))
	}
	switch s {
	case "Source Name":
		return isa.SourceIO{}, nil
	case "Sample Name":
		return isa.SampleIO{}, nil
	case "Data":
		return isa.DataIO{}, nil
	case "Material":
		return isa.MaterialIO{}, nil
	default:
		return isa.FreeTextIO{Value: s}, nil
	}
}
