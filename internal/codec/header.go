package codec

import (
	"fmt"

	"github.com/kappe-c/ARCtrl/internal/isa"
	"github.com/kappe-c/ARCtrl/internal/jtree"
)

// EncodeHeader renders a header under the headertype envelope. The
// payload-free protocol, performer, date and unit variants write
// "values":[].
func EncodeHeader(h isa.CompositeHeader) *jtree.Object {
	switch v := h.(type) {
	case isa.CharacteristicHeader:
		return EncodeEnvelope(HeaderDiscriminator, "Characteristic", EncodeAnnotation(v.Term))
	case isa.ParameterHeader:
		return EncodeEnvelope(HeaderDiscriminator, "Parameter", EncodeAnnotation(v.Term))
	case isa.FactorHeader:
		return EncodeEnvelope(HeaderDiscriminator, "Factor", EncodeAnnotation(v.Term))
	case isa.ComponentHeader:
		return EncodeEnvelope(HeaderDiscriminator, "Component", EncodeAnnotation(v.Term))
	case isa.InputHeader:
		return EncodeEnvelope(HeaderDiscriminator, "Input", EncodeIOType(v.IO))
	case isa.OutputHeader:
		return EncodeEnvelope(HeaderDiscriminator, "Output", EncodeIOType(v.IO))
	case isa.ProtocolTypeHeader:
		return EncodeEnvelope(HeaderDiscriminator, "ProtocolType")
	case isa.ProtocolDescriptionHeader:
		return EncodeEnvelope(HeaderDiscriminator, "ProtocolDescription")
	case isa.ProtocolURIHeader:
		return EncodeEnvelope(HeaderDiscriminator, "ProtocolUri")
	case isa.ProtocolVersionHeader:
		return EncodeEnvelope(HeaderDiscriminator, "ProtocolVersion")
	case isa.ProtocolREFHeader:
		return EncodeEnvelope(HeaderDiscriminator, "ProtocolREF")
	case isa.PerformerHeader:
		return EncodeEnvelope(HeaderDiscriminator, "Performer")
	case isa.DateHeader:
		return EncodeEnvelope(HeaderDiscriminator, "Date")
	case isa.UnitHeader:
		return EncodeEnvelope(HeaderDiscriminator, "Unit")
	case isa.CommentHeader:
		return EncodeEnvelope(HeaderDiscriminator, "Comment", jtree.String(v.Key))
	case isa.FreeTextHeader:
		return EncodeEnvelope(HeaderDiscriminator, "FreeText", jtree.String(v.Value))
	}
	panic(fmt.Sprintf("codec: header type %T outside the sealed set", h))
}

// DecodeHeader reads a header envelope back.
func DecodeHeader(v jtree.Value, opts Options) (isa.CompositeHeader, error) {
	variant, values, err := DecodeEnvelope(v, HeaderDiscriminator, opts)
	if err != nil {
		return nil, err
	}
	switch variant {
	case "Characteristic", "Parameter", "Factor", "Component":
		if err := CheckArity(variant, values, 1); err != nil {
			return nil, err
		}
		oa, err := DecodeAnnotation(values[0], opts)
		if err != nil {
			return nil, err
		}
		switch variant {
		case "Characteristic":
			return isa.CharacteristicHeader{Term: oa}, nil
		case "Parameter":
			return isa.ParameterHeader{Term: oa}, nil
		case "Factor":
			return isa.FactorHeader{Term: oa}, nil
		default:
			return isa.ComponentHeader{Term: oa}, nil
		}
	case "Input", "Output":
		if err := CheckArity(variant, values, 1); err != nil {
			return nil, err
		}
		io, err := DecodeIOType(values[0])
		if err != nil {
			return nil, err
		}
		if variant == "Input" {
			return isa.InputHeader{IO: io}, nil
		}
		return isa.OutputHeader{IO: io}, nil
	case "ProtocolType", "ProtocolDescription", "ProtocolUri", "ProtocolVersion",
		"ProtocolREF", "Performer", "Date", "Unit":
		if err := CheckArity(variant, values, 0); err != nil {
			return nil, err
		}
		switch variant {
		case "ProtocolType":
			return isa.ProtocolTypeHeader{}, nil
		case "ProtocolDescription":
			return isa.ProtocolDescriptionHeader{}, nil
		case "ProtocolUri":
			return isa.ProtocolURIHeader{}, nil
		case "ProtocolVersion":
			return isa.ProtocolVersionHeader{}, nil
		case "ProtocolREF":
			return isa.ProtocolREFHeader{}, nil
		case "Performer":
			return isa.PerformerHeader{}, nil
		case "Date":
			return isa.DateHeader{}, nil
		default:
			return isa.UnitHeader{}, nil
		}
	case "Comment":
		if err := CheckArity(variant, values, 1); err != nil {
			return nil, err
		}
		s, ok := jtree.Str(values[0])
		if !ok {
			return nil, NewTypeMismatchError(variant, "values", "string", KindName(values[0]))
		}
		return isa.CommentHeader{Key: s}, nil
	case "FreeText":
		if err := CheckArity(variant, values, 1); err != nil {
			return nil, err
		}
		s, ok := jtree.Str(values[0])
		if !ok {
			return nil, NewTypeMismatchError(variant, "values", "string", KindName(values[0]))
		}
		return isa.FreeTextHeader{Value: s}, nil
	}
	return nil, NewUnknownVariantError(HeaderDiscriminator, variant)
}
