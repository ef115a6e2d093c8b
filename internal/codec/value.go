package codec

import (
	"github.com/kappe-c/ARCtrl/internal/isa"
	"github.com/kappe-c/ARCtrl/internal/jtree"
)

// EncodeValue renders a characteristic or factor value positionally: an
// annotation object, a bare number or a bare string. A nil value encodes
// as JSON null; callers usually elide it instead.
func EncodeValue(val isa.Value) jtree.Value {
	switch v := val.(type) {
	case isa.OntologyValue:
		return EncodeAnnotation(v.Term)
	case isa.IntValue:
		return jtree.Int(v)
	case isa.FloatValue:
		return jtree.Float(v)
	case isa.NameValue:
		return jtree.String(string(v))
	}
	return jtree.Null{}
}

// DecodeValue reads a value back, trying kinds in the fixed priority
// order: object, integer, float, string.
func DecodeValue(v jtree.Value, opts Options) (isa.Value, error) {
	switch t := v.(type) {
	case *jtree.Object:
		oa, err := DecodeAnnotation(t, opts)
		if err != nil {
			return nil, err
		}
		return isa.OntologyValue{Term: oa}, nil
	case jtree.Int:
		return isa.IntValue(t), nil
	case jtree.Float:
		return isa.FloatValue(t), nil
	case jtree.String:
		return isa.NameValue(t), nil
	}
	return nil, NewTypeMismatchError("value", "", "object, number or string", KindName(v))
}
