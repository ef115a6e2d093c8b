package codec

import "github.com/kappe-c/ARCtrl/internal/jtree"

// EncodeEnvelope builds the tagged-union wire form: the discriminator key
// naming the variant plus the ordered payload under "values". The
// "values" key is always written, as [] for payload-free variants.
func EncodeEnvelope(discKey, variant string, values ...jtree.Value) *jtree.Object {
	if values == nil {
		values = []jtree.Value{}
	}
	o := jtree.NewObject()
	o.Set(discKey, jtree.String(variant))
	o.Set("values", jtree.Array(values))
	return o
}

// DecodeEnvelope reads the discriminator and payload back out. Both keys
// are required; under the strict dialect any further key is rejected.
func DecodeEnvelope(v jtree.Value, discKey string, opts Options) (string, []jtree.Value, error) {
	f, err := NewFields(discKey, v, opts)
	if err != nil {
		return "", nil, err
	}
	variant, err := f.String(discKey)
	if err != nil {
		return "", nil, err
	}
	raw, ok := f.Get("values")
	if !ok {
		return "", nil, NewMissingFieldError(discKey, "values")
	}
	values, ok := jtree.Arr(raw)
	if !ok {
		return "", nil, NewTypeMismatchError(discKey, "values", "array", KindName(raw))
	}
	if err := f.Finish(); err != nil {
		return "", nil, err
	}
	return variant, values, nil
}

// CheckArity verifies the payload length for a variant.
func CheckArity(variant string, values []jtree.Value, want int) error {
	if len(values) != want {
		return NewArityMismatchError(variant, want, len(values))
	}
	return nil
}
