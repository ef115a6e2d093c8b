package codec

import (
	"fmt"

	"github.com/kappe-c/ARCtrl/internal/jtree"
)

// Fields wraps an entity object being decoded. It tracks which keys the
// decoder read so Finish can reject leftovers under the strict dialect.
type Fields struct {
	entity string
	obj    *jtree.Object
	opts   Options
	seen   map[string]bool
}

// NewFields starts decoding v as the named entity. It fails with a type
// mismatch when v is not an object.
func NewFields(entity string, v jtree.Value, opts Options) (*Fields, error) {
	obj, ok := jtree.Obj(v)
	if !ok {
		return nil, NewTypeMismatchError(entity, "", "object", KindName(v))
	}
	return &Fields{entity: entity, obj: obj, opts: opts, seen: map[string]bool{}}, nil
}

// Get returns the raw value under key and whether it is present, marking
// the key as read.
func (f *Fields) Get(key string) (jtree.Value, bool) {
	f.seen[key] = true
	return f.obj.Get(key)
}

// OptString reads an optional string field. Absence is nil, which is
// distinct from a present empty string.
func (f *Fields) OptString(key string) (*string, error) {
	v, ok := f.Get(key)
	if !ok {
		return nil, nil
	}
	s, ok := jtree.Str(v)
	if !ok {
		return nil, NewTypeMismatchError(f.entity, key, "string", KindName(v))
	}
	return &s, nil
}

// Text reads an optional string field, collapsing absence to "".
func (f *Fields) Text(key string) (string, error) {
	s, err := f.OptString(key)
	if err != nil || s == nil {
		return "", err
	}
	return *s, nil
}

// String reads a required string field.
func (f *Fields) String(key string) (string, error) {
	v, ok := f.Get(key)
	if !ok {
		return "", NewMissingFieldError(f.entity, key)
	}
	s, ok := jtree.Str(v)
	if !ok {
		return "", NewTypeMismatchError(f.entity, key, "string", KindName(v))
	}
	return s, nil
}

// Array reads an optional array field. Absence is a nil slice.
func (f *Fields) Array(key string) ([]jtree.Value, error) {
	v, ok := f.Get(key)
	if !ok {
		return nil, nil
	}
	arr, ok := jtree.Arr(v)
	if !ok {
		return nil, NewTypeMismatchError(f.entity, key, "array", KindName(v))
	}
	return arr, nil
}

// Finish rejects any key the decoder did not read. Under the lax dialect
// it is a no-op.
func (f *Fields) Finish() error {
	if f.opts.Dialect != Strict {
		return nil
	}
	for _, k := range f.obj.Keys() {
		if !f.seen[k] {
			return NewUnexpectedFieldError(f.entity, k)
		}
	}
	return nil
}

// TryIncludeString sets key to value unless value is empty.
func TryIncludeString(o *jtree.Object, key, value string) {
	if value != "" {
		o.Set(key, jtree.String(value))
	}
}

// TryIncludeOptString sets key to the pointed-to string unless value is
// nil. A pointer to "" is present and encodes as "".
func TryIncludeOptString(o *jtree.Object, key string, value *string) {
	if value != nil {
		o.Set(key, jtree.String(*value))
	}
}

// TryIncludeArray sets key to the array unless it is empty.
func TryIncludeArray(o *jtree.Object, key string, values []jtree.Value) {
	if len(values) > 0 {
		o.Set(key, jtree.Array(values))
	}
}

// TryIncludeObject sets key to the object unless it is nil or empty.
func TryIncludeObject(o *jtree.Object, key string, value *jtree.Object) {
	if value != nil && value.Len() > 0 {
		o.Set(key, value)
	}
}

// DecodeEach decodes every element of values, wrapping failures with the
// key and index. An empty input yields nil.
func DecodeEach[T any](key string, values []jtree.Value, dec func(jtree.Value) (T, error)) ([]T, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make([]T, 0, len(values))
	for i, v := range values {
		item, err := dec(v)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		out = append(out, item)
	}
	return out, nil
}

// KindName names the JSON kind of v for error messages.
func KindName(v jtree.Value) string {
	switch v.(type) {
	case jtree.Null:
		return "null"
	case jtree.Bool:
		return "bool"
	case jtree.Int:
		return "int"
	case jtree.Float:
		return "float"
	case jtree.String:
		return "string"
	case jtree.Array:
		return "array"
	case *jtree.Object:
		return "object"
	}
	return "unknown"
}
