package jtree

// Value is a sealed interface representing a JSON tree node.
// Only Null, Bool, Int, Float, String, Array, and *Object implement it.
type Value interface {
	jsonValue() // Sealed - only these types implement it
}

// Null represents a JSON null.
// Using an explicit type keeps nil out of the tree: an absent object key is
// "missing", a key mapped to Null is "present and null".
type Null struct{}

func (Null) jsonValue() {}

// Bool represents a JSON boolean.
type Bool bool

func (Bool) jsonValue() {}

// Int represents a JSON number written without a fraction or exponent.
// Kept separate from Float so decoders can distinguish integer from
// floating-point payloads (factor values carry both).
type Int int64

func (Int) jsonValue() {}

// Float represents a JSON number with a fraction or exponent.
type Float float64

func (Float) jsonValue() {}

// String represents a JSON string.
type String string

func (String) jsonValue() {}

// Array represents a JSON array. Element order is significant.
type Array []Value

func (Array) jsonValue() {}

// Str returns the string content of v if v is a String.
func Str(v Value) (string, bool) {
	s, ok := v.(String)
	return string(s), ok
}

// Arr returns the elements of v if v is an Array.
func Arr(v Value) ([]Value, bool) {
	a, ok := v.(Array)
	return a, ok
}

// Obj returns v as an *Object if it is one.
func Obj(v Value) (*Object, bool) {
	o, ok := v.(*Object)
	return o, ok
}
