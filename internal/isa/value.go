package isa

import "strconv"

// Value is a measured or declared value inside a characteristic or factor
// value: an ontology term, an integer, a float or a plain name.
type Value interface {
	isaValue()
	// Text returns the tabular rendering of the value.
	Text() string
}

// OntologyValue wraps a term reference.
type OntologyValue struct{ Term OntologyAnnotation }

func (OntologyValue) isaValue() {}

func (v OntologyValue) Text() string { return v.Term.NameText() }

// IntValue and FloatValue are numeric values. The distinction survives
// JSON round trips; the tabular form collapses integral floats into ints.
type IntValue int64

func (IntValue) isaValue() {}

func (v IntValue) Text() string { return strconv.FormatInt(int64(v), 10) }

type FloatValue float64

func (FloatValue) isaValue() {}

func (v FloatValue) Text() string { return strconv.FormatFloat(float64(v), 'f', -1, 64) }

// NameValue is a plain string value.
type NameValue string

func (NameValue) isaValue() {}

func (v NameValue) Text() string { return string(v) }

// ParseValue interprets tabular cell text as a value: an integer when the
// text parses as one, then a float, then a plain name.
func ParseValue(s string) Value {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntValue(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return FloatValue(f)
	}
	return NameValue(s)
}

// ValuesEqual reports structural equality of two values. Either side may
// be nil (absent).
func ValuesEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch av := a.(type) {
	case OntologyValue:
		bv, ok := b.(OntologyValue)
		return ok && av.Term.Equal(bv.Term)
	case IntValue:
		bv, ok := b.(IntValue)
		return ok && av == bv
	case FloatValue:
		bv, ok := b.(FloatValue)
		return ok && av == bv
	case NameValue:
		bv, ok := b.(NameValue)
		return ok && av == bv
	}
	return false
}
