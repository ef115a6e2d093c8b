package jtree

import (
	"slices"
	"unicode/utf16"
)

// Object represents a JSON object with insertion-ordered keys.
// The zero value is not usable; construct with NewObject.
type Object struct {
	keys   []string
	fields map[string]Value
}

func (*Object) jsonValue() {}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{fields: make(map[string]Value)}
}

// Set stores v under key k. A new key is appended to the key order;
// overwriting an existing key keeps its original position.
func (o *Object) Set(k string, v Value) *Object {
	if _, exists := o.fields[k]; !exists {
		o.keys = append(o.keys, k)
	}
	o.fields[k] = v
	return o
}

// Get returns the value stored under k and whether the key is present.
// Presence is independent of the value being Null.
func (o *Object) Get(k string) (Value, bool) {
	v, ok := o.fields[k]
	return v, ok
}

// Has reports whether key k is present.
func (o *Object) Has(k string) bool {
	_, ok := o.fields[k]
	return ok
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the keys in insertion order. The slice is a copy.
func (o *Object) Keys() []string {
	return slices.Clone(o.keys)
}

// SortedKeys returns keys in canonical order (UTF-16 code units, RFC 8785).
// Go's sort.Strings compares UTF-8 bytes, which orders supplementary-plane
// characters differently; canonical serialization must not depend on that.
func (o *Object) SortedKeys() []string {
	keys := slices.Clone(o.keys)
	slices.SortFunc(keys, compareKeysUTF16)
	return keys
}

// compareKeysUTF16 compares strings by UTF-16 code units as required for
// canonical JSON key ordering.
func compareKeysUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	n := min(len(a16), len(b16))
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	default:
		return 0
	}
}
