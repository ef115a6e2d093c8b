// Package jtree provides the generic JSON tree the dialect codecs encode
// into and decode from.
//
// The tree is a sealed set of node types: Null, Bool, Int, Float, String,
// Array, and *Object. Objects preserve key insertion order so that encoded
// output is stable across runs, and key presence is testable independently
// of null (a key mapped to Null is present; a missing key is absent). This
// distinction is what the optional-field elision rules of the codecs are
// built on.
//
// jtree imports nothing internal. All other internal packages may import it.
package jtree
