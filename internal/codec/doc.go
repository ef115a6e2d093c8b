// Package codec implements the tagged-value codec shared by the dialect
// packages: the discriminator envelope for the polymorphic cell and
// header families, the positional encodings for IO types and values, the
// ontology-annotation and comment payload grammar, and the field
// combinators the entity codecs are built from.
//
// Encoding is total and deterministic. Decoding is fail-fast: the first
// violation surfaces as a DecodeError and no partial object is returned.
// The two dialects share this payload grammar and differ only in the
// Options they pass: Strict (ISA-JSON) rejects object keys outside an
// entity's field set, Lax (RO-Crate) ignores unknown keys so the JSON-LD
// envelope passes through.
//
// Optional fields follow tryInclude semantics throughout: an absent field
// is omitted from the object, never encoded as null, and a missing key
// decodes to absence, not to an empty string.
package codec
