package codec

// Dialect controls how entity objects treat keys outside their field
// set while decoding.
type Dialect int

const (
	// Strict rejects unknown keys with an UNEXPECTED_FIELD error. The
	// ISA-JSON dialect decodes strictly.
	Strict Dialect = iota

	// Lax ignores unknown keys, so the @id/@type/@context envelope of the
	// RO-Crate dialect passes through the shared payload grammar.
	Lax
)

// Options carries the dialect policy through a decode pass.
type Options struct {
	Dialect Dialect
}
