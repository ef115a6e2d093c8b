// Package isajson implements the strict compact dialect: plain JSON
// objects with a fixed key set per entity and no JSON-LD envelope. A key
// outside an entity's set is a decode error; an "@id" written by legacy
// tooling is the one tolerated extra.
//
// Encoding elides what is absent: optional strings, empty lists, empty
// annotations and generated placeholder identifiers all stay out of the
// output. Decoding restores placeholders for identifiers the file does
// not carry, so a decoded aggregate is always addressable.
package isajson
