// Package grammar classifies raw spreadsheet column-header strings and
// parses ontology term accessions.
//
// Both engines are best-effort by contract: a non-match is (zero, false),
// never an error. Callers fall back to a free-text interpretation when
// classification fails. Matching is all-or-nothing against the trimmed
// input, and the literal keywords (Parameter, Factor, Characteristic,
// Component, Input, Output, Comment, Unit, ...) are case-sensitive because
// external spreadsheet tooling writes them exactly this way.
//
// The pattern strings are exported: they are behavioral contracts, not
// implementation details. Changing one changes which files round-trip.
package grammar
