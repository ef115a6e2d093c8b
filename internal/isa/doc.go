// Package isa holds the in-memory object model for ISA metadata:
// ontology annotations, the polymorphic cell/header/column types backing
// annotation tables, the flat entities (persons, publications, factors,
// ...) and the ArcInvestigation/ArcStudy/ArcAssay aggregates.
//
// Everything here is value-like. Encoders and decoders in the dialect
// packages build and consume these values without mutating their input;
// the only mutation surface is the ArcTable builder API, which enforces
// the column invariants (populated cells stay within the header range and
// match the header's column shape).
//
// Optional strings on OntologyAnnotation are pointers: an absent field is
// nil, which is distinct from an empty string. The flat entities use plain
// strings and treat empty as absent.
package isa
