// Package rocrate reads and writes ISA metadata in the RO-Crate
// JSON-LD profile. Every entity is wrapped in a linked-data envelope:
// an "@id" derived deterministically from the entity's name, an
// "@type" array, and on the document root an "@context" reference.
//
// Decoding is lax. The envelope keys and any unknown keys are ignored,
// so crates produced by other tools decode as long as the payload keys
// this package knows about are well formed. Characteristic and factor
// values travel flattened as schema.org PropertyValue entities under
// "additionalProperties"; the ontology source of a flattened term is
// recovered from its accession's id space on decode.
package rocrate
