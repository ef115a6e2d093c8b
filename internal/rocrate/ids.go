package rocrate

import (
	"strings"

	"github.com/kappe-c/ARCtrl/internal/isa"
	"github.com/kappe-c/ARCtrl/internal/jtree"
)

// Context is the JSON-LD context reference written on document roots.
const Context = "https://w3id.org/ro/crate/1.1/context"

// EntityID derives the node identifier for an entity that carries no
// authoritative one: "#<Kind>_<name>" with spaces flattened to
// underscores, or "#Empty<Kind>" when the name is blank. The derivation
// is pure, so re-encoding an unchanged entity yields the same node id.
func EntityID(kind, name string) string {
	if name == "" {
		return "#Empty" + kind
	}
	return "#" + kind + "_" + strings.ReplaceAll(name, " ", "_")
}

// AnnotationID prefers the term accession as the node identifier, since
// an accession already is a stable reference. Without one it falls back
// to the name-derived id.
func AnnotationID(oa isa.OntologyAnnotation) string {
	if ta := oa.TermAccessionText(); ta != "" {
		return ta
	}
	return EntityID("OntologyAnnotation", oa.NameText())
}

// setEnvelope writes the "@id" and "@type" keys. It runs before the
// payload keys so the envelope leads the object.
func setEnvelope(o *jtree.Object, id, kind string) {
	o.Set("@id", jtree.String(id))
	o.Set("@type", jtree.Array{jtree.String(kind)})
}
