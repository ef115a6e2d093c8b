package codec

import (
	"fmt"

	"github.com/kappe-c/ARCtrl/internal/isa"
	"github.com/kappe-c/ARCtrl/internal/jtree"
)

// EncodeAnnotationFields writes the ontology-annotation payload keys into
// o. The dialect packages call this after placing their own envelope
// keys, so @id and @type stay in front of the payload.
func EncodeAnnotationFields(o *jtree.Object, oa isa.OntologyAnnotation) {
	TryIncludeOptString(o, "annotationValue", oa.Name)
	TryIncludeOptString(o, "termSource", oa.TermSourceRef)
	TryIncludeOptString(o, "termAccession", oa.TermAccession)
	TryIncludeArray(o, "comments", EncodeComments(oa.Comments))
}

// EncodeAnnotation renders an ontology annotation in the bare payload
// form used by the strict dialect.
func EncodeAnnotation(oa isa.OntologyAnnotation) *jtree.Object {
	o := jtree.NewObject()
	EncodeAnnotationFields(o, oa)
	return o
}

// DecodeAnnotation reads an ontology annotation. Absent keys stay absent:
// a missing "annotationValue" decodes to a nil Name, not to "". An "@id"
// key is tolerated in both dialects.
func DecodeAnnotation(v jtree.Value, opts Options) (isa.OntologyAnnotation, error) {
	f, err := NewFields("ontology annotation", v, opts)
	if err != nil {
		return isa.OntologyAnnotation{}, err
	}
	if _, err := f.OptString("@id"); err != nil {
		return isa.OntologyAnnotation{}, err
	}
	name, err := f.OptString("annotationValue")
	if err != nil {
		return isa.OntologyAnnotation{}, err
	}
	tsr, err := f.OptString("termSource")
	if err != nil {
		return isa.OntologyAnnotation{}, err
	}
	tan, err := f.OptString("termAccession")
	if err != nil {
		return isa.OntologyAnnotation{}, err
	}
	rawComments, err := f.Array("comments")
	if err != nil {
		return isa.OntologyAnnotation{}, err
	}
	comments, err := DecodeComments(rawComments, opts)
	if err != nil {
		return isa.OntologyAnnotation{}, fmt.Errorf("ontology annotation: %w", err)
	}
	if err := f.Finish(); err != nil {
		return isa.OntologyAnnotation{}, err
	}
	return isa.OntologyAnnotation{
		Name:          name,
		TermSourceRef: tsr,
		TermAccession: tan,
		Comments:      comments,
	}, nil
}
