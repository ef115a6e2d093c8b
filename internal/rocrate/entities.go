package rocrate

import (
	"fmt"

	"github.com/kappe-c/ARCtrl/internal/codec"
	"github.com/kappe-c/ARCtrl/internal/grammar"
	"github.com/kappe-c/ARCtrl/internal/isa"
	"github.com/kappe-c/ARCtrl/internal/jtree"
)

var opts = codec.Options{Dialect: codec.Lax}

// EncodeAnnotation renders an ontology annotation under the linked-data
// envelope. The node id is the term accession when one is present.
func EncodeAnnotation(oa isa.OntologyAnnotation) *jtree.Object {
	o := jtree.NewObject()
	setEnvelope(o, AnnotationID(oa), "OntologyAnnotation")
	codec.EncodeAnnotationFields(o, oa)
	return o
}

// DecodeAnnotation reads an ontology annotation, ignoring envelope keys.
func DecodeAnnotation(v jtree.Value) (isa.OntologyAnnotation, error) {
	return codec.DecodeAnnotation(v, opts)
}

// EncodeComment renders a comment under the linked-data envelope.
func EncodeComment(c isa.Comment) *jtree.Object {
	o := jtree.NewObject()
	setEnvelope(o, EntityID("Comment", c.Name), "Comment")
	codec.TryIncludeString(o, "name", c.Name)
	codec.TryIncludeString(o, "value", c.Value)
	return o
}

// EncodePerson renders a person with schema.org naming: givenName,
// familyName, additionalName, telephone and faxNumber instead of the
// flat ISA keys, and roles under jobTitles.
func EncodePerson(p isa.Person) *jtree.Object {
	o := jtree.NewObject()
	setEnvelope(o, EntityID("Person", p.FullName()), "Person")
	codec.TryIncludeString(o, "givenName", p.FirstName)
	codec.TryIncludeString(o, "familyName", p.LastName)
	codec.TryIncludeString(o, "additionalName", p.MidInitials)
	codec.TryIncludeString(o, "email", p.Email)
	codec.TryIncludeString(o, "telephone", p.Phone)
	codec.TryIncludeString(o, "faxNumber", p.Fax)
	codec.TryIncludeString(o, "address", p.Address)
	codec.TryIncludeString(o, "affiliation", p.Affiliation)
	codec.TryIncludeArray(o, "jobTitles", encodeAnnotations(p.Roles))
	codec.TryIncludeArray(o, "comments", encodeComments(p.Comments))
	return o
}

// DecodePerson reads a person object.
func DecodePerson(v jtree.Value) (isa.Person, error) {
	f, err := codec.NewFields("person", v, opts)
	if err != nil {
		return isa.Person{}, err
	}
	var p isa.Person
	fields := []struct {
		key string
		dst *string
	}{
		{"givenName", &p.FirstName},
		{"familyName", &p.LastName},
		{"additionalName", &p.MidInitials},
		{"email", &p.Email},
		{"telephone", &p.Phone},
		{"faxNumber", &p.Fax},
		{"address", &p.Address},
		{"affiliation", &p.Affiliation},
	}
	for _, fd := range fields {
		if *fd.dst, err = f.Text(fd.key); err != nil {
			return isa.Person{}, err
		}
	}
	if p.Roles, err = decodeAnnotationArray(f, "jobTitles"); err != nil {
		return isa.Person{}, err
	}
	if p.Comments, err = decodeCommentArray(f, "comments"); err != nil {
		return isa.Person{}, err
	}
	return p, nil
}

// EncodePublication renders a publication under the linked-data
// envelope, keeping the flat ISA payload keys.
func EncodePublication(p isa.Publication) *jtree.Object {
	o := jtree.NewObject()
	setEnvelope(o, EntityID("Publication", p.Title), "Publication")
	codec.TryIncludeString(o, "pubMedID", p.PubMedID)
	codec.TryIncludeString(o, "doi", p.DOI)
	codec.TryIncludeString(o, "authorList", p.AuthorList)
	codec.TryIncludeString(o, "title", p.Title)
	if !p.Status.IsEmpty() {
		o.Set("status", EncodeAnnotation(p.Status))
	}
	codec.TryIncludeArray(o, "comments", encodeComments(p.Comments))
	return o
}

// DecodePublication reads a publication object.
func DecodePublication(v jtree.Value) (isa.Publication, error) {
	f, err := codec.NewFields("publication", v, opts)
	if err != nil {
		return isa.Publication{}, err
	}
	var p isa.Publication
	if p.PubMedID, err = f.Text("pubMedID"); err != nil {
		return isa.Publication{}, err
	}
	if p.DOI, err = f.Text("doi"); err != nil {
		return isa.Publication{}, err
	}
	if p.AuthorList, err = f.Text("authorList"); err != nil {
		return isa.Publication{}, err
	}
	if p.Title, err = f.Text("title"); err != nil {
		return isa.Publication{}, err
	}
	if raw, ok := f.Get("status"); ok {
		if p.Status, err = DecodeAnnotation(raw); err != nil {
			return isa.Publication{}, fmt.Errorf("status: %w", err)
		}
	}
	if p.Comments, err = decodeCommentArray(f, "comments"); err != nil {
		return isa.Publication{}, err
	}
	return p, nil
}

// EncodeOntologySourceReference renders an ontology source reference.
func EncodeOntologySourceReference(r isa.OntologySourceReference) *jtree.Object {
	o := jtree.NewObject()
	setEnvelope(o, EntityID("OntologySourceReference", r.Name), "OntologySourceReference")
	codec.TryIncludeString(o, "name", r.Name)
	codec.TryIncludeString(o, "file", r.File)
	codec.TryIncludeString(o, "version", r.Version)
	codec.TryIncludeString(o, "description", r.Description)
	codec.TryIncludeArray(o, "comments", encodeComments(r.Comments))
	return o
}

// DecodeOntologySourceReference reads an ontology source reference.
func DecodeOntologySourceReference(v jtree.Value) (isa.OntologySourceReference, error) {
	f, err := codec.NewFields("ontology source reference", v, opts)
	if err != nil {
		return isa.OntologySourceReference{}, err
	}
	var r isa.OntologySourceReference
	if r.Name, err = f.Text("name"); err != nil {
		return isa.OntologySourceReference{}, err
	}
	if r.File, err = f.Text("file"); err != nil {
		return isa.OntologySourceReference{}, err
	}
	if r.Version, err = f.Text("version"); err != nil {
		return isa.OntologySourceReference{}, err
	}
	if r.Description, err = f.Text("description"); err != nil {
		return isa.OntologySourceReference{}, err
	}
	if r.Comments, err = decodeCommentArray(f, "comments"); err != nil {
		return isa.OntologySourceReference{}, err
	}
	return r, nil
}

// EncodeFactor renders a study factor.
func EncodeFactor(fa isa.Factor) *jtree.Object {
	o := jtree.NewObject()
	setEnvelope(o, EntityID("Factor", fa.Name), "Factor")
	codec.TryIncludeString(o, "factorName", fa.Name)
	if !fa.FactorType.IsEmpty() {
		o.Set("factorType", EncodeAnnotation(fa.FactorType))
	}
	codec.TryIncludeArray(o, "comments", encodeComments(fa.Comments))
	return o
}

// DecodeFactor reads a study factor.
func DecodeFactor(v jtree.Value) (isa.Factor, error) {
	f, err := codec.NewFields("factor", v, opts)
	if err != nil {
		return isa.Factor{}, err
	}
	var fa isa.Factor
	if fa.Name, err = f.Text("factorName"); err != nil {
		return isa.Factor{}, err
	}
	if raw, ok := f.Get("factorType"); ok {
		if fa.FactorType, err = DecodeAnnotation(raw); err != nil {
			return isa.Factor{}, fmt.Errorf("factorType: %w", err)
		}
	}
	if fa.Comments, err = decodeCommentArray(f, "comments"); err != nil {
		return isa.Factor{}, err
	}
	return fa, nil
}

func encodeAnnotations(oas []isa.OntologyAnnotation) []jtree.Value {
	if len(oas) == 0 {
		return nil
	}
	values := make([]jtree.Value, 0, len(oas))
	for _, oa := range oas {
		values = append(values, EncodeAnnotation(oa))
	}
	return values
}

func encodeComments(comments []isa.Comment) []jtree.Value {
	if len(comments) == 0 {
		return nil
	}
	values := make([]jtree.Value, 0, len(comments))
	for _, c := range comments {
		values = append(values, EncodeComment(c))
	}
	return values
}

func decodeAnnotationArray(f *codec.Fields, key string) ([]isa.OntologyAnnotation, error) {
	raw, err := f.Array(key)
	if err != nil {
		return nil, err
	}
	return codec.DecodeEach(key, raw, DecodeAnnotation)
}

func decodeCommentArray(f *codec.Fields, key string) ([]isa.Comment, error) {
	raw, err := f.Array(key)
	if err != nil {
		return nil, err
	}
	return codec.DecodeComments(raw, opts)
}

// annotationFrom rebuilds an annotation from a flattened name and
// accession pair. The source ontology is recovered from the accession's
// id space when the accession parses.
func annotationFrom(name, accession string) isa.OntologyAnnotation {
	tsr := ""
	if ta, ok := grammar.ParseTermAnnotation(accession); ok {
		tsr = ta.IDSpace
	}
	return isa.NewOntologyAnnotation(name, tsr, accession)
}
