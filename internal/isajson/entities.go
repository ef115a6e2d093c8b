package isajson

import (
	"fmt"

	"github.com/kappe-c/ARCtrl/internal/codec"
	"github.com/kappe-c/ARCtrl/internal/isa"
	"github.com/kappe-c/ARCtrl/internal/jtree"
)

var opts = codec.Options{Dialect: codec.Strict}

// EncodePerson renders a person. Empty fields and lists are elided.
func EncodePerson(p isa.Person) *jtree.Object {
	o := jtree.NewObject()
	codec.TryIncludeString(o, "firstName", p.FirstName)
	codec.TryIncludeString(o, "lastName", p.LastName)
	codec.TryIncludeString(o, "midInitials", p.MidInitials)
	codec.TryIncludeString(o, "email", p.Email)
	codec.TryIncludeString(o, "phone", p.Phone)
	codec.TryIncludeString(o, "fax", p.Fax)
	codec.TryIncludeString(o, "address", p.Address)
	codec.TryIncludeString(o, "affiliation", p.Affiliation)
	codec.TryIncludeArray(o, "roles", encodeAnnotations(p.Roles))
	codec.TryIncludeArray(o, "comments", codec.EncodeComments(p.Comments))
	return o
}

// DecodePerson reads a person object.
func DecodePerson(v jtree.Value) (isa.Person, error) {
	f, err := codec.NewFields("person", v, opts)
	if err != nil {
		return isa.Person{}, err
	}
	if _, err := f.OptString("@id"); err != nil {
		return isa.Person{}, err
	}
	var p isa.Person
	fields := []struct {
		key string
		dst *string
	}{
		{"firstName", &p.FirstName},
		{"lastName", &p.LastName},
		{"midInitials", &p.MidInitials},
		{"email", &p.Email},
		{"phone", &p.Phone},
		{"fax", &p.Fax},
		{"address", &p.Address},
		{"affiliation", &p.Affiliation},
	}
	for _, fd := range fields {
		if *fd.dst, err = f.Text(fd.key); err != nil {
			return isa.Person{}, err
		}
	}
	if p.Roles, err = decodeAnnotationArray(f, "roles"); err != nil {
		return isa.Person{}, err
	}
	if p.Comments, err = decodeCommentArray(f, "comments"); err != nil {
		return isa.Person{}, err
	}
	if err := f.Finish(); err != nil {
		return isa.Person{}, err
	}
	return p, nil
}

// EncodePublication renders a publication. The status annotation is
// elided when empty.
func EncodePublication(p isa.Publication) *jtree.Object {
	o := jtree.NewObject()
	codec.TryIncludeString(o, "pubMedID", p.PubMedID)
	codec.TryIncludeString(o, "doi", p.DOI)
	codec.TryIncludeString(o, "authorList", p.AuthorList)
	codec.TryIncludeString(o, "title", p.Title)
	if !p.Status.IsEmpty() {
		o.Set("status", codec.EncodeAnnotation(p.Status))
	}
	codec.TryIncludeArray(o, "comments", codec.EncodeComments(p.Comments))
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
		if p.Status, err = codec.DecodeAnnotation(raw, opts); err != nil {
			return isa.Publication{}, fmt.Errorf("status: %w", err)
		}
	}
	if p.Comments, err = decodeCommentArray(f, "comments"); err != nil {
		return isa.Publication{}, err
	}
	if err := f.Finish(); err != nil {
		return isa.Publication{}, err
	}
	return p, nil
}

// EncodeOntologySourceReference renders an ontology source reference.
func EncodeOntologySourceReference(r isa.OntologySourceReference) *jtree.Object {
	o := jtree.NewObject()
	codec.TryIncludeString(o, "name", r.Name)
	codec.TryIncludeString(o, "file", r.File)
	codec.TryIncludeString(o, "version", r.Version)
	codec.TryIncludeString(o, "description", r.Description)
	codec.TryIncludeArray(o, "comments", codec.EncodeComments(r.Comments))
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
	if err := f.Finish(); err != nil {
		return isa.OntologySourceReference{}, err
	}
	return r, nil
}

// EncodeFactor renders a study factor.
func EncodeFactor(fa isa.Factor) *jtree.Object {
	o := jtree.NewObject()
	codec.TryIncludeString(o, "factorName", fa.Name)
	if !fa.FactorType.IsEmpty() {
		o.Set("factorType", codec.EncodeAnnotation(fa.FactorType))
	}
	codec.TryIncludeArray(o, "comments", codec.EncodeComments(fa.Comments))
	return o
}

// DecodeFactor reads a study factor.
func DecodeFactor(v jtree.Value) (isa.Factor, error) {
	f, err := codec.NewFields("factor", v, opts)
	if err != nil {
		return isa.Factor{}, err
	}
	if _, err := f.OptString("@id"); err != nil {
		return isa.Factor{}, err
	}
	var fa isa.Factor
	if fa.Name, err = f.Text("factorName"); err != nil {
		return isa.Factor{}, err
	}
	if raw, ok := f.Get("factorType"); ok {
		if fa.FactorType, err = codec.DecodeAnnotation(raw, opts); err != nil {
			return isa.Factor{}, fmt.Errorf("factorType: %w", err)
		}
	}
	if fa.Comments, err = decodeCommentArray(f, "comments"); err != nil {
		return isa.Factor{}, err
	}
	if err := f.Finish(); err != nil {
		return isa.Factor{}, err
	}
	return fa, nil
}

// EncodeCharacteristicValue renders a characteristic value as
// {"category", "value", "unit"}, each part elided when absent.
func EncodeCharacteristicValue(cv isa.CharacteristicValue) *jtree.Object {
	return encodeCategorizedValue(cv.Category, cv.Value, cv.Unit)
}

// DecodeCharacteristicValue reads a characteristic value.
func DecodeCharacteristicValue(v jtree.Value) (isa.CharacteristicValue, error) {
	cat, val, unit, err := decodeCategorizedValue("characteristic value", v)
	if err != nil {
		return isa.CharacteristicValue{}, err
	}
	return isa.CharacteristicValue{Category: cat, Value: val, Unit: unit}, nil
}

// EncodeFactorValue renders a factor value in the same layout as a
// characteristic value.
func EncodeFactorValue(fv isa.FactorValue) *jtree.Object {
	return encodeCategorizedValue(fv.Category, fv.Value, fv.Unit)
}

// DecodeFactorValue reads a factor value.
func DecodeFactorValue(v jtree.Value) (isa.FactorValue, error) {
	cat, val, unit, err := decodeCategorizedValue("factor value", v)
	if err != nil {
		return isa.FactorValue{}, err
	}
	return isa.FactorValue{Category: cat, Value: val, Unit: unit}, nil
}

// EncodeSample renders a sample with its characteristic and factor
// values.
func EncodeSample(s isa.Sample) *jtree.Object {
	o := jtree.NewObject()
	codec.TryIncludeString(o, "name", s.Name)
	if len(s.Characteristics) > 0 {
		values := make([]jtree.Value, 0, len(s.Characteristics))
		for _, cv := range s.Characteristics {
			values = append(values, EncodeCharacteristicValue(cv))
		}
		o.Set("characteristics", jtree.Array(values))
	}
	if len(s.FactorValues) > 0 {
		values := make([]jtree.Value, 0, len(s.FactorValues))
		for _, fv := range s.FactorValues {
			values = append(values, EncodeFactorValue(fv))
		}
		o.Set("factorValues", jtree.Array(values))
	}
	return o
}

// DecodeSample reads a sample object.
func DecodeSample(v jtree.Value) (isa.Sample, error) {
	f, err := codec.NewFields("sample", v, opts)
	if err != nil {
		return isa.Sample{}, err
	}
	if _, err := f.OptString("@id"); err != nil {
		return isa.Sample{}, err
	}
	var s isa.Sample
	if s.Name, err = f.Text("name"); err != nil {
		return isa.Sample{}, err
	}
	rawCVs, err := f.Array("characteristics")
	if err != nil {
		return isa.Sample{}, err
	}
	if s.Characteristics, err = codec.DecodeEach("characteristics", rawCVs, DecodeCharacteristicValue); err != nil {
		return isa.Sample{}, err
	}
	rawFVs, err := f.Array("factorValues")
	if err != nil {
		return isa.Sample{}, err
	}
	if s.FactorValues, err = codec.DecodeEach("factorValues", rawFVs, DecodeFactorValue); err != nil {
		return isa.Sample{}, err
	}
	if err := f.Finish(); err != nil {
		return isa.Sample{}, err
	}
	return s, nil
}

func encodeCategorizedValue(cat isa.OntologyAnnotation, val isa.Value, unit isa.OntologyAnnotation) *jtree.Object {
	o := jtree.NewObject()
	if !cat.IsEmpty() {
		o.Set("category", codec.EncodeAnnotation(cat))
	}
	if val != nil {
		o.Set("value", codec.EncodeValue(val))
	}
	if !unit.IsEmpty() {
		o.Set("unit", codec.EncodeAnnotation(unit))
	}
	return o
}

func decodeCategorizedValue(entity string, v jtree.Value) (cat isa.OntologyAnnotation, val isa.Value, unit isa.OntologyAnnotation, err error) {
	f, err := codec.NewFields(entity, v, opts)
	if err != nil {
		return cat, nil, unit, err
	}
	if raw, ok := f.Get("category"); ok {
		if cat, err = codec.DecodeAnnotation(raw, opts); err != nil {
			return cat, nil, unit, fmt.Errorf("category: %w", err)
		}
	}
	if raw, ok := f.Get("value"); ok {
		if val, err = codec.DecodeValue(raw, opts); err != nil {
			return cat, nil, unit, fmt.Errorf("value: %w", err)
		}
	}
	if raw, ok := f.Get("unit"); ok {
		if unit, err = codec.DecodeAnnotation(raw, opts); err != nil {
			return cat, nil, unit, fmt.Errorf("unit: %w", err)
		}
	}
	if err := f.Finish(); err != nil {
		return cat, nil, unit, err
	}
	return cat, val, unit, nil
}

func encodeAnnotations(oas []isa.OntologyAnnotation) []jtree.Value {
	if len(oas) == 0 {
		return nil
	}
	values := make([]jtree.Value, 0, len(oas))
	for _, oa := range oas {
		values = append(values, codec.EncodeAnnotation(oa))
	}
	return values
}

func decodeAnnotationArray(f *codec.Fields, key string) ([]isa.OntologyAnnotation, error) {
	raw, err := f.Array(key)
	if err != nil {
		return nil, err
	}
	return codec.DecodeEach(key, raw, func(v jtree.Value) (isa.OntologyAnnotation, error) {
		return codec.DecodeAnnotation(v, opts)
	})
}

func decodeCommentArray(f *codec.Fields, key string) ([]isa.Comment, error) {
	raw, err := f.Array(key)
	if err != nil {
		return nil, err
	}
	return codec.DecodeComments(raw, opts)
}
