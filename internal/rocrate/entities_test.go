package rocrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kappe-c/ARCtrl/internal/isa"
	"github.com/kappe-c/ARCtrl/internal/jtree"
)

func marshalValue(t *testing.T, v jtree.Value) string {
	t.Helper()
	data, err := jtree.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func unmarshalValue(t *testing.T, data string) jtree.Value {
	t.Helper()
	v, err := jtree.Unmarshal([]byte(data))
	require.NoError(t, err)
	return v
}

func TestEntityID(t *testing.T) {
	tests := []struct {
		name   string
		kind   string
		entity string
		want   string
	}{
		{name: "plain", kind: "Study", entity: "BII-S-1", want: "#Study_BII-S-1"},
		{name: "spaces become underscores", kind: "Sample", entity: "sample one", want: "#Sample_sample_one"},
		{name: "empty name", kind: "Assay", entity: "", want: "#EmptyAssay"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EntityID(tt.kind, tt.entity))
		})
	}
}

func TestAnnotationIDPrefersAccession(t *testing.T) {
	withAccession := isa.NewOntologyAnnotation("organism", "OBI", "OBI:0100026")
	assert.Equal(t, "OBI:0100026", AnnotationID(withAccession))

	nameOnly := isa.NewOntologyAnnotation("pretty name", "", "")
	assert.Equal(t, "#OntologyAnnotation_pretty_name", AnnotationID(nameOnly))

	assert.Equal(t, "#EmptyOntologyAnnotation", AnnotationID(isa.OntologyAnnotation{}))
}

func TestEncodeAnnotationExactBytes(t *testing.T) {
	oa := isa.NewOntologyAnnotation("organism", "OBI", "OBI:0100026")
	assert.Equal(t,
		`{"@id":"OBI:0100026","@type":["OntologyAnnotation"],"annotationValue":"organism","termSource":"OBI","termAccession":"OBI:0100026"}`,
		marshalValue(t, EncodeAnnotation(oa)))
}

func TestDecodeAnnotationIgnoresEnvelope(t *testing.T) {
	raw := `{"@id":"OBI:0100026","@type":["OntologyAnnotation"],"@context":"x",` +
		`"annotationValue":"organism","termSource":"OBI","termAccession":"OBI:0100026","extraKey":42}`
	oa, err := DecodeAnnotation(unmarshalValue(t, raw))
	require.NoError(t, err)
	assert.Equal(t, isa.NewOntologyAnnotation("organism", "OBI", "OBI:0100026"), oa)
}

func TestPersonUsesSchemaOrgNames(t *testing.T) {
	p := isa.Person{
		FirstName:   "Juan",
		LastName:    "Castrillo",
		MidInitials: "I",
		Phone:       "123",
		Fax:         "456",
		Email:       "jc@test.mail",
		Roles:       []isa.OntologyAnnotation{isa.NewOntologyAnnotation("researcher", "", "")},
	}

	o := EncodePerson(p)
	assert.Equal(t, "#Person_Juan_I_Castrillo", textKey(t, o, "@id"))
	assert.True(t, o.Has("givenName"))
	assert.True(t, o.Has("familyName"))
	assert.True(t, o.Has("additionalName"))
	assert.True(t, o.Has("telephone"))
	assert.True(t, o.Has("faxNumber"))
	assert.True(t, o.Has("jobTitles"))
	assert.False(t, o.Has("firstName"))
	assert.False(t, o.Has("phone"))

	got, err := DecodePerson(o)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func textKey(t *testing.T, o *jtree.Object, key string) string {
	t.Helper()
	v, ok := o.Get(key)
	require.True(t, ok, "key %q missing", key)
	s, ok := jtree.Str(v)
	require.True(t, ok, "key %q is not a string", key)
	return s
}

func TestPublicationRoundTrip(t *testing.T) {
	p := isa.Publication{
		PubMedID:   "17439666",
		DOI:        "doi:10.1186/jbiol54",
		AuthorList: "Castrillo JI, Zeef LA",
		Title:      "Growth control of the eukaryote cell",
		Status:     isa.NewOntologyAnnotation("indexed in Pubmed", "", ""),
		Comments:   []isa.Comment{{Name: "Worksheet", Value: "publications"}},
	}
	got, err := DecodePublication(EncodePublication(p))
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestFactorRoundTrip(t *testing.T) {
	fa := isa.Factor{
		Name:       "limiting nutrient",
		FactorType: isa.NewOntologyAnnotation("chemical entity", "CHEBI", "CHEBI:24431"),
	}
	got, err := DecodeFactor(EncodeFactor(fa))
	require.NoError(t, err)
	assert.Equal(t, fa, got)
}

func TestOntologySourceReferenceRoundTrip(t *testing.T) {
	r := isa.OntologySourceReference{
		Name:        "OBI",
		File:        "http://purl.obolibrary.org/obo/obi.owl",
		Version:     "v1.26",
		Description: "Ontology for Biomedical Investigations",
	}
	got, err := DecodeOntologySourceReference(EncodeOntologySourceReference(r))
	require.NoError(t, err)
	assert.Equal(t, r, got)
}
