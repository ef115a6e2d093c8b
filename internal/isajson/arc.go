package isajson

import (
	"fmt"

	"github.com/kappe-c/ARCtrl/internal/codec"
	"github.com/kappe-c/ARCtrl/internal/isa"
	"github.com/kappe-c/ARCtrl/internal/jtree"
)

// Codec reads and writes the compact ISA-JSON layout. IDs supplies
// identifiers for documents that arrive without one; tests swap in a
// deterministic source.
type Codec struct {
	IDs isa.IdentifierSource
}

// New returns a codec backed by fresh placeholder identifiers.
func New() *Codec {
	return &Codec{IDs: isa.NewMissingIdentifier}
}

// EncodeAssay renders an assay. A placeholder identifier is elided, as
// are empty descriptors and lists.
func (c *Codec) EncodeAssay(a *isa.ArcAssay) *jtree.Object {
	o := jtree.NewObject()
	if !isa.IsMissingIdentifier(a.Identifier) {
		codec.TryIncludeString(o, "identifier", a.Identifier)
	}
	if !a.MeasurementType.IsEmpty() {
		o.Set("measurementType", codec.EncodeAnnotation(a.MeasurementType))
	}
	if !a.TechnologyType.IsEmpty() {
		o.Set("technologyType", codec.EncodeAnnotation(a.TechnologyType))
	}
	if !a.TechnologyPlatform.IsEmpty() {
		o.Set("technologyPlatform", codec.EncodeAnnotation(a.TechnologyPlatform))
	}
	codec.TryIncludeArray(o, "tables", encodeTables(a.Tables))
	codec.TryIncludeArray(o, "performers", encodePeople(a.Performers))
	codec.TryIncludeArray(o, "comments", codec.EncodeComments(a.Comments))
	return o
}

// DecodeAssay reads an assay. A missing identifier is replaced by a
// fresh placeholder.
func (c *Codec) DecodeAssay(v jtree.Value) (*isa.ArcAssay, error) {
	f, err := codec.NewFields("assay", v, opts)
	if err != nil {
		return nil, err
	}
	id, err := c.identifier(f)
	if err != nil {
		return nil, err
	}
	a := isa.NewArcAssay(id)
	if a.MeasurementType, err = decodeAnnotationField(f, "measurementType"); err != nil {
		return nil, err
	}
	if a.TechnologyType, err = decodeAnnotationField(f, "technologyType"); err != nil {
		return nil, err
	}
	if a.TechnologyPlatform, err = decodeAnnotationField(f, "technologyPlatform"); err != nil {
		return nil, err
	}
	if a.Tables, err = decodeTableArray(f); err != nil {
		return nil, err
	}
	if a.Performers, err = decodePersonArray(f, "performers"); err != nil {
		return nil, err
	}
	if a.Comments, err = decodeCommentArray(f, "comments"); err != nil {
		return nil, err
	}
	if err := f.Finish(); err != nil {
		return nil, err
	}
	return a, nil
}

// EncodeStudy renders a study with its tables and nested assays.
func (c *Codec) EncodeStudy(s *isa.ArcStudy) *jtree.Object {
	o := jtree.NewObject()
	if !isa.IsMissingIdentifier(s.Identifier) {
		codec.TryIncludeString(o, "identifier", s.Identifier)
	}
	codec.TryIncludeString(o, "title", s.Title)
	codec.TryIncludeString(o, "description", s.Description)
	codec.TryIncludeString(o, "submissionDate", s.SubmissionDate)
	codec.TryIncludeString(o, "publicReleaseDate", s.PublicReleaseDate)
	codec.TryIncludeArray(o, "publications", encodePublications(s.Publications))
	codec.TryIncludeArray(o, "people", encodePeople(s.Contacts))
	codec.TryIncludeArray(o, "studyDesignDescriptors", encodeAnnotations(s.StudyDesignDescriptors))
	codec.TryIncludeArray(o, "factors", encodeFactors(s.Factors))
	codec.TryIncludeArray(o, "tables", encodeTables(s.Tables))
	if len(s.Assays) > 0 {
		values := make([]jtree.Value, 0, len(s.Assays))
		for _, a := range s.Assays {
			values = append(values, c.EncodeAssay(a))
		}
		o.Set("assays", jtree.Array(values))
	}
	codec.TryIncludeArray(o, "comments", codec.EncodeComments(s.Comments))
	return o
}

// DecodeStudy reads a study.
func (c *Codec) DecodeStudy(v jtree.Value) (*isa.ArcStudy, error) {
	f, err := codec.NewFields("study", v, opts)
	if err != nil {
		return nil, err
	}
	id, err := c.identifier(f)
	if err != nil {
		return nil, err
	}
	s := isa.NewArcStudy(id)
	if s.Title, err = f.Text("title"); err != nil {
		return nil, err
	}
	if s.Description, err = f.Text("description"); err != nil {
		return nil, err
	}
	if s.SubmissionDate, err = f.Text("submissionDate"); err != nil {
		return nil, err
	}
	if s.PublicReleaseDate, err = f.Text("publicReleaseDate"); err != nil {
		return nil, err
	}
	if s.Publications, err = decodePublicationArray(f); err != nil {
		return nil, err
	}
	if s.Contacts, err = decodePersonArray(f, "people"); err != nil {
		return nil, err
	}
	if s.StudyDesignDescriptors, err = decodeAnnotationArray(f, "studyDesignDescriptors"); err != nil {
		return nil, err
	}
	if s.Factors, err = decodeFactorArray(f); err != nil {
		return nil, err
	}
	if s.Tables, err = decodeTableArray(f); err != nil {
		return nil, err
	}
	rawAssays, err := f.Array("assays")
	if err != nil {
		return nil, err
	}
	if s.Assays, err = codec.DecodeEach("assays", rawAssays, c.DecodeAssay); err != nil {
		return nil, err
	}
	if s.Comments, err = decodeCommentArray(f, "comments"); err != nil {
		return nil, err
	}
	if err := f.Finish(); err != nil {
		return nil, err
	}
	return s, nil
}

// EncodeInvestigation renders the root investigation document.
func (c *Codec) EncodeInvestigation(inv *isa.ArcInvestigation) *jtree.Object {
	o := jtree.NewObject()
	if !isa.IsMissingIdentifier(inv.Identifier) {
		codec.TryIncludeString(o, "identifier", inv.Identifier)
	}
	codec.TryIncludeString(o, "title", inv.Title)
	codec.TryIncludeString(o, "description", inv.Description)
	codec.TryIncludeString(o, "submissionDate", inv.SubmissionDate)
	codec.TryIncludeString(o, "publicReleaseDate", inv.PublicReleaseDate)
	if len(inv.OntologySourceReferences) > 0 {
		values := make([]jtree.Value, 0, len(inv.OntologySourceReferences))
		for _, r := range inv.OntologySourceReferences {
			values = append(values, EncodeOntologySourceReference(r))
		}
		o.Set("ontologySourceReferences", jtree.Array(values))
	}
	codec.TryIncludeArray(o, "publications", encodePublications(inv.Publications))
	codec.TryIncludeArray(o, "people", encodePeople(inv.Contacts))
	if len(inv.Studies) > 0 {
		values := make([]jtree.Value, 0, len(inv.Studies))
		for _, s := range inv.Studies {
			values = append(values, c.EncodeStudy(s))
		}
		o.Set("studies", jtree.Array(values))
	}
	codec.TryIncludeArray(o, "comments", codec.EncodeComments(inv.Comments))
	return o
}

// DecodeInvestigation reads the root investigation document.
func (c *Codec) DecodeInvestigation(v jtree.Value) (*isa.ArcInvestigation, error) {
	f, err := codec.NewFields("investigation", v, opts)
	if err != nil {
		return nil, err
	}
	id, err := c.identifier(f)
	if err != nil {
		return nil, err
	}
	inv := isa.NewArcInvestigation(id)
	if inv.Title, err = f.Text("title"); err != nil {
		return nil, err
	}
	if inv.Description, err = f.Text("description"); err != nil {
		return nil, err
	}
	if inv.SubmissionDate, err = f.Text("submissionDate"); err != nil {
		return nil, err
	}
	if inv.PublicReleaseDate, err = f.Text("publicReleaseDate"); err != nil {
		return nil, err
	}
	rawRefs, err := f.Array("ontologySourceReferences")
	if err != nil {
		return nil, err
	}
	if inv.OntologySourceReferences, err = codec.DecodeEach("ontologySourceReferences", rawRefs, DecodeOntologySourceReference); err != nil {
		return nil, err
	}
	if inv.Publications, err = decodePublicationArray(f); err != nil {
		return nil, err
	}
	if inv.Contacts, err = decodePersonArray(f, "people"); err != nil {
		return nil, err
	}
	rawStudies, err := f.Array("studies")
	if err != nil {
		return nil, err
	}
	if inv.Studies, err = codec.DecodeEach("studies", rawStudies, c.DecodeStudy); err != nil {
		return nil, err
	}
	if inv.Comments, err = decodeCommentArray(f, "comments"); err != nil {
		return nil, err
	}
	if err := f.Finish(); err != nil {
		return nil, err
	}
	return inv, nil
}

// MarshalInvestigation writes an investigation as compact JSON bytes.
// The encoder fixes the key order, so equal documents marshal to equal
// bytes.
func (c *Codec) MarshalInvestigation(inv *isa.ArcInvestigation) ([]byte, error) {
	return jtree.Marshal(c.EncodeInvestigation(inv))
}

// UnmarshalInvestigation parses JSON bytes into an investigation.
func (c *Codec) UnmarshalInvestigation(data []byte) (*isa.ArcInvestigation, error) {
	v, err := jtree.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return c.DecodeInvestigation(v)
}

// MarshalStudy writes a standalone study as compact JSON bytes.
func (c *Codec) MarshalStudy(s *isa.ArcStudy) ([]byte, error) {
	return jtree.Marshal(c.EncodeStudy(s))
}

// UnmarshalStudy parses JSON bytes into a standalone study.
func (c *Codec) UnmarshalStudy(data []byte) (*isa.ArcStudy, error) {
	v, err := jtree.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return c.DecodeStudy(v)
}

// MarshalAssay writes a standalone assay as compact JSON bytes.
func (c *Codec) MarshalAssay(a *isa.ArcAssay) ([]byte, error) {
	return jtree.Marshal(c.EncodeAssay(a))
}

// UnmarshalAssay parses JSON bytes into a standalone assay.
func (c *Codec) UnmarshalAssay(data []byte) (*isa.ArcAssay, error) {
	v, err := jtree.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return c.DecodeAssay(v)
}

// identifier reads the identifier field, minting a placeholder when it
// is absent and validating it when present.
func (c *Codec) identifier(f *codec.Fields) (string, error) {
	id, err := f.Text("identifier")
	if err != nil {
		return "", err
	}
	if id == "" {
		return c.IDs(), nil
	}
	if err := isa.CheckValidIdentifier(id); err != nil {
		return "", fmt.Errorf("identifier: %w", err)
	}
	return id, nil
}

func encodeTables(tables []*isa.ArcTable) []jtree.Value {
	if len(tables) == 0 {
		return nil
	}
	values := make([]jtree.Value, 0, len(tables))
	for _, t := range tables {
		values = append(values, EncodeTable(t))
	}
	return values
}

func encodePeople(people []isa.Person) []jtree.Value {
	if len(people) == 0 {
		return nil
	}
	values := make([]jtree.Value, 0, len(people))
	for _, p := range people {
		values = append(values, EncodePerson(p))
	}
	return values
}

func encodePublications(pubs []isa.Publication) []jtree.Value {
	if len(pubs) == 0 {
		return nil
	}
	values := make([]jtree.Value, 0, len(pubs))
	for _, p := range pubs {
		values = append(values, EncodePublication(p))
	}
	return values
}

func encodeFactors(factors []isa.Factor) []jtree.Value {
	if len(factors) == 0 {
		return nil
	}
	values := make([]jtree.Value, 0, len(factors))
	for _, fa := range factors {
		values = append(values, EncodeFactor(fa))
	}
	return values
}

func decodeAnnotationField(f *codec.Fields, key string) (isa.OntologyAnnotation, error) {
	raw, ok := f.Get(key)
	if !ok {
		return isa.OntologyAnnotation{}, nil
	}
	oa, err := codec.DecodeAnnotation(raw, opts)
	if err != nil {
		return isa.OntologyAnnotation{}, fmt.Errorf("%s: %w", key, err)
	}
	return oa, nil
}

func decodeTableArray(f *codec.Fields) ([]*isa.ArcTable, error) {
	raw, err := f.Array("tables")
	if err != nil {
		return nil, err
	}
	return codec.DecodeEach("tables", raw, DecodeTable)
}

func decodePersonArray(f *codec.Fields, key string) ([]isa.Person, error) {
	raw, err := f.Array(key)
	if err != nil {
		return nil, err
	}
	return codec.DecodeEach(key, raw, DecodePerson)
}

func decodePublicationArray(f *codec.Fields) ([]isa.Publication, error) {
	raw, err := f.Array("publications")
	if err != nil {
		return nil, err
	}
	return codec.DecodeEach("publications", raw, DecodePublication)
}

func decodeFactorArray(f *codec.Fields) ([]isa.Factor, error) {
	raw, err := f.Array("factors")
	if err != nil {
		return nil, err
	}
	return codec.DecodeEach("factors", raw, DecodeFactor)
}
