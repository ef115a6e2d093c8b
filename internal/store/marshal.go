package store

import (
	"fmt"

	"github.com/kappe-c/ARCtrl/internal/codec"
	"github.com/kappe-c/ARCtrl/internal/isa"
	"github.com/kappe-c/ARCtrl/internal/isajson"
	"github.com/kappe-c/ARCtrl/internal/jtree"
)

// Stored JSON follows the compact ISA-JSON field grammar. Read-back
// decodes strictly, so a hand-edited row fails loudly instead of
// dropping fields.
var opts = codec.Options{Dialect: codec.Strict}

// marshalCell converts a cell to canonical JSON TEXT for storage.
func marshalCell(c isa.CompositeCell) (string, error) {
	data, err := jtree.MarshalCanonical(codec.EncodeCell(c))
	if err != nil {
		return "", fmt.Errorf("marshal cell: %w", err)
	}
	return string(data), nil
}

// unmarshalCell parses stored cell TEXT back to a composite cell.
func unmarshalCell(data string) (isa.CompositeCell, error) {
	v, err := jtree.Unmarshal([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal cell: %w", err)
	}
	c, err := codec.DecodeCell(v, opts)
	if err != nil {
		return nil, fmt.Errorf("unmarshal cell: %w", err)
	}
	return c, nil
}

// marshalHeaders converts a header list to one canonical JSON array.
// An empty list stores as "[]".
func marshalHeaders(headers []isa.CompositeHeader) (string, error) {
	values := make([]jtree.Value, 0, len(headers))
	for _, h := range headers {
		values = append(values, codec.EncodeHeader(h))
	}
	data, err := jtree.MarshalCanonical(jtree.Array(values))
	if err != nil {
		return "", fmt.Errorf("marshal headers: %w", err)
	}
	return string(data), nil
}

// unmarshalHeaders parses stored header TEXT back to a header list,
// nil when no headers were stored.
func unmarshalHeaders(data string) ([]isa.CompositeHeader, error) {
	v, err := jtree.Unmarshal([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal headers: %w", err)
	}
	arr, ok := jtree.Arr(v)
	if !ok {
		return nil, fmt.Errorf("unmarshal headers: expected array, got %s", codec.KindName(v))
	}
	headers, err := codec.DecodeEach("header", arr, func(v jtree.Value) (isa.CompositeHeader, error) {
		return codec.DecodeHeader(v, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("unmarshal headers: %w", err)
	}
	return headers, nil
}

// marshalAnnotation converts an ontology annotation to canonical JSON
// TEXT. The empty annotation stores as "{}".
func marshalAnnotation(oa isa.OntologyAnnotation) (string, error) {
	data, err := jtree.MarshalCanonical(codec.EncodeAnnotation(oa))
	if err != nil {
		return "", fmt.Errorf("marshal annotation: %w", err)
	}
	return string(data), nil
}

// unmarshalAnnotation parses stored annotation TEXT.
func unmarshalAnnotation(data string) (isa.OntologyAnnotation, error) {
	if data == "" || data == "{}" {
		return isa.OntologyAnnotation{}, nil
	}
	v, err := jtree.Unmarshal([]byte(data))
	if err != nil {
		return isa.OntologyAnnotation{}, fmt.Errorf("unmarshal annotation: %w", err)
	}
	oa, err := codec.DecodeAnnotation(v, opts)
	if err != nil {
		return isa.OntologyAnnotation{}, fmt.Errorf("unmarshal annotation: %w", err)
	}
	return oa, nil
}

// marshalInvestigationMeta renders the nested entity lists of an
// investigation as one canonical JSON object. Empty lists elide their
// key, so an investigation without them stores as "{}".
func marshalInvestigationMeta(inv *isa.ArcInvestigation) (string, error) {
	o := jtree.NewObject()
	codec.TryIncludeArray(o, "ontologySourceReferences", encodeAll(inv.OntologySourceReferences, isajson.EncodeOntologySourceReference))
	codec.TryIncludeArray(o, "publications", encodeAll(inv.Publications, isajson.EncodePublication))
	codec.TryIncludeArray(o, "people", encodeAll(inv.Contacts, isajson.EncodePerson))
	codec.TryIncludeArray(o, "comments", codec.EncodeComments(inv.Comments))
	data, err := jtree.MarshalCanonical(o)
	if err != nil {
		return "", fmt.Errorf("marshal investigation metadata: %w", err)
	}
	return string(data), nil
}

// unmarshalInvestigationMeta restores the nested entity lists onto inv.
func unmarshalInvestigationMeta(data string, inv *isa.ArcInvestigation) error {
	f, err := metaFields("investigation metadata", data)
	if err != nil || f == nil {
		return err
	}
	raw, err := f.Array("ontologySourceReferences")
	if err != nil {
		return err
	}
	if inv.OntologySourceReferences, err = codec.DecodeEach("ontologySourceReferences", raw, isajson.DecodeOntologySourceReference); err != nil {
		return err
	}
	if raw, err = f.Array("publications"); err != nil {
		return err
	}
	if inv.Publications, err = codec.DecodeEach("publications", raw, isajson.DecodePublication); err != nil {
		return err
	}
	if raw, err = f.Array("people"); err != nil {
		return err
	}
	if inv.Contacts, err = codec.DecodeEach("people", raw, isajson.DecodePerson); err != nil {
		return err
	}
	if raw, err = f.Array("comments"); err != nil {
		return err
	}
	if inv.Comments, err = codec.DecodeComments(raw, opts); err != nil {
		return err
	}
	return f.Finish()
}

// marshalStudyMeta renders the nested entity lists of a study as one
// canonical JSON object.
func marshalStudyMeta(st *isa.ArcStudy) (string, error) {
	o := jtree.NewObject()
	codec.TryIncludeArray(o, "publications", encodeAll(st.Publications, isajson.EncodePublication))
	codec.TryIncludeArray(o, "people", encodeAll(st.Contacts, isajson.EncodePerson))
	codec.TryIncludeArray(o, "studyDesignDescriptors", encodeAll(st.StudyDesignDescriptors, codec.EncodeAnnotation))
	codec.TryIncludeArray(o, "factors", encodeAll(st.Factors, isajson.EncodeFactor))
	codec.TryIncludeArray(o, "comments", codec.EncodeComments(st.Comments))
	data, err := jtree.MarshalCanonical(o)
	if err != nil {
		return "", fmt.Errorf("marshal study metadata: %w", err)
	}
	return string(data), nil
}

// unmarshalStudyMeta restores the nested entity lists onto st.
func unmarshalStudyMeta(data string, st *isa.ArcStudy) error {
	f, err := metaFields("study metadata", data)
	if err != nil || f == nil {
		return err
	}
	raw, err := f.Array("publications")
	if err != nil {
		return err
	}
	if st.Publications, err = codec.DecodeEach("publications", raw, isajson.DecodePublication); err != nil {
		return err
	}
	if raw, err = f.Array("people"); err != nil {
		return err
	}
	if st.Contacts, err = codec.DecodeEach("people", raw, isajson.DecodePerson); err != nil {
		return err
	}
	if raw, err = f.Array("studyDesignDescriptors"); err != nil {
		return err
	}
	if st.StudyDesignDescriptors, err = codec.DecodeEach("studyDesignDescriptors", raw, func(v jtree.Value) (isa.OntologyAnnotation, error) {
		return codec.DecodeAnnotation(v, opts)
	}); err != nil {
		return err
	}
	if raw, err = f.Array("factors"); err != nil {
		return err
	}
	if st.Factors, err = codec.DecodeEach("factors", raw, isajson.DecodeFactor); err != nil {
		return err
	}
	if raw, err = f.Array("comments"); err != nil {
		return err
	}
	if st.Comments, err = codec.DecodeComments(raw, opts); err != nil {
		return err
	}
	return f.Finish()
}

// marshalAssayMeta renders the nested entity lists of an assay as one
// canonical JSON object.
func marshalAssayMeta(a *isa.ArcAssay) (string, error) {
	o := jtree.NewObject()
	codec.TryIncludeArray(o, "performers", encodeAll(a.Performers, isajson.EncodePerson))
	codec.TryIncludeArray(o, "comments", codec.EncodeComments(a.Comments))
	data, err := jtree.MarshalCanonical(o)
	if err != nil {
		return "", fmt.Errorf("marshal assay metadata: %w", err)
	}
	return string(data), nil
}

// unmarshalAssayMeta restores the nested entity lists onto a.
func unmarshalAssayMeta(data string, a *isa.ArcAssay) error {
	f, err := metaFields("assay metadata", data)
	if err != nil || f == nil {
		return err
	}
	raw, err := f.Array("performers")
	if err != nil {
		return err
	}
	if a.Performers, err = codec.DecodeEach("performers", raw, isajson.DecodePerson); err != nil {
		return err
	}
	if raw, err = f.Array("comments"); err != nil {
		return err
	}
	if a.Comments, err = codec.DecodeComments(raw, opts); err != nil {
		return err
	}
	return f.Finish()
}

// metaFields starts a strict decode of a stored metadata object. The
// empty object yields (nil, nil) so callers skip the field reads.
func metaFields(entity, data string) (*codec.Fields, error) {
	if data == "" || data == "{}" {
		return nil, nil
	}
	v, err := jtree.Unmarshal([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", entity, err)
	}
	return codec.NewFields(entity, v, opts)
}

// encodeAll renders each item with enc, nil for an empty list.
func encodeAll[T any](items []T, enc func(T) *jtree.Object) []jtree.Value {
	if len(items) == 0 {
		return nil
	}
	values := make([]jtree.Value, 0, len(items))
	for _, item := range items {
		values = append(values, enc(item))
	}
	return values
}
