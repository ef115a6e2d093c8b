package isa

import "github.com/kappe-c/ARCtrl/internal/grammar"

// Str returns a pointer to s. The optional string fields on
// OntologyAnnotation distinguish absent (nil) from empty; literals need
// this helper to take an address.
func Str(s string) *string { return &s }

// OntologyAnnotation references an ontology term: a display name, the
// source ontology it came from and the term accession within it. All
// three are independently optional.
type OntologyAnnotation struct {
	Name          *string
	TermSourceRef *string
	TermAccession *string
	Comments      []Comment
}

// NewOntologyAnnotation builds an annotation from plain strings, setting
// only the non-empty parts. It is the constructor used by the tabular
// layer, where a blank column cell means absent.
func NewOntologyAnnotation(name, termSourceRef, termAccession string) OntologyAnnotation {
	var oa OntologyAnnotation
	if name != "" {
		oa.Name = Str(name)
	}
	if termSourceRef != "" {
		oa.TermSourceRef = Str(termSourceRef)
	}
	if termAccession != "" {
		oa.TermAccession = Str(termAccession)
	}
	return oa
}

// NameText returns the display name, or "" when absent.
func (oa OntologyAnnotation) NameText() string {
	if oa.Name == nil {
		return ""
	}
	return *oa.Name
}

// TermSourceRefText returns the source ontology name, or "" when absent.
func (oa OntologyAnnotation) TermSourceRefText() string {
	if oa.TermSourceRef == nil {
		return ""
	}
	return *oa.TermSourceRef
}

// TermAccessionText returns the raw accession, or "" when absent.
func (oa OntologyAnnotation) TermAccessionText() string {
	if oa.TermAccession == nil {
		return ""
	}
	return *oa.TermAccession
}

// TermAccessionShort renders the accession in CURIE form ("MS:1003022").
// It returns "" when the accession is absent or does not parse.
func (oa OntologyAnnotation) TermAccessionShort() string {
	ta, ok := grammar.ParseTermAnnotation(oa.TermAccessionText())
	if !ok {
		return ""
	}
	return ta.ShortString()
}

// TermAccessionPURL renders the accession as an OBO PURL
// ("http://purl.obolibrary.org/obo/MS_1003022"), or "" when the accession
// is absent or does not parse.
func (oa OntologyAnnotation) TermAccessionPURL() string {
	ta, ok := grammar.ParseTermAnnotation(oa.TermAccessionText())
	if !ok {
		return ""
	}
	return "http://purl.obolibrary.org/obo/" + ta.IDSpace + "_" + ta.LocalID
}

// IsEmpty reports whether every field is absent.
func (oa OntologyAnnotation) IsEmpty() bool {
	return oa.Name == nil && oa.TermSourceRef == nil && oa.TermAccession == nil && len(oa.Comments) == 0
}

// Equal reports structural equality: fields compare by value, with nil
// distinct from empty, and comment lists compare element-wise (nil and
// empty are the same).
func (oa OntologyAnnotation) Equal(other OntologyAnnotation) bool {
	return strPtrEqual(oa.Name, other.Name) &&
		strPtrEqual(oa.TermSourceRef, other.TermSourceRef) &&
		strPtrEqual(oa.TermAccession, other.TermAccession) &&
		commentsEqual(oa.Comments, other.Comments)
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func commentsEqual(a, b []Comment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
