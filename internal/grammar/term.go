package grammar

import (
	"fmt"
	"regexp"
	"strings"
)

// Term-annotation patterns, tried in order. The short CURIE form runs
// first: the URI forms capture from the tail of arbitrary text and would
// split a plain CURIE at the wrong separator. The encoded form covers
// ontology-lookup links that embed a percent-encoded PURL; only the MS, RO
// and PO ID spaces appear in such links in practice.
const (
	TermAnnotationShortPattern      = `^(?P<idspace>\w+?):(?P<localid>\w+)$`
	TermAnnotationOBOPattern        = `http://purl\.obolibrary\.org/obo/(?P<idspace>\w+?)_(?P<localid>\w+)$`
	TermAnnotationURIPattern        = `.*\/(?P<idspace>\w+?)[:_](?P<localid>\w+)$`
	TermAnnotationEncodedURIPattern = `.*%2[fF](?P<idspace>MS|RO|PO)[:_](?P<localid>\w+)$`
)

var termAnnotationRegexes = []*regexp.Regexp{
	regexp.MustCompile(TermAnnotationShortPattern),
	regexp.MustCompile(TermAnnotationOBOPattern),
	regexp.MustCompile(TermAnnotationURIPattern),
	regexp.MustCompile(TermAnnotationEncodedURIPattern),
}

// TermAnnotation is a parsed ontology term accession: the ID space (the
// ontology prefix, "MS" in "MS:1003022") and the local identifier within
// that space.
type TermAnnotation struct {
	IDSpace string
	LocalID string
}

// ShortString renders the annotation in CURIE form, "MS:1003022".
func (t TermAnnotation) ShortString() string {
	return t.IDSpace + ":" + t.LocalID
}

// ParseTermAnnotation extracts the ID space and local ID from a term
// accession in short, OBO PURL, generic URI or percent-encoded URI form.
// The second return is false when none of the forms match.
func ParseTermAnnotation(s string) (TermAnnotation, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return TermAnnotation{}, false
	}
	for _, r := range termAnnotationRegexes {
		if m := r.FindStringSubmatch(trimmed); m != nil {
			return TermAnnotation{
				IDSpace: m[r.SubexpIndex("idspace")],
				LocalID: m[r.SubexpIndex("localid")],
			}, true
		}
	}
	return TermAnnotation{}, false
}

// ShortString parses s as a term annotation and re-renders it in CURIE
// form.
func ShortString(s string) (string, bool) {
	ta, ok := ParseTermAnnotation(s)
	if !ok {
		return "", false
	}
	return ta.ShortString(), true
}

// MustShortString is ShortString for inputs the caller has already
// validated. It panics when the input does not parse.
func MustShortString(s string) string {
	short, ok := ShortString(s)
	if !ok {
		panic(fmt.Sprintf("grammar: term annotation %q does not parse", s))
	}
	return short
}
