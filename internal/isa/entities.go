package isa

import "strings"

// Comment is a named free-form remark attached to most entities.
type Comment struct {
	Name  string
	Value string
}

// Person is an investigation or study contact, or an assay performer.
type Person struct {
	FirstName   string
	LastName    string
	MidInitials string
	Email       string
	Phone       string
	Fax         string
	Address     string
	Affiliation string
	Roles       []OntologyAnnotation
	Comments    []Comment
}

// FullName joins the name parts that are present.
func (p Person) FullName() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.FirstName, p.MidInitials, p.LastName} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Publication references a published paper.
type Publication struct {
	PubMedID   string
	DOI        string
	AuthorList string
	Title      string
	Status     OntologyAnnotation
	Comments   []Comment
}

// OntologySourceReference declares an ontology used by the investigation.
type OntologySourceReference struct {
	Name        string
	File        string
	Version     string
	Description string
	Comments    []Comment
}

// Factor is a study factor: a name plus the term describing its type.
type Factor struct {
	Name       string
	FactorType OntologyAnnotation
	Comments   []Comment
}

// CharacteristicValue and FactorValue attach a categorized value, with an
// optional unit, to a sample. Value is nil when absent.
type CharacteristicValue struct {
	Category OntologyAnnotation
	Value    Value
	Unit     OntologyAnnotation
}

type FactorValue struct {
	Category OntologyAnnotation
	Value    Value
	Unit     OntologyAnnotation
}

// Sample is a named sample with its characteristic and factor values.
type Sample struct {
	Name            string
	Characteristics []CharacteristicValue
	FactorValues    []FactorValue
}
