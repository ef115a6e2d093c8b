package isa

// ArcAssay is one assay: its measurement and technology descriptors plus
// the annotation tables recording the process.
type ArcAssay struct {
	Identifier         string
	MeasurementType    OntologyAnnotation
	TechnologyType     OntologyAnnotation
	TechnologyPlatform OntologyAnnotation
	Tables             []*ArcTable
	Performers         []Person
	Comments           []Comment
}

// NewArcAssay returns an assay with the given identifier and no content.
func NewArcAssay(identifier string) *ArcAssay {
	return &ArcAssay{Identifier: identifier}
}

// InitTable appends a fresh table and returns it. An empty name picks the
// first free "New Table <n>".
func (a *ArcAssay) InitTable(name string) *ArcTable {
	if name == "" {
		name = autoTableName(a.Tables)
	}
	t := NewArcTable(name)
	a.Tables = append(a.Tables, t)
	return t
}

// Table returns the named table, if present.
func (a *ArcAssay) Table(name string) (*ArcTable, bool) {
	for _, t := range a.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// ArcStudy is one study: descriptive metadata, its own annotation tables
// and the assays run under it.
type ArcStudy struct {
	Identifier             string
	Title                  string
	Description            string
	SubmissionDate         string
	PublicReleaseDate      string
	Publications           []Publication
	Contacts               []Person
	StudyDesignDescriptors []OntologyAnnotation
	Factors                []Factor
	Tables                 []*ArcTable
	Assays                 []*ArcAssay
	Comments               []Comment
}

// NewArcStudy returns a study with the given identifier and no content.
func NewArcStudy(identifier string) *ArcStudy {
	return &ArcStudy{Identifier: identifier}
}

// InitTable appends a fresh table and returns it. An empty name picks the
// first free "New Table <n>".
func (s *ArcStudy) InitTable(name string) *ArcTable {
	if name == "" {
		name = autoTableName(s.Tables)
	}
	t := NewArcTable(name)
	s.Tables = append(s.Tables, t)
	return t
}

// Table returns the named table, if present.
func (s *ArcStudy) Table(name string) (*ArcTable, bool) {
	for _, t := range s.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// InitAssay appends a fresh assay and returns it.
func (s *ArcStudy) InitAssay(identifier string) *ArcAssay {
	a := NewArcAssay(identifier)
	s.Assays = append(s.Assays, a)
	return a
}

// ArcInvestigation is the root aggregate: investigation metadata, the
// ontologies it draws from and its studies.
type ArcInvestigation struct {
	Identifier               string
	Title                    string
	Description              string
	SubmissionDate           string
	PublicReleaseDate        string
	OntologySourceReferences []OntologySourceReference
	Publications             []Publication
	Contacts                 []Person
	Studies                  []*ArcStudy
	Comments                 []Comment
}

// NewArcInvestigation returns an investigation with the given identifier
// and no content.
func NewArcInvestigation(identifier string) *ArcInvestigation {
	return &ArcInvestigation{Identifier: identifier}
}

// InitStudy appends a fresh study and returns it.
func (inv *ArcInvestigation) InitStudy(identifier string) *ArcStudy {
	s := NewArcStudy(identifier)
	inv.Studies = append(inv.Studies, s)
	return s
}

// Study returns the study with the given identifier, if present.
func (inv *ArcInvestigation) Study(identifier string) (*ArcStudy, bool) {
	for _, s := range inv.Studies {
		if s.Identifier == identifier {
			return s, true
		}
	}
	return nil, false
}

// FindTable searches every study and assay for a table with the given
// name.
func (inv *ArcInvestigation) FindTable(name string) (*ArcTable, bool) {
	for _, s := range inv.Studies {
		if t, ok := s.Table(name); ok {
			return t, true
		}
		for _, a := range s.Assays {
			if t, ok := a.Table(name); ok {
				return t, true
			}
		}
	}
	return nil, false
}
