package sparse

import (
	"strings"

	"github.com/kappe-c/ARCtrl/internal/isa"
)

const (
	lastNameLabel    = "Last Name"
	firstNameLabel   = "First Name"
	midInitialsLabel = "Mid Initials"
	emailLabel       = "Email"
	phoneLabel       = "Phone"
	faxLabel         = "Fax"
	addressLabel     = "Address"
	affiliationLabel = "Affiliation"
	rolesLabel       = "Roles"
	rolesTANLabel    = "Roles Term Accession Number"
	rolesTSRLabel    = "Roles Term Source REF"
)

// PersonLabels is the fixed row-label set of a person section, in file
// order.
var PersonLabels = []string{
	lastNameLabel, firstNameLabel, midInitialsLabel, emailLabel, phoneLabel,
	faxLabel, addressLabel, affiliationLabel, rolesLabel, rolesTANLabel,
	rolesTSRLabel,
}

// PersonsFromTable reads one person per entity slot. A table with no
// entity slots but registered comment keys yields exactly one person
// carrying only those comments.
func PersonsFromTable(t *SparseTable) []isa.Person {
	if t.ColumnCount == 0 && len(t.CommentKeys) > 0 {
		return []isa.Person{{Comments: commentsAt(t, 1)}}
	}
	var out []isa.Person
	for i := 0; i < t.ColumnCount; i++ {
		slot := i + 1
		out = append(out, isa.Person{
			FirstName:   t.GetOrDefault("", firstNameLabel, slot),
			LastName:    t.GetOrDefault("", lastNameLabel, slot),
			MidInitials: t.GetOrDefault("", midInitialsLabel, slot),
			Email:       t.GetOrDefault("", emailLabel, slot),
			Phone:       t.GetOrDefault("", phoneLabel, slot),
			Fax:         t.GetOrDefault("", faxLabel, slot),
			Address:     t.GetOrDefault("", addressLabel, slot),
			Affiliation: t.GetOrDefault("", affiliationLabel, slot),
			Roles: splitAnnotations(
				t.GetOrDefault("", rolesLabel, slot),
				t.GetOrDefault("", rolesTSRLabel, slot),
				t.GetOrDefault("", rolesTANLabel, slot),
			),
			Comments: commentsAt(t, slot),
		})
	}
	return out
}

// PersonsToTable lays persons out one per entity slot, slot 0 staying
// reserved for the labels.
func PersonsToTable(ps []isa.Person) *SparseTable {
	t := NewSparseTable(PersonLabels...)
	t.ColumnCount = len(ps)
	for i, p := range ps {
		slot := i + 1
		t.Set(lastNameLabel, slot, p.LastName)
		t.Set(firstNameLabel, slot, p.FirstName)
		t.Set(midInitialsLabel, slot, p.MidInitials)
		t.Set(emailLabel, slot, p.Email)
		t.Set(phoneLabel, slot, p.Phone)
		t.Set(faxLabel, slot, p.Fax)
		t.Set(addressLabel, slot, p.Address)
		t.Set(affiliationLabel, slot, p.Affiliation)
		names, refs, accessions := joinAnnotations(p.Roles)
		t.Set(rolesLabel, slot, names)
		t.Set(rolesTANLabel, slot, accessions)
		t.Set(rolesTSRLabel, slot, refs)
		for _, c := range p.Comments {
			t.SetComment(c.Name, slot, c.Value)
		}
	}
	return t
}

const (
	pubMedIDLabel   = "PubMed ID"
	doiLabel        = "DOI"
	authorListLabel = "Author List"
	pubTitleLabel   = "Title"
	statusLabel     = "Status"
	statusTANLabel  = "Status Term Accession Number"
	statusTSRLabel  = "Status Term Source REF"
)

// PublicationLabels is the fixed row-label set of a publication section,
// in file order.
var PublicationLabels = []string{
	pubMedIDLabel, doiLabel, authorListLabel, pubTitleLabel, statusLabel,
	statusTANLabel, statusTSRLabel,
}

// PublicationsFromTable reads one publication per entity slot, with the
// same comments-only rule as PersonsFromTable.
func PublicationsFromTable(t *SparseTable) []isa.Publication {
	if t.ColumnCount == 0 && len(t.CommentKeys) > 0 {
		return []isa.Publication{{Comments: commentsAt(t, 1)}}
	}
	var out []isa.Publication
	for i := 0; i < t.ColumnCount; i++ {
		slot := i + 1
		out = append(out, isa.Publication{
			PubMedID:   t.GetOrDefault("", pubMedIDLabel, slot),
			DOI:        t.GetOrDefault("", doiLabel, slot),
			AuthorList: t.GetOrDefault("", authorListLabel, slot),
			Title:      t.GetOrDefault("", pubTitleLabel, slot),
			Status: isa.NewOntologyAnnotation(
				t.GetOrDefault("", statusLabel, slot),
				t.GetOrDefault("", statusTSRLabel, slot),
				t.GetOrDefault("", statusTANLabel, slot),
			),
			Comments: commentsAt(t, slot),
		})
	}
	return out
}

// PublicationsToTable lays publications out one per entity slot.
func PublicationsToTable(pubs []isa.Publication) *SparseTable {
	t := NewSparseTable(PublicationLabels...)
	t.ColumnCount = len(pubs)
	for i, p := range pubs {
		slot := i + 1
		t.Set(pubMedIDLabel, slot, p.PubMedID)
		t.Set(doiLabel, slot, p.DOI)
		t.Set(authorListLabel, slot, p.AuthorList)
		t.Set(pubTitleLabel, slot, p.Title)
		t.Set(statusLabel, slot, p.Status.NameText())
		t.Set(statusTANLabel, slot, p.Status.TermAccessionText())
		t.Set(statusTSRLabel, slot, p.Status.TermSourceRefText())
		for _, c := range p.Comments {
			t.SetComment(c.Name, slot, c.Value)
		}
	}
	return t
}

const (
	termSourceNameLabel        = "Term Source Name"
	termSourceFileLabel        = "Term Source File"
	termSourceVersionLabel     = "Term Source Version"
	termSourceDescriptionLabel = "Term Source Description"
)

// OntologySourceReferenceLabels is the fixed row-label set of the
// ontology source reference section, in file order.
var OntologySourceReferenceLabels = []string{
	termSourceNameLabel, termSourceFileLabel, termSourceVersionLabel,
	termSourceDescriptionLabel,
}

// OntologySourceReferencesFromTable reads one reference per entity slot,
// with the same comments-only rule as PersonsFromTable.
func OntologySourceReferencesFromTable(t *SparseTable) []isa.OntologySourceReference {
	if t.ColumnCount == 0 && len(t.CommentKeys) > 0 {
		return []isa.OntologySourceReference{{Comments: commentsAt(t, 1)}}
	}
	var out []isa.OntologySourceReference
	for i := 0; i < t.ColumnCount; i++ {
		slot := i + 1
		out = append(out, isa.OntologySourceReference{
			Name:        t.GetOrDefault("", termSourceNameLabel, slot),
			File:        t.GetOrDefault("", termSourceFileLabel, slot),
			Version:     t.GetOrDefault("", termSourceVersionLabel, slot),
			Description: t.GetOrDefault("", termSourceDescriptionLabel, slot),
			Comments:    commentsAt(t, slot),
		})
	}
	return out
}

// OntologySourceReferencesToTable lays references out one per entity
// slot.
func OntologySourceReferencesToTable(refs []isa.OntologySourceReference) *SparseTable {
	t := NewSparseTable(OntologySourceReferenceLabels...)
	t.ColumnCount = len(refs)
	for i, r := range refs {
		slot := i + 1
		t.Set(termSourceNameLabel, slot, r.Name)
		t.Set(termSourceFileLabel, slot, r.File)
		t.Set(termSourceVersionLabel, slot, r.Version)
		t.Set(termSourceDescriptionLabel, slot, r.Description)
		for _, c := range r.Comments {
			t.SetComment(c.Name, slot, c.Value)
		}
	}
	return t
}

const (
	assayIdentifierLabel    = "Identifier"
	measurementTypeLabel    = "Measurement Type"
	measurementTypeTANLabel = "Measurement Type Term Accession Number"
	measurementTypeTSRLabel = "Measurement Type Term Source REF"
	technologyTypeLabel     = "Technology Type"
	technologyTypeTANLabel  = "Technology Type Term Accession Number"
	technologyTypeTSRLabel  = "Technology Type Term Source REF"
	technologyPlatformLabel = "Technology Platform"
)

// AssayLabels is the fixed row-label set of an assay metadata section,
// in file order.
var AssayLabels = []string{
	assayIdentifierLabel, measurementTypeLabel, measurementTypeTANLabel,
	measurementTypeTSRLabel, technologyTypeLabel, technologyTypeTANLabel,
	technologyTypeTSRLabel, technologyPlatformLabel,
}

// AssaysFromTable reads assay metadata one assay per entity slot. Slots
// without an Identifier cell get a placeholder from ids, as does the
// synthetic comments-only assay. The technology platform reads back as a
// name-only term; the sheet does not carry its accession.
func AssaysFromTable(t *SparseTable, ids isa.IdentifierSource) []*isa.ArcAssay {
	if t.ColumnCount == 0 && len(t.CommentKeys) > 0 {
		a := isa.NewArcAssay(ids())
		a.Comments = commentsAt(t, 1)
		return []*isa.ArcAssay{a}
	}
	var out []*isa.ArcAssay
	for i := 0; i < t.ColumnCount; i++ {
		slot := i + 1
		identifier := t.GetOrDefault("", assayIdentifierLabel, slot)
		if identifier == "" {
			identifier = ids()
		}
		a := isa.NewArcAssay(identifier)
		a.MeasurementType = isa.NewOntologyAnnotation(
			t.GetOrDefault("", measurementTypeLabel, slot),
			t.GetOrDefault("", measurementTypeTSRLabel, slot),
			t.GetOrDefault("", measurementTypeTANLabel, slot),
		)
		a.TechnologyType = isa.NewOntologyAnnotation(
			t.GetOrDefault("", technologyTypeLabel, slot),
			t.GetOrDefault("", technologyTypeTSRLabel, slot),
			t.GetOrDefault("", technologyTypeTANLabel, slot),
		)
		a.TechnologyPlatform = isa.NewOntologyAnnotation(
			t.GetOrDefault("", technologyPlatformLabel, slot), "", "")
		a.Comments = commentsAt(t, slot)
		out = append(out, a)
	}
	return out
}

// AssaysToTable lays assay metadata out one assay per entity slot.
// Placeholder identifiers write as empty cells so they never reach a
// file.
func AssaysToTable(assays []*isa.ArcAssay) *SparseTable {
	t := NewSparseTable(AssayLabels...)
	t.ColumnCount = len(assays)
	for i, a := range assays {
		slot := i + 1
		identifier := a.Identifier
		if isa.IsMissingIdentifier(identifier) {
			identifier = ""
		}
		t.Set(assayIdentifierLabel, slot, identifier)
		t.Set(measurementTypeLabel, slot, a.MeasurementType.NameText())
		t.Set(measurementTypeTANLabel, slot, a.MeasurementType.TermAccessionText())
		t.Set(measurementTypeTSRLabel, slot, a.MeasurementType.TermSourceRefText())
		t.Set(technologyTypeLabel, slot, a.TechnologyType.NameText())
		t.Set(technologyTypeTANLabel, slot, a.TechnologyType.TermAccessionText())
		t.Set(technologyTypeTSRLabel, slot, a.TechnologyType.TermSourceRefText())
		t.Set(technologyPlatformLabel, slot, a.TechnologyPlatform.NameText())
		for _, c := range a.Comments {
			t.SetComment(c.Name, slot, c.Value)
		}
	}
	return t
}

// joinAnnotations renders a term list as three ";"-separated columns:
// names, source refs, accessions.
func joinAnnotations(oas []isa.OntologyAnnotation) (names, refs, accessions string) {
	if len(oas) == 0 {
		return "", "", ""
	}
	nn := make([]string, len(oas))
	rr := make([]string, len(oas))
	aa := make([]string, len(oas))
	for i, oa := range oas {
		nn[i] = oa.NameText()
		rr[i] = oa.TermSourceRefText()
		aa[i] = oa.TermAccessionText()
	}
	return strings.Join(nn, ";"), strings.Join(rr, ";"), strings.Join(aa, ";")
}

// splitAnnotations inverts joinAnnotations. The three columns zip to the
// longest list, missing parts reading as absent; an all-empty triple
// contributes no term.
func splitAnnotations(names, refs, accessions string) []isa.OntologyAnnotation {
	if names == "" && refs == "" && accessions == "" {
		return nil
	}
	nn := strings.Split(names, ";")
	rr := strings.Split(refs, ";")
	aa := strings.Split(accessions, ";")
	var out []isa.OntologyAnnotation
	for i := 0; i < max(len(nn), len(rr), len(aa)); i++ {
		oa := isa.NewOntologyAnnotation(part(nn, i), part(rr, i), part(aa, i))
		if oa.IsEmpty() {
			continue
		}
		out = append(out, oa)
	}
	return out
}

func part(parts []string, i int) string {
	if i >= len(parts) {
		return ""
	}
	return parts[i]
}

// commentsAt collects every registered comment key for one entity slot,
// absent coordinates reading as empty values. The key set is the union
// across all entities, so slots share one comment shape.
func commentsAt(t *SparseTable, index int) []isa.Comment {
	var out []isa.Comment
	for _, k := range t.CommentKeys {
		out = append(out, isa.Comment{Name: k, Value: t.GetOrDefault("", k, index)})
	}
	return out
}
