package harness

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/kappe-c/ARCtrl/internal/codec"
	"github.com/kappe-c/ARCtrl/internal/isa"
	"github.com/kappe-c/ARCtrl/internal/jtree"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string      // Assertion type for categorization
	Expected string      // Human-readable expected outcome
	Actual   string      // Human-readable actual outcome
	Steps    []StepTrace // Executed flow for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)

	// Expected vs Actual (most important info)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	// Executed flow for context
	if len(e.Steps) > 0 {
		fmt.Fprintf(&buf, "\nFlow:\n")
		for i, step := range e.Steps {
			state := "changed"
			if step.Stable {
				state = "stable"
			}
			fmt.Fprintf(&buf, "  [%d] through %s (%s)\n", i+1, step.Through, state)
		}
	}

	return buf.String()
}

// assertStable checks that the final canonical form matches the
// baseline pinned before the first flow step.
func assertStable(result *Result, _ Assertion) error {
	if bytes.Equal(result.Final, result.Baseline) {
		return nil
	}
	return &AssertionError{
		Type:     AssertStable,
		Expected: fmt.Sprintf("canonical form unchanged: %s", result.Baseline),
		Actual:   fmt.Sprintf("canonical form drifted: %s", result.Final),
		Steps:    result.Steps,
	}
}

// assertIdentifier checks the investigation identifier.
func assertIdentifier(result *Result, assertion Assertion) error {
	if result.Investigation.Identifier == assertion.Value {
		return nil
	}
	return &AssertionError{
		Type:     AssertIdentifier,
		Expected: fmt.Sprintf("identifier %q", assertion.Value),
		Actual:   fmt.Sprintf("identifier %q", result.Investigation.Identifier),
		Steps:    result.Steps,
	}
}

// assertStudyCount checks the number of studies.
func assertStudyCount(result *Result, assertion Assertion) error {
	got := len(result.Investigation.Studies)
	if got == assertion.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertStudyCount,
		Expected: fmt.Sprintf("%d studies", assertion.Count),
		Actual:   fmt.Sprintf("%d studies", got),
		Steps:    result.Steps,
	}
}

// assertTableCount checks the number of tables held by a study or one
// of its assays.
func assertTableCount(result *Result, assertion Assertion) error {
	tables, err := locateTables(result, assertion)
	if err != nil {
		return err
	}
	if len(tables) == assertion.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertTableCount,
		Expected: fmt.Sprintf("%d tables under %s", assertion.Count, ownerLabel(assertion)),
		Actual:   fmt.Sprintf("%d tables", len(tables)),
		Steps:    result.Steps,
	}
}

// assertCell checks the cell at (col,row) of the named table.
// An empty want asserts the coordinate is unpopulated.
func assertCell(result *Result, assertion Assertion) error {
	t, err := locateTable(result, assertion)
	if err != nil {
		return err
	}

	cell, ok := t.Values[isa.CellKey{Column: assertion.Col, Row: assertion.Row}]
	if assertion.Want == "" {
		if !ok {
			return nil
		}
		got, merr := jtree.MarshalCanonical(codec.EncodeCell(cell))
		if merr != nil {
			got = []byte(fmt.Sprintf("<unencodable: %v>", merr))
		}
		return &AssertionError{
			Type:     AssertCell,
			Expected: fmt.Sprintf("no cell at (%d,%d) of table %q", assertion.Col, assertion.Row, assertion.Table),
			Actual:   fmt.Sprintf("cell %s", got),
			Steps:    result.Steps,
		}
	}

	if !ok {
		return &AssertionError{
			Type:     AssertCell,
			Expected: fmt.Sprintf("cell %s at (%d,%d) of table %q", assertion.Want, assertion.Col, assertion.Row, assertion.Table),
			Actual:   "cell absent",
			Steps:    result.Steps,
		}
	}

	got, merr := jtree.MarshalCanonical(codec.EncodeCell(cell))
	if merr != nil {
		return fmt.Errorf("encode cell (%d,%d) of table %q: %w", assertion.Col, assertion.Row, assertion.Table, merr)
	}
	if string(got) != assertion.Want {
		return &AssertionError{
			Type:     AssertCell,
			Expected: fmt.Sprintf("cell %s", assertion.Want),
			Actual:   fmt.Sprintf("cell %s", got),
			Steps:    result.Steps,
		}
	}
	return nil
}

// assertHeader checks the header at col of the named table.
func assertHeader(result *Result, assertion Assertion) error {
	t, err := locateTable(result, assertion)
	if err != nil {
		return err
	}

	if assertion.Col >= len(t.Headers) {
		return &AssertionError{
			Type:     AssertHeader,
			Expected: fmt.Sprintf("header at column %d of table %q", assertion.Col, assertion.Table),
			Actual:   fmt.Sprintf("table has %d columns", len(t.Headers)),
			Steps:    result.Steps,
		}
	}

	got, merr := jtree.MarshalCanonical(codec.EncodeHeader(t.Headers[assertion.Col]))
	if merr != nil {
		return fmt.Errorf("encode header %d of table %q: %w", assertion.Col, assertion.Table, merr)
	}
	if string(got) != assertion.Want {
		return &AssertionError{
			Type:     AssertHeader,
			Expected: fmt.Sprintf("header %s", assertion.Want),
			Actual:   fmt.Sprintf("header %s", got),
			Steps:    result.Steps,
		}
	}
	return nil
}

// locateTables resolves the table list the assertion addresses: the
// study's own tables, or those of one of its assays when assay is set.
func locateTables(result *Result, assertion Assertion) ([]*isa.ArcTable, error) {
	var study *isa.ArcStudy
	for _, st := range result.Investigation.Studies {
		if st.Identifier == assertion.Study {
			study = st
			break
		}
	}
	if study == nil {
		return nil, &AssertionError{
			Type:     assertion.Type,
			Expected: fmt.Sprintf("study %q present", assertion.Study),
			Actual:   "study not found",
			Steps:    result.Steps,
		}
	}

	if assertion.Assay == "" {
		return study.Tables, nil
	}
	for _, a := range study.Assays {
		if a.Identifier == assertion.Assay {
			return a.Tables, nil
		}
	}
	return nil, &AssertionError{
		Type:     assertion.Type,
		Expected: fmt.Sprintf("assay %q present in study %q", assertion.Assay, assertion.Study),
		Actual:   "assay not found",
		Steps:    result.Steps,
	}
}

// locateTable resolves the single named table within the owner's list.
func locateTable(result *Result, assertion Assertion) (*isa.ArcTable, error) {
	tables, err := locateTables(result, assertion)
	if err != nil {
		return nil, err
	}
	for _, t := range tables {
		if t.Name == assertion.Table {
			return t, nil
		}
	}
	return nil, &AssertionError{
		Type:     assertion.Type,
		Expected: fmt.Sprintf("table %q under %s", assertion.Table, ownerLabel(assertion)),
		Actual:   "table not found",
		Steps:    result.Steps,
	}
}

// ownerLabel renders the table owner for failure messages.
func ownerLabel(assertion Assertion) string {
	if assertion.Assay != "" {
		return fmt.Sprintf("assay %q", assertion.Assay)
	}
	return fmt.Sprintf("study %q", assertion.Study)
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertStable:
			err = assertStable(result, assertion)
		case AssertIdentifier:
			err = assertIdentifier(result, assertion)
		case AssertStudyCount:
			err = assertStudyCount(result, assertion)
		case AssertTableCount:
			err = assertTableCount(result, assertion)
		case AssertCell:
			err = assertCell(result, assertion)
		case AssertHeader:
			err = assertHeader(result, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
