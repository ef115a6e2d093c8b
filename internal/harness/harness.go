package harness

import (
	"bytes"
	"fmt"
	"os"

	"github.com/kappe-c/ARCtrl/internal/isa"
	"github.com/kappe-c/ARCtrl/internal/isajson"
	"github.com/kappe-c/ARCtrl/internal/rocrate"
	"github.com/kappe-c/ARCtrl/internal/sparse"
)

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Read and decode the document in its declared format
//  2. Pin the canonical baseline bytes
//  3. Execute each flow step as an encode/decode bounce
//  4. Evaluate assertions against the final investigation
//
// The returned error covers execution failures (unreadable document,
// decode failure, a bounce that rejects its own output). Assertion
// failures land in Result.Errors with Pass false.
func Run(scenario *Scenario) (*Result, error) {
	data, err := os.ReadFile(scenario.Document)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	inv, err := decodeDocument(data, scenario.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	result := NewResult()
	result.Baseline, err = canonicalBytes(inv)
	if err != nil {
		return nil, fmt.Errorf("failed to pin baseline: %w", err)
	}

	// Thread the investigation through the bounces, tracking whether
	// each step preserved the canonical form.
	previous := result.Baseline
	for i, step := range scenario.Flow {
		inv, err = bounce(inv, step.Through)
		if err != nil {
			return nil, fmt.Errorf("flow step %d (%s): %w", i, step.Through, err)
		}
		current, err := canonicalBytes(inv)
		if err != nil {
			return nil, fmt.Errorf("flow step %d (%s): %w", i, step.Through, err)
		}
		result.AddStepTrace(step.Through, bytes.Equal(current, previous))
		previous = current
	}

	result.Investigation = inv
	result.Final = previous

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

// decodeDocument parses document bytes in the named dialect.
func decodeDocument(data []byte, format string) (*isa.ArcInvestigation, error) {
	switch format {
	case FormatISAJSON:
		return isajson.New().UnmarshalInvestigation(data)
	case FormatROCrate:
		return rocrate.New().UnmarshalInvestigation(data)
	default:
		return nil, fmt.Errorf("unknown document format %q", format)
	}
}

// canonicalBytes renders the investigation in the strict compact
// dialect, the reference form every comparison pins. The encoder fixes
// the key order and elides placeholder identifiers, so the bytes are
// deterministic even for documents that arrived without one.
func canonicalBytes(inv *isa.ArcInvestigation) ([]byte, error) {
	return isajson.New().MarshalInvestigation(inv)
}

// bounce re-encodes the investigation through a dialect and decodes it
// back. The tab dialect materializes every annotation table into raw
// rows and rebuilds it, replacing the table objects in place.
func bounce(inv *isa.ArcInvestigation, through string) (*isa.ArcInvestigation, error) {
	switch through {
	case FormatISAJSON:
		c := isajson.New()
		data, err := c.MarshalInvestigation(inv)
		if err != nil {
			return nil, err
		}
		return c.UnmarshalInvestigation(data)
	case FormatROCrate:
		c := rocrate.New()
		data, err := c.MarshalInvestigation(inv)
		if err != nil {
			return nil, err
		}
		return c.UnmarshalInvestigation(data)
	case FormatTab:
		return inv, bounceTables(inv)
	default:
		return nil, fmt.Errorf("unknown dialect %q", through)
	}
}

// bounceTables pushes each annotation table through its tabular
// materialization. Investigation and study metadata have no tabular
// form here, so only the tables change identity.
func bounceTables(inv *isa.ArcInvestigation) error {
	for _, st := range inv.Studies {
		if err := bounceTableList(st.Tables); err != nil {
			return fmt.Errorf("study %q: %w", st.Identifier, err)
		}
		for _, a := range st.Assays {
			if err := bounceTableList(a.Tables); err != nil {
				return fmt.Errorf("assay %q: %w", a.Identifier, err)
			}
		}
	}
	return nil
}

func bounceTableList(tables []*isa.ArcTable) error {
	for i, t := range tables {
		rows := sparse.TableToRows(t)
		rebuilt, err := sparse.TableFromRows(t.Name, rows)
		if err != nil {
			return fmt.Errorf("table %q: %w", t.Name, err)
		}
		tables[i] = rebuilt
	}
	return nil
}
