package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a round-trip conformance scenario.
// Scenarios decode a document, push it through a flow of dialect
// bounces and assert on the resulting investigation.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Document is the path to the input document.
	// Relative paths resolve against the scenario file location.
	Document string `yaml:"document"`

	// Format names the dialect the document is written in:
	// "isajson" or "rocrate".
	Format string `yaml:"format"`

	// Flow contains the bounce steps applied in order.
	// Each step re-encodes the current investigation through a
	// dialect and decodes it back.
	Flow []FlowStep `yaml:"flow"`

	// Assertions validate the final investigation.
	// Supported types: stable, identifier, study_count, table_count,
	// cell, header.
	Assertions []Assertion `yaml:"assertions"`
}

// FlowStep represents one bounce through a dialect.
type FlowStep struct {
	// Through names the dialect to bounce through:
	// "isajson", "rocrate" or "tab".
	Through string `yaml:"through"`
}

// Assertion validates the investigation after the flow completes.
type Assertion struct {
	// Type specifies the assertion type:
	// - "stable": final canonical form equals the initial decode
	// - "identifier": investigation identifier matches value
	// - "study_count": investigation holds exactly count studies
	// - "table_count": the named owner holds exactly count tables
	// - "cell": the cell at (col,row) matches want (empty = absent)
	// - "header": the header at col matches want
	Type string `yaml:"type"`

	// Value is the expected identifier (used by identifier).
	Value string `yaml:"value,omitempty"`

	// Study is the owning study identifier (table_count, cell, header).
	Study string `yaml:"study,omitempty"`

	// Assay is the owning assay identifier. Empty means the table
	// belongs to the study itself (table_count, cell, header).
	Assay string `yaml:"assay,omitempty"`

	// Table is the annotation table name (cell, header).
	Table string `yaml:"table,omitempty"`

	// Col and Row address a cell or header column (cell, header).
	Col int `yaml:"col,omitempty"`
	Row int `yaml:"row,omitempty"`

	// Count is the expected number of entities (study_count, table_count).
	Count int `yaml:"count,omitempty"`

	// Want is the expected canonical JSON envelope (cell, header).
	// For cell assertions an empty want asserts the cell is absent.
	Want string `yaml:"want,omitempty"`
}

// Assertion type constants.
const (
	AssertStable     = "stable"
	AssertIdentifier = "identifier"
	AssertStudyCount = "study_count"
	AssertTableCount = "table_count"
	AssertCell       = "cell"
	AssertHeader     = "header"
)

// Dialect names accepted in Format and FlowStep.Through.
const (
	FormatISAJSON = "isajson"
	FormatROCrate = "rocrate"
	FormatTab     = "tab"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving the document path relative to the provided base path.
// This is useful when scenario files reference documents using
// relative paths.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Resolve the document path BEFORE validation
	if scenario.Document != "" && !filepath.IsAbs(scenario.Document) && basePath != "" {
		scenario.Document = filepath.Join(basePath, scenario.Document)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Document == "" {
		return fmt.Errorf("document is required")
	}

	if _, err := os.Stat(s.Document); os.IsNotExist(err) {
		return fmt.Errorf("document file not found: %s", s.Document)
	}

	switch s.Format {
	case FormatISAJSON, FormatROCrate:
	case "":
		return fmt.Errorf("format is required")
	default:
		return fmt.Errorf("unknown document format %q", s.Format)
	}

	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	for i, step := range s.Flow {
		switch step.Through {
		case FormatISAJSON, FormatROCrate, FormatTab:
		case "":
			return fmt.Errorf("flow[%d]: through is required", i)
		default:
			return fmt.Errorf("flow[%d]: unknown dialect %q", i, step.Through)
		}
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertStable:
		// No fields required
	case AssertIdentifier:
		if a.Value == "" {
			return fmt.Errorf("assertions[%d]: value is required for identifier", index)
		}
	case AssertStudyCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for study_count", index)
		}
	case AssertTableCount:
		if a.Study == "" {
			return fmt.Errorf("assertions[%d]: study is required for table_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for table_count", index)
		}
	case AssertCell:
		if a.Study == "" {
			return fmt.Errorf("assertions[%d]: study is required for cell", index)
		}
		if a.Table == "" {
			return fmt.Errorf("assertions[%d]: table is required for cell", index)
		}
		if a.Col < 0 || a.Row < 0 {
			return fmt.Errorf("assertions[%d]: col and row must be non-negative for cell", index)
		}
	case AssertHeader:
		if a.Study == "" {
			return fmt.Errorf("assertions[%d]: study is required for header", index)
		}
		if a.Table == "" {
			return fmt.Errorf("assertions[%d]: table is required for header", index)
		}
		if a.Col < 0 {
			return fmt.Errorf("assertions[%d]: col must be non-negative for header", index)
		}
		if a.Want == "" {
			return fmt.Errorf("assertions[%d]: want is required for header", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
