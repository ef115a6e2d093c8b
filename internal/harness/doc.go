// Package harness provides round-trip conformance testing for the ISA
// dialect codecs.
//
// The harness decodes a document, pushes it through a flow of dialect
// bounces (encode then decode back) and validates assertions on the
// resulting investigation. Golden files pin the final canonical bytes.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	document: ../documents/growth.isa.json
//	format: isajson
//	flow:
//	  - through: rocrate
//	  - through: tab
//	  - through: isajson
//	assertions:
//	  - type: stable
//	  - type: study_count
//	    count: 1
//	  - type: cell
//	    study: growth-study
//	    table: Growth
//	    col: 1
//	    row: 0
//	    want: '{"celltype":"Term","values":[{"annotationValue":"..."}]}'
//
// # Assertion Types
//
// The following assertion types are supported:
//
//   - stable: Verifies the final canonical form equals the initial decode
//   - identifier: Verifies the investigation identifier
//   - study_count: Verifies the number of studies
//   - table_count: Verifies the number of tables under a study or assay
//   - cell: Verifies the canonical cell envelope at a coordinate
//     (an empty want asserts the coordinate is unpopulated)
//   - header: Verifies the canonical header envelope at a column
//
// # Deterministic Comparison
//
// Document-level comparisons (stable, golden files) go through the
// strict compact ISA-JSON encoder, which emits every document in one
// fixed form: fixed key order, empty fields elided, placeholder
// identifiers dropped. Cell and header assertions compare canonical
// envelope bytes with sorted keys, matching the form the store pins.
//
// # Usage
//
// Load a scenario:
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/growth.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Execute it:
//
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
