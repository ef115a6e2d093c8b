package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario and compares the final canonical
// document against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files pin the exact compact ISA-JSON bytes the flow produces,
// so any drift in encoders, decoders or the tabular materialization
// shows up as a byte diff.
//
// Returns error if scenario execution fails. Assertion failures are
// reported through t, as is a final document that doesn't match the
// golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	for _, msg := range result.Errors {
		t.Error(msg)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, result.Final)

	return nil
}

// AssertGolden compares the given result's final document against a
// golden file. This is useful when you've already run a scenario and
// want to compare the result without re-running.
func AssertGolden(t *testing.T, scenarioName string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, result.Final)
}
