package harness

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// SuiteResult contains results from running a set of scenario files.
type SuiteResult struct {
	TotalScenarios int               `json:"total_scenarios"`
	Passed         int               `json:"passed"`
	Failed         int               `json:"failed"`
	Failures       []ScenarioFailure `json:"failures,omitempty"`
}

// ScenarioFailure represents a failed scenario run.
type ScenarioFailure struct {
	ScenarioPath string `json:"scenario_path"`
	Error        string `json:"error"`
}

// RunSuite loads and runs every scenario file matching the glob
// pattern (doublestar syntax, so `scenarios/**/*.yaml` descends).
// Document paths inside each scenario resolve relative to the
// scenario's own directory. Matches run in sorted order so the
// summary is deterministic.
//
// For each scenario file:
//  1. Load and validate the scenario
//  2. Run it via Run
//  3. Collect load errors, execution errors and assertion failures
func RunSuite(pattern string) (*SuiteResult, error) {
	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to expand pattern %q: %w", pattern, err)
	}
	sort.Strings(paths)

	result := &SuiteResult{}
	for _, path := range paths {
		result.TotalScenarios++

		scenario, err := LoadScenarioWithBasePath(path, filepath.Dir(path))
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, ScenarioFailure{
				ScenarioPath: path,
				Error:        fmt.Sprintf("failed to load scenario: %v", err),
			})
			continue
		}

		runResult, err := Run(scenario)
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, ScenarioFailure{
				ScenarioPath: path,
				Error:        fmt.Sprintf("scenario execution failed: %v", err),
			})
			continue
		}

		if !runResult.Pass {
			result.Failed++
			result.Failures = append(result.Failures, ScenarioFailure{
				ScenarioPath: path,
				Error:        fmt.Sprintf("scenario assertions failed: %v", runResult.Errors),
			})
			continue
		}

		result.Passed++
	}

	return result, nil
}
