package harness

import "github.com/kappe-c/ARCtrl/internal/isa"

// StepTrace records one executed bounce for failure reporting.
type StepTrace struct {
	// Through is the dialect the step bounced through.
	Through string `json:"through"`

	// Stable reports whether the canonical form survived the step
	// unchanged.
	Stable bool `json:"stable"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True if all assertions hold.
	Pass bool `json:"pass"`

	// Steps contains the executed bounces in order.
	Steps []StepTrace `json:"steps"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Investigation is the document state after the last step.
	Investigation *isa.ArcInvestigation `json:"-"`

	// Baseline holds the canonical compact ISA-JSON bytes of the
	// initial decode, before any flow step ran.
	Baseline []byte `json:"-"`

	// Final holds the canonical compact ISA-JSON bytes after the
	// last flow step. Golden comparison pins these bytes.
	Final []byte `json:"-"`
}

// NewResult creates a new passing result.
// Used as the starting point for scenario execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Steps:  []StepTrace{},
		Errors: []string{},
	}
}

// AddError adds an assertion failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddStepTrace records an executed bounce.
func (r *Result) AddStepTrace(through string, stable bool) {
	r.Steps = append(r.Steps, StepTrace{Through: through, Stable: stable})
}
