package harness

import "github.com/grdf/gimple2rdf/internal/rdf"

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True if all expectations match.
	Pass bool `json:"pass"`

	// Prefix is the function namespace prefix the export ran under.
	Prefix string `json:"prefix"`

	// Output is the exported statement body, one statement per line.
	// Used for golden comparison.
	Output string `json:"output"`

	// Statements are the parsed statements in emission order.
	// Used for expectation evaluation.
	Statements []rdf.Statement `json:"-"`

	// Errors contains expectation failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for scenario execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds an expectation failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
