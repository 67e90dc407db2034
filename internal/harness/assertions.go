package harness

import (
	"fmt"
	"strings"

	"github.com/grdf/gimple2rdf/internal/rdf"
)

// ExpectError is returned when an expectation fails.
// It includes the full statement body to help debug the failure.
type ExpectError struct {
	Kind       string          // Expectation kind for categorization
	Expected   string          // Human-readable expected outcome
	Actual     string          // Human-readable actual outcome
	Statements []rdf.Statement // Exported statements for debugging context
}

// Error implements the error interface.
func (e *ExpectError) Error() string {
	var buf strings.Builder

	// Header with expectation kind
	fmt.Fprintf(&buf, "Expectation failed: %s\n", e.Kind)

	// Expected vs Actual (most important info)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	// Full statement body for context
	fmt.Fprintf(&buf, "\nExported statements:\n")
	for i, stmt := range e.Statements {
		fmt.Fprintf(&buf, "  [%d] %s\n", i+1, stmt.String())
	}

	return buf.String()
}

// assertContains checks that the export carries the given statement.
// The line is matched against the canonical rendering of each statement.
func assertContains(stmts []rdf.Statement, line string) error {
	for _, stmt := range stmts {
		if stmt.String() == line {
			return nil
		}
	}

	return &ExpectError{
		Kind:       "contains",
		Expected:   fmt.Sprintf("statement %q in export", line),
		Actual:     "not found",
		Statements: stmts,
	}
}

// assertOmits checks that the export does not carry the given statement.
func assertOmits(stmts []rdf.Statement, line string) error {
	for i, stmt := range stmts {
		if stmt.String() == line {
			return &ExpectError{
				Kind:       "omits",
				Expected:   fmt.Sprintf("statement %q absent from export", line),
				Actual:     fmt.Sprintf("found at position %d", i+1),
				Statements: stmts,
			}
		}
	}
	return nil
}

// assertCount checks that the export carries exactly the given number of
// statements.
func assertCount(stmts []rdf.Statement, want int) error {
	if len(stmts) != want {
		return &ExpectError{
			Kind:       "count",
			Expected:   fmt.Sprintf("%d statement(s)", want),
			Actual:     fmt.Sprintf("%d statement(s)", len(stmts)),
			Statements: stmts,
		}
	}
	return nil
}

// EvaluateExpect evaluates an expect clause against the exported
// statements. Returns a slice of error messages for failed
// expectations, in clause order.
func EvaluateExpect(stmts []rdf.Statement, expect Expect) []string {
	var errors []string

	for _, line := range expect.Contains {
		if err := assertContains(stmts, line); err != nil {
			errors = append(errors, err.Error())
		}
	}

	for _, line := range expect.Omits {
		if err := assertOmits(stmts, line); err != nil {
			errors = append(errors, err.Error())
		}
	}

	if expect.Count != nil {
		if err := assertCount(stmts, *expect.Count); err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
