package harness

import (
	"bytes"
	"fmt"
	"os"

	"github.com/grdf/gimple2rdf/internal/export"
	"github.com/grdf/gimple2rdf/internal/gimple"
	"github.com/grdf/gimple2rdf/internal/policy"
	"github.com/grdf/gimple2rdf/internal/rdf"
)

// Run executes a test scenario and returns the result.
//
// Each scenario decodes its dump fresh and exports into memory, so runs
// are isolated. Exports are pure: the same dump, policy and prefix
// always produce the same statement body.
//
// Execution flow:
// 1. Decode the GIMPLE dump
// 2. Load the scenario policy, or fall back to the default policy
// 3. Resolve the namespace prefix (scenario override or derived)
// 4. Export the function graph to a statement body
// 5. Evaluate the expect clause against the parsed statements
func Run(scenario *Scenario) (*Result, error) {
	f, err := os.Open(scenario.Dump)
	if err != nil {
		return nil, fmt.Errorf("failed to open dump: %w", err)
	}
	fn, err := gimple.Decode(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to decode dump: %w", err)
	}

	pol := export.DefaultPolicy()
	if scenario.Policy != "" {
		file, err := policy.Load(scenario.Policy)
		if err != nil {
			return nil, fmt.Errorf("failed to load policy: %w", err)
		}
		pol = file.Policy()
	}

	prefix := scenario.Prefix
	if prefix == "" {
		prefix = export.DerivePrefix(fn)
	}
	exp := export.New(prefix, export.WithPolicy(pol))

	var body bytes.Buffer
	if err := exp.Export(fn, &body); err != nil {
		return nil, fmt.Errorf("failed to export: %w", err)
	}

	stmts, err := rdf.ReadStatements(bytes.NewReader(body.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("failed to read exported statements: %w", err)
	}

	result := NewResult()
	result.Prefix = exp.Prefix()
	result.Output = body.String()
	result.Statements = stmts

	// Evaluate expectations against the export
	for _, errMsg := range EvaluateExpect(stmts, scenario.Expect) {
		result.AddError(errMsg)
	}

	return result, nil
}
