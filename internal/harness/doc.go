// Package harness provides scenario-driven conformance testing for the
// GIMPLE exporter.
//
// The harness loads scenario files, runs the export pipeline they
// describe, and validates the exported statements against expectations
// and golden files.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	dump: dumps/function.json
//	policy: policies/restrictive.yaml
//	prefix: custom_prefix
//	expect:
//	  count: 69
//	  contains:
//	    - custom_prefix:Function_1 a gcc:Function.
//	  omits:
//	    - functions:name gcc:location loc:file_1.
//
// Dump and policy paths are resolved relative to the scenario file.
// policy and prefix are optional: without them the export runs under
// the default policy and the prefix derived from the function.
//
// # Expectations
//
// The following expectations are supported:
//
//   - contains: statements that must appear in the export
//   - omits: statements that must not appear
//   - count: the exact number of exported statements
//
// Contains and omits entries are parsed and canonicalized at load time,
// so spacing inside them is free.
//
// # Deterministic Testing
//
// Exports are pure: node labels are assigned in traversal order and
// properties are emitted in sorted order, so the same dump, policy and
// prefix always produce the same statement body. Golden files under
// testdata/golden pin that body per scenario.
//
// # Usage
//
// Load a scenario:
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/sum_defaults.yaml")
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
