package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/grdf/gimple2rdf/internal/rdf"
)

// Scenario defines a conformance test scenario.
// Scenarios validate export behavior by running one GIMPLE dump through
// the export pipeline and asserting on the resulting statements.
type Scenario struct {
	// Name uniquely identifies this scenario. It doubles as the golden
	// file name for statement body comparison.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Dump is the path to the GIMPLE dump to export.
	// Relative paths resolve against the scenario file location.
	Dump string `yaml:"dump"`

	// Policy is an optional path to a policy file (.cue, .yaml or .yml).
	// Relative paths resolve against the scenario file location.
	// When empty, the export runs under the default policy.
	Policy string `yaml:"policy,omitempty"`

	// Prefix optionally overrides the namespace prefix.
	// When empty, the prefix derives from the decoded function.
	Prefix string `yaml:"prefix,omitempty"`

	// Expect validates the exported statements.
	Expect Expect `yaml:"expect"`
}

// Expect specifies expected export output.
// At least one field must be set.
type Expect struct {
	// Contains lists statements that must appear in the export.
	// Entries are canonicalized at load time, so spacing is free.
	Contains []string `yaml:"contains,omitempty"`

	// Omits lists statements that must not appear in the export.
	Omits []string `yaml:"omits,omitempty"`

	// Count is the exact number of exported statements.
	// Nil means the count is not checked.
	Count *int `yaml:"count,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Dump and policy paths are resolved relative to the scenario file
// location. Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "expects:" vs "expect:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Resolve referenced paths relative to the scenario location BEFORE
	// validation, so existence checks see the real paths.
	base := filepath.Dir(path)
	if scenario.Dump != "" && !filepath.IsAbs(scenario.Dump) {
		scenario.Dump = filepath.Join(base, scenario.Dump)
	}
	if scenario.Policy != "" && !filepath.IsAbs(scenario.Policy) {
		scenario.Policy = filepath.Join(base, scenario.Policy)
	}

	// Validate required fields
	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	// Canonicalize expectation lines so matching against rendered
	// statements is exact.
	for i, line := range scenario.Expect.Contains {
		stmt, err := rdf.ParseStatement(line)
		if err != nil {
			return nil, fmt.Errorf("invalid scenario: expect.contains[%d]: %v", i, err)
		}
		scenario.Expect.Contains[i] = stmt.String()
	}
	for i, line := range scenario.Expect.Omits {
		stmt, err := rdf.ParseStatement(line)
		if err != nil {
			return nil, fmt.Errorf("invalid scenario: expect.omits[%d]: %v", i, err)
		}
		scenario.Expect.Omits[i] = stmt.String()
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

	if s.Dump == "" {
		return fmt.Errorf("dump is required")
	}

	if _, err := os.Stat(s.Dump); os.IsNotExist(err) {
		return fmt.Errorf("dump file not found: %s", s.Dump)
	}

	if s.Policy != "" {
		if _, err := os.Stat(s.Policy); os.IsNotExist(err) {
			return fmt.Errorf("policy file not found: %s", s.Policy)
		}
	}

	if len(s.Expect.Contains) == 0 && len(s.Expect.Omits) == 0 && s.Expect.Count == nil {
		return fmt.Errorf("expect must specify contains, omits or count")
	}

	if s.Expect.Count != nil && *s.Expect.Count < 0 {
		return fmt.Errorf("expect.count must be non-negative")
	}

	return nil
}
