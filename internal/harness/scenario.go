package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jdp/relite/internal/querydoc"
)

// Scenario is a named list of compile cases.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Dialect is the default dialect for every case. Empty means the
	// statement's own dialect key, then generic.
	Dialect string `yaml:"dialect,omitempty"`

	Cases []Case `yaml:"cases"`
}

// Case compiles one statement and checks the outcome.
type Case struct {
	Name string `yaml:"name"`

	// Dialect overrides the scenario dialect for this case.
	Dialect string `yaml:"dialect,omitempty"`

	Query querydoc.Statement `yaml:"query"`

	Expect   string   `yaml:"expect,omitempty"`
	Contains []string `yaml:"contains,omitempty"`
	Error    string   `yaml:"error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "case:" vs "cases:"
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

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	seen := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("cases[%d]: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate case name %q", i, c.Name)
		}
		seen[c.Name] = true

		if err := validateExpectation(i, &c); err != nil {
			return err
		}
	}

	return nil
}

// validateExpectation requires exactly one expectation per case.
func validateExpectation(index int, c *Case) error {
	set := 0
	if c.Expect != "" {
		set++
	}
	if len(c.Contains) > 0 {
		set++
	}
	if c.Error != "" {
		set++
	}
	if set != 1 {
		return fmt.Errorf("cases[%d]: exactly one of expect, contains, error is required (got %d)", index, set)
	}
	return nil
}
