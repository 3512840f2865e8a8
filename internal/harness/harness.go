package harness

import (
	"fmt"

	"github.com/jdp/relite/internal/querydoc"
)

// Run compiles every case of a scenario and checks its expectation.
//
// Cases are independent: a failing case is recorded in the result and the
// run continues. The returned error is reserved for scenarios that are
// themselves invalid.
func Run(scenario *Scenario) (*Result, error) {
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	result := NewResult()
	for i := range scenario.Cases {
		c := &scenario.Cases[i]
		cr := runCase(scenario, c)

		if err := checkCase(c, &cr); err != nil {
			result.AddError(err.Error())
		} else {
			cr.Pass = true
		}
		result.Cases = append(result.Cases, cr)
	}

	return result, nil
}

// RunFile loads and runs a scenario file.
func RunFile(path string) (*Scenario, *Result, error) {
	scenario, err := LoadScenario(path)
	if err != nil {
		return nil, nil, err
	}
	result, err := Run(scenario)
	if err != nil {
		return nil, nil, err
	}
	return scenario, result, nil
}

// runCase compiles one case. The statement takes the case name when it has
// none of its own.
func runCase(scenario *Scenario, c *Case) CaseResult {
	stmt := c.Query
	if stmt.Name == "" {
		stmt.Name = c.Name
	}

	override := scenario.Dialect
	if c.Dialect != "" {
		override = c.Dialect
	}

	cr := CaseResult{Name: c.Name}
	if d, err := querydoc.Resolve(&stmt, override); err == nil {
		cr.Dialect = d.Name()
	}

	compiled, err := querydoc.Compile(&stmt, override)
	if err != nil {
		cr.Error = err.Error()
		cr.ErrorKind = ErrorKind(err)
		return cr
	}
	cr.SQL = compiled.SQL
	return cr
}
