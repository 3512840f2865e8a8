package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/jdp/relite/internal/ir"
)

// Snapshot returns the canonical JSON of a scenario result: the scenario
// name, its fingerprint (ir.ScenarioID) and one entry per case. Error
// messages are reduced to their kind so wording changes do not churn
// golden files.
func Snapshot(name string, result *Result) ([]byte, error) {
	outcomes := make([]string, len(result.Cases))
	cases := make([]any, len(result.Cases))
	for i, c := range result.Cases {
		outcomes[i] = c.Outcome()

		entry := map[string]any{
			"name":    c.Name,
			"dialect": c.Dialect,
		}
		if c.Error != "" {
			entry["error_kind"] = c.ErrorKind
		} else {
			entry["sql"] = c.SQL
		}
		cases[i] = entry
	}

	id, err := ir.ScenarioID(name, outcomes)
	if err != nil {
		return nil, err
	}

	return ir.MarshalCanonical(map[string]any{
		"scenario": name,
		"id":       id,
		"cases":    cases,
	})
}

// RunWithGolden runs a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if the scenario itself is invalid. A snapshot mismatch
// fails t through goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	snapshot, err := Snapshot(name, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, snapshot)

	return nil
}
