package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScenario writes content to a scenario file in a temp dir.
func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, `
name: test_scenario
description: "Test scenario for validation"
dialect: simpledb
cases:
  - name: equality
    query:
      from: mydomain
      select: [{op: star}]
      where: {op: eq, args: [{field: city}, {string: Seattle}]}
    expect: 'select * from mydomain where city = "Seattle"'
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "Test scenario for validation", scenario.Description)
	assert.Equal(t, "simpledb", scenario.Dialect)
	require.Len(t, scenario.Cases, 1)
	assert.Equal(t, "equality", scenario.Cases[0].Name)
	assert.Equal(t, "mydomain", scenario.Cases[0].Query.From)
	require.NotNil(t, scenario.Cases[0].Query.Where)
	assert.Equal(t, "eq", scenario.Cases[0].Query.Where.Op)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: "Unknown key"
case:
  - name: a
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing name",
			content: `
description: "Missing name"
cases:
  - name: a
    query: {from: t, select: [{field: a}]}
    expect: 'select a from t'
`,
			wantErr: "name is required",
		},
		{
			name: "missing description",
			content: `
name: no_description
cases:
  - name: a
    query: {from: t, select: [{field: a}]}
    expect: 'select a from t'
`,
			wantErr: "description is required",
		},
		{
			name: "no cases",
			content: `
name: empty
description: "No cases"
cases: []
`,
			wantErr: "cases list is required",
		},
		{
			name: "case without name",
			content: `
name: unnamed
description: "Unnamed case"
cases:
  - query: {from: t, select: [{field: a}]}
    expect: 'select a from t'
`,
			wantErr: "cases[0]: name is required",
		},
		{
			name: "duplicate case",
			content: `
name: dup
description: "Duplicate case names"
cases:
  - name: a
    query: {from: t, select: [{field: a}]}
    expect: 'select a from t'
  - name: a
    query: {from: t, select: [{field: b}]}
    expect: 'select b from t'
`,
			wantErr: `cases[1]: duplicate case name "a"`,
		},
		{
			name: "no expectation",
			content: `
name: bare
description: "Case without expectation"
cases:
  - name: a
    query: {from: t, select: [{field: a}]}
`,
			wantErr: "exactly one of expect, contains, error is required (got 0)",
		},
		{
			name: "two expectations",
			content: `
name: both
description: "Case with two expectations"
cases:
  - name: a
    query: {from: t, select: [{field: a}]}
    expect: 'select a from t'
    error: malformed_operand
`,
			wantErr: "exactly one of expect, contains, error is required (got 2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid scenario")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
