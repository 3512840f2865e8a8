// Package harness runs compile scenarios: YAML files that pair query
// statements with the exact text (or error) each dialect must produce.
//
// # Scenario Format
//
//	name: simpledb_basics
//	description: "Comparisons and combinators against a SimpleDB domain"
//	dialect: simpledb
//	cases:
//	  - name: equality
//	    query:
//	      from: mydomain
//	      select: [{op: star}]
//	      where: {op: eq, args: [{field: city}, {string: Seattle}]}
//	    expect: 'select * from mydomain where city = "Seattle"'
//	  - name: like needs a dialect token
//	    dialect: fql
//	    query: ...
//	    error: unsupported_node
//
// # Expectations
//
// Each case sets exactly one of:
//
//   - expect: the exact compiled text
//   - contains: substrings the compiled text must contain
//   - error: the error kind (malformed_operand, unsupported_node,
//     unsupported_operation) or, failing that, a substring of the message
//
// # Golden Files
//
// RunWithGolden snapshots the canonical JSON of every case outcome under
// testdata/golden/{scenario}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
