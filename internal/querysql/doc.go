// Package querysql compiles queryir trees into query strings.
//
// The Compiler is dialect-independent: it walks the tree depth-first, tracks
// operator nesting depth for parenthesization, flattens associative chains
// and renders relations in the order they were built. Everything that varies
// between query languages lives behind the Dialect interface:
//
//   - an operator token table layered over the generic one
//   - the field quoting policy
//   - the string escaping policy
//   - optional extra node kinds, via Extender
//
// A new dialect never requires a change to this package.
//
// PARENTHESIZATION:
//
// Depth is the number of operator nodes strictly above the current one. An
// operator at depth 0 is rendered bare; any operator used as an operand is
// wrapped in parentheses. Callers that want "a and b or c" must group it
// themselves - the compiler never reorders terms.
//
//	Eq(a, 1)                          a = 1
//	Or(Eq(a, 1), Eq(a, 2))            (a = 1) or (a = 2)
//	And(Or(Eq(a, 1), Eq(a, 2)), b)    ((a = 1) or (a = 2)) and b
package querysql
