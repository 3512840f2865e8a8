// Package ir provides the canonical encoding used to fingerprint compiled
// statements.
//
// Fingerprints must not depend on map iteration order, Unicode
// normalization form or encoder quirks, so every hashed payload goes
// through MarshalCanonical (RFC 8785 canonical JSON restricted to strings,
// integers, booleans, arrays and objects) and is hashed with a domain
// prefix.
//
//	id, err := ir.StatementID("simpledb", `select * from mydomain`)
package ir
