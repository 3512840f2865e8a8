// Package store provides a SQLite-backed catalog of compiled statements.
//
// Each statement is stored under its name together with the dialect it was
// compiled for, the rendered text, the file it came from and a fingerprint
// (ir.StatementID). Saving a statement again bumps its revision only when
// the fingerprint changes, so recompiling an unchanged file is a no-op.
//
// The catalog never executes the statements it stores.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Lists are deterministic: ORDER BY name ASC, and names are unique.
package store
