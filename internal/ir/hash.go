package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix allows the algorithm to change later.
const (
	DomainStatement = "relite/statement/v1"
	DomainScenario  = "relite/scenario/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte keeps the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// StatementID fingerprints a compiled statement. Two statements share an ID
// iff they render the same text for the same dialect.
func StatementID(dialect, sql string) (string, error) {
	canonical, err := MarshalCanonical(map[string]any{
		"dialect": dialect,
		"sql":     sql,
	})
	if err != nil {
		return "", fmt.Errorf("StatementID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainStatement, canonical), nil
}

// ScenarioID fingerprints the outcome of a compile scenario run: the
// scenario name and the rendered text (or error) of every case, in order.
func ScenarioID(name string, outcomes []string) (string, error) {
	canonical, err := MarshalCanonical(map[string]any{
		"name":     name,
		"outcomes": outcomes,
	})
	if err != nil {
		return "", fmt.Errorf("ScenarioID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainScenario, canonical), nil
}

// ShortID returns the first 12 characters of id for display.
func ShortID(id string) string {
	if len(id) <= 12 {
		return id
	}
	return id[:12]
}
