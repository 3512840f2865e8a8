package harness

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jdp/relite/internal/queryir"
)

// Error kinds reported by ErrorKind.
const (
	KindMalformedOperand     = "malformed_operand"
	KindUnsupportedNode      = "unsupported_node"
	KindUnsupportedOperation = "unsupported_operation"
	KindOther                = "other"
)

// ErrorKind classifies a compilation error by the sentinel it wraps.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, queryir.ErrMalformedOperand):
		return KindMalformedOperand
	case errors.Is(err, queryir.ErrUnsupportedNode):
		return KindUnsupportedNode
	case errors.Is(err, queryir.ErrUnsupportedOperation):
		return KindUnsupportedOperation
	default:
		return KindOther
	}
}

// AssertionError is returned when a case does not meet its expectation.
type AssertionError struct {
	Case     string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "case %q failed\n", e.Case)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// checkCase evaluates the case expectation against its result.
func checkCase(c *Case, cr *CaseResult) error {
	switch {
	case c.Error != "":
		return assertError(c, cr)
	case len(c.Contains) > 0:
		return assertContains(c, cr)
	default:
		return assertExact(c, cr)
	}
}

func assertExact(c *Case, cr *CaseResult) error {
	if cr.Error != "" {
		return &AssertionError{Case: c.Name, Expected: c.Expect, Actual: "error: " + cr.Error}
	}
	if cr.SQL != c.Expect {
		return &AssertionError{Case: c.Name, Expected: c.Expect, Actual: cr.SQL}
	}
	return nil
}

func assertContains(c *Case, cr *CaseResult) error {
	if cr.Error != "" {
		return &AssertionError{
			Case:     c.Name,
			Expected: fmt.Sprintf("text containing %q", c.Contains),
			Actual:   "error: " + cr.Error,
		}
	}
	for _, want := range c.Contains {
		if !strings.Contains(cr.SQL, want) {
			return &AssertionError{
				Case:     c.Name,
				Expected: fmt.Sprintf("text containing %q", want),
				Actual:   cr.SQL,
			}
		}
	}
	return nil
}

// assertError matches an error kind exactly, or any other value as a
// substring of the error message.
func assertError(c *Case, cr *CaseResult) error {
	if cr.Error == "" {
		return &AssertionError{Case: c.Name, Expected: "error " + c.Error, Actual: cr.SQL}
	}
	if c.Error == cr.ErrorKind || strings.Contains(cr.Error, c.Error) {
		return nil
	}
	return &AssertionError{
		Case:     c.Name,
		Expected: "error " + c.Error,
		Actual:   fmt.Sprintf("error %s: %s", cr.ErrorKind, cr.Error),
	}
}
