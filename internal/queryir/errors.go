package queryir

import "errors"

var (
	// ErrUnsupportedNode is returned when no handler recognizes a node kind.
	ErrUnsupportedNode = errors.New("unsupported node")

	// ErrUnsupportedOperation is returned when an operation is requested on
	// a node kind that does not define it, such as the complement of ">".
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrMalformedOperand is returned when a node is built with missing or
	// empty operands.
	ErrMalformedOperand = errors.New("malformed operand")
)
