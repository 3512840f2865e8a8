package queryir

import "fmt"

// Project wraps rel in a projection over the given fields.
func Project(rel Relation, first Expr, rest ...Expr) *Projection {
	fields := make([]Expr, 0, 1+len(rest))
	fields = append(fields, first)
	fields = append(fields, rest...)
	return &Projection{Upstream: rel, Fields: fields}
}

// NewProjection wraps rel in a projection over a slice of fields.
// Returns ErrMalformedOperand if fields is empty.
func NewProjection(rel Relation, fields []Expr) (*Projection, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: projection requires at least one field", ErrMalformedOperand)
	}
	return &Projection{Upstream: rel, Fields: append([]Expr(nil), fields...)}, nil
}

// Select wraps rel in a selection filtered by expr.
func Select(rel Relation, filter Expr) *Selection {
	return &Selection{Upstream: rel, Filter: filter}
}

// Order wraps rel in an ordering by key.
func Order(rel Relation, key Expr, desc bool) *Ordering {
	return &Ordering{Upstream: rel, Key: key, Desc: desc}
}

// Limit wraps rel in a limitation without offset.
func Limit(rel Relation, amount Expr) *Limitation {
	return &Limitation{Upstream: rel, Amount: amount}
}

// LimitSkip wraps rel in a limitation that skips the first rows.
func LimitSkip(rel Relation, amount, skip Expr) *Limitation {
	return &Limitation{Upstream: rel, Amount: amount, Skip: skip}
}

// Table returns a bare source named name.
func Table(name string) *Source {
	return &Source{Name: Field{Name: name}}
}

// HasSkip reports whether the limitation carries an offset worth rendering.
// A numeric zero or an empty string counts as no offset.
func (l *Limitation) HasSkip() bool {
	switch skip := l.Skip.(type) {
	case nil:
		return false
	case Number:
		return !skip.Value.IsZero()
	case String:
		return skip != ""
	default:
		return true
	}
}
