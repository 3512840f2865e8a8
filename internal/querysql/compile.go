package querysql

import (
	"fmt"
	"strings"

	"github.com/jdp/relite/internal/queryir"
)

// Compiler renders query trees into query strings for one dialect.
//
// A Compiler holds no per-call state; it may be reused across calls and
// shared between goroutines.
type Compiler struct {
	dialect   Dialect
	extender  Extender
	operators map[queryir.Op]string
}

// New creates a Compiler for the given dialect.
func New(d Dialect) *Compiler {
	if d == nil {
		d = Generic{}
	}
	ext, _ := d.(Extender)
	return &Compiler{
		dialect:   d,
		extender:  ext,
		operators: operatorTable(d),
	}
}

// Dialect returns the dialect this compiler renders for.
func (c *Compiler) Dialect() Dialect {
	return c.dialect
}

// Compile renders a relation or an expression into a query string.
//
// Relations are rendered in the order their chain was built:
//
//	select <fields> from <source> [where <expr>] [order by <key> [desc]] [limit [<skip>, ]<amount>]
//
// Anything that is not a relation is compiled as a top-level expression
// (depth 0, never parenthesized).
func (c *Compiler) Compile(n queryir.Node) (string, error) {
	if queryir.IsNil(n) {
		return "", fmt.Errorf("%w: cannot compile nil node", queryir.ErrMalformedOperand)
	}

	switch node := n.(type) {
	case *queryir.Source:
		return c.compileSource(node)
	case *queryir.Projection:
		return c.compileProjection(node)
	case *queryir.Selection:
		return c.compileSelection(node)
	case *queryir.Ordering:
		return c.compileOrdering(node)
	case *queryir.Limitation:
		return c.compileLimitation(node)
	default:
		return c.CompileExpr(n, 0)
	}
}

// CompileExpr renders an expression at the given depth.
//
// Depth counts the operator nodes strictly above n. Operator fragments are
// wrapped in parentheses iff depth > 0; there is no precedence table.
func (c *Compiler) CompileExpr(n queryir.Node, depth int) (string, error) {
	if queryir.IsNil(n) {
		return "", fmt.Errorf("%w: missing operand", queryir.ErrMalformedOperand)
	}

	// Dialect override comes first
	if c.extender != nil {
		fragment, handled, err := c.extender.CompileNode(c, n, depth)
		if err != nil {
			return "", err
		}
		if handled {
			return fragment, nil
		}
	}

	switch node := n.(type) {
	case queryir.String:
		return c.compileString(string(node)), nil
	case queryir.Number:
		return node.String(), nil
	case queryir.Literal:
		return node.Text, nil
	case queryir.Field:
		return c.CompileField(node)
	case *queryir.BinaryOp:
		return c.compileOp(depth, func() (string, error) { return c.compileBinaryOp(node, depth) })
	case *queryir.InOp:
		return c.compileOp(depth, func() (string, error) { return c.compileIn(node, depth) })
	case *queryir.AssociativeOp:
		return c.compileOp(depth, func() (string, error) { return c.compileAssociativeOp(node, depth) })
	case queryir.Relation:
		// Nested query, e.g. an in-term
		return c.Compile(node)
	default:
		return "", fmt.Errorf("%w: %T", queryir.ErrUnsupportedNode, n)
	}
}

// CompileField renders a field through the dialect's quoting policy.
func (c *Compiler) CompileField(f queryir.Field) (string, error) {
	if f.Name == "" {
		return "", fmt.Errorf("%w: field has an empty name", queryir.ErrMalformedOperand)
	}
	return c.dialect.QuoteField(f.Name), nil
}

// Parenthesize wraps an operator fragment in parentheses iff depth > 0.
// Dialect operator forms must use it to keep bracketing uniform.
func (c *Compiler) Parenthesize(fragment string, depth int) string {
	if depth > 0 {
		return "(" + fragment + ")"
	}
	return fragment
}

// Token returns the dialect token for op.
// Returns ErrUnsupportedNode if neither the dialect nor the generic table
// knows the operator.
func (c *Compiler) Token(op queryir.Op) (string, error) {
	tok, ok := c.operators[op]
	if !ok {
		return "", fmt.Errorf("%w: no %s token for operator %q", queryir.ErrUnsupportedNode, c.dialect.Name(), op)
	}
	return tok, nil
}

// compileOp renders an operator fragment and applies the parenthesization rule.
func (c *Compiler) compileOp(depth int, render func() (string, error)) (string, error) {
	fragment, err := render()
	if err != nil {
		return "", err
	}
	return c.Parenthesize(fragment, depth), nil
}

// compileBinaryOp renders "<left> <token> <right>".
func (c *Compiler) compileBinaryOp(op *queryir.BinaryOp, depth int) (string, error) {
	tok, err := c.Token(op.Op)
	if err != nil {
		return "", err
	}
	left, err := c.CompileExpr(op.Left, depth+1)
	if err != nil {
		return "", fmt.Errorf("compile %s left: %w", op.Op, err)
	}
	right, err := c.CompileExpr(op.Right, depth+1)
	if err != nil {
		return "", fmt.Errorf("compile %s right: %w", op.Op, err)
	}
	return left + " " + tok + " " + right, nil
}

// compileIn renders "<left> in (<term>, <term>, ...)".
func (c *Compiler) compileIn(op *queryir.InOp, depth int) (string, error) {
	if len(op.Terms) == 0 {
		return "", fmt.Errorf("%w: in has no terms", queryir.ErrMalformedOperand)
	}
	left, err := c.CompileExpr(op.Left, depth+1)
	if err != nil {
		return "", fmt.Errorf("compile in left: %w", err)
	}
	terms := make([]string, 0, len(op.Terms))
	for i, t := range op.Terms {
		s, err := c.CompileExpr(t, depth+1)
		if err != nil {
			return "", fmt.Errorf("compile in term %d: %w", i, err)
		}
		terms = append(terms, s)
	}
	return left + " in (" + strings.Join(terms, ", ") + ")", nil
}

// compileAssociativeOp renders the terms joined by " <token> ".
func (c *Compiler) compileAssociativeOp(op *queryir.AssociativeOp, depth int) (string, error) {
	if len(op.Terms) == 0 {
		return "", fmt.Errorf("%w: %s has no terms", queryir.ErrMalformedOperand, op.Op)
	}
	tok, err := c.Token(op.Op)
	if err != nil {
		return "", err
	}
	terms := make([]string, 0, len(op.Terms))
	for i, t := range op.Terms {
		s, err := c.CompileExpr(t, depth+1)
		if err != nil {
			return "", fmt.Errorf("compile %s term %d: %w", op.Op, i, err)
		}
		terms = append(terms, s)
	}
	return strings.Join(terms, " "+tok+" "), nil
}

// compileString wraps an escaped string body in double quotes.
func (c *Compiler) compileString(s string) string {
	return `"` + c.dialect.QuoteString(s) + `"`
}

// compileSource renders the attached relation, or the bare name.
func (c *Compiler) compileSource(src *queryir.Source) (string, error) {
	if src.Upstream != nil {
		return c.Compile(src.Upstream)
	}
	return c.Compile(src.Name)
}

// compileProjection renders "select <fields> from <upstream>".
func (c *Compiler) compileProjection(p *queryir.Projection) (string, error) {
	if len(p.Fields) == 0 {
		return "", fmt.Errorf("%w: projection has no fields", queryir.ErrMalformedOperand)
	}
	fields := make([]string, 0, len(p.Fields))
	for i, f := range p.Fields {
		s, err := c.Compile(f)
		if err != nil {
			return "", fmt.Errorf("compile field %d: %w", i, err)
		}
		fields = append(fields, s)
	}
	from, err := c.Compile(p.Upstream)
	if err != nil {
		return "", fmt.Errorf("compile projection source: %w", err)
	}
	return "select " + strings.Join(fields, ", ") + " from " + from, nil
}

// compileSelection renders "<upstream> where <filter>".
func (c *Compiler) compileSelection(s *queryir.Selection) (string, error) {
	upstream, err := c.Compile(s.Upstream)
	if err != nil {
		return "", err
	}
	filter, err := c.Compile(s.Filter)
	if err != nil {
		return "", fmt.Errorf("compile filter: %w", err)
	}
	return upstream + " where " + filter, nil
}

// compileOrdering renders "<upstream> order by <key>[ desc]".
func (c *Compiler) compileOrdering(o *queryir.Ordering) (string, error) {
	upstream, err := c.Compile(o.Upstream)
	if err != nil {
		return "", err
	}
	key, err := c.Compile(o.Key)
	if err != nil {
		return "", fmt.Errorf("compile order key: %w", err)
	}
	fragment := upstream + " order by " + key
	if o.Desc {
		fragment += " desc"
	}
	return fragment, nil
}

// compileLimitation renders "<upstream> limit [<skip>, ]<amount>".
func (c *Compiler) compileLimitation(l *queryir.Limitation) (string, error) {
	upstream, err := c.Compile(l.Upstream)
	if err != nil {
		return "", err
	}
	amount, err := c.Compile(l.Amount)
	if err != nil {
		return "", fmt.Errorf("compile limit amount: %w", err)
	}
	if !l.HasSkip() {
		return upstream + " limit " + amount, nil
	}
	skip, err := c.Compile(l.Skip)
	if err != nil {
		return "", fmt.Errorf("compile limit skip: %w", err)
	}
	return upstream + " limit " + skip + ", " + amount, nil
}
