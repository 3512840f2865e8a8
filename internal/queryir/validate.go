package queryir

import (
	"fmt"
	"reflect"
	"strings"
)

// Composite is implemented by extension kinds that hold child nodes, so
// generic traversals such as Validate can reach them.
type Composite interface {
	Operands() []Node
}

// ValidationResult lists the structural problems found in a tree.
type ValidationResult struct {
	// Valid is true when no problems were found.
	Valid bool

	// Problems describes each malformed node, in traversal order.
	Problems []string
}

// Err returns nil for a valid tree, or an error wrapping ErrMalformedOperand
// that lists every problem.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMalformedOperand, strings.Join(r.Problems, "; "))
}

// Validate checks a tree for structurally malformed nodes: nil operands,
// empty names, empty term lists, projections without fields and limitations
// without an amount.
//
// The builders in this package never produce such trees; Validate exists for
// trees assembled by hand or decoded from documents. It is a pure function.
func Validate(n Node) ValidationResult {
	v := &validator{problems: []string{}}
	v.node("query", n)
	return ValidationResult{
		Valid:    len(v.problems) == 0,
		Problems: v.problems,
	}
}

// validator accumulates problems during traversal.
type validator struct {
	problems []string
}

func (v *validator) addProblem(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

// node validates n, using path to locate problems in messages.
func (v *validator) node(path string, n Node) {
	if IsNil(n) {
		v.addProblem("%s: missing node", path)
		return
	}

	switch node := n.(type) {
	case *Source:
		if node.Upstream != nil {
			v.node(path, node.Upstream)
			return
		}
		v.node(path+".name", node.Name)
	case *Projection:
		if len(node.Fields) == 0 {
			v.addProblem("%s: projection has no fields", path)
		}
		for i, f := range node.Fields {
			v.node(fmt.Sprintf("%s.fields[%d]", path, i), f)
		}
		v.node(path+".upstream", node.Upstream)
	case *Selection:
		v.node(path+".filter", node.Filter)
		v.node(path+".upstream", node.Upstream)
	case *Ordering:
		v.node(path+".key", node.Key)
		v.node(path+".upstream", node.Upstream)
	case *Limitation:
		v.node(path+".amount", node.Amount)
		if node.Skip != nil {
			v.node(path+".skip", node.Skip)
		}
		v.node(path+".upstream", node.Upstream)
	case Field:
		if node.Name == "" {
			v.addProblem("%s: field has an empty name", path)
		}
	case Literal, String, Number:
		// Leaves carry no children
	case *BinaryOp:
		if node.Op == "" {
			v.addProblem("%s: operator kind is empty", path)
		}
		v.node(path+".left", node.Left)
		v.node(path+".right", node.Right)
	case *InOp:
		v.node(path+".left", node.Left)
		if len(node.Terms) == 0 {
			v.addProblem("%s: in has no terms", path)
		}
		for i, t := range node.Terms {
			v.node(fmt.Sprintf("%s.terms[%d]", path, i), t)
		}
	case *AssociativeOp:
		if len(node.Terms) == 0 {
			v.addProblem("%s: %s has no terms", path, node.Op)
		}
		for i, t := range node.Terms {
			v.node(fmt.Sprintf("%s.terms[%d]", path, i), t)
		}
	case Composite:
		for i, child := range node.Operands() {
			v.node(fmt.Sprintf("%s.operands[%d]", path, i), child)
		}
	default:
		// Extension without children - constructors are responsible for it
	}
}

// IsNil reports whether n is nil or a typed nil pointer.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	rv := reflect.ValueOf(n)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
