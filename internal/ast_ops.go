package internal

import "fmt"

// binaryKinds maps binary operator symbols to node kinds.
var binaryKinds = map[string]string{
	"+": "add", "-": "sub", "*": "mul", "/": "truediv", "//": "floordiv", "%": "mod",
	"<<": "shiftleft", ">>": "shiftright", "&": "bitand", "|": "bitor", "^": "bitxor",
}

// compareKinds maps comparison operators to node kinds.
var compareKinds = map[string]string{
	"==": "eq", "!=": "ne", "<": "lt", "<=": "le", ">": "gt", ">=": "ge",
	"in": "contains", "not in": "notcontains", "is": "is", "is not": "isnot",
}

var unaryKinds = map[string]string{
	"not": "not", "-": "neg", "+": "pos", "~": "bitnot",
}

// OpForKind returns the operator symbol for a unary, binary, or comparison
// node kind.
func OpForKind(kind string) (string, bool) {
	for _, m := range [...]map[string]string{binaryKinds, compareKinds, unaryKinds} {
		for op, k := range m {
			if k == kind {
				return op, true
			}
		}
	}
	return "", false
}

// Unary is a prefix operator applied to one operand.
type Unary struct {
	Located
	Op string
	X  Expr
}

func (n *Unary) Kind() string { return kindOf(unaryKinds, n.Op, "unary") }

func (n *Unary) Children() []Node { return []Node{n.X} }

func (n *Unary) eval(c *Context) (Value, error) {
	v, err := Evaluate(c, n.X)
	if err != nil {
		return nil, err
	}
	return UnaryOp(n.Op, v)
}

// Binary is an arithmetic or bitwise operator.
type Binary struct {
	Located
	Op   string
	L, R Expr
}

func (n *Binary) Kind() string { return kindOf(binaryKinds, n.Op, "binary") }

func (n *Binary) Children() []Node { return []Node{n.L, n.R} }

func (n *Binary) eval(c *Context) (Value, error) {
	l, err := Evaluate(c, n.L)
	if err != nil {
		return nil, err
	}
	r, err := Evaluate(c, n.R)
	if err != nil {
		return nil, err
	}
	return BinaryOp(n.Op, l, r)
}

// Comparison is a comparison, containment, or identity test.
type Comparison struct {
	Located
	Op   string
	L, R Expr
}

func (n *Comparison) Kind() string { return kindOf(compareKinds, n.Op, "compare") }

func (n *Comparison) Children() []Node { return []Node{n.L, n.R} }

func (n *Comparison) eval(c *Context) (Value, error) {
	l, err := Evaluate(c, n.L)
	if err != nil {
		return nil, err
	}
	r, err := Evaluate(c, n.R)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "in", "not in":
		ok, err := Contains(c, l, r)
		return ok == (n.Op == "in"), err
	case "is", "is not":
		// Identity inspects values without using them, so undefined
		// sentinels are allowed.
		return Identical(l, r) == (n.Op == "is"), nil
	}
	return Compare(n.Op, l, r)
}

func kindOf(m map[string]string, op, what string) string {
	if k, ok := m[op]; ok {
		return k
	}
	return fmt.Sprintf("%s(%s)", what, op)
}
