package internal

import (
	"fmt"
	"reflect"

	"github.com/zephyrtronium/contains"
)

// Pos is the span of a node in its template's source, in characters.
type Pos struct {
	Start, Stop int
}

// LineCol returns the 1-based line and column of the start of p in src.
func (p Pos) LineCol(src string) (line, col int) {
	line, col = 1, 1
	i := 0
	for _, r := range src {
		if i >= p.Start {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		i++
	}
	return line, col
}

// Text returns the source text p spans.
func (p Pos) Text(src string) string {
	r := []rune(src)
	if p.Start < 0 || p.Stop > len(r) || p.Start > p.Stop {
		return ""
	}
	return string(r[p.Start:p.Stop])
}

// Located records a node's source span. Nodes embed it.
type Located struct {
	At Pos
}

// Pos returns the node's span.
func (l *Located) Pos() Pos {
	return l.At
}

// SetPos sets the node's span.
func (l *Located) SetPos(p Pos) {
	l.At = p
}

// Node is an element of a template's syntax tree. Nodes are immutable once
// a template is executed.
type Node interface {
	// Pos returns the node's source span.
	Pos() Pos
	// SetPos sets the node's source span.
	SetPos(p Pos)
	// Kind returns the node's kind tag, one of NodeKinds.
	Kind() string
	// Children returns the node's direct children in evaluation order.
	Children() []Node
}

// Expr is a node that produces a value.
type Expr interface {
	Node
	eval(c *Context) (Value, error)
}

// Stmt is a node that is executed for its effects.
type Stmt interface {
	Node
	exec(c *Context) (Stop, Value, error)
}

// Evaluate evaluates an expression.
func Evaluate(c *Context, e Expr) (Value, error) {
	if err := c.tick(e); err != nil {
		return nil, c.decorate(e, err)
	}
	v, err := e.eval(c)
	if err != nil {
		return nil, c.decorate(e, err)
	}
	return v, nil
}

// Execute executes a statement. Stops are returned, never decorated.
func Execute(c *Context, s Stmt) (Stop, Value, error) {
	if err := c.tick(s); err != nil {
		return NoStop, nil, c.decorate(s, err)
	}
	stop, v, err := s.exec(c)
	if err != nil {
		return NoStop, nil, c.decorate(s, err)
	}
	return stop, v, nil
}

// NodeKinds lists every node kind tag.
var NodeKinds = []string{
	"const", "var", "list", "set", "dict", "dictitem", "unpack", "dictunpack",
	"listcomp", "setcomp", "dictcomp", "genexpr",
	"attr", "item", "slice",
	"not", "neg", "pos", "bitnot",
	"add", "sub", "mul", "truediv", "floordiv", "mod",
	"shiftleft", "shiftright", "bitand", "bitor", "bitxor",
	"eq", "ne", "lt", "le", "gt", "ge", "contains", "notcontains", "is", "isnot",
	"and", "or", "if", "call", "keywordarg",
	"tuple",
	"text", "indent", "lineend", "print", "printx", "expr",
	"setvar", "addvar", "subvar", "mulvar", "truedivvar", "floordivvar", "modvar",
	"shiftleftvar", "shiftrightvar", "bitandvar", "bitorvar", "bitxorvar",
	"for", "while", "break", "continue", "return", "ieie", "branch",
	"template", "param", "render", "renderx", "renderblock", "renderblocks",
	"render_or_print", "render_or_printx", "renderx_or_print", "renderx_or_printx",
}

// Walk calls f for each node in the tree rooted at n in depth-first
// pre-order. If f returns false, the children of that node are skipped.
func Walk(n Node, f func(Node) bool) {
	if n == nil || isNilNode(n) {
		return
	}
	if !f(n) {
		return
	}
	for _, ch := range n.Children() {
		Walk(ch, f)
	}
}

func isNilNode(n Node) bool {
	r := reflect.ValueOf(n)
	return r.Kind() == reflect.Ptr && r.IsNil()
}

// Validate checks that the tree rooted at n is a tree: no node appears twice
// and no child is missing. Loop control placement is checked at run time.
func Validate(n Node) error {
	var seen contains.Set
	var err error
	var walk func(n Node, path string)
	walk = func(n Node, path string) {
		if err != nil {
			return
		}
		id := reflect.ValueOf(n).Pointer()
		if !seen.Add(id) {
			err = &StructureError{Kind: n.Kind(), Msg: fmt.Sprintf("node at %s appears more than once in the tree", path)}
			return
		}
		if t, ok := n.(*Template); ok {
			if e := t.checkSignature(); e != nil {
				err = e
				return
			}
		}
		for i, ch := range n.Children() {
			if ch == nil || isNilNode(ch) {
				err = &StructureError{Kind: n.Kind(), Msg: fmt.Sprintf("child %d of %s is missing", i, path)}
				return
			}
			walk(ch, fmt.Sprintf("%s/%d:%s", path, i, ch.Kind()))
		}
	}
	if n == nil || isNilNode(n) {
		return &StructureError{Msg: "missing root node"}
	}
	walk(n, n.Kind())
	return err
}
