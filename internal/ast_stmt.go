package internal

// Text is literal template text.
type Text struct {
	Located
	Text string
}

func (n *Text) Kind() string     { return "text" }
func (n *Text) Children() []Node { return nil }

func (n *Text) exec(c *Context) (Stop, Value, error) {
	return NoStop, nil, c.Write(n.Text)
}

// Indent is the indentation at the start of a line. It writes the
// indentation of every enclosing render before its own text.
type Indent struct {
	Located
	Text string
}

func (n *Indent) Kind() string     { return "indent" }
func (n *Indent) Children() []Node { return nil }

func (n *Indent) exec(c *Context) (Stop, Value, error) {
	return NoStop, nil, c.Write(c.Indentation() + n.Text)
}

// LineEnd is a line terminator.
type LineEnd struct {
	Located
	Text string
}

func (n *LineEnd) Kind() string     { return "lineend" }
func (n *LineEnd) Children() []Node { return nil }

func (n *LineEnd) exec(c *Context) (Stop, Value, error) {
	return NoStop, nil, c.Write(n.Text)
}

// Print writes the string form of a value. If Escape is set, the output is
// escaped with the context's XEscape.
type Print struct {
	Located
	X      Expr
	Escape bool
}

func (n *Print) Kind() string {
	if n.Escape {
		return "printx"
	}
	return "print"
}

func (n *Print) Children() []Node { return []Node{n.X} }

func (n *Print) exec(c *Context) (Stop, Value, error) {
	v, err := Evaluate(c, n.X)
	if err != nil {
		return NoStop, nil, err
	}
	s, err := Str(v)
	if err != nil {
		return NoStop, nil, err
	}
	if n.Escape && c.XEscape != nil {
		s = c.XEscape(s)
	}
	return NoStop, nil, c.Write(s)
}

// ExprStmt evaluates an expression for its effects.
type ExprStmt struct {
	Located
	X Expr
}

func (n *ExprStmt) Kind() string     { return "expr" }
func (n *ExprStmt) Children() []Node { return []Node{n.X} }

func (n *ExprStmt) exec(c *Context) (Stop, Value, error) {
	_, err := Evaluate(c, n.X)
	return NoStop, nil, err
}

// SetVar assigns a value to a target, unpacking it if the target is a Tuple.
type SetVar struct {
	Located
	Target LValue
	Value  Expr
}

func (n *SetVar) Kind() string     { return "setvar" }
func (n *SetVar) Children() []Node { return []Node{n.Target, n.Value} }

func (n *SetVar) exec(c *Context) (Stop, Value, error) {
	v, err := Evaluate(c, n.Value)
	if err != nil {
		return NoStop, nil, err
	}
	return NoStop, nil, assignTo(c, n.Target, v, false)
}

// AugAssign is an augmented assignment such as x += 1.
type AugAssign struct {
	Located
	Op     string
	Target Updater
	Value  Expr
}

func (n *AugAssign) Kind() string { return kindOf(binaryKinds, n.Op, "aug") + "var" }

func (n *AugAssign) Children() []Node { return []Node{n.Target, n.Value} }

func (n *AugAssign) exec(c *Context) (Stop, Value, error) {
	v, err := Evaluate(c, n.Value)
	if err != nil {
		return NoStop, nil, err
	}
	if err := c.tick(n.Target); err != nil {
		return NoStop, nil, c.decorate(n.Target, err)
	}
	return NoStop, nil, n.Target.update(c, n.Op, v)
}

// Break ends the innermost loop.
type Break struct{ Located }

func (n *Break) Kind() string     { return "break" }
func (n *Break) Children() []Node { return nil }

func (n *Break) exec(c *Context) (Stop, Value, error) {
	c.stopAt = n
	return BreakStop, nil, nil
}

// Continue ends the current iteration of the innermost loop.
type Continue struct{ Located }

func (n *Continue) Kind() string     { return "continue" }
func (n *Continue) Children() []Node { return nil }

func (n *Continue) exec(c *Context) (Stop, Value, error) {
	c.stopAt = n
	return ContinueStop, nil, nil
}

// Return ends the innermost template call with a value.
type Return struct {
	Located
	X Expr
}

func (n *Return) Kind() string { return "return" }

func (n *Return) Children() []Node {
	if n.X == nil {
		return nil
	}
	return []Node{n.X}
}

func (n *Return) exec(c *Context) (Stop, Value, error) {
	var v Value
	if n.X != nil {
		var err error
		v, err = Evaluate(c, n.X)
		if err != nil {
			return NoStop, nil, err
		}
	}
	c.stopAt = n
	return ReturnStop, v, nil
}

// Branch is one if or elif block of a conditional chain.
type Branch struct {
	Located
	Cond Expr
	Body []Stmt
}

func (n *Branch) Kind() string { return "branch" }

func (n *Branch) Children() []Node {
	return append([]Node{n.Cond}, stmtNodes(n.Body)...)
}

// If is an if/elif/else chain. The first branch whose condition is true
// runs; if none is, Else runs.
type If struct {
	Located
	Branches []*Branch
	Else     []Stmt
}

func (n *If) Kind() string { return "ieie" }

func (n *If) Children() []Node {
	r := make([]Node, 0, len(n.Branches)+len(n.Else))
	for _, b := range n.Branches {
		r = append(r, b)
	}
	return append(r, stmtNodes(n.Else)...)
}

func (n *If) exec(c *Context) (Stop, Value, error) {
	for _, b := range n.Branches {
		if err := c.tick(b); err != nil {
			return NoStop, nil, c.decorate(b, err)
		}
		v, err := Evaluate(c, b.Cond)
		if err != nil {
			return NoStop, nil, err
		}
		t, err := Truth(v)
		if err != nil {
			return NoStop, nil, c.decorate(b, err)
		}
		if t {
			return execBlock(c, b.Body)
		}
	}
	return execBlock(c, n.Else)
}

func stmtNodes(ss []Stmt) []Node {
	r := make([]Node, len(ss))
	for i, s := range ss {
		r[i] = s
	}
	return r
}
