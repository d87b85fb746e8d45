package internal

// For runs its body once for each item of an iterable. The loop variables
// live in a scope of their own.
type For struct {
	Located
	Target LValue
	Iter   Expr
	Body   []Stmt
}

func (n *For) Kind() string { return "for" }

func (n *For) Children() []Node {
	return append([]Node{n.Target, n.Iter}, stmtNodes(n.Body)...)
}

func (n *For) exec(c *Context) (Stop, Value, error) {
	seq, err := Evaluate(c, n.Iter)
	if err != nil {
		return NoStop, nil, err
	}
	it, err := Iterate(c, seq)
	if err != nil {
		return NoStop, nil, err
	}
	defer c.pushScope()()
	for {
		v, ok, err := it.Next()
		if err != nil {
			return NoStop, nil, err
		}
		if !ok {
			return NoStop, nil, nil
		}
		if err := assignTo(c, n.Target, v, true); err != nil {
			return NoStop, nil, err
		}
		more, s, r, err := loopBody(c, n.Body)
		if !more {
			return s, r, err
		}
	}
}

// While runs its body as long as its condition is true.
type While struct {
	Located
	Cond Expr
	Body []Stmt
}

func (n *While) Kind() string { return "while" }

func (n *While) Children() []Node {
	return append([]Node{n.Cond}, stmtNodes(n.Body)...)
}

func (n *While) exec(c *Context) (Stop, Value, error) {
	defer c.pushScope()()
	for {
		v, err := Evaluate(c, n.Cond)
		if err != nil {
			return NoStop, nil, err
		}
		t, err := Truth(v)
		if err != nil {
			return NoStop, nil, err
		}
		if !t {
			return NoStop, nil, nil
		}
		more, s, r, err := loopBody(c, n.Body)
		if !more {
			return s, r, err
		}
	}
}
