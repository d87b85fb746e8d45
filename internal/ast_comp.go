package internal

// comprehension is the for/if part shared by comprehensions and generator
// expressions.
type comprehension struct {
	Target LValue
	Iter   Expr
	// Cond filters items. It may be nil.
	Cond Expr
}

func (q *comprehension) children(items ...Node) []Node {
	r := append(items, q.Target, q.Iter)
	if q.Cond != nil {
		r = append(r, q.Cond)
	}
	return r
}

// run evaluates the iterable in the current scope, then calls f for each
// item that passes the filter, in a scope of its own.
func (q *comprehension) run(c *Context, f func() error) error {
	seq, err := Evaluate(c, q.Iter)
	if err != nil {
		return err
	}
	it, err := Iterate(c, seq)
	if err != nil {
		return err
	}
	defer c.pushScope()()
	for {
		v, ok, err := it.Next()
		if err != nil || !ok {
			return err
		}
		ok, err = q.accept(c, v)
		if err != nil {
			return err
		}
		if ok {
			if err := f(); err != nil {
				return err
			}
		}
	}
}

// accept binds the loop variables to v and evaluates the filter.
func (q *comprehension) accept(c *Context, v Value) (bool, error) {
	if err := assignTo(c, q.Target, v, true); err != nil {
		return false, err
	}
	if q.Cond == nil {
		return true, nil
	}
	cv, err := Evaluate(c, q.Cond)
	if err != nil {
		return false, err
	}
	return Truth(cv)
}

// ListComp is a list comprehension [Item for Target in Iter if Cond].
type ListComp struct {
	Located
	comprehension
	Item Expr
}

// NewListComp creates a list comprehension.
func NewListComp(item Expr, target LValue, iter, cond Expr) *ListComp {
	return &ListComp{Item: item, comprehension: comprehension{Target: target, Iter: iter, Cond: cond}}
}

func (n *ListComp) Kind() string     { return "listcomp" }
func (n *ListComp) Children() []Node { return n.children(n.Item) }

func (n *ListComp) eval(c *Context) (Value, error) {
	var r []Value
	err := n.run(c, func() error {
		v, err := Evaluate(c, n.Item)
		r = append(r, v)
		return err
	})
	if err != nil {
		return nil, err
	}
	return NewList(r...), nil
}

// SetComp is a set comprehension {Item for Target in Iter if Cond}.
type SetComp struct {
	Located
	comprehension
	Item Expr
}

// NewSetComp creates a set comprehension.
func NewSetComp(item Expr, target LValue, iter, cond Expr) *SetComp {
	return &SetComp{Item: item, comprehension: comprehension{Target: target, Iter: iter, Cond: cond}}
}

func (n *SetComp) Kind() string     { return "setcomp" }
func (n *SetComp) Children() []Node { return n.children(n.Item) }

func (n *SetComp) eval(c *Context) (Value, error) {
	s, _ := NewSet()
	err := n.run(c, func() error {
		v, err := Evaluate(c, n.Item)
		if err != nil {
			return err
		}
		return s.Add(v)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// DictComp is a dict comprehension {Key: Value for Target in Iter if Cond}.
type DictComp struct {
	Located
	comprehension
	Key, Value Expr
}

// NewDictComp creates a dict comprehension.
func NewDictComp(key, value Expr, target LValue, iter, cond Expr) *DictComp {
	return &DictComp{Key: key, Value: value, comprehension: comprehension{Target: target, Iter: iter, Cond: cond}}
}

func (n *DictComp) Kind() string     { return "dictcomp" }
func (n *DictComp) Children() []Node { return n.children(n.Key, n.Value) }

func (n *DictComp) eval(c *Context) (Value, error) {
	d := NewDict()
	err := n.run(c, func() error {
		k, err := Evaluate(c, n.Key)
		if err != nil {
			return err
		}
		v, err := Evaluate(c, n.Value)
		if err != nil {
			return err
		}
		return d.Set(k, v)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// GenExpr is a generator expression (Item for Target in Iter if Cond).
type GenExpr struct {
	Located
	comprehension
	Item Expr
}

// NewGenExpr creates a generator expression.
func NewGenExpr(item Expr, target LValue, iter, cond Expr) *GenExpr {
	return &GenExpr{Item: item, comprehension: comprehension{Target: target, Iter: iter, Cond: cond}}
}

func (n *GenExpr) Kind() string     { return "genexpr" }
func (n *GenExpr) Children() []Node { return n.children(n.Item) }

// eval evaluates the iterable immediately and everything else lazily.
func (n *GenExpr) eval(c *Context) (Value, error) {
	seq, err := Evaluate(c, n.Iter)
	if err != nil {
		return nil, err
	}
	it, err := Iterate(c, seq)
	if err != nil {
		return nil, err
	}
	return &Generator{c: c, n: n, it: it, scope: c.scope.block()}, nil
}

// Generator is the lazy sequence produced by a generator expression. It can
// be iterated once.
type Generator struct {
	c     *Context
	n     *GenExpr
	it    Iterator
	scope *Scope
	done  bool
}

// Next produces the next item, evaluating the generator's expressions in its
// own scope.
func (g *Generator) Next() (Value, bool, error) {
	if g.done {
		return nil, false, nil
	}
	c := g.c
	defer c.swapScope(g.scope)()
	for {
		v, ok, err := g.it.Next()
		if err != nil || !ok {
			g.done = true
			return nil, false, err
		}
		ok, err = g.n.accept(c, v)
		if err != nil {
			g.done = true
			return nil, false, err
		}
		if !ok {
			continue
		}
		r, err := Evaluate(c, g.n.Item)
		if err != nil {
			g.done = true
			return nil, false, err
		}
		return r, true, nil
	}
}
