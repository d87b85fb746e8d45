package internal

// Const is a literal value.
type Const struct {
	Located
	Value Value
}

func (n *Const) Kind() string     { return "const" }
func (n *Const) Children() []Node { return nil }

func (n *Const) eval(c *Context) (Value, error) {
	return n.Value, nil
}

// Var is a variable reference. A variable that is not defined evaluates to
// an undefined sentinel.
type Var struct {
	Located
	Name string
}

func (n *Var) Kind() string     { return "var" }
func (n *Var) Children() []Node { return nil }

func (n *Var) eval(c *Context) (Value, error) {
	return c.Lookup(n.Name), nil
}

// Unpack is a *x item in a list or set literal, or a *x argument in a call.
type Unpack struct {
	Located
	X Expr
}

func (n *Unpack) Kind() string     { return "unpack" }
func (n *Unpack) Children() []Node { return []Node{n.X} }

func (n *Unpack) eval(c *Context) (Value, error) {
	return nil, &StructureError{Kind: n.Kind(), Msg: "*unpacking outside of a literal or call"}
}

// seqItems evaluates the items of a list or set literal, expanding unpacked
// items.
func seqItems(c *Context, items []Expr) ([]Value, error) {
	r := make([]Value, 0, len(items))
	for _, e := range items {
		if u, ok := e.(*Unpack); ok {
			if err := c.tick(u); err != nil {
				return nil, c.decorate(u, err)
			}
			v, err := Evaluate(c, u.X)
			if err != nil {
				return nil, err
			}
			all, err := Collect(c, v)
			if err != nil {
				return nil, c.decorate(u, err)
			}
			r = append(r, all...)
			continue
		}
		v, err := Evaluate(c, e)
		if err != nil {
			return nil, err
		}
		r = append(r, v)
	}
	return r, nil
}

func exprNodes(es []Expr) []Node {
	r := make([]Node, len(es))
	for i, e := range es {
		r[i] = e
	}
	return r
}

// ListLit is a list literal.
type ListLit struct {
	Located
	Items []Expr
}

func (n *ListLit) Kind() string     { return "list" }
func (n *ListLit) Children() []Node { return exprNodes(n.Items) }

func (n *ListLit) eval(c *Context) (Value, error) {
	items, err := seqItems(c, n.Items)
	if err != nil {
		return nil, err
	}
	return NewList(items...), nil
}

// SetLit is a set literal.
type SetLit struct {
	Located
	Items []Expr
}

func (n *SetLit) Kind() string     { return "set" }
func (n *SetLit) Children() []Node { return exprNodes(n.Items) }

func (n *SetLit) eval(c *Context) (Value, error) {
	items, err := seqItems(c, n.Items)
	if err != nil {
		return nil, err
	}
	return NewSet(items...)
}

// DictEntry is one item of a dict literal: either a key and value, or a
// **x expansion.
type DictEntry interface {
	Node
	dictEntry()
}

// DictItem is a key: value item of a dict literal.
type DictItem struct {
	Located
	Key, Value Expr
}

func (n *DictItem) Kind() string     { return "dictitem" }
func (n *DictItem) Children() []Node { return []Node{n.Key, n.Value} }
func (n *DictItem) dictEntry()       {}

// DictUnpack is a **x item in a dict literal, or a **x argument in a call.
type DictUnpack struct {
	Located
	X Expr
}

func (n *DictUnpack) Kind() string     { return "dictunpack" }
func (n *DictUnpack) Children() []Node { return []Node{n.X} }
func (n *DictUnpack) dictEntry()       {}

// DictLit is a dict literal.
type DictLit struct {
	Located
	Items []DictEntry
}

func (n *DictLit) Kind() string { return "dict" }

func (n *DictLit) Children() []Node {
	r := make([]Node, len(n.Items))
	for i, e := range n.Items {
		r[i] = e
	}
	return r
}

func (n *DictLit) eval(c *Context) (Value, error) {
	d := NewDict()
	for _, e := range n.Items {
		if err := c.tick(e); err != nil {
			return nil, c.decorate(e, err)
		}
		switch e := e.(type) {
		case *DictItem:
			k, err := Evaluate(c, e.Key)
			if err != nil {
				return nil, err
			}
			v, err := Evaluate(c, e.Value)
			if err != nil {
				return nil, err
			}
			if err := d.Set(k, v); err != nil {
				return nil, c.decorate(e, err)
			}
		case *DictUnpack:
			v, err := Evaluate(c, e.X)
			if err != nil {
				return nil, err
			}
			if err := defined(v); err != nil {
				return nil, c.decorate(e, err)
			}
			if err := updateDict(c, d, v); err != nil {
				return nil, c.decorate(e, err)
			}
		}
	}
	return d, nil
}

// Attr is attribute access obj.name.
type Attr struct {
	Located
	Obj  Expr
	Name string
}

func (n *Attr) Kind() string     { return "attr" }
func (n *Attr) Children() []Node { return []Node{n.Obj} }

func (n *Attr) eval(c *Context) (Value, error) {
	obj, err := Evaluate(c, n.Obj)
	if err != nil {
		return nil, err
	}
	return GetAttr(c, obj, n.Name)
}

// Item is item access obj[key]. If Key is a SliceExpr, it is a slice.
type Item struct {
	Located
	Obj, Key Expr
}

func (n *Item) Kind() string     { return "item" }
func (n *Item) Children() []Node { return []Node{n.Obj, n.Key} }

func (n *Item) eval(c *Context) (Value, error) {
	obj, err := Evaluate(c, n.Obj)
	if err != nil {
		return nil, err
	}
	key, err := Evaluate(c, n.Key)
	if err != nil {
		return nil, err
	}
	return GetItem(c, obj, key)
}

// SliceExpr is the start:stop:step part of a slice. Any part may be nil.
type SliceExpr struct {
	Located
	Start, Stop, Step Expr
}

func (n *SliceExpr) Kind() string { return "slice" }

func (n *SliceExpr) Children() []Node {
	var r []Node
	for _, e := range []Expr{n.Start, n.Stop, n.Step} {
		if e != nil {
			r = append(r, e)
		}
	}
	return r
}

func (n *SliceExpr) eval(c *Context) (Value, error) {
	var parts [3]Value
	for i, e := range []Expr{n.Start, n.Stop, n.Step} {
		if e == nil {
			continue
		}
		v, err := Evaluate(c, e)
		if err != nil {
			return nil, err
		}
		if err := defined(v); err != nil {
			return nil, err
		}
		parts[i] = v
	}
	return Slice{Start: parts[0], Stop: parts[1], Step: parts[2]}, nil
}

// IfExpr is the conditional expression Then if Cond else Else.
type IfExpr struct {
	Located
	Then, Cond, Else Expr
}

func (n *IfExpr) Kind() string     { return "if" }
func (n *IfExpr) Children() []Node { return []Node{n.Then, n.Cond, n.Else} }

func (n *IfExpr) eval(c *Context) (Value, error) {
	cond, err := Evaluate(c, n.Cond)
	if err != nil {
		return nil, err
	}
	t, err := Truth(cond)
	if err != nil {
		return nil, err
	}
	if t {
		return Evaluate(c, n.Then)
	}
	return Evaluate(c, n.Else)
}

// And is short-circuit conjunction. It returns the first falsy operand, or
// the last operand.
type And struct {
	Located
	L, R Expr
}

func (n *And) Kind() string     { return "and" }
func (n *And) Children() []Node { return []Node{n.L, n.R} }

func (n *And) eval(c *Context) (Value, error) {
	l, err := Evaluate(c, n.L)
	if err != nil {
		return nil, err
	}
	t, err := Truth(l)
	if err != nil || !t {
		return l, err
	}
	return Evaluate(c, n.R)
}

// Or is short-circuit disjunction. It returns the first truthy operand, or
// the last operand.
type Or struct {
	Located
	L, R Expr
}

func (n *Or) Kind() string     { return "or" }
func (n *Or) Children() []Node { return []Node{n.L, n.R} }

func (n *Or) eval(c *Context) (Value, error) {
	l, err := Evaluate(c, n.L)
	if err != nil {
		return nil, err
	}
	t, err := Truth(l)
	if err != nil || t {
		return l, err
	}
	return Evaluate(c, n.R)
}
