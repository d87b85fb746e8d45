package internal

// LValue is an assignment target: a variable, an attribute, an item, or a
// tuple of targets for unpacking.
type LValue interface {
	Node
	// assign stores v in the target. If define is set, variables are created
	// in the innermost scope instead of updating outer bindings.
	assign(c *Context, v Value, define bool) error
}

// Updater is an LValue that supports augmented assignment.
type Updater interface {
	LValue
	// update applies op to the current value and v, evaluating the target's
	// operands once.
	update(c *Context, op string, v Value) error
}

func (n *Var) assign(c *Context, v Value, define bool) error {
	if define {
		c.scope.Define(n.Name, v)
	} else {
		c.scope.Set(n.Name, v)
	}
	return nil
}

func (n *Var) update(c *Context, op string, v Value) error {
	old := c.Lookup(n.Name)
	r, err := BinaryOp(op, old, v)
	if err != nil {
		return err
	}
	c.scope.Set(n.Name, r)
	return nil
}

func (n *Attr) assign(c *Context, v Value, define bool) error {
	obj, err := Evaluate(c, n.Obj)
	if err != nil {
		return err
	}
	return SetAttr(c, obj, n.Name, v)
}

func (n *Attr) update(c *Context, op string, v Value) error {
	obj, err := Evaluate(c, n.Obj)
	if err != nil {
		return err
	}
	old, err := GetAttr(c, obj, n.Name)
	if err != nil {
		return err
	}
	r, err := BinaryOp(op, old, v)
	if err != nil {
		return err
	}
	return SetAttr(c, obj, n.Name, r)
}

func (n *Item) assign(c *Context, v Value, define bool) error {
	obj, err := Evaluate(c, n.Obj)
	if err != nil {
		return err
	}
	key, err := Evaluate(c, n.Key)
	if err != nil {
		return err
	}
	return SetItem(c, obj, key, v)
}

func (n *Item) update(c *Context, op string, v Value) error {
	obj, err := Evaluate(c, n.Obj)
	if err != nil {
		return err
	}
	key, err := Evaluate(c, n.Key)
	if err != nil {
		return err
	}
	old, err := GetItem(c, obj, key)
	if err != nil {
		return err
	}
	r, err := BinaryOp(op, old, v)
	if err != nil {
		return err
	}
	return SetItem(c, obj, key, r)
}

// Tuple is a parenthesized group of targets that unpacks an iterable.
type Tuple struct {
	Located
	Items []LValue
}

func (n *Tuple) Kind() string { return "tuple" }

func (n *Tuple) Children() []Node {
	r := make([]Node, len(n.Items))
	for i, t := range n.Items {
		r[i] = t
	}
	return r
}

// assign unpacks v into the targets. Iteration stops one item past the
// number of targets, so long or infinite iterables are detected without being
// consumed.
func (n *Tuple) assign(c *Context, v Value, define bool) error {
	it, err := Iterate(c, v)
	if err != nil {
		return err
	}
	items := make([]Value, 0, len(n.Items))
	for {
		x, ok, err := it.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if len(items) == len(n.Items) {
			return &UnpackError{Targets: len(n.Items), Items: len(items) + 1, More: true}
		}
		items = append(items, x)
	}
	if len(items) != len(n.Items) {
		return &UnpackError{Targets: len(n.Items), Items: len(items)}
	}
	for i, t := range n.Items {
		if err := assignTo(c, t, items[i], define); err != nil {
			return err
		}
	}
	return nil
}

// assignTo assigns to one target, locating errors at it.
func assignTo(c *Context, t LValue, v Value, define bool) error {
	if err := c.tick(t); err != nil {
		return c.decorate(t, err)
	}
	if err := t.assign(c, v, define); err != nil {
		return c.decorate(t, err)
	}
	return nil
}
