package internal

// KeywordArg is a name=value argument in a call.
type KeywordArg struct {
	Located
	Name string
	X    Expr
}

func (n *KeywordArg) Kind() string     { return "keywordarg" }
func (n *KeywordArg) Children() []Node { return []Node{n.X} }

// Call is a call expression. Each argument is a positional Expr, an *Unpack
// for *args, a *KeywordArg, or a *DictUnpack for **kwargs.
type Call struct {
	Located
	Fn   Expr
	Args []Node
}

func (n *Call) Kind() string { return "call" }

func (n *Call) Children() []Node {
	return append([]Node{n.Fn}, n.Args...)
}

func (n *Call) eval(c *Context) (Value, error) {
	fn, err := Evaluate(c, n.Fn)
	if err != nil {
		return nil, err
	}
	args, kwargs, err := evalArgs(c, n.Fn, n.Args)
	if err != nil {
		return nil, err
	}
	c.site = n
	r, err := CallValue(c, fn, args, kwargs)
	c.site = nil
	return r, err
}

// evalArgs evaluates call arguments, expanding *args and **kwargs.
func evalArgs(c *Context, fn Expr, args []Node) ([]Value, []Keyword, error) {
	var pos []Value
	var kw []Keyword
	for _, a := range args {
		switch a := a.(type) {
		case *Unpack:
			if err := c.tick(a); err != nil {
				return nil, nil, c.decorate(a, err)
			}
			v, err := Evaluate(c, a.X)
			if err != nil {
				return nil, nil, err
			}
			if err := defined(v); err != nil {
				return nil, nil, c.decorate(a, err)
			}
			it, err := Iterate(c, v)
			if err != nil {
				if _, ok := err.(*TypeMismatchError); ok {
					err = &ArgumentError{Kind: RemainingArguments, Callable: callName(fn)}
				}
				return nil, nil, c.decorate(a, err)
			}
			items, err := drain(it)
			if err != nil {
				return nil, nil, c.decorate(a, err)
			}
			pos = append(pos, items...)
		case *KeywordArg:
			if err := c.tick(a); err != nil {
				return nil, nil, c.decorate(a, err)
			}
			v, err := Evaluate(c, a.X)
			if err != nil {
				return nil, nil, err
			}
			kw = append(kw, Keyword{Name: a.Name, Value: v})
		case *DictUnpack:
			if err := c.tick(a); err != nil {
				return nil, nil, c.decorate(a, err)
			}
			v, err := Evaluate(c, a.X)
			if err != nil {
				return nil, nil, err
			}
			if err := defined(v); err != nil {
				return nil, nil, c.decorate(a, err)
			}
			d, ok := v.(*Dict)
			if !ok {
				return nil, nil, c.decorate(a, &ArgumentError{Kind: RemainingKeywordArguments, Callable: callName(fn)})
			}
			var bad bool
			d.Range(func(k, v Value) bool {
				name, ok := k.(string)
				if !ok {
					bad = true
					return false
				}
				kw = append(kw, Keyword{Name: name, Value: v})
				return true
			})
			if bad {
				return nil, nil, c.decorate(a, &ArgumentError{Kind: RemainingKeywordArguments, Callable: callName(fn)})
			}
		case Expr:
			v, err := Evaluate(c, a)
			if err != nil {
				return nil, nil, err
			}
			pos = append(pos, v)
		default:
			return nil, nil, &StructureError{Kind: a.Kind(), Msg: "invalid call argument"}
		}
	}
	return pos, kw, nil
}

// callName is the name used in argument errors raised before the callee is
// known to be callable.
func callName(fn Expr) string {
	switch fn := fn.(type) {
	case *Var:
		return fn.Name
	case *Attr:
		return fn.Name
	}
	return ""
}
