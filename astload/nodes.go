package astload

import (
	"strings"

	"github.com/zephyrtronium/ul4/internal"
)

var unaryKinds = map[string]bool{"not": true, "neg": true, "pos": true, "bitnot": true}

var binaryKinds = map[string]bool{
	"add": true, "sub": true, "mul": true, "truediv": true, "floordiv": true, "mod": true,
	"shiftleft": true, "shiftright": true, "bitand": true, "bitor": true, "bitxor": true,
}

var compareKinds = map[string]bool{
	"eq": true, "ne": true, "lt": true, "le": true, "gt": true, "ge": true,
	"contains": true, "notcontains": true, "is": true, "isnot": true,
}

// build creates the node of the given kind. The node's own span has already
// been reserved, so operands are numbered after it.
func (l *loader) build(kind string, args []interface{}) (internal.Node, error) {
	switch {
	case unaryKinds[kind]:
		if err := arity(kind, args, 1, 1); err != nil {
			return nil, err
		}
		op, _ := internal.OpForKind(kind)
		x, err := l.expr(args[0])
		if err != nil {
			return nil, err
		}
		return &internal.Unary{Op: op, X: x}, nil
	case binaryKinds[kind], compareKinds[kind]:
		if err := arity(kind, args, 2, 2); err != nil {
			return nil, err
		}
		op, _ := internal.OpForKind(kind)
		lhs, rhs, err := l.pair(args)
		if err != nil {
			return nil, err
		}
		if compareKinds[kind] {
			return &internal.Comparison{Op: op, L: lhs, R: rhs}, nil
		}
		return &internal.Binary{Op: op, L: lhs, R: rhs}, nil
	case kind != "setvar" && strings.HasSuffix(kind, "var") && binaryKinds[strings.TrimSuffix(kind, "var")]:
		return l.augAssign(kind, args)
	case strings.HasPrefix(kind, "render") && kind != "renderblock" && kind != "renderblocks":
		return l.render(kind, args)
	}
	switch kind {
	case "const":
		if err := arity(kind, args, 1, 2); err != nil {
			return nil, err
		}
		var v internal.Value
		var err error
		if len(args) == 1 {
			v, err = scalar(args[0])
		} else {
			typ, ok1 := args[0].(string)
			text, ok2 := args[1].(string)
			if !ok1 || !ok2 {
				return nil, fail(kind, "typed constant must be [const, type, text]")
			}
			v, err = typed(typ, text)
		}
		if err != nil {
			return nil, err
		}
		return &internal.Const{Value: v}, nil
	case "var":
		if err := arity(kind, args, 1, 1); err != nil {
			return nil, err
		}
		s, err := name(kind, args[0])
		if err != nil {
			return nil, err
		}
		return &internal.Var{Name: s}, nil
	case "list", "set":
		items, err := l.exprs(args)
		if err != nil {
			return nil, err
		}
		if kind == "list" {
			return &internal.ListLit{Items: items}, nil
		}
		return &internal.SetLit{Items: items}, nil
	case "dict":
		items := make([]internal.DictEntry, len(args))
		for i, a := range args {
			n, err := l.node(a)
			if err != nil {
				return nil, err
			}
			e, ok := n.(internal.DictEntry)
			if !ok {
				return nil, fail(kind, "%s is not a dict item", n.Kind())
			}
			items[i] = e
		}
		return &internal.DictLit{Items: items}, nil
	case "dictitem":
		if err := arity(kind, args, 2, 2); err != nil {
			return nil, err
		}
		k, v, err := l.pair(args)
		if err != nil {
			return nil, err
		}
		return &internal.DictItem{Key: k, Value: v}, nil
	case "unpack", "dictunpack":
		if err := arity(kind, args, 1, 1); err != nil {
			return nil, err
		}
		x, err := l.expr(args[0])
		if err != nil {
			return nil, err
		}
		if kind == "unpack" {
			return &internal.Unpack{X: x}, nil
		}
		return &internal.DictUnpack{X: x}, nil
	case "listcomp", "setcomp", "genexpr":
		if err := arity(kind, args, 3, 4); err != nil {
			return nil, err
		}
		item, err := l.expr(args[0])
		if err != nil {
			return nil, err
		}
		target, iter, cond, err := l.comprehension(args[1:])
		if err != nil {
			return nil, err
		}
		switch kind {
		case "listcomp":
			return internal.NewListComp(item, target, iter, cond), nil
		case "setcomp":
			return internal.NewSetComp(item, target, iter, cond), nil
		}
		return internal.NewGenExpr(item, target, iter, cond), nil
	case "dictcomp":
		if err := arity(kind, args, 4, 5); err != nil {
			return nil, err
		}
		k, v, err := l.pair(args)
		if err != nil {
			return nil, err
		}
		target, iter, cond, err := l.comprehension(args[2:])
		if err != nil {
			return nil, err
		}
		return internal.NewDictComp(k, v, target, iter, cond), nil
	case "attr":
		if err := arity(kind, args, 2, 2); err != nil {
			return nil, err
		}
		obj, err := l.expr(args[0])
		if err != nil {
			return nil, err
		}
		s, err := name(kind, args[1])
		if err != nil {
			return nil, err
		}
		return &internal.Attr{Obj: obj, Name: s}, nil
	case "item":
		if err := arity(kind, args, 2, 2); err != nil {
			return nil, err
		}
		obj, key, err := l.pair(args)
		if err != nil {
			return nil, err
		}
		return &internal.Item{Obj: obj, Key: key}, nil
	case "slice":
		if err := arity(kind, args, 0, 3); err != nil {
			return nil, err
		}
		var parts [3]internal.Expr
		for i, a := range args {
			var err error
			if parts[i], err = l.optExpr(a); err != nil {
				return nil, err
			}
		}
		return &internal.SliceExpr{Start: parts[0], Stop: parts[1], Step: parts[2]}, nil
	case "and", "or":
		if err := arity(kind, args, 2, 2); err != nil {
			return nil, err
		}
		lhs, rhs, err := l.pair(args)
		if err != nil {
			return nil, err
		}
		if kind == "and" {
			return &internal.And{L: lhs, R: rhs}, nil
		}
		return &internal.Or{L: lhs, R: rhs}, nil
	case "if":
		if err := arity(kind, args, 3, 3); err != nil {
			return nil, err
		}
		es, err := l.exprs(args)
		if err != nil {
			return nil, err
		}
		return &internal.IfExpr{Then: es[0], Cond: es[1], Else: es[2]}, nil
	case "call":
		if err := arity(kind, args, 1, len(args)); err != nil {
			return nil, err
		}
		return l.call(args)
	case "keywordarg":
		if err := arity(kind, args, 2, 2); err != nil {
			return nil, err
		}
		s, err := name(kind, args[0])
		if err != nil {
			return nil, err
		}
		x, err := l.expr(args[1])
		if err != nil {
			return nil, err
		}
		return &internal.KeywordArg{Name: s, X: x}, nil
	case "tuple":
		return l.tuple(args)
	}
	return l.statement(kind, args)
}

// pair builds two expressions.
func (l *loader) pair(args []interface{}) (internal.Expr, internal.Expr, error) {
	a, err := l.expr(args[0])
	if err != nil {
		return nil, nil, err
	}
	b, err := l.expr(args[1])
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func (l *loader) comprehension(args []interface{}) (internal.LValue, internal.Expr, internal.Expr, error) {
	target, err := l.target(args[0])
	if err != nil {
		return nil, nil, nil, err
	}
	iter, err := l.expr(args[1])
	if err != nil {
		return nil, nil, nil, err
	}
	var cond internal.Expr
	if len(args) > 2 {
		if cond, err = l.optExpr(args[2]); err != nil {
			return nil, nil, nil, err
		}
	}
	return target, iter, cond, nil
}

func (l *loader) call(args []interface{}) (*internal.Call, error) {
	fn, err := l.expr(args[0])
	if err != nil {
		return nil, err
	}
	r := &internal.Call{Fn: fn, Args: make([]internal.Node, 0, len(args)-1)}
	for _, a := range args[1:] {
		n, err := l.node(a)
		if err != nil {
			return nil, err
		}
		r.Args = append(r.Args, n)
	}
	return r, nil
}

// target builds an assignment target.
func (l *loader) target(v interface{}) (internal.LValue, error) {
	v, at, err := unwrap(v)
	if err != nil {
		return nil, err
	}
	var r internal.LValue
	if s, ok := v.(string); ok {
		r = &internal.Var{Name: s}
		r.SetPos(l.next())
	} else if kind, args, ok := split(v); ok && (kind == "var" || kind == "attr" || kind == "item" || kind == "tuple") {
		p := l.next()
		n, err := l.build(kind, args)
		if err != nil {
			return nil, err
		}
		if r, ok = n.(internal.LValue); !ok {
			return nil, fail(kind, "not an assignment target")
		}
		r.SetPos(p)
	} else if vs, ok := v.([]interface{}); ok {
		p := l.next()
		t, err := l.tuple(vs)
		if err != nil {
			return nil, err
		}
		t.SetPos(p)
		r = t
	} else {
		return nil, fail("target", "%v is not an assignment target%s", v, boolHint(v))
	}
	if at != nil {
		r.SetPos(*at)
	}
	return r, nil
}

func (l *loader) tuple(args []interface{}) (*internal.Tuple, error) {
	t := &internal.Tuple{Items: make([]internal.LValue, len(args))}
	for i, a := range args {
		var err error
		if t.Items[i], err = l.target(a); err != nil {
			return nil, err
		}
	}
	return t, nil
}
