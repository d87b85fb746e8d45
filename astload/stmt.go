package astload

import (
	"strings"

	"github.com/zephyrtronium/ul4/internal"
)

func (l *loader) statement(kind string, args []interface{}) (internal.Node, error) {
	switch kind {
	case "text", "indent", "lineend":
		if err := arity(kind, args, 1, 1); err != nil {
			return nil, err
		}
		s, ok := args[0].(string)
		if !ok {
			return nil, fail(kind, "text must be a string%s", boolHint(args[0]))
		}
		switch kind {
		case "text":
			return &internal.Text{Text: s}, nil
		case "indent":
			return &internal.Indent{Text: s}, nil
		}
		return &internal.LineEnd{Text: s}, nil
	case "print", "printx", "expr":
		if err := arity(kind, args, 1, 1); err != nil {
			return nil, err
		}
		x, err := l.expr(args[0])
		if err != nil {
			return nil, err
		}
		if kind == "expr" {
			return &internal.ExprStmt{X: x}, nil
		}
		return &internal.Print{X: x, Escape: kind == "printx"}, nil
	case "setvar":
		if err := arity(kind, args, 2, 2); err != nil {
			return nil, err
		}
		target, err := l.target(args[0])
		if err != nil {
			return nil, err
		}
		v, err := l.expr(args[1])
		if err != nil {
			return nil, err
		}
		return &internal.SetVar{Target: target, Value: v}, nil
	case "for":
		if err := arity(kind, args, 3, 3); err != nil {
			return nil, err
		}
		target, err := l.target(args[0])
		if err != nil {
			return nil, err
		}
		iter, err := l.expr(args[1])
		if err != nil {
			return nil, err
		}
		body, err := l.stmts(args[2])
		if err != nil {
			return nil, err
		}
		return &internal.For{Target: target, Iter: iter, Body: body}, nil
	case "while":
		if err := arity(kind, args, 2, 2); err != nil {
			return nil, err
		}
		cond, err := l.expr(args[0])
		if err != nil {
			return nil, err
		}
		body, err := l.stmts(args[1])
		if err != nil {
			return nil, err
		}
		return &internal.While{Cond: cond, Body: body}, nil
	case "break", "continue":
		if err := arity(kind, args, 0, 0); err != nil {
			return nil, err
		}
		if kind == "break" {
			return &internal.Break{}, nil
		}
		return &internal.Continue{}, nil
	case "return":
		if err := arity(kind, args, 0, 1); err != nil {
			return nil, err
		}
		r := &internal.Return{}
		if len(args) == 1 {
			var err error
			if r.X, err = l.expr(args[0]); err != nil {
				return nil, err
			}
		}
		return r, nil
	case "ieie":
		return l.ieie(args)
	case "branch":
		if err := arity(kind, args, 2, 2); err != nil {
			return nil, err
		}
		cond, err := l.expr(args[0])
		if err != nil {
			return nil, err
		}
		body, err := l.stmts(args[1])
		if err != nil {
			return nil, err
		}
		return &internal.Branch{Cond: cond, Body: body}, nil
	case "template":
		return l.template(args)
	case "renderblock", "renderblocks":
		if err := arity(kind, args, 2, 3); err != nil {
			return nil, err
		}
		call, err := l.renderCall(kind, args[0])
		if err != nil {
			return nil, err
		}
		r := internal.Render{Call: call}
		if len(args) == 3 {
			if r.Indent, err = indent(kind, args[2]); err != nil {
				return nil, err
			}
		}
		if kind == "renderblocks" {
			body, err := l.stmts(args[1])
			if err != nil {
				return nil, err
			}
			return &internal.RenderBlocks{Render: r, Body: body}, nil
		}
		content := &internal.Template{Name: "content"}
		content.SetPos(l.next())
		if content.Body, err = l.stmts(args[1]); err != nil {
			return nil, err
		}
		return &internal.RenderBlock{Render: r, Content: content}, nil
	}
	return nil, fail(kind, "unknown node kind")
}

func (l *loader) augAssign(kind string, args []interface{}) (internal.Node, error) {
	if err := arity(kind, args, 2, 2); err != nil {
		return nil, err
	}
	op, _ := internal.OpForKind(strings.TrimSuffix(kind, "var"))
	target, err := l.target(args[0])
	if err != nil {
		return nil, err
	}
	u, ok := target.(internal.Updater)
	if !ok {
		return nil, fail(kind, "can't update %s", target.Kind())
	}
	v, err := l.expr(args[1])
	if err != nil {
		return nil, err
	}
	return &internal.AugAssign{Op: op, Target: u, Value: v}, nil
}

// render builds render, renderx, and the render_or_print variants.
func (l *loader) render(kind string, args []interface{}) (internal.Node, error) {
	r := &internal.Render{
		X:       strings.HasPrefix(kind, "renderx"),
		OrPrint: strings.Contains(kind, "_or_print"),
		PrintX:  strings.HasSuffix(kind, "_or_printx"),
	}
	if r.Kind() != kind {
		return nil, fail(kind, "unknown node kind")
	}
	if err := arity(kind, args, 1, 2); err != nil {
		return nil, err
	}
	var err error
	if r.Call, err = l.renderCall(kind, args[0]); err != nil {
		return nil, err
	}
	if len(args) == 2 {
		if r.Indent, err = indent(kind, args[1]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (l *loader) renderCall(kind string, v interface{}) (*internal.Call, error) {
	n, err := l.node(v)
	if err != nil {
		return nil, err
	}
	call, ok := n.(*internal.Call)
	if !ok {
		return nil, fail(kind, "can only render a call, not %s", n.Kind())
	}
	return call, nil
}

func indent(kind string, v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fail(kind, "indent must be a string")
	}
	return s, nil
}

func (l *loader) ieie(args []interface{}) (internal.Node, error) {
	r := &internal.If{}
	for i, a := range args {
		if kind, _, ok := split(a); !ok || kind != "branch" {
			if i != len(args)-1 || i == 0 {
				return nil, fail("ieie", "want branches, then an optional else body")
			}
			var err error
			if r.Else, err = l.stmts(a); err != nil {
				return nil, err
			}
			break
		}
		n, err := l.node(a)
		if err != nil {
			return nil, err
		}
		r.Branches = append(r.Branches, n.(*internal.Branch))
	}
	if len(r.Branches) == 0 {
		return nil, fail("ieie", "no branches")
	}
	return r, nil
}

func (l *loader) template(args []interface{}) (internal.Node, error) {
	if err := arity("template", args, 3, 4); err != nil {
		return nil, err
	}
	s, err := name("template", args[0])
	if err != nil {
		return nil, err
	}
	t := &internal.Template{Name: s}
	if len(args) == 4 {
		if t.Doc, err = indent("template", args[3]); err != nil {
			return nil, err
		}
	}
	if args[1] != nil {
		ps, ok := args[1].([]interface{})
		if !ok {
			return nil, fail("template", "signature must be null or a sequence")
		}
		t.Signed = true
		if t.Params, err = l.params(ps); err != nil {
			return nil, err
		}
	}
	if t.Body, err = l.stmts(args[2]); err != nil {
		return nil, err
	}
	return t, nil
}

// params builds a signature written as Python writes one.
func (l *loader) params(vs []interface{}) ([]*internal.Param, error) {
	var r []*internal.Param
	kwOnly := false
	for _, v := range vs {
		switch x := v.(type) {
		case string:
			switch {
			case x == "/":
				for _, p := range r {
					if p.Mode == internal.Required || p.Mode == internal.Default {
						p.PositionalOnly = true
					}
				}
				continue
			case x == "*":
				kwOnly = true
				continue
			case strings.HasPrefix(x, "**"):
				p := &internal.Param{Name: x[2:], Mode: internal.VarKeyword}
				p.SetPos(l.next())
				r = append(r, p)
			case strings.HasPrefix(x, "*"):
				p := &internal.Param{Name: x[1:], Mode: internal.VarPositional}
				p.SetPos(l.next())
				r = append(r, p)
				kwOnly = true
			default:
				p := &internal.Param{Name: x, Mode: internal.Required, KeywordOnly: kwOnly}
				p.SetPos(l.next())
				r = append(r, p)
			}
		case []interface{}:
			if len(x) != 2 {
				return nil, fail("param", "parameter with default must be [name, default]")
			}
			s, err := name("param", x[0])
			if err != nil {
				return nil, err
			}
			p := &internal.Param{Name: s, Mode: internal.Default, KeywordOnly: kwOnly}
			p.SetPos(l.next())
			if p.Default, err = l.expr(x[1]); err != nil {
				return nil, err
			}
			r = append(r, p)
		default:
			return nil, fail("param", "%v is not a parameter%s", v, boolHint(v))
		}
	}
	return r, nil
}
