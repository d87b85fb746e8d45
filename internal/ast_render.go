package internal

import "sort"

// Render renders the result of a call expression's callee with the call's
// arguments. Unlike a call, the callee's output goes to the context.
type Render struct {
	Located
	Call *Call
	// Indent prefixes the indent nodes of the rendered template.
	Indent string
	// X escapes everything the rendered template writes.
	X bool
	// OrPrint prints the callee if it can't be rendered. PrintX escapes the
	// printed text.
	OrPrint bool
	PrintX  bool
}

func (n *Render) Kind() string {
	k := "render"
	if n.X {
		k += "x"
	}
	if n.OrPrint {
		k += "_or_print"
		if n.PrintX {
			k += "x"
		}
	}
	return k
}

func (n *Render) Children() []Node { return []Node{n.Call} }

func (n *Render) exec(c *Context) (Stop, Value, error) {
	return NoStop, nil, n.render(c, n, nil)
}

// render evaluates the call and renders its callee. site is the node the
// call is made from. extra, if not nil, adds keyword arguments after the
// call's own.
func (n *Render) render(c *Context, site Node, extra func(name string, kw []Keyword) ([]Keyword, error)) error {
	if err := c.tick(n.Call); err != nil {
		return c.decorate(n.Call, err)
	}
	obj, err := Evaluate(c, n.Call.Fn)
	if err != nil {
		return err
	}
	args, kw, err := evalArgs(c, n.Call.Fn, n.Call.Args)
	if err != nil {
		return err
	}
	r, err := renderer(obj)
	if err != nil {
		return err
	}
	if r == nil {
		if !n.OrPrint {
			if err := defined(obj); err != nil {
				return err
			}
			return mismatch("render", obj)
		}
		s, err := Str(obj)
		if err != nil {
			return err
		}
		if n.PrintX && c.XEscape != nil {
			s = c.XEscape(s)
		}
		return c.Write(n.Indent + s)
	}
	if extra != nil {
		if kw, err = extra(r.Name(), kw); err != nil {
			return err
		}
	}
	b, err := Bind(r.Name(), r.Signature(), args, kw)
	if err != nil {
		return err
	}
	if n.Indent != "" {
		c.PushIndent(n.Indent)
		defer c.PopIndent()
	}
	if n.X && c.XEscape != nil {
		c.pushEscape(c.XEscape)
		defer c.popEscape()
	}
	c.site = site
	return r.Render(c, b)
}

// renderer returns the Renderer for v, or nil if v can't be rendered.
func renderer(v Value) (Renderer, error) {
	switch x := v.(type) {
	case *Template:
		return x.Closure()
	case Renderer:
		return x, nil
	}
	return nil, nil
}

// RenderBlock renders a template with an extra keyword argument named
// content: a closure whose body is the block.
type RenderBlock struct {
	Render
	// Content is the block. It is unsigned, and it may not break, continue,
	// or return out of itself.
	Content *Template
}

func (n *RenderBlock) Kind() string { return "renderblock" }

func (n *RenderBlock) Children() []Node { return []Node{n.Call, n.Content} }

func (n *RenderBlock) exec(c *Context) (Stop, Value, error) {
	content := &Closure{Template: n.Content, vars: c.scope.snapshot(), block: true}
	err := n.render(c, n, func(name string, kw []Keyword) ([]Keyword, error) {
		for _, k := range kw {
			if k.Name == "content" {
				return nil, &ArgumentError{Kind: DuplicateArgument, Callable: name, Names: []string{"content"}, Position: -1}
			}
		}
		return append(kw, Keyword{Name: "content", Value: content}), nil
	})
	return NoStop, nil, err
}

// RenderBlocks runs its body with new variables, then renders a template
// with those variables added to the keyword arguments.
type RenderBlocks struct {
	Render
	Body []Stmt
}

func (n *RenderBlocks) Kind() string { return "renderblocks" }

func (n *RenderBlocks) Children() []Node {
	return append([]Node{n.Call}, stmtNodes(n.Body)...)
}

func (n *RenderBlocks) exec(c *Context) (Stop, Value, error) {
	vars, err := n.collect(c)
	if err != nil {
		return NoStop, nil, err
	}
	err = n.render(c, n, func(name string, kw []Keyword) ([]Keyword, error) {
		for _, k := range kw {
			if _, ok := vars[k.Name]; ok {
				return nil, &ArgumentError{Kind: DuplicateArgument, Callable: name, Names: []string{k.Name}, Position: -1}
			}
		}
		names := make([]string, 0, len(vars))
		for k := range vars {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			kw = append(kw, Keyword{Name: k, Value: vars[k]})
		}
		return kw, nil
	})
	return NoStop, nil, err
}

// collect runs the body and returns the variables it assigned.
func (n *RenderBlocks) collect(c *Context) (map[string]Value, error) {
	s := sealed(c.scope.snapshot())
	defer c.swapScope(s)()
	st, _, err := execBlock(c, n.Body)
	if err != nil {
		return nil, err
	}
	if st != NoStop {
		_, err := boundary(c, st, nil, false)
		return nil, err
	}
	return s.Own(), nil
}
