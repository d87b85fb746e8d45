package internal

import (
	"io"
	"strings"
	"sync"

	"src.elv.sh/pkg/persistent/hashmap"
)

// Param is one parameter of a template's signature. Its default is an
// expression, evaluated when the template is defined.
type Param struct {
	Located
	Name string
	Mode ParamKind
	// Default is the default expression of a Default parameter.
	Default        Expr
	PositionalOnly bool
	KeywordOnly    bool
}

func (n *Param) Kind() string { return "param" }

func (n *Param) Children() []Node {
	if n.Default == nil {
		return nil
	}
	return []Node{n.Default}
}

// Template is a named template. As a statement, it defines a closure bound
// to its name. Hosts render it with Closure.
type Template struct {
	Located
	Name   string
	Source string
	Doc    string
	// Params is the template's signature. If Signed is false, the template
	// takes only keyword arguments, each of which becomes a variable.
	Params []*Param
	Signed bool
	Body   []Stmt

	sigOnce sync.Once
	sig     *Signature
	sigErr  error
}

func (t *Template) Kind() string { return "template" }

func (t *Template) Children() []Node {
	r := make([]Node, 0, len(t.Params)+len(t.Body))
	for _, p := range t.Params {
		r = append(r, p)
	}
	return append(r, stmtNodes(t.Body)...)
}

// params builds the signature, taking defaults from def.
func (t *Template) params(def func(p *Param) (Value, error)) (*Signature, error) {
	if !t.Signed {
		return nil, nil
	}
	ps := make([]Parameter, len(t.Params))
	for i, p := range t.Params {
		ps[i] = Parameter{Name: p.Name, Kind: p.Mode, PositionalOnly: p.PositionalOnly, KeywordOnly: p.KeywordOnly}
		if p.Mode != Default {
			continue
		}
		if p.Default == nil {
			return nil, &StructureError{Kind: "template", Msg: "parameter " + p.Name + " of " + t.Name + " has no default"}
		}
		v, err := def(p)
		if err != nil {
			return nil, err
		}
		ps[i].Default = v
	}
	return NewSignature(ps...)
}

// checkSignature checks the shape of the signature without evaluating
// defaults.
func (t *Template) checkSignature() error {
	_, err := t.params(func(*Param) (Value, error) { return nil, nil })
	return err
}

// evalSignature evaluates the signature's defaults in c.
func (t *Template) evalSignature(c *Context) (*Signature, error) {
	return t.params(func(p *Param) (Value, error) { return Evaluate(c, p.Default) })
}

// Signature returns the template's signature with defaults evaluated without
// variables, or nil if the template is unsigned. It is computed once.
func (t *Template) Signature() (*Signature, error) {
	t.sigOnce.Do(func() {
		t.sig, t.sigErr = t.evalSignature(NewContext(nil, nil))
	})
	return t.sig, t.sigErr
}

// Closure returns a closure of t with no variables.
func (t *Template) Closure() (*Closure, error) {
	sig, err := t.Signature()
	if err != nil {
		return nil, err
	}
	return &Closure{Template: t, sig: sig, vars: emptyVars}, nil
}

// exec defines a closure over the current variables.
func (t *Template) exec(c *Context) (Stop, Value, error) {
	sig, err := t.evalSignature(c)
	if err != nil {
		return NoStop, nil, err
	}
	cl := &Closure{Template: t, sig: sig, vars: c.scope.snapshot()}
	c.scope.Set(t.Name, cl)
	c.Log.Trace().Str("template", t.Name).Int("captured", cl.vars.Len()).Msg("define closure")
	return NoStop, nil, nil
}

// run executes the body with args as its variables and captured behind
// them.
func (t *Template) run(c *Context, captured hashmap.Map, args *BoundArguments, allowReturn bool) (Value, error) {
	vars := make(map[string]Value, args.Len())
	args.Range(func(name string, v Value) { vars[name] = v })
	site := c.site
	c.site = nil
	defer c.swapScope(NewScope(vars, captured))()
	leave := c.pushFrame(t, site)
	defer leave()
	s, v, err := execBlock(c, t.Body)
	if err != nil {
		return nil, err
	}
	return boundary(c, s, v, allowReturn)
}

// Closure is a template together with the variables visible where it was
// defined. Later changes to those variables are not visible to it.
type Closure struct {
	Template *Template
	sig      *Signature
	vars     hashmap.Map
	// block marks render-block content, which may not return.
	block bool
}

// NewClosure creates a closure of t over vars. Defaults of t's signature
// are evaluated without variables.
func NewClosure(t *Template, vars map[string]Value) (*Closure, error) {
	cl, err := t.Closure()
	if err != nil {
		return nil, err
	}
	for k, v := range vars {
		cl.vars = cl.vars.Assoc(k, v)
	}
	return cl, nil
}

// Name returns the template's name.
func (cl *Closure) Name() string { return cl.Template.Name }

// Signature returns the signature evaluated when the closure was defined.
func (cl *Closure) Signature() *Signature { return cl.sig }

// Call calls the closure as a function. Output is discarded; the result is
// the value of the return statement that ended the call, or None.
func (cl *Closure) Call(c *Context, args *BoundArguments) (Value, error) {
	old := c.SetOutput(io.Discard)
	defer c.SetOutput(old)
	return cl.Template.run(c, cl.vars, args, !cl.block)
}

// Render executes the closure, writing its output to c.
func (cl *Closure) Render(c *Context, args *BoundArguments) error {
	_, err := cl.Template.run(c, cl.vars, args, !cl.block)
	return err
}

// Renderer is a callable that can also write output.
type Renderer interface {
	Callable
	Render(c *Context, args *BoundArguments) error
}

// Renders renders r to a string.
func Renders(c *Context, r Renderer, args *BoundArguments) (string, error) {
	var b strings.Builder
	old := c.SetOutput(&b)
	defer c.SetOutput(old)
	err := r.Render(c, args)
	return b.String(), err
}

type templateType struct{ BasicType }

// Attr provides name, doc, signature and source, then methods.
func (t *templateType) Attr(c *Context, v Value, name string) Value {
	var tm *Template
	var sig *Signature
	switch x := v.(type) {
	case *Template:
		tm = x
		sig, _ = x.Signature()
	case *Closure:
		tm, sig = x.Template, x.sig
	}
	switch name {
	case "name":
		return tm.Name
	case "doc":
		return tm.Doc
	case "source":
		return tm.Source
	case "signature":
		if sig == nil {
			return nil
		}
		return sig.String()
	}
	return t.BasicType.Attr(c, v, name)
}

func (t *templateType) Dir(v Value) []string {
	return append(t.BasicType.Dir(v), "doc", "name", "signature", "source")
}

// TemplateType describes templates that are not closures.
var TemplateType = &templateType{BasicType{
	TypeName:   "template",
	TypeModule: "ul4",
	TypeDoc:    "A template.",
	InstanceFn: func(v Value) bool { _, ok := v.(*Template); return ok },
}}

// ClosureType describes templates with their variables.
var ClosureType = &templateType{BasicType{
	TypeName:   "closure",
	TypeModule: "ul4",
	TypeDoc:    "A template with the variables visible where it was defined.",
	InstanceFn: func(v Value) bool { _, ok := v.(*Closure); return ok },
}}

// rebind binds the variables passed to a render method to the closure's own
// signature.
func rebind(self Value, args *BoundArguments) (*Closure, *BoundArguments, error) {
	var cl *Closure
	switch x := self.(type) {
	case *Closure:
		cl = x
	case *Template:
		var err error
		if cl, err = x.Closure(); err != nil {
			return nil, nil, err
		}
	}
	vars := args.At(0).(*Dict)
	kw := make([]Keyword, 0, vars.Len())
	vars.Range(func(k, v Value) bool {
		kw = append(kw, Keyword{Name: k.(string), Value: v})
		return true
	})
	b, err := Bind(cl.Name(), cl.Signature(), nil, kw)
	return cl, b, err
}

var templateMethods = []*Method{
	{
		Name: "render",
		Sig:  MustSignature(Kwargs("vars")),
		Fn: func(c *Context, self Value, args *BoundArguments) (Value, error) {
			cl, b, err := rebind(self, args)
			if err != nil {
				return nil, err
			}
			return nil, cl.Render(c, b)
		},
	},
	{
		Name: "renders",
		Sig:  MustSignature(Kwargs("vars")),
		Fn: func(c *Context, self Value, args *BoundArguments) (Value, error) {
			cl, b, err := rebind(self, args)
			if err != nil {
				return nil, err
			}
			return Renders(c, cl, b)
		},
	},
}

func init() {
	Register(func(r *Registry) {
		r.AddMethods(TemplateType, templateMethods...)
		r.AddMethods(ClosureType, templateMethods...)
	})
}

// SetSource sets the source of t and of every template nested in it.
func (t *Template) SetSource(src string) {
	Walk(t, func(n Node) bool {
		if x, ok := n.(*Template); ok {
			x.Source = src
		}
		return true
	})
}

// Run executes the closure, writing its output to c, and returns the value
// of the return statement that ended it, or None.
func (cl *Closure) Run(c *Context, args *BoundArguments) (Value, error) {
	return cl.Template.run(c, cl.vars, args, !cl.block)
}
