package internal

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"src.elv.sh/pkg/persistent/vector"
)

// Context is the state of one evaluation: variables, output, indentation,
// escaping, and the stack of active template calls. A Context must not be
// used by more than one goroutine at a time.
type Context struct {
	// Log receives debug logs for template calls and closure creation. The
	// default discards everything.
	Log zerolog.Logger
	// MaxSteps limits the number of nodes evaluated. Zero means no limit.
	MaxSteps int
	// Hook, if not nil, is called before each node is evaluated. A non-nil
	// error stops evaluation.
	Hook func(c *Context, n Node) error
	// XEscape escapes output of printx and renderx.
	XEscape func(string) string

	out     io.Writer
	scope   *Scope
	indents []string
	escapes []func(string) string
	frames  vector.Vector
	steps   int
	// done is the request-scoped context of the current run, set by Attach.
	done context.Context

	// stopAt is the statement that raised the Stop currently propagating.
	stopAt Node
	// site is the call node whose call is being made.
	site Node
}

// Frame is one active template call.
type Frame struct {
	// Template is the template being executed.
	Template *Template
	// Site is the node in the caller that made the call, or nil for the
	// outermost frame.
	Site Node
}

// NewContext creates a context writing to w with the given variables. Host
// values are normalized with FromGo. If w is nil, output is discarded.
func NewContext(w io.Writer, vars map[string]interface{}) *Context {
	install()
	if w == nil {
		w = io.Discard
	}
	m := make(map[string]Value, len(vars))
	for k, v := range vars {
		m[k] = FromGo(v)
	}
	return &Context{
		Log:     zerolog.Nop(),
		XEscape: html.EscapeString,
		out:     w,
		scope:   NewScope(m, nil),
		frames:  vector.Empty,
	}
}

// Scope returns the innermost scope.
func (c *Context) Scope() *Scope {
	return c.scope
}

// Attach makes evaluation with c stop with ctx's error once ctx is done. The
// returned detach function restores the previous context; call it when the
// run that ctx belongs to ends.
func (c *Context) Attach(ctx context.Context) (detach func()) {
	prev := c.done
	c.done = ctx
	return func() { c.done = prev }
}

// Steps returns the number of nodes evaluated so far.
func (c *Context) Steps() int {
	return c.steps
}

// Output returns the current output sink.
func (c *Context) Output() io.Writer {
	return c.out
}

// SetOutput replaces the output sink and returns the old one.
func (c *Context) SetOutput(w io.Writer) io.Writer {
	old := c.out
	c.out = w
	return old
}

// PushIndent adds an indentation prefix for indent nodes.
func (c *Context) PushIndent(s string) {
	c.indents = append(c.indents, s)
}

// PopIndent removes the innermost indentation prefix.
func (c *Context) PopIndent() {
	c.indents = c.indents[:len(c.indents)-1]
}

// Indentation returns the concatenated indentation prefixes.
func (c *Context) Indentation() string {
	return strings.Join(c.indents, "")
}

func (c *Context) pushEscape(f func(string) string) {
	c.escapes = append(c.escapes, f)
}

func (c *Context) popEscape() {
	c.escapes = c.escapes[:len(c.escapes)-1]
}

// Write writes s to the output, escaped by every active renderx, innermost
// first.
func (c *Context) Write(s string) error {
	for i := len(c.escapes) - 1; i >= 0; i-- {
		s = c.escapes[i](s)
	}
	_, err := io.WriteString(c.out, s)
	return err
}

// Lookup finds a variable, falling back to the builtins. A missing name
// produces an undefined sentinel.
func (c *Context) Lookup(name string) Value {
	if v, ok := c.scope.Lookup(name); ok {
		return v
	}
	if v, ok := registry.Builtin(name); ok {
		return v
	}
	return &Undefined{How: UndefinedVariable, Name: name}
}

// pushScope enters a block scope and returns the function that leaves it.
func (c *Context) pushScope() func() {
	old := c.scope
	c.scope = old.block()
	return func() { c.scope = old }
}

// swapScope replaces the scope chain, for template calls, and returns the
// function that restores it.
func (c *Context) swapScope(s *Scope) func() {
	old := c.scope
	c.scope = s
	return func() { c.scope = old }
}

// Frames returns the active template calls, outermost first.
func (c *Context) Frames() []Frame {
	return framesOf(c.frames)
}

func framesOf(v vector.Vector) []Frame {
	if v == nil {
		return nil
	}
	r := make([]Frame, 0, v.Len())
	for it := v.Iterator(); it.HasElem(); it.Next() {
		r = append(r, it.Elem().(Frame))
	}
	return r
}

// pushFrame enters a template call made from site and returns the function
// that leaves it.
func (c *Context) pushFrame(t *Template, site Node) func() {
	old := c.frames
	c.frames = old.Conj(Frame{Template: t, Site: site})
	c.Log.Debug().Str("template", t.Name).Int("depth", c.frames.Len()).Msg("enter template")
	return func() {
		c.Log.Debug().Str("template", t.Name).Int("depth", c.frames.Len()).Msg("leave template")
		c.frames = old
	}
}

// template returns the template of the innermost frame.
func (c *Context) template() *Template {
	n := c.frames.Len()
	if n == 0 {
		return nil
	}
	f, _ := c.frames.Index(n - 1)
	return f.(Frame).Template
}

// tick is called once before each node is evaluated.
func (c *Context) tick(n Node) error {
	c.steps++
	if c.MaxSteps > 0 && c.steps > c.MaxSteps {
		return &StepLimitError{Max: c.MaxSteps}
	}
	if c.done != nil {
		if err := c.done.Err(); err != nil {
			return err
		}
	}
	if c.Hook != nil {
		return c.Hook(c, n)
	}
	return nil
}

// decorate wraps err with the location of n, unless it already carries a
// location from the current frame.
func (c *Context) decorate(n Node, err error) error {
	if err == nil {
		return nil
	}
	depth := c.frames.Len()
	if le, ok := err.(*LocationError); ok && le.depth == depth {
		return err
	}
	return &LocationError{Err: err, Node: n, Template: c.template(), frames: c.frames, depth: depth}
}
