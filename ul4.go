package ul4

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/zephyrtronium/ul4/internal"
)

// Value is any value the evaluator works with.
type Value = internal.Value

// Context is the state of one evaluation.
type Context = internal.Context

// Core evaluator types.
type (
	Type           = internal.Type
	BasicType      = internal.BasicType
	Registry       = internal.Registry
	Callable       = internal.Callable
	Function       = internal.Function
	Method         = internal.Method
	BoundMethod    = internal.BoundMethod
	Signature      = internal.Signature
	Parameter      = internal.Parameter
	ParamKind      = internal.ParamKind
	BoundArguments = internal.BoundArguments
	Keyword        = internal.Keyword
	Iterator       = internal.Iterator
	Iterable       = internal.Iterable
	Renderer       = internal.Renderer
	Template       = internal.Template
	Closure        = internal.Closure
	Frame          = internal.Frame
	Stop           = internal.Stop
)

// Value types.
type (
	List       = internal.List
	Dict       = internal.Dict
	Set        = internal.Set
	Date       = internal.Date
	TimeDelta  = internal.TimeDelta
	MonthDelta = internal.MonthDelta
	Undefined  = internal.Undefined
	Generator  = internal.Generator
)

// Error types.
type (
	AttributeError    = internal.AttributeError
	KeyError          = internal.KeyError
	IndexError        = internal.IndexError
	ArgumentError     = internal.ArgumentError
	TypeMismatchError = internal.TypeMismatchError
	LoopControlError  = internal.LoopControlError
	UnpackError       = internal.UnpackError
	ValueError        = internal.ValueError
	ZeroDivisionError = internal.ZeroDivisionError
	OverflowError     = internal.OverflowError
	NotCallableError  = internal.NotCallableError
	StepLimitError    = internal.StepLimitError
	StructureError    = internal.StructureError
	LocationError     = internal.LocationError

	ArgumentErrorKind = internal.ArgumentErrorKind
)

// Argument binding failures.
const (
	MissingArgument           = internal.MissingArgument
	DuplicateArgument         = internal.DuplicateArgument
	TooManyArguments          = internal.TooManyArguments
	UnsupportedArgumentName   = internal.UnsupportedArgumentName
	PositionalOnlyByKeyword   = internal.PositionalOnlyByKeyword
	RemainingArguments        = internal.RemainingArguments
	RemainingKeywordArguments = internal.RemainingKeywordArguments
)

// Parameter kinds.
const (
	Required      = internal.Required
	Default       = internal.Default
	VarPositional = internal.VarPositional
	VarKeyword    = internal.VarKeyword
)

// Register adds a function to call to install builtins and methods. It must
// be called during init, before any Context is created.
func Register(f func(*Registry)) {
	internal.Register(f)
}

// NewContext creates a context writing to w with the given variables.
func NewContext(w io.Writer, vars map[string]interface{}) *Context {
	return internal.NewContext(w, vars)
}

// Render renders tmpl to w. vars are passed as keyword arguments.
func Render(w io.Writer, tmpl *Template, vars map[string]interface{}) error {
	return RenderContext(NewContext(w, nil), tmpl, vars)
}

// RenderContext renders tmpl using c. vars are passed as keyword arguments.
func RenderContext(c *Context, tmpl *Template, vars map[string]interface{}) error {
	_, err := RunContext(c, tmpl, vars)
	return err
}

// RunContext renders tmpl using c and returns the value of the return
// statement that ended it, or nil.
func RunContext(c *Context, tmpl *Template, vars map[string]interface{}) (Value, error) {
	cl, err := tmpl.Closure()
	if err != nil {
		return nil, err
	}
	args, err := bindVars(cl, vars)
	if err != nil {
		return nil, err
	}
	return cl.Run(c, args)
}

// Exec is RunContext with cancellation: evaluation stops with ctx's error
// once ctx is done.
func Exec(ctx context.Context, c *Context, tmpl *Template, vars map[string]interface{}) (Value, error) {
	defer c.Attach(ctx)()
	return RunContext(c, tmpl, vars)
}

// Renders renders tmpl to a string.
func Renders(tmpl *Template, vars map[string]interface{}) (string, error) {
	var b strings.Builder
	err := Render(&b, tmpl, vars)
	return b.String(), err
}

// Call calls f with vars as keyword arguments. f is a Callable or a
// *Template; a template's output is discarded.
func Call(f Value, vars map[string]interface{}) (Value, error) {
	return CallContext(NewContext(nil, nil), f, vars)
}

// CallContext calls f using c with vars as keyword arguments.
func CallContext(c *Context, f Value, vars map[string]interface{}) (Value, error) {
	if t, ok := f.(*Template); ok {
		cl, err := t.Closure()
		if err != nil {
			return nil, err
		}
		f = cl
	}
	cl, ok := f.(Callable)
	if !ok {
		return nil, &NotCallableError{Object: f}
	}
	args, err := bindVars(cl, vars)
	if err != nil {
		return nil, err
	}
	return cl.Call(c, args)
}

func bindVars(cl Callable, vars map[string]interface{}) (*BoundArguments, error) {
	names := make([]string, 0, len(vars))
	for k := range vars {
		names = append(names, k)
	}
	sort.Strings(names)
	kw := make([]Keyword, len(names))
	for i, k := range names {
		kw[i] = Keyword{Name: k, Value: internal.FromGo(vars[k])}
	}
	return internal.Bind(cl.Name(), cl.Signature(), nil, kw)
}

// Validate checks the structure of an AST before it is evaluated.
func Validate(t *Template) error {
	return internal.Validate(t)
}

// Equal reports whether a and b are equal as by the == operator.
func Equal(a, b Value) bool {
	return internal.Equal(a, b)
}

// Repr returns the representation of v.
func Repr(v Value) string {
	return internal.Repr(v)
}

// Str returns the string form of v.
func Str(v Value) (string, error) {
	return internal.Str(v)
}

// FromGo converts common Go values to evaluator values.
func FromGo(v interface{}) Value {
	return internal.FromGo(v)
}

// TypeOf returns the type descriptor of v.
func TypeOf(v Value) Type {
	return internal.TypeOf(v)
}

// NewFunction creates a function implemented in Go.
func NewFunction(name string, sig *Signature, fn func(c *Context, args *BoundArguments) (Value, error)) *Function {
	return internal.NewFunction(name, sig, fn)
}

// NewSignature creates a signature, checking its shape.
func NewSignature(params ...Parameter) (*Signature, error) {
	return internal.NewSignature(params...)
}

// MustSignature is like NewSignature but panics on error.
func MustSignature(params ...Parameter) *Signature {
	return internal.MustSignature(params...)
}

// Req creates a required parameter.
func Req(name string) Parameter { return internal.Req(name) }

// Opt creates a parameter with a default.
func Opt(name string, def Value) Parameter { return internal.Opt(name, def) }

// Args creates a parameter collecting surplus positional arguments.
func Args(name string) Parameter { return internal.Args(name) }

// Kwargs creates a parameter collecting surplus keyword arguments.
func Kwargs(name string) Parameter { return internal.Kwargs(name) }

// NewList creates a list.
func NewList(items ...Value) *List { return internal.NewList(items...) }

// NewDict creates an empty dict.
func NewDict() *Dict { return internal.NewDict() }

// Builtins lists the names of all builtins.
func Builtins() []string { return internal.Builtins() }
