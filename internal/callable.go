package internal

// Callable is a value that can be called. The evaluator binds arguments to the
// callable's Signature with Bind before calling it.
type Callable interface {
	// Name identifies the callable in errors.
	Name() string
	// Signature returns the parameters the callable accepts. A nil signature
	// accepts any keyword arguments and no positional arguments.
	Signature() *Signature
	// Call performs the call.
	Call(c *Context, args *BoundArguments) (Value, error)
}

// Function is a callable implemented in Go.
type Function struct {
	name string
	sig  *Signature
	fn   func(c *Context, args *BoundArguments) (Value, error)
}

// NewFunction creates a Function.
func NewFunction(name string, sig *Signature, fn func(c *Context, args *BoundArguments) (Value, error)) *Function {
	return &Function{name: name, sig: sig, fn: fn}
}

// Name returns the function's name.
func (f *Function) Name() string {
	return f.name
}

// Signature returns the function's signature.
func (f *Function) Signature() *Signature {
	return f.sig
}

// Call calls the function.
func (f *Function) Call(c *Context, args *BoundArguments) (Value, error) {
	return f.fn(c, args)
}

// Method is a function of a type, called with the value it was looked up on.
type Method struct {
	Name string
	Sig  *Signature
	Fn   func(c *Context, self Value, args *BoundArguments) (Value, error)
}

// BoundMethod is a Method together with its receiver.
type BoundMethod struct {
	Self   Value
	Method *Method
}

// Name returns the qualified method name.
func (m *BoundMethod) Name() string {
	return typeName(m.Self) + "." + m.Method.Name
}

// Signature returns the method's signature.
func (m *BoundMethod) Signature() *Signature {
	return m.Method.Sig
}

// Call calls the method with its receiver.
func (m *BoundMethod) Call(c *Context, args *BoundArguments) (Value, error) {
	return m.Method.Fn(c, m.Self, args)
}

// CallValue calls f with the given arguments.
func CallValue(c *Context, f Value, args []Value, kwargs []Keyword) (Value, error) {
	if err := defined(f); err != nil {
		return nil, err
	}
	cl, ok := f.(Callable)
	if !ok {
		return nil, &NotCallableError{Object: f}
	}
	b, err := Bind(cl.Name(), cl.Signature(), args, kwargs)
	if err != nil {
		return nil, err
	}
	return cl.Call(c, b)
}

// CallArgs calls f with only positional arguments.
func CallArgs(c *Context, f Value, args ...Value) (Value, error) {
	return CallValue(c, f, args, nil)
}
