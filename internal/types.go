package internal

import (
	"fmt"
	"math/big"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Type describes the behavior of one kind of value. Every value maps to
// exactly one Type through TypeOf. Types are callable; calling a type
// constructs a new instance through its Signature.
type Type interface {
	Callable
	// Module is the namespace qualifying the type name, or "".
	Module() string
	// Doc is the type's documentation.
	Doc() string
	// Instance reports whether v is an instance of the type.
	Instance(v Value) bool

	// Truth returns the truthiness of v.
	Truth(v Value) (bool, error)
	// Len returns the length of v.
	Len(v Value) (int, error)
	// ToInt converts v to an integer.
	ToInt(v Value) (Value, error)
	// ToFloat converts v to a float.
	ToFloat(v Value) (Value, error)
	// ToStr converts v to a string, as by str(v).
	ToStr(v Value) (string, error)

	// Attr returns the attribute name of v, or an undefined attribute
	// sentinel.
	Attr(c *Context, v Value, name string) Value
	// SetAttr sets an attribute of v.
	SetAttr(c *Context, v Value, name string, val Value) error
	// Dir lists the attribute names of v.
	Dir(v Value) []string
	// CallAttr calls the attribute name of v.
	CallAttr(c *Context, v Value, name string, args []Value, kwargs []Keyword) (Value, error)
}

// BasicType provides default implementations of Type methods. Types embed it
// and override what they need.
type BasicType struct {
	TypeName   string
	TypeModule string
	TypeDoc    string
	// Sig is the signature of the constructor. If nil, the type cannot be
	// called.
	Sig *Signature
	// CreateFn constructs a new instance from bound arguments.
	CreateFn func(c *Context, args *BoundArguments) (Value, error)
	// InstanceFn implements Instance.
	InstanceFn func(v Value) bool

	methods map[string]*Method
}

// Name returns the type name.
func (t *BasicType) Name() string {
	return t.TypeName
}

// Module returns the type's module.
func (t *BasicType) Module() string {
	return t.TypeModule
}

// Doc returns the type's documentation.
func (t *BasicType) Doc() string {
	return t.TypeDoc
}

// Signature returns the constructor signature.
func (t *BasicType) Signature() *Signature {
	return t.Sig
}

// Call constructs a new instance.
func (t *BasicType) Call(c *Context, args *BoundArguments) (Value, error) {
	if t.CreateFn == nil {
		return nil, &NotCallableError{Object: t}
	}
	return t.CreateFn(c, args)
}

// Instance uses InstanceFn, or reports false.
func (t *BasicType) Instance(v Value) bool {
	return t.InstanceFn != nil && t.InstanceFn(v)
}

// Truth reports true for any defined value.
func (t *BasicType) Truth(v Value) (bool, error) {
	return true, defined(v)
}

// Len reports a type mismatch.
func (t *BasicType) Len(v Value) (int, error) {
	return 0, mismatch("len", v)
}

// ToInt reports a type mismatch.
func (t *BasicType) ToInt(v Value) (Value, error) {
	return nil, mismatch("int", v)
}

// ToFloat reports a type mismatch.
func (t *BasicType) ToFloat(v Value) (Value, error) {
	return nil, mismatch("float", v)
}

// ToStr returns the repr of v.
func (t *BasicType) ToStr(v Value) (string, error) {
	return Repr(v), nil
}

// Attr looks up a method of the type.
func (t *BasicType) Attr(c *Context, v Value, name string) Value {
	if m := t.methods[name]; m != nil {
		return &BoundMethod{Self: v, Method: m}
	}
	return &Undefined{How: UndefinedAttribute, Object: v, Name: name}
}

// SetAttr reports that attributes are read-only.
func (t *BasicType) SetAttr(c *Context, v Value, name string, val Value) error {
	return &AttributeError{Object: v, Name: name, ReadOnly: true}
}

// Dir lists the type's method names.
func (t *BasicType) Dir(v Value) []string {
	r := make([]string, 0, len(t.methods))
	for name := range t.methods {
		r = append(r, name)
	}
	sort.Strings(r)
	return r
}

// CallAttr calls a method of the type.
func (t *BasicType) CallAttr(c *Context, v Value, name string, args []Value, kwargs []Keyword) (Value, error) {
	return CallValue(c, t.Attr(c, v, name), args, kwargs)
}

// Method looks up a method by name.
func (t *BasicType) Method(name string) *Method {
	return t.methods[name]
}

func (t *BasicType) addMethod(m *Method) {
	if t.methods == nil {
		t.methods = make(map[string]*Method)
	}
	if t.methods[m.Name] != nil {
		panic(fmt.Sprintf("ul4: duplicate method %s.%s", t.TypeName, m.Name))
	}
	t.methods[m.Name] = m
}

type methodHolder interface {
	addMethod(m *Method)
}

// Registry collects extensions to the type system. It is only available to
// functions passed to Register, which run once, before the first Context is
// created.
type Registry struct {
	builtins  map[string]Value
	hostTypes map[reflect.Type]Type
	ifaces    []ifaceType
}

type ifaceType struct {
	iface reflect.Type
	t     Type
}

// AddMethods adds methods to a type. The type must embed BasicType.
func (r *Registry) AddMethods(t Type, methods ...*Method) {
	h, ok := t.(methodHolder)
	if !ok {
		panic(fmt.Sprintf("ul4: cannot add methods to %s", t.Name()))
	}
	for _, m := range methods {
		h.addMethod(m)
	}
}

// AddBuiltin makes v available to all templates under name.
func (r *Registry) AddBuiltin(name string, v Value) {
	if _, ok := r.builtins[name]; ok {
		panic(fmt.Sprintf("ul4: duplicate builtin %q", name))
	}
	r.builtins[name] = v
}

// AddFunction is shorthand for adding a builtin Function.
func (r *Registry) AddFunction(name string, sig *Signature, fn func(c *Context, args *BoundArguments) (Value, error)) {
	r.AddBuiltin(name, NewFunction(name, sig, fn))
}

// RegisterType sets the descriptor for values of the Go type rt.
func (r *Registry) RegisterType(rt reflect.Type, t Type) {
	if _, ok := r.hostTypes[rt]; ok {
		panic(fmt.Sprintf("ul4: duplicate registration for %v", rt))
	}
	r.hostTypes[rt] = t
}

// RegisterInterface sets the descriptor for values implementing the
// interface type it that have no exact registration. Interfaces are checked
// in registration order.
func (r *Registry) RegisterInterface(it reflect.Type, t Type) {
	if it.Kind() != reflect.Interface {
		panic(fmt.Sprintf("ul4: %v is not an interface type", it))
	}
	r.ifaces = append(r.ifaces, ifaceType{it, t})
}

// Builtin returns the builtin named name.
func (r *Registry) Builtin(name string) (Value, bool) {
	v, ok := r.builtins[name]
	return v, ok
}

var registry = Registry{
	builtins:  make(map[string]Value),
	hostTypes: make(map[reflect.Type]Type),
}

// extensions is the list of registered extensions.
var extensions = make([]func(*Registry), 0, 8)

var (
	installOnce sync.Once
	installed   bool
)

// Register registers an extension to the type system. Each function is
// called in the order it is registered; extensions that depend on other
// extensions need only import them. Register should be called from within
// init funcs. Panics if a Context has been created.
func Register(f func(*Registry)) {
	if installed {
		panic("ul4/internal: Register must be called before any Context is created")
	}
	extensions = append(extensions, f)
}

// install runs every registered extension exactly once.
func install() {
	installOnce.Do(func() {
		for _, ext := range extensions {
			ext(&registry)
		}
		installed = true
	})
}

// Builtins returns the names of all builtins, sorted.
func Builtins() []string {
	install()
	r := make([]string, 0, len(registry.builtins))
	for name := range registry.builtins {
		r = append(r, name)
	}
	sort.Strings(r)
	return r
}

// LookupBuiltin returns the builtin named name.
func LookupBuiltin(name string) (Value, bool) {
	install()
	return registry.Builtin(name)
}

// TypeOf returns the Type describing v.
func TypeOf(v Value) Type {
	switch v.(type) {
	case nil:
		return NoneType
	case bool:
		return BoolType
	case int64, *big.Int:
		return IntType
	case float64, decimal.Decimal:
		return FloatType
	case string:
		return StrType
	case *List:
		return ListType
	case *Set:
		return SetType
	case *Dict:
		return DictType
	case Date:
		return DateType
	case time.Time:
		return DateTimeType
	case TimeDelta:
		return TimeDeltaType
	case MonthDelta:
		return MonthDeltaType
	case *Template:
		return TemplateType
	case *Closure:
		return ClosureType
	case *Generator:
		return GeneratorType
	case *Undefined:
		return UndefinedType
	case *BoundMethod:
		return BoundMethodType
	case *Function:
		return FunctionType
	case Type:
		return TypeType
	}
	rt := reflect.TypeOf(v)
	if t, ok := registry.hostTypes[rt]; ok {
		return t
	}
	for _, it := range registry.ifaces {
		if rt.Implements(it.iface) {
			return it.t
		}
	}
	if _, ok := v.(Callable); ok {
		return FunctionType
	}
	return GenericType
}

// QualifiedName returns the module-qualified name of t.
func QualifiedName(t Type) string {
	if m := t.Module(); m != "" {
		return m + "." + t.Name()
	}
	return t.Name()
}
