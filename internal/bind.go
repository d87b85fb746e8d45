package internal

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Keyword is a keyword argument at a call site.
type Keyword struct {
	Name  string
	Value Value
}

// BoundArguments is the result of binding one call's arguments to a
// signature. Every parameter has a value.
type BoundArguments struct {
	name   string
	sig    *Signature
	values []Value
	// vars holds the keyword arguments of a call bound without a signature.
	vars *Dict
}

// Bind resolves positional and keyword arguments against sig. name is the
// callable's name, used in errors. A nil signature accepts only keyword
// arguments, all of which become variables.
//
// Positional arguments fill fixed parameters in order, skipping keyword-only
// ones; the rest go to the *args parameter. Keyword arguments fill unfilled
// fixed parameters by name; the rest go to the **kwargs parameter. Remaining
// parameters take their defaults. Any argument that has nowhere to go, any
// parameter filled twice, and any required parameter left unfilled is an
// error.
func Bind(name string, sig *Signature, args []Value, kwargs []Keyword) (*BoundArguments, error) {
	if sig == nil {
		return bindVars(name, args, kwargs)
	}
	values := make([]Value, len(sig.params))
	set := make([]bool, len(sig.params))
	n := len(args)
	if n > len(sig.posSlots) {
		if sig.varPos < 0 {
			return nil, &ArgumentError{Kind: TooManyArguments, Callable: name, Position: len(sig.posSlots), Have: len(args)}
		}
		n = len(sig.posSlots)
	}
	for i := 0; i < n; i++ {
		k := sig.posSlots[i]
		values[k], set[k] = args[i], true
	}
	var extra *Dict
	if sig.varKw >= 0 {
		extra = NewDict()
	}
	for _, kw := range kwargs {
		if k, ok := sig.index[kw.Name]; ok && sig.params[k].Kind.fixed() {
			if sig.params[k].PositionalOnly {
				if extra == nil {
					return nil, &ArgumentError{Kind: PositionalOnlyByKeyword, Callable: name, Names: []string{kw.Name}, Position: k}
				}
			} else {
				if set[k] {
					return nil, &ArgumentError{Kind: DuplicateArgument, Callable: name, Names: []string{kw.Name}, Position: k}
				}
				values[k], set[k] = kw.Value, true
				continue
			}
		}
		if extra == nil {
			return nil, &ArgumentError{Kind: UnsupportedArgumentName, Callable: name, Names: []string{kw.Name}}
		}
		if _, dup, _ := extra.Get(kw.Name); dup {
			return nil, &ArgumentError{Kind: DuplicateArgument, Callable: name, Names: []string{kw.Name}, Position: sig.varKw}
		}
		extra.mustSet(kw.Name, kw.Value)
	}
	var missing []string
	first := -1
	for k, p := range sig.params {
		if !p.Kind.fixed() || set[k] {
			continue
		}
		if p.Kind == Default {
			values[k] = p.Default
			continue
		}
		if first < 0 {
			first = k
		}
		missing = append(missing, p.Name)
	}
	if missing != nil {
		return nil, &ArgumentError{Kind: MissingArgument, Callable: name, Names: missing, Position: first}
	}
	if sig.varPos >= 0 {
		rest := []Value{}
		if len(args) > n {
			rest = append(rest, args[n:]...)
		}
		values[sig.varPos] = NewList(rest...)
	}
	if extra != nil {
		values[sig.varKw] = extra
	}
	return &BoundArguments{name: name, sig: sig, values: values}, nil
}

func bindVars(name string, args []Value, kwargs []Keyword) (*BoundArguments, error) {
	if len(args) > 0 {
		return nil, &ArgumentError{Kind: TooManyArguments, Callable: name, Position: 0, Have: len(args)}
	}
	vars := NewDict()
	for _, kw := range kwargs {
		if _, dup, _ := vars.Get(kw.Name); dup {
			return nil, &ArgumentError{Kind: DuplicateArgument, Callable: name, Names: []string{kw.Name}, Position: -1}
		}
		vars.mustSet(kw.Name, kw.Value)
	}
	return &BoundArguments{name: name, vars: vars}, nil
}

// Name returns the name of the callable the arguments were bound for.
func (b *BoundArguments) Name() string {
	return b.name
}

// Signature returns the signature the arguments were bound to.
func (b *BoundArguments) Signature() *Signature {
	return b.sig
}

// Len returns the number of bound values.
func (b *BoundArguments) Len() int {
	if b.sig == nil {
		return b.vars.Len()
	}
	return len(b.values)
}

// At returns the value of the ith parameter.
func (b *BoundArguments) At(i int) Value {
	return b.values[i]
}

// Get returns the value bound to the parameter or variable name, or nil.
func (b *BoundArguments) Get(name string) Value {
	v, _ := b.Lookup(name)
	return v
}

// Lookup returns the value bound to the parameter or variable name.
func (b *BoundArguments) Lookup(name string) (Value, bool) {
	if b.sig == nil {
		v, ok, _ := b.vars.Get(name)
		return v, ok
	}
	i, ok := b.sig.index[name]
	if !ok {
		return nil, false
	}
	return b.values[i], true
}

// Range calls f with each parameter or variable name and its value, in
// declaration order.
func (b *BoundArguments) Range(f func(name string, v Value)) {
	if b.sig == nil {
		b.vars.Range(func(k, v Value) bool {
			f(k.(string), v)
			return true
		})
		return
	}
	for i, p := range b.sig.params {
		f(p.Name, b.values[i])
	}
}

// IntAt returns the ith value as an int64, accepting bools and integers that
// fit.
func (b *BoundArguments) IntAt(i int) (int64, error) {
	switch x := b.values[i].(type) {
	case bool, int64:
		return asInt64(x), nil
	case *big.Int:
		if x.IsInt64() {
			return x.Int64(), nil
		}
		return 0, &OverflowError{Msg: b.name + ": integer argument too large"}
	case *Undefined:
		return 0, x.Err()
	}
	return 0, mismatch(b.name, b.values[i])
}

// FloatAt returns the ith value as a float64, accepting any number.
func (b *BoundArguments) FloatAt(i int) (float64, error) {
	v := b.values[i]
	if err := defined(v); err != nil {
		return 0, err
	}
	switch x := v.(type) {
	case bool, int64, *big.Int, float64:
		return asFloat(x), nil
	case decimal.Decimal:
		return x.InexactFloat64(), nil
	}
	return 0, mismatch(b.name, v)
}

// StrAt returns the ith value as a string.
func (b *BoundArguments) StrAt(i int) (string, error) {
	switch x := b.values[i].(type) {
	case string:
		return x, nil
	case *Undefined:
		return "", x.Err()
	}
	return "", mismatch(b.name, b.values[i])
}

// OptStrAt is StrAt, but returns def if the value is None.
func (b *BoundArguments) OptStrAt(i int, def string) (string, error) {
	if b.values[i] == nil {
		return def, nil
	}
	return b.StrAt(i)
}
