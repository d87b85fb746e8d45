package internal

import (
	"fmt"
	"reflect"
	"sort"
)

// Truther is implemented by host values with their own truthiness.
type Truther interface {
	UL4Bool() bool
}

// genericType describes host values with no registered type. It exposes
// exported struct fields and string-keyed map entries as attributes, and
// iterates over slices, arrays, and maps.
type genericType struct{ BasicType }

// GenericType is the fallback descriptor for unregistered host values.
var GenericType = &genericType{BasicType{
	TypeName: "object",
	TypeDoc:  "A value provided by the host.",
	InstanceFn: func(v Value) bool {
		return v != nil
	},
}}

// deref follows pointers and interfaces to the underlying value.
func deref(v Value) reflect.Value {
	r := reflect.ValueOf(v)
	for r.Kind() == reflect.Ptr || r.Kind() == reflect.Interface {
		if r.IsNil() {
			return r
		}
		r = r.Elem()
	}
	return r
}

func (*genericType) Truth(v Value) (bool, error) {
	if t, ok := v.(Truther); ok {
		return t.UL4Bool(), nil
	}
	r := reflect.ValueOf(v)
	switch r.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Func, reflect.Chan:
		return !r.IsNil(), nil
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
		return r.Len() != 0, nil
	}
	return true, nil
}

func (*genericType) Len(v Value) (int, error) {
	r := deref(v)
	switch r.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
		return r.Len(), nil
	}
	return 0, mismatch("len", v)
}

func (*genericType) ToStr(v Value) (string, error) {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String(), nil
	}
	return Repr(v), nil
}

func (t *genericType) Attr(c *Context, v Value, name string) Value {
	r := deref(v)
	switch r.Kind() {
	case reflect.Struct:
		f, ok := r.Type().FieldByName(name)
		if ok && f.IsExported() {
			return FromGo(r.FieldByIndex(f.Index).Interface())
		}
	case reflect.Map:
		if r.Type().Key().Kind() == reflect.String {
			e := r.MapIndex(reflect.ValueOf(name).Convert(r.Type().Key()))
			if e.IsValid() {
				return FromGo(e.Interface())
			}
			return &Undefined{How: UndefinedKey, Object: v, Name: name}
		}
	}
	return t.BasicType.Attr(c, v, name)
}

func (*genericType) SetAttr(c *Context, v Value, name string, val Value) error {
	r := reflect.ValueOf(v)
	if r.Kind() == reflect.Ptr && !r.IsNil() && r.Elem().Kind() == reflect.Struct {
		f := r.Elem().FieldByName(name)
		if !f.IsValid() {
			return &AttributeError{Object: v, Name: name}
		}
		if !f.CanSet() {
			return &AttributeError{Object: v, Name: name, ReadOnly: true}
		}
		x := reflect.ValueOf(val)
		if !x.IsValid() {
			f.Set(reflect.Zero(f.Type()))
			return nil
		}
		if !x.Type().AssignableTo(f.Type()) {
			if !x.Type().ConvertibleTo(f.Type()) {
				return mismatch("setattr", v, val)
			}
			x = x.Convert(f.Type())
		}
		f.Set(x)
		return nil
	}
	return &AttributeError{Object: v, Name: name, ReadOnly: true}
}

func (t *genericType) Dir(v Value) []string {
	r := deref(v)
	var names []string
	switch r.Kind() {
	case reflect.Struct:
		rt := r.Type()
		for i := 0; i < rt.NumField(); i++ {
			if f := rt.Field(i); f.IsExported() {
				names = append(names, f.Name)
			}
		}
	case reflect.Map:
		if r.Type().Key().Kind() == reflect.String {
			for _, k := range r.MapKeys() {
				names = append(names, k.String())
			}
		}
	}
	sort.Strings(names)
	return names
}

func (t *genericType) CallAttr(c *Context, v Value, name string, args []Value, kwargs []Keyword) (Value, error) {
	return CallValue(c, t.Attr(c, v, name), args, kwargs)
}

// Iter iterates over the elements of slices and arrays or the keys of maps,
// sorted when the keys are strings.
func (*genericType) Iter(c *Context, v Value) (Iterator, error) {
	r := deref(v)
	var items []Value
	switch r.Kind() {
	case reflect.Slice, reflect.Array:
		items = make([]Value, r.Len())
		for i := range items {
			items[i] = FromGo(r.Index(i).Interface())
		}
	case reflect.Map:
		keys := r.MapKeys()
		if r.Type().Key().Kind() == reflect.String {
			sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		}
		items = make([]Value, len(keys))
		for i, k := range keys {
			items[i] = FromGo(k.Interface())
		}
	default:
		return nil, mismatch("iter", v)
	}
	return NewSliceIter(items), nil
}

// Item indexes slices and arrays by integer and maps by key.
func (*genericType) Item(c *Context, v, key Value) (Value, error) {
	r := deref(v)
	switch r.Kind() {
	case reflect.Slice, reflect.Array:
		i, ok := key.(int64)
		if !ok {
			return nil, mismatch("[]", v, key)
		}
		if i < 0 {
			i += int64(r.Len())
		}
		if i < 0 || i >= int64(r.Len()) {
			return &Undefined{How: UndefinedIndex, Object: v, Name: key}, nil
		}
		return FromGo(r.Index(int(i)).Interface()), nil
	case reflect.Map:
		k := reflect.ValueOf(key)
		kt := r.Type().Key()
		if !k.IsValid() || !k.Type().ConvertibleTo(kt) {
			return nil, mismatch("[]", v, key)
		}
		e := r.MapIndex(k.Convert(kt))
		if !e.IsValid() {
			return &Undefined{How: UndefinedKey, Object: v, Name: key}, nil
		}
		return FromGo(e.Interface()), nil
	}
	return nil, mismatch("[]", v, key)
}
