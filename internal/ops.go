package internal

import (
	"math/big"
	"strings"
)

// maxRepeat bounds the length of sequences produced by repetition.
const maxRepeat = 1 << 28

// BinaryOp applies an arithmetic or bitwise operator to a and b.
func BinaryOp(op string, a, b Value) (Value, error) {
	if err := defined2(a, b); err != nil {
		return nil, err
	}
	if r, ok, err := numArith(op, a, b); ok {
		return r, err
	}
	if r, ok, err := dateArith(op, a, b); ok {
		return r, err
	}
	switch op {
	case "+":
		switch x := a.(type) {
		case string:
			if y, ok := b.(string); ok {
				return x + y, nil
			}
		case *List:
			if y, ok := b.(*List); ok {
				r := make([]Value, 0, len(x.Items)+len(y.Items))
				r = append(r, x.Items...)
				return NewList(append(r, y.Items...)...), nil
			}
		}
	case "*":
		if r, ok, err := repeat(a, b); ok {
			return r, err
		}
		if r, ok, err := repeat(b, a); ok {
			return r, err
		}
	}
	return nil, mismatch(op, a, b)
}

// repeat computes seq * n for strings and lists.
func repeat(seq, n Value) (Value, bool, error) {
	var count int64
	switch x := n.(type) {
	case bool, int64:
		count = asInt64(x)
	case *big.Int:
		if x.Sign() > 0 {
			switch seq.(type) {
			case string, *List:
				return nil, true, &OverflowError{Msg: "repeat count too large"}
			}
		}
	default:
		return nil, false, nil
	}
	if count < 0 {
		count = 0
	}
	switch x := seq.(type) {
	case string:
		if int64(len(x))*count > maxRepeat {
			return nil, true, &OverflowError{Msg: "repeated string too long"}
		}
		return strings.Repeat(x, int(count)), true, nil
	case *List:
		if int64(len(x.Items))*count > maxRepeat {
			return nil, true, &OverflowError{Msg: "repeated list too long"}
		}
		r := make([]Value, 0, int64(len(x.Items))*count)
		for i := int64(0); i < count; i++ {
			r = append(r, x.Items...)
		}
		return NewList(r...), true, nil
	}
	return nil, false, nil
}

// UnaryOp applies a prefix operator: not, -, +, or ~.
func UnaryOp(op string, v Value) (Value, error) {
	switch op {
	case "not":
		t, err := Truth(v)
		return !t, err
	case "-":
		return Neg(v)
	case "~":
		return BitNot(v)
	case "+":
		if err := defined(v); err != nil {
			return nil, err
		}
		if _, ok := rungOf(v); ok {
			if b, ok := v.(bool); ok {
				return asInt64(b), nil
			}
			return v, nil
		}
		switch v.(type) {
		case TimeDelta, MonthDelta:
			return v, nil
		}
	}
	return nil, mismatch(op, v)
}

// Identical implements the is operator. Containers and host pointers are
// identical when they are the same object; other values when they are equal
// and of the same kind.
func Identical(a, b Value) bool {
	switch x := a.(type) {
	case *List, *Set, *Dict, *Template, *Closure, *Generator, *Undefined:
		return a == b
	case nil:
		return b == nil
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	}
	if KindOf(a) != KindOf(b) {
		return false
	}
	return Equal(a, b)
}

// Slice is the value of a slice expression a[start:stop:step]. Missing parts
// are nil.
type Slice struct {
	Start, Stop, Step Value
}

// indices resolves s against a sequence of length n, clamping the way Python
// does.
func (s Slice) indices(n int) (start, stop, step int, err error) {
	step = 1
	if s.Step != nil {
		st, err := sliceInt(s.Step)
		if err != nil {
			return 0, 0, 0, err
		}
		if st == 0 {
			return 0, 0, 0, &IndexError{Index: s.Step, Msg: "slice step cannot be zero"}
		}
		step = st
	}
	lower, upper := 0, n
	if step < 0 {
		lower, upper = -1, n-1
	}
	bound := func(v Value, def int) (int, error) {
		if v == nil {
			return def, nil
		}
		i, err := sliceInt(v)
		if err != nil {
			return 0, err
		}
		if i < 0 {
			i += n
			if i < lower {
				i = lower
			}
		} else if i > upper {
			i = upper
		}
		return i, nil
	}
	if step > 0 {
		start, err = bound(s.Start, lower)
		if err == nil {
			stop, err = bound(s.Stop, upper)
		}
	} else {
		start, err = bound(s.Start, upper)
		if err == nil {
			stop, err = bound(s.Stop, lower)
		}
	}
	return start, stop, step, err
}

// positions lists the indices a slice selects.
func (s Slice) positions(n int) ([]int, error) {
	start, stop, step, err := s.indices(n)
	if err != nil {
		return nil, err
	}
	var r []int
	for i := start; (step > 0 && i < stop) || (step < 0 && i > stop); i += step {
		r = append(r, i)
	}
	return r, nil
}

// sliceInt converts a slice bound to an int, clamping huge values.
func sliceInt(v Value) (int, error) {
	switch x := v.(type) {
	case bool, int64:
		n := asInt64(x)
		if n > maxRepeat {
			n = maxRepeat
		} else if n < -maxRepeat {
			n = -maxRepeat
		}
		return int(n), nil
	case *big.Int:
		if x.Sign() < 0 {
			return -maxRepeat, nil
		}
		return maxRepeat, nil
	case *Undefined:
		return 0, x.Err()
	}
	return 0, mismatch("slice", v)
}

// ItemType is implemented by type descriptors of host values that support
// item access.
type ItemType interface {
	Item(c *Context, v, key Value) (Value, error)
}

// GetItem implements obj[key]. A missing key or index produces an undefined
// sentinel rather than an error.
func GetItem(c *Context, obj, key Value) (Value, error) {
	if err := defined2(obj, key); err != nil {
		return nil, err
	}
	switch x := obj.(type) {
	case string:
		r := []rune(x)
		switch k := key.(type) {
		case Slice:
			pos, err := k.positions(len(r))
			if err != nil {
				return nil, err
			}
			var b strings.Builder
			for _, i := range pos {
				b.WriteRune(r[i])
			}
			return b.String(), nil
		case bool, int64:
			i := asInt64(k)
			if i < 0 {
				i += int64(len(r))
			}
			if i < 0 || i >= int64(len(r)) {
				return &Undefined{How: UndefinedIndex, Object: obj, Name: key}, nil
			}
			return string(r[i]), nil
		case *big.Int:
			return &Undefined{How: UndefinedIndex, Object: obj, Name: key}, nil
		}
	case *List:
		switch k := key.(type) {
		case Slice:
			pos, err := k.positions(len(x.Items))
			if err != nil {
				return nil, err
			}
			items := make([]Value, len(pos))
			for j, i := range pos {
				items[j] = x.Items[i]
			}
			return NewList(items...), nil
		case bool, int64:
			return x.Index(asInt64(k)), nil
		case *big.Int:
			return &Undefined{How: UndefinedIndex, Object: obj, Name: key}, nil
		}
	case *Dict:
		v, ok, err := x.Get(key)
		if err != nil {
			return nil, err
		}
		if !ok {
			return &Undefined{How: UndefinedKey, Object: obj, Name: key}, nil
		}
		return v, nil
	default:
		if t, ok := TypeOf(obj).(ItemType); ok {
			return t.Item(c, obj, key)
		}
	}
	return nil, mismatch("[]", obj, key)
}

// SetItem implements obj[key] = val.
func SetItem(c *Context, obj, key, val Value) error {
	if err := defined2(obj, key); err != nil {
		return err
	}
	switch x := obj.(type) {
	case *List:
		switch k := key.(type) {
		case Slice:
			return setSlice(c, x, k, val)
		case bool, int64:
			return x.SetIndex(asInt64(k), val)
		case *big.Int:
			return &IndexError{Index: key}
		}
	case *Dict:
		return x.Set(key, val)
	}
	return mismatch("[]=", obj, key)
}

// setSlice replaces the items selected by s with the items of val. Extended
// slices must select exactly as many items as val has.
func setSlice(c *Context, l *List, s Slice, val Value) error {
	items, err := Collect(c, val)
	if err != nil {
		return err
	}
	start, stop, step, err := s.indices(len(l.Items))
	if err != nil {
		return err
	}
	if step == 1 {
		if stop < start {
			stop = start
		}
		r := make([]Value, 0, len(l.Items)-(stop-start)+len(items))
		r = append(r, l.Items[:start]...)
		r = append(r, items...)
		l.Items = append(r, l.Items[stop:]...)
		return nil
	}
	pos, _ := s.positions(len(l.Items))
	if len(pos) != len(items) {
		return &ValueError{Msg: "attempt to assign sequence of wrong size to extended slice"}
	}
	for j, i := range pos {
		l.Items[i] = items[j]
	}
	return nil
}
