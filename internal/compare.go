package internal

import (
	"reflect"
	"strings"
	"time"
)

// Equal reports whether a and b are equal. Numbers compare by value across
// representations; values of different kinds are unequal.
func Equal(a, b Value) bool {
	if IsNumber(a) && IsNumber(b) {
		c, ok := numCompare(a, b)
		return ok && c == 0
	}
	switch x := a.(type) {
	case nil:
		return b == nil
	case string:
		y, ok := b.(string)
		return ok && x == y
	case *List:
		y, ok := b.(*List)
		if !ok {
			return false
		}
		if x == y {
			return true
		}
		if len(x.Items) != len(y.Items) {
			return false
		}
		for i, e := range x.Items {
			if !Equal(e, y.Items[i]) {
				return false
			}
		}
		return true
	case *Set:
		y, ok := b.(*Set)
		if !ok {
			return false
		}
		if x == y {
			return true
		}
		if x.Len() != y.Len() {
			return false
		}
		for _, e := range x.elems {
			if has, _ := y.Has(e); !has {
				return false
			}
		}
		return true
	case *Dict:
		y, ok := b.(*Dict)
		if !ok {
			return false
		}
		if x == y {
			return true
		}
		if x.Len() != y.Len() {
			return false
		}
		for i, k := range x.keys {
			v, ok, _ := y.Get(k)
			if !ok || !Equal(x.vals[i], v) {
				return false
			}
		}
		return true
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	case TimeDelta:
		y, ok := b.(TimeDelta)
		return ok && x.normalize() == y.normalize()
	}
	if a == nil || b == nil {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// order compares a and b for ordering. ordered is false for comparisons that
// are always false, such as those involving NaN.
func order(op string, a, b Value) (c int, ordered bool, err error) {
	if err := defined2(a, b); err != nil {
		return 0, false, err
	}
	if IsNumber(a) && IsNumber(b) {
		c, ok := numCompare(a, b)
		return c, ok, nil
	}
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y), true, nil
		}
	case *List:
		if y, ok := b.(*List); ok {
			for i := 0; i < len(x.Items) && i < len(y.Items); i++ {
				if Equal(x.Items[i], y.Items[i]) {
					continue
				}
				return order(op, x.Items[i], y.Items[i])
			}
			return cmpInt(int64(len(x.Items)), int64(len(y.Items))), true, nil
		}
	case Date:
		if y, ok := b.(Date); ok {
			return x.Compare(y), true, nil
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			switch {
			case x.Before(y):
				return -1, true, nil
			case x.After(y):
				return 1, true, nil
			}
			return 0, true, nil
		}
	case TimeDelta:
		if y, ok := b.(TimeDelta); ok {
			x, y = x.normalize(), y.normalize()
			if x.Days != y.Days {
				return cmpInt(x.Days, y.Days), true, nil
			}
			if x.Seconds != y.Seconds {
				return cmpInt(x.Seconds, y.Seconds), true, nil
			}
			return cmpInt(x.Microseconds, y.Microseconds), true, nil
		}
	case MonthDelta:
		if y, ok := b.(MonthDelta); ok {
			return cmpInt(int64(x), int64(y)), true, nil
		}
	}
	return 0, false, mismatch(op, a, b)
}

// Compare applies the comparison operator op, one of == != < <= > >=, to a
// and b.
func Compare(op string, a, b Value) (bool, error) {
	switch op {
	case "==", "!=":
		if err := defined2(a, b); err != nil {
			return false, err
		}
		return Equal(a, b) == (op == "=="), nil
	}
	c, ok, err := order(op, a, b)
	if err != nil || !ok {
		return false, err
	}
	switch op {
	case "<":
		return c < 0, nil
	case "<=":
		return c <= 0, nil
	case ">":
		return c > 0, nil
	case ">=":
		return c >= 0, nil
	}
	return false, &StructureError{Kind: "compare", Msg: "unknown comparison operator " + op}
}

// Contains reports whether item is in container, as by the in operator.
func Contains(c *Context, item, container Value) (bool, error) {
	if err := defined2(item, container); err != nil {
		return false, err
	}
	switch x := container.(type) {
	case string:
		s, ok := item.(string)
		if !ok {
			return false, mismatch("in", item, container)
		}
		return strings.Contains(x, s), nil
	case *List:
		for _, e := range x.Items {
			if Equal(item, e) {
				return true, nil
			}
		}
		return false, nil
	case *Set:
		if _, err := hashKey(item); err != nil {
			return false, nil
		}
		return x.Has(item)
	case *Dict:
		if _, err := hashKey(item); err != nil {
			return false, nil
		}
		_, ok, err := x.Get(item)
		return ok, err
	}
	it, err := Iterate(c, container)
	if err != nil {
		return false, mismatch("in", item, container)
	}
	for {
		v, ok, err := it.Next()
		if err != nil || !ok {
			return false, err
		}
		if Equal(item, v) {
			return true, nil
		}
	}
}
