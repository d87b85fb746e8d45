package internal

// Iterator produces a sequence of values. Next returns ok == false once the
// sequence is exhausted.
type Iterator interface {
	Next() (v Value, ok bool, err error)
}

// Iterable is implemented by host values that can be iterated.
type Iterable interface {
	UL4Iter() (Iterator, error)
}

// IterType is implemented by type descriptors that know how to iterate their
// values.
type IterType interface {
	Iter(c *Context, v Value) (Iterator, error)
}

// SliceIter iterates over a fixed slice.
type SliceIter struct {
	items []Value
	i     int
}

// NewSliceIter creates an iterator over items. The slice is not copied.
func NewSliceIter(items []Value) *SliceIter {
	return &SliceIter{items: items}
}

// Next returns the next item.
func (it *SliceIter) Next() (Value, bool, error) {
	if it.i >= len(it.items) {
		return nil, false, nil
	}
	v := it.items[it.i]
	it.i++
	return v, true, nil
}

type stringIter struct {
	r []rune
	i int
}

func (it *stringIter) Next() (Value, bool, error) {
	if it.i >= len(it.r) {
		return nil, false, nil
	}
	v := string(it.r[it.i])
	it.i++
	return v, true, nil
}

// Iterate returns an iterator over v. Containers are snapshotted when the
// iterator is created, so mutating them during iteration does not affect the
// values produced.
func Iterate(c *Context, v Value) (Iterator, error) {
	switch x := v.(type) {
	case string:
		return &stringIter{r: []rune(x)}, nil
	case *List:
		return NewSliceIter(x.snapshot()), nil
	case *Set:
		return NewSliceIter(x.Elems()), nil
	case *Dict:
		return NewSliceIter(x.Keys()), nil
	case *Generator:
		return x, nil
	case Iterator:
		return x, nil
	case Iterable:
		return x.UL4Iter()
	case *Undefined:
		return nil, x.Err()
	}
	if t, ok := TypeOf(v).(IterType); ok {
		return t.Iter(c, v)
	}
	return nil, mismatch("iter", v)
}

// Collect iterates over v and returns all values produced.
func Collect(c *Context, v Value) ([]Value, error) {
	if l, ok := v.(*List); ok {
		return l.snapshot(), nil
	}
	it, err := Iterate(c, v)
	if err != nil {
		return nil, err
	}
	return drain(it)
}

// drain collects the values remaining in it.
func drain(it Iterator) ([]Value, error) {
	var r []Value
	for {
		e, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return r, nil
		}
		r = append(r, e)
	}
}
