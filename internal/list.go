package internal

// List is an ordered, mutable sequence of values.
type List struct {
	Items []Value
}

// NewList creates a list holding items. The slice is not copied.
func NewList(items ...Value) *List {
	if items == nil {
		items = []Value{}
	}
	return &List{Items: items}
}

// Len returns the number of items in the list.
func (l *List) Len() int {
	return len(l.Items)
}

// Append adds values to the end of the list.
func (l *List) Append(v ...Value) {
	l.Items = append(l.Items, v...)
}

// snapshot returns a copy of the list's items for iteration.
func (l *List) snapshot() []Value {
	return append([]Value(nil), l.Items...)
}

// Index returns the item at index i, counting from the end if i is negative,
// or an undefined index sentinel if it is out of range.
func (l *List) Index(i int64) Value {
	n := int64(len(l.Items))
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return &Undefined{How: UndefinedIndex, Object: l, Name: i}
	}
	return l.Items[i]
}

// SetIndex stores v at index i, counting from the end if i is negative.
func (l *List) SetIndex(i int64, v Value) error {
	n := int64(len(l.Items))
	j := i
	if j < 0 {
		j += n
	}
	if j < 0 || j >= n {
		return &IndexError{Index: i}
	}
	l.Items[j] = v
	return nil
}

// Insert inserts v before index i, clamped to the list bounds.
func (l *List) Insert(i int64, v Value) {
	n := int64(len(l.Items))
	if i < 0 {
		i += n
		if i < 0 {
			i = 0
		}
	}
	if i > n {
		i = n
	}
	l.Items = append(l.Items, nil)
	copy(l.Items[i+1:], l.Items[i:])
	l.Items[i] = v
}

// Pop removes and returns the item at index i.
func (l *List) Pop(i int64) (Value, error) {
	n := int64(len(l.Items))
	j := i
	if j < 0 {
		j += n
	}
	if j < 0 || j >= n {
		return nil, &IndexError{Index: i}
	}
	v := l.Items[j]
	l.Items = append(l.Items[:j], l.Items[j+1:]...)
	return v, nil
}
