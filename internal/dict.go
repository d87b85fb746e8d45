package internal

import "sort"

// Dict is an insertion-ordered mapping from hashable values to values.
type Dict struct {
	keys  []Value
	vals  []Value
	index map[interface{}]int
}

// NewDict creates an empty dict.
func NewDict() *Dict {
	return &Dict{index: make(map[interface{}]int)}
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	return len(d.keys)
}

// Get returns the value for key k and whether it is present.
func (d *Dict) Get(k Value) (Value, bool, error) {
	h, err := hashKey(k)
	if err != nil {
		return nil, false, err
	}
	i, ok := d.index[h]
	if !ok {
		return nil, false, nil
	}
	return d.vals[i], true, nil
}

// Set stores v under key k. A new key is appended to the iteration order; an
// existing key keeps its position.
func (d *Dict) Set(k, v Value) error {
	h, err := hashKey(k)
	if err != nil {
		return err
	}
	if i, ok := d.index[h]; ok {
		d.vals[i] = v
		return nil
	}
	d.index[h] = len(d.keys)
	d.keys = append(d.keys, k)
	d.vals = append(d.vals, v)
	return nil
}

// mustSet sets a key known to be hashable.
func (d *Dict) mustSet(k, v Value) {
	if err := d.Set(k, v); err != nil {
		panic(err)
	}
}

// Delete removes key k, returning its value and whether it was present.
func (d *Dict) Delete(k Value) (Value, bool, error) {
	h, err := hashKey(k)
	if err != nil {
		return nil, false, err
	}
	i, ok := d.index[h]
	if !ok {
		return nil, false, nil
	}
	v := d.vals[i]
	delete(d.index, h)
	d.keys = append(d.keys[:i], d.keys[i+1:]...)
	d.vals = append(d.vals[:i], d.vals[i+1:]...)
	for j := i; j < len(d.keys); j++ {
		hj, _ := hashKey(d.keys[j])
		d.index[hj] = j
	}
	return v, true, nil
}

// Clear removes all entries.
func (d *Dict) Clear() {
	d.keys, d.vals = nil, nil
	d.index = make(map[interface{}]int)
}

// Keys returns a copy of the keys in insertion order.
func (d *Dict) Keys() []Value {
	return append([]Value(nil), d.keys...)
}

// Values returns a copy of the values in insertion order.
func (d *Dict) Values() []Value {
	return append([]Value(nil), d.vals...)
}

// Range calls f for each entry in insertion order until f returns false.
// Entries added or removed by f are not visited.
func (d *Dict) Range(f func(k, v Value) bool) {
	keys, vals := d.Keys(), d.Values()
	for i, k := range keys {
		if !f(k, vals[i]) {
			return
		}
	}
}

// Update copies every entry of other into d.
func (d *Dict) Update(other *Dict) {
	for i, k := range other.keys {
		d.mustSet(k, other.vals[i])
	}
}

// Copy returns a shallow copy of d.
func (d *Dict) Copy() *Dict {
	r := NewDict()
	r.Update(d)
	return r
}

// sortStringKeys reorders a dict built from a Go map so that iteration is
// deterministic. All keys must be strings.
func (d *Dict) sortStringKeys() {
	n := len(d.keys)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return d.keys[order[i]].(string) < d.keys[order[j]].(string)
	})
	keys, vals := make([]Value, n), make([]Value, n)
	for i, j := range order {
		keys[i], vals[i] = d.keys[j], d.vals[j]
		d.index[keys[i]] = i
	}
	d.keys, d.vals = keys, vals
}
