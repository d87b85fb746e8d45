package internal

// Set is a collection of unique hashable values. Iteration follows insertion
// order.
type Set struct {
	elems []Value
	index map[interface{}]int
}

// NewSet creates a set containing elems.
func NewSet(elems ...Value) (*Set, error) {
	s := &Set{index: make(map[interface{}]int)}
	for _, e := range elems {
		if err := s.Add(e); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Len returns the number of elements.
func (s *Set) Len() int {
	return len(s.elems)
}

// Add inserts v if it is not already present.
func (s *Set) Add(v Value) error {
	h, err := hashKey(v)
	if err != nil {
		return err
	}
	if _, ok := s.index[h]; !ok {
		s.index[h] = len(s.elems)
		s.elems = append(s.elems, v)
	}
	return nil
}

// Has reports whether v is in the set.
func (s *Set) Has(v Value) (bool, error) {
	h, err := hashKey(v)
	if err != nil {
		return false, err
	}
	_, ok := s.index[h]
	return ok, nil
}

// Discard removes v if present.
func (s *Set) Discard(v Value) error {
	h, err := hashKey(v)
	if err != nil {
		return err
	}
	i, ok := s.index[h]
	if !ok {
		return nil
	}
	delete(s.index, h)
	s.elems = append(s.elems[:i], s.elems[i+1:]...)
	for j := i; j < len(s.elems); j++ {
		hj, _ := hashKey(s.elems[j])
		s.index[hj] = j
	}
	return nil
}

// Clear removes all elements.
func (s *Set) Clear() {
	s.elems = nil
	s.index = make(map[interface{}]int)
}

// Elems returns a copy of the elements.
func (s *Set) Elems() []Value {
	return append([]Value(nil), s.elems...)
}
