package internal

import (
	"src.elv.sh/pkg/persistent/hash"
	"src.elv.sh/pkg/persistent/hashmap"
)

// Scope is one level of variable bindings. A call scope begins an
// activation: lookups and assignments never pass it, except into the
// closure variables it was created with. Block scopes nest inside it for
// loops and comprehensions.
type Scope struct {
	parent *Scope
	vars   map[string]Value
	call   bool
	// sealed call scopes keep every assignment, reading captured variables
	// without updating them.
	sealed bool
	// captured holds a closure's variables in a call scope. Assignments to
	// captured names replace this map rather than modifying it, so the
	// closure's own snapshot is never affected.
	captured hashmap.Map
}

// emptyVars is the empty persistent variable map.
var emptyVars = hashmap.New(stringEqual, stringHash)

func stringEqual(a, b interface{}) bool {
	return a.(string) == b.(string)
}

func stringHash(k interface{}) uint32 {
	return hash.String(k.(string))
}

// NewScope creates a call scope holding vars, with captured closure
// variables behind them. captured may be nil.
func NewScope(vars map[string]Value, captured hashmap.Map) *Scope {
	if vars == nil {
		vars = make(map[string]Value)
	}
	if captured == nil {
		captured = emptyVars
	}
	return &Scope{vars: vars, call: true, captured: captured}
}

// sealed creates a call scope with new variables that sees vars read-only.
func sealed(vars hashmap.Map) *Scope {
	s := NewScope(nil, vars)
	s.sealed = true
	return s
}

// Own returns the variables bound in s itself.
func (s *Scope) Own() map[string]Value {
	return s.vars
}

// block creates a block scope nested in s.
func (s *Scope) block() *Scope {
	return &Scope{parent: s, vars: make(map[string]Value)}
}

// Lookup finds the variable name in the activation.
func (s *Scope) Lookup(name string) (Value, bool) {
	for ; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
		if s.call {
			v, ok := s.captured.Index(name)
			return v, ok
		}
	}
	return nil, false
}

// Set assigns to the variable name. An existing binding in the activation is
// updated in place; otherwise the variable is created in the innermost scope.
func (s *Scope) Set(name string, v Value) {
	for t := s; t != nil; t = t.parent {
		if _, ok := t.vars[name]; ok {
			t.vars[name] = v
			return
		}
		if t.call {
			if t.sealed {
				break
			}
			if _, ok := t.captured.Index(name); ok {
				t.captured = t.captured.Assoc(name, v)
				return
			}
			break
		}
	}
	s.vars[name] = v
}

// Define creates or replaces name in s itself, shadowing outer bindings.
func (s *Scope) Define(name string, v Value) {
	s.vars[name] = v
}

// snapshot flattens every variable visible in the activation into a
// persistent map, inner bindings taking precedence.
func (s *Scope) snapshot() hashmap.Map {
	var chain []*Scope
	for t := s; t != nil; t = t.parent {
		chain = append(chain, t)
		if t.call {
			break
		}
	}
	m := emptyVars
	if root := chain[len(chain)-1]; root.call {
		m = root.captured
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].vars {
			m = m.Assoc(k, v)
		}
	}
	return m
}

// Vars returns the variables visible in the activation as a dict, sorted by
// name.
func (s *Scope) Vars() *Dict {
	d := NewDict()
	for it := s.snapshot().Iterator(); it.HasElem(); it.Next() {
		k, v := it.Elem()
		d.mustSet(k, v)
	}
	d.sortStringKeys()
	return d
}
