package internal

import (
	"fmt"
	"strings"
)

// ParamKind is the kind of a parameter.
type ParamKind int

// Parameter kinds.
const (
	// Required parameters must be supplied by the caller.
	Required ParamKind = iota
	// Default parameters take their default when not supplied.
	Default
	// VarPositional collects surplus positional arguments into a list.
	VarPositional
	// VarKeyword collects surplus keyword arguments into a dict.
	VarKeyword
)

func (k ParamKind) fixed() bool {
	return k == Required || k == Default
}

// Parameter describes one parameter of a Signature.
type Parameter struct {
	Name    string
	Kind    ParamKind
	Default Value
	// PositionalOnly parameters cannot be passed by keyword.
	PositionalOnly bool
	// KeywordOnly parameters cannot be passed positionally.
	KeywordOnly bool
}

// Req creates a required parameter.
func Req(name string) Parameter {
	return Parameter{Name: name, Kind: Required}
}

// Opt creates a parameter with a default value.
func Opt(name string, def Value) Parameter {
	return Parameter{Name: name, Kind: Default, Default: def}
}

// Args creates a parameter collecting surplus positional arguments.
func Args(name string) Parameter {
	return Parameter{Name: name, Kind: VarPositional}
}

// Kwargs creates a parameter collecting surplus keyword arguments.
func Kwargs(name string) Parameter {
	return Parameter{Name: name, Kind: VarKeyword}
}

// PosOnly returns p marked positional-only.
func (p Parameter) PosOnly() Parameter {
	p.PositionalOnly = true
	return p
}

// KwOnly returns p marked keyword-only.
func (p Parameter) KwOnly() Parameter {
	p.KeywordOnly = true
	return p
}

func (p Parameter) String() string {
	switch p.Kind {
	case VarPositional:
		return "*" + p.Name
	case VarKeyword:
		return "**" + p.Name
	case Default:
		return p.Name + "=" + Repr(p.Default)
	}
	return p.Name
}

// Signature is the parameter list of a callable. Signatures are immutable.
type Signature struct {
	params []Parameter
	index  map[string]int
	// posSlots are the indices of fixed parameters that accept positional
	// arguments, in order.
	posSlots []int
	varPos   int
	varKw    int
}

// NewSignature creates a signature, checking that names are unique, that
// variadic parameters come last with *args before **kwargs, and that no
// required positional-only parameter follows a parameter with a default or a
// variadic parameter.
func NewSignature(params ...Parameter) (*Signature, error) {
	s := &Signature{
		params: append([]Parameter(nil), params...),
		index:  make(map[string]int, len(params)),
		varPos: -1,
		varKw:  -1,
	}
	optional := false
	for i, p := range s.params {
		if p.Name == "" {
			return nil, &StructureError{Kind: "signature", Msg: fmt.Sprintf("parameter %d has no name", i)}
		}
		if _, ok := s.index[p.Name]; ok {
			return nil, &StructureError{Kind: "signature", Msg: fmt.Sprintf("duplicate parameter %q", p.Name)}
		}
		s.index[p.Name] = i
		if s.varKw >= 0 {
			return nil, &StructureError{Kind: "signature", Msg: fmt.Sprintf("parameter %q follows **%s", p.Name, s.params[s.varKw].Name)}
		}
		switch p.Kind {
		case Required:
			if s.varPos >= 0 {
				return nil, &StructureError{Kind: "signature", Msg: fmt.Sprintf("parameter %q follows *%s", p.Name, s.params[s.varPos].Name)}
			}
			if optional && p.PositionalOnly {
				return nil, &StructureError{Kind: "signature", Msg: fmt.Sprintf("required positional-only parameter %q follows optional parameters", p.Name)}
			}
		case Default:
			if s.varPos >= 0 {
				return nil, &StructureError{Kind: "signature", Msg: fmt.Sprintf("parameter %q follows *%s", p.Name, s.params[s.varPos].Name)}
			}
			optional = true
		case VarPositional:
			if s.varPos >= 0 {
				return nil, &StructureError{Kind: "signature", Msg: "more than one *args parameter"}
			}
			s.varPos = i
			optional = true
		case VarKeyword:
			s.varKw = i
			optional = true
		default:
			return nil, &StructureError{Kind: "signature", Msg: fmt.Sprintf("parameter %q has invalid kind %d", p.Name, p.Kind)}
		}
		if !p.Kind.fixed() && (p.PositionalOnly || p.KeywordOnly) {
			return nil, &StructureError{Kind: "signature", Msg: fmt.Sprintf("variadic parameter %q cannot be positional-only or keyword-only", p.Name)}
		}
		if p.PositionalOnly && p.KeywordOnly {
			return nil, &StructureError{Kind: "signature", Msg: fmt.Sprintf("parameter %q is both positional-only and keyword-only", p.Name)}
		}
		if p.Kind.fixed() && !p.KeywordOnly {
			s.posSlots = append(s.posSlots, i)
		}
	}
	return s, nil
}

// MustSignature is like NewSignature but panics on error. It is intended for
// signatures of builtins declared as package variables.
func MustSignature(params ...Parameter) *Signature {
	s, err := NewSignature(params...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of parameters.
func (s *Signature) Len() int {
	return len(s.params)
}

// Param returns the ith parameter.
func (s *Signature) Param(i int) Parameter {
	return s.params[i]
}

// Params returns a copy of the parameters.
func (s *Signature) Params() []Parameter {
	return append([]Parameter(nil), s.params...)
}

// Index returns the position of the parameter named name.
func (s *Signature) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

func (s *Signature) String() string {
	if s == nil {
		return "(**vars)"
	}
	parts := make([]string, 0, len(s.params)+2)
	slash := false
	for i, p := range s.params {
		if p.KeywordOnly && (i == 0 || !s.params[i-1].KeywordOnly) && s.varPos < 0 {
			parts = append(parts, "*")
		}
		parts = append(parts, p.String())
		if p.PositionalOnly && (i+1 == len(s.params) || !s.params[i+1].PositionalOnly) && !slash {
			parts = append(parts, "/")
			slash = true
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
