// Package astload loads template trees from YAML or JSON fixtures.
//
// A node is a sequence whose first element is its kind, followed by its
// operands:
//
//	[add, 1, [var, x]]
//
// Scalars in expression position are constants. Constants that YAML and JSON
// can't represent directly are written [const, type, text] where type is one
// of bigint, decimal, date, or datetime.
//
// Assignment and loop targets are a variable name, an attr or item node, or a
// sequence of targets to unpack into. Statement bodies are sequences of
// statements. Templates are written
//
//	[template, name, signature, [body...], doc]
//
// where signature is null for a template taking only keyword variables, or a
// sequence of parameters: "name" for a required parameter, [name, default]
// for a parameter with a default, "*args" and "**kwargs" for variadic
// parameters, and the markers "/" and "*" for positional-only and
// keyword-only parameters as in Python. The doc is optional.
//
// A conditional is [ieie, [branch, cond, [body...]]..., [else body...]], where
// the else body is optional. Render nodes are [render, call, indent], with the
// indent optional; renderblock and renderblocks nodes take their body after
// the call.
//
// YAML fixtures follow YAML 1.1, which reads bare y, n, yes, no, on, and off
// (in any case) as booleans. Names and text with those spellings must be
// quoted: [setvar, "n", 3]. Loading reports a bool where a name or text is
// expected as an error.
//
// Each node is given the span [i, i+1] where i is its index in pre-order.
// Writing {at: [start, stop], node: n} in place of n gives n an explicit span.
// A document is either a template node or a mapping with keys template and,
// optionally, source, which is used to report locations as lines and columns.
package astload

import (
	"bytes"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"

	"github.com/zephyrtronium/ul4/internal"
)

// YAML loads a template from a YAML document.
func YAML(b []byte) (*internal.Template, error) {
	var v interface{}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("couldn't parse YAML fixture: %w", err)
	}
	return Document(normalize(v))
}

// JSON loads a template from a JSON document.
func JSON(b []byte) (*internal.Template, error) {
	d := json.NewDecoder(bytes.NewReader(b))
	d.UseNumber()
	var v interface{}
	if err := d.Decode(&v); err != nil {
		return nil, fmt.Errorf("couldn't parse JSON fixture: %w", err)
	}
	return Document(v)
}

// Load loads a template from a document, choosing the format by name's
// extension. Names ending in .json are JSON; anything else is YAML.
func Load(name string, b []byte) (*internal.Template, error) {
	if strings.HasSuffix(name, ".json") {
		return JSON(b)
	}
	return YAML(b)
}

// Document builds a template from a decoded document. Mappings must have
// string keys.
func Document(v interface{}) (*internal.Template, error) {
	var src string
	if m, ok := v.(map[string]interface{}); ok {
		if _, ok := m["at"]; !ok {
			s, ok := m["source"]
			if ok {
				if src, ok = s.(string); !ok {
					return nil, fail("document", "source must be a string")
				}
			}
			if v, ok = m["template"]; !ok {
				return nil, fail("document", "missing template")
			}
		}
	}
	var l loader
	n, err := l.node(v)
	if err != nil {
		return nil, err
	}
	t, ok := n.(*internal.Template)
	if !ok {
		return nil, fail(n.Kind(), "document is not a template")
	}
	if src != "" {
		t.SetSource(src)
	}
	return t, nil
}

// Body builds an unsigned template named name from a sequence of statements.
func Body(name string, v interface{}) (*internal.Template, error) {
	var l loader
	body, err := l.stmts(v)
	if err != nil {
		return nil, err
	}
	return &internal.Template{Name: name, Body: body}, nil
}

// BodyYAML is Body with the statements read from YAML.
func BodyYAML(name string, b []byte) (*internal.Template, error) {
	var v interface{}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("couldn't parse YAML fixture: %w", err)
	}
	return Body(name, normalize(v))
}

// normalize converts the maps produced by yaml.v2 to string-keyed maps.
func normalize(v interface{}) interface{} {
	switch x := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(x))
		for k, e := range x {
			m[fmt.Sprint(k)] = normalize(e)
		}
		return m
	case []interface{}:
		for i, e := range x {
			x[i] = normalize(e)
		}
	}
	return v
}

func fail(kind, msg string, args ...interface{}) error {
	return &internal.StructureError{Kind: kind, Msg: fmt.Sprintf(msg, args...)}
}

// loader numbers nodes in pre-order as it builds them.
type loader struct {
	n int
}

// next reserves the span of the next node in pre-order.
func (l *loader) next() internal.Pos {
	p := internal.Pos{Start: l.n, Stop: l.n + 1}
	l.n++
	return p
}

// unwrap removes an {at, node} wrapper, returning the span if there was one.
func unwrap(v interface{}) (interface{}, *internal.Pos, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return v, nil, nil
	}
	at, ok := m["at"].([]interface{})
	if !ok || len(at) != 2 {
		return nil, nil, fail("at", "span must be [start, stop]")
	}
	start, err1 := integer(at[0])
	stop, err2 := integer(at[1])
	if err1 != nil || err2 != nil {
		return nil, nil, fail("at", "span must be [start, stop]")
	}
	n, ok := m["node"]
	if !ok {
		return nil, nil, fail("at", "missing node")
	}
	return n, &internal.Pos{Start: int(start), Stop: int(stop)}, nil
}

func integer(v interface{}) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int64:
		return x, nil
	case uint64:
		return int64(x), nil
	case json.Number:
		return x.Int64()
	}
	return 0, fmt.Errorf("%v is not an integer", v)
}

// split returns the kind and operands of a node sequence.
func split(v interface{}) (string, []interface{}, bool) {
	s, ok := v.([]interface{})
	if !ok || len(s) == 0 {
		return "", nil, false
	}
	k, ok := s[0].(string)
	if !ok {
		return "", nil, false
	}
	return k, s[1:], true
}

// node builds any node.
func (l *loader) node(v interface{}) (internal.Node, error) {
	v, at, err := unwrap(v)
	if err != nil {
		return nil, err
	}
	var n internal.Node
	kind, args, ok := split(v)
	switch {
	case !ok:
		n, err = l.constant(v)
	default:
		at := l.next()
		if n, err = l.build(kind, args); err == nil {
			n.SetPos(at)
		}
	}
	if err != nil {
		return nil, err
	}
	if at != nil {
		n.SetPos(*at)
	}
	return n, nil
}

func (l *loader) expr(v interface{}) (internal.Expr, error) {
	n, err := l.node(v)
	if err != nil {
		return nil, err
	}
	e, ok := n.(internal.Expr)
	if !ok {
		return nil, fail(n.Kind(), "not an expression")
	}
	return e, nil
}

// optExpr builds an expression, or nil for null.
func (l *loader) optExpr(v interface{}) (internal.Expr, error) {
	if v == nil {
		return nil, nil
	}
	return l.expr(v)
}

func (l *loader) exprs(vs []interface{}) ([]internal.Expr, error) {
	r := make([]internal.Expr, len(vs))
	for i, v := range vs {
		var err error
		if r[i], err = l.expr(v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (l *loader) stmt(v interface{}) (internal.Stmt, error) {
	n, err := l.node(v)
	if err != nil {
		return nil, err
	}
	s, ok := n.(internal.Stmt)
	if !ok {
		return nil, fail(n.Kind(), "not a statement")
	}
	return s, nil
}

func (l *loader) stmts(v interface{}) ([]internal.Stmt, error) {
	if v == nil {
		return nil, nil
	}
	vs, ok := v.([]interface{})
	if !ok {
		return nil, fail("body", "body must be a sequence of statements")
	}
	r := make([]internal.Stmt, len(vs))
	for i, v := range vs {
		var err error
		if r[i], err = l.stmt(v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func arity(kind string, args []interface{}, min, max int) error {
	if len(args) < min || len(args) > max {
		if min == max {
			return fail(kind, "want %d operands, have %d", min, len(args))
		}
		return fail(kind, "want %d to %d operands, have %d", min, max, len(args))
	}
	return nil
}

func name(kind string, v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fail(kind, "%v is not a name%s", v, boolHint(v))
	}
	return s, nil
}

// boolHint explains a bool found where a string was expected. YAML 1.1 reads
// bare y, n, yes, no, on, and off as booleans.
func boolHint(v interface{}) string {
	if _, ok := v.(bool); ok {
		return "; quote names and text that YAML reads as booleans, like \"n\" or \"on\""
	}
	return ""
}

// constant builds a Const from a scalar.
func (l *loader) constant(v interface{}) (internal.Node, error) {
	val, err := scalar(v)
	if err != nil {
		return nil, err
	}
	n := &internal.Const{Value: val}
	n.SetPos(l.next())
	return n, nil
}

func scalar(v interface{}) (internal.Value, error) {
	switch x := v.(type) {
	case nil, bool, string, float64:
		return x, nil
	case int:
		return int64(x), nil
	case int64:
		return x, nil
	case uint64:
		return internal.FromGo(x), nil
	case json.Number:
		s := x.String()
		if strings.ContainsAny(s, ".eE") {
			f, err := x.Float64()
			if err != nil {
				return nil, fail("const", "bad number %s", s)
			}
			return f, nil
		}
		b, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, fail("const", "bad number %s", s)
		}
		return internal.NewInt(b), nil
	}
	return nil, fail("const", "can't use %T as a constant", v)
}

// typed parses the text of a typed constant.
func typed(typ, text string) (internal.Value, error) {
	switch typ {
	case "bigint":
		b, ok := new(big.Int).SetString(text, 0)
		if !ok {
			return nil, fail("const", "bad bigint %q", text)
		}
		return internal.NewInt(b), nil
	case "decimal":
		d, err := decimal.NewFromString(text)
		if err != nil {
			return nil, fail("const", "bad decimal %q: %v", text, err)
		}
		return d, nil
	case "date":
		t, err := time.Parse("2006-01-02", text)
		if err != nil {
			return nil, fail("const", "bad date %q: %v", text, err)
		}
		return internal.DateOf(t), nil
	case "datetime":
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05.999999999"} {
			if t, err := time.Parse(layout, text); err == nil {
				return t, nil
			}
		}
		return nil, fail("const", "bad datetime %q", text)
	}
	return nil, fail("const", "unknown constant type %q", typ)
}
