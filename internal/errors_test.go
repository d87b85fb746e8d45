package internal_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/zephyrtronium/ul4"
	"github.com/zephyrtronium/ul4/astload"
	"github.com/zephyrtronium/ul4/internal"
	"github.com/zephyrtronium/ul4/testutils"
)

func runBody(t *testing.T, src string, vars map[string]interface{}) (string, error) {
	t.Helper()
	tmpl, err := astload.BodyYAML("main", []byte(src))
	if err != nil {
		t.Fatalf("could not load %q: %v", src, err)
	}
	var out strings.Builder
	_, err = ul4.RunContext(testutils.TestingContext(&out), tmpl, vars)
	return out.String(), err
}

// TestLocationAtPrint tests that using an undefined attribute is reported
// where the value is used rather than where it was produced.
func TestLocationAtPrint(t *testing.T) {
	out, err := runBody(t, `[[text, a], [print, [attr, [var, obj], missing]]]`, map[string]interface{}{"obj": int64(1)})
	if out != "a" {
		t.Errorf("wrong output before error: have %q, want %q", out, "a")
	}
	var le *ul4.LocationError
	if !errors.As(err, &le) {
		t.Fatalf("wrong error: have %v, want LocationError", err)
	}
	in := le.Innermost()
	if k := in.Node.Kind(); k != "print" {
		t.Errorf("wrong node: have %s, want print", k)
	}
	if in.Template == nil || in.Template.Name != "main" {
		t.Errorf("wrong template: have %v", in.Template)
	}
	var ae *ul4.AttributeError
	if !errors.As(err, &ae) {
		t.Fatalf("wrong cause: have %v, want AttributeError", err)
	}
	if ae.Name != "missing" || ae.Object != internal.Value(int64(1)) {
		t.Errorf("wrong attribute error: have %+v", ae)
	}
}

// TestLocationChain tests that each call frame adds one location.
func TestLocationChain(t *testing.T) {
	src := `[[template, inner, null, [[print, [var, nope]]]], [template, outer, null, [[render, [call, [var, inner]]]]], [render, [call, [var, outer]]]]`
	_, err := runBody(t, src, nil)
	var chain []*ul4.LocationError
	for e := err; ; {
		le, ok := e.(*ul4.LocationError)
		if !ok {
			break
		}
		chain = append(chain, le)
		e = le.Err
	}
	want := []struct{ template, kind string }{
		{"main", "render"},
		{"outer", "render"},
		{"inner", "print"},
	}
	if len(chain) != len(want) {
		t.Fatalf("wrong chain length: have %d, want %d; error: %v", len(chain), len(want), err)
	}
	for i, w := range want {
		if chain[i].Template.Name != w.template || chain[i].Node.Kind() != w.kind {
			t.Errorf("wrong frame %d: have %s %s, want %s %s", i, chain[i].Template.Name, chain[i].Node.Kind(), w.template, w.kind)
		}
	}
	frames := chain[2].Frames()
	if len(frames) != 3 {
		t.Fatalf("wrong frames: have %d, want 3", len(frames))
	}
	if frames[0].Site != nil {
		t.Errorf("outermost frame has a call site: %v", frames[0].Site.Kind())
	}
	if frames[2].Template.Name != "inner" {
		t.Errorf("wrong innermost frame: have %s, want inner", frames[2].Template.Name)
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Errorf("message doesn't name the variable: %q", err.Error())
	}
}

// TestLocationSource tests formatting of locations against source text.
func TestLocationSource(t *testing.T) {
	doc := `
source: "<?print x?>\n<?print nope?>"
template: [template, page, null, [{at: [0, 11], node: [print, [var, x]]}, {at: [12, 26], node: [print, [var, nope]]}]]
`
	tmpl, err := astload.YAML([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	_, err = ul4.Renders(tmpl, map[string]interface{}{"x": 1})
	var le *ul4.LocationError
	if !errors.As(err, &le) {
		t.Fatalf("wrong error: have %v, want LocationError", err)
	}
	if loc := le.Innermost().Location(); loc != "page:2:1 (print)" {
		t.Errorf("wrong location: have %q, want %q", loc, "page:2:1 (print)")
	}
}

// TestRemainingArguments tests expansion of arguments that can't be
// expanded.
func TestRemainingArguments(t *testing.T) {
	cases := map[string]struct {
		src  string
		kind ul4.ArgumentErrorKind
	}{
		"Args":        {`[[expr, [call, [var, len], [unpack, 5]]]]`, internal.RemainingArguments},
		"Kwargs":      {`[[expr, [call, [var, len], [dictunpack, [list]]]]]`, internal.RemainingKeywordArguments},
		"KwargsNames": {`[[expr, [call, [var, len], [dictunpack, [dict, [dictitem, 1, 2]]]]]]`, internal.RemainingKeywordArguments},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := runBody(t, c.src, nil)
			var ae *ul4.ArgumentError
			if !errors.As(err, &ae) {
				t.Fatalf("wrong error: have %v, want ArgumentError", err)
			}
			if ae.Kind != c.kind {
				t.Errorf("wrong kind: have %v, want %v", ae.Kind, c.kind)
			}
		})
	}
}

// TestUnpackIterationError tests that an error raised while iterating a *args
// expansion is reported as itself.
func TestUnpackIterationError(t *testing.T) {
	src := `[[expr, [call, [var, len], [unpack, [genexpr, [truediv, 1, [var, x]], x, [list, 1, 0]]]]]]`
	_, err := runBody(t, src, nil)
	var zd *ul4.ZeroDivisionError
	if !errors.As(err, &zd) {
		t.Fatalf("wrong error: have %v, want ZeroDivisionError", err)
	}
	var ae *ul4.ArgumentError
	if errors.As(err, &ae) {
		t.Errorf("iteration error hidden as %v", ae)
	}
}

// TestValidate tests structural checks of trees.
func TestValidate(t *testing.T) {
	shared := &internal.Const{Value: int64(1)}
	cases := map[string]struct {
		tmpl *internal.Template
		ok   bool
	}{
		"Fine": {
			tmpl: &internal.Template{Name: "t", Body: []internal.Stmt{&internal.Print{X: &internal.Const{Value: "x"}}}},
			ok:   true,
		},
		"Shared": {
			tmpl: &internal.Template{Name: "t", Body: []internal.Stmt{&internal.Print{X: shared}, &internal.Print{X: shared}}},
		},
		"Missing": {
			tmpl: &internal.Template{Name: "t", Body: []internal.Stmt{&internal.Print{}}},
		},
		"BadSignature": {
			tmpl: &internal.Template{Name: "t", Signed: true, Params: []*internal.Param{
				{Name: "a", Mode: internal.Required},
				{Name: "a", Mode: internal.Required},
			}},
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			err := internal.Validate(c.tmpl)
			if (err == nil) != c.ok {
				t.Fatalf("wrong result: have %v, want ok=%t", err, c.ok)
			}
			if err != nil {
				var se *ul4.StructureError
				if !errors.As(err, &se) {
					t.Errorf("wrong error type: have %T", err)
				}
			}
		})
	}
}
