package astload_test

import (
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zephyrtronium/ul4"
	"github.com/zephyrtronium/ul4/astload"
	"github.com/zephyrtronium/ul4/internal"
)

func TestYAMLTemplate(t *testing.T) {
	src := `[template, greet, [who, [punct, "!"]], [[text, "Hello, "], [print, [var, who]], [print, [var, punct]]], "Greets someone."]`
	tmpl, err := astload.YAML([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if tmpl.Name != "greet" || tmpl.Doc != "Greets someone." || !tmpl.Signed {
		t.Errorf("wrong template header: name %q, doc %q, signed %t", tmpl.Name, tmpl.Doc, tmpl.Signed)
	}
	out, err := ul4.Renders(tmpl, map[string]interface{}{"who": "world"})
	if err != nil {
		t.Fatal(err)
	}
	if out != "Hello, world!" {
		t.Errorf("wrong output: have %q, want %q", out, "Hello, world!")
	}
}

func TestJSONTemplate(t *testing.T) {
	src := `{"source": "<?print 2**70?>", "template": ["template", "big", null, [["return", ["add", 1180591620717411303423, 1]]]]}`
	tmpl, err := astload.JSON([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if tmpl.Source != "<?print 2**70?>" {
		t.Errorf("wrong source: have %q", tmpl.Source)
	}
	r, err := ul4.RunContext(ul4.NewContext(nil, nil), tmpl, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := new(big.Int).Lsh(big.NewInt(1), 70)
	if !ul4.Equal(r, want) {
		t.Errorf("wrong result: have %s, want %s", ul4.Repr(r), want)
	}
}

func TestLoadByName(t *testing.T) {
	if _, err := astload.Load("t.json", []byte(`["template", "t", null, []]`)); err != nil {
		t.Errorf("JSON by name failed: %v", err)
	}
	if _, err := astload.Load("t.yaml", []byte(`[template, t, null, []]`)); err != nil {
		t.Errorf("YAML by name failed: %v", err)
	}
}

func TestConstants(t *testing.T) {
	cases := map[string]struct {
		src  string
		want internal.Value
	}{
		"Int":      {`7`, int64(7)},
		"Float":    {`1.5`, 1.5},
		"String":   {`"x"`, "x"},
		"None":     {`null`, nil},
		"Bool":     {`true`, true},
		"BigInt":   {`[const, bigint, "0x10000000000000000"]`, new(big.Int).Lsh(big.NewInt(1), 64)},
		"Decimal":  {`[const, decimal, "0.1"]`, decimal.RequireFromString("0.1")},
		"Date":     {`[const, date, "2024-02-29"]`, internal.NewDate(2024, time.February, 29)},
		"DateTime": {`[const, datetime, "2024-02-29T12:30:00"]`, time.Date(2024, time.February, 29, 12, 30, 0, 0, time.UTC)},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			tmpl, err := astload.BodyYAML("c", []byte(`[[return, `+c.src+`]]`))
			if err != nil {
				t.Fatal(err)
			}
			r, err := ul4.RunContext(ul4.NewContext(nil, nil), tmpl, nil)
			if err != nil {
				t.Fatal(err)
			}
			if ul4.TypeOf(r) != ul4.TypeOf(c.want) || !ul4.Equal(r, c.want) {
				t.Errorf("wrong constant: have %s, want %s", ul4.Repr(r), ul4.Repr(c.want))
			}
		})
	}
}

func TestSignatureMarkers(t *testing.T) {
	tmpl, err := astload.YAML([]byte(`[template, f, [a, "/", b, "*", c, "**kw"], []]`))
	if err != nil {
		t.Fatal(err)
	}
	sig, err := tmpl.Signature()
	if err != nil {
		t.Fatal(err)
	}
	if s := sig.String(); s != "(a, /, b, *, c, **kw)" {
		t.Errorf("wrong signature: have %q, want %q", s, "(a, /, b, *, c, **kw)")
	}
}

func TestSpans(t *testing.T) {
	tmpl, err := astload.BodyYAML("s", []byte(`[[print, [add, 1, [var, x]]], {at: [40, 45], node: [text, hi]}]`))
	if err != nil {
		t.Fatal(err)
	}
	var kinds []string
	var starts []int
	internal.Walk(tmpl, func(n internal.Node) bool {
		if _, ok := n.(*internal.Template); ok {
			return true
		}
		kinds = append(kinds, n.Kind())
		starts = append(starts, n.Pos().Start)
		return true
	})
	wantKinds := []string{"print", "add", "const", "var", "text"}
	wantStarts := []int{0, 1, 2, 3, 40}
	if len(kinds) != len(wantKinds) {
		t.Fatalf("wrong nodes: have %v, want %v", kinds, wantKinds)
	}
	for i := range kinds {
		if kinds[i] != wantKinds[i] || starts[i] != wantStarts[i] {
			t.Errorf("wrong node %d: have %s at %d, want %s at %d", i, kinds[i], starts[i], wantKinds[i], wantStarts[i])
		}
	}
}

func TestErrors(t *testing.T) {
	cases := map[string]string{
		"UnknownKind":    `[[frobnicate, 1]]`,
		"Arity":          `[[print, 1, 2]]`,
		"NotStatement":   `[[add, 1, 2]]`,
		"NotExpression":  `[[print, [break]]]`,
		"BadTarget":      `[[setvar, 1, 2]]`,
		"BadBody":        `[[for, x, [list], 5]]`,
		"RenderNotCall":  `[[render, [var, f]]]`,
		"BadConst":       `[[return, [const, bigint, "x"]]]`,
		"UnknownConst":   `[[return, [const, color, "red"]]]`,
		"BadIndent":      `[[render, [call, [var, f]], 5]]`,
		"ElseFirst":      `[[ieie, [[text, a]]]]`,
		"NoBranches":     `[[ieie]]`,
		"BadParam":       `[[template, f, [[a]], []]]`,
		"BadSignature":   `[[template, f, sig, []]]`,
		"BadAugTarget":   `[[addvar, [a, b], 1]]`,
		"BadSpan":        `[{at: [1], node: [text, a]}]`,
		"NotDictItem":    `[[return, [dict, 1]]]`,
		"UnknownRenderX": `[[renderxx, [call, [var, f]]]]`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := astload.BodyYAML(name, []byte(src))
			var se *internal.StructureError
			if !errors.As(err, &se) {
				t.Errorf("wrong error for %q: have %v, want StructureError", src, err)
			}
		})
	}
}

func TestDocumentNotTemplate(t *testing.T) {
	if _, err := astload.YAML([]byte(`[text, a]`)); err == nil {
		t.Error("non-template document loaded")
	}
	if _, err := astload.YAML([]byte(`{source: x}`)); err == nil {
		t.Error("document without template loaded")
	}
}

// TestBoolNames tests names and text that YAML reads as booleans when bare.
func TestBoolNames(t *testing.T) {
	bare := map[string]string{
		"Target":    `[[setvar, n, 3]]`,
		"Var":       `[[print, [var, y]]]`,
		"Attr":      `[[print, [attr, [var, x], on]]]`,
		"Text":      `[[text, off]]`,
		"Param":     `[[template, f, [yes], []]]`,
		"ParamDflt": `[[template, f, [[no, 1]], []]]`,
	}
	for name, src := range bare {
		t.Run(name, func(t *testing.T) {
			_, err := astload.BodyYAML(name, []byte(src))
			var se *internal.StructureError
			if !errors.As(err, &se) {
				t.Fatalf("wrong error for %q: have %v, want StructureError", src, err)
			}
			if !strings.Contains(se.Error(), "quote") {
				t.Errorf("error doesn't say to quote: %v", se)
			}
		})
	}
	tmpl, err := astload.BodyYAML("quoted", []byte(`[[setvar, "n", 3], [text, "on"], [print, [var, "n"]]]`))
	if err != nil {
		t.Fatal(err)
	}
	out, err := ul4.Renders(tmpl, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out != "on3" {
		t.Errorf("have %q, want %q", out, "on3")
	}
}
