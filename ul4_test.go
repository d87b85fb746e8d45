package ul4_test

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/zephyrtronium/ul4"
	"github.com/zephyrtronium/ul4/astload"
)

func mustBody(t *testing.T, src string) *ul4.Template {
	t.Helper()
	tmpl, err := astload.BodyYAML(t.Name(), []byte(src))
	if err != nil {
		t.Fatalf("could not load %q: %v", src, err)
	}
	if err := ul4.Validate(tmpl); err != nil {
		t.Fatalf("invalid tree %q: %v", src, err)
	}
	return tmpl
}

func run(t *testing.T, src string, vars map[string]interface{}) (ul4.Value, string, error) {
	t.Helper()
	var out strings.Builder
	c := ul4.NewContext(&out, nil)
	r, err := ul4.RunContext(c, mustBody(t, src), vars)
	return r, out.String(), err
}

func TestRenderLoop(t *testing.T) {
	out, err := ul4.Renders(mustBody(t, `[[for, i, [list, 1, 2, 3], [[print, [var, i]]]]]`), nil)
	if err != nil {
		t.Fatal(err)
	}
	if out != "123" {
		t.Errorf("have %q, want %q", out, "123")
	}
}

func TestBindSignature(t *testing.T) {
	src := `
- [template, f, [a, [b, 2], "*rest", "**kw"], [[return, [list, [var, a], [var, b], [var, rest], [var, kw]]]]]
- [return, [call, [var, f], 1, 3, 4, 5, [keywordarg, c, 6]]]
`
	r, _, err := run(t, src, nil)
	if err != nil {
		t.Fatal(err)
	}
	kw := ul4.NewDict()
	if err := kw.Set("c", int64(6)); err != nil {
		t.Fatal(err)
	}
	want := ul4.NewList(int64(1), int64(3), ul4.NewList(int64(4), int64(5)), kw)
	if !ul4.Equal(r, want) {
		t.Errorf("have %s, want %s", ul4.Repr(r), ul4.Repr(want))
	}
	if s := ul4.Repr(r); s != "[1, 3, [4, 5], {'c': 6}]" {
		t.Errorf("wrong repr: have %s", s)
	}
}

func TestBigShift(t *testing.T) {
	r, _, err := run(t, `[[return, [shiftleft, 1, 100]]]`, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := new(big.Int).Lsh(big.NewInt(1), 100)
	b, ok := r.(*big.Int)
	if !ok || b.Cmp(want) != 0 {
		t.Errorf("have %s, want %s", ul4.Repr(r), want)
	}
}

func TestDictComprehension(t *testing.T) {
	vars := map[string]interface{}{"d": map[string]interface{}{"a": 1, "b": 2, "c": 3}}
	r, _, err := run(t, `[[return, [dictcomp, [var, k], [mul, [var, v], 2], [k, v], [call, [attr, [var, d], items]], [gt, [var, v], 1]]]]`, vars)
	if err != nil {
		t.Fatal(err)
	}
	if s := ul4.Repr(r); s != "{'b': 4, 'c': 6}" {
		t.Errorf("have %s, want {'b': 4, 'c': 6}", s)
	}
}

func TestUndefinedAttributePrinted(t *testing.T) {
	_, out, err := run(t, `[[text, "x="], [print, [attr, [var, obj], missing]]]`, map[string]interface{}{"obj": "s"})
	if out != "x=" {
		t.Errorf("wrong output: have %q, want %q", out, "x=")
	}
	var le *ul4.LocationError
	if !errors.As(err, &le) {
		t.Fatalf("wrong error: have %v, want LocationError", err)
	}
	if k := le.Innermost().Node.Kind(); k != "print" {
		t.Errorf("error at %s, want print", k)
	}
	var ae *ul4.AttributeError
	if !errors.As(err, &ae) || ae.Name != "missing" {
		t.Errorf("wrong cause: %v", err)
	}
}

func TestCall(t *testing.T) {
	tmpl, err := astload.YAML([]byte(`[template, sq, [x], [[text, ignored], [return, [mul, [var, x], [var, x]]]]]`))
	if err != nil {
		t.Fatal(err)
	}
	r, err := ul4.Call(tmpl, map[string]interface{}{"x": 7})
	if err != nil {
		t.Fatal(err)
	}
	if r != ul4.Value(int64(49)) {
		t.Errorf("have %s, want 49", ul4.Repr(r))
	}
	if _, err := ul4.Call(tmpl, map[string]interface{}{"y": 7}); err == nil {
		t.Error("call with wrong variable succeeded")
	}
	f := ul4.NewFunction("twice", ul4.MustSignature(ul4.Req("s")), func(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
		s, err := args.StrAt(0)
		return s + s, err
	})
	if r, err := ul4.Call(f, map[string]interface{}{"s": "ab"}); err != nil || r != ul4.Value("abab") {
		t.Errorf("function call: have %v, %v", r, err)
	}
	if _, err := ul4.Call(5, nil); err == nil {
		t.Error("call of int succeeded")
	}
}

func TestHostFunction(t *testing.T) {
	f := ul4.NewFunction("greet", ul4.MustSignature(ul4.Req("who"), ul4.Opt("greeting", "hi")), func(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
		return args.Get("greeting").(string) + " " + args.Get("who").(string), nil
	})
	r, _, err := run(t, `[[return, [call, [var, greet], bob]]]`, map[string]interface{}{"greet": f})
	if err != nil {
		t.Fatal(err)
	}
	if r != ul4.Value("hi bob") {
		t.Errorf("have %s, want 'hi bob'", ul4.Repr(r))
	}
}

func TestLoadOptions(t *testing.T) {
	o, err := ul4.LoadOptions(strings.NewReader("max_steps: 100\nlog_level: debug\nescape: none\nindent: \"\\t\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := ul4.Options{MaxSteps: 100, LogLevel: "debug", Escape: "none", Indent: "\t"}
	if o != want {
		t.Errorf("have %+v, want %+v", o, want)
	}
	if _, err := ul4.LoadOptions(strings.NewReader("max_stepz: 1\n")); err == nil {
		t.Error("unknown option accepted")
	}
}

func TestApplyOptions(t *testing.T) {
	var out strings.Builder
	c := ul4.NewContext(&out, nil)
	o := ul4.Options{MaxSteps: 50, LogLevel: "debug", Escape: "none", Indent: "> "}
	if err := o.Apply(c); err != nil {
		t.Fatal(err)
	}
	if c.MaxSteps != 50 {
		t.Errorf("wrong MaxSteps: have %d, want 50", c.MaxSteps)
	}
	if c.Log.GetLevel() != zerolog.DebugLevel {
		t.Errorf("wrong log level: have %v", c.Log.GetLevel())
	}
	tmpl := mustBody(t, `[[indent, ""], [printx, "<"]]`)
	if err := ul4.RenderContext(c, tmpl, nil); err != nil {
		t.Fatal(err)
	}
	if out.String() != "> <" {
		t.Errorf("have %q, want %q", out.String(), "> <")
	}
	loop := mustBody(t, `[[while, true, []]]`)
	var se *ul4.StepLimitError
	if err := ul4.RenderContext(c, loop, nil); !errors.As(err, &se) {
		t.Errorf("wrong error: have %v, want StepLimitError", err)
	}

	bad := map[string]ul4.Options{
		"LogLevel": {LogLevel: "loud"},
		"Escape":   {Escape: "sql"},
	}
	for name, o := range bad {
		t.Run(name, func(t *testing.T) {
			if err := o.Apply(ul4.NewContext(nil, nil)); err == nil {
				t.Errorf("%+v accepted", o)
			}
		})
	}
}

func TestExecCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out strings.Builder
	c := ul4.NewContext(&out, nil)
	_, err := ul4.Exec(ctx, c, mustBody(t, `[[while, true, [[text, x]]]]`), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("wrong error: have %v, want context.Canceled", err)
	}
	if out.String() != "" {
		t.Errorf("output after cancel: %q", out.String())
	}
	// The context applies only to the run it was given to.
	if err := ul4.RenderContext(c, mustBody(t, `[[text, ok]]`), nil); err != nil {
		t.Fatal(err)
	}
	if out.String() != "ok" {
		t.Errorf("have %q, want %q", out.String(), "ok")
	}
}

func TestBuiltinsSorted(t *testing.T) {
	names := ul4.Builtins()
	if len(names) == 0 {
		t.Fatal("no builtins")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("builtins out of order at %d: %q, %q", i, names[i-1], names[i])
		}
	}
}
