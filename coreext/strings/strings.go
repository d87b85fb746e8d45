// Package strings adds the methods of str.
package strings

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/zephyrtronium/ul4"
	"github.com/zephyrtronium/ul4/internal"
)

func init() {
	internal.Register(initStrings)
}

func initStrings(r *internal.Registry) {
	r.AddMethods(internal.StrType, methods...)
}

// Casers carry state, so each call gets its own.
func upper(s string) string { return cases.Upper(language.Und).String(s) }
func lower(s string) string { return cases.Lower(language.Und).String(s) }
func title(s string) string { return cases.Title(language.Und).String(s) }

var none = ul4.MustSignature()

var methods = []*ul4.Method{
	{Name: "upper", Sig: none, Fn: convert(upper)},
	{Name: "lower", Sig: none, Fn: convert(lower)},
	{Name: "title", Sig: none, Fn: convert(title)},
	{Name: "capitalize", Sig: none, Fn: convert(capitalize)},
	{
		Name: "split",
		Sig:  ul4.MustSignature(ul4.Opt("sep", nil), ul4.Opt("count", nil)),
		Fn:   split,
	},
	{
		Name: "join",
		Sig:  ul4.MustSignature(ul4.Req("iterable").PosOnly()),
		Fn:   join,
	},
	{Name: "strip", Sig: stripSig, Fn: strip(strings.Trim, strings.TrimSpace)},
	{Name: "lstrip", Sig: stripSig, Fn: strip(strings.TrimLeft, func(s string) string { return strings.TrimLeftFunc(s, unicode.IsSpace) })},
	{Name: "rstrip", Sig: stripSig, Fn: strip(strings.TrimRight, func(s string) string { return strings.TrimRightFunc(s, unicode.IsSpace) })},
	{
		Name: "startswith",
		Sig:  ul4.MustSignature(ul4.Req("prefix").PosOnly()),
		Fn:   affix("startswith", strings.HasPrefix),
	},
	{
		Name: "endswith",
		Sig:  ul4.MustSignature(ul4.Req("suffix").PosOnly()),
		Fn:   affix("endswith", strings.HasSuffix),
	},
	{Name: "find", Sig: rangeSig, Fn: find},
	{Name: "count", Sig: rangeSig, Fn: count},
	{
		Name: "replace",
		Sig:  ul4.MustSignature(ul4.Req("old").PosOnly(), ul4.Req("new").PosOnly(), ul4.Opt("count", nil).PosOnly()),
		Fn:   replace,
	},
}

var (
	stripSig = ul4.MustSignature(ul4.Opt("chars", nil).PosOnly())
	rangeSig = ul4.MustSignature(ul4.Req("sub").PosOnly(), ul4.Opt("start", nil).PosOnly(), ul4.Opt("end", nil).PosOnly())
)

func convert(f func(string) string) func(c *ul4.Context, self ul4.Value, args *ul4.BoundArguments) (ul4.Value, error) {
	return func(c *ul4.Context, self ul4.Value, args *ul4.BoundArguments) (ul4.Value, error) {
		return f(self.(string)), nil
	}
}

// capitalize uppercases the first character and lowercases the rest.
func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return upper(string(r)) + lower(s[n:])
}

func split(c *ul4.Context, self ul4.Value, args *ul4.BoundArguments) (ul4.Value, error) {
	s := self.(string)
	n := -1
	if args.At(1) != nil {
		k, err := args.IntAt(1)
		if err != nil {
			return nil, err
		}
		if k >= 0 {
			n = int(k) + 1
		}
	}
	var parts []string
	if args.At(0) == nil {
		parts = fields(s, n)
	} else {
		sep, err := args.StrAt(0)
		if err != nil {
			return nil, err
		}
		if sep == "" {
			return nil, &ul4.ValueError{Msg: "empty separator"}
		}
		parts = strings.SplitN(s, sep, n)
	}
	r := make([]ul4.Value, len(parts))
	for i, p := range parts {
		r[i] = p
	}
	return ul4.NewList(r...), nil
}

// fields splits on runs of whitespace, making at most n parts if n > 0. The
// last part keeps its leading whitespace stripped but its interior intact.
func fields(s string, n int) []string {
	var r []string
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	for s != "" {
		if n > 0 && len(r) == n-1 {
			r = append(r, s)
			break
		}
		i := strings.IndexFunc(s, unicode.IsSpace)
		if i < 0 {
			r = append(r, s)
			break
		}
		r = append(r, s[:i])
		s = strings.TrimLeftFunc(s[i:], unicode.IsSpace)
	}
	return r
}

func join(c *ul4.Context, self ul4.Value, args *ul4.BoundArguments) (ul4.Value, error) {
	items, err := internal.Collect(c, args.At(0))
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(items))
	for i, v := range items {
		s, ok := v.(string)
		if !ok {
			return nil, internal.Mismatch("str.join", self, v)
		}
		parts[i] = s
	}
	return strings.Join(parts, self.(string)), nil
}

func strip(trim func(s, cutset string) string, space func(string) string) func(c *ul4.Context, self ul4.Value, args *ul4.BoundArguments) (ul4.Value, error) {
	return func(c *ul4.Context, self ul4.Value, args *ul4.BoundArguments) (ul4.Value, error) {
		if args.At(0) == nil {
			return space(self.(string)), nil
		}
		chars, err := args.StrAt(0)
		if err != nil {
			return nil, err
		}
		return trim(self.(string), chars), nil
	}
}

// affix checks a prefix or suffix given as a string or a list of strings.
func affix(name string, has func(s, a string) bool) func(c *ul4.Context, self ul4.Value, args *ul4.BoundArguments) (ul4.Value, error) {
	return func(c *ul4.Context, self ul4.Value, args *ul4.BoundArguments) (ul4.Value, error) {
		s := self.(string)
		switch x := args.At(0).(type) {
		case string:
			return has(s, x), nil
		case *ul4.List:
			for _, v := range x.Items {
				a, ok := v.(string)
				if !ok {
					return nil, internal.Mismatch("str."+name, self, v)
				}
				if has(s, a) {
					return true, nil
				}
			}
			return false, nil
		}
		if err := internal.Defined(args.At(0)); err != nil {
			return nil, err
		}
		return nil, internal.Mismatch("str."+name, self, args.At(0))
	}
}

// window returns the part of s between the start and end arguments, with
// Python slice semantics on rune indices, and the rune offset of that part.
func window(s string, args *ul4.BoundArguments) (string, int, error) {
	r := []rune(s)
	bound := func(i, def int) (int, error) {
		if args.At(i) == nil {
			return def, nil
		}
		n, err := args.IntAt(i)
		if err != nil {
			return 0, err
		}
		if n < 0 {
			n += int64(len(r))
			if n < 0 {
				n = 0
			}
		}
		if n > int64(len(r)) {
			n = int64(len(r))
		}
		return int(n), nil
	}
	start, err := bound(1, 0)
	if err != nil {
		return "", 0, err
	}
	end, err := bound(2, len(r))
	if err != nil {
		return "", 0, err
	}
	if end < start {
		return "", start, nil
	}
	return string(r[start:end]), start, nil
}

func find(c *ul4.Context, self ul4.Value, args *ul4.BoundArguments) (ul4.Value, error) {
	sub, err := args.StrAt(0)
	if err != nil {
		return nil, err
	}
	w, off, err := window(self.(string), args)
	if err != nil {
		return nil, err
	}
	i := strings.Index(w, sub)
	if i < 0 {
		return int64(-1), nil
	}
	return int64(off + utf8.RuneCountInString(w[:i])), nil
}

func count(c *ul4.Context, self ul4.Value, args *ul4.BoundArguments) (ul4.Value, error) {
	sub, err := args.StrAt(0)
	if err != nil {
		return nil, err
	}
	w, _, err := window(self.(string), args)
	if err != nil {
		return nil, err
	}
	return int64(strings.Count(w, sub)), nil
}

func replace(c *ul4.Context, self ul4.Value, args *ul4.BoundArguments) (ul4.Value, error) {
	old, err := args.StrAt(0)
	if err != nil {
		return nil, err
	}
	repl, err := args.StrAt(1)
	if err != nil {
		return nil, err
	}
	n := -1
	if args.At(2) != nil {
		k, err := args.IntAt(2)
		if err != nil {
			return nil, err
		}
		if k >= 0 {
			n = int(k)
		}
	}
	return strings.Replace(self.(string), old, repl, n), nil
}
