// Package functions provides the general-purpose builtin functions: len,
// repr, the defined-ness checks, attribute helpers, iteration helpers,
// aggregates, and JSON conversion.
package functions

import (
	"math"
	"math/big"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/zephyrtronium/ul4"
	"github.com/zephyrtronium/ul4/internal"
)

func init() {
	internal.Register(initFunctions)
}

func initFunctions(r *internal.Registry) {
	obj := ul4.MustSignature(ul4.Req("obj").PosOnly())
	r.AddFunction("len", obj, length)
	r.AddFunction("repr", obj, repr)
	r.AddFunction("isdefined", obj, isdefined)
	r.AddFunction("isundefined", obj, isundefined)
	r.AddFunction("isnone", obj, isnone)
	r.AddFunction("abs", obj, abs)
	r.AddFunction("dir", obj, dir)
	r.AddFunction("getattr", ul4.MustSignature(ul4.Req("obj").PosOnly(), ul4.Req("attrname").PosOnly(), ul4.Args("default")), getattr)
	r.AddFunction("setattr", ul4.MustSignature(ul4.Req("obj").PosOnly(), ul4.Req("attrname").PosOnly(), ul4.Req("value").PosOnly()), setattr)
	r.AddFunction("hasattr", ul4.MustSignature(ul4.Req("obj").PosOnly(), ul4.Req("attrname").PosOnly()), hasattr)
	r.AddFunction("range", ul4.MustSignature(ul4.Args("args")), rangeFn)
	r.AddFunction("enumerate", ul4.MustSignature(ul4.Req("iterable"), ul4.Opt("start", int64(0))), enumerate)
	r.AddFunction("zip", ul4.MustSignature(ul4.Args("iterables")), zip)
	r.AddFunction("min", ul4.MustSignature(ul4.Args("args")), minFn)
	r.AddFunction("max", ul4.MustSignature(ul4.Args("args")), maxFn)
	r.AddFunction("sum", ul4.MustSignature(ul4.Req("iterable").PosOnly(), ul4.Opt("start", int64(0)).PosOnly()), sum)
	r.AddFunction("sorted", ul4.MustSignature(ul4.Req("iterable").PosOnly(), ul4.Opt("key", nil), ul4.Opt("reverse", false)), sorted)
	r.AddFunction("reversed", obj, reversed)
	r.AddFunction("any", ul4.MustSignature(ul4.Req("iterable").PosOnly()), anyFn)
	r.AddFunction("all", ul4.MustSignature(ul4.Req("iterable").PosOnly()), allFn)
	r.AddFunction("asjson", obj, asjson)
	r.AddFunction("fromjson", ul4.MustSignature(ul4.Req("string").PosOnly()), fromjson)
}

func length(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
	n, err := internal.Len(args.At(0))
	if err != nil {
		return nil, err
	}
	return int64(n), nil
}

func repr(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
	return ul4.Repr(args.At(0)), nil
}

func isdefined(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
	return !internal.IsUndefined(args.At(0)), nil
}

func isundefined(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
	return internal.IsUndefined(args.At(0)), nil
}

func isnone(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
	return args.At(0) == nil, nil
}

// abs returns the absolute value of a number or timedelta.
func abs(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
	v := args.At(0)
	switch x := v.(type) {
	case bool:
		if x {
			return int64(1), nil
		}
		return int64(0), nil
	case int64:
		if x >= 0 {
			return x, nil
		}
	case *big.Int:
		if x.Sign() >= 0 {
			return x, nil
		}
	case float64:
		return math.Abs(x), nil
	case decimal.Decimal:
		return x.Abs(), nil
	case ul4.TimeDelta:
		if x.Days >= 0 {
			return x, nil
		}
	case ul4.MonthDelta:
		if x >= 0 {
			return x, nil
		}
	default:
		if err := internal.Defined(v); err != nil {
			return nil, err
		}
		return nil, internal.Mismatch("abs", v)
	}
	return internal.Neg(v)
}

func dir(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
	v := args.At(0)
	if err := internal.Defined(v); err != nil {
		return nil, err
	}
	names := ul4.TypeOf(v).Dir(v)
	items := make([]ul4.Value, len(names))
	for i, name := range names {
		items[i] = name
	}
	return internal.NewSet(items...)
}

// getattr returns an attribute, or the default if the attribute does not
// exist and a default is given.
func getattr(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
	name, err := args.StrAt(1)
	if err != nil {
		return nil, err
	}
	def := args.At(2).(*ul4.List)
	if def.Len() > 1 {
		return nil, &ul4.ArgumentError{Kind: internal.TooManyArguments, Callable: "getattr", Position: 3, Have: 2 + def.Len()}
	}
	v, err := internal.GetAttr(c, args.At(0), name)
	if err != nil {
		return nil, err
	}
	if u, ok := v.(*ul4.Undefined); ok {
		if def.Len() == 0 {
			return nil, u.Err()
		}
		return def.Items[0], nil
	}
	return v, nil
}

func setattr(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
	name, err := args.StrAt(1)
	if err != nil {
		return nil, err
	}
	return nil, internal.SetAttr(c, args.At(0), name, args.At(2))
}

func hasattr(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
	name, err := args.StrAt(1)
	if err != nil {
		return nil, err
	}
	v, err := internal.GetAttr(c, args.At(0), name)
	if err != nil {
		return nil, err
	}
	return !internal.IsUndefined(v), nil
}

func anyFn(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
	return truthLoop(c, args.At(0), true)
}

func allFn(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
	return truthLoop(c, args.At(0), false)
}

// truthLoop returns stop as soon as an item with truthiness stop appears, or
// !stop if none does.
func truthLoop(c *ul4.Context, v ul4.Value, stop bool) (ul4.Value, error) {
	it, err := internal.Iterate(c, v)
	if err != nil {
		return nil, err
	}
	for {
		e, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return !stop, nil
		}
		t, err := internal.Truth(e)
		if err != nil {
			return nil, err
		}
		if t == stop {
			return stop, nil
		}
	}
}

func sum(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
	it, err := internal.Iterate(c, args.At(0))
	if err != nil {
		return nil, err
	}
	r := args.At(1)
	for {
		e, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return r, nil
		}
		if r, err = internal.BinaryOp("+", r, e); err != nil {
			return nil, err
		}
	}
}

func minFn(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
	return extreme(c, "min", "<", args.At(0).(*ul4.List))
}

func maxFn(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
	return extreme(c, "max", ">", args.At(0).(*ul4.List))
}

// extreme finds the first item for which no later item compares op to it.
// A single argument is iterated; several are compared directly.
func extreme(c *ul4.Context, name, op string, args *ul4.List) (ul4.Value, error) {
	var items []ul4.Value
	switch args.Len() {
	case 0:
		return nil, &ul4.ArgumentError{Kind: internal.MissingArgument, Callable: name, Names: []string{"args"}}
	case 1:
		var err error
		if items, err = internal.Collect(c, args.Items[0]); err != nil {
			return nil, err
		}
	default:
		items = args.Items
	}
	if len(items) == 0 {
		return nil, &ul4.ValueError{Msg: name + "() arg is an empty sequence"}
	}
	r := items[0]
	for _, v := range items[1:] {
		better, err := internal.Compare(op, v, r)
		if err != nil {
			return nil, err
		}
		if better {
			r = v
		}
	}
	return r, nil
}

// sorted sorts stably, optionally by key. The first comparison error stops
// the sort.
func sorted(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
	items, err := internal.Collect(c, args.At(0))
	if err != nil {
		return nil, err
	}
	items = append([]ul4.Value(nil), items...)
	keys := items
	if key := args.At(1); key != nil {
		keys = make([]ul4.Value, len(items))
		for i, v := range items {
			if keys[i], err = internal.CallArgs(c, key, v); err != nil {
				return nil, err
			}
		}
	}
	reverse, err := internal.Truth(args.At(2))
	if err != nil {
		return nil, err
	}
	op := "<"
	if reverse {
		op = ">"
	}
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		if err != nil {
			return false
		}
		var less bool
		less, err = internal.Compare(op, keys[idx[i]], keys[idx[j]])
		return less
	})
	if err != nil {
		return nil, err
	}
	r := make([]ul4.Value, len(items))
	for i, k := range idx {
		r[i] = items[k]
	}
	return ul4.NewList(r...), nil
}

func reversed(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
	items, err := internal.Collect(c, args.At(0))
	if err != nil {
		return nil, err
	}
	r := make([]ul4.Value, len(items))
	for i, v := range items {
		r[len(r)-1-i] = v
	}
	return internal.NewSliceIter(r), nil
}
