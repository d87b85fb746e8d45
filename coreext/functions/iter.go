package functions

import (
	"github.com/zephyrtronium/ul4"
	"github.com/zephyrtronium/ul4/internal"
)

// rangeIter produces integers lazily, so that huge ranges cost nothing until
// they are consumed.
type rangeIter struct {
	cur, stop, step int64
}

func (it *rangeIter) Next() (ul4.Value, bool, error) {
	if (it.step > 0 && it.cur >= it.stop) || (it.step < 0 && it.cur <= it.stop) {
		return nil, false, nil
	}
	v := it.cur
	it.cur += it.step
	if (it.step > 0 && it.cur < v) || (it.step < 0 && it.cur > v) {
		// Wrapped; v was the last value representable.
		it.cur = it.stop
	}
	return v, true, nil
}

// rangeFn implements range(stop) and range(start, stop, step=1).
func rangeFn(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
	l := args.At(0).(*ul4.List)
	b, err := internal.Bind("range", rangeSigs[min(l.Len(), 3)], l.Items, nil)
	if err != nil {
		return nil, err
	}
	n := make([]int64, b.Len())
	for i := range n {
		if n[i], err = b.IntAt(i); err != nil {
			return nil, err
		}
	}
	it := &rangeIter{step: 1}
	switch len(n) {
	case 1:
		it.stop = n[0]
	case 2:
		it.cur, it.stop = n[0], n[1]
	default:
		it.cur, it.stop, it.step = n[0], n[1], n[2]
	}
	if it.step == 0 {
		return nil, &ul4.ValueError{Msg: "range() step argument must not be zero"}
	}
	return it, nil
}

var rangeSigs = [...]*ul4.Signature{
	0: ul4.MustSignature(ul4.Req("stop").PosOnly()),
	1: ul4.MustSignature(ul4.Req("stop").PosOnly()),
	2: ul4.MustSignature(ul4.Req("start").PosOnly(), ul4.Req("stop").PosOnly()),
	3: ul4.MustSignature(ul4.Req("start").PosOnly(), ul4.Req("stop").PosOnly(), ul4.Req("step").PosOnly()),
}

type enumerateIter struct {
	it ul4.Iterator
	i  int64
}

func (e *enumerateIter) Next() (ul4.Value, bool, error) {
	v, ok, err := e.it.Next()
	if !ok || err != nil {
		return nil, false, err
	}
	r := ul4.NewList(e.i, v)
	e.i++
	return r, true, nil
}

func enumerate(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
	it, err := internal.Iterate(c, args.At(0))
	if err != nil {
		return nil, err
	}
	start, err := args.IntAt(1)
	if err != nil {
		return nil, err
	}
	return &enumerateIter{it: it, i: start}, nil
}

// zipIter stops at the end of the shortest input.
type zipIter struct {
	its []ul4.Iterator
}

func (z *zipIter) Next() (ul4.Value, bool, error) {
	if len(z.its) == 0 {
		return nil, false, nil
	}
	r := make([]ul4.Value, len(z.its))
	for i, it := range z.its {
		v, ok, err := it.Next()
		if !ok || err != nil {
			z.its = nil
			return nil, false, err
		}
		r[i] = v
	}
	return ul4.NewList(r...), true, nil
}

func zip(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
	l := args.At(0).(*ul4.List)
	z := &zipIter{its: make([]ul4.Iterator, l.Len())}
	for i, v := range l.Items {
		var err error
		if z.its[i], err = internal.Iterate(c, v); err != nil {
			return nil, err
		}
	}
	return z, nil
}
