package internal_test

import (
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zephyrtronium/ul4"
	"github.com/zephyrtronium/ul4/internal"
	"github.com/zephyrtronium/ul4/testutils"
)

func TestTruth(t *testing.T) {
	empty, _ := internal.NewSet()
	cases := map[string]struct {
		v    internal.Value
		want bool
	}{
		"None":         {nil, false},
		"False":        {false, false},
		"True":         {true, true},
		"Zero":         {int64(0), false},
		"One":          {int64(1), true},
		"Big":          {new(big.Int).Lsh(big.NewInt(1), 80), true},
		"ZeroFloat":    {0.0, false},
		"NaN":          {math.NaN(), true},
		"ZeroDecimal":  {decimal.Zero, false},
		"EmptyString":  {"", false},
		"String":       {"0", true},
		"EmptyList":    {internal.NewList(), false},
		"List":         {internal.NewList(nil), true},
		"EmptyDict":    {internal.NewDict(), false},
		"EmptySet":     {empty, false},
		"Date":         {internal.NewDate(1, time.January, 1), true},
		"ZeroDelta":    {internal.TimeDelta{}, false},
		"ZeroMonths":   {internal.MonthDelta(0), false},
		"DateTime":     {time.Time{}, true},
		"HostValue":    {struct{}{}, true},
		"BuiltinFunc":  {internal.NewFunction("f", nil, nil), true},
		"NegativeZero": {math.Copysign(0, -1), false},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := internal.Truth(c.v)
			if err != nil {
				t.Fatal(err)
			}
			if r != c.want {
				t.Errorf("have %t, want %t", r, c.want)
			}
			// Truthiness of a bool is that bool.
			if rr, err := internal.Truth(r); err != nil || rr != r {
				t.Errorf("not idempotent: have %t, %v", rr, err)
			}
		})
	}
	if _, err := internal.Truth(&internal.Undefined{Name: "x"}); err == nil {
		t.Error("truth of undefined succeeded")
	}
}

func TestStrFixedPoint(t *testing.T) {
	cases := map[string]struct {
		v    internal.Value
		want string
	}{
		"None":      {nil, ""},
		"Bool":      {true, "True"},
		"Int":       {int64(-12), "-12"},
		"Float":     {1.0, "1.0"},
		"SmallExp":  {1e-5, "1e-05"},
		"Decimal":   {decimal.RequireFromString("2.50"), "2.5"},
		"String":    {"it's", "it's"},
		"List":      {internal.NewList("a", int64(1)), "['a', 1]"},
		"Date":      {internal.NewDate(2024, time.March, 5), "2024-03-05"},
		"DateTime":  {time.Date(2024, time.March, 5, 1, 2, 3, 0, time.UTC), "2024-03-05 01:02:03"},
		"Delta":     {internal.NewTimeDelta(1, 3661, 0), "1 day, 1:01:01"},
		"DeltaNeg":  {internal.NewTimeDelta(-2, 0, 0), "-2 days, 0:00:00"},
		"Months":    {internal.MonthDelta(1), "1 month"},
		"MonthsTwo": {internal.MonthDelta(2), "2 months"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := internal.Str(c.v)
			if err != nil {
				t.Fatal(err)
			}
			if s != c.want {
				t.Errorf("have %q, want %q", s, c.want)
			}
			ss, err := internal.Str(s)
			if err != nil || ss != s {
				t.Errorf("str of str changed: have %q, %v", ss, err)
			}
		})
	}
}

func TestRepr(t *testing.T) {
	cyclic := internal.NewList(int64(1))
	cyclic.Append(cyclic)
	empty, _ := internal.NewSet()
	cases := map[string]struct {
		v    internal.Value
		want string
	}{
		"None":      {nil, "None"},
		"False":     {false, "False"},
		"Float":     {0.1, "0.1"},
		"BigFloat":  {1e20, "1e+20"},
		"Inf":       {math.Inf(-1), "-inf"},
		"Quote":     {"a'b", `"a'b"`},
		"BothQuote": {`a'"b`, `'a\'"b'`},
		"Control":   {"a\nb\x01", `'a\nb\x01'`},
		"Nested":    {internal.NewList(internal.NewList(), "x"), "[[], 'x']"},
		"Cycle":     {cyclic, "[1, [...]]"},
		"EmptySet":  {empty, "{/}"},
		"Decimal":   {decimal.NewFromInt(3), "3.0"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if s := internal.Repr(c.v); s != c.want {
				t.Errorf("have %s, want %s", s, c.want)
			}
		})
	}
}

func TestEqualCompare(t *testing.T) {
	eq := map[string]struct {
		a, b internal.Value
		want bool
	}{
		"IntFloat":     {int64(1), 1.0, true},
		"IntBool":      {int64(1), true, true},
		"BigInt":       {new(big.Int).Lsh(big.NewInt(1), 70), new(big.Int).Lsh(big.NewInt(1), 70), true},
		"IntDecimal":   {int64(2), decimal.RequireFromString("2.0"), true},
		"IntString":    {int64(1), "1", false},
		"NaN":          {math.NaN(), math.NaN(), false},
		"Lists":        {internal.NewList(int64(1), "a"), internal.NewList(1.0, "a"), true},
		"ListLength":   {internal.NewList(int64(1)), internal.NewList(int64(1), int64(2)), false},
		"NoneNone":     {nil, nil, true},
		"NoneZero":     {nil, int64(0), false},
		"Dates":        {internal.NewDate(2020, time.May, 1), internal.NewDate(2020, time.May, 1), true},
		"DeltaNormal":  {internal.TimeDelta{Seconds: 86400}, internal.TimeDelta{Days: 1}, true},
		"DateDateTime": {internal.NewDate(2020, time.May, 1), time.Date(2020, time.May, 1, 0, 0, 0, 0, time.UTC), false},
	}
	for name, c := range eq {
		t.Run("Equal"+name, func(t *testing.T) {
			if r := internal.Equal(c.a, c.b); r != c.want {
				t.Errorf("%s == %s: have %t, want %t", internal.Repr(c.a), internal.Repr(c.b), r, c.want)
			}
			if r := internal.Equal(c.b, c.a); r != c.want {
				t.Errorf("%s == %s: have %t, want %t", internal.Repr(c.b), internal.Repr(c.a), r, c.want)
			}
		})
	}
	ord := map[string]struct {
		op   string
		a, b internal.Value
		want bool
	}{
		"IntFloat":   {"<", int64(1), 2.5, true},
		"BigInt":     {">", new(big.Int).Lsh(big.NewInt(1), 70), int64(math.MaxInt64), true},
		"Strings":    {"<", "abc", "abd", true},
		"Lists":      {"<", internal.NewList(int64(1), int64(2)), internal.NewList(int64(1), int64(3)), true},
		"ListPrefix": {"<=", internal.NewList(int64(1)), internal.NewList(int64(1), int64(0)), true},
		"NaN":        {"<", math.NaN(), 1.0, false},
		"NaNGe":      {">=", math.NaN(), math.NaN(), false},
		"Dates":      {">", internal.NewDate(2021, time.January, 1), internal.NewDate(2020, time.December, 31), true},
		"Deltas":     {"<", internal.NewTimeDelta(0, -1, 0), internal.TimeDelta{}, true},
	}
	for name, c := range ord {
		t.Run("Order"+name, func(t *testing.T) {
			r, err := internal.Compare(c.op, c.a, c.b)
			if err != nil {
				t.Fatal(err)
			}
			if r != c.want {
				t.Errorf("%s %s %s: have %t, want %t", internal.Repr(c.a), c.op, internal.Repr(c.b), r, c.want)
			}
		})
	}
	if _, err := internal.Compare("<", "a", int64(1)); err == nil {
		t.Error("ordering str and int succeeded")
	}
}

// TestIterateSnapshot tests that iterating a list sees the items it had when
// iteration began.
func TestIterateSnapshot(t *testing.T) {
	c := testutils.TestingContext(nil)
	l := internal.NewList(int64(1), int64(2))
	it, err := internal.Iterate(c, l)
	if err != nil {
		t.Fatal(err)
	}
	l.Append(int64(3))
	n := 0
	for {
		_, ok, err := it.Next()
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			break
		}
		n++
	}
	if n != 2 {
		t.Errorf("have %d items, want 2", n)
	}
	cases := map[string]testutils.SourceTestCase{
		"AppendInLoop": {
			Source: `[[setvar, l, [list, 1, 2]], [for, x, [var, l], [[expr, [call, [attr, [var, l], append], [var, x]]]]], [return, [var, l]]]`,
			Pass:   testutils.PassEqual(ul4.NewList(int64(1), int64(2), int64(1), int64(2))),
		},
		"DictInLoop": {
			Source: `[[setvar, d, [dict, [dictitem, a, 1]]], [for, k, [var, d], [[setvar, [item, [var, d], b], 2]]], [return, [call, [var, len], [var, d]]]]`,
			Pass:   testutils.PassEqual(int64(2)),
		},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestIterateSnapshot"))
	}
}

// TestConstructors tests calling types.
func TestConstructors(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"Int":          {Source: `[[return, [call, [var, int], "42"]]]`, Pass: testutils.PassEqual(int64(42))},
		"IntBase":      {Source: `[[return, [call, [var, int], ff, 16]]]`, Pass: testutils.PassEqual(int64(255))},
		"IntPrefix":    {Source: `[[return, [call, [var, int], "0b101", 0]]]`, Pass: testutils.PassEqual(int64(5))},
		"IntFloat":     {Source: `[[return, [call, [var, int], -2.7]]]`, Pass: testutils.PassEqual(int64(-2))},
		"IntBad":       {Source: `[[return, [call, [var, int], x1]]]`, Pass: testutils.PassError(new(*ul4.ValueError))},
		"IntDefault":   {Source: `[[return, [call, [var, int]]]]`, Pass: testutils.PassEqual(int64(0))},
		"Float":        {Source: `[[return, [call, [var, float], "2.5"]]]`, Pass: testutils.PassEqual(2.5)},
		"Str":          {Source: `[[return, [call, [var, str], 1.5]]]`, Pass: testutils.PassEqual("1.5")},
		"Bool":         {Source: `[[return, [call, [var, bool], [list]]]]`, Pass: testutils.PassEqual(false)},
		"List":         {Source: `[[return, [call, [var, list], ab]]]`, Pass: testutils.PassEqual(ul4.NewList("a", "b"))},
		"Date":         {Source: `[[return, [call, [var, date], 2024, 2, 29]]]`, Pass: testutils.PassEqual(ul4.Date{Year: 2024, Month: time.February, Day: 29})},
		"TypeName":     {Source: `[[return, [attr, [call, [var, type], 1], __name__]]]`, Pass: testutils.PassEqual("int")},
		"TypeOfType":   {Source: `[[return, [is, [call, [var, type], [var, int]], [var, type]]]]`, Pass: testutils.PassEqual(true)},
		"TooMany":      {Source: `[[return, [call, [var, bool], 1, 2]]]`, Pass: testutils.PassError(new(*ul4.ArgumentError))},
		"DatePlusDays": {Source: `[[return, [add, [const, date, "2024-02-28"], [call, [var, timedelta], 2]]]]`, Pass: testutils.PassEqual(ul4.Date{Year: 2024, Month: time.March, Day: 1})},
		"MonthClamp":   {Source: `[[return, [add, [const, date, "2024-01-31"], [call, [var, monthdelta], 1]]]]`, Pass: testutils.PassEqual(ul4.Date{Year: 2024, Month: time.February, Day: 29})},
		"DeltaScale":   {Source: `[[return, [mul, [call, [var, timedelta], 1], 2]]]`, Pass: testutils.PassEqual(ul4.TimeDelta{Days: 2})},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestConstructors"))
	}
}
