package internal

import (
	"errors"
	"math"
	"math/big"

	"github.com/JohnCGriffin/overflow"
	"github.com/shopspring/decimal"
)

// rung is a step on the numeric promotion ladder. Operations on two numbers
// are computed on the higher of their rungs, and results of integer
// operations that overflow int64 are recomputed on rungBig.
type rung int

const (
	rungBool rung = iota
	rungInt
	rungBig
	rungFloat
	rungDecimal
)

// decimalPrecision is the number of fractional digits kept by decimal
// division.
const decimalPrecision = 28

// maxShift bounds left shifts of big integers.
const maxShift = 1 << 24

// errOverflow signals that an int64 computation must be redone on rungBig.
var errOverflow = errors.New("int64 overflow")

var bigOne = big.NewInt(1)

func rungOf(v Value) (rung, bool) {
	switch v.(type) {
	case bool:
		return rungBool, true
	case int64:
		return rungInt, true
	case *big.Int:
		return rungBig, true
	case float64:
		return rungFloat, true
	case decimal.Decimal:
		return rungDecimal, true
	}
	return 0, false
}

// IsNumber reports whether v is a bool, int, or float.
func IsNumber(v Value) bool {
	_, ok := rungOf(v)
	return ok
}

func asInt64(v Value) int64 {
	switch x := v.(type) {
	case bool:
		if x {
			return 1
		}
		return 0
	case int64:
		return x
	}
	panic("ul4: asInt64 of non-machine integer")
}

// asBig returns v as a big.Int. The result must not be modified.
func asBig(v Value) *big.Int {
	switch x := v.(type) {
	case bool, int64:
		return big.NewInt(asInt64(x))
	case *big.Int:
		return x
	}
	panic("ul4: asBig of non-integer")
}

func asFloat(v Value) float64 {
	switch x := v.(type) {
	case bool, int64:
		return float64(asInt64(x))
	case *big.Int:
		f, _ := new(big.Float).SetInt(x).Float64()
		return f
	case float64:
		return x
	case decimal.Decimal:
		return x.InexactFloat64()
	}
	panic("ul4: asFloat of non-number")
}

// nonFinite reports whether v is an infinite or NaN float.
func nonFinite(v Value) bool {
	f, ok := v.(float64)
	return ok && (math.IsInf(f, 0) || math.IsNaN(f))
}

func asDecimal(v Value) decimal.Decimal {
	switch x := v.(type) {
	case bool, int64:
		return decimal.NewFromInt(asInt64(x))
	case *big.Int:
		return decimal.NewFromBigInt(x, 0)
	case float64:
		return decimal.NewFromFloat(x)
	case decimal.Decimal:
		return x
	}
	panic("ul4: asDecimal of non-number")
}

// numOp is one arithmetic or bitwise operator across all rungs.
type numOp struct {
	sym string
	// min is the lowest rung on which the operator is computed.
	min rung
	// bitwise operators reject floats.
	bitwise bool

	bo func(a, b bool) Value
	i  func(a, b int64) (Value, error)
	b  func(a, b *big.Int) (Value, error)
	f  func(a, b float64) (Value, error)
	d  func(a, b decimal.Decimal) (Value, error)
}

var numOps = map[string]*numOp{}

func init() {
	for _, op := range []*numOp{
		{sym: "+", min: rungInt, i: addInt, b: addBig, f: addFloat, d: addDecimal},
		{sym: "-", min: rungInt, i: subInt, b: subBig, f: subFloat, d: subDecimal},
		{sym: "*", min: rungInt, i: mulInt, b: mulBig, f: mulFloat, d: mulDecimal},
		{sym: "/", min: rungFloat, f: truedivFloat, d: truedivDecimal},
		{sym: "//", min: rungInt, i: floordivInt, b: floordivBig, f: floordivFloat, d: floordivDecimal},
		{sym: "%", min: rungInt, i: modInt, b: modBig, f: modFloat, d: modDecimal},
		{sym: "<<", min: rungInt, bitwise: true, i: shlInt, b: shlBig},
		{sym: ">>", min: rungInt, bitwise: true, i: shrInt, b: shrBig},
		{sym: "&", min: rungBool, bitwise: true, bo: andBool, i: andInt, b: andBig},
		{sym: "|", min: rungBool, bitwise: true, bo: orBool, i: orInt, b: orBig},
		{sym: "^", min: rungBool, bitwise: true, bo: xorBool, i: xorInt, b: xorBig},
	} {
		numOps[op.sym] = op
	}
}

// numArith applies the operator sym to two numbers. ok is false if either
// operand is not a number.
func numArith(sym string, a, b Value) (r Value, ok bool, err error) {
	op := numOps[sym]
	if op == nil {
		return nil, false, nil
	}
	ra, ok1 := rungOf(a)
	rb, ok2 := rungOf(b)
	if !ok1 || !ok2 {
		return nil, false, nil
	}
	rr := ra
	if rb > rr {
		rr = rb
	}
	if op.bitwise && rr >= rungFloat {
		return nil, true, mismatch(sym, a, b)
	}
	if rr < op.min {
		rr = op.min
	}
	if rr == rungFloat && (ra == rungBig || rb == rungBig) {
		// float64 cannot hold every big integer exactly.
		rr = rungDecimal
	}
	if rr == rungDecimal && (nonFinite(a) || nonFinite(b)) {
		// Decimals have no infinities or NaN.
		rr = rungFloat
	}
	r, err = compute(op, rr, a, b)
	return r, true, err
}

func compute(op *numOp, rr rung, a, b Value) (Value, error) {
	switch rr {
	case rungBool:
		return op.bo(a.(bool), b.(bool)), nil
	case rungInt:
		r, err := op.i(asInt64(a), asInt64(b))
		if err != errOverflow {
			return r, err
		}
		return op.b(asBig(a), asBig(b))
	case rungBig:
		return op.b(asBig(a), asBig(b))
	case rungFloat:
		return op.f(asFloat(a), asFloat(b))
	default:
		return op.d(asDecimal(a), asDecimal(b))
	}
}

func addInt(a, b int64) (Value, error) {
	r, ok := overflow.Add64(a, b)
	if !ok {
		return nil, errOverflow
	}
	return r, nil
}

func subInt(a, b int64) (Value, error) {
	r, ok := overflow.Sub64(a, b)
	if !ok {
		return nil, errOverflow
	}
	return r, nil
}

func mulInt(a, b int64) (Value, error) {
	r, ok := overflow.Mul64(a, b)
	if !ok {
		return nil, errOverflow
	}
	return r, nil
}

func floordivInt(a, b int64) (Value, error) {
	if b == 0 {
		return nil, &ZeroDivisionError{Op: "//"}
	}
	if a == math.MinInt64 && b == -1 {
		return nil, errOverflow
	}
	q, _ := floorDivMod(a, b)
	return q, nil
}

func modInt(a, b int64) (Value, error) {
	if b == 0 {
		return nil, &ZeroDivisionError{Op: "%"}
	}
	_, r := floorDivMod(a, b)
	return r, nil
}

func shlInt(a, b int64) (Value, error) {
	if b < 0 {
		if b == math.MinInt64 {
			return nil, errOverflow
		}
		return shrInt(a, -b)
	}
	if a == 0 {
		return int64(0), nil
	}
	if b >= 63 {
		return nil, errOverflow
	}
	r := a << uint(b)
	if r>>uint(b) != a {
		return nil, errOverflow
	}
	return r, nil
}

func shrInt(a, b int64) (Value, error) {
	if b < 0 {
		if b == math.MinInt64 {
			return nil, errOverflow
		}
		return shlInt(a, -b)
	}
	if b >= 63 {
		if a < 0 {
			return int64(-1), nil
		}
		return int64(0), nil
	}
	return a >> uint(b), nil
}

func andInt(a, b int64) (Value, error) { return a & b, nil }
func orInt(a, b int64) (Value, error)  { return a | b, nil }
func xorInt(a, b int64) (Value, error) { return a ^ b, nil }

func andBool(a, b bool) Value { return a && b }
func orBool(a, b bool) Value  { return a || b }
func xorBool(a, b bool) Value { return a != b }

func addBig(a, b *big.Int) (Value, error) { return NewInt(new(big.Int).Add(a, b)), nil }
func subBig(a, b *big.Int) (Value, error) { return NewInt(new(big.Int).Sub(a, b)), nil }
func mulBig(a, b *big.Int) (Value, error) { return NewInt(new(big.Int).Mul(a, b)), nil }
func andBig(a, b *big.Int) (Value, error) { return NewInt(new(big.Int).And(a, b)), nil }
func orBig(a, b *big.Int) (Value, error)  { return NewInt(new(big.Int).Or(a, b)), nil }
func xorBig(a, b *big.Int) (Value, error) { return NewInt(new(big.Int).Xor(a, b)), nil }

func floordivBig(a, b *big.Int) (Value, error) {
	if b.Sign() == 0 {
		return nil, &ZeroDivisionError{Op: "//"}
	}
	q, m := new(big.Int).QuoRem(a, b, new(big.Int))
	if m.Sign() != 0 && (m.Sign() < 0) != (b.Sign() < 0) {
		q.Sub(q, bigOne)
	}
	return NewInt(q), nil
}

func modBig(a, b *big.Int) (Value, error) {
	if b.Sign() == 0 {
		return nil, &ZeroDivisionError{Op: "%"}
	}
	m := new(big.Int).Rem(a, b)
	if m.Sign() != 0 && (m.Sign() < 0) != (b.Sign() < 0) {
		m.Add(m, b)
	}
	return NewInt(m), nil
}

func shlBig(a, b *big.Int) (Value, error) {
	if b.Sign() < 0 {
		return shrBig(a, new(big.Int).Neg(b))
	}
	if a.Sign() == 0 {
		return int64(0), nil
	}
	if !b.IsInt64() || b.Int64() > maxShift {
		return nil, &OverflowError{Msg: "shift count too large"}
	}
	return NewInt(new(big.Int).Lsh(a, uint(b.Int64()))), nil
}

func shrBig(a, b *big.Int) (Value, error) {
	if b.Sign() < 0 {
		return shlBig(a, new(big.Int).Neg(b))
	}
	if !b.IsInt64() || b.Int64() > int64(a.BitLen()) {
		if a.Sign() < 0 {
			return int64(-1), nil
		}
		return int64(0), nil
	}
	// Rsh rounds toward negative infinity for negative values.
	return NewInt(new(big.Int).Rsh(a, uint(b.Int64()))), nil
}

func addFloat(a, b float64) (Value, error) { return a + b, nil }
func subFloat(a, b float64) (Value, error) { return a - b, nil }
func mulFloat(a, b float64) (Value, error) { return a * b, nil }

func truedivFloat(a, b float64) (Value, error) {
	if b == 0 {
		return nil, &ZeroDivisionError{Op: "/"}
	}
	return a / b, nil
}

func floordivFloat(a, b float64) (Value, error) {
	if b == 0 {
		return nil, &ZeroDivisionError{Op: "//"}
	}
	return math.Floor(a / b), nil
}

func modFloat(a, b float64) (Value, error) {
	if b == 0 {
		return nil, &ZeroDivisionError{Op: "%"}
	}
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r, nil
}

func addDecimal(a, b decimal.Decimal) (Value, error) { return a.Add(b), nil }
func subDecimal(a, b decimal.Decimal) (Value, error) { return a.Sub(b), nil }
func mulDecimal(a, b decimal.Decimal) (Value, error) { return a.Mul(b), nil }

func truedivDecimal(a, b decimal.Decimal) (Value, error) {
	if b.IsZero() {
		return nil, &ZeroDivisionError{Op: "/"}
	}
	return a.DivRound(b, decimalPrecision), nil
}

func floordivDecimal(a, b decimal.Decimal) (Value, error) {
	if b.IsZero() {
		return nil, &ZeroDivisionError{Op: "//"}
	}
	q, r := a.QuoRem(b, 0)
	if !r.IsZero() && (r.Sign() < 0) != (b.Sign() < 0) {
		q = q.Sub(decimal.NewFromInt(1))
	}
	return q, nil
}

func modDecimal(a, b decimal.Decimal) (Value, error) {
	if b.IsZero() {
		return nil, &ZeroDivisionError{Op: "%"}
	}
	_, r := a.QuoRem(b, 0)
	if !r.IsZero() && (r.Sign() < 0) != (b.Sign() < 0) {
		r = r.Add(b)
	}
	return r, nil
}

// Neg negates a number or delta.
func Neg(v Value) (Value, error) {
	switch x := v.(type) {
	case bool, int64:
		n := asInt64(x)
		if n == math.MinInt64 {
			return new(big.Int).Neg(asBig(n)), nil
		}
		return -n, nil
	case *big.Int:
		return NewInt(new(big.Int).Neg(x)), nil
	case float64:
		return -x, nil
	case decimal.Decimal:
		return x.Neg(), nil
	case TimeDelta:
		return NewTimeDelta(-x.Days, -x.Seconds, -x.Microseconds), nil
	case MonthDelta:
		return -x, nil
	case *Undefined:
		return nil, x.Err()
	}
	return nil, mismatch("-", v)
}

// BitNot computes the bitwise inverse of an integer.
func BitNot(v Value) (Value, error) {
	switch x := v.(type) {
	case bool, int64:
		return ^asInt64(x), nil
	case *big.Int:
		return NewInt(new(big.Int).Not(x)), nil
	case *Undefined:
		return nil, x.Err()
	}
	return nil, mismatch("~", v)
}

// numCompare compares two numbers. ordered is false if either is NaN.
func numCompare(a, b Value) (c int, ordered bool) {
	fa, aflt := a.(float64)
	fb, bflt := b.(float64)
	if (aflt && math.IsNaN(fa)) || (bflt && math.IsNaN(fb)) {
		return 0, false
	}
	switch {
	case aflt && bflt:
		return cmpFloat(fa, fb), true
	case aflt && math.IsInf(fa, 0):
		return cmpFloat(fa, 0), true
	case bflt && math.IsInf(fb, 0):
		return -cmpFloat(fb, 0), true
	}
	ra, _ := rungOf(a)
	rb, _ := rungOf(b)
	rr := ra
	if rb > rr {
		rr = rb
	}
	switch {
	case rr <= rungInt:
		return cmpInt(asInt64(a), asInt64(b)), true
	case rr == rungBig:
		return asBig(a).Cmp(asBig(b)), true
	case rr == rungFloat && exactAsFloat(a) && exactAsFloat(b):
		return cmpFloat(asFloat(a), asFloat(b)), true
	}
	return asDecimal(a).Cmp(asDecimal(b)), true
}

// exactAsFloat reports whether v converts to float64 without rounding.
func exactAsFloat(v Value) bool {
	switch x := v.(type) {
	case bool, float64:
		return true
	case int64:
		return x >= -1<<53 && x <= 1<<53
	}
	return false
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
