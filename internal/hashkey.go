package internal

import (
	"math"
	"math/big"
	"reflect"
	"time"

	"github.com/shopspring/decimal"
)

// numKey is the map key for numbers that are not int64-representable
// integers. Equal numbers of different representations share a key.
type numKey struct {
	s string
}

// timeKey is the map key for datetimes, which compare by instant.
type timeKey struct {
	sec  int64
	nsec int
}

// hashKey returns a comparable Go value such that hashKey(a) == hashKey(b)
// exactly when Equal(a, b) for hashable values.
func hashKey(v Value) (interface{}, error) {
	switch x := v.(type) {
	case nil, string, Date, MonthDelta:
		return v, nil
	case bool:
		if x {
			return int64(1), nil
		}
		return int64(0), nil
	case int64:
		return x, nil
	case *big.Int:
		if x.IsInt64() {
			return x.Int64(), nil
		}
		return numKey{x.String()}, nil
	case float64:
		if x == math.Trunc(x) && x >= math.MinInt64 && x < math.MaxInt64 {
			return int64(x), nil
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return x, nil
		}
		return decimalKey(decimal.NewFromFloat(x)), nil
	case decimal.Decimal:
		return decimalKey(x), nil
	case time.Time:
		return timeKey{x.Unix(), x.Nanosecond()}, nil
	case TimeDelta:
		return x.normalize(), nil
	case *List, *Set, *Dict:
		return nil, &TypeMismatchError{Op: "hash", Operands: []Value{v}}
	case *Undefined:
		return nil, x.Err()
	}
	if !reflect.TypeOf(v).Comparable() {
		return nil, &TypeMismatchError{Op: "hash", Operands: []Value{v}}
	}
	return v, nil
}

func decimalKey(d decimal.Decimal) interface{} {
	if d.IsInteger() {
		b := d.BigInt()
		if b.IsInt64() {
			return b.Int64()
		}
		return numKey{b.String()}
	}
	return numKey{d.String()}
}
