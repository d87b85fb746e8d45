package internal

import (
	"math"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// Value is any value the evaluator can handle. The built-in kinds are nil,
// bool, int64, *big.Int, float64, decimal.Decimal, string, *List, *Set,
// *Dict, Date, time.Time, TimeDelta, MonthDelta, Callable values, *Template,
// *Generator, and *Undefined. Any other Go value is a host value, dispatched
// through the type registry.
type Value = interface{}

// Kind is the coarse classification of a value.
type Kind int

// Value kinds.
const (
	NoneKind Kind = iota
	BoolKind
	IntKind
	FloatKind
	StrKind
	ListKind
	SetKind
	DictKind
	DateKind
	DateTimeKind
	TimeDeltaKind
	MonthDeltaKind
	CallableKind
	TemplateKind
	GeneratorKind
	UndefinedKind
	HostKind
)

var kindNames = [...]string{
	"none", "bool", "int", "float", "str", "list", "set", "dict", "date",
	"datetime", "timedelta", "monthdelta", "callable", "template",
	"generator", "undefined", "host",
}

func (k Kind) String() string {
	if k < NoneKind || k > HostKind {
		return "Kind(?)"
	}
	return kindNames[k]
}

// KindOf classifies v.
func KindOf(v Value) Kind {
	switch v.(type) {
	case nil:
		return NoneKind
	case bool:
		return BoolKind
	case int64, *big.Int:
		return IntKind
	case float64, decimal.Decimal:
		return FloatKind
	case string:
		return StrKind
	case *List:
		return ListKind
	case *Set:
		return SetKind
	case *Dict:
		return DictKind
	case Date:
		return DateKind
	case time.Time:
		return DateTimeKind
	case TimeDelta:
		return TimeDeltaKind
	case MonthDelta:
		return MonthDeltaKind
	case *Template:
		return TemplateKind
	case *Generator:
		return GeneratorKind
	case *Undefined:
		return UndefinedKind
	case Callable:
		return CallableKind
	}
	return HostKind
}

// NewInt returns the canonical integer value for x: an int64 if it fits, else
// x itself.
func NewInt(x *big.Int) Value {
	if x.IsInt64() {
		return x.Int64()
	}
	return x
}

// FromGo converts common Go values into their evaluator representation.
// Templates become closures without variables. Values that are already
// canonical, and host values, are returned unchanged.
func FromGo(v interface{}) Value {
	switch x := v.(type) {
	case nil, bool, int64, *big.Int, float64, decimal.Decimal, string, *List,
		*Set, *Dict, Date, time.Time, TimeDelta, MonthDelta:
		return v
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint:
		return fromUint(uint64(x))
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return fromUint(x)
	case float32:
		return float64(x)
	case time.Duration:
		return DeltaFromDuration(x)
	case *Template:
		if cl, err := x.Closure(); err == nil {
			return cl
		}
		return v
	case []interface{}:
		l := make([]Value, len(x))
		for i, e := range x {
			l[i] = FromGo(e)
		}
		return NewList(l...)
	case []string:
		l := make([]Value, len(x))
		for i, e := range x {
			l[i] = e
		}
		return NewList(l...)
	case map[string]interface{}:
		d := NewDict()
		for k, e := range x {
			d.mustSet(k, FromGo(e))
		}
		d.sortStringKeys()
		return d
	}
	return v
}

func fromUint(x uint64) Value {
	if x <= math.MaxInt64 {
		return int64(x)
	}
	return new(big.Int).SetUint64(x)
}
