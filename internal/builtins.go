package internal

import (
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

type noneType struct{ BasicType }

func (*noneType) Truth(v Value) (bool, error) { return false, nil }

func (*noneType) ToStr(v Value) (string, error) { return "", nil }

// NoneType describes None.
var NoneType = &noneType{BasicType{
	TypeName:   "NoneType",
	TypeDoc:    "The type of None.",
	InstanceFn: func(v Value) bool { return v == nil },
}}

type boolType struct{ BasicType }

func (*boolType) Truth(v Value) (bool, error) { return v.(bool), nil }

func (*boolType) ToInt(v Value) (Value, error) { return asInt64(v), nil }

func (*boolType) ToFloat(v Value) (Value, error) { return asFloat(v), nil }

// BoolType describes booleans.
var BoolType = &boolType{BasicType{
	TypeName: "bool",
	TypeDoc:  "bool(obj=False) converts obj to a boolean.",
	Sig:      MustSignature(Opt("obj", false).PosOnly()),
	InstanceFn: func(v Value) bool { _, ok := v.(bool); return ok },
}}

type intType struct{ BasicType }

func (*intType) Truth(v Value) (bool, error) {
	if x, ok := v.(*big.Int); ok {
		return x.Sign() != 0, nil
	}
	return v.(int64) != 0, nil
}

func (*intType) ToInt(v Value) (Value, error) { return v, nil }

func (*intType) ToFloat(v Value) (Value, error) { return asFloat(v), nil }

// IntType describes integers of every size.
var IntType = &intType{BasicType{
	TypeName: "int",
	TypeDoc:  "int(obj=0, base=None) converts obj to an integer.",
	Sig:      MustSignature(Opt("obj", int64(0)).PosOnly(), Opt("base", nil)),
	InstanceFn: func(v Value) bool {
		switch v.(type) {
		case int64, *big.Int:
			return true
		}
		return false
	},
}}

func createInt(c *Context, args *BoundArguments) (Value, error) {
	obj, base := args.At(0), args.At(1)
	if base == nil {
		return ToInt(obj)
	}
	s, ok := obj.(string)
	if !ok {
		if err := defined(obj); err != nil {
			return nil, err
		}
		return nil, mismatch("int", obj, base)
	}
	b, err := args.IntAt(1)
	if err != nil {
		return nil, err
	}
	if b != 0 && (b < 2 || b > 36) {
		return nil, &ValueError{Msg: "int() base must be >= 2 and <= 36, or 0"}
	}
	return parseInt(s, int(b))
}

// parseInt parses an integer literal the way int(s, base) does. Base 0 reads
// the base from a 0b, 0o, or 0x prefix.
func parseInt(s string, base int) (Value, error) {
	t := strings.TrimSpace(s)
	n, ok := new(big.Int).SetString(t, base)
	if !ok {
		return nil, &ValueError{Msg: "invalid literal for int() with base " + strconv.Itoa(base) + ": " + quote(s)}
	}
	return NewInt(n), nil
}

type floatType struct{ BasicType }

func (*floatType) Truth(v Value) (bool, error) {
	if d, ok := v.(decimal.Decimal); ok {
		return !d.IsZero(), nil
	}
	return v.(float64) != 0, nil
}

func (*floatType) ToInt(v Value) (Value, error) {
	if d, ok := v.(decimal.Decimal); ok {
		return NewInt(d.Truncate(0).BigInt()), nil
	}
	f := v.(float64)
	switch {
	case math.IsNaN(f):
		return nil, &ValueError{Msg: "cannot convert float NaN to integer"}
	case math.IsInf(f, 0):
		return nil, &OverflowError{Msg: "cannot convert float infinity to integer"}
	}
	f = math.Trunc(f)
	if f >= -(1<<63) && f < 1<<63 {
		return int64(f), nil
	}
	n, _ := big.NewFloat(f).Int(nil)
	return NewInt(n), nil
}

func (*floatType) ToFloat(v Value) (Value, error) { return v, nil }

// FloatType describes floats of both precisions.
var FloatType = &floatType{BasicType{
	TypeName: "float",
	TypeDoc:  "float(obj=0.0) converts obj to a float.",
	Sig:      MustSignature(Opt("obj", 0.0).PosOnly()),
	InstanceFn: func(v Value) bool {
		switch v.(type) {
		case float64, decimal.Decimal:
			return true
		}
		return false
	},
}}

type strType struct{ BasicType }

func (*strType) Truth(v Value) (bool, error) { return v.(string) != "", nil }

func (*strType) Len(v Value) (int, error) { return utf8.RuneCountInString(v.(string)), nil }

func (*strType) ToInt(v Value) (Value, error) { return parseInt(v.(string), 10) }

func (*strType) ToFloat(v Value) (Value, error) {
	s := v.(string)
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
			return nil, &ValueError{Msg: "could not convert string to float: " + quote(s)}
		}
	}
	return f, nil
}

func (*strType) ToStr(v Value) (string, error) { return v.(string), nil }

// StrType describes strings.
var StrType = &strType{BasicType{
	TypeName: "str",
	TypeDoc:  "str(obj='') converts obj to a string.",
	Sig:      MustSignature(Opt("obj", "").PosOnly()),
	InstanceFn: func(v Value) bool { _, ok := v.(string); return ok },
}}

type listType struct{ BasicType }

func (*listType) Truth(v Value) (bool, error) { return v.(*List).Len() != 0, nil }

func (*listType) Len(v Value) (int, error) { return v.(*List).Len(), nil }

// ListType describes lists.
var ListType = &listType{BasicType{
	TypeName: "list",
	TypeDoc:  "list(iterable=()) creates a list from the items of iterable.",
	Sig:      MustSignature(Opt("iterable", nil).PosOnly()),
	InstanceFn: func(v Value) bool { _, ok := v.(*List); return ok },
}}

type setType struct{ BasicType }

func (*setType) Truth(v Value) (bool, error) { return v.(*Set).Len() != 0, nil }

func (*setType) Len(v Value) (int, error) { return v.(*Set).Len(), nil }

// SetType describes sets.
var SetType = &setType{BasicType{
	TypeName: "set",
	TypeDoc:  "set(iterable=()) creates a set from the items of iterable.",
	Sig:      MustSignature(Opt("iterable", nil).PosOnly()),
	InstanceFn: func(v Value) bool { _, ok := v.(*Set); return ok },
}}

type dictType struct{ BasicType }

func (*dictType) Truth(v Value) (bool, error) { return v.(*Dict).Len() != 0, nil }

func (*dictType) Len(v Value) (int, error) { return v.(*Dict).Len(), nil }

// Attr looks up a method, then a string key.
func (t *dictType) Attr(c *Context, v Value, name string) Value {
	if m := t.methods[name]; m != nil {
		return &BoundMethod{Self: v, Method: m}
	}
	d := v.(*Dict)
	if r, ok, _ := d.Get(name); ok {
		return r
	}
	return &Undefined{How: UndefinedKey, Object: v, Name: name}
}

// SetAttr sets a key.
func (*dictType) SetAttr(c *Context, v Value, name string, val Value) error {
	return v.(*Dict).Set(name, val)
}

// Dir lists methods and string keys.
func (t *dictType) Dir(v Value) []string {
	r := t.BasicType.Dir(v)
	for _, k := range v.(*Dict).Keys() {
		if s, ok := k.(string); ok {
			r = append(r, s)
		}
	}
	return r
}

// CallAttr calls a method or a callable stored under a string key.
func (t *dictType) CallAttr(c *Context, v Value, name string, args []Value, kwargs []Keyword) (Value, error) {
	return CallValue(c, t.Attr(c, v, name), args, kwargs)
}

// DictType describes dicts.
var DictType = &dictType{BasicType{
	TypeName: "dict",
	TypeDoc:  "dict(*args, **kwargs) creates a dict from a dict or iterable of pairs, then keyword arguments.",
	Sig:      MustSignature(Args("args"), Kwargs("kwargs")),
	InstanceFn: func(v Value) bool { _, ok := v.(*Dict); return ok },
}}

func createDict(c *Context, args *BoundArguments) (Value, error) {
	pos := args.At(0).(*List)
	if pos.Len() > 1 {
		return nil, &ArgumentError{Kind: TooManyArguments, Callable: "dict", Position: 1, Have: pos.Len()}
	}
	d := NewDict()
	if pos.Len() == 1 {
		if err := updateDict(c, d, pos.Items[0]); err != nil {
			return nil, err
		}
	}
	d.Update(args.At(1).(*Dict))
	return d, nil
}

// updateDict adds the items of a dict or of an iterable of pairs to d.
func updateDict(c *Context, d *Dict, src Value) error {
	if o, ok := src.(*Dict); ok {
		d.Update(o)
		return nil
	}
	items, err := Collect(c, src)
	if err != nil {
		return err
	}
	for _, item := range items {
		pair, err := Collect(c, item)
		if err != nil {
			return err
		}
		if len(pair) != 2 {
			return &ValueError{Msg: "dict items must be pairs, got " + strconv.Itoa(len(pair)) + " items"}
		}
		if err := d.Set(pair[0], pair[1]); err != nil {
			return err
		}
	}
	return nil
}

type dateType struct{ BasicType }

func (*dateType) ToStr(v Value) (string, error) { return formatDate(v.(Date)), nil }

// DateType describes dates.
var DateType = &dateType{BasicType{
	TypeName: "date",
	TypeDoc:  "date(year, month, day) creates a date.",
	Sig:      MustSignature(Req("year"), Req("month"), Req("day")),
	InstanceFn: func(v Value) bool { _, ok := v.(Date); return ok },
}}

type dateTimeType struct{ BasicType }

func (*dateTimeType) ToStr(v Value) (string, error) { return strDateTime(v.(time.Time)), nil }

// DateTimeType describes datetimes.
var DateTimeType = &dateTimeType{BasicType{
	TypeName: "datetime",
	TypeDoc:  "datetime(year, month, day, hour=0, minute=0, second=0, microsecond=0) creates a datetime.",
	Sig: MustSignature(
		Req("year"), Req("month"), Req("day"),
		Opt("hour", int64(0)), Opt("minute", int64(0)), Opt("second", int64(0)), Opt("microsecond", int64(0)),
	),
	InstanceFn: func(v Value) bool { _, ok := v.(time.Time); return ok },
}}

func intArgs(args *BoundArguments, n int) ([]int64, error) {
	r := make([]int64, n)
	for i := range r {
		x, err := args.IntAt(i)
		if err != nil {
			return nil, err
		}
		r[i] = x
	}
	return r, nil
}

func checkDate(y, m, d int64) error {
	if y < 1 || y > 9999 {
		return &ValueError{Msg: "year " + strconv.FormatInt(y, 10) + " is out of range"}
	}
	if m < 1 || m > 12 {
		return &ValueError{Msg: "month must be in 1..12"}
	}
	if d < 1 || d > int64(daysIn(int(y), time.Month(m))) {
		return &ValueError{Msg: "day is out of range for month"}
	}
	return nil
}

type timeDeltaType struct{ BasicType }

func (*timeDeltaType) Truth(v Value) (bool, error) { return !v.(TimeDelta).IsZero(), nil }

func (*timeDeltaType) ToStr(v Value) (string, error) { return strTimeDelta(v.(TimeDelta)), nil }

// TimeDeltaType describes timedeltas.
var TimeDeltaType = &timeDeltaType{BasicType{
	TypeName: "timedelta",
	TypeDoc:  "timedelta(days=0, seconds=0, microseconds=0) creates a duration.",
	Sig:      MustSignature(Opt("days", int64(0)), Opt("seconds", int64(0)), Opt("microseconds", int64(0))),
	InstanceFn: func(v Value) bool { _, ok := v.(TimeDelta); return ok },
}}

type monthDeltaType struct{ BasicType }

func (*monthDeltaType) Truth(v Value) (bool, error) { return v.(MonthDelta) != 0, nil }

func (*monthDeltaType) ToStr(v Value) (string, error) { return strMonthDelta(v.(MonthDelta)), nil }

func (*monthDeltaType) ToInt(v Value) (Value, error) { return int64(v.(MonthDelta)), nil }

// MonthDeltaType describes monthdeltas.
var MonthDeltaType = &monthDeltaType{BasicType{
	TypeName: "monthdelta",
	TypeDoc:  "monthdelta(months=0) creates a duration in months.",
	Sig:      MustSignature(Opt("months", int64(0))),
	InstanceFn: func(v Value) bool { _, ok := v.(MonthDelta); return ok },
}}

type undefinedType struct{ BasicType }

func (*undefinedType) Truth(v Value) (bool, error) { return false, v.(*Undefined).Err() }

func (*undefinedType) Len(v Value) (int, error) { return 0, v.(*Undefined).Err() }

func (*undefinedType) ToInt(v Value) (Value, error) { return nil, v.(*Undefined).Err() }

func (*undefinedType) ToFloat(v Value) (Value, error) { return nil, v.(*Undefined).Err() }

func (*undefinedType) ToStr(v Value) (string, error) { return "", v.(*Undefined).Err() }

// Attr of an undefined value is itself, so that a.b.c reports the first
// missing link.
func (*undefinedType) Attr(c *Context, v Value, name string) Value { return v }

func (*undefinedType) CallAttr(c *Context, v Value, name string, args []Value, kwargs []Keyword) (Value, error) {
	return nil, v.(*Undefined).Err()
}

// UndefinedType describes undefined sentinels.
var UndefinedType = &undefinedType{BasicType{
	TypeName:   "undefined",
	TypeDoc:    "The result of looking up something that does not exist.",
	InstanceFn: IsUndefined,
}}

// FunctionType describes functions implemented in Go and host callables.
var FunctionType = &BasicType{
	TypeName:   "function",
	TypeDoc:    "A function implemented by the host.",
	InstanceFn: func(v Value) bool { _, ok := v.(Callable); return ok },
}

// BoundMethodType describes methods bound to their receiver.
var BoundMethodType = &BasicType{
	TypeName:   "method",
	TypeDoc:    "A method bound to the object it was looked up on.",
	InstanceFn: func(v Value) bool { _, ok := v.(*BoundMethod); return ok },
}

// IteratorType describes host iterators, such as the results of dict.items().
var IteratorType = &BasicType{
	TypeName:   "iterator",
	TypeDoc:    "A single-pass sequence.",
	InstanceFn: func(v Value) bool { _, ok := v.(Iterator); return ok },
}

// GeneratorType describes generator expressions.
var GeneratorType = &BasicType{
	TypeName:   "generator",
	TypeDoc:    "A lazy, single-pass sequence.",
	InstanceFn: func(v Value) bool { _, ok := v.(*Generator); return ok },
}

type typeType struct{ BasicType }

// Attr exposes a type's name, module and documentation.
func (t *typeType) Attr(c *Context, v Value, name string) Value {
	x := v.(Type)
	switch name {
	case "__name__":
		return x.Name()
	case "__module__":
		if m := x.Module(); m != "" {
			return m
		}
		return nil
	case "__doc__":
		return x.Doc()
	}
	return t.BasicType.Attr(c, v, name)
}

func (t *typeType) Dir(v Value) []string {
	return append([]string{"__doc__", "__module__", "__name__"}, t.BasicType.Dir(v)...)
}

// TypeType describes types.
var TypeType = &typeType{BasicType{
	TypeName: "type",
	TypeDoc:  "type(obj) returns the type of obj.",
	Sig:      MustSignature(Req("obj").PosOnly()),
	InstanceFn: func(v Value) bool { _, ok := v.(Type); return ok },
}}

// Truth returns the truthiness of v.
func Truth(v Value) (bool, error) {
	switch x := v.(type) {
	case nil:
		return false, nil
	case bool:
		return x, nil
	case int64:
		return x != 0, nil
	case string:
		return x != "", nil
	case *Undefined:
		return false, x.Err()
	}
	return TypeOf(v).Truth(v)
}

// Len returns the length of v, as by len(v).
func Len(v Value) (int, error) {
	if err := defined(v); err != nil {
		return 0, err
	}
	return TypeOf(v).Len(v)
}

// ToInt converts v as by int(v).
func ToInt(v Value) (Value, error) {
	if err := defined(v); err != nil {
		return nil, err
	}
	return TypeOf(v).ToInt(v)
}

// ToFloat converts v as by float(v).
func ToFloat(v Value) (Value, error) {
	if err := defined(v); err != nil {
		return nil, err
	}
	return TypeOf(v).ToFloat(v)
}

// GetAttr returns the attribute name of v. Looking up a missing attribute
// returns an undefined sentinel; looking up any attribute of an undefined
// value is an error.
func GetAttr(c *Context, v Value, name string) (Value, error) {
	if err := defined(v); err != nil {
		return nil, err
	}
	return TypeOf(v).Attr(c, v, name), nil
}

// SetAttr sets the attribute name of v.
func SetAttr(c *Context, v Value, name string, val Value) error {
	if err := defined(v); err != nil {
		return err
	}
	return TypeOf(v).SetAttr(c, v, name, val)
}

func init() {
	// Constructors refer back to TypeOf, so they can't be set in the
	// declarations.
	BoolType.CreateFn = createBool
	IntType.CreateFn = createInt
	FloatType.CreateFn = createFloat
	StrType.CreateFn = createStr
	ListType.CreateFn = createList
	SetType.CreateFn = createSet
	DictType.CreateFn = createDict
	DateType.CreateFn = createDate
	DateTimeType.CreateFn = createDateTime
	TimeDeltaType.CreateFn = createTimeDelta
	MonthDeltaType.CreateFn = createMonthDelta
	TypeType.CreateFn = createType
	Register(initCore)
}

// initCore registers the type constructors and the methods of the core
// container types.
func initCore(r *Registry) {
	for _, t := range []Type{BoolType, IntType, FloatType, StrType, ListType, SetType, DictType, DateType, DateTimeType, TimeDeltaType, MonthDeltaType, TypeType} {
		r.AddBuiltin(t.Name(), t)
	}
	r.RegisterInterface(reflect.TypeOf((*Iterator)(nil)).Elem(), IteratorType)
	r.AddMethods(ListType, listMethods...)
	r.AddMethods(DictType, dictMethods...)
	r.AddMethods(SetType, setMethods...)
}

var listMethods = []*Method{
	{
		Name: "append",
		Sig:  MustSignature(Args("items")),
		Fn: func(c *Context, self Value, args *BoundArguments) (Value, error) {
			self.(*List).Append(args.At(0).(*List).Items...)
			return nil, nil
		},
	},
	{
		Name: "insert",
		Sig:  MustSignature(Req("pos").PosOnly(), Args("items")),
		Fn: func(c *Context, self Value, args *BoundArguments) (Value, error) {
			pos, err := args.IntAt(0)
			if err != nil {
				return nil, err
			}
			l := self.(*List)
			for i, v := range args.At(1).(*List).Items {
				l.Insert(pos+int64(i), v)
			}
			return nil, nil
		},
	},
	{
		Name: "pop",
		Sig:  MustSignature(Opt("pos", int64(-1)).PosOnly()),
		Fn: func(c *Context, self Value, args *BoundArguments) (Value, error) {
			pos, err := args.IntAt(0)
			if err != nil {
				return nil, err
			}
			return self.(*List).Pop(pos)
		},
	},
	{
		Name: "count",
		Sig:  MustSignature(Req("item").PosOnly()),
		Fn: func(c *Context, self Value, args *BoundArguments) (Value, error) {
			var n int64
			for _, v := range self.(*List).Items {
				if Equal(v, args.At(0)) {
					n++
				}
			}
			return n, nil
		},
	},
	{
		Name: "find",
		Sig:  MustSignature(Req("item").PosOnly()),
		Fn: func(c *Context, self Value, args *BoundArguments) (Value, error) {
			for i, v := range self.(*List).Items {
				if Equal(v, args.At(0)) {
					return int64(i), nil
				}
			}
			return int64(-1), nil
		},
	},
}

var dictMethods = []*Method{
	{
		Name: "items",
		Sig:  MustSignature(),
		Fn: func(c *Context, self Value, args *BoundArguments) (Value, error) {
			d := self.(*Dict)
			r := make([]Value, 0, d.Len())
			d.Range(func(k, v Value) bool {
				r = append(r, NewList(k, v))
				return true
			})
			return NewSliceIter(r), nil
		},
	},
	{
		Name: "keys",
		Sig:  MustSignature(),
		Fn: func(c *Context, self Value, args *BoundArguments) (Value, error) {
			return NewSliceIter(self.(*Dict).Keys()), nil
		},
	},
	{
		Name: "values",
		Sig:  MustSignature(),
		Fn: func(c *Context, self Value, args *BoundArguments) (Value, error) {
			return NewSliceIter(self.(*Dict).Values()), nil
		},
	},
	{
		Name: "get",
		Sig:  MustSignature(Req("key").PosOnly(), Opt("default", nil).PosOnly()),
		Fn: func(c *Context, self Value, args *BoundArguments) (Value, error) {
			v, ok, err := self.(*Dict).Get(args.At(0))
			if err != nil {
				return nil, err
			}
			if !ok {
				return args.At(1), nil
			}
			return v, nil
		},
	},
	{
		Name: "update",
		Sig:  MustSignature(Args("others"), Kwargs("kwargs")),
		Fn: func(c *Context, self Value, args *BoundArguments) (Value, error) {
			d := self.(*Dict)
			for _, o := range args.At(0).(*List).Items {
				if err := updateDict(c, d, o); err != nil {
					return nil, err
				}
			}
			d.Update(args.At(1).(*Dict))
			return nil, nil
		},
	},
	{
		Name: "pop",
		Sig:  MustSignature(Req("key").PosOnly(), Args("default")),
		Fn: func(c *Context, self Value, args *BoundArguments) (Value, error) {
			v, ok, err := self.(*Dict).Delete(args.At(0))
			if err != nil {
				return nil, err
			}
			if !ok {
				def := args.At(1).(*List)
				switch def.Len() {
				case 0:
					return nil, &KeyError{Key: args.At(0)}
				case 1:
					return def.Items[0], nil
				default:
					return nil, &ArgumentError{Kind: TooManyArguments, Callable: "dict.pop", Position: 2, Have: 1 + def.Len()}
				}
			}
			return v, nil
		},
	},
	{
		Name: "clear",
		Sig:  MustSignature(),
		Fn: func(c *Context, self Value, args *BoundArguments) (Value, error) {
			self.(*Dict).Clear()
			return nil, nil
		},
	},
}

var setMethods = []*Method{
	{
		Name: "add",
		Sig:  MustSignature(Args("items")),
		Fn: func(c *Context, self Value, args *BoundArguments) (Value, error) {
			s := self.(*Set)
			for _, v := range args.At(0).(*List).Items {
				if err := s.Add(v); err != nil {
					return nil, err
				}
			}
			return nil, nil
		},
	},
	{
		Name: "discard",
		Sig:  MustSignature(Args("items")),
		Fn: func(c *Context, self Value, args *BoundArguments) (Value, error) {
			s := self.(*Set)
			for _, v := range args.At(0).(*List).Items {
				if err := s.Discard(v); err != nil {
					return nil, err
				}
			}
			return nil, nil
		},
	},
	{
		Name: "clear",
		Sig:  MustSignature(),
		Fn: func(c *Context, self Value, args *BoundArguments) (Value, error) {
			self.(*Set).Clear()
			return nil, nil
		},
	},
}

func createBool(c *Context, args *BoundArguments) (Value, error) {
	return Truth(args.At(0))
}

func createFloat(c *Context, args *BoundArguments) (Value, error) {
	return ToFloat(args.At(0))
}

func createStr(c *Context, args *BoundArguments) (Value, error) {
	return Str(args.At(0))
}

func createList(c *Context, args *BoundArguments) (Value, error) {
	if args.At(0) == nil {
		return NewList(), nil
	}
	items, err := Collect(c, args.At(0))
	if err != nil {
		return nil, err
	}
	return NewList(items...), nil
}

func createSet(c *Context, args *BoundArguments) (Value, error) {
	if args.At(0) == nil {
		return NewSet()
	}
	items, err := Collect(c, args.At(0))
	if err != nil {
		return nil, err
	}
	return NewSet(items...)
}

func createDate(c *Context, args *BoundArguments) (Value, error) {
	f, err := intArgs(args, 3)
	if err != nil {
		return nil, err
	}
	if err := checkDate(f[0], f[1], f[2]); err != nil {
		return nil, err
	}
	return NewDate(int(f[0]), time.Month(f[1]), int(f[2])), nil
}

func createDateTime(c *Context, args *BoundArguments) (Value, error) {
	f, err := intArgs(args, 7)
	if err != nil {
		return nil, err
	}
	if err := checkDate(f[0], f[1], f[2]); err != nil {
		return nil, err
	}
	if f[3] < 0 || f[3] > 23 || f[4] < 0 || f[4] > 59 || f[5] < 0 || f[5] > 59 || f[6] < 0 || f[6] >= microsPerSec {
		return nil, &ValueError{Msg: "time component out of range"}
	}
	return time.Date(int(f[0]), time.Month(f[1]), int(f[2]), int(f[3]), int(f[4]), int(f[5]), int(f[6])*1000, time.UTC), nil
}

func createTimeDelta(c *Context, args *BoundArguments) (Value, error) {
	var us float64
	exact := true
	var parts [3]int64
	scale := [3]float64{microsPerDay, microsPerSec, 1}
	for i := range parts {
		switch args.At(i).(type) {
		case bool, int64, *big.Int:
			n, err := args.IntAt(i)
			if err != nil {
				return nil, err
			}
			parts[i] = n
		default:
			f, err := args.FloatAt(i)
			if err != nil {
				return nil, err
			}
			us += f * scale[i]
			exact = false
		}
	}
	t := NewTimeDelta(parts[0], parts[1], parts[2])
	if !exact {
		t = NewTimeDelta(t.Days, t.Seconds, t.Microseconds+int64(math.Round(us)))
	}
	return t, nil
}

func createMonthDelta(c *Context, args *BoundArguments) (Value, error) {
	n, err := args.IntAt(0)
	if err != nil {
		return nil, err
	}
	return MonthDelta(n), nil
}

func createType(c *Context, args *BoundArguments) (Value, error) {
	return TypeOf(args.At(0)), nil
}
