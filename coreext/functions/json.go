package functions

import (
	"bytes"
	"math"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/zephyrtronium/ul4"
	"github.com/zephyrtronium/ul4/internal"
)

func asjson(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
	var b bytes.Buffer
	if err := encode(c, &b, args.At(0)); err != nil {
		return nil, err
	}
	return b.String(), nil
}

// encode writes v as JSON. Dicts keep their insertion order, which is why
// this doesn't go through a Go map.
func encode(c *ul4.Context, b *bytes.Buffer, v ul4.Value) error {
	switch x := v.(type) {
	case nil:
		b.WriteString("null")
	case bool, int64, string:
		return marshal(b, x)
	case *big.Int:
		b.WriteString(x.String())
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return &ul4.ValueError{Msg: "can't encode " + ul4.Repr(x) + " as JSON"}
		}
		return marshal(b, x)
	case decimal.Decimal:
		b.WriteString(x.String())
	case ul4.Date:
		return marshal(b, x.Time().Format("2006-01-02"))
	case time.Time:
		return marshal(b, x.Format("2006-01-02T15:04:05.999999"))
	case ul4.TimeDelta:
		return marshal(b, x.TotalSeconds())
	case ul4.MonthDelta:
		return marshal(b, int64(x))
	case *ul4.Dict:
		b.WriteByte('{')
		var err error
		first := true
		x.Range(func(k, v ul4.Value) bool {
			s, ok := k.(string)
			if !ok {
				err = internal.Mismatch("asjson", k)
				return false
			}
			if !first {
				b.WriteString(", ")
			}
			first = false
			if err = marshal(b, s); err != nil {
				return false
			}
			b.WriteString(": ")
			err = encode(c, b, v)
			return err == nil
		})
		if err != nil {
			return err
		}
		b.WriteByte('}')
	case *ul4.Undefined:
		return x.Err()
	default:
		items, err := internal.Collect(c, v)
		if err != nil {
			return internal.Mismatch("asjson", v)
		}
		b.WriteByte('[')
		for i, e := range items {
			if i != 0 {
				b.WriteString(", ")
			}
			if err := encode(c, b, e); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	}
	return nil
}

func marshal(b *bytes.Buffer, v interface{}) error {
	p, err := json.Marshal(v)
	if err != nil {
		return err
	}
	b.Write(p)
	return nil
}

// fromjson decodes a JSON document. Objects become dicts with their keys in
// sorted order.
func fromjson(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
	s, err := args.StrAt(0)
	if err != nil {
		return nil, err
	}
	d := json.NewDecoder(strings.NewReader(s))
	d.UseNumber()
	var v interface{}
	if err := d.Decode(&v); err != nil {
		return nil, &ul4.ValueError{Msg: "invalid JSON: " + err.Error()}
	}
	return decode(v)
}

func decode(v interface{}) (ul4.Value, error) {
	switch x := v.(type) {
	case json.Number:
		s := x.String()
		if !strings.ContainsAny(s, ".eE") {
			if n, ok := new(big.Int).SetString(s, 10); ok {
				return internal.NewInt(n), nil
			}
		}
		f, err := x.Float64()
		if err != nil {
			return nil, &ul4.ValueError{Msg: "invalid JSON number " + s}
		}
		return f, nil
	case []interface{}:
		items := make([]ul4.Value, len(x))
		for i, e := range x {
			var err error
			if items[i], err = decode(e); err != nil {
				return nil, err
			}
		}
		return ul4.NewList(items...), nil
	case map[string]interface{}:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		r := ul4.NewDict()
		for _, k := range keys {
			e, err := decode(x[k])
			if err != nil {
				return nil, err
			}
			if err := r.Set(k, e); err != nil {
				return nil, err
			}
		}
		return r, nil
	}
	return v, nil
}
