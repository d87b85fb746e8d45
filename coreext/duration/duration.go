// Package duration adds the methods of timedelta and monthdelta.
package duration

import (
	"github.com/zephyrtronium/ul4"
	"github.com/zephyrtronium/ul4/internal"
)

func init() {
	internal.Register(initDuration)
}

func initDuration(r *internal.Registry) {
	r.AddMethods(internal.TimeDeltaType,
		component("days", func(t ul4.TimeDelta) int64 { return t.Days }),
		component("seconds", func(t ul4.TimeDelta) int64 { return t.Seconds }),
		component("microseconds", func(t ul4.TimeDelta) int64 { return t.Microseconds }),
		&ul4.Method{
			Name: "total_seconds",
			Sig:  ul4.MustSignature(),
			Fn: func(c *ul4.Context, self ul4.Value, args *ul4.BoundArguments) (ul4.Value, error) {
				return self.(ul4.TimeDelta).TotalSeconds(), nil
			},
		},
	)
	r.AddMethods(internal.MonthDeltaType, &ul4.Method{
		Name: "months",
		Sig:  ul4.MustSignature(),
		Fn: func(c *ul4.Context, self ul4.Value, args *ul4.BoundArguments) (ul4.Value, error) {
			return int64(self.(ul4.MonthDelta)), nil
		},
	})
}

// component creates a method returning one normalized part of a timedelta.
func component(name string, f func(ul4.TimeDelta) int64) *ul4.Method {
	return &ul4.Method{
		Name: name,
		Sig:  ul4.MustSignature(),
		Fn: func(c *ul4.Context, self ul4.Value, args *ul4.BoundArguments) (ul4.Value, error) {
			return f(self.(ul4.TimeDelta)), nil
		},
	}
}
