// Package date adds the methods of date and datetime, along with the now,
// utcnow, and today functions.
package date

import (
	"fmt"
	"time"

	"gitlab.com/variadico/lctime"

	"github.com/zephyrtronium/ul4"
	_ "github.com/zephyrtronium/ul4/coreext/duration" // dates subtract to deltas
	"github.com/zephyrtronium/ul4/internal"
)

// Clock returns the current time. Tests may replace it.
var Clock = time.Now

func init() {
	internal.Register(initDate)
}

func initDate(r *internal.Registry) {
	none := ul4.MustSignature()
	r.AddFunction("now", none, now)
	r.AddFunction("utcnow", none, utcnow)
	r.AddFunction("today", none, today)

	common := []*ul4.Method{
		field("year", func(t time.Time) int { return t.Year() }),
		field("month", func(t time.Time) int { return int(t.Month()) }),
		field("day", func(t time.Time) int { return t.Day() }),
		field("weekday", weekday),
		field("yearday", func(t time.Time) int { return t.YearDay() }),
		{Name: "format", Sig: ul4.MustSignature(ul4.Req("format").PosOnly()), Fn: format},
		{Name: "isoformat", Sig: none, Fn: isoformat},
	}
	r.AddMethods(internal.DateType, common...)
	r.AddMethods(internal.DateTimeType, common...)
	r.AddMethods(internal.DateTimeType,
		field("hour", func(t time.Time) int { return t.Hour() }),
		field("minute", func(t time.Time) int { return t.Minute() }),
		field("second", func(t time.Time) int { return t.Second() }),
		field("microsecond", func(t time.Time) int { return t.Nanosecond() / 1000 }),
		&ul4.Method{Name: "date", Sig: none, Fn: func(c *ul4.Context, self ul4.Value, args *ul4.BoundArguments) (ul4.Value, error) {
			return internal.DateOf(self.(time.Time)), nil
		}},
	)
}

// asTime returns the time a date or datetime represents.
func asTime(v ul4.Value) time.Time {
	if d, ok := v.(ul4.Date); ok {
		return d.Time()
	}
	return v.(time.Time)
}

func field(name string, f func(time.Time) int) *ul4.Method {
	return &ul4.Method{
		Name: name,
		Sig:  ul4.MustSignature(),
		Fn: func(c *ul4.Context, self ul4.Value, args *ul4.BoundArguments) (ul4.Value, error) {
			return int64(f(asTime(self))), nil
		},
	}
}

// weekday numbers days from Monday as 0.
func weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// format formats using C strftime directives. See
// https://godoc.org/github.com/variadico/lctime for the supported list.
func format(c *ul4.Context, self ul4.Value, args *ul4.BoundArguments) (ul4.Value, error) {
	f, err := args.StrAt(0)
	if err != nil {
		return nil, err
	}
	return lctime.Strftime(f, asTime(self)), nil
}

func isoformat(c *ul4.Context, self ul4.Value, args *ul4.BoundArguments) (ul4.Value, error) {
	if d, ok := self.(ul4.Date); ok {
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day), nil
	}
	t := self.(time.Time)
	s := t.Format("2006-01-02T15:04:05")
	if us := t.Nanosecond() / 1000; us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	return s, nil
}

// naive drops the location of t, keeping its wall clock reading, and
// truncates it to microseconds.
func naive(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/1000*1000, time.UTC)
}

func now(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
	return naive(Clock()), nil
}

func utcnow(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
	return naive(Clock().UTC()), nil
}

func today(c *ul4.Context, args *ul4.BoundArguments) (ul4.Value, error) {
	return internal.DateOf(Clock()), nil
}
