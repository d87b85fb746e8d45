package internal

import (
	"math"
	"time"
)

// Date is a calendar date without a time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the date part of t.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{y, m, d}
}

// NewDate creates a normalized date; out-of-range days and months roll over
// the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Time returns midnight UTC on d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Compare returns -1, 0, or 1 as d is before, equal to, or after e.
func (d Date) Compare(e Date) int {
	switch {
	case d.Year != e.Year:
		return sign(int64(d.Year - e.Year))
	case d.Month != e.Month:
		return sign(int64(d.Month - e.Month))
	default:
		return sign(int64(d.Day - e.Day))
	}
}

func sign(x int64) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

const (
	secondsPerDay = 86400
	microsPerSec  = 1000000
	microsPerDay  = secondsPerDay * microsPerSec
)

// TimeDelta is a duration measured in days, seconds, and microseconds. The
// normalized form has 0 <= Seconds < 86400 and 0 <= Microseconds < 1000000.
type TimeDelta struct {
	Days         int64
	Seconds      int64
	Microseconds int64
}

// NewTimeDelta creates a normalized TimeDelta.
func NewTimeDelta(days, seconds, micros int64) TimeDelta {
	return TimeDelta{days, seconds, micros}.normalize()
}

// DeltaFromDuration converts a Go duration to a TimeDelta, truncating to
// microseconds.
func DeltaFromDuration(d time.Duration) TimeDelta {
	return deltaFromMicros(int64(d / time.Microsecond))
}

func deltaFromMicros(us int64) TimeDelta {
	return TimeDelta{Microseconds: us}.normalize()
}

func (t TimeDelta) normalize() TimeDelta {
	s, us := floorDivMod(t.Microseconds, microsPerSec)
	d, s := floorDivMod(t.Seconds+s, secondsPerDay)
	return TimeDelta{Days: t.Days + d, Seconds: s, Microseconds: us}
}

// Micros returns the total length of t in microseconds.
func (t TimeDelta) Micros() int64 {
	return t.Days*microsPerDay + t.Seconds*microsPerSec + t.Microseconds
}

// Duration converts t to a Go duration.
func (t TimeDelta) Duration() time.Duration {
	return time.Duration(t.Micros()) * time.Microsecond
}

// TotalSeconds returns the length of t in seconds.
func (t TimeDelta) TotalSeconds() float64 {
	return float64(t.Days)*secondsPerDay + float64(t.Seconds) + float64(t.Microseconds)/microsPerSec
}

// IsZero reports whether t is the empty duration.
func (t TimeDelta) IsZero() bool {
	return t.normalize() == TimeDelta{}
}

// MonthDelta is a duration measured in calendar months.
type MonthDelta int64

func floorDivMod(a, b int64) (int64, int64) {
	q, r := a/b, a%b
	if r != 0 && (r < 0) != (b < 0) {
		q--
		r += b
	}
	return q, r
}

// addMonths moves t by n calendar months, clamping the day to the length of
// the target month.
func addMonths(t time.Time, n int64) time.Time {
	y, m, d := t.Date()
	total := int64(y)*12 + int64(m-1) + n
	ny, nm := floorDivMod(total, 12)
	last := daysIn(int(ny), time.Month(nm+1))
	if d > last {
		d = last
	}
	return time.Date(int(ny), time.Month(nm+1), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// dateArith implements arithmetic involving dates and deltas. ok is false if
// the operands are not a date/delta combination for op.
func dateArith(op string, a, b Value) (r Value, ok bool, err error) {
	switch op {
	case "+":
		return dateAdd(a, b)
	case "-":
		return dateSub(a, b)
	case "*":
		return deltaMul(a, b)
	case "/":
		return deltaDiv(a, b)
	case "//":
		return deltaFloorDiv(a, b)
	}
	return nil, false, nil
}

func dateAdd(a, b Value) (Value, bool, error) {
	switch x := a.(type) {
	case Date:
		switch y := b.(type) {
		case TimeDelta:
			return DateOf(x.Time().AddDate(0, 0, int(y.Days))), true, nil
		case MonthDelta:
			return DateOf(addMonths(x.Time(), int64(y))), true, nil
		}
	case time.Time:
		switch y := b.(type) {
		case TimeDelta:
			return x.AddDate(0, 0, int(y.Days)).Add(time.Duration(y.Seconds)*time.Second + time.Duration(y.Microseconds)*time.Microsecond), true, nil
		case MonthDelta:
			return addMonths(x, int64(y)), true, nil
		}
	case TimeDelta:
		switch y := b.(type) {
		case TimeDelta:
			return NewTimeDelta(x.Days+y.Days, x.Seconds+y.Seconds, x.Microseconds+y.Microseconds), true, nil
		case Date, time.Time:
			return dateAdd(b, a)
		}
	case MonthDelta:
		switch y := b.(type) {
		case MonthDelta:
			return x + y, true, nil
		case Date, time.Time:
			return dateAdd(b, a)
		}
	}
	return nil, false, nil
}

func dateSub(a, b Value) (Value, bool, error) {
	switch x := a.(type) {
	case Date:
		switch y := b.(type) {
		case Date:
			days := (x.Time().Unix() - y.Time().Unix()) / secondsPerDay
			return TimeDelta{Days: days}, true, nil
		case TimeDelta:
			return dateAdd(x, TimeDelta{Days: -y.Days})
		case MonthDelta:
			return dateAdd(x, -y)
		}
	case time.Time:
		switch y := b.(type) {
		case time.Time:
			sec := x.Unix() - y.Unix()
			ns := int64(x.Nanosecond() - y.Nanosecond())
			return NewTimeDelta(0, sec, ns/1000), true, nil
		case TimeDelta:
			return dateAdd(x, NewTimeDelta(-y.Days, -y.Seconds, -y.Microseconds))
		case MonthDelta:
			return dateAdd(x, -y)
		}
	case TimeDelta:
		if y, ok := b.(TimeDelta); ok {
			return NewTimeDelta(x.Days-y.Days, x.Seconds-y.Seconds, x.Microseconds-y.Microseconds), true, nil
		}
	case MonthDelta:
		if y, ok := b.(MonthDelta); ok {
			return x - y, true, nil
		}
	}
	return nil, false, nil
}

func deltaMul(a, b Value) (Value, bool, error) {
	switch x := a.(type) {
	case TimeDelta:
		switch y := b.(type) {
		case bool, int64:
			n := asInt64(y)
			return NewTimeDelta(x.Days*n, x.Seconds*n, x.Microseconds*n), true, nil
		case float64:
			return deltaFromMicros(int64(math.Round(float64(x.Micros()) * y))), true, nil
		}
	case MonthDelta:
		switch y := b.(type) {
		case bool, int64:
			return x * MonthDelta(asInt64(y)), true, nil
		}
	case bool, int64, float64:
		switch b.(type) {
		case TimeDelta, MonthDelta:
			return deltaMul(b, a)
		}
	}
	return nil, false, nil
}

func deltaDiv(a, b Value) (Value, bool, error) {
	switch x := a.(type) {
	case TimeDelta:
		switch y := b.(type) {
		case bool, int64:
			n := asInt64(y)
			if n == 0 {
				return nil, true, &ZeroDivisionError{Op: "/"}
			}
			return deltaFromMicros(int64(math.Round(float64(x.Micros()) / float64(n)))), true, nil
		case float64:
			if y == 0 {
				return nil, true, &ZeroDivisionError{Op: "/"}
			}
			return deltaFromMicros(int64(math.Round(float64(x.Micros()) / y))), true, nil
		case TimeDelta:
			if y.Micros() == 0 {
				return nil, true, &ZeroDivisionError{Op: "/"}
			}
			return float64(x.Micros()) / float64(y.Micros()), true, nil
		}
	case MonthDelta:
		if y, ok := b.(MonthDelta); ok {
			if y == 0 {
				return nil, true, &ZeroDivisionError{Op: "/"}
			}
			return float64(x) / float64(y), true, nil
		}
	}
	return nil, false, nil
}

func deltaFloorDiv(a, b Value) (Value, bool, error) {
	switch x := a.(type) {
	case TimeDelta:
		switch y := b.(type) {
		case bool, int64:
			n := asInt64(y)
			if n == 0 {
				return nil, true, &ZeroDivisionError{Op: "//"}
			}
			q, _ := floorDivMod(x.Micros(), n)
			return deltaFromMicros(q), true, nil
		case TimeDelta:
			if y.Micros() == 0 {
				return nil, true, &ZeroDivisionError{Op: "//"}
			}
			q, _ := floorDivMod(x.Micros(), y.Micros())
			return q, true, nil
		}
	case MonthDelta:
		switch y := b.(type) {
		case bool, int64:
			n := asInt64(y)
			if n == 0 {
				return nil, true, &ZeroDivisionError{Op: "//"}
			}
			q, _ := floorDivMod(int64(x), n)
			return MonthDelta(q), true, nil
		case MonthDelta:
			if y == 0 {
				return nil, true, &ZeroDivisionError{Op: "//"}
			}
			q, _ := floorDivMod(int64(x), int64(y))
			return q, true, nil
		}
	}
	return nil, false, nil
}
