package internal

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// Reprer is implemented by host values that provide their own repr.
type Reprer interface {
	UL4Repr() string
}

// Repr returns the canonical source-like representation of v.
func Repr(v Value) string {
	var b strings.Builder
	writeRepr(&b, v, nil)
	return b.String()
}

// writeRepr writes the repr of v. path holds the containers currently being
// written, to print cycles as [...].
func writeRepr(b *strings.Builder, v Value, path []Value) {
	switch x := v.(type) {
	case nil:
		b.WriteString("None")
	case bool:
		if x {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case int64:
		b.WriteString(strconv.FormatInt(x, 10))
	case *big.Int:
		b.WriteString(x.String())
	case float64:
		b.WriteString(formatFloat(x))
	case decimal.Decimal:
		b.WriteString(formatDecimal(x))
	case string:
		b.WriteString(quote(x))
	case *List:
		if onPath(path, x) {
			b.WriteString("[...]")
			return
		}
		path = append(path, x)
		b.WriteByte('[')
		for i, e := range x.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			writeRepr(b, e, path)
		}
		b.WriteByte(']')
	case *Set:
		if x.Len() == 0 {
			b.WriteString("{/}")
			return
		}
		if onPath(path, x) {
			b.WriteString("{...}")
			return
		}
		path = append(path, x)
		b.WriteByte('{')
		for i, e := range x.elems {
			if i > 0 {
				b.WriteString(", ")
			}
			writeRepr(b, e, path)
		}
		b.WriteByte('}')
	case *Dict:
		if onPath(path, x) {
			b.WriteString("{...}")
			return
		}
		path = append(path, x)
		b.WriteByte('{')
		for i, k := range x.keys {
			if i > 0 {
				b.WriteString(", ")
			}
			writeRepr(b, k, path)
			b.WriteString(": ")
			writeRepr(b, x.vals[i], path)
		}
		b.WriteByte('}')
	case Date:
		fmt.Fprintf(b, "@(%s)", formatDate(x))
	case time.Time:
		b.WriteString("@(")
		b.WriteString(x.Format("2006-01-02T15:04:05"))
		if us := x.Nanosecond() / 1000; us != 0 {
			fmt.Fprintf(b, ".%06d", us)
		}
		b.WriteByte(')')
	case TimeDelta:
		x = x.normalize()
		parts := []int64{x.Days, x.Seconds, x.Microseconds}
		for len(parts) > 0 && parts[len(parts)-1] == 0 {
			parts = parts[:len(parts)-1]
		}
		b.WriteString("timedelta(")
		for i, p := range parts {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.FormatInt(p, 10))
		}
		b.WriteByte(')')
	case MonthDelta:
		if x == 0 {
			b.WriteString("monthdelta()")
		} else {
			fmt.Fprintf(b, "monthdelta(%d)", int64(x))
		}
	case *Undefined:
		b.WriteString("undefined")
	case *Template:
		fmt.Fprintf(b, "<template %s>", x.Name)
	case *Closure:
		fmt.Fprintf(b, "<template closure %s>", x.Template.Name)
	case *BoundMethod:
		fmt.Fprintf(b, "<method %s>", x.Name())
	case *Function:
		fmt.Fprintf(b, "<function %s>", x.Name())
	case *Generator:
		b.WriteString("<generator>")
	case Type:
		fmt.Fprintf(b, "<type %s>", QualifiedName(x))
	case Reprer:
		b.WriteString(x.UL4Repr())
	default:
		fmt.Fprintf(b, "<%s object>", QualifiedName(TypeOf(v)))
	}
}

func onPath(path []Value, v Value) bool {
	for _, p := range path {
		if p == v {
			return true
		}
	}
	return false
}

// formatFloat formats f the way Python's repr does: the shortest string that
// round-trips, in positional notation for exponents in [-4, 16).
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	if f != 0 {
		exp := math.Floor(math.Log10(math.Abs(f)))
		if exp < -4 || exp >= 16 {
			return strconv.FormatFloat(f, 'e', -1, 64)
		}
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

func formatDecimal(d decimal.Decimal) string {
	s := d.String()
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

func formatDate(d Date) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// quote quotes a string the way Python's repr does.
func quote(s string) string {
	q := byte('\'')
	if strings.IndexByte(s, '\'') >= 0 && strings.IndexByte(s, '"') < 0 {
		q = '"'
	}
	var b strings.Builder
	b.WriteByte(q)
	for _, r := range s {
		switch {
		case r == rune(q) || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		case !unicode.IsPrint(r) && r <= 0xffff:
			fmt.Fprintf(&b, `\u%04x`, r)
		case !unicode.IsPrint(r):
			fmt.Fprintf(&b, `\U%08x`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}

// Str converts v to a string as by str(v).
func Str(v Value) (string, error) {
	if err := defined(v); err != nil {
		return "", err
	}
	return TypeOf(v).ToStr(v)
}

func strTimeDelta(t TimeDelta) string {
	t = t.normalize()
	var b strings.Builder
	if t.Days != 0 {
		fmt.Fprintf(&b, "%d day", t.Days)
		if t.Days != 1 && t.Days != -1 {
			b.WriteByte('s')
		}
		b.WriteString(", ")
	}
	fmt.Fprintf(&b, "%d:%02d:%02d", t.Seconds/3600, t.Seconds/60%60, t.Seconds%60)
	if t.Microseconds != 0 {
		fmt.Fprintf(&b, ".%06d", t.Microseconds)
	}
	return b.String()
}

func strMonthDelta(m MonthDelta) string {
	if m == 1 || m == -1 {
		return fmt.Sprintf("%d month", int64(m))
	}
	return fmt.Sprintf("%d months", int64(m))
}

func strDateTime(t time.Time) string {
	s := t.Format("2006-01-02 15:04:05")
	if us := t.Nanosecond() / 1000; us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	return s
}
