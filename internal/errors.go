package internal

import (
	"fmt"
	"strings"
	"unicode"

	"src.elv.sh/pkg/persistent/vector"
)

// AttributeError is an unknown attribute or variable name, or an attempt to
// set a read-only attribute.
type AttributeError struct {
	// Object is the value whose attribute was requested. It is nil for
	// undefined variables.
	Object Value
	// Name is the attribute or variable name.
	Name string
	// Variable is set when Name is a variable rather than an attribute.
	Variable bool
	// ReadOnly is set when the attribute exists but cannot be assigned.
	ReadOnly bool
}

func (err *AttributeError) Error() string {
	switch {
	case err.Variable:
		return fmt.Sprintf("variable %q is undefined", err.Name)
	case err.ReadOnly:
		return fmt.Sprintf("attribute %q of %s object is read-only", err.Name, typeName(err.Object))
	default:
		return fmt.Sprintf("%s object has no attribute %q", typeName(err.Object), err.Name)
	}
}

// KeyError is a lookup of a key that a dict does not contain.
type KeyError struct {
	Key Value
}

func (err *KeyError) Error() string {
	return fmt.Sprintf("key %s not found", Repr(err.Key))
}

// IndexError is an out-of-range index or an invalid slice.
type IndexError struct {
	Index Value
	// Msg describes invalid slices. If empty, Index was out of range.
	Msg string
}

func (err *IndexError) Error() string {
	if err.Msg != "" {
		return err.Msg
	}
	return fmt.Sprintf("index %s out of range", Repr(err.Index))
}

// ArgumentErrorKind classifies argument binding failures.
type ArgumentErrorKind int

// Argument binding failures.
const (
	// MissingArgument is a required parameter left unfilled.
	MissingArgument ArgumentErrorKind = iota
	// DuplicateArgument is a parameter supplied both positionally and by
	// keyword, or twice by keyword.
	DuplicateArgument
	// TooManyArguments is more positional arguments than parameters with no
	// variadic parameter to take the rest.
	TooManyArguments
	// UnsupportedArgumentName is a keyword matching no parameter with no
	// variadic keyword parameter to take it.
	UnsupportedArgumentName
	// PositionalOnlyByKeyword is a positional-only parameter passed by
	// keyword.
	PositionalOnlyByKeyword
	// RemainingArguments is a *args expansion of a non-iterable.
	RemainingArguments
	// RemainingKeywordArguments is a **kwargs expansion of a non-dict or of a
	// dict with non-string keys.
	RemainingKeywordArguments
)

var argumentErrorNames = [...]string{
	"missing argument", "duplicate argument", "too many arguments",
	"unsupported argument name", "positional-only argument passed by keyword",
	"remaining arguments", "remaining keyword arguments",
}

func (k ArgumentErrorKind) String() string {
	if k < MissingArgument || k > RemainingKeywordArguments {
		return fmt.Sprintf("ArgumentErrorKind(%d)", k)
	}
	return argumentErrorNames[k]
}

// ArgumentError is a failure to bind a call's arguments to a signature.
type ArgumentError struct {
	Kind ArgumentErrorKind
	// Callable is the name of the callable being bound.
	Callable string
	// Names are the parameter or keyword names involved.
	Names []string
	// Position is the parameter position for DuplicateArgument, or -1 for a
	// variable with no position. For TooManyArguments, it is the number of
	// accepted positional arguments.
	Position int
	// Have is the number of positional arguments given for TooManyArguments.
	Have int
}

func (err *ArgumentError) Error() string {
	who := err.Callable
	if who == "" {
		who = "<anonymous>"
	}
	switch err.Kind {
	case MissingArgument:
		if len(err.Names) == 1 {
			return fmt.Sprintf("required argument %q (position %d) for %s missing", err.Names[0], err.Position, who)
		}
		return fmt.Sprintf("required arguments %s for %s missing", quoteNames(err.Names), who)
	case DuplicateArgument:
		if err.Position < 0 {
			return fmt.Sprintf("duplicate argument %q for %s", err.Names[0], who)
		}
		return fmt.Sprintf("duplicate argument %q (position %d) for %s", err.Names[0], err.Position, who)
	case TooManyArguments:
		return fmt.Sprintf("%s expects at most %d positional arguments, %d given", who, err.Position, err.Have)
	case UnsupportedArgumentName:
		return fmt.Sprintf("%s doesn't support an argument named %q", who, err.Names[0])
	case PositionalOnlyByKeyword:
		return fmt.Sprintf("positional-only argument %q for %s passed as keyword", err.Names[0], who)
	case RemainingArguments:
		return fmt.Sprintf("remaining arguments for %s must be iterable", who)
	case RemainingKeywordArguments:
		return fmt.Sprintf("remaining keyword arguments for %s must be a dict with string keys", who)
	}
	return fmt.Sprintf("%v for %s", err.Kind, who)
}

func quoteNames(names []string) string {
	q := make([]string, len(names))
	for i, n := range names {
		q[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(q, ", ")
}

// TypeMismatchError is an operation applied to operand kinds it cannot
// handle.
type TypeMismatchError struct {
	Op       string
	Operands []Value
}

func (err *TypeMismatchError) Error() string {
	switch len(err.Operands) {
	case 1:
		if isWord(err.Op) {
			return fmt.Sprintf("%s(%s) not supported", err.Op, typeName(err.Operands[0]))
		}
		return fmt.Sprintf("%s%s not supported", err.Op, typeName(err.Operands[0]))
	case 2:
		return fmt.Sprintf("%s %s %s not supported", typeName(err.Operands[0]), err.Op, typeName(err.Operands[1]))
	}
	t := make([]string, len(err.Operands))
	for i, v := range err.Operands {
		t[i] = typeName(v)
	}
	return fmt.Sprintf("%s(%s) not supported", err.Op, strings.Join(t, ", "))
}

func isWord(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && r != '_' {
			return false
		}
	}
	return s != ""
}

func mismatch(op string, operands ...Value) error {
	return &TypeMismatchError{Op: op, Operands: operands}
}

// LoopControlError is a break or continue outside of a loop, or a return
// where no template call can receive it.
type LoopControlError struct {
	Stmt string
}

func (err *LoopControlError) Error() string {
	if err.Stmt == "return" {
		return "return outside of template"
	}
	return err.Stmt + " outside of for/while loop"
}

// UnpackError is a mismatch between the number of targets in an unpacking
// assignment and the number of items produced.
type UnpackError struct {
	Targets int
	Items   int
	// More is set when iteration stopped early because there were more items
	// than targets.
	More bool
}

func (err *UnpackError) Error() string {
	if err.More {
		return fmt.Sprintf("mismatched unpacking: %d varnames, %d+ items", err.Targets, err.Items)
	}
	return fmt.Sprintf("mismatched unpacking: %d varnames, %d items", err.Targets, err.Items)
}

// ValueError is an argument of the right type with an unusable value, such
// as an unparseable number.
type ValueError struct {
	Msg string
}

func (err *ValueError) Error() string {
	return err.Msg
}

// ZeroDivisionError is division or modulo by zero.
type ZeroDivisionError struct {
	Op string
}

func (err *ZeroDivisionError) Error() string {
	return "division by zero in " + err.Op
}

// OverflowError is a result too large for any representation, such as a
// shift by an enormous count.
type OverflowError struct {
	Msg string
}

func (err *OverflowError) Error() string {
	return err.Msg
}

// NotCallableError is a call of a value that is not callable.
type NotCallableError struct {
	Object Value
}

func (err *NotCallableError) Error() string {
	return fmt.Sprintf("%s object is not callable", typeName(err.Object))
}

// StepLimitError is raised when an evaluation exceeds its step budget.
type StepLimitError struct {
	Max int
}

func (err *StepLimitError) Error() string {
	return fmt.Sprintf("evaluation exceeded %d steps", err.Max)
}

// StructureError is a malformed tree or signature.
type StructureError struct {
	Kind string
	Msg  string
}

func (err *StructureError) Error() string {
	if err.Kind == "" {
		return err.Msg
	}
	return err.Kind + ": " + err.Msg
}

// LocationError decorates an error with the node where it occurred. Each
// call or render frame the error passes through adds one more LocationError
// around it, so following Err gives the trace from the outermost call inward.
type LocationError struct {
	Err error
	// Node is the node that was being evaluated.
	Node Node
	// Template is the template containing Node, if known.
	Template *Template

	frames vector.Vector
	// depth is the frame depth at which the error was decorated.
	depth int
}

func (err *LocationError) Error() string {
	var b strings.Builder
	var chain []*LocationError
	var inner error = err
	for {
		le, ok := inner.(*LocationError)
		if !ok {
			break
		}
		chain = append(chain, le)
		inner = le.Err
	}
	b.WriteString(inner.Error())
	for i := len(chain) - 1; i >= 0; i-- {
		b.WriteString("\n\tat ")
		b.WriteString(chain[i].Location())
	}
	return b.String()
}

// Unwrap returns the decorated error.
func (err *LocationError) Unwrap() error {
	return err.Err
}

// Location formats the position of the node as template:line:col (kind).
func (err *LocationError) Location() string {
	name := "<unknown>"
	src := ""
	if err.Template != nil {
		name, src = err.Template.Name, err.Template.Source
	}
	pos := err.Node.Pos()
	if src == "" || pos.Start > len(src) {
		return fmt.Sprintf("%s[%d:%d] (%s)", name, pos.Start, pos.Stop, err.Node.Kind())
	}
	line, col := pos.LineCol(src)
	return fmt.Sprintf("%s:%d:%d (%s)", name, line, col, err.Node.Kind())
}

// Frames returns the call frames that were active when the error was
// decorated, outermost first.
func (err *LocationError) Frames() []Frame {
	return framesOf(err.frames)
}

// Innermost returns the deepest LocationError in the chain.
func (err *LocationError) Innermost() *LocationError {
	for {
		le, ok := err.Err.(*LocationError)
		if !ok {
			return err
		}
		err = le
	}
}

func typeName(v Value) string {
	return TypeOf(v).Name()
}

// Mismatch returns the error for an operation applied to operands it does not
// support.
func Mismatch(op string, operands ...Value) error {
	return mismatch(op, operands...)
}
