// Package testutils provides utilities for testing templates in Go.
package testutils

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/zephyrtronium/ul4"
	"github.com/zephyrtronium/ul4/astload"
)

// MaxSteps is the step limit of contexts created by TestingContext.
const MaxSteps = 1 << 20

// TestingContext returns a context for testing templates, writing to w. The
// context has a step limit so that runaway templates fail instead of hanging.
func TestingContext(w io.Writer) *ul4.Context {
	c := ul4.NewContext(w, nil)
	c.MaxSteps = MaxSteps
	return c
}

// A SourceTestCase is a test case containing a template body and a predicate
// to check the result.
type SourceTestCase struct {
	// Source is the body of the template to render, as a YAML sequence of
	// statements in the format of package astload.
	Source string
	// Vars are the template's variables.
	Vars map[string]interface{}
	// Pass is a predicate taking the value the template returned, its
	// output, and the error that ended it. If Pass returns false, then the
	// test fails.
	Pass func(result ul4.Value, output string, err error) bool
}

// TestFunc returns a test function for the test case. This renders the
// source as an unsigned template named name using a TestingContext.
func (c SourceTestCase) TestFunc(name string) func(*testing.T) {
	return func(t *testing.T) {
		tmpl, err := astload.BodyYAML(name, []byte(c.Source))
		if err != nil {
			t.Fatalf("could not load %q: %v", c.Source, err)
		}
		if err := ul4.Validate(tmpl); err != nil {
			t.Fatalf("invalid tree for %q: %v", c.Source, err)
		}
		var out strings.Builder
		r, err := ul4.RunContext(TestingContext(&out), tmpl, c.Vars)
		if !c.Pass(r, out.String(), err) {
			if err != nil {
				t.Errorf("%q produced wrong result; an error occurred:\n%v\noutput: %q", c.Source, err, out.String())
			} else {
				t.Errorf("%q produced wrong result; got %s with output %q", c.Source, spew.Sdump(r), out.String())
			}
		}
	}
}

// PassEqual returns a Pass function for a SourceTestCase that predicates on
// equality of the returned value, as by ==. If an error occurred, then the
// predicate returns false.
func PassEqual(want ul4.Value) func(ul4.Value, string, error) bool {
	return func(result ul4.Value, output string, err error) bool {
		if err != nil {
			return false
		}
		return ul4.TypeOf(want) == ul4.TypeOf(result) && ul4.Equal(want, result)
	}
}

// PassOutput returns a Pass function for a SourceTestCase that predicates on
// the template's output. If an error occurred, then the predicate returns
// false.
func PassOutput(want string) func(ul4.Value, string, error) bool {
	return func(result ul4.Value, output string, err error) bool {
		return err == nil && output == want
	}
}

// PassFailure returns a Pass function for a SourceTestCase that returns true
// iff an error occurred.
func PassFailure() func(ul4.Value, string, error) bool {
	return func(result ul4.Value, output string, err error) bool {
		return err != nil
	}
}

// PassError returns a Pass function for a SourceTestCase that returns true
// iff the error that occurred has the type target points to, as by
// errors.As. target must be a non-nil pointer to a type implementing error.
func PassError(target interface{}) func(ul4.Value, string, error) bool {
	return func(result ul4.Value, output string, err error) bool {
		return err != nil && errors.As(err, target)
	}
}

// PassSuccess returns a Pass function for a SourceTestCase that returns true
// iff no error occurred.
func PassSuccess() func(ul4.Value, string, error) bool {
	return func(result ul4.Value, output string, err error) bool {
		return err == nil
	}
}

// CheckBuiltins is a testing helper to check that each of names is a
// builtin.
func CheckBuiltins(t *testing.T, names []string) {
	t.Helper()
	have := make(map[string]bool)
	for _, name := range ul4.Builtins() {
		have[name] = true
	}
	for _, name := range names {
		t.Run("Have_"+name, func(t *testing.T) {
			if !have[name] {
				t.Fatal("no builtin", name)
			}
		})
	}
}

// CheckMethods is a testing helper to check that v has each of names as a
// callable attribute.
func CheckMethods(t *testing.T, v ul4.Value, names []string) {
	t.Helper()
	c := TestingContext(nil)
	typ := ul4.TypeOf(v)
	for _, name := range names {
		t.Run("Have_"+name, func(t *testing.T) {
			m := typ.Attr(c, v, name)
			if _, ok := m.(ul4.Callable); !ok {
				t.Fatalf("%s.%s is not callable: %s", typ.Name(), name, spew.Sdump(m))
			}
		})
	}
}
