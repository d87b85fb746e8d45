package strings_test

import (
	"testing"

	"github.com/zephyrtronium/ul4"
	_ "github.com/zephyrtronium/ul4/coreext/strings" // side effects
	"github.com/zephyrtronium/ul4/testutils"
)

func TestMethods(t *testing.T) {
	testutils.CheckMethods(t, "", []string{
		"upper", "lower", "capitalize", "title", "split", "join", "strip",
		"lstrip", "rstrip", "startswith", "endswith", "find", "replace", "count",
	})
}

func strs(s ...string) *ul4.List {
	l := ul4.NewList()
	for _, x := range s {
		l.Append(x)
	}
	return l
}

func TestStringMethods(t *testing.T) {
	cases := map[string]map[string]testutils.SourceTestCase{
		"case": {
			"upper":      {Source: `[[return, [call, [attr, "straße", upper]]]]`, Pass: testutils.PassEqual("STRASSE")},
			"lower":      {Source: `[[return, [call, [attr, "ÄBC", lower]]]]`, Pass: testutils.PassEqual("äbc")},
			"capitalize": {Source: `[[return, [call, [attr, "hELLO wORLD", capitalize]]]]`, Pass: testutils.PassEqual("Hello world")},
			"title":      {Source: `[[return, [call, [attr, "hello wORLD", title]]]]`, Pass: testutils.PassEqual("Hello World")},
			"empty":      {Source: `[[return, [call, [attr, "", capitalize]]]]`, Pass: testutils.PassEqual("")},
		},
		"split": {
			"space":  {Source: `[[return, [call, [attr, "  a b\t c ", split]]]]`, Pass: testutils.PassEqual(strs("a", "b", "c"))},
			"sep":    {Source: `[[return, [call, [attr, "a,b,,c", split], ","]]]`, Pass: testutils.PassEqual(strs("a", "b", "", "c"))},
			"count":  {Source: `[[return, [call, [attr, "a b c", split], null, 1]]]`, Pass: testutils.PassEqual(strs("a", "b c"))},
			"empty":  {Source: `[[return, [call, [attr, "   ", split]]]]`, Pass: testutils.PassEqual(strs())},
			"nosep":  {Source: `[[return, [call, [attr, "abc", split], ""]]]`, Pass: testutils.PassError(new(*ul4.ValueError))},
			"badsep": {Source: `[[return, [call, [attr, "abc", split], 1]]]`, Pass: testutils.PassError(new(*ul4.TypeMismatchError))},
		},
		"join": {
			"list":  {Source: `[[return, [call, [attr, "-", join], [list, a, b, c]]]]`, Pass: testutils.PassEqual("a-b-c")},
			"str":   {Source: `[[return, [call, [attr, ",", join], abc]]]`, Pass: testutils.PassEqual("a,b,c")},
			"empty": {Source: `[[return, [call, [attr, ",", join], [list]]]]`, Pass: testutils.PassEqual("")},
			"int":   {Source: `[[return, [call, [attr, ",", join], [list, a, 1]]]]`, Pass: testutils.PassError(new(*ul4.TypeMismatchError))},
		},
		"strip": {
			"strip":  {Source: `[[return, [call, [attr, "  x  ", strip]]]]`, Pass: testutils.PassEqual("x")},
			"lstrip": {Source: `[[return, [call, [attr, "  x  ", lstrip]]]]`, Pass: testutils.PassEqual("x  ")},
			"rstrip": {Source: `[[return, [call, [attr, "  x  ", rstrip]]]]`, Pass: testutils.PassEqual("  x")},
			"chars":  {Source: `[[return, [call, [attr, "xyaxy", strip], "xy"]]]`, Pass: testutils.PassEqual("a")},
		},
		"affix": {
			"startswith": {Source: `[[return, [call, [attr, "abc", startswith], "ab"]]]`, Pass: testutils.PassEqual(true)},
			"endswith":   {Source: `[[return, [call, [attr, "abc", endswith], "ab"]]]`, Pass: testutils.PassEqual(false)},
			"list":       {Source: `[[return, [call, [attr, "abc", endswith], [list, x, bc]]]]`, Pass: testutils.PassEqual(true)},
			"int":        {Source: `[[return, [call, [attr, "abc", startswith], 1]]]`, Pass: testutils.PassError(new(*ul4.TypeMismatchError))},
		},
		"find": {
			"found":    {Source: `[[return, [call, [attr, "äbcbc", find], "bc"]]]`, Pass: testutils.PassEqual(int64(1))},
			"missing":  {Source: `[[return, [call, [attr, "abc", find], "x"]]]`, Pass: testutils.PassEqual(int64(-1))},
			"start":    {Source: `[[return, [call, [attr, "äbcbc", find], "bc", 2]]]`, Pass: testutils.PassEqual(int64(3))},
			"negative": {Source: `[[return, [call, [attr, "abcbc", find], "bc", -2]]]`, Pass: testutils.PassEqual(int64(3))},
			"end":      {Source: `[[return, [call, [attr, "abcbc", find], "bc", 2, 4]]]`, Pass: testutils.PassEqual(int64(-1))},
		},
		"count": {
			"basic": {Source: `[[return, [call, [attr, "abab", count], "ab"]]]`, Pass: testutils.PassEqual(int64(2))},
			"start": {Source: `[[return, [call, [attr, "abab", count], "ab", 1]]]`, Pass: testutils.PassEqual(int64(1))},
		},
		"replace": {
			"all":   {Source: `[[return, [call, [attr, "aaa", replace], "a", "b"]]]`, Pass: testutils.PassEqual("bbb")},
			"count": {Source: `[[return, [call, [attr, "aaa", replace], "a", "b", 2]]]`, Pass: testutils.PassEqual("bba")},
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			for name, s := range c {
				t.Run(name, s.TestFunc("TestStringMethods"))
			}
		})
	}
}
