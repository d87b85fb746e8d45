package internal_test

import (
	"testing"

	"github.com/zephyrtronium/ul4"
	_ "github.com/zephyrtronium/ul4/coreext" // side effects
	"github.com/zephyrtronium/ul4/testutils"
)

func passBoth(want ul4.Value, output string) func(ul4.Value, string, error) bool {
	eq := testutils.PassEqual(want)
	return func(result ul4.Value, out string, err error) bool {
		return eq(result, out, err) && out == output
	}
}

// TestControlFlow tests loops, conditionals, and returns.
func TestControlFlow(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"For": {
			Source: `[[for, i, [list, 1, 2, 3], [[print, [var, i]]]]]`,
			Pass:   testutils.PassOutput("123"),
		},
		"ForUnpack": {
			Source: `[[for, [k, v], [call, [attr, [dict, [dictitem, a, 1], [dictitem, b, 2]], items]], [[print, [var, k]], [print, [var, v]]]]]`,
			Pass:   testutils.PassOutput("a1b2"),
		},
		"ForString": {
			Source: `[[for, c, abc, [[print, [var, c]], [text, "."]]]]`,
			Pass:   testutils.PassOutput("a.b.c."),
		},
		"ForNotIterable": {
			Source: `[[for, i, 5, []]]`,
			Pass:   testutils.PassError(new(*ul4.TypeMismatchError)),
		},
		"BreakInIf": {
			Source: `[[for, i, [list, 1, 2, 3], [[ieie, [branch, [eq, [var, i], 2], [[break]]]], [print, [var, i]]]]]`,
			Pass:   testutils.PassOutput("1"),
		},
		"Continue": {
			Source: `[[for, i, [list, 1, 2, 3], [[ieie, [branch, [eq, [var, i], 2], [[continue]]]], [print, [var, i]]]]]`,
			Pass:   testutils.PassOutput("13"),
		},
		"BreakInner": {
			Source: `[[for, i, [list, 1, 2], [[for, j, [list, 1, 2], [[break]]], [print, [var, i]]]]]`,
			Pass:   testutils.PassOutput("12"),
		},
		"BreakOutsideLoop": {
			Source: `[[break]]`,
			Pass:   testutils.PassError(new(*ul4.LoopControlError)),
		},
		"ContinueOutsideLoop": {
			Source: `[[ieie, [branch, true, [[continue]]]]]`,
			Pass:   testutils.PassError(new(*ul4.LoopControlError)),
		},
		"BreakThroughTemplate": {
			Source: `[[for, i, [list, 1], [[template, f, null, [[break]]], [expr, [call, [var, f]]]]]]`,
			Pass:   testutils.PassError(new(*ul4.LoopControlError)),
		},
		"While": {
			Source: `[[setvar, i, 0], [while, [lt, [var, i], 3], [[print, [var, i]], [addvar, i, 1]]]]`,
			Pass:   testutils.PassOutput("012"),
		},
		"WhileBreak": {
			Source: `[[while, true, [[print, x], [break]]]]`,
			Pass:   testutils.PassOutput("x"),
		},
		"Return": {
			Source: `[[for, i, [list, 1, 2, 3], [[ieie, [branch, [eq, [var, i], 2], [[return, [var, i]]]]], [print, [var, i]]]]]`,
			Pass:   passBoth(int64(2), "1"),
		},
		"ReturnNone": {
			Source: `[[text, a], [return], [text, b]]`,
			Pass:   passBoth(nil, "a"),
		},
		"IfElse": {
			Source: `[[ieie, [branch, false, [[text, a]]], [branch, 0, [[text, b]]], [[text, c]]]]`,
			Pass:   testutils.PassOutput("c"),
		},
		"Elif": {
			Source: `[[ieie, [branch, "", [[text, a]]], [branch, [list, 0], [[text, b]]], [[text, c]]]]`,
			Pass:   testutils.PassOutput("b"),
		},
		"IfExpr": {
			Source: `[[return, [if, a, false, b]]]`,
			Pass:   testutils.PassEqual("b"),
		},
		"AndShortCircuit": {
			Source: `[[return, [and, 0, [call, [var, nope]]]]]`,
			Pass:   testutils.PassEqual(int64(0)),
		},
		"OrShortCircuit": {
			Source: `[[return, [or, "", z]]]`,
			Pass:   testutils.PassEqual("z"),
		},
		"UndefinedCondition": {
			Source: `[[ieie, [branch, [var, nope], [[text, a]]]]]`,
			Pass:   testutils.PassError(new(*ul4.AttributeError)),
		},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestControlFlow"))
	}
}

// TestScopes tests where assignments land and which bindings are visible.
func TestScopes(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"ComprehensionIsolated": {
			Source: `[[setvar, x, outer], [expr, [listcomp, [var, x], x, [list, 1, 2]]], [return, [var, x]]]`,
			Pass:   testutils.PassEqual("outer"),
		},
		"GenExprIsolated": {
			Source: `[[setvar, x, outer], [expr, [call, [var, list], [genexpr, [var, x], x, [list, 1, 2]]]], [return, [var, x]]]`,
			Pass:   testutils.PassEqual("outer"),
		},
		"LoopUpdatesOuter": {
			Source: `[[setvar, total, 0], [for, i, [list, 1, 2, 3], [[addvar, total, [var, i]]]], [return, [var, total]]]`,
			Pass:   testutils.PassEqual(int64(6)),
		},
		"LoopVariableLocal": {
			Source: `[[for, i, [list, 1], []], [return, [call, [var, isdefined], [var, i]]]]`,
			Pass:   testutils.PassEqual(false),
		},
		"LoopAssignmentLocal": {
			Source: `[[for, i, [list, 1], [[setvar, fresh, 1]]], [return, [call, [var, isdefined], [var, fresh]]]]`,
			Pass:   testutils.PassEqual(false),
		},
		"LoopShadowsOuter": {
			Source: `[[setvar, i, outer], [for, i, [list, 1, 2], []], [return, [var, i]]]`,
			Pass:   testutils.PassEqual("outer"),
		},
		"TemplateLocal": {
			Source: `[[setvar, x, 1], [template, f, null, [[setvar, x, 2], [return, [var, x]]]], [return, [list, [call, [var, f]], [var, x]]]]`,
			Pass:   testutils.PassEqual(ul4.NewList(int64(2), int64(1))),
		},
		"Builtin": {
			Source: `[[return, [call, [var, len], abc]]]`,
			Pass:   testutils.PassEqual(int64(3)),
		},
		"ShadowBuiltin": {
			Source: `[[setvar, len, 5], [return, [var, len]]]`,
			Pass:   testutils.PassEqual(int64(5)),
		},
		"Undefined": {
			Source: `[[return, [call, [var, isundefined], [var, nope]]]]`,
			Pass:   testutils.PassEqual(true),
		},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestScopes"))
	}
}

// TestAssignment tests assignment targets and augmented assignment.
func TestAssignment(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"Unpack": {
			Source: `[[setvar, [a, [b, c]], [list, 1, [list, 2, 3]]], [return, [list, [var, a], [var, b], [var, c]]]]`,
			Pass:   testutils.PassEqual(ul4.NewList(int64(1), int64(2), int64(3))),
		},
		"UnpackTooFew": {
			Source: `[[setvar, [a, b], [list, 1]]]`,
			Pass:   testutils.PassError(new(*ul4.UnpackError)),
		},
		"UnpackTooMany": {
			Source: `[[setvar, [a, b], [list, 1, 2, 3]]]`,
			Pass:   testutils.PassError(new(*ul4.UnpackError)),
		},
		"Item": {
			Source: `[[setvar, l, [list, 1, 2]], [setvar, [item, [var, l], -1], 5], [return, [var, l]]]`,
			Pass:   testutils.PassEqual(ul4.NewList(int64(1), int64(5))),
		},
		"DictItem": {
			Source: `[[setvar, d, [dict]], [setvar, [item, [var, d], k], 1], [addvar, [item, [var, d], k], 2], [return, [item, [var, d], k]]]`,
			Pass:   testutils.PassEqual(int64(3)),
		},
		"AugAssign": {
			Source: `[[setvar, x, 1], [addvar, x, 2], [mulvar, x, 4], [floordivvar, x, 5], [return, [var, x]]]`,
			Pass:   testutils.PassEqual(int64(2)),
		},
		"AugAssignPromotes": {
			Source: `[[setvar, x, 9223372036854775807], [addvar, x, 1], [return, [eq, [var, x], [const, bigint, "9223372036854775808"]]]]`,
			Pass:   testutils.PassEqual(true),
		},
		"AugAssignList": {
			Source: `[[setvar, l, [list, 1]], [setvar, m, [var, l]], [addvar, l, [list, 2]], [return, [list, [var, l], [var, m]]]]`,
			Pass:   testutils.PassEqual(ul4.NewList(ul4.NewList(int64(1), int64(2)), ul4.NewList(int64(1)))),
		},
		"AugAssignUndefined": {
			Source: `[[addvar, nope, 1]]`,
			Pass:   testutils.PassError(new(*ul4.AttributeError)),
		},
		"IntAttr": {
			Source: `[[setvar, x, 1], [setvar, [attr, [var, x], real], 2]]`,
			Pass:   testutils.PassFailure(),
		},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestAssignment"))
	}
}

// TestClosures tests template definitions and calls.
func TestClosures(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"Snapshot": {
			Source: `[[setvar, x, 1], [template, f, null, [[return, [var, x]]]], [setvar, x, 2], [return, [call, [var, f]]]]`,
			Pass:   testutils.PassEqual(int64(1)),
		},
		"SharedObjects": {
			Source: `[[setvar, l, [list, 1]], [template, f, null, [[return, [call, [var, len], [var, l]]]]], [expr, [call, [attr, [var, l], append], 2]], [return, [call, [var, f]]]]`,
			Pass:   testutils.PassEqual(int64(2)),
		},
		"Arguments": {
			Source: `[[template, f, [a, [b, 2], "*rest", "**kw"], [[return, [list, [var, a], [var, b], [var, rest], [var, kw]]]]], [return, [call, [var, f], 1, 3, 4, 5, [keywordarg, c, 6]]]]`,
			Pass: testutils.PassEqual(ul4.NewList(
				int64(1), int64(3), ul4.NewList(int64(4), int64(5)), ul4.FromGo(map[string]interface{}{"c": int64(6)}),
			)),
		},
		"Defaults": {
			Source: `[[template, f, [a, [b, 2], "*rest", "**kw"], [[return, [list, [var, a], [var, b], [var, rest], [var, kw]]]]], [return, [call, [var, f], 1]]]`,
			Pass: testutils.PassEqual(ul4.NewList(
				int64(1), int64(2), ul4.NewList(), ul4.FromGo(map[string]interface{}{}),
			)),
		},
		"KeywordOnly": {
			Source: `[[template, f, [a, "*", b], [[return, [sub, [var, a], [var, b]]]]], [return, [call, [var, f], 5, [keywordarg, b, 2]]]]`,
			Pass:   testutils.PassEqual(int64(3)),
		},
		"KeywordOnlyByPosition": {
			Source: `[[template, f, [a, "*", b], []], [return, [call, [var, f], 5, 2]]]`,
			Pass:   testutils.PassError(new(*ul4.ArgumentError)),
		},
		"PositionalOnly": {
			Source: `[[template, f, [a, "/"], []], [return, [call, [var, f], [keywordarg, a, 1]]]]`,
			Pass:   testutils.PassError(new(*ul4.ArgumentError)),
		},
		"Missing": {
			Source: `[[template, f, [a], []], [return, [call, [var, f]]]]`,
			Pass:   testutils.PassError(new(*ul4.ArgumentError)),
		},
		"DefaultEvaluatedOnce": {
			Source: `[[setvar, d, 10], [template, f, [[a, [var, d]]], [[return, [var, a]]]], [setvar, d, 20], [return, [call, [var, f]]]]`,
			Pass:   testutils.PassEqual(int64(10)),
		},
		"Unsigned": {
			Source: `[[template, f, null, [[return, [add, [var, a], [var, b]]]]], [return, [call, [var, f], [keywordarg, a, 1], [keywordarg, b, 2]]]]`,
			Pass:   testutils.PassEqual(int64(3)),
		},
		"UnsignedPositional": {
			Source: `[[template, f, null, []], [return, [call, [var, f], 1]]]`,
			Pass:   testutils.PassError(new(*ul4.ArgumentError)),
		},
		"UnpackArguments": {
			Source: `[[template, f, [a, b, c], [[return, [list, [var, a], [var, b], [var, c]]]]], [return, [call, [var, f], [unpack, [list, 1, 2]], [dictunpack, [dict, [dictitem, c, 3]]]]]]`,
			Pass:   testutils.PassEqual(ul4.NewList(int64(1), int64(2), int64(3))),
		},
		"CallDiscardsOutput": {
			Source: `[[template, f, null, [[text, lost], [return, 1]]], [return, [call, [var, f]]]]`,
			Pass:   passBoth(int64(1), ""),
		},
		"Attributes": {
			Source: `[[template, f, [a, [b, 1]], [], "doc"], [return, [list, [attr, [var, f], name], [attr, [var, f], doc], [attr, [var, f], signature]]]]`,
			Pass:   testutils.PassEqual(ul4.NewList("f", "doc", "(a, b=1)")),
		},
		"Renders": {
			Source: `[[template, f, [who], [[text, "hi "], [print, [var, who]]]], [return, [call, [attr, [var, f], renders], [keywordarg, who, Bob]]]]`,
			Pass:   testutils.PassEqual("hi Bob"),
		},
		"NotCallable": {
			Source: `[[return, [call, 5]]]`,
			Pass:   testutils.PassError(new(*ul4.NotCallableError)),
		},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestClosures"))
	}
}

// TestComprehensions tests the comprehension forms.
func TestComprehensions(t *testing.T) {
	vars := map[string]interface{}{
		"d": map[string]interface{}{"a": int64(1), "b": int64(2), "c": int64(3)},
	}
	cases := map[string]testutils.SourceTestCase{
		"List": {
			Source: `[[return, [listcomp, [mul, [var, x], 2], x, [list, 1, 2, 3], [ne, [var, x], 2]]]]`,
			Pass:   testutils.PassEqual(ul4.NewList(int64(2), int64(6))),
		},
		"Dict": {
			Source: `[[return, [dictcomp, [var, k], [mul, [var, v], 2], [k, v], [call, [attr, [var, d], items]], [gt, [var, v], 1]]]]`,
			Pass:   testutils.PassEqual(ul4.FromGo(map[string]interface{}{"b": int64(4), "c": int64(6)})),
		},
		"Set": {
			Source: `[[return, [call, [var, len], [setcomp, [mod, [var, x], 2], x, [list, 1, 2, 3]]]]]`,
			Pass:   testutils.PassEqual(int64(2)),
		},
		"Gen": {
			Source: `[[return, [call, [var, sum], [genexpr, [var, x], x, [list, 1, 2, 3]]]]]`,
			Pass:   testutils.PassEqual(int64(6)),
		},
		"Nested": {
			Source: `[[return, [listcomp, [listcomp, [var, x], x, [var, row]], row, [list, [list, 1], [list, 2, 3]]]]]`,
			Pass:   testutils.PassEqual(ul4.NewList(ul4.NewList(int64(1)), ul4.NewList(int64(2), int64(3)))),
		},
		"SeesOuter": {
			Source: `[[setvar, "n", 10], [return, [listcomp, [add, [var, x], [var, "n"]], x, [list, 1, 2]]]]`,
			Pass:   testutils.PassEqual(ul4.NewList(int64(11), int64(12))),
		},
	}
	for name, c := range cases {
		c.Vars = vars
		t.Run(name, c.TestFunc("TestComprehensions"))
	}
}

// TestRendering tests render statements, indentation, and escaping.
func TestRendering(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"Render": {
			Source: `[[template, f, [who], [[text, "hi "], [print, [var, who]]]], [render, [call, [var, f], Bob]]]`,
			Pass:   testutils.PassOutput("hi Bob"),
		},
		"RenderIndent": {
			Source: `[[template, f, null, [[indent, "  "], [text, x], [lineend, "\n"]]], [render, [call, [var, f]], "> "]]`,
			Pass:   testutils.PassOutput(">   x\n"),
		},
		"IndentNests": {
			Source: `[[template, g, null, [[indent, "."], [text, "y"], [lineend, "\n"]]], [template, f, null, [[render, [call, [var, g]], "b"]]], [render, [call, [var, f]], "a"]]`,
			Pass:   testutils.PassOutput("ab.y\n"),
		},
		"RenderX": {
			Source: `[[template, f, null, [[text, "<b>"]]], [renderx, [call, [var, f]]]]`,
			Pass:   testutils.PassOutput("&lt;b&gt;"),
		},
		"PrintX": {
			Source: `[[printx, "a&b"], [print, "<"]]`,
			Pass:   testutils.PassOutput("a&amp;b<"),
		},
		"RenderOrPrint": {
			Source: `[[render_or_print, [call, 5]]]`,
			Pass:   testutils.PassOutput("5"),
		},
		"RenderOrPrintX": {
			Source: `[[render_or_printx, [call, "<"]]]`,
			Pass:   testutils.PassOutput("&lt;"),
		},
		"RenderOrPrintTemplate": {
			Source: `[[template, f, null, [[text, "<"]]], [render_or_printx, [call, [var, f]]]]`,
			Pass:   testutils.PassOutput("<"),
		},
		"RenderNotTemplate": {
			Source: `[[render, [call, 5]]]`,
			Pass:   testutils.PassError(new(*ul4.TypeMismatchError)),
		},
		"RenderReturnIgnored": {
			Source: `[[template, f, null, [[text, a], [return, 1], [text, b]]], [render, [call, [var, f]]], [return, 2]]`,
			Pass:   passBoth(int64(2), "a"),
		},
		"RenderBlock": {
			Source: `[[template, box, [content], [[text, "["], [render, [call, [var, content]]], [text, "]"]]], [renderblock, [call, [var, box]], [[text, hi]]]]`,
			Pass:   testutils.PassOutput("[hi]"),
		},
		"RenderBlockSeesVars": {
			Source: `[[template, box, [content], [[render, [call, [var, content]]]]], [setvar, x, 7], [renderblock, [call, [var, box]], [[print, [var, x]]]]]`,
			Pass:   testutils.PassOutput("7"),
		},
		"RenderBlockDuplicate": {
			Source: `[[template, box, [content], []], [renderblock, [call, [var, box], [keywordarg, content, 1]], [[text, hi]]]]`,
			Pass:   testutils.PassError(new(*ul4.ArgumentError)),
		},
		"RenderBlockReturn": {
			Source: `[[template, box, [content], [[render, [call, [var, content]]]]], [renderblock, [call, [var, box]], [[return, 1]]]]`,
			Pass:   testutils.PassError(new(*ul4.LoopControlError)),
		},
		"RenderBlocks": {
			Source: `[[template, page, [title, body], [[print, [var, title]], [text, ":"], [render, [call, [var, body]]]]], [renderblocks, [call, [var, page]], [[setvar, title, T], [template, body, null, [[text, B]]]]]]`,
			Pass:   testutils.PassOutput("T:B"),
		},
		"RenderBlocksKeepsOuter": {
			Source: `[[template, page, ["**kw"], [[print, [item, [var, kw], x]]]], [setvar, x, 1], [renderblocks, [call, [var, page]], [[setvar, x, 2]]], [return, [var, x]]]`,
			Pass:   passBoth(int64(1), "2"),
		},
		"RenderBlocksDuplicate": {
			Source: `[[template, page, ["**kw"], []], [renderblocks, [call, [var, page], [keywordarg, x, 1]], [[setvar, x, 2]]]]`,
			Pass:   testutils.PassError(new(*ul4.ArgumentError)),
		},
		"RenderMethod": {
			Source: `[[template, f, [who], [[print, [var, who]]]], [expr, [call, [attr, [var, f], render], [keywordarg, who, me]]]]`,
			Pass:   testutils.PassOutput("me"),
		},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestRendering"))
	}
}

// TestErrors tests failures of expressions.
func TestErrors(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"UndefinedVariable": {
			Source: `[[return, [add, [var, nope], 1]]]`,
			Pass:   testutils.PassError(new(*ul4.AttributeError)),
		},
		"UndefinedAttribute": {
			Source: `[[print, [attr, 1, nope]]]`,
			Pass:   testutils.PassError(new(*ul4.AttributeError)),
		},
		"UndefinedIndex": {
			Source: `[[return, [add, [item, [list, 1], 5], 1]]]`,
			Pass:   testutils.PassError(new(*ul4.IndexError)),
		},
		"UndefinedKey": {
			Source: `[[for, x, [item, [dict], k], []]]`,
			Pass:   testutils.PassError(new(*ul4.KeyError)),
		},
		"UndefinedAllowed": {
			Source: `[[setvar, x, [attr, 1, nope]], [return, [call, [var, isundefined], [var, x]]]]`,
			Pass:   testutils.PassEqual(true),
		},
		"UndefinedEquality": {
			Source: `[[return, [eq, [var, nope], 1]]]`,
			Pass:   testutils.PassError(new(*ul4.AttributeError)),
		},
		"UndefinedIdentity": {
			Source: `[[return, [isnot, [var, nope], null]]]`,
			Pass:   testutils.PassEqual(true),
		},
		"EqualityAcrossKinds": {
			Source: `[[return, [eq, a, 1]]]`,
			Pass:   testutils.PassEqual(false),
		},
		"ZeroDivision": {
			Source: `[[return, [floordiv, 1, 0]]]`,
			Pass:   testutils.PassError(new(*ul4.ZeroDivisionError)),
		},
		"Mismatch": {
			Source: `[[return, [sub, a, 1]]]`,
			Pass:   testutils.PassError(new(*ul4.TypeMismatchError)),
		},
		"Ordering": {
			Source: `[[return, [lt, a, 1]]]`,
			Pass:   testutils.PassError(new(*ul4.TypeMismatchError)),
		},
		"StepLimit": {
			Source: `[[while, true, []]]`,
			Pass:   testutils.PassError(new(*ul4.StepLimitError)),
		},
		"LocationWrapped": {
			Source: `[[text, a], [print, [attr, 1, nope]]]`,
			Pass:   testutils.PassError(new(*ul4.LocationError)),
		},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestErrors"))
	}
}
