/*
Package ul4 implements an evaluator for UL4 templates.

UL4 is a small template language. A template is text with tags for printing
values, loops, conditionals, assignments, and rendering other templates. The
expression language resembles Python: lists, dicts and sets with literal
syntax, comprehensions, slices, keyword arguments, and dynamic typing.

This package does not parse template source. Templates arrive as trees of
nodes, built in Go or loaded from fixtures by package astload. Rendering a
template walks that tree directly.

The evaluator can easily be embedded in another program. To render a
template, pass it to Render along with the variables it takes:

	err := ul4.Render(os.Stdout, tmpl, map[string]interface{}{"name": "World"})

Go values are converted to evaluator values with FromGo: integers, floats,
strings, slices of interface{}, and maps with string keys all have natural
counterparts. Other host values are visible through reflection, so templates
can read exported struct fields and string-keyed map entries. Hosts wanting
more control register a Type for their values with Registry.RegisterType.

UL4 Primer

A template consisting of only text renders as itself. Print tags write the
string form of an expression:

	Hello, <?print name?>!

Loops iterate over anything iterable. The loop variable is scoped to the
loop, and unpacking works the way it does in assignment:

	<?for (key, value) in data.items()?>
		<?print key?>=<?print value?>
	<?end for?>

Conditionals chain with elif and else:

	<?if x > 0?>positive<?elif x < 0?>negative<?else?>zero<?end if?>

A template can define other templates. Each definition creates a closure: a
copy of the variables visible where it was defined, so later changes to those
variables are not seen by the closure:

	<?def greet(who="World")?>Hello, <?print who?>!<?end def?>
	<?render greet(who=name)?>

Templates called as functions discard their output and produce the value of
their return statement:

	<?def square(x)?><?return x*x?><?end def?>
	<?print square(4)?>

The renderx tag escapes everything the rendered template writes, and the
printx tag escapes what it prints. Escaping is configurable through the
context's XEscape function.

Variables that don't exist are not an error until they are used. Looking up
a missing variable, attribute, key, or index produces an undefined value that
can be tested with isdefined and isundefined; any other use fails with the
error describing what was missing.

Every failure is a Go error. Errors raised while evaluating a template are
wrapped in a LocationError for each template call they pass through, so the
error message lists the location of the failure and each enclosing render.
*/
package ul4

// Version is the evaluator version. It bears no relation to versions of
// other UL4 implementations.
const Version = "1"
