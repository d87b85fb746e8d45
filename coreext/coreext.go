// Package coreext installs every standard extension: the general-purpose
// builtin functions, str methods, and the date and delta methods. Import it
// for side effects.
package coreext

import (
	// importing for side effects
	_ "github.com/zephyrtronium/ul4/coreext/date"
	_ "github.com/zephyrtronium/ul4/coreext/duration"
	_ "github.com/zephyrtronium/ul4/coreext/functions"
	_ "github.com/zephyrtronium/ul4/coreext/strings"
)
