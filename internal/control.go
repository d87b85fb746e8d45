package internal

import "fmt"

// Stop represents the reason for flow control.
type Stop int

// Control flow reasons.
const (
	// NoStop indicates normal execution.
	NoStop Stop = iota
	// ContinueStop should be interpreted by loops as a signal to restart the
	// loop immediately.
	ContinueStop
	// BreakStop should be interpreted by loops as a signal to exit the loop.
	BreakStop
	// ReturnStop should be interpreted by loops and blocks as a signal to
	// exit. Only template and closure calls consume it.
	ReturnStop
)

var stopNames = [...]string{"normal", "continue", "break", "return"}

// String returns a string representation of the Stop.
func (s Stop) String() string {
	if s < NoStop || s > ReturnStop {
		return fmt.Sprintf("Stop(%d)", s)
	}
	return stopNames[s]
}

// Err returns nil if s is NoStop or a LoopControlError describing s escaping
// a boundary that does not accept it. Panics for invalid stops.
func (s Stop) Err() error {
	switch s {
	case NoStop:
		return nil
	case ContinueStop, BreakStop, ReturnStop:
		return &LoopControlError{Stmt: s.String()}
	default:
		panic(fmt.Sprintf("ul4: invalid Stop: %v", s))
	}
}

// execBlock executes a sequence of statements, stopping at the first error or
// non-normal Stop.
func execBlock(c *Context, body []Stmt) (Stop, Value, error) {
	for _, st := range body {
		s, v, err := Execute(c, st)
		if err != nil {
			return NoStop, nil, err
		}
		if s != NoStop {
			return s, v, nil
		}
	}
	return NoStop, nil, nil
}

// loopBody executes one iteration of a loop body and reports whether the loop
// should keep going. Break ends the loop; continue and normal completion
// proceed; return propagates.
func loopBody(c *Context, body []Stmt) (more bool, s Stop, v Value, err error) {
	s, v, err = execBlock(c, body)
	if err != nil {
		return false, NoStop, nil, err
	}
	switch s {
	case NoStop, ContinueStop: // do nothing
		return true, NoStop, nil, nil
	case BreakStop:
		return false, NoStop, nil, nil
	default:
		return false, s, v, nil
	}
}

// boundary converts a Stop reaching a template or render-block boundary into
// its result. Return is accepted only when allowReturn is set; anything else
// becomes a LoopControlError located at the statement that raised it.
func boundary(c *Context, s Stop, v Value, allowReturn bool) (Value, error) {
	switch s {
	case NoStop:
		return nil, nil
	case ReturnStop:
		if allowReturn {
			return v, nil
		}
	}
	err := s.Err()
	if n := c.stopAt; n != nil {
		c.stopAt = nil
		return nil, c.decorate(n, err)
	}
	return nil, err
}
