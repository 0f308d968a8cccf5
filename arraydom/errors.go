package arraydom

import "errors"

// ErrNotArray indicates an operation was given a *variable.Variable whose
// Kind is not KindArray where an array variable was required — a caller
// contract violation, not a warning.
var ErrNotArray = errors.New("arraydom: variable is not an array")
