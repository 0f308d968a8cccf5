package octagon

import "errors"

// ErrUnknownVariable indicates an operation referenced a *variable.Variable
// never installed into this Value via Assign/Set/Assume. No method in this
// package returns or panics with it: At reports Top() for such a variable,
// Forget and Rename skip it, and Expand returns the value unchanged.
var ErrUnknownVariable = errors.New("octagon: unknown variable")

// ErrExpandTargetExists indicates Expand was called with a destination
// variable that already has a vertex pair in this value; expand must target
// a fresh variable — a caller contract violation, not a warning.
var ErrExpandTargetExists = errors.New("octagon: expand target already bound")
