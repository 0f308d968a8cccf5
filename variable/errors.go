package variable

import "errors"

// ErrKindMismatch indicates an operation was given a Variable whose Kind is
// incompatible with the operation (e.g. ArrayInit on a non-array Variable).
var ErrKindMismatch = errors.New("variable: kind mismatch")
