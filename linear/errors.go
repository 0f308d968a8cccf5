package linear

import "errors"

// ErrUnhandledForm indicates a constraint shape the octagon domain cannot
// represent at all, even after decomposition (e.g. a genuinely non-linear
// term). Callers must treat this as an imprecision warning and leave the
// abstract state unchanged, never as a hard error.
var ErrUnhandledForm = errors.New("linear: unhandled constraint form")
