package model

import "errors"

// Sentinel error kinds for context integrity failures. These are
// configuration-class errors: a failing check means the dataset itself is
// corrupt or incomplete, and startup must abort.
var (
	ErrInvalidContext  = errors.New("invalid carbon context")
	ErrMissingBaseline = errors.New("baseline scenario missing from scenario list")
)
