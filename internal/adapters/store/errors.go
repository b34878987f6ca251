package store

import "errors"

// Sentinel kinds for store loading. Both are configuration-class: a failure
// here must abort startup rather than degrade silently.
var (
	ErrLoad      = errors.New("context load failed")
	ErrIntegrity = errors.New("context integrity check failed")
)
