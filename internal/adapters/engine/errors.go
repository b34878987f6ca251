package engine

import "errors"

// Sentinel kinds for engine failures. Credentials failures are fatal at
// startup; everything else is recovered at the chat orchestration boundary
// and converted into a structured error reply.
var (
	ErrMissingCredentials = errors.New("engine credentials missing or rejected")
	ErrUnavailable        = errors.New("engine unreachable")
	ErrTimeout            = errors.New("engine request timed out")
	ErrQuotaExceeded      = errors.New("engine quota exceeded")
	ErrMalformedReply     = errors.New("malformed engine reply")
)
