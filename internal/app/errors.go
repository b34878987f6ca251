package service

import "errors"

// Sentinel kinds for service-level failures.
var (
	// ErrNotConfigured means the service was used before Start succeeded or
	// without an engine client.
	ErrNotConfigured = errors.New("service not configured")

	// ErrEngine wraps failures of the external answering engine. The HTTP
	// layer converts these into structured error replies.
	ErrEngine = errors.New("answering engine failed")
)
