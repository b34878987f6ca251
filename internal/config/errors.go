package config

import "errors"

// Sentinel error kinds for this package, matchable with errors.Is. An
// ErrInvalidConfig at startup is fatal; the process must not serve traffic.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
