package scenario

import "errors"

// Sentinel kinds for scenario resolution errors.
var (
	// ErrUnknownScenario means neither the requested id nor the baseline id
	// exists in the scenario list. This indicates a corrupt context store and
	// is fatal; it is logged with the full scenario id list.
	ErrUnknownScenario = errors.New("scenario not found")
)
