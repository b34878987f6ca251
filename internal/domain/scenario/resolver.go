// Package scenario resolves which design scenario is active for a request
// and which scenarios it is compared against. Both the dashboard aggregator
// and the chat prompt assembler consume the same resolution so the numbers
// they expose can never diverge.
package scenario

import (
	"fmt"

	"github.com/phoenixborealis/bimagent/internal/domain/model"
)

// Resolution holds the three scenarios every derived view is built from.
// All values are copies of the immutable store entries.
type Resolution struct {
	// Active is the requested scenario, or the baseline when the requested
	// id is unknown or empty.
	Active model.Scenario

	// Baseline is always the scenario designated by baseline_id, regardless
	// of which scenario is active.
	Baseline model.Scenario

	// Best is the scenario with the lowest intensity; ties are broken by
	// list order (first occurrence wins).
	Best model.Scenario
}

// Resolve applies the selection and fallback rules against the scenario set.
// A missing baseline means the store itself is corrupt: that is a hard error
// for the caller to escalate, never a silent default.
func Resolve(set *model.ScenarioSet, requestedID string) (Resolution, error) {
	baseline := set.ByID(set.BaselineID)
	if baseline == nil {
		return Resolution{}, fmt.Errorf("%w: baseline_id %q, known ids %v",
			ErrUnknownScenario, set.BaselineID, ids(set))
	}

	active := baseline
	if requestedID != "" {
		if s := set.ByID(requestedID); s != nil {
			active = s
		}
	}

	best := &set.Scenarios[0]
	for i := range set.Scenarios {
		if set.Scenarios[i].IntensityKgCO2ePerM2 < best.IntensityKgCO2ePerM2 {
			best = &set.Scenarios[i]
		}
	}

	return Resolution{Active: *active, Baseline: *baseline, Best: *best}, nil
}

// ReductionPercent returns the active scenario's reduction against the
// baseline. The stored precomputed value wins; the intensity-derived fallback
// only applies when upstream did not store one.
func (r Resolution) ReductionPercent() float64 {
	if r.Active.ReductionVsBaselinePercent != nil {
		return *r.Active.ReductionVsBaselinePercent
	}
	if r.Baseline.IntensityKgCO2ePerM2 == 0 {
		return 0
	}
	return (r.Baseline.IntensityKgCO2ePerM2 - r.Active.IntensityKgCO2ePerM2) /
		r.Baseline.IntensityKgCO2ePerM2 * 100
}

func ids(set *model.ScenarioSet) []string {
	out := make([]string, len(set.Scenarios))
	for i := range set.Scenarios {
		out[i] = set.Scenarios[i].ID
	}
	return out
}
