package model

import (
	"fmt"
	"math"
)

// Tolerances for load-time integrity checks.
const (
	shareSumTolerance  = 0.1 // percentage points
	totalSumTolerance  = 0.1 // kgCO2e
	reductionTolerance = 0.1 // percentage points
)

// Validate runs the load-time integrity checks. Any failure is a
// configuration-class error and must abort startup; the checks never run
// again after the store is frozen.
func (c *ContextStore) Validate() error {
	if err := c.validateScenarios(); err != nil {
		return err
	}
	if err := c.validateBaseline(); err != nil {
		return err
	}
	if err := c.validateBenchmarks(); err != nil {
		return err
	}
	if err := c.validateStrategies(); err != nil {
		return err
	}
	return c.validateCoverage()
}

func (c *ContextStore) validateScenarios() error {
	if len(c.Scenarios.Scenarios) == 0 {
		return fmt.Errorf("%w: empty scenario list", ErrInvalidContext)
	}
	baseline := c.Scenarios.ByID(c.Scenarios.BaselineID)
	if baseline == nil {
		return fmt.Errorf("%w: baseline_id %q", ErrMissingBaseline, c.Scenarios.BaselineID)
	}
	if r := baseline.ReductionVsBaselinePercent; r != nil && *r != 0 {
		return fmt.Errorf("%w: baseline scenario %q carries a nonzero reduction (%.1f%%)",
			ErrInvalidContext, baseline.ID, *r)
	}
	// Stored reduction percentages must agree with the totals-derived value.
	// The upstream pipeline computes reductions from scenario totals, so the
	// check uses totals rather than the rounded intensities.
	for i := range c.Scenarios.Scenarios {
		s := &c.Scenarios.Scenarios[i]
		if s.ReductionVsBaselinePercent == nil || baseline.TotalKgCO2e == 0 {
			continue
		}
		computed := (baseline.TotalKgCO2e - s.TotalKgCO2e) / baseline.TotalKgCO2e * 100
		if math.Abs(computed-*s.ReductionVsBaselinePercent) > reductionTolerance {
			return fmt.Errorf("%w: scenario %q stored reduction %.2f%% disagrees with derived %.2f%%",
				ErrInvalidContext, s.ID, *s.ReductionVsBaselinePercent, computed)
		}
	}
	return nil
}

func (c *ContextStore) validateBaseline() error {
	var shareSum, totalSum float64
	for i := range c.CarbonBaseline.ByCategory {
		cat := &c.CarbonBaseline.ByCategory[i]
		shareSum += cat.SharePercent
		totalSum += cat.EmbodiedKgCO2e
	}
	if math.Abs(shareSum-100) > shareSumTolerance {
		return fmt.Errorf("%w: category shares sum to %.2f%%, expected ~100%%", ErrInvalidContext, shareSum)
	}
	if math.Abs(totalSum-c.CarbonBaseline.TotalEmbodiedKgCO2e) > totalSumTolerance {
		return fmt.Errorf("%w: category emissions sum to %.1f, total is %.1f",
			ErrInvalidContext, totalSum, c.CarbonBaseline.TotalEmbodiedKgCO2e)
	}
	return nil
}

func (c *ContextStore) validateBenchmarks() error {
	d := c.Benchmarks.Distribution
	if !(d.P10 <= d.P50 && d.P50 <= d.P90) {
		return fmt.Errorf("%w: benchmark percentiles not ordered (p10=%.0f p50=%.0f p90=%.0f)",
			ErrInvalidContext, d.P10, d.P50, d.P90)
	}
	return nil
}

func (c *ContextStore) validateStrategies() error {
	for i := range c.ReductionStrategies {
		s := &c.ReductionStrategies[i]
		if s.TypicalReductionRange[0] > s.TypicalReductionRange[1] {
			return fmt.Errorf("%w: strategy %q reduction range inverted (%.0f > %.0f)",
				ErrInvalidContext, s.ID, s.TypicalReductionRange[0], s.TypicalReductionRange[1])
		}
	}
	return nil
}

func (c *ContextStore) validateCoverage() error {
	cov := c.DataQuality.Coverage
	for _, p := range []float64{cov.StructuralPercent, cov.EnvelopePercent, cov.FinishesPercent} {
		if p < 0 || p > 100 {
			return fmt.Errorf("%w: coverage percentage %.1f outside [0,100]", ErrInvalidContext, p)
		}
	}
	return nil
}
