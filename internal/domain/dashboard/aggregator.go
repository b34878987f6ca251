package dashboard

import (
	"fmt"
	"math"

	"github.com/phoenixborealis/bimagent/internal/domain/model"
	"github.com/phoenixborealis/bimagent/internal/domain/scenario"
)

// Category ids with a dedicated coverage domain. Everything structural maps
// to structural coverage, envelope-ish categories (glazing, doors) to
// envelope coverage, and the lumped catch-all to finishes coverage.
const (
	categoryStructuralConcrete = "structural_concrete"
	categoryGlazing            = "glazing"
	categoryDoors              = "doors"
	categoryOther              = "other_finishes_and_services"
)

// conservativeCoverage is assumed for the lumped bucket when no finishes
// figure is available.
const conservativeCoverage = 50.0

// Quality label thresholds, fixed design constants.
const (
	qualityHighThreshold   = 90
	qualityMediumThreshold = 70
)

// Aggregator derives dashboard views from the frozen context store. It holds
// no mutable state; a nil store means "not ready" and yields nil views
// rather than errors, so callers can render a loading state.
type Aggregator struct {
	store *model.ContextStore
}

// New creates an Aggregator over the given store. The store may be nil while
// initialization is still in flight.
func New(store *model.ContextStore) *Aggregator {
	return &Aggregator{store: store}
}

// Ready reports whether the underlying store is available.
func (a *Aggregator) Ready() bool {
	return a != nil && a.store != nil
}

// Build produces the unified view for the requested scenario id. It returns
// (nil, nil) when the store is not yet loaded, and a hard error only when
// scenario resolution itself fails.
func (a *Aggregator) Build(requestedScenarioID string) (*View, error) {
	if !a.Ready() {
		return nil, nil
	}
	ctx := a.store

	res, err := scenario.Resolve(&ctx.Scenarios, requestedScenarioID)
	if err != nil {
		return nil, fmt.Errorf("building dashboard view: %w", err)
	}

	quality := a.qualitySummary()

	view := &View{
		ProjectName:      ctx.ProjectSummary.NamePTBR,
		Typology:         ctx.ProjectSummary.UsageTypePTBR,
		ActiveScenarioID: res.Active.ID,
		Scenarios:        ctx.Scenarios.Scenarios,

		TotalEmissionsKg: res.Active.TotalKgCO2e,
		IntensityKgPerM2: res.Active.IntensityKgCO2ePerM2,

		BaselineEmissionsKg: res.Baseline.TotalKgCO2e,
		ReductionPercent:    res.ReductionPercent(),

		Breakdown: a.breakdown(),

		Percentile: ClassifyIntensity(res.Active.IntensityKgCO2ePerM2, ctx.Benchmarks.Distribution),
		Targets:    CompareTargets(res.Active.IntensityKgCO2ePerM2, &ctx.Benchmarks),

		EmbodiedTotalKg:      ctx.CarbonBaseline.TotalEmbodiedKgCO2e,
		OperationalCurrentKg: ctx.OperationalCarbon.LifetimeTotalCurrentGrid,
		OperationalFutureKg:  ctx.OperationalCarbon.LifetimeTotalFutureGrid(),

		DataQuality: quality,
		KnownGaps:   ctx.DataQuality.KnownGapsEN,
	}

	// Best scenario emissions only surface when a better scenario than the
	// active one exists.
	if res.Best.ID != res.Active.ID {
		best := res.Best.TotalKgCO2e
		view.BestEmissionsKg = &best
	}

	return view, nil
}

// breakdown annotates each baseline category with its coverage figure and
// the first applicable reduction strategy.
func (a *Aggregator) breakdown() []CategoryBreakdown {
	ctx := a.store
	out := make([]CategoryBreakdown, 0, len(ctx.CarbonBaseline.ByCategory))
	for i := range ctx.CarbonBaseline.ByCategory {
		cat := &ctx.CarbonBaseline.ByCategory[i]
		out = append(out, CategoryBreakdown{
			ID:              cat.ID,
			NamePTBR:        cat.NamePTBR,
			Quantity:        cat.Quantity.Value,
			QuantityUnit:    cat.Quantity.DisplayUnit(),
			EmissionsKg:     cat.EmbodiedKgCO2e,
			SharePercent:    cat.SharePercent,
			CoveragePercent: a.coverageFor(cat.ID),
			Recommendation:  a.recommendationFor(cat),
		})
	}
	return out
}

func (a *Aggregator) coverageFor(categoryID string) float64 {
	cov := a.store.DataQuality.Coverage
	switch categoryID {
	case categoryStructuralConcrete:
		return cov.StructuralPercent
	case categoryGlazing, categoryDoors:
		return cov.EnvelopePercent
	case categoryOther:
		if cov.FinishesPercent > 0 {
			return cov.FinishesPercent
		}
		return conservativeCoverage
	default:
		return 100
	}
}

// recommendationFor renders the first matching playbook strategy as
// "<name> (redução de <low>-<high>%)", or empty when none applies.
func (a *Aggregator) recommendationFor(cat *model.BaselineCategory) string {
	for i := range a.store.ReductionStrategies {
		s := &a.store.ReductionStrategies[i]
		if !s.AppliesTo(cat.ID, cat.MaterialID) {
			continue
		}
		return fmt.Sprintf("%s (redução de %.0f-%.0f%%)",
			s.NamePTBR, s.TypicalReductionRange[0], s.TypicalReductionRange[1])
	}
	return ""
}

// qualitySummary averages the three domain coverages and applies the fixed
// high/medium/low thresholds.
func (a *Aggregator) qualitySummary() DataQualitySummary {
	cov := a.store.DataQuality.Coverage
	overall := int(math.Round((cov.StructuralPercent + cov.EnvelopePercent + cov.FinishesPercent) / 3))

	level := QualityLow
	switch {
	case overall >= qualityHighThreshold:
		level = QualityHigh
	case overall >= qualityMediumThreshold:
		level = QualityMedium
	}

	return DataQualitySummary{
		OverallCoverage:    overall,
		StructuralCoverage: cov.StructuralPercent,
		EnvelopeCoverage:   cov.EnvelopePercent,
		FinishesCoverage:   cov.FinishesPercent,
		QualityLevel:       level,
	}
}
