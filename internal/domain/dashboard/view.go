// Package dashboard derives the unified view-model the UI and the chat layer
// share. Every field is recomputed per call from the scenario resolution;
// nothing is cached, because the active scenario changes per interaction.
package dashboard

import "github.com/phoenixborealis/bimagent/internal/domain/model"

// Zone classifies an intensity against the benchmark distribution.
type Zone string

// Benchmark zones. Boundaries are inclusive on the lower end and exclusive
// on the upper end; the top zone is unbounded above.
const (
	ZoneVeryLow    Zone = "very_low"
	ZoneLow        Zone = "low"
	ZoneMediumHigh Zone = "medium_high"
	ZoneVeryHigh   Zone = "very_high"
)

// PercentilePosition places the active intensity in the benchmark population.
type PercentilePosition struct {
	Percentile  int    `json:"percentile"`
	Zone        Zone   `json:"zone"`
	Description string `json:"description"`
}

// TargetStatus is the comparison of the active intensity against one named
// benchmark target. Distance is signed: negative means under the target.
type TargetStatus struct {
	TargetID    string  `json:"target_id"`
	LabelPTBR   string  `json:"label_pt_br"`
	TargetValue float64 `json:"target_kgco2e_per_m2"`
	BelowTarget bool    `json:"below_target"`
	Distance    float64 `json:"distance_kgco2e_per_m2"`
}

// CategoryBreakdown is one baseline category annotated with coverage and an
// optional reduction recommendation.
type CategoryBreakdown struct {
	ID              string  `json:"id"`
	NamePTBR        string  `json:"name_pt_br"`
	Quantity        float64 `json:"quantity"`
	QuantityUnit    string  `json:"quantity_unit"`
	EmissionsKg     float64 `json:"emissions_kgco2e"`
	SharePercent    float64 `json:"share_of_total_percent"`
	CoveragePercent float64 `json:"coverage_percent"`
	Recommendation  string  `json:"reduction_suggestion,omitempty"`
}

// QualityLevel is the three-level data-quality label.
type QualityLevel string

// Quality levels with their fixed coverage thresholds.
const (
	QualityHigh   QualityLevel = "high" // overall coverage >= 90
	QualityMedium QualityLevel = "medium" // >= 70
	QualityLow    QualityLevel = "low"
)

// DataQualitySummary aggregates the per-domain coverages into one score.
type DataQualitySummary struct {
	OverallCoverage    int          `json:"overall_coverage_percent"`
	StructuralCoverage float64      `json:"structural_coverage_percent"`
	EnvelopeCoverage   float64      `json:"envelope_coverage_percent"`
	FinishesCoverage   float64      `json:"finishes_coverage_percent"`
	QualityLevel       QualityLevel `json:"quality_level"`
}

// View is the unified dashboard view-model. Masses are kgCO2e throughout;
// conversion to tonnes happens strictly at presentation time.
type View struct {
	ProjectName      string           `json:"project_name"`
	Typology         string           `json:"typology"`
	ActiveScenarioID string           `json:"active_scenario_id"`
	Scenarios        []model.Scenario `json:"scenarios"`

	TotalEmissionsKg float64 `json:"total_emissions_kgco2e"`
	IntensityKgPerM2 float64 `json:"intensity_kgco2e_per_m2"`

	BaselineEmissionsKg float64  `json:"baseline_emissions_kgco2e"`
	BestEmissionsKg     *float64 `json:"best_scenario_emissions_kgco2e,omitempty"`
	ReductionPercent    float64  `json:"reduction_percent"`

	Breakdown []CategoryBreakdown `json:"breakdown_by_category"`

	Percentile PercentilePosition `json:"percentile_position"`
	Targets    []TargetStatus     `json:"target_comparison"`

	EmbodiedTotalKg      float64 `json:"embodied_total_kgco2e"`
	OperationalCurrentKg float64 `json:"operational_lifetime_kgco2e"`
	OperationalFutureKg  float64 `json:"operational_future_grid_kgco2e"`

	DataQuality DataQualitySummary `json:"data_quality"`
	KnownGaps   []string           `json:"known_gaps"`
}
