// Package model defines the immutable carbon context dataset shared by the
// dashboard aggregator and the chat prompt assembler. All types are loaded
// once at startup and never mutated afterwards (load-then-freeze).
package model

import "encoding/json"

// StoreyArea holds the net floor area of a single building storey.
type StoreyArea struct {
	StoreyID       string  `json:"storey_id"`
	NameEN         string  `json:"name_en"`
	NamePTBR       string  `json:"name_pt_br"`
	ElevationM     float64 `json:"elevation_m"`
	NetFloorAreaM2 float64 `json:"net_floor_area_m2"`
}

// ProjectSummary identifies the project and its top-level floor-area totals.
type ProjectSummary struct {
	ID                  string         `json:"id"`
	NameEN              string         `json:"name_en"`
	NamePTBR            string         `json:"name_pt_br"`
	UsageTypeEN         string         `json:"usage_type_en"`
	UsageTypePTBR       string         `json:"usage_type_pt_br"`
	StoreysAboveGround  int            `json:"storeys_above_ground"`
	GrossFloorAreaM2    float64        `json:"gross_floor_area_m2"`
	NetFloorAreaM2      float64        `json:"net_floor_area_m2"`
	FloorAreaByStorey   []StoreyArea   `json:"floor_area_by_storey"`
	ElementCounts       map[string]int `json:"element_counts"`
}

// Envelope groups the precomputed facade areas and glazing ratios.
// Glazing ratios are authored upstream and stored as-is; they are never
// recomputed from the area fields here.
type Envelope struct {
	WallNetSideAreaM2       float64 `json:"wall_net_side_area_m2"`
	WallGrossSideAreaM2     float64 `json:"wall_gross_side_area_m2"`
	WindowAreaM2            float64 `json:"window_area_m2"`
	DoorAreaM2              float64 `json:"door_area_m2"`
	EnvelopeAreaM2          float64 `json:"envelope_area_m2"`
	GlazingRatioWindowsOnly float64 `json:"glazing_ratio_windows_only"`
	GlazingPlusDoorsRatio   float64 `json:"glazing_plus_doors_ratio"`
}

// Structure groups structural volumes and slab areas.
type Structure struct {
	WallNetVolumeM3   float64 `json:"wall_net_volume_m3"`
	WallGrossVolumeM3 float64 `json:"wall_gross_volume_m3"`
	SlabNetAreaM2     float64 `json:"slab_net_area_m2"`
	SlabNetVolumeM3   float64 `json:"slab_net_volume_m3"`
}

// Spaces groups space counts and clear heights.
type Spaces struct {
	CountSpaces         int     `json:"count_spaces"`
	GrossFloorAreaM2    float64 `json:"gross_floor_area_m2"`
	NetFloorAreaM2      float64 `json:"net_floor_area_m2"`
	AverageClearHeightM float64 `json:"average_clear_height_m"`
}

// GeometryAggregates holds the derived-at-authoring-time geometry totals.
type GeometryAggregates struct {
	Envelope  Envelope  `json:"envelope"`
	Structure Structure `json:"structure"`
	Spaces    Spaces    `json:"spaces"`
}

// MaterialFactor describes one material and its embodied-carbon coefficient.
// Exactly one of FactorPerM3 / FactorPerM2 is non-nil per material; consumers
// must branch on which one is populated.
type MaterialFactor struct {
	ID            string   `json:"id"`
	NameEN        string   `json:"name_en"`
	NamePTBR      string   `json:"name_pt_br"`
	DescriptionEN string   `json:"description_en,omitempty"`
	TypicalUse    []string `json:"typical_use,omitempty"`
	DensityKgM3   *float64 `json:"density_kg_per_m3,omitempty"`
	FactorPerM3   *float64 `json:"emission_factor_kgco2e_per_m3,omitempty"`
	FactorPerM2   *float64 `json:"emission_factor_kgco2e_per_m2,omitempty"`
}

// MaterialFactors is the material factor catalog.
type MaterialFactors struct {
	UnitEmissions string           `json:"unit_emissions"`
	Materials     []MaterialFactor `json:"materials"`
}

// BaselineCategory is one category row of the embodied carbon baseline.
type BaselineCategory struct {
	ID             string   `json:"id"`
	NameEN         string   `json:"name_en"`
	NamePTBR       string   `json:"name_pt_br"`
	MaterialID     string   `json:"material_id,omitempty"`
	Quantity       Quantity `json:"quantity"`
	EmbodiedKgCO2e float64  `json:"embodied_kgco2e"`
	SharePercent   float64  `json:"share_of_total_percent"`
}

// CarbonBaseline is the embodied carbon baseline broken down by category.
// Category shares sum to ~100% and the category emissions sum to the total;
// both invariants are enforced at load time.
type CarbonBaseline struct {
	Scope                string             `json:"scope"`
	ScopeDescriptionEN   string             `json:"scope_description_en,omitempty"`
	TotalEmbodiedKgCO2e  float64            `json:"total_embodied_kgco2e"`
	IntensityKgCO2ePerM2 float64            `json:"intensity_kgco2e_per_m2"`
	ReferenceFloorAreaM2 float64            `json:"reference_floor_area_m2"`
	ByCategory           []BaselineCategory `json:"by_category"`
}

// ChangedMaterial records a material substitution inside a scenario.
type ChangedMaterial struct {
	FromMaterialID      string  `json:"from_material_id"`
	ToMaterialID        string  `json:"to_material_id"`
	FactorChangePercent float64 `json:"factor_change_percent"`
}

// Scenario is one precomputed design alternative. All scenarios are static;
// the "active" scenario is a selection, never a mutation.
type Scenario struct {
	ID                   string            `json:"id"`
	LabelEN              string            `json:"label_en"`
	LabelPTBR            string            `json:"label_pt_br"`
	DescriptionEN        string            `json:"description_en,omitempty"`
	DescriptionPTBR      string            `json:"description_pt_br,omitempty"`
	ChangedMaterials     []ChangedMaterial `json:"changed_materials,omitempty"`
	ChangesSummaryEN     []string          `json:"changes_summary_en,omitempty"`
	ChangesSummaryPTBR   []string          `json:"changes_summary_pt_br,omitempty"`
	IntensityKgCO2ePerM2 float64           `json:"intensity_kgco2e_per_m2"`
	TotalKgCO2e          float64           `json:"total_kgco2e"`
	// ReductionVsBaselinePercent is absent (nil) for the baseline itself.
	ReductionVsBaselinePercent *float64 `json:"reduction_vs_baseline_percent,omitempty"`
}

// ScenarioSet is the scenario list plus the baseline designation.
type ScenarioSet struct {
	BaselineID string     `json:"baseline_id"`
	Scenarios  []Scenario `json:"scenarios"`
}

// ByID returns the scenario with the given id, or nil.
func (s *ScenarioSet) ByID(id string) *Scenario {
	for i := range s.Scenarios {
		if s.Scenarios[i].ID == id {
			return &s.Scenarios[i]
		}
	}
	return nil
}

// BenchmarkTarget is a named intensity threshold.
type BenchmarkTarget struct {
	ID                string  `json:"id"`
	LabelEN           string  `json:"label_en"`
	LabelPTBR         string  `json:"label_pt_br"`
	TargetKgCO2ePerM2 float64 `json:"target_kgco2e_per_m2"`
}

// Distribution holds the reference percentile distribution for intensity.
type Distribution struct {
	P10 float64 `json:"p10"`
	P50 float64 `json:"p50"`
	P90 float64 `json:"p90"`
}

// Benchmark combines the percentile distribution with named targets for the
// same intensity metric the scenarios use.
type Benchmark struct {
	BuildingType string            `json:"building_type"`
	Region       string            `json:"region"`
	Metric       string            `json:"metric"`
	Distribution Distribution      `json:"distribution"`
	Targets      []BenchmarkTarget `json:"targets"`
}

// TargetByID returns the target with the given id, or nil.
func (b *Benchmark) TargetByID(id string) *BenchmarkTarget {
	for i := range b.Targets {
		if b.Targets[i].ID == id {
			return &b.Targets[i]
		}
	}
	return nil
}

// ReductionStrategy is one entry of the static reduction playbook.
type ReductionStrategy struct {
	ID                    string     `json:"id"`
	NameEN                string     `json:"name_en"`
	NamePTBR              string     `json:"name_pt_br"`
	AppliesToCategories   []string   `json:"applies_to_categories,omitempty"`
	AppliesToMaterials    []string   `json:"applies_to_materials,omitempty"`
	TypicalReductionRange [2]float64 `json:"typical_reduction_range_percent"`
	EvidenceSummaryEN     string     `json:"evidence_summary_en,omitempty"`
	CaveatsEN             []string   `json:"caveats_en,omitempty"`
}

// AppliesTo reports whether the strategy applies to the given category id or
// material id.
func (r *ReductionStrategy) AppliesTo(categoryID, materialID string) bool {
	for _, c := range r.AppliesToCategories {
		if c == categoryID {
			return true
		}
	}
	if materialID == "" {
		return false
	}
	for _, m := range r.AppliesToMaterials {
		if m == materialID {
			return true
		}
	}
	return false
}

// Coverage holds per-domain factor coverage percentages, each in [0,100].
type Coverage struct {
	StructuralPercent float64 `json:"share_of_structural_volume_with_factors_percent"`
	EnvelopePercent   float64 `json:"share_of_envelope_area_with_factors_percent"`
	FinishesPercent   float64 `json:"share_of_total_building_mass_with_factors_percent"`
}

// DataQuality carries coverage metrics, source metadata and known gaps.
type DataQuality struct {
	Coverage Coverage `json:"coverage"`
	Sources  struct {
		DatabaseName   string `json:"lca_database_name"`
		DatabaseRegion string `json:"lca_database_region"`
		DatabaseYear   int    `json:"lca_database_year"`
	} `json:"sources"`
	KnownGapsEN []string `json:"known_gaps_en"`
}

// OperationalCarbon holds the operational-carbon assumptions. The future-grid
// lifetime total is intentionally not stored: it is always derived from the
// current-grid total and the grid intensity ratio so the two cannot drift.
type OperationalCarbon struct {
	AssumedLifetimeYears        int     `json:"assumed_lifetime_years"`
	ReferenceEUIKWhPerM2Year    float64 `json:"reference_energy_use_intensity_kwh_per_m2_per_year"`
	GridIntensityCurrent        float64 `json:"grid_intensity_kgco2e_per_kwh_current"`
	GridIntensityFuture         float64 `json:"grid_intensity_kgco2e_per_kwh_2050"`
	LifetimeTotalCurrentGrid    float64 `json:"total_operational_kgco2e_lifetime_current_grid"`
	NotesEN                     []string `json:"notes_en,omitempty"`
}

// LifetimeTotalFutureGrid derives the future-grid lifetime total by scaling
// the current-grid total by the grid intensity ratio.
func (o *OperationalCarbon) LifetimeTotalFutureGrid() float64 {
	if o.GridIntensityCurrent == 0 {
		return 0
	}
	return o.LifetimeTotalCurrentGrid * (o.GridIntensityFuture / o.GridIntensityCurrent)
}

// WritebackField maps one export property to its source path in the context.
type WritebackField struct {
	PropertyName    string `json:"ifc_property_name"`
	FromContextPath string `json:"from_context_path"`
	DescriptionEN   string `json:"description_en,omitempty"`
}

// WritebackMapping describes the IFC export mapping. Descriptive only; no
// computation happens on it in this service.
type WritebackMapping struct {
	TargetPropertySetName string           `json:"target_property_set_name"`
	Fields                []WritebackField `json:"fields"`
	NotesEN               string           `json:"notes_en,omitempty"`
}

// ContextStore is the full immutable dataset. RawGeometry is the unreduced
// IFC-derived fixture, kept opaque; it is only ever serialized into debug
// prompts and is deliberately withheld from regular context slices.
type ContextStore struct {
	ProjectSummary     ProjectSummary     `json:"project_summary"`
	GeometryAggregates GeometryAggregates `json:"geometry_aggregates"`
	MaterialFactors    MaterialFactors    `json:"material_factors"`
	CarbonBaseline     CarbonBaseline     `json:"carbon_baseline"`
	Benchmarks         Benchmark          `json:"benchmarks"`
	Scenarios          ScenarioSet        `json:"scenarios"`
	ReductionStrategies []ReductionStrategy `json:"reduction_strategies"`
	DataQuality        DataQuality        `json:"data_quality"`
	OperationalCarbon  OperationalCarbon  `json:"operational_carbon"`
	Writeback          WritebackMapping   `json:"ifc_writeback"`
	RawGeometry        json.RawMessage    `json:"ifc_data,omitempty"`
}
