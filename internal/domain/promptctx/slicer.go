// Package promptctx assembles the bounded, topic-scoped prompt handed to the
// answering engine. The slice for each topic is a fixed minimal set of
// context subtrees, so the engine only ever sees aggregates relevant to the
// question, and the same numbers the dashboard shows.
package promptctx

import (
	"encoding/json"
	"fmt"

	"github.com/phoenixborealis/bimagent/internal/domain/classify"
	"github.com/phoenixborealis/bimagent/internal/domain/model"
)

// Slice builds the topic-scoped sub-document of the context store. The raw
// geometry fixture and the writeback mapping are withheld from every topic,
// including the catch-all, unless debug is set.
//
// Serialization goes through a map so output keys are sorted and the result
// is byte-identical across calls with equal inputs.
func Slice(store *model.ContextStore, topic classify.Topic, debug bool) ([]byte, error) {
	doc := map[string]any{}

	switch topic {
	case classify.TopicEmissionsByCategory:
		doc["carbon_baseline"] = store.CarbonBaseline

	case classify.TopicMaterialQuantity:
		doc["geometry_aggregates"] = map[string]any{"structure": store.GeometryAggregates.Structure}
		doc["carbon_baseline"] = map[string]any{"by_category": store.CarbonBaseline.ByCategory}

	case classify.TopicEmissionFactors:
		doc["material_factors"] = store.MaterialFactors

	case classify.TopicTotalCarbon:
		doc["carbon_baseline"] = map[string]any{
			"total_embodied_kgco2e":   store.CarbonBaseline.TotalEmbodiedKgCO2e,
			"intensity_kgco2e_per_m2": store.CarbonBaseline.IntensityKgCO2ePerM2,
			"reference_floor_area_m2": store.CarbonBaseline.ReferenceFloorAreaM2,
		}

	case classify.TopicScenarioLowClinker, classify.TopicScenarioComparison:
		doc["scenarios"] = store.Scenarios
		if topic == classify.TopicScenarioComparison {
			doc["benchmarks"] = store.Benchmarks
		}

	case classify.TopicReductionStrategies:
		doc["reduction_strategies"] = store.ReductionStrategies

	case classify.TopicEmissionsByFloor:
		doc["project_summary"] = map[string]any{
			"floor_area_by_storey": store.ProjectSummary.FloorAreaByStorey,
			"gross_floor_area_m2":  store.ProjectSummary.GrossFloorAreaM2,
		}
		doc["carbon_baseline"] = map[string]any{
			"intensity_kgco2e_per_m2": store.CarbonBaseline.IntensityKgCO2ePerM2,
		}

	case classify.TopicExecutiveSummary:
		doc["project_summary"] = store.ProjectSummary
		doc["carbon_baseline"] = store.CarbonBaseline
		doc["benchmarks"] = store.Benchmarks
		doc["scenarios"] = store.Scenarios
		doc["data_quality"] = store.DataQuality

	default: // classify.TopicGeneral
		doc["project_summary"] = store.ProjectSummary
		doc["geometry_aggregates"] = store.GeometryAggregates
		doc["material_factors"] = store.MaterialFactors
		doc["carbon_baseline"] = store.CarbonBaseline
		doc["benchmarks"] = store.Benchmarks
		doc["scenarios"] = store.Scenarios
		doc["reduction_strategies"] = store.ReductionStrategies
		doc["data_quality"] = store.DataQuality
		doc["operational_carbon"] = store.OperationalCarbon
	}

	if debug {
		doc["ifc_writeback"] = store.Writeback
		if len(store.RawGeometry) > 0 {
			doc["ifc_data"] = store.RawGeometry
		}
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing context slice: %w", err)
	}
	return out, nil
}
