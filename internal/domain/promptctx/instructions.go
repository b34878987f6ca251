package promptctx

import "github.com/phoenixborealis/bimagent/internal/domain/classify"

// topicInstructions tell the answering engine which slice fields to privilege
// and how to phrase the answer for each topic.
var topicInstructions = map[classify.Topic]string{
	classify.TopicEmissionsByCategory: "Use carbon_baseline.by_category. List each category with its share_of_total_percent, embodied_kgco2e and quantity. Use name_pt_br fields for Portuguese.",
	classify.TopicMaterialQuantity:    "Use geometry_aggregates.structure for volumes and carbon_baseline.by_category for quantities. Break concrete down into walls and slabs.",
	classify.TopicEmissionFactors:     "List every emission factor with its unit (kgCO2e/m³ or kgCO2e/m²). Use name_pt_br fields for material names.",
	classify.TopicTotalCarbon:         "Use carbon_baseline totals and the ACTIVE SCENARIO block. Convert to tCO2e for display (divide by 1000). When the user asks about the current scenario, use the ACTIVE SCENARIO values.",
	classify.TopicScenarioLowClinker:  "Use the low_clinker_concrete scenario. Show reduction_vs_baseline_percent and the new intensity, compared against the baseline intensity.",
	classify.TopicReductionStrategies: "List every strategy with its typical_reduction_range_percent and caveats. Use name_pt_br fields.",
	classify.TopicEmissionsByFloor:    "Compute emissions per storey as net_floor_area_m2 times intensity_kgco2e_per_m2, storey by storey.",
	classify.TopicExecutiveSummary:    "Write a short executive summary: total, intensity, benchmark position, the best scenario and the top reduction lever. Bold the key metrics.",
	classify.TopicScenarioComparison:  "Compare all scenarios by intensity and total, name the lowest-intensity one, and relate each to the benchmark distribution.",
	classify.TopicGeneral:             "Use any relevant section of the data above; prefer precomputed aggregates over raw fields.",
}

// generalRules apply to every prompt regardless of topic.
const generalRules = `GENERAL RULES:
1. Respond in Portuguese (PT-BR); use name_pt_br / label_pt_br fields for user-facing names.
2. Always cite exact numbers from the data above (e.g. "78.1%", "131.473 m³", "282.6 kgCO2e/m²").
3. Never invent values that are not present in the supplied data.
4. Never claim data is missing without first checking every section supplied above.
5. Never attempt to re-derive numbers from raw geometry; that data is deliberately withheld. Use the precomputed aggregates.
6. Format the answer in Markdown and bold the key metrics.
7. When the user asks about "the current scenario" or "this project", use the ACTIVE SCENARIO values.`

// InstructionsFor returns the answering instructions for a topic, falling
// back to the catch-all wording.
func InstructionsFor(topic classify.Topic) string {
	if s, ok := topicInstructions[topic]; ok {
		return s
	}
	return topicInstructions[classify.TopicGeneral]
}
