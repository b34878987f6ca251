// Package classify maps free-text questions to one of a closed set of topic
// tags used to route context slices. Classification is a pure function of the
// input string: deterministic, no hidden state.
package classify

import "strings"

// Topic is one of the closed set of question categories.
type Topic string

// Known topics. TopicGeneral is the catch-all for unmatched questions.
const (
	TopicEmissionsByCategory Topic = "emissions_by_category"
	TopicMaterialQuantity    Topic = "material_quantity"
	TopicEmissionFactors     Topic = "emission_factors"
	TopicTotalCarbon         Topic = "total_carbon"
	TopicScenarioLowClinker  Topic = "scenario_low_clinker"
	TopicReductionStrategies Topic = "reduction_strategies"
	TopicEmissionsByFloor    Topic = "emissions_by_floor"
	TopicExecutiveSummary    Topic = "executive_summary"
	TopicScenarioComparison  Topic = "scenario_comparison"
	TopicGeneral             Topic = "general"
)

// rule maps a keyword set to a topic. Any keyword matching as a
// case-insensitive substring selects the topic.
type rule struct {
	keywords []string
	topic    Topic
}

// rules are evaluated in order and the first match wins. Order is load
// bearing: the low-clinker scenario rule sits above the generic reduction
// rule because questions about swapping to low-carbon concrete also contain
// generic reduction vocabulary. A test pins this priority.
var rules = []rule{
	{[]string{"materiais mais contribuem", "emissões por categoria", "contribuem para as emissões"}, TopicEmissionsByCategory},
	{[]string{"concreto estrutural", "quanto concreto", "quantidade de concreto"}, TopicMaterialQuantity},
	{[]string{"fatores de emissão", "emission factors", "fatores foram usados"}, TopicEmissionFactors},
	{[]string{"redução total", "total carbono", "total de carbono", "total de emissões"}, TopicTotalCarbon},
	{[]string{"trocar concreto", "baixo carbono", "low-clinker", "baixo clínquer"}, TopicScenarioLowClinker},
	{[]string{"comparar cenários", "comparação de cenários", "qual cenário"}, TopicScenarioComparison},
	{[]string{"alternativas", "reduzir emissões", "estratégias", "redução"}, TopicReductionStrategies},
	{[]string{"por pavimento", "por andar", "distribuem as emissões"}, TopicEmissionsByFloor},
	{[]string{"resumo executivo", "executivo"}, TopicExecutiveSummary},
}

// Classify returns the topic of a free-text question. Unmatched questions
// fall through to TopicGeneral.
func Classify(question string) Topic {
	lower := strings.ToLower(question)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.topic
			}
		}
	}
	return TopicGeneral
}

// Topics returns the closed set of topics, catch-all included.
func Topics() []Topic {
	return []Topic{
		TopicEmissionsByCategory,
		TopicMaterialQuantity,
		TopicEmissionFactors,
		TopicTotalCarbon,
		TopicScenarioLowClinker,
		TopicReductionStrategies,
		TopicEmissionsByFloor,
		TopicExecutiveSummary,
		TopicScenarioComparison,
		TopicGeneral,
	}
}
