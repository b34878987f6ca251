package promptctx

import (
	"encoding/json"
	"testing"

	"github.com/phoenixborealis/bimagent/internal/domain/classify"
	"github.com/phoenixborealis/bimagent/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func floatPtr(v float64) *float64 { return &v }

func fixtureStore() *model.ContextStore {
	return &model.ContextStore{
		ProjectSummary: model.ProjectSummary{
			ID:               "ac20_fzk_haus",
			NamePTBR:         "Casa AC20-FZK",
			GrossFloorAreaM2: 232.4,
			FloorAreaByStorey: []model.StoreyArea{
				{StoreyID: "ground", NamePTBR: "Térreo", NetFloorAreaM2: 104.3},
				{StoreyID: "upper", NamePTBR: "Pavimento superior", NetFloorAreaM2: 104.2},
			},
		},
		GeometryAggregates: model.GeometryAggregates{
			Structure: model.Structure{WallNetVolumeM3: 74.9, SlabNetVolumeM3: 56.6},
		},
		MaterialFactors: model.MaterialFactors{
			UnitEmissions: "kgCO2e",
			Materials: []model.MaterialFactor{
				{ID: "mat_concrete_structural", NamePTBR: "Concreto estrutural", FactorPerM3: floatPtr(350)},
				{ID: "mat_glazing_double", NamePTBR: "Vidro duplo", FactorPerM2: floatPtr(90)},
			},
		},
		CarbonBaseline: model.CarbonBaseline{
			TotalEmbodiedKgCO2e:  58936.4,
			IntensityKgCO2ePerM2: 282.6,
			ReferenceFloorAreaM2: 208.546,
			ByCategory: []model.BaselineCategory{
				{ID: "structural_concrete", Quantity: model.Volume(131.473), EmbodiedKgCO2e: 46015.4, SharePercent: 78.1},
			},
		},
		Benchmarks: model.Benchmark{
			Distribution: model.Distribution{P10: 180, P50: 300, P90: 500},
		},
		Scenarios: model.ScenarioSet{
			BaselineID: "baseline_current_design",
			Scenarios: []model.Scenario{
				{ID: "baseline_current_design", IntensityKgCO2ePerM2: 282.6, TotalKgCO2e: 58936.4},
				{ID: "low_clinker_concrete", IntensityKgCO2ePerM2: 230, TotalKgCO2e: 48000,
					ReductionVsBaselinePercent: floatPtr(18.6)},
			},
		},
		ReductionStrategies: []model.ReductionStrategy{
			{ID: "switch_to_low_clinker_concrete", NamePTBR: "Usar concreto com baixo clínquer",
				TypicalReductionRange: [2]float64{20, 40}},
		},
		DataQuality: model.DataQuality{
			Coverage: model.Coverage{StructuralPercent: 100, EnvelopePercent: 95, FinishesPercent: 90},
		},
		OperationalCarbon: model.OperationalCarbon{
			GridIntensityCurrent: 0.25, GridIntensityFuture: 0.05, LifetimeTotalCurrentGrid: 182500,
		},
		Writeback: model.WritebackMapping{
			TargetPropertySetName: "Pset_CarbonMetrics",
			Fields: []model.WritebackField{
				{PropertyName: "EmbodiedCarbonTotal", FromContextPath: "carbon_baseline.total_embodied_kgco2e"},
			},
		},
		RawGeometry: json.RawMessage(`{"schema":"IFC4","storeys":2}`),
	}
}

func sliceKeys(t *testing.T, data []byte) map[string]json.RawMessage {
	t.Helper()
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("slice is not a JSON object: %v", err)
	}
	return doc
}

func TestSlice(t *testing.T) {
	Convey("Given the context slicer", t, func() {
		store := fixtureStore()

		Convey("Then each topic exposes only its own subtrees", func() {
			wantKeys := map[classify.Topic][]string{
				classify.TopicEmissionsByCategory: {"carbon_baseline"},
				classify.TopicMaterialQuantity:    {"geometry_aggregates", "carbon_baseline"},
				classify.TopicEmissionFactors:     {"material_factors"},
				classify.TopicTotalCarbon:         {"carbon_baseline"},
				classify.TopicScenarioLowClinker:  {"scenarios"},
				classify.TopicScenarioComparison:  {"scenarios", "benchmarks"},
				classify.TopicReductionStrategies: {"reduction_strategies"},
				classify.TopicEmissionsByFloor:    {"project_summary", "carbon_baseline"},
			}
			for topic, keys := range wantKeys {
				out, err := Slice(store, topic, false)
				So(err, ShouldBeNil)
				doc := sliceKeys(t, out)
				So(len(doc), ShouldEqual, len(keys))
				for _, k := range keys {
					So(doc, ShouldContainKey, k)
				}
			}
		})

		Convey("And the raw geometry never leaks into regular slices", func() {
			for _, topic := range classify.Topics() {
				out, err := Slice(store, topic, false)
				So(err, ShouldBeNil)
				doc := sliceKeys(t, out)
				So(doc, ShouldNotContainKey, "ifc_data")
				So(doc, ShouldNotContainKey, "ifc_writeback")
			}
		})

		Convey("And the catch-all slice carries every aggregate section", func() {
			out, err := Slice(store, classify.TopicGeneral, false)
			So(err, ShouldBeNil)
			doc := sliceKeys(t, out)
			for _, k := range []string{
				"project_summary", "geometry_aggregates", "material_factors",
				"carbon_baseline", "benchmarks", "scenarios",
				"reduction_strategies", "data_quality", "operational_carbon",
			} {
				So(doc, ShouldContainKey, k)
			}
		})

		Convey("When debug widening is on", func() {
			out, err := Slice(store, classify.TopicGeneral, true)
			So(err, ShouldBeNil)
			doc := sliceKeys(t, out)

			Convey("Then the writeback mapping and raw geometry are included", func() {
				So(doc, ShouldContainKey, "ifc_writeback")
				So(doc, ShouldContainKey, "ifc_data")
			})
		})

		Convey("And slicing is idempotent", func() {
			first, err := Slice(store, classify.TopicScenarioComparison, false)
			So(err, ShouldBeNil)
			second, err := Slice(store, classify.TopicScenarioComparison, false)
			So(err, ShouldBeNil)
			So(string(second), ShouldEqual, string(first))
		})

		Convey("And the total-carbon slice is just the three headline figures", func() {
			out, err := Slice(store, classify.TopicTotalCarbon, false)
			So(err, ShouldBeNil)
			So(string(out), ShouldContainSubstring, "58936.4")
			So(string(out), ShouldContainSubstring, "282.6")
			So(string(out), ShouldNotContainSubstring, "by_category")
		})
	})
}
