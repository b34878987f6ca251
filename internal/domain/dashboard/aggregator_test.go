package dashboard

import (
	"errors"
	"testing"

	"github.com/phoenixborealis/bimagent/internal/domain/model"
	"github.com/phoenixborealis/bimagent/internal/domain/scenario"
	. "github.com/smartystreets/goconvey/convey"
)

func floatPtr(v float64) *float64 { return &v }

// fixtureStore mirrors the embedded demo dataset closely enough to exercise
// every aggregation path.
func fixtureStore() *model.ContextStore {
	return &model.ContextStore{
		ProjectSummary: model.ProjectSummary{
			ID:            "ac20_fzk_haus",
			NamePTBR:      "Casa AC20-FZK",
			UsageTypePTBR: "Residência unifamiliar",
		},
		CarbonBaseline: model.CarbonBaseline{
			TotalEmbodiedKgCO2e:  58936.4,
			IntensityKgCO2ePerM2: 282.6,
			ByCategory: []model.BaselineCategory{
				{ID: "structural_concrete", NamePTBR: "Concreto estrutural (paredes + lajes)",
					MaterialID: "mat_concrete_structural", Quantity: model.Volume(131.473),
					EmbodiedKgCO2e: 46015.4, SharePercent: 78.1},
				{ID: "glazing", NamePTBR: "Esquadrias envidraçadas (janelas)",
					MaterialID: "mat_glazing_double", Quantity: model.Area(23.17),
					EmbodiedKgCO2e: 2085.3, SharePercent: 3.5},
				{ID: "doors", NamePTBR: "Portas",
					MaterialID: "mat_door_wood_hollow", Quantity: model.Area(12.14),
					EmbodiedKgCO2e: 607.0, SharePercent: 1.0},
				{ID: "other_finishes_and_services", NamePTBR: "Outros acabamentos",
					Quantity: model.NoQuantity(), EmbodiedKgCO2e: 10228.7, SharePercent: 17.4},
			},
		},
		Benchmarks: model.Benchmark{
			Distribution: model.Distribution{P10: 180, P50: 300, P90: 500},
			Targets: []model.BenchmarkTarget{
				{ID: "near_term_target", LabelPTBR: "Meta de curto prazo 2030", TargetKgCO2ePerM2: 250},
				{ID: "stretch_target", LabelPTBR: "Meta ambiciosa", TargetKgCO2ePerM2: 200},
			},
		},
		Scenarios: model.ScenarioSet{
			BaselineID: "baseline_current_design",
			Scenarios: []model.Scenario{
				{ID: "baseline_current_design", IntensityKgCO2ePerM2: 282.6, TotalKgCO2e: 58936.4},
				{ID: "low_clinker_concrete", IntensityKgCO2ePerM2: 230, TotalKgCO2e: 48000,
					ReductionVsBaselinePercent: floatPtr(18.6)},
				{ID: "lighter_slab_plus_window_optimization", IntensityKgCO2ePerM2: 210, TotalKgCO2e: 43500,
					ReductionVsBaselinePercent: floatPtr(26.2)},
			},
		},
		ReductionStrategies: []model.ReductionStrategy{
			{ID: "optimize_structural_concrete", NamePTBR: "Otimizar o uso de concreto estrutural",
				AppliesToCategories: []string{"structural_concrete"}, TypicalReductionRange: [2]float64{10, 30}},
			{ID: "switch_to_low_clinker_concrete", NamePTBR: "Usar concreto com baixo clínquer",
				AppliesToMaterials: []string{"mat_concrete_structural"}, TypicalReductionRange: [2]float64{20, 40}},
			{ID: "reduce_glazing_area", NamePTBR: "Reduzir área de vidro não essencial",
				AppliesToCategories: []string{"glazing"}, TypicalReductionRange: [2]float64{5, 15}},
		},
		DataQuality: model.DataQuality{
			Coverage: model.Coverage{StructuralPercent: 100, EnvelopePercent: 95, FinishesPercent: 90},
			KnownGapsEN: []string{
				"MEP systems are covered only by a generic allowance.",
			},
		},
		OperationalCarbon: model.OperationalCarbon{
			AssumedLifetimeYears:     50,
			GridIntensityCurrent:     0.25,
			GridIntensityFuture:      0.05,
			LifetimeTotalCurrentGrid: 182500,
		},
	}
}

func TestAggregatorBuild(t *testing.T) {
	Convey("Given an aggregator over the demo dataset", t, func() {
		agg := New(fixtureStore())

		Convey("When building the baseline view", func() {
			view, err := agg.Build("")
			So(err, ShouldBeNil)
			So(view, ShouldNotBeNil)

			Convey("Then the headline numbers come from the active scenario", func() {
				So(view.ActiveScenarioID, ShouldEqual, "baseline_current_design")
				So(view.TotalEmissionsKg, ShouldAlmostEqual, 58936.4, 0.001)
				So(view.IntensityKgPerM2, ShouldAlmostEqual, 282.6, 0.001)
				So(view.ReductionPercent, ShouldEqual, 0)
			})

			Convey("And the best scenario surfaces because it beats the active one", func() {
				So(view.BestEmissionsKg, ShouldNotBeNil)
				So(*view.BestEmissionsKg, ShouldAlmostEqual, 43500, 0.001)
			})

			Convey("And the intensity sits below the median benchmark", func() {
				So(view.Percentile.Zone, ShouldEqual, ZoneLow)
				So(view.Percentile.Description, ShouldEqual, "Baixo")
			})

			Convey("And both targets are missed at baseline", func() {
				So(len(view.Targets), ShouldEqual, 2)
				So(view.Targets[0].BelowTarget, ShouldBeFalse)
				So(view.Targets[0].Distance, ShouldAlmostEqual, 32.6, 0.001)
				So(view.Targets[1].BelowTarget, ShouldBeFalse)
			})

			Convey("And operational totals carry the derived future-grid figure", func() {
				So(view.OperationalCurrentKg, ShouldAlmostEqual, 182500, 0.001)
				So(view.OperationalFutureKg, ShouldAlmostEqual, 36500, 0.001)
			})
		})

		Convey("When building the low-clinker view", func() {
			view, err := agg.Build("low_clinker_concrete")
			So(err, ShouldBeNil)

			Convey("Then the stored reduction is reported", func() {
				So(view.ActiveScenarioID, ShouldEqual, "low_clinker_concrete")
				So(view.ReductionPercent, ShouldAlmostEqual, 18.6, 0.001)
			})

			Convey("And the near-term target flips to met", func() {
				So(view.Targets[0].TargetID, ShouldEqual, "near_term_target")
				So(view.Targets[0].BelowTarget, ShouldBeTrue)
				So(view.Targets[0].Distance, ShouldAlmostEqual, -20, 0.001)
			})

			Convey("And the baseline reference does not move", func() {
				So(view.BaselineEmissionsKg, ShouldAlmostEqual, 58936.4, 0.001)
			})
		})

		Convey("When building the best scenario's own view", func() {
			view, err := agg.Build("lighter_slab_plus_window_optimization")
			So(err, ShouldBeNil)

			Convey("Then no separate best figure is reported", func() {
				So(view.BestEmissionsKg, ShouldBeNil)
			})
		})

		Convey("When an unknown scenario is requested", func() {
			view, err := agg.Build("mass_timber")

			Convey("Then the view falls back to the baseline", func() {
				So(err, ShouldBeNil)
				So(view.ActiveScenarioID, ShouldEqual, "baseline_current_design")
			})
		})

		Convey("When the store is not loaded yet", func() {
			empty := New(nil)
			view, err := empty.Build("")

			Convey("Then both view and error are nil", func() {
				So(view, ShouldBeNil)
				So(err, ShouldBeNil)
				So(empty.Ready(), ShouldBeFalse)
			})
		})

		Convey("When the baseline designation is corrupt", func() {
			cs := fixtureStore()
			cs.Scenarios.BaselineID = "missing"
			view, err := New(cs).Build("")

			Convey("Then the failure is hard, not a loading state", func() {
				So(view, ShouldBeNil)
				So(errors.Is(err, scenario.ErrUnknownScenario), ShouldBeTrue)
			})
		})
	})
}

func TestBreakdown(t *testing.T) {
	Convey("Given the category breakdown", t, func() {
		view, err := New(fixtureStore()).Build("")
		So(err, ShouldBeNil)
		So(len(view.Breakdown), ShouldEqual, 4)

		byID := map[string]CategoryBreakdown{}
		for _, c := range view.Breakdown {
			byID[c.ID] = c
		}

		Convey("Then quantities render with their unit symbols", func() {
			So(byID["structural_concrete"].QuantityUnit, ShouldEqual, "m³")
			So(byID["glazing"].QuantityUnit, ShouldEqual, "m²")
			So(byID["other_finishes_and_services"].QuantityUnit, ShouldEqual, "N/A")
		})

		Convey("And coverage maps to the matching quality domain", func() {
			So(byID["structural_concrete"].CoveragePercent, ShouldEqual, 100)
			So(byID["glazing"].CoveragePercent, ShouldEqual, 95)
			So(byID["doors"].CoveragePercent, ShouldEqual, 95)
			So(byID["other_finishes_and_services"].CoveragePercent, ShouldEqual, 90)
		})

		Convey("And the first applicable strategy becomes the recommendation", func() {
			So(byID["structural_concrete"].Recommendation,
				ShouldEqual, "Otimizar o uso de concreto estrutural (redução de 10-30%)")
			So(byID["glazing"].Recommendation,
				ShouldEqual, "Reduzir área de vidro não essencial (redução de 5-15%)")
		})

		Convey("And categories without a strategy carry no recommendation", func() {
			So(byID["other_finishes_and_services"].Recommendation, ShouldBeEmpty)
		})

		Convey("And the lumped bucket falls back to conservative coverage when unset", func() {
			cs := fixtureStore()
			cs.DataQuality.Coverage.FinishesPercent = 0
			v, err := New(cs).Build("")
			So(err, ShouldBeNil)
			for _, c := range v.Breakdown {
				if c.ID == "other_finishes_and_services" {
					So(c.CoveragePercent, ShouldEqual, 50)
				}
			}
		})
	})
}

func TestQualitySummary(t *testing.T) {
	Convey("Given the coverage figures", t, func() {
		Convey("When coverage averages 95", func() {
			view, err := New(fixtureStore()).Build("")
			So(err, ShouldBeNil)

			Convey("Then the label is high", func() {
				So(view.DataQuality.OverallCoverage, ShouldEqual, 95)
				So(view.DataQuality.QualityLevel, ShouldEqual, QualityHigh)
			})
		})

		Convey("When coverage averages between 70 and 90", func() {
			cs := fixtureStore()
			cs.DataQuality.Coverage = model.Coverage{StructuralPercent: 80, EnvelopePercent: 80, FinishesPercent: 80}
			view, err := New(cs).Build("")
			So(err, ShouldBeNil)
			So(view.DataQuality.QualityLevel, ShouldEqual, QualityMedium)
		})

		Convey("When coverage averages below 70", func() {
			cs := fixtureStore()
			cs.DataQuality.Coverage = model.Coverage{StructuralPercent: 60, EnvelopePercent: 60, FinishesPercent: 60}
			view, err := New(cs).Build("")
			So(err, ShouldBeNil)
			So(view.DataQuality.QualityLevel, ShouldEqual, QualityLow)
		})

		Convey("When coverage sits exactly on a threshold", func() {
			cs := fixtureStore()
			cs.DataQuality.Coverage = model.Coverage{StructuralPercent: 90, EnvelopePercent: 90, FinishesPercent: 90}
			view, err := New(cs).Build("")
			So(err, ShouldBeNil)

			Convey("Then the threshold is inclusive", func() {
				So(view.DataQuality.QualityLevel, ShouldEqual, QualityHigh)
			})
		})
	})
}
