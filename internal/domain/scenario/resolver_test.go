package scenario

import (
	"errors"
	"testing"

	"github.com/phoenixborealis/bimagent/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func floatPtr(v float64) *float64 { return &v }

func testSet() *model.ScenarioSet {
	return &model.ScenarioSet{
		BaselineID: "baseline_current_design",
		Scenarios: []model.Scenario{
			{ID: "baseline_current_design", IntensityKgCO2ePerM2: 282.6, TotalKgCO2e: 58936.4},
			{ID: "low_clinker_concrete", IntensityKgCO2ePerM2: 230, TotalKgCO2e: 48000,
				ReductionVsBaselinePercent: floatPtr(18.6)},
			{ID: "lighter_slab_plus_window_optimization", IntensityKgCO2ePerM2: 210, TotalKgCO2e: 43500,
				ReductionVsBaselinePercent: floatPtr(26.2)},
		},
	}
}

func TestResolve(t *testing.T) {
	Convey("Given the scenario catalog", t, func() {
		set := testSet()

		Convey("When no scenario is requested", func() {
			res, err := Resolve(set, "")
			So(err, ShouldBeNil)

			Convey("Then the baseline is active", func() {
				So(res.Active.ID, ShouldEqual, "baseline_current_design")
				So(res.Baseline.ID, ShouldEqual, "baseline_current_design")
			})

			Convey("And the best scenario has the lowest intensity", func() {
				So(res.Best.ID, ShouldEqual, "lighter_slab_plus_window_optimization")
			})
		})

		Convey("When a known scenario is requested", func() {
			res, err := Resolve(set, "low_clinker_concrete")
			So(err, ShouldBeNil)
			So(res.Active.ID, ShouldEqual, "low_clinker_concrete")

			Convey("Then the baseline reference stays fixed", func() {
				So(res.Baseline.ID, ShouldEqual, "baseline_current_design")
			})
		})

		Convey("When an unknown scenario is requested", func() {
			res, err := Resolve(set, "mass_timber")

			Convey("Then resolution silently falls back to the baseline", func() {
				So(err, ShouldBeNil)
				So(res.Active.ID, ShouldEqual, "baseline_current_design")
			})
		})

		Convey("When intensities tie for best", func() {
			set.Scenarios = append(set.Scenarios, model.Scenario{
				ID: "tied_alternative", IntensityKgCO2ePerM2: 210, TotalKgCO2e: 43500,
				ReductionVsBaselinePercent: floatPtr(26.2),
			})
			res, err := Resolve(set, "")
			So(err, ShouldBeNil)

			Convey("Then the first occurrence wins", func() {
				So(res.Best.ID, ShouldEqual, "lighter_slab_plus_window_optimization")
			})
		})

		Convey("When the baseline designation is broken", func() {
			set.BaselineID = "missing"
			_, err := Resolve(set, "")

			Convey("Then resolution fails hard", func() {
				So(errors.Is(err, ErrUnknownScenario), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "baseline_current_design")
			})
		})
	})
}

func TestReductionPercent(t *testing.T) {
	Convey("Given a scenario resolution", t, func() {
		set := testSet()

		Convey("When the active scenario stores a reduction", func() {
			res, err := Resolve(set, "low_clinker_concrete")
			So(err, ShouldBeNil)

			Convey("Then the stored value wins over the derived one", func() {
				So(res.ReductionPercent(), ShouldAlmostEqual, 18.6, 0.001)
			})
		})

		Convey("When the active scenario stores no reduction", func() {
			set.Scenarios[1].ReductionVsBaselinePercent = nil
			res, err := Resolve(set, "low_clinker_concrete")
			So(err, ShouldBeNil)

			Convey("Then the intensity-derived fallback applies", func() {
				So(res.ReductionPercent(), ShouldAlmostEqual, (282.6-230)/282.6*100, 0.001)
			})
		})

		Convey("When the baseline itself is active", func() {
			res, err := Resolve(set, "")
			So(err, ShouldBeNil)
			So(res.ReductionPercent(), ShouldEqual, 0)
		})

		Convey("When the baseline intensity is zero", func() {
			res := Resolution{
				Active:   model.Scenario{IntensityKgCO2ePerM2: 100},
				Baseline: model.Scenario{IntensityKgCO2ePerM2: 0},
			}
			So(res.ReductionPercent(), ShouldEqual, 0)
		})
	})
}
