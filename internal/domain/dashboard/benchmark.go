package dashboard

import "github.com/phoenixborealis/bimagent/internal/domain/model"

// Localized zone descriptions shown on the benchmark panel.
const (
	descVeryLow    = "Muito baixo"
	descLow        = "Baixo"
	descMediumHigh = "Médio–alto"
	descVeryHigh   = "Muito alto"
)

// ClassifyIntensity places an intensity in the benchmark distribution.
// [p10,p50) and [p50,p90) are half-open; everything at or above p90 lands in
// the top zone.
func ClassifyIntensity(intensity float64, d model.Distribution) PercentilePosition {
	switch {
	case intensity < d.P10:
		return PercentilePosition{Percentile: 10, Zone: ZoneVeryLow, Description: descVeryLow}
	case intensity < d.P50:
		return PercentilePosition{Percentile: 50, Zone: ZoneLow, Description: descLow}
	case intensity < d.P90:
		return PercentilePosition{Percentile: 90, Zone: ZoneMediumHigh, Description: descMediumHigh}
	default:
		return PercentilePosition{Percentile: 90, Zone: ZoneVeryHigh, Description: descVeryHigh}
	}
}

// CompareTargets evaluates the active intensity against every named target.
// The full target list is iterated so extending the catalog needs no code
// change; the near-term and stretch targets are simply entries in it.
func CompareTargets(intensity float64, b *model.Benchmark) []TargetStatus {
	out := make([]TargetStatus, 0, len(b.Targets))
	for i := range b.Targets {
		t := &b.Targets[i]
		out = append(out, TargetStatus{
			TargetID:    t.ID,
			LabelPTBR:   t.LabelPTBR,
			TargetValue: t.TargetKgCO2ePerM2,
			BelowTarget: intensity < t.TargetKgCO2ePerM2,
			Distance:    intensity - t.TargetKgCO2ePerM2,
		})
	}
	return out
}
