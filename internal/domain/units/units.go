// Package units holds the mass unit conversions used at presentation time.
// Emissions are stored in kgCO2e everywhere; tonnes exist only for display.
package units

// KgPerTonne is the fixed base-to-display mass ratio.
const KgPerTonne = 1000.0

// ToDisplayMass converts a base-unit mass (kgCO2e) to display units (tCO2e).
// Non-finite input propagates as NaN/Inf; callers own that guard.
func ToDisplayMass(kg float64) float64 {
	return kg / KgPerTonne
}

// ToBaseMass is the exact inverse of ToDisplayMass.
func ToBaseMass(tonnes float64) float64 {
	return tonnes * KgPerTonne
}
