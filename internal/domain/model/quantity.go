package model

import (
	"encoding/json"
	"fmt"
)

// QuantityUnit tags which unit a category quantity is expressed in.
type QuantityUnit string

// Known quantity units. UnitNone marks lumped categories that carry no
// measurable quantity (e.g. the finishes/services allowance).
const (
	UnitVolumeM3 QuantityUnit = "m3"
	UnitAreaM2   QuantityUnit = "m2"
	UnitNone     QuantityUnit = "none"
)

// Quantity is a tagged variant of a category quantity: either a volume, an
// area, or nothing. Modeling the unit explicitly replaces the upstream
// convention of two optional fields with implicit whichever-is-set branching.
type Quantity struct {
	Unit  QuantityUnit `json:"unit"`
	Value float64      `json:"value"`
}

// Volume constructs a volume quantity in m3.
func Volume(m3 float64) Quantity { return Quantity{Unit: UnitVolumeM3, Value: m3} }

// Area constructs an area quantity in m2.
func Area(m2 float64) Quantity { return Quantity{Unit: UnitAreaM2, Value: m2} }

// NoQuantity marks a category without a measurable quantity.
func NoQuantity() Quantity { return Quantity{Unit: UnitNone} }

// DisplayUnit returns the human-readable unit symbol, or "N/A" for UnitNone.
func (q Quantity) DisplayUnit() string {
	switch q.Unit {
	case UnitVolumeM3:
		return "m³"
	case UnitAreaM2:
		return "m²"
	default:
		return "N/A"
	}
}

// UnmarshalJSON validates the unit tag on load.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	type alias Quantity
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("decoding quantity: %w", err)
	}
	switch a.Unit {
	case UnitVolumeM3, UnitAreaM2, UnitNone:
	default:
		return fmt.Errorf("%w: unknown quantity unit %q", ErrInvalidContext, a.Unit)
	}
	*q = Quantity(a)
	return nil
}
