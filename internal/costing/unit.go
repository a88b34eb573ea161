package costing

import (
	"errors"
	"fmt"
	"strings"
)

// Recognized ingredient line units. Volumes are treated as mass equivalents
// (1 ml weighs 1 g for planning purposes), matching how the price list is
// quoted per kilogram.
const (
	UnitGram       = "g"
	UnitKilogram   = "kg"
	UnitMilliliter = "ml"
	UnitLiter      = "l"
)

// ErrInvalidUnit reports a unit string outside the recognized set. It is a
// hard failure: guessing a conversion factor would silently mis-cost a line.
var ErrInvalidUnit = errors.New("costing: invalid unit")

// ToCanonicalMass converts a quantity in the given unit to kilograms.
func ToCanonicalMass(quantity float64, unit string) (float64, error) {
	switch strings.TrimSpace(unit) {
	case UnitGram, UnitMilliliter:
		return quantity / 1000.0, nil
	case UnitKilogram, UnitLiter:
		return quantity, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, unit)
	}
}

// ValidUnit reports whether unit is one of the recognized line units.
func ValidUnit(unit string) bool {
	switch strings.TrimSpace(unit) {
	case UnitGram, UnitKilogram, UnitMilliliter, UnitLiter:
		return true
	}
	return false
}
