package costing

import (
	"github.com/MarquisOgre/Spices/models"
)

// ResolvePricePerKg looks up the per-kilogram price of a named ingredient in
// the master price list. The match is exact and case-sensitive. A miss is not
// an error: the caller charges the line at zero and reports the name so a
// human can fix the data entry.
func ResolvePricePerKg(name string, master []models.MasterIngredient) (float64, bool) {
	for i := range master {
		if master[i].Name == name {
			return master[i].PricePerKg, true
		}
	}
	return 0, false
}
