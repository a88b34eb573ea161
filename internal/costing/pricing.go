package costing

// DefaultMarkupMultiplier is the house pricing rule: sell at twice the final
// cost. A manually set selling price on the recipe simply bypasses this
// function; the engine never second-guesses an override.
const DefaultMarkupMultiplier = 2.0

// RecommendedPrice derives a selling price from a final cost using the fixed
// markup rule. Pure multiplication, no clamping, no rounding.
func RecommendedPrice(finalCost float64) float64 {
	return finalCost * DefaultMarkupMultiplier
}
