package finance

import "math"

// SlabCost bills consumption against an ordered slab tariff.
// Each tier absorbs at most its own capacity (threshold minus the previous
// threshold); consumption beyond the last threshold is billed again at the
// last tier's rate. That overflow policy models "excess units at the top
// rate" and is intentional, not a missing bounds check.
func SlabCost(units float64, slabs []TariffSlab) float64 {
	if units <= 0 || len(slabs) == 0 {
		return 0
	}

	total := 0.0
	remaining := units
	prevThreshold := 0.0

	for i, slab := range slabs {
		capacity := slab.Units - prevThreshold
		inTier := math.Min(remaining, capacity)
		total += inTier * slab.Rate
		remaining -= inTier
		prevThreshold = slab.Units

		if remaining <= 0 {
			break
		}
		if i == len(slabs)-1 {
			// Overflow past the top tier.
			total += remaining * slab.Rate
		}
	}

	return total
}

// FlatCost bills consumption at a single rate. Trivial, but kept alongside
// SlabCost so the projector treats both tariff kinds uniformly.
func FlatCost(units, rate float64) float64 {
	return units * rate
}

// InitialYearlyRevenue evaluates the tariff against the first-year output.
// Slab tariffs are evaluated monthly (yearly/12 through the tiers, times 12)
// because tiered residential tariffs are billed per month; for tiered rates
// this is NOT equivalent to pushing the full annual total through the tiers,
// and the monthly form is the one the projection is calibrated against.
func InitialYearlyRevenue(yearlyGeneration float64, tariff Tariff) float64 {
	switch tariff.Type {
	case TariffTypeFlat:
		return FlatCost(yearlyGeneration, tariff.Rate)
	case TariffTypeSlab:
		monthly := SlabCost(yearlyGeneration/12, tariff.Slabs)
		return monthly * 12
	}
	return 0
}
