package finance

import "math"

// ProjectCashFlows builds the year 0..horizon cash-flow series and the
// yearly detail table.
//
// cashFlows[0] is the negative initial investment; indices 1..horizon hold
// net yearly flows. Degradation is applied to the pre-escalation revenue and
// tariff escalation is applied on top, as two separate exponentials:
//
//	revenue(y) = initial * (1-degradation)^y * (1+tariffEscalation)^y
//
// Keep the two factors separate; collapsing them into one combined rate
// shifts the low-order bits of every downstream metric.
func ProjectCashFlows(
	electricity *ElectricityData,
	initialInvestment float64,
	om *OMParams,
	yearlyGeneration float64,
	annualDegradation float64,
	horizonYears int,
) ([]float64, []YearlyDetail) {

	initialRevenue := InitialYearlyRevenue(yearlyGeneration, electricity.Tariff)
	label := RevenueLabel(electricity.SystemType)

	cashFlows := make([]float64, 0, horizonYears+1)
	cashFlows = append(cashFlows, -initialInvestment)
	details := make([]YearlyDetail, 0, horizonYears)

	for year := 0; year < horizonYears; year++ {
		degradationFactor := math.Pow(1-annualDegradation, float64(year))
		degradedRevenue := initialRevenue * degradationFactor
		escalatedRevenue := degradedRevenue * math.Pow(1+om.TariffEscalation, float64(year))
		escalatedOMCost := om.YearlyOMCost * math.Pow(1+om.OMEscalation, float64(year))
		netCashFlow := escalatedRevenue - escalatedOMCost

		cashFlows = append(cashFlows, netCashFlow)

		detail := YearlyDetail{
			Year:              year + 1,
			DegradationFactor: degradationFactor,
			EnergyOutput:      yearlyGeneration * degradationFactor,
			OMCost:            escalatedOMCost,
			NetCashFlow:       netCashFlow,
		}
		if label == "Revenue" {
			detail.Revenue = escalatedRevenue
		} else {
			detail.Savings = escalatedRevenue
		}
		details = append(details, detail)
	}

	return cashFlows, details
}

// Summarize reduces the yearly detail table to lifetime totals. The revenue
// label is taken from the system's configured type; all rows share it.
func Summarize(details []YearlyDetail, systemType string) Summary {
	summary := Summary{RevenueType: RevenueLabel(systemType)}
	for _, d := range details {
		summary.TotalEnergy25Yr += d.EnergyOutput
		summary.TotalRevenue25Yr += d.CashValue()
		summary.TotalOMCost25Yr += d.OMCost
	}
	summary.NetRevenue25Yr = summary.TotalRevenue25Yr - summary.TotalOMCost25Yr
	return summary
}
