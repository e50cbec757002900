package finance

import (
	"fmt"
	"strings"
)

// BuildReport renders a markdown financial report for one evaluation:
// headline metrics, lifetime summary, and the full yearly cash-flow table.
// The output feeds the report endpoint, which validates and converts it.
func BuildReport(eval ProjectEvaluation) string {
	var b strings.Builder
	s := eval.Settings
	m := eval.Metrics
	sym := s.CurrencySymbol

	fmt.Fprintf(&b, "# Solar PV Financial Analysis - %s\n\n", s.Country)
	fmt.Fprintf(&b, "Region: %s | Currency: %s (%s)\n\n", s.Region, s.Currency, sym)

	b.WriteString("## Key Metrics\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Initial Investment | %s%.2f |\n", sym, eval.ProjectCost.BaseCostLocal)
	fmt.Fprintf(&b, "| NPV (8%% discount) | %s%.2f |\n", sym, m.NPV)
	fmt.Fprintf(&b, "| IRR | %.2f%% |\n", m.IRR)
	fmt.Fprintf(&b, "| ROI (annualized) | %.2f%% |\n", m.ROI)
	fmt.Fprintf(&b, "| Payback Period | %s |\n", formatPayback(m.PaybackPeriod))
	fmt.Fprintf(&b, "| Discounted Payback | %s |\n", formatPayback(m.DiscountedPayback))

	b.WriteString("\n## Lifetime Summary\n\n")
	b.WriteString("| Item | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Total Energy | %.0f kWh |\n", m.Summary.TotalEnergy25Yr)
	fmt.Fprintf(&b, "| Total %s | %s%.2f |\n", m.Summary.RevenueType, sym, m.Summary.TotalRevenue25Yr)
	fmt.Fprintf(&b, "| Total O&M Cost | %s%.2f |\n", sym, m.Summary.TotalOMCost25Yr)
	fmt.Fprintf(&b, "| Net %s | %s%.2f |\n", m.Summary.RevenueType, sym, m.Summary.NetRevenue25Yr)

	b.WriteString("\n## Yearly Cash Flows\n\n")
	fmt.Fprintf(&b, "| Year | Energy (kWh) | %s | O&M | Net Cash Flow |\n", m.Summary.RevenueType)
	b.WriteString("|---|---|---|---|---|\n")
	for _, d := range m.YearlyDetails {
		fmt.Fprintf(&b, "| %d | %.0f | %.2f | %.2f | %.2f |\n",
			d.Year, d.EnergyOutput, d.CashValue(), d.OMCost, d.NetCashFlow)
	}

	return b.String()
}

func formatPayback(p PaybackYears) string {
	if p.Never() {
		return "not reached within horizon"
	}
	return fmt.Sprintf("%.1f years", float64(p))
}
