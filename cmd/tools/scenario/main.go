package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"solar_finance/pkg/core/finance"
	"solar_finance/pkg/core/fx"
	"solar_finance/pkg/core/utils"
)

// Runs one scenario file through the financial engine and prints the yearly
// cash-flow table and summary. Scenario files are JSON or HJSON holding a
// finance.ProjectRequest.
func main() {
	godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Println("usage: scenario <scenario-file>")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	var req finance.ProjectRequest
	if err := utils.ParseScenario(data, &req); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	calc := finance.NewCalculator(req.Country, fx.NewResolver(nil, log), log)
	eval := calc.EvaluateProject(req)
	s := eval.Settings
	m := eval.Metrics

	fmt.Printf("--- %s (%s) | %.1f kW ---\n", s.Country, s.Region, req.CapacityKW)
	fmt.Printf("Investment: %s%.2f\n", s.CurrencySymbol, eval.ProjectCost.BaseCostLocal)
	fmt.Printf("Yearly O&M: %s%.2f\n\n", s.CurrencySymbol, eval.OMParams.YearlyOMCost)

	fmt.Printf("%-5s %-14s %-14s %-12s %-14s\n",
		"Year", "Energy (kWh)", m.Summary.RevenueType, "O&M", "Net Cash Flow")
	for _, d := range m.YearlyDetails {
		fmt.Printf("%-5d %-14.0f %-14.2f %-12.2f %-14.2f\n",
			d.Year, d.EnergyOutput, d.CashValue(), d.OMCost, d.NetCashFlow)
	}

	fmt.Println("\n--- Metrics ---")
	fmt.Printf("NPV:      %s%.2f\n", s.CurrencySymbol, m.NPV)
	fmt.Printf("IRR:      %.2f%%\n", m.IRR)
	fmt.Printf("ROI:      %.2f%% per year\n", m.ROI)
	if m.PaybackPeriod.Never() {
		fmt.Println("Payback:  not reached within horizon")
	} else {
		fmt.Printf("Payback:  %.1f years\n", float64(m.PaybackPeriod))
	}
	fmt.Printf("Lifetime net %s: %s%.2f\n",
		m.Summary.RevenueType, s.CurrencySymbol, m.Summary.NetRevenue25Yr)
}
