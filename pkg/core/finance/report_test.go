package finance_test

import (
	"strings"
	"testing"

	"solar_finance/pkg/core/finance"
	"solar_finance/pkg/core/utils"
)

func TestBuildReport(t *testing.T) {
	calc := newCalc("United States")
	eval := calc.EvaluateProject(finance.ProjectRequest{
		CapacityKW:               100,
		Country:                  "United States",
		Electricity:              *flatElectricity(0.15),
		FirstYearOutputKWh:       150000,
		AnnualDegradationPercent: f64(0.5),
	})

	report := finance.BuildReport(eval)

	for _, want := range []string{
		"# Solar PV Financial Analysis - United States",
		"| NPV (8% discount) |",
		"| IRR |",
		"| Payback Period |",
		"## Yearly Cash Flows",
		"| 25 |",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q", want)
		}
	}

	if !utils.ValidateMarkdown(report) {
		t.Error("report should be valid markdown")
	}
}

func TestBuildReport_NeverPayback(t *testing.T) {
	calc := newCalc("United States")
	// Tiny output: revenue never recovers the investment.
	eval := calc.EvaluateProject(finance.ProjectRequest{
		CapacityKW:               100,
		Country:                  "United States",
		Electricity:              *flatElectricity(0.15),
		FirstYearOutputKWh:       1000,
		AnnualDegradationPercent: f64(0.5),
	})

	if !eval.Metrics.PaybackPeriod.Never() {
		t.Fatalf("expected never-payback scenario, got %v", eval.Metrics.PaybackPeriod)
	}
	report := finance.BuildReport(eval)
	if !strings.Contains(report, "not reached within horizon") {
		t.Error("report should spell out the never-payback sentinel")
	}
}
