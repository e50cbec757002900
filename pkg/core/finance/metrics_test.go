package finance_test

import (
	"math"
	"testing"

	"solar_finance/pkg/core/finance"
)

func TestNPV_KnownSeries(t *testing.T) {
	// -1000 + 500/1.1 + 500/1.21 = -1000 + 454.5454... + 413.2231...
	flows := []float64{-1000, 500, 500}
	want := -1000 + 500/1.1 + 500/(1.1*1.1)
	got := finance.NPV(flows, 0.10)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("NPV = %v, want %v", got, want)
	}
}

func TestNPV_StrictlyDecreasingInRate(t *testing.T) {
	flows := []float64{-1000, 300, 300, 300, 300, 300}
	rates := []float64{-0.5, -0.1, 0, 0.05, 0.08, 0.15, 0.5}

	prev := math.Inf(1)
	for _, r := range rates {
		npv := finance.NPV(flows, r)
		if npv >= prev {
			t.Errorf("NPV not strictly decreasing: NPV(%v)=%v >= previous %v", r, npv, prev)
		}
		prev = npv
	}
}

func TestIRR_RootOfNPV(t *testing.T) {
	flows := []float64{-100, 60, 60}
	irr := finance.IRR(flows)
	if irr <= 0 {
		t.Fatalf("IRR = %v, want a positive rate for a profitable series", irr)
	}
	// The defining property: NPV at the computed rate is ~0.
	if npv := finance.NPV(flows, irr/100); math.Abs(npv) > 1e-5 {
		t.Errorf("NPV at IRR = %v, want ~0", npv)
	}
}

func TestIRR_NoSignChangeGuard(t *testing.T) {
	if got := finance.IRR([]float64{100, 50, 50}); got != 0 {
		t.Errorf("IRR with all-positive flows = %v, want exactly 0", got)
	}
	if got := finance.IRR([]float64{-100, -50, -50}); got != 0 {
		t.Errorf("IRR with all-negative flows = %v, want exactly 0", got)
	}
	if got := finance.IRR(nil); got != 0 {
		t.Errorf("IRR of empty series = %v, want 0", got)
	}
}

func TestIRR_TypicalSolarSeries(t *testing.T) {
	// 280k investment returning ~19k/yr for 25 years: IRR sits in the
	// single digits and NPV at that rate vanishes.
	flows := make([]float64, 26)
	flows[0] = -280000
	for i := 1; i <= 25; i++ {
		flows[i] = 19000
	}

	irr := finance.IRR(flows)
	if irr < 3 || irr > 8 {
		t.Errorf("IRR = %v%%, want a plausible single-digit rate", irr)
	}
	if npv := finance.NPV(flows, irr/100); math.Abs(npv) > 1e-4 {
		t.Errorf("NPV at IRR = %v, want ~0", npv)
	}
}

func TestROI_Annualized(t *testing.T) {
	flows := make([]float64, 26)
	flows[0] = -1000
	for i := 1; i <= 25; i++ {
		flows[i] = 100
	}
	// 2500 total returns on 1000 over 25 years: 10% per year, simple.
	got := finance.ROI(flows, 1000, 25)
	if math.Abs(got-10) > 1e-9 {
		t.Errorf("ROI = %v, want 10", got)
	}
}

func TestROI_ZeroGuards(t *testing.T) {
	if got := finance.ROI([]float64{-1000, 100}, 0, 25); got != 0 {
		t.Errorf("ROI with zero investment = %v, want 0", got)
	}
	if got := finance.ROI([]float64{-1000, 100}, 1000, 0); got != 0 {
		t.Errorf("ROI with zero horizon = %v, want 0", got)
	}
}

func TestPaybackPeriod_Interpolation(t *testing.T) {
	// Cumulative after year 2 is 800; year 3 covers the remaining 200 of
	// its 400: fraction 0.5, payback 2.5.
	got := finance.PaybackPeriod([]float64{-1000, 400, 400, 400})
	if math.Abs(float64(got)-2.5) > 1e-9 {
		t.Errorf("PaybackPeriod = %v, want 2.5", got)
	}
}

func TestPaybackPeriod_NeverSentinel(t *testing.T) {
	got := finance.PaybackPeriod([]float64{-1000, 10, 10, 10})
	if !got.Never() {
		t.Errorf("PaybackPeriod = %v, want +Inf sentinel", got)
	}
	if !finance.PaybackPeriod(nil).Never() {
		t.Error("PaybackPeriod of empty series should be the never sentinel")
	}
}

func TestDiscountedPayback_LaterThanSimple(t *testing.T) {
	flows := []float64{-1000, 400, 400, 400, 400}
	simple := finance.PaybackPeriod(flows)
	discounted := finance.DiscountedPaybackPeriod(flows, 0.08)
	if discounted.Never() {
		t.Fatal("discounted payback unexpectedly never reached")
	}
	if float64(discounted) <= float64(simple) {
		t.Errorf("discounted payback %v should land after simple payback %v", discounted, simple)
	}
}

func TestPaybackYears_JSONNull(t *testing.T) {
	never := finance.PaybackPeriod([]float64{-1000, 1})
	data, err := never.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "null" {
		t.Errorf("never-payback marshals as %s, want null", data)
	}

	var back finance.PaybackYears
	if err := back.UnmarshalJSON([]byte("null")); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Never() {
		t.Error("unmarshalled null should be the never sentinel")
	}
}
