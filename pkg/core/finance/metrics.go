package finance

import "math"

// Engine-wide defaults.
const (
	DefaultDiscountRate = 0.08
	DefaultHorizonYears = 25
	DefaultDegradation  = 0.006
)

// IRR solver constants. The iteration bound is the only guard against
// non-termination on adversarial cash-flow series; do not relax it.
const (
	irrInitialGuess    = 0.10
	irrMaxIterations   = 1000
	irrNPVTolerance    = 1e-7
	bisectionLow       = -0.99
	bisectionHigh      = 0.99
	bisectionPrecision = 0.01
)

// NPV discounts the cash-flow series to present value.
// Index 0 is year zero and is not discounted.
func NPV(cashFlows []float64, discountRate float64) float64 {
	npv := 0.0
	for t, flow := range cashFlows {
		npv += flow / math.Pow(1+discountRate, float64(t))
	}
	return npv
}

// npvDerivative is d(NPV)/dr, used by the Newton-Raphson step.
func npvDerivative(cashFlows []float64, rate float64) float64 {
	d := 0.0
	for t := 1; t < len(cashFlows); t++ {
		d -= float64(t) * cashFlows[t] / math.Pow(1+rate, float64(t+1))
	}
	return d
}

// IRR returns the internal rate of return as a percentage.
//
// If the series has no sign change there is no economically meaningful root
// and the result is 0. Otherwise Newton-Raphson runs from a 10% guess; when
// the derivative hits exactly zero the solver falls back to a coarse
// bisection over [-0.99, 0.99], which always terminates at reduced precision.
func IRR(cashFlows []float64) float64 {
	if !hasSignChange(cashFlows) {
		return 0
	}

	rate := irrInitialGuess
	for i := 0; i < irrMaxIterations; i++ {
		npv := NPV(cashFlows, rate)
		if math.Abs(npv) < irrNPVTolerance {
			return rate * 100
		}

		derivative := npvDerivative(cashFlows, rate)
		if derivative == 0 {
			return bisectIRR(cashFlows) * 100
		}

		rate -= npv / derivative
		if rate <= -1 {
			// Keep (1+r) away from zero to avoid discount-factor blow-up.
			rate = bisectionLow
		}
	}

	return rate * 100
}

// bisectIRR narrows the bracket by the sign of NPV at the midpoint until the
// bracket width drops below the precision, then returns the midpoint.
func bisectIRR(cashFlows []float64) float64 {
	lo, hi := bisectionLow, bisectionHigh
	for hi-lo >= bisectionPrecision {
		mid := (lo + hi) / 2
		if NPV(cashFlows, mid) > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

func hasSignChange(cashFlows []float64) bool {
	hasNegative, hasPositive := false, false
	for _, flow := range cashFlows {
		if flow < 0 {
			hasNegative = true
		} else if flow > 0 {
			hasPositive = true
		}
	}
	return hasNegative && hasPositive
}

// ROI is the simple annualized return on investment in percent: total
// returns (excluding the initial outlay) over the investment, spread flat
// across the horizon. Not compounded.
func ROI(cashFlows []float64, initialInvestment float64, horizonYears int) float64 {
	if initialInvestment == 0 || horizonYears == 0 {
		return 0
	}
	totalReturns := 0.0
	for _, flow := range cashFlows[1:] {
		totalReturns += flow
	}
	return (totalReturns / math.Abs(initialInvestment)) * 100 / float64(horizonYears)
}

// PaybackPeriod returns the fractional year at which cumulative net cash flow
// recovers the initial investment, interpolating linearly inside the crossing
// year. +Inf means the investment is never recovered within the horizon.
func PaybackPeriod(cashFlows []float64) PaybackYears {
	if len(cashFlows) == 0 {
		return PaybackYears(math.Inf(1))
	}

	target := math.Abs(cashFlows[0])
	cumulative := 0.0
	for i := 1; i < len(cashFlows); i++ {
		cumulative += cashFlows[i]
		if cumulative >= target {
			fraction := (target - (cumulative - cashFlows[i])) / cashFlows[i]
			return PaybackYears(float64(i-1) + fraction)
		}
	}
	return PaybackYears(math.Inf(1))
}

// DiscountedPaybackPeriod is PaybackPeriod over present-value flows: each
// yearly flow is discounted before accumulation, so recovery lands later
// than the undiscounted figure (or never).
func DiscountedPaybackPeriod(cashFlows []float64, discountRate float64) PaybackYears {
	if len(cashFlows) == 0 {
		return PaybackYears(math.Inf(1))
	}

	target := math.Abs(cashFlows[0])
	cumulative := 0.0
	for i := 1; i < len(cashFlows); i++ {
		discounted := cashFlows[i] / math.Pow(1+discountRate, float64(i))
		cumulative += discounted
		if cumulative >= target {
			fraction := (target - (cumulative - discounted)) / discounted
			return PaybackYears(float64(i-1) + fraction)
		}
	}
	return PaybackYears(math.Inf(1))
}
