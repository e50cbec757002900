package finance

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"solar_finance/pkg/core/fx"
)

// Settings is the resolved currency and regional context for one session.
// ExchangeRate always expresses "1 USD equals this many units of the active
// currency"; it is 1.0 whenever the active currency is USD.
type Settings struct {
	Region         string          `json:"region"`
	Country        string          `json:"country"`
	Currency       string          `json:"currency"`
	CurrencySymbol string          `json:"currency_symbol"`
	ExchangeRate   float64         `json:"exchange_rate"`
	RegionalData   RegionalProfile `json:"regional_data"`
}

// Calculator owns the session settings and runs the full financial pipeline:
// regional resolution → project cost → O&M → cash-flow projection → metrics.
// UpdateCurrency mutates settings and any passed inputs in place; all settings
// access is mutex-guarded so a host application may share one Calculator
// across handlers.
type Calculator struct {
	mu       sync.Mutex
	settings Settings
	rates    *fx.Resolver
	log      *logrus.Logger
}

// NewCalculator resolves a country into fully populated settings.
// Unknown or empty countries fall back to the default region and USD, so
// construction always succeeds. The resolved RegionalProfile is a copy:
// currency updates rescale the session's profile, never the reference table.
func NewCalculator(country string, rates *fx.Resolver, log *logrus.Logger) *Calculator {
	if rates == nil {
		rates = fx.NewResolver(nil, log)
	}
	if log == nil {
		log = logrus.New()
	}

	country = strings.TrimSpace(country)
	region, profile := RegionForCountry(country)
	currency := CurrencyForCountry(country)

	return &Calculator{
		settings: Settings{
			Region:         region,
			Country:        country,
			Currency:       currency,
			CurrencySymbol: CurrencySymbol(currency),
			ExchangeRate:   1.0,
			RegionalData:   profile,
		},
		rates: rates,
		log:   log,
	}
}

// Settings returns a copy of the current session settings.
func (c *Calculator) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// UpdateCurrency switches the active currency and rescales every
// currency-denominated field of the supplied inputs in place. Passed
// structures must be treated as mutated after the call; that shared-mutation
// contract mirrors how the UI reuses one set of inputs across re-renders.
// A no-op when the currency is unchanged.
func (c *Calculator) UpdateCurrency(newCurrency string, inputs *FinancialInputs) {
	c.mu.Lock()
	defer c.mu.Unlock()

	oldCurrency := c.settings.Currency
	if oldCurrency == newCurrency {
		return
	}

	rate := c.rates.Rate(oldCurrency, newCurrency)

	if inputs != nil {
		if pc := inputs.ProjectCost; pc != nil {
			pc.BaseCostLocal *= rate
			pc.CostPerKWLocal *= rate
			pc.Currency = newCurrency
			pc.CurrencySymbol = CurrencySymbol(newCurrency)
		}
		if om := inputs.OMParams; om != nil {
			om.YearlyOMCost *= rate
		}
		if ed := inputs.Electricity; ed != nil {
			switch ed.Tariff.Type {
			case TariffTypeFlat:
				ed.Tariff.Rate *= rate
			case TariffTypeSlab:
				for i := range ed.Tariff.Slabs {
					ed.Tariff.Slabs[i].Rate *= rate
				}
			}
			ed.YearlyAmount *= rate
		}
	}

	c.settings.RegionalData.DefaultTariff *= rate
	c.settings.Currency = newCurrency
	c.settings.CurrencySymbol = CurrencySymbol(newCurrency)
	// Keep the USD-anchored invariant: exchange_rate is always USD→active.
	c.settings.ExchangeRate = c.rates.Rate("USD", newCurrency)
}

// ProjectCost prices the system capacity from the regional baseline.
// Pure function of the current settings; no side effects.
func (c *Calculator) ProjectCost(capacityKW float64) ProjectCost {
	c.mu.Lock()
	settings := c.settings
	c.mu.Unlock()

	costPerKWUSD := settings.RegionalData.CostPerKW
	baseCostUSD := capacityKW * costPerKWUSD

	rate := c.rates.Rate("USD", settings.Currency)

	return ProjectCost{
		BaseCostUSD:    baseCostUSD,
		BaseCostLocal:  baseCostUSD * rate,
		CostPerKWUSD:   costPerKWUSD,
		CostPerKWLocal: costPerKWUSD * rate,
		Currency:       settings.Currency,
		CurrencySymbol: settings.CurrencySymbol,
	}
}

// OMParameters derives yearly O&M cost and escalation rates from the
// regional defaults. projectCost is in the active currency, so the derived
// O&M cost is too.
func (c *Calculator) OMParameters(projectCost float64) OMParams {
	c.mu.Lock()
	profile := c.settings.RegionalData
	c.mu.Unlock()

	return OMParams{
		YearlyOMCost:     projectCost * (profile.OMCostPercent / 100),
		OMEscalation:     profile.DefaultEscalation / 100,
		TariffEscalation: profile.DefaultEscalation / 100,
	}
}

// MetricsInput feeds one financial metrics calculation. Nil
// AnnualDegradation and DiscountRate pick up the engine defaults (0.6%, 8%);
// an explicit zero is a valid choice and is honored. Zero HorizonYears means
// the default 25: a zero-year projection has no meaning.
type MetricsInput struct {
	Electricity       *ElectricityData
	ProjectCost       float64
	OM                *OMParams
	YearlyGeneration  float64
	AnnualDegradation *float64
	HorizonYears      int
	DiscountRate      *float64
}

func (in *MetricsInput) applyDefaults() {
	if in.AnnualDegradation == nil {
		d := DefaultDegradation
		in.AnnualDegradation = &d
	}
	if in.HorizonYears == 0 {
		in.HorizonYears = DefaultHorizonYears
	}
	if in.DiscountRate == nil {
		r := DefaultDiscountRate
		in.DiscountRate = &r
	}
}

// CalculateFinancialMetrics runs the full pipeline and always returns a
// fully populated result. Any internal failure is recovered, logged, and
// degraded to the zeroed default metrics; downstream display code renders
// whatever comes back and never handles an error from this layer.
func (c *Calculator) CalculateFinancialMetrics(input MetricsInput) (metrics FinancialMetrics) {
	defer func() {
		if r := recover(); r != nil {
			c.log.WithField("cause", r).Warn("financial metrics calculation failed, returning defaults")
			metrics = defaultMetrics(input)
		}
	}()

	input.applyDefaults()

	cashFlows, details := ProjectCashFlows(
		input.Electricity,
		input.ProjectCost,
		input.OM,
		input.YearlyGeneration,
		*input.AnnualDegradation,
		input.HorizonYears,
	)

	return FinancialMetrics{
		NPV:               NPV(cashFlows, *input.DiscountRate),
		IRR:               IRR(cashFlows),
		ROI:               ROI(cashFlows, input.ProjectCost, input.HorizonYears),
		PaybackPeriod:     PaybackPeriod(cashFlows),
		DiscountedPayback: DiscountedPaybackPeriod(cashFlows, *input.DiscountRate),
		YearlyDetails:     details,
		CashFlows:         cashFlows,
		SystemType:        input.Electricity.SystemType,
		Summary:           Summarize(details, input.Electricity.SystemType),
	}
}

// defaultMetrics is the safe all-zero result of a failed calculation:
// scalar metrics zero, payback "never", a single-element cash-flow array
// holding the negative investment, and an empty detail table.
func defaultMetrics(input MetricsInput) FinancialMetrics {
	systemType := ""
	if input.Electricity != nil {
		systemType = input.Electricity.SystemType
	}
	return FinancialMetrics{
		PaybackPeriod:     PaybackPeriod(nil),
		DiscountedPayback: PaybackPeriod(nil),
		YearlyDetails:     []YearlyDetail{},
		CashFlows:         []float64{-input.ProjectCost},
		SystemType:        systemType,
		Summary:           Summary{RevenueType: RevenueLabel(systemType)},
	}
}

// ProjectRequest is the one-shot input contract of the engine: everything
// the surrounding application knows about a project, resolved and evaluated
// in a single call.
type ProjectRequest struct {
	CapacityKW               float64         `json:"capacity_kw"`
	Country                  string          `json:"country"`
	Electricity              ElectricityData `json:"electricity_data"`
	OMCostOverridePercent    *float64        `json:"om_cost_override_percent,omitempty"`
	FirstYearOutputKWh       float64         `json:"first_year_output_kwh"`
	AnnualDegradationPercent *float64        `json:"annual_degradation_percent,omitempty"`
	HorizonYears             int             `json:"horizon_years,omitempty"`
	DiscountRatePercent      *float64        `json:"discount_rate_percent,omitempty"`
}

// ProjectEvaluation packages the resolved intermediate structures with the
// final metrics so consumers see the cost and O&M assumptions that were used.
type ProjectEvaluation struct {
	Settings    Settings         `json:"settings"`
	ProjectCost ProjectCost      `json:"project_cost"`
	OMParams    OMParams         `json:"om_params"`
	Metrics     FinancialMetrics `json:"metrics"`
}

// EvaluateProject resolves a request end to end: regional settings, project
// cost, O&M parameters, then the full metrics run. Percent-denominated
// request fields are converted to fractions here, at the boundary.
func (c *Calculator) EvaluateProject(req ProjectRequest) ProjectEvaluation {
	cost := c.ProjectCost(req.CapacityKW)
	om := c.OMParameters(cost.BaseCostLocal)

	if req.OMCostOverridePercent != nil {
		om.YearlyOMCost = cost.BaseCostLocal * (*req.OMCostOverridePercent / 100)
	}

	electricity := req.Electricity
	input := MetricsInput{
		Electricity:      &electricity,
		ProjectCost:      cost.BaseCostLocal,
		OM:               &om,
		YearlyGeneration: req.FirstYearOutputKWh,
		HorizonYears:     req.HorizonYears,
	}
	if req.AnnualDegradationPercent != nil {
		d := *req.AnnualDegradationPercent / 100
		input.AnnualDegradation = &d
	}
	if req.DiscountRatePercent != nil {
		r := *req.DiscountRatePercent / 100
		input.DiscountRate = &r
	}
	metrics := c.CalculateFinancialMetrics(input)

	return ProjectEvaluation{
		Settings:    c.Settings(),
		ProjectCost: cost,
		OMParams:    om,
		Metrics:     metrics,
	}
}
