package finance

import (
	"encoding/json"
	"math"
)

// System types supported by the engine. The distinction only changes whether
// the yearly cash value is labelled revenue or savings; the magnitude is the same.
const (
	SystemGridExport = "Grid Export Only"
	SystemCaptive    = "Captive Consumption"
)

// Tariff kinds.
const (
	TariffTypeFlat = "flat"
	TariffTypeSlab = "slab"
)

// TariffSlab is one tier of a slab tariff. Units is the cumulative threshold
// up to which Rate applies; the tier's own capacity is Units minus the
// previous tier's Units.
type TariffSlab struct {
	Units float64 `json:"units"`
	Rate  float64 `json:"rate"`
}

// Tariff is either a flat per-kWh rate or an ordered list of slabs.
// Exactly one of Rate/Slabs is populated, selected by Type.
type Tariff struct {
	Type  string       `json:"type"`
	Rate  float64      `json:"rate,omitempty"`
	Slabs []TariffSlab `json:"slabs,omitempty"`
}

// ElectricityData describes the energy profile feeding the projection.
type ElectricityData struct {
	SystemType   string  `json:"system_type"`
	Tariff       Tariff  `json:"tariff"`
	YearlyAmount float64 `json:"yearly_amount"`
}

// ProjectCost is the capital cost of the system in USD and in the active currency.
// Invariant: BaseCostLocal = BaseCostUSD * exchange rate after every currency update.
type ProjectCost struct {
	BaseCostUSD    float64 `json:"base_cost_usd"`
	BaseCostLocal  float64 `json:"base_cost_local"`
	CostPerKWUSD   float64 `json:"cost_per_kw_usd"`
	CostPerKWLocal float64 `json:"cost_per_kw_local"`
	Currency       string  `json:"currency"`
	CurrencySymbol string  `json:"currency_symbol"`
}

// OMParams holds the yearly O&M cost (active currency) and the two
// independent escalation rates, both stored as fractions (0.03 = 3%).
type OMParams struct {
	YearlyOMCost     float64 `json:"yearly_om_cost"`
	OMEscalation     float64 `json:"om_escalation"`
	TariffEscalation float64 `json:"tariff_escalation"`
}

// FinancialInputs bundles the structures a currency update rescales in place.
// Any nil member is skipped.
type FinancialInputs struct {
	ProjectCost *ProjectCost     `json:"project_cost,omitempty"`
	OMParams    *OMParams        `json:"om_params,omitempty"`
	Electricity *ElectricityData `json:"electricity_data,omitempty"`
}

// YearlyDetail is one row of the cash-flow table. Exactly one of
// Revenue/Savings is populated, chosen by the system type.
type YearlyDetail struct {
	Year              int     `json:"year"`
	DegradationFactor float64 `json:"degradation_factor"`
	EnergyOutput      float64 `json:"energy_output"`
	Revenue           float64 `json:"revenue,omitempty"`
	Savings           float64 `json:"savings,omitempty"`
	OMCost            float64 `json:"om_cost"`
	NetCashFlow       float64 `json:"net_cash_flow"`
}

// CashValue returns whichever of Revenue/Savings is populated.
func (d YearlyDetail) CashValue() float64 {
	if d.Revenue != 0 {
		return d.Revenue
	}
	return d.Savings
}

// PaybackYears carries the payback period in fractional years. +Inf means the
// investment is never recovered within the horizon; it marshals as JSON null
// so API consumers do not have to parse a non-standard Infinity literal.
type PaybackYears float64

// Never reports whether the payback sentinel is set.
func (p PaybackYears) Never() bool {
	return math.IsInf(float64(p), 1)
}

func (p PaybackYears) MarshalJSON() ([]byte, error) {
	if p.Never() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(p))
}

func (p *PaybackYears) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = PaybackYears(math.Inf(1))
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = PaybackYears(v)
	return nil
}

// Summary aggregates the lifetime totals of the cash-flow table.
type Summary struct {
	TotalEnergy25Yr  float64 `json:"total_energy_25yr"`
	TotalRevenue25Yr float64 `json:"total_revenue_25yr"`
	TotalOMCost25Yr  float64 `json:"total_om_cost_25yr"`
	NetRevenue25Yr   float64 `json:"net_revenue_25yr"`
	RevenueType      string  `json:"revenue_type"`
}

// FinancialMetrics is the aggregate result of one calculation run.
// It is always fully populated; a failed calculation yields the zeroed
// default produced by defaultMetrics, never an error.
type FinancialMetrics struct {
	NPV               float64        `json:"npv"`
	IRR               float64        `json:"irr"`
	ROI               float64        `json:"roi"`
	PaybackPeriod     PaybackYears   `json:"payback_period"`
	DiscountedPayback PaybackYears   `json:"discounted_payback_period"`
	YearlyDetails     []YearlyDetail `json:"yearly_details"`
	CashFlows         []float64      `json:"cash_flows"`
	SystemType        string         `json:"system_type"`
	Summary           Summary        `json:"summary"`
}

// RevenueLabel maps a system type to the label used for its yearly cash value.
func RevenueLabel(systemType string) string {
	if systemType == SystemGridExport {
		return "Revenue"
	}
	return "Savings"
}
