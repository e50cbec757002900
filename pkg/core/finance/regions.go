package finance

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// CurrencyInfo describes one supported currency and the country it is the
// default currency for.
type CurrencyInfo struct {
	Name    string `yaml:"name"`
	Symbol  string `yaml:"symbol"`
	Country string `yaml:"country"`
}

// RegionalProfile is the static reference data for one pricing region.
// Monetary baselines are USD; percentages are whole percents (1.5 = 1.5%).
type RegionalProfile struct {
	Countries         []string `yaml:"countries"`
	CostPerKW         float64  `yaml:"cost_per_kw"`
	OMCostPercent     float64  `yaml:"om_cost_percent"`
	DefaultTariff     float64  `yaml:"default_tariff"`
	DefaultEscalation float64  `yaml:"default_escalation"`
}

// Currencies maps ISO codes to currency metadata.
var Currencies = map[string]CurrencyInfo{
	"USD": {Name: "US Dollar", Symbol: "$", Country: "United States"},
	"EUR": {Name: "Euro", Symbol: "€", Country: "Germany"},
	"GBP": {Name: "British Pound", Symbol: "£", Country: "United Kingdom"},
	"INR": {Name: "Indian Rupee", Symbol: "₹", Country: "India"},
	"AED": {Name: "UAE Dirham", Symbol: "د.إ", Country: "United Arab Emirates"},
	"OMR": {Name: "Omani Rial", Symbol: "ر.ع.", Country: "Oman"},
	"SAR": {Name: "Saudi Riyal", Symbol: "ر.س", Country: "Saudi Arabia"},
	"JPY": {Name: "Japanese Yen", Symbol: "¥", Country: "Japan"},
	"CAD": {Name: "Canadian Dollar", Symbol: "C$", Country: "Canada"},
	"AUD": {Name: "Australian Dollar", Symbol: "A$", Country: "Australia"},
}

// DefaultRegion is used when a country cannot be matched to any region.
const DefaultRegion = "North America"

// RegionCosts holds the baseline installation economics per region.
// It is reference data: resolved profiles are copied into calculator settings,
// so currency updates never mutate this table.
var RegionCosts = map[string]RegionalProfile{
	"North America": {
		Countries:         []string{"United States", "Canada"},
		CostPerKW:         2800,
		OMCostPercent:     1.5,
		DefaultTariff:     0.15,
		DefaultEscalation: 2.5,
	},
	"Europe": {
		Countries:         []string{"Germany", "France", "United Kingdom", "Spain", "Italy"},
		CostPerKW:         1800,
		OMCostPercent:     1.2,
		DefaultTariff:     0.25,
		DefaultEscalation: 2.0,
	},
	"Asia": {
		Countries:         []string{"India", "China", "Japan", "Singapore"},
		CostPerKW:         1200,
		OMCostPercent:     1.0,
		DefaultTariff:     0.10,
		DefaultEscalation: 3.0,
	},
	"Middle East": {
		Countries:         []string{"United Arab Emirates", "Saudi Arabia", "Oman", "Qatar"},
		CostPerKW:         1400,
		OMCostPercent:     1.8,
		DefaultTariff:     0.08,
		DefaultEscalation: 2.0,
	},
	"Australia & Oceania": {
		Countries:         []string{"Australia", "New Zealand"},
		CostPerKW:         2000,
		OMCostPercent:     1.3,
		DefaultTariff:     0.22,
		DefaultEscalation: 2.2,
	},
}

// RegionForCountry finds the region listing the country as a member.
// Unknown or empty countries fall back to DefaultRegion; there is no error path.
func RegionForCountry(country string) (string, RegionalProfile) {
	for name, profile := range RegionCosts {
		for _, c := range profile.Countries {
			if c == country {
				return name, profile
			}
		}
	}
	return DefaultRegion, RegionCosts[DefaultRegion]
}

// CurrencyForCountry returns the code of the currency whose designated
// country matches, falling back to USD.
func CurrencyForCountry(country string) string {
	for code, info := range Currencies {
		if info.Country == country {
			return code
		}
	}
	return "USD"
}

// CurrencySymbol returns the display symbol for a code, or the code itself
// when the currency is unknown.
func CurrencySymbol(code string) string {
	if info, ok := Currencies[code]; ok {
		return info.Symbol
	}
	return code
}

// regionConfig is the YAML shape of an overrides file.
type regionConfig struct {
	Regions    map[string]RegionalProfile `yaml:"regions"`
	Currencies map[string]CurrencyInfo    `yaml:"currencies"`
}

// LoadRegionOverrides merges region and currency overrides from a YAML file
// into the built-in tables. A missing file is not an error: the defaults stand.
func LoadRegionOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read region config: %w", err)
	}

	var cfg regionConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse region config: %w", err)
	}

	for name, profile := range cfg.Regions {
		RegionCosts[name] = profile
	}
	for code, info := range cfg.Currencies {
		Currencies[code] = info
	}
	return nil
}
