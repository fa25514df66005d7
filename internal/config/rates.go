package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RatesConfig is the exchange rate table, read from CURRENCY_RATES_FILE.
// Rates[from][to] is how many units of "to" one unit of "from" buys.
type RatesConfig struct {
	Base  string                        `yaml:"base"`
	Rates map[string]map[string]float64 `yaml:"rates"`
}

// DefaultRates is used when no rates file is configured.
func DefaultRates() *RatesConfig {
	return &RatesConfig{
		Base: "USD",
		Rates: map[string]map[string]float64{
			"USD": {"EUR": 0.92, "GBP": 0.79, "JPY": 149.5, "CAD": 1.36, "AUD": 1.52, "INR": 83.1, "CNY": 7.24},
			"EUR": {"USD": 1.09, "GBP": 0.86, "JPY": 162.8},
			"GBP": {"USD": 1.27, "EUR": 1.16, "JPY": 189.4},
		},
	}
}

// LoadRates reads a YAML rates file. An empty path yields DefaultRates.
func LoadRates(path string) (*RatesConfig, error) {
	if path == "" {
		return DefaultRates(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rates: %w", err)
	}
	var rc RatesConfig
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return nil, fmt.Errorf("parsing rates: %w", err)
	}
	if err := rc.normalize(); err != nil {
		return nil, err
	}
	return &rc, nil
}

func (rc *RatesConfig) normalize() error {
	rc.Base = strings.ToUpper(strings.TrimSpace(rc.Base))
	if rc.Base == "" {
		rc.Base = "USD"
	}
	out := make(map[string]map[string]float64, len(rc.Rates))
	for from, row := range rc.Rates {
		from = strings.ToUpper(strings.TrimSpace(from))
		if out[from] == nil {
			out[from] = make(map[string]float64, len(row))
		}
		for to, rate := range row {
			if rate <= 0 {
				return fmt.Errorf("rate %s->%s must be positive", from, to)
			}
			out[from][strings.ToUpper(strings.TrimSpace(to))] = rate
		}
	}
	rc.Rates = out
	return nil
}
