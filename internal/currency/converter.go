// Package currency converts amounts between currencies using a configured
// rate table. Missing direct rates are bridged through the base currency.
package currency

import (
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"FINTRACK_BACK-END/internal/config"
)

var ErrUnknownPair = errors.New("no exchange rate for currency pair")

// Conversion is the result of converting an amount.
type Conversion struct {
	From   string
	To     string
	Amount decimal.Decimal
	Rate   decimal.Decimal
	Result decimal.Decimal
}

type Converter struct {
	base  string
	rates map[string]map[string]decimal.Decimal
}

func NewConverter(rc *config.RatesConfig) *Converter {
	c := &Converter{
		base:  strings.ToUpper(rc.Base),
		rates: make(map[string]map[string]decimal.Decimal, len(rc.Rates)),
	}
	for from, row := range rc.Rates {
		c.rates[from] = make(map[string]decimal.Decimal, len(row))
		for to, r := range row {
			c.rates[from][to] = decimal.NewFromFloat(r)
		}
	}
	return c
}

// Base is the pivot currency.
func (c *Converter) Base() string { return c.base }

// Rate returns how many units of to one unit of from buys.
func (c *Converter) Rate(from, to string) (decimal.Decimal, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	if r, ok := c.direct(from, to); ok {
		return r, nil
	}
	toBase, ok1 := c.direct(from, c.base)
	fromBase, ok2 := c.direct(c.base, to)
	if ok1 && ok2 {
		return toBase.Mul(fromBase), nil
	}
	return decimal.Zero, ErrUnknownPair
}

// direct looks up from->to, falling back to the inverse of to->from.
func (c *Converter) direct(from, to string) (decimal.Decimal, bool) {
	if r, ok := c.rates[from][to]; ok {
		return r, true
	}
	if r, ok := c.rates[to][from]; ok && r.IsPositive() {
		return decimal.NewFromInt(1).DivRound(r, 8), true
	}
	return decimal.Zero, false
}

// Convert converts amount; the rate is rounded to 4 places and the result to 2.
func (c *Converter) Convert(amount decimal.Decimal, from, to string) (Conversion, error) {
	rate, err := c.Rate(from, to)
	if err != nil {
		return Conversion{}, err
	}
	rate = rate.Round(4)
	return Conversion{
		From:   strings.ToUpper(from),
		To:     strings.ToUpper(to),
		Amount: amount,
		Rate:   rate,
		Result: amount.Mul(rate).Round(2),
	}, nil
}

// Currencies lists every currency that appears in the table, sorted.
func (c *Converter) Currencies() []string {
	seen := map[string]struct{}{c.base: {}}
	for from, row := range c.rates {
		seen[from] = struct{}{}
		for to := range row {
			seen[to] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Table returns a copy of the configured direct rates.
func (c *Converter) Table() map[string]map[string]decimal.Decimal {
	out := make(map[string]map[string]decimal.Decimal, len(c.rates))
	for from, row := range c.rates {
		out[from] = make(map[string]decimal.Decimal, len(row))
		for to, r := range row {
			out[from][to] = r
		}
	}
	return out
}
