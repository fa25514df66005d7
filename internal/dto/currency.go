package dto

import "github.com/shopspring/decimal"

// RatesResponse lists the configured currencies and direct rates
type RatesResponse struct {
	Base       string                                `json:"base"`
	Currencies []string                              `json:"currencies"`
	Rates      map[string]map[string]decimal.Decimal `json:"rates" swaggertype:"object"`
}

// ConversionResponse is the body of GET /currency/convert
type ConversionResponse struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount" swaggertype:"number"`
	Rate   decimal.Decimal `json:"rate" swaggertype:"number"`
	Result decimal.Decimal `json:"result" swaggertype:"number"`
}
