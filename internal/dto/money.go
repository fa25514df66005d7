package dto

import "github.com/shopspring/decimal"

func init() {
	// amounts travel as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true
}
