package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"FINTRACK_BACK-END/internal/apperrors"
	"FINTRACK_BACK-END/internal/currency"
	"FINTRACK_BACK-END/internal/dto"
	"FINTRACK_BACK-END/internal/utils"
)

type CurrencyHandler struct {
	converter *currency.Converter
}

func NewCurrencyHandler(converter *currency.Converter) *CurrencyHandler {
	return &CurrencyHandler{converter: converter}
}

// Rates godoc
// @Summary      Exchange rate table
// @Tags         currency
// @Produce      json
// @Success      200  {object}  dto.RatesResponse
// @Router       /currency/rates [get]
func (h *CurrencyHandler) Rates(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.RatesResponse{
		Base:       h.converter.Base(),
		Currencies: h.converter.Currencies(),
		Rates:      h.converter.Table(),
	})
}

// Convert godoc
// @Summary      Convert an amount
// @Tags         currency
// @Produce      json
// @Param        from    query     string  true  "Source currency"
// @Param        to      query     string  true  "Target currency"
// @Param        amount  query     number  true  "Amount to convert"
// @Success      200  {object}  dto.ConversionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /currency/convert [get]
func (h *CurrencyHandler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from := strings.ToUpper(strings.TrimSpace(q.Get("from")))
	to := strings.ToUpper(strings.TrimSpace(q.Get("to")))
	if from == "" || to == "" {
		utils.WriteAppError(w, apperrors.Validation("from and to are required"))
		return
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(q.Get("amount")))
	if err != nil {
		utils.WriteAppError(w, apperrors.Validation("amount must be a number"))
		return
	}

	conv, err := h.converter.Convert(amount, from, to)
	if err != nil {
		if errors.Is(err, currency.ErrUnknownPair) {
			utils.WriteAppError(w, apperrors.NotFound("No exchange rate for "+from+" to "+to))
			return
		}
		utils.WriteAppError(w, apperrors.Internal(err))
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ConversionResponse{
		From:   conv.From,
		To:     conv.To,
		Amount: conv.Amount,
		Rate:   conv.Rate,
		Result: conv.Result,
	})
}
