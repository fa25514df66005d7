package services

import (
	"strings"

	"FINTRACK_BACK-END/internal/apperrors"
	"FINTRACK_BACK-END/internal/finance"
	"FINTRACK_BACK-END/internal/utils"
)

// FilterParams are the raw query-string filters shared by the transaction
// list and reports.
type FilterParams struct {
	Category  string
	StartDate string
	EndDate   string
	Search    string
	Type      string
}

// BuildFilter validates p. A plain-date end bound covers that whole day.
func BuildFilter(p FilterParams) (finance.Filter, error) {
	f := finance.Filter{
		Category: strings.TrimSpace(p.Category),
		Search:   strings.TrimSpace(p.Search),
	}

	t, err := finance.ParseTxType(p.Type)
	if err != nil {
		return f, apperrors.Validation("Invalid type. Use income, expense or all")
	}
	f.Type = t

	if p.StartDate != "" {
		start, _, err := utils.ParseDate(p.StartDate)
		if err != nil {
			return f, apperrors.Validation("Invalid startDate. Use YYYY-MM-DD")
		}
		f.Start = &start
	}
	if p.EndDate != "" {
		end, dateOnly, err := utils.ParseDate(p.EndDate)
		if err != nil {
			return f, apperrors.Validation("Invalid endDate. Use YYYY-MM-DD")
		}
		if dateOnly {
			end = utils.EndOfDay(end)
		}
		f.End = &end
	}
	if f.Start != nil && f.End != nil && f.End.Before(*f.Start) {
		return f, apperrors.Validation("endDate must not be before startDate")
	}
	return f, nil
}
