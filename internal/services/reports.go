package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"FINTRACK_BACK-END/internal/apperrors"
	"FINTRACK_BACK-END/internal/finance"
	"FINTRACK_BACK-END/internal/store"
)

type ReportService struct {
	store *store.Store
	now   func() time.Time
}

func NewReportService(st *store.Store) *ReportService {
	return &ReportService{store: st, now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// Build aggregates the user's transactions for timeframe after applying p.
func (s *ReportService) Build(ctx context.Context, userID uuid.UUID, timeframe string, p FilterParams) (*finance.Report, error) {
	tf, err := finance.ParseTimeframe(timeframe)
	if err != nil {
		return nil, apperrors.Validation("Invalid timeframe. Use week, month, quarter, year or all")
	}
	filter, err := BuildFilter(p)
	if err != nil {
		return nil, err
	}

	txs, err := s.store.Transactions.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	budgets, err := s.store.Budgets.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	report := finance.BuildReport(txs, budgets, tf, filter, s.now())
	return &report, nil
}
