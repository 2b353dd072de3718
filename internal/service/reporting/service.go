package reporting

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/pkg/metrics"
)

// TransactionReader loads milk transactions.
type TransactionReader interface {
	FindMilkTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.MilkTransaction, error)
}

// CharaReader loads fodder purchases dated within [from, to].
type CharaReader interface {
	FindCharaPurchases(ctx context.Context, from, to time.Time) ([]models.CharaPurchase, error)
}

// AnimalReader loads livestock transactions dated within [from, to].
type AnimalReader interface {
	FindAnimalTransactions(ctx context.Context, from, to time.Time) ([]models.AnimalTransaction, error)
}

// UserReader looks up registered users by mobile number. FindUserByMobile
// returns nil without error when nobody is registered under mobile.
type UserReader interface {
	FindUserByMobile(ctx context.Context, mobile string) (*models.User, error)
	FindUsersByMobiles(ctx context.Context, mobiles []string) ([]models.User, error)
}

// Store bundles every read collaborator the reporting engine needs.
type Store interface {
	TransactionReader
	CharaReader
	AnimalReader
	UserReader
}

// Service computes dashboard summaries, exports and profit & loss reports.
// It never writes to the store and keeps no state between calls.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new reporting service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// WithClock overrides the reference clock. Intended for tests and backfills.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) observe(report string, started time.Time, err error) {
	metrics.ObserveReport(report, time.Since(started), err)
	if err != nil {
		s.logger.Error("report failed", zap.String("report", report), zap.Error(err))
		return
	}
	s.logger.Debug("report computed", zap.String("report", report), zap.Duration("duration", time.Since(started)))
}
