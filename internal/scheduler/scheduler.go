package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/config"
	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/repository/sheets"
	"github.com/mamadbah2/dairy/internal/service/notify"
	"github.com/mamadbah2/dairy/internal/service/reporting"
)

// ReportSource is the subset of the reporting service the jobs need.
type ReportSource interface {
	DashboardSummary(ctx context.Context, req reporting.DashboardRequest) (*models.DashboardSummary, error)
	BuyerPurchases(ctx context.Context, req reporting.ExportRequest) (*reporting.BuyerExport, error)
}

// SnapshotStore persists nightly snapshots.
type SnapshotStore interface {
	SaveDailySnapshot(ctx context.Context, snapshot models.DailySnapshot) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	cfg       config.ReportingConfig
	reports   ReportSource
	snapshots SnapshotStore
	notifier  notify.Notifier
	sheets    sheets.Repository
	logger    *zap.Logger
	now       func() time.Time
}

// Option customizes optional collaborators.
type Option func(*Scheduler)

// WithNotifier enables the nightly WhatsApp digest.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Scheduler) { s.notifier = n }
}

// WithSheets enables the monthly spreadsheet sync.
func WithSheets(r sheets.Repository) Option {
	return func(s *Scheduler) { s.sheets = r }
}

// NewScheduler creates a new scheduler instance. Jobs run in cfg.Timezone.
func NewScheduler(cfg config.ReportingConfig, reports ReportSource, snapshots SnapshotStore, logger *zap.Logger, opts ...Option) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	s := &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		cfg:       cfg,
		reports:   reports,
		snapshots: snapshots,
		logger:    logger,
		now:       func() time.Time { return time.Now().In(loc) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("nightly", s.cfg.CronSchedule), zap.String("timezone", s.cfg.Timezone))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.job("nightly_snapshot", s.RunNightly)); err != nil {
		return fmt.Errorf("schedule nightly snapshot: %w", err)
	}

	if s.sheets != nil && s.cfg.SheetsSyncSchedule != "" {
		if _, err := s.cron.AddFunc(s.cfg.SheetsSyncSchedule, s.job("sheets_sync", s.RunSheetSync)); err != nil {
			return fmt.Errorf("schedule sheets sync: %w", err)
		}
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) job(name string, run func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		s.logger.Info("job started", zap.String("job", name))
		if err := run(ctx); err != nil {
			s.logger.Error("job failed", zap.String("job", name), zap.Error(err))
			return
		}
		s.logger.Info("job finished", zap.String("job", name))
	}
}

// RunNightly stores today's snapshot and, when enabled, sends the digest.
// A failed digest does not undo the stored snapshot.
func (s *Scheduler) RunNightly(ctx context.Context) error {
	summary, err := s.reports.DashboardSummary(ctx, reporting.DashboardRequest{TrendPeriod: string(reporting.PeriodWeekly)})
	if err != nil {
		return fmt.Errorf("compute summary: %w", err)
	}

	if err := s.snapshots.SaveDailySnapshot(ctx, SnapshotFrom(summary)); err != nil {
		return err
	}

	if s.notifier == nil {
		return nil
	}
	if err := s.notifier.SendDigest(ctx, summary); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	return nil
}

// RunSheetSync writes last month's buyer purchases into a dedicated tab.
func (s *Scheduler) RunSheetSync(ctx context.Context) error {
	if s.sheets == nil {
		return nil
	}

	year, month := previousMonth(s.now())
	export, err := s.reports.BuyerPurchases(ctx, reporting.ExportRequest{Year: year, Month: int(month)})
	if err != nil {
		return fmt.Errorf("build buyer export: %w", err)
	}

	records := export.Records()
	rows := make([][]interface{}, 0, len(records))
	for _, record := range records {
		row := make([]interface{}, len(record))
		for i, v := range record {
			row[i] = v
		}
		rows = append(rows, row)
	}

	tab := fmt.Sprintf("Buyers-%d-%02d", export.Year, int(export.Month))
	if err := s.sheets.ReplaceTab(ctx, tab, rows); err != nil {
		return fmt.Errorf("write tab %s: %w", tab, err)
	}
	s.logger.Info("buyer purchases synced", zap.String("tab", tab), zap.Int("rows", len(export.Rows)))
	return nil
}

// SnapshotFrom flattens a summary into its stored form.
func SnapshotFrom(summary *models.DashboardSummary) models.DailySnapshot {
	return models.DailySnapshot{
		Date:               summary.GeneratedAt.UTC().Format("2006-01-02"),
		DailyExpenses:      summary.DailyExpenses.InexactFloat64(),
		DailySalesQuantity: summary.DailySales.Quantity.InexactFloat64(),
		DailySalesAmount:   summary.DailySales.Amount.InexactFloat64(),
		MonthlySalesAmount: summary.MonthlySales.Amount.InexactFloat64(),
		Transactions:       summary.DailySales.Transactions,
		CreatedAt:          time.Now().UTC(),
	}
}

func previousMonth(t time.Time) (int, time.Month) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	prev := first.AddDate(0, -1, 0)
	return prev.Year(), prev.Month()
}
