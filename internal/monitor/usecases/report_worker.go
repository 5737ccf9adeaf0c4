package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"climate-monitor/internal/infra/async"

	"github.com/robfig/cron/v3"
)

func NewReportWorker(ticker *time.Ticker, schedule string, repository ReadingRepository) (*ReportWorker, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	spec, err := parser.Parse(schedule)
	if err != nil {
		return nil, fmt.Errorf("parsing report schedule %q: %w", schedule, err)
	}

	return &ReportWorker{
		ticker:     ticker,
		schedule:   spec,
		repository: repository,
		now:        time.Now,
	}, nil
}

var _ async.Worker = &ReportWorker{}

// ReportWorker logs a summary of the stored readings every time the cron
// schedule fires. Each summary covers the readings since the previous one.
type ReportWorker struct {
	ticker     *time.Ticker
	schedule   cron.Schedule
	repository ReadingRepository
	now        func() time.Time

	mu         sync.Mutex
	lastReport time.Time
	nextRun    time.Time
}

// WithClock replaces the time source used to evaluate the schedule.
func (w *ReportWorker) WithClock(now func() time.Time) *ReportWorker {
	w.now = now
	return w
}

func (w *ReportWorker) Run(ctx context.Context, done func()) {
	slog.Debug("report worker started")
	defer done()

	w.mu.Lock()
	w.lastReport = w.now()
	w.nextRun = w.schedule.Next(w.lastReport)
	w.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			slog.Info("report worker cancelled")
			return
		case <-w.ticker.C:
			w.Tick(ctx)
		}
	}
}

func (w *ReportWorker) Shutdown() {
	slog.Info("report worker shutdown")
	w.ticker.Stop()
}

// Tick reports when the schedule is due. It returns whether a report was
// produced.
func (w *ReportWorker) Tick(ctx context.Context) bool {
	now := w.now()

	w.mu.Lock()
	if w.nextRun.IsZero() {
		w.lastReport = now
		w.nextRun = w.schedule.Next(now)
	}
	if now.Before(w.nextRun) {
		w.mu.Unlock()
		return false
	}
	since := w.lastReport
	w.lastReport = now
	w.nextRun = w.schedule.Next(now)
	w.mu.Unlock()

	summary, err := w.repository.Summarize(ctx, since)
	if err != nil {
		slog.Error("summarizing readings", slog.Time("since", since), slog.Any("error", err))
		return false
	}

	if summary.IsEmpty() {
		slog.Info("📊 no readings since last report", slog.Time("since", since))
		return true
	}

	slog.Info("📊 reading report",
		slog.Time("since", since),
		slog.Int64("count", summary.Count),
		slog.Float64("temperature_min", summary.TempMin),
		slog.Float64("temperature_max", summary.TempMax),
		slog.Float64("temperature_avg", summary.TempAvg),
		slog.Float64("humidity_min", summary.HumMin),
		slog.Float64("humidity_max", summary.HumMax),
		slog.Float64("humidity_avg", summary.HumAvg))
	return true
}
