package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/osteria/tillbook/internal/domain"
)

// ExpenseGenerator posts ledger entries for recurring expense schedules
// that have come due.
type ExpenseGenerator interface {
	GenerateDue(ctx context.Context, now time.Time) ([]*domain.Transaction, error)
}

// RecurringWorker periodically fires due recurring expenses so rent and
// subscription entries appear without anyone logging them by hand.
type RecurringWorker struct {
	generator ExpenseGenerator
	logger    *slog.Logger
	interval  time.Duration
}

// NewRecurringWorker creates a new RecurringWorker.
func NewRecurringWorker(generator ExpenseGenerator, logger *slog.Logger, interval time.Duration) *RecurringWorker {
	if logger == nil {
		logger = slog.Default()
	}
	if interval == 0 {
		interval = 15 * time.Minute
	}
	return &RecurringWorker{
		generator: generator,
		logger:    logger,
		interval:  interval,
	}
}

// Start begins the recurring expense worker.
// It runs continuously until the context is cancelled.
func (w *RecurringWorker) Start(ctx context.Context) error {
	w.logger.Info("recurring expense worker started",
		slog.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Process immediately on start
	w.run(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("recurring expense worker shutting down")
			return ctx.Err()
		case <-ticker.C:
			w.run(ctx)
		}
	}
}

func (w *RecurringWorker) run(ctx context.Context) {
	created, err := w.generator.GenerateDue(ctx, time.Now())
	if err != nil {
		w.logger.Error("error generating recurring expenses", slog.String("error", err.Error()))
	}
	if len(created) > 0 {
		w.logger.Info("recurring expenses generated", slog.Int("count", len(created)))
	}
}
