package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
	portsrepo "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/repositories"
	portssvc "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/services"
)

const (
	claimStartProgress    = 10
	cleanupInterval       = 24 * time.Hour
	terminalRecordTimeout = 30 * time.Second
)

// terminalCtx detaches from ctx's cancellation, bounded by its own timeout. Terminal
// state writes use it so a run aborted by shutdown still lands in a terminal state
// instead of holding its dedup key as active forever.
func terminalCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), terminalRecordTimeout)
}

// PayrollWorker drains the job queue one job at a time. Single-concurrency is a domain
// requirement: period creation is serialized so duplicate-period conflicts cannot race.
type PayrollWorker struct {
	jobRepo       portsrepo.JobRepositoryFacade
	processor     portssvc.PayrollProcessorSvc
	rates         portssvc.RateProvider
	queue         portssvc.QueueSvcFacade
	logger        *slog.Logger
	pollInterval  time.Duration
	retentionDays int

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// NewPayrollWorker creates a stopped worker. Call Start to begin polling.
func NewPayrollWorker(
	jobRepo portsrepo.JobRepositoryFacade,
	processor portssvc.PayrollProcessorSvc,
	rates portssvc.RateProvider,
	queue portssvc.QueueSvcFacade,
	logger *slog.Logger,
	pollInterval time.Duration,
	retentionDays int,
) *PayrollWorker {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &PayrollWorker{
		jobRepo:       jobRepo,
		processor:     processor,
		rates:         rates,
		queue:         queue,
		logger:        logger,
		pollInterval:  pollInterval,
		retentionDays: retentionDays,
	}
}

// Start launches the polling loop on its own goroutine. The loop claims at most one job
// per tick, which bounds throughput at one run per poll interval.
func (w *PayrollWorker) Start(ctx context.Context) {
	// Jobs left active by a previous shutdown or crash can never be claimed again;
	// move them back to waiting before polling begins.
	if requeued, err := w.jobRepo.RequeueActiveJobs(ctx); err != nil {
		w.logger.Error("Failed to requeue stale active jobs", slog.String("error", err.Error()))
	} else if requeued > 0 {
		w.logger.Info("Requeued stale active jobs", slog.Int64("requeued", requeued))
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})

	go w.run(runCtx)
	w.logger.Info("Payroll worker started", slog.Duration("poll_interval", w.pollInterval))
}

// Stop signals the loop to exit and waits for the in-flight job, if any, to finish.
func (w *PayrollWorker) Stop() {
	w.once.Do(func() {
		if w.cancel != nil {
			w.cancel()
		}
		if w.done != nil {
			<-w.done
		}
		w.logger.Info("Payroll worker stopped")
	})
}

func (w *PayrollWorker) run(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	cleanupTicker := time.NewTicker(cleanupInterval)
	defer cleanupTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cleanupTicker.C:
			w.cleanup(ctx)
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

// tick claims and fully processes at most one waiting job.
func (w *PayrollWorker) tick(ctx context.Context) {
	job, err := w.jobRepo.ClaimNextWaitingJob(ctx, claimStartProgress)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Error("Failed to claim payroll job", slog.String("error", err.Error()))
		}
		return
	}
	if job == nil {
		return
	}

	logger := w.logger.With(
		slog.String("job_id", job.JobID),
		slog.String("job_key", job.JobKey),
		slog.String("organization_id", job.Data.OrganizationID),
		slog.Int("year", job.Data.Year),
		slog.Int("month", job.Data.Month),
	)
	logger.Info("Processing payroll job")

	if err := w.process(ctx, job); err != nil {
		logger.Error("Payroll job failed", slog.String("error", err.Error()))
		failCtx, cancel := terminalCtx(ctx)
		defer cancel()
		if failErr := w.jobRepo.FailJob(failCtx, job.JobID, err.Error(), time.Now().UTC()); failErr != nil {
			logger.Error("Failed to record job failure", slog.String("error", failErr.Error()))
		}
		return
	}
	logger.Info("Payroll job completed")
}

func (w *PayrollWorker) process(ctx context.Context, job *domain.PayrollJob) error {
	// Rates are refreshed per run so a restarted source never serves a stale schedule
	// to a long-lived worker.
	if err := w.rates.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to refresh contribution rates: %w", err)
	}

	outcome, err := w.processor.ProcessPayroll(ctx, job.Data)
	if err != nil {
		return err
	}

	recordCtx, cancel := terminalCtx(ctx)
	defer cancel()

	if err := w.jobRepo.UpdateJobProgress(recordCtx, job.JobID, 100); err != nil {
		w.logger.Warn("Failed to update job progress", slog.String("job_id", job.JobID), slog.String("error", err.Error()))
	}

	result := domain.PayrollRunResult{
		OrganizationID: job.Data.OrganizationID,
		Year:           job.Data.Year,
		Month:          job.Data.Month,
		Processed:      outcome.Processed,
		CompletedAt:    time.Now().UTC(),
	}
	if err := w.jobRepo.CompleteJob(recordCtx, job.JobID, result, result.CompletedAt); err != nil {
		return fmt.Errorf("failed to record job completion: %w", err)
	}
	return nil
}

func (w *PayrollWorker) cleanup(ctx context.Context) {
	removed, err := w.queue.Cleanup(ctx, w.retentionDays)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Error("Job cleanup failed", slog.String("error", err.Error()))
		}
		return
	}
	if removed > 0 {
		w.logger.Info("Removed old payroll jobs", slog.Int64("removed", removed))
	}
}
