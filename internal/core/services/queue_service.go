package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sgpaytech/cpf_payroll_app/internal/apperrors"
	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
	portsrepo "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/repositories"
	portssvc "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/services"
	"github.com/sgpaytech/cpf_payroll_app/internal/middleware"
)

// queueService is the durable, deduplicated queue of payroll-run requests. One live job
// per (organization, year, month) key; terminal jobs release the key for resubmission.
type queueService struct {
	jobRepo portsrepo.JobRepositoryFacade
}

// NewQueueService creates a new QueueService.
func NewQueueService(jobRepo portsrepo.JobRepositoryFacade) portssvc.QueueSvcFacade {
	return &queueService{jobRepo: jobRepo}
}

var _ portssvc.QueueSvcFacade = (*queueService)(nil)

// Submit implements portssvc.QueueSvcFacade. Submission returns immediately; the caller
// polls Status for progress and the terminal result.
func (s *queueService) Submit(ctx context.Context, req domain.PayrollRunRequest) (*domain.PayrollJob, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	jobKey := req.JobKey()

	existing, err := s.jobRepo.FindLiveJobByKey(ctx, jobKey)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing payroll job: %w", err)
	}
	if existing != nil {
		logger.Info("Duplicate payroll submission rejected",
			slog.String("job_key", jobKey),
			slog.String("existing_job_id", existing.JobID),
			slog.String("existing_state", string(existing.State)))
		return nil, &apperrors.DuplicateJobError{JobID: existing.JobID, State: string(existing.State)}
	}

	now := time.Now().UTC()
	job := domain.PayrollJob{
		JobID:    uuid.NewString(),
		JobKey:   jobKey,
		State:    domain.JobWaiting,
		Progress: 0,
		Data:     req,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.jobRepo.SaveJob(ctx, job); err != nil {
		// Lost a race with a concurrent submission for the same key: surface the winner.
		if errors.Is(err, apperrors.ErrDuplicate) {
			if winner, findErr := s.jobRepo.FindLiveJobByKey(ctx, jobKey); findErr == nil && winner != nil {
				return nil, &apperrors.DuplicateJobError{JobID: winner.JobID, State: string(winner.State)}
			}
		}
		return nil, fmt.Errorf("failed to enqueue payroll job: %w", err)
	}

	logger.Info("Payroll job enqueued", slog.String("job_id", job.JobID), slog.String("job_key", jobKey))
	return &job, nil
}

// Status implements portssvc.QueueSvcFacade.
func (s *queueService) Status(ctx context.Context, jobID string) (*domain.PayrollJob, error) {
	return s.jobRepo.FindJobByID(ctx, jobID)
}

// Cancel implements portssvc.QueueSvcFacade. Only a job that has not yet started can be
// removed; an active job has no cancellation point.
func (s *queueService) Cancel(ctx context.Context, jobID string) (portssvc.CancelResult, error) {
	job, err := s.jobRepo.FindJobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return portssvc.CancelResult{Success: false, Reason: "Job not found"}, nil
		}
		return portssvc.CancelResult{}, err
	}

	switch job.State {
	case domain.JobCompleted:
		return portssvc.CancelResult{Success: false, Reason: "Job already completed"}, nil
	case domain.JobFailed:
		return portssvc.CancelResult{Success: false, Reason: "Job already failed"}, nil
	case domain.JobActive:
		return portssvc.CancelResult{Success: false, Reason: "Job already started"}, nil
	}

	if err := s.jobRepo.DeleteJob(ctx, jobID); err != nil {
		return portssvc.CancelResult{Success: false, Reason: err.Error()}, nil
	}
	return portssvc.CancelResult{Success: true}, nil
}

// Cleanup implements portssvc.QueueSvcFacade. Garbage collection of terminal jobs; not
// part of the hot path.
func (s *queueService) Cleanup(ctx context.Context, daysToKeep int) (int64, error) {
	if daysToKeep <= 0 {
		daysToKeep = 30
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -daysToKeep)
	removed, err := s.jobRepo.DeleteFinishedJobsBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up old payroll jobs: %w", err)
	}
	return removed, nil
}

// Metrics implements portssvc.QueueSvcFacade.
func (s *queueService) Metrics(ctx context.Context) (domain.QueueMetrics, error) {
	return s.jobRepo.CountJobsByState(ctx)
}
