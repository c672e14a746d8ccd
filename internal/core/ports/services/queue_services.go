package services

import (
	"context"

	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
)

// CancelResult is the structured outcome of a cancellation attempt.
type CancelResult struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

// QueueSvcFacade is the deduplicated durable queue of payroll-run requests.
type QueueSvcFacade interface {
	// Submit enqueues a new payroll job and returns it immediately. If a live
	// (non-terminal) job already holds the request's dedup key, Submit returns an
	// *apperrors.DuplicateJobError carrying the existing job's ID and state.
	Submit(ctx context.Context, req domain.PayrollRunRequest) (*domain.PayrollJob, error)

	// Status returns the job record for the given ID, or apperrors.ErrNotFound.
	Status(ctx context.Context, jobID string) (*domain.PayrollJob, error)

	// Cancel removes a job that has not started. Terminal and unknown jobs yield a
	// failure result with the reason filled in.
	Cancel(ctx context.Context, jobID string) (CancelResult, error)

	// Cleanup removes terminal jobs that finished more than daysToKeep days ago and
	// returns how many were removed.
	Cleanup(ctx context.Context, daysToKeep int) (int64, error)

	// Metrics returns current per-state job counts.
	Metrics(ctx context.Context) (domain.QueueMetrics, error)
}
