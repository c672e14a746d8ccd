package repositories

import (
	"context"
	"time"

	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
)

// JobReader defines read operations for the durable job queue
type JobReader interface {
	// FindJobByID retrieves a job by its unique identifier.
	FindJobByID(ctx context.Context, jobID string) (*domain.PayrollJob, error)

	// FindLiveJobByKey retrieves the job holding the dedup key in a non-terminal state
	// (waiting, active or paused), if any.
	FindLiveJobByKey(ctx context.Context, jobKey string) (*domain.PayrollJob, error)

	// CountJobsByState returns per-state queue counts. Paused jobs are reported under
	// waiting: the metrics surface exposes only the four operational counters, and a
	// paused job is a waiting job that is not currently claimable.
	CountJobsByState(ctx context.Context) (domain.QueueMetrics, error)
}

// JobWriter defines write operations for the durable job queue
type JobWriter interface {
	// SaveJob inserts a new waiting job. Inserting a second live job for the same key
	// surfaces as a conflict error from the storage layer.
	SaveJob(ctx context.Context, job domain.PayrollJob) error

	// ClaimNextWaitingJob atomically moves the oldest waiting job to active and returns
	// it, or nil when the queue is empty. Claimed jobs start at the given progress.
	ClaimNextWaitingJob(ctx context.Context, startProgress int) (*domain.PayrollJob, error)

	// RequeueActiveJobs moves jobs stuck in active back to waiting and returns how many
	// were moved. With a single worker, any active job at startup was orphaned by a
	// previous shutdown or crash and would otherwise hold its dedup key forever.
	RequeueActiveJobs(ctx context.Context) (int64, error)

	// UpdateJobProgress sets the progress of an active job.
	UpdateJobProgress(ctx context.Context, jobID string, progress int) error

	// CompleteJob marks a job completed with its result and full progress.
	CompleteJob(ctx context.Context, jobID string, result domain.PayrollRunResult, finishedAt time.Time) error

	// FailJob marks a job failed with the given reason.
	FailJob(ctx context.Context, jobID string, reason string, finishedAt time.Time) error

	// DeleteJob removes a job outright (cancellation of a not-yet-started job).
	DeleteJob(ctx context.Context, jobID string) error

	// DeleteFinishedJobsBefore removes terminal jobs that finished before the cutoff and
	// returns how many were removed.
	DeleteFinishedJobsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// JobRepositoryFacade combines all job repository interfaces
type JobRepositoryFacade interface {
	JobReader
	JobWriter
}
