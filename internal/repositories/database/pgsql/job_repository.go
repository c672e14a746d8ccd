package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sgpaytech/cpf_payroll_app/internal/apperrors"
	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
	portsrepo "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/repositories"
	"github.com/sgpaytech/cpf_payroll_app/internal/models"
	"github.com/sgpaytech/cpf_payroll_app/internal/utils/mapping"
)

type PgxJobRepository struct {
	BaseRepository
}

// newPgxJobRepository creates a new repository for the durable job queue.
func newPgxJobRepository(pool *pgxpool.Pool) portsrepo.JobRepositoryFacade {
	return &PgxJobRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.JobRepositoryFacade = (*PgxJobRepository)(nil)

const jobColumns = `job_id, job_key, state, progress, data, result, failed_reason, started_at, finished_at, created_at, updated_at`

func scanJob(row pgx.Row) (models.PayrollJob, error) {
	var m models.PayrollJob
	err := row.Scan(
		&m.JobID,
		&m.JobKey,
		&m.State,
		&m.Progress,
		&m.Data,
		&m.Result,
		&m.FailedReason,
		&m.StartedAt,
		&m.FinishedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// SaveJob inserts a new waiting job. A partial unique index on job_key over non-terminal
// states enforces the one-live-job-per-key invariant even under concurrent submissions.
func (r *PgxJobRepository) SaveJob(ctx context.Context, job domain.PayrollJob) error {
	m, err := mapping.ToModelPayrollJob(job)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO payroll_jobs (job_id, job_key, state, progress, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.JobID,
		m.JobKey,
		m.State,
		m.Progress,
		m.Data,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("job for key %s: %w", m.JobKey, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save job %s: %w", m.JobID, err)
	}
	return nil
}

// FindJobByID retrieves a job by its unique identifier.
func (r *PgxJobRepository) FindJobByID(ctx context.Context, jobID string) (*domain.PayrollJob, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM payroll_jobs
		WHERE job_id = $1;
	`
	m, err := scanJob(r.Pool.QueryRow(ctx, query, jobID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find job by id %s: %w", jobID, err)
	}

	d, err := mapping.ToDomainPayrollJob(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FindLiveJobByKey retrieves the job holding the dedup key in a non-terminal state.
func (r *PgxJobRepository) FindLiveJobByKey(ctx context.Context, jobKey string) (*domain.PayrollJob, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM payroll_jobs
		WHERE job_key = $1 AND state IN ('waiting', 'active', 'paused');
	`
	m, err := scanJob(r.Pool.QueryRow(ctx, query, jobKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find live job by key %s: %w", jobKey, err)
	}

	d, err := mapping.ToDomainPayrollJob(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ClaimNextWaitingJob atomically moves the oldest waiting job to active and returns it.
// FOR UPDATE SKIP LOCKED keeps a second worker instance from claiming the same row.
func (r *PgxJobRepository) ClaimNextWaitingJob(ctx context.Context, startProgress int) (*domain.PayrollJob, error) {
	query := `
		UPDATE payroll_jobs
		SET state = 'active', progress = $1, started_at = NOW(), updated_at = NOW()
		WHERE job_id = (
			SELECT job_id
			FROM payroll_jobs
			WHERE state = 'waiting'
			ORDER BY created_at
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING ` + jobColumns + `;
	`
	m, err := scanJob(r.Pool.QueryRow(ctx, query, startProgress))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to claim next waiting job: %w", err)
	}

	d, err := mapping.ToDomainPayrollJob(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// RequeueActiveJobs moves orphaned active jobs back to waiting so they can be claimed
// again after a restart.
func (r *PgxJobRepository) RequeueActiveJobs(ctx context.Context) (int64, error) {
	query := `
		UPDATE payroll_jobs
		SET state = 'waiting', progress = 0, started_at = NULL, updated_at = NOW()
		WHERE state = 'active';
	`
	tag, err := r.Pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to requeue active jobs: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UpdateJobProgress sets the progress of an active job.
func (r *PgxJobRepository) UpdateJobProgress(ctx context.Context, jobID string, progress int) error {
	query := `
		UPDATE payroll_jobs
		SET progress = $2, updated_at = NOW()
		WHERE job_id = $1 AND state = 'active';
	`
	tag, err := r.Pool.Exec(ctx, query, jobID, progress)
	if err != nil {
		return fmt.Errorf("failed to update progress of job %s: %w", jobID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CompleteJob marks a job completed with its result and full progress.
func (r *PgxJobRepository) CompleteJob(ctx context.Context, jobID string, result domain.PayrollRunResult, finishedAt time.Time) error {
	resultJSON, err := mapping.MarshalJobResult(result)
	if err != nil {
		return err
	}

	query := `
		UPDATE payroll_jobs
		SET state = 'completed', progress = 100, result = $2, finished_at = $3, updated_at = $3
		WHERE job_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, jobID, resultJSON, finishedAt)
	if err != nil {
		return fmt.Errorf("failed to complete job %s: %w", jobID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FailJob marks a job failed with the given reason.
func (r *PgxJobRepository) FailJob(ctx context.Context, jobID string, reason string, finishedAt time.Time) error {
	query := `
		UPDATE payroll_jobs
		SET state = 'failed', failed_reason = $2, finished_at = $3, updated_at = $3
		WHERE job_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, jobID, reason, finishedAt)
	if err != nil {
		return fmt.Errorf("failed to mark job %s failed: %w", jobID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteJob removes a job outright (cancellation of a not-yet-started job).
func (r *PgxJobRepository) DeleteJob(ctx context.Context, jobID string) error {
	query := `DELETE FROM payroll_jobs WHERE job_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, jobID)
	if err != nil {
		return fmt.Errorf("failed to delete job %s: %w", jobID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteFinishedJobsBefore removes terminal jobs that finished before the cutoff.
func (r *PgxJobRepository) DeleteFinishedJobsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM payroll_jobs
		WHERE state IN ('completed', 'failed') AND finished_at < $1;
	`
	tag, err := r.Pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete finished jobs: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CountJobsByState returns per-state queue counts. Paused jobs fold into the waiting
// counter; see portsrepo.JobReader.
func (r *PgxJobRepository) CountJobsByState(ctx context.Context) (domain.QueueMetrics, error) {
	query := `
		SELECT state, COUNT(*)
		FROM payroll_jobs
		GROUP BY state;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return domain.QueueMetrics{}, fmt.Errorf("failed to count jobs: %w", err)
	}
	defer rows.Close()

	var metrics domain.QueueMetrics
	for rows.Next() {
		var state string
		var count int
		if err := rows.Scan(&state, &count); err != nil {
			return domain.QueueMetrics{}, fmt.Errorf("failed to scan job count: %w", err)
		}
		switch domain.JobState(state) {
		case domain.JobWaiting, domain.JobPaused:
			metrics.Waiting += count
		case domain.JobActive:
			metrics.Active += count
		case domain.JobCompleted:
			metrics.Completed += count
		case domain.JobFailed:
			metrics.Failed += count
		}
		metrics.Total += count
	}
	if err := rows.Err(); err != nil {
		return domain.QueueMetrics{}, fmt.Errorf("failed to read job counts: %w", err)
	}
	return metrics, nil
}
