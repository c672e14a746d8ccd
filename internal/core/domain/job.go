package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// JobState is the lifecycle state of a queued payroll run.
type JobState string

const (
	JobWaiting   JobState = "waiting"
	JobActive    JobState = "active"
	JobCompleted JobState = "completed"
	JobFailed    JobState = "failed"
	JobPaused    JobState = "paused"
)

// IsTerminal reports whether the state admits no further transitions.
func (s JobState) IsTerminal() bool {
	return s == JobCompleted || s == JobFailed
}

// PayrollRunRequest is the payload of a payroll job: which organization/month to process,
// optionally restricted to specific employees, plus the run's one-off wage and deduction
// inputs.
type PayrollRunRequest struct {
	OrganizationID  string                `json:"organization_id"`
	Year            int                   `json:"year"`
	Month           int                   `json:"month"`
	EmployeeIDs     []string              `json:"employee_ids,omitempty"`
	AdditionalWages []AdditionalWageInput `json:"additional_wages,omitempty"`
	Deductions      []DeductionInput      `json:"deductions,omitempty"`
}

// AdditionalWageInput is one employee's extra payment for the run.
type AdditionalWageInput struct {
	EmployeeID  string          `json:"employee_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Remarks     *string         `json:"remarks,omitempty"`
}

// DeductionInput is one employee's deduction for the run.
type DeductionInput struct {
	EmployeeID  string          `json:"employee_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// JobKey derives the deterministic dedup key for the request. At most one live job may
// exist per key.
func (r PayrollRunRequest) JobKey() string {
	return fmt.Sprintf("payroll-%s-%d-%d", r.OrganizationID, r.Year, r.Month)
}

// PayrollRunResult is the payload stored on a completed job.
type PayrollRunResult struct {
	OrganizationID string    `json:"organization_id"`
	Year           int       `json:"year"`
	Month          int       `json:"month"`
	Processed      int       `json:"processed"`
	CompletedAt    time.Time `json:"completedAt"`
}

// PayrollJob is one durable queue entry.
type PayrollJob struct {
	JobID        string            `json:"id"`
	JobKey       string            `json:"jobKey"`
	State        JobState          `json:"state"`
	Progress     int               `json:"progress"` // 0-100, monotonically non-decreasing while active
	Data         PayrollRunRequest `json:"data"`
	Result       *PayrollRunResult `json:"result,omitempty"`
	FailedReason *string           `json:"failedReason,omitempty"`
	StartedAt    *time.Time        `json:"startedAt,omitempty"`
	FinishedAt   *time.Time        `json:"finishedAt,omitempty"`
	AuditFields
}

// QueueMetrics are per-state job counts for operational visibility.
type QueueMetrics struct {
	Waiting   int `json:"waiting"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
	Total     int `json:"total"`
}
