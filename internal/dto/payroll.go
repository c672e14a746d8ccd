package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sgpaytech/cpf_payroll_app/internal/apperrors"
	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
)

func errAmountNotPositive(employeeID string) error {
	return fmt.Errorf("%w: amount must be positive for employee %s", apperrors.ErrValidation, employeeID)
}

// AdditionalWageRequest is one employee's extra payment in a processing request.
type AdditionalWageRequest struct {
	EmployeeID  string          `json:"employee_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Remarks     *string         `json:"remarks,omitempty"`
}

// DeductionRequest is one employee's deduction in a processing request.
type DeductionRequest struct {
	EmployeeID  string          `json:"employee_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
}

// ProcessPayrollRequest is the submission payload for a payroll run.
type ProcessPayrollRequest struct {
	OrganizationID  string                  `json:"organization_id" binding:"required"`
	Year            int                     `json:"year" binding:"required,gte=2000,lte=2100"`
	Month           int                     `json:"month" binding:"required,gte=1,lte=12"`
	EmployeeIDs     []string                `json:"employee_ids,omitempty"`
	AdditionalWages []AdditionalWageRequest `json:"additional_wages,omitempty" binding:"omitempty,dive"`
	Deductions      []DeductionRequest      `json:"deductions,omitempty" binding:"omitempty,dive"`
}

// Validate applies the checks gin binding tags cannot express.
func (r ProcessPayrollRequest) Validate() error {
	for _, w := range r.AdditionalWages {
		if !w.Amount.IsPositive() {
			return errAmountNotPositive(w.EmployeeID)
		}
	}
	for _, d := range r.Deductions {
		if !d.Amount.IsPositive() {
			return errAmountNotPositive(d.EmployeeID)
		}
	}
	return nil
}

// ToDomain converts the request into the engine's run request.
func (r ProcessPayrollRequest) ToDomain() domain.PayrollRunRequest {
	wages := make([]domain.AdditionalWageInput, len(r.AdditionalWages))
	for i, w := range r.AdditionalWages {
		wages[i] = domain.AdditionalWageInput{
			EmployeeID:  w.EmployeeID,
			Amount:      w.Amount,
			Description: w.Description,
			Remarks:     w.Remarks,
		}
	}
	deductions := make([]domain.DeductionInput, len(r.Deductions))
	for i, d := range r.Deductions {
		deductions[i] = domain.DeductionInput{
			EmployeeID:  d.EmployeeID,
			Amount:      d.Amount,
			Description: d.Description,
		}
	}
	return domain.PayrollRunRequest{
		OrganizationID:  r.OrganizationID,
		Year:            r.Year,
		Month:           r.Month,
		EmployeeIDs:     r.EmployeeIDs,
		AdditionalWages: wages,
		Deductions:      deductions,
	}
}

// SubmitPayrollResponse acknowledges an accepted payroll run.
type SubmitPayrollResponse struct {
	Message       string `json:"message"`
	JobID         string `json:"jobId"`
	Year          int    `json:"year"`
	Month         int    `json:"month"`
	EmployeeCount string `json:"employeeCount"`
}

// DuplicateJobResponse is the 409 body returned when a live job already holds the key.
type DuplicateJobResponse struct {
	Message  string `json:"message"`
	JobID    string `json:"jobId"`
	Status   string `json:"status"`
	IsNewJob bool   `json:"isNewJob"`
}

// JobStatusResponse is the caller-facing view of a queued payroll job.
type JobStatusResponse struct {
	ID           string                   `json:"id"`
	State        string                   `json:"state"`
	Progress     int                      `json:"progress"`
	Result       *domain.PayrollRunResult `json:"result,omitempty"`
	Data         domain.PayrollRunRequest `json:"data"`
	FailedReason *string                  `json:"failedReason,omitempty"`
	StartedAt    *time.Time               `json:"startedAt,omitempty"`
	FinishedAt   *time.Time               `json:"finishedAt,omitempty"`
}

// ToJobStatusResponse converts a domain job to its API representation.
func ToJobStatusResponse(j *domain.PayrollJob) JobStatusResponse {
	return JobStatusResponse{
		ID:           j.JobID,
		State:        string(j.State),
		Progress:     j.Progress,
		Result:       j.Result,
		Data:         j.Data,
		FailedReason: j.FailedReason,
		StartedAt:    j.StartedAt,
		FinishedAt:   j.FinishedAt,
	}
}
