package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
	"github.com/sgpaytech/cpf_payroll_app/internal/models"
)

// ToModelPayrollJob converts a domain PayrollJob to a model PayrollJob, serializing the
// request payload and result to JSON for the JSONB columns.
func ToModelPayrollJob(d domain.PayrollJob) (models.PayrollJob, error) {
	data, err := json.Marshal(d.Data)
	if err != nil {
		return models.PayrollJob{}, fmt.Errorf("failed to marshal job data: %w", err)
	}
	var result []byte
	if d.Result != nil {
		result, err = json.Marshal(d.Result)
		if err != nil {
			return models.PayrollJob{}, fmt.Errorf("failed to marshal job result: %w", err)
		}
	}
	return models.PayrollJob{
		JobID:        d.JobID,
		JobKey:       d.JobKey,
		State:        string(d.State),
		Progress:     d.Progress,
		Data:         data,
		Result:       result,
		FailedReason: d.FailedReason,
		StartedAt:    d.StartedAt,
		FinishedAt:   d.FinishedAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}, nil
}

// MarshalJobResult serializes a run result for the result JSONB column.
func MarshalJobResult(result domain.PayrollRunResult) ([]byte, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job result: %w", err)
	}
	return data, nil
}

// ToDomainPayrollJob converts a model PayrollJob to a domain PayrollJob.
func ToDomainPayrollJob(m models.PayrollJob) (domain.PayrollJob, error) {
	var data domain.PayrollRunRequest
	if len(m.Data) > 0 {
		if err := json.Unmarshal(m.Data, &data); err != nil {
			return domain.PayrollJob{}, fmt.Errorf("failed to unmarshal job data: %w", err)
		}
	}
	var result *domain.PayrollRunResult
	if len(m.Result) > 0 {
		result = &domain.PayrollRunResult{}
		if err := json.Unmarshal(m.Result, result); err != nil {
			return domain.PayrollJob{}, fmt.Errorf("failed to unmarshal job result: %w", err)
		}
	}
	return domain.PayrollJob{
		JobID:        m.JobID,
		JobKey:       m.JobKey,
		State:        domain.JobState(m.State),
		Progress:     m.Progress,
		Data:         data,
		Result:       result,
		FailedReason: m.FailedReason,
		StartedAt:    m.StartedAt,
		FinishedAt:   m.FinishedAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}, nil
}
