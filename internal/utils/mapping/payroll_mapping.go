package mapping

import (
	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
	"github.com/sgpaytech/cpf_payroll_app/internal/models"
)

// ToModelPayrollPeriod converts a domain PayrollPeriod to a model PayrollPeriod
func ToModelPayrollPeriod(d domain.PayrollPeriod) models.PayrollPeriod {
	return models.PayrollPeriod{
		PeriodID:       d.PeriodID,
		OrganizationID: d.OrganizationID,
		YearMonth:      d.YearMonth,
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		IsProcessed:    d.IsProcessed,
		ProcessedAt:    d.ProcessedAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayrollPeriod converts a model PayrollPeriod to a domain PayrollPeriod
func ToDomainPayrollPeriod(m models.PayrollPeriod) domain.PayrollPeriod {
	return domain.PayrollPeriod{
		PeriodID:       m.PeriodID,
		OrganizationID: m.OrganizationID,
		YearMonth:      m.YearMonth,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		IsProcessed:    m.IsProcessed,
		ProcessedAt:    m.ProcessedAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCpfContribution converts a domain CpfContribution to a model CpfContribution
func ToModelCpfContribution(d domain.CpfContribution) models.CpfContribution {
	return models.CpfContribution{
		ContributionID:       d.ContributionID,
		EmployeeID:           d.EmployeeID,
		PayrollPeriodID:      d.PayrollPeriodID,
		OrdinaryWages:        d.OrdinaryWages,
		AdditionalWages:      d.AdditionalWages,
		EmployeeContribution: d.EmployeeContribution,
		EmployerContribution: d.EmployerContribution,
		OrdinaryAccount:      d.OrdinaryAccount,
		SpecialAccount:       d.SpecialAccount,
		MedisaveAccount:      d.MedisaveAccount,
		Status:               string(d.Status),
		PaidAt:               d.PaidAt,
		PaymentReference:     d.PaymentReference,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCpfContribution converts a model CpfContribution to a domain CpfContribution
func ToDomainCpfContribution(m models.CpfContribution) domain.CpfContribution {
	return domain.CpfContribution{
		ContributionID:       m.ContributionID,
		EmployeeID:           m.EmployeeID,
		PayrollPeriodID:      m.PayrollPeriodID,
		OrdinaryWages:        m.OrdinaryWages,
		AdditionalWages:      m.AdditionalWages,
		EmployeeContribution: m.EmployeeContribution,
		EmployerContribution: m.EmployerContribution,
		OrdinaryAccount:      m.OrdinaryAccount,
		SpecialAccount:       m.SpecialAccount,
		MedisaveAccount:      m.MedisaveAccount,
		Status:               domain.PaymentStatus(m.Status),
		PaidAt:               m.PaidAt,
		PaymentReference:     m.PaymentReference,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCpfContributionSlice converts model CpfContributions to domain CpfContributions
func ToDomainCpfContributionSlice(ms []models.CpfContribution) []domain.CpfContribution {
	ds := make([]domain.CpfContribution, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCpfContribution(m)
	}
	return ds
}

// ToModelAdditionalWage converts a domain AdditionalWage to a model AdditionalWage
func ToModelAdditionalWage(d domain.AdditionalWage) models.AdditionalWage {
	return models.AdditionalWage{
		AdditionalWageID: d.AdditionalWageID,
		EmployeeID:       d.EmployeeID,
		PaymentDate:      d.PaymentDate,
		Amount:           d.Amount,
		Description:      d.Description,
		Remarks:          d.Remarks,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAdditionalWage converts a model AdditionalWage to a domain AdditionalWage
func ToDomainAdditionalWage(m models.AdditionalWage) domain.AdditionalWage {
	return domain.AdditionalWage{
		AdditionalWageID: m.AdditionalWageID,
		EmployeeID:       m.EmployeeID,
		PaymentDate:      m.PaymentDate,
		Amount:           m.Amount,
		Description:      m.Description,
		Remarks:          m.Remarks,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
