package mapping

import (
	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
	"github.com/sgpaytech/cpf_payroll_app/internal/models"
)

// ToModelOrganization converts a domain Organization to a model Organization
func ToModelOrganization(d domain.Organization) models.Organization {
	return models.Organization{
		OrganizationID:   d.OrganizationID,
		ParentID:         d.ParentID,
		Name:             d.Name,
		Type:             string(d.Type),
		UEN:              d.UEN,
		RegistrationDate: d.RegistrationDate,
		CPFSubmissionNum: d.CPFSubmissionNum,
		DeletedAt:        d.DeletedAt,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrganization converts a model Organization to a domain Organization
func ToDomainOrganization(m models.Organization) domain.Organization {
	return domain.Organization{
		OrganizationID:   m.OrganizationID,
		ParentID:         m.ParentID,
		Name:             m.Name,
		Type:             domain.OrgType(m.Type),
		UEN:              m.UEN,
		RegistrationDate: m.RegistrationDate,
		CPFSubmissionNum: m.CPFSubmissionNum,
		DeletedAt:        m.DeletedAt,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOrganizationSlice converts a slice of model Organizations to domain Organizations
func ToDomainOrganizationSlice(ms []models.Organization) []domain.Organization {
	ds := make([]domain.Organization, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOrganization(m)
	}
	return ds
}

// ToModelDepartment converts a domain Department to a model Department
func ToModelDepartment(d domain.Department) models.Department {
	return models.Department{
		DepartmentID:   d.DepartmentID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		Code:           d.Code,
		ParentDeptID:   d.ParentDeptID,
		DeletedAt:      d.DeletedAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDepartment converts a model Department to a domain Department
func ToDomainDepartment(m models.Department) domain.Department {
	return domain.Department{
		DepartmentID:   m.DepartmentID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Code:           m.Code,
		ParentDeptID:   m.ParentDeptID,
		DeletedAt:      m.DeletedAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDepartmentSlice converts a slice of model Departments to domain Departments
func ToDomainDepartmentSlice(ms []models.Department) []domain.Department {
	ds := make([]domain.Department, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDepartment(m)
	}
	return ds
}
