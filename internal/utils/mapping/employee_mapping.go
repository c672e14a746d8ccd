package mapping

import (
	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
	"github.com/sgpaytech/cpf_payroll_app/internal/models"
)

// ToModelEmployee converts a domain Employee to a model Employee
func ToModelEmployee(d domain.Employee) models.Employee {
	return models.Employee{
		EmployeeID:        d.EmployeeID,
		OrganizationID:    d.OrganizationID,
		DepartmentID:      d.DepartmentID,
		EmployeeNumber:    d.EmployeeNumber,
		Name:              d.Name,
		Email:             d.Email,
		ContactNumber:     d.ContactNumber,
		NRIC:              d.NRIC,
		DateOfBirth:       d.DateOfBirth,
		DateJoined:        d.DateJoined,
		EmploymentType:    string(d.EmploymentType),
		CitizenshipStatus: string(d.CitizenshipStatus),
		BasicSalary:       d.BasicSalary,
		Allowances:        d.Allowances,
		IsActive:          d.IsActive,
		DeletedAt:         d.DeletedAt,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEmployee converts a model Employee to a domain Employee
func ToDomainEmployee(m models.Employee) domain.Employee {
	return domain.Employee{
		EmployeeID:        m.EmployeeID,
		OrganizationID:    m.OrganizationID,
		DepartmentID:      m.DepartmentID,
		EmployeeNumber:    m.EmployeeNumber,
		Name:              m.Name,
		Email:             m.Email,
		ContactNumber:     m.ContactNumber,
		NRIC:              m.NRIC,
		DateOfBirth:       m.DateOfBirth,
		DateJoined:        m.DateJoined,
		EmploymentType:    domain.EmploymentType(m.EmploymentType),
		CitizenshipStatus: domain.CitizenshipStatus(m.CitizenshipStatus),
		BasicSalary:       m.BasicSalary,
		Allowances:        m.Allowances,
		IsActive:          m.IsActive,
		DeletedAt:         m.DeletedAt,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEmployeeSlice converts a slice of model Employees to domain Employees
func ToDomainEmployeeSlice(ms []models.Employee) []domain.Employee {
	ds := make([]domain.Employee, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEmployee(m)
	}
	return ds
}
