package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
)

// CreateEmployeeRequest carries the fields for a new employee record.
type CreateEmployeeRequest struct {
	DepartmentID      *string         `json:"department_id,omitempty"`
	EmployeeNumber    string          `json:"employee_id" binding:"required"`
	Name              string          `json:"name" binding:"required"`
	Email             *string         `json:"email,omitempty" binding:"omitempty,email"`
	ContactNumber     *string         `json:"contact_number,omitempty"`
	NRIC              string          `json:"nric" binding:"required,nric"`
	DateOfBirth       time.Time       `json:"date_of_birth" binding:"required" time_format:"2006-01-02"`
	DateJoined        time.Time       `json:"date_joined" binding:"required" time_format:"2006-01-02"`
	EmploymentType    string          `json:"employment_type" binding:"required,oneof=PERMANENT CONTRACT TEMPORARY PART_TIME"`
	CitizenshipStatus string          `json:"citizenship_status" binding:"required,oneof=CITIZEN PR_FIRST_YEAR PR_SECOND_YEAR PR_THIRD_YEAR_ONWARDS FOREIGNER"`
	BasicSalary       decimal.Decimal `json:"basic_salary" binding:"required"`
	Allowances        decimal.Decimal `json:"allowances"`
}

// UpdateEmployeeRequest carries partial updates for an employee.
type UpdateEmployeeRequest struct {
	DepartmentID   *string          `json:"department_id,omitempty"`
	Name           *string          `json:"name,omitempty"`
	Email          *string          `json:"email,omitempty" binding:"omitempty,email"`
	ContactNumber  *string          `json:"contact_number,omitempty"`
	EmploymentType *string          `json:"employment_type,omitempty" binding:"omitempty,oneof=PERMANENT CONTRACT TEMPORARY PART_TIME"`
	BasicSalary    *decimal.Decimal `json:"basic_salary,omitempty"`
	Allowances     *decimal.Decimal `json:"allowances,omitempty"`
	IsActive       *bool            `json:"is_active,omitempty"`
}

// EmployeeImportRow is one parsed CSV row of a bulk import. Parsing keeps everything as
// strings; the employee service validates and converts.
type EmployeeImportRow struct {
	EmployeeNumber    string `json:"employee_id"`
	Name              string `json:"name"`
	NRIC              string `json:"nric"`
	Email             string `json:"email"`
	ContactNumber     string `json:"contact_number"`
	DateOfBirth       string `json:"date_of_birth"`
	DateJoined        string `json:"date_joined"`
	EmploymentType    string `json:"employment_type"`
	CitizenshipStatus string `json:"citizenship_status"`
	DepartmentCode    string `json:"department_code"`
	BasicSalary       string `json:"basic_salary"`
	Allowances        string `json:"allowances"`
}

// EmployeeResponse is the API shape of an employee.
type EmployeeResponse struct {
	ID                string          `json:"id"`
	OrganizationID    string          `json:"organizationID"`
	DepartmentID      *string         `json:"departmentID,omitempty"`
	EmployeeNumber    string          `json:"employeeNumber"`
	Name              string          `json:"name"`
	Email             *string         `json:"email,omitempty"`
	ContactNumber     *string         `json:"contactNumber,omitempty"`
	NRIC              string          `json:"nric"`
	DateOfBirth       time.Time       `json:"dateOfBirth"`
	DateJoined        time.Time       `json:"dateJoined"`
	EmploymentType    string          `json:"employmentType"`
	CitizenshipStatus string          `json:"citizenshipStatus"`
	BasicSalary       decimal.Decimal `json:"basicSalary"`
	Allowances        decimal.Decimal `json:"allowances"`
	IsActive          bool            `json:"isActive"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// ToEmployeeResponse converts a domain Employee to its API representation.
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                e.EmployeeID,
		OrganizationID:    e.OrganizationID,
		DepartmentID:      e.DepartmentID,
		EmployeeNumber:    e.EmployeeNumber,
		Name:              e.Name,
		Email:             e.Email,
		ContactNumber:     e.ContactNumber,
		NRIC:              e.NRIC,
		DateOfBirth:       e.DateOfBirth,
		DateJoined:        e.DateJoined,
		EmploymentType:    string(e.EmploymentType),
		CitizenshipStatus: string(e.CitizenshipStatus),
		BasicSalary:       e.BasicSalary,
		Allowances:        e.Allowances,
		IsActive:          e.IsActive,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

// ToEmployeeResponses converts a slice of domain Employees.
func ToEmployeeResponses(es []domain.Employee) []EmployeeResponse {
	responses := make([]EmployeeResponse, len(es))
	for i := range es {
		responses[i] = ToEmployeeResponse(&es[i])
	}
	return responses
}
