package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmploymentType is the contractual arrangement of an employee.
type EmploymentType string

const (
	EmploymentPermanent EmploymentType = "PERMANENT"
	EmploymentContract  EmploymentType = "CONTRACT"
	EmploymentTemporary EmploymentType = "TEMPORARY"
	EmploymentPartTime  EmploymentType = "PART_TIME"
)

// CitizenshipStatus determines CPF applicability in the full scheme; the current rate
// schedule does not branch on it but it is captured at import time.
type CitizenshipStatus string

const (
	CitizenshipCitizen           CitizenshipStatus = "CITIZEN"
	CitizenshipPRFirstYear       CitizenshipStatus = "PR_FIRST_YEAR"
	CitizenshipPRSecondYear      CitizenshipStatus = "PR_SECOND_YEAR"
	CitizenshipPRThirdYearOnward CitizenshipStatus = "PR_THIRD_YEAR_ONWARDS"
	CitizenshipForeigner         CitizenshipStatus = "FOREIGNER"
)

// Employee as used across employee management and payroll. Payroll reads only a subset
// (identity, date of birth, basic salary, active flag) and never writes back.
type Employee struct {
	EmployeeID        string            `json:"employeeID"`
	OrganizationID    string            `json:"organizationID"`
	DepartmentID      *string           `json:"departmentID,omitempty"`
	EmployeeNumber    string            `json:"employeeNumber"` // employer-assigned code, distinct from the row ID
	Name              string            `json:"name"`
	Email             *string           `json:"email,omitempty"`
	ContactNumber     *string           `json:"contactNumber,omitempty"`
	NRIC              string            `json:"nric"`
	DateOfBirth       time.Time         `json:"dateOfBirth"`
	DateJoined        time.Time         `json:"dateJoined"`
	EmploymentType    EmploymentType    `json:"employmentType"`
	CitizenshipStatus CitizenshipStatus `json:"citizenshipStatus"`
	BasicSalary       decimal.Decimal   `json:"basicSalary"`
	Allowances        decimal.Decimal   `json:"allowances"`
	IsActive          bool              `json:"isActive"`
	DeletedAt         *time.Time        `json:"deletedAt,omitempty"`
	AuditFields
}

// AgeAt returns the employee's age in whole years at the given date.
func (e Employee) AgeAt(at time.Time) int {
	age := at.Year() - e.DateOfBirth.Year()
	if at.Month() < e.DateOfBirth.Month() ||
		(at.Month() == e.DateOfBirth.Month() && at.Day() < e.DateOfBirth.Day()) {
		age--
	}
	return age
}
