package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the persistence shape of an employee row.
type Employee struct {
	EmployeeID        string          `json:"employeeID"`
	OrganizationID    string          `json:"organizationID"`
	DepartmentID      *string         `json:"departmentID"`
	EmployeeNumber    string          `json:"employeeNumber"`
	Name              string          `json:"name"`
	Email             *string         `json:"email"`
	ContactNumber     *string         `json:"contactNumber"`
	NRIC              string          `json:"nric"`
	DateOfBirth       time.Time       `json:"dateOfBirth"`
	DateJoined        time.Time       `json:"dateJoined"`
	EmploymentType    string          `json:"employmentType"`
	CitizenshipStatus string          `json:"citizenshipStatus"`
	BasicSalary       decimal.Decimal `json:"basicSalary"`
	Allowances        decimal.Decimal `json:"allowances"`
	IsActive          bool            `json:"isActive"`
	DeletedAt         *time.Time      `json:"deletedAt"`
	AuditFields
}
