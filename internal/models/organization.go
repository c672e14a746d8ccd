package models

import "time"

// Organization is the persistence shape of an organization row.
type Organization struct {
	OrganizationID   string     `json:"organizationID"`
	ParentID         *string    `json:"parentID"`
	Name             string     `json:"name"`
	Type             string     `json:"type"`
	UEN              *string    `json:"uen"`
	RegistrationDate *time.Time `json:"registrationDate"`
	CPFSubmissionNum *string    `json:"cpfSubmissionNum"`
	DeletedAt        *time.Time `json:"deletedAt"`
	AuditFields
}

// Department is the persistence shape of a department row.
type Department struct {
	DepartmentID   string     `json:"departmentID"`
	OrganizationID string     `json:"organizationID"`
	Name           string     `json:"name"`
	Code           string     `json:"code"`
	ParentDeptID   *string    `json:"parentDeptID"`
	DeletedAt      *time.Time `json:"deletedAt"`
	AuditFields
}
