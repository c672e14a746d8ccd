package domain

import "time"

// OrgType classifies a node in the organization hierarchy.
type OrgType string

const (
	OrgTypeGroup       OrgType = "GROUP"
	OrgTypeDivision    OrgType = "DIVISION"
	OrgTypeLegalEntity OrgType = "LEGAL_ENTITY"
	OrgTypeBranch      OrgType = "BRANCH"
	OrgTypeCostCenter  OrgType = "COST_CENTER"
)

// Organization is an employer entity. Only LEGAL_ENTITY nodes typically carry a UEN and a
// CPF submission number, but the hierarchy does not enforce that.
type Organization struct {
	OrganizationID   string     `json:"organizationID"`
	ParentID         *string    `json:"parentID,omitempty"`
	Name             string     `json:"name"`
	Type             OrgType    `json:"type"`
	UEN              *string    `json:"uen,omitempty"`
	RegistrationDate *time.Time `json:"registrationDate,omitempty"`
	CPFSubmissionNum *string    `json:"cpfSubmissionNum,omitempty"`
	DeletedAt        *time.Time `json:"deletedAt,omitempty"`
	AuditFields
}

// Department groups employees within an organization.
type Department struct {
	DepartmentID   string     `json:"departmentID"`
	OrganizationID string     `json:"organizationID"`
	Name           string     `json:"name"`
	Code           string     `json:"code"`
	ParentDeptID   *string    `json:"parentDeptID,omitempty"`
	DeletedAt      *time.Time `json:"deletedAt,omitempty"`
	AuditFields
}
