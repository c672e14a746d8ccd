package dto

import (
	"time"

	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
)

// CreateDepartmentRequest carries the fields for a new department.
type CreateDepartmentRequest struct {
	Name         string  `json:"name" binding:"required"`
	Code         string  `json:"code" binding:"required"`
	ParentDeptID *string `json:"parent_dept_id,omitempty"`
}

// UpdateDepartmentRequest carries partial updates for a department.
type UpdateDepartmentRequest struct {
	Name         *string `json:"name,omitempty"`
	Code         *string `json:"code,omitempty"`
	ParentDeptID *string `json:"parent_dept_id,omitempty"`
}

// DepartmentResponse is the API shape of a department.
type DepartmentResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organizationID"`
	Name           string    `json:"name"`
	Code           string    `json:"code"`
	ParentDeptID   *string   `json:"parentDeptID,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ToDepartmentResponse converts a domain Department to its API representation.
func ToDepartmentResponse(d *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:             d.DepartmentID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		Code:           d.Code,
		ParentDeptID:   d.ParentDeptID,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// ToDepartmentResponses converts a slice of domain Departments.
func ToDepartmentResponses(ds []domain.Department) []DepartmentResponse {
	responses := make([]DepartmentResponse, len(ds))
	for i := range ds {
		responses[i] = ToDepartmentResponse(&ds[i])
	}
	return responses
}
