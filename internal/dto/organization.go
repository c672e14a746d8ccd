package dto

import (
	"time"

	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
)

// CreateOrganizationRequest carries the fields for a new organization node.
type CreateOrganizationRequest struct {
	ParentID         *string    `json:"parent_id,omitempty"`
	Name             string     `json:"name" binding:"required"`
	Type             string     `json:"type" binding:"required,oneof=GROUP DIVISION LEGAL_ENTITY BRANCH COST_CENTER"`
	UEN              *string    `json:"uen,omitempty"`
	RegistrationDate *time.Time `json:"registration_date,omitempty"`
	CPFSubmissionNum *string    `json:"cpf_submission_num,omitempty"`
}

// UpdateOrganizationRequest carries partial updates for an organization.
type UpdateOrganizationRequest struct {
	ParentID         *string    `json:"parent_id,omitempty"`
	Name             *string    `json:"name,omitempty"`
	Type             *string    `json:"type,omitempty" binding:"omitempty,oneof=GROUP DIVISION LEGAL_ENTITY BRANCH COST_CENTER"`
	UEN              *string    `json:"uen,omitempty"`
	RegistrationDate *time.Time `json:"registration_date,omitempty"`
	CPFSubmissionNum *string    `json:"cpf_submission_num,omitempty"`
}

// OrganizationResponse is the API shape of an organization.
type OrganizationResponse struct {
	ID               string     `json:"id"`
	ParentID         *string    `json:"parentID,omitempty"`
	Name             string     `json:"name"`
	Type             string     `json:"type"`
	UEN              *string    `json:"uen,omitempty"`
	RegistrationDate *time.Time `json:"registrationDate,omitempty"`
	CPFSubmissionNum *string    `json:"cpfSubmissionNum,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// ToOrganizationResponse converts a domain Organization to its API representation.
func ToOrganizationResponse(o *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:               o.OrganizationID,
		ParentID:         o.ParentID,
		Name:             o.Name,
		Type:             string(o.Type),
		UEN:              o.UEN,
		RegistrationDate: o.RegistrationDate,
		CPFSubmissionNum: o.CPFSubmissionNum,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

// ToOrganizationResponses converts a slice of domain Organizations.
func ToOrganizationResponses(os []domain.Organization) []OrganizationResponse {
	responses := make([]OrganizationResponse, len(os))
	for i := range os {
		responses[i] = ToOrganizationResponse(&os[i])
	}
	return responses
}
