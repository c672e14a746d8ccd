package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
	portsrepo "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/repositories"
	portssvc "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/services"
	"github.com/sgpaytech/cpf_payroll_app/internal/dto"
	"github.com/sgpaytech/cpf_payroll_app/internal/middleware"
)

type organizationService struct {
	orgRepo portsrepo.OrganizationRepositoryFacade
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo portsrepo.OrganizationRepositoryFacade) portssvc.OrganizationSvcFacade {
	return &organizationService{orgRepo: orgRepo}
}

var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

// CreateOrganization implements portssvc.OrganizationSvcFacade. A non-nil parent must
// already exist.
func (s *organizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest) (*domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.ParentID != nil {
		if _, err := s.orgRepo.FindOrganizationByID(ctx, *req.ParentID); err != nil {
			return nil, fmt.Errorf("failed to resolve parent organization %s: %w", *req.ParentID, err)
		}
	}

	now := time.Now().UTC()
	org := domain.Organization{
		OrganizationID:   uuid.NewString(),
		ParentID:         req.ParentID,
		Name:             req.Name,
		Type:             domain.OrgType(req.Type),
		UEN:              req.UEN,
		RegistrationDate: req.RegistrationDate,
		CPFSubmissionNum: req.CPFSubmissionNum,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.orgRepo.SaveOrganization(ctx, org); err != nil {
		return nil, fmt.Errorf("failed to save organization: %w", err)
	}

	logger.Info("Organization created", slog.String("organization_id", org.OrganizationID), slog.String("name", org.Name))
	return &org, nil
}

// GetOrganizationByID implements portssvc.OrganizationSvcFacade.
func (s *organizationService) GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	return s.orgRepo.FindOrganizationByID(ctx, organizationID)
}

// ListOrganizations implements portssvc.OrganizationSvcFacade.
func (s *organizationService) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	return s.orgRepo.ListOrganizations(ctx)
}

// UpdateOrganization implements portssvc.OrganizationSvcFacade. Only fields present in
// the request change.
func (s *organizationService) UpdateOrganization(ctx context.Context, organizationID string, req dto.UpdateOrganizationRequest) (*domain.Organization, error) {
	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		org.ParentID = req.ParentID
	}
	if req.Name != nil {
		org.Name = *req.Name
	}
	if req.Type != nil {
		org.Type = domain.OrgType(*req.Type)
	}
	if req.UEN != nil {
		org.UEN = req.UEN
	}
	if req.RegistrationDate != nil {
		org.RegistrationDate = req.RegistrationDate
	}
	if req.CPFSubmissionNum != nil {
		org.CPFSubmissionNum = req.CPFSubmissionNum
	}
	org.UpdatedAt = time.Now().UTC()

	if err := s.orgRepo.UpdateOrganization(ctx, *org); err != nil {
		return nil, fmt.Errorf("failed to update organization %s: %w", organizationID, err)
	}
	return org, nil
}

// DeleteOrganization implements portssvc.OrganizationSvcFacade. Soft delete; payroll
// history referencing the organization stays intact.
func (s *organizationService) DeleteOrganization(ctx context.Context, organizationID string) error {
	if _, err := s.orgRepo.FindOrganizationByID(ctx, organizationID); err != nil {
		return err
	}
	if err := s.orgRepo.DeleteOrganization(ctx, organizationID); err != nil {
		return fmt.Errorf("failed to delete organization %s: %w", organizationID, err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Organization deleted", slog.String("organization_id", organizationID))
	return nil
}
