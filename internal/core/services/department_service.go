package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sgpaytech/cpf_payroll_app/internal/apperrors"
	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
	portsrepo "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/repositories"
	portssvc "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/services"
	"github.com/sgpaytech/cpf_payroll_app/internal/dto"
)

type departmentService struct {
	deptRepo portsrepo.DepartmentRepositoryFacade
	orgRepo  portsrepo.OrganizationRepositoryFacade
}

// NewDepartmentService creates a new DepartmentService.
func NewDepartmentService(deptRepo portsrepo.DepartmentRepositoryFacade, orgRepo portsrepo.OrganizationRepositoryFacade) portssvc.DepartmentSvcFacade {
	return &departmentService{deptRepo: deptRepo, orgRepo: orgRepo}
}

var _ portssvc.DepartmentSvcFacade = (*departmentService)(nil)

// CreateDepartment implements portssvc.DepartmentSvcFacade. Codes are unique per
// organization.
func (s *departmentService) CreateDepartment(ctx context.Context, organizationID string, req dto.CreateDepartmentRequest) (*domain.Department, error) {
	if _, err := s.orgRepo.FindOrganizationByID(ctx, organizationID); err != nil {
		return nil, err
	}

	existing, err := s.deptRepo.FindDepartmentByCode(ctx, organizationID, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check department code: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError(fmt.Sprintf("department code %s already exists in organization", req.Code))
	}

	now := time.Now().UTC()
	dept := domain.Department{
		DepartmentID:   uuid.NewString(),
		OrganizationID: organizationID,
		Name:           req.Name,
		Code:           req.Code,
		ParentDeptID:   req.ParentDeptID,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.deptRepo.SaveDepartment(ctx, dept); err != nil {
		return nil, fmt.Errorf("failed to save department: %w", err)
	}
	return &dept, nil
}

// GetDepartmentByID implements portssvc.DepartmentSvcFacade.
func (s *departmentService) GetDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	return s.deptRepo.FindDepartmentByID(ctx, departmentID)
}

// ListDepartments implements portssvc.DepartmentSvcFacade.
func (s *departmentService) ListDepartments(ctx context.Context, organizationID string) ([]domain.Department, error) {
	return s.deptRepo.ListDepartmentsByOrganization(ctx, organizationID)
}

// UpdateDepartment implements portssvc.DepartmentSvcFacade.
func (s *departmentService) UpdateDepartment(ctx context.Context, departmentID string, req dto.UpdateDepartmentRequest) (*domain.Department, error) {
	dept, err := s.deptRepo.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		dept.Name = *req.Name
	}
	if req.Code != nil && *req.Code != dept.Code {
		existing, err := s.deptRepo.FindDepartmentByCode(ctx, dept.OrganizationID, *req.Code)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check department code: %w", err)
		}
		if existing != nil {
			return nil, apperrors.NewConflictError(fmt.Sprintf("department code %s already exists in organization", *req.Code))
		}
		dept.Code = *req.Code
	}
	if req.ParentDeptID != nil {
		dept.ParentDeptID = req.ParentDeptID
	}
	dept.UpdatedAt = time.Now().UTC()

	if err := s.deptRepo.UpdateDepartment(ctx, *dept); err != nil {
		return nil, fmt.Errorf("failed to update department %s: %w", departmentID, err)
	}
	return dept, nil
}

// DeleteDepartment implements portssvc.DepartmentSvcFacade.
func (s *departmentService) DeleteDepartment(ctx context.Context, departmentID string) error {
	if _, err := s.deptRepo.FindDepartmentByID(ctx, departmentID); err != nil {
		return err
	}
	if err := s.deptRepo.DeleteDepartment(ctx, departmentID); err != nil {
		return fmt.Errorf("failed to delete department %s: %w", departmentID, err)
	}
	return nil
}
