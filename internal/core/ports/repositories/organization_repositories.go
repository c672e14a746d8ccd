package repositories

import (
	"context"

	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
)

// OrganizationReader defines read operations for organization data
type OrganizationReader interface {
	// FindOrganizationByID retrieves an organization by its unique identifier.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListOrganizations retrieves all organizations that have not been soft-deleted.
	ListOrganizations(ctx context.Context) ([]domain.Organization, error)
}

// OrganizationWriter defines write operations for organization data
type OrganizationWriter interface {
	// SaveOrganization inserts a new organization.
	SaveOrganization(ctx context.Context, org domain.Organization) error

	// UpdateOrganization updates an existing organization.
	UpdateOrganization(ctx context.Context, org domain.Organization) error

	// DeleteOrganization soft-deletes an organization.
	DeleteOrganization(ctx context.Context, organizationID string) error
}

// OrganizationRepositoryFacade combines all organization repository interfaces
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
}

// DepartmentReader defines read operations for department data
type DepartmentReader interface {
	// FindDepartmentByID retrieves a department by its unique identifier.
	FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error)

	// ListDepartmentsByOrganization retrieves all live departments of an organization.
	ListDepartmentsByOrganization(ctx context.Context, organizationID string) ([]domain.Department, error)

	// FindDepartmentByCode retrieves a department of an organization by its code.
	FindDepartmentByCode(ctx context.Context, organizationID, code string) (*domain.Department, error)
}

// DepartmentWriter defines write operations for department data
type DepartmentWriter interface {
	// SaveDepartment inserts a new department.
	SaveDepartment(ctx context.Context, dept domain.Department) error

	// UpdateDepartment updates an existing department.
	UpdateDepartment(ctx context.Context, dept domain.Department) error

	// DeleteDepartment soft-deletes a department.
	DeleteDepartment(ctx context.Context, departmentID string) error
}

// DepartmentRepositoryFacade combines all department repository interfaces
type DepartmentRepositoryFacade interface {
	DepartmentReader
	DepartmentWriter
}
