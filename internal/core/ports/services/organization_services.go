package services

import (
	"context"

	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
	"github.com/sgpaytech/cpf_payroll_app/internal/dto"
)

// OrganizationSvcFacade manages the organization hierarchy.
type OrganizationSvcFacade interface {
	CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest) (*domain.Organization, error)
	GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)
	ListOrganizations(ctx context.Context) ([]domain.Organization, error)
	UpdateOrganization(ctx context.Context, organizationID string, req dto.UpdateOrganizationRequest) (*domain.Organization, error)
	DeleteOrganization(ctx context.Context, organizationID string) error
}

// DepartmentSvcFacade manages departments within an organization.
type DepartmentSvcFacade interface {
	CreateDepartment(ctx context.Context, organizationID string, req dto.CreateDepartmentRequest) (*domain.Department, error)
	GetDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error)
	ListDepartments(ctx context.Context, organizationID string) ([]domain.Department, error)
	UpdateDepartment(ctx context.Context, departmentID string, req dto.UpdateDepartmentRequest) (*domain.Department, error)
	DeleteDepartment(ctx context.Context, departmentID string) error
}

// EmployeeSvcFacade manages employee records, including CSV bulk import.
type EmployeeSvcFacade interface {
	CreateEmployee(ctx context.Context, organizationID string, req dto.CreateEmployeeRequest) (*domain.Employee, error)
	GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)
	ListEmployees(ctx context.Context, organizationID string) ([]domain.Employee, error)
	UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest) (*domain.Employee, error)
	DeleteEmployee(ctx context.Context, employeeID string) error

	// BulkImportEmployees validates and inserts a batch of employees atomically.
	BulkImportEmployees(ctx context.Context, organizationID string, rows []dto.EmployeeImportRow) (int, error)
}
