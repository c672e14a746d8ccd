package repositories

import (
	"context"

	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// EmployeeReader defines read operations for employee data
type EmployeeReader interface {
	// FindEmployeeByID retrieves an employee by its unique identifier.
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// ListEmployeesByOrganization retrieves all live employees of an organization.
	ListEmployeesByOrganization(ctx context.Context, organizationID string) ([]domain.Employee, error)

	// ListActiveEmployeesInTx retrieves the active employees of an organization inside
	// the given transaction, filtered to employeeIDs when non-empty.
	ListActiveEmployeesInTx(ctx context.Context, tx pgx.Tx, organizationID string, employeeIDs []string) ([]domain.Employee, error)

	// FindMissingOrInactive returns the subset of employeeIDs that do not belong to an
	// active employee of the organization.
	FindMissingOrInactive(ctx context.Context, organizationID string, employeeIDs []string) ([]string, error)
}

// EmployeeWriter defines write operations for employee data
type EmployeeWriter interface {
	// SaveEmployee inserts a new employee.
	SaveEmployee(ctx context.Context, employee domain.Employee) error

	// SaveEmployees inserts a batch of employees atomically (bulk import).
	SaveEmployees(ctx context.Context, employees []domain.Employee) error

	// UpdateEmployee updates an existing employee.
	UpdateEmployee(ctx context.Context, employee domain.Employee) error

	// DeleteEmployee soft-deletes an employee and clears its active flag.
	DeleteEmployee(ctx context.Context, employeeID string) error
}

// EmployeeRepositoryFacade combines all employee repository interfaces
type EmployeeRepositoryFacade interface {
	EmployeeReader
	EmployeeWriter
}
