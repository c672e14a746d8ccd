package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	organizationRepo := newPgxOrganizationRepository(dbPool)
	departmentRepo := newPgxDepartmentRepository(dbPool)
	employeeRepo := newPgxEmployeeRepository(dbPool)
	payrollRepo := newPgxPayrollRepository(dbPool)
	jobRepo := newPgxJobRepository(dbPool)

	return portsrepo.RepositoryProvider{
		OrganizationRepo: organizationRepo,
		DepartmentRepo:   departmentRepo,
		EmployeeRepo:     employeeRepo,
		PayrollRepo:      payrollRepo,
		JobRepo:          jobRepo,
	}
}
