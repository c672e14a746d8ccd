package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sgpaytech/cpf_payroll_app/internal/apperrors"
	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
	portsrepo "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/repositories"
	"github.com/sgpaytech/cpf_payroll_app/internal/models"
	"github.com/sgpaytech/cpf_payroll_app/internal/utils/mapping"
)

type PgxEmployeeRepository struct {
	BaseRepository
}

// newPgxEmployeeRepository creates a new repository for employee data.
func newPgxEmployeeRepository(pool *pgxpool.Pool) portsrepo.EmployeeRepositoryFacade {
	return &PgxEmployeeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

const employeeColumns = `employee_id, organization_id, department_id, employee_number, name, email, contact_number, nric, date_of_birth, date_joined, employment_type, citizenship_status, basic_salary, allowances, is_active, deleted_at, created_at, updated_at`

const employeeInsert = `
	INSERT INTO employees (employee_id, organization_id, department_id, employee_number, name, email, contact_number, nric, date_of_birth, date_joined, employment_type, citizenship_status, basic_salary, allowances, is_active, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
`

func scanEmployee(row pgx.Row) (models.Employee, error) {
	var m models.Employee
	err := row.Scan(
		&m.EmployeeID,
		&m.OrganizationID,
		&m.DepartmentID,
		&m.EmployeeNumber,
		&m.Name,
		&m.Email,
		&m.ContactNumber,
		&m.NRIC,
		&m.DateOfBirth,
		&m.DateJoined,
		&m.EmploymentType,
		&m.CitizenshipStatus,
		&m.BasicSalary,
		&m.Allowances,
		&m.IsActive,
		&m.DeletedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func employeeInsertArgs(m models.Employee) []any {
	return []any{
		m.EmployeeID,
		m.OrganizationID,
		m.DepartmentID,
		m.EmployeeNumber,
		m.Name,
		m.Email,
		m.ContactNumber,
		m.NRIC,
		m.DateOfBirth,
		m.DateJoined,
		m.EmploymentType,
		m.CitizenshipStatus,
		m.BasicSalary,
		m.Allowances,
		m.IsActive,
		m.CreatedAt,
		m.UpdatedAt,
	}
}

// SaveEmployee inserts a new employee.
func (r *PgxEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)

	_, err := r.Pool.Exec(ctx, employeeInsert, employeeInsertArgs(m)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError(fmt.Sprintf("employee %s already exists in organization", m.EmployeeNumber))
		}
		return fmt.Errorf("failed to save employee %s: %w", m.EmployeeID, err)
	}
	return nil
}

// SaveEmployees inserts a batch of employees atomically (bulk import).
func (r *PgxEmployeeRepository) SaveEmployees(ctx context.Context, employees []domain.Employee) error {
	if len(employees) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, employee := range employees {
		m := mapping.ToModelEmployee(employee)
		batch.Queue(employeeInsert, employeeInsertArgs(m)...)
	}

	results := tx.SendBatch(ctx, batch)
	for range employees {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return apperrors.NewConflictError("one or more imported employees already exist in the organization")
			}
			return fmt.Errorf("failed to save imported employees: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to flush employee import batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

// FindEmployeeByID retrieves an employee by its unique identifier.
func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE employee_id = $1 AND deleted_at IS NULL;
	`
	m, err := scanEmployee(r.Pool.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find employee by id %s: %w", employeeID, err)
	}

	d := mapping.ToDomainEmployee(m)
	return &d, nil
}

// ListEmployeesByOrganization retrieves all live employees of an organization.
func (r *PgxEmployeeRepository) ListEmployeesByOrganization(ctx context.Context, organizationID string) ([]domain.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE organization_id = $1 AND deleted_at IS NULL
		ORDER BY employee_number;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	modelEmployees, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Employee, error) {
		return scanEmployee(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan employees: %w", err)
	}

	return mapping.ToDomainEmployeeSlice(modelEmployees), nil
}

// ListActiveEmployeesInTx retrieves the active employees of an organization inside the
// given transaction, filtered to employeeIDs when non-empty. The payroll engine reads
// inside its own transaction so the roster cannot change mid-run.
func (r *PgxEmployeeRepository) ListActiveEmployeesInTx(ctx context.Context, tx pgx.Tx, organizationID string, employeeIDs []string) ([]domain.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE organization_id = $1 AND is_active = TRUE AND deleted_at IS NULL
	`
	args := []any{organizationID}
	if len(employeeIDs) > 0 {
		query += ` AND employee_id = ANY($2)`
		args = append(args, employeeIDs)
	}
	query += ` ORDER BY employee_number;`

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query active employees: %w", err)
	}
	defer rows.Close()

	modelEmployees, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Employee, error) {
		return scanEmployee(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan active employees: %w", err)
	}

	return mapping.ToDomainEmployeeSlice(modelEmployees), nil
}

// FindMissingOrInactive returns the subset of employeeIDs that do not belong to an
// active employee of the organization.
func (r *PgxEmployeeRepository) FindMissingOrInactive(ctx context.Context, organizationID string, employeeIDs []string) ([]string, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT employee_id
		FROM employees
		WHERE organization_id = $1 AND employee_id = ANY($2) AND is_active = TRUE AND deleted_at IS NULL;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query employee ids: %w", err)
	}
	defer rows.Close()

	valid := make(map[string]struct{}, len(employeeIDs))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		valid[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employee ids: %w", err)
	}

	var missing []string
	for _, id := range employeeIDs {
		if _, ok := valid[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// UpdateEmployee updates an existing employee.
func (r *PgxEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)

	query := `
		UPDATE employees
		SET department_id = $2, name = $3, email = $4, contact_number = $5, employment_type = $6, basic_salary = $7, allowances = $8, is_active = $9, updated_at = $10
		WHERE employee_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.EmployeeID,
		m.DepartmentID,
		m.Name,
		m.Email,
		m.ContactNumber,
		m.EmploymentType,
		m.BasicSalary,
		m.Allowances,
		m.IsActive,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee %s: %w", m.EmployeeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteEmployee soft-deletes an employee and clears its active flag.
func (r *PgxEmployeeRepository) DeleteEmployee(ctx context.Context, employeeID string) error {
	query := `
		UPDATE employees
		SET deleted_at = NOW(), is_active = FALSE, updated_at = NOW()
		WHERE employee_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, employeeID)
	if err != nil {
		return fmt.Errorf("failed to delete employee %s: %w", employeeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
