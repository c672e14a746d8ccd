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

type PgxDepartmentRepository struct {
	BaseRepository
}

// newPgxDepartmentRepository creates a new repository for department data.
func newPgxDepartmentRepository(pool *pgxpool.Pool) portsrepo.DepartmentRepositoryFacade {
	return &PgxDepartmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.DepartmentRepositoryFacade = (*PgxDepartmentRepository)(nil)

const departmentColumns = `department_id, organization_id, name, code, parent_dept_id, deleted_at, created_at, updated_at`

func scanDepartment(row pgx.Row) (models.Department, error) {
	var m models.Department
	err := row.Scan(
		&m.DepartmentID,
		&m.OrganizationID,
		&m.Name,
		&m.Code,
		&m.ParentDeptID,
		&m.DeletedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// SaveDepartment inserts a new department.
func (r *PgxDepartmentRepository) SaveDepartment(ctx context.Context, dept domain.Department) error {
	m := mapping.ToModelDepartment(dept)

	query := `
		INSERT INTO departments (department_id, organization_id, name, code, parent_dept_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DepartmentID,
		m.OrganizationID,
		m.Name,
		m.Code,
		m.ParentDeptID,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError(fmt.Sprintf("department code %s already exists in organization", m.Code))
		}
		return fmt.Errorf("failed to save department %s: %w", m.DepartmentID, err)
	}
	return nil
}

// FindDepartmentByID retrieves a department by its unique identifier.
func (r *PgxDepartmentRepository) FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	query := `
		SELECT ` + departmentColumns + `
		FROM departments
		WHERE department_id = $1 AND deleted_at IS NULL;
	`
	m, err := scanDepartment(r.Pool.QueryRow(ctx, query, departmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find department by id %s: %w", departmentID, err)
	}

	d := mapping.ToDomainDepartment(m)
	return &d, nil
}

// ListDepartmentsByOrganization retrieves all live departments of an organization.
func (r *PgxDepartmentRepository) ListDepartmentsByOrganization(ctx context.Context, organizationID string) ([]domain.Department, error) {
	query := `
		SELECT ` + departmentColumns + `
		FROM departments
		WHERE organization_id = $1 AND deleted_at IS NULL
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	modelDepts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Department, error) {
		return scanDepartment(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan departments: %w", err)
	}

	return mapping.ToDomainDepartmentSlice(modelDepts), nil
}

// FindDepartmentByCode retrieves a department of an organization by its code.
func (r *PgxDepartmentRepository) FindDepartmentByCode(ctx context.Context, organizationID, code string) (*domain.Department, error) {
	query := `
		SELECT ` + departmentColumns + `
		FROM departments
		WHERE organization_id = $1 AND code = $2 AND deleted_at IS NULL;
	`
	m, err := scanDepartment(r.Pool.QueryRow(ctx, query, organizationID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find department by code %s: %w", code, err)
	}

	d := mapping.ToDomainDepartment(m)
	return &d, nil
}

// UpdateDepartment updates an existing department.
func (r *PgxDepartmentRepository) UpdateDepartment(ctx context.Context, dept domain.Department) error {
	m := mapping.ToModelDepartment(dept)

	query := `
		UPDATE departments
		SET name = $2, code = $3, parent_dept_id = $4, updated_at = $5
		WHERE department_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.DepartmentID,
		m.Name,
		m.Code,
		m.ParentDeptID,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError(fmt.Sprintf("department code %s already exists in organization", m.Code))
		}
		return fmt.Errorf("failed to update department %s: %w", m.DepartmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteDepartment soft-deletes a department.
func (r *PgxDepartmentRepository) DeleteDepartment(ctx context.Context, departmentID string) error {
	query := `
		UPDATE departments
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE department_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, departmentID)
	if err != nil {
		return fmt.Errorf("failed to delete department %s: %w", departmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
