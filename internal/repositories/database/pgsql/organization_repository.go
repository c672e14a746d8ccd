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

type PgxOrganizationRepository struct {
	BaseRepository
}

// newPgxOrganizationRepository creates a new repository for organization data.
func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

const organizationColumns = `organization_id, parent_id, name, type, uen, registration_date, cpf_submission_num, deleted_at, created_at, updated_at`

func scanOrganization(row pgx.Row) (models.Organization, error) {
	var m models.Organization
	err := row.Scan(
		&m.OrganizationID,
		&m.ParentID,
		&m.Name,
		&m.Type,
		&m.UEN,
		&m.RegistrationDate,
		&m.CPFSubmissionNum,
		&m.DeletedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// SaveOrganization inserts a new organization.
func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization) error {
	m := mapping.ToModelOrganization(org)

	query := `
		INSERT INTO organizations (organization_id, parent_id, name, type, uen, registration_date, cpf_submission_num, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.OrganizationID,
		m.ParentID,
		m.Name,
		m.Type,
		m.UEN,
		m.RegistrationDate,
		m.CPFSubmissionNum,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError(fmt.Sprintf("organization %s already exists", m.OrganizationID))
		}
		return fmt.Errorf("failed to save organization %s: %w", m.OrganizationID, err)
	}
	return nil
}

// FindOrganizationByID retrieves an organization by its unique identifier.
func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `
		SELECT ` + organizationColumns + `
		FROM organizations
		WHERE organization_id = $1 AND deleted_at IS NULL;
	`
	m, err := scanOrganization(r.Pool.QueryRow(ctx, query, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find organization by id %s: %w", organizationID, err)
	}

	d := mapping.ToDomainOrganization(m)
	return &d, nil
}

// ListOrganizations retrieves all organizations that have not been soft-deleted.
func (r *PgxOrganizationRepository) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	query := `
		SELECT ` + organizationColumns + `
		FROM organizations
		WHERE deleted_at IS NULL
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query organizations: %w", err)
	}
	defer rows.Close()

	modelOrgs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Organization, error) {
		return scanOrganization(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan organizations: %w", err)
	}

	return mapping.ToDomainOrganizationSlice(modelOrgs), nil
}

// UpdateOrganization updates an existing organization.
func (r *PgxOrganizationRepository) UpdateOrganization(ctx context.Context, org domain.Organization) error {
	m := mapping.ToModelOrganization(org)

	query := `
		UPDATE organizations
		SET parent_id = $2, name = $3, type = $4, uen = $5, registration_date = $6, cpf_submission_num = $7, updated_at = $8
		WHERE organization_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.OrganizationID,
		m.ParentID,
		m.Name,
		m.Type,
		m.UEN,
		m.RegistrationDate,
		m.CPFSubmissionNum,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update organization %s: %w", m.OrganizationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteOrganization soft-deletes an organization.
func (r *PgxOrganizationRepository) DeleteOrganization(ctx context.Context, organizationID string) error {
	query := `
		UPDATE organizations
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE organization_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, organizationID)
	if err != nil {
		return fmt.Errorf("failed to delete organization %s: %w", organizationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
