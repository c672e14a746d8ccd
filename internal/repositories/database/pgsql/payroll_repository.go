package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sgpaytech/cpf_payroll_app/internal/apperrors"
	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
	portsrepo "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/repositories"
	"github.com/sgpaytech/cpf_payroll_app/internal/models"
	"github.com/sgpaytech/cpf_payroll_app/internal/utils/mapping"
)

type PgxPayrollRepository struct {
	BaseRepository
}

// newPgxPayrollRepository creates a new repository for payroll data.
func newPgxPayrollRepository(pool *pgxpool.Pool) portsrepo.PayrollRepositoryWithTx {
	return &PgxPayrollRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PayrollRepositoryWithTx = (*PgxPayrollRepository)(nil)

// CreatePeriodInTx inserts a new unprocessed payroll period inside the engine's
// transaction. The (organization_id, year_month) constraint makes a rerun of an already
// processed month fail here rather than after the per-employee work.
func (r *PgxPayrollRepository) CreatePeriodInTx(ctx context.Context, tx pgx.Tx, period domain.PayrollPeriod) error {
	m := mapping.ToModelPayrollPeriod(period)

	query := `
		INSERT INTO payroll_periods (period_id, organization_id, year_month, start_date, end_date, is_processed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := tx.Exec(ctx, query,
		m.PeriodID,
		m.OrganizationID,
		m.YearMonth,
		m.StartDate,
		m.EndDate,
		m.IsProcessed,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError(fmt.Sprintf("payroll period %d-%02d already exists for organization %s",
				period.Year(), period.Month(), m.OrganizationID))
		}
		return fmt.Errorf("failed to create payroll period: %w", err)
	}
	return nil
}

// SaveContributionInTx inserts one contribution row inside the engine's transaction.
func (r *PgxPayrollRepository) SaveContributionInTx(ctx context.Context, tx pgx.Tx, contribution domain.CpfContribution) error {
	m := mapping.ToModelCpfContribution(contribution)

	query := `
		INSERT INTO cpf_contributions (contribution_id, employee_id, payroll_period_id, ordinary_wages, additional_wages, employee_contribution, employer_contribution, ordinary_account, special_account, medisave_account, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.ContributionID,
		m.EmployeeID,
		m.PayrollPeriodID,
		m.OrdinaryWages,
		m.AdditionalWages,
		m.EmployeeContribution,
		m.EmployerContribution,
		m.OrdinaryAccount,
		m.SpecialAccount,
		m.MedisaveAccount,
		m.Status,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save contribution for employee %s: %w", m.EmployeeID, err)
	}
	return nil
}

// SaveAdditionalWagesInTx inserts the additional wage payment rows of one employee.
func (r *PgxPayrollRepository) SaveAdditionalWagesInTx(ctx context.Context, tx pgx.Tx, wages []domain.AdditionalWage) error {
	if len(wages) == 0 {
		return nil
	}

	query := `
		INSERT INTO additional_wages (additional_wage_id, employee_id, payment_date, amount, description, remarks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, wage := range wages {
		m := mapping.ToModelAdditionalWage(wage)
		_, err := tx.Exec(ctx, query,
			m.AdditionalWageID,
			m.EmployeeID,
			m.PaymentDate,
			m.Amount,
			m.Description,
			m.Remarks,
			m.CreatedAt,
			m.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save additional wage for employee %s: %w", m.EmployeeID, err)
		}
	}
	return nil
}

// FinalizePeriodInTx marks the period processed.
func (r *PgxPayrollRepository) FinalizePeriodInTx(ctx context.Context, tx pgx.Tx, periodID string, processedAt time.Time) error {
	query := `
		UPDATE payroll_periods
		SET is_processed = TRUE, processed_at = $2, updated_at = $2
		WHERE period_id = $1;
	`
	tag, err := tx.Exec(ctx, query, periodID, processedAt)
	if err != nil {
		return fmt.Errorf("failed to finalize payroll period %s: %w", periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindPeriodByOrgMonth retrieves the payroll period of an organization for a month.
func (r *PgxPayrollRepository) FindPeriodByOrgMonth(ctx context.Context, organizationID string, year, month int) (*domain.PayrollPeriod, error) {
	yearMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

	query := `
		SELECT period_id, organization_id, year_month, start_date, end_date, is_processed, processed_at, created_at, updated_at
		FROM payroll_periods
		WHERE organization_id = $1 AND year_month = $2;
	`
	var m models.PayrollPeriod
	err := r.Pool.QueryRow(ctx, query, organizationID, yearMonth).Scan(
		&m.PeriodID,
		&m.OrganizationID,
		&m.YearMonth,
		&m.StartDate,
		&m.EndDate,
		&m.IsProcessed,
		&m.ProcessedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPeriodNotFound
		}
		return nil, fmt.Errorf("failed to find payroll period %d-%02d for organization %s: %w", year, month, organizationID, err)
	}

	d := mapping.ToDomainPayrollPeriod(m)
	return &d, nil
}

// FindContributionsByPeriodID retrieves all contribution rows of a period.
func (r *PgxPayrollRepository) FindContributionsByPeriodID(ctx context.Context, periodID string) ([]domain.CpfContribution, error) {
	query := `
		SELECT contribution_id, employee_id, payroll_period_id, ordinary_wages, additional_wages, employee_contribution, employer_contribution, ordinary_account, special_account, medisave_account, status, paid_at, payment_reference, created_at, updated_at
		FROM cpf_contributions
		WHERE payroll_period_id = $1
		ORDER BY employee_id;
	`
	rows, err := r.Pool.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contributions: %w", err)
	}
	defer rows.Close()

	modelContributions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CpfContribution, error) {
		var m models.CpfContribution
		err := row.Scan(
			&m.ContributionID,
			&m.EmployeeID,
			&m.PayrollPeriodID,
			&m.OrdinaryWages,
			&m.AdditionalWages,
			&m.EmployeeContribution,
			&m.EmployerContribution,
			&m.OrdinaryAccount,
			&m.SpecialAccount,
			&m.MedisaveAccount,
			&m.Status,
			&m.PaidAt,
			&m.PaymentReference,
			&m.CreatedAt,
			&m.UpdatedAt,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan contributions: %w", err)
	}

	return mapping.ToDomainCpfContributionSlice(modelContributions), nil
}
