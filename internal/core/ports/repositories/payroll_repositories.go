package repositories

import (
	"context"
	"time"

	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PayrollReader defines read operations for payroll data
type PayrollReader interface {
	// FindPeriodByOrgMonth retrieves the payroll period of an organization for a month.
	FindPeriodByOrgMonth(ctx context.Context, organizationID string, year, month int) (*domain.PayrollPeriod, error)

	// FindContributionsByPeriodID retrieves all contribution rows of a period.
	FindContributionsByPeriodID(ctx context.Context, periodID string) ([]domain.CpfContribution, error)
}

// PayrollWriter defines the transaction-scoped write operations the processing engine
// performs. Every method takes the engine's transaction; nothing is visible outside it
// until the engine commits.
type PayrollWriter interface {
	// CreatePeriodInTx inserts a new unprocessed payroll period. A violation of the
	// per-organization-per-month uniqueness constraint surfaces as a conflict error.
	CreatePeriodInTx(ctx context.Context, tx pgx.Tx, period domain.PayrollPeriod) error

	// SaveContributionInTx inserts one contribution row.
	SaveContributionInTx(ctx context.Context, tx pgx.Tx, contribution domain.CpfContribution) error

	// SaveAdditionalWagesInTx inserts the additional wage payment rows of one employee.
	SaveAdditionalWagesInTx(ctx context.Context, tx pgx.Tx, wages []domain.AdditionalWage) error

	// FinalizePeriodInTx marks the period processed.
	FinalizePeriodInTx(ctx context.Context, tx pgx.Tx, periodID string, processedAt time.Time) error
}

// PayrollRepositoryFacade combines all payroll repository interfaces
type PayrollRepositoryFacade interface {
	PayrollReader
	PayrollWriter
}

// PayrollRepositoryWithTx extends PayrollRepositoryFacade with transaction capabilities
type PayrollRepositoryWithTx interface {
	PayrollRepositoryFacade
	TransactionManager
}
