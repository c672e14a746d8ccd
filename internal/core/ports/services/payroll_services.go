package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
)

// PayrollProcessorSvc is the transaction engine: one atomic processing run per call.
type PayrollProcessorSvc interface {
	// ProcessPayroll executes one full period-processing run as a single transaction:
	// period creation, per-employee calculation and persistence, period finalization.
	// Nothing survives a mid-run error.
	ProcessPayroll(ctx context.Context, req domain.PayrollRunRequest) (*domain.PayrollRunOutcome, error)
}

// PayrollReaderSvc defines the read-side payroll operations.
type PayrollReaderSvc interface {
	// GetPayrollSummary aggregates the contribution rows of one processed period.
	GetPayrollSummary(ctx context.Context, organizationID string, year, month int) (*domain.PayrollSummary, error)

	// ValidateEmployees returns the subset of employeeIDs that do not belong to an
	// active employee of the organization. Empty result means all IDs are valid.
	ValidateEmployees(ctx context.Context, organizationID string, employeeIDs []string) ([]string, error)
}

// PayrollSvcFacade combines all payroll service interfaces.
type PayrollSvcFacade interface {
	PayrollProcessorSvc
	PayrollReaderSvc
}

// RateProvider resolves contribution rate parameters from age and wage, backed by a
// refreshable in-memory schedule.
type RateProvider interface {
	// Refresh replaces the full rate schedule. Idempotent; invoked once per run.
	Refresh(ctx context.Context) error

	// Resolve selects the matching bracket for the age and wage. It never fails: a
	// designed default bracket covers the remainder of the domain.
	Resolve(age int, wage decimal.Decimal) domain.RateParameters
}

// RateSource supplies the rate schedule the provider caches. In production this would
// hit the CPF board's published tables; the platform ships a static source.
type RateSource interface {
	FetchBrackets(ctx context.Context) ([]domain.RateBracket, error)
}
