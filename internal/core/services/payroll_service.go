package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
	portsrepo "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/repositories"
	portssvc "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/services"
	"github.com/sgpaytech/cpf_payroll_app/internal/middleware"
)

// payrollService orchestrates one full period-processing run: period creation, employee
// selection, per-employee calculation and persistence, period finalization, all inside
// one database transaction.
type payrollService struct {
	payrollRepo  portsrepo.PayrollRepositoryWithTx
	employeeRepo portsrepo.EmployeeRepositoryFacade
	rates        portssvc.RateProvider
	wageCeiling  decimal.Decimal
	runTimeout   time.Duration
}

// NewPayrollService creates a new PayrollService.
func NewPayrollService(payrollRepo portsrepo.PayrollRepositoryWithTx, employeeRepo portsrepo.EmployeeRepositoryFacade, rates portssvc.RateProvider, wageCeiling decimal.Decimal, runTimeout time.Duration) portssvc.PayrollSvcFacade {
	return &payrollService{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		rates:        rates,
		wageCeiling:  wageCeiling,
		runTimeout:   runTimeout,
	}
}

var _ portssvc.PayrollSvcFacade = (*payrollService)(nil)

// ProcessPayroll implements portssvc.PayrollProcessorSvc. The run is all-or-nothing: if
// any employee fails, the transaction rolls back and no period, contribution or
// additional-wage row survives.
func (s *payrollService) ProcessPayroll(ctx context.Context, req domain.PayrollRunRequest) (*domain.PayrollRunOutcome, error) {
	logger := middleware.GetLoggerFromCtx(ctx).With(
		slog.String("organization_id", req.OrganizationID),
		slog.Int("year", req.Year),
		slog.Int("month", req.Month),
	)

	if s.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.runTimeout)
		defer cancel()
	}

	now := time.Now().UTC()
	startDate := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	endDate := startDate.AddDate(0, 1, -1)

	tx, err := s.payrollRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// No-op once the transaction is committed
	defer s.payrollRepo.Rollback(ctx, tx)

	period := domain.PayrollPeriod{
		PeriodID:       uuid.NewString(),
		OrganizationID: req.OrganizationID,
		YearMonth:      startDate,
		StartDate:      startDate,
		EndDate:        endDate,
		IsProcessed:    false,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := s.payrollRepo.CreatePeriodInTx(ctx, tx, period); err != nil {
		logger.Warn("Failed to create payroll period", slog.String("error", err.Error()))
		return nil, err
	}

	employees, err := s.employeeRepo.ListActiveEmployeesInTx(ctx, tx, req.OrganizationID, req.EmployeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees for payroll run: %w", err)
	}

	for _, employee := range employees {
		if err := s.processEmployee(ctx, tx, employee, period, req, now); err != nil {
			logger.Error("Payroll run failed for employee, rolling back",
				slog.String("employee_id", employee.EmployeeID),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to process employee %s: %w", employee.EmployeeID, err)
		}
	}

	if err := s.payrollRepo.FinalizePeriodInTx(ctx, tx, period.PeriodID, now); err != nil {
		return nil, fmt.Errorf("failed to finalize payroll period: %w", err)
	}

	if err := s.payrollRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Payroll run completed",
		slog.String("period_id", period.PeriodID),
		slog.Int("employees_processed", len(employees)))

	return &domain.PayrollRunOutcome{PeriodID: period.PeriodID, Processed: len(employees)}, nil
}

// processEmployee computes and persists one employee's contribution inside the run's
// transaction.
func (s *payrollService) processEmployee(ctx context.Context, tx pgx.Tx, employee domain.Employee, period domain.PayrollPeriod, req domain.PayrollRunRequest, now time.Time) error {
	additionalWages := sumAdditionalWages(req.AdditionalWages, employee.EmployeeID)
	// Deductions are totalled per the request contract but do not affect the statutory
	// contribution itself.
	_ = sumDeductions(req.Deductions, employee.EmployeeID)

	age := employee.AgeAt(now)
	// The ceiling caps wages before the rates apply, so the bracket lookup sees the
	// capped figure too; otherwise a high earner would fall outside every wage band.
	cappedWages := decimal.Min(employee.BasicSalary.Add(additionalWages), s.wageCeiling)
	rateParams := s.rates.Resolve(age, cappedWages)
	amounts := CalculateContribution(employee.BasicSalary, additionalWages, rateParams, s.wageCeiling)

	contribution := domain.CpfContribution{
		ContributionID:       uuid.NewString(),
		EmployeeID:           employee.EmployeeID,
		PayrollPeriodID:      period.PeriodID,
		OrdinaryWages:        amounts.OrdinaryWages,
		AdditionalWages:      amounts.AdditionalWages,
		EmployeeContribution: amounts.EmployeeContribution,
		EmployerContribution: amounts.EmployerContribution,
		OrdinaryAccount:      amounts.OrdinaryAccount,
		SpecialAccount:       amounts.SpecialAccount,
		MedisaveAccount:      amounts.MedisaveAccount,
		Status:               domain.PaymentPending,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := s.payrollRepo.SaveContributionInTx(ctx, tx, contribution); err != nil {
		return err
	}

	if additionalWages.IsPositive() {
		wageRows := make([]domain.AdditionalWage, 0)
		for _, w := range req.AdditionalWages {
			if w.EmployeeID != employee.EmployeeID {
				continue
			}
			wageRows = append(wageRows, domain.AdditionalWage{
				AdditionalWageID: uuid.NewString(),
				EmployeeID:       w.EmployeeID,
				PaymentDate:      period.StartDate,
				Amount:           w.Amount.Round(2),
				Description:      w.Description,
				Remarks:          w.Remarks,
				AuditFields: domain.AuditFields{
					CreatedAt: now,
					UpdatedAt: now,
				},
			})
		}
		if err := s.payrollRepo.SaveAdditionalWagesInTx(ctx, tx, wageRows); err != nil {
			return err
		}
	}
	return nil
}

// GetPayrollSummary implements portssvc.PayrollReaderSvc. Read-only aggregation over a
// period's contribution rows.
func (s *payrollService) GetPayrollSummary(ctx context.Context, organizationID string, year, month int) (*domain.PayrollSummary, error) {
	period, err := s.payrollRepo.FindPeriodByOrgMonth(ctx, organizationID, year, month)
	if err != nil {
		return nil, err
	}

	contributions, err := s.payrollRepo.FindContributionsByPeriodID(ctx, period.PeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to load contributions for period %s: %w", period.PeriodID, err)
	}

	summary := domain.PayrollSummary{
		TotalEmployees:            len(contributions),
		TotalOrdinaryWages:        decimal.Zero,
		TotalAdditionalWages:      decimal.Zero,
		TotalEmployeeContribution: decimal.Zero,
		TotalEmployerContribution: decimal.Zero,
		AccountBreakdown: domain.AccountTotals{
			OrdinaryAccount: decimal.Zero,
			SpecialAccount:  decimal.Zero,
			MedisaveAccount: decimal.Zero,
		},
	}

	for _, c := range contributions {
		summary.TotalOrdinaryWages = summary.TotalOrdinaryWages.Add(c.OrdinaryWages)
		summary.TotalAdditionalWages = summary.TotalAdditionalWages.Add(c.AdditionalWages)
		summary.TotalEmployeeContribution = summary.TotalEmployeeContribution.Add(c.EmployeeContribution)
		summary.TotalEmployerContribution = summary.TotalEmployerContribution.Add(c.EmployerContribution)
		summary.AccountBreakdown.OrdinaryAccount = summary.AccountBreakdown.OrdinaryAccount.Add(c.OrdinaryAccount)
		summary.AccountBreakdown.SpecialAccount = summary.AccountBreakdown.SpecialAccount.Add(c.SpecialAccount)
		summary.AccountBreakdown.MedisaveAccount = summary.AccountBreakdown.MedisaveAccount.Add(c.MedisaveAccount)

		switch c.Status {
		case domain.PaymentPending:
			summary.PaymentStatus.Pending++
		case domain.PaymentProcessed:
			summary.PaymentStatus.Paid++
		case domain.PaymentFailed:
			summary.PaymentStatus.Failed++
		}
	}

	summary.TotalCPFContribution = summary.TotalEmployeeContribution.Add(summary.TotalEmployerContribution)

	status := "IN_PROGRESS"
	if summary.PaymentStatus.Paid == len(contributions) {
		status = "COMPLETED"
	}
	summary.Period = domain.SummaryPeriod{Year: year, Month: month, Status: status}

	return &summary, nil
}

// ValidateEmployees implements portssvc.PayrollReaderSvc. Returns the IDs that do not
// belong to an active employee of the organization; an empty result means all are valid.
func (s *payrollService) ValidateEmployees(ctx context.Context, organizationID string, employeeIDs []string) ([]string, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	invalid, err := s.employeeRepo.FindMissingOrInactive(ctx, organizationID, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to validate employees: %w", err)
	}
	return invalid, nil
}

func sumAdditionalWages(wages []domain.AdditionalWageInput, employeeID string) decimal.Decimal {
	sum := decimal.Zero
	for _, w := range wages {
		if w.EmployeeID == employeeID {
			sum = sum.Add(w.Amount)
		}
	}
	return sum
}

func sumDeductions(deductions []domain.DeductionInput, employeeID string) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range deductions {
		if d.EmployeeID == employeeID {
			sum = sum.Add(d.Amount)
		}
	}
	return sum
}
