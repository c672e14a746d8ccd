package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sgpaytech/cpf_payroll_app/internal/apperrors"
	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
	portssvc "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/services"
	"github.com/sgpaytech/cpf_payroll_app/internal/core/services"
	"github.com/sgpaytech/cpf_payroll_app/internal/platform/rates"
)

// fakeTx satisfies pgx.Tx for passing through the repository mocks; none of its methods
// are ever invoked in these tests.
type fakeTx struct {
	pgx.Tx
}

// --- Mock PayrollRepository ---
type MockPayrollRepository struct {
	mock.Mock
}

func (m *MockPayrollRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockPayrollRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPayrollRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPayrollRepository) CreatePeriodInTx(ctx context.Context, tx pgx.Tx, period domain.PayrollPeriod) error {
	args := m.Called(ctx, tx, period)
	return args.Error(0)
}

func (m *MockPayrollRepository) SaveContributionInTx(ctx context.Context, tx pgx.Tx, contribution domain.CpfContribution) error {
	args := m.Called(ctx, tx, contribution)
	return args.Error(0)
}

func (m *MockPayrollRepository) SaveAdditionalWagesInTx(ctx context.Context, tx pgx.Tx, wages []domain.AdditionalWage) error {
	args := m.Called(ctx, tx, wages)
	return args.Error(0)
}

func (m *MockPayrollRepository) FinalizePeriodInTx(ctx context.Context, tx pgx.Tx, periodID string, processedAt time.Time) error {
	args := m.Called(ctx, tx, periodID, processedAt)
	return args.Error(0)
}

func (m *MockPayrollRepository) FindPeriodByOrgMonth(ctx context.Context, organizationID string, year, month int) (*domain.PayrollPeriod, error) {
	args := m.Called(ctx, organizationID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollPeriod), args.Error(1)
}

func (m *MockPayrollRepository) FindContributionsByPeriodID(ctx context.Context, periodID string) ([]domain.CpfContribution, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CpfContribution), args.Error(1)
}

// --- Mock EmployeeRepository ---
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListEmployeesByOrganization(ctx context.Context, organizationID string) ([]domain.Employee, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListActiveEmployeesInTx(ctx context.Context, tx pgx.Tx, organizationID string, employeeIDs []string) ([]domain.Employee, error) {
	args := m.Called(ctx, tx, organizationID, employeeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindMissingOrInactive(ctx context.Context, organizationID string, employeeIDs []string) ([]string, error) {
	args := m.Called(ctx, organizationID, employeeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) SaveEmployees(ctx context.Context, employees []domain.Employee) error {
	args := m.Called(ctx, employees)
	return args.Error(0)
}

func (m *MockEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) DeleteEmployee(ctx context.Context, employeeID string) error {
	args := m.Called(ctx, employeeID)
	return args.Error(0)
}

// --- Test Suite ---
type PayrollServiceTestSuite struct {
	suite.Suite
	mockPayrollRepo  *MockPayrollRepository
	mockEmployeeRepo *MockEmployeeRepository
	service          portssvc.PayrollSvcFacade
	tx               fakeTx
	orgID            string
}

func (suite *PayrollServiceTestSuite) SetupTest() {
	suite.mockPayrollRepo = new(MockPayrollRepository)
	suite.mockEmployeeRepo = new(MockEmployeeRepository)
	suite.tx = fakeTx{}
	suite.orgID = uuid.NewString()

	rateProvider := services.NewCpfRatesService(rates.NewStaticSource())
	suite.Require().NoError(rateProvider.Refresh(context.Background()))

	suite.service = services.NewPayrollService(
		suite.mockPayrollRepo,
		suite.mockEmployeeRepo,
		rateProvider,
		decimal.NewFromInt(6000),
		time.Minute,
	)
}

func (suite *PayrollServiceTestSuite) testEmployee(salary string) domain.Employee {
	return domain.Employee{
		EmployeeID:     uuid.NewString(),
		OrganizationID: suite.orgID,
		EmployeeNumber: "EMP001",
		Name:           "Tan Wei Ling",
		NRIC:           "S1234567A",
		DateOfBirth:    time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC),
		DateJoined:     time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
		EmploymentType: domain.EmploymentPermanent,
		BasicSalary:    dec(salary),
		IsActive:       true,
	}
}

// --- Test Cases ---

func (suite *PayrollServiceTestSuite) TestProcessPayroll_Success() {
	ctx := context.Background()
	employee := suite.testEmployee("5000")
	req := domain.PayrollRunRequest{OrganizationID: suite.orgID, Year: 2025, Month: 6}

	suite.mockPayrollRepo.On("Begin", mock.Anything).Return(suite.tx, nil).Once()
	suite.mockPayrollRepo.On("Rollback", mock.Anything, suite.tx).Return(nil).Maybe()

	suite.mockPayrollRepo.On("CreatePeriodInTx", mock.Anything, suite.tx, mock.MatchedBy(func(p domain.PayrollPeriod) bool {
		return p.OrganizationID == suite.orgID &&
			p.StartDate.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) &&
			p.EndDate.Equal(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)) &&
			!p.IsProcessed
	})).Return(nil).Once()

	suite.mockEmployeeRepo.On("ListActiveEmployeesInTx", mock.Anything, suite.tx, suite.orgID, []string(nil)).
		Return([]domain.Employee{employee}, nil).Once()

	suite.mockPayrollRepo.On("SaveContributionInTx", mock.Anything, suite.tx, mock.MatchedBy(func(c domain.CpfContribution) bool {
		return c.EmployeeID == employee.EmployeeID &&
			c.EmployeeContribution.Equal(dec("1000.00")) &&
			c.EmployerContribution.Equal(dec("850.00")) &&
			c.OrdinaryAccount.Equal(dec("1110.00")) &&
			c.SpecialAccount.Equal(dec("370.00")) &&
			c.MedisaveAccount.Equal(dec("370.00")) &&
			c.Status == domain.PaymentPending
	})).Return(nil).Once()

	suite.mockPayrollRepo.On("FinalizePeriodInTx", mock.Anything, suite.tx, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockPayrollRepo.On("Commit", mock.Anything, suite.tx).Return(nil).Once()

	outcome, err := suite.service.ProcessPayroll(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(outcome)
	suite.Equal(1, outcome.Processed)
	suite.NotEmpty(outcome.PeriodID)

	suite.mockPayrollRepo.AssertExpectations(suite.T())
	suite.mockEmployeeRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestProcessPayroll_SavesAdditionalWages() {
	ctx := context.Background()
	employee := suite.testEmployee("4000")
	bonus := dec("500")
	req := domain.PayrollRunRequest{
		OrganizationID: suite.orgID,
		Year:           2025,
		Month:          3,
		AdditionalWages: []domain.AdditionalWageInput{
			{EmployeeID: employee.EmployeeID, Amount: bonus, Description: "Performance bonus"},
		},
	}

	suite.mockPayrollRepo.On("Begin", mock.Anything).Return(suite.tx, nil).Once()
	suite.mockPayrollRepo.On("Rollback", mock.Anything, suite.tx).Return(nil).Maybe()
	suite.mockPayrollRepo.On("CreatePeriodInTx", mock.Anything, suite.tx, mock.AnythingOfType("domain.PayrollPeriod")).Return(nil).Once()
	suite.mockEmployeeRepo.On("ListActiveEmployeesInTx", mock.Anything, suite.tx, suite.orgID, []string(nil)).
		Return([]domain.Employee{employee}, nil).Once()

	// 4000 + 500 = 4500, under the ceiling: 900.00 / 765.00
	suite.mockPayrollRepo.On("SaveContributionInTx", mock.Anything, suite.tx, mock.MatchedBy(func(c domain.CpfContribution) bool {
		return c.AdditionalWages.Equal(dec("500.00")) &&
			c.EmployeeContribution.Equal(dec("900.00")) &&
			c.EmployerContribution.Equal(dec("765.00"))
	})).Return(nil).Once()

	suite.mockPayrollRepo.On("SaveAdditionalWagesInTx", mock.Anything, suite.tx, mock.MatchedBy(func(ws []domain.AdditionalWage) bool {
		return len(ws) == 1 &&
			ws[0].EmployeeID == employee.EmployeeID &&
			ws[0].Amount.Equal(dec("500.00")) &&
			ws[0].PaymentDate.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	})).Return(nil).Once()

	suite.mockPayrollRepo.On("FinalizePeriodInTx", mock.Anything, suite.tx, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockPayrollRepo.On("Commit", mock.Anything, suite.tx).Return(nil).Once()

	outcome, err := suite.service.ProcessPayroll(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(1, outcome.Processed)
	suite.mockPayrollRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestProcessPayroll_EmptyOrganization() {
	ctx := context.Background()
	req := domain.PayrollRunRequest{OrganizationID: suite.orgID, Year: 2025, Month: 1}

	suite.mockPayrollRepo.On("Begin", mock.Anything).Return(suite.tx, nil).Once()
	suite.mockPayrollRepo.On("Rollback", mock.Anything, suite.tx).Return(nil).Maybe()
	suite.mockPayrollRepo.On("CreatePeriodInTx", mock.Anything, suite.tx, mock.AnythingOfType("domain.PayrollPeriod")).Return(nil).Once()
	suite.mockEmployeeRepo.On("ListActiveEmployeesInTx", mock.Anything, suite.tx, suite.orgID, []string(nil)).
		Return([]domain.Employee{}, nil).Once()
	suite.mockPayrollRepo.On("FinalizePeriodInTx", mock.Anything, suite.tx, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockPayrollRepo.On("Commit", mock.Anything, suite.tx).Return(nil).Once()

	outcome, err := suite.service.ProcessPayroll(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(0, outcome.Processed)
	suite.mockPayrollRepo.AssertNotCalled(suite.T(), "SaveContributionInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockPayrollRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestProcessPayroll_DuplicatePeriod() {
	ctx := context.Background()
	req := domain.PayrollRunRequest{OrganizationID: suite.orgID, Year: 2025, Month: 6}
	conflictErr := apperrors.NewConflictError("payroll period already exists")

	suite.mockPayrollRepo.On("Begin", mock.Anything).Return(suite.tx, nil).Once()
	suite.mockPayrollRepo.On("Rollback", mock.Anything, suite.tx).Return(nil).Once()
	suite.mockPayrollRepo.On("CreatePeriodInTx", mock.Anything, suite.tx, mock.AnythingOfType("domain.PayrollPeriod")).Return(conflictErr).Once()

	outcome, err := suite.service.ProcessPayroll(ctx, req)

	suite.Require().Error(err)
	suite.Nil(outcome)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockPayrollRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockPayrollRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestProcessPayroll_RollsBackOnEmployeeFailure() {
	ctx := context.Background()
	first := suite.testEmployee("5000")
	second := suite.testEmployee("4000")
	req := domain.PayrollRunRequest{OrganizationID: suite.orgID, Year: 2025, Month: 6}
	saveErr := assert.AnError

	suite.mockPayrollRepo.On("Begin", mock.Anything).Return(suite.tx, nil).Once()
	suite.mockPayrollRepo.On("Rollback", mock.Anything, suite.tx).Return(nil).Once()
	suite.mockPayrollRepo.On("CreatePeriodInTx", mock.Anything, suite.tx, mock.AnythingOfType("domain.PayrollPeriod")).Return(nil).Once()
	suite.mockEmployeeRepo.On("ListActiveEmployeesInTx", mock.Anything, suite.tx, suite.orgID, []string(nil)).
		Return([]domain.Employee{first, second}, nil).Once()

	// First insert succeeds, second fails; the whole run must abort.
	suite.mockPayrollRepo.On("SaveContributionInTx", mock.Anything, suite.tx, mock.MatchedBy(func(c domain.CpfContribution) bool {
		return c.EmployeeID == first.EmployeeID
	})).Return(nil).Once()
	suite.mockPayrollRepo.On("SaveContributionInTx", mock.Anything, suite.tx, mock.MatchedBy(func(c domain.CpfContribution) bool {
		return c.EmployeeID == second.EmployeeID
	})).Return(saveErr).Once()

	outcome, err := suite.service.ProcessPayroll(ctx, req)

	suite.Require().Error(err)
	suite.Nil(outcome)
	suite.ErrorIs(err, saveErr)
	suite.mockPayrollRepo.AssertNotCalled(suite.T(), "FinalizePeriodInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockPayrollRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockPayrollRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestGetPayrollSummary_Success() {
	ctx := context.Background()
	periodID := uuid.NewString()
	period := &domain.PayrollPeriod{PeriodID: periodID, OrganizationID: suite.orgID}

	contributions := []domain.CpfContribution{
		{
			OrdinaryWages:        dec("5000"),
			EmployeeContribution: dec("1000.00"),
			EmployerContribution: dec("850.00"),
			OrdinaryAccount:      dec("1110.00"),
			SpecialAccount:       dec("370.00"),
			MedisaveAccount:      dec("370.00"),
			Status:               domain.PaymentPending,
		},
		{
			OrdinaryWages:        dec("4000"),
			EmployeeContribution: dec("800.00"),
			EmployerContribution: dec("680.00"),
			OrdinaryAccount:      dec("888.00"),
			SpecialAccount:       dec("296.00"),
			MedisaveAccount:      dec("296.00"),
			Status:               domain.PaymentProcessed,
		},
	}

	suite.mockPayrollRepo.On("FindPeriodByOrgMonth", ctx, suite.orgID, 2025, 6).Return(period, nil).Once()
	suite.mockPayrollRepo.On("FindContributionsByPeriodID", ctx, periodID).Return(contributions, nil).Once()

	summary, err := suite.service.GetPayrollSummary(ctx, suite.orgID, 2025, 6)

	suite.Require().NoError(err)
	suite.Equal(2, summary.TotalEmployees)
	suite.True(summary.TotalOrdinaryWages.Equal(dec("9000")))
	suite.True(summary.TotalEmployeeContribution.Equal(dec("1800.00")))
	suite.True(summary.TotalEmployerContribution.Equal(dec("1530.00")))
	suite.True(summary.TotalCPFContribution.Equal(dec("3330.00")))
	suite.True(summary.AccountBreakdown.OrdinaryAccount.Equal(dec("1998.00")))
	suite.Equal(1, summary.PaymentStatus.Pending)
	suite.Equal(1, summary.PaymentStatus.Paid)
	suite.Equal("IN_PROGRESS", summary.Period.Status)
	suite.mockPayrollRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestGetPayrollSummary_AllPaidIsCompleted() {
	ctx := context.Background()
	periodID := uuid.NewString()
	period := &domain.PayrollPeriod{PeriodID: periodID, OrganizationID: suite.orgID}
	contributions := []domain.CpfContribution{
		{EmployeeContribution: dec("1000.00"), EmployerContribution: dec("850.00"), Status: domain.PaymentProcessed},
	}

	suite.mockPayrollRepo.On("FindPeriodByOrgMonth", ctx, suite.orgID, 2025, 5).Return(period, nil).Once()
	suite.mockPayrollRepo.On("FindContributionsByPeriodID", ctx, periodID).Return(contributions, nil).Once()

	summary, err := suite.service.GetPayrollSummary(ctx, suite.orgID, 2025, 5)

	suite.Require().NoError(err)
	suite.Equal("COMPLETED", summary.Period.Status)
}

func (suite *PayrollServiceTestSuite) TestGetPayrollSummary_PeriodNotFound() {
	ctx := context.Background()

	suite.mockPayrollRepo.On("FindPeriodByOrgMonth", ctx, suite.orgID, 2025, 12).Return(nil, apperrors.ErrPeriodNotFound).Once()

	summary, err := suite.service.GetPayrollSummary(ctx, suite.orgID, 2025, 12)

	suite.Require().Error(err)
	suite.Nil(summary)
	suite.ErrorIs(err, apperrors.ErrPeriodNotFound)
	suite.mockPayrollRepo.AssertNotCalled(suite.T(), "FindContributionsByPeriodID", mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestValidateEmployees_AllValid() {
	ctx := context.Background()
	ids := []string{uuid.NewString(), uuid.NewString()}

	suite.mockEmployeeRepo.On("FindMissingOrInactive", ctx, suite.orgID, ids).Return([]string{}, nil).Once()

	invalid, err := suite.service.ValidateEmployees(ctx, suite.orgID, ids)

	suite.Require().NoError(err)
	suite.Empty(invalid)
	suite.mockEmployeeRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestValidateEmployees_ReportsUnknownIDs() {
	ctx := context.Background()
	unknown := uuid.NewString()
	ids := []string{uuid.NewString(), unknown}

	suite.mockEmployeeRepo.On("FindMissingOrInactive", ctx, suite.orgID, ids).Return([]string{unknown}, nil).Once()

	invalid, err := suite.service.ValidateEmployees(ctx, suite.orgID, ids)

	suite.Require().NoError(err)
	suite.Equal([]string{unknown}, invalid)
}

func (suite *PayrollServiceTestSuite) TestValidateEmployees_EmptyInput() {
	ctx := context.Background()

	invalid, err := suite.service.ValidateEmployees(ctx, suite.orgID, nil)

	suite.Require().NoError(err)
	suite.Empty(invalid)
	suite.mockEmployeeRepo.AssertNotCalled(suite.T(), "FindMissingOrInactive", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Suite ---
func TestPayrollService(t *testing.T) {
	suite.Run(t, new(PayrollServiceTestSuite))
}
