package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sgpaytech/cpf_payroll_app/internal/apperrors"
	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
	portssvc "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/services"
	"github.com/sgpaytech/cpf_payroll_app/internal/core/services"
	"github.com/sgpaytech/cpf_payroll_app/internal/dto"
)

// --- Mock OrganizationRepository ---
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) UpdateOrganization(ctx context.Context, org domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) DeleteOrganization(ctx context.Context, organizationID string) error {
	args := m.Called(ctx, organizationID)
	return args.Error(0)
}

// --- Mock DepartmentRepository ---
type MockDepartmentRepository struct {
	mock.Mock
}

func (m *MockDepartmentRepository) FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *MockDepartmentRepository) ListDepartmentsByOrganization(ctx context.Context, organizationID string) ([]domain.Department, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Department), args.Error(1)
}

func (m *MockDepartmentRepository) FindDepartmentByCode(ctx context.Context, organizationID, code string) (*domain.Department, error) {
	args := m.Called(ctx, organizationID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *MockDepartmentRepository) SaveDepartment(ctx context.Context, dept domain.Department) error {
	args := m.Called(ctx, dept)
	return args.Error(0)
}

func (m *MockDepartmentRepository) UpdateDepartment(ctx context.Context, dept domain.Department) error {
	args := m.Called(ctx, dept)
	return args.Error(0)
}

func (m *MockDepartmentRepository) DeleteDepartment(ctx context.Context, departmentID string) error {
	args := m.Called(ctx, departmentID)
	return args.Error(0)
}

// --- Test Suite ---
type EmployeeServiceTestSuite struct {
	suite.Suite
	mockEmployeeRepo *MockEmployeeRepository
	mockDeptRepo     *MockDepartmentRepository
	mockOrgRepo      *MockOrganizationRepository
	service          portssvc.EmployeeSvcFacade
	orgID            string
}

func (suite *EmployeeServiceTestSuite) SetupTest() {
	suite.mockEmployeeRepo = new(MockEmployeeRepository)
	suite.mockDeptRepo = new(MockDepartmentRepository)
	suite.mockOrgRepo = new(MockOrganizationRepository)
	suite.service = services.NewEmployeeService(suite.mockEmployeeRepo, suite.mockDeptRepo, suite.mockOrgRepo)
	suite.orgID = uuid.NewString()
}

func (suite *EmployeeServiceTestSuite) testOrg() *domain.Organization {
	return &domain.Organization{OrganizationID: suite.orgID, Name: "Merlion Holdings"}
}

func importRow(number, nric string) dto.EmployeeImportRow {
	return dto.EmployeeImportRow{
		EmployeeNumber:    number,
		Name:              "Lim Hui Min",
		NRIC:              nric,
		DateOfBirth:       "1992-07-04",
		DateJoined:        "2020-01-15",
		EmploymentType:    "PERMANENT",
		CitizenshipStatus: "CITIZEN",
		BasicSalary:       "4500.00",
	}
}

// --- Test Cases ---

func (suite *EmployeeServiceTestSuite) TestCreateEmployee_RejectsForeignDepartment() {
	ctx := context.Background()
	deptID := uuid.NewString()
	otherOrgDept := &domain.Department{DepartmentID: deptID, OrganizationID: uuid.NewString(), Code: "ENG"}

	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.orgID).Return(suite.testOrg(), nil).Once()
	suite.mockDeptRepo.On("FindDepartmentByID", ctx, deptID).Return(otherOrgDept, nil).Once()

	employee, err := suite.service.CreateEmployee(ctx, suite.orgID, dto.CreateEmployeeRequest{DepartmentID: &deptID})

	suite.Require().Error(err)
	suite.Nil(employee)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEmployeeRepo.AssertNotCalled(suite.T(), "SaveEmployee", mock.Anything, mock.Anything)
}

func (suite *EmployeeServiceTestSuite) TestCreateEmployee_UppercasesNRIC() {
	ctx := context.Background()

	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.orgID).Return(suite.testOrg(), nil).Once()
	suite.mockEmployeeRepo.On("SaveEmployee", ctx, mock.MatchedBy(func(e domain.Employee) bool {
		return e.NRIC == "S1234567A" && e.IsActive && e.OrganizationID == suite.orgID
	})).Return(nil).Once()

	employee, err := suite.service.CreateEmployee(ctx, suite.orgID, dto.CreateEmployeeRequest{
		EmployeeNumber: "EMP001",
		Name:           "Lim Hui Min",
		NRIC:           "s1234567a",
	})

	suite.Require().NoError(err)
	suite.Equal("S1234567A", employee.NRIC)
	suite.mockEmployeeRepo.AssertExpectations(suite.T())
}

func (suite *EmployeeServiceTestSuite) TestBulkImport_Success() {
	ctx := context.Background()
	dept := domain.Department{DepartmentID: uuid.NewString(), OrganizationID: suite.orgID, Code: "FIN"}

	rows := []dto.EmployeeImportRow{
		importRow("EMP001", "S1234567A"),
		importRow("EMP002", "T7654321Z"),
	}
	rows[1].DepartmentCode = "FIN"
	rows[1].Allowances = "250.50"

	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.orgID).Return(suite.testOrg(), nil).Once()
	suite.mockDeptRepo.On("ListDepartmentsByOrganization", ctx, suite.orgID).Return([]domain.Department{dept}, nil).Once()
	suite.mockEmployeeRepo.On("SaveEmployees", ctx, mock.MatchedBy(func(es []domain.Employee) bool {
		if len(es) != 2 {
			return false
		}
		second := es[1]
		return es[0].DepartmentID == nil &&
			second.DepartmentID != nil && *second.DepartmentID == dept.DepartmentID &&
			second.Allowances.Equal(dec("250.50")) &&
			second.IsActive
	})).Return(nil).Once()

	count, err := suite.service.BulkImportEmployees(ctx, suite.orgID, rows)

	suite.Require().NoError(err)
	suite.Equal(2, count)
	suite.mockEmployeeRepo.AssertExpectations(suite.T())
}

func (suite *EmployeeServiceTestSuite) TestBulkImport_RejectsEmptyFile() {
	ctx := context.Background()

	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.orgID).Return(suite.testOrg(), nil).Once()

	count, err := suite.service.BulkImportEmployees(ctx, suite.orgID, nil)

	suite.Require().Error(err)
	suite.Zero(count)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EmployeeServiceTestSuite) TestBulkImport_ReportsBadRowNumber() {
	ctx := context.Background()

	rows := []dto.EmployeeImportRow{
		importRow("EMP001", "S1234567A"),
		importRow("EMP002", "not-an-nric"),
	}

	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.orgID).Return(suite.testOrg(), nil).Once()
	suite.mockDeptRepo.On("ListDepartmentsByOrganization", ctx, suite.orgID).Return([]domain.Department{}, nil).Once()

	count, err := suite.service.BulkImportEmployees(ctx, suite.orgID, rows)

	suite.Require().Error(err)
	suite.Zero(count)
	suite.Contains(err.Error(), "row 2")
	suite.mockEmployeeRepo.AssertNotCalled(suite.T(), "SaveEmployees", mock.Anything, mock.Anything)
}

func (suite *EmployeeServiceTestSuite) TestBulkImport_RejectsDuplicateNumberInFile() {
	ctx := context.Background()

	rows := []dto.EmployeeImportRow{
		importRow("EMP001", "S1234567A"),
		importRow("EMP001", "T7654321Z"),
	}

	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.orgID).Return(suite.testOrg(), nil).Once()
	suite.mockDeptRepo.On("ListDepartmentsByOrganization", ctx, suite.orgID).Return([]domain.Department{}, nil).Once()

	count, err := suite.service.BulkImportEmployees(ctx, suite.orgID, rows)

	suite.Require().Error(err)
	suite.Zero(count)
	suite.Contains(err.Error(), "duplicates row 1")
	suite.mockEmployeeRepo.AssertNotCalled(suite.T(), "SaveEmployees", mock.Anything, mock.Anything)
}

func (suite *EmployeeServiceTestSuite) TestBulkImport_RejectsUnknownDepartmentCode() {
	ctx := context.Background()

	row := importRow("EMP001", "S1234567A")
	row.DepartmentCode = "NOPE"

	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.orgID).Return(suite.testOrg(), nil).Once()
	suite.mockDeptRepo.On("ListDepartmentsByOrganization", ctx, suite.orgID).Return([]domain.Department{}, nil).Once()

	count, err := suite.service.BulkImportEmployees(ctx, suite.orgID, []dto.EmployeeImportRow{row})

	suite.Require().Error(err)
	suite.Zero(count)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "NOPE")
}

func (suite *EmployeeServiceTestSuite) TestBulkImport_UnknownOrganization() {
	ctx := context.Background()

	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.orgID).Return(nil, apperrors.ErrNotFound).Once()

	count, err := suite.service.BulkImportEmployees(ctx, suite.orgID, []dto.EmployeeImportRow{importRow("EMP001", "S1234567A")})

	suite.Require().Error(err)
	suite.Zero(count)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockDeptRepo.AssertNotCalled(suite.T(), "ListDepartmentsByOrganization", mock.Anything, mock.Anything)
}

// --- Run Suite ---
func TestEmployeeService(t *testing.T) {
	suite.Run(t, new(EmployeeServiceTestSuite))
}
