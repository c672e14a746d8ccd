package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sgpaytech/cpf_payroll_app/internal/apperrors"
	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
	portssvc "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/services"
	"github.com/sgpaytech/cpf_payroll_app/internal/dto"
	"github.com/sgpaytech/cpf_payroll_app/internal/handlers"
)

// --- Mock PayrollService ---
type MockPayrollService struct {
	mock.Mock
}

func (m *MockPayrollService) ProcessPayroll(ctx context.Context, req domain.PayrollRunRequest) (*domain.PayrollRunOutcome, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollRunOutcome), args.Error(1)
}

func (m *MockPayrollService) GetPayrollSummary(ctx context.Context, organizationID string, year, month int) (*domain.PayrollSummary, error) {
	args := m.Called(ctx, organizationID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollSummary), args.Error(1)
}

func (m *MockPayrollService) ValidateEmployees(ctx context.Context, organizationID string, employeeIDs []string) ([]string, error) {
	args := m.Called(ctx, organizationID, employeeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.PayrollSvcFacade = (*MockPayrollService)(nil)

// --- Mock QueueService ---
type MockQueueService struct {
	mock.Mock
}

func (m *MockQueueService) Submit(ctx context.Context, req domain.PayrollRunRequest) (*domain.PayrollJob, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollJob), args.Error(1)
}

func (m *MockQueueService) Status(ctx context.Context, jobID string) (*domain.PayrollJob, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollJob), args.Error(1)
}

func (m *MockQueueService) Cancel(ctx context.Context, jobID string) (portssvc.CancelResult, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).(portssvc.CancelResult), args.Error(1)
}

func (m *MockQueueService) Cleanup(ctx context.Context, daysToKeep int) (int64, error) {
	args := m.Called(ctx, daysToKeep)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQueueService) Metrics(ctx context.Context) (domain.QueueMetrics, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.QueueMetrics), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.QueueSvcFacade = (*MockQueueService)(nil)

// --- Test Suite ---
type PayrollHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockPayrollService *MockPayrollService
	mockQueueService   *MockQueueService
	orgID              string
}

func (suite *PayrollHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockPayrollService = new(MockPayrollService)
	suite.mockQueueService = new(MockQueueService)
	suite.orgID = uuid.NewString()

	noLimit := func(c *gin.Context) { c.Next() }
	v1 := suite.router.Group("/api/v1")
	handlers.RegisterPayrollRoutes(v1, suite.mockPayrollService, suite.mockQueueService, noLimit)
}

func (suite *PayrollHandlerTestSuite) postJSON(url string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *PayrollHandlerTestSuite) TestSubmitPayroll_Accepted() {
	body := dto.ProcessPayrollRequest{OrganizationID: suite.orgID, Year: 2025, Month: 6}
	job := &domain.PayrollJob{JobID: uuid.NewString(), State: domain.JobWaiting}

	suite.mockQueueService.On("Submit", mock.Anything, mock.MatchedBy(func(r domain.PayrollRunRequest) bool {
		return r.OrganizationID == suite.orgID && r.Year == 2025 && r.Month == 6
	})).Return(job, nil).Once()

	w := suite.postJSON("/api/v1/payroll/process", body)

	suite.Equal(http.StatusAccepted, w.Code)
	var resp dto.SubmitPayrollResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Payroll processing started", resp.Message)
	suite.Equal(job.JobID, resp.JobID)
	suite.Equal("all", resp.EmployeeCount)
	suite.mockQueueService.AssertExpectations(suite.T())
	// No employee filter means no validation round-trip.
	suite.mockPayrollService.AssertNotCalled(suite.T(), "ValidateEmployees", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayrollHandlerTestSuite) TestSubmitPayroll_SelectedEmployees() {
	ids := []string{uuid.NewString(), uuid.NewString()}
	body := dto.ProcessPayrollRequest{OrganizationID: suite.orgID, Year: 2025, Month: 6, EmployeeIDs: ids}
	job := &domain.PayrollJob{JobID: uuid.NewString(), State: domain.JobWaiting}

	suite.mockPayrollService.On("ValidateEmployees", mock.Anything, suite.orgID, ids).Return([]string{}, nil).Once()
	suite.mockQueueService.On("Submit", mock.Anything, mock.AnythingOfType("domain.PayrollRunRequest")).Return(job, nil).Once()

	w := suite.postJSON("/api/v1/payroll/process", body)

	suite.Equal(http.StatusAccepted, w.Code)
	var resp dto.SubmitPayrollResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2", resp.EmployeeCount)
	suite.mockPayrollService.AssertExpectations(suite.T())
}

func (suite *PayrollHandlerTestSuite) TestSubmitPayroll_InvalidEmployeeIDs() {
	ids := []string{uuid.NewString()}
	body := dto.ProcessPayrollRequest{OrganizationID: suite.orgID, Year: 2025, Month: 6, EmployeeIDs: ids}

	suite.mockPayrollService.On("ValidateEmployees", mock.Anything, suite.orgID, ids).Return(ids, nil).Once()

	w := suite.postJSON("/api/v1/payroll/process", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Invalid employee IDs provided", resp["error"])
	suite.Len(resp["invalidEmployeeIds"], 1)
	suite.mockQueueService.AssertNotCalled(suite.T(), "Submit", mock.Anything, mock.Anything)
}

func (suite *PayrollHandlerTestSuite) TestSubmitPayroll_DuplicateJobConflict() {
	body := dto.ProcessPayrollRequest{OrganizationID: suite.orgID, Year: 2025, Month: 6}
	existingID := uuid.NewString()

	suite.mockQueueService.On("Submit", mock.Anything, mock.AnythingOfType("domain.PayrollRunRequest")).
		Return(nil, &apperrors.DuplicateJobError{JobID: existingID, State: "active"}).Once()

	w := suite.postJSON("/api/v1/payroll/process", body)

	suite.Equal(http.StatusConflict, w.Code)
	var resp dto.DuplicateJobResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Payroll processing already active for this period", resp.Message)
	suite.Equal(existingID, resp.JobID)
	suite.False(resp.IsNewJob)
}

func (suite *PayrollHandlerTestSuite) TestSubmitPayroll_RejectsNonPositiveWage() {
	body := dto.ProcessPayrollRequest{
		OrganizationID: suite.orgID,
		Year:           2025,
		Month:          6,
		AdditionalWages: []dto.AdditionalWageRequest{
			{EmployeeID: uuid.NewString(), Amount: decimal.NewFromInt(-100), Description: "Clawback"},
		},
	}

	w := suite.postJSON("/api/v1/payroll/process", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockQueueService.AssertNotCalled(suite.T(), "Submit", mock.Anything, mock.Anything)
}

func (suite *PayrollHandlerTestSuite) TestSubmitPayroll_MissingOrganization() {
	w := suite.postJSON("/api/v1/payroll/process", gin.H{"year": 2025, "month": 6})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockQueueService.AssertNotCalled(suite.T(), "Submit", mock.Anything, mock.Anything)
}

func (suite *PayrollHandlerTestSuite) TestGetJobStatus_Success() {
	job := &domain.PayrollJob{
		JobID:    uuid.NewString(),
		State:    domain.JobCompleted,
		Progress: 100,
		Result:   &domain.PayrollRunResult{OrganizationID: suite.orgID, Year: 2025, Month: 6, Processed: 12},
	}

	suite.mockQueueService.On("Status", mock.Anything, job.JobID).Return(job, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/payroll/jobs/"+job.JobID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.JobStatusResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(job.JobID, resp.ID)
	suite.Equal("completed", resp.State)
	suite.Equal(100, resp.Progress)
	suite.Require().NotNil(resp.Result)
	suite.Equal(12, resp.Result.Processed)
}

func (suite *PayrollHandlerTestSuite) TestGetJobStatus_NotFound() {
	jobID := uuid.NewString()

	suite.mockQueueService.On("Status", mock.Anything, jobID).Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/payroll/jobs/"+jobID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *PayrollHandlerTestSuite) TestCancelJob_Success() {
	jobID := uuid.NewString()

	suite.mockQueueService.On("Cancel", mock.Anything, jobID).Return(portssvc.CancelResult{Success: true}, nil).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/payroll/jobs/"+jobID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *PayrollHandlerTestSuite) TestCancelJob_AlreadyStarted() {
	jobID := uuid.NewString()

	suite.mockQueueService.On("Cancel", mock.Anything, jobID).
		Return(portssvc.CancelResult{Success: false, Reason: "Job already started"}, nil).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/payroll/jobs/"+jobID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
	var resp map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Job already started", resp["error"])
}

func (suite *PayrollHandlerTestSuite) TestCancelJob_NotFound() {
	jobID := uuid.NewString()

	suite.mockQueueService.On("Cancel", mock.Anything, jobID).
		Return(portssvc.CancelResult{Success: false, Reason: "Job not found"}, nil).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/payroll/jobs/"+jobID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *PayrollHandlerTestSuite) TestGetPayrollSummary_Success() {
	summary := &domain.PayrollSummary{
		TotalEmployees:            3,
		TotalEmployeeContribution: decimal.RequireFromString("2400.00"),
		TotalEmployerContribution: decimal.RequireFromString("2040.00"),
		Period:                    domain.SummaryPeriod{Year: 2025, Month: 6, Status: "COMPLETED"},
	}

	suite.mockPayrollService.On("GetPayrollSummary", mock.Anything, suite.orgID, 2025, 6).Return(summary, nil).Once()

	url := fmt.Sprintf("/api/v1/payroll/summary/%s?year=2025&month=6", suite.orgID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.PayrollSummary
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(3, resp.TotalEmployees)
	suite.Equal("COMPLETED", resp.Period.Status)
}

func (suite *PayrollHandlerTestSuite) TestGetPayrollSummary_InvalidMonth() {
	url := fmt.Sprintf("/api/v1/payroll/summary/%s?year=2025&month=13", suite.orgID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPayrollService.AssertNotCalled(suite.T(), "GetPayrollSummary", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayrollHandlerTestSuite) TestGetPayrollSummary_NoPeriod() {
	suite.mockPayrollService.On("GetPayrollSummary", mock.Anything, suite.orgID, 2025, 2).
		Return(nil, apperrors.ErrPeriodNotFound).Once()

	url := fmt.Sprintf("/api/v1/payroll/summary/%s?year=2025&month=2", suite.orgID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *PayrollHandlerTestSuite) TestGetQueueMetrics() {
	metrics := domain.QueueMetrics{Waiting: 1, Active: 1, Completed: 7, Failed: 0, Total: 9}

	suite.mockQueueService.On("Metrics", mock.Anything).Return(metrics, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/payroll/queue/metrics", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.QueueMetrics
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), metrics, resp)
}

// --- Run Suite ---
func TestPayrollHandler(t *testing.T) {
	suite.Run(t, new(PayrollHandlerTestSuite))
}
