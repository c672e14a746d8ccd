package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
	portssvc "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/services"
	"github.com/sgpaytech/cpf_payroll_app/internal/core/services"
)

const workerTestTimeout = 2 * time.Second

// --- Mock PayrollProcessor ---
type MockPayrollProcessor struct {
	mock.Mock
}

func (m *MockPayrollProcessor) ProcessPayroll(ctx context.Context, req domain.PayrollRunRequest) (*domain.PayrollRunOutcome, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollRunOutcome), args.Error(1)
}

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

// stubRateProvider satisfies RateProvider without a schedule.
type stubRateProvider struct {
	refreshErr error
}

func (s *stubRateProvider) Refresh(ctx context.Context) error { return s.refreshErr }

func (s *stubRateProvider) Resolve(age int, wage decimal.Decimal) domain.RateParameters {
	return services.DefaultRateParameters()
}

// --- Test Suite ---
type PayrollWorkerTestSuite struct {
	suite.Suite
	mockJobRepo   *MockJobRepository
	mockProcessor *MockPayrollProcessor
	mockQueue     *MockQueueService
	rates         *stubRateProvider
}

func (suite *PayrollWorkerTestSuite) SetupTest() {
	suite.mockJobRepo = new(MockJobRepository)
	suite.mockProcessor = new(MockPayrollProcessor)
	suite.mockQueue = new(MockQueueService)
	suite.rates = &stubRateProvider{}
}

func (suite *PayrollWorkerTestSuite) newWorker() *services.PayrollWorker {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return services.NewPayrollWorker(
		suite.mockJobRepo,
		suite.mockProcessor,
		suite.rates,
		suite.mockQueue,
		logger,
		5*time.Millisecond,
		30,
	)
}

func (suite *PayrollWorkerTestSuite) waitingJob() *domain.PayrollJob {
	req := domain.PayrollRunRequest{OrganizationID: uuid.NewString(), Year: 2025, Month: 6}
	return &domain.PayrollJob{
		JobID:    uuid.NewString(),
		JobKey:   req.JobKey(),
		State:    domain.JobActive,
		Progress: 10,
		Data:     req,
	}
}

func (suite *PayrollWorkerTestSuite) waitFor(done <-chan struct{}, what string) {
	select {
	case <-done:
	case <-time.After(workerTestTimeout):
		suite.FailNow("timed out waiting for " + what)
	}
}

// --- Test Cases ---

func (suite *PayrollWorkerTestSuite) TestProcessesClaimedJob() {
	job := suite.waitingJob()
	completed := make(chan struct{})

	suite.mockJobRepo.On("RequeueActiveJobs", mock.Anything).Return(int64(0), nil).Once()
	suite.mockJobRepo.On("ClaimNextWaitingJob", mock.Anything, 10).Return(job, nil).Once()
	suite.mockJobRepo.On("ClaimNextWaitingJob", mock.Anything, 10).Return(nil, nil)
	suite.mockProcessor.On("ProcessPayroll", mock.Anything, job.Data).
		Return(&domain.PayrollRunOutcome{PeriodID: uuid.NewString(), Processed: 4}, nil).Once()
	suite.mockJobRepo.On("UpdateJobProgress", mock.Anything, job.JobID, 100).Return(nil).Once()
	suite.mockJobRepo.On("CompleteJob", mock.Anything, job.JobID, mock.MatchedBy(func(r domain.PayrollRunResult) bool {
		return r.OrganizationID == job.Data.OrganizationID &&
			r.Year == 2025 && r.Month == 6 && r.Processed == 4
	}), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) { close(completed) }).
		Return(nil).Once()

	worker := suite.newWorker()
	worker.Start(context.Background())
	suite.waitFor(completed, "job completion")
	worker.Stop()

	suite.mockJobRepo.AssertExpectations(suite.T())
	suite.mockProcessor.AssertExpectations(suite.T())
	suite.mockJobRepo.AssertNotCalled(suite.T(), "FailJob", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayrollWorkerTestSuite) TestFailsJobWhenProcessingFails() {
	job := suite.waitingJob()
	failed := make(chan struct{})

	suite.mockJobRepo.On("RequeueActiveJobs", mock.Anything).Return(int64(0), nil).Once()
	suite.mockJobRepo.On("ClaimNextWaitingJob", mock.Anything, 10).Return(job, nil).Once()
	suite.mockJobRepo.On("ClaimNextWaitingJob", mock.Anything, 10).Return(nil, nil)
	suite.mockProcessor.On("ProcessPayroll", mock.Anything, job.Data).Return(nil, assert.AnError).Once()
	suite.mockJobRepo.On("FailJob", mock.Anything, job.JobID, assert.AnError.Error(), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) { close(failed) }).
		Return(nil).Once()

	worker := suite.newWorker()
	worker.Start(context.Background())
	suite.waitFor(failed, "job failure record")
	worker.Stop()

	suite.mockJobRepo.AssertExpectations(suite.T())
	suite.mockJobRepo.AssertNotCalled(suite.T(), "CompleteJob", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayrollWorkerTestSuite) TestFailsJobWhenRateRefreshFails() {
	job := suite.waitingJob()
	failed := make(chan struct{})
	suite.rates.refreshErr = assert.AnError

	suite.mockJobRepo.On("RequeueActiveJobs", mock.Anything).Return(int64(0), nil).Once()
	suite.mockJobRepo.On("ClaimNextWaitingJob", mock.Anything, 10).Return(job, nil).Once()
	suite.mockJobRepo.On("ClaimNextWaitingJob", mock.Anything, 10).Return(nil, nil)
	suite.mockJobRepo.On("FailJob", mock.Anything, job.JobID, mock.MatchedBy(func(reason string) bool {
		return reason != ""
	}), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) { close(failed) }).
		Return(nil).Once()

	worker := suite.newWorker()
	worker.Start(context.Background())
	suite.waitFor(failed, "job failure record")
	worker.Stop()

	suite.mockProcessor.AssertNotCalled(suite.T(), "ProcessPayroll", mock.Anything, mock.Anything)
	suite.mockJobRepo.AssertExpectations(suite.T())
}

func (suite *PayrollWorkerTestSuite) TestIdleWhenQueueIsEmpty() {
	polled := make(chan struct{})
	var fired bool

	suite.mockJobRepo.On("RequeueActiveJobs", mock.Anything).Return(int64(0), nil).Once()
	suite.mockJobRepo.On("ClaimNextWaitingJob", mock.Anything, 10).
		Run(func(args mock.Arguments) {
			if !fired {
				fired = true
				close(polled)
			}
		}).
		Return(nil, nil)

	worker := suite.newWorker()
	worker.Start(context.Background())
	suite.waitFor(polled, "first poll")
	worker.Stop()

	suite.mockProcessor.AssertNotCalled(suite.T(), "ProcessPayroll", mock.Anything, mock.Anything)
	suite.mockJobRepo.AssertNotCalled(suite.T(), "CompleteJob", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayrollWorkerTestSuite) TestRecordsFailureWhenShutDownMidRun() {
	job := suite.waitingJob()
	failed := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	suite.mockJobRepo.On("RequeueActiveJobs", mock.Anything).Return(int64(0), nil).Once()
	suite.mockJobRepo.On("ClaimNextWaitingJob", mock.Anything, 10).Return(job, nil).Once()
	suite.mockJobRepo.On("ClaimNextWaitingJob", mock.Anything, 10).Return(nil, nil).Maybe()

	// The run is interrupted mid-flight: shutdown cancels the worker context while the
	// processor holds the job, and the processor gives up like pgx would.
	suite.mockProcessor.On("ProcessPayroll", mock.Anything, job.Data).
		Run(func(args mock.Arguments) {
			cancel()
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.Canceled).Once()

	// The failure must still be recorded, on a context that survived the shutdown;
	// otherwise the job stays active and its dedup key is blocked for good.
	suite.mockJobRepo.On("FailJob", mock.MatchedBy(func(c context.Context) bool {
		return c.Err() == nil
	}), job.JobID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) { close(failed) }).
		Return(nil).Once()

	worker := suite.newWorker()
	worker.Start(ctx)
	suite.waitFor(failed, "job failure record")
	worker.Stop()

	suite.mockJobRepo.AssertExpectations(suite.T())
	suite.mockProcessor.AssertExpectations(suite.T())
}

func (suite *PayrollWorkerTestSuite) TestRequeuesStaleActiveJobsOnStart() {
	suite.mockJobRepo.On("RequeueActiveJobs", mock.Anything).Return(int64(2), nil).Once()
	suite.mockJobRepo.On("ClaimNextWaitingJob", mock.Anything, 10).Return(nil, nil).Maybe()

	worker := suite.newWorker()
	worker.Start(context.Background())
	worker.Stop()

	suite.mockJobRepo.AssertExpectations(suite.T())
}

func (suite *PayrollWorkerTestSuite) TestStopIsIdempotent() {
	suite.mockJobRepo.On("RequeueActiveJobs", mock.Anything).Return(int64(0), nil).Once()
	suite.mockJobRepo.On("ClaimNextWaitingJob", mock.Anything, 10).Return(nil, nil).Maybe()

	worker := suite.newWorker()
	worker.Start(context.Background())
	worker.Stop()
	worker.Stop()
}

// --- Run Suite ---
func TestPayrollWorker(t *testing.T) {
	suite.Run(t, new(PayrollWorkerTestSuite))
}
