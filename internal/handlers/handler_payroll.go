package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sgpaytech/cpf_payroll_app/internal/apperrors"
	portssvc "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/services"
	"github.com/sgpaytech/cpf_payroll_app/internal/dto"
	"github.com/sgpaytech/cpf_payroll_app/internal/middleware"
)

// payrollHandler handles HTTP requests related to payroll processing.
type payrollHandler struct {
	payrollService portssvc.PayrollSvcFacade
	queueService   portssvc.QueueSvcFacade
}

// newPayrollHandler creates a new payrollHandler.
func newPayrollHandler(ps portssvc.PayrollSvcFacade, qs portssvc.QueueSvcFacade) *payrollHandler {
	return &payrollHandler{
		payrollService: ps,
		queueService:   qs,
	}
}

// RegisterPayrollRoutes registers routes related to payroll processing.
func RegisterPayrollRoutes(rg *gin.RouterGroup, ps portssvc.PayrollSvcFacade, qs portssvc.QueueSvcFacade, submitLimiter gin.HandlerFunc) {
	h := newPayrollHandler(ps, qs)

	payroll := rg.Group("/payroll")
	{
		payroll.POST("/process", submitLimiter, h.submitPayroll)
		payroll.GET("/jobs/:jobID", h.getJobStatus)
		payroll.DELETE("/jobs/:jobID", h.cancelJob)
		payroll.GET("/summary/:organizationID", h.getPayrollSummary)
		payroll.GET("/queue/metrics", h.getQueueMetrics)
	}
}

// submitPayroll godoc
// @Summary Submit a payroll run
// @Description Validates the request and enqueues a payroll processing job for the organization and month
// @Tags payroll
// @Accept  json
// @Produce  json
// @Param   request body dto.ProcessPayrollRequest true "Payroll run details"
// @Success 202 {object} dto.SubmitPayrollResponse
// @Failure 400 {object} map[string]any "Invalid input or unknown employee IDs"
// @Failure 409 {object} dto.DuplicateJobResponse "A live job already exists for this organization and month"
// @Failure 500 {object} map[string]string "Failed to enqueue payroll run"
// @Router /payroll/process [post]
func (h *payrollHandler) submitPayroll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ProcessPayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitPayroll", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		logger.Warn("Payroll request validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger = logger.With(
		slog.String("organization_id", req.OrganizationID),
		slog.Int("year", req.Year),
		slog.Int("month", req.Month),
	)

	if len(req.EmployeeIDs) > 0 {
		invalid, err := h.payrollService.ValidateEmployees(c.Request.Context(), req.OrganizationID, req.EmployeeIDs)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
				return
			}
			logger.Error("Failed to validate employee IDs", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate employee IDs"})
			return
		}
		if len(invalid) > 0 {
			logger.Warn("Payroll request referenced invalid employees", slog.Int("count", len(invalid)))
			c.JSON(http.StatusBadRequest, gin.H{
				"error":              "Invalid employee IDs provided",
				"invalidEmployeeIds": invalid,
			})
			return
		}
	}

	job, err := h.queueService.Submit(c.Request.Context(), req.ToDomain())
	if err != nil {
		var dupErr *apperrors.DuplicateJobError
		if errors.As(err, &dupErr) {
			c.JSON(http.StatusConflict, dto.DuplicateJobResponse{
				Message:  fmt.Sprintf("Payroll processing already %s for this period", dupErr.State),
				JobID:    dupErr.JobID,
				Status:   dupErr.State,
				IsNewJob: false,
			})
			return
		}
		logger.Error("Failed to enqueue payroll run", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enqueue payroll run"})
		return
	}

	employeeCount := "all"
	if len(req.EmployeeIDs) > 0 {
		employeeCount = strconv.Itoa(len(req.EmployeeIDs))
	}

	logger.Info("Payroll run accepted", slog.String("job_id", job.JobID))
	c.JSON(http.StatusAccepted, dto.SubmitPayrollResponse{
		Message:       "Payroll processing started",
		JobID:         job.JobID,
		Year:          req.Year,
		Month:         req.Month,
		EmployeeCount: employeeCount,
	})
}

// getJobStatus godoc
// @Summary Get payroll job status
// @Description Retrieves the state, progress and result of a queued payroll job
// @Tags payroll
// @Produce  json
// @Param   jobID path string true "Job ID"
// @Success 200 {object} dto.JobStatusResponse
// @Failure 404 {object} map[string]string "Job not found"
// @Failure 500 {object} map[string]string "Failed to retrieve job"
// @Router /payroll/jobs/{jobID} [get]
func (h *payrollHandler) getJobStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	jobID := c.Param("jobID")

	job, err := h.queueService.Status(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		logger.Error("Failed to get job status", slog.String("job_id", jobID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve job"})
		return
	}

	c.JSON(http.StatusOK, dto.ToJobStatusResponse(job))
}

// cancelJob godoc
// @Summary Cancel a queued payroll job
// @Description Removes a job that has not started processing yet
// @Tags payroll
// @Produce  json
// @Param   jobID path string true "Job ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string "Job cannot be cancelled"
// @Router /payroll/jobs/{jobID} [delete]
func (h *payrollHandler) cancelJob(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	jobID := c.Param("jobID")

	result, err := h.queueService.Cancel(c.Request.Context(), jobID)
	if err != nil {
		logger.Error("Failed to cancel job", slog.String("job_id", jobID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel job"})
		return
	}
	if !result.Success {
		status := http.StatusConflict
		if result.Reason == "Job not found" {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": result.Reason})
		return
	}

	logger.Info("Payroll job cancelled", slog.String("job_id", jobID))
	c.JSON(http.StatusOK, gin.H{"message": "Job cancelled"})
}

// getPayrollSummary godoc
// @Summary Get payroll summary for a period
// @Description Aggregates the contribution rows of one processed payroll period
// @Tags payroll
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   year query int true "Year"
// @Param   month query int true "Month (1-12)"
// @Success 200 {object} domain.PayrollSummary
// @Failure 400 {object} map[string]string "Invalid year or month"
// @Failure 404 {object} map[string]string "No payroll period for this month"
// @Router /payroll/summary/{organizationID} [get]
func (h *payrollHandler) getPayrollSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return
	}

	summary, err := h.payrollService.GetPayrollSummary(c.Request.Context(), organizationID, year, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrPeriodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No payroll period found for this month"})
			return
		}
		logger.Error("Failed to get payroll summary",
			slog.String("organization_id", organizationID),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payroll summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// getQueueMetrics godoc
// @Summary Get queue metrics
// @Description Returns per-state counts of the payroll job queue
// @Tags payroll
// @Produce  json
// @Success 200 {object} domain.QueueMetrics
// @Router /payroll/queue/metrics [get]
func (h *payrollHandler) getQueueMetrics(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	metrics, err := h.queueService.Metrics(c.Request.Context())
	if err != nil {
		logger.Error("Failed to get queue metrics", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve queue metrics"})
		return
	}

	c.JSON(http.StatusOK, metrics)
}
