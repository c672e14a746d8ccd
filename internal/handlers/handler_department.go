package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sgpaytech/cpf_payroll_app/internal/apperrors"
	portssvc "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/services"
	"github.com/sgpaytech/cpf_payroll_app/internal/dto"
	"github.com/sgpaytech/cpf_payroll_app/internal/middleware"
)

// departmentHandler handles HTTP requests related to departments.
type departmentHandler struct {
	departmentService portssvc.DepartmentSvcFacade
}

// newDepartmentHandler creates a new departmentHandler.
func newDepartmentHandler(ds portssvc.DepartmentSvcFacade) *departmentHandler {
	return &departmentHandler{
		departmentService: ds,
	}
}

// registerDepartmentRoutes registers routes related to departments. Creation and listing
// are nested under the owning organization; item routes are flat.
func registerDepartmentRoutes(rg *gin.RouterGroup, ds portssvc.DepartmentSvcFacade) {
	h := newDepartmentHandler(ds)

	rg.POST("/organizations/:organizationID/departments", h.createDepartment)
	rg.GET("/organizations/:organizationID/departments", h.listDepartments)

	departments := rg.Group("/departments")
	{
		departments.GET("/:departmentID", h.getDepartmentByID)
		departments.PUT("/:departmentID", h.updateDepartment)
		departments.DELETE("/:departmentID", h.deleteDepartment)
	}
}

// createDepartment godoc
// @Summary Create a new department
// @Tags departments
// @Accept  json
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   department body dto.CreateDepartmentRequest true "Department details"
// @Success 201 {object} dto.DepartmentResponse
// @Failure 404 {object} map[string]string "Organization not found"
// @Failure 409 {object} map[string]string "Department code already exists"
// @Router /organizations/{organizationID}/departments [post]
func (h *departmentHandler) createDepartment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")

	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDepartment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	dept, err := h.departmentService.CreateDepartment(c.Request.Context(), organizationID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
			return
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create department", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create department"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToDepartmentResponse(dept))
}

// getDepartmentByID godoc
// @Summary Get a department by ID
// @Tags departments
// @Produce  json
// @Param   departmentID path string true "Department ID"
// @Success 200 {object} dto.DepartmentResponse
// @Failure 404 {object} map[string]string "Department not found"
// @Router /departments/{departmentID} [get]
func (h *departmentHandler) getDepartmentByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	departmentID := c.Param("departmentID")

	dept, err := h.departmentService.GetDepartmentByID(c.Request.Context(), departmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
			return
		}
		logger.Error("Failed to get department", slog.String("department_id", departmentID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve department"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDepartmentResponse(dept))
}

// listDepartments godoc
// @Summary List departments of an organization
// @Tags departments
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Success 200 {array} dto.DepartmentResponse
// @Router /organizations/{organizationID}/departments [get]
func (h *departmentHandler) listDepartments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")

	depts, err := h.departmentService.ListDepartments(c.Request.Context(), organizationID)
	if err != nil {
		logger.Error("Failed to list departments", slog.String("organization_id", organizationID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list departments"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDepartmentResponses(depts))
}

// updateDepartment godoc
// @Summary Update a department
// @Tags departments
// @Accept  json
// @Produce  json
// @Param   departmentID path string true "Department ID"
// @Param   department body dto.UpdateDepartmentRequest true "Fields to update"
// @Success 200 {object} dto.DepartmentResponse
// @Failure 404 {object} map[string]string "Department not found"
// @Failure 409 {object} map[string]string "Department code already exists"
// @Router /departments/{departmentID} [put]
func (h *departmentHandler) updateDepartment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	departmentID := c.Param("departmentID")

	var req dto.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateDepartment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	dept, err := h.departmentService.UpdateDepartment(c.Request.Context(), departmentID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
			return
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to update department", slog.String("department_id", departmentID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update department"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDepartmentResponse(dept))
}

// deleteDepartment godoc
// @Summary Delete a department
// @Tags departments
// @Produce  json
// @Param   departmentID path string true "Department ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Department not found"
// @Router /departments/{departmentID} [delete]
func (h *departmentHandler) deleteDepartment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	departmentID := c.Param("departmentID")

	if err := h.departmentService.DeleteDepartment(c.Request.Context(), departmentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
			return
		}
		logger.Error("Failed to delete department", slog.String("department_id", departmentID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete department"})
		return
	}

	c.Status(http.StatusNoContent)
}
