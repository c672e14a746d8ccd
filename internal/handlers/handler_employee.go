package handlers

import (
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sgpaytech/cpf_payroll_app/internal/apperrors"
	portssvc "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/services"
	"github.com/sgpaytech/cpf_payroll_app/internal/dto"
	"github.com/sgpaytech/cpf_payroll_app/internal/middleware"
)

// employeeHandler handles HTTP requests related to employees.
type employeeHandler struct {
	employeeService portssvc.EmployeeSvcFacade
}

// newEmployeeHandler creates a new employeeHandler.
func newEmployeeHandler(es portssvc.EmployeeSvcFacade) *employeeHandler {
	return &employeeHandler{
		employeeService: es,
	}
}

// registerEmployeeRoutes registers routes related to employees.
func registerEmployeeRoutes(rg *gin.RouterGroup, es portssvc.EmployeeSvcFacade) {
	h := newEmployeeHandler(es)

	rg.POST("/organizations/:organizationID/employees", h.createEmployee)
	rg.GET("/organizations/:organizationID/employees", h.listEmployees)
	rg.POST("/organizations/:organizationID/employees/import", h.importEmployees)

	employees := rg.Group("/employees")
	{
		employees.GET("/:employeeID", h.getEmployeeByID)
		employees.PUT("/:employeeID", h.updateEmployee)
		employees.DELETE("/:employeeID", h.deleteEmployee)
	}
}

// createEmployee godoc
// @Summary Create a new employee
// @Tags employees
// @Accept  json
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   employee body dto.CreateEmployeeRequest true "Employee details"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Organization not found"
// @Failure 409 {object} map[string]string "Employee already exists"
// @Router /organizations/{organizationID}/employees [post]
func (h *employeeHandler) createEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")

	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEmployee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), organizationID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create employee", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create employee"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToEmployeeResponse(employee))
}

// getEmployeeByID godoc
// @Summary Get an employee by ID
// @Tags employees
// @Produce  json
// @Param   employeeID path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} map[string]string "Employee not found"
// @Router /employees/{employeeID} [get]
func (h *employeeHandler) getEmployeeByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID := c.Param("employeeID")

	employee, err := h.employeeService.GetEmployeeByID(c.Request.Context(), employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
			return
		}
		logger.Error("Failed to get employee", slog.String("employee_id", employeeID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve employee"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// listEmployees godoc
// @Summary List employees of an organization
// @Tags employees
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Success 200 {array} dto.EmployeeResponse
// @Router /organizations/{organizationID}/employees [get]
func (h *employeeHandler) listEmployees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")

	employees, err := h.employeeService.ListEmployees(c.Request.Context(), organizationID)
	if err != nil {
		logger.Error("Failed to list employees", slog.String("organization_id", organizationID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list employees"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeResponses(employees))
}

// updateEmployee godoc
// @Summary Update an employee
// @Tags employees
// @Accept  json
// @Produce  json
// @Param   employeeID path string true "Employee ID"
// @Param   employee body dto.UpdateEmployeeRequest true "Fields to update"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} map[string]string "Employee not found"
// @Router /employees/{employeeID} [put]
func (h *employeeHandler) updateEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID := c.Param("employeeID")

	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateEmployee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), employeeID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update employee", slog.String("employee_id", employeeID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update employee"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// deleteEmployee godoc
// @Summary Delete an employee
// @Description Soft-deletes an employee and excludes them from future payroll runs
// @Tags employees
// @Produce  json
// @Param   employeeID path string true "Employee ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Employee not found"
// @Router /employees/{employeeID} [delete]
func (h *employeeHandler) deleteEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID := c.Param("employeeID")

	if err := h.employeeService.DeleteEmployee(c.Request.Context(), employeeID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
			return
		}
		logger.Error("Failed to delete employee", slog.String("employee_id", employeeID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete employee"})
		return
	}

	c.Status(http.StatusNoContent)
}

// importEmployees godoc
// @Summary Bulk import employees from CSV
// @Description Parses a CSV file and inserts all rows atomically; a single bad row rejects the whole file
// @Tags employees
// @Accept  multipart/form-data
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   file formData file true "CSV file with employee rows"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string "Invalid file or row data"
// @Failure 404 {object} map[string]string "Organization not found"
// @Router /organizations/{organizationID}/employees/import [post]
func (h *employeeHandler) importEmployees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload: " + err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	rows, err := parseEmployeeCSV(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count, err := h.employeeService.BulkImportEmployees(c.Request.Context(), organizationID, rows)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to import employees", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import employees"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Employees imported", "count": count})
}

// parseEmployeeCSV reads a header row plus data rows into import rows. Header names are
// matched case-insensitively so exported spreadsheets survive round trips.
func parseEmployeeCSV(r io.Reader) ([]dto.EmployeeImportRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.New("failed to read CSV header row")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"employee_id", "name", "nric", "date_of_birth", "date_joined", "employment_type", "citizenship_status", "basic_salary"} {
		if _, ok := index[required]; !ok {
			return nil, errors.New("CSV is missing required column " + required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []dto.EmployeeImportRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.New("malformed CSV: " + err.Error())
		}
		rows = append(rows, dto.EmployeeImportRow{
			EmployeeNumber:    field(record, "employee_id"),
			Name:              field(record, "name"),
			NRIC:              field(record, "nric"),
			Email:             field(record, "email"),
			ContactNumber:     field(record, "contact_number"),
			DateOfBirth:       field(record, "date_of_birth"),
			DateJoined:        field(record, "date_joined"),
			EmploymentType:    field(record, "employment_type"),
			CitizenshipStatus: field(record, "citizenship_status"),
			DepartmentCode:    field(record, "department_code"),
			BasicSalary:       field(record, "basic_salary"),
			Allowances:        field(record, "allowances"),
		})
	}
	return rows, nil
}
