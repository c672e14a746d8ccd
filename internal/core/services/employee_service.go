package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sgpaytech/cpf_payroll_app/internal/apperrors"
	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
	portsrepo "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/repositories"
	portssvc "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/services"
	"github.com/sgpaytech/cpf_payroll_app/internal/dto"
	"github.com/sgpaytech/cpf_payroll_app/internal/middleware"
)

const importDateLayout = "2006-01-02"

var validEmploymentTypes = map[string]domain.EmploymentType{
	"PERMANENT": domain.EmploymentPermanent,
	"CONTRACT":  domain.EmploymentContract,
	"TEMPORARY": domain.EmploymentTemporary,
	"PART_TIME": domain.EmploymentPartTime,
}

var validCitizenshipStatuses = map[string]domain.CitizenshipStatus{
	"CITIZEN":               domain.CitizenshipCitizen,
	"PR_FIRST_YEAR":         domain.CitizenshipPRFirstYear,
	"PR_SECOND_YEAR":        domain.CitizenshipPRSecondYear,
	"PR_THIRD_YEAR_ONWARDS": domain.CitizenshipPRThirdYearOnward,
	"FOREIGNER":             domain.CitizenshipForeigner,
}

type employeeService struct {
	employeeRepo portsrepo.EmployeeRepositoryFacade
	deptRepo     portsrepo.DepartmentRepositoryFacade
	orgRepo      portsrepo.OrganizationRepositoryFacade
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(
	employeeRepo portsrepo.EmployeeRepositoryFacade,
	deptRepo portsrepo.DepartmentRepositoryFacade,
	orgRepo portsrepo.OrganizationRepositoryFacade,
) portssvc.EmployeeSvcFacade {
	return &employeeService{employeeRepo: employeeRepo, deptRepo: deptRepo, orgRepo: orgRepo}
}

var _ portssvc.EmployeeSvcFacade = (*employeeService)(nil)

// CreateEmployee implements portssvc.EmployeeSvcFacade.
func (s *employeeService) CreateEmployee(ctx context.Context, organizationID string, req dto.CreateEmployeeRequest) (*domain.Employee, error) {
	if _, err := s.orgRepo.FindOrganizationByID(ctx, organizationID); err != nil {
		return nil, err
	}
	if req.DepartmentID != nil {
		dept, err := s.deptRepo.FindDepartmentByID(ctx, *req.DepartmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve department %s: %w", *req.DepartmentID, err)
		}
		if dept.OrganizationID != organizationID {
			return nil, apperrors.NewValidationFailedError("department belongs to a different organization")
		}
	}

	now := time.Now().UTC()
	employee := domain.Employee{
		EmployeeID:        uuid.NewString(),
		OrganizationID:    organizationID,
		DepartmentID:      req.DepartmentID,
		EmployeeNumber:    req.EmployeeNumber,
		Name:              req.Name,
		Email:             req.Email,
		ContactNumber:     req.ContactNumber,
		NRIC:              strings.ToUpper(req.NRIC),
		DateOfBirth:       req.DateOfBirth,
		DateJoined:        req.DateJoined,
		EmploymentType:    domain.EmploymentType(req.EmploymentType),
		CitizenshipStatus: domain.CitizenshipStatus(req.CitizenshipStatus),
		BasicSalary:       req.BasicSalary,
		Allowances:        req.Allowances,
		IsActive:          true,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.employeeRepo.SaveEmployee(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to save employee: %w", err)
	}
	return &employee, nil
}

// GetEmployeeByID implements portssvc.EmployeeSvcFacade.
func (s *employeeService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	return s.employeeRepo.FindEmployeeByID(ctx, employeeID)
}

// ListEmployees implements portssvc.EmployeeSvcFacade.
func (s *employeeService) ListEmployees(ctx context.Context, organizationID string) ([]domain.Employee, error) {
	return s.employeeRepo.ListEmployeesByOrganization(ctx, organizationID)
}

// UpdateEmployee implements portssvc.EmployeeSvcFacade.
func (s *employeeService) UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	if req.DepartmentID != nil {
		dept, err := s.deptRepo.FindDepartmentByID(ctx, *req.DepartmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve department %s: %w", *req.DepartmentID, err)
		}
		if dept.OrganizationID != employee.OrganizationID {
			return nil, apperrors.NewValidationFailedError("department belongs to a different organization")
		}
		employee.DepartmentID = req.DepartmentID
	}
	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Email != nil {
		employee.Email = req.Email
	}
	if req.ContactNumber != nil {
		employee.ContactNumber = req.ContactNumber
	}
	if req.EmploymentType != nil {
		employee.EmploymentType = domain.EmploymentType(*req.EmploymentType)
	}
	if req.BasicSalary != nil {
		if req.BasicSalary.IsNegative() {
			return nil, apperrors.NewValidationFailedError("basic_salary must not be negative")
		}
		employee.BasicSalary = *req.BasicSalary
	}
	if req.Allowances != nil {
		if req.Allowances.IsNegative() {
			return nil, apperrors.NewValidationFailedError("allowances must not be negative")
		}
		employee.Allowances = *req.Allowances
	}
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}
	employee.UpdatedAt = time.Now().UTC()

	if err := s.employeeRepo.UpdateEmployee(ctx, *employee); err != nil {
		return nil, fmt.Errorf("failed to update employee %s: %w", employeeID, err)
	}
	return employee, nil
}

// DeleteEmployee implements portssvc.EmployeeSvcFacade.
func (s *employeeService) DeleteEmployee(ctx context.Context, employeeID string) error {
	if _, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID); err != nil {
		return err
	}
	if err := s.employeeRepo.DeleteEmployee(ctx, employeeID); err != nil {
		return fmt.Errorf("failed to delete employee %s: %w", employeeID, err)
	}
	return nil
}

// BulkImportEmployees implements portssvc.EmployeeSvcFacade. The whole batch is
// validated first; a single bad row rejects the import so a retried file never
// half-applies.
func (s *employeeService) BulkImportEmployees(ctx context.Context, organizationID string, rows []dto.EmployeeImportRow) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.orgRepo.FindOrganizationByID(ctx, organizationID); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, apperrors.NewValidationFailedError("import file contains no data rows")
	}

	deptIDsByCode, err := s.departmentCodeIndex(ctx, organizationID)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	employees := make([]domain.Employee, 0, len(rows))
	seenNumbers := make(map[string]int, len(rows))
	for i, row := range rows {
		employee, err := s.importRow(organizationID, row, deptIDsByCode, now)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		if prev, dup := seenNumbers[employee.EmployeeNumber]; dup {
			return 0, fmt.Errorf("row %d: %w", i+1,
				apperrors.NewValidationFailedError(fmt.Sprintf("employee_id %s duplicates row %d", employee.EmployeeNumber, prev)))
		}
		seenNumbers[employee.EmployeeNumber] = i + 1
		employees = append(employees, *employee)
	}

	if err := s.employeeRepo.SaveEmployees(ctx, employees); err != nil {
		return 0, fmt.Errorf("failed to save imported employees: %w", err)
	}

	logger.Info("Employees imported",
		slog.String("organization_id", organizationID),
		slog.Int("count", len(employees)))
	return len(employees), nil
}

func (s *employeeService) departmentCodeIndex(ctx context.Context, organizationID string) (map[string]string, error) {
	depts, err := s.deptRepo.ListDepartmentsByOrganization(ctx, organizationID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	index := make(map[string]string, len(depts))
	for _, d := range depts {
		index[d.Code] = d.DepartmentID
	}
	return index, nil
}

func (s *employeeService) importRow(organizationID string, row dto.EmployeeImportRow, deptIDsByCode map[string]string, now time.Time) (*domain.Employee, error) {
	number := strings.TrimSpace(row.EmployeeNumber)
	name := strings.TrimSpace(row.Name)
	if number == "" || name == "" {
		return nil, apperrors.NewValidationFailedError("employee_id and name are required")
	}

	nric := strings.ToUpper(strings.TrimSpace(row.NRIC))
	if !dto.ValidNRIC(nric) {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid NRIC %q", row.NRIC))
	}

	dateOfBirth, err := time.Parse(importDateLayout, strings.TrimSpace(row.DateOfBirth))
	if err != nil {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid date_of_birth %q, expected YYYY-MM-DD", row.DateOfBirth))
	}
	dateJoined, err := time.Parse(importDateLayout, strings.TrimSpace(row.DateJoined))
	if err != nil {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid date_joined %q, expected YYYY-MM-DD", row.DateJoined))
	}

	employmentType, ok := validEmploymentTypes[strings.ToUpper(strings.TrimSpace(row.EmploymentType))]
	if !ok {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid employment_type %q", row.EmploymentType))
	}
	citizenship, ok := validCitizenshipStatuses[strings.ToUpper(strings.TrimSpace(row.CitizenshipStatus))]
	if !ok {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid citizenship_status %q", row.CitizenshipStatus))
	}

	basicSalary, err := decimal.NewFromString(strings.TrimSpace(row.BasicSalary))
	if err != nil || basicSalary.IsNegative() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid basic_salary %q", row.BasicSalary))
	}
	allowances := decimal.Zero
	if trimmed := strings.TrimSpace(row.Allowances); trimmed != "" {
		allowances, err = decimal.NewFromString(trimmed)
		if err != nil || allowances.IsNegative() {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid allowances %q", row.Allowances))
		}
	}

	var departmentID *string
	if code := strings.TrimSpace(row.DepartmentCode); code != "" {
		id, ok := deptIDsByCode[code]
		if !ok {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown department_code %q", code))
		}
		departmentID = &id
	}

	var email *string
	if trimmed := strings.TrimSpace(row.Email); trimmed != "" {
		email = &trimmed
	}
	var contact *string
	if trimmed := strings.TrimSpace(row.ContactNumber); trimmed != "" {
		contact = &trimmed
	}

	return &domain.Employee{
		EmployeeID:        uuid.NewString(),
		OrganizationID:    organizationID,
		DepartmentID:      departmentID,
		EmployeeNumber:    number,
		Name:              name,
		Email:             email,
		ContactNumber:     contact,
		NRIC:              nric,
		DateOfBirth:       dateOfBirth,
		DateJoined:        dateJoined,
		EmploymentType:    employmentType,
		CitizenshipStatus: citizenship,
		BasicSalary:       basicSalary,
		Allowances:        allowances,
		IsActive:          true,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}, nil
}
