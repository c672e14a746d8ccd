package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollPeriod is the persistence shape of a payroll period row.
type PayrollPeriod struct {
	PeriodID       string     `json:"periodID"`
	OrganizationID string     `json:"organizationID"`
	YearMonth      time.Time  `json:"yearMonth"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        time.Time  `json:"endDate"`
	IsProcessed    bool       `json:"isProcessed"`
	ProcessedAt    *time.Time `json:"processedAt"`
	AuditFields
}

// CpfContribution is the persistence shape of a contribution row. Monetary columns are
// NUMERIC(12,2) in the schema; shopspring/decimal scans them without float drift.
type CpfContribution struct {
	ContributionID       string          `json:"contributionID"`
	EmployeeID           string          `json:"employeeID"`
	PayrollPeriodID      string          `json:"payrollPeriodID"`
	OrdinaryWages        decimal.Decimal `json:"ordinaryWages"`
	AdditionalWages      decimal.Decimal `json:"additionalWages"`
	EmployeeContribution decimal.Decimal `json:"employeeContribution"`
	EmployerContribution decimal.Decimal `json:"employerContribution"`
	OrdinaryAccount      decimal.Decimal `json:"ordinaryAccount"`
	SpecialAccount       decimal.Decimal `json:"specialAccount"`
	MedisaveAccount      decimal.Decimal `json:"medisaveAccount"`
	Status               string          `json:"status"`
	PaidAt               *time.Time      `json:"paidAt"`
	PaymentReference     *string         `json:"paymentReference"`
	AuditFields
}

// AdditionalWage is the persistence shape of an additional wage payment row.
type AdditionalWage struct {
	AdditionalWageID string          `json:"additionalWageID"`
	EmployeeID       string          `json:"employeeID"`
	PaymentDate      time.Time       `json:"paymentDate"`
	Amount           decimal.Decimal `json:"amount"`
	Description      string          `json:"description"`
	Remarks          *string         `json:"remarks"`
	AuditFields
}
