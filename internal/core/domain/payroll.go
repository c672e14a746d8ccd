package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus tracks downstream settlement of a CPF contribution. Payroll processing
// inserts rows as PENDING; the settlement subsystem owns the transition to PROCESSED or
// FAILED.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentProcessed PaymentStatus = "PROCESSED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// PayrollPeriod is one organization's pay month. At most one period exists per
// (organization, year, month); the engine creates it unprocessed and finalizes it in the
// same transaction.
type PayrollPeriod struct {
	PeriodID       string     `json:"periodID"`
	OrganizationID string     `json:"organizationID"`
	YearMonth      time.Time  `json:"yearMonth"` // first day of the month
	StartDate      time.Time  `json:"startDate"`
	EndDate        time.Time  `json:"endDate"`
	IsProcessed    bool       `json:"isProcessed"`
	ProcessedAt    *time.Time `json:"processedAt,omitempty"`
	AuditFields
}

// Year returns the calendar year of the period.
func (p PayrollPeriod) Year() int { return p.YearMonth.Year() }

// Month returns the calendar month of the period.
func (p PayrollPeriod) Month() int { return int(p.YearMonth.Month()) }

// CpfContribution is one employee's statutory contribution for one period. Immutable after
// insertion as far as payroll is concerned.
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
	Status               PaymentStatus   `json:"status"`
	PaidAt               *time.Time      `json:"paidAt,omitempty"`
	PaymentReference     *string         `json:"paymentReference,omitempty"`
	AuditFields
}

// AdditionalWage records a one-off payment (bonus, commission) made alongside a payroll
// run. The payment date is the first day of the period month.
type AdditionalWage struct {
	AdditionalWageID string          `json:"additionalWageID"`
	EmployeeID       string          `json:"employeeID"`
	PaymentDate      time.Time       `json:"paymentDate"`
	Amount           decimal.Decimal `json:"amount"`
	Description      string          `json:"description"`
	Remarks          *string         `json:"remarks,omitempty"`
	AuditFields
}

// PayrollRunOutcome reports a successful processing run.
type PayrollRunOutcome struct {
	PeriodID  string `json:"periodId"`
	Processed int    `json:"processed"`
}

// PayrollSummary aggregates all contribution rows of one period.
type PayrollSummary struct {
	TotalEmployees            int             `json:"totalEmployees"`
	TotalOrdinaryWages        decimal.Decimal `json:"totalOrdinaryWages"`
	TotalAdditionalWages      decimal.Decimal `json:"totalAdditionalWages"`
	TotalEmployeeContribution decimal.Decimal `json:"totalEmployeeContribution"`
	TotalEmployerContribution decimal.Decimal `json:"totalEmployerContribution"`
	TotalCPFContribution      decimal.Decimal `json:"totalCPFContribution"`
	AccountBreakdown          AccountTotals   `json:"accountBreakdown"`
	PaymentStatus             StatusCounts    `json:"paymentStatus"`
	Period                    SummaryPeriod   `json:"period"`
}

// AccountTotals sums the three CPF sub-account allocations.
type AccountTotals struct {
	OrdinaryAccount decimal.Decimal `json:"ordinaryAccount"`
	SpecialAccount  decimal.Decimal `json:"specialAccount"`
	MedisaveAccount decimal.Decimal `json:"medisaveAccount"`
}

// StatusCounts counts contribution rows per settlement status.
type StatusCounts struct {
	Pending int `json:"pending"`
	Paid    int `json:"paid"`
	Failed  int `json:"failed"`
}

// SummaryPeriod reports the period identity and its settlement status: COMPLETED once
// every row is PROCESSED, IN_PROGRESS otherwise.
type SummaryPeriod struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Status string `json:"status"`
}
