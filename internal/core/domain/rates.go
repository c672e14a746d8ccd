package domain

import "github.com/shopspring/decimal"

// AllocationRatios splits a total contribution across the three CPF sub-accounts.
// For any published bracket the three ratios sum to exactly 1.0.
type AllocationRatios struct {
	Ordinary decimal.Decimal `json:"ordinary"`
	Special  decimal.Decimal `json:"special"`
	Medisave decimal.Decimal `json:"medisave"`
}

// Sum returns ordinary + special + medisave.
func (a AllocationRatios) Sum() decimal.Decimal {
	return a.Ordinary.Add(a.Special).Add(a.Medisave)
}

// RateParameters are the contribution rates and allocation split for one bracket.
type RateParameters struct {
	EmployeeRate decimal.Decimal  `json:"employeeRate"`
	EmployerRate decimal.Decimal  `json:"employerRate"`
	Allocation   AllocationRatios `json:"allocationRatios"`
}

// RateBracketCriteria is the age/wage band a rate entry applies to. Ages are inclusive
// on both ends; wages are inclusive on both ends. Brackets are non-overlapping by
// schedule contract, not enforced at lookup time.
type RateBracketCriteria struct {
	MinAge  int             `json:"minAge"`
	MaxAge  int             `json:"maxAge"`
	MinWage decimal.Decimal `json:"minWage"`
	MaxWage decimal.Decimal `json:"maxWage"`
}

// RateBracket pairs a criteria band with its rate parameters.
type RateBracket struct {
	Criteria RateBracketCriteria `json:"criteria"`
	Rates    RateParameters      `json:"rates"`
}

// Matches reports whether the bracket covers the given age and wage.
func (b RateBracket) Matches(age int, wage decimal.Decimal) bool {
	if age < b.Criteria.MinAge || age > b.Criteria.MaxAge {
		return false
	}
	return wage.GreaterThanOrEqual(b.Criteria.MinWage) && wage.LessThanOrEqual(b.Criteria.MaxWage)
}
