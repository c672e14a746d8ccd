package services

import (
	"github.com/shopspring/decimal"

	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
)

// ContributionAmounts are the rounded monetary outputs of one employee's calculation.
// All values carry exactly two decimal places.
type ContributionAmounts struct {
	OrdinaryWages        decimal.Decimal
	AdditionalWages      decimal.Decimal
	EmployeeContribution decimal.Decimal
	EmployerContribution decimal.Decimal
	OrdinaryAccount      decimal.Decimal
	SpecialAccount       decimal.Decimal
	MedisaveAccount      decimal.Decimal
}

// CalculateContribution computes an employee's CPF split for one period. The wage
// ceiling is a hard cap applied to total wages before the rates, not after. This is a
// total function: any validated numeric input yields a result.
func CalculateContribution(basicSalary, additionalWages decimal.Decimal, rates domain.RateParameters, wageCeiling decimal.Decimal) ContributionAmounts {
	totalWages := basicSalary.Add(additionalWages)
	cappedWages := decimal.Min(totalWages, wageCeiling)

	employeeContribution := cappedWages.Mul(rates.EmployeeRate).Round(2)
	employerContribution := cappedWages.Mul(rates.EmployerRate).Round(2)
	totalContribution := employeeContribution.Add(employerContribution)

	return ContributionAmounts{
		OrdinaryWages:        basicSalary.Round(2),
		AdditionalWages:      additionalWages.Round(2),
		EmployeeContribution: employeeContribution,
		EmployerContribution: employerContribution,
		OrdinaryAccount:      totalContribution.Mul(rates.Allocation.Ordinary).Round(2),
		SpecialAccount:       totalContribution.Mul(rates.Allocation.Special).Round(2),
		MedisaveAccount:      totalContribution.Mul(rates.Allocation.Medisave).Round(2),
	}
}
