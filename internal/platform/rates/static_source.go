// Package rates ships the built-in CPF rate schedule. A production deployment would
// replace this with a client for the board's published tables; the interface boundary
// is ports/services.RateSource.
package rates

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
	portssvc "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/services"
)

type staticSource struct{}

// NewStaticSource returns a RateSource serving the built-in schedule.
func NewStaticSource() portssvc.RateSource {
	return staticSource{}
}

var _ portssvc.RateSource = staticSource{}

func (staticSource) FetchBrackets(_ context.Context) ([]domain.RateBracket, error) {
	return []domain.RateBracket{
		{
			Criteria: domain.RateBracketCriteria{
				MinAge:  0,
				MaxAge:  55,
				MinWage: decimal.Zero,
				MaxWage: decimal.NewFromInt(6000),
			},
			Rates: domain.RateParameters{
				EmployeeRate: decimal.NewFromFloat(0.20),
				EmployerRate: decimal.NewFromFloat(0.17),
				Allocation: domain.AllocationRatios{
					Ordinary: decimal.NewFromFloat(0.6),
					Special:  decimal.NewFromFloat(0.2),
					Medisave: decimal.NewFromFloat(0.2),
				},
			},
		},
		{
			Criteria: domain.RateBracketCriteria{
				MinAge:  56,
				MaxAge:  60,
				MinWage: decimal.Zero,
				MaxWage: decimal.NewFromInt(6000),
			},
			Rates: domain.RateParameters{
				EmployeeRate: decimal.NewFromFloat(0.13),
				EmployerRate: decimal.NewFromFloat(0.13),
				Allocation: domain.AllocationRatios{
					Ordinary: decimal.NewFromFloat(0.46),
					Special:  decimal.NewFromFloat(0.24),
					Medisave: decimal.NewFromFloat(0.3),
				},
			},
		},
	}, nil
}
