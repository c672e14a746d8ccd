package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/sgpaytech/cpf_payroll_app/internal/core/domain"
	portssvc "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/services"
)

// cpfRatesService resolves contribution rate parameters from employee age and wage,
// backed by a refreshable in-memory schedule. The worker refreshes it at the start of
// every processing run.
type cpfRatesService struct {
	source portssvc.RateSource

	mu       sync.RWMutex
	brackets []domain.RateBracket
}

// NewCpfRatesService creates a new rate provider backed by the given schedule source.
func NewCpfRatesService(source portssvc.RateSource) portssvc.RateProvider {
	return &cpfRatesService{source: source}
}

var _ portssvc.RateProvider = (*cpfRatesService)(nil)

// defaultRateParameters covers any (age, wage) combination outside the published
// brackets, so Resolve is total.
var defaultRateParameters = domain.RateParameters{
	EmployeeRate: decimal.NewFromFloat(0.05),
	EmployerRate: decimal.NewFromFloat(0.075),
	Allocation: domain.AllocationRatios{
		Ordinary: decimal.NewFromFloat(0.3),
		Special:  decimal.NewFromFloat(0.3),
		Medisave: decimal.NewFromFloat(0.4),
	},
}

// DefaultRateParameters returns the fallback bracket applied when no schedule entry
// matches.
func DefaultRateParameters() domain.RateParameters {
	return defaultRateParameters
}

// Refresh replaces the full rate schedule from the source. Safe to call repeatedly.
func (s *cpfRatesService) Refresh(ctx context.Context) error {
	brackets, err := s.source.FetchBrackets(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch rate schedule: %w", err)
	}

	one := decimal.NewFromInt(1)
	for _, b := range brackets {
		if !b.Rates.Allocation.Sum().Equal(one) {
			return fmt.Errorf("allocation ratios for bracket %d-%d do not sum to 1.0 (got %s)",
				b.Criteria.MinAge, b.Criteria.MaxAge, b.Rates.Allocation.Sum().String())
		}
	}

	s.mu.Lock()
	s.brackets = brackets
	s.mu.Unlock()
	return nil
}

// Resolve selects the single bracket covering the age and wage. Brackets are
// non-overlapping by schedule contract; the first match wins. Anything uncovered gets
// the default bracket.
func (s *cpfRatesService) Resolve(age int, wage decimal.Decimal) domain.RateParameters {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.brackets {
		if b.Matches(age, wage) {
			return b.Rates
		}
	}
	return defaultRateParameters
}
