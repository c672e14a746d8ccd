package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	portsrepo "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/repositories"
	portssvc "github.com/sgpaytech/cpf_payroll_app/internal/core/ports/services"
	"github.com/sgpaytech/cpf_payroll_app/internal/platform/config"
)

// NewServiceContainer wires all application services from the repository provider and
// configuration.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, rateSource portssvc.RateSource, cfg *config.Config) (*portssvc.ServiceContainer, error) {
	wageCeiling, err := decimal.NewFromString(cfg.WageCeiling)
	if err != nil || wageCeiling.IsNegative() {
		return nil, fmt.Errorf("invalid CPF wage ceiling %q", cfg.WageCeiling)
	}

	rates := NewCpfRatesService(rateSource)

	return &portssvc.ServiceContainer{
		Organization: NewOrganizationService(repos.OrganizationRepo),
		Department:   NewDepartmentService(repos.DepartmentRepo, repos.OrganizationRepo),
		Employee:     NewEmployeeService(repos.EmployeeRepo, repos.DepartmentRepo, repos.OrganizationRepo),
		Payroll:      NewPayrollService(repos.PayrollRepo, repos.EmployeeRepo, rates, wageCeiling, cfg.PayrollRunTimeout),
		Queue:        NewQueueService(repos.JobRepo),
		Rates:        rates,
	}, nil
}
