package company

import (
	"context"

	"github.com/cmlabs-hris/workledger/internal/domain/company"
	"github.com/cmlabs-hris/workledger/internal/domain/purge"
	"github.com/cmlabs-hris/workledger/internal/pkg/tenant"
)

type CompanyServiceImpl struct {
	company.CompanyRepository
	purgeService purge.PurgeService
}

func NewCompanyService(companyRepository company.CompanyRepository, purgeService purge.PurgeService) company.CompanyService {
	return &CompanyServiceImpl{
		CompanyRepository: companyRepository,
		purgeService:      purgeService,
	}
}

// GetMyCompany implements company.CompanyService.
func (c *CompanyServiceImpl) GetMyCompany(ctx context.Context) (company.CompanyResponse, error) {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	companyData, err := c.CompanyRepository.GetByID(ctx, caller.CompanyID)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return company.NewCompanyResponse(companyData), nil
}

// DeleteMyCompany implements company.CompanyService.
func (c *CompanyServiceImpl) DeleteMyCompany(ctx context.Context) (purge.Result, error) {
	return c.purgeService.PurgeTenant(ctx)
}
