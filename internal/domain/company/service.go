package company

import (
	"context"

	"github.com/cmlabs-hris/workledger/internal/domain/purge"
)

type CompanyService interface {
	GetMyCompany(ctx context.Context) (CompanyResponse, error)
	// DeleteMyCompany purges the caller's company with every row it owns. Owner only.
	DeleteMyCompany(ctx context.Context) (purge.Result, error)
}
