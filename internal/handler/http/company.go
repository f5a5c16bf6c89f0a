package http

import (
	"net/http"

	"github.com/cmlabs-hris/workledger/internal/domain/company"
	"github.com/cmlabs-hris/workledger/internal/handler/http/response"
)

type CompanyHandler interface {
	GetMy(w http.ResponseWriter, r *http.Request)
	DeleteMy(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &CompanyHandlerImpl{companyService: companyService}
}

// GetMy implements CompanyHandler.
func (c *CompanyHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	companyData, err := c.companyService.GetMyCompany(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, companyData)
}

// DeleteMy implements CompanyHandler.
func (c *CompanyHandlerImpl) DeleteMy(w http.ResponseWriter, r *http.Request) {
	result, err := c.companyService.DeleteMyCompany(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Company deleted successfully", result)
}
