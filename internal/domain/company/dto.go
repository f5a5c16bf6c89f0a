package company

import "time"

type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewCompanyResponse(c Company) CompanyResponse {
	return CompanyResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}
