package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"contacts/internal/contact"
	"contacts/internal/domain"
)

// ContactRequest is the body of create and update calls. salaryBase is kept
// raw so numeric strings and junk values can be coerced instead of rejected.
type ContactRequest struct {
	Name       string          `json:"name" example:"Ana"`
	Email      string          `json:"email" example:"ana@x.com"`
	Phone      *string         `json:"phone,omitempty" example:"+55 11 99999-0000"`
	SalaryBase json.RawMessage `json:"salaryBase,omitempty" swaggertype:"number" example:"1000"`
}

func (req ContactRequest) toInput() contact.Input {
	return contact.Input{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		SalaryBase: contact.ParseSalary(req.SalaryBase),
	}
}

type ContactResponse struct {
	ID              int64               `json:"id" example:"1"`
	Name            string              `json:"name" example:"Ana"`
	Email           string              `json:"email" example:"ana@x.com"`
	Phone           *string             `json:"phone" example:"+55 11 99999-0000"`
	CreatedAt       time.Time           `json:"createdAt" example:"2025-01-02T15:04:05Z"`
	SalaryBase      *float64            `json:"salaryBase" example:"1000"`
	SalaryConverted map[string]*float64 `json:"salaryConverted"`
}

type ListContactsResponse struct {
	Contacts   []ContactResponse `json:"contacts"`
	Total      int               `json:"total" example:"20"`
	Page       int               `json:"page" example:"1"`
	Limit      int               `json:"limit" example:"8"`
	TotalPages int               `json:"totalPages" example:"3"`
}

func toContactResponse(c domain.Contact) ContactResponse {
	return ContactResponse{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		CreatedAt:  c.CreatedAt,
		SalaryBase: c.Salary.Base,
		SalaryConverted: map[string]*float64{
			domain.CurrencyUSD: c.Salary.USD,
			domain.CurrencyEUR: c.Salary.EUR,
		},
	}
}

func decodeContactRequest(w http.ResponseWriter, r *http.Request) (ContactRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	return req, true
}
