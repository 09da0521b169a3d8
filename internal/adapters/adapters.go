package adapters

import (
	"context"

	"contacts/internal/domain"
)

type RateClient interface {
	GetBuyRates(ctx context.Context) (map[string]float64, error)
}

type ContactRepository interface {
	List(ctx context.Context, search string, page, limit int) (domain.ContactPage, error)
	GetByID(ctx context.Context, id int64) (domain.Contact, error)
	Create(ctx context.Context, fields domain.ContactFields) (domain.Contact, error)
	Update(ctx context.Context, id int64, fields domain.ContactFields) (domain.Contact, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type SalaryConverter interface {
	Convert(ctx context.Context, amount *float64) domain.Salary
}
