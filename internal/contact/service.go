package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"contacts/internal/adapters"
	"contacts/internal/domain"

	"github.com/go-playground/validator/v10"
)

type Service struct {
	repo      adapters.ContactRepository
	converter adapters.SalaryConverter
	validate  *validator.Validate
}

func (s *Service) CreateContact(ctx context.Context, in Input) (domain.Contact, error) {
	fields, err := s.prepare(ctx, in)
	if err != nil {
		return domain.Contact{}, err
	}
	return s.repo.Create(ctx, fields)
}

func (s *Service) UpdateContact(ctx context.Context, id int64, in Input) (domain.Contact, error) {
	fields, err := s.prepare(ctx, in)
	if err != nil {
		return domain.Contact{}, err
	}
	return s.repo.Update(ctx, id, fields)
}

func (s *Service) GetContact(ctx context.Context, id int64) (domain.Contact, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListContacts(ctx context.Context, q ListQuery) (domain.ContactPage, error) {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	return s.repo.List(ctx, q.Search, q.Page, q.Limit)
}

func (s *Service) DeleteContact(ctx context.Context, id int64) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrContactNotFound
	}
	return nil
}

// prepare validates the input and converts the salary. Conversion happens
// outside any transaction so a slow provider never holds a DB connection.
func (s *Service) prepare(ctx context.Context, in Input) (domain.ContactFields, error) {
	in = in.normalized()
	if err := s.validateInput(in); err != nil {
		return domain.ContactFields{}, err
	}

	return domain.ContactFields{
		Name:   in.Name,
		Email:  in.Email,
		Phone:  in.Phone,
		Salary: s.converter.Convert(ctx, in.SalaryBase),
	}, nil
}

func (s *Service) validateInput(in Input) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, strings.ToLower(fe.Field()))
	}
	verb := "is"
	if len(missing) > 1 {
		verb = "are"
	}
	return fmt.Errorf("%w: %s %s required", domain.ErrValidation, strings.Join(missing, " and "), verb)
}

func NewService(repo adapters.ContactRepository, converter adapters.SalaryConverter) *Service {
	return &Service{
		repo:      repo,
		converter: converter,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}
