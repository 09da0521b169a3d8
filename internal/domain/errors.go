package domain

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrContactNotFound = errors.New("contact not found")
	ErrDuplicateEmail  = errors.New("email already in use")
	ErrRateProvider    = errors.New("rate provider unavailable")
)
