package domain

import (
	"time"
)

// Currency codes the salary is converted into on every write.
const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
)

// Salary holds the base amount as entered and its derived conversions.
// All three are nil when no usable base amount was given.
type Salary struct {
	Base *float64
	USD  *float64
	EUR  *float64
}

type Contact struct {
	ID        int64
	Name      string
	Email     string
	Phone     *string
	CreatedAt time.Time
	Salary    Salary
}

// ContactFields are the mutable columns written on create and update.
type ContactFields struct {
	Name   string
	Email  string
	Phone  *string
	Salary Salary
}

type ContactPage struct {
	Contacts   []Contact
	Total      int
	Page       int
	Limit      int
	TotalPages int
}
