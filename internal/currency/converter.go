package currency

import (
	"context"
	"fmt"
	"math"
	"time"

	"contacts/internal/adapters"
	"contacts/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const defaultLookupTimeout = 5 * time.Second

// Converter turns a base salary into its USD and EUR equivalents.
// Every conversion is a fresh lookup against the rate provider.
type Converter struct {
	rateClient    adapters.RateClient
	lookupTimeout time.Duration
}

// Convert never fails. Without a positive amount all fields are nil; when the
// provider cannot be used the base amount is kept and the conversions are nil.
func (c *Converter) Convert(ctx context.Context, amount *float64) domain.Salary {
	if amount == nil || math.IsNaN(*amount) || math.IsInf(*amount, 0) || *amount <= 0 {
		return domain.Salary{}
	}
	base := *amount

	rates, err := c.lookupRates(ctx)
	if err != nil {
		logrus.WithError(err).WithField("amount", base).Warn("salary stored without converted amounts")
		return domain.Salary{Base: &base}
	}

	return domain.Salary{
		Base: &base,
		USD:  divideRounded(base, rates[domain.CurrencyUSD]),
		EUR:  divideRounded(base, rates[domain.CurrencyEUR]),
	}
}

func (c *Converter) lookupRates(ctx context.Context) (map[string]float64, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.lookupTimeout)
	defer cancel()

	rates, err := c.rateClient.GetBuyRates(reqCtx)
	if err != nil {
		return nil, err
	}
	for _, code := range []string{domain.CurrencyUSD, domain.CurrencyEUR} {
		r, ok := rates[code]
		if !ok {
			return nil, fmt.Errorf("%w: missing rate for %s", domain.ErrRateProvider, code)
		}
		if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			return nil, fmt.Errorf("%w: invalid rate %v for %s", domain.ErrRateProvider, r, code)
		}
	}
	return rates, nil
}

// divideRounded returns amount/rate rounded half-up to cents.
func divideRounded(amount, rate float64) *float64 {
	v, _ := decimal.NewFromFloat(amount).DivRound(decimal.NewFromFloat(rate), 2).Float64()
	return &v
}

func NewConverter(rateClient adapters.RateClient, lookupTimeout time.Duration) *Converter {
	if lookupTimeout <= 0 {
		lookupTimeout = defaultLookupTimeout
	}
	return &Converter{rateClient: rateClient, lookupTimeout: lookupTimeout}
}
