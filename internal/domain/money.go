package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyVND Currency = "VND"
	CurrencyUSD Currency = "USD"
)

// DefaultCurrency is the storefront's base currency.
const DefaultCurrency = CurrencyVND

func (c Currency) IsSupported() bool {
	return c == CurrencyVND || c == CurrencyUSD
}

// Money is an immutable monetary value. Every operation returns a new
// instance; amounts never go negative and currencies never mix silently.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	if !currency.IsSupported() {
		return Money{}, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, currency)
	}
	return Money{amount: amount, currency: currency}, nil
}

func NewMoneyFromString(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money amount %q: %w", amount, err)
	}
	return NewMoney(d, currency)
}

func ZeroMoney(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

func (m Money) Amount() decimal.Decimal { return m.amount }

func (m Money) Currency() Currency { return m.currency }

func (m Money) IsZero() bool { return m.amount.IsZero() }

func (m Money) IsPositive() bool { return m.amount.IsPositive() }

func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("%w: cannot add %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("%w: cannot subtract %s from %s", ErrCurrencyMismatch, other.currency, m.currency)
	}
	if m.amount.LessThan(other.amount) {
		return Money{}, ErrNegativeResult
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

func (m Money) Multiply(factor decimal.Decimal) (Money, error) {
	if factor.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	return Money{amount: m.amount.Mul(factor), currency: m.currency}, nil
}

// MultiplyInt is a convenience for quantity * unit price.
func (m Money) MultiplyInt(factor int) (Money, error) {
	return m.Multiply(decimal.NewFromInt(int64(factor)))
}

// Equals is structural: same amount, same currency.
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) compare(other Money) (int, error) {
	if m.currency != other.currency {
		return 0, fmt.Errorf("%w: cannot compare %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return m.amount.Cmp(other.amount), nil
}

func (m Money) LessThan(other Money) (bool, error) {
	cmp, err := m.compare(other)
	return cmp < 0, err
}

func (m Money) LessThanOrEqual(other Money) (bool, error) {
	cmp, err := m.compare(other)
	return cmp <= 0, err
}

func (m Money) GreaterThan(other Money) (bool, error) {
	cmp, err := m.compare(other)
	return cmp > 0, err
}

func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	cmp, err := m.compare(other)
	return cmp >= 0, err
}

func (m Money) String() string {
	if m.currency == CurrencyVND {
		return fmt.Sprintf("%s ₫", m.amount.StringFixed(0))
	}
	return fmt.Sprintf("%s %s", m.currency, m.amount.StringFixed(2))
}
