// Package types provides common value types used across costing.
package types

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency used when none is configured.
const DefaultCurrency = "ZAR"

// Money represents a monetary value in major units (rands, dollars, ...).
// Arithmetic is exact decimal arithmetic; rounding only happens on display.
//
// Examples:
//   - ZAR(decimal.NewFromInt(50)) = R50.00
//   - USD(decimal.RequireFromString("49")) = $49.00
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"` // ISO 4217 uppercase: "ZAR", "USD"
}

// New creates a Money value in the given currency.
func New(amount decimal.Decimal, currency string) Money {
	return Money{Amount: amount, Currency: strings.ToUpper(currency)}
}

// ZAR creates a Money value in South African Rand.
func ZAR(amount decimal.Decimal) Money { return New(amount, "ZAR") }

// USD creates a Money value in US Dollars.
func USD(amount decimal.Decimal) Money { return New(amount, "USD") }

// EUR creates a Money value in Euros.
func EUR(amount decimal.Decimal) Money { return New(amount, "EUR") }

// GBP creates a Money value in British Pounds.
func GBP(amount decimal.Decimal) Money { return New(amount, "GBP") }

// Zero returns a zero Money value in the specified currency.
func Zero(currency string) Money { return New(decimal.Zero, currency) }

// Arithmetic operations

// Add adds two Money values. Panics if currencies don't match.
func (m Money) Add(other Money) Money {
	m.assertSameCurrency(other)
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}
}

// Subtract subtracts another Money value. Panics if currencies don't match.
func (m Money) Subtract(other Money) Money {
	m.assertSameCurrency(other)
	return Money{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency}
}

// Multiply multiplies the Money by a (possibly fractional) quantity.
func (m Money) Multiply(qty decimal.Decimal) Money {
	return Money{Amount: m.Amount.Mul(qty), Currency: m.Currency}
}

// Negate returns the negative of the Money value.
func (m Money) Negate() Money {
	return Money{Amount: m.Amount.Neg(), Currency: m.Currency}
}

// Abs returns the absolute value.
func (m Money) Abs() Money {
	return Money{Amount: m.Amount.Abs(), Currency: m.Currency}
}

// Round rounds the amount to the number of minor units of its currency.
func (m Money) Round() Money {
	return Money{Amount: m.Amount.Round(int32(currencyDecimals(m.Currency))), Currency: m.Currency}
}

// Comparison methods

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool { return m.Amount.IsZero() }

// IsPositive returns true if the amount is greater than zero.
func (m Money) IsPositive() bool { return m.Amount.IsPositive() }

// IsNegative returns true if the amount is less than zero.
func (m Money) IsNegative() bool { return m.Amount.IsNegative() }

// Equal returns true if both Money values are equal (same amount and currency).
// Trailing zeros are not significant: 50 equals 50.00.
func (m Money) Equal(other Money) bool {
	return m.Amount.Equal(other.Amount) && m.Currency == other.Currency
}

// LessThan returns true if this Money is less than other. Panics if currencies don't match.
func (m Money) LessThan(other Money) bool {
	m.assertSameCurrency(other)
	return m.Amount.LessThan(other.Amount)
}

// GreaterThan returns true if this Money is greater than other. Panics if currencies don't match.
func (m Money) GreaterThan(other Money) bool {
	m.assertSameCurrency(other)
	return m.Amount.GreaterThan(other.Amount)
}

// Formatting methods

// FormatMajor returns the amount rounded to the currency's minor units,
// without currency symbol: "49.00" for 49 USD, "100" for 100 JPY.
func (m Money) FormatMajor() string {
	return m.Amount.StringFixed(int32(currencyDecimals(m.Currency)))
}

// String returns a human-readable string with currency symbol, as formatted
// by go-money for the currency (e.g. "$49.00", "R50.00"). Unknown currencies
// fall back to "CODE 49.00".
func (m Money) String() string {
	cur := money.GetCurrency(m.Currency)
	if cur == nil {
		return m.Currency + " " + m.FormatMajor()
	}
	minor := m.Amount.Shift(int32(cur.Fraction)).Round(0)
	if !minor.BigInt().IsInt64() {
		return formatWide(cur.Formatter(), m.Amount)
	}
	return cur.Formatter().Format(minor.IntPart())
}

// formatWide lays out amounts whose minor units overflow int64 with the same
// separators and template go-money uses.
func formatWide(f *money.Formatter, amount decimal.Decimal) string {
	digits := amount.Abs().StringFixed(int32(f.Fraction))
	whole, frac, _ := strings.Cut(digits, ".")

	if f.Thousand != "" {
		for i := len(whole) - 3; i > 0; i -= 3 {
			whole = whole[:i] + f.Thousand + whole[i:]
		}
	}
	if frac != "" {
		whole += f.Decimal + frac
	}

	out := strings.Replace(f.Template, "1", whole, 1)
	out = strings.Replace(out, "$", f.Grapheme, 1)
	if amount.IsNegative() {
		out = "-" + out
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   json.Number `json:"amount"`
		Currency string      `json:"currency"`
		Display  string      `json:"display"`
	}{
		Amount:   json.Number(m.Amount.String()),
		Currency: m.Currency,
		Display:  m.String(),
	})
}

// Helper functions

// assertSameCurrency panics if currencies don't match.
func (m Money) assertSameCurrency(other Money) {
	if m.Currency != other.Currency {
		panic(fmt.Sprintf("money: currency mismatch: %s != %s", m.Currency, other.Currency))
	}
}

// currencyDecimals returns the number of decimal places for a currency.
func currencyDecimals(currency string) int {
	if cur := money.GetCurrency(currency); cur != nil {
		return cur.Fraction
	}
	// Most currencies have 2 decimal places
	return 2
}

// Sum calculates the sum of Money values in the given currency.
// All values must share that currency.
func Sum(currency string, values ...Money) Money {
	result := Zero(currency)
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}
