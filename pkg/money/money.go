// Package money holds the immutable monetary amount used across loanflow.
// Display strings use western thousands grouping, e.g. "₹150,000".
package money

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// Currency is an ISO 4217 currency code.
type Currency struct {
	code   string
	symbol string
}

// NewCurrency creates a Currency after validating the code is exactly 3 uppercase letters.
func NewCurrency(code string) (Currency, error) {
	if !currencyCodeRe.MatchString(code) {
		return Currency{}, fmt.Errorf("invalid currency code %q: must be exactly 3 uppercase letters", code)
	}
	return Currency{code: code, symbol: code + " "}, nil
}

func mustCurrency(code, symbol string) Currency {
	c, err := NewCurrency(code)
	if err != nil {
		panic(err)
	}
	c.symbol = symbol
	return c
}

// Code returns the ISO 4217 currency code.
func (c Currency) Code() string {
	return c.code
}

// Symbol returns the display prefix, e.g. "₹".
func (c Currency) Symbol() string {
	return c.symbol
}

// INR is the only currency loans are written in.
var INR = mustCurrency("INR", "₹")

var printer = message.NewPrinter(language.English)

// Money represents an immutable monetary amount with currency.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// New creates a Money value from a decimal amount and currency.
func New(amount decimal.Decimal, currency Currency) Money {
	return Money{amount: amount, currency: currency}
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// IsPositive returns true if the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Multiply returns m multiplied by the given factor.
func (m Money) Multiply(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor), currency: m.currency}
}

// LessThanOrEqual reports whether m <= other. Currencies are not compared.
func (m Money) LessThanOrEqual(other Money) bool {
	return m.amount.LessThanOrEqual(other.amount)
}

// String formats the Money as a display string rounded to whole units,
// for example "₹150,000".
func (m Money) String() string {
	return m.currency.Symbol() + Group(m.amount.Round(0).IntPart())
}

// Group renders n with thousands separators, e.g. 150000 -> "150,000".
func Group(n int64) string {
	return printer.Sprintf("%d", n)
}
