// Package money holds the currency and amount helpers shared by every tax regime.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency is an ISO currency code supported by the calculators.
type Currency string

const (
	GBP Currency = "GBP"
	EUR Currency = "EUR"
)

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// Valid reports whether c is one of the supported currencies.
func (c Currency) Valid() bool {
	return c == GBP || c == EUR
}

// Symbol returns the display symbol for the currency.
func (c Currency) Symbol() string {
	switch c {
	case GBP:
		return "£"
	case EUR:
		return "€"
	default:
		return string(c) + " "
	}
}

// ParseCurrency accepts a currency code in any case.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unsupported currency %q", s)
	}
	return c, nil
}

// Convert moves an amount between GBP and EUR where rate is the number of EUR per GBP.
// Same-currency conversion is the identity. The rate is assumed positive.
func Convert(amount decimal.Decimal, from, to Currency, rate decimal.Decimal) decimal.Decimal {
	if from == to {
		return amount
	}
	if from == GBP && to == EUR {
		return amount.Mul(rate)
	}
	return amount.Div(rate)
}

// Annual converts a monthly amount to annual
func Annual(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Mul(twelve)
}

// Monthly converts an annual amount to monthly
func Monthly(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(twelve)
}

// PercentOf returns pct percent (0-100 scale) of amount.
func PercentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}

// Ratio returns part/whole as a percentage, or zero when whole is zero.
func Ratio(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// NonNegative floors d at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Cents rounds to two decimal places.
func Cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Money is an amount tagged with its currency.
type Money struct {
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
	Currency Currency        `json:"currency" yaml:"currency"`
}

// New creates a Money value.
func New(amount decimal.Decimal, currency Currency) Money {
	return Money{Amount: amount, Currency: currency}
}

// To converts the amount into the target currency.
func (m Money) To(target Currency, rate decimal.Decimal) Money {
	return Money{Amount: Convert(m.Amount, m.Currency, target, rate), Currency: target}
}

// Round rounds the amount to cents
func (m Money) Round() Money {
	return Money{Amount: Cents(m.Amount), Currency: m.Currency}
}

// Add adds an amount in the same currency
func (m Money) Add(other decimal.Decimal) Money {
	return Money{Amount: m.Amount.Add(other), Currency: m.Currency}
}

// String formats the amount with its symbol and thousands separators, e.g. £65,000.00.
func (m Money) String() string {
	return Format(m.Amount, m.Currency)
}

var printer = message.NewPrinter(language.BritishEnglish)

// Format renders amount with the currency symbol, grouping and two decimals.
func Format(amount decimal.Decimal, c Currency) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	f, _ := amount.Round(2).Float64()
	return sign + c.Symbol() + printer.Sprint(number.Decimal(f, number.Scale(2)))
}

// FormatPercent renders a 0-100 percentage with two decimals.
func FormatPercent(pct decimal.Decimal) string {
	return pct.StringFixed(2) + "%"
}
