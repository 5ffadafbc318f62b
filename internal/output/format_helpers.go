package output

import (
	"strconv"

	"github.com/paycompare/tax-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats an amount with its currency symbol and grouping.
func FormatCurrency(amount decimal.Decimal, c money.Currency) string { return money.Format(amount, c) }

// FormatPercentage formats a 0-100 percentage with 2 decimals.
func FormatPercentage(pct decimal.Decimal) string { return money.FormatPercent(pct) }

// FormatRate formats a fractional rate such as 0.2 as "20%".
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).Round(2).String() + "%"
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

func decimalString(d decimal.Decimal) string { return d.StringFixed(2) }
