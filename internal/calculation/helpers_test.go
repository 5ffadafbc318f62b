package calculation

import (
	"testing"

	"github.com/paycompare/tax-calculator/internal/config"
	"github.com/paycompare/tax-calculator/internal/domain"
	"github.com/paycompare/tax-calculator/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTables(t *testing.T) *domain.TaxTables {
	t.Helper()
	tables, err := config.NewInputParser().DefaultTaxTables()
	require.NoError(t, err)
	return tables
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// baseInputs is a salaried GBP earner with every regime enabled and no property.
func baseInputs() *domain.TaxInputs {
	in := config.DefaultInputs()
	in.BaseCurrency = money.GBP
	in.GrossSalary = d("65000")
	in.SalaryCurrency = money.GBP
	in.FreelanceCurrency = money.EUR
	in.ForeignPropertyEnabled = false
	return &in
}

func withProperty(in *domain.TaxInputs, country string, currency money.Currency, rent, deductibles, interest, payment string) *domain.TaxInputs {
	in.ForeignPropertyEnabled = true
	in.ForeignPropertyCountry = country
	in.ForeignPropertyCurrency = currency
	in.ForeignPropertyRentalIncome = d(rent)
	in.ForeignPropertyDeductibles = d(deductibles)
	in.ForeignPropertyMortgageInterest = d(interest)
	in.ForeignPropertyMortgagePayment = d(payment)
	return in
}

func assertDecimal(t *testing.T, label, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, d(expected).Equal(actual), "%s: expected %s, got %s", label, expected, actual.String())
}

func assertNetIdentity(t *testing.T, res *domain.TaxResult) {
	t.Helper()
	assert.True(t, res.NetAnnual.Equal(res.GrossIncome.Sub(res.TotalDeductions)),
		"%s: net %s != gross %s - deductions %s", res.Regime, res.NetAnnual, res.GrossIncome, res.TotalDeductions)
}
