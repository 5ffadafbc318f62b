package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/paycompare/tax-calculator/internal/domain"
	"github.com/paycompare/tax-calculator/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveFileRoundTrip(t *testing.T) {
	in := ExampleInputs()
	in.ForeignPropertyCountry = domain.CountryPortugal
	in.AutonomoYear = 2

	data, err := SerializeConfig(in, "2025")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), MagicHeader+"\n"))

	sf, err := DeserializeConfig(data)
	require.NoError(t, err)
	assert.Equal(t, "2025", sf.TaxYear)
	assert.Equal(t, domain.CountryPortugal, sf.Inputs.ForeignPropertyCountry)
	assert.Equal(t, 2, sf.Inputs.AutonomoYear)
	assert.True(t, in.GrossSalary.Equal(sf.Inputs.GrossSalary))
	assert.True(t, in.PensionContributionPercent.Equal(sf.Inputs.PensionContributionPercent))
	assert.True(t, in.ForeignPropertyMortgageInterest.Equal(sf.Inputs.ForeignPropertyMortgageInterest))
	assert.Equal(t, in.IncludeSpainBeckham, sf.Inputs.IncludeSpainBeckham)
}

func TestDeserializeConfig_DefaultsAndFallbacks(t *testing.T) {
	data := MagicHeader + "\n" + `{
  "inputs": {
    "grossSalary": 50000,
    "salaryCurrency": "USD",
    "autonomoYear": 7,
    "includeSpainBeckham": false
  },
  "taxYear": "2024"
}`
	sf, err := DeserializeConfig([]byte(data))
	require.NoError(t, err)

	in := sf.Inputs
	assert.True(t, decimal.NewFromInt(50000).Equal(in.GrossSalary))
	assert.Equal(t, money.GBP, in.SalaryCurrency, "unsupported currency falls back to GBP")
	assert.Equal(t, 3, in.AutonomoYear, "out of range year falls back to 3")
	assert.False(t, in.IncludeSpainBeckham)
	assert.True(t, in.IncludeSpainNormal, "missing flags keep their defaults")
	assert.Equal(t, money.EUR, in.BaseCurrency)
	assert.True(t, decimal.NewFromFloat(1.15).Equal(in.ExchangeRate))
	assert.True(t, decimal.NewFromInt(100).Equal(in.ForeignPropertyMortgageInterestDeductiblePercent))
	assert.Equal(t, domain.CountryUK, in.ForeignPropertyCountry)
	assert.True(t, in.TreatAsForeignSource)
}

func TestDeserializeConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no header", `{"inputs": {}, "taxYear": "2024"}`},
		{"wrong header", "PAYCOMPARE_CONFIG_v0\n{\"inputs\": {}, \"taxYear\": \"2024\"}"},
		{"header only", MagicHeader},
		{"missing inputs", MagicHeader + "\n{\"taxYear\": \"2024\"}"},
		{"missing tax year", MagicHeader + "\n{\"inputs\": {}}"},
		{"broken json", MagicHeader + "\n{\"inputs\": "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeserializeConfig([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidConfigFormat)
		})
	}
}

func TestWriteAndLoadSaveFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "inputs.paycompare")
	require.NoError(t, WriteSaveFile(file, ExampleInputs(), "2024"))

	sf, err := LoadSaveFile(file)
	require.NoError(t, err)
	assert.Equal(t, "2024", sf.TaxYear)
	assert.True(t, decimal.NewFromInt(73650).Equal(sf.Inputs.FreelanceRevenue))

	_, err = LoadSaveFile(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
