package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paycompare/tax-calculator/internal/domain"
	"github.com/paycompare/tax-calculator/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestDefaultTaxTables(t *testing.T) {
	tables, err := NewInputParser().DefaultTaxTables()
	require.NoError(t, err)

	uk, ok := tables.UK["2024/25"]
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(12570).Equal(uk.PersonalAllowance))
	assert.True(t, decimal.NewFromInt(100000).Equal(uk.TaperThreshold))
	require.Len(t, uk.Bands, 3)
	assert.Nil(t, uk.Bands[2].To)
	assert.True(t, decimal.NewFromFloat(0.45).Equal(uk.Bands[2].Rate))
	assert.True(t, decimal.NewFromFloat(0.08).Equal(uk.NI.MainRate))

	normal := tables.SpainNormal["2024"]
	require.Len(t, normal.Bands, 6)
	assert.True(t, decimal.NewFromFloat(0.0635).Equal(normal.SocialSecurityRate))
	assert.True(t, decimal.NewFromInt(56646).Equal(normal.SocialSecurityCap))

	autonomo := tables.SpainAutonomo["2025"]
	require.Len(t, autonomo.Tramos, 15)
	assert.True(t, decimal.NewFromFloat(1166.70).Equal(autonomo.Tramos[3].MinMonthly))
	assert.True(t, decimal.NewFromInt(291).Equal(autonomo.Tramos[3].Cuota))
	assert.Nil(t, autonomo.Tramos[14].MaxMonthly)

	assert.Equal(t, "2024/25", tables.SpainToUK["2024"])
	assert.Equal(t, domain.TaxYears{UK: "2024/25", SpainNormal: "2024", SpainBeckham: "2024", SpainAutonomo: "2025"}, tables.Defaults)
	assert.Contains(t, tables.PropertyCountries, domain.CountryGreece)

	greece := tables.NonResidentProperty[domain.CountryGreece]
	assert.Len(t, greece.Bands, 3)
	assert.Equal(t, domain.PropertyBaseGeneric, tables.NonResidentProperty[domain.CountryItaly].Base)
}

func TestLoadTaxTables_FileErrors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadTaxTables(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("uk: [unclosed"), 0644))
	_, err = parser.LoadTaxTables(bad)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadTaxTables_Override(t *testing.T) {
	yamlData := `
uk:
  "2030/31":
    personal_allowance: 15000
    taper_threshold: 120000
    s24_credit_rate: 0.20
    bands:
      - {from: 0, to: 40000, rate: 0.20}
      - {from: 40000, to: null, rate: 0.40}
    ni: {primary_threshold: 15000, upper_earnings_limit: 55000, main_rate: 0.06, upper_rate: 0.02}
defaults:
  uk: "2030/31"
`
	file := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(file, []byte(yamlData), 0644))

	tables, err := NewInputParser().LoadTaxTables(file)
	require.NoError(t, err)
	assert.Equal(t, []string{"2030/31"}, tables.UKYearKeys())
	assert.True(t, decimal.NewFromInt(15000).Equal(tables.UK["2030/31"].PersonalAllowance))
}

func band(from, to int64, rate float64) domain.TaxBand {
	b := domain.TaxBand{From: decimal.NewFromInt(from), Rate: decimal.NewFromFloat(rate)}
	if to >= 0 {
		upper := decimal.NewFromInt(to)
		b.To = &upper
	}
	return b
}

func TestValidateBands(t *testing.T) {
	tests := []struct {
		name        string
		bands       []domain.TaxBand
		expectError bool
		description string
	}{
		{"valid", []domain.TaxBand{band(0, 100, 0.1), band(100, -1, 0.2)}, false, "contiguous with open top"},
		{"empty", nil, true, "no bands at all"},
		{"gap", []domain.TaxBand{band(0, 100, 0.1), band(150, -1, 0.2)}, true, "second band starts after a gap"},
		{"overlap", []domain.TaxBand{band(0, 100, 0.1), band(50, -1, 0.2)}, true, "second band overlaps the first"},
		{"descending", []domain.TaxBand{band(100, 50, 0.1), band(50, -1, 0.2)}, true, "upper bound below lower bound"},
		{"open middle", []domain.TaxBand{band(0, -1, 0.1), band(100, -1, 0.2)}, true, "open band before the last"},
		{"closed top", []domain.TaxBand{band(0, 100, 0.1), band(100, 200, 0.2)}, true, "last band must be open"},
		{"bad rate", []domain.TaxBand{band(0, -1, 1.5)}, true, "rate above one"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateBands(tt.bands)
			if tt.expectError {
				assert.Error(t, err, tt.description)
			} else {
				assert.NoError(t, err, tt.description)
			}
		})
	}
}

func TestValidateTramos(t *testing.T) {
	upper := decimal.NewFromInt(670)
	valid := []domain.AutonomoTramo{
		{MinMonthly: decimal.Zero, MaxMonthly: &upper, Cuota: decimal.NewFromInt(200)},
		{MinMonthly: decimal.NewFromInt(670), Cuota: decimal.NewFromInt(220)},
	}
	assert.NoError(t, validateTramos(valid))

	gap := []domain.AutonomoTramo{
		{MinMonthly: decimal.Zero, MaxMonthly: &upper, Cuota: decimal.NewFromInt(200)},
		{MinMonthly: decimal.NewFromInt(700), Cuota: decimal.NewFromInt(220)},
	}
	assert.Error(t, validateTramos(gap))
	assert.Error(t, validateTramos(nil))
	assert.Error(t, validateTramos(valid[:1]), "last tier must be open")
}

func TestValidateTaxTables_Errors(t *testing.T) {
	parser := NewInputParser()
	base, err := parser.DefaultTaxTables()
	require.NoError(t, err)

	t.Run("missing spain_to_uk target", func(t *testing.T) {
		tables := *base
		tables.SpainToUK = map[string]string{"2024": "1999/00"}
		assert.ErrorIs(t, parser.ValidateTaxTables(&tables), ErrInvalidTaxTables)
	})
	t.Run("default year not configured", func(t *testing.T) {
		tables := *base
		tables.Defaults.SpainAutonomo = "1999"
		assert.ErrorIs(t, parser.ValidateTaxTables(&tables), ErrInvalidTaxTables)
	})
	t.Run("no uk years", func(t *testing.T) {
		tables := *base
		tables.UK = nil
		assert.ErrorIs(t, parser.ValidateTaxTables(&tables), ErrInvalidTaxTables)
	})
	t.Run("beckham without normal year", func(t *testing.T) {
		tables := *base
		tables.SpainBeckham = map[string]domain.SpainBeckhamTaxYear{"2031": base.SpainBeckham["2024"]}
		tables.Defaults.SpainBeckham = ""
		assert.ErrorIs(t, parser.ValidateTaxTables(&tables), ErrInvalidTaxTables)
	})
}

func TestValidateInputs(t *testing.T) {
	parser := NewInputParser()
	tables, err := parser.DefaultTaxTables()
	require.NoError(t, err)

	tests := []struct {
		name        string
		mutate      func(in *domain.TaxInputs)
		expectError bool
	}{
		{"example is valid", func(in *domain.TaxInputs) {}, false},
		{"zero rate", func(in *domain.TaxInputs) { in.ExchangeRate = decimal.Zero }, true},
		{"negative rate", func(in *domain.TaxInputs) { in.ExchangeRate = decimal.NewFromInt(-1) }, true},
		{"pension over 100", func(in *domain.TaxInputs) { in.PensionContributionPercent = decimal.NewFromInt(101) }, true},
		{"negative expense rate", func(in *domain.TaxInputs) { in.ExpenseDeductionRate = decimal.NewFromInt(-1) }, true},
		{"expense rate 100 allowed", func(in *domain.TaxInputs) { in.ExpenseDeductionRate = decimal.NewFromInt(100) }, false},
		{"autonomo year 0", func(in *domain.TaxInputs) { in.AutonomoYear = 0 }, true},
		{"autonomo year 4", func(in *domain.TaxInputs) { in.AutonomoYear = 4 }, true},
		{"unsupported currency", func(in *domain.TaxInputs) { in.SalaryCurrency = "USD" }, true},
		{"negative salary", func(in *domain.TaxInputs) { in.GrossSalary = decimal.NewFromInt(-5) }, true},
		{"unknown property country", func(in *domain.TaxInputs) { in.ForeignPropertyCountry = "Atlantis" }, true},
		{"negative rent", func(in *domain.TaxInputs) { in.ForeignPropertyRentalIncome = decimal.NewFromInt(-1) }, true},
		{"disabled property ignores country", func(in *domain.TaxInputs) {
			in.ForeignPropertyEnabled = false
			in.ForeignPropertyCountry = "Atlantis"
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := ExampleInputs()
			tt.mutate(&in)
			err := parser.ValidateInputs(&in, tables)
			if tt.expectError {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.ErrorIs(t, parser.ValidateInputs(nil, tables), ErrInvalidInput)
	in := ExampleInputs()
	in.BaseCurrency = money.Currency("JPY")
	assert.ErrorIs(t, parser.ValidateInputs(&in, nil), ErrInvalidInput)
}
