package calculation

import (
	"context"
	"fmt"
	"testing"

	"github.com/paycompare/tax-calculator/internal/config"
	"github.com/paycompare/tax-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	debug, info, warn, errs []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Infof(format string, args ...any) {
	l.info = append(l.info, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Warnf(format string, args ...any) {
	l.warn = append(l.warn, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Errorf(format string, args ...any) {
	l.errs = append(l.errs, fmt.Sprintf(format, args...))
}

func newTestEngine(t *testing.T) (*CalculationEngine, domain.TaxYears) {
	t.Helper()
	tables := loadTables(t)
	years, err := SelectYears(tables, "2024")
	require.NoError(t, err)
	return NewCalculationEngine(tables), years
}

func TestCalculate_OrderAndIdentity(t *testing.T) {
	engine, years := newTestEngine(t)
	log := &recordingLogger{}
	engine.SetLogger(log)

	in := config.ExampleInputs()
	results, err := engine.Calculate(context.Background(), &in, years)
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i, regime := range domain.AllRegimes {
		assert.Equal(t, regime, results[i].Regime)
		assertNetIdentity(t, results[i])
		for j := 1; j < len(results[i].Steps); j++ {
			assert.Less(t, results[i].Steps[j-1].Order, results[i].Steps[j].Order)
		}
	}
	assert.Len(t, log.info, 4)
	assert.Len(t, log.debug, 4)
	assert.NotEmpty(t, log.warn)
	assert.Empty(t, log.errs)
}

func TestCalculate_RegimeFlags(t *testing.T) {
	engine, years := newTestEngine(t)

	in := baseInputs()
	in.IncludeSpainNormal = false
	in.IncludeSpainAutonomo = false
	results, err := engine.Calculate(context.Background(), in, years)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, domain.RegimeUK, results[0].Regime)
	assert.Equal(t, domain.RegimeSpainBeckham, results[1].Regime)

	in.IncludeUK = false
	in.IncludeSpainBeckham = false
	log := &recordingLogger{}
	engine.SetLogger(log)
	results, err = engine.Calculate(context.Background(), in, years)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, []string{"no regimes enabled"}, log.warn)
}

func TestCalculate_Errors(t *testing.T) {
	testCases := []struct {
		description string
		mutate      func(in *domain.TaxInputs, years *domain.TaxYears)
		expected    error
	}{
		{
			description: "zero exchange rate",
			mutate:      func(in *domain.TaxInputs, _ *domain.TaxYears) { in.ExchangeRate = d("0") },
			expected:    config.ErrInvalidInput,
		},
		{
			description: "negative salary",
			mutate:      func(in *domain.TaxInputs, _ *domain.TaxYears) { in.GrossSalary = d("-1") },
			expected:    config.ErrInvalidInput,
		},
		{
			description: "missing UK year",
			mutate:      func(_ *domain.TaxInputs, years *domain.TaxYears) { years.UK = "1999/00" },
			expected:    ErrTaxYearNotFound,
		},
		{
			description: "missing autonomo year",
			mutate:      func(_ *domain.TaxInputs, years *domain.TaxYears) { years.SpainAutonomo = "1999" },
			expected:    ErrTaxYearNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			engine, years := newTestEngine(t)
			in := baseInputs()
			tc.mutate(in, &years)
			results, err := engine.Calculate(context.Background(), in, years)
			assert.ErrorIs(t, err, tc.expected)
			assert.Nil(t, results)
		})
	}
}

func TestCalculate_NoTables(t *testing.T) {
	engine := NewCalculationEngine(nil)
	_, err := engine.Calculate(context.Background(), baseInputs(), domain.TaxYears{})
	assert.ErrorIs(t, err, ErrNoTaxTables)
}

func TestCalculate_Cancelled(t *testing.T) {
	engine, years := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := engine.Calculate(ctx, baseInputs(), years)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSetLogger_Nil(t *testing.T) {
	engine, _ := newTestEngine(t)
	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
}

func TestCompare(t *testing.T) {
	engine, years := newTestEngine(t)
	cmp, err := engine.Compare(context.Background(), baseInputs(), years)
	require.NoError(t, err)
	require.Len(t, cmp.Summaries, 4)

	uk, ok := cmp.Summary(domain.RegimeUK)
	require.True(t, ok)
	assertDecimal(t, "UK net stays in GBP", "48257.4", uk.NetAnnual)

	normal, _ := cmp.Summary(domain.RegimeSpainNormal)
	assertDecimal(t, "50187.14 EUR in GBP", "43640.99", normal.NetAnnual)
	assertDecimal(t, "gross restated", "65000", normal.GrossIncome)

	beckham, _ := cmp.Summary(domain.RegimeSpainBeckham)
	assertDecimal(t, "53212.98 EUR in GBP", "46272.16", beckham.NetAnnual)

	assert.Equal(t, domain.RegimeUK, cmp.BestOverall)
	assert.Equal(t, domain.RegimeSpainBeckham, cmp.BestSpanish)
	assert.NotNil(t, cmp.Result(domain.RegimeSpainAutonomo))
}
