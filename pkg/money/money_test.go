package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	rate := decimal.NewFromFloat(1.15)

	tests := []struct {
		name     string
		amount   decimal.Decimal
		from, to Currency
		expected decimal.Decimal
	}{
		{"identity GBP", decimal.NewFromInt(100), GBP, GBP, decimal.NewFromInt(100)},
		{"identity EUR", decimal.NewFromInt(100), EUR, EUR, decimal.NewFromInt(100)},
		{"GBP to EUR multiplies", decimal.NewFromInt(100), GBP, EUR, decimal.NewFromInt(115)},
		{"EUR to GBP divides", decimal.NewFromInt(115), EUR, GBP, decimal.NewFromInt(100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Convert(tt.amount, tt.from, tt.to, rate)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	amounts := []string{"0", "0.01", "1", "12570", "65000", "73650.55", "1234567.89"}
	rates := []string{"0.5", "0.86", "1", "1.15", "1.1789", "3"}
	tolerance := decimal.NewFromFloat(0.000001)

	for _, a := range amounts {
		for _, r := range rates {
			x := decimal.RequireFromString(a)
			rate := decimal.RequireFromString(r)
			back := Convert(Convert(x, GBP, EUR, rate), EUR, GBP, rate)
			assert.True(t, back.Sub(x).Abs().LessThanOrEqual(tolerance), "round trip %s at %s gave %s", a, r, back)
		}
	}
}

func TestParseCurrency(t *testing.T) {
	c, err := ParseCurrency("eur")
	require.NoError(t, err)
	assert.Equal(t, EUR, c)

	_, err = ParseCurrency("USD")
	assert.Error(t, err)
	assert.False(t, Currency("USD").Valid())
}

func TestAnnualMonthlyPercent(t *testing.T) {
	assert.True(t, decimal.NewFromInt(24000).Equal(Annual(decimal.NewFromInt(2000))))
	assert.True(t, decimal.NewFromInt(2000).Equal(Monthly(decimal.NewFromInt(24000))))
	assert.True(t, decimal.NewFromFloat(5155.5).Equal(PercentOf(decimal.NewFromInt(73650), decimal.NewFromInt(7))))
	assert.True(t, decimal.NewFromInt(25).Equal(Ratio(decimal.NewFromInt(1), decimal.NewFromInt(4))))
	assert.True(t, Ratio(decimal.NewFromInt(1), decimal.Zero).IsZero())
	assert.True(t, NonNegative(decimal.NewFromInt(-5)).IsZero())
	assert.True(t, decimal.NewFromInt(5).Equal(NonNegative(decimal.NewFromInt(5))))
}

func TestMoneyFormatting(t *testing.T) {
	tests := []struct {
		name     string
		money    Money
		expected string
	}{
		{"pounds with grouping", New(decimal.NewFromInt(65000), GBP), "£65,000.00"},
		{"euros with cents", New(decimal.NewFromFloat(5155.5), EUR), "€5,155.50"},
		{"negative", New(decimal.NewFromInt(-1200), EUR), "-€1,200.00"},
		{"small", New(decimal.NewFromFloat(0.2), GBP), "£0.20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.money.String())
		})
	}
	assert.Equal(t, "12.35%", FormatPercent(decimal.NewFromFloat(12.345)))
}

func TestMoneyTo(t *testing.T) {
	m := New(decimal.NewFromInt(1000), GBP).To(EUR, decimal.NewFromFloat(1.15))
	assert.Equal(t, EUR, m.Currency)
	assert.True(t, decimal.NewFromInt(1150).Equal(m.Amount))
	assert.True(t, decimal.NewFromFloat(1.23).Equal(New(decimal.NewFromFloat(1.234), GBP).Round().Amount))
}
