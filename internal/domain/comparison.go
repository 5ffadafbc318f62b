package domain

import (
	"github.com/paycompare/tax-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// RegimeSummary restates a result in the comparison's base currency.
type RegimeSummary struct {
	Regime          Regime          `yaml:"regime" json:"regime"`
	TaxYear         string          `yaml:"tax_year" json:"taxYear"`
	GrossIncome     decimal.Decimal `yaml:"gross_income" json:"grossIncome"`
	TotalDeductions decimal.Decimal `yaml:"total_deductions" json:"totalDeductions"`
	NetAnnual       decimal.Decimal `yaml:"net_annual" json:"netAnnual"`
	NetMonthly      decimal.Decimal `yaml:"net_monthly" json:"netMonthly"`
	EffectiveRate   decimal.Decimal `yaml:"effective_rate" json:"effectiveRate"`
	TakeHomePercent decimal.Decimal `yaml:"take_home_percent" json:"takeHomePercent"`
}

// Comparison holds every enabled regime result side by side.
type Comparison struct {
	BaseCurrency money.Currency  `yaml:"base_currency" json:"baseCurrency"`
	ExchangeRate decimal.Decimal `yaml:"exchange_rate" json:"exchangeRate"`
	Years        TaxYears        `yaml:"years" json:"years"`
	Results      []*TaxResult    `yaml:"results" json:"results"`
	Summaries    []RegimeSummary `yaml:"summaries" json:"summaries"`
	BestSpanish  Regime          `yaml:"best_spanish,omitempty" json:"bestSpanish,omitempty"`
	BestOverall  Regime          `yaml:"best_overall,omitempty" json:"bestOverall,omitempty"`
}

// Result returns the result for a regime, or nil when it was not calculated.
func (c *Comparison) Result(r Regime) *TaxResult {
	for _, res := range c.Results {
		if res.Regime == r {
			return res
		}
	}
	return nil
}

// Summary returns the base-currency summary for a regime.
func (c *Comparison) Summary(r Regime) (RegimeSummary, bool) {
	for _, s := range c.Summaries {
		if s.Regime == r {
			return s, true
		}
	}
	return RegimeSummary{}, false
}
