package domain

import (
	"github.com/paycompare/tax-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// Regime identifies one of the four tax regimes.
type Regime string

const (
	RegimeUK            Regime = "uk"
	RegimeSpainNormal   Regime = "spainNormal"
	RegimeSpainBeckham  Regime = "spainBeckham"
	RegimeSpainAutonomo Regime = "spainAutonomo"
)

// AllRegimes lists regimes in display order.
var AllRegimes = []Regime{RegimeUK, RegimeSpainNormal, RegimeSpainBeckham, RegimeSpainAutonomo}

// Spanish reports whether the regime is one of the Spanish ones.
func (r Regime) Spanish() bool {
	return r == RegimeSpainNormal || r == RegimeSpainBeckham || r == RegimeSpainAutonomo
}

// Title returns a human readable regime name.
func (r Regime) Title() string {
	switch r {
	case RegimeUK:
		return "UK Employed"
	case RegimeSpainNormal:
		return "Spain Normal"
	case RegimeSpainBeckham:
		return "Spain Beckham"
	case RegimeSpainAutonomo:
		return "Spain Autónomo"
	default:
		return string(r)
	}
}

// Section groups calculation steps for display.
type Section string

const (
	SectionEmployment Section = "employment"
	SectionProperty   Section = "property"
	SectionNet        Section = "net"
)

// CalculationStep is one line of the audit trail.
type CalculationStep struct {
	Label   string          `yaml:"label" json:"label"`
	Amount  decimal.Decimal `yaml:"amount" json:"amount"`
	Detail  string          `yaml:"detail,omitempty" json:"detail,omitempty"`
	Section Section         `yaml:"section,omitempty" json:"section,omitempty"`
	Order   int             `yaml:"order" json:"order"`
}

// BandBreakdown records how much income fell in one band and the tax charged on it.
type BandBreakdown struct {
	Band          string          `yaml:"band" json:"band"`
	TaxableAmount decimal.Decimal `yaml:"taxable_amount" json:"taxableAmount"`
	Rate          decimal.Decimal `yaml:"rate" json:"rate"`
	Tax           decimal.Decimal `yaml:"tax" json:"tax"`
}

// CountryTax attributes income tax to the country that levies it.
type CountryTax struct {
	Country  string          `yaml:"country" json:"country"`
	Amount   decimal.Decimal `yaml:"amount" json:"amount"`
	Currency money.Currency  `yaml:"currency" json:"currency"`
}

// TaxResult is the outcome of one regime calculation.
//
// Optional fields are populated as follows:
//   - PensionContribution: any regime with a non-zero pension sacrifice
//   - ExpenseDeduction, CuotaMonthly, CuotaAnnual, NetTaxableProfit: Spain Autónomo
//   - PropertyNetAnnual, PropertyNetCashFlow: any regime with an enabled property
//   - UKPropertyTaxPaid: any regime with an enabled UK property
//   - DTACredit: Spain Normal with a UK property, only when the credit is above zero
//
// NetAnnual always equals GrossIncome minus TotalDeductions.
type TaxResult struct {
	Regime   Regime         `yaml:"regime" json:"regime"`
	TaxYear  string         `yaml:"tax_year" json:"taxYear"`
	Currency money.Currency `yaml:"currency" json:"grossCurrency"`

	GrossIncome         decimal.Decimal  `yaml:"gross_income" json:"grossIncome"`
	PensionContribution *decimal.Decimal `yaml:"pension_contribution,omitempty" json:"pensionContribution,omitempty"`
	ExpenseDeduction    *decimal.Decimal `yaml:"expense_deduction,omitempty" json:"expenseDeduction,omitempty"`
	TaxableIncome       decimal.Decimal  `yaml:"taxable_income" json:"taxableIncome"`
	IncomeTax           decimal.Decimal  `yaml:"income_tax" json:"incomeTax"`
	SocialContributions decimal.Decimal  `yaml:"social_contributions" json:"socialContributions"`
	TotalDeductions     decimal.Decimal  `yaml:"total_deductions" json:"totalDeductions"`
	NetAnnual           decimal.Decimal  `yaml:"net_annual" json:"netAnnual"`
	NetMonthly          decimal.Decimal  `yaml:"net_monthly" json:"netMonthly"`
	EffectiveRate       decimal.Decimal  `yaml:"effective_rate" json:"effectiveRate"`
	TakeHomePercent     decimal.Decimal  `yaml:"take_home_percent" json:"takeHomePercent"`

	Steps []CalculationStep `yaml:"steps" json:"steps"`
	Bands []BandBreakdown   `yaml:"bands" json:"bandBreakdown"`

	ForeignIncomeIncluded bool             `yaml:"foreign_income_included" json:"foreignIncomeIncluded"`
	ForeignIncomeTax      decimal.Decimal  `yaml:"foreign_income_tax" json:"foreignIncomeTax"`
	PropertyNetAnnual     *decimal.Decimal `yaml:"property_net_annual,omitempty" json:"propertyNetAnnual,omitempty"`
	PropertyNetCashFlow   *decimal.Decimal `yaml:"property_net_cash_flow,omitempty" json:"propertyNetCashFlow,omitempty"`
	UKPropertyTaxPaid     *decimal.Decimal `yaml:"uk_property_tax_paid,omitempty" json:"ukPropertyTaxPaid,omitempty"`
	DTACredit             *decimal.Decimal `yaml:"dta_credit,omitempty" json:"dtaCredit,omitempty"`
	CountryTaxes          []CountryTax     `yaml:"country_taxes,omitempty" json:"countryTaxes,omitempty"`

	CuotaMonthly     *decimal.Decimal `yaml:"cuota_monthly,omitempty" json:"cuotaMonthly,omitempty"`
	CuotaAnnual      *decimal.Decimal `yaml:"cuota_annual,omitempty" json:"cuotaAnnual,omitempty"`
	NetTaxableProfit *decimal.Decimal `yaml:"net_taxable_profit,omitempty" json:"netTaxableProfit,omitempty"`

	Warnings []string `yaml:"warnings" json:"warnings"`
}

// StepsIn returns the steps tagged with the given section, in order.
func (r *TaxResult) StepsIn(section Section) []CalculationStep {
	var out []CalculationStep
	for _, s := range r.Steps {
		if s.Section == section {
			out = append(out, s)
		}
	}
	return out
}

// TaxFor returns the attributed tax for a country and whether an entry exists.
func (r *TaxResult) TaxFor(country string) (CountryTax, bool) {
	for _, ct := range r.CountryTaxes {
		if ct.Country == country {
			return ct, true
		}
	}
	return CountryTax{}, false
}

// ValueOrZero dereferences an optional amount.
func ValueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
