package domain

import (
	"github.com/paycompare/tax-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// Country codes recognised by the property calculators.
const (
	CountryUK          = "UK"
	CountrySpain       = "Spain"
	CountryPortugal    = "Portugal"
	CountryGreece      = "Greece"
	CountryItaly       = "Italy"
	CountryFrance      = "France"
	CountryGermany     = "Germany"
	CountryIreland     = "Ireland"
	CountryNetherlands = "Netherlands"
	CountryBelgium     = "Belgium"
	CountryUSA         = "USA"
	CountryOther       = "Other"
)

// TaxInputs is the snapshot of a user's finances that every regime calculator reads.
// Property amounts are monthly, everything else is annual.
type TaxInputs struct {
	BaseCurrency money.Currency  `yaml:"base_currency" json:"baseCurrency"`
	ExchangeRate decimal.Decimal `yaml:"exchange_rate" json:"exchangeRate"` // EUR per 1 GBP

	GrossSalary                decimal.Decimal `yaml:"gross_salary" json:"grossSalary"`
	SalaryCurrency             money.Currency  `yaml:"salary_currency" json:"salaryCurrency"`
	PensionContributionPercent decimal.Decimal `yaml:"pension_contribution_percent" json:"pensionContributionPercent"`

	FreelanceRevenue                    decimal.Decimal `yaml:"freelance_revenue" json:"freelanceRevenue"`
	FreelanceCurrency                   money.Currency  `yaml:"freelance_currency" json:"freelanceCurrency"`
	ExpenseDeductionRate                decimal.Decimal `yaml:"expense_deduction_rate" json:"expenseDeductionRate"`
	FreelancePensionContributionPercent decimal.Decimal `yaml:"freelance_pension_contribution_percent" json:"freelancePensionContributionPercent"`

	IncludeUK            bool `yaml:"include_uk" json:"includeUk"`
	IncludeUKNI          bool `yaml:"include_uk_ni" json:"includeUkNi"`
	IncludeSpainNormal   bool `yaml:"include_spain_normal" json:"includeSpainNormal"`
	IncludeSpainBeckham  bool `yaml:"include_spain_beckham" json:"includeSpainBeckham"`
	IncludeSpainAutonomo bool `yaml:"include_spain_autonomo" json:"includeSpainAutonomo"`

	ForeignPropertyRentalIncome                      decimal.Decimal `yaml:"foreign_property_rental_income" json:"foreignPropertyRentalIncome"`
	ForeignPropertyDeductibles                       decimal.Decimal `yaml:"foreign_property_deductibles" json:"foreignPropertyDeductibles"`
	ForeignPropertyMortgageInterest                  decimal.Decimal `yaml:"foreign_property_mortgage_interest" json:"foreignPropertyMortgageInterest"`
	ForeignPropertyMortgagePayment                   decimal.Decimal `yaml:"foreign_property_mortgage_payment" json:"foreignPropertyMortgagePayment"`
	ForeignPropertyMortgageInterestDeductiblePercent decimal.Decimal `yaml:"foreign_property_mortgage_interest_deductible_percent" json:"foreignPropertyMortgageInterestDeductiblePercent"`
	ForeignPropertyCurrency                          money.Currency  `yaml:"foreign_property_currency" json:"foreignPropertyCurrency"`
	ForeignPropertyCountry                           string          `yaml:"foreign_property_country" json:"foreignPropertyCountry"`
	ForeignPropertyEnabled                           bool            `yaml:"foreign_property_enabled" json:"foreignPropertyEnabled"`
	TreatAsForeignSource                             bool            `yaml:"treat_as_foreign_source" json:"treatAsForeignSource"`

	// AutonomoYear selects the contribution rules: 1, 2 or 3 (meaning third year onwards).
	AutonomoYear int `yaml:"autonomo_year" json:"autonomoYear"`
}

// HasProperty reports whether a rental property should be considered at all.
func (in *TaxInputs) HasProperty() bool {
	return in.ForeignPropertyEnabled
}

// PropertyIn reports whether an enabled property is located in country.
func (in *TaxInputs) PropertyIn(country string) bool {
	return in.ForeignPropertyEnabled && in.ForeignPropertyCountry == country
}

// PropertyForeignSourced reports whether Spain treats the property as foreign-source income.
// UK property is always foreign, Spanish property never is, anything else follows the flag.
func (in *TaxInputs) PropertyForeignSourced() bool {
	switch in.ForeignPropertyCountry {
	case CountryUK:
		return true
	case CountrySpain:
		return false
	default:
		return in.TreatAsForeignSource
	}
}

// PropertyInSpanishBase reports whether Spain Normal and Autónomo add the rental profit to the general base:
// the property is foreign-source income (UK always is) or it is in Spain.
func (in *TaxInputs) PropertyInSpanishBase() bool {
	return in.ForeignPropertyEnabled && (in.PropertyForeignSourced() || in.ForeignPropertyCountry == CountrySpain)
}

// AnyRegimeEnabled reports whether at least one regime flag is set.
func (in *TaxInputs) AnyRegimeEnabled() bool {
	return in.IncludeUK || in.IncludeSpainNormal || in.IncludeSpainBeckham || in.IncludeSpainAutonomo
}
