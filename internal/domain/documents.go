package domain

import (
	"github.com/paycompare/tax-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// MonthlyRow is one month of an evenly spread annual result.
type MonthlyRow struct {
	Month                int              `yaml:"month" json:"month"` // position within the tax year, 1-12
	MonthLabel           string           `yaml:"month_label" json:"monthLabel"`
	GrossIncome          decimal.Decimal  `yaml:"gross_income" json:"grossIncome"`
	Deductions           decimal.Decimal  `yaml:"deductions" json:"deductions"`
	IncomeTax            decimal.Decimal  `yaml:"income_tax" json:"incomeTax"`
	SocialContributions  decimal.Decimal  `yaml:"social_contributions" json:"socialContributions"`
	NetIncome            decimal.Decimal  `yaml:"net_income" json:"netIncome"`
	Modelo130Installment *decimal.Decimal `yaml:"modelo130_installment,omitempty" json:"modelo130Installment,omitempty"`
}

// SA100Summary mirrors the headline boxes of the UK self assessment return.
type SA100Summary struct {
	TotalIncome   decimal.Decimal `yaml:"total_income" json:"totalIncome"`
	TaxableIncome decimal.Decimal `yaml:"taxable_income" json:"taxableIncome"`
	IncomeTax     decimal.Decimal `yaml:"income_tax" json:"incomeTax"`
	NI            decimal.Decimal `yaml:"ni" json:"ni"`
}

// SA105Summary is the UK property pages for a UK resident landlord.
type SA105Summary struct {
	RentalIncome      decimal.Decimal `yaml:"rental_income" json:"rentalIncome"`
	AllowableExpenses decimal.Decimal `yaml:"allowable_expenses" json:"allowableExpenses"`
	NetProfit         decimal.Decimal `yaml:"net_profit" json:"netProfit"`
	MortgageInterest  decimal.Decimal `yaml:"mortgage_interest" json:"mortgageInterest"`
	S24Credit         decimal.Decimal `yaml:"s24_credit" json:"s24Credit"`
	TaxDue            decimal.Decimal `yaml:"tax_due" json:"taxDue"`
}

// PaymentsOnAccount is the self assessment payment schedule.
type PaymentsOnAccount struct {
	BalancingPayment decimal.Decimal `yaml:"balancing_payment" json:"balancingPayment"`
	FirstPOA         decimal.Decimal `yaml:"first_poa" json:"firstPOA"`
	SecondPOA        decimal.Decimal `yaml:"second_poa" json:"secondPOA"`
}

// QuarterlyUpdate is one Making Tax Digital submission window.
type QuarterlyUpdate struct {
	Quarter     int    `yaml:"quarter" json:"quarter"`
	PeriodLabel string `yaml:"period_label" json:"periodLabel"`
	Deadline    string `yaml:"deadline" json:"deadline"`
}

// Modelo130Quarter is one quarterly IRPF prepayment for the self-employed.
type Modelo130Quarter struct {
	Quarter   int             `yaml:"quarter" json:"quarter"`
	NetProfit decimal.Decimal `yaml:"net_profit" json:"netProfit"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
	AmountDue decimal.Decimal `yaml:"amount_due" json:"amountDue"`
	Deadline  string          `yaml:"deadline" json:"deadline"`
}

// Modelo100Summary is the annual IRPF return summary.
type Modelo100Summary struct {
	TotalIncome          decimal.Decimal `yaml:"total_income" json:"totalIncome"`
	TotalDeductions      decimal.Decimal `yaml:"total_deductions" json:"totalDeductions"`
	TaxDue               decimal.Decimal `yaml:"tax_due" json:"taxDue"`
	Modelo130Prepayments decimal.Decimal `yaml:"modelo130_prepayments" json:"modelo130Prepayments"`
}

// Modelo151Summary is the Beckham regime return summary.
type Modelo151Summary struct {
	SpanishIncome  decimal.Decimal `yaml:"spanish_income" json:"spanishIncome"`
	Tax24          decimal.Decimal `yaml:"tax24" json:"tax24"`
	SocialSecurity decimal.Decimal `yaml:"social_security" json:"socialSecurity"`
}

// UKPropertyTaxBreakdown is the non-resident landlord computation for a UK property.
type UKPropertyTaxBreakdown struct {
	NetProfit         decimal.Decimal `yaml:"net_profit" json:"netProfit"`
	PersonalAllowance decimal.Decimal `yaml:"personal_allowance" json:"personalAllowance"`
	TaxableAfterPA    decimal.Decimal `yaml:"taxable_after_pa" json:"taxableAfterPA"`
	TaxBeforeS24      decimal.Decimal `yaml:"tax_before_s24" json:"taxBeforeS24"`
	S24Credit         decimal.Decimal `yaml:"s24_credit" json:"s24Credit"`
	NetTaxDue         decimal.Decimal `yaml:"net_tax_due" json:"netTaxDue"`
	Bands             []BandBreakdown `yaml:"bands,omitempty" json:"bands,omitempty"`
}

// UKPropertyForms is what a Spanish resident still reports to HMRC for a UK rental.
type UKPropertyForms struct {
	RentalIncome      decimal.Decimal        `yaml:"rental_income" json:"rentalIncome"`
	AllowableExpenses decimal.Decimal        `yaml:"allowable_expenses" json:"allowableExpenses"`
	NetProfit         decimal.Decimal        `yaml:"net_profit" json:"netProfit"`
	MortgageInterest  decimal.Decimal        `yaml:"mortgage_interest" json:"mortgageInterest"`
	S24Credit         decimal.Decimal        `yaml:"s24_credit" json:"s24Credit"`
	UKTaxDue          decimal.Decimal        `yaml:"uk_tax_due" json:"ukTaxDue"`
	UKTaxYearLabel    string                 `yaml:"uk_tax_year_label" json:"ukTaxYearLabel"`
	Breakdown         UKPropertyTaxBreakdown `yaml:"calculation_breakdown" json:"calculationBreakdown"`
	Explanation       string                 `yaml:"explanation" json:"explanation"`
}

// TaxDocumentsData is the administrative view of a single regime result.
type TaxDocumentsData struct {
	Regime           Regime         `yaml:"regime" json:"regimeKey"`
	Currency         money.Currency `yaml:"currency" json:"currency"`
	TaxYearLabel     string         `yaml:"tax_year_label" json:"taxYearLabel"`
	MonthlyBreakdown []MonthlyRow   `yaml:"monthly_breakdown" json:"monthlyBreakdown"`

	SA100               *SA100Summary      `yaml:"sa100,omitempty" json:"sa100,omitempty"`
	SA105               *SA105Summary      `yaml:"sa105,omitempty" json:"sa105,omitempty"`
	PaymentsOnAccount   *PaymentsOnAccount `yaml:"payments_on_account,omitempty" json:"paymentsOnAccount,omitempty"`
	MTDQuarterlyUpdates []QuarterlyUpdate  `yaml:"mtd_quarterly_updates,omitempty" json:"mtdQuarterlyUpdates,omitempty"`

	Modelo130 []Modelo130Quarter `yaml:"modelo130,omitempty" json:"modelo130,omitempty"`
	Modelo100 *Modelo100Summary  `yaml:"modelo100,omitempty" json:"modelo100,omitempty"`
	Modelo151 *Modelo151Summary  `yaml:"modelo151,omitempty" json:"modelo151,omitempty"`

	UKPropertyForms *UKPropertyForms `yaml:"uk_property_forms,omitempty" json:"ukPropertyForms,omitempty"`
}
