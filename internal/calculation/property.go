package calculation

import (
	"fmt"

	"github.com/paycompare/tax-calculator/internal/domain"
	"github.com/paycompare/tax-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// PropertyIncome is the annualised rental position in the property's own currency.
type PropertyIncome struct {
	Currency               money.Currency
	RentalAnnual           decimal.Decimal
	DeductiblesAnnual      decimal.Decimal
	MortgageInterestAnnual decimal.Decimal
	MortgagePaymentAnnual  decimal.Decimal
	DeductedInterestAnnual decimal.Decimal // mortgage interest allowed against rent
	NetAnnual              decimal.Decimal // taxable profit, never negative
	NetCashFlowAnnual      decimal.Decimal // includes capital repayment, may be negative
}

// In converts every figure to the target currency.
func (p PropertyIncome) In(target money.Currency, rate decimal.Decimal) PropertyIncome {
	conv := func(d decimal.Decimal) decimal.Decimal { return money.Convert(d, p.Currency, target, rate) }
	return PropertyIncome{
		Currency:               target,
		RentalAnnual:           conv(p.RentalAnnual),
		DeductiblesAnnual:      conv(p.DeductiblesAnnual),
		MortgageInterestAnnual: conv(p.MortgageInterestAnnual),
		MortgagePaymentAnnual:  conv(p.MortgagePaymentAnnual),
		DeductedInterestAnnual: conv(p.DeductedInterestAnnual),
		NetAnnual:              conv(p.NetAnnual),
		NetCashFlowAnnual:      conv(p.NetCashFlowAnnual),
	}
}

func annualPropertyBase(in *domain.TaxInputs) PropertyIncome {
	currency := in.ForeignPropertyCurrency
	if !currency.Valid() {
		currency = money.GBP
	}
	return PropertyIncome{
		Currency:               currency,
		RentalAnnual:           money.Annual(in.ForeignPropertyRentalIncome),
		DeductiblesAnnual:      money.Annual(in.ForeignPropertyDeductibles),
		MortgageInterestAnnual: money.Annual(in.ForeignPropertyMortgageInterest),
		MortgagePaymentAnnual:  money.Annual(in.ForeignPropertyMortgagePayment),
		NetCashFlowAnnual: money.Annual(in.ForeignPropertyRentalIncome.
			Sub(in.ForeignPropertyDeductibles).
			Sub(in.ForeignPropertyMortgagePayment)),
	}
}

// GenericPropertyIncome applies the generic treatment. UK property gets no mortgage interest deduction
// (Section 24); elsewhere the deductible percentage of the interest reduces the profit.
func GenericPropertyIncome(in *domain.TaxInputs) PropertyIncome {
	p := annualPropertyBase(in)
	interest := decimal.Zero
	if in.ForeignPropertyCountry != domain.CountryUK {
		interest = money.PercentOf(in.ForeignPropertyMortgageInterest, in.ForeignPropertyMortgageInterestDeductiblePercent)
	}
	p.DeductedInterestAnnual = money.Annual(interest)
	p.NetAnnual = money.Annual(money.NonNegative(in.ForeignPropertyRentalIncome.
		Sub(in.ForeignPropertyDeductibles).
		Sub(interest)))
	return p
}

// SpainPropertyIncome applies the Spanish treatment: running costs and mortgage interest are fully
// deductible, but total deductions are capped at the gross rent. Excess deductions are dropped.
func SpainPropertyIncome(in *domain.TaxInputs) PropertyIncome {
	p := annualPropertyBase(in)
	deductions := decimal.Min(p.DeductiblesAnnual.Add(p.MortgageInterestAnnual), p.RentalAnnual)
	p.DeductedInterestAnnual = decimal.Min(p.MortgageInterestAnnual, money.NonNegative(p.RentalAnnual.Sub(p.DeductiblesAnnual)))
	p.NetAnnual = money.NonNegative(p.RentalAnnual.Sub(money.NonNegative(deductions)))
	return p
}

// rentLessDeductibles ignores mortgage interest entirely.
func rentLessDeductibles(in *domain.TaxInputs) PropertyIncome {
	p := annualPropertyBase(in)
	p.NetAnnual = money.Annual(money.NonNegative(in.ForeignPropertyRentalIncome.Sub(in.ForeignPropertyDeductibles)))
	return p
}

// taperedAllowance reduces the personal allowance by £1 for every full £2 of income above the taper threshold.
func taperedAllowance(income decimal.Decimal, cfg domain.UKTaxYear) decimal.Decimal {
	if income.LessThanOrEqual(cfg.TaperThreshold) {
		return cfg.PersonalAllowance
	}
	reduction := income.Sub(cfg.TaperThreshold).Div(decimal.NewFromInt(2)).Floor()
	return money.NonNegative(cfg.PersonalAllowance.Sub(reduction))
}

// UKNonResidentPropertyTax computes what HMRC charges a non-resident landlord on UK rental profit:
// tapered personal allowance against the property profit alone, UK bands, then the Section 24 credit.
// The credit can only reduce the tax to zero.
func UKNonResidentPropertyTax(netProfitGBP, mortgageInterestGBP decimal.Decimal, cfg domain.UKTaxYear) domain.UKPropertyTaxBreakdown {
	allowance := taperedAllowance(netProfitGBP, cfg)
	taxable := money.NonNegative(netProfitGBP.Sub(allowance))
	before, bands := ApplyBands(taxable, cfg.Bands)
	credit := mortgageInterestGBP.Mul(cfg.S24CreditRate)
	return domain.UKPropertyTaxBreakdown{
		NetProfit:         netProfitGBP,
		PersonalAllowance: allowance,
		TaxableAfterPA:    taxable,
		TaxBeforeS24:      before,
		S24Credit:         credit,
		NetTaxDue:         money.NonNegative(before.Sub(credit)),
		Bands:             bands,
	}
}

// UKPropertyTaxForInputs runs the non-resident landlord calculation for the configured UK property.
func UKPropertyTaxForInputs(in *domain.TaxInputs, cfg domain.UKTaxYear) domain.UKPropertyTaxBreakdown {
	p := GenericPropertyIncome(in).In(money.GBP, in.ExchangeRate)
	return UKNonResidentPropertyTax(p.NetAnnual, p.MortgageInterestAnnual, cfg)
}

// NonResidentTax is rental tax owed to a country where the taxpayer is not resident. Amounts are in EUR.
type NonResidentTax struct {
	Country string
	Rule    domain.NonResidentPropertyRule
	Base    decimal.Decimal
	Tax     decimal.Decimal
	Bands   []domain.BandBreakdown
}

// NonResidentPropertyTax applies the country's flat or progressive non-resident rental rule. It reports
// false when the property is disabled or no rule exists for its country.
func NonResidentPropertyTax(in *domain.TaxInputs, rules map[string]domain.NonResidentPropertyRule) (NonResidentTax, bool) {
	if !in.ForeignPropertyEnabled {
		return NonResidentTax{}, false
	}
	rule, ok := rules[in.ForeignPropertyCountry]
	if !ok {
		return NonResidentTax{}, false
	}

	var p PropertyIncome
	switch rule.Base {
	case domain.PropertyBaseGeneric:
		p = GenericPropertyIncome(in)
	default:
		p = rentLessDeductibles(in)
	}
	base := p.In(money.EUR, in.ExchangeRate).NetAnnual

	result := NonResidentTax{Country: in.ForeignPropertyCountry, Rule: rule, Base: base}
	if len(rule.Bands) > 0 {
		result.Tax, result.Bands = ApplyBands(base, rule.Bands)
	} else {
		result.Tax = base.Mul(rule.Rate)
	}
	return result, true
}

// describeRule renders a short explanation for the audit trail.
func describeRule(nr NonResidentTax) string {
	name := nr.Rule.Name
	if name == "" {
		name = nr.Country + " non-resident rental tax"
	}
	if len(nr.Rule.Bands) > 0 {
		return fmt.Sprintf("%s, progressive on %s EUR", name, nr.Base.StringFixed(2))
	}
	return fmt.Sprintf("%s, %s of %s EUR", name, percent(nr.Rule.Rate), nr.Base.StringFixed(2))
}

// percent renders a 0-1 rate as a percentage, e.g. 0.28 -> "28%".
func percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}
