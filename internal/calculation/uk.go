package calculation

import (
	"fmt"

	"github.com/paycompare/tax-calculator/internal/domain"
	"github.com/paycompare/tax-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

const (
	warnPropertyEstimate = "Foreign property tax is a simplified estimate; check the local rules and any treaty relief before relying on it."
	warnNoForeignCredit  = "Tax paid abroad on the rental income is not credited against UK tax in this estimate."
)

// NationalInsurance computes employee Class 1 contributions on annual pay.
func NationalInsurance(pay decimal.Decimal, ni domain.NIConfig) decimal.Decimal {
	main := money.NonNegative(decimal.Min(pay, ni.UpperEarningsLimit).Sub(ni.PrimaryThreshold)).Mul(ni.MainRate)
	upper := money.NonNegative(pay.Sub(ni.UpperEarningsLimit)).Mul(ni.UpperRate)
	return main.Add(upper)
}

// incomeTaxUK applies the tapered personal allowance and the UK bands to total income.
func incomeTaxUK(income decimal.Decimal, cfg domain.UKTaxYear) (allowance, taxable, tax decimal.Decimal, bands []domain.BandBreakdown) {
	allowance = taperedAllowance(income, cfg)
	taxable = money.NonNegative(income.Sub(allowance))
	tax, bands = ApplyBands(taxable, cfg.Bands)
	return allowance, taxable, tax, bands
}

// CalculateUK computes the UK PAYE employment regime for the given fiscal year key, e.g. "2024/25".
func CalculateUK(in *domain.TaxInputs, tables *domain.TaxTables, yearKey string) (*domain.TaxResult, error) {
	cfg, err := ukYear(tables, yearKey)
	if err != nil {
		return nil, err
	}

	log := newStepLog()
	res := &domain.TaxResult{Regime: domain.RegimeUK, TaxYear: yearKey, Currency: money.GBP}

	gross := money.Convert(in.GrossSalary, in.SalaryCurrency, money.GBP, in.ExchangeRate)
	log.employment("Gross salary (GBP)", gross, "")

	pension := money.PercentOf(gross, in.PensionContributionPercent)
	if pension.IsPositive() {
		log.employment("Pension (salary sacrifice)", pension.Neg(), in.PensionContributionPercent.String()+"% of gross")
	}
	pay := gross.Sub(pension)

	allowance, taxable, incomeTax, bands := incomeTaxUK(pay, cfg)
	detail := ""
	if allowance.LessThan(cfg.PersonalAllowance) {
		detail = "tapered above " + cfg.TaperThreshold.String()
	}
	log.employment("Personal allowance", allowance, detail)
	log.employment("Taxable income", taxable, "")
	log.employment("Income tax", incomeTax, "")
	res.TaxableIncome = taxable
	res.Bands = bands

	ni := decimal.Zero
	if in.IncludeUKNI {
		ni = NationalInsurance(pay, cfg.NI)
		log.employment("National Insurance", ni, fmt.Sprintf("%s between %s and %s, %s above",
			percent(cfg.NI.MainRate), cfg.NI.PrimaryThreshold, cfg.NI.UpperEarningsLimit, percent(cfg.NI.UpperRate)))
	}

	propertyTax := decimal.Zero
	otherTax := decimal.Zero
	if in.HasProperty() {
		p := GenericPropertyIncome(in).In(money.GBP, in.ExchangeRate)
		res.ForeignIncomeIncluded = true
		res.PropertyNetAnnual = ptr(p.NetAnnual)
		res.PropertyNetCashFlow = ptr(p.NetCashFlowAnnual)
		log.property("Rental income", p.RentalAnnual, in.ForeignPropertyCountry)
		log.property("Deductible expenses", p.DeductiblesAnnual.Neg(), "")
		if p.DeductedInterestAnnual.IsPositive() {
			log.property("Mortgage interest deducted", p.DeductedInterestAnnual.Neg(), "")
		}
		log.property("Net property income", p.NetAnnual, "")

		_, _, combinedTax, _ := incomeTaxUK(pay.Add(p.NetAnnual), cfg)
		marginal := money.NonNegative(combinedTax.Sub(incomeTax))
		log.property("Tax at marginal rate", marginal, "")
		propertyTax = marginal
		if in.ForeignPropertyCountry == domain.CountryUK {
			credit := p.MortgageInterestAnnual.Mul(cfg.S24CreditRate)
			log.property("Section 24 credit", credit.Neg(), percent(cfg.S24CreditRate)+" of mortgage interest")
			propertyTax = money.NonNegative(marginal.Sub(credit))
			res.UKPropertyTaxPaid = ptr(propertyTax)
		} else {
			res.Warnings = append(res.Warnings, warnPropertyEstimate)
		}
		log.property("UK tax on property", propertyTax, "")

		if nr, ok := NonResidentPropertyTax(in, tables.NonResidentProperty); ok {
			otherTax = money.Convert(nr.Tax, money.EUR, money.GBP, in.ExchangeRate)
			log.property(nr.Country+" property tax", otherTax, describeRule(nr))
			res.CountryTaxes = append(res.CountryTaxes, domain.CountryTax{Country: nr.Country, Amount: nr.Tax, Currency: money.EUR})
			res.Warnings = append(res.Warnings, warnNoForeignCredit)
		}
	}

	res.CountryTaxes = append([]domain.CountryTax{{
		Country:  domain.CountryUK,
		Amount:   incomeTax.Add(propertyTax),
		Currency: money.GBP,
	}}, res.CountryTaxes...)

	finalize(res, totals{
		gross:      gross,
		pension:    pension,
		incomeTax:  incomeTax,
		social:     ni,
		foreignTax: propertyTax,
		otherTax:   otherTax,
	}, log)
	return res, nil
}
