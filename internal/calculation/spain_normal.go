package calculation

import (
	"github.com/paycompare/tax-calculator/internal/domain"
	"github.com/paycompare/tax-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

const (
	warnPensionRelief = "Pension contributions are treated as salary sacrifice; relief in Spain depends on the scheme qualifying under Spanish rules."
	warnCarryForward  = "Rental deductions above the gross rent are dropped; the four-year carry-forward is not modelled."
)

// irpf applies the personal minimum as a zero-rate credit: tax on the base less tax on the minimum.
func irpf(base, personalMinimum decimal.Decimal, bands []domain.TaxBand) decimal.Decimal {
	return money.NonNegative(TaxOn(base, bands).Sub(TaxOn(personalMinimum, bands)))
}

// SocialSecurity returns the employee contribution on pay capped at the annual contribution base.
func SocialSecurity(pay decimal.Decimal, cfg domain.SpainNormalTaxYear) decimal.Decimal {
	return money.NonNegative(decimal.Min(pay, cfg.SocialSecurityCap)).Mul(cfg.SocialSecurityRate)
}

// spanishProperty returns the rental figures in EUR using the Spanish treatment for property in Spain
// and the generic treatment elsewhere.
func spanishProperty(in *domain.TaxInputs) PropertyIncome {
	if in.ForeignPropertyCountry == domain.CountrySpain {
		return SpainPropertyIncome(in).In(money.EUR, in.ExchangeRate)
	}
	return GenericPropertyIncome(in).In(money.EUR, in.ExchangeRate)
}

func logPropertyIncome(log *stepLog, in *domain.TaxInputs, p PropertyIncome) {
	log.property("Rental income", p.RentalAnnual, in.ForeignPropertyCountry)
	log.property("Deductible expenses", p.DeductiblesAnnual.Neg(), "")
	if p.DeductedInterestAnnual.IsPositive() {
		log.property("Mortgage interest deducted", p.DeductedInterestAnnual.Neg(), "")
	}
	log.property("Net property income", p.NetAnnual, "")
}

// ukPropertyTaxInSpain computes HMRC's non-resident charge for a Spanish tax year.
func ukPropertyTaxInSpain(in *domain.TaxInputs, tables *domain.TaxTables, spainYear string) (domain.UKPropertyTaxBreakdown, string, error) {
	ukKey, err := UKYearForSpain(tables, spainYear)
	if err != nil {
		return domain.UKPropertyTaxBreakdown{}, "", err
	}
	cfg, err := ukYear(tables, ukKey)
	if err != nil {
		return domain.UKPropertyTaxBreakdown{}, "", err
	}
	return UKPropertyTaxForInputs(in, cfg), ukKey, nil
}

// nonResidentTaxEUR adds any non-resident rental tax to the result and returns it in EUR.
func nonResidentTaxEUR(res *domain.TaxResult, log *stepLog, in *domain.TaxInputs, tables *domain.TaxTables) decimal.Decimal {
	nr, ok := NonResidentPropertyTax(in, tables.NonResidentProperty)
	if !ok {
		return decimal.Zero
	}
	log.property(nr.Country+" property tax", nr.Tax, describeRule(nr))
	res.CountryTaxes = append(res.CountryTaxes, domain.CountryTax{Country: nr.Country, Amount: nr.Tax, Currency: money.EUR})
	return nr.Tax
}

// CalculateSpainNormal computes standard IRPF for an employee for the given calendar year key, e.g. "2024".
func CalculateSpainNormal(in *domain.TaxInputs, tables *domain.TaxTables, yearKey string) (*domain.TaxResult, error) {
	cfg, err := spainNormalYear(tables, yearKey)
	if err != nil {
		return nil, err
	}

	log := newStepLog()
	res := &domain.TaxResult{Regime: domain.RegimeSpainNormal, TaxYear: yearKey, Currency: money.EUR}

	gross := money.Convert(in.GrossSalary, in.SalaryCurrency, money.EUR, in.ExchangeRate)
	log.employment("Gross salary (EUR)", gross, "")

	pension := money.PercentOf(gross, in.PensionContributionPercent)
	if pension.IsPositive() {
		log.employment("Pension (salary sacrifice)", pension.Neg(), in.PensionContributionPercent.String()+"% of gross")
		res.Warnings = append(res.Warnings, warnPensionRelief)
	}
	pay := gross.Sub(pension)

	ss := SocialSecurity(pay, cfg)
	log.employment("Social security", ss, percent(cfg.SocialSecurityRate)+" capped at base "+cfg.SocialSecurityCap.String())
	log.employment("General deduction", cfg.GeneralDeduction.Neg(), "")

	base := money.NonNegative(pay.Sub(ss).Sub(cfg.GeneralDeduction))
	incomeTax := irpf(base, cfg.PersonalMinimum, cfg.Bands)
	log.employment("Taxable base", base, "")
	log.employment("IRPF on employment", incomeTax, "personal minimum "+cfg.PersonalMinimum.String()+" taxed at zero")

	generalBase := base
	foreignTax := decimal.Zero
	otherTax := decimal.Zero
	if in.HasProperty() {
		p := spanishProperty(in)
		res.PropertyNetAnnual = ptr(p.NetAnnual)
		res.PropertyNetCashFlow = ptr(p.NetCashFlowAnnual)

		marginal := decimal.Zero
		if in.PropertyInSpanishBase() {
			res.ForeignIncomeIncluded = true
			logPropertyIncome(log, in, p)
			generalBase = base.Add(p.NetAnnual)
			marginal = irpf(generalBase, cfg.PersonalMinimum, cfg.Bands).Sub(incomeTax)
			log.property("Spanish tax on property", marginal, "")
			if in.ForeignPropertyCountry == domain.CountrySpain {
				res.Warnings = append(res.Warnings, warnCarryForward)
			}
		}
		foreignTax = marginal

		if in.ForeignPropertyCountry == domain.CountryUK {
			uk, ukKey, err := ukPropertyTaxInSpain(in, tables, yearKey)
			if err != nil {
				return nil, err
			}
			ukTaxEUR := money.Convert(uk.NetTaxDue, money.GBP, money.EUR, in.ExchangeRate)
			res.UKPropertyTaxPaid = ptr(uk.NetTaxDue)
			log.property("UK property tax paid", ukTaxEUR, "HMRC "+ukKey+", "+uk.NetTaxDue.StringFixed(2)+" GBP")
			otherTax = ukTaxEUR
			if credit := decimal.Min(ukTaxEUR, marginal); credit.IsPositive() {
				res.DTACredit = ptr(credit)
				log.property("DTA credit", credit.Neg(), "lower of UK tax and Spanish tax on the same income")
				foreignTax = marginal.Sub(credit)
			}
			res.CountryTaxes = append(res.CountryTaxes, domain.CountryTax{Country: domain.CountryUK, Amount: uk.NetTaxDue, Currency: money.GBP})
		}
		otherTax = otherTax.Add(nonResidentTaxEUR(res, log, in, tables))
		res.Warnings = append(res.Warnings, warnPropertyEstimate)
	}

	res.TaxableIncome = generalBase
	_, res.Bands = ApplyBands(generalBase, cfg.Bands)
	res.CountryTaxes = append([]domain.CountryTax{{
		Country:  domain.CountrySpain,
		Amount:   incomeTax.Add(foreignTax),
		Currency: money.EUR,
	}}, res.CountryTaxes...)

	finalize(res, totals{
		gross:      gross,
		pension:    pension,
		incomeTax:  incomeTax,
		social:     ss,
		foreignTax: foreignTax,
		otherTax:   otherTax,
	}, log)
	return res, nil
}
