package calculation

import (
	"github.com/paycompare/tax-calculator/internal/domain"
	"github.com/paycompare/tax-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

const (
	warnBeckhamExcluded = "Foreign-source property income is outside Spanish tax under the Beckham regime."
	warnBeckhamRatio    = "Foreign income exceeds 15% of total income; check continued eligibility for the Beckham regime."
	warnBeckhamNoCredit = "UK property tax is still owed to HMRC; no Spanish DTA credit arises because the income is not taxed in Spain."
)

var beckhamForeignIncomeLimit = decimal.NewFromInt(15)

// BeckhamTax applies the two-tier flat rate: FlatRate up to Threshold, UpperRate above it.
func BeckhamTax(income decimal.Decimal, cfg domain.SpainBeckhamTaxYear) (decimal.Decimal, []domain.BandBreakdown) {
	income = money.NonNegative(income)
	if income.IsZero() {
		return decimal.Zero, nil
	}
	threshold := cfg.Threshold
	if income.LessThanOrEqual(threshold) {
		tax := income.Mul(cfg.FlatRate)
		return tax, []domain.BandBreakdown{{Band: "0-" + threshold.String(), TaxableAmount: income, Rate: cfg.FlatRate, Tax: tax}}
	}
	lower := threshold.Mul(cfg.FlatRate)
	excess := income.Sub(threshold)
	upper := excess.Mul(cfg.UpperRate)
	return lower.Add(upper), []domain.BandBreakdown{
		{Band: "0-" + threshold.String(), TaxableAmount: threshold, Rate: cfg.FlatRate, Tax: lower},
		{Band: threshold.String() + "+", TaxableAmount: excess, Rate: cfg.UpperRate, Tax: upper},
	}
}

// CalculateSpainBeckham computes the inpatriate regime for the given calendar year key.
// Social security uses the standard regime's rate and cap for the same year.
func CalculateSpainBeckham(in *domain.TaxInputs, tables *domain.TaxTables, yearKey string) (*domain.TaxResult, error) {
	cfg, err := spainBeckhamYear(tables, yearKey)
	if err != nil {
		return nil, err
	}
	normal, err := spainNormalYear(tables, yearKey)
	if err != nil {
		return nil, err
	}

	log := newStepLog()
	res := &domain.TaxResult{Regime: domain.RegimeSpainBeckham, TaxYear: yearKey, Currency: money.EUR}

	gross := money.Convert(in.GrossSalary, in.SalaryCurrency, money.EUR, in.ExchangeRate)
	log.employment("Gross salary (EUR)", gross, "")

	pension := money.PercentOf(gross, in.PensionContributionPercent)
	if pension.IsPositive() {
		log.employment("Pension (salary sacrifice)", pension.Neg(), in.PensionContributionPercent.String()+"% of gross")
		res.Warnings = append(res.Warnings, warnPensionRelief)
	}
	pay := gross.Sub(pension)

	ss := SocialSecurity(pay, normal)
	log.employment("Social security", ss, percent(normal.SocialSecurityRate)+" capped at base "+normal.SocialSecurityCap.String())

	incomeTax, bands := BeckhamTax(pay, cfg)
	log.employment("Flat tax", incomeTax, percent(cfg.FlatRate)+" up to "+cfg.Threshold.String()+", "+percent(cfg.UpperRate)+" above")

	taxable := pay
	foreignTax := decimal.Zero
	otherTax := decimal.Zero
	if in.HasProperty() {
		if in.PropertyForeignSourced() {
			p := spanishProperty(in)
			res.PropertyNetAnnual = ptr(p.NetAnnual)
			res.PropertyNetCashFlow = ptr(p.NetCashFlowAnnual)
			log.property("Net property income (excluded)", p.NetAnnual, "foreign source")
			res.Warnings = append(res.Warnings, warnBeckhamExcluded)
			if money.Ratio(p.NetAnnual, pay.Add(p.NetAnnual)).GreaterThan(beckhamForeignIncomeLimit) {
				res.Warnings = append(res.Warnings, warnBeckhamRatio)
			}
		} else {
			p := SpainPropertyIncome(in).In(money.EUR, in.ExchangeRate)
			res.PropertyNetAnnual = ptr(p.NetAnnual)
			res.PropertyNetCashFlow = ptr(p.NetCashFlowAnnual)
			res.ForeignIncomeIncluded = true
			logPropertyIncome(log, in, p)
			taxable = pay.Add(p.NetAnnual)
			foreignTax = p.NetAnnual.Mul(cfg.FlatRate)
			log.property("Flat tax on property", foreignTax, percent(cfg.FlatRate)+" of net rental income")
			res.Warnings = append(res.Warnings, warnCarryForward)
		}

		if in.ForeignPropertyCountry == domain.CountryUK {
			uk, ukKey, err := ukPropertyTaxInSpain(in, tables, yearKey)
			if err != nil {
				return nil, err
			}
			ukTaxEUR := money.Convert(uk.NetTaxDue, money.GBP, money.EUR, in.ExchangeRate)
			res.UKPropertyTaxPaid = ptr(uk.NetTaxDue)
			log.property("UK property tax paid", ukTaxEUR, "HMRC "+ukKey+", "+uk.NetTaxDue.StringFixed(2)+" GBP")
			otherTax = ukTaxEUR
			res.CountryTaxes = append(res.CountryTaxes, domain.CountryTax{Country: domain.CountryUK, Amount: uk.NetTaxDue, Currency: money.GBP})
			if uk.NetTaxDue.IsPositive() {
				res.Warnings = append(res.Warnings, warnBeckhamNoCredit)
			}
		}
		otherTax = otherTax.Add(nonResidentTaxEUR(res, log, in, tables))
	}

	res.TaxableIncome = taxable
	res.Bands = bands
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
