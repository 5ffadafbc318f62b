package calculation

import (
	"fmt"

	"github.com/paycompare/tax-calculator/internal/domain"
	"github.com/paycompare/tax-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

const (
	warnNoRevenue       = "Enter freelance revenue to estimate the Autónomo regime."
	warnAutonomoNoDTA   = "UK property tax is shown separately; no DTA credit is applied in the Autónomo estimate."
	autonomoMaxYearRule = 3
)

// LookupTramo returns the contribution tier for a monthly net profit. Tiers are checked in ascending
// order with min inclusive and max exclusive, the open top tier matches anything at or above its min,
// and profit below the first tier uses the first tier.
func LookupTramo(monthlyProfit decimal.Decimal, tramos []domain.AutonomoTramo) (domain.AutonomoTramo, bool) {
	if len(tramos) == 0 {
		return domain.AutonomoTramo{}, false
	}
	if monthlyProfit.LessThan(tramos[0].MinMonthly) {
		return tramos[0], true
	}
	for _, t := range tramos {
		if monthlyProfit.LessThan(t.MinMonthly) {
			continue
		}
		if t.MaxMonthly == nil || monthlyProfit.LessThan(*t.MaxMonthly) {
			return t, true
		}
	}
	return tramos[len(tramos)-1], true
}

// MonthlyCuota returns the monthly contribution and a short explanation of how it was chosen.
// Year 1 pays the flat rate. Year 2 pays it only while profit is below the minimum wage threshold.
// Later years use the tier table.
func MonthlyCuota(year int, monthlyProfit decimal.Decimal, cfg domain.SpainAutonomoTaxYear) (decimal.Decimal, string) {
	if year <= 1 {
		return cfg.TarifaPlana, "tarifa plana, first year"
	}
	if year == 2 && cfg.MinimumWageMonthly.IsPositive() && monthlyProfit.LessThan(cfg.MinimumWageMonthly) {
		return cfg.TarifaPlana, "tarifa plana extended, profit below " + cfg.MinimumWageMonthly.StringFixed(2) + " a month"
	}
	tramo, ok := LookupTramo(monthlyProfit, cfg.Tramos)
	if !ok {
		return decimal.Zero, "no contribution tiers configured"
	}
	return tramo.Cuota, "tier from " + tramo.MinMonthly.String()
}

// CalculateSpainAutonomo computes the self-employed regime for the given calendar year key.
func CalculateSpainAutonomo(in *domain.TaxInputs, tables *domain.TaxTables, yearKey string) (*domain.TaxResult, error) {
	cfg, err := spainAutonomoYear(tables, yearKey)
	if err != nil {
		return nil, err
	}

	res := &domain.TaxResult{Regime: domain.RegimeSpainAutonomo, TaxYear: yearKey, Currency: money.EUR}
	log := newStepLog()

	if !in.FreelanceRevenue.IsPositive() {
		res.Steps = []domain.CalculationStep{{
			Label:   "No freelance revenue",
			Amount:  decimal.Zero,
			Section: domain.SectionEmployment,
			Order:   sectionRank[domain.SectionEmployment]*100 + 1,
		}}
		res.Warnings = []string{warnNoRevenue}
		return res, nil
	}

	gross := money.Convert(in.FreelanceRevenue, in.FreelanceCurrency, money.EUR, in.ExchangeRate)
	log.employment("Freelance revenue (EUR)", gross, "")

	expenses := money.PercentOf(gross, in.ExpenseDeductionRate)
	log.employment("Expense deduction", expenses.Neg(), in.ExpenseDeductionRate.String()+"% of revenue")
	profit := gross.Sub(expenses)

	pension := money.PercentOf(profit, in.FreelancePensionContributionPercent)
	if pension.IsPositive() {
		log.employment("Pension contribution", pension.Neg(), in.FreelancePensionContributionPercent.String()+"% of profit")
		res.Warnings = append(res.Warnings, warnPensionRelief)
	}
	netProfit := profit.Sub(pension)
	log.employment("Net profit", netProfit, "")

	year := in.AutonomoYear
	if year > autonomoMaxYearRule {
		year = autonomoMaxYearRule
	}
	monthlyProfit := money.Monthly(netProfit)
	cuota, why := MonthlyCuota(year, monthlyProfit, cfg)
	cuotaAnnual := money.Annual(cuota)
	log.employment("Cuota de autónomo", cuotaAnnual, fmt.Sprintf("%s a month, %s", cuota.StringFixed(2), why))
	log.employment("General deduction", cfg.GeneralDeduction.Neg(), "")

	base := money.NonNegative(netProfit.Sub(cfg.GeneralDeduction).Sub(cuotaAnnual))
	incomeTax := irpf(base, cfg.PersonalMinimum, cfg.Bands)
	log.employment("Taxable base", base, "")
	log.employment("IRPF", incomeTax, "personal minimum "+cfg.PersonalMinimum.String()+" taxed at zero")

	generalBase := base
	foreignTax := decimal.Zero
	otherTax := decimal.Zero
	if in.HasProperty() {
		p := spanishProperty(in)
		res.PropertyNetAnnual = ptr(p.NetAnnual)
		res.PropertyNetCashFlow = ptr(p.NetCashFlowAnnual)
		if in.PropertyInSpanishBase() {
			res.ForeignIncomeIncluded = true
			logPropertyIncome(log, in, p)
			generalBase = base.Add(p.NetAnnual)
			foreignTax = irpf(generalBase, cfg.PersonalMinimum, cfg.Bands).Sub(incomeTax)
			log.property("Spanish tax on property", foreignTax, "")
			if in.ForeignPropertyCountry == domain.CountrySpain {
				res.Warnings = append(res.Warnings, warnCarryForward)
			}
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
				res.Warnings = append(res.Warnings, warnAutonomoNoDTA)
			}
		}
		otherTax = otherTax.Add(nonResidentTaxEUR(res, log, in, tables))
		res.Warnings = append(res.Warnings, warnPropertyEstimate)
	}

	res.TaxableIncome = generalBase
	_, res.Bands = ApplyBands(generalBase, cfg.Bands)
	res.ExpenseDeduction = ptr(expenses)
	res.CuotaMonthly = ptr(cuota)
	res.CuotaAnnual = ptr(cuotaAnnual)
	res.NetTaxableProfit = ptr(netProfit)
	res.CountryTaxes = append([]domain.CountryTax{{
		Country:  domain.CountrySpain,
		Amount:   incomeTax.Add(foreignTax),
		Currency: money.EUR,
	}}, res.CountryTaxes...)

	finalize(res, totals{
		gross:      gross,
		pension:    pension,
		expenses:   expenses,
		incomeTax:  incomeTax,
		social:     cuotaAnnual,
		foreignTax: foreignTax,
		otherTax:   otherTax,
	}, log)
	return res, nil
}
