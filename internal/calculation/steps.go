package calculation

import (
	"sort"

	"github.com/paycompare/tax-calculator/internal/domain"
	"github.com/paycompare/tax-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

var sectionRank = map[domain.Section]int{
	domain.SectionEmployment: 1,
	domain.SectionProperty:   2,
	domain.SectionNet:        3,
}

// stepLog is the append-only audit trail of a calculation. Order is section rank * 100 + position.
type stepLog struct {
	steps  []domain.CalculationStep
	counts map[domain.Section]int
}

func newStepLog() *stepLog {
	return &stepLog{counts: make(map[domain.Section]int)}
}

func (l *stepLog) add(section domain.Section, label string, amount decimal.Decimal, detail string) {
	l.counts[section]++
	l.steps = append(l.steps, domain.CalculationStep{
		Label:   label,
		Amount:  money.Cents(amount),
		Detail:  detail,
		Section: section,
		Order:   sectionRank[section]*100 + l.counts[section],
	})
}

func (l *stepLog) employment(label string, amount decimal.Decimal, detail string) {
	l.add(domain.SectionEmployment, label, amount, detail)
}

func (l *stepLog) property(label string, amount decimal.Decimal, detail string) {
	l.add(domain.SectionProperty, label, amount, detail)
}

func (l *stepLog) net(label string, amount decimal.Decimal, detail string) {
	l.add(domain.SectionNet, label, amount, detail)
}

func (l *stepLog) ordered() []domain.CalculationStep {
	out := append([]domain.CalculationStep(nil), l.steps...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// totals are the unrounded components a regime hands to finalize, all in the regime currency.
type totals struct {
	gross      decimal.Decimal
	pension    decimal.Decimal
	expenses   decimal.Decimal
	incomeTax  decimal.Decimal
	social     decimal.Decimal
	foreignTax decimal.Decimal
	otherTax   decimal.Decimal // property tax paid to other countries
}

// finalize rounds every component to cents once and derives the totals from the rounded values,
// so NetAnnual is exactly GrossIncome minus TotalDeductions.
func finalize(res *domain.TaxResult, t totals, log *stepLog) {
	res.GrossIncome = money.Cents(t.gross)
	res.TaxableIncome = money.Cents(res.TaxableIncome)
	res.IncomeTax = money.Cents(t.incomeTax)
	res.SocialContributions = money.Cents(t.social)
	res.ForeignIncomeTax = money.Cents(t.foreignTax)

	pension := money.Cents(t.pension)
	expenses := money.Cents(t.expenses)
	otherTax := money.Cents(t.otherTax)
	if pension.IsPositive() {
		res.PensionContribution = &pension
	}

	taxes := res.IncomeTax.Add(res.SocialContributions).Add(res.ForeignIncomeTax).Add(otherTax)
	res.TotalDeductions = pension.Add(expenses).Add(taxes)
	res.NetAnnual = res.GrossIncome.Sub(res.TotalDeductions)
	res.NetMonthly = money.Cents(money.Monthly(res.NetAnnual))
	res.EffectiveRate = money.Ratio(taxes, res.GrossIncome).Round(2)
	res.TakeHomePercent = money.Ratio(res.NetAnnual, res.GrossIncome).Round(2)

	for i := range res.CountryTaxes {
		res.CountryTaxes[i].Amount = money.Cents(res.CountryTaxes[i].Amount)
	}
	for i := range res.Bands {
		res.Bands[i].TaxableAmount = money.Cents(res.Bands[i].TaxableAmount)
		res.Bands[i].Tax = money.Cents(res.Bands[i].Tax)
	}

	log.net("Total deductions", res.TotalDeductions, "")
	log.net("Net annual ("+string(res.Currency)+")", res.NetAnnual, "")
	log.net("Net monthly ("+string(res.Currency)+")", res.NetMonthly, "")
	res.Steps = log.ordered()
	if res.Warnings == nil {
		res.Warnings = []string{}
	}
}

func ptr(d decimal.Decimal) *decimal.Decimal {
	r := money.Cents(d)
	return &r
}
