// Package taxdocs reshapes a regime result into the month-by-month view and the
// administrative forms a taxpayer files for that regime.
package taxdocs

import (
	"errors"
	"fmt"
	"time"

	"github.com/paycompare/tax-calculator/internal/calculation"
	"github.com/paycompare/tax-calculator/internal/domain"
	"github.com/paycompare/tax-calculator/pkg/dateutil"
	"github.com/paycompare/tax-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// ErrNoResult is returned when Build is called without a result.
var ErrNoResult = errors.New("no tax result")

// Modelo130Rate is the quarterly IRPF prepayment rate on year-to-date net profit.
var Modelo130Rate = decimal.NewFromFloat(0.20)

// mtdFirstYear is the first UK tax year in which Making Tax Digital quarterly updates apply.
const mtdFirstYear = 2026

const dateLayout = "2 Jan 2006"

var twelve = decimal.NewFromInt(12)

// Build derives the documents for one result. Inputs are the same snapshot the result was calculated from.
func Build(res *domain.TaxResult, in *domain.TaxInputs, tables *domain.TaxTables) (*domain.TaxDocumentsData, error) {
	if res == nil {
		return nil, ErrNoResult
	}
	if in == nil {
		return nil, fmt.Errorf("%w: no inputs", ErrNoResult)
	}
	if tables == nil {
		return nil, calculation.ErrNoTaxTables
	}

	docs := &domain.TaxDocumentsData{
		Regime:       res.Regime,
		Currency:     res.Currency,
		TaxYearLabel: res.TaxYear,
	}

	switch res.Regime {
	case domain.RegimeUK:
		docs.MonthlyBreakdown = monthlyBreakdown(res, dateutil.FiscalMonths())
		if err := buildUK(docs, res, in, tables); err != nil {
			return nil, err
		}
	case domain.RegimeSpainNormal, domain.RegimeSpainBeckham, domain.RegimeSpainAutonomo:
		docs.MonthlyBreakdown = monthlyBreakdown(res, dateutil.CalendarMonths())
		if res.Regime == domain.RegimeSpainBeckham {
			docs.Modelo151 = &domain.Modelo151Summary{
				SpanishIncome:  res.TaxableIncome.Add(domain.ValueOrZero(res.PensionContribution)),
				Tax24:          res.IncomeTax,
				SocialSecurity: res.SocialContributions,
			}
		}
		if res.Regime == domain.RegimeSpainAutonomo {
			buildAutonomo(docs, res)
		}
		if in.PropertyIn(domain.CountryUK) {
			forms, err := UKPropertyForms(in, tables, res.TaxYear)
			if err != nil {
				return nil, err
			}
			docs.UKPropertyForms = forms
		}
	default:
		return nil, fmt.Errorf("unknown regime %q", res.Regime)
	}
	return docs, nil
}

// monthlyBreakdown spreads the annual result evenly across the months of the tax year.
func monthlyBreakdown(res *domain.TaxResult, months []time.Month) []domain.MonthlyRow {
	rows := make([]domain.MonthlyRow, 0, len(months))
	for i, m := range months {
		rows = append(rows, domain.MonthlyRow{
			Month:               i + 1,
			MonthLabel:          m.String(),
			GrossIncome:         money.Cents(res.GrossIncome.Div(twelve)),
			Deductions:          money.Cents(res.TotalDeductions.Div(twelve)),
			IncomeTax:           money.Cents(res.IncomeTax.Div(twelve)),
			SocialContributions: money.Cents(res.SocialContributions.Div(twelve)),
			NetIncome:           res.NetMonthly,
		})
	}
	return rows
}

func buildUK(docs *domain.TaxDocumentsData, res *domain.TaxResult, in *domain.TaxInputs, tables *domain.TaxTables) error {
	incomeTax := res.IncomeTax.Add(res.ForeignIncomeTax)
	docs.SA100 = &domain.SA100Summary{
		TotalIncome:   res.GrossIncome,
		TaxableIncome: res.TaxableIncome,
		IncomeTax:     incomeTax,
		NI:            res.SocialContributions,
	}

	if in.PropertyIn(domain.CountryUK) {
		cfg, ok := tables.UK[res.TaxYear]
		if !ok {
			return fmt.Errorf("%w: uk %q", calculation.ErrTaxYearNotFound, res.TaxYear)
		}
		p := calculation.GenericPropertyIncome(in).In(money.GBP, in.ExchangeRate)
		docs.SA105 = &domain.SA105Summary{
			RentalIncome:      money.Cents(p.RentalAnnual),
			AllowableExpenses: money.Cents(p.DeductiblesAnnual),
			NetProfit:         money.Cents(p.NetAnnual),
			MortgageInterest:  money.Cents(p.MortgageInterestAnnual),
			S24Credit:         money.Cents(p.MortgageInterestAnnual.Mul(cfg.S24CreditRate)),
			TaxDue:            res.ForeignIncomeTax,
		}
	}

	total := incomeTax.Add(res.SocialContributions)
	half := money.Cents(total.Div(decimal.NewFromInt(2)))
	docs.PaymentsOnAccount = &domain.PaymentsOnAccount{
		BalancingPayment: total,
		FirstPOA:         half,
		SecondPOA:        total.Sub(half),
	}

	if start, err := dateutil.ParseFiscalYear(res.TaxYear); err == nil && start >= mtdFirstYear {
		docs.MTDQuarterlyUpdates = MTDQuarterlyUpdates(start)
	}
	return nil
}

// MTDQuarterlyUpdates returns the four cumulative update periods for the UK tax year starting in startYear.
// Each update is due on the 7th of the month after the period closes.
func MTDQuarterlyUpdates(startYear int) []domain.QuarterlyUpdate {
	start := dateutil.FiscalYearStart(startYear)
	updates := make([]domain.QuarterlyUpdate, 0, 4)
	for q := 1; q <= 4; q++ {
		end := start.AddDate(0, 3*q, -1)
		deadline := time.Date(end.Year(), end.Month()+1, 7, 0, 0, 0, 0, time.UTC)
		updates = append(updates, domain.QuarterlyUpdate{
			Quarter:     q,
			PeriodLabel: start.Format(dateLayout) + " to " + end.Format(dateLayout),
			Deadline:    deadline.Format(dateLayout),
		})
	}
	return updates
}

func buildAutonomo(docs *domain.TaxDocumentsData, res *domain.TaxResult) {
	netProfit := res.GrossIncome.Sub(domain.ValueOrZero(res.ExpenseDeduction))
	if res.NetTaxableProfit != nil {
		netProfit = *res.NetTaxableProfit
	}
	quarterly := netProfit.Div(decimal.NewFromInt(4))
	due := money.NonNegative(quarterly.Mul(Modelo130Rate))

	year, err := dateutil.ParseCalendarYear(res.TaxYear)
	if err != nil {
		year = time.Now().Year()
	}
	deadlines := []time.Time{
		time.Date(year, time.April, 20, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.July, 20, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.October, 20, 0, 0, 0, 0, time.UTC),
		time.Date(year+1, time.January, 30, 0, 0, 0, 0, time.UTC),
	}
	for i, dl := range deadlines {
		docs.Modelo130 = append(docs.Modelo130, domain.Modelo130Quarter{
			Quarter:   i + 1,
			NetProfit: money.Cents(quarterly),
			Rate:      Modelo130Rate,
			AmountDue: money.Cents(due),
			Deadline:  dl.Format(dateLayout),
		})
	}

	// instalments fall in January, April, July and October
	for i := range docs.MonthlyBreakdown {
		amount := decimal.Zero
		if i%3 == 0 {
			amount = money.Cents(due)
		}
		docs.MonthlyBreakdown[i].Modelo130Installment = &amount
	}

	docs.Modelo100 = &domain.Modelo100Summary{
		TotalIncome:          res.GrossIncome,
		TotalDeductions:      res.TotalDeductions,
		TaxDue:               res.IncomeTax,
		Modelo130Prepayments: money.Cents(due.Mul(decimal.NewFromInt(4))),
	}
}

// UKPropertyForms builds what a Spanish resident reports to HMRC for a UK rental in the UK
// tax year mapped from spainYear.
func UKPropertyForms(in *domain.TaxInputs, tables *domain.TaxTables, spainYear string) (*domain.UKPropertyForms, error) {
	ukKey, err := calculation.UKYearForSpain(tables, spainYear)
	if err != nil {
		return nil, err
	}
	cfg, ok := tables.UK[ukKey]
	if !ok {
		return nil, fmt.Errorf("%w: uk %q", calculation.ErrTaxYearNotFound, ukKey)
	}

	p := calculation.GenericPropertyIncome(in).In(money.GBP, in.ExchangeRate)
	b := roundBreakdown(calculation.UKNonResidentPropertyTax(p.NetAnnual, p.MortgageInterestAnnual, cfg))
	return &domain.UKPropertyForms{
		RentalIncome:      money.Cents(p.RentalAnnual),
		AllowableExpenses: money.Cents(p.DeductiblesAnnual),
		NetProfit:         b.NetProfit,
		MortgageInterest:  money.Cents(p.MortgageInterestAnnual),
		S24Credit:         b.S24Credit,
		UKTaxDue:          b.NetTaxDue,
		UKTaxYearLabel:    ukKey,
		Breakdown:         b,
		Explanation:       explain(b),
	}, nil
}

func roundBreakdown(b domain.UKPropertyTaxBreakdown) domain.UKPropertyTaxBreakdown {
	b.NetProfit = money.Cents(b.NetProfit)
	b.PersonalAllowance = money.Cents(b.PersonalAllowance)
	b.TaxableAfterPA = money.Cents(b.TaxableAfterPA)
	b.TaxBeforeS24 = money.Cents(b.TaxBeforeS24)
	b.S24Credit = money.Cents(b.S24Credit)
	b.NetTaxDue = money.Cents(b.NetTaxDue)
	for i := range b.Bands {
		b.Bands[i].TaxableAmount = money.Cents(b.Bands[i].TaxableAmount)
		b.Bands[i].Tax = money.Cents(b.Bands[i].Tax)
	}
	return b
}

func explain(b domain.UKPropertyTaxBreakdown) string {
	gbp := func(d decimal.Decimal) string { return money.Format(d, money.GBP) }
	s := fmt.Sprintf("Net profit %s minus personal allowance %s leaves %s taxable. Tax on that is %s. ",
		gbp(b.NetProfit), gbp(b.PersonalAllowance), gbp(b.TaxableAfterPA), gbp(b.TaxBeforeS24))
	s += fmt.Sprintf("The Section 24 credit on mortgage interest is %s. ", gbp(b.S24Credit))
	if b.S24Credit.GreaterThanOrEqual(b.TaxBeforeS24) {
		return s + "The credit covers the whole charge, so nothing is owed; the unused credit is not refunded."
	}
	return s + fmt.Sprintf("UK tax due is %s.", gbp(b.NetTaxDue))
}
