package calculation

import (
	"context"
	"fmt"

	"github.com/paycompare/tax-calculator/internal/config"
	"github.com/paycompare/tax-calculator/internal/domain"
	"github.com/paycompare/tax-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// RegimeCalculator is the common signature of the four regime calculators.
type RegimeCalculator func(in *domain.TaxInputs, tables *domain.TaxTables, yearKey string) (*domain.TaxResult, error)

// CalculationEngine fans a single input snapshot out to every enabled regime.
type CalculationEngine struct {
	Tables *domain.TaxTables
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine over read-only tax tables
func NewCalculationEngine(tables *domain.TaxTables) *CalculationEngine {
	return &CalculationEngine{
		Tables: tables,
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// CalculatorFor returns the calculator and year key for a regime.
func CalculatorFor(regime domain.Regime, years domain.TaxYears) (RegimeCalculator, string) {
	switch regime {
	case domain.RegimeUK:
		return CalculateUK, years.UK
	case domain.RegimeSpainNormal:
		return CalculateSpainNormal, years.SpainNormal
	case domain.RegimeSpainBeckham:
		return CalculateSpainBeckham, years.SpainBeckham
	case domain.RegimeSpainAutonomo:
		return CalculateSpainAutonomo, years.SpainAutonomo
	default:
		return nil, ""
	}
}

func enabled(in *domain.TaxInputs, regime domain.Regime) bool {
	switch regime {
	case domain.RegimeUK:
		return in.IncludeUK
	case domain.RegimeSpainNormal:
		return in.IncludeSpainNormal
	case domain.RegimeSpainBeckham:
		return in.IncludeSpainBeckham
	case domain.RegimeSpainAutonomo:
		return in.IncludeSpainAutonomo
	default:
		return false
	}
}

// Calculate validates the inputs and runs every enabled regime in display order.
// A missing tax year aborts the whole run.
func (ce *CalculationEngine) Calculate(ctx context.Context, in *domain.TaxInputs, years domain.TaxYears) ([]*domain.TaxResult, error) {
	if ce.Tables == nil {
		return nil, ErrNoTaxTables
	}
	if err := config.NewInputParser().ValidateInputs(in, ce.Tables); err != nil {
		return nil, err
	}

	var results []*domain.TaxResult
	for _, regime := range domain.AllRegimes {
		if !enabled(in, regime) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		calc, key := CalculatorFor(regime, years)
		ce.Logger.Debugf("calculating %s for %s", regime, key)
		res, err := calc(in, ce.Tables, key)
		if err != nil {
			ce.Logger.Errorf("%s calculation failed: %v", regime, err)
			return nil, fmt.Errorf("%s: %w", regime.Title(), err)
		}
		for _, w := range res.Warnings {
			ce.Logger.Warnf("%s: %s", regime, w)
		}
		ce.Logger.Infof("%s %s: net %s, effective rate %s", regime.Title(), key,
			money.Format(res.NetAnnual, res.Currency), money.FormatPercent(res.EffectiveRate))
		results = append(results, res)
	}
	if len(results) == 0 {
		ce.Logger.Warnf("no regimes enabled")
	}
	return results, nil
}

// Compare runs Calculate and restates each result in the base currency, picking the best
// Spanish regime and the best regime overall by annual net income.
func (ce *CalculationEngine) Compare(ctx context.Context, in *domain.TaxInputs, years domain.TaxYears) (*domain.Comparison, error) {
	results, err := ce.Calculate(ctx, in, years)
	if err != nil {
		return nil, err
	}

	base := in.BaseCurrency
	cmp := &domain.Comparison{
		BaseCurrency: base,
		ExchangeRate: in.ExchangeRate,
		Years:        years,
		Results:      results,
	}
	var bestSpanish, bestOverall *domain.RegimeSummary
	for _, r := range results {
		conv := func(d decimal.Decimal) decimal.Decimal {
			return money.Cents(money.Convert(d, r.Currency, base, in.ExchangeRate))
		}
		s := domain.RegimeSummary{
			Regime:          r.Regime,
			TaxYear:         r.TaxYear,
			GrossIncome:     conv(r.GrossIncome),
			TotalDeductions: conv(r.TotalDeductions),
			NetAnnual:       conv(r.NetAnnual),
			NetMonthly:      conv(r.NetMonthly),
			EffectiveRate:   r.EffectiveRate,
			TakeHomePercent: r.TakeHomePercent,
		}
		cmp.Summaries = append(cmp.Summaries, s)
	}
	for i := range cmp.Summaries {
		s := &cmp.Summaries[i]
		if bestOverall == nil || s.NetAnnual.GreaterThan(bestOverall.NetAnnual) {
			bestOverall = s
		}
		if s.Regime.Spanish() && (bestSpanish == nil || s.NetAnnual.GreaterThan(bestSpanish.NetAnnual)) {
			bestSpanish = s
		}
	}
	if bestOverall != nil {
		cmp.BestOverall = bestOverall.Regime
	}
	if bestSpanish != nil {
		cmp.BestSpanish = bestSpanish.Regime
	}
	return cmp, nil
}
