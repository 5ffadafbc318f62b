package output

import (
	"sort"

	"github.com/paycompare/tax-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best regime.
type Recommendation struct {
	Regime           domain.Regime
	NetAnnual        decimal.Decimal // base currency
	Baseline         domain.Regime
	NetIncomeChange  decimal.Decimal
	PercentageChange decimal.Decimal
}

// AnalyzeComparison ranks regimes by net annual income in the base currency and measures the
// winner against staying in UK employment, or against the weakest regime when UK is not compared.
func AnalyzeComparison(cmp *domain.Comparison) Recommendation {
	if cmp == nil || len(cmp.Summaries) == 0 {
		return Recommendation{}
	}
	ranks := append([]domain.RegimeSummary(nil), cmp.Summaries...)
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].NetAnnual.GreaterThan(ranks[j].NetAnnual) })
	best := ranks[0]

	baseline, ok := cmp.Summary(domain.RegimeUK)
	if !ok {
		baseline = ranks[len(ranks)-1]
	}
	delta := best.NetAnnual.Sub(baseline.NetAnnual)
	pct := decimal.Zero
	if !baseline.NetAnnual.IsZero() {
		pct = delta.Div(baseline.NetAnnual).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return Recommendation{
		Regime:           best.Regime,
		NetAnnual:        best.NetAnnual,
		Baseline:         baseline.Regime,
		NetIncomeChange:  delta,
		PercentageChange: pct,
	}
}
