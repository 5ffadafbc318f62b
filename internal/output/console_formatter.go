package output

import (
	"bytes"
	"fmt"

	"github.com/paycompare/tax-calculator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "summary" }

func (c ConsoleFormatter) Format(cmp *domain.Comparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "TAKE-HOME SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Base currency: %s (1 GBP = %s EUR)\n", cmp.BaseCurrency, cmp.ExchangeRate)
	fmt.Fprintln(&buf)
	for _, s := range cmp.Summaries {
		fmt.Fprintf(&buf, "%s: Net=%s Monthly=%s Effective=%s TakeHome=%s\n",
			s.Regime.Title(),
			FormatCurrency(s.NetAnnual, cmp.BaseCurrency),
			FormatCurrency(s.NetMonthly, cmp.BaseCurrency),
			FormatPercentage(s.EffectiveRate),
			FormatPercentage(s.TakeHomePercent),
		)
	}
	rec := AnalyzeComparison(cmp)
	if rec.Regime != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Best: %s (Δ %s / %s vs %s)\n", rec.Regime.Title(),
			FormatCurrency(rec.NetIncomeChange, cmp.BaseCurrency), FormatPercentage(rec.PercentageChange), rec.Baseline.Title())
	}
	return buf.Bytes(), nil
}
