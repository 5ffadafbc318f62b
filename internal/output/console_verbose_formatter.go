package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/paycompare/tax-calculator/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed console report: summary table, then every
// regime's audit trail, bands, per-country tax and warnings.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(cmp *domain.Comparison) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "UK / SPAIN TAKE-HOME COMPARISON")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(cmp) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	writeSummaryTable(&buf, cmp)

	for _, res := range cmp.Results {
		writeResult(&buf, res)
	}
	return buf.Bytes(), nil
}

func writeSummaryTable(w io.Writer, cmp *domain.Comparison) {
	fmt.Fprintf(w, "SUMMARY (%s)\n", cmp.BaseCurrency)
	fmt.Fprintln(w, strings.Repeat("=", 50))
	if len(cmp.Summaries) == 0 {
		fmt.Fprintln(w, "No regimes enabled.")
		fmt.Fprintln(w)
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Regime\tGross\tDeductions\tNet annual\tNet monthly\tEffective\tTake-home\t")
	for _, s := range cmp.Summaries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			s.Regime.Title(),
			FormatCurrency(s.GrossIncome, cmp.BaseCurrency),
			FormatCurrency(s.TotalDeductions, cmp.BaseCurrency),
			FormatCurrency(s.NetAnnual, cmp.BaseCurrency),
			FormatCurrency(s.NetMonthly, cmp.BaseCurrency),
			FormatPercentage(s.EffectiveRate),
			FormatPercentage(s.TakeHomePercent),
		)
	}
	tw.Flush()
	fmt.Fprintln(w)
	if cmp.BestOverall != "" {
		fmt.Fprintf(w, "Best overall: %s\n", cmp.BestOverall.Title())
	}
	if cmp.BestSpanish != "" {
		fmt.Fprintf(w, "Best Spanish regime: %s\n", cmp.BestSpanish.Title())
	}
	if rec := AnalyzeComparison(cmp); rec.Regime != "" && rec.Regime != rec.Baseline {
		fmt.Fprintf(w, "Advantage over %s: %s (%s)\n", rec.Baseline.Title(),
			FormatCurrency(rec.NetIncomeChange, cmp.BaseCurrency), FormatPercentage(rec.PercentageChange))
	}
	fmt.Fprintln(w)
}

func writeResult(w io.Writer, res *domain.TaxResult) {
	fmt.Fprintf(w, "%s (%s, %s)\n", strings.ToUpper(res.Regime.Title()), res.TaxYear, res.Currency)
	fmt.Fprintln(w, strings.Repeat("=", 50))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, section := range []domain.Section{domain.SectionEmployment, domain.SectionProperty, domain.SectionNet} {
		steps := res.StepsIn(section)
		if len(steps) == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\t\t\t\n", strings.ToUpper(string(section)))
		for _, s := range steps {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t\n", s.Label, FormatCurrency(s.Amount, res.Currency), s.Detail)
		}
	}
	tw.Flush()

	if len(res.Bands) > 0 {
		fmt.Fprintln(w, "BANDS")
		for _, b := range res.Bands {
			fmt.Fprintf(w, "  %s @ %s: %s -> %s\n", b.Band, FormatRate(b.Rate),
				FormatCurrency(b.TaxableAmount, res.Currency), FormatCurrency(b.Tax, res.Currency))
		}
	}
	if len(res.CountryTaxes) > 0 {
		fmt.Fprintln(w, "TAX BY COUNTRY")
		for _, ct := range res.CountryTaxes {
			fmt.Fprintf(w, "  %s: %s\n", ct.Country, FormatCurrency(ct.Amount, ct.Currency))
		}
	}
	if res.DTACredit != nil {
		fmt.Fprintf(w, "DTA credit: %s\n", FormatCurrency(*res.DTACredit, res.Currency))
	}
	if len(res.Warnings) > 0 {
		fmt.Fprintln(w, "WARNINGS")
		for _, warn := range res.Warnings {
			fmt.Fprintf(w, "  ! %s\n", warn)
		}
	}
	fmt.Fprintln(w)
}
