package output

import (
	"bytes"
	"encoding/csv"

	"github.com/paycompare/tax-calculator/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per regime, base currency).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(cmp *domain.Comparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Regime", "TaxYear", "Currency", "GrossIncome", "TotalDeductions", "NetAnnual", "NetMonthly", "EffectiveRate", "TakeHomePercent", "BestOverall", "BestSpanish"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, s := range cmp.Summaries {
		row := []string{
			string(s.Regime),
			s.TaxYear,
			string(cmp.BaseCurrency),
			decimalString(s.GrossIncome),
			decimalString(s.TotalDeductions),
			decimalString(s.NetAnnual),
			decimalString(s.NetMonthly),
			decimalString(s.EffectiveRate),
			decimalString(s.TakeHomePercent),
			boolToString(s.Regime == cmp.BestOverall),
			boolToString(s.Regime == cmp.BestSpanish),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
