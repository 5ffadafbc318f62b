package output

import (
	"bytes"
	"encoding/csv"

	"github.com/paycompare/tax-calculator/internal/domain"
)

// CSVStepsExporter writes every calculation step of every regime in its native currency.
type CSVStepsExporter struct{}

func (c CSVStepsExporter) Name() string { return "steps-csv" }

func (c CSVStepsExporter) Format(cmp *domain.Comparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Regime", "TaxYear", "Currency", "Order", "Section", "Label", "Amount", "Detail"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, res := range cmp.Results {
		for _, s := range res.Steps {
			row := []string{
				string(res.Regime),
				res.TaxYear,
				string(res.Currency),
				intToString(s.Order),
				string(s.Section),
				s.Label,
				decimalString(s.Amount),
				s.Detail,
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
