package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/paycompare/tax-calculator/internal/domain"
	"github.com/paycompare/tax-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report of the comparison.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": func(d decimal.Decimal, c money.Currency) string { return FormatCurrency(d, c) },
	"pct":  FormatPercentage,
	"rate": FormatRate,
	"sections": func() []domain.Section {
		return []domain.Section{domain.SectionEmployment, domain.SectionProperty, domain.SectionNet}
	},
	"steps": func(res *domain.TaxResult, section domain.Section) []domain.CalculationStep {
		return res.StepsIn(section)
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(cmp *domain.Comparison) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.Comparison
		Recommendation Recommendation
		Assumptions    []string
	}{cmp, AnalyzeComparison(cmp), GenerateAssumptions(cmp)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
