package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/paycompare/tax-calculator/internal/domain"
	"github.com/paycompare/tax-calculator/pkg/money"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FormatDocuments renders the administrative view of one regime as console text, JSON or YAML.
func FormatDocuments(docs *domain.TaxDocumentsData, format string) ([]byte, error) {
	switch NormalizeFormatName(format) {
	case "console", "summary":
		return documentsText(docs), nil
	case "json":
		return json.MarshalIndent(docs, "", "  ")
	case "yaml":
		return yaml.Marshal(docs)
	default:
		return nil, fmt.Errorf("%w: %q. Try one of: console, json, yaml", ErrUnsupportedFormat, format)
	}
}

func documentsText(docs *domain.TaxDocumentsData) []byte {
	var buf bytes.Buffer
	c := docs.Currency
	fmt.Fprintf(&buf, "%s TAX DOCUMENTS (%s)\n", strings.ToUpper(docs.Regime.Title()), docs.TaxYearLabel)
	fmt.Fprintln(&buf, strings.Repeat("=", 50))

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := "Month\tGross\tDeductions\tIncome tax\tSocial\tNet\t"
	if len(docs.Modelo130) > 0 {
		header += "Modelo 130\t"
	}
	fmt.Fprintln(tw, header)
	for _, row := range docs.MonthlyBreakdown {
		line := fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%s\t", row.MonthLabel,
			FormatCurrency(row.GrossIncome, c), FormatCurrency(row.Deductions, c),
			FormatCurrency(row.IncomeTax, c), FormatCurrency(row.SocialContributions, c),
			FormatCurrency(row.NetIncome, c))
		if row.Modelo130Installment != nil {
			line += FormatCurrency(*row.Modelo130Installment, c) + "\t"
		}
		fmt.Fprintln(tw, line)
	}
	tw.Flush()
	fmt.Fprintln(&buf)

	if s := docs.SA100; s != nil {
		fmt.Fprintln(&buf, "SA100 SELF ASSESSMENT")
		writePairs(&buf, c,
			pair{"Total income", s.TotalIncome},
			pair{"Taxable income", s.TaxableIncome},
			pair{"Income tax", s.IncomeTax},
			pair{"National Insurance", s.NI})
	}
	if s := docs.SA105; s != nil {
		fmt.Fprintln(&buf, "SA105 UK PROPERTY")
		writePairs(&buf, c,
			pair{"Rental income", s.RentalIncome},
			pair{"Allowable expenses", s.AllowableExpenses},
			pair{"Net profit", s.NetProfit},
			pair{"Mortgage interest", s.MortgageInterest},
			pair{"Section 24 credit", s.S24Credit},
			pair{"Tax due", s.TaxDue})
	}
	if p := docs.PaymentsOnAccount; p != nil {
		fmt.Fprintln(&buf, "PAYMENTS ON ACCOUNT")
		writePairs(&buf, c,
			pair{"Balancing payment", p.BalancingPayment},
			pair{"First payment (31 Jan)", p.FirstPOA},
			pair{"Second payment (31 Jul)", p.SecondPOA})
	}
	if len(docs.MTDQuarterlyUpdates) > 0 {
		fmt.Fprintln(&buf, "MAKING TAX DIGITAL QUARTERLY UPDATES")
		for _, u := range docs.MTDQuarterlyUpdates {
			fmt.Fprintf(&buf, "  Q%d  %s  due %s\n", u.Quarter, u.PeriodLabel, u.Deadline)
		}
		fmt.Fprintln(&buf)
	}
	if len(docs.Modelo130) > 0 {
		fmt.Fprintln(&buf, "MODELO 130")
		for _, q := range docs.Modelo130 {
			fmt.Fprintf(&buf, "  Q%d  profit %s at %s = %s, due %s\n", q.Quarter,
				FormatCurrency(q.NetProfit, c), FormatRate(q.Rate), FormatCurrency(q.AmountDue, c), q.Deadline)
		}
		fmt.Fprintln(&buf)
	}
	if m := docs.Modelo100; m != nil {
		fmt.Fprintln(&buf, "MODELO 100")
		writePairs(&buf, c,
			pair{"Total income", m.TotalIncome},
			pair{"Total deductions", m.TotalDeductions},
			pair{"Tax due", m.TaxDue},
			pair{"Modelo 130 prepayments", m.Modelo130Prepayments})
	}
	if m := docs.Modelo151; m != nil {
		fmt.Fprintln(&buf, "MODELO 151")
		writePairs(&buf, c,
			pair{"Spanish income", m.SpanishIncome},
			pair{"Flat tax", m.Tax24},
			pair{"Social security", m.SocialSecurity})
	}
	if f := docs.UKPropertyForms; f != nil {
		fmt.Fprintf(&buf, "UK PROPERTY (HMRC %s)\n", f.UKTaxYearLabel)
		writePairs(&buf, money.GBP,
			pair{"Rental income", f.RentalIncome},
			pair{"Allowable expenses", f.AllowableExpenses},
			pair{"Net profit", f.NetProfit},
			pair{"Personal allowance", f.Breakdown.PersonalAllowance},
			pair{"Taxable", f.Breakdown.TaxableAfterPA},
			pair{"Tax before Section 24", f.Breakdown.TaxBeforeS24},
			pair{"Section 24 credit", f.S24Credit},
			pair{"UK tax due", f.UKTaxDue})
		fmt.Fprintln(&buf, f.Explanation)
		fmt.Fprintln(&buf)
	}
	return buf.Bytes()
}

type pair struct {
	label  string
	amount decimal.Decimal
}

func writePairs(w io.Writer, c money.Currency, pairs ...pair) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, p := range pairs {
		fmt.Fprintf(tw, "  %s\t%s\t\n", p.label, FormatCurrency(p.amount, c))
	}
	tw.Flush()
	fmt.Fprintln(w)
}
