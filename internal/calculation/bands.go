package calculation

import (
	"github.com/paycompare/tax-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ApplyBands runs a taxable amount through ascending progressive bands and returns the total tax
// with one breakdown entry per band the amount reaches. Income below the first band's From is untaxed.
func ApplyBands(taxable decimal.Decimal, bands []domain.TaxBand) (decimal.Decimal, []domain.BandBreakdown) {
	total := decimal.Zero
	if len(bands) == 0 {
		return total, nil
	}

	remaining := taxable.Sub(bands[0].From)
	var breakdown []domain.BandBreakdown
	for _, band := range bands {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		inBand := remaining
		if band.To != nil {
			inBand = decimal.Min(remaining, band.To.Sub(band.From))
		}
		tax := inBand.Mul(band.Rate)
		total = total.Add(tax)
		breakdown = append(breakdown, domain.BandBreakdown{
			Band:          BandLabel(band),
			TaxableAmount: inBand,
			Rate:          band.Rate,
			Tax:           tax,
		})
		remaining = remaining.Sub(inBand)
	}
	return total, breakdown
}

// TaxOn returns only the total from ApplyBands.
func TaxOn(taxable decimal.Decimal, bands []domain.TaxBand) decimal.Decimal {
	tax, _ := ApplyBands(taxable, bands)
	return tax
}

// BandLabel renders a band's range as "from-to", or "from+" for the open top band.
func BandLabel(band domain.TaxBand) string {
	if band.To == nil {
		return band.From.String() + "+"
	}
	return band.From.String() + "-" + band.To.String()
}
