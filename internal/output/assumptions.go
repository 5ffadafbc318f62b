package output

import (
	"fmt"

	"github.com/paycompare/tax-calculator/internal/domain"
)

// DefaultAssumptions lists key modelling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Tax bands and allowances are held at the configured year's values",
	"Pension contributions are salary sacrifice and reduce taxable pay",
	"Monthly figures are the annual result divided by twelve",
	"Property tax in countries other than the UK and Spain is a simplified estimate",
	"No carry-forward of rental losses or unused credits",
}

// GenerateAssumptions prepends the comparison-specific facts to the default list.
func GenerateAssumptions(cmp *domain.Comparison) []string {
	if cmp == nil {
		return DefaultAssumptions
	}
	lines := []string{
		fmt.Sprintf("Exchange rate: 1 GBP = %s EUR, applied to every conversion", cmp.ExchangeRate.String()),
		fmt.Sprintf("Totals restated in %s", cmp.BaseCurrency),
	}
	if cmp.Years.UK != "" {
		lines = append(lines, fmt.Sprintf("UK tax year %s; Spanish tax years %s / %s / %s",
			cmp.Years.UK, cmp.Years.SpainNormal, cmp.Years.SpainBeckham, cmp.Years.SpainAutonomo))
	}
	return append(lines, DefaultAssumptions...)
}
