package calculation

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/paycompare/tax-calculator/internal/domain"
	"github.com/paycompare/tax-calculator/pkg/dateutil"
)

func ukYear(tables *domain.TaxTables, key string) (domain.UKTaxYear, error) {
	if tables == nil {
		return domain.UKTaxYear{}, ErrNoTaxTables
	}
	cfg, ok := tables.UK[key]
	if !ok {
		return domain.UKTaxYear{}, fmt.Errorf("%w: uk %q", ErrTaxYearNotFound, key)
	}
	return cfg, nil
}

func spainNormalYear(tables *domain.TaxTables, key string) (domain.SpainNormalTaxYear, error) {
	if tables == nil {
		return domain.SpainNormalTaxYear{}, ErrNoTaxTables
	}
	cfg, ok := tables.SpainNormal[key]
	if !ok {
		return domain.SpainNormalTaxYear{}, fmt.Errorf("%w: spain normal %q", ErrTaxYearNotFound, key)
	}
	return cfg, nil
}

func spainBeckhamYear(tables *domain.TaxTables, key string) (domain.SpainBeckhamTaxYear, error) {
	if tables == nil {
		return domain.SpainBeckhamTaxYear{}, ErrNoTaxTables
	}
	cfg, ok := tables.SpainBeckham[key]
	if !ok {
		return domain.SpainBeckhamTaxYear{}, fmt.Errorf("%w: spain beckham %q", ErrTaxYearNotFound, key)
	}
	return cfg, nil
}

func spainAutonomoYear(tables *domain.TaxTables, key string) (domain.SpainAutonomoTaxYear, error) {
	if tables == nil {
		return domain.SpainAutonomoTaxYear{}, ErrNoTaxTables
	}
	cfg, ok := tables.SpainAutonomo[key]
	if !ok {
		return domain.SpainAutonomoTaxYear{}, fmt.Errorf("%w: spain autonomo %q", ErrTaxYearNotFound, key)
	}
	return cfg, nil
}

// UKYearForSpain maps a Spanish calendar year to the UK fiscal year used for UK property tax.
// The explicit spain_to_uk table wins. Otherwise the UK year starting in that calendar year is used,
// then the next configured UK year after it, then the latest configured UK year.
func UKYearForSpain(tables *domain.TaxTables, spainYear string) (string, error) {
	if tables == nil {
		return "", ErrNoTaxTables
	}
	if uk, ok := tables.SpainToUK[spainYear]; ok {
		return uk, nil
	}

	type ukKey struct {
		label string
		start int
	}
	var keys []ukKey
	for label := range tables.UK {
		start, err := dateutil.ParseFiscalYear(label)
		if err != nil {
			continue
		}
		keys = append(keys, ukKey{label, start})
	}
	if len(keys) == 0 {
		return "", fmt.Errorf("%w: no uk year available for spain %q", ErrTaxYearNotFound, spainYear)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].start < keys[j].start })

	year, err := dateutil.ParseCalendarYear(spainYear)
	if err != nil {
		return keys[len(keys)-1].label, nil
	}
	for _, k := range keys {
		if k.start >= year {
			return k.label, nil
		}
	}
	return keys[len(keys)-1].label, nil
}

// SelectYears derives one key per regime family from a single Spanish calendar year.
func SelectYears(tables *domain.TaxTables, spainYear string) (domain.TaxYears, error) {
	uk, err := UKYearForSpain(tables, spainYear)
	if err != nil {
		return domain.TaxYears{}, err
	}
	return domain.TaxYears{
		UK:            uk,
		SpainNormal:   spainYear,
		SpainBeckham:  spainYear,
		SpainAutonomo: spainYear,
	}, nil
}

// ResolveYears turns a user-supplied year into regime keys. An empty key gives the table defaults,
// a UK label such as "2025/26" pins the UK year and uses its starting calendar year for Spain,
// and anything else is treated as a Spanish calendar year.
func ResolveYears(tables *domain.TaxTables, key string) (domain.TaxYears, error) {
	if tables == nil {
		return domain.TaxYears{}, ErrNoTaxTables
	}
	if key == "" {
		return tables.Defaults, nil
	}
	if start, err := dateutil.ParseFiscalYear(key); err == nil {
		if _, ok := tables.UK[key]; !ok {
			return domain.TaxYears{}, fmt.Errorf("%w: uk %q", ErrTaxYearNotFound, key)
		}
		years, err := SelectYears(tables, strconv.Itoa(start))
		if err != nil {
			return domain.TaxYears{}, err
		}
		years.UK = key
		return years, nil
	}
	if _, err := dateutil.ParseCalendarYear(key); err != nil {
		return domain.TaxYears{}, fmt.Errorf("%w: %q is neither a calendar year nor a UK tax year", ErrTaxYearNotFound, key)
	}
	return SelectYears(tables, key)
}
