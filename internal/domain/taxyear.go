package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TaxBand is one progressive rate band. A nil To marks the open top band.
type TaxBand struct {
	From decimal.Decimal  `yaml:"from" json:"from"`
	To   *decimal.Decimal `yaml:"to" json:"to"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// NIConfig holds the employee Class 1 National Insurance thresholds.
type NIConfig struct {
	PrimaryThreshold   decimal.Decimal `yaml:"primary_threshold" json:"primaryThreshold"`
	UpperEarningsLimit decimal.Decimal `yaml:"upper_earnings_limit" json:"upperEarningsLimit"`
	MainRate           decimal.Decimal `yaml:"main_rate" json:"mainRate"`
	UpperRate          decimal.Decimal `yaml:"upper_rate" json:"upperRate"`
}

// UKTaxYear is the configuration for one UK fiscal year.
type UKTaxYear struct {
	PersonalAllowance decimal.Decimal `yaml:"personal_allowance" json:"personalAllowance"`
	TaperThreshold    decimal.Decimal `yaml:"taper_threshold" json:"taperThreshold"`
	Bands             []TaxBand       `yaml:"bands" json:"bands"`
	NI                NIConfig        `yaml:"ni" json:"ni"`
	S24CreditRate     decimal.Decimal `yaml:"s24_credit_rate" json:"s24CreditRate"` // basic-rate credit on mortgage interest
}

// SpainNormalTaxYear is the standard IRPF configuration for an employee.
type SpainNormalTaxYear struct {
	PersonalMinimum    decimal.Decimal `yaml:"personal_minimum" json:"personalMinimum"`
	GeneralDeduction   decimal.Decimal `yaml:"general_deduction" json:"generalDeduction"`
	Bands              []TaxBand       `yaml:"bands" json:"bands"`
	SocialSecurityRate decimal.Decimal `yaml:"social_security_rate" json:"socialSecurityRate"`
	SocialSecurityCap  decimal.Decimal `yaml:"social_security_cap" json:"socialSecurityCap"` // annual contribution base cap
}

// SpainBeckhamTaxYear is the inpatriate regime: a flat rate up to Threshold and UpperRate above it.
type SpainBeckhamTaxYear struct {
	FlatRate  decimal.Decimal `yaml:"flat_rate" json:"flatRate"`
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	UpperRate decimal.Decimal `yaml:"upper_rate" json:"upperRate"`
}

// AutonomoTramo is one monthly contribution tier. A nil MaxMonthly marks the open top tier.
type AutonomoTramo struct {
	MinMonthly decimal.Decimal  `yaml:"min_monthly" json:"minMonthly"`
	MaxMonthly *decimal.Decimal `yaml:"max_monthly" json:"maxMonthly"`
	Cuota      decimal.Decimal  `yaml:"cuota" json:"cuota"`
}

// SpainAutonomoTaxYear is the self-employed configuration.
type SpainAutonomoTaxYear struct {
	PersonalMinimum    decimal.Decimal `yaml:"personal_minimum" json:"personalMinimum"`
	GeneralDeduction   decimal.Decimal `yaml:"general_deduction" json:"generalDeduction"`
	Bands              []TaxBand       `yaml:"bands" json:"bands"`
	TarifaPlana        decimal.Decimal `yaml:"tarifa_plana" json:"tarifaPlana"`
	MinimumWageMonthly decimal.Decimal `yaml:"minimum_wage_monthly" json:"minimumWageMonthly"`
	Tramos             []AutonomoTramo `yaml:"tramos" json:"tramos"`
}

// Property tax bases for non-resident rules.
const (
	// PropertyBaseDeductiblesOnly is rent less running costs, mortgage interest ignored.
	PropertyBaseDeductiblesOnly = "deductibles_only"
	// PropertyBaseGeneric is the generic net figure with partial mortgage interest relief.
	PropertyBaseGeneric = "generic"
)

// NonResidentPropertyRule taxes rental income earned in a country where the taxpayer is not resident.
// Bands take precedence over Rate when both are present. Amounts are in EUR.
type NonResidentPropertyRule struct {
	Name  string          `yaml:"name" json:"name"`
	Base  string          `yaml:"base" json:"base"`
	Rate  decimal.Decimal `yaml:"rate" json:"rate"`
	Bands []TaxBand       `yaml:"bands,omitempty" json:"bands,omitempty"`
}

// TaxYears selects one configuration key per regime family.
type TaxYears struct {
	UK            string `yaml:"uk" json:"uk"`
	SpainNormal   string `yaml:"spain_normal" json:"spainNormal"`
	SpainBeckham  string `yaml:"spain_beckham" json:"spainBeckham"`
	SpainAutonomo string `yaml:"spain_autonomo" json:"spainAutonomo"`
}

// TaxTables is the versioned, read-only reference data for every regime.
type TaxTables struct {
	UK                  map[string]UKTaxYear               `yaml:"uk" json:"uk"`
	SpainNormal         map[string]SpainNormalTaxYear      `yaml:"spain_normal" json:"spainNormal"`
	SpainBeckham        map[string]SpainBeckhamTaxYear     `yaml:"spain_beckham" json:"spainBeckham"`
	SpainAutonomo       map[string]SpainAutonomoTaxYear    `yaml:"spain_autonomo" json:"spainAutonomo"`
	SpainToUK           map[string]string                  `yaml:"spain_to_uk" json:"spainToUk"`
	NonResidentProperty map[string]NonResidentPropertyRule `yaml:"non_resident_property" json:"nonResidentProperty"`
	PropertyCountries   []string                           `yaml:"property_countries" json:"propertyCountries"`
	Defaults            TaxYears                           `yaml:"defaults" json:"defaults"`
}

// UKYearKeys returns the configured UK fiscal year labels in ascending order.
func (t *TaxTables) UKYearKeys() []string {
	return sortedKeys(t.UK)
}

// SpainYearKeys returns every Spanish calendar year configured for any Spanish regime.
func (t *TaxTables) SpainYearKeys() []string {
	seen := map[string]struct{}{}
	for k := range t.SpainNormal {
		seen[k] = struct{}{}
	}
	for k := range t.SpainBeckham {
		seen[k] = struct{}{}
	}
	for k := range t.SpainAutonomo {
		seen[k] = struct{}{}
	}
	return sortedKeys(seen)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
