package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/paycompare/tax-calculator/internal/domain"
	"github.com/paycompare/tax-calculator/pkg/money"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidInput marks inputs rejected by boundary validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidTaxTables marks reference data that breaks the band or tier invariants.
	ErrInvalidTaxTables = errors.New("invalid tax tables")
)

//go:embed tax_tables.yaml
var defaultTaxTables []byte

// InputParser handles parsing of tax tables and user inputs
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// DefaultTaxTables parses the tax tables compiled into the binary.
func (ip *InputParser) DefaultTaxTables() (*domain.TaxTables, error) {
	return ip.ParseTaxTables(defaultTaxTables)
}

// LoadTaxTables loads tax tables from a YAML file
func (ip *InputParser) LoadTaxTables(filename string) (*domain.TaxTables, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseTaxTables(data)
}

// ParseTaxTables decodes and validates YAML tax tables.
func (ip *InputParser) ParseTaxTables(data []byte) (*domain.TaxTables, error) {
	var tables domain.TaxTables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidateTaxTables(&tables); err != nil {
		return nil, fmt.Errorf("tax tables validation failed: %w", err)
	}
	return &tables, nil
}

// ValidateTaxTables checks every band and tier list and the default year selection
func (ip *InputParser) ValidateTaxTables(t *domain.TaxTables) error {
	if len(t.UK) == 0 {
		return fmt.Errorf("%w: no uk tax years", ErrInvalidTaxTables)
	}
	for key, cfg := range t.UK {
		if err := validateBands(cfg.Bands); err != nil {
			return fmt.Errorf("%w: uk %s: %v", ErrInvalidTaxTables, key, err)
		}
		if cfg.PersonalAllowance.IsNegative() || cfg.TaperThreshold.IsNegative() {
			return fmt.Errorf("%w: uk %s: allowance and taper threshold cannot be negative", ErrInvalidTaxTables, key)
		}
		if cfg.NI.UpperEarningsLimit.LessThan(cfg.NI.PrimaryThreshold) {
			return fmt.Errorf("%w: uk %s: NI upper earnings limit below primary threshold", ErrInvalidTaxTables, key)
		}
		if !cfg.S24CreditRate.IsPositive() {
			return fmt.Errorf("%w: uk %s: s24 credit rate must be positive", ErrInvalidTaxTables, key)
		}
	}
	for key, cfg := range t.SpainNormal {
		if err := validateBands(cfg.Bands); err != nil {
			return fmt.Errorf("%w: spain normal %s: %v", ErrInvalidTaxTables, key, err)
		}
		if !cfg.SocialSecurityCap.IsPositive() {
			return fmt.Errorf("%w: spain normal %s: social security cap must be positive", ErrInvalidTaxTables, key)
		}
	}
	for key, cfg := range t.SpainBeckham {
		if !cfg.Threshold.IsPositive() {
			return fmt.Errorf("%w: spain beckham %s: threshold must be positive", ErrInvalidTaxTables, key)
		}
		if _, ok := t.SpainNormal[key]; !ok {
			return fmt.Errorf("%w: spain beckham %s: needs a spain normal year for social security", ErrInvalidTaxTables, key)
		}
	}
	for key, cfg := range t.SpainAutonomo {
		if err := validateBands(cfg.Bands); err != nil {
			return fmt.Errorf("%w: spain autonomo %s: %v", ErrInvalidTaxTables, key, err)
		}
		if err := validateTramos(cfg.Tramos); err != nil {
			return fmt.Errorf("%w: spain autonomo %s: %v", ErrInvalidTaxTables, key, err)
		}
	}
	for country, rule := range t.NonResidentProperty {
		if len(rule.Bands) > 0 {
			if err := validateBands(rule.Bands); err != nil {
				return fmt.Errorf("%w: non-resident %s: %v", ErrInvalidTaxTables, country, err)
			}
		} else if rule.Rate.IsNegative() || rule.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%w: non-resident %s: rate must be between 0 and 1", ErrInvalidTaxTables, country)
		}
		if rule.Base != domain.PropertyBaseGeneric && rule.Base != domain.PropertyBaseDeductiblesOnly {
			return fmt.Errorf("%w: non-resident %s: unknown base %q", ErrInvalidTaxTables, country, rule.Base)
		}
	}
	for spain, uk := range t.SpainToUK {
		if _, ok := t.UK[uk]; !ok {
			return fmt.Errorf("%w: spain_to_uk %s points at missing uk year %s", ErrInvalidTaxTables, spain, uk)
		}
	}
	return ip.validateDefaults(t)
}

func (ip *InputParser) validateDefaults(t *domain.TaxTables) error {
	d := t.Defaults
	if _, ok := t.UK[d.UK]; d.UK != "" && !ok {
		return fmt.Errorf("%w: default uk year %s not configured", ErrInvalidTaxTables, d.UK)
	}
	if _, ok := t.SpainNormal[d.SpainNormal]; d.SpainNormal != "" && !ok {
		return fmt.Errorf("%w: default spain normal year %s not configured", ErrInvalidTaxTables, d.SpainNormal)
	}
	if _, ok := t.SpainBeckham[d.SpainBeckham]; d.SpainBeckham != "" && !ok {
		return fmt.Errorf("%w: default spain beckham year %s not configured", ErrInvalidTaxTables, d.SpainBeckham)
	}
	if _, ok := t.SpainAutonomo[d.SpainAutonomo]; d.SpainAutonomo != "" && !ok {
		return fmt.Errorf("%w: default spain autonomo year %s not configured", ErrInvalidTaxTables, d.SpainAutonomo)
	}
	return nil
}

// validateBands enforces ascending, contiguous bands with only the last one open.
func validateBands(bands []domain.TaxBand) error {
	if len(bands) == 0 {
		return fmt.Errorf("no bands")
	}
	for i, b := range bands {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("band %d: rate must be between 0 and 1", i)
		}
		last := i == len(bands)-1
		if b.To == nil {
			if !last {
				return fmt.Errorf("band %d: only the last band may be open", i)
			}
			continue
		}
		if !b.To.GreaterThan(b.From) {
			return fmt.Errorf("band %d: upper bound must exceed lower bound", i)
		}
		if !last && !bands[i+1].From.Equal(*b.To) {
			return fmt.Errorf("band %d: next band must start at %s", i, b.To.String())
		}
	}
	if bands[len(bands)-1].To != nil {
		return fmt.Errorf("last band must be open")
	}
	return nil
}

// validateTramos applies the same shape rules to autónomo contribution tiers.
func validateTramos(tramos []domain.AutonomoTramo) error {
	if len(tramos) == 0 {
		return fmt.Errorf("no contribution tiers")
	}
	for i, t := range tramos {
		if t.Cuota.IsNegative() {
			return fmt.Errorf("tier %d: cuota cannot be negative", i)
		}
		last := i == len(tramos)-1
		if t.MaxMonthly == nil {
			if !last {
				return fmt.Errorf("tier %d: only the last tier may be open", i)
			}
			continue
		}
		if !t.MaxMonthly.GreaterThan(t.MinMonthly) {
			return fmt.Errorf("tier %d: max must exceed min", i)
		}
		if !last && !tramos[i+1].MinMonthly.Equal(*t.MaxMonthly) {
			return fmt.Errorf("tier %d: next tier must start at %s", i, t.MaxMonthly.String())
		}
	}
	if tramos[len(tramos)-1].MaxMonthly != nil {
		return fmt.Errorf("last tier must be open")
	}
	return nil
}

// ValidateInputs rejects inputs the calculators cannot give a meaningful answer for.
func (ip *InputParser) ValidateInputs(in *domain.TaxInputs, tables *domain.TaxTables) error {
	if in == nil {
		return fmt.Errorf("%w: no inputs", ErrInvalidInput)
	}
	if !in.ExchangeRate.IsPositive() {
		return fmt.Errorf("%w: exchange rate must be positive", ErrInvalidInput)
	}
	for name, c := range map[string]money.Currency{
		"base currency":      in.BaseCurrency,
		"salary currency":    in.SalaryCurrency,
		"freelance currency": in.FreelanceCurrency,
	} {
		if !c.Valid() {
			return fmt.Errorf("%w: %s %q is not supported", ErrInvalidInput, name, c)
		}
	}
	if in.GrossSalary.IsNegative() {
		return fmt.Errorf("%w: gross salary cannot be negative", ErrInvalidInput)
	}
	if in.FreelanceRevenue.IsNegative() {
		return fmt.Errorf("%w: freelance revenue cannot be negative", ErrInvalidInput)
	}
	for name, pct := range map[string]decimal.Decimal{
		"pension contribution percent":           in.PensionContributionPercent,
		"expense deduction rate":                 in.ExpenseDeductionRate,
		"freelance pension contribution percent": in.FreelancePensionContributionPercent,
		"mortgage interest deductible percent":   in.ForeignPropertyMortgageInterestDeductiblePercent,
	} {
		if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("%w: %s must be between 0 and 100", ErrInvalidInput, name)
		}
	}
	if in.AutonomoYear < 1 || in.AutonomoYear > 3 {
		return fmt.Errorf("%w: autonomo year must be 1, 2 or 3", ErrInvalidInput)
	}
	if in.ForeignPropertyEnabled {
		return ip.validateProperty(in, tables)
	}
	return nil
}

func (ip *InputParser) validateProperty(in *domain.TaxInputs, tables *domain.TaxTables) error {
	if !in.ForeignPropertyCurrency.Valid() {
		return fmt.Errorf("%w: property currency %q is not supported", ErrInvalidInput, in.ForeignPropertyCurrency)
	}
	if in.ForeignPropertyCountry == "" {
		return fmt.Errorf("%w: property country is required", ErrInvalidInput)
	}
	if tables != nil && len(tables.PropertyCountries) > 0 && !slices.Contains(tables.PropertyCountries, in.ForeignPropertyCountry) {
		return fmt.Errorf("%w: unknown property country %q", ErrInvalidInput, in.ForeignPropertyCountry)
	}
	for name, v := range map[string]decimal.Decimal{
		"rental income":     in.ForeignPropertyRentalIncome,
		"deductibles":       in.ForeignPropertyDeductibles,
		"mortgage interest": in.ForeignPropertyMortgageInterest,
		"mortgage payment":  in.ForeignPropertyMortgagePayment,
	} {
		if v.IsNegative() {
			return fmt.Errorf("%w: property %s cannot be negative", ErrInvalidInput, name)
		}
	}
	return nil
}
