package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/paycompare/tax-calculator/internal/domain"
	"github.com/paycompare/tax-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// MagicHeader identifies a saved input file. It is followed by a newline and the JSON envelope.
const MagicHeader = "PAYCOMPARE_CONFIG_v1"

// ErrInvalidConfigFormat is returned for files without the magic header or without inputs and tax year.
var ErrInvalidConfigFormat = errors.New("invalid config file format")

// SaveFile is the persisted envelope of a user's inputs and chosen tax year.
type SaveFile struct {
	Inputs  domain.TaxInputs `json:"inputs"`
	TaxYear string           `json:"taxYear"`
}

// DefaultInputs returns the values used for any field a save file leaves out.
func DefaultInputs() domain.TaxInputs {
	return domain.TaxInputs{
		BaseCurrency:         money.EUR,
		ExchangeRate:         decimal.NewFromFloat(1.15),
		SalaryCurrency:       money.GBP,
		FreelanceCurrency:    money.GBP,
		IncludeUK:            true,
		IncludeUKNI:          true,
		IncludeSpainNormal:   true,
		IncludeSpainBeckham:  true,
		IncludeSpainAutonomo: true,

		ForeignPropertyMortgageInterestDeductiblePercent: decimal.NewFromInt(100),
		ForeignPropertyCurrency:                          money.GBP,
		ForeignPropertyCountry:                           domain.CountryUK,
		TreatAsForeignSource:                             true,
		AutonomoYear:                                     3,
	}
}

// ExampleInputs is a worked scenario: a UK salary and a freelance alternative with a let UK flat.
func ExampleInputs() domain.TaxInputs {
	in := DefaultInputs()
	in.BaseCurrency = money.GBP
	in.GrossSalary = decimal.NewFromInt(65000)
	in.PensionContributionPercent = decimal.NewFromFloat(3.39)
	in.FreelanceRevenue = decimal.NewFromInt(73650)
	in.ExpenseDeductionRate = decimal.NewFromInt(7)
	in.ForeignPropertyEnabled = true
	in.ForeignPropertyRentalIncome = decimal.NewFromInt(2000)
	in.ForeignPropertyDeductibles = decimal.NewFromInt(380)
	in.ForeignPropertyMortgageInterest = decimal.NewFromInt(650)
	in.ForeignPropertyMortgagePayment = decimal.NewFromInt(1200)
	return in
}

// SerializeConfig writes the magic header and the JSON envelope.
func SerializeConfig(in domain.TaxInputs, taxYear string) ([]byte, error) {
	body, err := json.MarshalIndent(SaveFile{Inputs: in, TaxYear: taxYear}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(MagicHeader)
	buf.WriteByte('\n')
	buf.Write(body)
	return buf.Bytes(), nil
}

// DeserializeConfig reads a save file. Missing fields take their defaults, an unsupported currency
// falls back to GBP and an autónomo year outside 1-3 falls back to 3.
func DeserializeConfig(data []byte) (*SaveFile, error) {
	data = bytes.TrimLeft(data, "\ufeff \t\r\n")
	header, body, found := bytes.Cut(data, []byte("\n"))
	if !found || string(bytes.TrimSpace(header)) != MagicHeader {
		return nil, fmt.Errorf("%w: expected %s header", ErrInvalidConfigFormat, MagicHeader)
	}

	var raw struct {
		Inputs  json.RawMessage `json:"inputs"`
		TaxYear *string         `json:"taxYear"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfigFormat, err)
	}
	if len(raw.Inputs) == 0 || string(raw.Inputs) == "null" || raw.TaxYear == nil {
		return nil, fmt.Errorf("%w: missing inputs or tax year", ErrInvalidConfigFormat)
	}

	in := DefaultInputs()
	if err := json.Unmarshal(raw.Inputs, &in); err != nil {
		return nil, fmt.Errorf("%w: inputs: %v", ErrInvalidConfigFormat, err)
	}
	sanitizeInputs(&in)
	return &SaveFile{Inputs: in, TaxYear: *raw.TaxYear}, nil
}

func sanitizeInputs(in *domain.TaxInputs) {
	for _, c := range []*money.Currency{&in.BaseCurrency, &in.SalaryCurrency, &in.FreelanceCurrency, &in.ForeignPropertyCurrency} {
		if !c.Valid() {
			*c = money.GBP
		}
	}
	if in.AutonomoYear < 1 || in.AutonomoYear > 3 {
		in.AutonomoYear = 3
	}
}

// LoadSaveFile reads and decodes a save file from disk.
func LoadSaveFile(filename string) (*SaveFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return DeserializeConfig(data)
}

// WriteSaveFile encodes and writes a save file to disk.
func WriteSaveFile(filename string, in domain.TaxInputs, taxYear string) error {
	data, err := SerializeConfig(in, taxYear)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
