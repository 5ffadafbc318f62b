package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paycompare/tax-calculator/internal/calculation"
	"github.com/paycompare/tax-calculator/internal/config"
	"github.com/paycompare/tax-calculator/internal/domain"
	"github.com/paycompare/tax-calculator/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// settings are resolved from flags, PAYCOMPARE_* environment variables and paycompare.yaml, in that order.
type settings struct {
	Tables    string
	Format    string
	Year      string
	LogLevel  string
	OutputDir string
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	v := viper.New()
	v.SetConfigName("paycompare")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	file, _ := cmd.Flags().GetString("settings")
	if file != "" {
		v.SetConfigFile(file)
	}

	v.SetEnvPrefix("PAYCOMPARE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("format", "console")
	v.SetDefault("log-level", "WARN")

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return settings{}, fmt.Errorf("failed to bind flags: %w", err)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return settings{}, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	return settings{
		Tables:    v.GetString("tables"),
		Format:    v.GetString("format"),
		Year:      v.GetString("year"),
		LogLevel:  v.GetString("log-level"),
		OutputDir: v.GetString("output"),
	}, nil
}

func (s settings) taxTables() (*domain.TaxTables, error) {
	parser := config.NewInputParser()
	if s.Tables == "" {
		return parser.DefaultTaxTables()
	}
	return parser.LoadTaxTables(s.Tables)
}

func (s settings) engine(tables *domain.TaxTables) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine(tables)
	engine.SetLogger(logging.New(logging.Config{Level: logging.LevelFromString(s.LogLevel)}))
	return engine
}

// loadInputs reads the save file, or the worked example when no file is given.
// The returned year is the --year setting, falling back to the save file's year.
func (s settings) loadInputs(path string) (*domain.TaxInputs, string, error) {
	if path == "" {
		in := config.ExampleInputs()
		return &in, s.Year, nil
	}
	save, err := config.LoadSaveFile(path)
	if err != nil {
		return nil, "", err
	}
	year := s.Year
	if year == "" {
		year = save.TaxYear
	}
	return &save.Inputs, year, nil
}
