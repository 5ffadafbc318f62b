package main

import (
	"fmt"

	"github.com/paycompare/tax-calculator/internal/calculation"
	"github.com/paycompare/tax-calculator/internal/domain"
	"github.com/paycompare/tax-calculator/internal/output"
	"github.com/paycompare/tax-calculator/internal/taxdocs"
	"github.com/spf13/cobra"
)

func newDocsCmd() *cobra.Command {
	var savePath, regimeName string
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Show the monthly breakdown and tax forms for one regime",
		Example: `  paycompare docs --config my_inputs.txt --regime spainAutonomo
  paycompare docs --regime uk --year 2026/27 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			regime, err := parseRegime(regimeName)
			if err != nil {
				return err
			}
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			tables, err := s.taxTables()
			if err != nil {
				return err
			}
			in, year, err := s.loadInputs(savePath)
			if err != nil {
				return err
			}
			years, err := calculation.ResolveYears(tables, year)
			if err != nil {
				return err
			}

			only := *in
			only.IncludeUK = regime == domain.RegimeUK
			only.IncludeSpainNormal = regime == domain.RegimeSpainNormal
			only.IncludeSpainBeckham = regime == domain.RegimeSpainBeckham
			only.IncludeSpainAutonomo = regime == domain.RegimeSpainAutonomo

			results, err := s.engine(tables).Calculate(cmd.Context(), &only, years)
			if err != nil {
				return err
			}
			if len(results) != 1 {
				return fmt.Errorf("expected one result for %s, got %d", regime, len(results))
			}
			docs, err := taxdocs.Build(results[0], &only, tables)
			if err != nil {
				return err
			}
			data, err := output.FormatDocuments(docs, s.Format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&savePath, "config", "c", "", "saved inputs file (defaults to the worked example)")
	cmd.Flags().StringVarP(&regimeName, "regime", "r", string(domain.RegimeUK), "uk, spainNormal, spainBeckham or spainAutonomo")
	cmd.Flags().StringP("year", "y", "", "Spanish calendar year (2025) or UK tax year (2025/26)")
	cmd.Flags().StringP("format", "f", "console", "output format: console, json, yaml")
	return cmd
}

func parseRegime(name string) (domain.Regime, error) {
	for _, r := range domain.AllRegimes {
		if string(r) == name {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown regime %q: use uk, spainNormal, spainBeckham or spainAutonomo", name)
}
