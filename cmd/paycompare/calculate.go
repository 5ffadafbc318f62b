package main

import (
	"fmt"

	"github.com/paycompare/tax-calculator/internal/calculation"
	"github.com/paycompare/tax-calculator/internal/output"
	"github.com/spf13/cobra"
)

func newCalculateCmd() *cobra.Command {
	var savePath string
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate every enabled regime and compare take-home pay",
		Example: `  paycompare calculate --config my_inputs.txt
  paycompare calculate --config my_inputs.txt --year 2025 --format steps-csv
  paycompare calculate --format html --output reports/`,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			cmp, err := s.engine(tables).Compare(cmd.Context(), in, years)
			if err != nil {
				return err
			}

			if s.OutputDir != "" {
				path, err := output.GenerateReport(cmp, s.Format, s.OutputDir)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Report written to", path)
				return nil
			}
			data, err := output.Render(cmp, s.Format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&savePath, "config", "c", "", "saved inputs file (defaults to the worked example)")
	cmd.Flags().StringP("year", "y", "", "Spanish calendar year (2025) or UK tax year (2025/26)")
	cmd.Flags().StringP("format", "f", "console", "output format: console, summary, csv, steps-csv, json, yaml, html")
	cmd.Flags().StringP("output", "o", "", "write the report to a timestamped file in this directory")
	return cmd
}
