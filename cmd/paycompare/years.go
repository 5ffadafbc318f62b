package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/paycompare/tax-calculator/internal/domain"
	"github.com/paycompare/tax-calculator/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type yearsListing struct {
	Defaults  domain.TaxYears   `yaml:"defaults"`
	UK        []string          `yaml:"uk"`
	Spain     []string          `yaml:"spain"`
	SpainToUK map[string]string `yaml:"spain_to_uk"`
}

func newYearsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "years",
		Short: "List the tax years available in the tax tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			tables, err := s.taxTables()
			if err != nil {
				return err
			}
			listing := yearsListing{
				Defaults:  tables.Defaults,
				UK:        tables.UKYearKeys(),
				Spain:     tables.SpainYearKeys(),
				SpainToUK: tables.SpainToUK,
			}
			if output.NormalizeFormatName(s.Format) == "yaml" {
				return yaml.NewEncoder(cmd.OutOrStdout()).Encode(listing)
			}
			writeYears(cmd.OutOrStdout(), listing)
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "console", "output format: console or yaml")
	return cmd
}

func writeYears(w io.Writer, l yearsListing) {
	fmt.Fprintf(w, "UK tax years:      %s\n", strings.Join(l.UK, ", "))
	fmt.Fprintf(w, "Spanish tax years: %s\n", strings.Join(l.Spain, ", "))
	fmt.Fprintf(w, "Defaults:          UK %s, Spain Normal %s, Beckham %s, Autónomo %s\n",
		l.Defaults.UK, l.Defaults.SpainNormal, l.Defaults.SpainBeckham, l.Defaults.SpainAutonomo)
	for _, spain := range l.Spain {
		if uk, ok := l.SpainToUK[spain]; ok {
			fmt.Fprintf(w, "  Spain %s -> UK %s\n", spain, uk)
		}
	}
}
