package main

import (
	"fmt"

	"github.com/paycompare/tax-calculator/internal/config"
	"github.com/spf13/cobra"
)

func newExampleCmd() *cobra.Command {
	var path, year string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write a save file with the worked example inputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteSaveFile(path, config.ExampleInputs(), year); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Example inputs written to", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "out", "o", "paycompare_example.txt", "file to write")
	cmd.Flags().StringVarP(&year, "year", "y", "2025", "tax year stored in the file")
	return cmd
}
