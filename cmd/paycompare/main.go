package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "paycompare",
		Short:         "Compare take-home pay across UK and Spanish tax regimes",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to load .env: %w", err)
			}
			return nil
		},
	}
	root.PersistentFlags().String("tables", "", "tax tables YAML file (defaults to the built-in tables)")
	root.PersistentFlags().String("log-level", "WARN", "log level: NONE, ERROR, WARN, INFO or DEBUG")
	root.PersistentFlags().String("settings", "", "settings file (defaults to ./paycompare.yaml when present)")

	root.AddCommand(newCalculateCmd(), newDocsCmd(), newYearsCmd(), newExampleCmd())
	return root
}
