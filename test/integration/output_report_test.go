package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/paycompare/tax-calculator/internal/calculation"
	"github.com/paycompare/tax-calculator/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputGeneration(t *testing.T) {
	in, tables, years := loadExample(t, "2024")
	cmp, err := calculation.NewCalculationEngine(tables).Compare(context.Background(), in, years)
	require.NoError(t, err)

	dir := t.TempDir()
	for _, name := range output.AvailableFormatterNames() {
		t.Run(name, func(t *testing.T) {
			path, err := output.GenerateReport(cmp, name, dir)
			require.NoError(t, err)

			fi, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, fi.Size())
			assert.Equal(t, dir, filepath.Dir(path))
		})
	}

	_, err = output.GenerateReport(cmp, "pdf", dir)
	assert.ErrorIs(t, err, output.ErrUnsupportedFormat)
}
