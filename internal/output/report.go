package output

import (
	"fmt"
	"strings"

	"github.com/paycompare/tax-calculator/internal/domain"
)

// Render formats a comparison with the named formatter.
func Render(cmp *domain.Comparison, format string) ([]byte, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupported(format)
	}
	return f.Format(cmp)
}

// GenerateReport writes the comparison to a timestamped file in dir and returns its path.
func GenerateReport(cmp *domain.Comparison, format, dir string) (string, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return "", unsupported(format)
	}
	return WriteFormatted(f, cmp, dir, extensionFor(f.Name()))
}

func extensionFor(name string) string {
	switch {
	case strings.Contains(name, "csv"):
		return "csv"
	case name == "console" || name == "summary":
		return "txt"
	default:
		return name
	}
}

func unsupported(format string) error {
	return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}
