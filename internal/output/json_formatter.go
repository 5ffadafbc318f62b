package output

import (
	"encoding/json"

	"github.com/paycompare/tax-calculator/internal/domain"
	"gopkg.in/yaml.v3"
)

// JSONFormatter serializes the comparison as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(cmp *domain.Comparison) ([]byte, error) {
	return json.MarshalIndent(cmp, "", "  ")
}

// YAMLFormatter serializes the comparison as YAML using the snake_case field names of the tax tables.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(cmp *domain.Comparison) ([]byte, error) {
	return yaml.Marshal(cmp)
}
