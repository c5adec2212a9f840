package output

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/zusim/internal/domain"
)

// Report bundles a projection with the context needed to render it
type Report struct {
	GeneratedAt time.Time               `json:"generatedAt" yaml:"generated_at"`
	Input       domain.SimulationInput  `json:"input" yaml:"input"`
	Result      domain.ProjectionResult `json:"result" yaml:"result"`
	Scenarios   []domain.ScenarioResult `json:"scenarios,omitempty" yaml:"scenarios,omitempty"`
	Assumptions []string                `json:"assumptions,omitempty" yaml:"assumptions,omitempty"`
}

// GenerateReport writes report to w in the named format
func GenerateReport(w io.Writer, report *Report, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s", format)
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// SaveInput writes a simulation input as YAML, readable by config.InputParser
func SaveInput(in domain.SimulationInput, filename string) error {
	data, err := yaml.Marshal(in)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

// Money converts an engine amount for display. Non-finite values become zero.
func Money(amount float64) decimal.Decimal {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(amount)
}

// FormatCurrency formats a decimal as złoty
func FormatCurrency(amount decimal.Decimal) string {
	return amount.StringFixed(2) + " zł"
}

// FormatPercentage formats a fraction (0.1952) as a percentage (19.52%)
func FormatPercentage(fraction decimal.Decimal) string {
	return fraction.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
